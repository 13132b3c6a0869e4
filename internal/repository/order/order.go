package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"ordertracker/internal/entities"
	"ordertracker/internal/repository"
	service "ordertracker/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id",
	"customer_id",
	"items",
	"total",
	"status",
	"delivery_type",
	"delivery_info",
	"payment_method",
	"current_location",
	"estimated_completion",
	"created_at",
	"updated_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderModifyEntity entities.OrderModify) (*entities.Order, error) {
	orderModifyModel, err := FromDomainModify(&orderModifyEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	query, args, err := qb.
		Insert("orders").
		Columns(orderColumns...).
		Values(
			orderModifyModel.ID,
			orderModifyModel.CustomerID,
			orderModifyModel.Items,
			orderModifyModel.Total,
			orderModifyModel.Status,
			orderModifyModel.DeliveryType,
			orderModifyModel.DeliveryInfo,
			orderModifyModel.PaymentMethod,
			orderModifyModel.CurrentLocation,
			orderModifyModel.EstimatedCompletion,
			orderModifyModel.CreatedAt,
			orderModifyModel.UpdatedAt,
		).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, service.ErrConflict
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("%w: %w", service.ErrValidation, err)
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(orderModel)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderModel)
}

// ListByCustomer новые заказы первыми, при равном created_at порядок по id.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		orderModel, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		orderModels = append(orderModels, *orderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	return ToDomainList(orderModels)
}

// ListOrders заказы всех клиентов, новые первыми. Пустой statuses не фильтрует.
func (r *Repository) ListOrders(ctx context.Context, statuses []entities.OrderStatusType) ([]entities.Order, error) {
	builder := qb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(statuses) > 0 {
		statusValues := make([]string, len(statuses))
		for i, status := range statuses {
			statusValues[i] = status.String()
		}
		builder = builder.Where(sq.Eq{"status": statusValues})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list all error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list all error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 16)
	for rows.Next() {
		orderModel, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list all error: %w", err)
		}
		orderModels = append(orderModels, *orderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository list all error: %w", err)
	}

	return ToDomainList(orderModels)
}

func (r *Repository) GetLatestByCustomer(
	ctx context.Context,
	customerID string,
	statuses []entities.OrderStatusType,
) (*entities.Order, error) {
	statusValues := make([]string, len(statuses))
	for i, status := range statuses {
		statusValues[i] = status.String()
	}

	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"customer_id": customerID, "status": statusValues}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository latest error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository latest error: %w", err)
	}

	return ToDomain(orderModel)
}

// UpdateStatus compare-and-set по текущему статусу. Если строка не обновилась,
// отличает отсутствующий заказ от проигранной гонки.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	orderModifyEntity entities.OrderModify,
	expected entities.OrderStatusType,
) (*entities.Order, error) {
	orderModifyModel, err := FromDomainModify(&orderModifyEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}
	if orderModifyModel.ID == nil || orderModifyModel.Status == nil {
		return nil, fmt.Errorf("unexpected order repository update error: id and status are required")
	}

	builder := qb.
		Update("orders").
		Set("status", orderModifyModel.Status)

	// опциональные поля
	if orderModifyModel.CurrentLocation != nil {
		builder = builder.Set("current_location", orderModifyModel.CurrentLocation)
	}
	builder = builder.Set("estimated_completion", orderModifyModel.EstimatedCompletion)

	if orderModifyModel.UpdatedAt != nil {
		builder = builder.Set("updated_at", orderModifyModel.UpdatedAt)
	} else {
		builder = builder.Set("updated_at", sq.Expr("NOW()"))
	}

	query, args, err := builder.
		Where(sq.Eq{"id": orderModifyModel.ID, "status": expected.String()}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missedUpdate(ctx, *orderModifyModel.ID)
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(orderModel)
}

func (r *Repository) missedUpdate(ctx context.Context, id string) error {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected order repository update error: %w", err)
	}
	if !exists {
		return service.ErrOrderNotFound
	}
	return service.ErrStatusConflict
}

func returning() string {
	return "RETURNING " + strings.Join(orderColumns, ", ")
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.CustomerID,
		&orderModel.Items,
		&orderModel.Total,
		&orderModel.Status,
		&orderModel.DeliveryType,
		&orderModel.DeliveryInfo,
		&orderModel.PaymentMethod,
		&orderModel.CurrentLocation,
		&orderModel.EstimatedCompletion,
		&orderModel.CreatedAt,
		&orderModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderModel, nil
}

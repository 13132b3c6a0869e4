package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"ordertracker/internal/entities"
	"ordertracker/internal/pkg/config"
	"ordertracker/internal/pkg/events"
	"ordertracker/pkg/keymutex"
	"ordertracker/pkg/logger"
)

type Order struct {
	log              serviceLogger
	repository       Repository
	outboxRepository OutboxRepository
	cache            OrderCache
	notifier         Notifier
	txManager        TxManager
	etaFactory       ETAFactory
	locationFactory  LocationFactory
	locks            *keymutex.KeyMutex
	outboxTopic      string
	now              func() time.Time
	newID            func() (string, error)
}

func New(
	log serviceLogger,
	repository Repository,
	outboxRepository OutboxRepository,
	cache OrderCache,
	notifier Notifier,
	txManager TxManager,
	etaFactory ETAFactory,
	locationFactory LocationFactory,
	kafkaCfg *config.Kafka,
) *Order {
	topic := events.TopicOrderStatusChanged
	if kafkaCfg != nil && kafkaCfg.Topic != "" {
		topic = kafkaCfg.Topic
	}

	return &Order{
		log:              log,
		repository:       repository,
		outboxRepository: outboxRepository,
		cache:            cache,
		notifier:         notifier,
		txManager:        txManager,
		etaFactory:       etaFactory,
		locationFactory:  locationFactory,
		locks:            keymutex.New(),
		outboxTopic:      topic,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            newUUIDv7,
	}
}

// WithClock подменяет источник времени.
func (s *Order) WithClock(now func() time.Time) *Order {
	s.now = now
	return s
}

// WithIDGenerator подменяет генератор id заказов и событий.
func (s *Order) WithIDGenerator(newID func() (string, error)) *Order {
	s.newID = newID
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CreateOrder проверяет черновик, пересчитывает сумму и сохраняет заказ в статусе pending.
// Переданный клиентом total игнорируется.
func (s *Order) CreateOrder(ctx context.Context, draft entities.OrderModify) (*entities.Order, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	now := s.now()
	total := entities.CalculateTotal(draft.Items)
	status := entities.OrderPending
	location := s.locationFactory.Location(status, *draft.DeliveryType)

	info := *draft.DeliveryInfo
	if info.Time == "" {
		info.Time = entities.DefaultDeliveryTime
	}
	if *draft.DeliveryType == entities.DeliveryTypePickup {
		info.Address = ""
		info.Complement = ""
	}

	items := make([]entities.OrderItem, len(draft.Items))
	copy(items, draft.Items)

	created, err := s.repository.Create(ctx, entities.OrderModify{
		ID:              &id,
		CustomerID:      draft.CustomerID,
		Items:           items,
		Total:           &total,
		Status:          &status,
		DeliveryType:    draft.DeliveryType,
		DeliveryInfo:    &info,
		PaymentMethod:   draft.PaymentMethod,
		CurrentLocation: &location,
		CreatedAt:       &now,
		UpdatedAt:       &now,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.refreshView(ctx, created)

	s.log.Info("order created",
		logger.NewField("order_id", created.ID),
		logger.NewField("customer_id", created.CustomerID),
		logger.NewField("total", created.Total.StringFixed(2)),
	)

	return created, nil
}

// GetOrder читает заказ через кэш представлений; при любой ошибке кэша идёт в хранилище.
func (s *Order) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	if !isValidOrderID(id) {
		return nil, ErrOrderNotFound
	}

	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.log.Warn("order view cache read failed",
			logger.NewField("order_id", id),
			logger.NewField("error", err),
		)
	}

	order, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	s.refreshView(ctx, order)
	return order, nil
}

// GetActiveOrder последний по времени создания заказ клиента, который ещё в работе.
func (s *Order) GetActiveOrder(ctx context.Context, customerID string) (*entities.Order, error) {
	if customerID == "" {
		return nil, ErrMissingCustomer
	}

	order, err := s.repository.GetLatestByCustomer(ctx, customerID, entities.ActiveStatuses())
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrNoActiveOrder
		}
		return nil, fmt.Errorf("get active order: %w", err)
	}

	return order, nil
}

// ListCustomerOrders заказы клиента, новые первыми.
func (s *Order) ListCustomerOrders(ctx context.Context, customerID string) ([]entities.Order, error) {
	if customerID == "" {
		return nil, ErrMissingCustomer
	}

	orders, err := s.repository.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}

	return orders, nil
}

// ListOrders все заказы для администратора, новые первыми. Пустой statuses без фильтра.
func (s *Order) ListOrders(ctx context.Context, statuses []entities.OrderStatusType) ([]entities.Order, error) {
	for _, status := range statuses {
		if !status.IsKnown() {
			return nil, ErrInvalidStatus
		}
	}

	orders, err := s.repository.ListOrders(ctx, statuses)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (s *Order) refreshView(ctx context.Context, order *entities.Order) {
	if err := s.cache.Set(ctx, order); err != nil {
		s.log.Warn("order view cache write failed",
			logger.NewField("order_id", order.ID),
			logger.NewField("error", err),
		)
	}
}

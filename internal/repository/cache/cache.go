package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"ordertracker/internal/entities"
	"ordertracker/internal/pkg/config"
	service "ordertracker/internal/service/order"
)

const keyPrefix = "order:view:v1:"

// OrderView кэш представлений заказа для частых чтений.
// TTL не больше интервала опроса клиентов, запись идёт после каждого перехода.
type OrderView struct {
	client Client
	ttl    time.Duration
}

func New(client Client, cfg *config.Redis) *OrderView {
	ttl := cfg.OrderViewTTL
	if ttl <= 0 || ttl > config.MaxOrderViewTTL {
		ttl = config.MaxOrderViewTTL
	}
	return &OrderView{
		client: client,
		ttl:    ttl,
	}
}

func Key(orderID string) string {
	return keyPrefix + orderID
}

func (c *OrderView) Get(ctx context.Context, id string) (*entities.Order, error) {
	raw, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, service.ErrCacheMiss
		}
		return nil, fmt.Errorf("order view get: %w", err)
	}

	var view orderView
	if err := json.Unmarshal(raw, &view); err != nil {
		// битая запись равносильна промаху, следующий Set её перезапишет
		return nil, fmt.Errorf("%w: decode view: %w", service.ErrCacheMiss, err)
	}
	return toDomain(view), nil
}

func (c *OrderView) Set(ctx context.Context, order *entities.Order) error {
	if order == nil {
		return nil
	}

	raw, err := json.Marshal(toView(order))
	if err != nil {
		return fmt.Errorf("order view encode: %w", err)
	}

	if err := c.client.Set(ctx, Key(order.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("order view set: %w", err)
	}
	return nil
}

func (c *OrderView) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, Key(id)).Err(); err != nil {
		return fmt.Errorf("order view invalidate: %w", err)
	}
	return nil
}

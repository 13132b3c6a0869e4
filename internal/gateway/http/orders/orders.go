// Package orders HTTP клиент чтения заказа, путь опроса для клиентов без live-соединения.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ordertracker/internal/entities"
	"ordertracker/internal/handlers/rest/dto"
	"ordertracker/internal/service/tracking"
	retrierconfig "ordertracker/pkg/retrier"
	"ordertracker/pkg/retrier/backoff_adapter"
)

const (
	requestTimeout = 10 * time.Second

	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// errRetryable ответ сервера, который стоит повторить: 429 и 5xx.
var errRetryable = errors.New("retryable response")

type Client struct {
	baseURL    string
	token      string
	httpClient httpDoer
	retrier    retrier
}

func New(baseURL, token string, httpClient httpDoer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
		retrier:    backoff_adapter.New(retryConfig),
	}
}

// GetOrder GET /order/{orderId}. Неизвестный заказ отдаёт tracking.ErrOrderNotFound.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	endpoint := c.baseURL + "/order/" + url.PathEscape(orderID)

	var body dto.Order
	err := c.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return c.getJSON(ctx, endpoint, &body)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway http orders, get order: %s: %w", orderID, err)
	}

	order, err := toDomain(body)
	if err != nil {
		return nil, fmt.Errorf("gateway http orders, decode order: %s: %w", orderID, err)
	}
	return order, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errRetryable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		return tracking.ErrOrderNotFound
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", errRetryable, resp.StatusCode)
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

func isRetryable(err error) bool {
	return errors.Is(err, errRetryable)
}

package order_events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"ordertracker/internal/entities"
	"ordertracker/internal/pkg/orderevents"
	"ordertracker/internal/service/tracking"
	retrierconfig "ordertracker/pkg/retrier"
	"ordertracker/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "ordertracker"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type OrderEventsGateway struct {
	client  client
	retrier retrier
	token   string
}

// New token нужен только для подписки на все заказы, может быть пустым.
func New(client client, token string) *OrderEventsGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableCode,
	}

	return &OrderEventsGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		token:   token,
	}
}

// Stream открывает поток (с ретраями) и вызывает handle на каждое событие.
// Штатное закрытие потока сервером возвращает nil.
func (g *OrderEventsGateway) Stream(ctx context.Context, orderID string, handle func(entities.OrderStatusChanged)) error {
	if g.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, orderevents.AuthorizationKey, "Bearer "+g.token)
	}

	var stream grpc.ServerStreamingClient[structpb.Struct]

	err := g.executeWithMetrics(ctx, "Subscribe", func(ctx context.Context) error {
		s, err := g.client.Subscribe(ctx, wrapperspb.String(orderID))
		if err != nil {
			return err
		}
		md, err := s.Header()
		if err != nil {
			return err
		}
		if md == nil {
			// поток закрыт без заголовков, статус отдаёт Recv
			if _, err := s.Recv(); err != nil {
				return err
			}
		}
		stream = s
		return nil
	})
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return mapError(ctx, "open stream", orderID, err)
	}

	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return mapError(ctx, "recv", orderID, err)
		}

		event, err := orderevents.FromStruct(msg)
		if err != nil {
			return fmt.Errorf("gateway order events, %s: %w: %w", orderID, tracking.ErrTransport, err)
		}

		GatewayStreamEventsTotal.WithLabelValues(serviceName).Inc()
		handle(event)
	}
}

func mapError(ctx context.Context, op, orderID string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("gateway order events, %s: %s: %w", op, orderID, tracking.ErrOrderNotFound)
	case codes.Canceled, codes.DeadlineExceeded:
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("gateway order events, %s: %s: %w: %w", op, orderID, tracking.ErrTransport, err)
}

func isRetryableCode(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

// executeWithMetrics latency и ретраи открытия потока, сам поток не замеряется.
func (g *OrderEventsGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	grpcCode := getGRPCCode(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, grpcCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, grpcCode).Inc()
	}

	return err
}

func getGRPCCode(err error) string {
	if err == nil {
		return "OK"
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return "UNKNOWN"
}

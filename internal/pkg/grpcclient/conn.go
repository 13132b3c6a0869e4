package grpcclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"ordertracker/pkg/logger"
	retrierconfig "ordertracker/pkg/retrier"
	"ordertracker/pkg/retrier/backoff_adapter"
)

const (
	// KeepaliveTime меньше heartbeat на стороне прокси: event stream живёт долго и почти молчит.
	KeepaliveTime                = 30 * time.Second
	KeepaliveTimeout             = 3 * time.Second
	KeepalivePermitWithoutStream = true

	initialInterval = 500 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

// NewConnClient создаёт ленивое соединение и проверяет health сервиса.
// Недоступный сервер не ошибка: трекер начнёт с опроса, а соединение
// переподключится само, когда сервер поднимется.
func NewConnClient(ctx context.Context, log logger.Logger, addr string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                KeepaliveTime,
			Timeout:             KeepaliveTimeout,
			PermitWithoutStream: KeepalivePermitWithoutStream,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client: %w", err)
	}

	grpcLog := log.With(
		logger.NewField("component", "grpc-client"),
		logger.NewField("host", addr),
	)

	if err := Ping(ctx, grpcLog, conn); err != nil {
		grpcLog.Warn("gRPC server is not ready, live updates may be unavailable",
			logger.NewField("error", err),
		)
	}

	return conn, nil
}

// Ping ждёт SERVING от grpc.health.v1 с ретраями.
func Ping(ctx context.Context, log logger.Logger, conn grpc.ClientConnInterface) error {
	client := healthpb.NewHealthClient(conn)

	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.Info("attempting gRPC connection", logger.NewField("attempt", attempt))

		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
		if err != nil {
			return err
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("service status %s", resp.GetStatus())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to establish gRPC connection after %d attempts: %w", attempt, err)
	}

	log.Info("gRPC connection established", logger.NewField("attempts", attempt))
	return nil
}

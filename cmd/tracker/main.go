package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpc_order_events "ordertracker/internal/gateway/grpc/order_events"
	http_orders "ordertracker/internal/gateway/http/orders"
	"ordertracker/internal/pkg/config"
	"ordertracker/internal/pkg/dotenv"
	"ordertracker/internal/pkg/grpcclient"
	"ordertracker/internal/pkg/orderevents"
	"ordertracker/internal/service/tracking"
	"ordertracker/pkg/logger"
	"ordertracker/pkg/logger/zap_adapter"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.LoadFile(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	}

	cfg, err := config.LoadTracker()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	orderID := flag.String("order", "", "Order id to track")
	flag.StringVar(&cfg.GRPCAddr, "grpc", cfg.GRPCAddr, "gRPC address of the event stream (host:port)")
	flag.StringVar(&cfg.HTTPBaseURL, "http", cfg.HTTPBaseURL, "Base URL of the HTTP API used for polling")
	flag.StringVar(&cfg.Token, "token", cfg.Token, "Bearer token")
	flag.DurationVar(&cfg.PollInterval, "interval", cfg.PollInterval, "Polling interval when the live stream is unavailable")
	flag.Parse()

	if *orderID == "" {
		mainLog.Error("order id is required, use -order")
		return
	}
	if err := cfg.Validate(); err != nil {
		mainLog.Error("invalid config", logger.NewField("error", err))
		return
	}

	if err := run(context.Background(), appLogger, cfg, *orderID); err != nil {
		mainLog.Error("tracking failed", logger.NewField("error", err))
		return
	}
}

func run(ctx context.Context, log logger.Logger, cfg *config.Tracker, orderID string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With(logger.NewField("order_id", orderID))

	var (
		source tracking.EventSource
		poller tracking.OrderPoller
	)

	if cfg.GRPCAddr != "" {
		conn, err := grpcclient.NewConnClient(ctx, log, cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("gRPC client: %w", err)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				runLog.Error("failed to close gRPC connection", logger.NewField("error", err))
			}
		}()
		source = grpc_order_events.New(orderevents.NewClient(conn), cfg.Token)
	}
	if cfg.HTTPBaseURL != "" {
		poller = http_orders.New(cfg.HTTPBaseURL, cfg.Token, nil)
	}

	watcher := tracking.New(log, source, poller, cfg.PollInterval)

	runLog.Info("tracking started",
		logger.NewField("live", source != nil),
		logger.NewField("polling", poller != nil),
	)

	err := watcher.Watch(ctx, orderID, func(u tracking.Update) {
		fields := []logger.Field{
			logger.NewField("status", u.Status.String()),
			logger.NewField("location", u.CurrentLocation),
			logger.NewField("source", u.Source),
		}
		if u.PreviousStatus != "" {
			fields = append(fields, logger.NewField("previous_status", u.PreviousStatus.String()))
		}
		if u.EstimatedCompletion != nil {
			fields = append(fields, logger.NewField("eta", u.EstimatedCompletion.Format(time.RFC3339)))
		}
		runLog.Info("order status", fields...)
	})
	if errors.Is(err, context.Canceled) {
		runLog.Info("tracking stopped")
		return nil
	}
	if err != nil {
		return err
	}

	runLog.Info("order finalized")
	return nil
}

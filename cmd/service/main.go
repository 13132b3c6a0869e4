package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	application "ordertracker/internal/app"
	grpc_order_events "ordertracker/internal/handlers/grpc/order_events"
	"ordertracker/internal/handlers/rest/customer_active_order_get"
	"ordertracker/internal/handlers/rest/customer_orders_get"
	"ordertracker/internal/handlers/rest/healthcheck_head"
	"ordertracker/internal/handlers/rest/order_cancel_patch"
	"ordertracker/internal/handlers/rest/order_events_get"
	"ordertracker/internal/handlers/rest/order_get"
	"ordertracker/internal/handlers/rest/order_history_get"
	"ordertracker/internal/handlers/rest/order_status_patch"
	"ordertracker/internal/handlers/rest/orders_events_get"
	"ordertracker/internal/handlers/rest/orders_get"
	"ordertracker/internal/handlers/rest/orders_post"
	"ordertracker/internal/handlers/rest/ping_get"
	"ordertracker/internal/pkg/config"
	"ordertracker/internal/pkg/dotenv"
	"ordertracker/internal/pkg/kafka"
	metrics_system "ordertracker/internal/pkg/metrics"
	"ordertracker/internal/pkg/middlewares/auth"
	"ordertracker/internal/pkg/middlewares/graceful_shutdown"
	"ordertracker/internal/pkg/middlewares/metrics"
	"ordertracker/internal/pkg/middlewares/rate_limiter"
	"ordertracker/internal/pkg/middlewares/timeout"
	"ordertracker/internal/pkg/migrations"
	"ordertracker/internal/pkg/orderevents"
	"ordertracker/internal/pkg/postgres"
	"ordertracker/internal/pkg/redis"
	"ordertracker/pkg/logger"
	"ordertracker/pkg/logger/zap_adapter"
	"ordertracker/pkg/token_bucket"
)

const (
	routeOrderEvents  = "order_events"
	routeOrdersEvents = "orders_events"
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

	mainLog.Info("starting ordertracker application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	if err := migrations.Up(ctx, log, postgres.DSN(&cfg.Database)); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis client", logger.NewField("error", err))
		}
	}()

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(log, &isShuttingDown, pool, businessApp, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second, // event stream снимает дедлайн сам
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc сервер событий
	healthServer := health.NewServer()
	grpcServer := initGRPCServer(log, businessApp, healthServer)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	grpcServerErr := make(chan error, 1)
	go func() {
		defer close(grpcServerErr)
		runLog.Info("grpc server starting",
			logger.NewField("port", cfg.Server.GRPCPort),
		)
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			grpcServerErr <- err
		}
	}()
	// grpc сервер событий

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(log, &isShuttingDown, pool),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcServerErr:
		return fmt.Errorf("grpc server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	healthServer.Shutdown()

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// Подписки живут до отключения клиента, закрываем их сами:
	// SSE получает событие closed, gRPC поток завершается с Unavailable.
	businessApp.Notifier.Close()

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	grpcStopped := make(chan struct{})
	go func() {
		defer close(grpcStopped)
		grpcServer.GracefulStop()
	}()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	select {
	case <-grpcStopped:
		runLog.Info("grpc server stopped")
	case <-shutdownCtx.Done():
		runLog.Warn("grpc graceful stop timeout, forcing close")
		grpcServer.Stop()
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	app *application.Application,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout, routeOrderEvents, routeOrdersEvents))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst))))
	router.Use(auth.Middleware(log, app.TokenParser))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, pool)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	router.Handle("/orders", orders_post.New(log, app.OrderService, app.Validator)).Methods(http.MethodPost)
	router.Handle("/orders/{customerId}", customer_orders_get.New(log, app.OrderService)).Methods(http.MethodGet)
	router.Handle("/orders/{customerId}/active", customer_active_order_get.New(log, app.OrderService)).Methods(http.MethodGet)
	router.Handle("/orders/{orderId}/status", order_status_patch.New(log, app.OrderService, app.Validator)).Methods(http.MethodPatch)
	router.Handle("/orders/{orderId}/cancel", order_cancel_patch.New(log, app.OrderService)).Methods(http.MethodPatch)

	router.Handle("/order/{orderId}", order_get.New(log, app.OrderService)).Methods(http.MethodGet)
	router.Handle("/order/{orderId}/history", order_history_get.New(log, app.HistoryService)).Methods(http.MethodGet)
	router.Handle("/order/{orderId}/events", order_events_get.New(log, app.OrderService, app.Notifier, &cfg.Notification)).
		Methods(http.MethodGet).
		Name(routeOrderEvents)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireAdmin(log))
	admin.Handle("/orders", orders_get.New(log, app.OrderService)).Methods(http.MethodGet)
	admin.Handle("/orders/events", orders_events_get.New(log, app.Notifier, &cfg.Notification)).
		Methods(http.MethodGet).
		Name(routeOrdersEvents)

	return router
}

func initGRPCServer(log logger.Logger, app *application.Application, healthServer *health.Server) *grpc.Server {
	server := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             20 * time.Second,
			PermitWithoutStream: true,
		}),
	)

	orderevents.RegisterServer(server, grpc_order_events.New(log, app.OrderService, app.Notifier, app.TokenParser))

	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(orderevents.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return server
}

func initPprofRouter(log logger.Logger, isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, pool)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

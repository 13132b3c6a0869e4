//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"ordertracker/internal/handlers/tasks/outbox_relay"
	"ordertracker/internal/pkg/config"
	"ordertracker/internal/pkg/factory/order_eta"
	"ordertracker/internal/pkg/factory/order_location"
	"ordertracker/internal/pkg/kafka"
	"ordertracker/internal/repository/cache"
	historyRepo "ordertracker/internal/repository/history"
	orderRepo "ordertracker/internal/repository/order"
	outboxRepo "ordertracker/internal/repository/outbox"
	historyService "ordertracker/internal/service/history"
	"ordertracker/internal/service/notification"
	orderService "ordertracker/internal/service/order"
	"ordertracker/pkg/logger"
	"ordertracker/pkg/tx"
)

var orderSet = wire.NewSet(
	provideOrderRepository,
	provideOutboxRepository,
	provideOrderViewCache,
	provideNotifier,
	provideOrderService,
	order_eta.New,
	order_location.New,

	wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
	wire.Bind(new(orderService.OutboxRepository), new(*outboxRepo.Repository)),
	wire.Bind(new(orderService.OrderCache), new(*cache.OrderView)),
	wire.Bind(new(orderService.Notifier), new(*notification.Notifier)),
	wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
	wire.Bind(new(orderService.ETAFactory), new(*order_eta.ETAFactory)),
	wire.Bind(new(orderService.LocationFactory), new(*order_location.LocationFactory)),
)

// InitializeApplication для HTTP и gRPC сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	producer *kafka.Producer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		orderSet,

		provideHistoryRepository,
		provideHistoryService,

		provideTokenParser,
		provideValidator,

		provideOutboxRelayInterval,
		provideOutboxBatchSize,
		provideOutboxRelayTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(OrderService), new(*orderService.Order)),
		wire.Bind(new(HistoryService), new(*historyService.History)),

		wire.Bind(new(historyService.Repository), new(*historyRepo.Repository)),
		wire.Bind(new(historyService.OrderReader), new(*orderService.Order)),

		wire.Bind(new(outbox_relay.OutboxRepository), new(*outboxRepo.Repository)),
		wire.Bind(new(outbox_relay.Producer), new(*kafka.Producer)),
		wire.Bind(new(outbox_relay.TxManager), new(*tx.Manager)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideQuerier,
		provideOrderRepository,
		provideHistoryRepository,
		provideRepositoryOrderReader,
		provideHistoryService,

		wire.Bind(new(historyService.Repository), new(*historyRepo.Repository)),
		wire.Bind(new(historyService.OrderReader), new(repositoryOrderReader)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

package app

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"ordertracker/internal/entities"
	"ordertracker/internal/handlers/tasks/outbox_relay"
	"ordertracker/internal/pkg/config"
	"ordertracker/internal/repository/cache"
	historyRepo "ordertracker/internal/repository/history"
	orderRepo "ordertracker/internal/repository/order"
	outboxRepo "ordertracker/internal/repository/outbox"
	historyService "ordertracker/internal/service/history"
	"ordertracker/internal/service/notification"
	orderService "ordertracker/internal/service/order"
	"ordertracker/pkg/background"
	"ordertracker/pkg/logger"
	"ordertracker/pkg/querier"
	"ordertracker/pkg/tx"
)

type (
	OutboxRelayInterval time.Duration
	OutboxBatchSize     int
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideOutboxRepository(querier *querier.Querier) *outboxRepo.Repository {
	return outboxRepo.New(querier)
}

func provideHistoryRepository(querier *querier.Querier) *historyRepo.Repository {
	return historyRepo.New(querier)
}

func provideOrderViewCache(client *goredis.Client, cfg *config.Config) *cache.OrderView {
	return cache.New(client, &cfg.Redis)
}

func provideNotifier(log logger.Logger, cfg *config.Config) *notification.Notifier {
	return notification.New(log, &cfg.Notification)
}

func provideOrderService(
	log logger.Logger,
	repository orderService.Repository,
	outboxRepository orderService.OutboxRepository,
	orderCache orderService.OrderCache,
	notifier orderService.Notifier,
	txManager orderService.TxManager,
	etaFactory orderService.ETAFactory,
	locationFactory orderService.LocationFactory,
	cfg *config.Config,
) *orderService.Order {
	return orderService.New(
		log,
		repository,
		outboxRepository,
		orderCache,
		notifier,
		txManager,
		etaFactory,
		locationFactory,
		&cfg.Kafka,
	)
}

func provideHistoryService(
	repository historyService.Repository,
	orderReader historyService.OrderReader,
) *historyService.History {
	return historyService.New(repository, orderReader)
}

// repositoryOrderReader читает заказ напрямую из БД. Воркеру истории не нужны
// кэш и рассылка, поэтому сервис заказов там не собирается.
type repositoryOrderReader struct {
	repository *orderRepo.Repository
}

func provideRepositoryOrderReader(repository *orderRepo.Repository) repositoryOrderReader {
	return repositoryOrderReader{repository: repository}
}

func (r repositoryOrderReader) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	return r.repository.GetByID(ctx, id)
}

func provideOutboxRelayInterval(cfg *config.Config) OutboxRelayInterval {
	return OutboxRelayInterval(cfg.Tasks.OutboxRelayInterval)
}

func provideOutboxBatchSize(cfg *config.Config) OutboxBatchSize {
	return OutboxBatchSize(cfg.Tasks.OutboxBatchSize)
}

func provideOutboxRelayTask(
	repository outbox_relay.OutboxRepository,
	producer outbox_relay.Producer,
	txManager outbox_relay.TxManager,
	interval OutboxRelayInterval,
	batchSize OutboxBatchSize,
) *outbox_relay.OutboxRelay {
	return outbox_relay.NewOutboxRelay(repository, producer, txManager, time.Duration(interval), int(batchSize))
}

func provideTaskList(outboxRelayTask *outbox_relay.OutboxRelay) []background.Task {
	return []background.Task{
		outboxRelayTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

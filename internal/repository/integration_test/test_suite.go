package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/stretchr/testify/require"
	"ordertracker/internal/pkg/config"
	"ordertracker/internal/pkg/migrations"
	"ordertracker/internal/pkg/postgres"
	"ordertracker/pkg/logger/zap_adapter"
	"ordertracker/pkg/querier"
	"ordertracker/pkg/tx"
)

var (
	querierInstance *querier.Querier
	txManager       *tx.Manager
	querierOnce     sync.Once
)

func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		// godotenv.Load(.env.test) не вызываем так как Makefile подгружает их
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}

		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter()
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		if err := migrations.Up(ctx, zapLogger, postgres.DSN(cfg)); err != nil {
			panic(err)
		}

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
		txManager = tx.New(connPool)
	})

	return querierInstance
}

// GetTxManager менеджер транзакций поверх того же пула, что и GetQuerier.
func GetTxManager() *tx.Manager {
	GetQuerier()
	return txManager
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE orders, order_outbox, order_status_history RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}

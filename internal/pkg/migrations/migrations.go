package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"ordertracker/pkg/logger"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// Up накатывает встроенные миграции. goose работает через database/sql,
// поэтому открываем отдельное соединение драйвером pgx/stdlib.
func Up(ctx context.Context, log logger.Logger, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migrations connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close migrations connection", logger.NewField("error", err))
		}
	}()

	sub, err := fs.Sub(files, dir)
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, sub)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, res := range results {
		log.Info("migration applied",
			logger.NewField("version", res.Source.Version),
			logger.NewField("duration", res.Duration),
		)
	}
	return nil
}

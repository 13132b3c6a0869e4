package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"ordertracker/internal/pkg/config"
	"ordertracker/pkg/logger"
	retrierconfig "ordertracker/pkg/retrier"
	"ordertracker/pkg/retrier/backoff_adapter"
)

const (
	dialTimeout  = 5 * time.Second
	readTimeout  = time.Second
	writeTimeout = time.Second

	initialInterval = time.Second
	maxInterval     = 10 * time.Second
	maxElapsedTime  = time.Minute
	randomization   = 0.5
	multiplier      = 2
)

func NewClient(ctx context.Context, log logger.Logger, cfg *config.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	redisLog := log.With(
		logger.NewField("addr", cfg.Addr),
		logger.NewField("db", cfg.DB),
	)

	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		OnRetry: func(err error, next time.Duration) {
			redisLog.Warn("redis is not ready, retrying",
				logger.NewField("error", err),
				logger.NewField("next", next),
			)
		},
	})

	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (failed to close: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	redisLog.Info("redis connection established")
	return client, nil
}

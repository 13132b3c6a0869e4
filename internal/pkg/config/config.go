package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	OverflowDropOldest = "drop_oldest"
	OverflowDisconnect = "disconnect"

	// MaxOrderViewTTL клиенты без live-соединения опрашивают раз в 30s,
	// кэш не должен жить дольше одного интервала опроса.
	MaxOrderViewTTL = 30 * time.Second
)

type (
	Tasks struct {
		OutboxRelayInterval time.Duration
		OutboxBatchSize     int
	}

	HTTPServer struct {
		Port             string
		GRPCPort         string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // rate limiter refill в секунду
		RateLimiterBurst int           // rate limiter capacity
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Redis struct {
		Addr         string
		Password     string
		DB           int
		OrderViewTTL time.Duration
	}

	Auth struct {
		JWTSecret string
	}

	Notification struct {
		SubscriberBuffer  int
		OverflowPolicy    string
		HeartbeatInterval time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderStatusChanged OrderStatusChanged
	}

	OrderStatusChanged struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks        Tasks
		Server       HTTPServer
		Database     Database
		Redis        Redis
		Auth         Auth
		Notification Notification
		Kafka        Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	outboxInterval, err := osGetEnvDuration("BACKGROUND_OUTBOX_RELAY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	outboxBatch, err := osGetInt("BACKGROUND_OUTBOX_BATCH_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderViewTTL, err := osGetEnvDuration("REDIS_ORDER_VIEW_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	subscriberBuffer, err := osGetInt("NOTIFICATION_SUBSCRIBER_BUFFER")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	heartbeat, err := osGetEnvDuration("NOTIFICATION_HEARTBEAT_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	overflow := os.Getenv("NOTIFICATION_OVERFLOW_POLICY")
	if overflow == "" {
		overflow = OverflowDropOldest
	}

	return &Config{
		Tasks: Tasks{
			OutboxRelayInterval: outboxInterval,
			OutboxBatchSize:     outboxBatch,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			GRPCPort:         os.Getenv("GRPC_PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Redis: Redis{
			Addr:         os.Getenv("REDIS_ADDR"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           redisDB,
			OrderViewTTL: orderViewTTL,
		},
		Auth: Auth{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Notification: Notification{
			SubscriberBuffer:  subscriberBuffer,
			OverflowPolicy:    overflow,
			HeartbeatInterval: heartbeat,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderStatusChanged: OrderStatusChanged{
					ProcessTimeout: orderStatusChangedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.GRPCPort == "" {
		return errors.New("GRPC_PORT is required")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if cfg.Redis.OrderViewTTL <= 0 || cfg.Redis.OrderViewTTL > MaxOrderViewTTL {
		return fmt.Errorf("REDIS_ORDER_VIEW_TTL must be in (0, %s]", MaxOrderViewTTL)
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if cfg.Notification.SubscriberBuffer <= 0 {
		return errors.New("NOTIFICATION_SUBSCRIBER_BUFFER is required")
	}
	if cfg.Notification.HeartbeatInterval == time.Duration(0) {
		return errors.New("NOTIFICATION_HEARTBEAT_INTERVAL is required")
	}
	switch cfg.Notification.OverflowPolicy {
	case OverflowDropOldest, OverflowDisconnect:
	default:
		return fmt.Errorf("NOTIFICATION_OVERFLOW_POLICY=%q is not supported", cfg.Notification.OverflowPolicy)
	}

	if cfg.Tasks.OutboxRelayInterval == time.Duration(0) {
		return errors.New("BACKGROUND_OUTBOX_RELAY_INTERVAL is required")
	}
	if cfg.Tasks.OutboxBatchSize <= 0 {
		return errors.New("BACKGROUND_OUTBOX_BATCH_SIZE is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.OrderStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

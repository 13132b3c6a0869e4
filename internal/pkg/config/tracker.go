package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultPollInterval интервал опроса, когда live-соединение недоступно.
const DefaultPollInterval = 30 * time.Second

type Tracker struct {
	GRPCAddr     string
	HTTPBaseURL  string
	Token        string
	PollInterval time.Duration
}

// LoadTracker конфиг CLI трекера. Флаги cmd/tracker перекрывают значения из окружения.
func LoadTracker() (*Tracker, error) {
	pollInterval, err := osGetEnvDuration("TRACKER_POLL_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}
	if pollInterval == 0 {
		pollInterval = DefaultPollInterval
	}

	return &Tracker{
		GRPCAddr:     os.Getenv("TRACKER_GRPC_ADDR"),
		HTTPBaseURL:  os.Getenv("TRACKER_HTTP_BASE_URL"),
		Token:        os.Getenv("TRACKER_TOKEN"),
		PollInterval: pollInterval,
	}, nil
}

func (t *Tracker) Validate() error {
	if t.GRPCAddr == "" && t.HTTPBaseURL == "" {
		return errors.New("at least one of TRACKER_GRPC_ADDR or TRACKER_HTTP_BASE_URL is required")
	}
	if t.PollInterval <= 0 {
		return errors.New("TRACKER_POLL_INTERVAL must be positive")
	}
	return nil
}

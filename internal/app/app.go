package app

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"ordertracker/internal/handlers/grpc/order_events"
	"ordertracker/internal/handlers/rest/customer_active_order_get"
	"ordertracker/internal/handlers/rest/customer_orders_get"
	"ordertracker/internal/handlers/rest/dto"
	"ordertracker/internal/handlers/rest/order_cancel_patch"
	"ordertracker/internal/handlers/rest/order_events_get"
	"ordertracker/internal/handlers/rest/order_get"
	"ordertracker/internal/handlers/rest/order_history_get"
	"ordertracker/internal/handlers/rest/order_status_patch"
	"ordertracker/internal/handlers/rest/orders_get"
	"ordertracker/internal/handlers/rest/orders_post"
	"ordertracker/internal/pkg/auth"
	"ordertracker/internal/pkg/config"
	historyService "ordertracker/internal/service/history"
	"ordertracker/internal/service/notification"
	"ordertracker/pkg/background"
)

type Application struct {
	OrderService      OrderService
	HistoryService    HistoryService
	Notifier          *notification.Notifier
	TokenParser       *auth.Parser
	Validator         *validatorv10.Validate
	BackgroundWorkers *background.Worker
}

type OrderService interface {
	orders_post.Service
	customer_orders_get.Service
	orders_get.Service
	customer_active_order_get.Service
	order_get.Service
	order_status_patch.Service
	order_cancel_patch.Service
	order_events_get.Service
	order_events.Service
}

type HistoryService interface {
	order_history_get.Service
}

type KafkaWorkerApp struct {
	HistoryService *historyService.History
}

func provideTokenParser(cfg *config.Config) *auth.Parser {
	return auth.NewParser(cfg.Auth.JWTSecret)
}

func provideValidator() *validatorv10.Validate {
	return dto.NewValidator()
}

package order_status_changed

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"ordertracker/internal/pkg/events"
	historyservice "ordertracker/internal/service/history"
	"ordertracker/pkg/logger"
)

type Handler struct {
	historyService           Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, historyService Service, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order.status.changed"))

	return &Handler{
		historyService:           historyService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// ребаланс или остановка consumer group
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение.
// Возвращает true, если сообщение не подтверждено и ConsumeClaim нужно прервать,
// тогда после переподключения оно будет прочитано снова.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	event, err := events.DecodeStatusChanged(message.Value)
	if err != nil {
		h.log.Error("received bad message",
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		)
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("event", event.EventID),
		logger.NewField("status", event.NewStatus.String()),
		logger.NewField("offset", message.Offset),
	)

	err = h.historyService.Record(ctx, event)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.Warn("context cancelled, message will be reprocessed", logger.NewField("error", err))
			return true

		case errors.Is(err, historyservice.ErrDuplicateEvent):
			msgLog.Info("event already recorded")

		case errors.Is(err, historyservice.ErrInvalidEvent):
			msgLog.Warn("invalid event skipped", logger.NewField("error", err))

		default:
			msgLog.Error("failed to record event, message will be reprocessed", logger.NewField("error", err))
			return true
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("status change recorded")
	sess.MarkMessage(message, "")
	return false
}

// Package tracking следит за статусом заказа со стороны клиента:
// live-поток, а при его отказе опрос раз в интервал.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordertracker/internal/entities"
	"ordertracker/pkg/logger"
)

const (
	SourceStream = "stream"
	SourcePoll   = "poll"
)

type Update struct {
	OrderID             string
	PreviousStatus      entities.OrderStatusType
	Status              entities.OrderStatusType
	CurrentLocation     string
	EstimatedCompletion *time.Time
	Source              string
}

type Watcher struct {
	log          serviceLogger
	source       EventSource
	poller       OrderPoller
	pollInterval time.Duration
}

// New source или poller может быть nil, но не оба.
func New(log serviceLogger, source EventSource, poller OrderPoller, pollInterval time.Duration) *Watcher {
	return &Watcher{
		log:          log.With(logger.NewField("component", "tracking")),
		source:       source,
		poller:       poller,
		pollInterval: pollInterval,
	}
}

// Watch сообщает в report каждое изменение статуса, пока заказ не станет терминальным
// или не отменится ctx. Повторы одного статуса не сообщаются.
func (w *Watcher) Watch(ctx context.Context, orderID string, report func(Update)) error {
	if w.source == nil && w.poller == nil {
		return errors.New("tracking: neither event source nor poller configured")
	}

	var last entities.OrderStatusType

	if w.poller != nil {
		current, err := w.poller.GetOrder(ctx, orderID)
		switch {
		case err == nil:
			last = current.Status
			report(updateFromOrder(current, "", SourcePoll))
			if last.IsTerminal() {
				return nil
			}
		case errors.Is(err, ErrOrderNotFound):
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			w.log.Warn("initial poll failed",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			)
		}
	}

	if w.source != nil {
		err := w.source.Stream(ctx, orderID, func(event entities.OrderStatusChanged) {
			if event.NewStatus == last {
				return
			}
			report(Update{
				OrderID:             event.OrderID,
				PreviousStatus:      event.PreviousStatus,
				Status:              event.NewStatus,
				CurrentLocation:     event.CurrentLocation,
				EstimatedCompletion: event.EstimatedCompletion,
				Source:              SourceStream,
			})
			last = event.NewStatus
		})
		switch {
		case err == nil && last == "" && w.poller != nil:
			// поток закрылся без единого кадра, а первый опрос не удался
			return w.reportOnce(ctx, orderID, report)
		case err == nil:
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, ErrOrderNotFound):
			return err
		case !errors.Is(err, ErrTransport):
			return fmt.Errorf("tracking stream: %w", err)
		case w.poller == nil:
			return err
		}

		w.log.Warn("live stream unavailable, falling back to polling",
			logger.NewField("order_id", orderID),
			logger.NewField("poll_interval", w.pollInterval.String()),
			logger.NewField("error", err),
		)
	}

	return w.poll(ctx, orderID, last, report)
}

func (w *Watcher) poll(ctx context.Context, orderID string, last entities.OrderStatusType, report func(Update)) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		current, err := w.poller.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Warn("poll failed",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			)
			continue
		}

		if current.Status != last {
			report(updateFromOrder(current, last, SourcePoll))
			last = current.Status
		}
		if last.IsTerminal() {
			return nil
		}
	}
}

func (w *Watcher) reportOnce(ctx context.Context, orderID string, report func(Update)) error {
	current, err := w.poller.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("tracking final poll: %w", err)
	}

	report(updateFromOrder(current, "", SourcePoll))
	return nil
}

func updateFromOrder(o *entities.Order, previous entities.OrderStatusType, source string) Update {
	return Update{
		OrderID:             o.ID,
		PreviousStatus:      previous,
		Status:              o.Status,
		CurrentLocation:     o.CurrentLocation,
		EstimatedCompletion: o.EstimatedCompletion,
		Source:              source,
	}
}

package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"ordertracker/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task периодическая фоновая задача.
type Task interface {
	// TTL интервал между запусками.
	TTL() time.Duration

	Do(context.Context) error

	// Info имя задачи для логов.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker крутит набор задач до отмены контекста.
type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New один раз синхронно выполняет все задачи (прогрев) и, если ни одна
// не упала, запускает их периодическое выполнение в фоне.
// Ошибка или паника на прогреве возвращается как ошибка New.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("initializing task", logger.NewField("task", task.Info()))
			return worker.runOnce(initCtx, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		ttl := task.TTL()
		if ttl <= 0 {
			log.Warn("invalid TTL, skipping periodic execution",
				logger.NewField("task", task.Info()),
				logger.NewField("ttl", ttl),
			)
			continue
		}

		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.loop(ctx, task, ttl)
		}()
	}

	return worker, nil
}

// Wait блокируется, пока не завершатся все фоновые циклы.
// Циклы выходят после отмены контекста, переданного в New.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context, task Task, ttl time.Duration) {
	w.log.Info("starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("ttl", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopping task", logger.NewField("task", task.Info()))
			return
		case <-ticker.C:
			if err := w.runOnce(ctx, task); err != nil {
				w.log.Error("background task failed",
					logger.NewField("task", task.Info()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

func (w *Worker) runOnce(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			w.log.Error("background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
			err = fmt.Errorf("task %s panic: %v", task.Info(), r)
		}
	}()

	return task.Do(ctx)
}

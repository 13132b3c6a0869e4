package broadcast

import "sync"

type deliverResult int

const (
	deliverOK deliverResult = iota
	deliverDropped
	deliverOverflow
	deliverClosed
)

type Subscription[T any] struct {
	hub   *Hub[T]
	topic string
	ch    chan T
	stop  func() bool

	mu     sync.Mutex
	closed bool
	err    error
}

// Events канал значений. Закрывается при завершении подписки.
func (s *Subscription[T]) Events() <-chan T {
	return s.ch
}

func (s *Subscription[T]) Topic() string {
	return s.topic
}

// Err причина завершения: nil, ошибка контекста, ErrSlowConsumer или ErrHubClosed.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) Close() {
	s.closeWith(nil)
}

func (s *Subscription[T]) setStop(stop func() bool) {
	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.stop = stop
	}
	s.mu.Unlock()

	if closed {
		stop()
	}
}

func (s *Subscription[T]) closeWith(err error) {
	if !s.finish(err) {
		return
	}
	s.hub.remove(s)
	s.hub.unsubscribed(s.topic, err)
}

func (s *Subscription[T]) finish(err error) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	s.err = err
	close(s.ch)
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	return true
}

func (s *Subscription[T]) deliver(v T, policy OverflowPolicy) deliverResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return deliverClosed
	}

	select {
	case s.ch <- v:
		return deliverOK
	default:
	}

	if policy == Disconnect {
		return deliverOverflow
	}

	// под s.mu писатель один, поэтому после чтения место в очереди есть
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
	return deliverDropped
}

// Package broadcast реализует in-process рассылку значений подписчикам топиков.
//
// Publish никогда не блокируется: у каждого подписчика своя ограниченная очередь,
// а при её переполнении срабатывает политика Overflow. Истории событий нет,
// подписчик получает только то, что опубликовано после Subscribe.
package broadcast

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrSlowConsumer = errors.New("subscriber is too slow, disconnected")
	ErrHubClosed    = errors.New("hub is closed")
)

type OverflowPolicy int

const (
	// DropOldest выбрасывает самое старое значение из очереди подписчика.
	DropOldest OverflowPolicy = iota
	// Disconnect закрывает подписку с ErrSlowConsumer.
	Disconnect
)

const defaultBuffer = 16

type Options struct {
	Buffer   int
	Overflow OverflowPolicy
	// OnDrop вызывается на каждое потерянное значение. Может быть nil.
	OnDrop func(topic string)
	// OnSubscribe и OnUnsubscribe вызываются ровно один раз на каждую
	// зарегистрированную подписку. Могут быть nil.
	OnSubscribe   func(topic string)
	OnUnsubscribe func(topic string, err error)
}

type Hub[T any] struct {
	opts Options

	mu     sync.RWMutex
	topics map[string]map[*Subscription[T]]struct{}
	closed bool
}

func NewHub[T any](opts Options) *Hub[T] {
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	return &Hub[T]{
		opts:   opts,
		topics: make(map[string]map[*Subscription[T]]struct{}),
	}
}

// Subscribe подписывает на topic. Подписка закрывается при отмене ctx,
// вызове Close, закрытии хаба или (для Disconnect) при переполнении.
func (h *Hub[T]) Subscribe(ctx context.Context, topic string) *Subscription[T] {
	sub := &Subscription[T]{
		hub:   h,
		topic: topic,
		ch:    make(chan T, h.opts.Buffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.finish(ErrHubClosed)
		return sub
	}
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription[T]]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	if h.opts.OnSubscribe != nil {
		h.opts.OnSubscribe(topic)
	}

	stop := context.AfterFunc(ctx, func() {
		sub.closeWith(ctx.Err())
	})
	sub.setStop(stop)

	return sub
}

// Publish раздаёт v подписчикам topic и возвращает число подписок,
// в чьи очереди значение попало.
func (h *Hub[T]) Publish(topic string, v T) int {
	var (
		delivered int
		slow      []*Subscription[T]
	)

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return 0
	}
	for sub := range h.topics[topic] {
		switch sub.deliver(v, h.opts.Overflow) {
		case deliverOK:
			delivered++
		case deliverDropped:
			delivered++
			h.dropped(topic)
		case deliverOverflow:
			h.dropped(topic)
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		sub.closeWith(ErrSlowConsumer)
	}

	return delivered
}

// Subscribers возвращает число активных подписок на topic.
func (h *Hub[T]) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close закрывает все подписки с ErrHubClosed. Повторный вызов ничего не делает.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	topics := h.topics
	h.topics = make(map[string]map[*Subscription[T]]struct{})
	h.mu.Unlock()

	for _, subs := range topics {
		for sub := range subs {
			sub.closeWith(ErrHubClosed)
		}
	}
}

func (h *Hub[T]) remove(sub *Subscription[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
}

func (h *Hub[T]) unsubscribed(topic string, err error) {
	if h.opts.OnUnsubscribe != nil {
		h.opts.OnUnsubscribe(topic, err)
	}
}

func (h *Hub[T]) dropped(topic string) {
	if h.opts.OnDrop != nil {
		h.opts.OnDrop(topic)
	}
}

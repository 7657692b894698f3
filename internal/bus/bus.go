// Package bus is a synchronous typed event bus. Publish runs every subscriber
// on the caller's goroutine before returning.
package bus

import (
	"fmt"
	"log/slog"
	"sync"
)

type subscriber struct {
	id   int
	name string
	fn   func(event any)
}

type Bus struct {
	mu     sync.RWMutex
	lastID int
	subs   map[string][]subscriber
}

func New() *Bus {
	return &Bus{
		subs: make(map[string][]subscriber),
	}
}

func topic[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}

// Subscribe registers fn for events of type T. The returned function removes
// the subscription.
func Subscribe[T any](b *Bus, name string, fn func(event T) error) func() {
	if b == nil {
		return func() {}
	}

	key := topic[T]()

	b.mu.Lock()
	b.lastID++
	id := b.lastID
	b.subs[key] = append(b.subs[key], subscriber{
		id:   id,
		name: name,
		fn: func(event any) {
			if err := fn(event.(T)); err != nil {
				slog.Error("Failed to handle event", "package", "bus", "name", name, "topic", key, "error", err)
			}
		},
	})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[key]
		for i := range subs {
			if subs[i].id == id {
				b.subs[key] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers event to the subscribers of its type. A nil Bus drops it.
func Publish[T any](b *Bus, event T) {
	if b == nil {
		return
	}

	b.mu.RLock()
	subs := b.subs[topic[T]()]
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(event)
	}
}

// Package event is a small typed pub/sub bus. Progression and session
// events flow through it to the websocket feed and to profile-reload
// hooks, keeping publishers free of transport concerns.
package event

import (
	"reflect"
	"sync"
)

type subscription struct {
	id int64
	fn any
}

// Bus delivers events synchronously, in the publisher's goroutine, to all
// handlers registered for the event's type. Handlers must be quick and
// must not publish re-entrantly to the same type.
type Bus struct {
	mu       sync.RWMutex
	nextID   int64
	handlers map[reflect.Type][]subscription
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]subscription)}
}

// Subscribe registers a typed handler for events of type T and returns a
// cancel function that removes it. Cancel is idempotent.
func Subscribe[T any](b *Bus, fn func(T)) (cancel func()) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[t]
		for i, s := range subs {
			if s.id == id {
				b.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every handler subscribed to T.
func Publish[T any](b *Bus, ev T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.RLock()
	subs := b.handlers[t]
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn.(func(T))(ev)
	}
}

// Package events carries cross-cutting session signals between the HTTP
// layer and the session controller.
package events

import "sync"

type Kind string

const (
	// Unauthenticated is published when the backend rejects a request with 401.
	Unauthenticated Kind = "auth:unauthorized"
	// LoggedOut is published after an explicit logout.
	LoggedOut Kind = "auth:logout"
)

type subscription struct {
	id int
	fn func()
}

// Bus is a synchronous publish/subscribe hub. The zero value is not usable; call New.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Kind][]subscription
}

func New() *Bus {
	return &Bus{subs: map[Kind][]subscription{}}
}

// Subscribe registers fn for kind and returns a function that removes it.
func (b *Bus) Subscribe(kind Kind, fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		current := b.subs[kind]
		for i, sub := range current {
			if sub.id == id {
				b.subs[kind] = append(current[:i:i], current[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every handler for kind in subscription order.
func (b *Bus) Publish(kind Kind) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]func(), 0, len(b.subs[kind]))
	for _, sub := range b.subs[kind] {
		handlers = append(handlers, sub.fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}

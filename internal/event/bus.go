// Package event dispatches form notifications to subscribed handlers.
package event

import (
	"context"
	"sync"
)

// Kind names a notification.
type Kind string

const (
	// FieldChanged is published after any of the required fields changes.
	FieldChanged Kind = "field_changed"

	// SubmitRequested is published when the user asks to submit the form.
	SubmitRequested Kind = "submit_requested"

	// ResetRequested is published when the user asks to start over.
	ResetRequested Kind = "reset_requested"
)

// Event is one notification. Field is set for FieldChanged.
type Event struct {
	Kind  Kind
	Field string
}

// Handler reacts to an event.
type Handler func(ctx context.Context, e Event) error

// Bus delivers events synchronously to handlers in subscription order.
// A handler subscribed earlier always completes before a later one runs, so the
// progress tracker must subscribe to FieldChanged before anything that reads the
// submission gate.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for events of kind k.
func (b *Bus) Subscribe(k Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[k] = append(b.handlers[k], h)
}

// Publish runs every handler for e.Kind in order and stops at the first error.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[e.Kind]))
	copy(hs, b.handlers[e.Kind])
	b.mu.RUnlock()

	for _, h := range hs {
		if err := h(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

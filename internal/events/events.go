// Package events publishes order lifecycle notifications for live ticket
// screens. Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type names an event. It is also the last token of the NATS subject.
type Type string

const (
	OrderCreated   Type = "order_created"
	OrderPaid      Type = "order_paid"
	OrderCancelled Type = "order_cancelled"
	MenuUpdated    Type = "menu_updated"
)

// Event is the JSON payload sent to subscribers.
type Event struct {
	ID            uuid.UUID        `json:"id"`
	Type          Type             `json:"type"`
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	TableNumber   string           `json:"table_number,omitempty"`
	Status        string           `json:"status,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	MenuItemID    int64            `json:"menu_item_id,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

// New stamps an event with a fresh id and the current time.
func New(t Type) Event {
	return Event{ID: uuid.New(), Type: t, OccurredAt: time.Now().UTC()}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoopPublisher drops every event. Used when NATS is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of what has been published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types lists the published event types in order.
func (r *Recorder) Types() []Type {
	var out []Type
	for _, e := range r.Events() {
		out = append(out, e.Type)
	}
	return out
}

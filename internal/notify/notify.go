package notify

import "context"

// Event is the payload pushed to a broker's notification channel when one of
// their records changes.
type Event struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Action string `json:"action"`
	Title  string `json:"title,omitempty"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Notifier delivers events to a broker's channel on a best-effort basis.
// Delivery failures must never fail the request that triggered them.
type Notifier interface {
	Notify(ctx context.Context, brokerID string, ev Event)
	Close() error
}

// Noop discards every event. Used when Redis is not configured.
type Noop struct{}

func (Noop) Notify(context.Context, string, Event) {}

func (Noop) Close() error { return nil }

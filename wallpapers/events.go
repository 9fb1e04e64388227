package wallpapers

import "context"

// EventType names the kind of mutation that changed the collection.
type EventType string

const (
	EventCreate EventType = "create"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event describes one successful mutation. At is in milliseconds since the epoch.
type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
	At   int64     `json:"at"`
}

// Observer is notified after a mutation has been persisted.
type Observer interface {
	WallpaperChanged(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) WallpaperChanged(ctx context.Context, ev Event) { f(ctx, ev) }

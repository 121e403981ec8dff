package port

import "context"

// EventCache remembers provider webhook event ids that were already applied.
type EventCache interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

package audit

import "context"

// Store persists audit events. Implementations must be safe for concurrent
// use; the publisher may append from multiple goroutines.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

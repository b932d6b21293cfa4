package activity

import "context"

// Store provides persistence operations over the append-only activity log.
type Store interface {
	Append(ctx context.Context, rec *Record) error
	List(ctx context.Context, opts QueryOptions) ([]Record, error)
}

// Broadcaster pushes freshly logged records to live subscribers. Delivery is
// best effort; a broadcast must never block or fail the write path.
type Broadcaster interface {
	Broadcast(rec Record)
}

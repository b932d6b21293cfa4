// Package repository collects the persistence interfaces implemented by the
// storage backends and mocked in service tests.
package repository

import (
	"context"

	"github.com/openclaw/clawdock/internal/domain/activity"
)

// ActivityStore manages activity record persistence.
type ActivityStore interface {
	Append(ctx context.Context, rec *activity.Record) error
	List(ctx context.Context, opts activity.QueryOptions) ([]activity.Record, error)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/openclaw/clawdock/internal/domain/activity"
)

// ActivityStore is a mock for repository.ActivityStore.
type ActivityStore struct {
	mock.Mock
}

func (m *ActivityStore) Append(ctx context.Context, rec *activity.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *ActivityStore) List(ctx context.Context, opts activity.QueryOptions) ([]activity.Record, error) {
	args := m.Called(ctx, opts)
	if records, ok := args.Get(0).([]activity.Record); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

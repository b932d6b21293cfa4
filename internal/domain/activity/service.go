package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

const (
	// DefaultStatsDays is the default trailing window for Stats.
	DefaultStatsDays = 7

	// statsFetchLimit bounds how many recent records Stats aggregates over.
	// Older activity beyond this count is ignored; a deliberate bound given
	// the full-rescan store.
	statsFetchLimit = 10000
)

// Service handles activity log operations.
type Service struct {
	store   Store
	stream  Broadcaster
	enabled bool
	logger  *slog.Logger
}

// NewService creates a new activity service. When enabled is false, Log is a
// no-op; reads still operate over whatever partitions already exist.
func NewService(store Store, enabled bool, logger *slog.Logger) *Service {
	return &Service{store: store, enabled: enabled, logger: logger}
}

// AttachStream registers a broadcaster that receives each logged record.
func (s *Service) AttachStream(stream Broadcaster) {
	s.stream = stream
}

// Enabled reports whether logging is active.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Log records an activity for a user. The record timestamp is assigned at
// write time. Returns the zero Record without touching disk when the service
// is disabled.
func (s *Service) Log(ctx context.Context, user, activityType string, details map[string]any, source string) (Record, error) {
	if !s.enabled {
		return Record{}, nil
	}
	if source == "" {
		source = SourceSystem
	}
	if details == nil {
		details = map[string]any{}
	}

	rec := Record{
		Timestamp:   Now(),
		User:        user,
		Activity:    activityType,
		Description: Describe(activityType),
		Source:      source,
		Details:     details,
	}
	if err := s.store.Append(ctx, &rec); err != nil {
		return Record{}, fmt.Errorf("logging activity: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("activity logged", "user", user, "activity", activityType, "source", source)
	}

	if s.stream != nil {
		s.stream.Broadcast(rec)
	}
	return rec, nil
}

// Query lists records matching the given filters, newest first.
func (s *Service) Query(ctx context.Context, opts QueryOptions) ([]Record, error) {
	return s.store.List(ctx, opts)
}

// Stats aggregates activity over the trailing window of the given number of
// days, measured from the current wall-clock instant. At most the
// statsFetchLimit newest records are considered. A record whose timestamp
// cannot be parsed fails the whole computation; callers must treat stats as
// all-or-nothing.
func (s *Service) Stats(ctx context.Context, days int) (Stats, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}

	records, err := s.store.List(ctx, QueryOptions{Limit: statsFetchLimit})
	if err != nil {
		return Stats{}, fmt.Errorf("fetching records for stats: %w", err)
	}

	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	typeCounts := make(map[string]int)
	userCounts := make(map[string]int)
	total := 0

	for _, rec := range records {
		ts, err := ParseTimestamp(rec.Timestamp)
		if err != nil {
			return Stats{}, fmt.Errorf("parsing timestamp %q: %w", rec.Timestamp, err)
		}
		if !ts.After(cutoff) {
			continue
		}
		total++
		typeCounts[rec.Activity]++
		userCounts[rec.User]++
	}

	return Stats{
		TotalActivities: total,
		UniqueUsers:     len(userCounts),
		ActivityTypes:   typeCounts,
		TopUsers:        topUsers(userCounts, 10),
		PeriodDays:      days,
	}, nil
}

// topUsers keeps the n most frequent users. Ties break by username ascending
// so the selection is deterministic.
func topUsers(counts map[string]int, n int) map[string]int {
	users := make([]string, 0, len(counts))
	for user := range counts {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if counts[users[i]] != counts[users[j]] {
			return counts[users[i]] > counts[users[j]]
		}
		return users[i] < users[j]
	})

	if len(users) > n {
		users = users[:n]
	}
	top := make(map[string]int, len(users))
	for _, user := range users {
		top[user] = counts[user]
	}
	return top
}

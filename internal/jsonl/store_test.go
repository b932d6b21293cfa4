package jsonl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawdock/internal/domain/activity"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "activity"))
}

func appendRecord(t *testing.T, s *Store, ts, user, activityType string) {
	t.Helper()
	rec := &activity.Record{
		Timestamp:   ts,
		User:        user,
		Activity:    activityType,
		Description: activity.Describe(activityType),
		Source:      "web",
		Details:     map[string]any{},
	}
	require.NoError(t, s.Append(context.Background(), rec))
}

func ts(i int) string {
	return fmt.Sprintf("2026-08-28T10:00:0%d.000000Z", i)
}

func TestStore_AppendThenRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &activity.Record{
		Timestamp:   activity.Now(),
		User:        "alice",
		Activity:    "login",
		Description: "User logged in",
		Source:      "web",
		Details:     map[string]any{"ip": "10.0.0.1"},
	}
	require.NoError(t, s.Append(ctx, rec))

	records, err := s.List(ctx, activity.QueryOptions{User: "alice"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "alice", records[0].User)
	require.Equal(t, "User logged in", records[0].Description)
	require.Equal(t, "10.0.0.1", records[0].Details["ip"])
}

func TestStore_AppendWritesOneLinePerRecord(t *testing.T) {
	s := newTestStore(t)
	appendRecord(t, s, ts(1), "alice", "login")
	appendRecord(t, s, ts(2), "bob", "save")

	path := s.PartitionPath(time.Now())
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var rec activity.Record
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
	}
}

func TestStore_PartitionNaming(t *testing.T) {
	s := New("/data/.openclaw/activity")
	at := time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)
	require.Equal(t, "/data/.openclaw/activity/activities_2026-08-28.jsonl", s.PartitionPath(at))
}

func TestStore_ListMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))
	records, err := s.List(context.Background(), activity.QueryOptions{})
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStore_FilterExactness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	appendRecord(t, s, ts(1), "alice", "login")
	appendRecord(t, s, ts(2), "bob", "login")
	appendRecord(t, s, ts(3), "bob", "save")

	records, err := s.List(ctx, activity.QueryOptions{User: "bob"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		require.Equal(t, "bob", rec.User)
	}

	records, err = s.List(ctx, activity.QueryOptions{ActivityType: "logout"})
	require.NoError(t, err)
	require.Empty(t, records)

	// Case sensitive.
	records, err = s.List(ctx, activity.QueryOptions{User: "Bob"})
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStore_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		appendRecord(t, s, ts(i), "alice", "info")
	}

	records, err := s.List(ctx, activity.QueryOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, ts(4), records[0].Timestamp)
	require.Equal(t, ts(3), records[1].Timestamp)
}

func TestStore_PaginationBoundaries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		appendRecord(t, s, ts(i), "alice", "info")
	}

	records, err := s.List(ctx, activity.QueryOptions{Offset: 10})
	require.NoError(t, err)
	require.Empty(t, records)

	// Negative values clamp to zero; a negative limit yields no records.
	records, err = s.List(ctx, activity.QueryOptions{Limit: -1})
	require.NoError(t, err)
	require.Empty(t, records)

	records, err = s.List(ctx, activity.QueryOptions{Offset: -4})
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestStore_TimeRangeBoundaries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		appendRecord(t, s, ts(i), "alice", "info")
	}

	records, err := s.List(ctx, activity.QueryOptions{StartTime: ts(3)})
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, ts(5), records[0].Timestamp)
	require.Equal(t, ts(3), records[2].Timestamp)

	records, err = s.List(ctx, activity.QueryOptions{EndTime: ts(3)})
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, ts(3), records[0].Timestamp)
	require.Equal(t, ts(1), records[2].Timestamp)
}

func TestStore_CorruptLineTolerance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	appendRecord(t, s, ts(1), "alice", "login")

	path := s.PartitionPath(time.Now())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json\n\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	appendRecord(t, s, ts(2), "bob", "save")

	records, err := s.List(ctx, activity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "bob", records[0].User)
	require.Equal(t, "alice", records[1].User)
}

func TestStore_OversizedRecordDoesNotBreakReads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	big := &activity.Record{
		Timestamp: ts(1),
		User:      "alice",
		Activity:  "save",
		Source:    "web",
		Details:   map[string]any{"payload": strings.Repeat("x", 2<<20)},
	}
	require.NoError(t, s.Append(ctx, big))
	appendRecord(t, s, ts(2), "bob", "login")

	records, err := s.List(ctx, activity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "bob", records[0].User)
	require.Equal(t, "alice", records[1].User)
	require.Len(t, records[1].Details["payload"], 2<<20)
}

func TestStore_CrossPartitionMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Yesterday's partition written directly; today's through Append.
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	old := activity.Record{Timestamp: "2026-08-27T23:00:00.000000Z", User: "alice", Activity: "logout", Details: map[string]any{}}
	data, err := json.Marshal(old)
	require.NoError(t, err)
	oldPath := filepath.Join(s.Dir(), "activities_2026-08-27.jsonl")
	require.NoError(t, os.WriteFile(oldPath, append(data, '\n'), 0o644))

	appendRecord(t, s, ts(1), "alice", "login")

	records, err := s.List(ctx, activity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "login", records[0].Activity)
	require.Equal(t, "logout", records[1].Activity)
}

func TestStore_MissingTimestampSortsLast(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	path := filepath.Join(s.Dir(), "activities_2026-08-27.jsonl")
	lines := `{"user":"ghost","activity":"info"}` + "\n" +
		`{"timestamp":"2026-08-27T10:00:00.000000Z","user":"alice","activity":"info"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))

	records, err := s.List(ctx, activity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "alice", records[0].User)
	require.Equal(t, "ghost", records[1].User)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const writers = 8
	const perWriter = 25

	errs := make(chan error, writers*perWriter)
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				rec := &activity.Record{
					Timestamp: activity.Now(),
					User:      fmt.Sprintf("writer-%d", w),
					Activity:  "info",
					Details:   map[string]any{"seq": i},
				}
				if err := s.Append(ctx, rec); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	records, err := s.List(ctx, activity.QueryOptions{Limit: writers * perWriter})
	require.NoError(t, err)
	require.Len(t, records, writers*perWriter)
}

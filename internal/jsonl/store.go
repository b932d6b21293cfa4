// Package jsonl persists activity records as newline-delimited JSON partition
// files, one per UTC calendar day.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/openclaw/clawdock/internal/domain/activity"
)

const (
	partitionPrefix = "activities_"
	partitionSuffix = ".jsonl"
	partitionDate   = "2006-01-02"
)

// Store implements activity.Store over date-partitioned NDJSON files. It
// holds no in-memory record state; every read re-scans the partitions. Append
// safety relies on the filesystem's append-mode write guarantee, so no
// in-process locking is imposed.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created lazily on the
// first append; reads over a missing directory return no records.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the partition directory path.
func (s *Store) Dir() string {
	return s.dir
}

// PartitionPath returns the partition file path for the given instant's UTC
// calendar day.
func (s *Store) PartitionPath(t time.Time) string {
	name := partitionPrefix + t.UTC().Format(partitionDate) + partitionSuffix
	return filepath.Join(s.dir, name)
}

// Append writes the record as a single JSON line to the current day's
// partition, creating the directory and file if absent. The line goes out in
// one write call on an O_APPEND descriptor, so concurrent appenders do not
// interleave partial lines.
func (s *Store) Append(ctx context.Context, rec *activity.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(s.PartitionPath(time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening partition: %w", err)
	}
	_, werr := f.Write(append(data, '\n'))
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("appending record: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("closing partition: %w", cerr)
	}
	return nil
}

// List scans all partitions most-recent-date first, applies the filters,
// globally re-sorts the surviving records newest first and paginates. Blank
// lines and lines that fail to parse as JSON are skipped; corrupt data never
// aborts a read.
func (s *Store) List(ctx context.Context, opts activity.QueryOptions) ([]activity.Record, error) {
	opts = opts.Normalized()

	paths, err := s.partitions()
	if err != nil {
		return nil, err
	}

	var records []activity.Record
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := scanPartition(path, opts, &records); err != nil {
			return nil, err
		}
	}

	// Global re-sort: partition files are not necessarily in timestamp order
	// across days if the clock moved. Records without a timestamp sort last.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})

	if opts.Offset >= len(records) {
		return []activity.Record{}, nil
	}
	records = records[opts.Offset:]
	if len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	return records, nil
}

// partitions returns partition file paths sorted by filename descending,
// which for date-named files is most recent first. A missing directory means
// no partitions.
func (s *Store) partitions() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading log directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, partitionPrefix) || !strings.HasSuffix(name, partitionSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, name))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

func scanPartition(path string, opts activity.QueryOptions, records *[]activity.Record) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening partition: %w", err)
	}
	defer f.Close()

	// A buffered reader rather than a scanner: record lines have no length
	// bound since details carry arbitrary JSON.
	reader := bufio.NewReader(f)
	for {
		line, readErr := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			var rec activity.Record
			if err := json.Unmarshal([]byte(trimmed), &rec); err == nil && matches(rec, opts) {
				*records = append(*records, rec)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("scanning partition %s: %w", filepath.Base(path), readErr)
		}
	}
}

func matches(rec activity.Record, opts activity.QueryOptions) bool {
	if opts.User != "" && rec.User != opts.User {
		return false
	}
	if opts.ActivityType != "" && rec.Activity != opts.ActivityType {
		return false
	}
	if opts.StartTime != "" && rec.Timestamp < opts.StartTime {
		return false
	}
	if opts.EndTime != "" && rec.Timestamp > opts.EndTime {
		return false
	}
	return true
}

// Package history persists generated summaries: a capped, newest-first
// collection plus a separate "latest" slot used by the result screen.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"vidsum/pkg/notify"
	"vidsum/pkg/storage"
	"vidsum/pkg/summary"
)

// MaxEntries caps the collection; older records are dropped on insert.
const MaxEntries = 50

const (
	collectionKey = "summaryHistory"
	latestKey     = "latestSummary"
)

// Store is the record store used by the screens and the CLI. Implementations
// never return storage errors: reads degrade to empty results and writes
// report success as a bool.
type Store interface {
	LoadAll(ctx context.Context) []summary.Record
	// LoadLatest returns (nil, true) when the slot is empty and (nil, false)
	// when it could not be read.
	LoadLatest(ctx context.Context) (*summary.Record, bool)
	SaveLatest(ctx context.Context, r summary.Record) bool
	Append(ctx context.Context, r summary.Record) bool
	// Remove deletes the record at index of ListSortedByTimeDescending. An
	// out-of-range index is a no-op.
	Remove(ctx context.Context, index int) bool
	// Clear empties the collection. The latest slot is left alone.
	Clear(ctx context.Context) bool
	ListSortedByTimeDescending(ctx context.Context) []summary.Record
}

type errCorrupt struct {
	key string
	err error
}

func (e *errCorrupt) Error() string {
	return fmt.Sprintf("corrupt value under %s: %v", e.key, e.err)
}

func (e *errCorrupt) Unwrap() error {
	return e.err
}

// LocalStore implements Store on a key/value backend.
type LocalStore struct {
	mu       sync.Mutex
	backend  storage.Backend
	prefix   string
	logger   *zap.Logger
	notifier notify.Notifier
}

func NewLocalStore(backend storage.Backend, prefix string, logger *zap.Logger, notifier notify.Notifier) *LocalStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Discard
	}
	return &LocalStore{
		backend:  backend,
		prefix:   prefix,
		logger:   logger,
		notifier: notifier,
	}
}

func (s *LocalStore) key(name string) string {
	return storage.Key(s.prefix, name)
}

// readCollection returns the stored collection. A missing key is an empty
// collection; undecodable data, in the value or in the backend itself, is
// reported as *errCorrupt.
func (s *LocalStore) readCollection(ctx context.Context) ([]summary.Record, error) {
	key := s.key(collectionKey)
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return []summary.Record{}, nil
	}
	if errors.Is(err, storage.ErrCorrupt) {
		return nil, &errCorrupt{key: key, err: err}
	}
	if err != nil {
		return nil, err
	}

	var records []summary.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, &errCorrupt{key: key, err: err}
	}
	if records == nil {
		records = []summary.Record{}
	}
	return records, nil
}

func (s *LocalStore) writeJSON(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return s.backend.Set(ctx, s.key(name), string(data))
}

func (s *LocalStore) LoadAll(ctx context.Context) []summary.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAllLocked(ctx)
}

func (s *LocalStore) loadAllLocked(ctx context.Context) []summary.Record {
	records, err := s.readCollection(ctx)
	if err != nil {
		s.logger.Warn("failed to load summary history", zap.Error(err))
		s.notifier.Notify(notify.LevelWarning, "Failed to load summary history")
		return []summary.Record{}
	}
	return records
}

func (s *LocalStore) LoadLatest(ctx context.Context) (*summary.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.backend.Get(ctx, s.key(latestKey))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, true
	}
	if err != nil {
		s.logger.Warn("failed to read latest summary", zap.Error(err))
		s.notifier.Notify(notify.LevelWarning, "Failed to load summary data")
		return nil, false
	}

	var r summary.Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		s.logger.Warn("failed to decode latest summary", zap.Error(err))
		s.notifier.Notify(notify.LevelWarning, "Failed to load summary data")
		return nil, false
	}
	return &r, true
}

func (s *LocalStore) SaveLatest(ctx context.Context, r summary.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeJSON(ctx, latestKey, r); err != nil {
		s.logger.Error("failed to save latest summary", zap.Error(err))
		return false
	}
	return true
}

func (s *LocalStore) Append(ctx context.Context, r summary.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readCollection(ctx)
	var corrupt *errCorrupt
	switch {
	case errors.As(err, &corrupt):
		// Unreadable history cannot be merged; start over with this record.
		s.logger.Warn("discarding corrupt summary history", zap.Error(err))
		records = []summary.Record{}
	case err != nil:
		s.logger.Error("failed to save to history", zap.Error(err))
		return false
	}

	records = slices.Insert(records, 0, r)
	if len(records) > MaxEntries {
		records = records[:MaxEntries]
	}

	if err := s.writeJSON(ctx, collectionKey, records); err != nil {
		s.logger.Error("failed to save to history", zap.Error(err), zap.Int("entries", len(records)))
		return false
	}
	return true
}

func (s *LocalStore) Remove(ctx context.Context, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readCollection(ctx)
	if err != nil {
		s.logger.Error("failed to delete summary", zap.Int("index", index), zap.Error(err))
		return false
	}

	sorted := sortByTimeDescending(records)
	if index < 0 || index >= len(sorted) {
		return true
	}

	updated := slices.Delete(sorted, index, index+1)
	if err := s.writeJSON(ctx, collectionKey, updated); err != nil {
		s.logger.Error("failed to delete summary", zap.Int("index", index), zap.Error(err))
		return false
	}
	return true
}

func (s *LocalStore) Clear(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, s.key(collectionKey)); err != nil {
		s.logger.Error("failed to clear summary history", zap.Error(err))
		return false
	}
	return true
}

func (s *LocalStore) ListSortedByTimeDescending(ctx context.Context) []summary.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByTimeDescending(s.loadAllLocked(ctx))
}

// sortByTimeDescending returns a newest-first copy. Equal timestamps keep
// their stored order.
func sortByTimeDescending(records []summary.Record) []summary.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b summary.Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// ABOUTME: Embedded badger KV backend for run and mood storage.
// ABOUTME: Records are JSON under typed key prefixes; IDs come from badger sequences.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"github.com/harperreed/moodrun/internal/models"
)

const (
	RunPrefix  = "run:"
	MoodPrefix = "mood:"

	runSeqKey  = "seq:run"
	moodSeqKey = "seq:mood"
	seqLease   = 100
)

// BadgerStore stores runs and moods in an embedded badger database.
type BadgerStore struct {
	db      *badger.DB
	runSeq  *badger.Sequence
	moodSeq *badger.Sequence
	mu      sync.Mutex
}

// Compile-time check that BadgerStore implements Repository.
var _ Repository = (*BadgerStore)(nil)

// OpenBadger opens or creates a badger database in dir.
// An empty dir opens an in-memory database.
func OpenBadger(dir string, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	runSeq, err := db.GetSequence([]byte(runSeqKey), seqLease)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run sequence: %w", err)
	}
	moodSeq, err := db.GetSequence([]byte(moodSeqKey), seqLease)
	if err != nil {
		_ = runSeq.Release()
		_ = db.Close()
		return nil, fmt.Errorf("mood sequence: %w", err)
	}

	return &BadgerStore{db: db, runSeq: runSeq, moodSeq: moodSeq}, nil
}

// Ping reports whether the database is still open.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return ctx.Err()
}

// Close releases the ID sequences and closes the database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, seq := range []*badger.Sequence{s.runSeq, s.moodSeq} {
		if err := seq.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// CreateRun stores a new run and sets its ID.
func (s *BadgerStore) CreateRun(ctx context.Context, r *models.Run) error {
	id, err := s.nextID(s.runSeq)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	r.ID = id
	if err := s.put(RunPrefix, id, r); err != nil {
		r.ID = 0
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *BadgerStore) GetRun(ctx context.Context, id int64) (*models.Run, error) {
	data, err := s.get(RunPrefix, id)
	if err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, err)
	}
	return unmarshalJSON[models.Run](data)
}

// ListRuns retrieves all runs in insertion order.
func (s *BadgerStore) ListRuns(ctx context.Context) ([]*models.Run, error) {
	all, err := s.listByPrefix(RunPrefix)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	runs := make([]*models.Run, 0, len(all))
	for _, data := range all {
		r, err := unmarshalJSON[models.Run](data)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// DeleteRun removes a run by ID.
func (s *BadgerStore) DeleteRun(ctx context.Context, id int64) error {
	if err := s.delete(RunPrefix, id); err != nil {
		return fmt.Errorf("delete run %d: %w", id, err)
	}
	return nil
}

// LatestRun returns the run with the greatest date.
// Ties go to the highest ID.
func (s *BadgerStore) LatestRun(ctx context.Context) (*models.Run, error) {
	runs, err := s.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	var latest *models.Run
	for _, r := range runs {
		if latest == nil || !r.Date.Before(latest.Date) {
			latest = r
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("latest run: %w", ErrNotFound)
	}
	return latest, nil
}

// CreateMood stores a new mood and sets its ID.
func (s *BadgerStore) CreateMood(ctx context.Context, m *models.Mood) error {
	id, err := s.nextID(s.moodSeq)
	if err != nil {
		return fmt.Errorf("create mood: %w", err)
	}
	m.ID = id
	if err := s.put(MoodPrefix, id, m); err != nil {
		m.ID = 0
		return fmt.Errorf("create mood: %w", err)
	}
	return nil
}

// GetMood retrieves a mood by ID.
func (s *BadgerStore) GetMood(ctx context.Context, id int64) (*models.Mood, error) {
	data, err := s.get(MoodPrefix, id)
	if err != nil {
		return nil, fmt.Errorf("get mood %d: %w", id, err)
	}
	return unmarshalJSON[models.Mood](data)
}

// ListMoods retrieves all moods in insertion order.
func (s *BadgerStore) ListMoods(ctx context.Context) ([]*models.Mood, error) {
	all, err := s.listByPrefix(MoodPrefix)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}

	moods := make([]*models.Mood, 0, len(all))
	for _, data := range all {
		m, err := unmarshalJSON[models.Mood](data)
		if err != nil {
			return nil, fmt.Errorf("list moods: %w", err)
		}
		moods = append(moods, m)
	}
	return moods, nil
}

// DeleteMood removes a mood by ID.
func (s *BadgerStore) DeleteMood(ctx context.Context, id int64) error {
	if err := s.delete(MoodPrefix, id); err != nil {
		return fmt.Errorf("delete mood %d: %w", id, err)
	}
	return nil
}

// LatestMood returns the mood with the greatest date.
// Ties go to the highest ID.
func (s *BadgerStore) LatestMood(ctx context.Context) (*models.Mood, error) {
	moods, err := s.ListMoods(ctx)
	if err != nil {
		return nil, err
	}

	var latest *models.Mood
	for _, m := range moods {
		if latest == nil || !m.Date.Before(latest.Date) {
			latest = m
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("latest mood: %w", ErrNotFound)
	}
	return latest, nil
}

// nextID returns the next 1-based ID from a sequence.
func (s *BadgerStore) nextID(seq *badger.Sequence) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}
	return int64(n) + 1, nil
}

// put stores v as JSON under prefix+id.
func (s *BadgerStore) put(prefix string, id int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(prefix, id), data)
	})
}

// get returns the raw value stored under prefix+id.
func (s *BadgerStore) get(prefix string, id int64) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(prefix, id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

// delete removes prefix+id, reporting ErrNotFound if it was absent.
func (s *BadgerStore) delete(prefix string, id int64) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := recordKey(prefix, id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

// listByPrefix returns all values whose keys start with prefix, in key order.
func (s *BadgerStore) listByPrefix(prefix string) ([][]byte, error) {
	var results [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			results = append(results, val)
		}
		return nil
	})
	return results, err
}

// recordKey zero-pads the ID so key order matches insertion order.
func recordKey(prefix string, id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefix, id))
}

func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &result, nil
}

// badgerLogger routes badger's internal logging through zap.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/logging"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
)

// Key prefixes for BadgerDB storage
const (
	schemaVersionKey = "meta:schema_version"
	catalogKey       = "catalog"
	corpusCurrentKey = "meta:corpus_generation"
	examplePrefix    = "example:"
	studentPrefix    = "student:"
)

// Value log GC tuning for Maintain.
const (
	gcDiscardRatio = 0.5
	maxGCPasses    = 10
)

// Config configures the Badger store.
type Config struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Compression enables Snappy block compression.
	Compression bool
}

// Store implements store.Repository on BadgerDB.
type Store struct {
	db     *badger.DB
	closed atomic.Bool
}

type catalogRecord struct {
	Memberships []catalog.Membership `json:"memberships"`
	Edges       []catalog.Edge       `json:"edges"`
}

// Open opens (or creates) the store and verifies its schema version.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("kvstore: path is required unless in-memory")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{db: db}
	if err := s.checkSchemaVersion(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Badger store opened")
	return s, nil
}

func (s *Store) checkSchemaVersion() error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(schemaVersionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return txn.Set([]byte(schemaVersionKey), []byte(strconv.Itoa(store.SchemaVersion)))
		}
		if err != nil {
			return fmt.Errorf("get schema version: %w", err)
		}
		return item.Value(func(val []byte) error {
			v, err := strconv.Atoi(string(val))
			if err != nil {
				return fmt.Errorf("%w: unreadable version %q", store.ErrSchemaVersion, val)
			}
			if v != store.SchemaVersion {
				return fmt.Errorf("%w: store has %d, expected %d", store.ErrSchemaVersion, v, store.SchemaVersion)
			}
			return nil
		})
	})
}

// Close closes the underlying database. Calling Close twice is a no-op.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	if s.closed.Load() || s.db.IsClosed() {
		return store.ErrClosed
	}
	return nil
}

// Maintain runs value log garbage collection until a pass rewrites nothing
// or ctx is done.
func (s *Store) Maintain(ctx context.Context) error {
	for i := 0; i < maxGCPasses; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rewrote, err := s.runGC(gcDiscardRatio)
		if err != nil || !rewrote {
			return err
		}
	}
	return nil
}

// RunGC runs one value log garbage collection pass. Returns nil when
// there was nothing to rewrite.
func (s *Store) RunGC(discardRatio float64) error {
	_, err := s.runGC(discardRatio)
	return err
}

func (s *Store) runGC(discardRatio float64) (rewrote bool, err error) {
	if s.closed.Load() {
		return false, store.ErrClosed
	}
	err = s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveCatalog replaces the stored catalog.
func (s *Store) SaveCatalog(_ context.Context, cat *catalog.Catalog) error {
	if s.closed.Load() {
		return store.ErrClosed
	}
	data, err := json.Marshal(catalogRecord{Memberships: cat.Memberships(), Edges: cat.Edges()})
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(catalogKey), data)
	})
}

// LoadCatalog rebuilds the stored catalog.
func (s *Store) LoadCatalog(_ context.Context) (*catalog.Catalog, error) {
	if s.closed.Load() {
		return nil, store.ErrClosed
	}

	var rec catalogRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(catalogKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("catalog: %w", store.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get catalog: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return catalog.FromRelations(rec.Memberships, rec.Edges)
}

// SaveCorpus replaces the stored corpus. Rows are written under a new
// generation and become visible when the generation pointer is switched,
// so a failed save leaves the previous corpus in place.
func (s *Store) SaveCorpus(ctx context.Context, examples []recommend.TrainingExample) error {
	if s.closed.Load() {
		return store.ErrClosed
	}

	rows := make([][]byte, len(examples))
	for i := range examples {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(store.ToRow(examples[i]))
		if err != nil {
			return fmt.Errorf("marshal example %s: %w", examples[i].StudentID, err)
		}
		rows[i] = data
	}

	current, ok, err := s.corpusGeneration()
	if err != nil {
		return err
	}
	next := uint64(0)
	if ok {
		next = current + 1
	}

	// Leftovers from an earlier failed save under the same generation.
	if err := s.db.DropPrefix(generationPrefix(next)); err != nil {
		return fmt.Errorf("clear corpus generation %d: %w", next, err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i, data := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := wb.Set(exampleKey(next, i), data); err != nil {
			return fmt.Errorf("set example %s: %w", examples[i].StudentID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush corpus: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(corpusCurrentKey), []byte(strconv.FormatUint(next, 10)))
	})
	if err != nil {
		return fmt.Errorf("switch corpus generation: %w", err)
	}

	if ok {
		if err := s.db.DropPrefix(generationPrefix(current)); err != nil {
			logging.Warn().Err(err).Uint64("generation", current).Msg("Failed to drop previous corpus generation")
		}
	}
	return nil
}

// corpusGeneration returns the live corpus generation. ok is false when no
// corpus has been saved.
func (s *Store) corpusGeneration() (gen uint64, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		gen, ok, err = readGeneration(txn)
		return err
	})
	return gen, ok, err
}

func readGeneration(txn *badger.Txn) (gen uint64, ok bool, err error) {
	item, err := txn.Get([]byte(corpusCurrentKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get corpus generation: %w", err)
	}
	err = item.Value(func(val []byte) error {
		v, err := strconv.ParseUint(string(val), 10, 64)
		if err != nil {
			return fmt.Errorf("parse corpus generation %q: %w", val, err)
		}
		gen, ok = v, true
		return nil
	})
	return gen, ok, err
}

// LoadCorpus returns the live corpus generation in insertion order.
func (s *Store) LoadCorpus(_ context.Context) ([]recommend.TrainingExample, error) {
	if s.closed.Load() {
		return nil, store.ErrClosed
	}

	out := make([]recommend.TrainingExample, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		gen, ok, err := readGeneration(txn)
		if err != nil || !ok {
			return err
		}
		return scanTxn(txn, generationPrefix(gen), func(val []byte) error {
			var row store.ExampleRow
			if err := json.Unmarshal(val, &row); err != nil {
				return fmt.Errorf("unmarshal example: %w", err)
			}
			out = append(out, store.FromRow(row))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return out, nil
}

// SaveStudent inserts or replaces a student.
//
//nolint:gocritic // hugeParam
func (s *Store) SaveStudent(_ context.Context, rec store.StudentRecord) error {
	if s.closed.Load() {
		return store.ErrClosed
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal student: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(studentPrefix+rec.ID), data)
	})
}

// LoadStudent returns a student by ID.
func (s *Store) LoadStudent(_ context.Context, id string) (store.StudentRecord, error) {
	if s.closed.Load() {
		return store.StudentRecord{}, store.ErrClosed
	}

	var rec store.StudentRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(studentPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", store.ErrStudentNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("get student: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return store.StudentRecord{}, err
	}
	return rec, nil
}

// ListStudents returns all students ordered by ID.
func (s *Store) ListStudents(_ context.Context) ([]store.StudentRecord, error) {
	if s.closed.Load() {
		return nil, store.ErrClosed
	}

	var out []store.StudentRecord
	err := s.scan(studentPrefix, func(val []byte) error {
		var rec store.StudentRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("unmarshal student: %w", err)
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return out, nil
}

// scan calls fn for each value under prefix in key order.
func (s *Store) scan(prefix string, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return scanTxn(txn, []byte(prefix), fn)
	})
}

func scanTxn(txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

func generationPrefix(gen uint64) []byte {
	return []byte(fmt.Sprintf("%s%08d:", examplePrefix, gen))
}

func exampleKey(gen uint64, i int) []byte {
	return append(generationPrefix(gen), fmt.Sprintf("%08d", i)...)
}

var _ store.Repository = (*Store)(nil)

// Package columnar provides a disk-backed column store that bounds peak
// memory to a single resident column. Every column of a dataset is spilled
// to a private storage directory at construction time; loads swap the
// resident column back to disk before reading the requested one.
//
// The trade-off is O(columns) disk round trips for O(one column) memory,
// which is the right shape when width, not depth, is the scaling dimension.
package columnar

import (
	"fmt"
	"os"
	"path/filepath"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/driftwatch/driftwatch/pkg/compression"
	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
	"github.com/driftwatch/driftwatch/pkg/logger"
	"github.com/driftwatch/driftwatch/pkg/metrics"
)

// spillFile is the on-disk representation of one column.
type spillFile struct {
	Name   string        `json:"name"`
	Values []interface{} `json:"values"`
}

// DiskStore holds a dataset's columns on disk, keeping at most one column
// resident in memory (the active slot). The storage directory is
// exclusively owned by the store and removed on Close.
//
// DiskStore is not safe for concurrent use: the active slot is a
// capacity-1 cache and two concurrent loads would violate its invariant.
// Parallel workers must each own an independent store.
type DiskStore struct {
	dir       string
	names     []string
	paths     map[string]string
	resident  *dataset.Column
	residentN string
	codec     *compression.Compressor
	logger    *zap.Logger
	closed    bool
}

// Option configures a DiskStore.
type Option func(*DiskStore)

// WithCompression sets the spill file compression algorithm.
func WithCompression(algorithm compression.Algorithm) Option {
	return func(s *DiskStore) {
		codec, err := compression.NewCompressor(algorithm)
		if err == nil {
			s.codec = codec
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *DiskStore) {
		s.logger = l
	}
}

// New snapshots every column of ds into a freshly allocated spill
// directory and returns a store with an empty active slot. On any spill
// failure the directory is removed before the error is returned.
func New(ds *dataset.Dataset, opts ...Option) (*DiskStore, error) {
	dir, err := os.MkdirTemp("", "driftwatch-columns-")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "failed to allocate spill directory")
	}

	codec, _ := compression.NewCompressor(compression.None)
	store := &DiskStore{
		dir:    dir,
		names:  ds.ColumnNames(),
		paths:  make(map[string]string, ds.Width()),
		codec:  codec,
		logger: logger.Get().With(zap.String("component", "columnar_store")),
	}
	for _, opt := range opts {
		opt(store)
	}

	for i, name := range store.names {
		col, err := ds.Column(name)
		if err != nil {
			store.removeDir()
			return nil, err
		}
		// Filenames are positional so column names never touch the
		// filesystem namespace.
		path := filepath.Join(dir, fmt.Sprintf("%06d.col", i))
		if err := store.spill(path, col); err != nil {
			store.removeDir()
			return nil, err
		}
		store.paths[name] = path
	}

	store.logger.Debug("column store created",
		zap.Int("columns", len(store.names)),
		zap.String("dir", dir),
		zap.String("compression", string(store.codec.Algorithm())))
	return store, nil
}

// ColumnNames returns the stored column names in their original order.
func (s *DiskStore) ColumnNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// LoadColumn swaps the requested column into the active slot. The
// currently resident column, if any and different, is written back to its
// spill file first; the store cannot know whether the caller mutated it,
// so the write-back happens on every swap. Returns a not_found error for
// unknown names and a storage error (with the active slot invalidated)
// when the swap itself fails.
func (s *DiskStore) LoadColumn(name string) (*dataset.Column, error) {
	if s.closed {
		return nil, errors.New(errors.ErrorTypeStorage, "column store is closed")
	}
	path, ok := s.paths[name]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "column %q not found in store", name)
	}

	if s.residentN != "" && s.residentN != name {
		if err := s.spill(s.paths[s.residentN], s.resident); err != nil {
			s.invalidate()
			return nil, err
		}
	}

	col, err := s.restore(path)
	if err != nil {
		s.invalidate()
		return nil, err
	}

	s.resident = col
	s.residentN = name
	metrics.ColumnSwaps.Inc()
	return col, nil
}

// Iterate returns a single-pass iterator over the columns in stored
// order. Each step evicts the previous column before loading the next.
func (s *DiskStore) Iterate() *Iterator {
	return &Iterator{store: s, index: -1}
}

// Close removes the spill directory. It is idempotent and must be called
// on every exit path; after Close the store rejects further loads.
func (s *DiskStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.invalidate()
	if err := os.RemoveAll(s.dir); err != nil {
		return errors.Wrap(err, errors.ErrorTypeStorage, "failed to remove spill directory")
	}
	s.logger.Debug("column store closed", zap.String("dir", s.dir))
	return nil
}

func (s *DiskStore) invalidate() {
	s.resident = nil
	s.residentN = ""
}

func (s *DiskStore) removeDir() {
	if err := os.RemoveAll(s.dir); err != nil {
		s.logger.Warn("failed to remove spill directory", zap.String("dir", s.dir), zap.Error(err))
	}
}

func (s *DiskStore) spill(path string, col *dataset.Column) error {
	raw, err := gojson.Marshal(spillFile{Name: col.Name, Values: col.Values})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeStorage, "failed to encode column "+col.Name)
	}
	encoded, err := s.codec.Compress(raw)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeStorage, "failed to compress column "+col.Name)
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return errors.Wrap(err, errors.ErrorTypeStorage, "failed to spill column "+col.Name)
	}
	metrics.SpillBytes.Add(float64(len(encoded)))
	return nil
}

func (s *DiskStore) restore(path string) (*dataset.Column, error) {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "failed to read spill file")
	}
	raw, err := s.codec.Decompress(encoded)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "failed to decompress spill file")
	}
	var sf spillFile
	if err := gojson.Unmarshal(raw, &sf); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeStorage, "failed to decode spill file")
	}
	return dataset.NewColumn(sf.Name, sf.Values), nil
}

// Iterator walks the store's columns in order, one disk round trip per
// step. It is finite and not restartable; re-iterating repeats the round
// trips in the same order.
type Iterator struct {
	store   *DiskStore
	index   int
	current *dataset.Column
	err     error
}

// Next advances to the next column, returning false at the end or on the
// first swap failure. The failure is available via Err.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	it.index++
	if it.index >= len(it.store.names) {
		return false
	}
	it.current, it.err = it.store.LoadColumn(it.store.names[it.index])
	return it.err == nil
}

// Column returns the column loaded by the last successful Next.
func (it *Iterator) Column() *dataset.Column {
	return it.current
}

// Err returns the first swap failure encountered, if any.
func (it *Iterator) Err() error {
	return it.err
}

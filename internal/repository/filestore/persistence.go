// Package filestore keeps each ledger as one JSON document on disk, read and
// rewritten in full under a per-ledger mutex.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
)

// ledger is one whole-collection record file. mu must be held for the full
// read-modify-write cycle of any mutation.
type ledger[T any] struct {
	mu    sync.Mutex
	path  string
	write func(name string, data []byte, perm os.FileMode) error
}

func newLedger[T any](dir, file string) *ledger[T] {
	return &ledger[T]{
		path:  filepath.Join(dir, file),
		write: os.WriteFile,
	}
}

// load returns every record. A missing file is an empty ledger.
func (l *ledger[T]) load() ([]T, error) {
	logger.DatabaseCall("load", l.path)
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, filepath.Base(l.path), err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrPersistence, filepath.Base(l.path), err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// save replaces the ledger atomically: the records go to a temp file which is
// then renamed over the original, so readers see either the old or the new
// collection and a failed save leaves the old one intact.
func (l *ledger[T]) save(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, filepath.Base(l.path), err)
	}
	tmp := l.path + ".tmp"
	if err := l.write(tmp, data, 0o644); err != nil {
		logger.DatabaseResult("save", 0, err, "file", l.path)
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, filepath.Base(l.path), err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		logger.DatabaseResult("save", 0, err, "file", l.path)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrPersistence, filepath.Base(l.path), err)
	}
	logger.DatabaseResult("save", int64(len(records)), nil, "file", l.path)
	return nil
}

// read loads the collection under the lock.
func (l *ledger[T]) read() ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

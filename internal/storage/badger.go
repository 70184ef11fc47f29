package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"compdash/internal/core"
)

// BadgerConfig holds configuration for the embedded BadgerDB adapter.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence). Useful for tests.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. If nil, that output
	// is discarded.
	Logger core.Logger
}

// DefaultBadgerConfig returns production defaults: durable synchronous
// writes at the given path.
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{Path: path, SyncWrites: true}
}

// InMemoryBadgerConfig returns configuration for tests: in-memory, no disk
// I/O, no sync.
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

// BadgerAdapter stores slices as keys in an embedded BadgerDB instance.
type BadgerAdapter struct {
	db *badger.DB
}

// NewBadgerAdapter opens (or creates) the BadgerDB instance.
func NewBadgerAdapter(cfg BadgerConfig) (*BadgerAdapter, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger path required for persistent mode")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}

	return &BadgerAdapter{db: db}, nil
}

// Load returns the stored bytes for a slice, or ErrNotFound.
func (a *BadgerAdapter) Load(key string) ([]byte, error) {
	var data []byte
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load slice %s: %w", key, err)
	}
	return data, nil
}

// Save stores the bytes for a slice.
func (a *BadgerAdapter) Save(key string, data []byte) error {
	err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("save slice %s: %w", key, err)
	}
	return nil
}

// Delete removes a slice. Absence is not an error.
func (a *BadgerAdapter) Delete(key string) error {
	err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete slice %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (a *BadgerAdapter) Close() error {
	return a.db.Close()
}

// badgerLogger adapts core.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger core.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"compdash/internal/core"
)

// FileAdapter stores each slice as one file under a data directory. Writes
// are atomic: content goes to a temp file in the same directory, then a
// rename swaps it into place, so a crash mid-write never leaves a partially
// written slice behind.
type FileAdapter struct {
	dataDir string
	lock    *DirLock
	logger  core.Logger
}

// NewFileAdapter creates the data directory if needed and acquires the
// directory lock so two processes cannot mirror state into the same
// directory concurrently.
func NewFileAdapter(dataDir string, logger core.Logger) (*FileAdapter, error) {
	if logger == nil {
		logger = core.NopLogger()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := NewDirLock(filepath.Join(dataDir, ".lock"))
	if err := lock.Acquire(); err != nil {
		return nil, err
	}

	return &FileAdapter{dataDir: dataDir, lock: lock, logger: logger}, nil
}

// Load returns the stored bytes for a slice, or ErrNotFound.
func (a *FileAdapter) Load(key string) ([]byte, error) {
	path, err := a.slicePath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slice %s: %w", key, err)
	}
	return data, nil
}

// Save writes the slice atomically (temp file + rename).
func (a *FileAdapter) Save(key string, data []byte) error {
	path, err := a.slicePath(key)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write slice %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		// Best-effort cleanup of the orphaned temp file
		_ = os.Remove(tmp)
		return fmt.Errorf("commit slice %s: %w", key, err)
	}

	a.logger.Debug("saved slice", "key", key, "bytes", len(data))
	return nil
}

// Delete removes the slice file. Absence is not an error.
func (a *FileAdapter) Delete(key string) error {
	path, err := a.slicePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete slice %s: %w", key, err)
	}
	return nil
}

// Close releases the directory lock.
func (a *FileAdapter) Close() error {
	return a.lock.Release()
}

// slicePath maps a key to its file. Keys are fixed identifiers; anything
// that could escape the data directory is rejected.
func (a *FileAdapter) slicePath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\.") {
		return "", fmt.Errorf("invalid slice key %q", key)
	}
	return filepath.Join(a.dataDir, key+".yaml"), nil
}

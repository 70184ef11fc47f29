package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"
	"time"
)

// lockInfo is the metadata stored in the lock file for diagnostics and
// stale-lock detection.
type lockInfo struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	Timestamp time.Time `json:"timestamp"`
}

// staleLockAge is how old a lock may be before it is considered abandoned
// even if its owning process cannot be probed.
const staleLockAge = 30 * time.Minute

// DirLock guards a data directory against concurrent writers using an
// advisory flock on a lock file.
type DirLock struct {
	path string
	file *os.File
}

// NewDirLock creates a directory lock at the given path.
func NewDirLock(path string) *DirLock {
	return &DirLock{path: path}
}

// Acquire attempts to take the lock, stealing it if the holder is dead or
// the lock is older than staleLockAge.
func (l *DirLock) Acquire() error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()

		existing, readErr := l.readInfo()
		if readErr == nil && l.isStale(existing) {
			_ = os.Remove(l.path)
			return l.Acquire()
		}

		if readErr == nil {
			age := time.Since(existing.Timestamp).Round(time.Second)
			return fmt.Errorf("data directory locked by PID %d on %s (%v ago)",
				existing.PID, existing.Hostname, age)
		}

		return fmt.Errorf("acquire lock: %w", err)
	}

	l.file = file

	hostname, _ := os.Hostname()
	info := lockInfo{
		PID:       os.Getpid(),
		Hostname:  hostname,
		Timestamp: time.Now(),
	}
	data, _ := json.MarshalIndent(info, "", "  ")
	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("seek lock file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("write lock metadata: %w", err)
	}

	return nil
}

// Release drops the lock and removes the lock file.
func (l *DirLock) Release() error {
	if l.file == nil {
		return nil
	}

	_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	_ = l.file.Close()
	l.file = nil

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *DirLock) readInfo() (*lockInfo, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}

	var info lockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// isStale checks whether the holding process is gone or the lock too old.
func (l *DirLock) isStale(info *lockInfo) bool {
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return true
	}

	// On Unix FindProcess always succeeds; signal 0 probes liveness.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return true
	}

	return time.Since(info.Timestamp) > staleLockAge
}

package acquire

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// StaleLockThreshold is the maximum age of an install lock before
	// it is considered abandoned by a crashed publish run.
	StaleLockThreshold = 10 * time.Minute

	lockFileName = ".acquire.lock"
)

// ErrLockHeld is returned when another publish run holds the install
// lock for the same package tree.
var ErrLockHeld = errors.New("install lock held: another acquisition may be in progress")

// installLock serializes full-tree acquisitions. Individual platform
// directories never overlap, but two publish runs writing the same tree
// concurrently could interleave checksum and binary state.
type installLock struct {
	path string
	file *os.File
}

// acquireLock takes an exclusive lock on a package tree using
// O_CREATE|O_EXCL for atomic creation. A stale lock left behind by a
// crashed run is removed and retaken once.
func acquireLock(dir string) (*installLock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(dir, lockFileName)

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		if stale, _ := isLockStale(lockPath); !stale {
			return nil, ErrLockHeld
		}
		os.Remove(lockPath)
		file, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
		if err != nil {
			return nil, ErrLockHeld
		}
	}

	meta := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(meta); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock metadata: %w", err)
	}

	return &installLock{path: lockPath, file: file}, nil
}

// release releases the lock.
func (l *installLock) release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if l.path != "" {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
	}
	return nil
}

func isLockStale(lockPath string) (bool, error) {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime()) > StaleLockThreshold, nil
}

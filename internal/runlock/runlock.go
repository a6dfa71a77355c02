// Package runlock guards against concurrent synchronization runs on one
// machine. The lock is a kernel flock tied to the owning process, so a
// crashed or killed run never blocks the next one and a stale lock file
// on disk is harmless.
package runlock

import (
	"fmt"
	"os"
	"syscall"
)

// Lock is a file-based mutual exclusion token keyed by its path.
type Lock struct {
	Path string

	file *os.File
}

// New creates a lock for the given path. Nothing is acquired until
// TryLock is called.
func New(path string) *Lock {
	return &Lock{Path: path}
}

// TryLock attempts to take the lock without blocking. It returns
// (nil, nil) when another process already holds it. A non-nil release
// function means the lock is now held; calling it unlocks and closes
// the underlying file.
func (l *Lock) TryLock() (func() error, error) {
	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", l.Path, err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, nil
		}
		return nil, fmt.Errorf("flock %s: %w", l.Path, err)
	}
	l.file = f
	return func() error {
		defer l.file.Close()
		return syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	}, nil
}

// DefaultPath returns the conventional lock file location, falling back
// to the system temp directory when /run is not writable by the caller.
func DefaultPath(name string) string {
	path := "/run/" + name
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644); err == nil {
		f.Close()
		return path
	}
	return os.TempDir() + "/" + name
}

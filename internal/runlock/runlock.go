package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Lock guards the whole library: one orchestration cycle at a time.
type Lock struct {
	path  string
	flock *flock.Flock
}

// New constructs a lock backed by the file at path.
func New(path string) (*Lock, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("lock path required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	return &Lock{path: trimmed, flock: flock.New(trimmed)}, nil
}

// TryAcquire attempts a non-blocking exclusive acquire. A false result with a
// nil error means another run holds the lock.
func (l *Lock) TryAcquire() (bool, error) {
	ok, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire run lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock. Safe to call when not held.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

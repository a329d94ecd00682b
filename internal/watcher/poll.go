package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"gainhound/internal/logging"
	"gainhound/internal/scanner"
)

// PollSource emits events by walking the library on an interval and comparing
// modification times against a rolling snapshot timestamp.
//
// The snapshot advances only when the debouncer commits a successful trigger,
// never on the poll itself. Changes that land during an in-progress run keep
// the poller signalling until a later run observes them.
type PollSource struct {
	root     string
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	snapshot time.Time
}

// NewPollSource constructs a polling source for root.
func NewPollSource(root string, interval time.Duration, logger *slog.Logger) *PollSource {
	return &PollSource{
		root:     root,
		interval: interval,
		logger:   logging.WithComponent(logger, "watcher"),
		snapshot: time.Now(),
	}
}

// Start begins polling until the context is cancelled.
func (s *PollSource) Start(ctx context.Context) (<-chan Event, error) {
	events := make(chan Event, 1)
	go func() {
		defer close(events)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if path, ok := s.changedSince(ctx); ok {
					select {
					case events <- Event{Path: path}:
					case <-ctx.Done():
						return
					default:
					}
				}
			}
		}
	}()
	return events, nil
}

// Commit advances the rolling snapshot to the accepted trigger time.
func (s *PollSource) Commit(at time.Time) {
	s.mu.Lock()
	s.snapshot = at
	s.mu.Unlock()
}

func (s *PollSource) changedSince(ctx context.Context) (string, bool) {
	s.mu.Lock()
	cutoff := s.snapshot
	s.mu.Unlock()

	var changed string
	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil || entry.IsDir() || !scanner.IsAudioPath(path) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			changed = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		s.logger.Warn("library poll failed", logging.Error(err))
		return "", false
	}
	return changed, changed != ""
}

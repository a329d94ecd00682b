package watcher

import (
	"context"
	"log/slog"
	"time"

	"gainhound/internal/config"
)

// Event signals that an audio file under the library root changed.
type Event struct {
	Path string
}

// Source produces change events until the context is cancelled.
type Source interface {
	Start(ctx context.Context) (<-chan Event, error)
}

// Committer is implemented by sources that track a rolling snapshot. The
// debouncer commits the trigger time after a successful run so changes that
// happen mid-run are still observed afterwards.
type Committer interface {
	Commit(at time.Time)
}

// SelectSource picks an event source for the configured mode. "auto" probes
// for native notification support and falls back to polling.
func SelectSource(cfg *config.Config, logger *slog.Logger) Source {
	interval := time.Duration(cfg.Watcher.PollIntervalSeconds) * time.Second
	switch cfg.Watcher.Mode {
	case "notify":
		return NewNotifySource(cfg.Paths.LibraryDir, logger)
	case "poll":
		return NewPollSource(cfg.Paths.LibraryDir, interval, logger)
	default:
		if notifySupported() {
			return NewNotifySource(cfg.Paths.LibraryDir, logger)
		}
		return NewPollSource(cfg.Paths.LibraryDir, interval, logger)
	}
}

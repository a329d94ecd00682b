package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gainhound/internal/config"
	"gainhound/internal/cycle"
	"gainhound/internal/logging"
)

// Watcher is the long-lived daemon: one event source feeding one debouncer
// that starts orchestration cycles.
type Watcher struct {
	cfg    *config.Config
	runner *cycle.Runner
	logger *slog.Logger
}

// New constructs a watcher daemon.
func New(cfg *config.Config, runner *cycle.Runner, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || runner == nil {
		return nil, errors.New("watcher requires config and cycle runner")
	}
	return &Watcher{cfg: cfg, runner: runner, logger: logging.WithComponent(logger, "watcher")}, nil
}

// Run blocks until the context is cancelled (typically by SIGINT/SIGTERM).
func (w *Watcher) Run(ctx context.Context) error {
	source := SelectSource(w.cfg, w.logger)
	events, err := source.Start(ctx)
	if err != nil {
		return fmt.Errorf("start event source: %w", err)
	}

	committer, _ := source.(Committer)
	cooldown := time.Duration(w.cfg.Watcher.CooldownSeconds) * time.Second

	trigger := func(ctx context.Context) (bool, error) {
		result, err := w.runner.Run(ctx)
		return !result.LockHeld, err
	}

	w.logger.Info("watching library",
		logging.String(logging.FieldPath, w.cfg.Paths.LibraryDir),
		logging.String("mode", sourceMode(source)),
		logging.Duration("cooldown", cooldown),
	)
	return NewDebouncer(cooldown, trigger, w.logger).Run(ctx, events, committer)
}

func sourceMode(source Source) string {
	switch source.(type) {
	case *NotifySource:
		return "notify"
	case *PollSource:
		return "poll"
	default:
		return "unknown"
	}
}

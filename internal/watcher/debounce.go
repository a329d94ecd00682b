package watcher

import (
	"context"
	"log/slog"
	"time"

	"gainhound/internal/logging"
)

// Trigger starts one orchestration run. accepted is false when the run lock
// was held and the trigger was dropped.
type Trigger func(ctx context.Context) (accepted bool, err error)

// Debouncer collapses event bursts into at most one trigger per cooldown
// window. Its single piece of state is the last accepted trigger time.
type Debouncer struct {
	cooldown time.Duration
	trigger  Trigger
	logger   *slog.Logger
	now      func() time.Time

	lastTrigger time.Time
}

// NewDebouncer constructs a debouncer around trigger.
func NewDebouncer(cooldown time.Duration, trigger Trigger, logger *slog.Logger) *Debouncer {
	return &Debouncer{
		cooldown: cooldown,
		trigger:  trigger,
		logger:   logging.WithComponent(logger, "watcher"),
		now:      time.Now,
	}
}

// Run consumes events until the context is cancelled or the source closes
// its channel. committer may be nil for sources without a rolling snapshot.
func (d *Debouncer) Run(ctx context.Context, events <-chan Event, committer Committer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.observe(ctx, ev, committer)
		}
	}
}

func (d *Debouncer) observe(ctx context.Context, ev Event, committer Committer) {
	now := d.now()
	if !d.lastTrigger.IsZero() && now.Sub(d.lastTrigger) < d.cooldown {
		d.logger.Debug("event within cooldown, dropped", logging.String(logging.FieldPath, ev.Path))
		return
	}

	d.logger.Info("change detected, triggering cycle", logging.String(logging.FieldPath, ev.Path))
	accepted, err := d.trigger(ctx)
	if err != nil {
		d.logger.Error("triggered cycle reported failure", logging.Error(err))
	}
	if !accepted {
		// Lock held: drop silently, keep the cursor so the next qualifying
		// event retriggers once the current run finishes.
		d.logger.Debug("run lock held, trigger dropped")
		return
	}
	d.lastTrigger = now
	if committer != nil {
		committer.Commit(now)
	}
}

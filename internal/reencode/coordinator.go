package reencode

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"gainhound/internal/decision"
	"gainhound/internal/logging"
	"gainhound/internal/services"
	"gainhound/internal/services/plex"
	"gainhound/internal/state"
)

// Transcoder re-encodes a file in place.
type Transcoder interface {
	Reencode(ctx context.Context, path string) error
}

// TagStripper removes stale gain tags from a re-encoded file.
type TagStripper interface {
	StripTags(ctx context.Context, path string) error
}

// Coordinator drives one re-encode batch.
type Coordinator struct {
	store       *state.Store
	transcoder  Transcoder
	stripper    TagStripper
	hook        plex.Analyzer
	libraryRoot string
	maxBatch    int
	dryRun      bool
	timeout     time.Duration
	logger      *slog.Logger
}

// Options configures a Coordinator.
type Options struct {
	Store       *state.Store
	Transcoder  Transcoder
	TagStripper TagStripper
	Hook        plex.Analyzer
	LibraryRoot string
	MaxBatch    int
	DryRun      bool
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Summary aggregates one batch.
type Summary struct {
	Candidates int
	Attempted  int
	Succeeded  int
	Failed     int
	HookFired  bool
	DryRun     bool
}

// New constructs a coordinator. Transcoder may be nil when the binary is
// unavailable; Run then reports a configuration error for the whole step.
func New(opts Options) (*Coordinator, error) {
	if opts.Store == nil {
		return nil, errors.New("state store required")
	}
	if strings.TrimSpace(opts.LibraryRoot) == "" {
		return nil, errors.New("library root required")
	}
	hook := opts.Hook
	if hook == nil {
		hook = plex.NewFromConfig(nil)
	}
	return &Coordinator{
		store:       opts.Store,
		transcoder:  opts.Transcoder,
		stripper:    opts.TagStripper,
		hook:        hook,
		libraryRoot: opts.LibraryRoot,
		maxBatch:    opts.MaxBatch,
		dryRun:      opts.DryRun,
		timeout:     opts.Timeout,
		logger:      logging.WithComponent(opts.Logger, "reencode"),
	}, nil
}

// Run processes the candidate set in order, capped at MaxBatch when positive.
func (c *Coordinator) Run(ctx context.Context, candidates []decision.Candidate) (Summary, error) {
	summary := Summary{Candidates: len(candidates), DryRun: c.dryRun}

	if c.transcoder == nil {
		return summary, services.Wrap(services.ErrConfiguration, "reencode", "transcoder", errors.New("ffmpeg binary not available"))
	}

	batch := candidates
	if c.maxBatch > 0 && len(batch) > c.maxBatch {
		batch = batch[:c.maxBatch]
	}

	if c.dryRun {
		for _, cand := range batch {
			c.logger.Info("dry run candidate",
				logging.String(logging.FieldPath, cand.Path),
				logging.Float64(logging.FieldGain, cand.GainDB),
			)
		}
		return summary, nil
	}

	for _, cand := range batch {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		summary.Attempted++
		if err := c.reencodeOne(ctx, cand); err != nil {
			summary.Failed++
			c.logger.Error("re-encode failed",
				logging.String(logging.FieldPath, cand.Path),
				logging.Float64(logging.FieldGain, cand.GainDB),
				logging.Error(err),
			)
			continue
		}
		summary.Succeeded++
		c.logger.Info("re-encoded",
			logging.String(logging.FieldPath, cand.Path),
			logging.Float64(logging.FieldGain, cand.GainDB),
		)
	}

	if summary.Succeeded > 0 {
		summary.HookFired = true
		if err := c.hook.TriggerAnalysis(ctx); err != nil {
			// Fire-and-forget: the hook never fails the batch.
			c.logger.Warn("analysis hook failed", logging.Error(err))
		}
	}
	return summary, nil
}

func (c *Coordinator) reencodeOne(ctx context.Context, cand decision.Candidate) error {
	if !c.withinLibrary(cand.Path) {
		return errors.New("path outside library root")
	}

	callCtx, cancel := c.callContext(ctx)
	err := c.transcoder.Reencode(callCtx, cand.Path)
	cancel()
	if err != nil {
		return err
	}

	if c.stripper != nil {
		stripCtx, cancel := c.callContext(ctx)
		if err := c.stripper.StripTags(stripCtx, cand.Path); err != nil {
			// Best-effort: a leftover APE tag only biases the next measurement.
			c.logger.Warn("tag strip failed", logging.String(logging.FieldPath, cand.Path), logging.Error(err))
		}
		cancel()
	}

	// Drop the record so the next scan measures the new encode fresh.
	if err := c.store.Remove(cand.Path); err != nil {
		return err
	}
	return nil
}

func (c *Coordinator) withinLibrary(path string) bool {
	rel, err := filepath.Rel(c.libraryRoot, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (c *Coordinator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

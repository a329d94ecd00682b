package cycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gainhound/internal/config"
	"gainhound/internal/decision"
	"gainhound/internal/deps"
	"gainhound/internal/logging"
	"gainhound/internal/reencode"
	"gainhound/internal/runlock"
	"gainhound/internal/scanner"
	"gainhound/internal/services/ffmpeg"
	"gainhound/internal/services/mp3gain"
	"gainhound/internal/services/mp3val"
	"gainhound/internal/services/plex"
	"gainhound/internal/state"
)

// Runner executes orchestration cycles. Construct via NewFromConfig (wiring
// real collaborators) or New (tests inject their own).
type Runner struct {
	cfg         *config.Config
	lock        *runlock.Lock
	store       *state.Store
	scanner     *scanner.Scanner
	coordinator *reencode.Coordinator
	logger      *slog.Logger
}

// Result describes one run.
type Result struct {
	CycleID  string
	LockHeld bool
	Scan     scanner.Summary
	ScanErr  error
	Reencode reencode.Summary
	ReencErr error
	Duration time.Duration
}

// New assembles a runner from prebuilt parts. scanner and coordinator may be
// nil when the corresponding steps are disabled.
func New(cfg *config.Config, lock *runlock.Lock, store *state.Store, scan *scanner.Scanner, coordinator *reencode.Coordinator, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || lock == nil || store == nil {
		return nil, errors.New("cycle runner requires config, lock, and store")
	}
	return &Runner{
		cfg:         cfg,
		lock:        lock,
		store:       store,
		scanner:     scan,
		coordinator: coordinator,
		logger:      logging.WithComponent(logger, "cycle"),
	}, nil
}

// NewFromConfig wires a runner with the real external tool clients.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	store, err := state.NewStore(cfg.StatePath())
	if err != nil {
		return nil, err
	}
	lock, err := runlock.New(cfg.LockPath())
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Scan.ToolTimeoutSeconds) * time.Second

	var gainClient *mp3gain.Client
	if cfg.Scan.GainCheck || cfg.Scan.Reencode {
		gainClient, err = mp3gain.New(cfg.Tools.MP3Gain)
		if err != nil {
			return nil, err
		}
	}

	var scan *scanner.Scanner
	if cfg.Scan.GainCheck || cfg.Scan.IntegrityCheck {
		// Missing binaries leave the prober nil; the scanner reports the
		// enabled-but-toolless step as a configuration error, the same way
		// the coordinator handles an absent ffmpeg.
		var gainProber scanner.GainProber
		if cfg.Scan.GainCheck && deps.Available(cfg.Tools.MP3Gain) {
			gainProber = gainClient
		}
		var integrityProber scanner.IntegrityProber
		if cfg.Scan.IntegrityCheck && deps.Available(cfg.Tools.MP3Val) {
			client, err := mp3val.New(cfg.Tools.MP3Val)
			if err != nil {
				return nil, err
			}
			integrityProber = client
		}
		scan, err = scanner.New(scanner.Options{
			Root:           cfg.Paths.LibraryDir,
			Store:          store,
			Gain:           gainProber,
			Integrity:      integrityProber,
			GainCheck:      cfg.Scan.GainCheck,
			IntegrityCheck: cfg.Scan.IntegrityCheck,
			Timeout:        timeout,
			Logger:         logger,
		})
		if err != nil {
			return nil, err
		}
	}

	var coordinator *reencode.Coordinator
	if cfg.Scan.Reencode {
		var transcoder reencode.Transcoder
		if deps.Available(cfg.Tools.FFmpeg) {
			client, err := ffmpeg.New(cfg.Tools.FFmpeg, cfg.Reencode.VBRQuality, cfg.Reencode.ID3Version)
			if err != nil {
				return nil, err
			}
			transcoder = client
		}
		var stripper reencode.TagStripper
		if gainClient != nil && deps.Available(cfg.Tools.MP3Gain) {
			stripper = gainClient
		}
		coordinator, err = reencode.New(reencode.Options{
			Store:       store,
			Transcoder:  transcoder,
			TagStripper: stripper,
			Hook:        plex.NewFromConfig(cfg),
			LibraryRoot: cfg.Paths.LibraryDir,
			MaxBatch:    cfg.Reencode.MaxBatch,
			DryRun:      cfg.Reencode.DryRun,
			Timeout:     timeout,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
	}

	return New(cfg, lock, store, scan, coordinator, logger)
}

// Run performs one cycle. A held lock is a no-op success. The returned error
// is the first step failure, surfaced for exit-code propagation after all
// enabled steps have run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	result := Result{CycleID: uuid.NewString()}
	logger := r.logger.With(logging.String(logging.FieldCycleID, result.CycleID))

	acquired, err := r.lock.TryAcquire()
	if err != nil {
		return result, fmt.Errorf("run lock: %w", err)
	}
	if !acquired {
		result.LockHeld = true
		logger.Info("run already in progress, skipping cycle")
		return result, nil
	}
	defer func() {
		if err := r.lock.Release(); err != nil {
			logger.Warn("release run lock failed", logging.Error(err))
		}
	}()

	var firstErr error
	record := func(step string, err error) {
		if err == nil {
			return
		}
		logger.Error("step failed", logging.String(logging.FieldStep, step), logging.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	if r.scanner != nil {
		result.Scan, result.ScanErr = r.scanner.Run(ctx)
		record("scan", result.ScanErr)
	}

	if r.coordinator != nil {
		records, err := r.store.Load()
		if err != nil {
			result.ReencErr = fmt.Errorf("load state store: %w", err)
			record("reencode", result.ReencErr)
		} else {
			candidates := decision.Candidates(records, r.cfg.Scan.GainThresholdDB)
			result.Reencode, result.ReencErr = r.coordinator.Run(ctx, candidates)
			record("reencode", result.ReencErr)
		}
	}

	result.Duration = time.Since(started)
	logger.Info("cycle complete",
		logging.Int("scanned", result.Scan.Scanned),
		logging.Int("measured", result.Scan.Measured),
		logging.Int("integrity_failed", result.Scan.IntegrityFailed),
		logging.Int("skipped", result.Scan.Skipped),
		logging.Int("reencoded", result.Reencode.Succeeded),
		logging.Int("reencode_failed", result.Reencode.Failed),
		logging.Duration("duration", result.Duration),
	)
	return result, firstErr
}

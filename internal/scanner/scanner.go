package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"gainhound/internal/logging"
	"gainhound/internal/services"
	"gainhound/internal/state"
)

// GainProber measures a file's gain without modifying it.
type GainProber interface {
	Scan(ctx context.Context, path string) (float64, string, error)
}

// IntegrityProber checks a file's structural validity.
type IntegrityProber interface {
	Check(ctx context.Context, path string) error
}

// Scanner walks a library root and drives the per-file probes. A nil prober
// disables the corresponding check.
type Scanner struct {
	root           string
	store          *state.Store
	gain           GainProber
	integrity      IntegrityProber
	gainCheck      bool
	integrityCheck bool
	timeout        time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// Options configures a Scanner. GainCheck and IntegrityCheck mark the steps
// the configuration enabled; an enabled check with a nil prober means the
// tool binary is missing and fails the scan as a configuration error instead
// of one transient skip per file.
type Options struct {
	Root           string
	Store          *state.Store
	Gain           GainProber
	Integrity      IntegrityProber
	GainCheck      bool
	IntegrityCheck bool
	Timeout        time.Duration
	Logger         *slog.Logger
}

// Summary aggregates one scan pass.
type Summary struct {
	Scanned         int
	Measured        int
	IntegrityFailed int
	Skipped         int
	AlreadyFresh    int
}

// New constructs a scanner.
func New(opts Options) (*Scanner, error) {
	if strings.TrimSpace(opts.Root) == "" {
		return nil, errors.New("library root required")
	}
	if opts.Store == nil {
		return nil, errors.New("state store required")
	}
	return &Scanner{
		root:           opts.Root,
		store:          opts.Store,
		gain:           opts.Gain,
		integrity:      opts.Integrity,
		gainCheck:      opts.GainCheck,
		integrityCheck: opts.IntegrityCheck,
		timeout:        opts.Timeout,
		logger:         logging.WithComponent(opts.Logger, "scanner"),
		now:            time.Now,
	}, nil
}

// Run performs one scan pass over the library in walk order. The returned
// error is nil unless a required tool is missing, the walk itself fails, or
// a state store write fails.
func (s *Scanner) Run(ctx context.Context) (Summary, error) {
	if s.gainCheck && s.gain == nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "scanner", "gain probe", errors.New("mp3gain binary not available"))
	}
	if s.integrityCheck && s.integrity == nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "scanner", "integrity probe", errors.New("mp3val binary not available"))
	}

	records, err := s.store.Load()
	if err != nil {
		return Summary{}, fmt.Errorf("load state store: %w", err)
	}

	var summary Summary
	walkErr := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Unreadable subtree: isolate and keep walking siblings.
			s.logger.Warn("library entry unreadable", logging.String(logging.FieldPath, path), logging.Error(err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !IsAudioPath(path) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			s.logger.Warn("resolve path failed", logging.String(logging.FieldPath, path), logging.Error(err))
			summary.Skipped++
			return nil
		}

		summary.Scanned++
		return s.scanFile(ctx, abs, records, &summary)
	})
	if walkErr != nil {
		return summary, fmt.Errorf("walk library root: %w", walkErr)
	}
	return summary, nil
}

func (s *Scanner) scanFile(ctx context.Context, path string, records state.Records, summary *Summary) error {
	if s.integrity != nil {
		if records.HasIntegrityFailure(path) {
			// Terminal until the library owner intervenes.
			summary.AlreadyFresh++
		} else {
			failed, err := s.checkIntegrity(ctx, path)
			if err != nil {
				return err
			}
			if failed {
				summary.IntegrityFailed++
			}
		}
	}

	if s.gain != nil {
		if records.HasGain(path) {
			summary.AlreadyFresh++
		} else if err := s.measureGain(ctx, path, summary); err != nil {
			return err
		}
	}
	return nil
}

// checkIntegrity probes one file. failed is true when a terminal integrity
// failure was recorded; the returned error is run-fatal only (state store
// write failure).
func (s *Scanner) checkIntegrity(ctx context.Context, path string) (bool, error) {
	probeCtx, cancel := s.callContext(ctx)
	err := s.integrity.Check(probeCtx, path)
	cancel()
	if err == nil {
		// Healthy files are not recorded; probing is side-effect-free.
		return false, nil
	}
	if !errors.Is(err, services.ErrIntegrity) {
		// Transient probe failure: retry next cycle, record nothing.
		s.logger.Debug("integrity probe failed", logging.String(logging.FieldPath, path), logging.Error(err))
		return false, nil
	}
	s.logger.Debug("integrity failure", logging.String(logging.FieldPath, path), logging.Error(err))
	if appendErr := s.store.Append(state.IntegrityFailureRecord(path, s.now())); appendErr != nil {
		return false, fmt.Errorf("record integrity failure for %s: %w", path, appendErr)
	}
	return true, nil
}

func (s *Scanner) measureGain(ctx context.Context, path string, summary *Summary) error {
	probeCtx, cancel := s.callContext(ctx)
	gain, raw, err := s.gain.Scan(probeCtx, path)
	cancel()
	if err != nil {
		summary.Skipped++
		s.logger.Debug("gain measurement skipped",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String("raw_output", strings.TrimSpace(raw)),
		)
		return nil
	}
	if err := s.store.Append(state.GainRecord(path, gain, s.now())); err != nil {
		return fmt.Errorf("record gain for %s: %w", path, err)
	}
	summary.Measured++
	s.logger.Debug("gain measured", logging.String(logging.FieldPath, path), logging.Float64(logging.FieldGain, gain))
	return nil
}

func (s *Scanner) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// IsAudioPath reports whether path carries the audio extension, matched
// case-insensitively.
func IsAudioPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

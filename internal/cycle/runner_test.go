package cycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gainhound/internal/cycle"
	"gainhound/internal/logging"
	"gainhound/internal/reencode"
	"gainhound/internal/runlock"
	"gainhound/internal/scanner"
	"gainhound/internal/services"
	"gainhound/internal/state"
	"gainhound/internal/testsupport"
)

type stubGain struct {
	gain  float64
	calls []string
}

func (s *stubGain) Scan(ctx context.Context, path string) (float64, string, error) {
	s.calls = append(s.calls, path)
	return s.gain, "raw", nil
}

type stubTranscoder struct {
	calls []string
}

func (s *stubTranscoder) Reencode(ctx context.Context, path string) error {
	s.calls = append(s.calls, path)
	return nil
}

func newRunner(t *testing.T, gain *stubGain, transcoder *stubTranscoder) (*cycle.Runner, *state.Store, *runlock.Lock, string) {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithReencode())
	store, err := state.NewStore(cfg.StatePath())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	lock, err := runlock.New(cfg.LockPath())
	if err != nil {
		t.Fatalf("runlock.New returned error: %v", err)
	}

	var scan *scanner.Scanner
	if gain != nil {
		scan, err = scanner.New(scanner.Options{
			Root:    cfg.Paths.LibraryDir,
			Store:   store,
			Gain:    gain,
			Timeout: time.Second,
			Logger:  logging.NewNop(),
		})
		if err != nil {
			t.Fatalf("scanner.New returned error: %v", err)
		}
	}

	var coordinator *reencode.Coordinator
	opts := reencode.Options{
		Store:       store,
		LibraryRoot: cfg.Paths.LibraryDir,
		Logger:      logging.NewNop(),
	}
	if transcoder != nil {
		opts.Transcoder = transcoder
	}
	coordinator, err = reencode.New(opts)
	if err != nil {
		t.Fatalf("reencode.New returned error: %v", err)
	}

	runner, err := cycle.New(cfg, lock, store, scan, coordinator, logging.NewNop())
	if err != nil {
		t.Fatalf("cycle.New returned error: %v", err)
	}

	path := testsupport.WriteLibraryFile(t, cfg, "loud.mp3", "x")
	return runner, store, lock, path
}

func TestRunFullCycle(t *testing.T) {
	gain := &stubGain{gain: -7.2}
	transcoder := &stubTranscoder{}
	runner, store, _, path := newRunner(t, gain, transcoder)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.CycleID == "" {
		t.Fatal("expected a cycle ID")
	}
	if result.LockHeld {
		t.Fatal("lock should not be held")
	}
	if result.Scan.Measured != 1 {
		t.Fatalf("unexpected scan summary: %+v", result.Scan)
	}
	if result.Reencode.Succeeded != 1 {
		t.Fatalf("unexpected reencode summary: %+v", result.Reencode)
	}
	if len(transcoder.calls) != 1 || transcoder.calls[0] != path {
		t.Fatalf("unexpected transcodes: %v", transcoder.calls)
	}

	// Record removed so the next cycle re-measures the new encode.
	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store after re-encode, got %+v", records)
	}
}

func TestRunWithinToleranceLeavesFileAlone(t *testing.T) {
	gain := &stubGain{gain: 1.3}
	transcoder := &stubTranscoder{}
	runner, store, _, path := newRunner(t, gain, transcoder)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Reencode.Candidates != 0 || len(transcoder.calls) != 0 {
		t.Fatalf("within-tolerance file must not be transcoded: %+v", result.Reencode)
	}

	rec, ok, err := store.Lookup(path)
	if err != nil || !ok {
		t.Fatalf("expected a fresh record, ok=%v err=%v", ok, err)
	}
	if g, _ := rec.GainDB(); g != 1.3 {
		t.Fatalf("unexpected recorded gain: %v", g)
	}
}

func TestRunLockHeldIsNoopSuccess(t *testing.T) {
	gain := &stubGain{gain: -7.2}
	runner, store, lock, _ := newRunner(t, gain, &stubTranscoder{})

	other, err := runlock.New(lock.Path())
	if err != nil {
		t.Fatalf("runlock.New returned error: %v", err)
	}
	held, err := other.TryAcquire()
	if err != nil || !held {
		t.Fatalf("prime lock: held=%v err=%v", held, err)
	}
	defer other.Release()

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("held lock must be a no-op success, got %v", err)
	}
	if !result.LockHeld {
		t.Fatal("expected LockHeld result")
	}
	if len(gain.calls) != 0 {
		t.Fatalf("no probes may run while the lock is held, got %v", gain.calls)
	}

	records, loadErr := store.Load()
	if loadErr != nil {
		t.Fatalf("Load returned error: %v", loadErr)
	}
	if len(records) != 0 {
		t.Fatalf("store must be untouched, got %+v", records)
	}
}

func TestRunReencodeConfigurationErrorSurfaces(t *testing.T) {
	gain := &stubGain{gain: -7.2}
	runner, _, _, _ := newRunner(t, gain, nil)

	result, err := runner.Run(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if result.Scan.Measured != 1 {
		t.Fatalf("scan step must still run: %+v", result.Scan)
	}
	if !errors.Is(result.ReencErr, services.ErrConfiguration) {
		t.Fatalf("expected reencode step error, got %v", result.ReencErr)
	}
}

func TestRunMissingProbeToolsFailScanStep(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// Empty PATH: no probe binary resolves.
	t.Setenv("PATH", t.TempDir())

	runner, err := cycle.NewFromConfig(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}

	result, err := runner.Run(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected a step-level configuration error, got %v", err)
	}
	if !errors.Is(result.ScanErr, services.ErrConfiguration) {
		t.Fatalf("expected ScanErr to carry the configuration error, got %v", result.ScanErr)
	}
	if result.Scan.Scanned != 0 {
		t.Fatalf("no per-file work may run without the tools: %+v", result.Scan)
	}
}

func TestRunReleasesLockAfterCycle(t *testing.T) {
	runner, _, lock, _ := newRunner(t, &stubGain{gain: 0}, &stubTranscoder{})

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	other, err := runlock.New(lock.Path())
	if err != nil {
		t.Fatalf("runlock.New returned error: %v", err)
	}
	held, err := other.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire returned error: %v", err)
	}
	if !held {
		t.Fatal("lock must be released after the cycle")
	}
	other.Release()
}

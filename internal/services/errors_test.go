package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gainhound/internal/services"
)

func TestWrapPreservesMarker(t *testing.T) {
	err := services.Wrap(services.ErrIntegrity, "mp3val", "check", errors.New("stream error"))
	if !errors.Is(err, services.ErrIntegrity) {
		t.Fatalf("marker lost: %v", err)
	}
	for _, want := range []string{"mp3val", "check", "stream error"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %v", want, err)
		}
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := services.Wrap(nil, "mp3gain", "scan", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool default, got %v", err)
	}
}

func TestTransientClassification(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{services.Wrap(services.ErrExternalTool, "mp3gain", "scan", nil), true},
		{services.Wrap(services.ErrParse, "mp3gain", "parse", nil), true},
		{services.Wrap(services.ErrTimeout, "mp3val", "check", nil), true},
		{services.Wrap(services.ErrIntegrity, "mp3val", "check", nil), false},
		{services.Wrap(services.ErrConfiguration, "reencode", "transcoder", nil), false},
	}
	for _, tc := range cases {
		if got := services.Transient(tc.err); got != tc.want {
			t.Errorf("Transient(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestCommandExecutorCapturesOutput(t *testing.T) {
	out, err := services.CommandExecutor{}.Run(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCommandExecutorNonZeroExit(t *testing.T) {
	out, err := services.CommandExecutor{}.Run(context.Background(), "sh", "-c", "echo oops; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(out, "oops") {
		t.Fatalf("output lost on failure: %q", out)
	}
}

func TestCommandExecutorDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := services.CommandExecutor{}.Run(ctx, "sh", "-c", "sleep 5")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

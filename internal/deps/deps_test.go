package deps_test

import (
	"testing"

	"gainhound/internal/deps"
	"gainhound/internal/testsupport"
)

func TestForConfigDerivesRequiredFromSteps(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Scan.GainCheck = true
	cfg.Scan.IntegrityCheck = false
	cfg.Scan.Reencode = true

	byName := map[string]bool{}
	for _, req := range deps.ForConfig(cfg) {
		byName[req.Name] = req.Required
	}
	if !byName["mp3gain"] || byName["mp3val"] || !byName["ffmpeg"] {
		t.Fatalf("unexpected requirement flags: %v", byName)
	}
}

func TestCheckBinaries(t *testing.T) {
	testsupport.StubBinary(t, "fakegain", "")

	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "present", Command: "fakegain"},
		{Name: "missing", Command: "definitely-not-on-path-anywhere"},
		{Name: "unset", Command: "  "},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("stubbed binary should be available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("missing binary should carry a detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail == "" {
		t.Fatalf("unset command should carry a detail: %+v", statuses[2])
	}
}

func TestAvailable(t *testing.T) {
	testsupport.StubBinary(t, "fakeval", "")
	if !deps.Available("fakeval") {
		t.Fatal("expected stubbed binary to resolve")
	}
	if deps.Available("definitely-not-on-path-anywhere") {
		t.Fatal("expected missing binary to be unavailable")
	}
	if deps.Available("") {
		t.Fatal("empty command is never available")
	}
}

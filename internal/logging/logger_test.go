package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gainhound/internal/logging"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithComponent(logger, "scanner").Info("gain measured",
		logging.String(logging.FieldPath, "/music/a.mp3"),
		logging.Float64(logging.FieldGain, -7.2),
	)

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO scanner: gain measured") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "path=/music/a.mp3") || !strings.Contains(line, "gain_db=-7.2") {
		t.Fatalf("missing attrs in console line: %q", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("event", logging.String(logging.FieldPath, "/music/My Album/track.mp3"))

	if !strings.Contains(buf.String(), `path="/music/My Album/track.mp3"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("cycle complete", logging.Int("scanned", 3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "cycle complete" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if _, err := time.Parse(time.RFC3339, entry["ts"].(string)); err != nil {
		t.Fatalf("ts is not RFC3339: %v", entry["ts"])
	}
	if entry["scanned"] != float64(3) {
		t.Fatalf("unexpected scanned: %v", entry["scanned"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("dropped")
	logger.Debug("dropped too")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("below-threshold lines leaked: %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Fatalf("expected warn line: %q", out)
	}
}

func TestUnknownFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing to see", logging.Error(nil))
}

package mp3gain_test

import (
	"errors"
	"testing"

	"gainhound/internal/services"
	"gainhound/internal/services/mp3gain"
)

func TestParseGainStrictTabular(t *testing.T) {
	output := "File\tMP3 gain\tdB gain\tMax Amplitude\n/x.mp3\t3\t-7.2\t30045\n"
	gain, err := mp3gain.ParseGain(output)
	if err != nil {
		t.Fatalf("ParseGain returned error: %v", err)
	}
	if gain != -7.2 {
		t.Fatalf("expected -7.2, got %v", gain)
	}
}

func TestParseGainScenarioRow(t *testing.T) {
	// Header plus one data row, third field carries the dB gain.
	output := "File\tMP3 gain\tdB gain\n/x.mp3\t3\t-7.2"
	gain, err := mp3gain.ParseGain(output)
	if err != nil {
		t.Fatalf("ParseGain returned error: %v", err)
	}
	if gain != -7.2 {
		t.Fatalf("expected -7.2, got %v", gain)
	}
}

func TestParseGainFallbackLabel(t *testing.T) {
	output := "Recommended \"Track\" dB change: blah\ndB gain: +4.35\n"
	gain, err := mp3gain.ParseGain(output)
	if err != nil {
		t.Fatalf("ParseGain returned error: %v", err)
	}
	if gain != 4.35 {
		t.Fatalf("expected 4.35, got %v", gain)
	}
}

func TestParseGainPositiveStrict(t *testing.T) {
	output := "File\tMP3 gain\tdB gain\n/y.mp3\t-2\t+3.10\n"
	gain, err := mp3gain.ParseGain(output)
	if err != nil {
		t.Fatalf("ParseGain returned error: %v", err)
	}
	if gain != 3.10 {
		t.Fatalf("expected 3.10, got %v", gain)
	}
}

func TestParseGainRejectsGarbage(t *testing.T) {
	for _, output := range []string{
		"",
		"no usable fields here",
		"File\tMP3 gain\tdB gain\n/music/odd.ext\tx\tnot-a-number\n",
		"a\tb\t1.2.3\n",
	} {
		if _, err := mp3gain.ParseGain(output); err == nil {
			t.Fatalf("expected parse error for %q", output)
		} else if !errors.Is(err, services.ErrParse) {
			t.Fatalf("expected ErrParse for %q, got %v", output, err)
		}
	}
}

func TestParseGainSkipsHeaderOnly(t *testing.T) {
	if _, err := mp3gain.ParseGain("File\tMP3 gain\tdB gain\n"); err == nil {
		t.Fatal("expected error when only the header row is present")
	}
}

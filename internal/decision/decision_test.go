package decision_test

import (
	"testing"
	"time"

	"gainhound/internal/decision"
	"gainhound/internal/state"
)

func TestEvaluateStrictThreshold(t *testing.T) {
	cases := []struct {
		gain      float64
		threshold float64
		want      decision.Outcome
	}{
		{gain: 0, threshold: 5, want: decision.WithinTolerance},
		{gain: 4.99, threshold: 5, want: decision.WithinTolerance},
		{gain: 5.0, threshold: 5, want: decision.WithinTolerance},
		{gain: 5.01, threshold: 5, want: decision.ExceedsTolerance},
		{gain: -5.0, threshold: 5, want: decision.WithinTolerance},
		{gain: -5.01, threshold: 5, want: decision.ExceedsTolerance},
		{gain: -7.2, threshold: 5, want: decision.ExceedsTolerance},
		{gain: 7.2, threshold: -5, want: decision.ExceedsTolerance},
		{gain: 3.0, threshold: -5, want: decision.WithinTolerance},
	}
	for _, tc := range cases {
		if got := decision.Evaluate(tc.gain, tc.threshold); got != tc.want {
			t.Errorf("Evaluate(%v, %v) = %v, want %v", tc.gain, tc.threshold, got, tc.want)
		}
	}
}

func TestCandidatesDerivedFromLatestRecords(t *testing.T) {
	at := time.Now()
	records := state.Records{
		state.GainRecord("/music/loud.mp3", -7.2, at),
		state.GainRecord("/music/quiet.mp3", 1.3, at),
		state.IntegrityFailureRecord("/music/broken.mp3", at),
		state.GainRecord("/music/fixed.mp3", -9.0, at),
		state.GainRecord("/music/fixed.mp3", 0.5, at.Add(time.Minute)),
		state.GainRecord("/music/cover.jpg", -8.0, at),
	}

	candidates := decision.Candidates(records, 5.0)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %+v", candidates)
	}
	if candidates[0].Path != "/music/loud.mp3" || candidates[0].GainDB != -7.2 {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
}

func TestCandidatesPreserveStoreOrder(t *testing.T) {
	at := time.Now()
	records := state.Records{
		state.GainRecord("/music/b.mp3", 9.0, at),
		state.GainRecord("/music/a.mp3", -8.0, at),
	}
	candidates := decision.Candidates(records, 5.0)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Path != "/music/b.mp3" || candidates[1].Path != "/music/a.mp3" {
		t.Fatalf("store order not preserved: %+v", candidates)
	}
}

func TestCandidatesSurviveLaterIntegrityMarker(t *testing.T) {
	at := time.Now()
	records := state.Records{
		state.GainRecord("/music/loud.mp3", -7.2, at),
		state.IntegrityFailureRecord("/music/loud.mp3", at.Add(time.Minute)),
	}

	candidates := decision.Candidates(records, 5.0)
	if len(candidates) != 1 {
		t.Fatalf("failure marker must not hide the gain record, got %+v", candidates)
	}
	if candidates[0].Path != "/music/loud.mp3" || candidates[0].GainDB != -7.2 {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
}

func TestOutcomeString(t *testing.T) {
	if decision.ExceedsTolerance.String() != "exceeds-tolerance" {
		t.Fatalf("unexpected string: %s", decision.ExceedsTolerance)
	}
	if decision.WithinTolerance.String() != "within-tolerance" {
		t.Fatalf("unexpected string: %s", decision.WithinTolerance)
	}
}

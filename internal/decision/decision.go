// Package decision classifies measured gain values against the configured
// threshold. It is a pure function of the measurement and the threshold: no
// hysteresis, no per-file overrides.
package decision

import (
	"math"
	"strings"

	"gainhound/internal/state"
)

// Outcome is the tolerance classification for one measured file.
type Outcome int

const (
	// WithinTolerance means the file needs no work. Equality with the
	// threshold is tolerated.
	WithinTolerance Outcome = iota
	// ExceedsTolerance flags the file for re-encoding.
	ExceedsTolerance
)

func (o Outcome) String() string {
	if o == ExceedsTolerance {
		return "exceeds-tolerance"
	}
	return "within-tolerance"
}

// Evaluate classifies a measured gain. Both the measurement and the
// configured threshold are taken by absolute value, so negative thresholds
// behave symmetrically.
func Evaluate(gainDB, thresholdDB float64) Outcome {
	if math.Abs(gainDB) > math.Abs(thresholdDB) {
		return ExceedsTolerance
	}
	return WithinTolerance
}

// Candidate is a file flagged for re-encoding. The flag is derived from the
// store on every evaluation, never persisted.
type Candidate struct {
	Path   string
	GainDB float64
}

// Candidates derives the re-encode set from the most recent gain record per
// path, preserving store order. Integrity markers appended after a gain
// record do not shadow it: a broken file that also measured over threshold
// stays a candidate.
func Candidates(records state.Records, thresholdDB float64) []Candidate {
	index := make(map[string]int)
	latest := make([]Candidate, 0)
	for _, rec := range records {
		gain, ok := rec.GainDB()
		if !ok {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(rec.Path), ".mp3") {
			continue
		}
		if i, seen := index[rec.Path]; seen {
			latest[i].GainDB = gain
			continue
		}
		index[rec.Path] = len(latest)
		latest = append(latest, Candidate{Path: rec.Path, GainDB: gain})
	}

	var out []Candidate
	for _, cand := range latest {
		if Evaluate(cand.GainDB, thresholdDB) == ExceedsTolerance {
			out = append(out, cand)
		}
	}
	return out
}

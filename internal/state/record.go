package state

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IntegrityFailMarker is the fixed value recorded for files that failed the
// structural integrity probe.
const IntegrityFailMarker = "integrity=FAIL"

// Record is one processed-file entry. Identity is the absolute path; renames
// produce new records.
type Record struct {
	Timestamp time.Time
	Path      string
	Value     string
}

// GainRecord builds a record carrying a measured gain value.
func GainRecord(path string, gainDB float64, at time.Time) Record {
	return Record{Timestamp: at, Path: path, Value: FormatGain(gainDB)}
}

// IntegrityFailureRecord builds a record marking a terminal integrity failure.
func IntegrityFailureRecord(path string, at time.Time) Record {
	return Record{Timestamp: at, Path: path, Value: IntegrityFailMarker}
}

// GainDB returns the parsed gain value when the record carries one.
func (r Record) GainDB() (float64, bool) {
	gain, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64)
	if err != nil {
		return 0, false
	}
	return gain, true
}

// IntegrityFailed reports whether the record marks an integrity failure.
func (r Record) IntegrityFailed() bool {
	return r.Value == IntegrityFailMarker
}

// FormatGain renders a gain value the way the log stores it.
func FormatGain(gainDB float64) string {
	return strconv.FormatFloat(gainDB, 'f', 2, 64)
}

func (r Record) line() string {
	return fmt.Sprintf("%s\t%s\t%s\n", r.Timestamp.UTC().Format(time.RFC3339), r.Path, r.Value)
}

func parseLine(line string) (Record, bool) {
	trimmed := strings.TrimRight(line, "\n")
	if trimmed == "" {
		return Record{}, false
	}
	parts := strings.Split(trimmed, "\t")
	if len(parts) != 3 {
		return Record{}, false
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[0]))
	if err != nil {
		return Record{}, false
	}
	path := parts[1]
	if path == "" {
		return Record{}, false
	}
	return Record{Timestamp: ts, Path: path, Value: parts[2]}, true
}

// Records is an in-memory load of the log in append order.
type Records []Record

// Lookup returns the most recent record for path.
func (rs Records) Lookup(path string) (Record, bool) {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].Path == path {
			return rs[i], true
		}
	}
	return Record{}, false
}

// HasGain reports whether path has a gain measurement on record. Integrity
// markers for the same path do not shadow it.
func (rs Records) HasGain(path string) bool {
	_, ok := rs.LatestGain(path)
	return ok
}

// LatestGain returns the most recent gain-carrying record for path, looking
// past any integrity markers appended after it.
func (rs Records) LatestGain(path string) (Record, bool) {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].Path != path {
			continue
		}
		if _, ok := rs[i].GainDB(); ok {
			return rs[i], true
		}
	}
	return Record{}, false
}

// HasIntegrityFailure reports whether any record for path marks an integrity
// failure. The marker is terminal; gain records appended later do not clear
// it, only removing the record does.
func (rs Records) HasIntegrityFailure(path string) bool {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].Path == path && rs[i].IntegrityFailed() {
			return true
		}
	}
	return false
}

// Latest collapses the log to the most recent record per path, preserving
// first-seen order.
func (rs Records) Latest() Records {
	seen := make(map[string]int, len(rs))
	out := make(Records, 0, len(rs))
	for _, rec := range rs {
		if idx, ok := seen[rec.Path]; ok {
			out[idx] = rec
			continue
		}
		seen[rec.Path] = len(out)
		out = append(out, rec)
	}
	return out
}

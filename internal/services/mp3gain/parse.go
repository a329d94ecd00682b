package mp3gain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"gainhound/internal/services"
)

var (
	signedDecimal = regexp.MustCompile(`^[-+]?[0-9]+(?:\.[0-9]+)?$`)
	looseGain     = regexp.MustCompile(`(?i)dB gain[^-+0-9]*([-+]?[0-9]+(?:\.[0-9]+)?)`)
)

// ParseGain extracts the track gain from mp3gain output.
//
// Strict pass: the third tab-separated field of the first data row, skipping
// the "File ..." header. Fallback: a loose search for a "dB gain" label
// followed by a signed decimal. Either way the value must match the
// signed-decimal grammar before it is accepted.
func ParseGain(output string) (float64, error) {
	if gain, ok := strictParse(output); ok {
		return gain, nil
	}
	if match := looseGain.FindStringSubmatch(output); match != nil {
		if gain, err := strconv.ParseFloat(match[1], 64); err == nil {
			return gain, nil
		}
	}
	return 0, services.Wrap(services.ErrParse, "mp3gain", "parse gain", errors.New("no gain value in output"))
}

func strictParse(output string) (float64, bool) {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		if strings.TrimSpace(fields[0]) == "File" {
			// Header row.
			continue
		}
		candidate := strings.TrimSpace(fields[2])
		if !signedDecimal.MatchString(candidate) {
			continue
		}
		gain, err := strconv.ParseFloat(candidate, 64)
		if err != nil {
			continue
		}
		return gain, true
	}
	return 0, false
}

// Package deps reports availability of the external collaborator binaries.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"gainhound/internal/config"
)

// Requirement defines an external tool gainhound relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Required is true when the currently enabled steps cannot run without it.
	Required bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// ForConfig derives the tool requirements from the enabled processing steps.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "mp3gain",
			Command:     cfg.Tools.MP3Gain,
			Description: "gain measurement and APE tag removal",
			Required:    cfg.Scan.GainCheck,
		},
		{
			Name:        "mp3val",
			Command:     cfg.Tools.MP3Val,
			Description: "structural integrity probe",
			Required:    cfg.Scan.IntegrityCheck,
		},
		{
			Name:        "ffmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "destructive re-encode",
			Required:    cfg.Scan.Reencode,
		},
	}
}

// CheckBinaries evaluates the provided requirements against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Available reports whether the named binary resolves on PATH.
func Available(binary string) bool {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return false
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

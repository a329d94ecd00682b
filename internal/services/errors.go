package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks a collaborator invocation that exited non-zero
	// or could not be started. Transient: retried on the next cycle.
	ErrExternalTool = errors.New("external tool error")
	// ErrParse marks tool output that yielded no usable value. Transient.
	ErrParse = errors.New("parse error")
	// ErrIntegrity marks a structurally invalid file. Terminal for the file
	// until the library owner intervenes.
	ErrIntegrity = errors.New("integrity failure")
	// ErrConfiguration marks a missing binary or unusable setting. Fatal for
	// the step that needs it, never for the whole cycle.
	ErrConfiguration = errors.New("configuration error")
	// ErrTimeout marks an external call cancelled by its deadline. Treated
	// like any other transient per-file failure.
	ErrTimeout = errors.New("timeout")
)

// Wrap builds an error tagged with marker while preserving component and
// operation context for log readability.
func Wrap(marker error, component, operation string, err error) error {
	detail := buildDetail(component, operation)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Transient reports whether err should be retried on the next cycle rather
// than recorded or escalated.
func Transient(err error) bool {
	return errors.Is(err, ErrExternalTool) || errors.Is(err, ErrParse) || errors.Is(err, ErrTimeout)
}

func buildDetail(component, operation string) string {
	parts := make([]string, 0, 2)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

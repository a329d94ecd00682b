package services

import (
	"context"
	"errors"
	"os/exec"
)

// Executor abstracts external command execution for testability. Run returns
// the combined stdout/stderr output; a non-zero exit surfaces as an error
// alongside whatever output the tool produced.
type Executor interface {
	Run(ctx context.Context, binary string, args ...string) (string, error)
}

// CommandExecutor runs commands via os/exec.
type CommandExecutor struct{}

func (CommandExecutor) Run(ctx context.Context, binary string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	out, err := cmd.CombinedOutput()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return string(out), ErrTimeout
	}
	return string(out), err
}

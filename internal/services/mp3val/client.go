package mp3val

import (
	"context"
	"errors"
	"strings"

	"gainhound/internal/services"
)

// Client wraps mp3val CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// New constructs an mp3val client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mp3val binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Check probes the file's container and stream structure. A nil return means
// the file is healthy; ErrIntegrity marks it structurally invalid; ErrTimeout
// and ErrExternalTool are transient probe failures.
func (c *Client) Check(ctx context.Context, path string) error {
	out, err := c.exec.Run(ctx, c.binary, path)
	if err == nil {
		return nil
	}
	if errors.Is(err, services.ErrTimeout) {
		return services.Wrap(services.ErrTimeout, "mp3val", "check", nil)
	}
	detail := err
	if snippet := firstLine(out); snippet != "" {
		detail = errors.New(snippet)
	}
	return services.Wrap(services.ErrIntegrity, "mp3val", "check", detail)
}

func firstLine(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

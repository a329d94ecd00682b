package mp3gain

import (
	"context"
	"errors"
	"strings"

	"gainhound/internal/services"
)

// Client wraps mp3gain CLI interactions.
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

// New constructs an mp3gain client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mp3gain binary required")
	}
	client := &Client{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Scan measures the file's track gain without modifying it and returns the
// parsed decibel value along with the raw tool output for diagnostics.
func (c *Client) Scan(ctx context.Context, path string) (float64, string, error) {
	// -o: tab-delimited output, -s s: skip tag storage (read-only).
	out, err := c.exec.Run(ctx, c.binary, "-o", "-s", "s", path)
	if err != nil {
		if errors.Is(err, services.ErrTimeout) {
			return 0, out, services.Wrap(services.ErrTimeout, "mp3gain", "scan", nil)
		}
		return 0, out, services.Wrap(services.ErrExternalTool, "mp3gain", "scan", err)
	}
	if strings.TrimSpace(out) == "" {
		return 0, out, services.Wrap(services.ErrExternalTool, "mp3gain", "scan", errors.New("empty output"))
	}
	gain, err := ParseGain(out)
	if err != nil {
		return 0, out, err
	}
	return gain, out, nil
}

// StripTags removes mp3gain APEv2 tags from the file. Normal ID3 frames are
// untouched.
func (c *Client) StripTags(ctx context.Context, path string) error {
	if _, err := c.exec.Run(ctx, c.binary, "-s", "d", path); err != nil {
		return services.Wrap(services.ErrExternalTool, "mp3gain", "strip tags", err)
	}
	return nil
}

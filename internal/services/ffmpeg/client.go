package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gainhound/internal/services"
)

// Client wraps ffmpeg CLI interactions for in-place MP3 re-encoding.
type Client struct {
	binary     string
	vbrQuality int
	id3Version int
	exec       services.Executor
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

// New constructs an ffmpeg client. vbrQuality is the libmp3lame -q:a value;
// id3Version selects the ID3v2 tag version written to the output.
func New(binary string, vbrQuality, id3Version int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary:     binary,
		vbrQuality: vbrQuality,
		id3Version: id3Version,
		exec:       services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Reencode re-encodes path in place, preserving streams and metadata. On any
// failure the temp output is removed and the source file is left untouched.
func (c *Client) Reencode(ctx context.Context, path string) error {
	tmp := path + ".reenc.tmp.mp3"
	args := []string{
		"-y",
		"-i", path,
		"-map", "0",
		"-map_metadata", "0",
		"-codec:a", "libmp3lame",
		"-q:a", strconv.Itoa(c.vbrQuality),
		"-id3v2_version", strconv.Itoa(c.id3Version),
		tmp,
	}
	out, err := c.exec.Run(ctx, c.binary, args...)
	if err != nil {
		_ = os.Remove(tmp)
		if errors.Is(err, services.ErrTimeout) {
			return services.Wrap(services.ErrTimeout, "ffmpeg", "reencode", nil)
		}
		detail := err
		if snippet := outputSnippet(out); snippet != "" {
			detail = fmt.Errorf("%w: %s", err, snippet)
		}
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "reencode", detail)
	}

	// Temp file lives next to the source, so the rename is atomic.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "replace source", err)
	}
	return nil
}

func outputSnippet(out string) string {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "\n", " ")
	const max = 240
	if len(trimmed) > max {
		trimmed = trimmed[:max]
	}
	return trimmed
}

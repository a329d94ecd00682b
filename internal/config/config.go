package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
}

// Scan controls which processing steps run and how files are measured.
type Scan struct {
	IntegrityCheck     bool    `toml:"integrity_check"`
	GainCheck          bool    `toml:"gain_check"`
	Reencode           bool    `toml:"reencode"`
	GainThresholdDB    float64 `toml:"gain_threshold_db"`
	ToolTimeoutSeconds int     `toml:"tool_timeout_seconds"`
}

// Reencode contains configuration for the destructive re-encode step.
type Reencode struct {
	MaxBatch   int  `toml:"max_batch"`
	VBRQuality int  `toml:"vbr_quality"`
	ID3Version int  `toml:"id3_version"`
	DryRun     bool `toml:"dry_run"`
}

// Watcher contains configuration for the filesystem trigger source.
type Watcher struct {
	CooldownSeconds     int    `toml:"cooldown_seconds"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
	Mode                string `toml:"mode"`
}

// Tools names the external collaborator binaries.
type Tools struct {
	MP3Gain string `toml:"mp3gain"`
	MP3Val  string `toml:"mp3val"`
	FFmpeg  string `toml:"ffmpeg"`
}

// Plex contains configuration for the downstream analysis trigger.
type Plex struct {
	Enabled               bool   `toml:"enabled"`
	URL                   string `toml:"url"`
	Token                 string `toml:"token"`
	Library               string `toml:"library"`
	AnalyzeLoudness       bool   `toml:"analyze_loudness"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates every knob the CLI and watcher daemon need.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Scan     Scan     `toml:"scan"`
	Reencode Reencode `toml:"reencode"`
	Watcher  Watcher  `toml:"watcher"`
	Tools    Tools    `toml:"tools"`
	Plex     Plex     `toml:"plex"`
	Logging  Logging  `toml:"logging"`

	// Warnings collects normalization fallbacks applied while loading so the
	// caller can surface them once a logger exists.
	Warnings []string `toml:"-"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() string {
	return "~/.config/gainhound/config.toml"
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist. An empty path means the default location.
func Load(path string) (*Config, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		resolved = DefaultConfigPath()
	}
	expanded, err := expandPath(resolved)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", expanded, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults apply; a missing config file never blocks startup.
	default:
		return nil, fmt.Errorf("read config %s: %w", expanded, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	cfg.validate()
	return &cfg, nil
}

// StatePath returns the processed-record log location inside the data dir.
func (c *Config) StatePath() string {
	return filepath.Join(c.Paths.DataDir, "processed.list")
}

// LockPath returns the run-lock file location inside the data dir.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "gainhound.lock")
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Render returns the effective configuration as TOML.
func (c *Config) Render() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(data), nil
}

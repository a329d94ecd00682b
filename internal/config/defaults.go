package config

const (
	defaultLibraryDir          = "~/music"
	defaultDataDir             = "~/.local/share/gainhound"
	defaultGainThresholdDB     = 5.0
	defaultToolTimeoutSeconds  = 300
	defaultVBRQuality          = 2
	defaultID3Version          = 3
	defaultCooldownSeconds     = 60
	defaultPollIntervalSeconds = 30
	defaultWatcherMode         = "auto"
	defaultMP3GainBinary       = "mp3gain"
	defaultMP3ValBinary        = "mp3val"
	defaultFFmpegBinary        = "ffmpeg"
	defaultPlexLibrary         = "Music"
	defaultPlexTimeoutSeconds  = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
		},
		Scan: Scan{
			IntegrityCheck:     true,
			GainCheck:          true,
			Reencode:           false,
			GainThresholdDB:    defaultGainThresholdDB,
			ToolTimeoutSeconds: defaultToolTimeoutSeconds,
		},
		Reencode: Reencode{
			MaxBatch:   0,
			VBRQuality: defaultVBRQuality,
			ID3Version: defaultID3Version,
		},
		Watcher: Watcher{
			CooldownSeconds:     defaultCooldownSeconds,
			PollIntervalSeconds: defaultPollIntervalSeconds,
			Mode:                defaultWatcherMode,
		},
		Tools: Tools{
			MP3Gain: defaultMP3GainBinary,
			MP3Val:  defaultMP3ValBinary,
			FFmpeg:  defaultFFmpegBinary,
		},
		Plex: Plex{
			Library:               defaultPlexLibrary,
			RequestTimeoutSeconds: defaultPlexTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

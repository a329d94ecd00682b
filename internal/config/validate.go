package config

// validate repairs out-of-range numeric knobs instead of failing startup,
// recording a warning for each fallback.
func (c *Config) validate() {
	if c.Scan.GainThresholdDB == 0 {
		c.warnf("scan.gain_threshold_db: zero threshold flags every measured file, using %.1f", defaultGainThresholdDB)
		c.Scan.GainThresholdDB = defaultGainThresholdDB
	}
	if c.Scan.ToolTimeoutSeconds <= 0 {
		c.Scan.ToolTimeoutSeconds = defaultToolTimeoutSeconds
	}
	if c.Reencode.MaxBatch < 0 {
		c.warnf("reencode.max_batch: negative value, treating as unlimited")
		c.Reencode.MaxBatch = 0
	}
	if c.Reencode.VBRQuality < 0 || c.Reencode.VBRQuality > 9 {
		c.warnf("reencode.vbr_quality: %d outside 0-9, using %d", c.Reencode.VBRQuality, defaultVBRQuality)
		c.Reencode.VBRQuality = defaultVBRQuality
	}
	if c.Reencode.ID3Version != 3 && c.Reencode.ID3Version != 4 {
		c.warnf("reencode.id3_version: %d unsupported, using %d", c.Reencode.ID3Version, defaultID3Version)
		c.Reencode.ID3Version = defaultID3Version
	}
	if c.Watcher.CooldownSeconds <= 0 {
		c.warnf("watcher.cooldown_seconds: non-positive value, using %d", defaultCooldownSeconds)
		c.Watcher.CooldownSeconds = defaultCooldownSeconds
	}
	if c.Watcher.PollIntervalSeconds <= 0 {
		c.warnf("watcher.poll_interval_seconds: non-positive value, using %d", defaultPollIntervalSeconds)
		c.Watcher.PollIntervalSeconds = defaultPollIntervalSeconds
	}
}

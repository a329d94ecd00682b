// Package logging constructs the slog loggers used across gainhound.
//
// Two handler formats are supported: a terse console format intended for
// interactive use and supervisory logs (timestamp, level, component, message,
// key=value pairs), and a JSON format for ingestion. Field key constants keep
// attribute names consistent between components so per-file diagnostics stay
// greppable.
//
// Run summaries are logged at info; per-file diagnostics at debug. Keeping the
// two apart is what makes the supervisory channel scannable.
package logging

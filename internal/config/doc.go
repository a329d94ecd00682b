// Package config loads, normalizes, and validates gainhound configuration.
//
// It supplies repository defaults, expands tilde paths, reads TOML files, and
// honours environment fallbacks such as PLEX_TOKEN. Malformed or missing
// values fall back to the documented defaults with a warning rather than
// blocking startup.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and validated numeric knobs.
package config

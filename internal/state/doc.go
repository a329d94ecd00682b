// Package state persists per-file processing records in an append-oriented,
// line-oriented, tab-delimited log.
//
// Each line is "<RFC3339 timestamp>\t<absolute path>\t<value>" where value is
// a signed decimal gain in decibels or the integrity failure marker. The
// format stays human-greppable on purpose: the log doubles as the operator's
// audit trail. Lookups are last-write-wins; appends are one write call per
// line so records stay line-atomic. Malformed lines are skipped on load, not
// treated as corruption.
package state

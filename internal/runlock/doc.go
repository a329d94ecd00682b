// Package runlock provides the advisory file lock that serializes
// orchestration cycles.
//
// The lock is an OS-level flock released automatically when the owning
// process exits, so a crashed run can never leave a stale lock behind. At
// most one cycle holds it at a time; a held lock is reported as contention,
// not as an error.
package runlock

// Package watcher turns filesystem changes under the library root into
// debounced orchestration triggers.
//
// Two event sources sit behind one interface: native filesystem notifications
// via fsnotify, and a polling fallback that diffs modification times against
// a rolling snapshot. Selection happens at startup by capability probing
// unless the configuration forces a mode. Bursts of events within the
// cooldown window collapse into at most one trigger, and triggers that land
// while the run lock is held are dropped without queueing.
package watcher

// Package plex implements the downstream analysis trigger against a Plex
// media server.
//
// The trigger is fire-and-forget: resolve the music section, request a
// library scan, and optionally a deep analyze so the server refreshes
// loudness data for re-encoded files. When Plex is not configured a noop
// implementation is returned and the coordinator proceeds without it.
package plex

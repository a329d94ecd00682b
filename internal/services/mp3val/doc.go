// Package mp3val wraps the mp3val command-line tool for structural integrity
// probing. The probe is side-effect-free; a non-zero exit marks the file
// structurally invalid.
package mp3val

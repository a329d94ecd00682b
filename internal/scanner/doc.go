// Package scanner walks the library root and classifies every candidate MP3.
//
// Each file yields one of three outcomes: measured (gain parsed and
// recorded), integrity-failed (probe exited non-zero, terminal record
// appended), or skipped (fresh record already present, or a transient tool
// failure eligible for retry next cycle). File-level failures are isolated
// and counted; only an unwritable state store aborts the run.
package scanner

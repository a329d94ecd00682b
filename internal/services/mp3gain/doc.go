// Package mp3gain wraps the mp3gain command-line tool for read-only gain
// measurement and APEv2 tag removal.
//
// Measurement never modifies the file; the destructive path (tag stripping
// after a re-encode) is a separate call. Output parsing lives in parse.go and
// is unit-testable against captured tool output.
package mp3gain

// Package ffmpeg wraps the ffmpeg command-line encoder for destructive MP3
// re-encodes. The source file is replaced atomically: ffmpeg writes to a temp
// file in the same directory and the swap happens with a single rename.
package ffmpeg

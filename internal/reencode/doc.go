// Package reencode sequences the destructive transcode step over the files
// flagged as exceeding tolerance.
//
// A successful re-encode removes the file's processing record so the next
// scan measures the new gain fresh; re-verification is deliberately deferred
// to the next cycle. One file's failure never aborts the batch. The
// downstream analysis hook fires exactly once per batch with at least one
// success.
package reencode

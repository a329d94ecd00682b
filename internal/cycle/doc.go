// Package cycle sequences one orchestration run: scan, decide, re-encode.
//
// A run acquires the run lock at entry and releases it unconditionally at
// exit. A held lock is legitimate concurrent activity, reported as a no-op
// success. Each enabled step's failure is caught and logged so later steps
// still run; the first step error is carried back to the caller for exit-code
// propagation.
package cycle

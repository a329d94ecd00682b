// Package services defines the error taxonomy shared by the external tool
// clients and the components that invoke them.
//
// Sentinel markers classify failures: transient per-file tool errors retry on
// the next cycle, integrity failures are terminal per file, configuration
// errors (missing binaries) skip a whole step, and lock contention is a no-op
// success. Wrap tags an error with a marker so callers can classify with
// errors.Is without parsing messages.
package services

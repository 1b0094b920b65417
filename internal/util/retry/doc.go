// Package retry repeats best-effort operations with exponential backoff.
//
// Provisioning stages are fail-fast and never retry; this package is only
// used by informational checks, such as DNS propagation probes, whose
// answers are expected to lag.
package retry

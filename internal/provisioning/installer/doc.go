// Package installer runs openshift-install against the rendered manifest.
//
// The run is synchronous and its output is streamed to the console without
// parsing. It is the only stage that is not idempotent, so it is never
// retried.
package installer

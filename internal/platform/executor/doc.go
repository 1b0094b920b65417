// Package executor runs external binaries synchronously.
//
// Output is streamed to the caller's writers and never parsed; callers only
// see the exit status, or the captured stdout when they ask for it.
package executor

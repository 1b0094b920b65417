// Package fsutil writes secret-bearing files with owner-only permissions and
// hands their ownership to the operating-system user a run provisions for.
package fsutil

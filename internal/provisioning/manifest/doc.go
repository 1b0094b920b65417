// Package manifest renders install-config.yaml and keeps a byte-identical backup.
//
// The installer consumes install-config.yaml when it runs, so the backup is
// the only surviving record of what was requested.
package manifest

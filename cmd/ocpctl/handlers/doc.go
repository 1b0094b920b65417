// Package handlers implements the business logic for CLI commands.
//
// Handlers load and validate configuration, build the real collaborators
// through package-level factory variables (replaced in tests), and run the
// matching orchestration plan.
package handlers

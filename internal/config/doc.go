// Package config defines the run configuration shared by every provisioning stage.
//
// A [Config] is assembled from built-in defaults, an optional YAML file,
// environment variables, and finally command-line flags. The fixed install
// topology (node counts, instance sizes, network CIDRs) lives here too, so
// operators can adjust it without touching the manifest renderer.
package config

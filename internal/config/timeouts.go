package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ProbeAttempts   int           // Attempts per nameserver for the propagation probe
	ProbeDelay      time.Duration // Initial delay between probe attempts
	ProbeTimeout    time.Duration // Timeout of a single DNS query
	DownloadTimeout time.Duration // Timeout for one archive download
	APITimeout      time.Duration // Timeout for a single cloud API call
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - OCPCTL_PROBE_ATTEMPTS (default: 3)
//   - OCPCTL_PROBE_DELAY (default: 2s)
//   - OCPCTL_PROBE_TIMEOUT (default: 5s)
//   - OCPCTL_DOWNLOAD_TIMEOUT (default: 15m)
//   - OCPCTL_API_TIMEOUT (default: 60s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ProbeAttempts:   parseInt("OCPCTL_PROBE_ATTEMPTS", 3),
		ProbeDelay:      parseDuration("OCPCTL_PROBE_DELAY", 2*time.Second),
		ProbeTimeout:    parseDuration("OCPCTL_PROBE_TIMEOUT", 5*time.Second),
		DownloadTimeout: parseDuration("OCPCTL_DOWNLOAD_TIMEOUT", 15*time.Minute),
		APITimeout:      parseDuration("OCPCTL_API_TIMEOUT", 60*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

// parseInt parses a positive integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}

	return i
}

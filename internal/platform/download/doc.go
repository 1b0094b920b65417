// Package download fetches release archives over HTTP and unpacks them.
package download

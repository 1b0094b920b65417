// Package access deploys the installer's admin kubeconfig for the target
// user and collects the connection details shown after a successful install.
// It optionally archives the manifest backup and installer metadata to S3.
package access

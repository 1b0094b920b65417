// Package credentials configures the AWS identity used by every later stage.
//
// The stage writes the access key pair into the shared credentials file and
// the region and output format into the shared config file, builds an
// explicit aws.Config from the same values, and proves the pair works with a
// read-only STS identity call. A rejected probe ends the run.
package credentials

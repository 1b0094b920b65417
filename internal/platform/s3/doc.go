// Package s3 archives installation artifacts to Amazon S3.
//
// Archiving is optional. When a bucket is configured the access stage uploads
// the manifest backup and installer metadata under a per-cluster prefix,
// creating the bucket in the run's region on first use.
package s3

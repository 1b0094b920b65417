// Package awscloud wraps the AWS APIs the provisioning workflow consumes:
// STS for the identity probe, Route 53 for hosted zones, and the shared
// credential/config files the AWS CLI and the installer read.
//
// Every client is built from an explicit aws.Config carrying static
// credentials; nothing here reads or mutates the process environment.
package awscloud

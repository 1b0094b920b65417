// Package testing provides test utilities, builders, and fakes for the provisioning stages.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - Harness: a provisioning.Context wired to fakes rooted in a temp home directory
//   - MockZoneManager, MockIdentityVerifier, MockArchiver: testify mocks for the AWS APIs
//   - FakeRunner, FakeFetcher, FakeProber: scripted process, download and DNS collaborators
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithClusterName("demo").
//	    WithRegion("us-east-1").
//	    Build()
//
//	h := testing.NewHarness(t, cfg)
//	err := phase.Provision(h.Ctx)
package testing

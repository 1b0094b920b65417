// Package provisioning provides shared types, interfaces, and orchestration for cluster provisioning.
//
// # Subpackages
//
//   - credentials/: AWS shared profile files and the identity probe
//   - zone/: Route 53 hosted zone, nameserver hand-off, propagation probe
//   - tools/: installer and client binaries
//   - sshkey/: node access keypair
//   - manifest/: install-config.yaml and its backup
//   - installer/: the openshift-install run
//   - access/: kube config deployment and the final summary data
//
// # Core Types
//
// Context carries configuration, state, cloud client factory, input provider and logger.
// Phase defines a provisioning step with Name() and Provision() methods.
// Plan orders phases as transitions between WorkflowState checkpoints, and
// Run walks a plan until it reaches its final state or a phase fails.
// State accumulates results from each phase (credentials, zone, keys, manifest, access).
package provisioning

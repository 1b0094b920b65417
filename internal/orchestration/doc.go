// Package orchestration assembles the provisioning stages into runs.
//
// Each run is a provisioning.Plan: a fixed list of transitions between
// workflow states, each guarded by one stage from the internal/provisioning
// subpackages. The plans define the order; the stages do the work.
//
// # DNS run
//
//  1. Credentials - write the AWS profile and verify the identity
//  2. Zone - find or create the public hosted zone, publish its
//     nameservers and wait for the operator to confirm delegation
//  3. Propagation - best-effort NS probe against every zone nameserver
//
// # Install run
//
//  1. Credentials
//  2. Zone precondition - the zone from the DNS run must exist
//  3. Tools - openshift-install, oc and kubectl at the pinned version
//  4. SSH key - node access keypair
//  5. Manifest - install-config.yaml and its backup
//  6. Installer - openshift-install create cluster
//  7. Access - kube config for the target user
//
// # Usage
//
//	plan, err := orchestration.InstallPlan()
//	err = provisioning.Run(pctx, plan)
package orchestration

// Package tools installs the pinned openshift-install and oc binaries.
package tools

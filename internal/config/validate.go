package config

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

var (
	// clusterNameRegex matches a single lowercase DNS label.
	clusterNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,52}[a-z0-9])?$`)
	domainLabelRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)
	regionRegex      = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]*)?-[a-z]+-[0-9]+$`)
	versionRegex     = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+(-[0-9A-Za-z.-]+)?$`)
)

// ErrMissingField is wrapped by validation errors for required fields.
var ErrMissingField = errors.New("required field missing")

// ValidOutputs lists the output formats the AWS CLI accepts in its config file.
var ValidOutputs = map[string]bool{
	"json":        true,
	"text":        true,
	"table":       true,
	"yaml":        true,
	"yaml-stream": true,
}

// ValidateDNS checks the fields the DNS zone run needs.
func (c *Config) ValidateDNS() error {
	if c.BaseDomain == "" {
		return fmt.Errorf("%w: base_domain", ErrMissingField)
	}
	if err := validateDomain(c.BaseDomain); err != nil {
		return fmt.Errorf("base_domain: %w", err)
	}
	if c.Region == "" {
		return fmt.Errorf("%w: region", ErrMissingField)
	}
	if !regionRegex.MatchString(c.Region) {
		return fmt.Errorf("region %q is not a valid AWS region name", c.Region)
	}
	if c.NameserversFile == "" {
		return fmt.Errorf("%w: nameservers_file", ErrMissingField)
	}
	return c.validateAWS()
}

// ValidateInstall checks every field the install run needs.
func (c *Config) ValidateInstall() error {
	if err := c.ValidateDNS(); err != nil {
		return err
	}

	if c.ClusterName == "" {
		return fmt.Errorf("%w: cluster_name", ErrMissingField)
	}
	if !clusterNameRegex.MatchString(c.ClusterName) {
		return fmt.Errorf("cluster_name %q must be a lowercase DNS label of at most 54 characters", c.ClusterName)
	}
	if !versionRegex.MatchString(c.Version) {
		return fmt.Errorf("openshift_version %q must be a pinned release like 4.16.9", c.Version)
	}
	if c.InstallDir == "" {
		return fmt.Errorf("%w: install_dir", ErrMissingField)
	}
	if c.Tools.BinDir == "" {
		return fmt.Errorf("%w: tools.bin_dir", ErrMissingField)
	}
	if c.Tools.MirrorURL == "" && !c.Tools.SkipDownload {
		return fmt.Errorf("%w: tools.mirror_url", ErrMissingField)
	}

	if err := c.validateSSH(); err != nil {
		return fmt.Errorf("ssh validation failed: %w", err)
	}
	if err := c.validateTopology(); err != nil {
		return fmt.Errorf("topology validation failed: %w", err)
	}
	return nil
}

func (c *Config) validateAWS() error {
	if c.AWS.Profile == "" {
		return fmt.Errorf("%w: aws.profile", ErrMissingField)
	}
	if !ValidOutputs[c.AWS.Output] {
		return fmt.Errorf("aws.output %q is not one of json, text, table, yaml, yaml-stream", c.AWS.Output)
	}
	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return fmt.Errorf("aws access key id and secret access key must be given together")
	}
	return nil
}

func (c *Config) validateSSH() error {
	if c.SSH.KeyName == "" || strings.ContainsAny(c.SSH.KeyName, `/\`) {
		return fmt.Errorf("key_name %q must be a plain file name", c.SSH.KeyName)
	}
	switch c.SSH.KeyType {
	case KeyTypeED25519, KeyTypeRSA:
		return nil
	default:
		return fmt.Errorf("key_type %q must be %s or %s", c.SSH.KeyType, KeyTypeED25519, KeyTypeRSA)
	}
}

func (c *Config) validateTopology() error {
	t := c.Topology
	if t.ControlPlane.Replicas < 1 {
		return fmt.Errorf("control_plane.replicas must be at least 1, got %d", t.ControlPlane.Replicas)
	}
	if t.Compute.Replicas < 0 {
		return fmt.Errorf("compute.replicas must not be negative, got %d", t.Compute.Replicas)
	}
	if t.ControlPlane.InstanceType == "" || t.Compute.InstanceType == "" {
		return fmt.Errorf("%w: instance_type", ErrMissingField)
	}
	if t.Publish != "External" && t.Publish != "Internal" {
		return fmt.Errorf("publish %q must be External or Internal", t.Publish)
	}

	n := t.Networking
	if n.NetworkType == "" {
		return fmt.Errorf("%w: networking.network_type", ErrMissingField)
	}
	cidrs := []struct{ name, value string }{
		{"cluster_network", n.ClusterNetwork},
		{"machine_network", n.MachineNetwork},
		{"service_network", n.ServiceNetwork},
	}
	for _, cidr := range cidrs {
		if _, _, err := net.ParseCIDR(cidr.value); err != nil {
			return fmt.Errorf("%s: invalid CIDR %q: %w", cidr.name, cidr.value, err)
		}
	}

	_, clusterNet, _ := net.ParseCIDR(n.ClusterNetwork)
	ones, bits := clusterNet.Mask.Size()
	if n.HostPrefix <= ones || n.HostPrefix > bits {
		return fmt.Errorf("host_prefix %d must be longer than the cluster network prefix /%d", n.HostPrefix, ones)
	}
	return nil
}

func validateDomain(domain string) error {
	d := strings.TrimSuffix(strings.ToLower(domain), ".")
	if len(d) > 253 {
		return fmt.Errorf("domain %q is longer than 253 characters", domain)
	}
	labels := strings.Split(d, ".")
	if len(labels) < 2 {
		return fmt.Errorf("domain %q must contain at least two labels", domain)
	}
	for _, label := range labels {
		if !domainLabelRegex.MatchString(label) {
			return fmt.Errorf("domain %q has invalid label %q", domain, label)
		}
	}
	return nil
}

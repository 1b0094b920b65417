// Package keygen generates passphrase-less SSH key pairs for cluster node access.
//
// Private keys are PEM encoded (OpenSSH format for ed25519, PKCS#1 for RSA);
// public keys use the OpenSSH authorized_keys format that install-config.yaml
// expects in its sshKey field.
package keygen

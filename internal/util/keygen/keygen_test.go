package keygen

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestGenerateED25519KeyPair(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateED25519KeyPair("core@demo")
	require.NoError(t, err)

	block, _ := pem.Decode(keyPair.PrivateKey)
	require.NotNil(t, block)
	assert.Equal(t, "OPENSSH PRIVATE KEY", block.Type)

	pub, comment, _, _, err := ssh.ParseAuthorizedKey(keyPair.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, ssh.KeyAlgoED25519, pub.Type())
	assert.Equal(t, "core@demo", comment)
	assert.True(t, strings.HasSuffix(string(keyPair.PublicKey), "\n"))
}

func TestGenerateED25519KeyPair_NoComment(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateED25519KeyPair("")
	require.NoError(t, err)

	fields := strings.Fields(string(keyPair.PublicKey))
	assert.Len(t, fields, 2)
}

func TestGenerateRSAKeyPair_ValidBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		bits int
	}{
		{"2048 bits", 2048},
		{"3072 bits", 3072},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			keyPair, err := GenerateRSAKeyPair(tt.bits, "")
			require.NoError(t, err)

			block, _ := pem.Decode(keyPair.PrivateKey)
			require.NotNil(t, block)
			assert.Equal(t, "RSA PRIVATE KEY", block.Type)

			priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			require.NoError(t, err)
			assert.Equal(t, tt.bits, priv.N.BitLen())

			assert.True(t, strings.HasPrefix(string(keyPair.PublicKey), "ssh-rsa "))
		})
	}
}

func TestGenerateRSAKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()
	for _, bits := range []int{0, -1} {
		_, err := GenerateRSAKeyPair(bits, "")
		assert.Error(t, err, "bits=%d", bits)
	}
}

func TestPublicKeyFromPrivate_MatchesGenerated(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		gen  func() (*KeyPair, error)
	}{
		{"ed25519", func() (*KeyPair, error) { return GenerateED25519KeyPair("ops") }},
		{"rsa", func() (*KeyPair, error) { return GenerateRSAKeyPair(2048, "ops") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			keyPair, err := tt.gen()
			require.NoError(t, err)

			derived, err := PublicKeyFromPrivate(keyPair.PrivateKey, "ops")
			require.NoError(t, err)
			assert.Equal(t, string(keyPair.PublicKey), string(derived))
		})
	}
}

func TestPublicKeyFromPrivate_Garbage(t *testing.T) {
	t.Parallel()
	_, err := PublicKeyFromPrivate([]byte("not a key"), "")
	require.Error(t, err)
}

func TestGenerate_Uniqueness(t *testing.T) {
	t.Parallel()
	a, err := GenerateED25519KeyPair("")
	require.NoError(t, err)
	b, err := GenerateED25519KeyPair("")
	require.NoError(t, err)

	assert.False(t, bytes.Equal(a.PrivateKey, b.PrivateKey))
	assert.False(t, bytes.Equal(a.PublicKey, b.PublicKey))
}

package dsasig

import (
	"crypto/dsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// LoadPrivateKey reads a PEM DSA private key from path. Encrypted keys
// invoke the passphrase callback; a nil callback makes encrypted keys fail
// with ErrPassphraseRequired.
func LoadPrivateKey(path string, passphrase PassphraseFunc) (*PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	return ParsePrivateKey(raw, passphrase)
}

// ParsePrivateKey parses a PEM-encoded DSA private key, decrypting it with
// the passphrase callback when the PEM block is encrypted.
func ParsePrivateKey(raw []byte, passphrase PassphraseFunc) (*PrivateKey, error) {
	key, err := ssh.ParseRawPrivateKey(raw)

	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		if passphrase == nil {
			return nil, ErrPassphraseRequired
		}
		pw, perr := passphrase()
		if perr != nil {
			return nil, fmt.Errorf("obtain passphrase: %w", perr)
		}
		key, err = ssh.ParseRawPrivateKeyWithPassphrase(raw, []byte(pw))
		if errors.Is(err, x509.IncorrectPasswordError) {
			return nil, ErrWrongPassphrase
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}

	dsaKey, ok := key.(*dsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected a DSA private key, got %T", ErrKeyInvalid, key)
	}
	return &PrivateKey{key: dsaKey}, nil
}

// LoadPublicKey reads a PEM (PKIX "PUBLIC KEY") DSA public key from path.
func LoadPublicKey(path string) (*PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return ParsePublicKey(raw)
}

// ParsePublicKey parses a PEM-encoded PKIX DSA public key.
func ParsePublicKey(raw []byte) (*PublicKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrKeyInvalid)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}
	dsaPub, ok := pub.(*dsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected a DSA public key, got %T", ErrKeyInvalid, pub)
	}
	return &PublicKey{key: dsaPub}, nil
}

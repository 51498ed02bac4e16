// Package dsasig signs and verifies license digests with DSA keypairs.
// Signatures are ASN.1 SEQUENCE {r, s}, the interchange form emitted by
// OpenSSL, so tokens verify against keys produced outside this module.
// The codec packages depend only on the Sign/Verify capabilities, never
// on this package's key types.
package dsasig

import (
	"crypto/dsa"
	"crypto/rand"
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for key material problems.
var (
	ErrKeyInvalid         = errors.New("unusable DSA key material")
	ErrPassphraseRequired = errors.New("private key requires a passphrase")
	ErrWrongPassphrase    = errors.New("incorrect private key passphrase")
)

// dsaSignature is the ASN.1 layout of a DSA signature.
type dsaSignature struct {
	R, S *big.Int
}

// PrivateKey signs license digests. It satisfies forgelicense.Signer.
type PrivateKey struct {
	key *dsa.PrivateKey
}

// Sign produces an ASN.1-encoded DSA signature over digest. The digest is
// expected to already be a hash output (SHA-1 for license tokens).
func (k *PrivateKey) Sign(digest []byte) ([]byte, error) {
	r, s, err := dsa.Sign(rand.Reader, k.key, digest)
	if err != nil {
		return nil, fmt.Errorf("dsa sign: %w", err)
	}
	sig, err := asn1.Marshal(dsaSignature{R: r, S: s})
	if err != nil {
		return nil, fmt.Errorf("encode signature: %w", err)
	}
	return sig, nil
}

// Public returns the verification half of the keypair.
func (k *PrivateKey) Public() *PublicKey {
	return &PublicKey{key: &k.key.PublicKey}
}

// PublicKey verifies license digests. It satisfies forgelicense.Verifier.
type PublicKey struct {
	key *dsa.PublicKey
}

// Verify reports whether sig is a valid ASN.1 DSA signature over digest.
// Malformed signatures verify as false rather than erroring: a corrupt
// signature is a trust failure, not a structural one.
func (k *PublicKey) Verify(digest, sig []byte) bool {
	var parsed dsaSignature
	rest, err := asn1.Unmarshal(sig, &parsed)
	if err != nil || len(rest) != 0 {
		return false
	}
	return dsa.Verify(k.key, digest, parsed.R, parsed.S)
}

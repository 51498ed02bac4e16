package forgelicense

// Signer produces an asymmetric signature over a license digest. The
// digest passed in is already a hash output; implementations must not
// hash it again.
type Signer interface {
	Sign(digest []byte) ([]byte, error)
}

// Verifier checks an asymmetric signature over a license digest.
// Malformed signatures report false rather than erroring.
type Verifier interface {
	Verify(digest, sig []byte) bool
}

// TrustStatus is the outcome of signature verification during decode.
// Verification failure is advisory: the license text still decodes, and
// the caller decides how much to trust it.
type TrustStatus int

const (
	// TrustUnknown means no verifier was configured, so the signature
	// was not checked.
	TrustUnknown TrustStatus = iota
	// TrustValid means the signature verified against the public key.
	TrustValid
	// TrustInvalid means the signature did not verify.
	TrustInvalid
)

func (s TrustStatus) String() string {
	switch s {
	case TrustValid:
		return "valid"
	case TrustInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// DecodeResult is the outcome of decoding a sealed license token.
type DecodeResult struct {
	// Text is the decompressed plaintext license.
	Text string
	// Trust reports whether the token's signature verified.
	Trust TrustStatus
}

package forgelicense

import (
	"errors"
	"fmt"
)

// ErrMalformedToken is the umbrella error for structurally broken sealed
// tokens: missing separator, bad version digits, invalid base64 or a
// corrupt compressed stream. Signature mismatches are not errors; they
// surface as TrustInvalid in the decode result.
var ErrMalformedToken = errors.New("malformed license token")

// Sentinel errors for specific structural failures. Both match
// ErrMalformedToken under errors.Is.
var (
	ErrChecksumMismatch   = fmt.Errorf("%w: checksum mismatch", ErrMalformedToken)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrMalformedToken)
)

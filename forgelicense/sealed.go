package forgelicense

import (
	"bytes"
	"compress/zlib"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ForgeOps/forge-license-sdk/forgelicense/radix"
)

// Wire-format constants for sealed tokens. The unwrapped token is
// base64(blob) + 'X' + two version digits + base-31 length of the base64
// part. The length field doubles as a structural checksum: on decode it
// must equal the separator's offset. Offsets are byte offsets, which is
// safe because everything before the separator is base64 (ASCII).
const (
	// SealedVersion is the version number stamped into encoded tokens.
	SealedVersion = 2

	sealedVersionDigits = 2
	sealedLengthBase    = 31
	sealedSeparator     = 'X'
	lineWidth           = 76
)

// sealedPrefix tags the compressed payload before signing.
var sealedPrefix = []byte{13, 14, 12, 10, 15}

// validSealedVersions are the versions accepted on decode.
var validSealedVersions = map[int]bool{1: true, 2: true}

// SealedEncoder fabricates sealed license tokens: the license text is
// zlib-compressed, prefix-tagged, DSA-signed over its SHA-1 digest, and
// packed into a self-describing base64 wire format.
type SealedEncoder struct {
	signer Signer
}

// NewSealedEncoder creates an encoder that signs tokens with the given
// signer.
func NewSealedEncoder(signer Signer) *SealedEncoder {
	return &SealedEncoder{signer: signer}
}

// Encode turns plaintext license text into a wrapped sealed token.
func (e *SealedEncoder) Encode(licenseText string) (string, error) {
	if e.signer == nil {
		return "", fmt.Errorf("sealed encoder requires a signer")
	}

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("init compressor: %w", err)
	}
	if _, err := zw.Write([]byte(licenseText)); err != nil {
		return "", fmt.Errorf("compress license text: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress license text: %w", err)
	}

	payload := make([]byte, 0, len(sealedPrefix)+compressed.Len())
	payload = append(payload, sealedPrefix...)
	payload = append(payload, compressed.Bytes()...)

	digest := sha1.Sum(payload)
	sig, err := e.signer.Sign(digest[:])
	if err != nil {
		return "", fmt.Errorf("sign license digest: %w", err)
	}

	// The 4-byte length covers the payload only, not the signature.
	blob := make([]byte, 4, 4+len(payload)+len(sig))
	binary.BigEndian.PutUint32(blob, uint32(len(payload)))
	blob = append(blob, payload...)
	blob = append(blob, sig...)

	b64 := base64.StdEncoding.EncodeToString(blob)
	lengthField, err := radix.Encode(int64(len(b64)), sealedLengthBase, radix.DefaultAlphabet)
	if err != nil {
		return "", fmt.Errorf("encode length field: %w", err)
	}

	token := fmt.Sprintf("%s%c%0*d%s",
		b64, sealedSeparator, sealedVersionDigits, SealedVersion, lengthField)
	return wrapLines(token, lineWidth), nil
}

// SealedDecoderOption configures a SealedDecoder.
type SealedDecoderOption func(*SealedDecoder)

// WithVerifier sets the public-key verifier. Without one, decoded tokens
// report TrustUnknown.
func WithVerifier(v Verifier) SealedDecoderOption {
	return func(d *SealedDecoder) {
		d.verifier = v
	}
}

// SealedDecoder unpacks sealed license tokens and optionally verifies
// their signatures.
type SealedDecoder struct {
	verifier Verifier
}

// NewSealedDecoder creates a decoder.
func NewSealedDecoder(opts ...SealedDecoderOption) *SealedDecoder {
	d := &SealedDecoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode unpacks a sealed token back into license text. Structural
// problems fail with ErrMalformedToken (or one of its refinements); a
// signature that does not verify is reported as TrustInvalid, not as an
// error.
func (d *SealedDecoder) Decode(token string) (*DecodeResult, error) {
	stripped := stripWhitespace(token)
	if stripped == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	pos := strings.LastIndexByte(stripped, sealedSeparator)
	if pos < 0 {
		return nil, fmt.Errorf("%w: separator %q not found", ErrMalformedToken, string(sealedSeparator))
	}
	// Version digits plus at least one length digit must follow.
	if pos+sealedVersionDigits+1 >= len(stripped) {
		return nil, fmt.Errorf("%w: not enough data after separator", ErrMalformedToken)
	}

	version, err := strconv.Atoi(stripped[pos+1 : pos+1+sealedVersionDigits])
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric version: %v", ErrMalformedToken, err)
	}
	if !validSealedVersions[version] {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedVersion, version)
	}

	wantLen, err := radix.Decode(stripped[pos+1+sealedVersionDigits:], sealedLengthBase, radix.DefaultAlphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: bad length field: %v", ErrMalformedToken, err)
	}
	if wantLen != int64(pos) {
		return nil, fmt.Errorf("%w: length field %d, separator at %d", ErrChecksumMismatch, wantLen, pos)
	}

	blob, err := base64.StdEncoding.DecodeString(stripped[:pos])
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64: %v", ErrMalformedToken, err)
	}
	if len(blob) < 4 {
		return nil, fmt.Errorf("%w: truncated payload header", ErrMalformedToken)
	}

	payloadLen := binary.BigEndian.Uint32(blob)
	if uint64(payloadLen) > uint64(len(blob)-4) {
		return nil, fmt.Errorf("%w: payload length %d exceeds token data", ErrMalformedToken, payloadLen)
	}
	payload := blob[4 : 4+payloadLen]
	sig := blob[4+payloadLen:]

	trust := TrustUnknown
	if d.verifier != nil {
		digest := sha1.Sum(payload)
		if d.verifier.Verify(digest[:], sig) {
			trust = TrustValid
		} else {
			trust = TrustInvalid
		}
	}

	if len(payload) < len(sealedPrefix) {
		return nil, fmt.Errorf("%w: payload shorter than prefix", ErrMalformedToken)
	}
	zr, err := zlib.NewReader(bytes.NewReader(payload[len(sealedPrefix):]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad compressed stream: %v", ErrMalformedToken, err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: bad compressed stream: %v", ErrMalformedToken, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: license text is not valid UTF-8", ErrMalformedToken)
	}

	return &DecodeResult{Text: string(raw), Trust: trust}, nil
}

// wrapLines hard-wraps s at width columns. The result always ends with a
// newline, even for a single short line.
func wrapLines(s string, width int) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/width + 1)
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	b.WriteByte('\n')
	return b.String()
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

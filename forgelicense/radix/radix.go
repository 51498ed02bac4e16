// Package radix converts integers to and from strings in an arbitrary
// radix with a caller-supplied digit alphabet. License tokens use it for
// the base-31 checksum-length field.
package radix

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAlphabet is the digit set used by the license wire format:
// decimal digits followed by the lowercase latin letters.
const DefaultAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	ErrBadBase     = errors.New("radix base out of range")
	ErrBadAlphabet = errors.New("alphabet shorter than base")
	ErrBadDigit    = errors.New("digit not in alphabet")
)

// Encode renders n in the given base using the first base runes of
// alphabet. Zero encodes as the alphabet's first symbol; negative values
// are prefixed with '-'.
func Encode(n int64, base int, alphabet string) (string, error) {
	digits, err := firstDigits(base, alphabet)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return string(digits[0]), nil
	}

	negative := n < 0
	if negative {
		n = -n
	}

	// Digits accumulate least-significant first, then get reversed.
	var out []rune
	for n > 0 {
		out = append(out, digits[n%int64(base)])
		n /= int64(base)
	}
	if negative {
		out = append(out, '-')
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

// Decode parses s as an integer in the given base. Every rune must be one
// of the first base symbols of alphabet.
func Decode(s string, base int, alphabet string) (int64, error) {
	digits, err := firstDigits(base, alphabet)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrBadDigit)
	}

	negative := false
	body := s
	if strings.HasPrefix(s, "-") {
		negative = true
		body = s[1:]
		if body == "" {
			return 0, fmt.Errorf("%w: bare sign", ErrBadDigit)
		}
	}

	values := make(map[rune]int64, base)
	for i, r := range digits {
		values[r] = int64(i)
	}

	var n int64
	for _, r := range body {
		v, ok := values[r]
		if !ok {
			return 0, fmt.Errorf("%w: %q not valid in base %d", ErrBadDigit, r, base)
		}
		n = n*int64(base) + v
	}
	if negative {
		n = -n
	}
	return n, nil
}

func firstDigits(base int, alphabet string) ([]rune, error) {
	if base < 2 || base > 36 {
		return nil, fmt.Errorf("%w: %d", ErrBadBase, base)
	}
	runes := []rune(alphabet)
	if len(runes) < base {
		return nil, fmt.Errorf("%w: need %d symbols, have %d", ErrBadAlphabet, base, len(runes))
	}
	return runes[:base], nil
}

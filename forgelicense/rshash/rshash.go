// Package rshash implements the multiplicative string hash used to derive
// license keys. The algorithm accumulates a 64-bit state over the input's
// code points while the multiplier itself evolves modulo 2^32, and the
// final digest is truncated to 31 bits so it is always a non-negative
// int32. Changing any of the three widths changes every derived key, so
// the widths here are load-bearing.
package rshash

const (
	seedA = 63689
	seedB = 378551
)

// Sum returns the 31-bit digest of text. The empty string hashes to 0.
func Sum(text string) uint32 {
	var h uint64
	a := uint32(seedA)
	for _, r := range text {
		h = h*uint64(a) + uint64(r)
		a *= seedB
	}
	return uint32(h & 0x7FFFFFFF)
}

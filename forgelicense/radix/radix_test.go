package radix

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		n    int64
		base int
		want string
	}{
		{0, 31, "0"},
		{30, 31, "u"},
		{76, 31, "2e"},
		{300, 31, "9l"},
		{961, 31, "100"},
		{12345, 36, "9ix"},
		{255, 16, "ff"},
		{5, 2, "101"},
		{-42, 31, "-1b"},
	}
	for _, tt := range tests {
		got, err := Encode(tt.n, tt.base, DefaultAlphabet)
		if err != nil {
			t.Fatalf("Encode(%d, %d): unexpected error: %v", tt.n, tt.base, err)
		}
		if got != tt.want {
			t.Errorf("Encode(%d, %d) = %q, want %q", tt.n, tt.base, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		s    string
		base int
		want int64
	}{
		{"0", 31, 0},
		{"u", 31, 30},
		{"2e", 31, 76},
		{"9l", 31, 300},
		{"100", 31, 961},
		{"9ix", 36, 12345},
		{"ff", 16, 255},
		{"101", 2, 5},
		{"-1b", 31, -42},
	}
	for _, tt := range tests {
		got, err := Decode(tt.s, tt.base, DefaultAlphabet)
		if err != nil {
			t.Fatalf("Decode(%q, %d): unexpected error: %v", tt.s, tt.base, err)
		}
		if got != tt.want {
			t.Errorf("Decode(%q, %d) = %d, want %d", tt.s, tt.base, got, tt.want)
		}
	}
}

func TestDecodeRejectsForeignDigits(t *testing.T) {
	// 'z' is symbol 35, valid in base 36 but not base 31.
	if _, err := Decode("z", 31, DefaultAlphabet); !errors.Is(err, ErrBadDigit) {
		t.Errorf("Decode(z, 31) error = %v, want ErrBadDigit", err)
	}
	if _, err := Decode("2e ", 31, DefaultAlphabet); !errors.Is(err, ErrBadDigit) {
		t.Errorf("Decode with trailing space error = %v, want ErrBadDigit", err)
	}
	if _, err := Decode("", 31, DefaultAlphabet); !errors.Is(err, ErrBadDigit) {
		t.Errorf("Decode of empty string error = %v, want ErrBadDigit", err)
	}
	if _, err := Decode("-", 31, DefaultAlphabet); !errors.Is(err, ErrBadDigit) {
		t.Errorf("Decode of bare sign error = %v, want ErrBadDigit", err)
	}
}

func TestBadBaseAndAlphabet(t *testing.T) {
	if _, err := Encode(1, 1, DefaultAlphabet); !errors.Is(err, ErrBadBase) {
		t.Errorf("base 1 error = %v, want ErrBadBase", err)
	}
	if _, err := Encode(1, 37, DefaultAlphabet); !errors.Is(err, ErrBadBase) {
		t.Errorf("base 37 error = %v, want ErrBadBase", err)
	}
	if _, err := Encode(1, 16, "01"); !errors.Is(err, ErrBadAlphabet) {
		t.Errorf("short alphabet error = %v, want ErrBadAlphabet", err)
	}
	if _, err := Decode("1", 40, DefaultAlphabet); !errors.Is(err, ErrBadBase) {
		t.Errorf("Decode base 40 error = %v, want ErrBadBase", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, base := range []int{2, 10, 16, 31, 36} {
		for _, n := range []int64{0, 1, 30, 31, 76, 961, 1<<31 - 1, -7} {
			s, err := Encode(n, base, DefaultAlphabet)
			if err != nil {
				t.Fatalf("Encode(%d, %d): %v", n, base, err)
			}
			back, err := Decode(s, base, DefaultAlphabet)
			if err != nil {
				t.Fatalf("Decode(%q, %d): %v", s, base, err)
			}
			if back != n {
				t.Errorf("round trip base %d: %d -> %q -> %d", base, n, s, back)
			}
		}
	}
}

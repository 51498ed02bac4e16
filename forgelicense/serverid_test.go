package forgelicense

import (
	"regexp"
	"testing"
)

var serverIDPattern = regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}$`)

func TestGenerateServerID(t *testing.T) {
	id, err := GenerateServerID()
	if err != nil {
		t.Fatalf("generate server id: %v", err)
	}
	if !serverIDPattern.MatchString(id) {
		t.Errorf("server id %q does not match ABCD-1234 shape", id)
	}

	again, err := GenerateServerID()
	if err != nil {
		t.Fatalf("generate server id: %v", err)
	}
	if id != again {
		t.Errorf("server id not deterministic: %s vs %s", id, again)
	}
}

func TestGenerateServerIDOverride(t *testing.T) {
	t.Setenv("FORGE_SERVER_ID", "AAAA-BBBB-CCCC-DDDD")
	id, err := GenerateServerID()
	if err != nil {
		t.Fatalf("generate server id: %v", err)
	}
	if id != "AAAA-BBBB-CCCC-DDDD" {
		t.Errorf("server id = %s, want env override", id)
	}
}

func TestFormatServerID(t *testing.T) {
	digest := []byte{0xab, 0xcd, 0x12, 0x34, 0xef, 0x01, 0x56, 0x78}
	if got := formatServerID(digest); got != "ABCD-1234-EF01-5678" {
		t.Errorf("formatServerID = %s, want ABCD-1234-EF01-5678", got)
	}
}

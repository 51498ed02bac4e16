package forgelicense

import (
	"crypto/sha256"
	"fmt"
	"net"
	"os"
	"runtime"
	"sort"
	"strings"
)

// GenerateServerID produces a deterministic, reboot-safe server identifier
// in the ABCD-1234-EFGH-5678 shape that sealed license templates expect.
// It combines hostname, MAC addresses, OS, architecture, and machine-id
// (Linux) into a SHA-256 digest and formats the first bytes as four
// dash-joined groups.
//
// In container environments where MAC addresses may not be available, the
// id falls back to hostname + OS + arch + machine-id. Set the
// FORGE_SERVER_ID environment variable to override entirely.
func GenerateServerID() (string, error) {
	if id := os.Getenv("FORGE_SERVER_ID"); id != "" {
		return id, nil
	}

	var parts []string

	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("get hostname: %w", err)
	}
	parts = append(parts, hostname)

	// MAC addresses (sorted for determinism, best-effort)
	macs, err := getMACAddresses()
	if err == nil && len(macs) > 0 {
		parts = append(parts, macs...)
	}

	parts = append(parts, runtime.GOOS, runtime.GOARCH)

	// Machine ID (Linux only, best-effort)
	if machineID, err := os.ReadFile("/etc/machine-id"); err == nil {
		parts = append(parts, strings.TrimSpace(string(machineID)))
	}

	digest := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return formatServerID(digest[:]), nil
}

// formatServerID renders the first 8 digest bytes as four groups of four
// uppercase hex characters.
func formatServerID(digest []byte) string {
	groups := make([]string, 4)
	for i := range groups {
		groups[i] = strings.ToUpper(fmt.Sprintf("%02x%02x", digest[2*i], digest[2*i+1]))
	}
	return strings.Join(groups, "-")
}

// getMACAddresses returns sorted, non-loopback hardware MAC addresses.
func getMACAddresses() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var macs []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		mac := iface.HardwareAddr.String()
		if mac != "" {
			macs = append(macs, mac)
		}
	}
	sort.Strings(macs)
	return macs, nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ForgeOps/forge-license-sdk/forgelicense/template"
)

// stdioMark selects stdin/stdout instead of a file path.
const stdioMark = "-"

func readInput(path string) (string, error) {
	if path == stdioMark {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func writeOutput(path, data string) error {
	if path == stdioMark {
		_, err := os.Stdout.WriteString(data)
		return err
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// parseVarDefs turns repeated "name=value" flags into template fields.
func parseVarDefs(defs []string) (template.Fields, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	fields := make(template.Fields, len(defs))
	for _, def := range defs {
		name, value, ok := strings.Cut(def, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("unrecognized variable definition %q, want name=value", def)
		}
		fields[name] = value
	}
	return fields, nil
}

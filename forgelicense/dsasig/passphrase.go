package dsasig

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PassphraseFunc supplies the passphrase for an encrypted private key.
// It is only invoked when the key actually needs one.
type PassphraseFunc func() (string, error)

// Passphrase returns a callback that always yields the given string.
func Passphrase(s string) PassphraseFunc {
	return func() (string, error) {
		return s, nil
	}
}

// PromptPassphrase returns a callback that asks for the passphrase on the
// controlling terminal with echo disabled.
func PromptPassphrase(prompt string) PassphraseFunc {
	return func() (string, error) {
		fmt.Fprint(os.Stderr, prompt)
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		return string(pw), nil
	}
}

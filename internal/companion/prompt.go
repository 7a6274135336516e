package companion

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/live-labs/kluchnik/internal/crypto"
)

// ReadPassphrase reads a passphrase from the terminal without echoing.
func ReadPassphrase(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// ReadPassphraseConfirm reads a passphrase twice and ensures both match.
func ReadPassphraseConfirm() ([]byte, error) {
	first, err := ReadPassphrase("Enter vault passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(first)

	second, err := ReadPassphrase("Confirm vault passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(second)

	if !crypto.ConstantTimeCompare(first, second) {
		return nil, fmt.Errorf("passphrases do not match")
	}

	result := make([]byte, len(first))
	copy(result, first)
	return result, nil
}

// PassphraseFromEnv reads the passphrase from KLUCHNIK_PASSPHRASE. Returns
// nil when unset.
func PassphraseFromEnv() []byte {
	passphrase := os.Getenv("KLUCHNIK_PASSPHRASE")
	if passphrase == "" {
		return nil
	}
	result := make([]byte, len(passphrase))
	copy(result, passphrase)
	return result
}

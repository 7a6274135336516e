package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/live-labs/kluchnik/internal/companion"
	"github.com/live-labs/kluchnik/internal/keyring"
)

// DefaultVaultPath is where the companion keeps its history vault.
func DefaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kluchnik-history"
	}
	return filepath.Join(home, ".kluchnik-history")
}

// GetPassphrase resolves the vault passphrase: environment first, then the OS
// keyring, then an interactive prompt. The caller must clear the returned
// bytes after use.
func GetPassphrase(vaultPath string, useKeyring bool) ([]byte, error) {
	if passphrase := companion.PassphraseFromEnv(); passphrase != nil {
		return passphrase, nil
	}
	if useKeyring {
		if stored, err := keyring.GetPassphrase(vaultPath); err == nil {
			return []byte(stored), nil
		}
	}
	return companion.ReadPassphrase("Enter vault passphrase: ")
}

// GetPassphraseForNewVault prompts with confirmation when the vault does not
// exist yet, so a typo cannot seal the history under an unknown passphrase.
func GetPassphraseForNewVault(vaultPath string, useKeyring bool) ([]byte, error) {
	if passphrase := companion.PassphraseFromEnv(); passphrase != nil {
		return passphrase, nil
	}
	if useKeyring {
		if stored, err := keyring.GetPassphrase(vaultPath); err == nil {
			return []byte(stored), nil
		}
	}
	if _, err := os.Stat(vaultPath); err == nil {
		return companion.ReadPassphrase("Enter vault passphrase: ")
	}
	return companion.ReadPassphraseConfirm()
}

// HandleError prints err and exits non-zero.
func HandleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

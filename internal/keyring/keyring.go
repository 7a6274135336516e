// Package keyring stashes the history-vault passphrase in the OS keyring so
// repeated receive/history commands do not have to prompt.
package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "kluchnik"

// SavePassphrase stores a vault passphrase in the OS keyring.
func SavePassphrase(vaultPath string, passphrase string) error {
	return keyring.Set(serviceName, vaultPath, passphrase)
}

// GetPassphrase retrieves a vault passphrase from the OS keyring.
func GetPassphrase(vaultPath string) (string, error) {
	return keyring.Get(serviceName, vaultPath)
}

// DeletePassphrase removes a vault passphrase from the OS keyring.
func DeletePassphrase(vaultPath string) error {
	return keyring.Delete(serviceName, vaultPath)
}

// HasPassphrase checks if a passphrase is stored for the vault.
func HasPassphrase(vaultPath string) bool {
	_, err := keyring.Get(serviceName, vaultPath)
	return err == nil
}

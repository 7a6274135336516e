package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/live-labs/kluchnik/internal/companion"
	"github.com/live-labs/kluchnik/internal/crypto"
	"github.com/live-labs/kluchnik/internal/keyring"
)

// ReceiveOptions configures a device fetch.
type ReceiveOptions struct {
	Device     string // device address, host:port
	Vault      string // history vault path
	UseKeyring bool   // stash/look up the passphrase in the OS keyring
	NoStore    bool   // print only, skip the vault
}

// Receive asks the device for a generation cycle, decrypts and derives the
// password, and records it in the history vault.
func Receive(_ context.Context, opts ReceiveOptions) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		HandleError(err)
	}
	defer logger.Sync()

	client := &companion.Client{Addr: opts.Device, Log: logger}
	payload, err := client.Fetch()
	if err != nil {
		HandleError(err)
	}

	derived, err := companion.DerivePassword(payload, nil)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("password: %s\n", derived)

	if opts.NoStore {
		return
	}

	passphrase, err := GetPassphraseForNewVault(opts.Vault, opts.UseKeyring)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(passphrase)

	if opts.UseKeyring && !keyring.HasPassphrase(opts.Vault) {
		if err := keyring.SavePassphrase(opts.Vault, string(passphrase)); err != nil {
			fmt.Printf("warning: could not stash passphrase in keyring: %s\n", err)
		}
	}

	vault, err := companion.OpenVault(opts.Vault, passphrase)
	if err != nil {
		HandleError(err)
	}
	defer vault.Close()

	id, err := vault.Store(payload, opts.Device, derived)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("stored as history record %d\n", id)
}

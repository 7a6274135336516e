package cmd

import (
	"fmt"

	"github.com/live-labs/kluchnik/internal/companion"
	"github.com/live-labs/kluchnik/internal/crypto"
	"github.com/live-labs/kluchnik/internal/keyring"
	"github.com/live-labs/kluchnik/internal/password"
)

// HistoryOptions configures the history listing.
type HistoryOptions struct {
	Vault            string
	UseKeyring       bool
	Reveal           uint64 // record id to reveal; 0 lists headers only
	ForgetPassphrase bool   // drop the stashed passphrase and exit
}

// History lists the vault records, reveals one sealed password, or forgets
// the stashed keyring passphrase.
func History(opts HistoryOptions) {
	if opts.ForgetPassphrase {
		if err := keyring.DeletePassphrase(opts.Vault); err != nil {
			HandleError(fmt.Errorf("forget passphrase: %w", err))
		}
		fmt.Println("passphrase removed from the OS keyring")
		return
	}

	passphrase, err := GetPassphrase(opts.Vault, opts.UseKeyring)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(passphrase)

	vault, err := companion.OpenVault(opts.Vault, passphrase)
	if err != nil {
		HandleError(err)
	}
	defer vault.Close()

	if opts.Reveal != 0 {
		derived, err := vault.Reveal(opts.Reveal)
		if err != nil {
			HandleError(err)
		}
		fmt.Printf("record %d: %s\n", opts.Reveal, derived)
		return
	}

	records, err := vault.List()
	if err != nil {
		HandleError(err)
	}
	if len(records) == 0 {
		fmt.Println("history is empty")
		return
	}
	for _, r := range records {
		fmt.Printf("%4d  %s  len=%-2d  %-15s  %s\n",
			r.ID,
			r.Received.Format("2006-01-02 15:04:05"),
			r.Length,
			password.Policy(r.Complexity),
			r.Device)
	}
}

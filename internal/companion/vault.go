package companion

import (
	"errors"
	"fmt"
	"time"

	"github.com/live-labs/kluchnik/internal/crypto"
	"github.com/live-labs/kluchnik/internal/storage"
	"github.com/live-labs/kluchnik/internal/transport"
)

// ErrWrongPassphrase is returned when a sealed record fails to open.
var ErrWrongPassphrase = errors.New("wrong vault passphrase")

// Vault is the encrypted history store of received generation results.
type Vault struct {
	db  *storage.Storage
	enc *crypto.Encryptor
}

// OpenVault opens or creates the history vault at path and derives the
// sealing key from passphrase. A new vault gets a fresh salt; an existing one
// reuses its stored KDF parameters so the same passphrase derives the same
// key.
func OpenVault(path string, passphrase []byte) (*Vault, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, err
	}

	initialized, err := db.IsInitialized()
	if err != nil {
		db.Close()
		return nil, err
	}

	var kdf *crypto.KDF
	if initialized {
		salt, err := db.GetSalt()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("read vault KDF salt: %w", err)
		}
		iters, err := db.GetIterations()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("read vault KDF iterations: %w", err)
		}
		kdf = &crypto.KDF{Salt: salt, Iterations: int(iters)}
	} else {
		if err := db.Initialize(); err != nil {
			db.Close()
			return nil, err
		}
		kdf, err = crypto.NewKDF()
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := db.SetSalt(kdf.Salt); err != nil {
			db.Close()
			return nil, err
		}
		if err := db.SetIterations(uint32(kdf.Iterations)); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Vault{
		db:  db,
		enc: crypto.NewEncryptor(kdf.DeriveKey(passphrase)),
	}, nil
}

// Close releases the database and clears the sealing key.
func (v *Vault) Close() error {
	v.enc.Destroy()
	return v.db.Close()
}

// Store seals the derived password and appends a history record.
func (v *Vault) Store(p transport.Payload, device, derived string) (uint64, error) {
	sealed, err := v.enc.Encrypt([]byte(derived))
	if err != nil {
		return 0, fmt.Errorf("seal password: %w", err)
	}
	return v.db.AppendRecord(storage.Record{
		Received:       time.Now().UTC(),
		Device:         device,
		Length:         p.Length,
		Complexity:     p.Complexity,
		Ciphertext:     transport.HexUpper(p.Ciphertext),
		SealedPassword: sealed,
	})
}

// List returns all history records, passwords still sealed.
func (v *Vault) List() ([]storage.Record, error) {
	return v.db.Records()
}

// Reveal opens the sealed password of one record.
func (v *Vault) Reveal(id uint64) (string, error) {
	record, err := v.db.GetRecord(id)
	if err != nil {
		return "", err
	}
	plain, err := v.enc.Decrypt(record.SealedPassword)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthFailed) {
			return "", ErrWrongPassphrase
		}
		return "", err
	}
	return string(plain), nil
}

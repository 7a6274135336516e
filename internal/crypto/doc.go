// Package crypto provides the two cipher layers of Kluchnik.
//
// Transport layer (device -> companion): PKCS7 padding over 16-byte blocks
// and AES-128-CBC under a fixed key/IV pair baked into both binaries. This is
// transit obfuscation, not confidentiality against anyone holding the
// firmware; the constants must stay bit-for-bit stable or the companion
// cannot decrypt. Padding is always applied, including a full 0x10 block when
// the input is already block-aligned.
//
// Vault layer (companion history storage): AES-256-GCM with a 12-byte random
// nonce per operation, under a 32-byte key derived from a passphrase via
// PBKDF2-HMAC-SHA256 (32-byte random salt, 210,000 iterations).
//
// Use ClearBytes to zero passphrases after use and Encryptor.Destroy when an
// encryption session ends.
package crypto

// Package storage provides the BBolt database behind the companion's history
// vault.
//
// Database structure uses two buckets:
//   - config: KDF parameters (salt, iterations), timestamps (unencrypted)
//   - history: received generation results, keyed by sequence number
//
// Record headers (timestamp, device address, length, policy, transport
// ciphertext) are stored unencrypted so the history listing works without a
// passphrase; the derived password inside each record is sealed with
// AES-256-GCM under the vault key and opens only on request.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage

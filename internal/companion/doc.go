// Package companion implements the PC-application side of Kluchnik: it
// connects to the device, requests a generation cycle, decrypts the
// transported entropy key, derives the password with the same filter/pad
// algorithm the device uses, and records results in an encrypted history
// vault.
//
// Padding characters are drawn from local crypto/rand entropy, so when the
// character-class filter rejected seed bytes the companion's derived password
// differs from the one shown on the device in exactly those padded positions.
// The filtered prefix always matches.
package companion

// Package password derives printable passwords from raw entropy bytes under a
// selectable character-class policy.
//
// Derivation filters the seed bytes first (keeping, in order, those already in
// the policy's class) and then pads the remainder with freshly drawn entropy
// bytes mapped into the class. The mapping per tier is part of the companion
// application contract and must not change: notably the letters+numbers tier
// pads with uppercase letters only, even though its filter accepts digits and
// lowercase too.
package password

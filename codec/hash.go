// Package codec implements the hash and byte-framing primitives the rest of
// this repository is built on: double SHA-256, HASH160, hex at the system
// boundary, little-endian integer framing, and Bitcoin's CompactSize varint.
package codec

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is required by HASH160, not a choice.
)

// Hash256 returns SHA-256(SHA-256(b)).
func Hash256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Hash160 returns RIPEMD160(SHA-256(b)).
func Hash160(b []byte) [20]byte {
	first := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(first[:]) //nolint:errcheck // hash.Hash.Write never errors.
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Reverse returns a copy of b with byte order reversed. Bitcoin transmits
// hashes in internal byte order but displays them reversed.
func Reverse(b [32]byte) [32]byte {
	var out [32]byte
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}

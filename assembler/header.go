package assembler

import (
	"math/big"

	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
)

// Header is the 80-byte block header (spec §4.7 step 7).
type Header struct {
	Version       uint32
	PrevBlockHash [32]byte
	MerkleRoot    [32]byte
	Timestamp     uint32
	Bits          uint32
	Nonce         uint32
}

// Bytes serializes the header to its canonical 80-byte wire form:
// version(4) ‖ prev_hash(32) ‖ merkle_root(32) ‖ timestamp(4 LE) ‖ bits(4) ‖ nonce(4 LE).
func (h Header) Bytes() []byte {
	out := make([]byte, 0, 80)
	out = codec.AppendU32LE(out, h.Version)
	out = append(out, h.PrevBlockHash[:]...)
	out = append(out, h.MerkleRoot[:]...)
	out = codec.AppendU32LE(out, h.Timestamp)
	out = codec.AppendU32LE(out, h.Bits)
	out = codec.AppendU32LE(out, h.Nonce)
	return out
}

// BitsToTarget expands Bitcoin's compact ("nBits") target representation
// into a 32-byte big-endian target (spec §4.7, §6: bits = 0x1f00ffff).
func BitsToTarget(bits uint32) [32]byte {
	exponent := bits >> 24
	mantissa := new(big.Int).SetUint64(uint64(bits & 0x007fffff))

	var target *big.Int
	if exponent <= 3 {
		shift := uint(8 * (3 - exponent))
		target = new(big.Int).Rsh(mantissa, shift)
	} else {
		shift := uint(8 * (exponent - 3))
		target = new(big.Int).Lsh(mantissa, shift)
	}

	var out [32]byte
	b := target.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(out[32-len(b):], b)
	return out
}

// MeetsTarget reports whether the big-endian interpretation of
// reverse(hash256(headerBytes)) is <= target (spec §4.7 step 7, §8 #10).
func MeetsTarget(headerBytes []byte, target [32]byte) bool {
	h := codec.Hash256(headerBytes)
	reversed := codec.Reverse(h)
	return new(big.Int).SetBytes(reversed[:]).Cmp(new(big.Int).SetBytes(target[:])) <= 0
}

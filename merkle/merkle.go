// Package merkle computes Bitcoin's pairwise double-SHA-256 Merkle root,
// with the canonical odd-leaf duplication rule, over txid or wtxid lists.
package merkle

import "github.com/2tbmz9y2xt-lang/blockassembler/codec"

// Root computes the Merkle root of leaves, given in internal byte order
// (spec §4.5). A single leaf is its own root; an odd level duplicates its
// last leaf before hashing up a level.
func Root(leaves [][32]byte) [32]byte {
	if len(leaves) == 0 {
		return [32]byte{}
	}
	if len(leaves) == 1 {
		return leaves[0]
	}

	level := make([][32]byte, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			pair := make([]byte, 0, 64)
			pair = append(pair, left[:]...)
			pair = append(pair, right[:]...)
			next = append(next, codec.Hash256(pair))
		}
		level = next
	}
	return level[0]
}

// WitnessRoot computes the witness-commitment Merkle root: a zero leaf at
// index 0 (standing in for the coinbase's own wtxid, which is undefined)
// followed by every other transaction's wtxid, in block order (spec §4.5,
// §4.7 step 6).
func WitnessRoot(wtxids [][32]byte) [32]byte {
	if len(wtxids) == 0 {
		return [32]byte{}
	}
	leaves := make([][32]byte, len(wtxids))
	leaves[0] = [32]byte{}
	copy(leaves[1:], wtxids[1:])
	return Root(leaves)
}

package assembler

import (
	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
	"github.com/2tbmz9y2xt-lang/blockassembler/tx"
)

// BuildCoinbase synthesizes the coinbase transaction (spec §4.7 step 6):
// one input referencing the zero outpoint with an arbitrary scriptSig
// (convention: a BIP-34 height push plus a miner tag) and a single 32-byte
// zero witness reserved value, and two outputs — the subsidy plus
// collected fees to payoutScript, and a zero-value OP_RETURN carrying the
// witness commitment over wtxidMerkleRoot.
func BuildCoinbase(height uint32, fees uint64, payoutScript []byte, wtxidMerkleRoot [32]byte) (*tx.Transaction, error) {
	var reserved [32]byte // witness reserved value, all-zero per BIP-141.

	scriptSig := bip34HeightPush(height)
	scriptSig = append(scriptSig, []byte("/blockassembler/")...)

	commitmentHash := codec.Hash256(append(append([]byte{}, wtxidMerkleRoot[:]...), reserved[:]...))
	commitmentScript := []byte{0x6a, 0x24} // OP_RETURN OP_PUSHBYTES_36
	commitmentScript = append(commitmentScript, byte(WitnessCommitmentMagic>>24), byte(WitnessCommitmentMagic>>16), byte(WitnessCommitmentMagic>>8), byte(WitnessCommitmentMagic))
	commitmentScript = append(commitmentScript, commitmentHash[:]...)

	input := tx.Input{
		PrevTxID:   [32]byte{},
		PrevVout:   0xFFFFFFFF,
		Sequence:   0xFFFFFFFF,
		ScriptSig:  scriptSig,
		Witness:    [][]byte{reserved[:]},
		IsCoinbase: true,
	}

	outputs := []tx.Output{
		{
			Value:        Subsidy + fees,
			ScriptPubKey: payoutScript,
			ScriptType:   tx.ScriptP2PKH,
		},
		{
			Value:        0,
			ScriptPubKey: commitmentScript,
			ScriptType:   tx.ScriptOpReturn,
		},
	}

	return tx.New(2, 0, []tx.Input{input}, outputs)
}

// bip34HeightPush encodes height as a minimal little-endian push, the
// BIP-34 convention for tagging a coinbase with the block height it claims.
func bip34HeightPush(height uint32) []byte {
	if height == 0 {
		return []byte{0x01, 0x00}
	}
	var b []byte
	h := height
	for h > 0 {
		b = append(b, byte(h))
		h >>= 8
	}
	if b[len(b)-1]&0x80 != 0 {
		b = append(b, 0x00)
	}
	return append([]byte{byte(len(b))}, b...)
}

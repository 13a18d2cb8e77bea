package tx

import (
	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
	"github.com/2tbmz9y2xt-lang/blockassembler/script"
)

// LegacySighashPreimage returns the non-witness serialization with every
// input's scriptSig blanked except inputIndex, whose scriptSig is replaced
// by its own prevout's scriptPubKey (spec §4.3).
func (t *Transaction) LegacySighashPreimage(inputIndex int) []byte {
	out := make([]byte, 0, 64+64*len(t.Inputs)+64*len(t.Outputs))
	out = codec.AppendU32LE(out, t.Version)
	out = codec.AppendCompactSize(out, uint64(len(t.Inputs)))
	for i, in := range t.Inputs {
		var override []byte
		if i == inputIndex {
			override = in.Prevout.ScriptPubKey
		} else {
			override = []byte{}
		}
		out = appendInputNonWitness(out, in, override)
	}
	out = codec.AppendCompactSize(out, uint64(len(t.Outputs)))
	for _, o := range t.Outputs {
		out = appendOutput(out, o)
	}
	out = codec.AppendU32LE(out, t.Locktime)
	return out
}

// BIP143Preimage returns the BIP-143 witness preimage for inputIndex (spec
// §4.3). scriptcode is the script executed for this input: for a P2WPKH
// input that is the synthesized OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY
// OP_CHECKSIG program (script.P2WPKHScriptCode).
func (t *Transaction) BIP143Preimage(inputIndex int, scriptcode []byte) []byte {
	in := t.Inputs[inputIndex]

	prevouts := make([]byte, 0, len(t.Inputs)*36)
	for _, i := range t.Inputs {
		prevouts = append(prevouts, i.PrevTxID[:]...)
		prevouts = codec.AppendU32LE(prevouts, i.PrevVout)
	}
	hashPrevouts := codec.Hash256(prevouts)

	sequences := make([]byte, 0, len(t.Inputs)*4)
	for _, i := range t.Inputs {
		sequences = codec.AppendU32LE(sequences, i.Sequence)
	}
	hashSequences := codec.Hash256(sequences)

	outputsBytes := make([]byte, 0, len(t.Outputs)*64)
	for _, o := range t.Outputs {
		outputsBytes = codec.AppendU64LE(outputsBytes, o.Value)
		outputsBytes = codec.AppendCompactSize(outputsBytes, uint64(len(o.ScriptPubKey)))
		outputsBytes = append(outputsBytes, o.ScriptPubKey...)
	}
	hashOutputs := codec.Hash256(outputsBytes)

	out := make([]byte, 0, 156+len(scriptcode))
	out = codec.AppendU32LE(out, t.Version)
	out = append(out, hashPrevouts[:]...)
	out = append(out, hashSequences[:]...)
	out = append(out, in.PrevTxID[:]...)
	out = codec.AppendU32LE(out, in.PrevVout)
	out = codec.AppendCompactSize(out, uint64(len(scriptcode)))
	out = append(out, scriptcode...)
	out = codec.AppendU64LE(out, in.Prevout.Value)
	out = codec.AppendU32LE(out, in.Sequence)
	out = append(out, hashOutputs[:]...)
	out = codec.AppendU32LE(out, t.Locktime)
	return out
}

// SighashDigest appends the sighash type as a 4-byte little-endian suffix
// to preimage and double-SHA-256s the result (spec §4.3 "Sighash dispatch").
func SighashDigest(preimage []byte, sighashType byte) [32]byte {
	withType := codec.AppendU32LE(append([]byte{}, preimage...), uint32(sighashType))
	return codec.Hash256(withType)
}

// checker implements script.SignatureChecker for one (transaction, input)
// pair, dispatching to the legacy or BIP-143 preimage by the input's
// prevout script type.
type checker struct {
	tx         *Transaction
	inputIndex int
}

// NewSignatureChecker returns a script.SignatureChecker bound to one input
// of t, so OP_CHECKSIG can compute the right sighash preimage without the
// script package knowing anything about transaction shape.
func NewSignatureChecker(t *Transaction, inputIndex int) script.SignatureChecker {
	return &checker{tx: t, inputIndex: inputIndex}
}

func (c *checker) CheckSig(derSig []byte, sigType byte, pubkey []byte) (bool, error) {
	in := c.tx.Inputs[c.inputIndex]

	var preimage []byte
	switch in.Prevout.ScriptType {
	case ScriptV0P2WPKH:
		scriptcode := script.P2WPKHScriptCode(p2wpkhHashFromScriptPubKey(in.Prevout.ScriptPubKey))
		preimage = c.tx.BIP143Preimage(c.inputIndex, scriptcode)
	default:
		preimage = c.tx.LegacySighashPreimage(c.inputIndex)
	}

	digest := SighashDigest(preimage, sigType)
	return script.VerifyECDSA(digest, derSig, pubkey), nil
}

// p2wpkhHashFromScriptPubKey extracts the 20-byte pubkey hash from a
// v0_p2wpkh scriptPubKey (spec §4.3: "the last 20 bytes of the prevout's
// scriptpubkey").
func p2wpkhHashFromScriptPubKey(spk []byte) [20]byte {
	var out [20]byte
	if len(spk) >= 20 {
		copy(out[:], spk[len(spk)-20:])
	}
	return out
}

package tx

import (
	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
)

// txidFromSerialization computes reverse(hash256(serialization)), the
// standard txid/wtxid derivation (spec §3).
func txidFromSerialization(b []byte) [32]byte {
	h := codec.Hash256(b)
	return codec.Reverse(h)
}

// appendOutput serializes one output: value(8 LE) ‖ compact_size(len(spk)) ‖ spk.
func appendOutput(dst []byte, o Output) []byte {
	dst = codec.AppendU64LE(dst, o.Value)
	dst = codec.AppendCompactSize(dst, uint64(len(o.ScriptPubKey)))
	dst = append(dst, o.ScriptPubKey...)
	return dst
}

// appendInputNonWitness serializes one input's non-witness fields:
// txid (internal order, the reverse of its hex form) ‖ vout(4 LE) ‖
// compact_size(len(scriptSig)) ‖ scriptSig ‖ sequence(4 LE).
// scriptSigOverride, when non-nil, replaces in.ScriptSig (used to build the
// legacy sighash preimage).
func appendInputNonWitness(dst []byte, in Input, scriptSigOverride []byte) []byte {
	scriptSig := in.ScriptSig
	if scriptSigOverride != nil {
		scriptSig = scriptSigOverride
	}
	dst = append(dst, in.PrevTxID[:]...)
	dst = codec.AppendU32LE(dst, in.PrevVout)
	dst = codec.AppendCompactSize(dst, uint64(len(scriptSig)))
	dst = append(dst, scriptSig...)
	dst = codec.AppendU32LE(dst, in.Sequence)
	return dst
}

// appendWitness serializes one input's witness stack: compact_size(len)
// followed by each item as compact_size(len)‖item. An absent witness is a
// single 0x00 byte (spec §4.3).
func appendWitness(dst []byte, witness [][]byte) []byte {
	dst = codec.AppendCompactSize(dst, uint64(len(witness)))
	for _, item := range witness {
		dst = codec.AppendCompactSize(dst, uint64(len(item)))
		dst = append(dst, item...)
	}
	return dst
}

// SerializeLegacy returns the non-witness serialization (spec §4.3):
// version ‖ compact_size(|vin|) ‖ inputs ‖ compact_size(|vout|) ‖ outputs ‖ locktime.
func (t *Transaction) SerializeLegacy() []byte {
	out := make([]byte, 0, 64+64*len(t.Inputs)+64*len(t.Outputs))
	out = codec.AppendU32LE(out, t.Version)
	out = codec.AppendCompactSize(out, uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		out = appendInputNonWitness(out, in, nil)
	}
	out = codec.AppendCompactSize(out, uint64(len(t.Outputs)))
	for _, o := range t.Outputs {
		out = appendOutput(out, o)
	}
	out = codec.AppendU32LE(out, t.Locktime)
	return out
}

// SerializeSegwit returns the witness serialization (spec §4.3): identical
// to SerializeLegacy except for the 0x00 0x01 marker after version and a
// per-input witness stack before locktime.
func (t *Transaction) SerializeSegwit() []byte {
	out := make([]byte, 0, 64+64*len(t.Inputs)+64*len(t.Outputs))
	out = codec.AppendU32LE(out, t.Version)
	out = append(out, 0x00, 0x01)
	out = codec.AppendCompactSize(out, uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		out = appendInputNonWitness(out, in, nil)
	}
	out = codec.AppendCompactSize(out, uint64(len(t.Outputs)))
	for _, o := range t.Outputs {
		out = appendOutput(out, o)
	}
	for _, in := range t.Inputs {
		out = appendWitness(out, in.Witness)
	}
	out = codec.AppendU32LE(out, t.Locktime)
	return out
}

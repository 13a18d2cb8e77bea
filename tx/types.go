// Package tx implements the transaction model and its byte-exact legacy
// and segwit serializations, plus the two sighash preimages the script
// interpreter needs to validate P2PKH and P2WPKH inputs.
package tx

import "fmt"

// ScriptType mirrors the mempool JSON's scriptpubkey_type field (spec §6).
type ScriptType string

const (
	ScriptP2PKH    ScriptType = "p2pkh"
	ScriptP2SH     ScriptType = "p2sh"
	ScriptV0P2WPKH ScriptType = "v0_p2wpkh"
	ScriptV0P2WSH  ScriptType = "v0_p2wsh"
	ScriptV1P2TR   ScriptType = "v1_p2tr"
	ScriptOpReturn ScriptType = "op_return"
)

// Prevout is the output a transaction input spends.
type Prevout struct {
	Value        uint64
	ScriptPubKey []byte
	ScriptType   ScriptType
}

// Input is one transaction input: the outpoint it spends, its unlock data,
// and the prevout it references (denormalized onto the input, per spec §3,
// so validation never needs an external UTXO set lookup).
type Input struct {
	PrevTxID   [32]byte // internal byte order, as on the wire (reverse of the hex form)
	PrevVout   uint32
	Sequence   uint32
	ScriptSig  []byte
	Witness    [][]byte
	IsCoinbase bool
	Prevout    Prevout
}

// Output is one transaction output.
type Output struct {
	Value        uint64
	ScriptPubKey []byte
	ScriptType   ScriptType
}

// Transaction is the central, immutable-after-construction entity (spec §3,
// §9: "make Transaction immutable after derivation"). Every derived field
// is computed once in New and read only through accessors thereafter.
type Transaction struct {
	Version  uint32
	Locktime uint32
	Inputs   []Input
	Outputs  []Output

	txid      [32]byte
	wtxid     [32]byte
	isSegwit  bool
	weight    int
	fee       int64
	feeSigned bool // true iff fee is a meaningful (non-coinbase) value
}

// Error is the error kind transaction construction/parsing fails with.
type Error struct {
	Code string
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

const (
	ErrMalformedHex  = "MalformedHex"
	ErrNegativeFee   = "NegativeFee"
	ErrMalformedJson = "MalformedJson"
)

// isSpendSegwit reports whether a prevout's script type requires segwit
// (witness) spending semantics.
func isSpendSegwit(t ScriptType) bool {
	return t == ScriptV0P2WPKH || t == ScriptV0P2WSH
}

// New constructs a Transaction and computes every derived field (spec §3:
// txid, wtxid, is_segwit, weight, fee). It is the only place those fields
// are ever assigned.
func New(version, locktime uint32, inputs []Input, outputs []Output) (*Transaction, error) {
	t := &Transaction{
		Version:  version,
		Locktime: locktime,
		Inputs:   inputs,
		Outputs:  outputs,
	}

	for _, in := range inputs {
		if isSpendSegwit(in.Prevout.ScriptType) || (in.IsCoinbase && len(in.Witness) > 0) {
			t.isSegwit = true
			break
		}
	}

	nonWitness := t.SerializeLegacy()
	t.txid = txidFromSerialization(nonWitness)

	if t.isSegwit {
		witness := t.SerializeSegwit()
		t.wtxid = txidFromSerialization(witness)
		t.weight = 3*len(nonWitness) + len(witness)
	} else {
		t.wtxid = t.txid
		t.weight = 3 * len(nonWitness)
	}

	isCoinbase := len(inputs) == 1 && inputs[0].IsCoinbase
	if !isCoinbase {
		var inSum, outSum uint64
		for _, in := range inputs {
			inSum += in.Prevout.Value
		}
		for _, o := range outputs {
			outSum += o.Value
		}
		t.fee = int64(inSum) - int64(outSum)
		t.feeSigned = true
		if t.fee <= 0 {
			return t, &Error{Code: ErrNegativeFee, Msg: "inputs do not exceed outputs"}
		}
	}

	return t, nil
}

// Txid returns the transaction's txid: reversed double-SHA-256 of the
// non-witness serialization.
func (t *Transaction) Txid() [32]byte { return t.txid }

// Wtxid returns the transaction's wtxid: reversed double-SHA-256 of the
// witness serialization, or Txid() for a non-segwit transaction.
func (t *Transaction) Wtxid() [32]byte { return t.wtxid }

// IsSegwit reports whether any input spends a v0_p2wpkh/v0_p2wsh prevout,
// or is a coinbase input carrying a witness.
func (t *Transaction) IsSegwit() bool { return t.isSegwit }

// Weight returns 3*len(non-witness serialization) + len(witness serialization)
// for a segwit transaction, and 3*len(non-witness serialization) otherwise.
func (t *Transaction) Weight() int { return t.weight }

// Fee returns the transaction's fee (sum of prevout values minus sum of
// output values). The second return is false for a coinbase transaction,
// whose fee is not meaningful.
func (t *Transaction) Fee() (int64, bool) { return t.fee, t.feeSigned }

// IsCoinbase reports whether t has the single coinbase-shaped input.
func (t *Transaction) IsCoinbase() bool {
	return len(t.Inputs) == 1 && t.Inputs[0].IsCoinbase
}

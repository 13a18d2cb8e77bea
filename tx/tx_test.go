package tx

import (
	"bytes"
	"testing"

	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
	"github.com/2tbmz9y2xt-lang/blockassembler/script"
)

func sampleP2PKHInput() Input {
	return Input{
		PrevTxID:  [32]byte{1, 2, 3},
		PrevVout:  0,
		Sequence:  0xffffffff,
		ScriptSig: []byte{0x01, 0xAA, 0x01, 0xBB},
		Prevout: Prevout{
			Value:        100000,
			ScriptPubKey: []byte{0x76, 0xa9, 0x14, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 0x88, 0xac},
			ScriptType:   ScriptP2PKH,
		},
	}
}

func sampleOutput() Output {
	return Output{
		Value:        90000,
		ScriptPubKey: []byte{0x76, 0xa9, 0x14, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x88, 0xac},
		ScriptType:   ScriptP2PKH,
	}
}

func TestNewComputesWeightLaw(t *testing.T) {
	txn, err := New(2, 0, []Input{sampleP2PKHInput()}, []Output{sampleOutput()})
	if err != nil {
		t.Fatal(err)
	}
	nonWitness := txn.SerializeLegacy()
	want := 3 * len(nonWitness)
	if txn.Weight() != want {
		t.Fatalf("weight = %d, want %d (non-segwit weight law)", txn.Weight(), want)
	}
	if txn.IsSegwit() {
		t.Fatal("P2PKH-only transaction should not be segwit")
	}
}

func TestNewComputesFee(t *testing.T) {
	txn, err := New(2, 0, []Input{sampleP2PKHInput()}, []Output{sampleOutput()})
	if err != nil {
		t.Fatal(err)
	}
	fee, ok := txn.Fee()
	if !ok {
		t.Fatal("expected fee to be meaningful for a non-coinbase tx")
	}
	if fee != 10000 {
		t.Fatalf("fee = %d, want 10000", fee)
	}
}

func TestNewRejectsNegativeFee(t *testing.T) {
	in := sampleP2PKHInput()
	in.Prevout.Value = 100
	out := sampleOutput()
	out.Value = 1000
	_, err := New(2, 0, []Input{in}, []Output{out})
	if err == nil {
		t.Fatal("expected NegativeFee error")
	}
	txErr, ok := err.(*Error)
	if !ok || txErr.Code != ErrNegativeFee {
		t.Fatalf("expected NegativeFee error, got %v", err)
	}
}

func TestSerializeRoundTripLegacy(t *testing.T) {
	txn, err := New(2, 0, []Input{sampleP2PKHInput()}, []Output{sampleOutput()})
	if err != nil {
		t.Fatal(err)
	}
	raw := txn.SerializeLegacy()
	parsed, err := ParseLegacy(raw)
	if err != nil {
		t.Fatal(err)
	}
	rebuilt, err := New(parsed.Version, parsed.Locktime, attachPrevouts(parsed.Inputs, txn.Inputs), parsed.Outputs)
	if err != nil {
		t.Fatal(err)
	}
	reRaw := rebuilt.SerializeLegacy()
	if !bytes.Equal(raw, reRaw) {
		t.Fatalf("round trip mismatch:\n got %x\nwant %x", reRaw, raw)
	}
}

func TestSerializeRoundTripSegwit(t *testing.T) {
	segIn := Input{
		PrevTxID:  [32]byte{9, 9, 9},
		PrevVout:  1,
		Sequence:  0xffffffff,
		ScriptSig: nil,
		Witness:   [][]byte{{0xAA, 0xBB}, {0x02, 1, 2}},
		Prevout: Prevout{
			Value:        50000,
			ScriptPubKey: append([]byte{0x00, 0x14}, make([]byte, 20)...),
			ScriptType:   ScriptV0P2WPKH,
		},
	}
	txn, err := New(2, 0, []Input{segIn}, []Output{sampleOutput()})
	if err != nil {
		t.Fatal(err)
	}
	if !txn.IsSegwit() {
		t.Fatal("expected segwit transaction")
	}
	raw := txn.SerializeSegwit()
	parsed, err := ParseSegwit(raw)
	if err != nil {
		t.Fatal(err)
	}
	rebuilt, err := New(parsed.Version, parsed.Locktime, attachPrevouts(parsed.Inputs, txn.Inputs), parsed.Outputs)
	if err != nil {
		t.Fatal(err)
	}
	reRaw := rebuilt.SerializeSegwit()
	if !bytes.Equal(raw, reRaw) {
		t.Fatalf("segwit round trip mismatch:\n got %x\nwant %x", reRaw, raw)
	}
	if txn.Weight() != 3*len(txn.SerializeLegacy())+len(raw) {
		t.Fatal("weight law violated for segwit transaction")
	}
}

func TestLegacySighashPreimageBlanksOtherInputs(t *testing.T) {
	in1 := sampleP2PKHInput()
	in2 := sampleP2PKHInput()
	in2.PrevTxID = [32]byte{9}
	in2.ScriptSig = []byte{0xDE, 0xAD, 0xBE, 0xEF}
	txn, err := New(2, 0, []Input{in1, in2}, []Output{sampleOutput()})
	if err != nil {
		t.Fatal(err)
	}
	preimage := txn.LegacySighashPreimage(0)
	// Input 0's scriptSig should be replaced by its prevout scriptPubKey,
	// input 1's should be blanked to empty.
	if !bytes.Contains(preimage, in1.Prevout.ScriptPubKey) {
		t.Fatal("expected preimage to contain input 0's prevout scriptPubKey")
	}
	if bytes.Contains(preimage, in2.ScriptSig) {
		t.Fatal("expected input 1's original scriptSig to be blanked")
	}
}

func TestBIP143PreimageStructure(t *testing.T) {
	segIn := Input{
		PrevTxID: [32]byte{1},
		PrevVout: 0,
		Sequence: 0xffffffff,
		Witness:  [][]byte{{0x01}, {0x02}},
		Prevout: Prevout{
			Value:        100000,
			ScriptPubKey: append([]byte{0x00, 0x14}, make([]byte, 20)...),
			ScriptType:   ScriptV0P2WPKH,
		},
	}
	txn, err := New(2, 0, []Input{segIn}, []Output{sampleOutput()})
	if err != nil {
		t.Fatal(err)
	}
	scriptcode := []byte{0x76, 0xa9, 0x14}
	scriptcode = append(scriptcode, make([]byte, 20)...)
	scriptcode = append(scriptcode, 0x88, 0xac)
	preimage := txn.BIP143Preimage(0, scriptcode)

	if !bytes.HasPrefix(preimage, []byte{0x02, 0x00, 0x00, 0x00}) {
		t.Fatal("expected BIP143 preimage to start with version LE bytes")
	}
	if !bytes.HasSuffix(preimage, []byte{0x00, 0x00, 0x00, 0x00}) {
		t.Fatal("expected BIP143 preimage to end with locktime LE bytes")
	}
	// version(4) + hashPrevouts(32) + hashSequences(32) + outpoint(36) +
	// compact_size(scriptcode len) + scriptcode + value(8) + sequence(4) +
	// hashOutputs(32) + locktime(4).
	want := 4 + 32 + 32 + 36 + 1 + len(scriptcode) + 8 + 4 + 32 + 4
	if len(preimage) != want {
		t.Fatalf("preimage length = %d, want %d", len(preimage), want)
	}
}

// TestBIP143PreimageKnownAnswerVector checks the BIP-143 preimage against
// the literal segwit test vector (spec §8 #5): a v0_p2wpkh input spending
// prevout value 30000 at vout 1, paying a single p2pkh output of 20000.
func TestBIP143PreimageKnownAnswerVector(t *testing.T) {
	prevTxid, err := codec.HexReverse("6ae73833e5f58616445bfe35171e89b23c5b59ef585637537f6ba34a019449ac")
	if err != nil {
		t.Fatal(err)
	}
	prevScriptPubKey, err := codec.DecodeHex("0014aa966f56de599b4094b61aa68a2b3df9e97e9c48")
	if err != nil {
		t.Fatal(err)
	}
	outScriptPubKey, err := codec.DecodeHex("76a914ce72abfd0e6d9354a660c18f2825eb392f060fdc88ac")
	if err != nil {
		t.Fatal(err)
	}

	segIn := Input{
		PrevTxID: prevTxid,
		PrevVout: 1,
		Sequence: 0xffffffff,
		Witness:  nil, // BIP143Preimage does not depend on witness contents
		Prevout: Prevout{
			Value:        30000,
			ScriptPubKey: prevScriptPubKey,
			ScriptType:   ScriptV0P2WPKH,
		},
	}
	out := Output{
		Value:        20000,
		ScriptPubKey: outScriptPubKey,
		ScriptType:   ScriptP2PKH,
	}
	txn, err := New(2, 0, []Input{segIn}, []Output{out})
	if err != nil {
		t.Fatal(err)
	}

	scriptcode := script.P2WPKHScriptCode(p2wpkhHashFromScriptPubKey(prevScriptPubKey))
	preimage := txn.BIP143Preimage(0, scriptcode)

	want, err := codec.DecodeHex("02000000cbfaca386d65ea7043aaac40302325d0dc7391a73b585571e28d3287d6b162033bb13029ce7b1f559ef5e747fcac439f1455a2ec7c5f09b72290795e70665044ac4994014aa36b7f53375658ef595b3cb2891e1735fe5b441686f5e53338e76a010000001976a914aa966f56de599b4094b61aa68a2b3df9e97e9c4888ac3075000000000000ffffffff900a6c6ff6cd938bf863e50613a4ed5fb1661b78649fe354116edaf5d4abb95200000000")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(preimage, want) {
		t.Fatalf("BIP-143 preimage mismatch:\n got %x\nwant %x", preimage, want)
	}
}

// attachPrevouts re-attaches prevout data (which does not travel on the
// wire) to parsed inputs by position, for round-trip testing only.
func attachPrevouts(parsed []Input, withPrevouts []Input) []Input {
	out := make([]Input, len(parsed))
	for i := range parsed {
		out[i] = parsed[i]
		out[i].IsCoinbase = withPrevouts[i].IsCoinbase
		out[i].Prevout = withPrevouts[i].Prevout
	}
	return out
}

package tx

import (
	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
)

// rawTx is the decoded shape of a serialized transaction before prevouts
// are reattached: prevout data does not travel on the wire (spec §4.3), so
// ParseLegacy/ParseSegwit cannot reconstruct Prevout by themselves. Callers
// that need a fully validated Transaction must attach prevouts (the
// mempool harness does this from the JSON prevout field) before calling
// New; ParseLegacy/ParseSegwit exist to exercise the serialization
// round-trip property (spec §8.3), not to build validation-ready
// transactions from wire bytes alone.
type rawTx struct {
	Version  uint32
	Locktime uint32
	Inputs   []Input
	Outputs  []Output
	IsSegwit bool
}

// ParseLegacy decodes a non-witness serialization produced by
// SerializeLegacy, reporting MalformedHex on truncation.
func ParseLegacy(b []byte) (*rawTx, error) {
	return parseTx(b, false)
}

// ParseSegwit decodes a witness serialization produced by SerializeSegwit.
func ParseSegwit(b []byte) (*rawTx, error) {
	return parseTx(b, true)
}

func parseTx(b []byte, segwit bool) (*rawTx, error) {
	r := codec.NewReader(b)

	version, err := r.ReadU32LE()
	if err != nil {
		return nil, &Error{Code: ErrMalformedHex, Msg: "version"}
	}

	if segwit {
		marker, err := r.ReadExact(2)
		if err != nil {
			return nil, &Error{Code: ErrMalformedHex, Msg: "witness marker"}
		}
		if marker[0] != 0x00 || marker[1] != 0x01 {
			return nil, &Error{Code: ErrMalformedHex, Msg: "bad witness marker"}
		}
	}

	inCount, err := r.ReadCompactSize()
	if err != nil {
		return nil, &Error{Code: ErrMalformedHex, Msg: "vin count"}
	}
	inputs := make([]Input, 0, inCount)
	for i := uint64(0); i < inCount; i++ {
		in, err := parseInputNonWitness(r)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}

	outCount, err := r.ReadCompactSize()
	if err != nil {
		return nil, &Error{Code: ErrMalformedHex, Msg: "vout count"}
	}
	outputs := make([]Output, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		o, err := parseOutput(r)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, o)
	}

	if segwit {
		for i := range inputs {
			w, err := parseWitness(r)
			if err != nil {
				return nil, err
			}
			inputs[i].Witness = w
		}
	}

	locktime, err := r.ReadU32LE()
	if err != nil {
		return nil, &Error{Code: ErrMalformedHex, Msg: "locktime"}
	}

	return &rawTx{
		Version:  version,
		Locktime: locktime,
		Inputs:   inputs,
		Outputs:  outputs,
		IsSegwit: segwit,
	}, nil
}

func parseInputNonWitness(r *codec.Reader) (Input, error) {
	var in Input
	txidBytes, err := r.ReadExact(32)
	if err != nil {
		return in, &Error{Code: ErrMalformedHex, Msg: "prev txid"}
	}
	copy(in.PrevTxID[:], txidBytes)

	vout, err := r.ReadU32LE()
	if err != nil {
		return in, &Error{Code: ErrMalformedHex, Msg: "prev vout"}
	}
	in.PrevVout = vout

	sigLen, err := r.ReadCompactSize()
	if err != nil {
		return in, &Error{Code: ErrMalformedHex, Msg: "scriptsig len"}
	}
	sig, err := r.ReadExact(int(sigLen))
	if err != nil {
		return in, &Error{Code: ErrMalformedHex, Msg: "scriptsig"}
	}
	in.ScriptSig = append([]byte{}, sig...)

	seq, err := r.ReadU32LE()
	if err != nil {
		return in, &Error{Code: ErrMalformedHex, Msg: "sequence"}
	}
	in.Sequence = seq
	return in, nil
}

func parseOutput(r *codec.Reader) (Output, error) {
	var o Output
	value, err := r.ReadU64LE()
	if err != nil {
		return o, &Error{Code: ErrMalformedHex, Msg: "value"}
	}
	o.Value = value

	spkLen, err := r.ReadCompactSize()
	if err != nil {
		return o, &Error{Code: ErrMalformedHex, Msg: "scriptpubkey len"}
	}
	spk, err := r.ReadExact(int(spkLen))
	if err != nil {
		return o, &Error{Code: ErrMalformedHex, Msg: "scriptpubkey"}
	}
	o.ScriptPubKey = append([]byte{}, spk...)
	return o, nil
}

func parseWitness(r *codec.Reader) ([][]byte, error) {
	count, err := r.ReadCompactSize()
	if err != nil {
		return nil, &Error{Code: ErrMalformedHex, Msg: "witness count"}
	}
	if count == 0 {
		return nil, nil
	}
	items := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		itemLen, err := r.ReadCompactSize()
		if err != nil {
			return nil, &Error{Code: ErrMalformedHex, Msg: "witness item len"}
		}
		item, err := r.ReadExact(int(itemLen))
		if err != nil {
			return nil, &Error{Code: ErrMalformedHex, Msg: "witness item"}
		}
		items = append(items, append([]byte{}, item...))
	}
	return items, nil
}

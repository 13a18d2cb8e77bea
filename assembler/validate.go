package assembler

import (
	"github.com/2tbmz9y2xt-lang/blockassembler/script"
	"github.com/2tbmz9y2xt-lang/blockassembler/tx"
)

// ErrUnsupportedScriptType is returned for prevout types this core does not
// implement (spec §9: "a compliant implementation must either implement
// them or explicitly mark unsupported prevout types as validation-failure
// rather than silently accepting" — this core takes the latter path).
const ErrUnsupportedScriptType = "UnsupportedScriptType"

// validateCandidates runs the script interpreter over every accepted
// candidate's inputs (spec §4.7 step 3). A transaction validates iff every
// input validates.
func validateCandidates(candidates []*Candidate) {
	for _, c := range candidates {
		if c.terminal() {
			continue
		}
		if err := validateTransaction(c.Tx); err != nil {
			c.reject(StateValidationFailed, err)
			continue
		}
		c.State = StateValidated
	}
}

func validateTransaction(t *tx.Transaction) error {
	if t.IsCoinbase() {
		return nil
	}
	for i, in := range t.Inputs {
		checker := tx.NewSignatureChecker(t, i)
		var ok bool
		var err error
		switch in.Prevout.ScriptType {
		case tx.ScriptP2PKH:
			ok, err = script.RunP2PKH(in.ScriptSig, in.Prevout.ScriptPubKey, checker)
		case tx.ScriptV0P2WPKH:
			ok, err = validateP2WPKH(in, checker)
		default:
			return &script.Error{Code: ErrUnsupportedScriptType, Msg: string(in.Prevout.ScriptType)}
		}
		if err != nil {
			return err
		}
		if !ok {
			return &script.Error{Code: script.ErrScriptExecutionFailed, Msg: "input failed validation"}
		}
	}
	return nil
}

func validateP2WPKH(in tx.Input, checker script.SignatureChecker) (bool, error) {
	pkh := pubkeyHash20(in.Prevout.ScriptPubKey)
	scriptcode := script.P2WPKHScriptCode(pkh)
	return script.RunP2WPKH(scriptcode, in.Witness, checker)
}

// pubkeyHash20 extracts the 20-byte pubkey hash from a v0_p2wpkh
// scriptPubKey: OP_0 OP_PUSHBYTES_20 <hash> (spec §4.3: "the last 20 bytes
// of the prevout's scriptpubkey").
func pubkeyHash20(spk []byte) [20]byte {
	var out [20]byte
	if len(spk) >= 20 {
		copy(out[:], spk[len(spk)-20:])
	}
	return out
}

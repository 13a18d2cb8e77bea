package script

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// VerifyECDSA checks a DER-encoded secp256k1 ECDSA signature against a
// compressed public key and a 32-byte digest. This is the only crypto
// primitive OP_CHECKSIG needs; malformed DER or a pubkey that does not
// parse are reported as ok=false rather than an error, the same as a
// signature that fails verification. Run then pushes 0x00 for that
// OP_CHECKSIG and continues executing; it does not halt.
func VerifyECDSA(digest [32]byte, derSig []byte, pubkey []byte) bool {
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false
	}
	key, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	return sig.Verify(digest[:], key)
}

// P2PKHProgram concatenates scriptSig and scriptPubKey for legacy input
// validation (spec §4.4: "a linear executor over a byte buffer formed by
// concatenating scriptSig ‖ scriptPubKey").
func P2PKHProgram(scriptSig, scriptPubKey []byte) []byte {
	out := make([]byte, 0, len(scriptSig)+len(scriptPubKey))
	out = append(out, scriptSig...)
	out = append(out, scriptPubKey...)
	return out
}

// P2WPKHScriptCode synthesizes the 25-byte scriptcode a P2WPKH input
// executes against: OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY
// OP_CHECKSIG (spec §4.3 BIP-143 preimage, §4.4).
func P2WPKHScriptCode(pubkeyHash [20]byte) []byte {
	out := make([]byte, 0, 25)
	out = append(out, OP_DUP, OP_HASH160)
	out = append(out, byte(len(pubkeyHash)))
	out = append(out, pubkeyHash[:]...)
	out = append(out, OP_EQUALVERIFY, OP_CHECKSIG)
	return out
}

// RunP2WPKH executes scriptcode with the witness stack preloaded, per
// spec §4.4's "synthesized P2WPKH program with witness preloaded".
func RunP2WPKH(scriptcode []byte, witness [][]byte, checker SignatureChecker) (bool, error) {
	stack := NewStack()
	for _, item := range witness {
		if err := stack.Push(item); err != nil {
			return false, err
		}
	}
	return Run(scriptcode, stack, checker)
}

// RunP2PKH executes the concatenated scriptSig‖scriptPubKey program for a
// legacy input.
func RunP2PKH(scriptSig, scriptPubKey []byte, checker SignatureChecker) (bool, error) {
	return Run(P2PKHProgram(scriptSig, scriptPubKey), NewStack(), checker)
}

package script

import (
	"fmt"

	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
)

// SignatureChecker computes and checks the digest OP_CHECKSIG's signature
// must commit to. The interpreter never assembles a sighash preimage
// itself — that's transaction-shaped work the tx package owns — it only
// asks the checker "does this DER signature + pubkey check out for the
// input I'm currently executing". sigType is the sighash type byte, the
// final byte of the pushed signature.
type SignatureChecker interface {
	CheckSig(derSig []byte, sigType byte, pubkey []byte) (bool, error)
}

// Error is the error kind script execution fails with.
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
	ErrMalformedScript       = "MalformedScript"
	ErrUnsupportedOpcode     = "UnsupportedOpcode"
	ErrScriptExecutionFailed = "ScriptExecutionFailed"
)

// Run executes program against stack, returning whether the program
// succeeded: the stack holds exactly one item and it is 0x01 (spec §4.4
// success predicate).
func Run(program []byte, stack *Stack, checker SignatureChecker) (bool, error) {
	r := codec.NewReader(program)
	for r.Remaining() > 0 {
		b, err := r.ReadU8()
		if err != nil {
			return false, &Error{Code: ErrMalformedScript, Msg: err.Error()}
		}
		op := decodeOpcode(b)

		if n, ok := op.IsPushBytes(); ok {
			data, err := r.ReadExact(n)
			if err != nil {
				return false, &Error{Code: ErrMalformedScript, Msg: "truncated push"}
			}
			if err := stack.Push(append([]byte{}, data...)); err != nil {
				return false, err
			}
			continue
		}

		switch op.Code() {
		case OP_0:
			if err := stack.Push([]byte{}); err != nil {
				return false, err
			}

		case OP_PUSHDATA1, OP_PUSHDATA2, OP_PUSHDATA4:
			n, err := readPushdataLen(r, op.Code())
			if err != nil {
				return false, &Error{Code: ErrMalformedScript, Msg: err.Error()}
			}
			data, err := r.ReadExact(n)
			if err != nil {
				return false, &Error{Code: ErrMalformedScript, Msg: "truncated pushdata"}
			}
			if err := stack.Push(append([]byte{}, data...)); err != nil {
				return false, err
			}

		case OP_DUP:
			top, ok := stack.Peek()
			if !ok {
				return false, &Error{Code: ErrScriptExecutionFailed, Msg: "OP_DUP on empty stack"}
			}
			if err := stack.Push(append([]byte{}, top...)); err != nil {
				return false, err
			}

		case OP_EQUAL:
			a, aok := stack.Pop()
			b, bok := stack.Pop()
			if !aok || !bok {
				if err := stack.Push([]byte{0x00}); err != nil {
					return false, err
				}
				continue
			}
			if bytesEqual(a, b) {
				if err := stack.Push([]byte{0x01}); err != nil {
					return false, err
				}
			} else {
				if err := stack.Push([]byte{0x00}); err != nil {
					return false, err
				}
			}

		case OP_EQUALVERIFY:
			a, aok := stack.Pop()
			b, bok := stack.Pop()
			if !aok || !bok || !bytesEqual(a, b) {
				return false, nil
			}

		case OP_HASH160:
			top, ok := stack.Pop()
			if !ok {
				return false, &Error{Code: ErrScriptExecutionFailed, Msg: "OP_HASH160 on empty stack"}
			}
			h := codec.Hash160(top)
			if err := stack.Push(h[:]); err != nil {
				return false, err
			}

		case OP_CHECKSIG:
			pubkey, pok := stack.Pop()
			sig, sok := stack.Pop()
			if !pok || !sok || len(sig) == 0 {
				if err := stack.Push([]byte{0x00}); err != nil {
					return false, err
				}
				continue
			}
			sigType := sig[len(sig)-1]
			derSig := sig[:len(sig)-1]
			ok, err := checker.CheckSig(derSig, sigType, pubkey)
			if err != nil || !ok {
				if err := stack.Push([]byte{0x00}); err != nil {
					return false, err
				}
				continue
			}
			if err := stack.Push([]byte{0x01}); err != nil {
				return false, err
			}

		case OP_RETURN:
			return false, nil

		case OP_CHECKMULTISIG:
			return false, &Error{Code: ErrUnsupportedOpcode, Msg: "OP_CHECKMULTISIG not implemented"}

		default:
			return false, &Error{Code: ErrUnsupportedOpcode, Msg: fmt.Sprintf("opcode 0x%02x", op.Code())}
		}
	}

	if stack.Len() != 1 {
		return false, nil
	}
	top, _ := stack.Peek()
	return len(top) == 1 && top[0] == 0x01, nil
}

func readPushdataLen(r *codec.Reader, opcode byte) (int, error) {
	switch opcode {
	case OP_PUSHDATA1:
		v, err := r.ReadU8()
		return int(v), err
	case OP_PUSHDATA2:
		v, err := r.ReadU16LE()
		return int(v), err
	default: // OP_PUSHDATA4
		v, err := r.ReadU32LE()
		return int(v), err
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

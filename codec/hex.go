package codec

import (
	"encoding/hex"
	"fmt"
)

// Error is the error kind codec operations fail with.
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
	ErrMalformedHex = "MalformedHex"
)

// DecodeHex decodes a hex string to bytes, failing with MalformedHex on odd
// length or a non-hex digit.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &Error{Code: ErrMalformedHex, Msg: "odd length hex string"}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &Error{Code: ErrMalformedHex, Msg: err.Error()}
	}
	return b, nil
}

// EncodeHex renders b as lowercase hex.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexReverse decodes s as hex and reverses byte order, for the txid/hash
// fields whose internal (and wire) order is the reverse of their hex form.
func HexReverse(s string) ([32]byte, error) {
	var out [32]byte
	b, err := DecodeHex(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, &Error{Code: ErrMalformedHex, Msg: "expected 32 bytes"}
	}
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out, nil
}

package assembler

import "fmt"

// Error is the error kind block-level assembler operations fail with.
// Transaction-level failures (spec §7 policy: "recovered locally") never
// surface as an Error — they are recorded on the Candidate instead.
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
	// ErrNoNonceFound is surfaced to the caller if the miner exhausts the
	// 32-bit nonce space without meeting the target (spec §7).
	ErrNoNonceFound = "NoNonceFound"

	// ErrNoCoinbaseRecipient is surfaced if Assemble is called without a
	// coinbase payout script configured.
	ErrNoCoinbaseRecipient = "NoCoinbaseRecipient"

	// ErrToposortFailed wraps a cycle detected in the selected set's
	// dependency graph (spec §4.6: "should never happen... the
	// implementation may treat it as a bug and reject").
	ErrToposortFailed = "ToposortFailed"

	// ErrCoinbaseConstructionFailed wraps an unexpected failure building
	// the coinbase transaction.
	ErrCoinbaseConstructionFailed = "CoinbaseConstructionFailed"
)

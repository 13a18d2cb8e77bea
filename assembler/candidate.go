package assembler

import "github.com/2tbmz9y2xt-lang/blockassembler/tx"

// State names the candidate-transaction state machine of spec §4.7:
//
//	Parsed -> HashComputed -> WeightComputed ->
//	  (DoubleSpendRejected | Accepted) ->
//	  (ValidationFailed | Validated) ->
//	  (NotSelected | Selected) -> Ordered -> Emitted
//
// Terminal rejection states never re-enter a later stage.
type State string

const (
	StateParsed              State = "Parsed"
	StateHashComputed        State = "HashComputed"
	StateWeightComputed      State = "WeightComputed"
	StateDoubleSpendRejected State = "DoubleSpendRejected"
	StateAccepted            State = "Accepted"
	StateValidationFailed    State = "ValidationFailed"
	StateValidated           State = "Validated"
	StateNotSelected         State = "NotSelected"
	StateSelected            State = "Selected"
	StateOrdered             State = "Ordered"
	StateEmitted             State = "Emitted"
)

// Candidate tracks one mempool transaction's progress through the
// assembly pipeline, for observability (spec §4.7's state machine) beyond
// what implicit control flow would show.
type Candidate struct {
	Tx    *tx.Transaction
	State State

	// RejectReason is set whenever State lands on a rejection/failure
	// state; nil otherwise.
	RejectReason error
}

func newCandidate(t *tx.Transaction) *Candidate {
	// Hash and weight are already computed inside tx.New, so a freshly
	// ingested candidate starts past Parsed/HashComputed/WeightComputed.
	return &Candidate{Tx: t, State: StateWeightComputed}
}

func (c *Candidate) reject(state State, err error) {
	c.State = state
	c.RejectReason = err
}

// terminal reports whether c has reached a rejection/failure state and
// should be excluded from every later pipeline stage.
func (c *Candidate) terminal() bool {
	switch c.State {
	case StateDoubleSpendRejected, StateValidationFailed, StateNotSelected:
		return true
	default:
		return false
	}
}

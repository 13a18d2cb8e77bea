package assembler

import (
	"context"
	"time"

	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
	"github.com/2tbmz9y2xt-lang/blockassembler/merkle"
	"github.com/2tbmz9y2xt-lang/blockassembler/toposort"
	"github.com/2tbmz9y2xt-lang/blockassembler/tx"
)

// Params configures one block-assembly run (spec §4.7, §6: fields not
// derivable from the mempool set itself).
type Params struct {
	PrevBlockHash [32]byte
	Height        uint32
	PayoutScript  []byte
	Timestamp     time.Time
}

// Result is the complete output of Assemble: the ordered transaction set
// actually included (coinbase first), the mined header, and the
// per-transaction candidate ledger for observability (spec §4.7 step 8).
type Result struct {
	Coinbase     *tx.Transaction
	Transactions []*tx.Transaction // coinbase first, then in toposorted order
	Header       Header
	Candidates   []*Candidate
}

// Assemble runs the full pipeline (spec §4.7): double-spend filtering,
// script validation, fee/weight-greedy selection, topological ordering,
// coinbase synthesis with a witness commitment, header construction, and
// nonce-grinding mining.
func Assemble(ctx context.Context, pool []*tx.Transaction, params Params) (*Result, error) {
	if len(params.PayoutScript) == 0 {
		return nil, &Error{Code: ErrNoCoinbaseRecipient, Msg: "no coinbase payout script configured"}
	}

	candidates := make([]*Candidate, 0, len(pool))
	for _, t := range pool {
		candidates = append(candidates, newCandidate(t))
	}

	filterDoubleSpends(candidates)
	validateCandidates(candidates)
	selected := selectByWeight(candidates)

	// byTxid is keyed by internal byte order (the same order as
	// Input.PrevTxID) so deps() can look up a dependency directly, rather
	// than by Txid()'s reversed/display order.
	byTxid := make(map[[32]byte]*tx.Transaction, len(selected))
	ids := make([][32]byte, 0, len(selected))
	for _, c := range selected {
		id := codec.Reverse(c.Tx.Txid())
		byTxid[id] = c.Tx
		ids = append(ids, id)
	}

	deps := func(id [32]byte) [][32]byte {
		t := byTxid[id]
		var out [][32]byte
		for _, in := range t.Inputs {
			if _, ok := byTxid[in.PrevTxID]; ok {
				out = append(out, in.PrevTxID)
			}
		}
		return out
	}

	ordered, err := toposort.Order(ids, deps)
	if err != nil {
		return nil, &Error{Code: ErrToposortFailed, Msg: err.Error()}
	}

	orderedTxs := make([]*tx.Transaction, 0, len(ordered))
	for _, id := range ordered {
		t := byTxid[id]
		orderedTxs = append(orderedTxs, t)
		for _, c := range selected {
			if codec.Reverse(c.Tx.Txid()) == id {
				c.State = StateOrdered
			}
		}
	}

	var totalFees uint64
	for _, t := range orderedTxs {
		fee, ok := t.Fee()
		if ok && fee > 0 {
			totalFees += uint64(fee)
		}
	}

	// Merkle leaves are internal byte order (the reverse of the
	// hex-rendered Txid()/Wtxid() accessors), per spec §4.5.
	wtxids := make([][32]byte, 0, len(orderedTxs)+1)
	wtxids = append(wtxids, [32]byte{}) // coinbase placeholder; WitnessRoot uses a zero leaf in its place
	for _, t := range orderedTxs {
		wtxids = append(wtxids, codec.Reverse(t.Wtxid()))
	}
	commitmentRoot := merkle.WitnessRoot(wtxids)

	coinbase, err := BuildCoinbase(params.Height, totalFees, params.PayoutScript, commitmentRoot)
	if err != nil {
		return nil, &Error{Code: ErrCoinbaseConstructionFailed, Msg: err.Error()}
	}

	txids := make([][32]byte, 0, len(orderedTxs)+1)
	txids = append(txids, codec.Reverse(coinbase.Txid()))
	for _, t := range orderedTxs {
		txids = append(txids, codec.Reverse(t.Txid()))
	}
	merkleRoot := merkle.Root(txids)

	header := Header{
		Version:       2,
		PrevBlockHash: params.PrevBlockHash,
		MerkleRoot:    merkleRoot,
		Timestamp:     uint32(params.Timestamp.Unix()),
		Bits:          TargetBits,
	}

	target := BitsToTarget(header.Bits)
	nonce, err := Mine(ctx, header, target)
	if err != nil {
		return nil, err
	}
	header.Nonce = nonce

	for _, c := range selected {
		if c.State == StateOrdered {
			c.State = StateEmitted
		}
	}

	all := make([]*tx.Transaction, 0, len(orderedTxs)+1)
	all = append(all, coinbase)
	all = append(all, orderedTxs...)

	return &Result{
		Coinbase:     coinbase,
		Transactions: all,
		Header:       header,
		Candidates:   candidates,
	}, nil
}

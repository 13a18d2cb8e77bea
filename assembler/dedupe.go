package assembler

// outpoint identifies one (prev_txid, prev_vout) pair consumed by an input.
type outpoint struct {
	txid [32]byte
	vout uint32
}

// filterDoubleSpends walks candidates in input order, accepting a
// transaction only if none of its inputs' (txid, vout) pairs have already
// been consumed by an earlier transaction in this set (spec §4.7 step 2,
// §9: "the filter should only track consumed prevouts", never a
// transaction's own outputs).
func filterDoubleSpends(candidates []*Candidate) {
	seen := make(map[outpoint]struct{})
	for _, c := range candidates {
		conflict := false
		for _, in := range c.Tx.Inputs {
			if in.IsCoinbase {
				continue
			}
			op := outpoint{txid: in.PrevTxID, vout: in.PrevVout}
			if _, ok := seen[op]; ok {
				conflict = true
				break
			}
		}
		if conflict {
			c.reject(StateDoubleSpendRejected, &Error{Code: "DoubleSpend", Msg: "input already spent within block"})
			continue
		}
		for _, in := range c.Tx.Inputs {
			if in.IsCoinbase {
				continue
			}
			seen[outpoint{txid: in.PrevTxID, vout: in.PrevVout}] = struct{}{}
		}
		c.State = StateAccepted
	}
}

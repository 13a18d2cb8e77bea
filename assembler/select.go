package assembler

import "sort"

// selectByWeight greedily selects validated candidates by descending
// fee/weight, including a candidate while cumulative weight plus the
// coinbase reserve stays within MaxWeight (spec §4.7 step 4, §9: resolves
// the source's buggy weight/fee-ascending sort to the correct fee/weight
// descending policy).
func selectByWeight(candidates []*Candidate) []*Candidate {
	eligible := make([]*Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.State == StateValidated {
			eligible = append(eligible, c)
		}
	}

	// sort.SliceStable preserves input order among equal fee/weight ratios,
	// matching spec §4.7's tie-break convention.
	sort.SliceStable(eligible, func(i, j int) bool {
		return feeRate(eligible[i]) > feeRate(eligible[j])
	})

	var selected []*Candidate
	cumulative := 0
	for _, c := range eligible {
		w := c.Tx.Weight()
		if cumulative+w+CoinbaseReserve > MaxWeight {
			c.reject(StateNotSelected, nil)
			continue
		}
		cumulative += w
		c.State = StateSelected
		selected = append(selected, c)
	}
	return selected
}

// feeRate returns fee/weight as a float64 ratio; weight and fee are both
// bounded well within its precision for any realistic mempool transaction.
func feeRate(c *Candidate) float64 {
	fee, ok := c.Tx.Fee()
	if !ok || c.Tx.Weight() == 0 {
		return 0
	}
	return float64(fee) / float64(c.Tx.Weight())
}

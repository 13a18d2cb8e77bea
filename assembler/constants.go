// Package assembler implements the block-assembly pipeline: double-spend
// filtering, script validation, fee/weight-greedy selection, topological
// ordering, coinbase synthesis with a witness commitment, and header
// mining by nonce grinding (spec §4.7).
package assembler

const (
	// MaxWeight is the consensus block weight limit (spec §4.7, §6).
	MaxWeight = 4_000_000

	// CoinbaseReserve is the fixed weight-unit budget set aside for the
	// coinbase transaction during selection (spec §4.7: "the coinbase
	// reserve is ~1,000 weight units" — a constant reservation, not the
	// coinbase's actual computed weight).
	CoinbaseReserve = 1_000

	// Subsidy is the block subsidy paid to the miner, in satoshis (spec §6).
	Subsidy = 1_250_000_000

	// TargetBits is the compact-form proof-of-work target (spec §6).
	TargetBits = 0x1f00ffff

	// WitnessCommitmentMagic prefixes the witness-commitment OP_RETURN
	// output's pushed data (spec §4.7, §6, BIP-141).
	WitnessCommitmentMagic = 0xaa21a9ed
)

package assembler

import (
	"context"
	"runtime"
	"sync"
)

// Mine finds the smallest nonce for which header's hash meets target (spec
// §4.7 step 7, §8 #10, §8 S6). Mining is trivially parallelizable (spec
// §5) since every nonce is independent, but the core contract only
// specifies sequential correctness ("the emitted header uses the smallest
// such n found"): the uint32 nonce space is partitioned into disjoint,
// ascending, contiguous ranges, one per worker; each worker scans its own
// range in ascending order and stops at its first hit, which is therefore
// that range's minimum. Because ranges never overlap and every worker
// runs to completion (its own hit, or exhausting its range) before the
// global minimum is taken, the result is the same smallest nonce a purely
// sequential scan would find — partitioning only shortens wall-clock time,
// it never changes which nonce wins. ctx is checked cooperatively between
// batches so a caller can cancel the search (spec §5: "cancellation of
// mining is cooperative via an observed flag").
func Mine(ctx context.Context, header Header, target [32]byte) (uint32, error) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	const spaceSize = uint64(1) << 32
	chunk := spaceSize / uint64(workers)
	if chunk == 0 {
		chunk = spaceSize
		workers = 1
	}

	type result struct {
		nonce uint32
		found bool
	}

	localMin := make([]result, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		start := uint64(w) * chunk
		end := start + chunk
		if w == workers-1 {
			end = spaceSize
		}
		wg.Add(1)
		go func(w int, start, end uint64) {
			defer wg.Done()
			h := header
			const batch = 4096
			for n := start; n < end; n += batch {
				if ctx.Err() != nil {
					return
				}
				batchEnd := n + batch
				if batchEnd > end {
					batchEnd = end
				}
				for i := n; i < batchEnd; i++ {
					h.Nonce = uint32(i)
					if MeetsTarget(h.Bytes(), target) {
						localMin[w] = result{nonce: uint32(i), found: true}
						return
					}
				}
			}
		}(w, start, end)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	best := uint32(0)
	found := false
	for _, r := range localMin {
		if r.found && (!found || r.nonce < best) {
			best = r.nonce
			found = true
		}
	}

	if !found {
		return 0, &Error{Code: ErrNoNonceFound, Msg: "exhausted 32-bit nonce space"}
	}
	return best, nil
}

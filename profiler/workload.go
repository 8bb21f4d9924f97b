// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: workload.go — deterministic workload replay
//
// Purpose:
//   - Replays a scenario's operation stream against a live queue while
//     recording per-operation latency.
//
// Notes:
//   - The stream is fully determined by the scenario seed; two runs of the
//     same scenario execute identical operation sequences.
//   - Timing covers single queue operations only, never the generator's
//     bookkeeping.
// ─────────────────────────────────────────────────────────────────────────────

package profiler

import (
	"fmt"
	"math/rand"
	"time"

	"gainbucket/bpqueue"
	"gainbucket/dllist"
)

// Result holds the outcome of one profiling run.
type Result struct {
	Scenario Scenario
	Hist     Histogram
	When     time.Time
}

// Run replays sc against a freshly built queue and returns the latency
// profile.
func Run(sc Scenario) (*Result, error) {
	span := sc.KeyHigh - sc.KeyLow
	pool := dllist.NewPool[uint64](sc.Nodes + span + 3)
	q, err := bpqueue.NewSafe(pool, sc.KeyLow, sc.KeyHigh)
	if err != nil {
		return nil, fmt.Errorf("profiler: queue construction: %w", err)
	}

	handles := make([]dllist.Handle, sc.Nodes)
	for i := range handles {
		h, err := pool.BorrowSafe()
		if err != nil {
			return nil, fmt.Errorf("profiler: pool sizing: %w", err)
		}
		*pool.Value(h) = uint64(i)
		handles[i] = h
	}

	res := &Result{Scenario: sc, When: time.Now()}
	switch sc.Pattern {
	case PatternUniform:
		runUniform(sc, pool, q, handles, &res.Hist)
	case PatternSweep:
		runSweep(sc, pool, q, handles, &res.Hist)
	case PatternSparseTop:
		runSparseTop(sc, q, handles, &res.Hist)
	default:
		return nil, fmt.Errorf("%w: unknown pattern %q", ErrBadScenario, sc.Pattern)
	}
	return res, nil
}

func timed(hist *Histogram, op func()) {
	t0 := time.Now()
	op()
	hist.Record(time.Since(t0).Nanoseconds())
}

// runUniform scatters appends, re-keys, detaches and pops uniformly over
// the node set.
func runUniform(sc Scenario, pool *dllist.Pool[uint64], q *bpqueue.BPQueue[uint64, int],
	handles []dllist.Handle, hist *Histogram) {
	rng := rand.New(rand.NewSource(sc.Seed))
	attached := make([]bool, sc.Nodes)
	span := sc.KeyHigh - sc.KeyLow + 1

	for i := 0; i < sc.Ops; i++ {
		id := rng.Intn(sc.Nodes)
		h := handles[id]
		if !attached[id] {
			k := sc.KeyLow + rng.Intn(span)
			timed(hist, func() { q.Append(h, k) })
			attached[id] = true
			continue
		}
		switch rng.Intn(4) {
		case 0:
			timed(hist, func() { q.Detach(h) })
			attached[id] = false
		case 1, 2:
			delta := sc.KeyLow + rng.Intn(span) - q.Key(h)
			timed(hist, func() { q.ModifyKey(h, delta) })
		default:
			var popped dllist.Handle
			timed(hist, func() { popped = q.PopFront() })
			attached[*pool.Value(popped)] = false
		}
	}
}

// runSweep emulates a refinement pass: drain by popping the best node,
// locking it, and nudging a few still-attached neighbors, then refill.
func runSweep(sc Scenario, pool *dllist.Pool[uint64], q *bpqueue.BPQueue[uint64, int],
	handles []dllist.Handle, hist *Histogram) {
	rng := rand.New(rand.NewSource(sc.Seed))
	span := sc.KeyHigh - sc.KeyLow + 1

	refill := func() {
		for _, h := range handles {
			q.Append(h, sc.KeyLow+rng.Intn(span))
		}
	}
	refill()

	attachedIDs := make([]int, sc.Nodes)
	for i := range attachedIDs {
		attachedIDs[i] = i
	}

	done := 0
	for done < sc.Ops {
		if q.IsEmpty() {
			refill()
			attachedIDs = attachedIDs[:0]
			for i := 0; i < sc.Nodes; i++ {
				attachedIDs = append(attachedIDs, i)
			}
		}

		var best dllist.Handle
		timed(hist, func() { best = q.PopFront() })
		done++
		pool.Lock(best)

		bestID := int(*pool.Value(best))
		for i, id := range attachedIDs {
			if id == bestID {
				attachedIDs[i] = attachedIDs[len(attachedIDs)-1]
				attachedIDs = attachedIDs[:len(attachedIDs)-1]
				break
			}
		}

		// Nudge up to 4 neighbors by one gain level each.
		for n := 0; n < 4 && len(attachedIDs) > 0; n++ {
			id := attachedIDs[rng.Intn(len(attachedIDs))]
			h := handles[id]
			delta := 1
			if rng.Intn(2) == 0 {
				delta = -1
			}
			k := q.Key(h)
			if k+delta < sc.KeyLow || k+delta > sc.KeyHigh {
				delta = -delta
			}
			if k+delta < sc.KeyLow || k+delta > sc.KeyHigh {
				delta = 0 // single-level range, nothing to nudge
			}
			timed(hist, func() { q.ModifyKey(h, delta) })
			done++
		}
	}
}

// runSparseTop is the adversarial rescan pattern: every pop of the top
// node walks the full key span down to the resident bottom node.
func runSparseTop(sc Scenario, q *bpqueue.BPQueue[uint64, int],
	handles []dllist.Handle, hist *Histogram) {
	top := handles[0]
	if len(handles) > 1 {
		// Resident bottom node: keeps the queue non-empty so each pop of
		// the top rescans the whole span instead of resetting max to 0.
		q.Append(handles[1], sc.KeyLow)
	}

	for i := 0; i < sc.Ops; i++ {
		timed(hist, func() { q.Append(top, sc.KeyHigh) })
		timed(hist, func() { q.PopFront() })
	}
}

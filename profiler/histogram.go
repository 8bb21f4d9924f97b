// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: histogram.go — power-of-2 latency histogram
//
// Purpose:
//   - Records per-operation latencies with shift-based bucketing: bucket i
//     covers [2^i, 2^(i+1)) nanoseconds.
//
// Notes:
//   - Record is a bits.Len64 plus an array increment; cheap enough to sit
//     inside timed loops without distorting them.
// ─────────────────────────────────────────────────────────────────────────────

package profiler

import (
	"math/bits"

	"gainbucket/constants"
)

// Histogram accumulates latency samples in logarithmic buckets.
type Histogram struct {
	buckets [constants.HistBuckets]uint64
	count   uint64
	maxNS   int64
}

// Record adds one sample in nanoseconds. Samples past the clamp land in
// the final bucket.
func (h *Histogram) Record(ns int64) {
	if ns < 0 {
		ns = 0
	}
	if ns > h.maxNS {
		h.maxNS = ns
	}
	idx := 0
	if ns > 0 {
		idx = bits.Len64(uint64(ns)) - 1
		if idx >= constants.HistBuckets {
			idx = constants.HistBuckets - 1
		}
	}
	h.buckets[idx]++
	h.count++
}

// Count returns the number of recorded samples.
func (h *Histogram) Count() uint64 {
	return h.count
}

// Max returns the largest recorded sample in nanoseconds.
func (h *Histogram) Max() int64 {
	return h.maxNS
}

// Bucket returns the sample count of bucket i.
func (h *Histogram) Bucket(i int) uint64 {
	return h.buckets[i]
}

// Percentile returns an upper bound on the p-quantile in nanoseconds
// (p in [0, 1]). Resolution is one power of two.
func (h *Histogram) Percentile(p float64) int64 {
	if h.count == 0 {
		return 0
	}
	target := uint64(p * float64(h.count))
	if target >= h.count {
		target = h.count - 1
	}
	var seen uint64
	for i := 0; i < constants.HistBuckets; i++ {
		seen += h.buckets[i]
		if seen > target {
			return int64(1) << uint(i+1)
		}
	}
	return constants.HistClampNanos
}

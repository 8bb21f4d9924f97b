// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Library Tunables & Profiler Defaults
//
// Purpose:
//   - Defines library-wide constants: pool sizing defaults, key-range
//     defaults, latency histogram layout, and results-store settings.
//
// Notes:
//   - Histogram layout uses power-of-2 bucketing for shift-based indexing.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Profiler Defaults ──────────────────────────

const (
	// DefaultNodes is the default number of pool slots a profiling run
	// exercises. Sized so the slot array stays inside L2 for small payloads.
	DefaultNodes = 1 << 14 // 16,384 nodes

	// DefaultKeyLow / DefaultKeyHigh bound the default key range. A span of
	// 256 levels matches typical gain ranges of degree-bounded hypergraphs.
	DefaultKeyLow  = -128
	DefaultKeyHigh = 127

	// DefaultOps is the default number of timed operations per run.
	DefaultOps = 1 << 20 // 1,048,576 ops

	// DefaultSeed feeds the workload generator; fixed so repeated runs of
	// the same scenario replay the identical operation stream.
	DefaultSeed = 69
)

// ───────────────────────────── Histogram Layout ────────────────────────────

const (
	// HistBuckets is the number of latency buckets. Bucket i covers
	// [2^i, 2^(i+1)) nanoseconds, so 32 buckets span ~4.2 seconds.
	HistBuckets = 32

	// HistClampNanos caps recorded samples; anything slower lands in the
	// final bucket rather than indexing past it.
	HistClampNanos = int64(1) << (HistBuckets - 1)
)

// ───────────────────────────── Results Store ────────────────────────────────

const (
	// DefaultDBPath is where profiling results accumulate unless the CLI
	// overrides it.
	DefaultDBPath = "latprofile.db"

	// SchemaVersion is bumped whenever the results tables change shape;
	// stored alongside runs so older databases are detected, not misread.
	SchemaVersion = 1
)

// ============================================================================
// BPQUEUE: BOUNDED-KEY GAIN-BUCKET PRIORITY QUEUE
// ============================================================================
//
// BPQueue is an O(1)-per-operation max-priority queue for integer keys in a
// fixed range [a, b]. One sentinel-based circular list ("bucket") per key
// value, plus a tracked maximum bucket index, give constant-time insert,
// extract-max, and re-key — the classic gain-bucket structure behind
// Fiduccia–Mattheyses-style iterative improvement.
//
// Architecture overview:
//   - buckets[0..high] where high = b - a + 1; external key k maps to
//     bucket k - offset with offset = a - 1
//   - bucket 0 is reserved: it permanently holds one sentinel node, so the
//     downward max-rescan never needs an emptiness guard
//   - max always names the greatest non-empty bucket, or 0 when empty
//     (equivalently Max() == a - 1)
//   - nodes live in a caller-owned dllist.Pool; the queue owns link
//     topology only and nodes migrate freely to other lists of the pool
//
// Tie-break policy (load-bearing, do not change):
//   - Append / DecreaseKey insert at the BACK of the destination bucket:
//     nodes whose priority dropped to level k wait behind nodes already at k
//   - AppendLeft / IncreaseKey insert at the FRONT: nodes whose priority
//     rose to level k jump ahead of nodes already at k
//   Deterministic tie-breaking of the algorithms built on top depends on
//   this asymmetry.
//
// Complexity:
//   - All operations O(1) except the downward rescan in PopFront /
//     DecreaseKey / Detach, which is amortized O(1) under typical gain
//     dynamics (max only decreases between insertions that raise it) but
//     O(range) worst case for a single call when the top of the range is
//     sparsely populated. The profiler package characterizes this case.
//
// Safety model:
//   - Bare operations perform no validation: out-of-range keys, stale
//     handles, or popping an empty queue silently corrupt the structure
//   - *Safe twins validate preconditions and return sentinel errors;
//     functionally identical otherwise
//   - Single-threaded by design: no locking, no atomics, no fences

package bpqueue

import (
	"errors"

	"gainbucket/dllist"
)

// Integer constrains the external key type: any signed integer wide enough
// for the application's priority range.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// ============================================================================
// ERROR TAXONOMY
// ============================================================================

var (
	// ErrRange reports a construction request with a > b.
	ErrRange = errors.New("bpqueue: invalid key range")

	// ErrKeyOutOfRange reports a key or key adjustment that would leave the
	// normalized key outside (0, high].
	ErrKeyOutOfRange = errors.New("bpqueue: key out of range")

	// ErrEmpty reports a checked PopFront on an empty queue.
	ErrEmpty = errors.New("bpqueue: empty queue")
)

// ============================================================================
// QUEUE STRUCTURE
// ============================================================================

// BPQueue is a bounded-key bucket priority queue over a caller-owned pool.
// T is the node payload type; K is the external signed key type.
type BPQueue[T any, K Integer] struct {
	pool     *dllist.Pool[T]
	buckets  []dllist.List[T]
	sentinel dllist.Handle // permanent resident of bucket 0
	max      uint32        // greatest non-empty bucket index, 0 when empty
	high     uint32        // greatest legal bucket index = b - a + 1
	offset   K             // a - 1: external key k ↦ bucket k - offset
}

// New constructs a queue for external keys in [a, b]. It draws b - a + 3
// slots from the pool: one list sentinel per bucket (b - a + 2 buckets) plus
// the permanent bucket-0 sentinel node.
//
// ⚠️  FOOTGUN WARNING: assumes a ≤ b and sufficient pool capacity. Use
// NewSafe when either is not provably true.
func New[T any, K Integer](pool *dllist.Pool[T], a, b K) *BPQueue[T, K] {
	offset := a - 1
	high := uint32(b - offset)
	q := &BPQueue[T, K]{
		pool:    pool,
		buckets: make([]dllist.List[T], high+1),
		high:    high,
		offset:  offset,
	}
	for i := range q.buckets {
		q.buckets[i] = dllist.NewList(pool)
	}
	q.sentinel = pool.Borrow()
	q.buckets[0].PushFront(q.sentinel)
	return q
}

// NewSafe is New with range and pool-capacity validation.
func NewSafe[T any, K Integer](pool *dllist.Pool[T], a, b K) (*BPQueue[T, K], error) {
	if a > b {
		return nil, ErrRange
	}
	// Buckets plus the permanent sentinel node.
	need := int(b-a) + 3
	if pool.Cap()-pool.Live() < need {
		return nil, dllist.ErrExhausted
	}
	return New(pool, a, b), nil
}

// ============================================================================
// QUERY OPERATIONS
// ============================================================================

// IsEmpty reports whether no payload nodes are attached.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) IsEmpty() bool {
	return q.max == 0
}

// Max returns the greatest external key among attached nodes, or a - 1 when
// the queue is empty.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) Max() K {
	return q.offset + K(q.max)
}

// Key returns the external key last recorded on the node. Meaningful only
// while the node is attached to this queue (or was just popped from it).
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) Key(h dllist.Handle) K {
	return q.offset + K(q.pool.Key(h))
}

// ============================================================================
// INSERTION
// ============================================================================

// SetKey writes the node's normalized key without touching list membership.
// Used to pre-stage a key before AppendLeftDirect.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) SetKey(h dllist.Handle, gain K) {
	q.pool.SetKey(h, uint32(gain-q.offset))
}

// Append inserts the node at the back of bucket k (FIFO arrival order
// within the bucket). Precondition: k > a - 1.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) Append(h dllist.Handle, k K) {
	key := uint32(k - q.offset)
	q.pool.SetKey(h, key)
	if q.max < key {
		q.max = key
	}
	q.buckets[key].PushBack(h)
}

// AppendLeft inserts the node at the front of bucket k (LIFO arrival order
// within the bucket). Precondition: k > a - 1.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) AppendLeft(h dllist.Handle, k K) {
	key := uint32(k - q.offset)
	q.pool.SetKey(h, key)
	if q.max < key {
		q.max = key
	}
	q.buckets[key].PushFront(h)
}

// AppendLeftDirect inserts the node at the front of the bucket named by the
// normalized key already stored on it (set via SetKey). Precondition: the
// stored key is in (0, high].
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) AppendLeftDirect(h dllist.Handle) {
	key := q.pool.Key(h)
	if q.max < key {
		q.max = key
	}
	q.buckets[key].PushFront(h)
}

// AppendSafe validates the handle, the detached precondition, and the key
// range before inserting at the back of bucket k.
func (q *BPQueue[T, K]) AppendSafe(h dllist.Handle, k K) error {
	if err := q.checkInsert(h, k); err != nil {
		return err
	}
	q.Append(h, k)
	return nil
}

// AppendLeftSafe is AppendLeft with full precondition validation.
func (q *BPQueue[T, K]) AppendLeftSafe(h dllist.Handle, k K) error {
	if err := q.checkInsert(h, k); err != nil {
		return err
	}
	q.AppendLeft(h, k)
	return nil
}

// AppendLeftDirectSafe is AppendLeftDirect with full precondition validation.
func (q *BPQueue[T, K]) AppendLeftDirectSafe(h dllist.Handle) error {
	if !q.pool.Valid(h) {
		return dllist.ErrBadHandle
	}
	if q.pool.NodeState(h) == dllist.Attached {
		return dllist.ErrAttached
	}
	key := q.pool.Key(h)
	if key == 0 || key > q.high {
		return ErrKeyOutOfRange
	}
	q.AppendLeftDirect(h)
	return nil
}

func (q *BPQueue[T, K]) checkInsert(h dllist.Handle, k K) error {
	if !q.pool.Valid(h) {
		return dllist.ErrBadHandle
	}
	if q.pool.NodeState(h) == dllist.Attached {
		return dllist.ErrAttached
	}
	if k <= q.offset || uint32(k-q.offset) > q.high {
		return ErrKeyOutOfRange
	}
	return nil
}

// ============================================================================
// EXTRACTION
// ============================================================================

// PopFront detaches and returns the front node of the maximum bucket, then
// rescans downward for the new maximum. The permanent bucket-0 sentinel
// terminates the scan without an emptiness guard.
//
// ⚠️  FOOTGUN WARNING: undefined behavior on an empty queue (it would pop
// the sentinel). Guard with IsEmpty or use PopFrontSafe.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) PopFront() dllist.Handle {
	h := q.buckets[q.max].PopFront()
	for q.buckets[q.max].IsEmpty() {
		q.max--
	}
	return h
}

// PopFrontSafe is PopFront with emptiness detection.
func (q *BPQueue[T, K]) PopFrontSafe() (dllist.Handle, error) {
	if q.IsEmpty() {
		return dllist.Nil, ErrEmpty
	}
	return q.PopFront(), nil
}

// Detach removes the node from its bucket without returning it, rescanning
// downward if the maximum bucket emptied.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) Detach(h dllist.Handle) {
	q.pool.Detach(h)
	for q.buckets[q.max].IsEmpty() {
		q.max--
	}
}

// DetachSafe is Detach with handle and attachment validation.
func (q *BPQueue[T, K]) DetachSafe(h dllist.Handle) error {
	if err := q.pool.DetachSafe(h); err != nil {
		return err
	}
	for q.buckets[q.max].IsEmpty() {
		q.max--
	}
	return nil
}

// Clear empties every bucket from max downward, abandoning (not destroying)
// all members, and leaves the queue empty with its key bounds intact.
func (q *BPQueue[T, K]) Clear() {
	for q.max > 0 {
		q.buckets[q.max].Clear()
		q.max--
	}
}

// ============================================================================
// RE-KEYING
// ============================================================================

// DecreaseKey detaches the node, lowers its key by delta, and reinserts it
// at the BACK of the destination bucket: FIFO order among nodes arriving at
// the same key via decreases. Preconditions: node attached, delta > 0, and
// the new normalized key in (0, high].
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) DecreaseKey(h dllist.Handle, delta K) {
	q.pool.Detach(h)
	key := q.pool.Key(h) - uint32(delta)
	q.pool.SetKey(h, key)
	q.buckets[key].PushBack(h)
	if q.max < key {
		q.max = key
		return
	}
	for q.buckets[q.max].IsEmpty() {
		q.max--
	}
}

// IncreaseKey detaches the node, raises its key by delta, and reinserts it
// at the FRONT of the destination bucket: LIFO order among nodes arriving at
// the same key via increases. Raising a key can only raise max, so no
// downward rescan is ever needed. Preconditions mirror DecreaseKey.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) IncreaseKey(h dllist.Handle, delta K) {
	q.pool.Detach(h)
	key := q.pool.Key(h) + uint32(delta)
	q.pool.SetKey(h, key)
	q.buckets[key].PushFront(h)
	if q.max < key {
		q.max = key
	}
}

// ModifyKey adjusts the node's key by a signed delta: positive deltas
// dispatch to IncreaseKey, negative to DecreaseKey. A locked node is left
// untouched, and a zero delta is a genuine no-op — neither is an error.
//
//go:nosplit
//go:inline
func (q *BPQueue[T, K]) ModifyKey(h dllist.Handle, delta K) {
	if q.pool.IsLocked(h) {
		return
	}
	if delta > 0 {
		q.IncreaseKey(h, delta)
	} else if delta < 0 {
		q.DecreaseKey(h, -delta)
	}
}

// DecreaseKeySafe is DecreaseKey with full precondition validation.
func (q *BPQueue[T, K]) DecreaseKeySafe(h dllist.Handle, delta K) error {
	if !q.pool.Valid(h) {
		return dllist.ErrBadHandle
	}
	if q.pool.NodeState(h) != dllist.Attached {
		return dllist.ErrNotAttached
	}
	// Compare in 64 bits: a uint32 conversion of a wide delta would wrap
	// and let an absurd adjustment validate as a small one.
	if delta <= 0 || uint64(delta) >= uint64(q.pool.Key(h)) {
		return ErrKeyOutOfRange
	}
	q.DecreaseKey(h, delta)
	return nil
}

// IncreaseKeySafe is IncreaseKey with full precondition validation.
func (q *BPQueue[T, K]) IncreaseKeySafe(h dllist.Handle, delta K) error {
	if !q.pool.Valid(h) {
		return dllist.ErrBadHandle
	}
	if q.pool.NodeState(h) != dllist.Attached {
		return dllist.ErrNotAttached
	}
	if delta <= 0 || uint64(q.pool.Key(h))+uint64(delta) > uint64(q.high) {
		return ErrKeyOutOfRange
	}
	q.IncreaseKey(h, delta)
	return nil
}

// ModifyKeySafe validates and dispatches like ModifyKey. The locked and
// zero-delta cases return nil: they are contracts, not violations.
func (q *BPQueue[T, K]) ModifyKeySafe(h dllist.Handle, delta K) error {
	if !q.pool.Valid(h) {
		return dllist.ErrBadHandle
	}
	if q.pool.IsLocked(h) || delta == 0 {
		return nil
	}
	if delta > 0 {
		return q.IncreaseKeySafe(h, delta)
	}
	return q.DecreaseKeySafe(h, -delta)
}

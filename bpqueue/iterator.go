// ============================================================================
// DESCENDING QUEUE ITERATION
// ============================================================================
//
// Iterator flattens the 2D (bucket, position-in-bucket) structure into one
// descending-by-key sequence: it walks the maximum bucket front to back,
// then drops to the next non-empty bucket, terminating at the permanent
// bucket-0 sentinel.
//
// This is a live view, not a snapshot, and it is not restartable. Mutating
// the queue during iteration is safe only for buckets strictly above the
// cursor's current bucket; detaching or re-keying a node at or below it can
// invalidate the cursor.

package bpqueue

import "gainbucket/dllist"

// Iterator is a cursor over the queue's attached nodes in non-increasing
// key order. Obtain one with Iter; call Next before each access.
type Iterator[T any, K Integer] struct {
	q   *BPQueue[T, K]
	key uint32
	li  dllist.Iter[T]
}

// Iter returns a cursor positioned before the first node of the maximum
// bucket.
func (q *BPQueue[T, K]) Iter() Iterator[T, K] {
	return Iterator[T, K]{q: q, key: q.max, li: q.buckets[q.max].Iter()}
}

// Next advances the cursor and reports whether a node is available. It
// returns false exactly once, upon reaching the bucket-0 sentinel; calling
// Next again after that is a contract violation.
func (it *Iterator[T, K]) Next() bool {
	for !it.li.Next() {
		for {
			it.key--
			if !it.q.buckets[it.key].IsEmpty() {
				break
			}
		}
		it.li = it.q.buckets[it.key].Iter()
	}
	return it.li.Handle() != it.q.sentinel
}

// Handle returns the current node.
func (it *Iterator[T, K]) Handle() dllist.Handle {
	return it.li.Handle()
}

// Key returns the current node's external key.
func (it *Iterator[T, K]) Key() K {
	return it.q.offset + K(it.key)
}

// Value returns a pointer to the current node's payload.
func (it *Iterator[T, K]) Value() *T {
	return it.li.Value()
}

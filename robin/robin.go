// ============================================================================
// ROUND-ROBIN PART CYCLE
// ============================================================================
//
// Fixed cycle over parts 0..numParts-1 with exclusion-based traversal:
// Exclude(p) yields every part except p, starting just after p and wrapping
// around. Multi-way partition refinement uses this to enumerate candidate
// destination parts for a move without ever proposing the source part.
//
// The cycle is a successor table rather than a linked structure: next[i] is
// the part after i. Construction is the only mutation, so concurrent
// read-only traversals are safe.

package robin

// Integer covers the integer part-number types. Part numbers are ordinals,
// so unsigned types are as natural a fit as signed ones.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Cycle is a round-robin enumeration over a fixed set of parts.
type Cycle[T Integer] struct {
	next []T
}

// New constructs a cycle over parts 0..numParts-1 in ascending order,
// wrapping from numParts-1 back to 0.
func New[T Integer](numParts T) *Cycle[T] {
	next := make([]T, numParts)
	for i := T(0); i < numParts-1; i++ {
		next[i] = i + 1
	}
	next[numParts-1] = 0
	return &Cycle[T]{next: next}
}

// Len returns the number of parts in the cycle.
func (c *Cycle[T]) Len() int {
	return len(c.next)
}

// Exclude returns an iterator over every part except fromPart, in cycle
// order starting at the part after fromPart.
//
// ⚠️ FOOTGUN WARNING: fromPart must be in [0, Len()). Out-of-range values
// index past the successor table.
func (c *Cycle[T]) Exclude(fromPart T) Iter[T] {
	return Iter[T]{c: c, cur: fromPart, stop: fromPart}
}

// Iter is a single-pass cursor over a Cycle traversal. The zero value is
// not usable; obtain one from Exclude.
type Iter[T Integer] struct {
	c         *Cycle[T]
	cur, stop T
}

// Next advances the cursor. It returns false when the traversal wraps back
// to the excluded part.
func (it *Iter[T]) Next() bool {
	it.cur = it.c.next[it.cur]
	return it.cur != it.stop
}

// Part returns the part at the cursor. Valid only after Next returned true.
func (it *Iter[T]) Part() T {
	return it.cur
}

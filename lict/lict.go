// ============================================================================
// LICT: VECTOR-BACKED DICTIONARY ADAPTER
// ============================================================================
//
// A Lict ("list-dictionary") presents a dense slice as a mapping with
// integer keys 0..Len()-1. Partition algorithms that key state by vertex id
// get dictionary-shaped code (Contains, Items) with slice-shaped cost: O(1)
// access, no hashing, no per-entry allocation.
//
// Keys:   [0] [1] [2] [3]
// Values: │ A │ B │ C │ D │
//
// Contains is a pure range check; keys are never absent inside the range.

package lict

// Lict adapts a slice to a dict-like mapping with integer keys.
type Lict[T any] struct {
	lst []T
}

// New wraps lst. The Lict takes ownership; callers must not alias the
// slice afterwards.
func New[T any](lst []T) *Lict[T] {
	return &Lict[T]{lst: lst}
}

// NewSized constructs a Lict of n zero-valued entries.
func NewSized[T any](n int) *Lict[T] {
	return &Lict[T]{lst: make([]T, n)}
}

// At returns the value stored under key.
//
// ⚠️ FOOTGUN WARNING: key is not range-checked; out-of-range keys panic as
// a slice index would.
func (l *Lict[T]) At(key int) T {
	return l.lst[key]
}

// Ref returns a pointer to the value stored under key, for in-place
// mutation.
func (l *Lict[T]) Ref(key int) *T {
	return &l.lst[key]
}

// Set stores v under key.
func (l *Lict[T]) Set(key int, v T) {
	l.lst[key] = v
}

// Contains reports whether key is in range.
func (l *Lict[T]) Contains(key int) bool {
	return key >= 0 && key < len(l.lst)
}

// Len returns the number of entries.
func (l *Lict[T]) Len() int {
	return len(l.lst)
}

// Values returns the backing slice. Mutations through it are visible to
// the Lict.
func (l *Lict[T]) Values() []T {
	return l.lst
}

// Keys returns an iterator over the key range 0..Len()-1.
func (l *Lict[T]) Keys() Iter[T] {
	return Iter[T]{l: l, key: -1}
}

// Items returns an iterator over (key, value) pairs in key order. It is
// the same cursor as Keys; Value is simply available.
func (l *Lict[T]) Items() Iter[T] {
	return Iter[T]{l: l, key: -1}
}

// Iter is a single-pass cursor over a Lict. The zero value is not usable;
// obtain one from Keys or Items.
type Iter[T any] struct {
	l   *Lict[T]
	key int
}

// Next advances the cursor and reports whether an entry is available.
func (it *Iter[T]) Next() bool {
	it.key++
	return it.key < len(it.l.lst)
}

// Key returns the key at the cursor. Valid only after Next returned true.
func (it *Iter[T]) Key() int {
	return it.key
}

// Value returns the value at the cursor. Valid only after Next returned
// true.
func (it *Iter[T]) Value() T {
	return it.l.lst[it.key]
}

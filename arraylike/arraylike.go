// ============================================================================
// ARRAY-LIKE VIEWS
// ============================================================================
//
// Two dense-index helpers used around bucket structures:
//
//   ShiftArray  — a slice addressed through a configurable index offset, so
//                 state keyed by values in [start, start+len) (negative gain
//                 levels, vertex-id subranges) indexes directly without
//                 callers re-deriving the offset at every site.
//   RepeatArray — a constant value presented as an indexable sequence of a
//                 given length, for APIs that want per-element weights when
//                 every element weighs the same.

package arraylike

// ShiftArray is a slice whose external indices are shifted by a start
// offset: element i of the backing slice is addressed as start+i.
type ShiftArray[T any] struct {
	start int
	lst   []T
}

// NewShift wraps lst with a zero start offset.
func NewShift[T any](lst []T) *ShiftArray[T] {
	return &ShiftArray[T]{lst: lst}
}

// NewShiftSized constructs a ShiftArray of n zero-valued entries.
func NewShiftSized[T any](n int) *ShiftArray[T] {
	return &ShiftArray[T]{lst: make([]T, n)}
}

// SetStart sets the external index of the first element.
func (s *ShiftArray[T]) SetStart(start int) {
	s.start = start
}

// Start returns the external index of the first element.
func (s *ShiftArray[T]) Start() int {
	return s.start
}

// At returns the element at external index i.
//
// ⚠️ FOOTGUN WARNING: i must be in [Start(), Start()+Len()); the shifted
// index is not range-checked beyond the slice bounds panic.
func (s *ShiftArray[T]) At(i int) T {
	return s.lst[i-s.start]
}

// Ref returns a pointer to the element at external index i.
func (s *ShiftArray[T]) Ref(i int) *T {
	return &s.lst[i-s.start]
}

// Set stores v at external index i.
func (s *ShiftArray[T]) Set(i int, v T) {
	s.lst[i-s.start] = v
}

// Len returns the number of elements.
func (s *ShiftArray[T]) Len() int {
	return len(s.lst)
}

// RepeatArray presents a single value as a read-only sequence of a fixed
// length.
type RepeatArray[T any] struct {
	value T
	size  int
}

// NewRepeat constructs a sequence of size copies of value.
func NewRepeat[T any](value T, size int) RepeatArray[T] {
	return RepeatArray[T]{value: value, size: size}
}

// At returns the repeated value; the index only has to exist notionally.
func (r RepeatArray[T]) At(int) T {
	return r.value
}

// Len returns the sequence length.
func (r RepeatArray[T]) Len() int {
	return r.size
}

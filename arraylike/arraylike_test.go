// ============================================================================
// ARRAY-LIKE VIEW VALIDATION
// ============================================================================

package arraylike

import "testing"

// TestShiftIndexing validates offset-adjusted access across a negative
// external range.
func TestShiftIndexing(t *testing.T) {
	s := NewShiftSized[int](7) // external indices -3..3 once shifted
	s.SetStart(-3)

	for i := -3; i <= 3; i++ {
		s.Set(i, i*10)
	}
	for i := -3; i <= 3; i++ {
		if got := s.At(i); got != i*10 {
			t.Errorf("At(%d): got %d, want %d", i, got, i*10)
		}
	}
	if s.Start() != -3 || s.Len() != 7 {
		t.Errorf("Start/Len: got %d/%d, want -3/7", s.Start(), s.Len())
	}
}

// TestShiftRef validates in-place mutation through Ref.
func TestShiftRef(t *testing.T) {
	s := NewShift([]int{1, 2, 3})
	s.SetStart(10)

	*s.Ref(11) += 5
	if got := s.At(11); got != 7 {
		t.Errorf("At(11) after Ref increment: got %d, want 7", got)
	}
}

// TestShiftRestart validates that changing the start re-maps existing
// elements rather than moving them.
func TestShiftRestart(t *testing.T) {
	s := NewShift([]string{"a", "b"})
	s.SetStart(0)
	if got := s.At(1); got != "b" {
		t.Fatalf("At(1): got %q, want \"b\"", got)
	}
	s.SetStart(5)
	if got := s.At(6); got != "b" {
		t.Errorf("At(6) after SetStart(5): got %q, want \"b\"", got)
	}
}

// TestRepeat validates constant-value indexing.
func TestRepeat(t *testing.T) {
	r := NewRepeat(42, 5)

	if r.Len() != 5 {
		t.Errorf("Len: got %d, want 5", r.Len())
	}
	for i := 0; i < r.Len(); i++ {
		if got := r.At(i); got != 42 {
			t.Errorf("At(%d): got %d, want 42", i, got)
		}
	}
}

// ============================================================================
// ROUND-ROBIN CYCLE VALIDATION
// ============================================================================

package robin

import (
	"math/rand"
	"sort"
	"testing"
)

// TestExcludeCountAndSum validates that Exclude yields every part except
// the excluded one.
func TestExcludeCountAndSum(t *testing.T) {
	rr := New[uint8](6)

	count, sum := 0, 0
	it := rr.Exclude(2)
	for it.Next() {
		count++
		sum += int(it.Part())
	}
	if count != 5 {
		t.Errorf("count: got %d, want 5", count)
	}
	if sum != 0+1+3+4+5 {
		t.Errorf("sum: got %d, want 13", sum)
	}
}

// TestExcludeOrder validates cycle order: traversal starts just after the
// excluded part and wraps.
func TestExcludeOrder(t *testing.T) {
	rr := New(5)

	var got []int
	it := rr.Exclude(2)
	for it.Next() {
		got = append(got, it.Part())
	}
	want := []int{3, 4, 0, 1}
	if len(got) != len(want) {
		t.Fatalf("order: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

// TestSinglePart validates immediate termination when the only part is
// excluded.
func TestSinglePart(t *testing.T) {
	rr := New(1)
	it := rr.Exclude(0)
	if it.Next() {
		t.Error("Next on single-part cycle returned true")
	}
}

// TestExcludeStress validates exclusion across many random parts of a
// large cycle.
func TestExcludeStress(t *testing.T) {
	const numParts = 1000
	rr := New(numParts)
	rng := rand.New(rand.NewSource(1))

	for iter := 0; iter < 100; iter++ {
		excluded := rng.Intn(numParts)

		var got []int
		it := rr.Exclude(excluded)
		for it.Next() {
			got = append(got, it.Part())
		}
		sort.Ints(got)

		if len(got) != numParts-1 {
			t.Fatalf("iteration %d: yielded %d parts, want %d", iter, len(got), numParts-1)
		}
		want := 0
		for _, p := range got {
			if want == excluded {
				want++
			}
			if p != want {
				t.Fatalf("iteration %d: got part %d, want %d", iter, p, want)
			}
			want++
		}
	}
}

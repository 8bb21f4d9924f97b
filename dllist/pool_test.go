// ============================================================================
// POOL CORRECTNESS VALIDATION SUITE
// ============================================================================
//
// Validates arena construction, freelist integrity, the borrow/return
// lifecycle, generation-based staleness detection, and the explicit
// three-state node tag.

package dllist

import "testing"

// TestNewPoolFreelist validates freelist initialization and chain integrity.
//
// Freelist validation:
//   - All slots initially in freelist chain
//   - Proper chain termination
//   - No circular references
func TestNewPoolFreelist(t *testing.T) {
	const capacity = 1024
	p := NewPool[int](capacity)

	if p.Cap() != capacity || p.Live() != 0 {
		t.Fatalf("pool metadata invalid: cap=%d live=%d", p.Cap(), p.Live())
	}

	visited := make(map[idx32]bool)
	count := 0
	for cur := p.freeHead; cur != nilIdx; cur = p.slots[cur].next {
		if visited[cur] {
			t.Fatalf("circular reference in freelist at slot %d", cur)
		}
		visited[cur] = true
		if p.slots[cur].state != Free {
			t.Errorf("freelist slot %d not Free: %v", cur, p.slots[cur].state)
		}
		count++
	}
	if count != capacity {
		t.Errorf("freelist length incorrect: got %d, want %d", count, capacity)
	}
}

// TestBorrowLifecycle validates handle allocation and the self-linked
// free/isolated representation.
func TestBorrowLifecycle(t *testing.T) {
	p := NewPool[string](8)

	h1 := p.Borrow()
	i1 := h1.slot()
	if p.slots[i1].next != i1 || p.slots[i1].prev != i1 {
		t.Errorf("borrowed slot not self-linked: next=%d prev=%d", p.slots[i1].next, p.slots[i1].prev)
	}
	if p.NodeState(h1) != Free {
		t.Errorf("borrowed node state: got %v, want Free", p.NodeState(h1))
	}
	if p.Live() != 1 {
		t.Errorf("live count after borrow: got %d, want 1", p.Live())
	}

	h2 := p.Borrow()
	if h2.slot() != h1.slot()+1 {
		t.Errorf("sequential borrow: got slot %d, want %d", h2.slot(), h1.slot()+1)
	}

	*p.Value(h1) = "alpha"
	if *p.Value(h1) != "alpha" {
		t.Errorf("payload round trip failed: %q", *p.Value(h1))
	}
}

// TestBorrowSafeExhaustion verifies capacity limits and exhaustion handling.
func TestBorrowSafeExhaustion(t *testing.T) {
	const capacity = 16
	p := NewPool[int](capacity)

	handles := make(map[Handle]bool)
	for i := 0; i < capacity; i++ {
		h, err := p.BorrowSafe()
		if err != nil {
			t.Fatalf("BorrowSafe #%d failed unexpectedly: %v", i, err)
		}
		if handles[h] {
			t.Fatalf("duplicate handle allocated: %v", h)
		}
		handles[h] = true
	}

	if p.freeHead != nilIdx {
		t.Errorf("freelist not exhausted: freeHead=%d", p.freeHead)
	}
	if _, err := p.BorrowSafe(); err != ErrExhausted {
		t.Errorf("expected ErrExhausted after %d borrows, got %v", capacity, err)
	}
}

// TestReturnGeneration validates that Return invalidates outstanding
// handles via the generation counter.
func TestReturnGeneration(t *testing.T) {
	p := NewPool[int](4)

	h := p.Borrow()
	if !p.Valid(h) {
		t.Fatal("fresh handle reported invalid")
	}

	p.Return(h)
	if p.Valid(h) {
		t.Error("stale handle still reported valid after Return")
	}
	if p.Live() != 0 {
		t.Errorf("live count after return: got %d, want 0", p.Live())
	}

	// The recycled slot comes back with a bumped generation.
	h2 := p.Borrow()
	if h2.slot() != h.slot() {
		t.Fatalf("freelist did not recycle slot: got %d, want %d", h2.slot(), h.slot())
	}
	if h2.gen() != h.gen()+1 {
		t.Errorf("generation not bumped: got %d, want %d", h2.gen(), h.gen()+1)
	}
	if err := p.ReturnSafe(h); err != ErrBadHandle {
		t.Errorf("ReturnSafe on stale handle: got %v, want ErrBadHandle", err)
	}
}

// TestLockSemantics validates the cooperative lock tag and its interaction
// with attachment.
func TestLockSemantics(t *testing.T) {
	p := NewPool[int](8)
	l := NewList(p)

	h := p.Borrow()
	if p.IsLocked(h) {
		t.Error("fresh node reports locked")
	}

	p.Lock(h)
	if !p.IsLocked(h) {
		t.Error("locked node not reported locked")
	}
	i := h.slot()
	if p.slots[i].next != i {
		t.Error("locked node not self-linked")
	}

	// Re-inserting a locked node clears the lock.
	l.PushBack(h)
	if p.IsLocked(h) {
		t.Error("attached node still reports locked")
	}
	if p.NodeState(h) != Attached {
		t.Errorf("node state after push: got %v, want Attached", p.NodeState(h))
	}

	// Locking an attached node is rejected by the checked tier.
	if err := p.LockSafe(h); err != ErrAttached {
		t.Errorf("LockSafe on attached node: got %v, want ErrAttached", err)
	}

	p.Detach(h)
	if err := p.LockSafe(h); err != nil {
		t.Errorf("LockSafe on detached node failed: %v", err)
	}
}

// TestDetachSafePreconditions validates the checked detach contract.
func TestDetachSafePreconditions(t *testing.T) {
	p := NewPool[int](8)
	l := NewList(p)

	h := p.Borrow()
	if err := p.DetachSafe(h); err != ErrNotAttached {
		t.Errorf("DetachSafe on isolated node: got %v, want ErrNotAttached", err)
	}

	l.PushFront(h)
	if err := p.DetachSafe(h); err != nil {
		t.Errorf("DetachSafe on attached node failed: %v", err)
	}
	if p.NodeState(h) != Free {
		t.Errorf("state after detach: got %v, want Free", p.NodeState(h))
	}
	if !l.IsEmpty() {
		t.Error("list not empty after sole member detached")
	}

	p.Return(h)
	if err := p.DetachSafe(h); err != ErrBadHandle {
		t.Errorf("DetachSafe on stale handle: got %v, want ErrBadHandle", err)
	}
}

// TestReturnSafeRejectsAttached validates that the checked tier refuses to
// recycle a node that is still a list member.
func TestReturnSafeRejectsAttached(t *testing.T) {
	p := NewPool[int](8)
	l := NewList(p)

	h := p.Borrow()
	l.PushBack(h)
	if err := p.ReturnSafe(h); err != ErrAttached {
		t.Errorf("ReturnSafe on attached node: got %v, want ErrAttached", err)
	}

	p.Detach(h)
	if err := p.ReturnSafe(h); err != nil {
		t.Errorf("ReturnSafe on detached node failed: %v", err)
	}
}

// TestKeyField validates that the normalized key rides along with the node
// and is ignored by list operations.
func TestKeyField(t *testing.T) {
	p := NewPool[int](8)
	l := NewList(p)

	h := p.Borrow()
	p.SetKey(h, 42)
	l.PushBack(h)
	l.PopFront()
	if p.Key(h) != 42 {
		t.Errorf("key lost across list membership: got %d, want 42", p.Key(h))
	}
}

// ============================================================================
// SENTINEL-BASED CIRCULAR LIST
// ============================================================================
//
// List is a sentinel-headed circular doubly-linked collection of pool nodes.
// The sentinel occupies one permanent arena slot, so every operation is a
// branch-free splice: no nil checks, no empty-list special cases.
//
// Topology invariant:
//
//	sentinel → member₀ → member₁ → ... → sentinel
//	empty ⇔ sentinel.next == sentinel
//
// The list owns only link topology, never node memory. No length counter is
// kept; callers needing a count track it externally or walk the list.

package dllist

// List is a view over one sentinel slot of a Pool. The zero value is not
// usable; construct with NewList or NewListSafe.
type List[T any] struct {
	pool *Pool[T]
	root idx32
}

// NewList allocates a sentinel slot from the pool and returns an empty list.
// The sentinel is permanent: it is never popped, never returned, and keeps
// the list's bucket non-empty from the arena's point of view only in the
// sense that the slot stays borrowed.
//
// ⚠️  FOOTGUN WARNING: draws from the freelist without exhaustion check.
func NewList[T any](p *Pool[T]) List[T] {
	h := p.Borrow()
	i := h.slot()
	p.slots[i].state = Attached
	return List[T]{pool: p, root: i}
}

// NewListSafe is NewList with freelist exhaustion detection.
func NewListSafe[T any](p *Pool[T]) (List[T], error) {
	if p.freeHead == nilIdx {
		return List[T]{}, ErrExhausted
	}
	return NewList(p), nil
}

// IsEmpty reports whether the list has no members.
//
//go:nosplit
//go:inline
func (l *List[T]) IsEmpty() bool {
	return l.pool.slots[l.root].next == l.root
}

// Clear resets the sentinel to reference itself, abandoning all members.
// Abandoned nodes keep their stale links and Attached tags; they must be
// re-inserted (or detached by their owner) before further use.
func (l *List[T]) Clear() {
	s := &l.pool.slots[l.root]
	s.next, s.prev = l.root, l.root
}

// PushFront splices the node immediately after the sentinel.
//
//go:nosplit
//go:inline
func (l *List[T]) PushFront(h Handle) {
	l.pool.attach(l.root, h.slot())
}

// PushBack splices the node immediately before the sentinel.
//
//go:nosplit
//go:inline
func (l *List[T]) PushBack(h Handle) {
	l.pool.attach(l.pool.slots[l.root].prev, h.slot())
}

// PushFrontSafe validates the handle and the detached precondition.
func (l *List[T]) PushFrontSafe(h Handle) error {
	i, ok := l.pool.resolve(h)
	if !ok {
		return ErrBadHandle
	}
	if l.pool.slots[i].state == Attached {
		return ErrAttached
	}
	l.PushFront(h)
	return nil
}

// PushBackSafe validates the handle and the detached precondition.
func (l *List[T]) PushBackSafe(h Handle) error {
	i, ok := l.pool.resolve(h)
	if !ok {
		return ErrBadHandle
	}
	if l.pool.slots[i].state == Attached {
		return ErrAttached
	}
	l.PushBack(h)
	return nil
}

// PopFront detaches and returns the sentinel's successor.
//
// ⚠️  FOOTGUN WARNING: popping an empty list detaches the sentinel itself
// and corrupts the list. Guard with IsEmpty or use PopFrontSafe.
//
//go:nosplit
//go:inline
func (l *List[T]) PopFront() Handle {
	i := l.pool.slots[l.root].next
	h := makeHandle(l.pool.slots[i].gen, i)
	l.pool.Detach(h)
	return h
}

// PopBack detaches and returns the sentinel's predecessor. Same emptiness
// contract as PopFront.
//
//go:nosplit
//go:inline
func (l *List[T]) PopBack() Handle {
	i := l.pool.slots[l.root].prev
	h := makeHandle(l.pool.slots[i].gen, i)
	l.pool.Detach(h)
	return h
}

// PopFrontSafe is PopFront with emptiness detection.
func (l *List[T]) PopFrontSafe() (Handle, error) {
	if l.IsEmpty() {
		return Nil, ErrEmpty
	}
	return l.PopFront(), nil
}

// PopBackSafe is PopBack with emptiness detection.
func (l *List[T]) PopBackSafe() (Handle, error) {
	if l.IsEmpty() {
		return Nil, ErrEmpty
	}
	return l.PopBack(), nil
}

// ============================================================================
// LIST ITERATION
// ============================================================================

// Iter is a forward cursor over a list's members. It is a live view: the
// successor is prefetched before each node is yielded, so it is safe to
// detach the node most recently yielded by Next. Detaching any other
// member, or the upcoming node, invalidates the cursor.
type Iter[T any] struct {
	pool *Pool[T]
	cur  idx32
	succ idx32
	root idx32
}

// Iter returns a cursor positioned before the first member.
func (l *List[T]) Iter() Iter[T] {
	return Iter[T]{pool: l.pool, cur: l.root, succ: l.pool.slots[l.root].next, root: l.root}
}

// Next advances the cursor to the prefetched successor and reports whether
// a member is available. The new successor is read before yielding, so a
// subsequent detach of the current node cannot strand the cursor on its
// self-link.
//
//go:nosplit
//go:inline
func (it *Iter[T]) Next() bool {
	it.cur = it.succ
	it.succ = it.pool.slots[it.cur].next
	return it.cur != it.root
}

// Handle returns the handle of the current member.
func (it *Iter[T]) Handle() Handle {
	return makeHandle(it.pool.slots[it.cur].gen, it.cur)
}

// Value returns a pointer to the current member's payload.
func (it *Iter[T]) Value() *T {
	return &it.pool.slots[it.cur].data
}

// ============================================================================
// DLLIST: SLOT-ARENA INTRUSIVE DOUBLY-LINKED LIST SYSTEM
// ============================================================================
//
// Package dllist provides the node arena and sentinel-based circular list
// primitives underneath the gain-bucket priority queue. Nodes live in a
// fixed-capacity slot pool; links are 32-bit slot indices instead of raw
// pointers, so splicing stays O(1) while stale references become detectable
// rather than dangling.
//
// Architecture overview:
//   - Pool: fixed arena of slots, freelist-threaded, generation counters
//   - Handle: opaque 64-bit reference = {generation:32 | slot:32}
//   - List: one sentinel slot per list, members arranged circularly
//   - No emptiness special cases: the sentinel absorbs every boundary
//
// Ownership model:
//   - The pool owns slot memory; no list or queue ever owns a node
//   - A node is a member of at most one list at any instant
//   - Moving a node between lists of the same pool is pure link surgery
//
// Safety model:
//   - Unchecked operations (Borrow, Detach, PopFront, ...) trust the caller
//     completely: no bounds checks, no state checks, silent corruption on
//     protocol violations
//   - Checked twins (BorrowSafe, DetachSafe, PopFrontSafe, ...) validate
//     generation, bounds, and node state, returning sentinel errors — use
//     them during development and fuzzing, the bare forms in hot loops

package dllist

import "errors"

// ============================================================================
// CONFIGURATION AND SENTINEL VALUES
// ============================================================================

// idx32 is the internal slot index type used for all link fields.
type idx32 uint32

// nilIdx terminates the freelist chain. Live list links are never nil:
// circular sentinel topology means every attached node points somewhere.
const nilIdx idx32 = ^idx32(0)

// Handle is an opaque reference to a pool slot. The low 32 bits address the
// slot; the high 32 bits carry the slot's generation at borrow time, letting
// checked operations reject references that survived a Return.
type Handle uint64

// Nil is the canonical invalid handle, returned by checked operations on
// failure. It never resolves to a slot.
const Nil Handle = ^Handle(0)

func makeHandle(gen uint32, i idx32) Handle {
	return Handle(gen)<<32 | Handle(i)
}

func (h Handle) slot() idx32 { return idx32(h) }

func (h Handle) gen() uint32 { return uint32(h >> 32) }

// ============================================================================
// NODE STATE MODEL
// ============================================================================

// State is the explicit lifecycle tag carried by every slot. The classic
// intrusive-list trick of encoding "free" and "locked" both as a self-link is
// ambiguous; an explicit tag keeps the three cases distinguishable at runtime.
type State uint8

const (
	// Free marks a slot that is not a member of any list: either still on
	// the freelist or borrowed and currently detached (self-linked).
	Free State = iota

	// Attached marks a node linked into exactly one list.
	Attached

	// Locked marks a node cooperatively exempted from re-keying. Locking is
	// an algorithm-level flag, not a concurrency primitive: a locked node is
	// detached and ModifyKey ignores it. Re-inserting a locked node clears
	// the lock.
	Locked
)

// ============================================================================
// ERROR TAXONOMY
// ============================================================================

var (
	// ErrExhausted reports freelist exhaustion in BorrowSafe.
	ErrExhausted = errors.New("dllist: pool exhausted")

	// ErrBadHandle reports a handle whose slot is out of bounds or whose
	// generation no longer matches the slot (use after Return).
	ErrBadHandle = errors.New("dllist: stale or invalid handle")

	// ErrAttached reports an operation that requires a detached node
	// (Return, Lock) applied to a node still linked into a list.
	ErrAttached = errors.New("dllist: node still attached")

	// ErrNotAttached reports a Detach of a node that is not a list member.
	ErrNotAttached = errors.New("dllist: node not attached")

	// ErrEmpty reports a checked pop on an empty list.
	ErrEmpty = errors.New("dllist: empty list")
)

// ============================================================================
// SLOT AND POOL STRUCTURES
// ============================================================================

// slot is one arena cell. next/prev are live list links while the node is
// attached; next doubles as the freelist link while the slot is unborrowed.
// key is the normalized bucket key maintained by an owning bucket queue;
// list operations never read or write it.
type slot[T any] struct {
	next  idx32
	prev  idx32
	gen   uint32
	key   uint32
	state State
	data  T
}

// Pool is a fixed-capacity slot arena shared by any number of lists and
// bucket queues. All structures linking nodes together must draw them from
// the same pool: links are slot indices and only make sense inside one arena.
//
// Capacity planning: every List (and every bucket of a BPQueue) permanently
// consumes one slot for its sentinel, in addition to the caller's payload
// nodes. Size the pool as payloadNodes + listCount accordingly.
type Pool[T any] struct {
	slots    []slot[T]
	freeHead idx32
	live     int
}

// NewPool creates an arena with the given slot capacity and threads the
// freelist through it. The pool performs no allocation after construction.
func NewPool[T any](capacity int) *Pool[T] {
	p := &Pool[T]{slots: make([]slot[T], capacity), freeHead: 0}
	for i := range p.slots {
		p.slots[i].next = idx32(i + 1)
		p.slots[i].prev = nilIdx
	}
	if capacity > 0 {
		p.slots[capacity-1].next = nilIdx
	} else {
		p.freeHead = nilIdx
	}
	return p
}

// Cap returns the total slot capacity of the arena.
func (p *Pool[T]) Cap() int { return len(p.slots) }

// Live returns the number of currently borrowed slots, sentinels included.
func (p *Pool[T]) Live() int { return p.live }

// resolve maps a handle to its slot index, validating bounds and generation.
func (p *Pool[T]) resolve(h Handle) (idx32, bool) {
	i := h.slot()
	if int(i) >= len(p.slots) || p.slots[i].gen != h.gen() {
		return nilIdx, false
	}
	return i, true
}

// Valid reports whether h still references the slot it was borrowed as.
func (p *Pool[T]) Valid(h Handle) bool {
	_, ok := p.resolve(h)
	return ok
}

// ============================================================================
// BORROW / RETURN LIFECYCLE
// ============================================================================

// Borrow takes the next free slot, self-links it (the free/isolated
// representation), and returns its handle.
//
// ⚠️  FOOTGUN WARNING: no exhaustion check. Borrowing from an empty freelist
// corrupts the arena. Use BorrowSafe when capacity is not provably sufficient.
//
//go:nosplit
//go:inline
func (p *Pool[T]) Borrow() Handle {
	i := p.freeHead
	s := &p.slots[i]
	p.freeHead = s.next
	s.next, s.prev = i, i
	s.state = Free
	s.key = 0
	p.live++
	return makeHandle(s.gen, i)
}

// BorrowSafe is Borrow with freelist exhaustion detection.
func (p *Pool[T]) BorrowSafe() (Handle, error) {
	if p.freeHead == nilIdx {
		return Nil, ErrExhausted
	}
	return p.Borrow(), nil
}

// Return releases a detached node back to the freelist and bumps the slot
// generation so outstanding handles to it become detectably stale.
//
// Precondition: the node is not a member of any list.
//
//go:nosplit
//go:inline
func (p *Pool[T]) Return(h Handle) {
	i := h.slot()
	s := &p.slots[i]
	s.gen++
	s.state = Free
	s.next = p.freeHead
	s.prev = nilIdx
	var zero T
	s.data = zero
	p.freeHead = i
	p.live--
}

// ReturnSafe validates the handle and refuses to recycle an attached node.
func (p *Pool[T]) ReturnSafe(h Handle) error {
	i, ok := p.resolve(h)
	if !ok {
		return ErrBadHandle
	}
	if p.slots[i].state == Attached {
		return ErrAttached
	}
	p.Return(h)
	return nil
}

// ============================================================================
// NODE ACCESSORS
// ============================================================================

// Value returns a pointer to the payload of h. The pointer stays valid for
// the lifetime of the pool; it does not move when the node changes lists.
//
//go:nosplit
//go:inline
func (p *Pool[T]) Value(h Handle) *T {
	return &p.slots[h.slot()].data
}

// Key returns the normalized bucket key stored on the node. Meaningful only
// while an owning queue maintains it.
//
//go:nosplit
//go:inline
func (p *Pool[T]) Key(h Handle) uint32 {
	return p.slots[h.slot()].key
}

// SetKey overwrites the normalized bucket key without touching membership.
//
//go:nosplit
//go:inline
func (p *Pool[T]) SetKey(h Handle, key uint32) {
	p.slots[h.slot()].key = key
}

// NodeState returns the explicit lifecycle tag of h.
func (p *Pool[T]) NodeState(h Handle) State {
	return p.slots[h.slot()].state
}

// ============================================================================
// NODE LIFECYCLE OPERATIONS
// ============================================================================

// Lock tags a detached node as exempt from queue mutation. ModifyKey on a
// locked node is a silent no-op; re-inserting the node clears the lock.
//
//go:nosplit
//go:inline
func (p *Pool[T]) Lock(h Handle) {
	i := h.slot()
	s := &p.slots[i]
	s.next, s.prev = i, i
	s.state = Locked
}

// LockSafe validates the handle and refuses to lock an attached node.
func (p *Pool[T]) LockSafe(h Handle) error {
	i, ok := p.resolve(h)
	if !ok {
		return ErrBadHandle
	}
	if p.slots[i].state == Attached {
		return ErrAttached
	}
	p.Lock(h)
	return nil
}

// IsLocked reports whether h carries the cooperative lock tag.
//
//go:nosplit
//go:inline
func (p *Pool[T]) IsLocked(h Handle) bool {
	return p.slots[h.slot()].state == Locked
}

// Detach splices the node out of whichever list it is a member of and
// restores the self-linked free representation. Pure link mutation, O(1).
//
// Precondition: the node is attached. Detaching an isolated or locked node
// is a contract violation; the unchecked form will corrupt neighbor links.
//
//go:nosplit
//go:inline
func (p *Pool[T]) Detach(h Handle) {
	i := h.slot()
	s := &p.slots[i]
	n, pr := s.next, s.prev
	p.slots[pr].next = n
	p.slots[n].prev = pr
	s.next, s.prev = i, i
	s.state = Free
}

// DetachSafe validates the handle and the attached precondition.
func (p *Pool[T]) DetachSafe(h Handle) error {
	i, ok := p.resolve(h)
	if !ok {
		return ErrBadHandle
	}
	if p.slots[i].state != Attached {
		return ErrNotAttached
	}
	p.Detach(h)
	return nil
}

// attach inserts node n immediately after position at. Internal primitive
// shared by PushFront and PushBack.
//
//go:nosplit
//go:inline
func (p *Pool[T]) attach(at, n idx32) {
	s := &p.slots[n]
	s.next = p.slots[at].next
	p.slots[s.next].prev = n
	p.slots[at].next = n
	s.prev = at
	s.state = Attached
}

package history

// slot is one storage cell of the ring.
type slot[T any] struct {
	val T
	ok  bool
}

// Buffer is a fixed-capacity history of items.
//
// Entries are stored in a ring. The newest entry sits at the insertion
// point and the remaining entries run backward from it without gaps.
type Buffer[T any] struct {
	slots    []slot[T]
	size     int
	insert   int // physical index of the newest entry
	circular bool
	eval     Evaluator[T]

	browse Cursor[T]
}

// New creates a history buffer holding at most capacity entries.
// A capacity below MinCapacity is clamped to MinCapacity.
func New[T any](capacity int, opts ...Option[T]) *Buffer[T] {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}

	b := &Buffer[T]{
		slots: make([]slot[T], capacity),
		eval:  Never[T](),
	}
	for _, opt := range opts {
		opt(b)
	}

	// Nothing recorded yet: the insertion point is one before slot 0 so
	// the first insert lands there.
	b.insert = capacity - 1
	b.browse = Cursor[T]{buf: b, index: b.insert}
	return b
}

// InsertOrReplace records item as the newest entry.
//
// Every existing entry the evaluator says item can replace is removed
// first. If the buffer is then still full, the oldest entry is overwritten
// and returned. ok is false when no entry had to be evicted for room.
// The browse cursor is re-anchored at the new entry.
func (b *Buffer[T]) InsertOrReplace(item T) (evicted T, ok bool) {
	// Walk from newest to oldest so deletions never shift an unvisited entry.
	for i := b.size - 1; i >= 0; i-- {
		if b.eval.CanReplace(item, b.at(i)) {
			b.DeleteAt(i)
		}
	}

	next := b.wrap(b.insert + 1)
	if b.size == len(b.slots) {
		// Full: next is the oldest slot.
		evicted, ok = b.slots[next].val, true
	} else {
		b.size++
	}

	b.slots[next] = slot[T]{val: item, ok: true}
	b.insert = next
	b.browse.index = b.insert
	return evicted, ok
}

// DeleteNewest removes the most recently inserted entry and returns it.
// It returns false if the buffer is empty.
func (b *Buffer[T]) DeleteNewest() (T, bool) {
	return b.DeleteAt(b.size - 1)
}

// ReplaceNewest overwrites the newest entry in place and returns the value
// it held. The number of entries is unchanged. On an empty buffer item is
// stored as the only entry and false is returned.
// The browse cursor is re-anchored at the newest entry.
func (b *Buffer[T]) ReplaceNewest(item T) (T, bool) {
	var prev T
	if b.size == 0 {
		b.insert = b.wrap(b.insert + 1)
		b.size = 1
		b.slots[b.insert] = slot[T]{val: item, ok: true}
		b.browse.index = b.insert
		return prev, false
	}

	prev = b.slots[b.insert].val
	b.slots[b.insert].val = item
	b.browse.index = b.insert
	return prev, true
}

// DeleteAt removes the entry at the logical index i, where 0 is the oldest
// entry and Len()-1 the newest, and returns it.
//
// Newer entries shift down by one slot so the occupied region stays
// contiguous. A browse cursor after i moves back with the entry it
// referenced; one on i moves to the next older entry. Other cursors are
// not adjusted.
// It returns false if i is out of range.
func (b *Buffer[T]) DeleteAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= b.size {
		return zero, false
	}

	removed := b.at(i)
	browsePos, _ := b.browse.pos()

	for j := i; j < b.size-1; j++ {
		b.slots[b.phys(j)] = b.slots[b.phys(j+1)]
	}
	b.slots[b.insert] = slot[T]{}
	b.insert = b.wrap(b.insert - 1)
	b.size--

	switch {
	case b.size == 0:
		b.browse.index = b.insert
	case browsePos > i || (browsePos == i && i > 0):
		b.browse.index = b.wrap(b.browse.index - 1)
	}
	return removed, true
}

// IsEmpty returns true if nothing is recorded.
func (b *Buffer[T]) IsEmpty() bool {
	return b.size == 0
}

// Len returns the number of recorded entries.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer[T]) Cap() int {
	return len(b.slots)
}

// Circular returns true if cursors wrap around the recorded entries.
func (b *Buffer[T]) Circular() bool {
	return b.circular
}

// Newest returns the most recently inserted entry.
func (b *Buffer[T]) Newest() (T, bool) {
	return b.get(b.size - 1)
}

// Oldest returns the oldest recorded entry.
func (b *Buffer[T]) Oldest() (T, bool) {
	return b.get(0)
}

// Items returns a copy of the recorded entries, oldest first.
func (b *Buffer[T]) Items() []T {
	items := make([]T, b.size)
	for i := range items {
		items[i] = b.at(i)
	}
	return items
}

// ContainsFunc reports whether any recorded entry satisfies match.
// It scans every entry and is intended for diagnostics.
func (b *Buffer[T]) ContainsFunc(match func(T) bool) bool {
	for i := 0; i < b.size; i++ {
		if match(b.at(i)) {
			return true
		}
	}
	return false
}

// Contains reports whether item is recorded in b.
func Contains[T comparable](b *Buffer[T], item T) bool {
	return b.ContainsFunc(func(v T) bool { return v == item })
}

// IsHealthy walks the raw storage and reports whether the occupied slots
// form a single contiguous run ending at the insertion point.
// It is a diagnostic for tests, not for control flow.
func (b *Buffer[T]) IsHealthy() bool {
	n := len(b.slots)
	occupied, transitions := 0, 0
	for i := 0; i < n; i++ {
		if b.slots[i].ok {
			occupied++
		}
		if b.slots[i].ok != b.slots[(i+1)%n].ok {
			transitions++
		}
	}

	if occupied != b.size || transitions > 2 {
		return false
	}
	if b.size == 0 {
		return true
	}
	if !b.slots[b.insert].ok {
		return false
	}
	// The slot after the newest must be empty or, when full, the oldest.
	return b.size == n || !b.slots[b.wrap(b.insert+1)].ok
}

// Browse returns the buffer's browse cursor.
// Inserts and replacements re-anchor it at the newest entry; deletions keep
// it on the entry it referenced when that entry survives.
func (b *Buffer[T]) Browse() *Cursor[T] {
	return &b.browse
}

// Cursor returns a new independent cursor positioned at the newest entry.
func (b *Buffer[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{buf: b, index: b.insert}
}

// oldest returns the physical index of the oldest entry.
func (b *Buffer[T]) oldest() int {
	return b.wrap(b.insert - b.size + 1)
}

// phys converts a logical index (0 = oldest) into a storage index.
func (b *Buffer[T]) phys(i int) int {
	return b.wrap(b.oldest() + i)
}

// at returns the entry at logical index i. Caller ensures 0 <= i < size.
func (b *Buffer[T]) at(i int) T {
	return b.slots[b.phys(i)].val
}

// get returns the entry at logical index i, or false if out of range.
func (b *Buffer[T]) get(i int) (T, bool) {
	if i < 0 || i >= b.size {
		var zero T
		return zero, false
	}
	return b.at(i), true
}

// wrap reduces i modulo the capacity.
func (b *Buffer[T]) wrap(i int) int {
	return mod(i, len(b.slots))
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

package history

import "fmt"

// Cursor is a position in a Buffer used to read entries without changing
// them. A cursor holds only a storage index and its owning buffer.
//
// A cursor left pointing outside the recorded entries by a mutation is
// treated as positioned on the newest entry.
type Cursor[T any] struct {
	buf   *Buffer[T]
	index int
}

// Current returns the entry under the cursor.
// It returns false if the buffer is empty.
func (c *Cursor[T]) Current() (T, bool) {
	p, ok := c.pos()
	if !ok {
		var zero T
		return zero, false
	}
	return c.buf.at(p), true
}

// CanStepBackward reports whether StepBackward would move the cursor.
func (c *Cursor[T]) CanStepBackward() bool {
	p, ok := c.pos()
	if !ok {
		return false
	}
	return c.buf.circular || p > 0
}

// CanStepForward reports whether StepForward would move the cursor.
func (c *Cursor[T]) CanStepForward() bool {
	p, ok := c.pos()
	if !ok {
		return false
	}
	return c.buf.circular || p < c.buf.size-1
}

// StepBackward moves the cursor to the next older entry and returns it.
// At the oldest entry of a linear buffer the cursor stays put and the
// current entry is returned.
func (c *Cursor[T]) StepBackward() (T, bool) {
	if c.CanStepBackward() {
		c.move(-1)
	}
	return c.Current()
}

// StepForward moves the cursor to the next newer entry and returns it.
// At the newest entry of a linear buffer the cursor stays put and the
// current entry is returned.
func (c *Cursor[T]) StepForward() (T, bool) {
	if c.CanStepForward() {
		c.move(1)
	}
	return c.Current()
}

// PeekBackward returns what StepBackward would return without moving.
func (c *Cursor[T]) PeekBackward() (T, bool) {
	tmp := *c
	return tmp.StepBackward()
}

// PeekForward returns what StepForward would return without moving.
func (c *Cursor[T]) PeekForward() (T, bool) {
	tmp := *c
	return tmp.StepForward()
}

// Index returns the storage index the cursor points at.
func (c *Cursor[T]) Index() int {
	return c.index
}

// Position returns the logical index of the cursor, 0 being the oldest
// entry, or -1 if the buffer is empty.
func (c *Cursor[T]) Position() int {
	p, ok := c.pos()
	if !ok {
		return -1
	}
	return p
}

// RepositionTo moves the cursor to the position of other.
// Movement rules are not applied.
func (c *Cursor[T]) RepositionTo(other *Cursor[T]) {
	c.RepositionToIndex(other.index)
}

// RepositionToIndex moves the cursor to storage index i, reduced modulo the
// buffer capacity. Movement rules are not applied.
func (c *Cursor[T]) RepositionToIndex(i int) {
	c.index = c.buf.wrap(i)
}

// Reset moves the cursor back to the newest entry.
func (c *Cursor[T]) Reset() {
	c.index = c.buf.insert
}

// String returns a debug representation of the cursor.
func (c *Cursor[T]) String() string {
	p, ok := c.pos()
	if !ok {
		return fmt.Sprintf("Cursor(%d, empty)", c.index)
	}
	return fmt.Sprintf("Cursor(%d, %d/%d)", c.index, p+1, c.buf.size)
}

// pos returns the logical index of the cursor, snapping stale positions to
// the newest entry. It returns false if the buffer is empty.
func (c *Cursor[T]) pos() (int, bool) {
	b := c.buf
	if b.size == 0 {
		return 0, false
	}
	p := mod(c.index-b.oldest(), len(b.slots))
	if p >= b.size {
		c.index = b.insert
		p = b.size - 1
	}
	return p, true
}

// move steps the cursor delta entries through the occupied region,
// wrapping modulo the number of entries.
func (c *Cursor[T]) move(delta int) {
	p, ok := c.pos()
	if !ok {
		return
	}
	c.index = c.buf.phys(mod(p+delta, c.buf.size))
}

// Package history provides a bounded, browsable history of visited items.
//
// The history is a fixed-capacity ring buffer. New items are recorded at
// the insertion point and, once the buffer is full, overwrite the oldest
// entry. Recorded items can be browsed backward and forward with cursors
// that never mutate the buffer.
//
// # Buffer
//
// A Buffer is created with a fixed capacity and optional behaviour:
//
//	h := history.New[Location](50,
//	    history.WithCircular[Location](),
//	    history.WithEvaluator[Location](near),
//	)
//
//	evicted, ok := h.InsertOrReplace(loc)
//
// Before an item is inserted every existing entry that the Evaluator says
// the new item can replace is removed. This keeps "nearby" duplicates from
// piling up in the history. The value returned by InsertOrReplace is the
// entry evicted to make room, never one of the superseded duplicates.
//
// Occupied slots always form one contiguous run ending at the insertion
// point. IsHealthy checks this and is meant for tests.
//
// # Cursors
//
// A Cursor is an index into its Buffer. The buffer owns one browse cursor
// (Browse) that is re-anchored at the newest entry by inserts and
// replacements and follows its entry across deletions, and hands out any
// number of independent read cursors (Cursor).
//
// In linear mode a cursor stops at the newest and oldest entries. In
// circular mode it wraps around the occupied entries, returning to its
// start after Len steps. Moving past a boundary is a no-op, not an error.
//
// # Thread Safety
//
// Buffer and Cursor are not safe for concurrent use. Guard the whole
// buffer, including its cursors, with one mutex if it is shared.
package history

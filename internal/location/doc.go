// Package location records editor locations in a bounded jump list.
//
// A Location is a file path plus a 0-indexed line/column Point. The
// Jumplist type wraps a history.Buffer of locations and exposes the
// operations an editor binds to navigation commands:
//
//	jl := location.NewJumplist(50, location.ProximityEvaluator{Lines: 10})
//	jl.Record(&loc) // remember where the cursor was
//	prev, ok := jl.Back()
//
// ProximityEvaluator keeps the list free of near-duplicates: recording a
// location drops any earlier entry in the same file within a few lines.
package location

package location

// ProximityEvaluator treats an existing location as superseded when it is
// in the same file and within Lines lines of the incoming one.
type ProximityEvaluator struct {
	Lines uint32
}

// CanReplace implements history.Evaluator.
func (e ProximityEvaluator) CanReplace(incoming, existing Location) bool {
	if !incoming.SameFile(existing) {
		return false
	}
	a, b := incoming.Point.Line, existing.Point.Line
	if a < b {
		a, b = b, a
	}
	return a-b <= e.Lines
}

// ExactEvaluator only replaces an identical location.
type ExactEvaluator struct{}

// CanReplace implements history.Evaluator.
func (ExactEvaluator) CanReplace(incoming, existing Location) bool {
	return incoming.SameFile(existing) && incoming.Point == existing.Point
}

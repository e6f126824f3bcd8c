package history

// Evaluator decides whether an incoming item supersedes an existing one.
type Evaluator[T any] interface {
	// CanReplace reports whether existing should be removed from the
	// history because incoming is being recorded.
	CanReplace(incoming, existing T) bool
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc[T any] func(incoming, existing T) bool

// CanReplace calls f(incoming, existing).
func (f EvaluatorFunc[T]) CanReplace(incoming, existing T) bool {
	return f(incoming, existing)
}

type never[T any] struct{}

func (never[T]) CanReplace(T, T) bool { return false }

// Never returns an Evaluator that never replaces anything.
// It is the default for a Buffer created without WithEvaluator.
func Never[T any]() Evaluator[T] {
	return never[T]{}
}

// Equal returns an Evaluator that replaces entries equal to the incoming item.
func Equal[T comparable]() Evaluator[T] {
	return EvaluatorFunc[T](func(incoming, existing T) bool {
		return incoming == existing
	})
}

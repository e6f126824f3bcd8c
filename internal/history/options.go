package history

// MinCapacity is the smallest capacity a Buffer can have.
// Smaller requested capacities are clamped to it.
const MinCapacity = 1

// Option configures a Buffer during creation.
type Option[T any] func(*Buffer[T])

// WithCircular makes cursors wrap around the recorded entries instead of
// stopping at the newest and oldest ones.
func WithCircular[T any]() Option[T] {
	return func(b *Buffer[T]) {
		b.circular = true
	}
}

// WithEvaluator sets the policy used to drop superseded entries on insert.
// A nil evaluator leaves the default in place.
func WithEvaluator[T any](eval Evaluator[T]) Option[T] {
	return func(b *Buffer[T]) {
		if eval != nil {
			b.eval = eval
		}
	}
}

package domain

// Option holds a value that may be absent. Day-keyed reads (ratings,
// reflections) return None for days with no record, which is distinct from
// "not fetched yet" at the cache layer.
type Option[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns the absent variant.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Present reports whether a value is held.
func (o Option[T]) Present() bool {
	return o.present
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// OrZero returns the value, or the zero value when absent.
func (o Option[T]) OrZero() T {
	return o.value
}

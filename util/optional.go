package util

// Optional holds a value that may be absent. The zero Optional is absent.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Unpack returns the held value and whether one was set.
func (me Optional[T]) Unpack() (T, bool) {
	return me.value, me.set
}

// Or returns the held value, or fallback if none was set.
func (me Optional[T]) Or(fallback T) T {
	if !me.set {
		return fallback
	}
	return me.value
}

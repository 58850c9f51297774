package flowx

import (
	"errors"
	"iter"
)

// ErrZeroStep is the panic value of [Step] when called with a zero step.
var ErrZeroStep = errors.New("flowx: step must not be zero")

// Integer is the set of types usable as numeric range bounds.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Span returns the half-open range [from, to). It is empty when to <= from.
func Span[T Integer](from, to T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := from; i < to; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// SpanInclusive returns the closed range [from, to]. It is empty when to < from.
func SpanInclusive[T Integer](from, to T) iter.Seq[T] {
	return func(yield func(T) bool) {
		if to < from {
			return
		}

		for i := from; ; i++ {
			if !yield(i) || i == to {
				return
			}
		}
	}
}

// Step returns the values from, from+step, ... stopping before to.
// A negative step produces a descending range.
func Step[T Integer](from, to, step T) iter.Seq[T] {
	if step == 0 {
		panic(ErrZeroStep)
	}

	// Unsigned types never see a negative step; the comparison below is false for them.
	descending := step < 0

	return func(yield func(T) bool) {
		for i := from; (descending && i > to) || (!descending && i < to); i += step {
			if !yield(i) {
				return
			}

			// Stop before wrapping around the type's bounds.
			if next := i + step; (descending && next > i) || (!descending && next < i) {
				return
			}
		}
	}
}

package flowx

import (
	"errors"
	"iter"
	"slices"

	"github.com/samber/lo"
)

// ErrMissingRange is returned by [CollectN] when no range is given.
var ErrMissingRange = errors.New("flowx: comprehension requires at least one range")

// Collect returns the elements of xs for which every predicate holds, in order.
func Collect[A any](xs iter.Seq[A], where ...func(A) bool) []A {
	return CollectMap(xs, func(a A) A { return a }, where...)
}

// CollectMap returns result(x) for every element x of xs accepted by every predicate.
func CollectMap[A, R any](xs iter.Seq[A], result func(A) R, where ...func(A) bool) []R {
	out := []R{}

	for a := range xs {
		if !lo.EveryBy(where, func(pred func(A) bool) bool { return pred(a) }) {
			continue
		}

		out = append(out, result(a))
	}

	return out
}

// Collect2 iterates xs and ys as nested loops, xs outermost.
//
// ys is materialized once and walked again for every element of xs.
func Collect2[A, B, R any](xs iter.Seq[A], ys iter.Seq[B], result func(A, B) R, where ...func(A, B) bool) []R {
	inner := slices.Collect(ys)
	out := []R{}

	if len(inner) == 0 {
		return out
	}

	for a := range xs {
		for _, b := range inner {
			if !lo.EveryBy(where, func(pred func(A, B) bool) bool { return pred(a, b) }) {
				continue
			}

			out = append(out, result(a, b))
		}
	}

	return out
}

// Collect3 is [Collect2] with a third, innermost range.
func Collect3[A, B, C, R any](
	xs iter.Seq[A],
	ys iter.Seq[B],
	zs iter.Seq[C],
	result func(A, B, C) R,
	where ...func(A, B, C) bool,
) []R {
	middle := slices.Collect(ys)
	inner := slices.Collect(zs)
	out := []R{}

	if len(middle) == 0 || len(inner) == 0 {
		return out
	}

	for a := range xs {
		for _, b := range middle {
			for _, c := range inner {
				if !lo.EveryBy(where, func(pred func(A, B, C) bool) bool { return pred(a, b, c) }) {
					continue
				}

				out = append(out, result(a, b, c))
			}
		}
	}

	return out
}

// CollectN walks the Cartesian product of ranges, first range outermost.
//
// The current combination is passed to result and the predicates as a slice
// that is reused between calls; copy it to retain it.
func CollectN[T, R any](ranges [][]T, result func([]T) R, where ...func([]T) bool) ([]R, error) {
	if len(ranges) == 0 {
		return nil, ErrMissingRange
	}

	out := []R{}

	for _, r := range ranges {
		if len(r) == 0 {
			return out, nil
		}
	}

	indices := make([]int, len(ranges))
	current := make([]T, len(ranges))

	for {
		for i, idx := range indices {
			current[i] = ranges[i][idx]
		}

		if lo.EveryBy(where, func(pred func([]T) bool) bool { return pred(current) }) {
			out = append(out, result(current))
		}

		// Advance the odometer: the last range varies fastest.
		pos := len(indices) - 1
		for ; pos >= 0; pos-- {
			indices[pos]++
			if indices[pos] < len(ranges[pos]) {
				break
			}

			indices[pos] = 0
		}

		if pos < 0 {
			return out, nil
		}
	}
}

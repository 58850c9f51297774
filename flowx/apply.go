package flowx

import (
	"fmt"

	"github.com/samber/lo"
)

// Apply calls fn once per argument, left to right, discarding the results.
func Apply[T, R any](fn func(T) R, args ...T) {
	for _, arg := range args {
		fn(arg)
	}
}

// Each calls fn once per argument, left to right.
func Each[T any](fn func(T), args ...T) {
	for _, arg := range args {
		fn(arg)
	}
}

// ApplyCollect calls fn once per argument, left to right, and returns the
// results in argument order.
func ApplyCollect[T, R any](fn func(T) R, args ...T) []R {
	return lo.Map(args, func(arg T, _ int) R {
		return fn(arg)
	})
}

// ApplyCollect2 returns the results of fn(a) and fn(b) as a pair.
func ApplyCollect2[T, R any](fn func(T) R, a, b T) lo.Tuple2[R, R] {
	first := fn(a)
	second := fn(b)

	return lo.T2(first, second)
}

// ApplyCollect3 returns the results of fn(a), fn(b) and fn(c) as a triple.
func ApplyCollect3[T, R any](fn func(T) R, a, b, c T) lo.Tuple3[R, R, R] {
	first := fn(a)
	second := fn(b)
	third := fn(c)

	return lo.T3(first, second, third)
}

// ApplyErr calls fn once per argument, left to right, and stops at the first error.
func ApplyErr[T any](fn func(T) error, args ...T) error {
	for i, arg := range args {
		if err := fn(arg); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}

	return nil
}

// ApplyCollectErr is like [ApplyCollect], but stops at the first error.
// No results are returned when an error occurs.
func ApplyCollectErr[T, R any](fn func(T) (R, error), args ...T) ([]R, error) {
	results := make([]R, 0, len(args))

	for i, arg := range args {
		result, err := fn(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}

		results = append(results, result)
	}

	return results, nil
}

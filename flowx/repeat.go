package flowx

import "github.com/samber/lo"

// Repeat calls fn n times with i = 0, 1, ..., n-1.
func Repeat(n int, fn func(i int)) {
	for i := range n {
		fn(i)
	}
}

// Times calls fn n times and returns the results in order.
// A negative n returns an empty slice.
func Times[T any](n int, fn func(i int) T) []T {
	if n <= 0 {
		return []T{}
	}

	return lo.Times(n, fn)
}

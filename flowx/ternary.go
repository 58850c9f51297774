package flowx

import "github.com/samber/lo"

// IfElse evaluates and returns whenTrue() if cond holds, otherwise whenFalse().
// The other branch is never called.
func IfElse[T any](cond bool, whenTrue, whenFalse func() T) T {
	return lo.TernaryF(cond, whenTrue, whenFalse)
}

// Choose returns a if cond holds, otherwise b.
//
// Both values are evaluated by the caller; use [IfElse] when a branch has side effects.
func Choose[T any](cond bool, a, b T) T {
	return lo.Ternary(cond, a, b)
}

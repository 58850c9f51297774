package flowx

import "github.com/samber/lo"

// OrDefault returns the value v points to, or def if v is nil.
func OrDefault[T any](v *T, def T) T {
	return lo.FromPtrOr(v, def)
}

// OrDefaultOK returns v if ok holds, otherwise def.
// It accepts comma-ok results such as map lookups directly.
func OrDefaultOK[T any](v T, ok bool, def T) T {
	if !ok {
		return def
	}

	return v
}

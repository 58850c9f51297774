package sproutx

import (
	"fmt"
	"strings"

	"github.com/go-sprout/sprout"
	"github.com/samber/lo"
)

// GoRegistry struct implements the [sprout.Registry] interface, embedding the Handler to access shared functionalities.
//
// It provides helpers for rendering Go source.
type GoRegistry struct {
	handler sprout.Handler
}

// NewGoRegistry initializes and returns a new [sprout.Registry].
func NewGoRegistry() *GoRegistry {
	return &GoRegistry{}
}

// Implements [sprout.Registry].
func (r *GoRegistry) UID() string {
	return "sagikazarmark/flowx.go"
}

// Implements [sprout.Registry].
func (r *GoRegistry) LinkHandler(fh sprout.Handler) error {
	r.handler = fh

	return nil
}

// Implements [sprout.Registry].
func (r *GoRegistry) RegisterFunctions(funcsMap sprout.FunctionMap) error {
	sprout.AddFunction(funcsMap, "goCall", r.GoCall)
	sprout.AddFunction(funcsMap, "goCallEach", r.GoCallEach)
	sprout.AddFunction(funcsMap, "goList", r.GoList)
	sprout.AddFunction(funcsMap, "goTuple", r.GoTuple)

	return nil
}

// GoCall renders a call of fn with a single argument.
func (r *GoRegistry) GoCall(fn string, arg string) string {
	return fmt.Sprintf("%s(%s)", fn, arg)
}

// GoCallEach renders one call of fn per argument.
func (r *GoRegistry) GoCallEach(fn string, args []string) []string {
	return lo.Map(args, func(arg string, _ int) string {
		return r.GoCall(fn, arg)
	})
}

// GoList renders a comma separated expression list.
func (r *GoRegistry) GoList(items []string) string {
	return strings.Join(items, ", ")
}

// GoTuple returns the name of the tuple constructor for n values (T2, T3, ...).
func (r *GoRegistry) GoTuple(n int) (string, error) {
	if n < 2 {
		return "", fmt.Errorf("a tuple needs at least 2 values, got %d", n)
	}

	return fmt.Sprintf("T%d", n), nil
}

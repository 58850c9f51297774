package flowx

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDefault   = errors.New("flowx: branch table has no default branch")
	ErrMultipleDefaults = errors.New("flowx: branch table has more than one default branch")
	ErrDefaultNotLast   = errors.New("flowx: default branch must be the last branch")
	ErrNilBody          = errors.New("flowx: branch body is nil")
)

// Pattern is either a concrete pattern matched against the scrutinee or the wildcard.
type Pattern[T any] struct {
	match    func(T) bool
	wildcard bool
}

// Is returns a pattern matching values equal to v.
func Is[T comparable](v T) Pattern[T] {
	return Pattern[T]{match: func(x T) bool { return x == v }}
}

// Match returns a pattern matching values accepted by pred.
func Match[T any](pred func(T) bool) Pattern[T] {
	return Pattern[T]{match: pred}
}

// Wildcard returns the fallback pattern.
func Wildcard[T any]() Pattern[T] {
	return Pattern[T]{wildcard: true}
}

// IsWildcard reports whether p is the fallback pattern.
func (p Pattern[T]) IsWildcard() bool {
	return p.wildcard
}

func (p Pattern[T]) matches(v T) bool {
	return p.wildcard || (p.match != nil && p.match(v))
}

// Branch pairs a pattern with the body evaluated when it is selected.
type Branch[T, R any] struct {
	Pattern Pattern[T]
	Body    func() R
}

// Table is a validated, ordered branch table.
type Table[T, R any] struct {
	branches []Branch[T, R]
}

// NewTable validates branches and returns a table dispatching over them.
//
// Exactly one branch must carry the wildcard pattern and it must come last.
func NewTable[T, R any](branches ...Branch[T, R]) (*Table[T, R], error) {
	defaults := 0

	for i, branch := range branches {
		if branch.Body == nil {
			return nil, fmt.Errorf("branch %d: %w", i, ErrNilBody)
		}

		if branch.Pattern.IsWildcard() {
			defaults++

			if defaults > 1 {
				return nil, fmt.Errorf("branch %d: %w", i, ErrMultipleDefaults)
			}
		}
	}

	if defaults == 0 {
		return nil, ErrMissingDefault
	}

	if last := len(branches) - 1; !branches[last].Pattern.IsWildcard() {
		return nil, ErrDefaultNotLast
	}

	return &Table[T, R]{branches: branches}, nil
}

// Dispatch evaluates the body of the first branch matching scrutinee.
func (t *Table[T, R]) Dispatch(scrutinee T) R {
	for _, branch := range t.branches {
		if branch.Pattern.matches(scrutinee) {
			return branch.Body()
		}
	}

	// Unreachable: NewTable guarantees a trailing wildcard.
	panic(ErrMissingDefault)
}

// Cases accumulates the branches of a [Select] expression.
//
// The only way to obtain a result is [Cases.Default], so a selection
// without a fallback never produces a value.
type Cases[T comparable, R any] struct {
	scrutinee T
	branches  []Branch[T, R]
}

// Select starts a switch expression over scrutinee.
// The scrutinee is evaluated once, by the caller.
func Select[T comparable, R any](scrutinee T) *Cases[T, R] {
	return &Cases[T, R]{scrutinee: scrutinee}
}

// Case adds a branch selected when the scrutinee equals v.
func (c *Cases[T, R]) Case(v T, body func() R) *Cases[T, R] {
	return c.add(Is(v), body)
}

// CaseMatch adds a branch selected when pred accepts the scrutinee.
func (c *Cases[T, R]) CaseMatch(pred func(T) bool, body func() R) *Cases[T, R] {
	return c.add(Match(pred), body)
}

func (c *Cases[T, R]) add(pattern Pattern[T], body func() R) *Cases[T, R] {
	c.branches = append(c.branches, Branch[T, R]{Pattern: pattern, Body: body})

	return c
}

// Default adds the fallback branch and evaluates the selection.
func (c *Cases[T, R]) Default(body func() R) R {
	table, err := NewTable(append(c.branches, Branch[T, R]{Pattern: Wildcard[T](), Body: body})...)
	if err != nil {
		// Only a nil body can fail here.
		panic(err)
	}

	return table.Dispatch(c.scrutinee)
}

// Actions accumulates the branches of a [Switch] statement.
type Actions[T comparable] struct {
	cases *Cases[T, struct{}]
}

// Switch starts a switch statement over scrutinee.
func Switch[T comparable](scrutinee T) *Actions[T] {
	return &Actions[T]{cases: Select[T, struct{}](scrutinee)}
}

// Case adds a branch run when the scrutinee equals v.
func (a *Actions[T]) Case(v T, body func()) *Actions[T] {
	a.cases.Case(v, statement(body))

	return a
}

// CaseMatch adds a branch run when pred accepts the scrutinee.
func (a *Actions[T]) CaseMatch(pred func(T) bool, body func()) *Actions[T] {
	a.cases.CaseMatch(pred, statement(body))

	return a
}

// Default adds the fallback branch and runs the selected branch.
func (a *Actions[T]) Default(body func()) {
	a.cases.Default(statement(body))
}

func statement(body func()) func() struct{} {
	if body == nil {
		return nil
	}

	return func() struct{} {
		body()

		return struct{}{}
	}
}

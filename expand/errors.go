package expand

import (
	"errors"
	"fmt"
)

// Construction errors. Every error reported for an invocation wraps one of these.
var (
	ErrMalformed        = errors.New("malformed invocation")
	ErrUnterminated     = errors.New("unterminated")
	ErrUnknownConstruct = errors.New("unknown construct")
	ErrMissingDefault   = errors.New("missing default case")
	ErrMultipleDefaults = errors.New("more than one default case")
	ErrDefaultNotLast   = errors.New("default case must be the last case")
	ErrMissingRange     = errors.New("missing range")
	ErrMissingResult    = errors.New("missing result expression")
	ErrMissingType      = errors.New("missing type argument")
	ErrArgCount         = errors.New("wrong number of arguments")
	ErrDuplicateBinding = errors.New("duplicate binding")
	ErrDeferScope       = errors.New("deferred action cannot be bound to its block")
)

// Position is a location in a source file. Line and Column are 1-based.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}

	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// ShapeError is a construction error: an invocation whose shape does not
// match its construct. Source containing one is never expanded.
type ShapeError struct {
	Construct string
	Pos       Position
	Err       error

	offset int
}

func (e *ShapeError) Error() string {
	if e.Construct == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Err)
	}

	return fmt.Sprintf("%s: %s!: %s", e.Pos, e.Construct, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// ShapeErrors returns every [ShapeError] contained in err, including those
// wrapped or combined with [errors.Join].
func ShapeErrors(err error) []*ShapeError {
	switch e := err.(type) {
	case nil:
		return nil

	case *ShapeError:
		return []*ShapeError{e}

	case interface{ Unwrap() []error }:
		var result []*ShapeError

		for _, err := range e.Unwrap() {
			result = append(result, ShapeErrors(err)...)
		}

		return result

	case interface{ Unwrap() error }:
		return ShapeErrors(e.Unwrap())

	default:
		return nil
	}
}

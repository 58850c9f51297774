package expand

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Constructs lists the invocation names understood by the expander.
var Constructs = []string{
	"apply",
	"apply_collect",
	"collect",
	"defer",
	"or_default",
	"repeat",
	"select",
	"select_if",
}

// invocation is a construct invocation found in source text.
//
// Offsets are relative to the text that was scanned.
type invocation struct {
	name    string
	typ     string
	hasType bool
	args    string

	start     int
	end       int
	argsStart int
}

// skip returns the offset just past the string, rune or comment starting at
// offset i of s, or i itself when none starts there.
func skip(s string, i int) (int, error) {
	switch {
	case strings.HasPrefix(s[i:], "//"):
		if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
			return i + j, nil
		}

		return len(s), nil

	case strings.HasPrefix(s[i:], "/*"):
		j := strings.Index(s[i+2:], "*/")
		if j < 0 {
			return 0, fmt.Errorf("%w comment", ErrUnterminated)
		}

		return i + 2 + j + 2, nil

	case s[i] == '`':
		j := strings.IndexByte(s[i+1:], '`')
		if j < 0 {
			return 0, fmt.Errorf("%w raw string literal", ErrUnterminated)
		}

		return i + 1 + j + 1, nil

	case s[i] == '"' || s[i] == '\'':
		quote := s[i]

		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '\n':
				return 0, fmt.Errorf("%w literal", ErrUnterminated)
			case quote:
				return j + 1, nil
			}
		}

		return 0, fmt.Errorf("%w literal", ErrUnterminated)
	}

	return i, nil
}

// offsetError is an error located at an offset of the scanned text.
type offsetError struct {
	offset int
	err    error
}

func (e *offsetError) Error() string { return e.err.Error() }
func (e *offsetError) Unwrap() error { return e.err }

// scanCode calls visit for every byte of s outside strings, runes and
// comments, with the bracket nesting depth at that byte. Opening and closing
// brackets of a group report the depth outside the group.
// Scanning stops early when visit returns false.
func scanCode(s string, visit func(i, depth int) bool) error {
	depth := 0

	for i := 0; i < len(s); {
		next, err := skip(s, i)
		if err != nil {
			return &offsetError{offset: i, err: err}
		}

		if next != i {
			i = next
			continue
		}

		c := s[i]

		if c == ')' || c == ']' || c == '}' {
			depth--

			if depth < 0 {
				return &offsetError{offset: i, err: fmt.Errorf("%w: unbalanced %q", ErrMalformed, c)}
			}
		}

		if !visit(i, depth) {
			return nil
		}

		if c == '(' || c == '[' || c == '{' {
			depth++
		}

		i++
	}

	if depth != 0 {
		return &offsetError{offset: len(s), err: fmt.Errorf("%w bracket", ErrUnterminated)}
	}

	return nil
}

// rebase shifts the offset of an [offsetError] by base.
func rebase(err error, base int) error {
	if oerr, ok := err.(*offsetError); ok {
		return &offsetError{offset: oerr.offset + base, err: oerr.err}
	}

	return err
}

// matching returns the offset of the bracket closing the one at s[open].
func matching(s string, open int) (int, error) {
	closing := -1

	err := scanCode(s[open:], func(i, depth int) bool {
		if i > 0 && depth == 0 {
			closing = open + i

			return false
		}

		return true
	})
	if closing < 0 {
		// Errors inside the group are more precise than the missing closer.
		var oerr *offsetError
		if errors.As(err, &oerr) && open+oerr.offset < len(s) {
			return 0, rebase(err, open)
		}

		return 0, &offsetError{offset: open, err: fmt.Errorf("%w %q", ErrUnterminated, s[open])}
	}

	if !isCloser(s[open], s[closing]) {
		return 0, &offsetError{offset: closing, err: fmt.Errorf("%w: %q closed by %q", ErrMalformed, s[open], s[closing])}
	}

	return closing, nil
}

func isCloser(open, closing byte) bool {
	switch open {
	case '(':
		return closing == ')'
	case '[':
		return closing == ']'
	case '{':
		return closing == '}'
	}

	return false
}

// findTop returns the offset of the first occurrence of tok in s outside
// brackets, strings and comments, or -1.
func findTop(s, tok string) (int, error) {
	found := -1

	err := scanCode(s, func(i, depth int) bool {
		if depth == 0 && strings.HasPrefix(s[i:], tok) {
			found = i

			return false
		}

		return true
	})

	return found, err
}

// splitTop splits s around every occurrence of sep outside brackets, strings
// and comments.
func splitTop(s, sep string) ([]string, error) {
	var parts []string

	last := 0

	err := scanCode(s, func(i, depth int) bool {
		// Occurrences overlapping a previous separator are part of it.
		if i >= last && depth == 0 && strings.HasPrefix(s[i:], sep) {
			parts = append(parts, s[last:i])
			last = i + len(sep)
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	return append(parts, s[last:]), nil
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

// findInvocations returns the outermost construct invocations of s in order.
// Invocations nested in the arguments of another one are not returned.
//
// An unknown construct is reported and scanning goes on after its name. Any
// other error ends the scan; the invocations found before it are returned.
func findInvocations(s string) ([]invocation, []error) {
	var (
		result []invocation
		errs   []error
		resume int
	)

	err := scanCode(s, func(i, _ int) bool {
		if i < resume || !isIdentStart(s[i]) {
			return true
		}

		if i > 0 && (isIdentChar(s[i-1]) || s[i-1] == '.') {
			return true
		}

		j := i
		for j < len(s) && isIdentChar(s[j]) {
			j++
		}

		// Skip the rest of the identifier.
		resume = j

		if j+1 >= len(s) || s[j] != '!' || (s[j+1] != '(' && s[j+1] != '[') {
			return true
		}

		inv, err := parseInvocation(s, i, j)
		if errors.Is(err, ErrUnknownConstruct) {
			errs = append(errs, err)

			return true
		}
		if err != nil {
			errs = append(errs, err)

			return false
		}

		result = append(result, inv)
		resume = inv.end

		return true
	})
	if err != nil {
		errs = append(errs, err)
	}

	return result, errs
}

// parseInvocation reads the invocation whose name spans s[start:bang].
func parseInvocation(s string, start, bang int) (invocation, error) {
	inv := invocation{
		name:  s[start:bang],
		start: start,
	}

	if !slices.Contains(Constructs, inv.name) {
		return invocation{}, &offsetError{offset: start, err: fmt.Errorf("%w %q", ErrUnknownConstruct, inv.name)}
	}

	open := bang + 1

	if s[open] == '[' {
		closing, err := matching(s, open)
		if err != nil {
			return invocation{}, err
		}

		inv.typ = strings.TrimSpace(s[open+1 : closing])
		inv.hasType = true
		open = closing + 1

		if open >= len(s) || s[open] != '(' {
			return invocation{}, &offsetError{offset: start, err: fmt.Errorf("%w: expected ( after type argument", ErrMalformed)}
		}
	}

	closing, err := matching(s, open)
	if err != nil {
		return invocation{}, err
	}

	inv.args = s[open+1 : closing]
	inv.argsStart = open + 1
	inv.end = closing + 1

	return inv, nil
}

package expand

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// construct is the parsed form of an invocation, rendered by the template
// named after it.
type construct interface {
	template() string
	usesSupport() bool
}

// Body is a branch or action body: a braced statement block or a single
// statement/expression.
type Body struct {
	Text  string
	Block bool
}

func parseBody(s string) (Body, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Body{}, fmt.Errorf("%w: empty body", ErrMalformed)
	}

	if s[0] == '{' {
		closing, err := matching(s, 0)
		if err != nil {
			return Body{}, err
		}

		if closing == len(s)-1 {
			// Keep the indentation of the first line for unindentSmart.
			text := strings.TrimLeft(strings.TrimRight(s[1:closing], " \t\r\n"), "\r\n")

			return Body{Text: text, Block: true}, nil
		}
	}

	return Body{Text: s}, nil
}

// DeferSpec is a deferred action: defer!(stmts).
type DeferSpec struct {
	Body Body

	// ID identifies the invocation in the rendered marker until defers are
	// bound to their block.
	ID int
}

func (DeferSpec) template() string   { return "defer.tmpl" }
func (DeferSpec) usesSupport() bool { return false }

// Loop is one "for binding in range" clause of a comprehension.
type Loop struct {
	Binding string

	// Var is the loop variable of a numeric span; never the blank identifier.
	Var string

	Expr string

	Span      bool
	From      string
	To        string
	Inclusive bool

	// FromVar and ToVar hold the span bounds, evaluated once before the loop.
	FromVar string
	ToVar   string
}

// Discard reports whether the bound value is unused.
func (l Loop) Discard() bool {
	return l.Binding == "_"
}

// CollectSpec is a comprehension:
// collect![T]([result =>] for x in range [, for y in range]* [; if predicate]).
type CollectSpec struct {
	Type      string
	Result    string
	Loops     []Loop
	Predicate string
}

// Reversed returns the loops innermost first, the order they are closed in.
func (s CollectSpec) Reversed() []Loop {
	loops := slices.Clone(s.Loops)
	slices.Reverse(loops)

	return loops
}

func (CollectSpec) template() string   { return "collect.tmpl" }
func (CollectSpec) usesSupport() bool { return false }

// ApplySpec is apply!(fn; args...) or apply_collect!(fn; args...).
type ApplySpec struct {
	Func    string
	Args    []string
	Collect bool

	// Support is the package name providing tuple constructors.
	Support string
}

func (s ApplySpec) template() string {
	if s.Collect {
		return "apply_collect.tmpl"
	}

	return "apply.tmpl"
}

func (s ApplySpec) usesSupport() bool {
	return s.Collect && len(s.Args) > 1
}

// Case is one case of a select! invocation.
type Case struct {
	Pattern string
	Default bool
	Body    Body
}

// SelectSpec is a structured switch: select![T](scrutinee => { case p => body, ... }).
type SelectSpec struct {
	Type      string
	Scrutinee string
	Cases     []Case
}

func (SelectSpec) template() string   { return "select.tmpl" }
func (SelectSpec) usesSupport() bool { return false }

// TernarySpec is select_if![T](cond => then, else).
type TernarySpec struct {
	Type string
	Cond string
	Then Body
	Else Body
}

func (TernarySpec) template() string   { return "select_if.tmpl" }
func (TernarySpec) usesSupport() bool { return false }

// OrDefaultSpec is or_default!(optional, default).
type OrDefaultSpec struct {
	Value   string
	Default string

	Support string
}

func (OrDefaultSpec) template() string   { return "or_default.tmpl" }
func (OrDefaultSpec) usesSupport() bool { return true }

// RepeatSpec is repeat!(count => stmts).
type RepeatSpec struct {
	Count string
	Body  Body
}

func (RepeatSpec) template() string   { return "repeat.tmpl" }
func (RepeatSpec) usesSupport() bool { return false }

// maxTuple is the largest tuple apply_collect! can build.
const maxTuple = 9

func parse(inv invocation) (construct, error) {
	switch inv.name {
	case "collect", "select", "select_if":
		if inv.hasType && inv.typ == "" {
			return nil, ErrMissingType
		}

	default:
		if inv.hasType {
			return nil, fmt.Errorf("%w: %s! does not take a type argument", ErrMalformed, inv.name)
		}
	}

	switch inv.name {
	case "defer":
		return parseDefer(inv.args)
	case "collect":
		return parseCollect(inv.typ, inv.args)
	case "apply":
		return parseApply(inv.args, false)
	case "apply_collect":
		return parseApply(inv.args, true)
	case "select":
		return parseSelect(inv.typ, inv.args)
	case "select_if":
		return parseTernary(inv.typ, inv.args)
	case "or_default":
		return parseOrDefault(inv.args)
	case "repeat":
		return parseRepeat(inv.args)
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownConstruct, inv.name)
}

func parseDefer(args string) (construct, error) {
	body, err := parseBody(args)
	if err != nil {
		return nil, err
	}

	return DeferSpec{Body: body}, nil
}

func parseCollect(typ, args string) (construct, error) {
	if typ == "" {
		return nil, fmt.Errorf("%w: write collect![T](...)", ErrMissingType)
	}

	spec := CollectSpec{Type: typ}

	parts, err := splitTop(args, ";")
	if err != nil {
		return nil, err
	}

	switch len(parts) {
	case 1:
	case 2:
		predicate, ok := cutKeyword(parts[1], "if")
		if !ok || predicate == "" {
			return nil, fmt.Errorf("%w: expected \"; if predicate\"", ErrMalformed)
		}

		spec.Predicate = predicate
	default:
		return nil, fmt.Errorf("%w: too many ';' separated sections", ErrMalformed)
	}

	head := parts[0]

	arrow, err := findTop(head, "=>")
	if err != nil {
		return nil, err
	}

	if arrow >= 0 {
		spec.Result = strings.TrimSpace(head[:arrow])
		if spec.Result == "" {
			return nil, ErrMissingResult
		}

		values, err := splitTop(spec.Result, ",")
		if err != nil {
			return nil, err
		}

		if len(values) > 1 {
			return nil, fmt.Errorf("%w: result %q is a list; collect one value per element, e.g. a tuple or struct", ErrMalformed, spec.Result)
		}

		head = head[arrow+2:]
	}

	if strings.TrimSpace(head) == "" {
		return nil, ErrMissingRange
	}

	clauses, err := splitTop(head, ",")
	if err != nil {
		return nil, err
	}

	for i, clause := range clauses {
		loop, err := parseLoop(clause, i)
		if err != nil {
			return nil, err
		}

		spec.Loops = append(spec.Loops, loop)
	}

	bindings := lo.Without(lo.Map(spec.Loops, func(loop Loop, _ int) string { return loop.Binding }), "_")
	if duplicates := lo.FindDuplicates(bindings); len(duplicates) > 0 {
		return nil, fmt.Errorf("%w %q", ErrDuplicateBinding, duplicates[0])
	}

	if spec.Result == "" {
		if len(spec.Loops) > 1 {
			return nil, fmt.Errorf("%w: required with more than one range", ErrMissingResult)
		}

		if spec.Loops[0].Discard() {
			return nil, fmt.Errorf("%w: the binding is blank", ErrMissingResult)
		}

		spec.Result = spec.Loops[0].Binding
	}

	return spec, nil
}

// parseLoop parses "for binding in range".
func parseLoop(clause string, index int) (Loop, error) {
	rest, ok := cutKeyword(clause, "for")
	if !ok {
		return Loop{}, fmt.Errorf("%w: expected \"for binding in range\"", ErrMalformed)
	}

	end := 0
	for end < len(rest) && isIdentChar(rest[end]) {
		end++
	}

	binding := rest[:end]
	rest = rest[end:]

	if !token.IsIdentifier(binding) {
		return Loop{}, fmt.Errorf("%w: invalid binding %q", ErrMalformed, binding)
	}

	expr, ok := cutKeyword(rest, "in")
	if !ok {
		return Loop{}, fmt.Errorf("%w: expected \"in\" after %q", ErrMalformed, binding)
	}

	if expr == "" {
		return Loop{}, fmt.Errorf("%w for %q", ErrMissingRange, binding)
	}

	loop := Loop{
		Binding: binding,
		Var:     binding,
		Expr:    expr,
	}

	if loop.Discard() {
		loop.Var = fmt.Sprintf("flowxI%d", index)
	}

	dots, err := findTop(expr, "..")
	if err != nil {
		return Loop{}, err
	}

	if dots < 0 {
		return loop, nil
	}

	loop.Span = true
	loop.FromVar = fmt.Sprintf("flowxFrom%d", index)
	loop.ToVar = fmt.Sprintf("flowxTo%d", index)
	loop.From = strings.TrimSpace(expr[:dots])
	loop.To = expr[dots+2:]

	if strings.HasPrefix(loop.To, "=") {
		loop.Inclusive = true
		loop.To = loop.To[1:]
	}

	loop.To = strings.TrimSpace(loop.To)

	if loop.From == "" || loop.To == "" {
		return Loop{}, fmt.Errorf("%w: range %q needs both bounds", ErrMalformed, expr)
	}

	return loop, nil
}

// cutKeyword removes the leading keyword kw from s and returns the trimmed remainder.
func cutKeyword(s, kw string) (string, bool) {
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, kw) {
		return "", false
	}

	rest := s[len(kw):]
	if rest != "" && isIdentChar(rest[0]) {
		return "", false
	}

	return strings.TrimSpace(rest), true
}

// splitArgs splits a comma separated argument list, allowing a trailing comma.
func splitArgs(s string) ([]string, error) {
	parts, err := splitTop(s, ",")
	if err != nil {
		return nil, err
	}

	args := lo.Map(parts, func(part string, _ int) string { return strings.TrimSpace(part) })

	if len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}

	if lo.Contains(args, "") {
		return nil, fmt.Errorf("%w: empty argument", ErrMalformed)
	}

	return args, nil
}

func parseApply(args string, collect bool) (construct, error) {
	parts, err := splitTop(args, ";")
	if err != nil {
		return nil, err
	}

	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected \"function; arguments\"", ErrMalformed)
	}

	fn := strings.TrimSpace(parts[0])
	if fn == "" {
		return nil, fmt.Errorf("%w: missing function", ErrMalformed)
	}

	values, err := splitArgs(parts[1])
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: at least one argument is required", ErrArgCount)
	}

	if collect && len(values) > maxTuple {
		return nil, fmt.Errorf("%w: at most %d arguments can be collected, got %d", ErrArgCount, maxTuple, len(values))
	}

	return ApplySpec{Func: fn, Args: values, Collect: collect}, nil
}

func parseSelect(typ, args string) (construct, error) {
	arrow, err := findTop(args, "=>")
	if err != nil {
		return nil, err
	}

	if arrow < 0 {
		return nil, fmt.Errorf("%w: expected \"scrutinee => { cases }\"", ErrMalformed)
	}

	spec := SelectSpec{
		Type:      typ,
		Scrutinee: strings.TrimSpace(args[:arrow]),
	}

	if spec.Scrutinee == "" {
		return nil, fmt.Errorf("%w: missing scrutinee", ErrMalformed)
	}

	block := strings.TrimSpace(args[arrow+2:])
	if block == "" || block[0] != '{' {
		return nil, fmt.Errorf("%w: cases must be enclosed in braces", ErrMalformed)
	}

	closing, err := matching(block, 0)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(block[closing+1:]) != "" {
		return nil, fmt.Errorf("%w: unexpected text after cases", ErrMalformed)
	}

	clauses, err := splitArgs(block[1:closing])
	if err != nil {
		return nil, err
	}

	for _, clause := range clauses {
		c, err := parseCase(clause)
		if err != nil {
			return nil, err
		}

		spec.Cases = append(spec.Cases, c)
	}

	switch defaults := lo.CountBy(spec.Cases, func(c Case) bool { return c.Default }); {
	case defaults == 0:
		return nil, ErrMissingDefault
	case defaults > 1:
		return nil, ErrMultipleDefaults
	case !spec.Cases[len(spec.Cases)-1].Default:
		return nil, ErrDefaultNotLast
	}

	return spec, nil
}

// parseCase parses "case pattern => body".
func parseCase(clause string) (Case, error) {
	rest, ok := cutKeyword(clause, "case")
	if !ok {
		return Case{}, fmt.Errorf("%w: expected \"case pattern => body\"", ErrMalformed)
	}

	arrow, err := findTop(rest, "=>")
	if err != nil {
		return Case{}, err
	}

	if arrow < 0 {
		return Case{}, fmt.Errorf("%w: missing => in case %q", ErrMalformed, rest)
	}

	pattern := strings.TrimSpace(rest[:arrow])
	if pattern == "" {
		return Case{}, fmt.Errorf("%w: missing case pattern", ErrMalformed)
	}

	body, err := parseBody(rest[arrow+2:])
	if err != nil {
		return Case{}, err
	}

	c := Case{Pattern: pattern, Body: body}

	if pattern == "default" || pattern == "_" {
		c.Pattern = ""
		c.Default = true
	}

	return c, nil
}

func parseTernary(typ, args string) (construct, error) {
	arrow, err := findTop(args, "=>")
	if err != nil {
		return nil, err
	}

	if arrow < 0 {
		return nil, fmt.Errorf("%w: expected \"condition => then, else\"", ErrMalformed)
	}

	cond := strings.TrimSpace(args[:arrow])
	if cond == "" {
		return nil, fmt.Errorf("%w: missing condition", ErrMalformed)
	}

	branches, err := splitArgs(args[arrow+2:])
	if err != nil {
		return nil, err
	}

	if len(branches) != 2 {
		return nil, fmt.Errorf("%w: expected two branches, got %d", ErrArgCount, len(branches))
	}

	then, err := parseBody(branches[0])
	if err != nil {
		return nil, err
	}

	otherwise, err := parseBody(branches[1])
	if err != nil {
		return nil, err
	}

	return TernarySpec{Type: typ, Cond: cond, Then: then, Else: otherwise}, nil
}

func parseOrDefault(args string) (construct, error) {
	values, err := splitArgs(args)
	if err != nil {
		return nil, err
	}

	if len(values) != 2 {
		return nil, fmt.Errorf("%w: expected an optional value and a default, got %d arguments", ErrArgCount, len(values))
	}

	return OrDefaultSpec{Value: values[0], Default: values[1]}, nil
}

func parseRepeat(args string) (construct, error) {
	arrow, err := findTop(args, "=>")
	if err != nil {
		return nil, err
	}

	if arrow < 0 {
		return nil, fmt.Errorf("%w: expected \"count => body\"", ErrMalformed)
	}

	count := strings.TrimSpace(args[:arrow])
	if count == "" {
		return nil, fmt.Errorf("%w: missing count", ErrMalformed)
	}

	body, err := parseBody(args[arrow+2:])
	if err != nil {
		return nil, err
	}

	return RepeatSpec{Count: count, Body: body}, nil
}

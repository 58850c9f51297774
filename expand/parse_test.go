package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBody(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Body
	}{
		{
			name:     "expression",
			input:    "  f(x) ",
			expected: Body{Text: "f(x)"},
		},
		{
			name:     "block",
			input:    "{\n\t\tf(x)\n\t\tg(x)\n\t}",
			expected: Body{Text: "\t\tf(x)\n\t\tg(x)", Block: true},
		},
		{
			name:     "composite literal is not a block",
			input:    "{a, b}[0]",
			expected: Body{Text: "{a, b}[0]"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := parseBody(testCase.input)
			require.NoError(t, err)

			assert.Equal(t, testCase.expected, actual)
		})
	}

	_, err := parseBody("   ")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseCollect(t *testing.T) {
	testCases := []struct {
		name     string
		args     string
		expected CollectSpec
	}{
		{
			name: "identity",
			args: "for x in 0..=10; if x%2 == 0 && x%3 == 0",
			expected: CollectSpec{
				Type:   "int",
				Result: "x",
				Loops: []Loop{
					{Binding: "x", Var: "x", Expr: "0..=10", Span: true, From: "0", To: "10", Inclusive: true, FromVar: "flowxFrom0", ToVar: "flowxTo0"},
				},
				Predicate: "x%2 == 0 && x%3 == 0",
			},
		},
		{
			name: "result over several ranges",
			args: "[2]int{x, y} => for x in xs, for y in start() .. end(), for _ in ys",
			expected: CollectSpec{
				Type:   "int",
				Result: "[2]int{x, y}",
				Loops: []Loop{
					{Binding: "x", Var: "x", Expr: "xs"},
					{Binding: "y", Var: "y", Expr: "start() .. end()", Span: true, From: "start()", To: "end()", FromVar: "flowxFrom1", ToVar: "flowxTo1"},
					{Binding: "_", Var: "flowxI2", Expr: "ys"},
				},
			},
		},
		{
			name: "tuple result",
			args: "lo.T2(x, y) => for x in xs, for y in ys",
			expected: CollectSpec{
				Type:   "int",
				Result: "lo.T2(x, y)",
				Loops: []Loop{
					{Binding: "x", Var: "x", Expr: "xs"},
					{Binding: "y", Var: "y", Expr: "ys"},
				},
			},
		},
		{
			name: "predicate with semicolon in a string",
			args: `s => for s in names; if s != ";"`,
			expected: CollectSpec{
				Type:   "int",
				Result: "s",
				Loops: []Loop{
					{Binding: "s", Var: "s", Expr: "names"},
				},
				Predicate: `s != ";"`,
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := parseCollect("int", testCase.args)
			require.NoError(t, err)

			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestParseCollect_Errors(t *testing.T) {
	testCases := []struct {
		name string
		typ  string
		args string
		err  error
	}{
		{"missing type", "", "for x in xs", ErrMissingType},
		{"missing range", "int", "", ErrMissingRange},
		{"missing range expression", "int", "for x in ", ErrMissingRange},
		{"missing result", "int", "for x in xs, for y in ys", ErrMissingResult},
		{"blank binding without result", "int", "for _ in xs", ErrMissingResult},
		{"empty result", "int", " => for x in xs", ErrMissingResult},
		{"duplicate binding", "int", "x => for x in xs, for x in ys", ErrDuplicateBinding},
		{"missing for", "int", "x in xs", ErrMalformed},
		{"missing in", "int", "for x xs", ErrMalformed},
		{"invalid binding", "int", "for 1x in xs", ErrMalformed},
		{"open span", "int", "for x in 0..", ErrMalformed},
		{"predicate without if", "int", "for x in xs; x > 0", ErrMalformed},
		{"too many sections", "int", "for x in xs; if a; if b", ErrMalformed},
		{"list result", "int", "x * 2, y => for x in xs, for y in ys", ErrMalformed},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := parseCollect(testCase.typ, testCase.args)
			assert.ErrorIs(t, err, testCase.err)
		})
	}
}

func TestParseApply(t *testing.T) {
	actual, err := parseApply("halve; &a, &b, &c,", true)
	require.NoError(t, err)

	assert.Equal(t, ApplySpec{Func: "halve", Args: []string{"&a", "&b", "&c"}, Collect: true}, actual)
	assert.True(t, actual.usesSupport())
	assert.Equal(t, "apply_collect.tmpl", actual.template())

	actual, err = parseApply("fmt.Println; f(a, b)", false)
	require.NoError(t, err)

	assert.Equal(t, ApplySpec{Func: "fmt.Println", Args: []string{"f(a, b)"}}, actual)
	assert.False(t, actual.usesSupport())

	_, err = parseApply("f", false)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = parseApply("; a", false)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = parseApply("f; a,, b", false)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = parseApply("f; 1, 2, 3, 4, 5, 6, 7, 8, 9", true)
	assert.NoError(t, err)

	_, err = parseApply("f; 1, 2, 3, 4, 5, 6, 7, 8, 9, 10", false)
	assert.NoError(t, err)
}

func TestParseSelect(t *testing.T) {
	actual, err := parseSelect("string", `code(x) => {
		case 0 => "zero",
		case 1 => "one",
		case default => {
			return "big"
		},
	}`)
	require.NoError(t, err)

	assert.Equal(t, SelectSpec{
		Type:      "string",
		Scrutinee: "code(x)",
		Cases: []Case{
			{Pattern: "0", Body: Body{Text: `"zero"`}},
			{Pattern: "1", Body: Body{Text: `"one"`}},
			{Default: true, Body: Body{Text: "\t\t\treturn \"big\"", Block: true}},
		},
	}, actual)
}

func TestParseSelect_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args string
		err  error
	}{
		{"missing arrow", "x { case _ => f() }", ErrMalformed},
		{"missing scrutinee", " => { case _ => f() }", ErrMalformed},
		{"missing braces", "x => case _ => f()", ErrMalformed},
		{"text after cases", "x => { case _ => f() } g()", ErrMalformed},
		{"missing case keyword", "x => { 1 => f(), case _ => g() }", ErrMalformed},
		{"missing case arrow", "x => { case 1 f(), case _ => g() }", ErrMalformed},
		{"missing default", "x => { case 1 => f() }", ErrMissingDefault},
		{"no cases", "x => {}", ErrMissingDefault},
		{"multiple defaults", "x => { case _ => f(), case default => g() }", ErrMultipleDefaults},
		{"default not last", "x => { case _ => f(), case 1 => g() }", ErrDefaultNotLast},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := parseSelect("", testCase.args)
			assert.ErrorIs(t, err, testCase.err)
		})
	}
}

func TestParse_TypeArguments(t *testing.T) {
	_, err := parse(invocation{name: "select_if", typ: "", hasType: true, args: "ok => a, b"})
	assert.ErrorIs(t, err, ErrMissingType)

	_, err = parse(invocation{name: "repeat", typ: "int", hasType: true, args: "3 => f()"})
	assert.ErrorIs(t, err, ErrMalformed)

	c, err := parse(invocation{name: "select_if", args: "ok => a(), b()"})
	require.NoError(t, err)
	assert.Equal(t, TernarySpec{Cond: "ok", Then: Body{Text: "a()"}, Else: Body{Text: "b()"}}, c)

	c, err = parse(invocation{name: "or_default", args: "p, 7"})
	require.NoError(t, err)
	assert.Equal(t, OrDefaultSpec{Value: "p", Default: "7"}, c)

	c, err = parse(invocation{name: "repeat", args: "n * 2 => { tick() }"})
	require.NoError(t, err)
	assert.Equal(t, RepeatSpec{Count: "n * 2", Body: Body{Text: " tick()", Block: true}}, c)
}

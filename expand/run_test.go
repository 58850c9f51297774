package expand_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagikazarmark/flowx/expand"
)

const runSource = `package main

import "fmt"

var calls int

func next() int {
	calls++

	return 3
}

func halve(p *int) int {
	*p /= 2

	return *p
}

func add2(p *int) {
	*p += 2
}

func pick(n *int, v int) int {
	*n++

	return v
}

func lifo() {
	defer!(fmt.Println("first"))
	defer!(fmt.Println("second"))
	fmt.Println("body")
}

func main() {
	fmt.Println(collect![int](for x in 0..=10; if x%2 == 0 && x%3 == 0))

	a, b, c := 12, 122, -12
	fmt.Println(apply_collect!(halve; &a, &b, &c))
	apply!(add2; &a, &b, &c)
	fmt.Println(a, b, c)

	for _, d := range []int{0, 2, 5} {
		select!(true => {
			case d > 3 => fmt.Println(d, "big"),
			case d > 0 => fmt.Println(d, "positive"),
			case _ => fmt.Println(d, "other"),
		})
	}

	thenCalls, elseCalls := 0, 0
	v := select_if![int](a > 5 => pick(&thenCalls, 1), pick(&elseCalls, 2))
	fmt.Println(v, thenCalls, elseCalls)

	fmt.Println(collect![uint8](for b in uint8(250)..=255))

	spans := collect![int](for i in 0..next())
	fmt.Println(spans, calls)

	var p *int
	fmt.Println(or_default!(p, 7))

	repeat!(2 => fmt.Print("x"))
	fmt.Println()

	for i := range 2 {
		defer!(fmt.Println("cleanup", i))
		fmt.Println("body", i)
	}
	fmt.Println("after loop")

	lifo()
}
`

const runOutput = `[0 6]
{6 61 -6}
8 63 -4
0 other
2 positive
5 big
1 1 0
[250 251 252 253 254 255]
[0 1 2] 1
7
xx
body 0
cleanup 0
body 1
cleanup 1
after loop
body
second
first
`

func TestExpandSource_Run(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping go run in short mode")
	}

	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not found")
	}

	e := newExpander(t, expand.Options{})

	code, err := e.ExpandSource("main.gox", []byte(runSource))
	require.NoError(t, err)

	// Inside the module so the support package resolves through go.mod.
	dir, err := os.MkdirTemp(".", "_run")
	require.NoError(t, err)

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	file := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(file, code, 0o644))

	cmd := exec.Command(goBin, "run", file)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	assert.Equal(t, runOutput, string(output))
}

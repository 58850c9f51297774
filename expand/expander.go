package expand

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/tools/go/ast/astutil"
)

// DefaultSupportPackage provides the tuple constructors and pointer helpers
// referenced by expanded code.
const DefaultSupportPackage = "github.com/samber/lo"

// Options configures an [Expander].
type Options struct {
	// Fsys is the source tree, available to templates through readFileRange.
	Fsys fs.FS

	// TemplateDirs override built-in templates by file name, later directories winning.
	TemplateDirs []fs.FS

	// SupportPackage is the import path of the package providing T2..T9 and
	// FromPtrOr. Defaults to [DefaultSupportPackage].
	SupportPackage string
}

// Expander rewrites construct invocations into plain Go.
type Expander struct {
	tpl *template.Template

	supportPath string
	supportName string
}

// New returns an [Expander] configured by opts.
func New(opts Options) (*Expander, error) {
	tpl, err := createTemplate(opts.Fsys, opts.TemplateDirs)
	if err != nil {
		return nil, err
	}

	supportPath := opts.SupportPackage
	if supportPath == "" {
		supportPath = DefaultSupportPackage
	}

	return &Expander{
		tpl:         tpl,
		supportPath: supportPath,
		supportName: path.Base(supportPath),
	}, nil
}

// sourceFile resolves offsets of a source file to positions.
type sourceFile struct {
	name  string
	lines []int
}

func newSourceFile(name string, src string) *sourceFile {
	lines := []int{0}

	for i := range len(src) {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}

	return &sourceFile{name: name, lines: lines}
}

func (f *sourceFile) position(offset int) Position {
	line := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1

	return Position{
		Filename: f.name,
		Line:     line + 1,
		Column:   offset - f.lines[line] + 1,
	}
}

// expansion carries the state of expanding one file.
type expansion struct {
	file        *sourceFile
	usesSupport bool
	errs        []error

	// File offsets of the defer! invocations, by ID.
	defers []int
}

func (x *expansion) fail(construct string, offset int, err error) {
	var oerr *offsetError
	if errors.As(err, &oerr) {
		offset = oerr.offset
		err = oerr.err
	}

	x.errs = append(x.errs, &ShapeError{
		Construct: construct,
		Pos:       x.file.position(offset),
		Err:       err,
		offset:    offset,
	})
}

// ExpandSource expands every invocation in src and returns formatted Go source
// starting with a generated-code header.
//
// Construction errors are returned as [*ShapeError] values joined with
// [errors.Join]; no source is returned in that case.
func (e *Expander) ExpandSource(filename string, src []byte) ([]byte, error) {
	x := &expansion{file: newSourceFile(filename, string(src))}

	code := e.expand(x, string(src), 0)
	if len(x.errs) > 0 {
		return nil, errors.Join(x.errs...)
	}

	var header strings.Builder

	err := e.tpl.ExecuteTemplate(&header, "header.tmpl", headerData{Source: path.Base(filename)})
	if err != nil {
		return nil, fmt.Errorf("render header: %w", err)
	}

	code = strings.TrimSpace(header.String()) + "\n\n" + code

	return e.finish(x, filename, code)
}

// Check reports the construction errors of src without producing output.
func (e *Expander) Check(filename string, src []byte) error {
	_, err := e.ExpandSource(filename, src)

	return err
}

// expand rewrites the invocations of text, which starts at offset base of the
// file. Invocations nested in arguments are expanded first.
func (e *Expander) expand(x *expansion, text string, base int) string {
	invocations, errs := findInvocations(text)
	for _, err := range errs {
		x.fail("", base, rebase(err, base))
	}

	if len(invocations) == 0 {
		return text
	}

	var out strings.Builder

	last := 0

	for _, inv := range invocations {
		out.WriteString(text[last:inv.start])
		last = inv.end

		before := len(x.errs)

		inv.args = e.expand(x, inv.args, base+inv.argsStart)

		if len(x.errs) > before {
			out.WriteString(text[inv.start:inv.end])

			continue
		}

		code, err := e.expandInvocation(x, inv, base+inv.start)
		if err != nil {
			x.fail(inv.name, base+inv.start, err)
			out.WriteString(text[inv.start:inv.end])

			continue
		}

		out.WriteString(code)
	}

	out.WriteString(text[last:])

	return out.String()
}

func (e *Expander) expandInvocation(x *expansion, inv invocation, offset int) (string, error) {
	c, err := parse(inv)
	if err != nil {
		// Offsets inside the arguments no longer match the file once nested
		// invocations are rewritten; report at the invocation.
		var oerr *offsetError
		if errors.As(err, &oerr) {
			err = oerr.err
		}

		return "", err
	}

	switch spec := c.(type) {
	case ApplySpec:
		spec.Support = e.supportName
		c = spec
	case OrDefaultSpec:
		spec.Support = e.supportName
		c = spec
	case DeferSpec:
		spec.ID = len(x.defers)
		c = spec
	}

	code, err := render(e.tpl, c)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", c.template(), err)
	}

	if _, ok := c.(DeferSpec); ok {
		x.defers = append(x.defers, offset)
	}

	if c.usesSupport() {
		x.usesSupport = true
	}

	return code, nil
}

// finish parses the expanded code, binds every defer! to its block, adds the
// support import when needed and formats the result.
func (e *Expander) finish(x *expansion, filename string, code string) ([]byte, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, code, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse expanded source: %w", err)
	}

	if len(x.defers) > 0 {
		bindDefers(x, file)

		if len(x.errs) > 0 {
			return nil, errors.Join(x.errs...)
		}
	}

	if x.usesSupport {
		astutil.AddImport(fset, file, e.supportPath)
	}

	var buf bytes.Buffer

	err = format.Node(&buf, fset, file)
	if err != nil {
		return nil, fmt.Errorf("format expanded source: %w", err)
	}

	if len(x.defers) == 0 {
		return buf.Bytes(), nil
	}

	// Rewritten blocks carry synthetic positions; a second pass settles the layout.
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format expanded source: %w", err)
	}

	return out, nil
}

package expand

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
)

// deferMarker is the function rendered in place of defer until the enclosing
// block of each defer! is known.
const deferMarker = "flowxDefer"

// deferBinder binds every defer! to the block it appears in.
//
// At the top level of a function body a defer! is a plain Go defer. In a
// nested block (loop body, if branch, case clause, bare block) the rest of the
// block is moved into a closure so deferred actions run when the block ends.
type deferBinder struct {
	x *expansion
}

func bindDefers(x *expansion, file *ast.File) {
	b := deferBinder{x: x}

	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncDecl:
			if n.Body != nil {
				b.funcBody(n.Body)
			}

			return false

		case *ast.FuncLit:
			b.funcBody(n.Body)

			return false
		}

		return true
	})
}

func (b deferBinder) funcBody(body *ast.BlockStmt) {
	body.List = b.stmts(body.List, true)
}

// stmts binds the defers of a statement list. top reports whether the list is
// a function body.
func (b deferBinder) stmts(list []ast.Stmt, top bool) []ast.Stmt {
	for i, stmt := range list {
		id, lit, ok := deferMarkerOf(stmt)
		if !ok {
			b.nested(stmt)

			continue
		}

		if !top {
			rest := list[i:]

			if err := checkMovable(rest); err != nil {
				b.x.fail("defer", b.x.defers[id], err)
			} else {
				closure := &ast.FuncLit{
					Type: &ast.FuncType{Func: stmt.Pos(), Params: &ast.FieldList{}},
					Body: &ast.BlockStmt{
						Lbrace: stmt.Pos(),
						List:   rest,
						Rbrace: rest[len(rest)-1].End(),
					},
				}

				b.funcBody(closure.Body)

				return append(list[:i:i], &ast.ExprStmt{X: &ast.CallExpr{Fun: closure}})
			}
		}

		list[i] = &ast.DeferStmt{
			Defer: stmt.Pos(),
			Call:  &ast.CallExpr{Fun: lit, Lparen: lit.End(), Rparen: lit.End()},
		}

		b.funcBody(lit.Body)
	}

	return list
}

// nested binds the defers of the blocks and closures inside stmt.
func (b deferBinder) nested(stmt ast.Stmt) {
	ast.Inspect(stmt, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			b.funcBody(n.Body)

			return false

		case *ast.BlockStmt:
			n.List = b.stmts(n.List, false)

			return false

		case *ast.CaseClause:
			n.Body = b.stmts(n.Body, false)

			return false

		case *ast.CommClause:
			n.Body = b.stmts(n.Body, false)

			return false
		}

		return true
	})
}

// deferMarkerOf reports whether stmt is a rendered defer! and returns its ID
// and deferred function.
func deferMarkerOf(stmt ast.Stmt) (int, *ast.FuncLit, bool) {
	d, ok := stmt.(*ast.DeferStmt)
	if !ok {
		return 0, nil, false
	}

	fn, ok := d.Call.Fun.(*ast.Ident)
	if !ok || fn.Name != deferMarker || len(d.Call.Args) != 2 {
		return 0, nil, false
	}

	idLit, ok := d.Call.Args[0].(*ast.BasicLit)
	if !ok || idLit.Kind != token.INT {
		return 0, nil, false
	}

	id, err := strconv.Atoi(idLit.Value)
	if err != nil {
		return 0, nil, false
	}

	lit, ok := d.Call.Args[1].(*ast.FuncLit)
	if !ok {
		return 0, nil, false
	}

	return id, lit, true
}

// checkMovable reports whether stmts can run in a closure without changing
// the control flow: no return and no jump leaving the statements.
func checkMovable(stmts []ast.Stmt) error {
	labels := map[string]bool{}

	for _, stmt := range stmts {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FuncLit:
				return false
			case *ast.LabeledStmt:
				labels[n.Label.Name] = true
			}

			return true
		})
	}

	var err error

	for _, stmt := range stmts {
		ast.Walk(&jumpFinder{labels: labels, err: &err}, stmt)

		if err != nil {
			return err
		}
	}

	return nil
}

// jumpFinder looks for statements leaving the walked code.
type jumpFinder struct {
	labels map[string]bool

	// Enclosing statements within the walked code.
	loop     bool
	switched bool

	err *error
}

func (f *jumpFinder) Visit(n ast.Node) ast.Visitor {
	if *f.err != nil {
		return nil
	}

	switch n := n.(type) {
	case *ast.FuncLit:
		return nil

	case *ast.ReturnStmt:
		*f.err = fmt.Errorf("%w: the rest of the block returns; use flowx.Scope", ErrDeferScope)

		return nil

	case *ast.BranchStmt:
		if !f.stays(n) {
			*f.err = fmt.Errorf("%w: %s leaves the block; use flowx.Scope", ErrDeferScope, n.Tok)
		}

		return nil

	case *ast.ForStmt, *ast.RangeStmt:
		return &jumpFinder{labels: f.labels, loop: true, switched: f.switched, err: f.err}

	case *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		return &jumpFinder{labels: f.labels, loop: f.loop, switched: true, err: f.err}
	}

	return f
}

func (f *jumpFinder) stays(n *ast.BranchStmt) bool {
	switch n.Tok {
	case token.GOTO:
		return false
	case token.FALLTHROUGH:
		return f.switched
	}

	if n.Label != nil {
		return f.labels[n.Label.Name]
	}

	if n.Tok == token.CONTINUE {
		return f.loop
	}

	return f.loop || f.switched
}

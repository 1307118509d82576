package parse

import (
	"bytes"
	"testing"

	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func parseModule(t *testing.T, src string) (*cst.Module, *diag.Emitter) {
	t.Helper()

	emit := diag.New(&bytes.Buffer{})
	emit.SetExitOnFatal(false)
	file := source.NewFile("test.sunder", []byte(src))
	intern := interner.New()

	l := lex.New(file, intern, emit)
	p := New(file, l, intern, emit)

	return p.ParseModule("test"), emit
}

func TestParseNamespaceAndImports(t *testing.T) {
	mod, emit := parseModule(t, `
		namespace app::models;
		import "util.sunder";
	`)

	assert.False(t, emit.Errored())
	assert.Equal(t, []string{"app", "models"}, mod.Namespace)
	assert.Equal(t, 1, len(mod.Imports))
	assert.Equal(t, "util.sunder", mod.Imports[0].Path)
}

func TestParseConstDecl(t *testing.T) {
	mod, emit := parseModule(t, `let answer: s32 = 42;`)

	assert.False(t, emit.Errored())
	assert.Equal(t, 1, len(mod.Decls))

	decl, ok := mod.Decls[0].(*cst.ConstDecl)
	assert.True(t, ok, "expected a ConstDecl")
	assert.Equal(t, "answer", decl.Name)

	lit, ok := decl.Init.(*cst.IntLitExpr)
	assert.True(t, ok, "expected an IntLitExpr initializer")
	assert.Equal(t, int64(42), lit.Value.Int64())
}

func TestParseStructDecl(t *testing.T) {
	mod, emit := parseModule(t, `
		struct Point {
			var x: s32;
			var y: s32;
		}
	`)

	assert.False(t, emit.Errored())

	decl, ok := mod.Decls[0].(*cst.StructDecl)
	assert.True(t, ok, "expected a StructDecl")
	assert.Equal(t, "Point", decl.Name)
	assert.Equal(t, 2, len(decl.Members))
	assert.Equal(t, "x", decl.Members[0].Name)
	assert.Equal(t, "y", decl.Members[1].Name)
}

func TestParseFuncDecl(t *testing.T) {
	mod, emit := parseModule(t, `
		func add(a: s32, b: s32) s32 {
			return a + b;
		}
	`)

	assert.False(t, emit.Errored())

	decl, ok := mod.Decls[0].(*cst.FuncDecl)
	assert.True(t, ok, "expected a FuncDecl")
	assert.Equal(t, "add", decl.Name)
	assert.Equal(t, 2, len(decl.Params))
	assert.True(t, decl.Body != nil, "expected a function body")
}

func TestParseExprPrecedenceProductBeforeSum(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3): product binds tighter than sum.
	mod, emit := parseModule(t, `let x: s32 = 1 + 2 * 3;`)

	assert.False(t, emit.Errored())

	decl := mod.Decls[0].(*cst.ConstDecl)
	top, ok := decl.Init.(*cst.BinaryExpr)
	assert.True(t, ok, "expected the top-level expr to be a BinaryExpr")
	assert.Equal(t, lex.Plus, top.Op)

	_, leftIsLit := top.Left.(*cst.IntLitExpr)
	assert.True(t, leftIsLit, "expected the left operand to be the literal 1")

	right, ok := top.Right.(*cst.BinaryExpr)
	assert.True(t, ok, "expected the right operand to be the nested product")
	assert.Equal(t, lex.Star, right.Op)
}

func TestParseCallExpr(t *testing.T) {
	mod, emit := parseModule(t, `let x: s32 = add(1, 2);`)

	assert.False(t, emit.Errored())

	decl := mod.Decls[0].(*cst.ConstDecl)
	call, ok := decl.Init.(*cst.CallExpr)
	assert.True(t, ok, "expected a CallExpr")
	assert.Equal(t, 2, len(call.Args))
}

func TestParsePointerTypeExpr(t *testing.T) {
	mod, emit := parseModule(t, `
		struct Node {
			var next: *Node;
		}
	`)

	assert.False(t, emit.Errored())

	decl := mod.Decls[0].(*cst.StructDecl)
	_, ok := decl.Members[0].Type.(*cst.PointerTypeExpr)
	assert.True(t, ok, "expected the member type to be a PointerTypeExpr")
}

func TestParseMissingSemicolonIsFatal(t *testing.T) {
	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		parseModule(t, `let x: s32 = 1`)
	}()

	assert.True(t, fatal != nil, "expected a missing semicolon to be fatal")
}

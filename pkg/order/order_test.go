package order

import (
	"bytes"
	"testing"

	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

var intern = interner.New()

// symbolRef builds a bare, scope-relative single-element symbol naming decl
// name, the only shape collectSymbol treats as a module-local dependency.
func symbolRef(name string) *cst.Symbol {
	return &cst.Symbol{
		Origin:   cst.OriginNone,
		Elements: []cst.SymbolElement{{Name: intern.InternString(name)}},
	}
}

func namedType(name string) cst.TypeExpr {
	return &cst.NamedTypeExpr{Name: symbolRef(name)}
}

func newOrderer() (*Orderer, *diag.Emitter) {
	emit := diag.New(&bytes.Buffer{})
	emit.SetExitOnFatal(false)
	file := source.NewFile("test.sunder", nil)

	return New(emit, file), emit
}

func declNames(decls []cst.Decl) []string {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.DeclName()
	}

	return names
}

func TestOrderRespectsTypeDependency(t *testing.T) {
	// struct B { var a: A; } declared before struct A { var x: u8; } must be
	// reordered so A comes first.
	a := &cst.StructDecl{Name: "A", Members: []cst.StructMemberExpr{
		{Name: "x", Type: namedType("u8")},
	}}
	b := &cst.StructDecl{Name: "B", Members: []cst.StructMemberExpr{
		{Name: "a", Type: namedType("A")},
	}}

	o, _ := newOrderer()
	out := o.Order([]cst.Decl{b, a})

	assert.Equal(t, []string{"A", "B"}, declNames(out))
}

func TestOrderPreservesIndependentSourceOrder(t *testing.T) {
	a := &cst.ConstDecl{Name: "a", Init: nil}
	b := &cst.ConstDecl{Name: "b", Init: nil}

	o, _ := newOrderer()
	out := o.Order([]cst.Decl{a, b})

	assert.Equal(t, []string{"a", "b"}, declNames(out))
}

func TestOrderPointerSelfReferenceDoesNotCycle(t *testing.T) {
	// struct Node { var next: *Node; } must not be treated as depending on
	// itself, since a pointer member never forces ordering (spec.md section
	// 4.3's linked-structure carve-out).
	node := &cst.StructDecl{Name: "Node", Members: []cst.StructMemberExpr{
		{Name: "next", Type: &cst.PointerTypeExpr{Base: namedType("Node")}},
	}}

	o, _ := newOrderer()
	out := o.Order([]cst.Decl{node})

	assert.Equal(t, 1, len(out))
	assert.Equal(t, "Node", out[0].DeclName())
}

func TestOrderExtendsFollowNonExtend(t *testing.T) {
	ext := &cst.ExtendDecl{
		Target: namedType("A"),
		Inner:  &cst.FuncDecl{Name: "method"},
	}
	a := &cst.StructDecl{Name: "A"}

	o, _ := newOrderer()
	out := o.Order([]cst.Decl{ext, a})

	assert.Equal(t, []string{"A", "method"}, declNames(out))
}

func TestOrderDirectCycleIsFatal(t *testing.T) {
	// struct A { var b: B; } and struct B { var a: A; } depend on each
	// other directly with no pointer indirection: a genuine cycle.
	a := &cst.StructDecl{Name: "A", Members: []cst.StructMemberExpr{
		{Name: "b", Type: namedType("B")},
	}}
	b := &cst.StructDecl{Name: "B", Members: []cst.StructMemberExpr{
		{Name: "a", Type: namedType("A")},
	}}

	o, emit := newOrderer()

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		o.Order([]cst.Decl{a, b})
	}()

	assert.True(t, fatal != nil, "expected Order to raise a fatal diagnostic on a cycle")
	assert.True(t, emit.Errored(), "expected the emitter to record the fatal diagnostic")
}

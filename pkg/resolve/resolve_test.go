package resolve

import (
	"bytes"
	"testing"

	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/order"
	"github.com/ashn-dot-dev/sunder/pkg/parse"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

// newGlobal builds a root symbol table pre-bound with every builtin
// primitive type, mirroring pkg/compiler.Context.bindBuiltins without
// depending on that package (which itself depends on this one).
func newGlobal(intern *interner.Table, reg *types.Registry) *symbol.Table {
	g := symbol.NewTable(nil)

	for _, t := range []*types.Type{
		reg.Any, reg.VoidT, reg.BoolT, reg.ByteT,
		reg.S8, reg.S16, reg.S32, reg.S64, reg.SSizeT,
		reg.U8, reg.U16, reg.U32, reg.U64, reg.USizeT,
		reg.IntegerT, reg.F32T, reg.F64T, reg.RealT,
	} {
		name := intern.InternString(t.Name())
		g.Insert(name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Type: t})
	}

	return g
}

// resolveSource runs the full Lex -> Parse -> Order -> Resolve pipeline over
// src and returns the resolver, its module-level scope, and the diagnostic
// emitter, so a test can assert on installed symbols or on a fatal
// diagnostic having fired.
func resolveSource(t *testing.T, src string) (*Resolver, *symbol.Table, *diag.Emitter) {
	t.Helper()

	intern := interner.New()
	reg := types.NewRegistry(types.AMD64)
	emit := diag.New(&bytes.Buffer{})
	emit.SetExitOnFatal(false)
	file := source.NewFile("test.sunder", []byte(src))

	l := lex.New(file, intern, emit)
	p := parse.New(file, l, intern, emit)
	mod := p.ParseModule("test")

	ordered := order.New(emit, file).Order(mod.Decls)

	global := newGlobal(intern, reg)
	module := symbol.NewTable(global)

	r := New(intern, reg, emit, file, global, module)
	r.ResolveModule(ordered)

	return r, module, emit
}

func lookup(t *testing.T, scope *symbol.Table, r *Resolver, name string) *symbol.Symbol {
	t.Helper()

	entry := r.Intern.InternString(name)
	sym, ok := scope.LookupLocal(entry)
	assert.True(t, ok, "expected %q to be installed", name)

	return sym
}

func TestResolveInstallsConstAndVar(t *testing.T) {
	r, module, emit := resolveSource(t, `
		let answer: s32 = 42;
		var counter: u8 = 0;
	`)

	assert.False(t, emit.Errored())

	answer := lookup(t, module, r, "answer")
	assert.Equal(t, symbol.KindConst, answer.Kind)
	assert.Equal(t, "s32", answer.Object.Type.Name())

	counter := lookup(t, module, r, "counter")
	assert.Equal(t, symbol.KindVar, counter.Kind)
	assert.Equal(t, "u8", counter.Object.Type.Name())
}

func TestResolveStructSelfReferenceThroughPointer(t *testing.T) {
	r, module, emit := resolveSource(t, `
		struct Node {
			var value: s32;
			var next: *Node;
		}
	`)

	assert.False(t, emit.Errored())

	node := lookup(t, module, r, "Node")
	assert.Equal(t, symbol.KindType, node.Kind)
	assert.Equal(t, types.Struct, node.Type.Kind)
}

func TestResolveFunctionForwardReference(t *testing.T) {
	// `first` calls `second`, declared later in the file; spec.md section
	// 4.4 requires this be legal since bodies resolve only after every
	// module-level symbol is installed.
	r, module, emit := resolveSource(t, `
		func first() s32 {
			return second();
		}

		func second() s32 {
			return 1;
		}
	`)

	assert.False(t, emit.Errored())

	first := lookup(t, module, r, "first")
	assert.Equal(t, symbol.KindFunc, first.Kind)
}

func TestResolveRedeclarationIsFatal(t *testing.T) {
	var fatal *diag.FatalError

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				fe, ok := rec.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		resolveSource(t, `
			let x: s32 = 1;
			let x: s32 = 2;
		`)
	}()

	assert.True(t, fatal != nil, "expected redeclaration of x to be fatal")
}

func TestResolveCastRejectsCrossKindPair(t *testing.T) {
	var fatal *diag.FatalError

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				fe, ok := rec.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		resolveSource(t, `
			struct Point {
				var x: s32;
				var y: s32;
			}

			func f(p: Point) {
				let bad: *s32 = (:*s32) p;
			}
		`)
	}()

	assert.True(t, fatal != nil, "expected a struct-to-pointer cast to be rejected at resolution")
}

func TestResolveCastAllowsIntegerToFloat(t *testing.T) {
	_, _, emit := resolveSource(t, `
		let x: f32 = (:f32) 3;
	`)

	assert.False(t, emit.Errored())
}

func TestResolveCastAllowsPointerReinterpret(t *testing.T) {
	_, _, emit := resolveSource(t, `
		func f(p: *s32) {
			var q: *u8 = (:*u8) p;
		}
	`)

	assert.False(t, emit.Errored())
}

func TestResolveArraySizeOverflowIsFatal(t *testing.T) {
	var fatal *diag.FatalError

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				fe, ok := rec.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		// SIZEOF_MAX on amd64 is 2^63-1; base-size 8 (u64) puts the overflow
		// boundary at count == 2^63/8, one past the largest legal count.
		resolveSource(t, `
			var huge: [1152921504606846976]u64;
		`)
	}()

	assert.True(t, fatal != nil, "expected the array size to overflow SIZEOF_MAX")
}

func TestResolveArraySizeAtBoundaryIsNotFatal(t *testing.T) {
	_, _, emit := resolveSource(t, `
		var ok: [1152921504606846975]u64;
	`)

	assert.False(t, emit.Errored())
}

func TestResolveUndeclaredTypeIsFatal(t *testing.T) {
	var fatal *diag.FatalError

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				fe, ok := rec.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		resolveSource(t, `
			let x: DoesNotExist = 1;
		`)
	}()

	assert.True(t, fatal != nil, "expected an undeclared type reference to be fatal")
}

package eval

import (
	"bytes"
	"testing"

	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
	"github.com/ashn-dot-dev/sunder/pkg/value"
)

func pointerValue(t *types.Type, addr symbol.Address) *value.Value {
	return value.NewPointer(t, addr)
}

func newEvaluator() (*Evaluator, *types.Registry, *diag.Emitter) {
	emit := diag.New(&bytes.Buffer{})
	emit.SetExitOnFatal(false)
	reg := types.NewRegistry(types.AMD64)
	file := source.NewFile("test.sunder", nil)

	return New(reg, emit, file), reg, emit
}

func intLit(t *types.Type, n int64) *tast.IntLit {
	lit := &tast.IntLit{Value: bigint.FromInt64(n)}
	lit.TypeV = t

	return lit
}

func binary(t *types.Type, op lex.Kind, left, right tast.Expr) *tast.Binary {
	b := &tast.Binary{Op: op, Left: left, Right: right}
	b.TypeV = t

	return b
}

func TestEvalCheckedAddOverflows(t *testing.T) {
	e, reg, emit := newEvaluator()

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		expr := binary(reg.U8, lex.Plus, intLit(reg.U8, 250), intLit(reg.U8, 10))
		e.Eval(expr)
	}()

	assert.True(t, fatal != nil, "expected u8(250) + u8(10) to overflow")
	assert.True(t, emit.Errored(), "expected the overflow to be reported through the emitter")
}

func TestEvalWrappingAddDoesNotOverflow(t *testing.T) {
	e, reg, _ := newEvaluator()

	expr := binary(reg.U8, lex.PlusWrap, intLit(reg.U8, 250), intLit(reg.U8, 10))
	v := e.Eval(expr)

	assert.True(t, v != nil, "wrapping add should never raise a diagnostic")
	assert.Equal(t, int64(4), v.AsBigInt().Int64())
}

func TestEvalCheckedAddInRange(t *testing.T) {
	e, reg, _ := newEvaluator()

	expr := binary(reg.S32, lex.Plus, intLit(reg.S32, 2), intLit(reg.S32, 3))
	v := e.Eval(expr)

	assert.True(t, v != nil, "2 + 3 should not overflow s32")
	assert.Equal(t, int64(5), v.AsBigInt().Int64())
}

func TestEvalDivisionByZeroIsFatal(t *testing.T) {
	e, reg, emit := newEvaluator()

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		expr := binary(reg.S32, lex.Slash, intLit(reg.S32, 1), intLit(reg.S32, 0))
		e.Eval(expr)
	}()

	assert.True(t, fatal != nil, "expected division by zero to be fatal")
	assert.True(t, emit.Errored(), "expected the division-by-zero to be reported")
}

func TestEvalBitwiseAnd(t *testing.T) {
	e, reg, _ := newEvaluator()

	expr := binary(reg.U8, lex.Amp, intLit(reg.U8, 0b1100), intLit(reg.U8, 0b1010))
	v := e.Eval(expr)

	assert.Equal(t, int64(0b1000), v.AsBigInt().Int64())
}

func TestEvalPointerEqualityComparesAddress(t *testing.T) {
	e, reg, _ := newEvaluator()

	ptrType := reg.Pointer(reg.S32)
	addr := symbol.Address{Kind: symbol.AddrStatic, StaticLabel: "x"}

	// Build the comparison directly over values rather than through
	// evalSymbol, since pointer values are constructed by address-of and
	// not modeled as a literal tast node.
	lv := pointerValue(ptrType, addr)
	rv := pointerValue(ptrType, addr)

	b := &tast.Binary{Op: lex.EqEq}
	b.TypeV = reg.BoolT

	result := e.evalPointerCompare(b, reg.BoolT, lv, rv)

	assert.True(t, result.Bool, "expected equal addresses to compare equal")
}

func TestEvalPointerOrderingIsRejected(t *testing.T) {
	e, reg, emit := newEvaluator()

	ptrType := reg.Pointer(reg.S32)
	a := pointerValue(ptrType, symbol.Address{Kind: symbol.AddrStatic, StaticLabel: "a"})
	b := pointerValue(ptrType, symbol.Address{Kind: symbol.AddrStatic, StaticLabel: "b"})

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		bin := &tast.Binary{Op: lex.Lt}
		bin.TypeV = reg.BoolT
		e.evalPointerCompare(bin, reg.BoolT, a, b)
	}()

	assert.True(t, fatal != nil, "expected pointer ordering comparison to be rejected")
	assert.True(t, emit.Errored(), "expected the rejection to be reported")
}

func TestEvalCallIsRejected(t *testing.T) {
	e, reg, emit := newEvaluator()

	call := &tast.Call{Callee: intLit(reg.S32, 0)}
	call.TypeV = reg.S32

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		e.Eval(call)
	}()

	assert.True(t, fatal != nil, "expected a function call to be rejected at compile time")
	assert.True(t, emit.Errored(), "expected the rejection to be reported")
}

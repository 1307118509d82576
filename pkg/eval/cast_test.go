package eval

import (
	"math"
	"testing"

	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func cast(t *types.Type, inner tast.Expr) *tast.Cast {
	c := &tast.Cast{Inner: inner}
	c.TypeV = t

	return c
}

func floatLit(t *types.Type, f float64) *tast.FloatLit {
	lit := &tast.FloatLit{Value: f}
	lit.TypeV = t

	return lit
}

func expectFatal(t *testing.T, emit *diag.Emitter, fn func()) {
	t.Helper()

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		fn()
	}()

	assert.True(t, fatal != nil, "expected the cast to be fatal")
	assert.True(t, emit.Errored(), "expected the rejection to be reported")
}

func TestEvalCastLiteralInRangeProducesExactValue(t *testing.T) {
	e, reg, _ := newEvaluator()

	v := e.Eval(cast(reg.U8, intLit(reg.IntegerT, 255)))

	assert.True(t, v != nil, "255 should fit in u8")
	assert.Equal(t, int64(255), v.AsBigInt().Int64())
}

func TestEvalCastUnsignedLiteralOutOfRangeIsFatal(t *testing.T) {
	e, reg, emit := newEvaluator()

	expectFatal(t, emit, func() {
		e.Eval(cast(reg.U8, intLit(reg.IntegerT, 256)))
	})
}

func TestEvalCastSignedLiteralOutOfRangeIsFatal(t *testing.T) {
	e, reg, emit := newEvaluator()

	expectFatal(t, emit, func() {
		e.Eval(cast(reg.S8, intLit(reg.IntegerT, -129)))
	})
}

func TestEvalCastSizedSourceNarrowsByWrapping(t *testing.T) {
	e, reg, _ := newEvaluator()

	// Unlike an unsized literal, a value already typed s32 narrows to s8 by
	// two's-complement truncation rather than range-checking.
	v := e.Eval(cast(reg.S8, intLit(reg.S32, 300)))

	assert.True(t, v != nil, "narrowing a sized source should not be fatal")
	assert.Equal(t, int64(44), v.AsBigInt().Int64())
}

func TestEvalCastIntToFloatExactBoundary(t *testing.T) {
	e, reg, _ := newEvaluator()

	v := e.Eval(cast(reg.F32T, intLit(reg.IntegerT, 1<<24)))

	assert.True(t, v != nil, "2^24 is exactly representable in f32")
	assert.Equal(t, float64(1<<24), float64(v.F32))
}

func TestEvalCastIntToFloatBeyondExactBoundaryIsFatal(t *testing.T) {
	e, reg, emit := newEvaluator()

	expectFatal(t, emit, func() {
		e.Eval(cast(reg.F32T, intLit(reg.IntegerT, 1<<24+1)))
	})
}

func TestEvalCastIntToF64ExactBoundary(t *testing.T) {
	e, reg, _ := newEvaluator()

	v := e.Eval(cast(reg.F64T, intLit(reg.IntegerT, 1<<53)))

	assert.True(t, v != nil, "2^53 is exactly representable in f64")
	assert.Equal(t, float64(1<<53), v.F64)
}

func TestEvalCastFloatToIntTruncatesAndRangeChecks(t *testing.T) {
	e, reg, _ := newEvaluator()

	v := e.Eval(cast(reg.S32, floatLit(reg.F64T, 3.9)))

	assert.True(t, v != nil, "3.9 should truncate and fit s32")
	assert.Equal(t, int64(3), v.AsBigInt().Int64())
}

func TestEvalCastFloatToIntOutOfRangeIsFatal(t *testing.T) {
	e, reg, emit := newEvaluator()

	expectFatal(t, emit, func() {
		e.Eval(cast(reg.U8, floatLit(reg.F64T, 1000.0)))
	})
}

func TestEvalCastNaNToIntIsFatal(t *testing.T) {
	e, reg, emit := newEvaluator()

	expectFatal(t, emit, func() {
		e.Eval(cast(reg.S32, floatLit(reg.F64T, math.NaN())))
	})
}

func TestEvalCastInfToIntIsFatal(t *testing.T) {
	e, reg, emit := newEvaluator()

	expectFatal(t, emit, func() {
		e.Eval(cast(reg.S32, floatLit(reg.F64T, math.Inf(1))))
	})
}

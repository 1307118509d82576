package eval

import (
	"math"

	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/bitarr"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/value"
)

// checkedInt applies an integer operation and raises a fatal diagnostic if
// the result falls outside the destination type's range, the "error-raising"
// half of spec.md section 4.5's `+ - * /` family (as opposed to the
// wrapping `+% -% *%` family, which never fails).
func (e *Evaluator) checkedInt(span tast.Expr, t *types.Type, result *bigint.Int) *value.Value {
	if t.IsSized() && !e.fits(t, result) {
		e.fatal(span.Span(), "integer overflow: %s does not fit in %s", result.String(), t.String())

		return nil
	}

	return value.NewInt(t, result)
}

func (e *Evaluator) fits(t *types.Type, v *bigint.Int) bool {
	if t.IsSignedInteger() {
		return v.FitsSigned(t.BitWidth())
	}

	return v.FitsUnsigned(t.BitWidth())
}

func (e *Evaluator) wrapInt(t *types.Type, v *bigint.Int) *value.Value {
	if !t.IsSized() {
		return value.NewInt(t, v)
	}

	if t.IsSignedInteger() {
		return value.NewInt(t, v.WrapSigned(t.BitWidth()))
	}

	return value.NewInt(t, v.WrapUnsigned(t.BitWidth()))
}

func (e *Evaluator) fromBits(t *types.Type, b *bitarr.BitArr) *value.Value {
	if t.IsSignedInteger() {
		return value.NewInt(t, bigint.FromBitArrSigned(b))
	}

	return value.NewInt(t, bigint.FromBitArrUnsigned(b))
}

func (e *Evaluator) evalCast(ex *tast.Cast) *value.Value {
	inner := e.Eval(ex.Inner)
	if inner == nil {
		return nil
	}

	dst := ex.Type()

	switch {
	case dst.IsInteger() || dst.Kind == types.Enum:
		return e.evalToInt(ex, dst, inner)

	case dst.Kind == types.Byte:
		v := inner.AsBigInt()
		if v == nil {
			v = bigint.Zero()
		}

		return value.NewByte(dst, byte(v.WrapUnsigned(8).Int64()))

	case dst.IsFloat():
		return e.evalToFloat(ex, dst, inner)

	case dst.Kind == types.Bool:
		v := inner.AsBigInt()

		return value.NewBool(dst, v != nil && v.Sign() != 0)

	case dst.Kind == types.Pointer:
		return value.NewPointer(dst, inner.Addr)

	default:
		return e.fatal(ex.Span(), "unsupported cast to %s", dst.String())
	}
}

// evalToInt implements the integer/enum destination half of a cast (spec.md
// section 4.5, section 8's exactness property). A genuinely sized source
// (an s32 narrowing to s8, an enum reinterpreted as its underlying type)
// keeps the existing two's-complement wrap/truncate behavior. Every other
// source -- an unsized `integer` literal, a float, or a bool -- must produce
// the exact value or the cast is fatal; silently truncating one of those is
// never acceptable (spec.md section 8).
func (e *Evaluator) evalToInt(ex *tast.Cast, dst *types.Type, inner *value.Value) *value.Value {
	base := dst
	if dst.Kind == types.Enum {
		base = dst.Underlying
	}

	if inner.Type.IsFloat() {
		v, ok := e.floatToExactInt(ex, inner)
		if !ok {
			return nil
		}

		return e.intoIntDest(ex, dst, base, v)
	}

	if inner.Type.Kind == types.Bool {
		v := bigint.FromInt64(0)
		if inner.Bool {
			v = bigint.FromInt64(1)
		}

		return e.intoIntDest(ex, dst, base, v)
	}

	v := inner.AsBigInt()
	if v == nil {
		v = bigint.Zero()
	}

	if inner.Type.IsSized() {
		return e.wrapIntDest(dst, base, v)
	}

	return e.intoIntDest(ex, dst, base, v)
}

func (e *Evaluator) wrapIntDest(dst, base *types.Type, v *bigint.Int) *value.Value {
	if !base.IsSized() {
		return value.NewInt(dst, v)
	}

	if base.IsSignedInteger() {
		return value.NewInt(dst, v.WrapSigned(base.BitWidth()))
	}

	return value.NewInt(dst, v.WrapUnsigned(base.BitWidth()))
}

// intoIntDest range-checks v against base's bounds rather than wrapping it,
// raising a fatal "out-of-range conversion" diagnostic on overflow (spec.md
// section 8, matching the original compiler's eval.c wording).
func (e *Evaluator) intoIntDest(ex *tast.Cast, dst, base *types.Type, v *bigint.Int) *value.Value {
	if !base.IsSized() {
		return value.NewInt(dst, v)
	}

	if !e.fits(base, v) {
		return e.fatal(ex.Span(), "out-of-range conversion from %s to %s", v.String(), dst.String())
	}

	return value.NewInt(dst, v)
}

// floatToExactInt truncates a float source toward zero for a float-to-
// integer cast, raising a fatal diagnostic if the source is not finite
// (spec.md section 4.5 requires the source be finite before truncation).
func (e *Evaluator) floatToExactInt(ex *tast.Cast, inner *value.Value) (*bigint.Int, bool) {
	f := e.floatOf(inner)

	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.fatal(ex.Span(), "cannot convert non-finite %s value to %s", inner.Type.String(), ex.Type().String())

		return nil, false
	}

	return bigint.FromFloat64(f), true
}

// evalToFloat implements the float destination half of a cast (spec.md
// section 4.5/8): an integer-ish source (sized, unsized, byte, bool, or
// enum) must be exactly representable in the destination's mantissa --
// +-2^24 for f32, +-2^53 for f64 and the f64-backed `real` type -- or the
// cast is fatal rather than silently losing precision.
func (e *Evaluator) evalToFloat(ex *tast.Cast, dst *types.Type, inner *value.Value) *value.Value {
	if v := inner.AsBigInt(); v != nil {
		if limit := floatExactLimit(dst.Kind); limit != nil && v.Abs().Cmp(limit) > 0 {
			return e.fatal(ex.Span(), "out-of-range conversion from %s to %s: value is not exactly representable", inner.Type.String(), dst.String())
		}
	}

	f := e.floatOf(inner)

	switch dst.Kind {
	case types.F32:
		return value.NewF32(dst, float32(f))
	case types.F64:
		return value.NewF64(dst, f)
	default:
		return value.NewReal(dst, f)
	}
}

func floatExactLimit(k types.Kind) *bigint.Int {
	switch k {
	case types.F32:
		return bigint.Pow2(24)
	case types.F64, types.Real:
		return bigint.Pow2(53)
	default:
		return nil
	}
}

// floatOf extracts a float64 view of v regardless of its concrete kind. A
// big-integer source is routed through Int64, which is exact for every value
// that survived a prior range check and merely approximate for huge unsized
// `integer` constants -- compile-time folding of such a value into a float
// is already a lossy operation by definition (spec.md section 4.5).
func (e *Evaluator) floatOf(v *value.Value) float64 {
	switch v.Type.Kind {
	case types.F32:
		return float64(v.F32)
	case types.F64:
		return v.F64
	case types.Real:
		return v.Real
	default:
		if bi := v.AsBigInt(); bi != nil {
			return float64(bi.Int64())
		}

		return 0
	}
}

func (e *Evaluator) evalUnary(ex *tast.Unary) *value.Value {
	if ex.Op == lex.Amp {
		return e.evalAddressOf(ex)
	}

	inner := e.Eval(ex.Inner)
	if inner == nil {
		return nil
	}

	t := ex.Type()

	switch ex.Op {
	case lex.Not:
		return value.NewBool(t, !inner.Bool)
	case lex.Minus:
		if t.IsFloat() {
			return e.floatResult(t, -e.floatOf(inner))
		}

		return e.checkedInt(ex, t, inner.AsBigInt().Neg())
	case lex.MinusWrap:
		return e.wrapInt(t, inner.AsBigInt().Neg())
	case lex.Tilde:
		width := t.BitWidth()

		return e.fromBits(t, inner.AsBigInt().ToBitArr(width).Not())
	case lex.Star:
		return e.fatal(ex.Span(), "pointer dereference is not supported in compile-time expressions")
	default:
		return e.fatal(ex.Span(), "unsupported unary operator %s", ex.Op.String())
	}
}

func (e *Evaluator) evalAddressOf(ex *tast.Unary) *value.Value {
	if !ex.Inner.IsLvalue() {
		return e.fatal(ex.Span(), "cannot take the address of a non-lvalue expression")
	}

	sym, ok := ex.Inner.(*tast.SymbolExpr)
	if !ok {
		return e.fatal(ex.Span(), "address-of is only supported on a plain symbol in compile-time expressions")
	}

	return value.NewPointer(ex.Type(), sym.Sym.Object.Addr)
}

func (e *Evaluator) floatResult(t *types.Type, f float64) *value.Value {
	switch t.Kind {
	case types.F32:
		return value.NewF32(t, float32(f))
	case types.F64:
		return value.NewF64(t, f)
	default:
		return value.NewReal(t, f)
	}
}

func (e *Evaluator) evalBinary(ex *tast.Binary) *value.Value {
	// `or`/`and` short-circuit: the right operand is only evaluated when
	// necessary (spec.md section 4.5).
	if ex.Op == lex.Or || ex.Op == lex.And {
		left := e.Eval(ex.Left)
		if left == nil {
			return nil
		}

		if ex.Op == lex.Or && left.Bool {
			return value.NewBool(ex.Type(), true)
		}

		if ex.Op == lex.And && !left.Bool {
			return value.NewBool(ex.Type(), false)
		}

		right := e.Eval(ex.Right)
		if right == nil {
			return nil
		}

		return value.NewBool(ex.Type(), right.Bool)
	}

	left := e.Eval(ex.Left)
	right := e.Eval(ex.Right)

	if left == nil || right == nil {
		return nil
	}

	switch ex.Op {
	case lex.EqEq, lex.NotEq, lex.Lt, lex.LtEq, lex.Gt, lex.GtEq:
		return e.evalCompare(ex, left, right)
	}

	t := ex.Type()

	if left.Type.IsFloat() {
		return e.evalFloatBinary(ex, left, right)
	}

	a, b := left.AsBigInt(), right.AsBigInt()

	switch ex.Op {
	case lex.Plus:
		return e.checkedInt(ex, t, a.Add(b))
	case lex.Minus:
		return e.checkedInt(ex, t, a.Sub(b))
	case lex.Star:
		return e.checkedInt(ex, t, a.Mul(b))
	case lex.Slash:
		if b.IsZero() {
			return e.fatal(ex.Span(), "division by zero")
		}

		return e.checkedInt(ex, t, a.Quo(b))
	case lex.Percent:
		if b.IsZero() {
			return e.fatal(ex.Span(), "division by zero")
		}

		return e.checkedInt(ex, t, a.Rem(b))
	case lex.PlusWrap:
		return e.wrapInt(t, a.Add(b))
	case lex.MinusWrap:
		return e.wrapInt(t, a.Sub(b))
	case lex.StarWrap:
		return e.wrapInt(t, a.Mul(b))
	case lex.Amp, lex.Pipe, lex.Caret, lex.Shl, lex.Shr:
		return e.evalBitwise(ex, t, a, b)
	default:
		return e.fatal(ex.Span(), "unsupported binary operator %s", ex.Op.String())
	}
}

func (e *Evaluator) evalBitwise(ex *tast.Binary, t *types.Type, a, b *bigint.Int) *value.Value {
	width := t.BitWidth()

	switch ex.Op {
	case lex.Shl:
		return e.fromBits(t, a.ToBitArr(width).ShiftLeft(uint(b.Int64())))
	case lex.Shr:
		ab := a.ToBitArr(width)
		if t.IsSignedInteger() {
			return e.fromBits(t, ab.ShiftRightArithmetic(uint(b.Int64())))
		}

		return e.fromBits(t, ab.ShiftRightLogical(uint(b.Int64())))
	case lex.Amp:
		return e.fromBits(t, a.ToBitArr(width).And(b.ToBitArr(width)))
	case lex.Pipe:
		return e.fromBits(t, a.ToBitArr(width).Or(b.ToBitArr(width)))
	case lex.Caret:
		return e.fromBits(t, a.ToBitArr(width).Xor(b.ToBitArr(width)))
	default:
		return e.fatal(ex.Span(), "unsupported bitwise operator %s", ex.Op.String())
	}
}

func (e *Evaluator) evalFloatBinary(ex *tast.Binary, left, right *value.Value) *value.Value {
	a, b := e.floatOf(left), e.floatOf(right)
	t := ex.Type()

	switch ex.Op {
	case lex.Plus:
		return e.floatResult(t, a+b)
	case lex.Minus:
		return e.floatResult(t, a-b)
	case lex.Star:
		return e.floatResult(t, a*b)
	case lex.Slash:
		return e.floatResult(t, a/b)
	default:
		return e.fatal(ex.Span(), "unsupported floating-point operator %s", ex.Op.String())
	}
}

func (e *Evaluator) evalCompare(ex *tast.Binary, left, right *value.Value) *value.Value {
	t := ex.Type()

	if left.Type.Kind == types.Pointer {
		return e.evalPointerCompare(ex, t, left, right)
	}

	var cmp int

	switch {
	case left.Type.Kind == types.Bool:
		cmp = boolCmp(left.Bool, right.Bool)
	case left.Type.IsFloat():
		a, b := e.floatOf(left), e.floatOf(right)

		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		default:
			cmp = 0
		}
	default:
		cmp = left.AsBigInt().Cmp(right.AsBigInt())
	}

	switch ex.Op {
	case lex.EqEq:
		return value.NewBool(t, cmp == 0)
	case lex.NotEq:
		return value.NewBool(t, cmp != 0)
	case lex.Lt:
		return value.NewBool(t, cmp < 0)
	case lex.LtEq:
		return value.NewBool(t, cmp <= 0)
	case lex.Gt:
		return value.NewBool(t, cmp > 0)
	case lex.GtEq:
		return value.NewBool(t, cmp >= 0)
	default:
		return e.fatal(ex.Span(), "unsupported comparison operator %s", ex.Op.String())
	}
}

// evalPointerCompare implements spec.md section 9's pointer-comparison
// design note: equality compares the addresses directly, but ordering
// (< <= > >=) is left undecided by the spec and is rejected here.
func (e *Evaluator) evalPointerCompare(ex *tast.Binary, t *types.Type, left, right *value.Value) *value.Value {
	switch ex.Op {
	case lex.EqEq:
		return value.NewBool(t, left.Addr == right.Addr)
	case lex.NotEq:
		return value.NewBool(t, left.Addr != right.Addr)
	default:
		return e.fatal(ex.Span(), "pointer ordering comparisons are not supported at compile time")
	}
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

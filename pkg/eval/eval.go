// Package eval implements the compile-time evaluator spec.md section 4.5
// describes: a pure interpreter over typed expressions (pkg/tast) that
// reduces a constant expression to a pkg/value.Value, enforcing the
// compile-time restrictions of section 4.5 (no function calls, no pointer
// dereference, no slice indexing) by raising a fatal diagnostic for any
// disallowed form.
//
// It is grounded on the teacher's interval/bound arithmetic in
// pkg/corset/ast/type.go (NewUintType/NewIntType's math/big.Int bounds),
// generalized here from "compute a type's legal interval" to "execute
// arithmetic and report when a result falls outside it" -- the teacher
// only needs the former, but spec.md section 4.5 explicitly wants the
// latter (out-of-range folding is a first-class diagnostic, not merely a
// static bound).
package eval

import (
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/value"
)

// Evaluator reduces typed expressions to compile-time values.
type Evaluator struct {
	Registry *types.Registry
	Emit     *diag.Emitter
	File     *source.File
	// Chain is the current template-instantiation chain, printed above
	// any fatal diagnostic this evaluator raises (spec.md section 6).
	Chain []diag.Link
}

// New constructs an Evaluator.
func New(reg *types.Registry, emit *diag.Emitter, file *source.File) *Evaluator {
	return &Evaluator{Registry: reg, Emit: emit, File: file}
}

func (e *Evaluator) fatal(span source.Span, format string, args ...any) *value.Value {
	e.Emit.Fatal(e.File, span, e.Chain, format, args...)

	return nil
}

// Eval reduces a typed expression to a value, or raises a fatal diagnostic
// if the expression is not a legal compile-time form.
func (e *Evaluator) Eval(expr tast.Expr) *value.Value {
	switch ex := expr.(type) {
	case *tast.BoolLit:
		return value.NewBool(ex.Type(), ex.Value)
	case *tast.IntLit:
		return value.NewInt(ex.Type(), ex.Value)
	case *tast.FloatLit:
		return e.evalFloatLit(ex)
	case *tast.CharLit:
		return value.NewByte(ex.Type(), byte(ex.Value))
	case *tast.ByteStringLit:
		return e.evalByteStringLit(ex)
	case *tast.SymbolExpr:
		return e.evalSymbol(ex)
	case *tast.Cast:
		return e.evalCast(ex)
	case *tast.Unary:
		return e.evalUnary(ex)
	case *tast.Binary:
		return e.evalBinary(ex)
	case *tast.Sizeof:
		return value.NewInt(ex.Type(), bigint.FromInt64(int64(ex.Of.Size)))
	case *tast.Alignof:
		return value.NewInt(ex.Type(), bigint.FromInt64(int64(ex.Of.Align)))
	case *tast.Fileof:
		return value.NewSlice(ex.Type(), nil, value.NewInt(e.Registry.USizeT, bigint.FromInt64(int64(len(ex.File)))))
	case *tast.Lineof:
		return value.NewInt(ex.Type(), bigint.FromInt64(int64(ex.Line)))
	case *tast.Defined:
		return value.NewBool(ex.Type(), ex.Result)
	case *tast.ArrayLit:
		return e.evalArrayLit(ex)
	case *tast.StructLit:
		return e.evalStructLit(ex)
	case *tast.SliceLit:
		return e.evalSliceLit(ex)
	case *tast.Index:
		return e.evalIndex(ex)
	case *tast.Slice:
		return e.evalSlice(ex)
	case *tast.Member:
		return e.evalMember(ex)
	case *tast.Call:
		return e.fatal(ex.Span(), "function calls are not supported in compile-time expressions")
	case *tast.Deref:
		return e.fatal(ex.Span(), "pointer dereference is not supported in compile-time expressions")
	default:
		return e.fatal(expr.Span(), "unsupported compile-time expression")
	}
}

func (e *Evaluator) evalFloatLit(ex *tast.FloatLit) *value.Value {
	switch ex.Type().Kind {
	case types.F32:
		return value.NewF32(ex.Type(), float32(ex.Value))
	case types.F64:
		return value.NewF64(ex.Type(), ex.Value)
	default:
		return value.NewReal(ex.Type(), ex.Value)
	}
}

func (e *Evaluator) evalByteStringLit(ex *tast.ByteStringLit) *value.Value {
	n := len(ex.Bytes)
	elemType := e.Registry.ByteT
	ptr := value.NewPointer(e.Registry.Pointer(elemType), symbol.Address{Kind: symbol.AddrStatic})

	return value.NewSlice(ex.Type(), ptr, value.NewInt(e.Registry.USizeT, bigint.FromInt64(int64(n))))
}

func (e *Evaluator) evalSymbol(ex *tast.SymbolExpr) *value.Value {
	sym := ex.Sym
	sym.MarkUsed()

	switch sym.Kind {
	case symbol.KindConst:
		if sym.Object == nil || sym.Object.Value == nil {
			return e.fatal(ex.Span(), "constant %q has no known compile-time value", sym.Name.String())
		}

		v, _ := sym.Object.Value.(*value.Value)

		return v.Clone()
	case symbol.KindFunc:
		return value.NewFunc(ex.Type(), sym)
	case symbol.KindVar:
		if sym.Object != nil && sym.Object.Value != nil {
			v, _ := sym.Object.Value.(*value.Value)

			return v.Clone()
		}

		return e.fatal(ex.Span(), "variable %q does not have a compile-time value", sym.Name.String())
	default:
		return e.fatal(ex.Span(), "symbol %q is not a compile-time expression", sym.Name.String())
	}
}

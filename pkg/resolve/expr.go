package resolve

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// resolveExpr attaches a resolved type (and, for symbol references, a
// resolved *symbol.Symbol) to one CST expression, producing its typed-AST
// counterpart (spec.md section 4.4).
func (r *Resolver) resolveExpr(scope *symbol.Table, e cst.Expr) tast.Expr {
	switch ex := e.(type) {
	case nil:
		return nil
	case *cst.SymbolExpr:
		return r.resolveSymbolExpr(scope, ex)
	case *cst.BoolLitExpr:
		out := &tast.BoolLit{Value: ex.Value}
		attach(out, ex.SpanV, r.Types.BoolT, false)

		return out
	case *cst.IntLitExpr:
		return r.resolveIntLit(ex)
	case *cst.FloatLitExpr:
		return r.resolveFloatLit(ex)
	case *cst.CharLitExpr:
		out := &tast.CharLit{Value: ex.Value}
		attach(out, ex.SpanV, r.Types.ByteT, false)

		return out
	case *cst.ByteStringLitExpr:
		out := &tast.ByteStringLit{Bytes: ex.Value}
		attach(out, ex.SpanV, r.Types.Slice(r.Types.ByteT), false)

		return out
	case *cst.GroupExpr:
		return r.resolveExpr(scope, ex.Inner)
	case *cst.ArrayLitExpr:
		return r.resolveArrayLit(scope, ex)
	case *cst.StructLitExpr:
		return r.resolveStructLit(scope, ex)
	case *cst.SliceLitExpr:
		return r.resolveSliceLit(scope, ex)
	case *cst.CastExpr:
		return r.resolveCast(scope, ex)
	case *cst.DefinedExpr:
		return r.resolveDefined(scope, ex)
	case *cst.SizeofExpr:
		t := r.resolveTypeExpr(scope, ex.Type)
		out := &tast.Sizeof{Of: t}
		attach(out, ex.SpanV, r.Types.USizeT, false)

		return out
	case *cst.AlignofExpr:
		t := r.resolveTypeExpr(scope, ex.Type)
		out := &tast.Alignof{Of: t}
		attach(out, ex.SpanV, r.Types.USizeT, false)

		return out
	case *cst.FileofExpr:
		out := &tast.Fileof{File: r.File.Name()}
		attach(out, ex.SpanV, r.Types.Slice(r.Types.ByteT), false)

		return out
	case *cst.LineofExpr:
		out := &tast.Lineof{Line: r.lineOf(ex.SpanV)}
		attach(out, ex.SpanV, r.Types.USizeT, false)

		return out
	case *cst.UnaryExpr:
		return r.resolveUnary(scope, ex)
	case *cst.BinaryExpr:
		return r.resolveBinary(scope, ex)
	case *cst.CallExpr:
		return r.resolveCall(scope, ex)
	case *cst.IndexExpr:
		return r.resolveIndex(scope, ex)
	case *cst.SliceExpr:
		return r.resolveSlice(scope, ex)
	case *cst.MemberExpr:
		return r.resolveMember(scope, ex)
	case *cst.DerefExpr:
		return r.resolveDeref(scope, ex)
	default:
		r.fatal(e.Span(), "unsupported expression form")

		return nil
	}
}

// attach is the one place that sets the span/type/lvalue fields promoted
// from tast's unexported `base` struct, since a struct literal in this
// package cannot name that field directly.
func attach(e tast.Expr, span source.Span, t *types.Type, lvalue bool) {
	switch v := e.(type) {
	case *tast.BoolLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.IntLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.FloatLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.CharLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.ByteStringLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.SymbolExpr:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Cast:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Unary:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Binary:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Call:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Index:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Slice:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Member:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Deref:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Sizeof:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Alignof:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Fileof:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Lineof:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.Defined:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.ArrayLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.StructLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	case *tast.SliceLit:
		v.SpanV, v.TypeV, v.LvalueV = span, t, lvalue
	}
}

func (r *Resolver) resolveIntLit(ex *cst.IntLitExpr) tast.Expr {
	t := r.Types.IntegerT

	if ex.Suffix != nil {
		if named, ok := r.Types.Lookup(ex.Suffix.String()); ok {
			t = named
		}
	}

	out := &tast.IntLit{Value: ex.Value}
	attach(out, ex.SpanV, t, false)

	return out
}

func (r *Resolver) resolveFloatLit(ex *cst.FloatLitExpr) tast.Expr {
	t := r.Types.RealT

	if ex.Suffix != nil {
		if named, ok := r.Types.Lookup(ex.Suffix.String()); ok {
			t = named
		}
	}

	out := &tast.FloatLit{Value: ex.Value}
	attach(out, ex.SpanV, t, false)

	return out
}

func (r *Resolver) resolveSymbolExpr(scope *symbol.Table, ex *cst.SymbolExpr) tast.Expr {
	sym := r.resolveSymbolRef(scope, ex.Sym)
	if sym == nil {
		return nil
	}

	sym.MarkUsed()

	var t *types.Type
	lvalue := false

	switch sym.Kind {
	case symbol.KindVar:
		t = sym.Object.Type
		lvalue = true
	case symbol.KindConst:
		t = sym.Object.Type
		lvalue = true
	case symbol.KindFunc:
		t = sym.Func.Type
	default:
		r.fatal(ex.SpanV, "%q is not a value", sym.Name.String())

		return nil
	}

	out := &tast.SymbolExpr{Sym: sym}
	attach(out, ex.SpanV, t, lvalue)

	return out
}

// resolveSymbolRef resolves a cst.Symbol path to the symbol it names,
// walking namespace/type scopes for qualified paths exactly as
// resolveQualifiedType does for type position.
func (r *Resolver) resolveSymbolRef(scope *symbol.Table, s *cst.Symbol) *symbol.Symbol {
	if s.Origin == cst.OriginNone && len(s.Elements) == 1 && len(s.Elements[0].TemplateArgs) == 0 {
		name := r.Intern.InternString(s.Elements[0].Name.String())

		sym, ok := scope.Lookup(name)
		if !ok {
			r.fatal(s.SpanV, "undefined symbol %q", name.String())

			return nil
		}

		return sym
	}

	if s.Origin == cst.OriginNone && len(s.Elements) == 1 {
		name := r.Intern.InternString(s.Elements[0].Name.String())

		sym, ok := scope.Lookup(name)
		if !ok {
			r.fatal(s.SpanV, "undefined symbol %q", name.String())

			return nil
		}

		if sym.Kind == symbol.KindTemplate {
			return r.instantiateValueTemplate(sym, s.Elements[0].TemplateArgs, s.SpanV)
		}

		return sym
	}

	var cur *symbol.Table

	switch s.Origin {
	case cst.OriginRoot:
		cur = r.Global
	case cst.OriginType:
		base := r.resolveTypeExpr(scope, s.TypeExpr)
		if ts, ok := base.Scope.(*symbol.Table); ok {
			cur = ts
		}
	default:
		cur = scope
	}

	var found *symbol.Symbol

	for i, el := range s.Elements {
		if cur == nil {
			r.fatal(s.SpanV, "cannot resolve %q: enclosing scope is not available", el.Name.String())

			return nil
		}

		name := r.Intern.InternString(el.Name.String())

		sym, ok := cur.Lookup(name)
		if !ok {
			r.fatal(s.SpanV, "undefined symbol %q", el.Name.String())

			return nil
		}

		found = sym

		if i < len(s.Elements)-1 {
			switch sym.Kind {
			case symbol.KindNamespace:
				cur = sym.Namespace
			case symbol.KindType:
				if ts, ok := sym.Type.Scope.(*symbol.Table); ok {
					cur = ts
				} else {
					cur = nil
				}
			default:
				cur = nil
			}
		}
	}

	return found
}

func (r *Resolver) lineOf(span source.Span) int {
	line := r.File.FindFirstEnclosingLine(span)

	return line.Number()
}

func (r *Resolver) resolveArrayLit(scope *symbol.Table, ex *cst.ArrayLitExpr) tast.Expr {
	t := r.resolveTypeExpr(scope, ex.Type)

	elems := make([]tast.Expr, len(ex.Elems))
	for i, el := range ex.Elems {
		elems[i] = r.resolveExpr(scope, el)
	}

	var ellipsis tast.Expr
	if ex.Ellipsis != nil {
		ellipsis = r.resolveExpr(scope, ex.Ellipsis)
	}

	out := &tast.ArrayLit{Elems: elems, Ellipsis: ellipsis}
	attach(out, ex.SpanV, t, false)

	return out
}

func (r *Resolver) resolveStructLit(scope *symbol.Table, ex *cst.StructLitExpr) tast.Expr {
	t := r.resolveTypeExpr(scope, ex.Type)

	fields := make([]tast.FieldInit, len(ex.Fields))
	for i, f := range ex.Fields {
		fields[i] = tast.FieldInit{Name: f.Name, Value: r.resolveExpr(scope, f.Value)}
	}

	out := &tast.StructLit{Fields: fields}
	attach(out, ex.SpanV, t, false)

	return out
}

func (r *Resolver) resolveSliceLit(scope *symbol.Table, ex *cst.SliceLitExpr) tast.Expr {
	t := r.resolveTypeExpr(scope, ex.Type)

	out := &tast.SliceLit{Ptr: r.resolveExpr(scope, ex.Ptr), Count: r.resolveExpr(scope, ex.Count)}
	attach(out, ex.SpanV, t, false)

	return out
}

func (r *Resolver) resolveCast(scope *symbol.Table, ex *cst.CastExpr) tast.Expr {
	t := r.resolveTypeExpr(scope, ex.Type)
	inner := r.resolveExpr(scope, ex.Inner)

	if !castCompatible(inner.Type(), t) {
		r.fatal(ex.SpanV, "invalid cast from %s to %s", inner.Type().String(), t.String())
	}

	out := &tast.Cast{Inner: inner}
	attach(out, ex.SpanV, t, false)

	return out
}

// castCompatible reports whether a `(:dst) src-typed-expr` cast is in the
// closed compatibility matrix (spec.md section 4.4): any two numeric kinds
// convert freely (integer<->integer, integer<->float, byte/bool/enum as
// honorary integers), and every other kind only casts to itself (a pointer
// reinterpreting its base type, mainly). Everything else is rejected here
// rather than left for the evaluator to discover at fold time.
func castCompatible(src, dst *types.Type) bool {
	if src.Kind == dst.Kind {
		return true
	}

	return isCastNumeric(src) && isCastNumeric(dst)
}

func isCastNumeric(t *types.Type) bool {
	switch t.Kind {
	case types.Bool, types.Byte, types.Enum,
		types.S8, types.S16, types.S32, types.S64, types.SSize,
		types.U8, types.U16, types.U32, types.U64, types.USize,
		types.Integer, types.F32, types.F64, types.Real:
		return true
	default:
		return false
	}
}

func (r *Resolver) resolveDefined(scope *symbol.Table, ex *cst.DefinedExpr) tast.Expr {
	sym := r.resolveSymbolRefSilent(scope, ex.Sym)

	out := &tast.Defined{Result: sym != nil}
	attach(out, ex.SpanV, r.Types.BoolT, false)

	return out
}

// resolveSymbolRefSilent resolves a symbol reference without raising a
// diagnostic on failure, used by `defined()`. Only a bare, single-element
// name is looked up in scope; a `::`-rooted, `typeof`-rooted, or
// multi-element path always yields nil, so `defined()` reports false for it.
func (r *Resolver) resolveSymbolRefSilent(scope *symbol.Table, s *cst.Symbol) *symbol.Symbol {
	if s.Origin != cst.OriginNone || len(s.Elements) != 1 {
		return nil
	}

	name := r.Intern.InternString(s.Elements[0].Name.String())
	sym, _ := scope.Lookup(name)

	return sym
}

func (r *Resolver) resolveUnary(scope *symbol.Table, ex *cst.UnaryExpr) tast.Expr {
	inner := r.resolveExpr(scope, ex.Inner)
	if inner == nil {
		return nil
	}

	t := inner.Type()
	lvalue := false

	switch ex.Op {
	case lex.Not:
		t = r.Types.BoolT
	case lex.Amp:
		t = r.Types.Pointer(inner.Type())

		if !inner.IsLvalue() {
			r.fatal(ex.SpanV, "cannot take the address of a non-lvalue expression")
		}
	case lex.Star:
		if inner.Type().Kind != types.Pointer {
			r.fatal(ex.SpanV, "cannot dereference a non-pointer expression")
		} else {
			t = inner.Type().Base
		}

		lvalue = true
	}

	out := &tast.Unary{Op: ex.Op, Inner: inner}
	attach(out, ex.SpanV, t, lvalue)

	return out
}

func (r *Resolver) resolveBinary(scope *symbol.Table, ex *cst.BinaryExpr) tast.Expr {
	left := r.resolveExpr(scope, ex.Left)
	right := r.resolveExpr(scope, ex.Right)

	if left == nil || right == nil {
		return nil
	}

	t := left.Type()

	switch ex.Op {
	case lex.EqEq, lex.NotEq, lex.Lt, lex.LtEq, lex.Gt, lex.GtEq, lex.Or, lex.And:
		t = r.Types.BoolT
	}

	out := &tast.Binary{Op: ex.Op, Left: left, Right: right}
	attach(out, ex.SpanV, t, false)

	return out
}

func (r *Resolver) resolveCall(scope *symbol.Table, ex *cst.CallExpr) tast.Expr {
	callee := r.resolveExpr(scope, ex.Callee)
	if callee == nil {
		return nil
	}

	args := make([]tast.Expr, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = r.resolveExpr(scope, a)
	}

	ret := r.Types.VoidT
	if callee.Type().Kind == types.Function {
		ret = callee.Type().Return
	} else {
		r.fatal(ex.SpanV, "cannot call a non-function expression")
	}

	out := &tast.Call{Callee: callee, Args: args}
	attach(out, ex.SpanV, ret, false)

	return out
}

func (r *Resolver) resolveIndex(scope *symbol.Table, ex *cst.IndexExpr) tast.Expr {
	elem := r.resolveExpr(scope, ex.Base)
	idx := r.resolveExpr(scope, ex.Index)

	if elem == nil {
		return nil
	}

	var et *types.Type
	lvalue := elem.IsLvalue()

	switch elem.Type().Kind {
	case types.Array:
		et = elem.Type().Base
	case types.Slice:
		et = elem.Type().Base
		lvalue = true
	default:
		r.fatal(ex.SpanV, "cannot index a non-array, non-slice expression")

		et = r.Types.Any
	}

	out := &tast.Index{Elem: elem, Index: idx}
	attach(out, ex.SpanV, et, lvalue)

	return out
}

func (r *Resolver) resolveSlice(scope *symbol.Table, ex *cst.SliceExpr) tast.Expr {
	elem := r.resolveExpr(scope, ex.Base)

	var low, high tast.Expr
	if ex.Low != nil {
		low = r.resolveExpr(scope, ex.Low)
	}

	if ex.High != nil {
		high = r.resolveExpr(scope, ex.High)
	}

	if elem == nil {
		return nil
	}

	var base *types.Type

	switch elem.Type().Kind {
	case types.Array, types.Slice:
		base = elem.Type().Base
	default:
		r.fatal(ex.SpanV, "cannot slice a non-array, non-slice expression")

		base = r.Types.Any
	}

	out := &tast.Slice{Elem: elem, Low: low, High: high}
	attach(out, ex.SpanV, r.Types.Slice(base), false)

	return out
}

func (r *Resolver) resolveMember(scope *symbol.Table, ex *cst.MemberExpr) tast.Expr {
	base := r.resolveExpr(scope, ex.Base)
	if base == nil {
		return nil
	}

	t := base.Type()

	// Member access on a pointer implicitly dereferences, as in the
	// teacher's own field-access lowering convention.
	isPtr := false

	if t.Kind == types.Pointer {
		t = t.Base
		isPtr = true
	}

	var mt *types.Type
	var offset uint64

	found := false

	for _, m := range t.Members {
		if m.Name == ex.Name {
			mt, offset, found = m.Type, m.Offset, true

			break
		}
	}

	if !found {
		r.fatal(ex.SpanV, "unknown member %q", ex.Name)

		mt = r.Types.Any
	}

	out := &tast.Member{Struct: base, Name: ex.Name, Offset: offset}
	attach(out, ex.SpanV, mt, base.IsLvalue() || isPtr)

	return out
}

func (r *Resolver) resolveDeref(scope *symbol.Table, ex *cst.DerefExpr) tast.Expr {
	base := r.resolveExpr(scope, ex.Base)
	if base == nil {
		return nil
	}

	t := r.Types.Any

	if base.Type().Kind == types.Pointer {
		t = base.Type().Base
	} else {
		r.fatal(ex.SpanV, "cannot dereference a non-pointer expression")
	}

	out := &tast.Deref{Ptr: base}
	attach(out, ex.SpanV, t, true)

	return out
}

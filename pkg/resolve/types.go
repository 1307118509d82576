package resolve

import (
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// resolveTypeExpr constructs a *types.Type from CST type syntax, recursively
// interning pointer/array/slice/function types through the registry
// (spec.md section 4.4 "Type construction"). A bare named reference is
// looked up as a KindType symbol in scope.
func (r *Resolver) resolveTypeExpr(scope *symbol.Table, t cst.TypeExpr) *types.Type {
	switch te := t.(type) {
	case nil:
		return r.Types.VoidT
	case *cst.NamedTypeExpr:
		return r.resolveNamedType(scope, te)
	case *cst.PointerTypeExpr:
		return r.Types.Pointer(r.resolveTypeExpr(scope, te.Base))
	case *cst.ArrayTypeExpr:
		count := r.eval.Eval(r.resolveExpr(scope, te.Count))
		if count == nil {
			return r.Types.Any
		}

		n := uint64(count.AsBigInt().Int64())
		base := r.resolveTypeExpr(scope, te.Base)

		if max := sizeofMax(r.Types.Arch()); base.Size != 0 && n > max/base.Size {
			r.fatal(te.Span(), "array size overflow: %d elements of size %d exceeds the maximum object size", n, base.Size)

			return r.Types.Any
		}

		return r.Types.Array(n, base)
	case *cst.SliceTypeExpr:
		return r.Types.Slice(r.resolveTypeExpr(scope, te.Base))
	case *cst.FuncTypeExpr:
		params := make([]*types.Type, len(te.Params))
		for i, p := range te.Params {
			params[i] = r.resolveTypeExpr(scope, p)
		}

		return r.Types.Function(params, r.resolveTypeExpr(scope, te.ReturnType))
	case *cst.StructTypeExpr:
		return r.resolveInlineAggregate(scope, te.Members, types.Struct)
	case *cst.UnionTypeExpr:
		return r.resolveInlineAggregate(scope, te.Members, types.Union)
	case *cst.EnumTypeExpr:
		return r.resolveInlineEnum(scope, te.Underlying, te.Values)
	case *cst.TypeofTypeExpr:
		expr := r.resolveExpr(scope, te.Expr)

		return expr.Type()
	default:
		r.fatal(t.Span(), "unsupported type expression")

		return r.Types.Any
	}
}

// sizeofMax is SIZEOF_MAX (spec.md section 4.4): the largest signed value a
// machine word on arch can hold, reserving the word's unsigned max as a
// sentinel for "unsized".
func sizeofMax(arch types.Arch) uint64 {
	bits := arch.WordSize() * 8

	return (uint64(1) << (bits - 1)) - 1
}

func (r *Resolver) resolveNamedType(scope *symbol.Table, te *cst.NamedTypeExpr) *types.Type {
	if te.Name.Origin != cst.OriginNone || len(te.Name.Elements) != 1 {
		return r.resolveQualifiedType(scope, te)
	}

	el := te.Name.Elements[0]
	name := r.Intern.InternString(el.Name.String())

	sym, ok := scope.Lookup(name)
	if !ok {
		r.fatal(te.Span(), "undefined type %q", el.Name.String())

		return r.Types.Any
	}

	sym.MarkUsed()

	if sym.Kind == symbol.KindTemplate {
		return r.instantiateTypeTemplate(sym, el.TemplateArgs, te.Span())
	}

	if sym.Kind != symbol.KindType {
		r.fatal(te.Span(), "%q is not a type", el.Name.String())

		return r.Types.Any
	}

	return sym.Type
}

// resolveQualifiedType handles `::name`, `typeof(e)::name`, and multi-
// segment `a::b::c` type references by walking each element's namespace or
// type scope in turn.
func (r *Resolver) resolveQualifiedType(scope *symbol.Table, te *cst.NamedTypeExpr) *types.Type {
	sym := te.Name
	var cur *symbol.Table

	switch sym.Origin {
	case cst.OriginRoot:
		cur = r.Global
	case cst.OriginType:
		base := r.resolveTypeExpr(scope, sym.TypeExpr)
		if s, ok := base.Scope.(*symbol.Table); ok {
			cur = s
		}
	default:
		cur = scope
	}

	var found *symbol.Symbol

	for i, el := range sym.Elements {
		if cur == nil {
			r.fatal(te.Span(), "cannot resolve %q: enclosing scope is not available", el.Name.String())

			return r.Types.Any
		}

		name := r.Intern.InternString(el.Name.String())

		s, ok := cur.Lookup(name)
		if !ok {
			r.fatal(te.Span(), "undefined symbol %q", el.Name.String())

			return r.Types.Any
		}

		s.MarkUsed()
		found = s

		if i < len(sym.Elements)-1 {
			switch s.Kind {
			case symbol.KindNamespace:
				cur = s.Namespace
			case symbol.KindType:
				if ts, ok := s.Type.Scope.(*symbol.Table); ok {
					cur = ts
				} else {
					cur = nil
				}
			default:
				cur = nil
			}
		}
	}

	if found == nil || found.Kind != symbol.KindType {
		r.fatal(te.Span(), "%q is not a type", te.Name.Elements[len(te.Name.Elements)-1].Name.String())

		return r.Types.Any
	}

	return found.Type
}

func (r *Resolver) resolveInlineAggregate(scope *symbol.Table, members []cst.StructMemberExpr, kind types.Kind) *types.Type {
	t := &types.Type{Kind: kind}
	r.layoutAggregate(scope, t, members, kind)

	return t
}

// layoutAggregate resolves each member's type and writes the resulting
// offsets, size, and alignment into t in place (spec.md section 3.3): a
// struct lays members out sequentially, each aligned to its own type; a
// union overlaps every member at offset 0 and takes the widest member's
// size. Shared by resolveInlineAggregate (an anonymous `struct{...}`/
// `union{...}` type expression) and the named-declaration path in decl.go's
// completeAggregate, which additionally has a type object already installed
// into scope before its layout is known (spec.md section 3.6's two-phase
// completion).
func (r *Resolver) layoutAggregate(scope *symbol.Table, t *types.Type, members []cst.StructMemberExpr, kind types.Kind) {
	offset := uint64(0)
	align := uint64(1)

	for _, m := range members {
		mt := r.resolveTypeExpr(scope, m.Type)

		if mt.Align > align {
			align = mt.Align
		}

		memberOffset := uint64(0)

		if kind == types.Struct {
			memberOffset = alignUp(offset, mt.Align)
			offset = memberOffset + mt.Size
		} else if mt.Size > offset {
			offset = mt.Size
		}

		t.Members = append(t.Members, types.Member{Name: m.Name, Type: mt, Offset: memberOffset})
	}

	t.Size = alignUp(offset, align)
	t.Align = align
	t.IsComplete = true
}

func (r *Resolver) resolveInlineEnum(scope *symbol.Table, underlyingTE cst.TypeExpr, values []cst.EnumValueExpr) *types.Type {
	underlying := r.Types.IntegerT
	if underlyingTE != nil {
		underlying = r.resolveTypeExpr(scope, underlyingTE)
	}

	t := &types.Type{Kind: types.Enum, Underlying: underlying, Size: underlying.Size, Align: underlying.Align, IsComplete: true}

	next := bigZero()

	for _, v := range values {
		val := next

		if v.Value != nil {
			ev := r.eval.Eval(r.resolveExpr(scope, v.Value))
			if ev != nil {
				val = ev.AsBigInt()
			}
		}

		t.Values = append(t.Values, types.EnumValue{Name: v.Name, Value: val})
		next = val.Add(bigOne())
	}

	return t
}

func alignUp(offset, align uint64) uint64 {
	if align <= 1 {
		return offset
	}

	rem := offset % align
	if rem == 0 {
		return offset
	}

	return offset + (align - rem)
}

func bigZero() *bigint.Int { return bigint.FromInt64(0) }
func bigOne() *bigint.Int  { return bigint.FromInt64(1) }

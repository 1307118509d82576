package eval

import (
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/value"
)

func (e *Evaluator) evalArrayLit(ex *tast.ArrayLit) *value.Value {
	elems := make([]*value.Value, len(ex.Elems))

	for i, el := range ex.Elems {
		v := e.Eval(el)
		if v == nil {
			return nil
		}

		elems[i] = v
	}

	var ellipsis *value.Value

	if ex.Ellipsis != nil {
		ellipsis = e.Eval(ex.Ellipsis)
		if ellipsis == nil {
			return nil
		}
	}

	return value.NewArray(ex.Type(), elems, ellipsis)
}

func (e *Evaluator) evalStructLit(ex *tast.StructLit) *value.Value {
	t := ex.Type()
	fields := make([]*value.Value, len(t.Members))

	for _, fi := range ex.Fields {
		v := e.Eval(fi.Value)
		if v == nil {
			return nil
		}

		for i, m := range t.Members {
			if m.Name == fi.Name {
				fields[i] = v

				break
			}
		}
	}

	return value.NewStruct(t, fields)
}

func (e *Evaluator) evalSliceLit(ex *tast.SliceLit) *value.Value {
	ptr := e.Eval(ex.Ptr)
	count := e.Eval(ex.Count)

	if ptr == nil || count == nil {
		return nil
	}

	return value.NewSlice(ex.Type(), ptr, count)
}

// evalIndex evaluates `base[i]`. Only array-typed bases are legal at
// compile time; indexing a slice requires a pointer dereference, which
// spec.md section 4.5 disallows in constant expressions.
func (e *Evaluator) evalIndex(ex *tast.Index) *value.Value {
	if ex.Elem.Type().Kind == types.Slice {
		return e.fatal(ex.Span(), "indexing a slice is not supported in compile-time expressions")
	}

	base := e.Eval(ex.Elem)
	idx := e.Eval(ex.Index)

	if base == nil || idx == nil {
		return nil
	}

	i := idx.AsBigInt().Int64()

	if i < 0 || i >= int64(len(base.Elems)) {
		if base.Ellipsis != nil && i >= 0 {
			return base.Ellipsis.Clone()
		}

		return e.fatal(ex.Span(), "index %d out of bounds for array of length %d", i, len(base.Elems))
	}

	return base.Elems[i].Clone()
}

// evalSlice evaluates `base[low:high]`, legal at compile time only when
// base is an array (producing a fresh array-backed slice value); slicing an
// existing slice value requires a pointer dereference and is disallowed.
func (e *Evaluator) evalSlice(ex *tast.Slice) *value.Value {
	if ex.Elem.Type().Kind == types.Slice {
		return e.fatal(ex.Span(), "slicing a slice is not supported in compile-time expressions")
	}

	base := e.Eval(ex.Elem)
	if base == nil {
		return nil
	}

	low, high := int64(0), int64(len(base.Elems))

	if ex.Low != nil {
		lv := e.Eval(ex.Low)
		if lv == nil {
			return nil
		}

		low = lv.AsBigInt().Int64()
	}

	if ex.High != nil {
		hv := e.Eval(ex.High)
		if hv == nil {
			return nil
		}

		high = hv.AsBigInt().Int64()
	}

	if low < 0 || high > int64(len(base.Elems)) || low > high {
		return e.fatal(ex.Span(), "slice bounds [%d:%d] out of range for array of length %d", low, high, len(base.Elems))
	}

	// Building the resulting slice's pointer requires a storage address;
	// only a plain named array has one at compile time (an array literal
	// does not), mirroring evalAddressOf's restriction.
	sym, ok := ex.Elem.(*tast.SymbolExpr)
	if !ok {
		return e.fatal(ex.Span(), "slicing is only supported on a named array in compile-time expressions")
	}

	ptr := value.NewPointer(e.Registry.Pointer(base.Type.Base), sym.Sym.Object.Addr)

	return value.NewSlice(ex.Type(), ptr, value.NewInt(e.Registry.USizeT, bigint.FromInt64(high-low)))
}

func (e *Evaluator) evalMember(ex *tast.Member) *value.Value {
	base := e.Eval(ex.Struct)
	if base == nil {
		return nil
	}

	for i, m := range base.Type.Members {
		if m.Name == ex.Name {
			if i < len(base.Fields) && base.Fields[i] != nil {
				return base.Fields[i].Clone()
			}

			return e.fatal(ex.Span(), "member %q has not been initialized", ex.Name)
		}
	}

	if base.UnionMember == ex.Name {
		return base.UnionValue.Clone()
	}

	return e.fatal(ex.Span(), "unknown member %q", ex.Name)
}

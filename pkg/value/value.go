// Package value implements the compile-time value representation spec.md
// section 3.5 describes: a tagged sum mirroring type kinds, used by
// pkg/eval to represent the result of reducing a typed expression to a
// constant, and attached (frozen) to constant and function symbols once
// resolution finishes (spec.md section 3.7).
package value

import (
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// Value is a compile-time constant. Exactly the fields relevant to Type's
// Kind are populated (spec.md section 3.5); the rest are zero.
type Value struct {
	Type *types.Type

	Bool bool                 // types.Bool
	Byte byte                 // types.Byte
	Int  *bigint.Int          // any integer kind, including enum
	F32  float32              // types.F32
	F64  float64              // types.F64
	Real float64              // types.Real (held as f64 per spec.md section 3.5)

	FuncSym *symbol.Symbol // types.Function: the referenced function symbol

	Addr symbol.Address // types.Pointer

	// types.Array: element values, plus an optional ellipsis value
	// filling every index beyond the explicit prefix.
	Elems    []*Value
	Ellipsis *Value

	// types.Slice: (pointer-value, usize count-value) pair.
	SlicePtr   *Value
	SliceCount *Value

	// types.Struct: one optional value per member, indexed by
	// declaration order (nil entries are not-yet-initialized members).
	Fields []*Value

	// types.Union: at most one member holds a value at a time.
	UnionMember string
	UnionValue  *Value
}

// NewBool constructs a bool value.
func NewBool(t *types.Type, b bool) *Value { return &Value{Type: t, Bool: b} }

// NewByte constructs a byte value.
func NewByte(t *types.Type, b byte) *Value { return &Value{Type: t, Byte: b} }

// NewInt constructs an integer value (sized, unsized, or enum-typed).
func NewInt(t *types.Type, v *bigint.Int) *Value { return &Value{Type: t, Int: v} }

// NewF32 constructs an f32 value.
func NewF32(t *types.Type, v float32) *Value { return &Value{Type: t, F32: v} }

// NewF64 constructs an f64 value.
func NewF64(t *types.Type, v float64) *Value { return &Value{Type: t, F64: v} }

// NewReal constructs an unsized real value.
func NewReal(t *types.Type, v float64) *Value { return &Value{Type: t, Real: v} }

// NewFunc constructs a function-reference value.
func NewFunc(t *types.Type, sym *symbol.Symbol) *Value { return &Value{Type: t, FuncSym: sym} }

// NewPointer constructs a pointer value over the given address.
func NewPointer(t *types.Type, addr symbol.Address) *Value { return &Value{Type: t, Addr: addr} }

// NewArray constructs an array value.
func NewArray(t *types.Type, elems []*Value, ellipsis *Value) *Value {
	return &Value{Type: t, Elems: elems, Ellipsis: ellipsis}
}

// NewSlice constructs a slice value.
func NewSlice(t *types.Type, ptr, count *Value) *Value {
	return &Value{Type: t, SlicePtr: ptr, SliceCount: count}
}

// NewStruct constructs a struct value.
func NewStruct(t *types.Type, fields []*Value) *Value {
	return &Value{Type: t, Fields: fields}
}

// NewUnion constructs a union value holding the named member.
func NewUnion(t *types.Type, member string, v *Value) *Value {
	return &Value{Type: t, UnionMember: member, UnionValue: v}
}

// Clone returns an independent deep copy, used wherever spec.md section 3.7
// requires a value read from a constant symbol to be cloned rather than
// aliased (compile-time values are mutable during evaluation but frozen
// once attached to a symbol).
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}

	c := *v

	if v.Elems != nil {
		c.Elems = make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			c.Elems[i] = e.Clone()
		}
	}

	c.Ellipsis = v.Ellipsis.Clone()
	c.SlicePtr = v.SlicePtr.Clone()
	c.SliceCount = v.SliceCount.Clone()

	if v.Fields != nil {
		c.Fields = make([]*Value, len(v.Fields))
		for i, f := range v.Fields {
			c.Fields[i] = f.Clone()
		}
	}

	c.UnionValue = v.UnionValue.Clone()

	return &c
}

// AsBigInt returns the value's big-integer payload regardless of whether it
// is carried in Int or Byte, used by arithmetic/cast code in pkg/eval that
// treats byte and integer uniformly.
func (v *Value) AsBigInt() *bigint.Int {
	if v.Type.Kind == types.Byte {
		return bigint.FromInt64(int64(v.Byte))
	}

	return v.Int
}

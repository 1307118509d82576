// Package types implements the interned type system spec.md section 3.3
// describes: every type carries a canonical name, byte size and alignment,
// an associated scope for static members, a kind discriminator, and
// kind-specific data, and two types with identical structural names are the
// same object (pointer equality substitutes for deep compares everywhere
// downstream, per spec.md section 3.6's invariant).
//
// Every kind shares one Type struct with a Kind discriminator (unlike the
// teacher's pkg/corset/ast/type.go, which uses a Type interface with
// AnyType/IntType/... implementations), and reuses the teacher's precedent of backing sized-
// integer bounds with math/big.Int (NewUintType/NewIntType) — here through
// pkg/bigint, which adds the two's-complement wrap/cast helpers the
// evaluator needs.
package types

import (
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
)

// Kind discriminates a Type (spec.md section 3.3).
type Kind int

const (
	Any Kind = iota
	Void
	Bool
	Byte
	S8
	S16
	S32
	S64
	SSize
	U8
	U16
	U32
	U64
	USize
	Integer // unsized abstract integer
	F32
	F64
	Real // unsized abstract real
	Function
	Pointer
	Array
	Slice
	Struct
	Union
	Enum
	Extern
)

func (k Kind) String() string {
	names := [...]string{
		"any", "void", "bool", "byte", "s8", "s16", "s32", "s64", "ssize",
		"u8", "u16", "u32", "u64", "usize", "integer", "f32", "f64", "real",
		"function", "pointer", "array", "slice", "struct", "union", "enum",
		"extern",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return "<unknown-kind>"
}

// Member is one field of a struct/union type: name, type, and byte offset
// from the start of the aggregate (spec.md section 3.3).
type Member struct {
	Name   string
	Type   *Type
	Offset uint64
}

// EnumValue is one named integer constant of an enum type.
type EnumValue struct {
	Name  string
	Value *bigint.Int
}

// Type is the single representation for every type kind in the language.
// Kind-specific data is carried on the fields relevant to that Kind; the
// rest are left zero. Types are allocated once per distinct structural
// description and never copied — see Registry.
type Type struct {
	name  string
	Size  uint64
	Align uint64
	Kind  Kind

	// Scope is this type's associated symbol table (static members,
	// member functions, type-scoped aliases). It is declared as `any`
	// rather than *symbol.Table to avoid an import cycle, since
	// pkg/symbol itself refers to *Type; pkg/resolve stores a
	// *symbol.Table here and type-asserts it back where it is read.
	Scope any

	// Sized-integer bounds (S8..U64, SSize, USize); nil for Integer/Real
	// and non-integer kinds (spec.md section 3.3: "Sized integers carry
	// min/max as big-integers; unsized integers do not").
	Min *bigint.Int
	Max *bigint.Int

	Base   *Type   // Pointer, Array, Slice
	Count  uint64  // Array
	Params []*Type // Function
	Return *Type   // Function

	Members    []Member // Struct, Union
	IsComplete bool     // Struct, Union: false during the resolution window (spec.md section 3.6)

	Underlying *Type       // Enum
	Values     []EnumValue // Enum

	ExternName string // Extern
}

// Name returns this type's canonical structural name, e.g. "*s32" or
// "[4]u8" or "Foo". Two types compare equal (by pointer, via Registry) iff
// their Name is identical.
func (t *Type) Name() string {
	return t.name
}

func (t *Type) String() string {
	return t.name
}

// IsInteger reports whether t is any integer kind, sized or unsized,
// including enum (whose values are integers) is NOT included here --
// callers that want "integer or enum" should check both explicitly, since
// an enum value additionally carries a symbolic name.
func (t *Type) IsInteger() bool {
	switch t.Kind {
	case S8, S16, S32, S64, SSize, U8, U16, U32, U64, USize, Integer:
		return true
	default:
		return false
	}
}

// IsSignedInteger reports whether t is a signed sized or unsized integer
// kind.
func (t *Type) IsSignedInteger() bool {
	switch t.Kind {
	case S8, S16, S32, S64, SSize, Integer:
		return true
	default:
		return false
	}
}

// IsUnsignedInteger reports whether t is an unsigned sized integer kind.
func (t *Type) IsUnsignedInteger() bool {
	switch t.Kind {
	case U8, U16, U32, U64, USize:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is F32, F64, or the unsized Real kind.
func (t *Type) IsFloat() bool {
	switch t.Kind {
	case F32, F64, Real:
		return true
	default:
		return false
	}
}

// IsSized reports whether t has concrete min/max bounds (i.e. is not one of
// the unsized abstract kinds Integer/Real).
func (t *Type) IsSized() bool {
	return t.Kind != Integer && t.Kind != Real
}

// IsUnsized is the complement of IsSized.
func (t *Type) IsUnsized() bool {
	return !t.IsSized()
}

// BitWidth returns the bit width of a sized integer or byte/bool type.
func (t *Type) BitWidth() uint {
	return uint(t.Size) * 8
}

// Equal reports structural-name equality, which (via Registry interning)
// always coincides with pointer equality.
func (t *Type) Equal(other *Type) bool {
	return t == other || (t != nil && other != nil && t.name == other.name)
}


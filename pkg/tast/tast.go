// Package tast implements the typed AST spec.md sections 2 and 4.4
// describe: the resolver's output, produced by walking the CST and
// attaching a resolved *types.Type to every expression and a resolved
// *symbol.Symbol to every declaration. Like pkg/cst, every tagged sum is a
// small closed interface implemented by one struct per variant, following
// the same pattern as the teacher's pkg/corset/ast sum types.
package tast

import (
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// Expr is the tagged sum of typed expression forms.
type Expr interface {
	Span() source.Span
	Type() *types.Type
	// IsLvalue reports whether this expression denotes a storage location
	// (spec.md section 4.4's lvalue rules).
	IsLvalue() bool
	exprNode()
}

// base factors out the span/type/lvalue bookkeeping shared by every Expr
// implementation.
type base struct {
	SpanV    source.Span
	TypeV    *types.Type
	LvalueV  bool
}

func (b *base) Span() source.Span { return b.SpanV }
func (b *base) Type() *types.Type { return b.TypeV }
func (b *base) IsLvalue() bool    { return b.LvalueV }
func (*base) exprNode()          {}

// SymbolExpr references a resolved variable, constant, or function symbol.
// It is an lvalue iff Sym is a variable or constant (spec.md section 4.4).
type SymbolExpr struct {
	base
	Sym *symbol.Symbol
}

// BoolLit is a resolved `true`/`false` literal.
type BoolLit struct {
	base
	Value bool
}

// IntLit is a resolved integer literal, typed either to its suffix or to
// the unsized `integer` type.
type IntLit struct {
	base
	Value *bigint.Int
}

// FloatLit is a resolved floating-point literal.
type FloatLit struct {
	base
	Value float64
}

// CharLit is a resolved character literal, always typed `byte`.
type CharLit struct {
	base
	Value rune
}

// ByteStringLit is a resolved byte-string literal; the expression carries
// the `[]byte` slice type. The resolver fills in Bytes only: it installs no
// array or slice symbols, so ArraySym and SliceSym stay nil.
type ByteStringLit struct {
	base
	Bytes    []byte
	ArraySym *symbol.Symbol
	SliceSym *symbol.Symbol
}

// Cast is `(:T) expr`.
type Cast struct {
	base
	Inner Expr
}

// Unary covers every prefix-unary operator, including `&lvalue` (address-
// of) and `*expr` (dereference, which is additionally exposed as Deref for
// callers that only care about dereference specifically).
type Unary struct {
	base
	Op    lex.Kind
	Inner Expr
}

// Binary covers every infix operator.
type Binary struct {
	base
	Op    lex.Kind
	Left  Expr
	Right Expr
}

// Call is a resolved function call.
type Call struct {
	base
	Callee Expr
	Args   []Expr
}

// Index is `base[i]`; preserves lvalue-ness of an array base (spec.md
// section 4.4: "Indexing an array preserves lvalue-ness; indexing a slice
// does not" -- a slice index IS an lvalue too, since the slice points at
// storage; only the slice *value itself* is never an lvalue).
type Index struct {
	base
	Elem  Expr
	Index Expr
}

// Slice is `base[a:b]`.
type Slice struct {
	base
	Elem Expr
	Low  Expr
	High Expr
}

// Member is `base.name`, resolved to a struct/union member with its byte
// offset.
type Member struct {
	base
	Struct Expr
	Name   string
	Offset uint64
}

// Deref is `base.*`.
type Deref struct {
	base
	Ptr Expr
}

// Sizeof is `sizeof(T)`, always typed usize.
type Sizeof struct {
	base
	Of *types.Type
}

// Alignof is `alignof(T)`, always typed usize.
type Alignof struct {
	base
	Of *types.Type
}

// Fileof is `fileof()`, typed `[]byte`.
type Fileof struct {
	base
	File string
}

// Lineof is `lineof()`, typed usize.
type Lineof struct {
	base
	Line int
}

// Defined is `defined(symbol)`, folded to a compile-time bool at resolution
// time: whether a bare, single-element name is found in scope. A qualified
// or multi-element path always folds to false.
type Defined struct {
	base
	Result bool
}

// ArrayLit is `(:T)[e1, e2, ...]`.
type ArrayLit struct {
	base
	Elems    []Expr
	Ellipsis Expr
}

// FieldInit is one resolved `.name = expr` struct/union literal field.
type FieldInit struct {
	Name  string
	Value Expr
}

// StructLit is `(:T){.a = e1, .b = e2}`.
type StructLit struct {
	base
	Fields []FieldInit
}

// SliceLit is `(:T){ptr, count}`.
type SliceLit struct {
	base
	Ptr   Expr
	Count Expr
}

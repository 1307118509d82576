package cst

import (
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// TypeExpr is the tagged sum of type-level syntax: `*T`, `[N]T`, `[]T`,
// `func(..)T`, `struct{...}`, `union{...}`, `enum:T{...}`, `typeof(expr)`,
// and a plain named-symbol reference (spec.md section 4.4 "Type
// construction").
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedTypeExpr references a type by (possibly template-qualified) symbol,
// e.g. `Foo` or `List[[s32]]`.
type NamedTypeExpr struct {
	SpanV source.Span
	Name  *Symbol
}

func (*NamedTypeExpr) typeExprNode()      {}
func (n *NamedTypeExpr) Span() source.Span { return n.SpanV }

// PointerTypeExpr is `*Base`.
type PointerTypeExpr struct {
	SpanV source.Span
	Base  TypeExpr
}

func (*PointerTypeExpr) typeExprNode()      {}
func (n *PointerTypeExpr) Span() source.Span { return n.SpanV }

// ArrayTypeExpr is `[Count]Base`, where Count is an expression evaluated as
// usize at resolution time.
type ArrayTypeExpr struct {
	SpanV source.Span
	Count Expr
	Base  TypeExpr
}

func (*ArrayTypeExpr) typeExprNode()      {}
func (n *ArrayTypeExpr) Span() source.Span { return n.SpanV }

// SliceTypeExpr is `[]Base`.
type SliceTypeExpr struct {
	SpanV source.Span
	Base  TypeExpr
}

func (*SliceTypeExpr) typeExprNode()      {}
func (n *SliceTypeExpr) Span() source.Span { return n.SpanV }

// FuncTypeExpr is `func(P1, P2, ...) R`.
type FuncTypeExpr struct {
	SpanV      source.Span
	Params     []TypeExpr
	ReturnType TypeExpr
}

func (*FuncTypeExpr) typeExprNode()      {}
func (n *FuncTypeExpr) Span() source.Span { return n.SpanV }

// StructMemberExpr is one `name: T;` member of a struct/union type literal.
type StructMemberExpr struct {
	SpanV source.Span
	Name  string
	Type  TypeExpr
}

// StructTypeExpr is an inline `struct{...}` type literal.
type StructTypeExpr struct {
	SpanV   source.Span
	Members []StructMemberExpr
}

func (*StructTypeExpr) typeExprNode()      {}
func (n *StructTypeExpr) Span() source.Span { return n.SpanV }

// UnionTypeExpr is an inline `union{...}` type literal.
type UnionTypeExpr struct {
	SpanV   source.Span
	Members []StructMemberExpr
}

func (*UnionTypeExpr) typeExprNode()      {}
func (n *UnionTypeExpr) Span() source.Span { return n.SpanV }

// EnumValueExpr is one `Name = expr;` entry of an enum type literal.
type EnumValueExpr struct {
	SpanV source.Span
	Name  string
	Value Expr // nil if no explicit discriminant was given
}

// EnumTypeExpr is an inline `enum:T{...}` type literal.
type EnumTypeExpr struct {
	SpanV     source.Span
	Underlying TypeExpr
	Values    []EnumValueExpr
}

func (*EnumTypeExpr) typeExprNode()      {}
func (n *EnumTypeExpr) Span() source.Span { return n.SpanV }

// TypeofTypeExpr is `typeof(expr)` used in type position.
type TypeofTypeExpr struct {
	SpanV source.Span
	Expr  Expr
}

func (*TypeofTypeExpr) typeExprNode()      {}
func (n *TypeofTypeExpr) Span() source.Span { return n.SpanV }

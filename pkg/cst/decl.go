package cst

import (
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Decl is the tagged sum of top-level (and extend-body) declarations
// (spec.md section 3.2).
type Decl interface {
	Node
	DeclName() string
	declNode()
}

// TemplateParam is one element of a `[[T, U]]` template parameter list.
// IsValue distinguishes a value (constant) template parameter declared
// `name: T` from a type template parameter declared bare `T`.
type TemplateParam struct {
	Name    string
	IsValue bool
	Type    TypeExpr // only set when IsValue
}

// FuncParam is one `name: T` function parameter.
type FuncParam struct {
	SpanV source.Span
	Name  string
	Type  TypeExpr
}

// VarDecl is `var name: T = expr;` (or without initializer).
type VarDecl struct {
	SpanV   source.Span
	Name    string
	Type    TypeExpr // nil if inferred from Init
	Init    Expr     // nil if uninitialized (`uninit`)
}

func (d *VarDecl) declNode()            {}
func (d *VarDecl) Span() source.Span    { return d.SpanV }
func (d *VarDecl) DeclName() string     { return d.Name }

// ConstDecl is `let name: T = expr;`.
type ConstDecl struct {
	SpanV source.Span
	Name  string
	Type  TypeExpr // nil if inferred from Init
	Init  Expr
}

func (d *ConstDecl) declNode()         {}
func (d *ConstDecl) Span() source.Span { return d.SpanV }
func (d *ConstDecl) DeclName() string  { return d.Name }

// FuncDecl is `func name[[T]](params) R { body }`.
type FuncDecl struct {
	SpanV      source.Span
	Name       string
	Templates  []TemplateParam // nil if not a template
	Params     []FuncParam
	Variadic   bool
	ReturnType TypeExpr // nil means void
	Body       *Block   // nil for `extern func` prototypes handled by ExternFuncDecl instead
}

func (d *FuncDecl) declNode()         {}
func (d *FuncDecl) Span() source.Span { return d.SpanV }
func (d *FuncDecl) DeclName() string  { return d.Name }

// StructDecl is `struct name[[T]] { members }`.
type StructDecl struct {
	SpanV     source.Span
	Name      string
	Templates []TemplateParam
	Members   []StructMemberExpr
}

func (d *StructDecl) declNode()         {}
func (d *StructDecl) Span() source.Span { return d.SpanV }
func (d *StructDecl) DeclName() string  { return d.Name }

// UnionDecl is `union name[[T]] { members }`.
type UnionDecl struct {
	SpanV     source.Span
	Name      string
	Templates []TemplateParam
	Members   []StructMemberExpr
}

func (d *UnionDecl) declNode()         {}
func (d *UnionDecl) Span() source.Span { return d.SpanV }
func (d *UnionDecl) DeclName() string  { return d.Name }

// EnumDecl is `enum name: T { values funcs }`.
type EnumDecl struct {
	SpanV      source.Span
	Name       string
	Underlying TypeExpr
	Values     []EnumValueExpr
	Funcs      []*FuncDecl // member functions attached to the enum's scope
}

func (d *EnumDecl) declNode()         {}
func (d *EnumDecl) Span() source.Span { return d.SpanV }
func (d *EnumDecl) DeclName() string  { return d.Name }

// ExtendDecl is `extend T { decl }`, attaching a member to an existing
// type's scope. Per spec.md section 4.3, extend declarations must appear
// in source order after all non-extend declarations at module scope.
type ExtendDecl struct {
	SpanV  source.Span
	Target TypeExpr
	Inner  Decl
}

func (d *ExtendDecl) declNode()         {}
func (d *ExtendDecl) Span() source.Span { return d.SpanV }
func (d *ExtendDecl) DeclName() string  { return d.Inner.DeclName() }

// TypeAliasDecl is `type name = T;`.
type TypeAliasDecl struct {
	SpanV source.Span
	Name  string
	Type  TypeExpr
}

func (d *TypeAliasDecl) declNode()         {}
func (d *TypeAliasDecl) Span() source.Span { return d.SpanV }
func (d *TypeAliasDecl) DeclName() string  { return d.Name }

// ExternVarDecl is `extern var name: T;`.
type ExternVarDecl struct {
	SpanV source.Span
	Name  string
	Type  TypeExpr
}

func (d *ExternVarDecl) declNode()         {}
func (d *ExternVarDecl) Span() source.Span { return d.SpanV }
func (d *ExternVarDecl) DeclName() string  { return d.Name }

// ExternFuncDecl is `extern func name(params) R;`.
type ExternFuncDecl struct {
	SpanV      source.Span
	Name       string
	Params     []FuncParam
	Variadic   bool
	ReturnType TypeExpr
}

func (d *ExternFuncDecl) declNode()         {}
func (d *ExternFuncDecl) Span() source.Span { return d.SpanV }
func (d *ExternFuncDecl) DeclName() string  { return d.Name }

// ExternTypeDecl is `extern type name;`, an opaque type known only by name
// and (implementation-defined) size/alignment attributes.
type ExternTypeDecl struct {
	SpanV source.Span
	Name  string
	Size  Expr // nil if unspecified
	Align Expr // nil if unspecified
}

func (d *ExternTypeDecl) declNode()         {}
func (d *ExternTypeDecl) Span() source.Span { return d.SpanV }
func (d *ExternTypeDecl) DeclName() string  { return d.Name }

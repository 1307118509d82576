package cst

import (
	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Expr is the tagged sum of expression forms (spec.md section 3.2/4.2).
type Expr interface {
	Node
	exprNode()
}

// SymbolExpr is a bare symbol reference used as an expression, e.g.
// `foo::bar[[s32]]`.
type SymbolExpr struct {
	SpanV source.Span
	Sym   *Symbol
}

func (*SymbolExpr) exprNode()         {}
func (e *SymbolExpr) Span() source.Span { return e.SpanV }

// BoolLitExpr is `true` or `false`.
type BoolLitExpr struct {
	SpanV source.Span
	Value bool
}

func (*BoolLitExpr) exprNode()         {}
func (e *BoolLitExpr) Span() source.Span { return e.SpanV }

// IntLitExpr is an integer literal, carrying its big-integer value and
// optional type suffix exactly as tokenized (spec.md section 3.1).
type IntLitExpr struct {
	SpanV  source.Span
	Value  *bigint.Int
	Suffix *interner.Entry // nil if unsuffixed (unsized `integer`)
}

func (*IntLitExpr) exprNode()         {}
func (e *IntLitExpr) Span() source.Span { return e.SpanV }

// FloatLitExpr is a floating-point literal.
type FloatLitExpr struct {
	SpanV  source.Span
	Value  float64
	Suffix *interner.Entry // nil if unsuffixed (unsized `real`)
}

func (*FloatLitExpr) exprNode()         {}
func (e *FloatLitExpr) Span() source.Span { return e.SpanV }

// CharLitExpr is a character literal; always typed `byte`.
type CharLitExpr struct {
	SpanV source.Span
	Value rune
}

func (*CharLitExpr) exprNode()         {}
func (e *CharLitExpr) Span() source.Span { return e.SpanV }

// ByteStringLitExpr is a byte-string literal, post-escape-decoding. Per
// spec.md section 4.4, resolving this produces two symbols: a `[N+1]byte`
// array (with NUL terminator) and a `[]byte` slice over the first N bytes.
type ByteStringLitExpr struct {
	SpanV source.Span
	Value []byte
}

func (*ByteStringLitExpr) exprNode()         {}
func (e *ByteStringLitExpr) Span() source.Span { return e.SpanV }

// GroupExpr is an ungrouped `(expr)`.
type GroupExpr struct {
	SpanV source.Span
	Inner Expr
}

func (*GroupExpr) exprNode()         {}
func (e *GroupExpr) Span() source.Span { return e.SpanV }

// ArrayLitExpr is `(:T)[e1, e2, ...]` or `(:T)[e1, ...]` (with a trailing
// ellipsis element filling remaining indices).
type ArrayLitExpr struct {
	SpanV    source.Span
	Type     TypeExpr
	Elems    []Expr
	Ellipsis Expr // nil if no trailing `...` element
}

func (*ArrayLitExpr) exprNode()         {}
func (e *ArrayLitExpr) Span() source.Span { return e.SpanV }

// StructLitField is one `.name = expr` field initializer.
type StructLitField struct {
	SpanV source.Span
	Name  string
	Value Expr
}

// StructLitExpr is `(:T){ .a = e1, .b = e2 }`, a struct or union
// initializer.
type StructLitExpr struct {
	SpanV  source.Span
	Type   TypeExpr
	Fields []StructLitField
}

func (*StructLitExpr) exprNode()         {}
func (e *StructLitExpr) Span() source.Span { return e.SpanV }

// SliceLitExpr is `(:T){ ptr, count }`.
type SliceLitExpr struct {
	SpanV source.Span
	Type  TypeExpr
	Ptr   Expr
	Count Expr
}

func (*SliceLitExpr) exprNode()         {}
func (e *SliceLitExpr) Span() source.Span { return e.SpanV }

// CastExpr is `(:T) expr`, bound at prefix precedence.
type CastExpr struct {
	SpanV source.Span
	Type  TypeExpr
	Inner Expr
}

func (*CastExpr) exprNode()         {}
func (e *CastExpr) Span() source.Span { return e.SpanV }

// DefinedExpr is `defined(symbol)`.
type DefinedExpr struct {
	SpanV source.Span
	Sym   *Symbol
}

func (*DefinedExpr) exprNode()         {}
func (e *DefinedExpr) Span() source.Span { return e.SpanV }

// SizeofExpr is `sizeof(T)`.
type SizeofExpr struct {
	SpanV source.Span
	Type  TypeExpr
}

func (*SizeofExpr) exprNode()         {}
func (e *SizeofExpr) Span() source.Span { return e.SpanV }

// AlignofExpr is `alignof(T)`.
type AlignofExpr struct {
	SpanV source.Span
	Type  TypeExpr
}

func (*AlignofExpr) exprNode()         {}
func (e *AlignofExpr) Span() source.Span { return e.SpanV }

// FileofExpr is `fileof()`.
type FileofExpr struct {
	SpanV source.Span
}

func (*FileofExpr) exprNode()         {}
func (e *FileofExpr) Span() source.Span { return e.SpanV }

// LineofExpr is `lineof()`.
type LineofExpr struct {
	SpanV source.Span
}

func (*LineofExpr) exprNode()         {}
func (e *LineofExpr) Span() source.Span { return e.SpanV }

// EmbedExpr is `embed("path")`.
type EmbedExpr struct {
	SpanV source.Span
	Path  string
}

func (*EmbedExpr) exprNode()         {}
func (e *EmbedExpr) Span() source.Span { return e.SpanV }

// UnaryExpr covers `not +x -x -%x ~x *x &x startof(x) countof(x)`.
type UnaryExpr struct {
	SpanV source.Span
	Op    lex.Kind
	Inner Expr
}

func (*UnaryExpr) exprNode()         {}
func (e *UnaryExpr) Span() source.Span { return e.SpanV }

// BinaryExpr covers every infix arithmetic/compare/shift/bit/logical
// operator.
type BinaryExpr struct {
	SpanV source.Span
	Op    lex.Kind
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode()         {}
func (e *BinaryExpr) Span() source.Span { return e.SpanV }

// CallExpr is `expr(args)`.
type CallExpr struct {
	SpanV  source.Span
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode()         {}
func (e *CallExpr) Span() source.Span { return e.SpanV }

// IndexExpr is `expr[i]`.
type IndexExpr struct {
	SpanV source.Span
	Base  Expr
	Index Expr
}

func (*IndexExpr) exprNode()         {}
func (e *IndexExpr) Span() source.Span { return e.SpanV }

// SliceExpr is `expr[a:b]`.
type SliceExpr struct {
	SpanV source.Span
	Base  Expr
	Low   Expr // nil means 0
	High  Expr // nil means countof(Base)
}

func (*SliceExpr) exprNode()         {}
func (e *SliceExpr) Span() source.Span { return e.SpanV }

// MemberExpr is `expr.name`.
type MemberExpr struct {
	SpanV source.Span
	Base  Expr
	Name  string
}

func (*MemberExpr) exprNode()         {}
func (e *MemberExpr) Span() source.Span { return e.SpanV }

// DerefExpr is `expr.*`.
type DerefExpr struct {
	SpanV source.Span
	Base  Expr
}

func (*DerefExpr) exprNode()         {}
func (e *DerefExpr) Span() source.Span { return e.SpanV }

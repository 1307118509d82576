package cst

import (
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Stmt is the tagged sum of statement forms (spec.md section 3.2).
type Stmt interface {
	Node
	stmtNode()
}

// Block is a brace-enclosed sequence of statements; it is itself block-
// bearing, so it does not require a trailing `;`.
type Block struct {
	SpanV source.Span
	Stmts []Stmt
}

func (s *Block) stmtNode()         {}
func (s *Block) Span() source.Span { return s.SpanV }

// DeclStmt wraps a local `var`/`let`/`func`/... declaration used as a
// statement inside a function body.
type DeclStmt struct {
	SpanV source.Span
	Decl  Decl
}

func (s *DeclStmt) stmtNode()         {}
func (s *DeclStmt) Span() source.Span { return s.SpanV }

// DeferBlockStmt is `defer { ... }`.
type DeferBlockStmt struct {
	SpanV source.Span
	Body  *Block
}

func (s *DeferBlockStmt) stmtNode()         {}
func (s *DeferBlockStmt) Span() source.Span { return s.SpanV }

// DeferExprStmt is `defer expr;`.
type DeferExprStmt struct {
	SpanV source.Span
	Expr  Expr
}

func (s *DeferExprStmt) stmtNode()         {}
func (s *DeferExprStmt) Span() source.Span { return s.SpanV }

// IfClause is one `if`/`elif` arm of an if/elif/else chain.
type IfClause struct {
	SpanV     source.Span
	Condition Expr
	Body      *Block
}

// IfStmt is a full `if/elif*/else?` chain.
type IfStmt struct {
	SpanV   source.Span
	Clauses []IfClause
	Else    *Block // nil if there is no else arm
}

func (s *IfStmt) stmtNode()         {}
func (s *IfStmt) Span() source.Span { return s.SpanV }

// WhenClause is one `when`/`elwhen` arm of a compile-time conditional chain.
type WhenClause struct {
	SpanV     source.Span
	Condition Expr // must fold to a compile-time bool
	Body      *Block
}

// WhenStmt is a `when/elwhen*/else?` compile-time conditional: exactly one
// arm's body is resolved, chosen by evaluating each Condition in turn
// (spec.md section 3.2).
type WhenStmt struct {
	SpanV   source.Span
	Clauses []WhenClause
	Else    *Block
}

func (s *WhenStmt) stmtNode()         {}
func (s *WhenStmt) Span() source.Span { return s.SpanV }

// ForRangeStmt is `for name in expr { body }`, iterating an array or slice.
type ForRangeStmt struct {
	SpanV    source.Span
	VarName  string
	Range    Expr
	Body     *Block
}

func (s *ForRangeStmt) stmtNode()         {}
func (s *ForRangeStmt) Span() source.Span { return s.SpanV }

// ForExprStmt is `for expr { body }`, looping while expr is true.
type ForExprStmt struct {
	SpanV     source.Span
	Condition Expr // nil means `for { ... }`, an unconditional loop
	Body      *Block
}

func (s *ForExprStmt) stmtNode()         {}
func (s *ForExprStmt) Span() source.Span { return s.SpanV }

// BreakStmt is `break;`.
type BreakStmt struct {
	SpanV source.Span
}

func (s *BreakStmt) stmtNode()         {}
func (s *BreakStmt) Span() source.Span { return s.SpanV }

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	SpanV source.Span
}

func (s *ContinueStmt) stmtNode()         {}
func (s *ContinueStmt) Span() source.Span { return s.SpanV }

// SwitchCase is one `case expr, expr: { body }` arm, or the `else` arm when
// Values is nil.
type SwitchCase struct {
	SpanV  source.Span
	Values []Expr // nil marks the `else` arm
	Body   *Block
}

// SwitchStmt is `switch expr { case ...: {} else: {} }`.
type SwitchStmt struct {
	SpanV   source.Span
	Subject Expr
	Cases   []SwitchCase
}

func (s *SwitchStmt) stmtNode()         {}
func (s *SwitchStmt) Span() source.Span { return s.SpanV }

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	SpanV source.Span
	Value Expr // nil for `return;` in a void function
}

func (s *ReturnStmt) stmtNode()         {}
func (s *ReturnStmt) Span() source.Span { return s.SpanV }

// AssertStmt is `assert expr;`.
type AssertStmt struct {
	SpanV     source.Span
	Condition Expr
}

func (s *AssertStmt) stmtNode()         {}
func (s *AssertStmt) Span() source.Span { return s.SpanV }

// AssignStmt is `lhs OP= rhs;` for any of the fourteen assignment sigils.
type AssignStmt struct {
	SpanV source.Span
	Op    lex.Kind
	LHS   Expr
	RHS   Expr
}

func (s *AssignStmt) stmtNode()         {}
func (s *AssignStmt) Span() source.Span { return s.SpanV }

// ExprStmt is a bare expression used as a statement (e.g. a call for its
// side effects).
type ExprStmt struct {
	SpanV source.Span
	Expr  Expr
}

func (s *ExprStmt) stmtNode()         {}
func (s *ExprStmt) Span() source.Span { return s.SpanV }

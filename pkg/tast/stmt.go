package tast

import (
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
)

// Stmt is the tagged sum of typed statement forms. A `when`/`elwhen`/`else`
// compile-time conditional (spec.md section 3.2) is resolved away entirely
// by the resolver: only the winning clause's statements are flattened into
// the surrounding Block, so there is no typed When node.
type Stmt interface {
	Span() source.Span
	stmtNode()
}

type stmtBase struct {
	SpanV source.Span
}

func (b *stmtBase) Span() source.Span { return b.SpanV }
func (*stmtBase) stmtNode()          {}

// Block is a resolved function-body or nested block, with its own symbol
// table for locals (spec.md section 4.4).
type Block struct {
	stmtBase
	Scope *symbol.Table
	Stmts []Stmt
	// Defers is the reverse-order linked chain of defer statements
	// registered directly in this block (spec.md section 4.4/9: "defer
	// forms a reverse-order linked list").
	Defers []Stmt
}

// DeclStmt installs a local variable or constant and optionally evaluates
// its initializer.
type DeclStmt struct {
	stmtBase
	Sym  *symbol.Symbol
	Init Expr
}

// DeferBlock is `defer { ... }`.
type DeferBlock struct {
	stmtBase
	Body *Block
}

// DeferExpr is `defer expr;`.
type DeferExpr struct {
	stmtBase
	Expr Expr
}

// IfClause is one resolved `if`/`elif` arm.
type IfClause struct {
	Condition Expr
	Body      *Block
}

// If is a resolved if/elif/else chain.
type If struct {
	stmtBase
	Clauses []IfClause
	Else    *Block
}

// ForRange iterates an array or slice, binding VarSym to each element.
type ForRange struct {
	stmtBase
	VarSym *symbol.Symbol
	Range  Expr
	Body   *Block
	// DeferBegin/DeferEnd capture the enclosing defer-chain endpoints that
	// a break/continue inside this loop must execute on exit (spec.md
	// section 4.4/9).
	DeferBegin, DeferEnd int
}

// ForExpr loops while Condition is true (or unconditionally if nil).
type ForExpr struct {
	stmtBase
	Condition            Expr
	Body                 *Block
	DeferBegin, DeferEnd int
}

// Break is `break;`.
type Break struct {
	stmtBase
	DeferBegin, DeferEnd int
}

// Continue is `continue;`.
type Continue struct {
	stmtBase
	DeferBegin, DeferEnd int
}

// SwitchCase is one resolved `case`/`else` arm.
type SwitchCase struct {
	Values []Expr // nil marks the else arm
	Body   *Block
}

// Switch is a resolved switch statement.
type Switch struct {
	stmtBase
	Subject Expr
	Cases   []SwitchCase
}

// Return is `return expr?;`, capturing the outermost defer chain to run on
// the way out (spec.md section 4.4).
type Return struct {
	stmtBase
	Value      Expr
	DeferBegin int
}

// Assert is `assert expr;`. If Condition is a compile-time constant, the
// resolver evaluates it eagerly and turns a statically-false assertion into
// a fatal diagnostic rather than deferring to runtime (spec.md section
// 6.3).
type Assert struct {
	stmtBase
	Condition Expr
}

// Assign is `lhs OP= rhs;`.
type Assign struct {
	stmtBase
	Op  lex.Kind
	LHS Expr
	RHS Expr
}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	stmtBase
	Expr Expr
}

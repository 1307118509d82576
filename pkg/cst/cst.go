// Package cst implements the immutable Concrete Syntax Tree spec.md section
// 3.2 describes: a near-source tree produced by pkg/parse and consumed by
// pkg/order and pkg/resolve. Every tagged sum in the data model (Decl, Stmt,
// Expr, TypeExpr, Symbol) is encoded as a Go interface with a small closed
// method set implemented by one struct per variant, switched over with a
// type switch — the same pattern the teacher uses for its own Type and Expr
// sums (pkg/corset/ast/type.go, pkg/corset/ast/expression.go).
package cst

import (
	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Node is the common capability of every CST node: its source extent.
type Node interface {
	Span() source.Span
}

// SymbolOrigin marks how a Symbol path is anchored (spec.md section 3.2).
type SymbolOrigin int

const (
	// OriginNone is an ordinary, scope-relative symbol (e.g. `foo::bar`).
	OriginNone SymbolOrigin = iota
	// OriginRoot is a `::`-rooted symbol (e.g. `::foo`).
	OriginRoot
	// OriginType is a `typeof(expr)::name` symbol.
	OriginType
)

// SymbolElement is one `name[[args]]` segment of a qualified symbol path.
type SymbolElement struct {
	Name          *interner.Entry
	TemplateArgs  []TypeExpr // nil if no `[[...]]` was given
}

// Symbol is a qualified name path: spec.md section 3.2's "origin marker
// (none, root i.e. ::name, type i.e. typeof(...)::name) plus an ordered
// list of (identifier, optional template-arguments) elements."
type Symbol struct {
	SpanV    source.Span
	Origin   SymbolOrigin
	TypeExpr TypeExpr // only set when Origin == OriginType
	Elements []SymbolElement
}

// Span implements Node.
func (s *Symbol) Span() source.Span { return s.SpanV }

// Module is the root CST node: an optional namespace path, an import list,
// and the module's top-level declarations, in source order (spec.md
// section 3.2).
type Module struct {
	Name      string // module name used for diagnostics, e.g. the file path
	Namespace []string // dot-free path segments; nil if no `namespace` decl
	Imports   []*Import
	Decls     []Decl
}

// Import is a single `import "path";` declaration.
type Import struct {
	SpanV source.Span
	Path  string
}

// Span implements Node.
func (i *Import) Span() source.Span { return i.SpanV }

// Package symbol implements the symbol tables, scopes, objects, and
// addresses spec.md section 3.4 describes: insertion-ordered tables chained
// by parent pointer, looked up by pointer-equality on interned identifier
// names, holding one of six symbol kinds (type, variable, constant,
// function, template, namespace).
//
// It is grounded on the teacher's pkg/corset/compiler/scope.go
// (Scope interface with Bind/IsVisible) and environment.go's nested
// ModuleScope chaining, adapted from corset's flat column/register
// namespace to the language's lexical var/const/func/type/template/
// namespace symbol kinds.
package symbol

import (
	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// Kind discriminates a Symbol (spec.md section 3.4).
type Kind int

const (
	KindType Kind = iota
	KindVar
	KindConst
	KindFunc
	KindTemplate
	KindNamespace
)

// AddrKind discriminates an Address (spec.md section 3.4).
type AddrKind int

const (
	AddrAbsolute AddrKind = iota
	AddrStatic
	AddrLocal
)

// Address is where an Object's storage lives. Exactly one of the kind-
// specific fields is meaningful, selected by Kind.
type Address struct {
	Kind AddrKind

	Absolute uint64 // AddrAbsolute

	StaticLabel  string // AddrStatic
	StaticOffset uint64 // AddrStatic

	LocalName  string // AddrLocal
	LocalIsParam bool // AddrLocal: true if this local is a function parameter
}

// Object is the storage a variable or constant symbol denotes: a type, an
// address, an optional known compile-time value, and whether it is an
// extern declaration (spec.md section 3.4: "mutually exclusive with having
// a value"). Value is declared `any` to avoid an import cycle with
// pkg/value (which itself references *types.Type, not *symbol.Object), and
// is type-asserted back to *value.Value by pkg/eval and pkg/resolve.
type Object struct {
	Type     *types.Type
	Addr     Address
	Value    any // *value.Value, or nil if not a compile-time constant
	IsExtern bool
}

// Symbol is one named entity in a Table: spec.md section 3.4's closed sum
// of type/variable/constant/function/template/namespace, plus common
// bookkeeping (source location, name, usage counter).
type Symbol struct {
	Kind  Kind
	Name  *interner.Entry
	Span  source.Span
	Uses  int

	// KindType
	Type *types.Type

	// KindVar, KindConst
	Object *Object

	// KindFunc
	Func *Func

	// KindTemplate
	Template *Template

	// KindNamespace
	Namespace *Table
}

// Func is the payload of a KindFunc symbol: its resolved type and the
// (architecture-defined) address of its entry point.
type Func struct {
	Type       *types.Type
	Addr       Address
	ParamNames []string
	IsExtern   bool
	IsVariadic bool
	// Body is the typed function body, set once the resolver finishes this
	// function. Declared `any` (-> *tast.Block) to avoid an import cycle,
	// since pkg/tast depends on pkg/symbol for scope references.
	Body any
}

// Template is the payload of a KindTemplate symbol: the original
// declaration plus the scope it was declared in, and a cache of already-
// instantiated names to their concrete symbol (spec.md section 3.4/4.4).
type Template struct {
	// Decl is the cst.Decl being templated (declared `any` to avoid a
	// dependency from pkg/symbol on pkg/cst; pkg/resolve type-asserts it
	// back).
	Decl        any
	ParentScope *Table
	NamePrefix  string
	AddrPrefix  string
	Instances   map[string]*Symbol // keyed by mangled argument tuple
}

// MarkUsed increments this symbol's usage counter.
func (s *Symbol) MarkUsed() {
	s.Uses++
}

// Package resolve implements the resolver spec.md section 4.4 describes:
// the largest stage of the pipeline, walking `module.ordered` to install
// every declaration's symbol, construct its type from the CST's
// TypeExpr syntax, and resolve every function body to a typed AST
// (pkg/tast), enforcing the lvalue, completion, and template-instantiation
// rules along the way.
//
// It is grounded on the teacher's pkg/corset/compiler resolution passes
// (environment.go's scope-threaded Resolve methods on the AST, and
// assignment.go's two-phase "declare then complete" handling of
// inter-referential columns), generalized from corset's flat column/
// constraint namespace to this language's nested struct/union/enum/func/
// template/namespace symbol kinds.
package resolve

import (
	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/eval"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// Resolver walks one module's ordered declarations, installing symbols and
// producing typed ASTs. A fresh Resolver is constructed per module by the
// compiler driver (pkg/compiler), sharing the process-wide interner, type
// registry, and global table across all modules.
type Resolver struct {
	Intern   *interner.Table
	Types    *types.Registry
	Emit     *diag.Emitter
	File     *source.File
	Module   *symbol.Table // this module's namespace-scoped symbol table
	Global   *symbol.Table // process-wide root table, parent of every module table

	// Chain is the active template-instantiation chain, threaded through
	// every diagnostic this resolver raises (spec.md section 6).
	Chain []diag.Link

	eval *eval.Evaluator

	// deferStack holds one defer-chain mark per enclosing function body,
	// loop body, or block being resolved; tast.Break/Continue capture the
	// innermost mark as their DeferBegin.
	deferStack []int
}

// New constructs a Resolver for one module.
func New(intern *interner.Table, reg *types.Registry, emit *diag.Emitter, file *source.File, global, module *symbol.Table) *Resolver {
	r := &Resolver{Intern: intern, Types: reg, Emit: emit, File: file, Module: module, Global: global}
	r.eval = eval.New(reg, emit, file)

	return r
}

func (r *Resolver) fatal(span source.Span, format string, args ...any) {
	r.Emit.Fatal(r.File, span, r.Chain, format, args...)
}

// ResolveModule installs every module-level declaration in dependency
// order, then resolves every function body (spec.md section 4.4: type
// construction and symbol installation happen in ordered-declaration order;
// function bodies are resolved only once every module-level symbol exists,
// so that forward references inside a function body -- calling a function
// declared later in the file -- are always legal).
func (r *Resolver) ResolveModule(ordered []cst.Decl) {
	for _, d := range ordered {
		r.installDecl(r.Module, d)
	}

	for _, d := range ordered {
		r.resolveBody(d)
	}

	r.Module.Freeze()
}

// installDecl installs the symbol (and, for type-introducing declarations,
// constructs the type) for one module-level or extend-body declaration.
// Function bodies and constant initializer expressions are deferred to
// resolveBody.
func (r *Resolver) installDecl(scope *symbol.Table, d cst.Decl) {
	switch decl := d.(type) {
	case *cst.VarDecl:
		r.installVar(scope, decl)
	case *cst.ConstDecl:
		r.installConst(scope, decl)
	case *cst.FuncDecl:
		r.installFunc(scope, decl)
	case *cst.StructDecl:
		r.installStruct(scope, decl)
	case *cst.UnionDecl:
		r.installUnion(scope, decl)
	case *cst.EnumDecl:
		r.installEnum(scope, decl)
	case *cst.TypeAliasDecl:
		r.installTypeAlias(scope, decl)
	case *cst.ExternVarDecl:
		r.installExternVar(scope, decl)
	case *cst.ExternFuncDecl:
		r.installExternFunc(scope, decl)
	case *cst.ExternTypeDecl:
		r.installExternType(scope, decl)
	case *cst.ExtendDecl:
		r.installExtend(scope, decl)
	}
}

// resolveBody resolves the executable content (function bodies, constant/
// variable initializer values) of an already-installed declaration.
func (r *Resolver) resolveBody(d cst.Decl) {
	switch decl := d.(type) {
	case *cst.FuncDecl:
		r.resolveFuncBody(decl)
	case *cst.ConstDecl:
		r.resolveConstInit(decl)
	case *cst.VarDecl:
		r.resolveVarInit(decl)
	case *cst.ExtendDecl:
		r.resolveBody(decl.Inner)
	}
}

func (r *Resolver) bind(scope *symbol.Table, name *interner.Entry, sym *symbol.Symbol) {
	if !scope.Insert(name, sym) {
		r.fatal(sym.Span, "redeclaration of %q in this scope", name.String())
	}
}

// lookup resolves a single identifier through scope, the builtin type
// names, and the global table (spec.md section 3.4).
func (r *Resolver) lookup(scope *symbol.Table, name *interner.Entry, span source.Span) (*symbol.Symbol, bool) {
	if sym, ok := scope.Lookup(name); ok {
		return sym, true
	}

	return nil, false
}

// pushDeferMark and popDeferMark bracket the resolution of a function body,
// loop body, or block with a defer-chain mark; currentDeferMark returns the
// innermost mark (0 when
// none is pushed), which break/continue capture as their DeferBegin.
func (r *Resolver) pushDeferMark(mark int) {
	r.deferStack = append(r.deferStack, mark)
}

func (r *Resolver) popDeferMark() {
	r.deferStack = r.deferStack[:len(r.deferStack)-1]
}

func (r *Resolver) currentDeferMark() int {
	if len(r.deferStack) == 0 {
		return 0
	}

	return r.deferStack[len(r.deferStack)-1]
}

// Package compiler implements the process-wide Context and per-module
// pipeline driver: Lex -> Parse -> Order -> Resolve (spec.md section 2,
// section 5). This mirrors the teacher's single-threaded
// GlobalEnvironment/ModuleScope root, constructed once per run by
// pkg/cmd and threaded through every compilation stage without locking.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/order"
	"github.com/ashn-dot-dev/sunder/pkg/parse"
	"github.com/ashn-dot-dev/sunder/pkg/resolve"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/util"
)

// Config carries the user-facing knobs that shape a compilation run (named
// after the teacher's corset.CompilationConfig, pkg/cmd/root.go).
type Config struct {
	Target  types.Arch
	Verbose bool
	Strict  bool
}

// Module is one compiled translation unit: its source file, parsed CST,
// and the private symbol table its own top-level declarations were
// installed into (a copy is merged into the shared namespace table, if
// any -- see compileModule).
type Module struct {
	Path  string
	File  *source.File
	CST   *cst.Module
	Scope *symbol.Table
}

// Context is the process-wide compilation state (spec.md section 2):
// one interner, one type registry, one diagnostic emitter, one global
// scope, and the set of modules loaded so far, keyed by canonicalized
// path so that an import graph with diamonds loads each file exactly
// once.
type Context struct {
	Config  Config
	Intern  *interner.Table
	Types   *types.Registry
	Emit    *diag.Emitter
	Global  *symbol.Table
	Modules map[string]*Module

	loading    map[string]bool
	namespaces map[string]*symbol.Table
}

// NewContext constructs a Context for the given configuration, pre-
// binding every builtin primitive type into the global scope under its
// spec.md section 3.3 name.
func NewContext(cfg Config, emit *diag.Emitter) *Context {
	c := &Context{
		Config:     cfg,
		Intern:     interner.New(),
		Types:      types.NewRegistry(cfg.Target),
		Emit:       emit,
		Modules:    make(map[string]*Module),
		loading:    make(map[string]bool),
		namespaces: make(map[string]*symbol.Table),
	}

	c.Global = symbol.NewTable(nil)
	c.bindBuiltins()

	return c
}

func (c *Context) bindBuiltins() {
	builtins := []*types.Type{
		c.Types.Any, c.Types.VoidT, c.Types.BoolT, c.Types.ByteT,
		c.Types.S8, c.Types.S16, c.Types.S32, c.Types.S64, c.Types.SSizeT,
		c.Types.U8, c.Types.U16, c.Types.U32, c.Types.U64, c.Types.USizeT,
		c.Types.IntegerT, c.Types.F32T, c.Types.F64T, c.Types.RealT,
	}

	for _, t := range builtins {
		name := c.Intern.InternString(t.Name())
		c.Global.Insert(name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Type: t})
	}
}

// CompilePath canonicalizes path and runs the full pipeline over it and
// every module it transitively imports, returning the entry module.
// Each distinct path is compiled exactly once and cached in c.Modules.
func (c *Context) CompilePath(path string) (*Module, error) {
	abs, err := canonicalize(path)
	if err != nil {
		return nil, err
	}

	return c.compileModule(abs)
}

func (c *Context) compileModule(abs string) (*Module, error) {
	if m, ok := c.Modules[abs]; ok {
		return m, nil
	}

	if c.loading[abs] {
		return nil, fmt.Errorf("import cycle loading %s", abs)
	}

	c.loading[abs] = true
	defer delete(c.loading, abs)

	file, err := source.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	l := lex.New(file, c.Intern, c.Emit)
	p := parse.New(file, l, c.Intern, c.Emit)
	mod := p.ParseModule(abs)

	dir := filepath.Dir(abs)

	scope := c.moduleScope(mod.Namespace)

	for _, imp := range mod.Imports {
		impPath := imp.Path
		if !filepath.IsAbs(impPath) {
			impPath = filepath.Join(dir, impPath)
		}

		impMod, err := c.compileModule(filepath.Clean(impPath))
		if err != nil {
			return nil, err
		}

		// spec.md section 4.3: "an import's exported symbols are merged
		// into the importer's namespace scope." A symbol already present
		// (a diamond import, or two modules sharing impMod's namespace)
		// is left as-is rather than raising a redeclaration error.
		for _, sym := range impMod.Scope.Entries() {
			scope.Insert(sym.Name, sym)
		}
	}

	orderer := order.New(c.Emit, file)
	ordered := orderer.Order(mod.Decls)

	r := resolve.New(c.Intern, c.Types, c.Emit, file, c.Global, scope)
	r.ResolveModule(ordered)

	// spec.md section 4.3: top-level declarations "install symbols into
	// the module's namespace chain." scope itself freezes with the owning
	// module (resolve.ResolveModule's last step), so its declarations are
	// copied up into the shared, never-frozen namespace table, making them
	// visible to every other module that declares the same `namespace
	// a::b::c;` path.
	if len(mod.Namespace) > 0 {
		ns := c.namespaceScope(mod.Namespace)
		for _, sym := range scope.Entries() {
			ns.Insert(sym.Name, sym)
		}
	}

	m := &Module{Path: abs, File: file, CST: mod, Scope: scope}
	c.Modules[abs] = m

	return m, nil
}

// moduleScope returns the private symbol table a module's own top-level
// declarations install into: a fresh table parented at the module's
// namespace chain (or directly at the global scope for a module with no
// `namespace` declaration), so unqualified lookups fall through to anything
// already visible in that namespace.
func (c *Context) moduleScope(segments []string) *symbol.Table {
	return symbol.NewTable(c.namespaceScope(segments))
}

// namespaceScope returns the symbol table a `namespace a::b::c;` declaration
// installs into, creating (and caching, keyed by util.Path's canonical
// `::`-joined string) one nested KindNamespace symbol per segment so that
// two modules declaring the same namespace share its table.
func (c *Context) namespaceScope(segments []string) *symbol.Table {
	if len(segments) == 0 {
		return c.Global
	}

	path := util.NewAbsolutePath(segments...)
	key := path.String()

	if t, ok := c.namespaces[key]; ok {
		return t
	}

	parent := c.namespaceScope(segments[:len(segments)-1])
	name := c.Intern.InternString(segments[len(segments)-1])

	if sym, ok := parent.LookupLocal(name); ok && sym.Kind == symbol.KindNamespace {
		c.namespaces[key] = sym.Namespace

		return sym.Namespace
	}

	t := symbol.NewTable(parent)
	parent.Insert(name, &symbol.Symbol{Kind: symbol.KindNamespace, Name: name, Namespace: t})
	c.namespaces[key] = t

	return t
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

// Succeeded reports whether the run as a whole compiled cleanly: no
// Error/Fatal diagnostic was ever emitted.
func (c *Context) Succeeded() bool {
	return !c.Emit.Errored()
}

// ArchFromEnv resolves the target architecture the way spec.md section 6
// describes: an explicit flag value wins, otherwise the SUNDER_ARCH
// environment variable, otherwise amd64.
func ArchFromEnv(flagValue string) types.Arch {
	resolved := util.None[types.Arch]()

	if flagValue != "" {
		if a, ok := types.ParseArch(flagValue); ok {
			resolved = util.Some(a)
		}
	}

	if resolved.IsEmpty() {
		if env := os.Getenv("SUNDER_ARCH"); env != "" {
			if a, ok := types.ParseArch(env); ok {
				resolved = util.Some(a)
			}
		}
	}

	return resolved.UnwrapOr(types.AMD64)
}

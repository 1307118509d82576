// Package order implements the dependency orderer spec.md section 2's
// pipeline names as the stage between parsing and resolution: given a
// module's top-level declarations in source order, it produces a
// dependency-respecting order, the `module.ordered` the resolver then walks
// so that every declaration is resolved only after the declarations its
// type (and constant initializers) require.
//
// It is grounded on the teacher's own column/constraint ordering pass
// (pkg/corset/compiler/assignment.go's three-state "allocate, allocating,
// allocated" worklist over inter-column dependencies), generalized here from
// column-assignment order to declaration order, and the cycle states
// renamed to match this package's domain (unordered/ordering/ordered).
package order

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// state is a node's position in the three-state DFS (spec.md section 2).
type state int

const (
	unordered state = iota
	ordering
	ordered
)

type node struct {
	decl  cst.Decl
	name  string
	deps  []string
	st    state
	index int // original source-order position, for deterministic dep scans
}

// Orderer computes module.ordered from a module's top-level declarations.
type Orderer struct {
	emit *diag.Emitter
	file *source.File
}

// New constructs an Orderer.
func New(emit *diag.Emitter, file *source.File) *Orderer {
	return &Orderer{emit: emit, file: file}
}

// Order returns decls reordered so that every declaration follows every
// other module-level declaration its type (or, for var/let, its
// initializer) directly names, with extend declarations placed after every
// non-extend declaration (spec.md section 4.3). It raises a fatal
// diagnostic on a dependency cycle.
func (o *Orderer) Order(decls []cst.Decl) []cst.Decl {
	var nonExtend, extend []cst.Decl

	for _, d := range decls {
		if _, ok := d.(*cst.ExtendDecl); ok {
			extend = append(extend, d)
		} else {
			nonExtend = append(nonExtend, d)
		}
	}

	names := make(map[string]*node, len(nonExtend))
	nodes := make([]*node, len(nonExtend))

	for i, d := range nonExtend {
		n := &node{decl: d, name: d.DeclName(), index: i}
		nodes[i] = n
		names[n.name] = n
	}

	for _, n := range nodes {
		n.deps = dependencies(n.decl)
	}

	var out []cst.Decl
	var chain []diag.Link

	var visit func(n *node) bool

	visit = func(n *node) bool {
		switch n.st {
		case ordered:
			return true
		case ordering:
			chain = append(chain, diag.Link{Site: n.decl.Span(), File: o.file, Name: n.name})

			return false
		}

		n.st = ordering

		for _, dep := range n.deps {
			target, ok := names[dep]
			if !ok || target == n {
				continue
			}

			if !visit(target) {
				chain = append(chain, diag.Link{Site: n.decl.Span(), File: o.file, Name: n.name})

				return false
			}
		}

		n.st = ordered
		out = append(out, n.decl)

		return true
	}

	for _, n := range nodes {
		if n.st == unordered {
			if !visit(n) {
				o.emit.Fatal(o.file, chain[0].Site, chain[1:], "circular dependency created by declaration of %s", chain[0].Name)

				return nil
			}
		}
	}

	out = append(out, orderExtends(extend)...)

	return out
}

// orderExtends places extend declarations after every non-extend
// declaration, preserving their relative source order (spec.md section
// 4.3: extend decls do not participate in the dependency DFS, since their
// target type must already be fully declared by the time any `extend` is
// legal).
func orderExtends(extend []cst.Decl) []cst.Decl {
	return extend
}

// dependencies returns the names of other module-level declarations that
// decl must be ordered after.
func dependencies(decl cst.Decl) []string {
	var names []string
	add := func(n string) { names = append(names, n) }

	switch d := decl.(type) {
	case *cst.VarDecl:
		collectTypeExpr(d.Type, add)
		collectExpr(d.Init, add)
	case *cst.ConstDecl:
		collectTypeExpr(d.Type, add)
		collectExpr(d.Init, add)
	case *cst.FuncDecl:
		for _, p := range d.Params {
			collectTypeExpr(p.Type, add)
		}

		collectTypeExpr(d.ReturnType, add)
	case *cst.StructDecl:
		for _, m := range d.Members {
			collectDirectMemberType(m.Type, add)
		}
	case *cst.UnionDecl:
		for _, m := range d.Members {
			collectDirectMemberType(m.Type, add)
		}
	case *cst.EnumDecl:
		collectTypeExpr(d.Underlying, add)

		for _, v := range d.Values {
			collectExpr(v.Value, add)
		}
	case *cst.TypeAliasDecl:
		collectTypeExpr(d.Type, add)
	case *cst.ExternVarDecl:
		collectTypeExpr(d.Type, add)
	case *cst.ExternFuncDecl:
		for _, p := range d.Params {
			collectTypeExpr(p.Type, add)
		}

		collectTypeExpr(d.ReturnType, add)
	case *cst.ExternTypeDecl:
		collectExpr(d.Size, add)
		collectExpr(d.Align, add)
	}

	return names
}

// collectDirectMemberType records a dependency for a struct/union member
// type unless it is reached only through a pointer or slice, which per
// spec.md section 4.3 never forces ordering (and is what makes
// self-referential and mutually-referential linked structures legal).
func collectDirectMemberType(t cst.TypeExpr, add func(string)) {
	switch t.(type) {
	case *cst.PointerTypeExpr, *cst.SliceTypeExpr:
		return
	}

	collectTypeExpr(t, add)
}

func collectTypeExpr(t cst.TypeExpr, add func(string)) {
	if t == nil {
		return
	}

	switch te := t.(type) {
	case *cst.NamedTypeExpr:
		collectSymbol(te.Name, add)
	case *cst.PointerTypeExpr:
		collectTypeExpr(te.Base, add)
	case *cst.ArrayTypeExpr:
		collectExpr(te.Count, add)
		collectTypeExpr(te.Base, add)
	case *cst.SliceTypeExpr:
		collectTypeExpr(te.Base, add)
	case *cst.FuncTypeExpr:
		for _, p := range te.Params {
			collectTypeExpr(p, add)
		}

		collectTypeExpr(te.ReturnType, add)
	case *cst.StructTypeExpr:
		for _, m := range te.Members {
			collectTypeExpr(m.Type, add)
		}
	case *cst.UnionTypeExpr:
		for _, m := range te.Members {
			collectTypeExpr(m.Type, add)
		}
	case *cst.EnumTypeExpr:
		collectTypeExpr(te.Underlying, add)

		for _, v := range te.Values {
			collectExpr(v.Value, add)
		}
	case *cst.TypeofTypeExpr:
		collectExpr(te.Expr, add)
	}
}

func collectSymbol(s *cst.Symbol, add func(string)) {
	if s == nil || len(s.Elements) == 0 {
		return
	}

	// Only a bare, scope-relative, single-element reference can possibly
	// name a module-level sibling declaration; `::`-rooted, multi-element
	// (namespace-qualified), and typeof-origin symbols resolve through
	// scope lookup or another module entirely and are not module-local
	// ordering dependencies.
	if s.Origin == cst.OriginNone && len(s.Elements) == 1 {
		add(s.Elements[0].Name.String())
	}

	for _, el := range s.Elements {
		for _, arg := range el.TemplateArgs {
			collectTypeExpr(arg, add)
		}
	}
}

func collectExpr(e cst.Expr, add func(string)) {
	if e == nil {
		return
	}

	switch ex := e.(type) {
	case *cst.SymbolExpr:
		collectSymbol(ex.Sym, add)
	case *cst.DefinedExpr:
		collectSymbol(ex.Sym, add)
	case *cst.GroupExpr:
		collectExpr(ex.Inner, add)
	case *cst.ArrayLitExpr:
		collectTypeExpr(ex.Type, add)

		for _, el := range ex.Elems {
			collectExpr(el, add)
		}

		collectExpr(ex.Ellipsis, add)
	case *cst.StructLitExpr:
		collectTypeExpr(ex.Type, add)

		for _, f := range ex.Fields {
			collectExpr(f.Value, add)
		}
	case *cst.SliceLitExpr:
		collectTypeExpr(ex.Type, add)
		collectExpr(ex.Ptr, add)
		collectExpr(ex.Count, add)
	case *cst.CastExpr:
		collectTypeExpr(ex.Type, add)
		collectExpr(ex.Inner, add)
	case *cst.SizeofExpr:
		collectTypeExpr(ex.Type, add)
	case *cst.AlignofExpr:
		collectTypeExpr(ex.Type, add)
	case *cst.UnaryExpr:
		collectExpr(ex.Inner, add)
	case *cst.BinaryExpr:
		collectExpr(ex.Left, add)
		collectExpr(ex.Right, add)
	case *cst.CallExpr:
		collectExpr(ex.Callee, add)

		for _, a := range ex.Args {
			collectExpr(a, add)
		}
	case *cst.IndexExpr:
		collectExpr(ex.Base, add)
		collectExpr(ex.Index, add)
	case *cst.SliceExpr:
		collectExpr(ex.Base, add)
		collectExpr(ex.Low, add)
		collectExpr(ex.High, add)
	case *cst.MemberExpr:
		collectExpr(ex.Base, add)
	case *cst.DerefExpr:
		collectExpr(ex.Base, add)
	}
}

// DescribeCycle renders a diagnostic-friendly cycle description, exposed for
// callers that want to log the chain outside of the fatal emission path.
func DescribeCycle(chain []diag.Link) string {
	s := ""

	for i, l := range chain {
		if i > 0 {
			s += " -> "
		}

		s += l.Name
	}

	return s
}

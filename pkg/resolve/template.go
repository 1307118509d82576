package resolve

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// installTemplate installs decl (a template func/struct/union) as a
// KindTemplate symbol, deferring actual resolution of each instantiation
// until a caller supplies concrete template arguments (spec.md section
// 4.4's deferred-resolution model).
func (r *Resolver) installTemplate(scope *symbol.Table, decl cst.Decl, name string) {
	n := r.Intern.InternString(name)

	sym := &symbol.Symbol{
		Kind: symbol.KindTemplate,
		Name: n,
		Span: decl.Span(),
		Template: &symbol.Template{
			Decl:        decl,
			ParentScope: scope,
			NamePrefix:  name,
			Instances:   make(map[string]*symbol.Symbol),
		},
	}

	r.bind(scope, n, sym)
}

// mangledName synthesizes the instantiation's unique name from the
// template's base name and its concrete argument types, e.g.
// "List[[s32]]" (spec.md section 4.4 "template instantiation").
func (r *Resolver) mangledName(prefix string, args []*types.Type) string {
	name := prefix + "[["

	for i, a := range args {
		if i > 0 {
			name += ","
		}

		name += a.Name()
	}

	return name + "]]"
}

// instantiateTypeTemplate resolves (memoized by mangled name) one
// concrete instantiation of a struct/union template, pushing an
// instantiation-chain link for the duration so any diagnostic raised while
// resolving the instance's body points back at the call site (spec.md
// section 6).
func (r *Resolver) instantiateTypeTemplate(sym *symbol.Symbol, args []cst.TypeExpr, site source.Span) *types.Type {
	tmpl := sym.Template

	argTypes := make([]*types.Type, len(args))
	for i, a := range args {
		argTypes[i] = r.resolveTypeExpr(tmpl.ParentScope, a)
	}

	key := r.mangledName(tmpl.NamePrefix, argTypes)

	if inst, ok := tmpl.Instances[key]; ok {
		return inst.Type
	}

	r.Chain = append(r.Chain, diag.Link{Site: site, File: r.File, Name: key})
	defer func() { r.Chain = r.Chain[:len(r.Chain)-1] }()

	instScope := r.bindTemplateParams(tmpl, argTypes)

	var t *types.Type

	switch decl := tmpl.Decl.(type) {
	case *cst.StructDecl:
		t = r.Types.NewNamed(key, types.Struct)
		t.Scope = symbol.NewTable(instScope)
		r.completeAggregate(instScope, t, decl.Members, types.Struct)
	case *cst.UnionDecl:
		t = r.Types.NewNamed(key, types.Union)
		t.Scope = symbol.NewTable(instScope)
		r.completeAggregate(instScope, t, decl.Members, types.Union)
	default:
		r.fatal(site, "%q is not a type template", tmpl.NamePrefix)

		return r.Types.Any
	}

	instSym := &symbol.Symbol{Kind: symbol.KindType, Name: r.Intern.InternString(key), Span: site, Type: t}
	tmpl.Instances[key] = instSym

	return t
}

// instantiateValueTemplate resolves one concrete instantiation of a
// function template, returning the installed function symbol; a template
// with a body has that body resolved here before the symbol is returned.
func (r *Resolver) instantiateValueTemplate(sym *symbol.Symbol, args []cst.TypeExpr, site source.Span) *symbol.Symbol {
	tmpl := sym.Template

	decl, ok := tmpl.Decl.(*cst.FuncDecl)
	if !ok {
		r.fatal(site, "%q is not a function template", tmpl.NamePrefix)

		return nil
	}

	argTypes := make([]*types.Type, len(args))
	for i, a := range args {
		argTypes[i] = r.resolveTypeExpr(tmpl.ParentScope, a)
	}

	key := r.mangledName(tmpl.NamePrefix, argTypes)

	if inst, ok := tmpl.Instances[key]; ok {
		return inst
	}

	r.Chain = append(r.Chain, diag.Link{Site: site, File: r.File, Name: key})
	defer func() { r.Chain = r.Chain[:len(r.Chain)-1] }()

	instScope := r.bindTemplateParams(tmpl, argTypes)

	params := make([]*types.Type, len(decl.Params))
	paramNames := make([]string, len(decl.Params))

	for i, p := range decl.Params {
		params[i] = r.resolveTypeExpr(instScope, p.Type)
		paramNames[i] = p.Name
	}

	ret := r.Types.VoidT
	if decl.ReturnType != nil {
		ret = r.resolveTypeExpr(instScope, decl.ReturnType)
	}

	instSym := &symbol.Symbol{
		Kind: symbol.KindFunc,
		Name: r.Intern.InternString(key),
		Span: site,
		Func: &symbol.Func{
			Type:       r.Types.Function(params, ret),
			Addr:       symbol.Address{Kind: symbol.AddrStatic, StaticLabel: key},
			ParamNames: paramNames,
			IsVariadic: decl.Variadic,
		},
	}

	tmpl.Instances[key] = instSym

	if decl.Body != nil {
		funcScope := symbol.NewTable(instScope)

		for i, pname := range paramNames {
			pn := r.Intern.InternString(pname)
			funcScope.Insert(pn, &symbol.Symbol{
				Kind: symbol.KindVar,
				Name: pn,
				Span: decl.SpanV,
				Object: &symbol.Object{
					Type: params[i],
					Addr: symbol.Address{Kind: symbol.AddrLocal, LocalName: pname, LocalIsParam: true},
				},
			})
		}

		r.pushDeferMark(0)
		instSym.Func.Body = r.resolveBlock(funcScope, decl.Body)
		r.popDeferMark()
	}

	return instSym
}

// bindTemplateParams builds a scope layered over the template's declaration
// site that binds each template parameter name to its argument's resolved
// type as a KindType symbol. Every parameter is bound this way; no KindConst
// binding is made, so a template parameter never names a value.
func (r *Resolver) bindTemplateParams(tmpl *symbol.Template, argTypes []*types.Type) *symbol.Table {
	scope := symbol.NewTable(tmpl.ParentScope)

	var templates []cst.TemplateParam

	switch decl := tmpl.Decl.(type) {
	case *cst.FuncDecl:
		templates = decl.Templates
	case *cst.StructDecl:
		templates = decl.Templates
	case *cst.UnionDecl:
		templates = decl.Templates
	}

	for i, tp := range templates {
		if i >= len(argTypes) {
			break
		}

		name := r.Intern.InternString(tp.Name)
		scope.Insert(name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Type: argTypes[i]})
	}

	return scope
}

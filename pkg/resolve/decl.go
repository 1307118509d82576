package resolve

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
	"github.com/ashn-dot-dev/sunder/pkg/value"
)

func (r *Resolver) installVar(scope *symbol.Table, d *cst.VarDecl) {
	t := r.resolveTypeExpr(scope, d.Type)
	name := r.Intern.InternString(d.Name)

	sym := &symbol.Symbol{
		Kind: symbol.KindVar,
		Name: name,
		Span: d.SpanV,
		Object: &symbol.Object{
			Type: t,
			Addr: symbol.Address{Kind: symbol.AddrStatic, StaticLabel: d.Name},
		},
	}

	r.bind(scope, name, sym)
}

func (r *Resolver) resolveVarInit(d *cst.VarDecl) {
	if d.Init == nil {
		return
	}

	name := r.Intern.InternString(d.Name)

	sym, ok := r.Module.LookupLocal(name)
	if !ok {
		return
	}

	init := r.resolveExpr(r.Module, d.Init)
	v := r.eval.Eval(init)

	if v != nil {
		sym.Object.Value = v
	}
}

func (r *Resolver) installConst(scope *symbol.Table, d *cst.ConstDecl) {
	name := r.Intern.InternString(d.Name)

	sym := &symbol.Symbol{
		Kind: symbol.KindConst,
		Name: name,
		Span: d.SpanV,
		Object: &symbol.Object{
			Type: r.resolveTypeExpr(scope, d.Type),
		},
	}

	r.bind(scope, name, sym)
}

func (r *Resolver) resolveConstInit(d *cst.ConstDecl) {
	name := r.Intern.InternString(d.Name)

	sym, ok := r.Module.LookupLocal(name)
	if !ok {
		return
	}

	init := r.resolveExpr(r.Module, d.Init)
	v := r.eval.Eval(init)

	if v == nil {
		return
	}

	if sym.Object.Type == nil || sym.Object.Type.Kind == types.Any {
		sym.Object.Type = v.Type
	}

	sym.Object.Value = v
}

func (r *Resolver) installFunc(scope *symbol.Table, d *cst.FuncDecl) {
	if len(d.Templates) > 0 {
		r.installTemplate(scope, d, d.Name)

		return
	}

	name := r.Intern.InternString(d.Name)

	params := make([]*types.Type, len(d.Params))
	paramNames := make([]string, len(d.Params))

	for i, p := range d.Params {
		params[i] = r.resolveTypeExpr(scope, p.Type)
		paramNames[i] = p.Name
	}

	ret := r.Types.VoidT
	if d.ReturnType != nil {
		ret = r.resolveTypeExpr(scope, d.ReturnType)
	}

	ft := r.Types.Function(params, ret)

	sym := &symbol.Symbol{
		Kind: symbol.KindFunc,
		Name: name,
		Span: d.SpanV,
		Func: &symbol.Func{
			Type:       ft,
			Addr:       symbol.Address{Kind: symbol.AddrStatic, StaticLabel: d.Name},
			ParamNames: paramNames,
			IsVariadic: d.Variadic,
		},
	}

	r.bind(scope, name, sym)
}

func (r *Resolver) resolveFuncBody(d *cst.FuncDecl) {
	if len(d.Templates) > 0 || d.Body == nil {
		return
	}

	name := r.Intern.InternString(d.Name)

	sym, ok := r.Module.LookupLocal(name)
	if !ok || sym.Kind != symbol.KindFunc {
		return
	}

	funcScope := symbol.NewTable(r.Module)

	for i, pname := range sym.Func.ParamNames {
		pn := r.Intern.InternString(pname)
		funcScope.Insert(pn, &symbol.Symbol{
			Kind: symbol.KindVar,
			Name: pn,
			Span: d.SpanV,
			Object: &symbol.Object{
				Type: sym.Func.Type.Params[i],
				Addr: symbol.Address{Kind: symbol.AddrLocal, LocalName: pname, LocalIsParam: true},
			},
		})
	}

	r.pushDeferMark(0)
	body := r.resolveBlock(funcScope, d.Body)
	r.popDeferMark()

	sym.Func.Body = body
}

func (r *Resolver) installStruct(scope *symbol.Table, d *cst.StructDecl) {
	if len(d.Templates) > 0 {
		r.installTemplate(scope, d, d.Name)

		return
	}

	name := r.Intern.InternString(d.Name)
	t := r.Types.NewNamed(d.Name, types.Struct)
	tscope := symbol.NewTable(scope)
	t.Scope = tscope

	r.bind(scope, name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Span: d.SpanV, Type: t})

	r.completeAggregate(scope, t, d.Members, types.Struct)
}

func (r *Resolver) installUnion(scope *symbol.Table, d *cst.UnionDecl) {
	if len(d.Templates) > 0 {
		r.installTemplate(scope, d, d.Name)

		return
	}

	name := r.Intern.InternString(d.Name)
	t := r.Types.NewNamed(d.Name, types.Union)
	tscope := symbol.NewTable(scope)
	t.Scope = tscope

	r.bind(scope, name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Span: d.SpanV, Type: t})

	r.completeAggregate(scope, t, d.Members, types.Union)
}

// completeAggregate fills in a struct/union type's members in place,
// flipping IsComplete once done (spec.md section 3.6's two-phase
// completion state machine: the type object is installed into scope first,
// declared-but-incomplete, so that pointer/slice members referencing it --
// directly or through a sibling type -- can resolve against the same
// object before its layout is known).
func (r *Resolver) completeAggregate(scope *symbol.Table, t *types.Type, members []cst.StructMemberExpr, kind types.Kind) {
	r.layoutAggregate(scope, t, members, kind)
}

func (r *Resolver) installEnum(scope *symbol.Table, d *cst.EnumDecl) {
	name := r.Intern.InternString(d.Name)

	underlying := r.Types.IntegerT
	if d.Underlying != nil {
		underlying = r.resolveTypeExpr(scope, d.Underlying)
	}

	t := r.Types.NewNamed(d.Name, types.Enum)
	t.Underlying = underlying
	t.Size = underlying.Size
	t.Align = underlying.Align

	tscope := symbol.NewTable(scope)
	t.Scope = tscope

	next := bigZero()

	for _, v := range d.Values {
		val := next

		if v.Value != nil {
			ev := r.eval.Eval(r.resolveExpr(scope, v.Value))
			if ev != nil {
				val = ev.AsBigInt()
			}
		}

		t.Values = append(t.Values, types.EnumValue{Name: v.Name, Value: val})
		next = val.Add(bigOne())

		memberName := r.Intern.InternString(v.Name)
		tscope.Insert(memberName, &symbol.Symbol{
			Kind: symbol.KindConst,
			Name: memberName,
			Span: v.SpanV,
			Object: &symbol.Object{
				Type:  t,
				Value: value.NewInt(t, val),
			},
		})
	}

	t.IsComplete = true

	r.bind(scope, name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Span: d.SpanV, Type: t})

	for _, f := range d.Funcs {
		r.installFunc(tscope, f)
	}
}

func (r *Resolver) installTypeAlias(scope *symbol.Table, d *cst.TypeAliasDecl) {
	name := r.Intern.InternString(d.Name)
	t := r.resolveTypeExpr(scope, d.Type)

	r.bind(scope, name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Span: d.SpanV, Type: t})
}

func (r *Resolver) installExternVar(scope *symbol.Table, d *cst.ExternVarDecl) {
	name := r.Intern.InternString(d.Name)

	sym := &symbol.Symbol{
		Kind: symbol.KindVar,
		Name: name,
		Span: d.SpanV,
		Object: &symbol.Object{
			Type:     r.resolveTypeExpr(scope, d.Type),
			Addr:     symbol.Address{Kind: symbol.AddrStatic, StaticLabel: d.Name},
			IsExtern: true,
		},
	}

	r.bind(scope, name, sym)
}

func (r *Resolver) installExternFunc(scope *symbol.Table, d *cst.ExternFuncDecl) {
	name := r.Intern.InternString(d.Name)

	params := make([]*types.Type, len(d.Params))
	paramNames := make([]string, len(d.Params))

	for i, p := range d.Params {
		params[i] = r.resolveTypeExpr(scope, p.Type)
		paramNames[i] = p.Name
	}

	ret := r.Types.VoidT
	if d.ReturnType != nil {
		ret = r.resolveTypeExpr(scope, d.ReturnType)
	}

	sym := &symbol.Symbol{
		Kind: symbol.KindFunc,
		Name: name,
		Span: d.SpanV,
		Func: &symbol.Func{
			Type:       r.Types.Function(params, ret),
			Addr:       symbol.Address{Kind: symbol.AddrStatic, StaticLabel: d.Name},
			ParamNames: paramNames,
			IsVariadic: d.Variadic,
			IsExtern:   true,
		},
	}

	r.bind(scope, name, sym)
}

func (r *Resolver) installExternType(scope *symbol.Table, d *cst.ExternTypeDecl) {
	name := r.Intern.InternString(d.Name)

	t := &types.Type{Kind: types.Extern, ExternName: d.Name, IsComplete: true}

	if d.Size != nil {
		v := r.eval.Eval(r.resolveExpr(scope, d.Size))
		if v != nil {
			t.Size = uint64(v.AsBigInt().Int64())
		}
	}

	if d.Align != nil {
		v := r.eval.Eval(r.resolveExpr(scope, d.Align))
		if v != nil {
			t.Align = uint64(v.AsBigInt().Int64())
		}
	} else {
		t.Align = t.Size
	}

	r.bind(scope, name, &symbol.Symbol{Kind: symbol.KindType, Name: name, Span: d.SpanV, Type: t})
}

// installExtend attaches Inner's symbol to Target's own scope rather than
// the module scope (spec.md section 4.3: `extend T { decl }` installs decl
// as if declared inside T's body).
func (r *Resolver) installExtend(scope *symbol.Table, d *cst.ExtendDecl) {
	target := r.resolveTypeExpr(scope, d.Target)

	tscope, ok := target.Scope.(*symbol.Table)
	if !ok {
		tscope = symbol.NewTable(scope)
		target.Scope = tscope
	}

	r.installDecl(tscope, d.Inner)
}

func (r *Resolver) resolveBlock(scope *symbol.Table, b *cst.Block) *tast.Block {
	blockScope := symbol.NewTable(scope)
	out := &tast.Block{Scope: blockScope}
	out.SpanV = b.SpanV

	mark := len(out.Defers)
	r.pushDeferMark(mark)

	for _, s := range b.Stmts {
		if st := r.resolveStmt(blockScope, out, s); st != nil {
			out.Stmts = append(out.Stmts, st)
		}
	}

	r.popDeferMark()

	return out
}

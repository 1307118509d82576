package resolve

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/symbol"
	"github.com/ashn-dot-dev/sunder/pkg/tast"
	"github.com/ashn-dot-dev/sunder/pkg/types"
)

// resolveStmt resolves one CST statement within block, registering defer
// statements onto block.Defers (in reverse order, spec.md section 4.4/9)
// rather than returning them for inclusion in the ordinary statement
// sequence.
func (r *Resolver) resolveStmt(scope *symbol.Table, block *tast.Block, s cst.Stmt) tast.Stmt {
	switch st := s.(type) {
	case *cst.DeclStmt:
		return r.resolveDeclStmt(scope, st)
	case *cst.DeferBlockStmt:
		body := r.resolveBlock(scope, st.Body)
		d := &tast.DeferBlock{Body: body}
		d.SpanV = st.SpanV
		block.Defers = append([]tast.Stmt{d}, block.Defers...)

		return nil
	case *cst.DeferExprStmt:
		expr := r.resolveExpr(scope, st.Expr)
		d := &tast.DeferExpr{Expr: expr}
		d.SpanV = st.SpanV
		block.Defers = append([]tast.Stmt{d}, block.Defers...)

		return nil
	case *cst.IfStmt:
		return r.resolveIf(scope, st)
	case *cst.WhenStmt:
		return r.resolveWhen(scope, block, st)
	case *cst.ForRangeStmt:
		return r.resolveForRange(scope, st)
	case *cst.ForExprStmt:
		return r.resolveForExpr(scope, st)
	case *cst.BreakStmt:
		out := &tast.Break{DeferBegin: r.currentDeferMark(), DeferEnd: len(block.Defers)}
		out.SpanV = st.SpanV

		return out
	case *cst.ContinueStmt:
		out := &tast.Continue{DeferBegin: r.currentDeferMark(), DeferEnd: len(block.Defers)}
		out.SpanV = st.SpanV

		return out
	case *cst.SwitchStmt:
		return r.resolveSwitch(scope, st)
	case *cst.ReturnStmt:
		out := &tast.Return{Value: r.resolveExpr(scope, st.Value), DeferBegin: 0}
		out.SpanV = st.SpanV

		return out
	case *cst.AssertStmt:
		cond := r.resolveExpr(scope, st.Condition)

		if v := r.eval.Eval(cond); v != nil {
			if !v.Bool {
				r.fatal(st.SpanV, "assertion failed")
			}
		}

		out := &tast.Assert{Condition: cond}
		out.SpanV = st.SpanV

		return out
	case *cst.AssignStmt:
		out := &tast.Assign{Op: st.Op, LHS: r.resolveExpr(scope, st.LHS), RHS: r.resolveExpr(scope, st.RHS)}
		out.SpanV = st.SpanV

		if out.LHS != nil && !out.LHS.IsLvalue() {
			r.fatal(st.SpanV, "left-hand side of assignment is not an lvalue")
		}

		return out
	case *cst.ExprStmt:
		out := &tast.ExprStmt{Expr: r.resolveExpr(scope, st.Expr)}
		out.SpanV = st.SpanV

		return out
	default:
		r.fatal(s.Span(), "unsupported statement form")

		return nil
	}
}

func (r *Resolver) resolveDeclStmt(scope *symbol.Table, st *cst.DeclStmt) tast.Stmt {
	switch d := st.Decl.(type) {
	case *cst.VarDecl:
		t := r.resolveTypeExpr(scope, d.Type)
		name := r.Intern.InternString(d.Name)

		var init tast.Expr
		if d.Init != nil {
			init = r.resolveExpr(scope, d.Init)

			if d.Type == nil && init != nil {
				t = init.Type()
			}
		}

		sym := &symbol.Symbol{
			Kind: symbol.KindVar,
			Name: name,
			Span: d.SpanV,
			Object: &symbol.Object{
				Type: t,
				Addr: symbol.Address{Kind: symbol.AddrLocal, LocalName: d.Name},
			},
		}

		r.bind(scope, name, sym)

		out := &tast.DeclStmt{Sym: sym, Init: init}
		out.SpanV = st.SpanV

		return out
	case *cst.ConstDecl:
		name := r.Intern.InternString(d.Name)
		init := r.resolveExpr(scope, d.Init)
		v := r.eval.Eval(init)

		t := r.resolveTypeExpr(scope, d.Type)
		if d.Type == nil && v != nil {
			t = v.Type
		}

		sym := &symbol.Symbol{
			Kind:   symbol.KindConst,
			Name:   name,
			Span:   d.SpanV,
			Object: &symbol.Object{Type: t, Value: v},
		}

		r.bind(scope, name, sym)

		out := &tast.DeclStmt{Sym: sym, Init: init}
		out.SpanV = st.SpanV

		return out
	default:
		r.fatal(st.SpanV, "unsupported local declaration form")

		return nil
	}
}

func (r *Resolver) resolveIf(scope *symbol.Table, st *cst.IfStmt) tast.Stmt {
	clauses := make([]tast.IfClause, len(st.Clauses))

	for i, c := range st.Clauses {
		clauses[i] = tast.IfClause{Condition: r.resolveExpr(scope, c.Condition), Body: r.resolveBlock(scope, c.Body)}
	}

	var els *tast.Block
	if st.Else != nil {
		els = r.resolveBlock(scope, st.Else)
	}

	out := &tast.If{Clauses: clauses, Else: els}
	out.SpanV = st.SpanV

	return out
}

// resolveWhen evaluates a compile-time when/elwhen/else chain and flattens
// only the winning clause's statements into the enclosing block (spec.md
// section 3.2/4.4: no typed When node survives resolution).
func (r *Resolver) resolveWhen(scope *symbol.Table, block *tast.Block, st *cst.WhenStmt) tast.Stmt {
	for _, c := range st.Clauses {
		cond := r.resolveExpr(scope, c.Condition)
		v := r.eval.Eval(cond)

		if v != nil && v.Bool {
			r.flattenBlock(scope, block, c.Body)

			return nil
		}
	}

	if st.Else != nil {
		r.flattenBlock(scope, block, st.Else)
	}

	return nil
}

func (r *Resolver) flattenBlock(scope *symbol.Table, block *tast.Block, b *cst.Block) {
	for _, s := range b.Stmts {
		if out := r.resolveStmt(scope, block, s); out != nil {
			block.Stmts = append(block.Stmts, out)
		}
	}
}

func (r *Resolver) resolveForRange(scope *symbol.Table, st *cst.ForRangeStmt) tast.Stmt {
	rangeExpr := r.resolveExpr(scope, st.Range)

	loopScope := symbol.NewTable(scope)
	name := r.Intern.InternString(st.VarName)

	elemType := r.Types.Any
	if rangeExpr != nil && (rangeExpr.Type().Kind == types.Array || rangeExpr.Type().Kind == types.Slice) {
		elemType = rangeExpr.Type().Base
	}

	varSym := &symbol.Symbol{
		Kind: symbol.KindVar,
		Name: name,
		Span: st.SpanV,
		Object: &symbol.Object{
			Type: elemType,
			Addr: symbol.Address{Kind: symbol.AddrLocal, LocalName: st.VarName},
		},
	}
	loopScope.Insert(name, varSym)

	mark := 0
	r.pushDeferMark(mark)
	body := r.resolveBlock(loopScope, st.Body)
	r.popDeferMark()

	out := &tast.ForRange{VarSym: varSym, Range: rangeExpr, Body: body, DeferBegin: mark, DeferEnd: mark}
	out.SpanV = st.SpanV

	return out
}

func (r *Resolver) resolveForExpr(scope *symbol.Table, st *cst.ForExprStmt) tast.Stmt {
	var cond tast.Expr
	if st.Condition != nil {
		cond = r.resolveExpr(scope, st.Condition)
	}

	mark := 0
	r.pushDeferMark(mark)
	body := r.resolveBlock(scope, st.Body)
	r.popDeferMark()

	out := &tast.ForExpr{Condition: cond, Body: body, DeferBegin: mark, DeferEnd: mark}
	out.SpanV = st.SpanV

	return out
}

func (r *Resolver) resolveSwitch(scope *symbol.Table, st *cst.SwitchStmt) tast.Stmt {
	subject := r.resolveExpr(scope, st.Subject)

	cases := make([]tast.SwitchCase, len(st.Cases))

	for i, c := range st.Cases {
		var values []tast.Expr

		for _, v := range c.Values {
			values = append(values, r.resolveExpr(scope, v))
		}

		cases[i] = tast.SwitchCase{Values: values, Body: r.resolveBlock(scope, c.Body)}
	}

	out := &tast.Switch{Subject: subject, Cases: cases}
	out.SpanV = st.SpanV

	return out
}

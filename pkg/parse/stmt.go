package parse

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
)

// assignOps is the fourteen assignment compounds (spec.md section 4.2:
// "Assignment is detected by look-ahead: after parsing a leading expression,
// if the current token is one of the fourteen assignment sigils, an
// assignment statement is produced").
var assignOps = map[lex.Kind]bool{
	lex.Eq: true, lex.PlusEq: true, lex.MinusEq: true, lex.StarEq: true,
	lex.SlashEq: true, lex.PercentEq: true, lex.PlusWrapEq: true,
	lex.MinusWrapEq: true, lex.StarWrapEq: true, lex.ShlEq: true,
	lex.ShrEq: true, lex.PipeEq: true, lex.CaretEq: true, lex.AmpEq: true,
}

func (p *Parser) parseBlock() *cst.Block {
	start := p.expect(lex.LBrace).Span

	var stmts []cst.Stmt
	for !p.at(lex.RBrace) {
		stmts = append(stmts, p.parseStmt())
	}

	end := p.cur.Span
	p.expect(lex.RBrace)

	return &cst.Block{SpanV: start.Join(end), Stmts: stmts}
}

// parseStmt dispatches on the leading keyword, falling through to
// expression-or-assignment (spec.md section 4.2).
func (p *Parser) parseStmt() cst.Stmt {
	switch p.cur.Kind {
	case lex.Var, lex.Let, lex.Func, lex.Struct, lex.Union, lex.Enum, lex.Type, lex.Extern:
		start := p.cur.Span
		d := p.parseDecl()

		return &cst.DeclStmt{SpanV: start, Decl: d}
	case lex.Defer:
		return p.parseDeferStmt()
	case lex.If:
		return p.parseIfStmt()
	case lex.When:
		return p.parseWhenStmt()
	case lex.For:
		return p.parseForStmt()
	case lex.Break:
		t := p.cur
		p.advance()
		p.expect(lex.Semi)

		return &cst.BreakStmt{SpanV: t.Span}
	case lex.Continue:
		t := p.cur
		p.advance()
		p.expect(lex.Semi)

		return &cst.ContinueStmt{SpanV: t.Span}
	case lex.Switch:
		return p.parseSwitchStmt()
	case lex.Return:
		return p.parseReturnStmt()
	case lex.Assert:
		return p.parseAssertStmt()
	case lex.LBrace:
		return p.parseBlock()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseDeferStmt() cst.Stmt {
	start := p.cur.Span
	p.advance() // defer

	if p.at(lex.LBrace) {
		body := p.parseBlock()

		return &cst.DeferBlockStmt{SpanV: start.Join(body.Span()), Body: body}
	}

	e := p.parseExpr(lowest)
	end := p.cur.Span
	p.expect(lex.Semi)

	return &cst.DeferExprStmt{SpanV: start.Join(end), Expr: e}
}

func (p *Parser) parseIfStmt() *cst.IfStmt {
	start := p.cur.Span
	p.advance() // if
	cond := p.parseExpr(lowest)
	body := p.parseBlock()
	clauses := []cst.IfClause{{SpanV: start.Join(body.Span()), Condition: cond, Body: body}}

	for p.at(lex.Elif) {
		cs := p.cur.Span
		p.advance()
		c := p.parseExpr(lowest)
		b := p.parseBlock()
		clauses = append(clauses, cst.IfClause{SpanV: cs.Join(b.Span()), Condition: c, Body: b})
	}

	var elseBlock *cst.Block
	if p.at(lex.Else) {
		p.advance()
		elseBlock = p.parseBlock()
	}

	end := clauses[len(clauses)-1].Body.Span()
	if elseBlock != nil {
		end = elseBlock.Span()
	}

	return &cst.IfStmt{SpanV: start.Join(end), Clauses: clauses, Else: elseBlock}
}

func (p *Parser) parseWhenStmt() *cst.WhenStmt {
	start := p.cur.Span
	p.advance() // when
	cond := p.parseExpr(lowest)
	body := p.parseBlock()
	clauses := []cst.WhenClause{{SpanV: start.Join(body.Span()), Condition: cond, Body: body}}

	for p.at(lex.Elwhen) {
		cs := p.cur.Span
		p.advance()
		c := p.parseExpr(lowest)
		b := p.parseBlock()
		clauses = append(clauses, cst.WhenClause{SpanV: cs.Join(b.Span()), Condition: c, Body: b})
	}

	var elseBlock *cst.Block
	if p.at(lex.Else) {
		p.advance()
		elseBlock = p.parseBlock()
	}

	end := clauses[len(clauses)-1].Body.Span()
	if elseBlock != nil {
		end = elseBlock.Span()
	}

	return &cst.WhenStmt{SpanV: start.Join(end), Clauses: clauses, Else: elseBlock}
}

func (p *Parser) parseForStmt() cst.Stmt {
	start := p.cur.Span
	p.advance() // for

	if p.at(lex.LBrace) {
		body := p.parseBlock()

		return &cst.ForExprStmt{SpanV: start.Join(body.Span()), Body: body}
	}

	// Disambiguate `for name in expr {}` from `for expr {}` by lookahead:
	// a range form starts with an identifier immediately followed by `in`.
	if p.at(lex.Ident) && p.peek.Kind == lex.In {
		name := p.ident()
		p.advance() // in
		rng := p.parseExpr(lowest)
		body := p.parseBlock()

		return &cst.ForRangeStmt{SpanV: start.Join(body.Span()), VarName: name, Range: rng, Body: body}
	}

	cond := p.parseExpr(lowest)
	body := p.parseBlock()

	return &cst.ForExprStmt{SpanV: start.Join(body.Span()), Condition: cond, Body: body}
}

func (p *Parser) parseSwitchStmt() *cst.SwitchStmt {
	start := p.cur.Span
	p.advance() // switch
	subject := p.parseExpr(lowest)
	p.expect(lex.LBrace)

	var cases []cst.SwitchCase

	for !p.at(lex.RBrace) {
		cstart := p.cur.Span

		if p.at(lex.Else) {
			p.advance()
			p.expect(lex.Colon)
			body := p.parseBlock()
			cases = append(cases, cst.SwitchCase{SpanV: cstart.Join(body.Span()), Values: nil, Body: body})

			continue
		}

		var values []cst.Expr
		values = append(values, p.parseExpr(lowest))

		for p.at(lex.Comma) {
			p.advance()
			values = append(values, p.parseExpr(lowest))
		}

		p.expect(lex.Colon)
		body := p.parseBlock()
		cases = append(cases, cst.SwitchCase{SpanV: cstart.Join(body.Span()), Values: values, Body: body})
	}

	end := p.cur.Span
	p.expect(lex.RBrace)

	return &cst.SwitchStmt{SpanV: start.Join(end), Subject: subject, Cases: cases}
}

func (p *Parser) parseReturnStmt() *cst.ReturnStmt {
	start := p.cur.Span
	p.advance() // return

	var val cst.Expr
	if !p.at(lex.Semi) {
		val = p.parseExpr(lowest)
	}

	end := p.cur.Span
	p.expect(lex.Semi)

	return &cst.ReturnStmt{SpanV: start.Join(end), Value: val}
}

func (p *Parser) parseAssertStmt() *cst.AssertStmt {
	start := p.cur.Span
	p.advance() // assert
	cond := p.parseExpr(lowest)
	end := p.cur.Span
	p.expect(lex.Semi)

	return &cst.AssertStmt{SpanV: start.Join(end), Condition: cond}
}

// parseSimpleStmt parses an expression, then checks whether the current
// token is an assignment sigil to decide between AssignStmt and ExprStmt
// (spec.md section 4.2).
func (p *Parser) parseSimpleStmt() cst.Stmt {
	start := p.cur.Span
	lhs := p.parseExpr(lowest)

	if assignOps[p.cur.Kind] {
		op := p.cur.Kind
		p.advance()
		rhs := p.parseExpr(lowest)
		end := p.cur.Span
		p.expect(lex.Semi)

		return &cst.AssignStmt{SpanV: start.Join(end), Op: op, LHS: lhs, RHS: rhs}
	}

	end := p.cur.Span
	p.expect(lex.Semi)

	return &cst.ExprStmt{SpanV: start.Join(end), Expr: lhs}
}

package parse

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
)

// parseTypeExpr parses a type-level expression: `*T`, `[N]T`, `[]T`,
// `func(..)T`, `struct{...}`, `union{...}`, `enum:T{...}`, `typeof(expr)`,
// or a plain named symbol (spec.md section 4.4).
func (p *Parser) parseTypeExpr() cst.TypeExpr {
	switch p.cur.Kind {
	case lex.Star:
		start := p.cur.Span
		p.advance()
		base := p.parseTypeExpr()

		return &cst.PointerTypeExpr{SpanV: start.Join(base.Span()), Base: base}
	case lex.LBracket:
		return p.parseArrayOrSliceTypeExpr()
	case lex.Func:
		return p.parseFuncTypeExpr()
	case lex.Struct:
		start := p.cur.Span
		p.advance()
		members := p.parseStructMembers()
		end := start
		if len(members) > 0 {
			end = members[len(members)-1].SpanV
		}

		return &cst.StructTypeExpr{SpanV: start.Join(end), Members: members}
	case lex.Union:
		start := p.cur.Span
		p.advance()
		members := p.parseStructMembers()
		end := start
		if len(members) > 0 {
			end = members[len(members)-1].SpanV
		}

		return &cst.UnionTypeExpr{SpanV: start.Join(end), Members: members}
	case lex.Enum:
		return p.parseEnumTypeExpr()
	case lex.Typeof:
		start := p.cur.Span
		p.advance()
		p.expect(lex.LParen)
		inner := p.parseExpr(lowest)
		end := p.cur.Span
		p.expect(lex.RParen)

		return &cst.TypeofTypeExpr{SpanV: start.Join(end), Expr: inner}
	case lex.Ident, lex.ColonColon:
		sym := p.parseSymbol()

		return &cst.NamedTypeExpr{SpanV: sym.Span(), Name: sym}
	default:
		p.fatal(p.cur.Span, "expected type, found %s", p.cur.Kind)

		return nil
	}
}

func (p *Parser) parseArrayOrSliceTypeExpr() cst.TypeExpr {
	start := p.cur.Span
	p.advance() // [

	if p.at(lex.RBracket) {
		p.advance()
		base := p.parseTypeExpr()

		return &cst.SliceTypeExpr{SpanV: start.Join(base.Span()), Base: base}
	}

	count := p.parseExpr(lowest)
	p.expect(lex.RBracket)
	base := p.parseTypeExpr()

	return &cst.ArrayTypeExpr{SpanV: start.Join(base.Span()), Count: count, Base: base}
}

func (p *Parser) parseFuncTypeExpr() cst.TypeExpr {
	start := p.cur.Span
	p.advance() // func
	p.expect(lex.LParen)

	var params []cst.TypeExpr
	for !p.at(lex.RParen) {
		params = append(params, p.parseTypeExpr())

		if p.at(lex.Comma) {
			p.advance()
		} else {
			break
		}
	}

	end := p.cur.Span
	p.expect(lex.RParen)

	var ret cst.TypeExpr
	if !p.atTypeExprBoundary() {
		ret = p.parseTypeExpr()
		end = ret.Span()
	}

	return &cst.FuncTypeExpr{SpanV: start.Join(end), Params: params, ReturnType: ret}
}

// atTypeExprBoundary reports whether the current token cannot start a type
// expression, used to decide whether `func(...)` is followed by a return
// type or stands alone (void).
func (p *Parser) atTypeExprBoundary() bool {
	switch p.cur.Kind {
	case lex.Star, lex.LBracket, lex.Func, lex.Struct, lex.Union, lex.Enum,
		lex.Typeof, lex.Ident, lex.ColonColon:
		return false
	default:
		return true
	}
}

func (p *Parser) parseEnumTypeExpr() cst.TypeExpr {
	start := p.cur.Span
	p.advance() // enum
	p.expect(lex.Colon)
	underlying := p.parseTypeExpr()
	p.expect(lex.LBrace)

	var values []cst.EnumValueExpr
	for !p.at(lex.RBrace) {
		vstart := p.cur.Span
		name := p.ident()

		var val cst.Expr
		if p.at(lex.Eq) {
			p.advance()
			val = p.parseExpr(lowest)
		}

		p.expect(lex.Semi)
		values = append(values, cst.EnumValueExpr{SpanV: vstart, Name: name, Value: val})
	}

	end := p.cur.Span
	p.expect(lex.RBrace)

	return &cst.EnumTypeExpr{SpanV: start.Join(end), Underlying: underlying, Values: values}
}

package parse

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
)

// parseSymbol parses a qualified name path: an optional `::` root marker or
// `typeof(expr)::` type marker, then one or more `name[[args]]` elements
// joined by `::` (spec.md section 3.2).
func (p *Parser) parseSymbol() *cst.Symbol {
	start := p.cur.Span
	origin := cst.OriginNone

	var typeExpr cst.TypeExpr

	switch p.cur.Kind {
	case lex.ColonColon:
		origin = cst.OriginRoot
		p.advance()
	case lex.Typeof:
		origin = cst.OriginType
		p.advance()
		p.expect(lex.LParen)
		inner := p.parseExpr(lowest)
		p.expect(lex.RParen)
		typeExpr = &cst.TypeofTypeExpr{SpanV: inner.Span(), Expr: inner}
		p.expect(lex.ColonColon)
	}

	var elems []cst.SymbolElement
	elems = append(elems, p.parseSymbolElement())

	for p.at(lex.ColonColon) {
		p.advance()
		elems = append(elems, p.parseSymbolElement())
	}

	return &cst.Symbol{
		SpanV:    start.Join(p.lastSpan),
		Origin:   origin,
		TypeExpr: typeExpr,
		Elements: elems,
	}
}

func (p *Parser) parseSymbolElement() cst.SymbolElement {
	name := p.expect(lex.Ident)
	p.lastSpan = name.Span

	var args []cst.TypeExpr
	if p.at(lex.LDBracket) {
		p.advance()

		for !p.at(lex.RDBracket) {
			args = append(args, p.parseTypeExpr())

			if p.at(lex.Comma) {
				p.advance()
			} else {
				break
			}
		}

		end := p.cur.Span
		p.expect(lex.RDBracket)
		p.lastSpan = end
	}

	return cst.SymbolElement{Name: name.Ident, TemplateArgs: args}
}

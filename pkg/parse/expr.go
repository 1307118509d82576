package parse

import (
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Precedence levels, low to high (spec.md section 4.2: "lowest, or, and,
// compare, sum, product, prefix, postfix").
const (
	lowest = iota
	precOr
	precAnd
	precCompare
	precSum
	precProduct
	precPrefix
	precPostfix
)

var binaryPrec = map[lex.Kind]int{
	lex.Or:  precOr,
	lex.And: precAnd,

	lex.EqEq: precCompare, lex.NotEq: precCompare, lex.LtEq: precCompare,
	lex.Lt: precCompare, lex.GtEq: precCompare, lex.Gt: precCompare,

	lex.Plus: precSum, lex.Minus: precSum, lex.PlusWrap: precSum,
	lex.MinusWrap: precSum, lex.Pipe: precSum, lex.Caret: precSum,

	lex.Star: precProduct, lex.Slash: precProduct, lex.Percent: precProduct,
	lex.StarWrap: precProduct, lex.Shl: precProduct, lex.Shr: precProduct,
	lex.Amp: precProduct,
}

// parseExpr is the Pratt-style precedence-climbing entry point: parse a
// null-denotation, then repeatedly fold in left-denotations whose
// precedence exceeds minPrec (spec.md section 4.2).
func (p *Parser) parseExpr(minPrec int) cst.Expr {
	left := p.parseNud()

	for {
		if prec, ok := binaryPrec[p.cur.Kind]; ok && prec > minPrec {
			left = p.parseBinary(left, prec)

			continue
		}

		if next, ok := p.tryParsePostfix(left); ok {
			left = next

			continue
		}

		return left
	}
}

func (p *Parser) parseBinary(left cst.Expr, prec int) cst.Expr {
	op := p.cur.Kind
	p.advance()
	right := p.parseExpr(prec)

	return &cst.BinaryExpr{SpanV: left.Span().Join(right.Span()), Op: op, Left: left, Right: right}
}

// tryParsePostfix folds in one postfix operator (call, index/slice, member,
// dereference) if the current token starts one; postfix binds tighter than
// every binary operator.
func (p *Parser) tryParsePostfix(left cst.Expr) (cst.Expr, bool) {
	switch p.cur.Kind {
	case lex.LParen:
		return p.parseCall(left), true
	case lex.LBracket:
		return p.parseIndexOrSlice(left), true
	case lex.Dot:
		return p.parseMember(left), true
	case lex.DotStar:
		end := p.cur.Span
		p.advance()

		return &cst.DerefExpr{SpanV: left.Span().Join(end), Base: left}, true
	default:
		return nil, false
	}
}

func (p *Parser) parseCall(callee cst.Expr) cst.Expr {
	p.advance() // (

	var args []cst.Expr
	for !p.at(lex.RParen) {
		args = append(args, p.parseExpr(lowest))

		if p.at(lex.Comma) {
			p.advance()
		} else {
			break
		}
	}

	end := p.cur.Span
	p.expect(lex.RParen)

	return &cst.CallExpr{SpanV: callee.Span().Join(end), Callee: callee, Args: args}
}

func (p *Parser) parseIndexOrSlice(base cst.Expr) cst.Expr {
	p.advance() // [

	if p.at(lex.Colon) {
		p.advance()
		high := p.parseExpr(lowest)
		end := p.cur.Span
		p.expect(lex.RBracket)

		return &cst.SliceExpr{SpanV: base.Span().Join(end), Base: base, High: high}
	}

	first := p.parseExpr(lowest)

	if p.at(lex.Colon) {
		p.advance()

		var high cst.Expr
		if !p.at(lex.RBracket) {
			high = p.parseExpr(lowest)
		}

		end := p.cur.Span
		p.expect(lex.RBracket)

		return &cst.SliceExpr{SpanV: base.Span().Join(end), Base: base, Low: first, High: high}
	}

	end := p.cur.Span
	p.expect(lex.RBracket)

	return &cst.IndexExpr{SpanV: base.Span().Join(end), Base: base, Index: first}
}

func (p *Parser) parseMember(base cst.Expr) cst.Expr {
	p.advance() // .
	name := p.cur.Span
	field := p.ident()

	return &cst.MemberExpr{SpanV: base.Span().Join(name), Base: base, Name: field}
}

// parseNud parses a null-denotation: literals, symbols, grouped/typed
// constructs, and every prefix-unary form (spec.md section 4.2).
func (p *Parser) parseNud() cst.Expr {
	switch p.cur.Kind {
	case lex.True:
		t := p.cur
		p.advance()

		return &cst.BoolLitExpr{SpanV: t.Span, Value: true}
	case lex.False:
		t := p.cur
		p.advance()

		return &cst.BoolLitExpr{SpanV: t.Span, Value: false}
	case lex.Int:
		t := p.cur
		p.advance()

		return &cst.IntLitExpr{SpanV: t.Span, Value: t.IntValue, Suffix: t.IntSuffix}
	case lex.Float:
		t := p.cur
		p.advance()

		return &cst.FloatLitExpr{SpanV: t.Span, Value: t.FloatValue, Suffix: t.FloatSuffix}
	case lex.Char:
		t := p.cur
		p.advance()

		return &cst.CharLitExpr{SpanV: t.Span, Value: t.CharValue}
	case lex.ByteString:
		t := p.cur
		p.advance()

		return &cst.ByteStringLitExpr{SpanV: t.Span, Value: t.ByteValue}
	case lex.Ident, lex.ColonColon, lex.Typeof:
		sym := p.parseSymbol()

		return &cst.SymbolExpr{SpanV: sym.Span(), Sym: sym}
	case lex.LParen:
		return p.parseParenOrTyped()
	case lex.Defined:
		return p.parseDefined()
	case lex.Sizeof:
		return p.parseSizeofAlignof(true)
	case lex.Alignof:
		return p.parseSizeofAlignof(false)
	case lex.Fileof:
		t := p.cur
		p.advance()
		p.expect(lex.LParen)
		end := p.cur.Span
		p.expect(lex.RParen)

		return &cst.FileofExpr{SpanV: t.Span.Join(end)}
	case lex.Lineof:
		t := p.cur
		p.advance()
		p.expect(lex.LParen)
		end := p.cur.Span
		p.expect(lex.RParen)

		return &cst.LineofExpr{SpanV: t.Span.Join(end)}
	case lex.Embed:
		return p.parseEmbed()
	case lex.Not, lex.Plus, lex.Minus, lex.MinusWrap, lex.Tilde, lex.Star,
		lex.Amp, lex.Startof, lex.Countof:
		return p.parseUnary()
	default:
		p.fatal(p.cur.Span, "expected expression, found %s", p.cur.Kind)

		return nil
	}
}

func (p *Parser) parseUnary() cst.Expr {
	t := p.cur
	p.advance()
	inner := p.parseExpr(precPrefix)

	return &cst.UnaryExpr{SpanV: t.Span.Join(inner.Span()), Op: t.Kind, Inner: inner}
}

func (p *Parser) parseDefined() cst.Expr {
	start := p.cur.Span
	p.advance() // defined
	p.expect(lex.LParen)
	sym := p.parseSymbol()
	end := p.cur.Span
	p.expect(lex.RParen)

	return &cst.DefinedExpr{SpanV: start.Join(end), Sym: sym}
}

func (p *Parser) parseSizeofAlignof(isSizeof bool) cst.Expr {
	start := p.cur.Span
	p.advance() // sizeof/alignof
	p.expect(lex.LParen)
	typ := p.parseTypeExpr()
	end := p.cur.Span
	p.expect(lex.RParen)

	if isSizeof {
		return &cst.SizeofExpr{SpanV: start.Join(end), Type: typ}
	}

	return &cst.AlignofExpr{SpanV: start.Join(end), Type: typ}
}

func (p *Parser) parseEmbed() cst.Expr {
	start := p.cur.Span
	p.advance() // embed
	p.expect(lex.LParen)
	path := p.expect(lex.ByteString)
	end := p.cur.Span
	p.expect(lex.RParen)

	return &cst.EmbedExpr{SpanV: start.Join(end), Path: string(path.ByteValue)}
}

// parseParenOrTyped implements spec.md section 4.2's `( : T )` family:
// `(:T)[...]` array/list literal, `(:T){...}` struct/union/slice literal,
// `(:T) expr` cast at prefix precedence, or an ungrouped `(expr)`.
func (p *Parser) parseParenOrTyped() cst.Expr {
	start := p.cur.Span
	p.advance() // (

	if p.at(lex.Colon) {
		p.advance()
		typ := p.parseTypeExpr()
		p.expect(lex.RParen)

		switch p.cur.Kind {
		case lex.LBracket:
			return p.parseArrayLit(start, typ)
		case lex.LBrace:
			return p.parseStructOrSliceLit(start, typ)
		default:
			inner := p.parseExpr(precPrefix)

			return &cst.CastExpr{SpanV: start.Join(inner.Span()), Type: typ, Inner: inner}
		}
	}

	inner := p.parseExpr(lowest)
	end := p.cur.Span
	p.expect(lex.RParen)

	return &cst.GroupExpr{SpanV: start.Join(end), Inner: inner}
}

// parseArrayLit parses the `[e1, e2, ...]` or `[e1, e2, ...elem]` body of an
// array/list literal `(:T)[...]`.
func (p *Parser) parseArrayLit(start source.Span, typ cst.TypeExpr) cst.Expr {
	p.advance() // [

	var elems []cst.Expr
	var ellipsis cst.Expr

	for !p.at(lex.RBracket) {
		if p.at(lex.Ellipsis) {
			p.advance()
			ellipsis = p.parseExpr(lowest)

			break
		}

		elems = append(elems, p.parseExpr(lowest))

		if p.at(lex.Comma) {
			p.advance()
		} else {
			break
		}
	}

	end := p.cur.Span
	p.expect(lex.RBracket)

	return &cst.ArrayLitExpr{SpanV: start.Join(end), Type: typ, Elems: elems, Ellipsis: ellipsis}
}

// parseStructOrSliceLit parses the `{...}` body of `(:T){...}`: a struct or
// union initializer (fields begin with `.name =`), or a `{ptr, count}`
// slice literal otherwise (spec.md section 4.2).
func (p *Parser) parseStructOrSliceLit(start source.Span, typ cst.TypeExpr) cst.Expr {
	p.advance() // {

	if p.at(lex.RBrace) || p.at(lex.Dot) {
		var fields []cst.StructLitField

		for !p.at(lex.RBrace) {
			fstart := p.cur.Span
			p.expect(lex.Dot)
			name := p.ident()
			p.expect(lex.Eq)
			val := p.parseExpr(lowest)
			fields = append(fields, cst.StructLitField{SpanV: fstart.Join(val.Span()), Name: name, Value: val})

			if p.at(lex.Comma) {
				p.advance()
			} else {
				break
			}
		}

		end := p.cur.Span
		p.expect(lex.RBrace)

		return &cst.StructLitExpr{SpanV: start.Join(end), Type: typ, Fields: fields}
	}

	ptr := p.parseExpr(lowest)
	p.expect(lex.Comma)
	count := p.parseExpr(lowest)
	end := p.cur.Span
	p.expect(lex.RBrace)

	return &cst.SliceLitExpr{SpanV: start.Join(end), Type: typ, Ptr: ptr, Count: count}
}

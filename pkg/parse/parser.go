// Package parse implements the Pratt-style, precedence-climbing recursive-
// descent parser spec.md section 4.2 describes: two tokens of lookahead
// (current + peek), producing an immutable pkg/cst tree. It is grounded on
// the teacher's pkg/sexp.Parser two-token-lookahead discipline (cur/peek
// fields, Next()/Lookahead() style), adapted from an S-expression grammar to
// a keyword-dispatched statement/declaration grammar plus a genuine Pratt
// expression table, since spec.md section 4.2 requires real operator
// precedence that an S-expression reader has no need for.
package parse

import (
	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/cst"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/lex"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Parser consumes a Lexer's token stream and produces a *cst.Module.
type Parser struct {
	file   *source.File
	lexer  *lex.Lexer
	intern *interner.Table
	emit   *diag.Emitter

	cur  lex.Token
	peek lex.Token

	// lastSpan tracks the span of the most recently consumed symbol
	// element, used to compute the full extent of a multi-element symbol
	// path without needing a full backtracking reparse.
	lastSpan source.Span
}

// New constructs a Parser bound to the given lexer.
func New(file *source.File, lexer *lex.Lexer, intern *interner.Table, emit *diag.Emitter) *Parser {
	p := &Parser{file: file, lexer: lexer, intern: intern, emit: emit}
	p.cur = p.lexer.Next()
	p.peek = p.lexer.Next()

	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lexer.Next()
}

func (p *Parser) fatal(span source.Span, format string, args ...any) {
	p.emit.Fatal(p.file, span, nil, format, args...)
}

// expect consumes the current token if it has the given kind, or raises a
// fatal "expected X, found Y" diagnostic (spec.md section 4.2).
func (p *Parser) expect(kind lex.Kind) lex.Token {
	if p.cur.Kind != kind {
		p.fatal(p.cur.Span, "expected %s, found %s", kind, p.cur.Kind)
	}

	t := p.cur
	p.advance()

	return t
}

func (p *Parser) at(kind lex.Kind) bool {
	return p.cur.Kind == kind
}

func (p *Parser) ident() string {
	t := p.expect(lex.Ident)
	return t.Ident.String()
}

// ParseModule parses an entire module: an optional namespace declaration,
// zero or more imports, then top-level declarations (spec.md section 4.2).
func (p *Parser) ParseModule(name string) *cst.Module {
	m := &cst.Module{Name: name}

	if p.at(lex.Namespace) {
		p.advance()
		m.Namespace = p.parseNamespacePath()
		p.expect(lex.Semi)
	}

	for p.at(lex.Import) {
		start := p.cur.Span
		p.advance()
		path := p.expect(lex.ByteString)
		p.expect(lex.Semi)
		m.Imports = append(m.Imports, &cst.Import{
			SpanV: start.Join(path.Span),
			Path:  string(path.ByteValue),
		})
	}

	for !p.at(lex.EOF) {
		m.Decls = append(m.Decls, p.parseDecl())
	}

	return m
}

func (p *Parser) parseNamespacePath() []string {
	var segs []string
	segs = append(segs, p.ident())

	for p.at(lex.ColonColon) {
		p.advance()
		segs = append(segs, p.ident())
	}

	return segs
}

// parseDecl dispatches on the leading keyword (spec.md section 4.2).
func (p *Parser) parseDecl() cst.Decl {
	switch p.cur.Kind {
	case lex.Var:
		return p.parseVarDecl()
	case lex.Let:
		return p.parseConstDecl()
	case lex.Func:
		return p.parseFuncDecl()
	case lex.Struct:
		return p.parseStructDecl()
	case lex.Union:
		return p.parseUnionDecl()
	case lex.Enum:
		return p.parseEnumDecl()
	case lex.Extend:
		return p.parseExtendDecl()
	case lex.Type:
		return p.parseTypeAliasDecl()
	case lex.Extern:
		return p.parseExternDecl()
	default:
		p.fatal(p.cur.Span, "expected declaration, found %s", p.cur.Kind)

		return nil
	}
}

func (p *Parser) parseVarDecl() *cst.VarDecl {
	start := p.cur.Span
	p.advance() // var
	name := p.ident()

	var typ cst.TypeExpr
	if p.at(lex.Colon) {
		p.advance()
		typ = p.parseTypeExpr()
	}

	var init cst.Expr
	if p.at(lex.Eq) {
		p.advance()

		if p.at(lex.Uninit) {
			p.advance()
		} else {
			init = p.parseExpr(lowest)
		}
	}

	end := p.cur.Span
	p.expect(lex.Semi)

	return &cst.VarDecl{SpanV: start.Join(end), Name: name, Type: typ, Init: init}
}

func (p *Parser) parseConstDecl() *cst.ConstDecl {
	start := p.cur.Span
	p.advance() // let
	name := p.ident()

	var typ cst.TypeExpr
	if p.at(lex.Colon) {
		p.advance()
		typ = p.parseTypeExpr()
	}

	p.expect(lex.Eq)
	init := p.parseExpr(lowest)
	end := p.cur.Span
	p.expect(lex.Semi)

	return &cst.ConstDecl{SpanV: start.Join(end), Name: name, Type: typ, Init: init}
}

func (p *Parser) parseTemplateParams() []cst.TemplateParam {
	if !p.at(lex.LDBracket) {
		return nil
	}

	p.advance()

	var params []cst.TemplateParam
	for !p.at(lex.RDBracket) {
		name := p.ident()

		if p.at(lex.Colon) {
			p.advance()
			typ := p.parseTypeExpr()
			params = append(params, cst.TemplateParam{Name: name, IsValue: true, Type: typ})
		} else {
			params = append(params, cst.TemplateParam{Name: name})
		}

		if p.at(lex.Comma) {
			p.advance()
		} else {
			break
		}
	}

	p.expect(lex.RDBracket)

	return params
}

func (p *Parser) parseFuncParams() ([]cst.FuncParam, bool) {
	p.expect(lex.LParen)

	var params []cst.FuncParam
	variadic := false

	for !p.at(lex.RParen) {
		if p.at(lex.Ellipsis) {
			p.advance()
			variadic = true

			break
		}

		start := p.cur.Span
		name := p.ident()
		p.expect(lex.Colon)
		typ := p.parseTypeExpr()
		params = append(params, cst.FuncParam{SpanV: start, Name: name, Type: typ})

		if p.at(lex.Comma) {
			p.advance()
		} else {
			break
		}
	}

	p.expect(lex.RParen)

	return params, variadic
}

func (p *Parser) parseFuncDecl() *cst.FuncDecl {
	start := p.cur.Span
	p.advance() // func
	name := p.ident()
	templates := p.parseTemplateParams()
	params, variadic := p.parseFuncParams()

	var ret cst.TypeExpr
	if !p.at(lex.LBrace) && !p.at(lex.Semi) {
		ret = p.parseTypeExpr()
	}

	var body *cst.Block
	if p.at(lex.Semi) {
		p.advance()
	} else {
		body = p.parseBlock()
	}

	return &cst.FuncDecl{
		SpanV: start, Name: name, Templates: templates, Params: params,
		Variadic: variadic, ReturnType: ret, Body: body,
	}
}

func (p *Parser) parseStructMembers() []cst.StructMemberExpr {
	p.expect(lex.LBrace)

	var members []cst.StructMemberExpr
	for !p.at(lex.RBrace) {
		start := p.cur.Span
		p.expect(lex.Var)
		name := p.ident()
		p.expect(lex.Colon)
		typ := p.parseTypeExpr()
		p.expect(lex.Semi)
		members = append(members, cst.StructMemberExpr{SpanV: start, Name: name, Type: typ})
	}

	p.expect(lex.RBrace)

	return members
}

func (p *Parser) parseStructDecl() *cst.StructDecl {
	start := p.cur.Span
	p.advance() // struct
	name := p.ident()
	templates := p.parseTemplateParams()
	members := p.parseStructMembers()

	return &cst.StructDecl{SpanV: start, Name: name, Templates: templates, Members: members}
}

func (p *Parser) parseUnionDecl() *cst.UnionDecl {
	start := p.cur.Span
	p.advance() // union
	name := p.ident()
	templates := p.parseTemplateParams()
	members := p.parseStructMembers()

	return &cst.UnionDecl{SpanV: start, Name: name, Templates: templates, Members: members}
}

func (p *Parser) parseEnumDecl() *cst.EnumDecl {
	start := p.cur.Span
	p.advance() // enum
	name := p.ident()
	p.expect(lex.Colon)
	underlying := p.parseTypeExpr()
	p.expect(lex.LBrace)

	var values []cst.EnumValueExpr
	var funcs []*cst.FuncDecl

	for !p.at(lex.RBrace) {
		if p.at(lex.Func) {
			funcs = append(funcs, p.parseFuncDecl())

			continue
		}

		vstart := p.cur.Span
		vname := p.ident()

		var val cst.Expr
		if p.at(lex.Eq) {
			p.advance()
			val = p.parseExpr(lowest)
		}

		p.expect(lex.Semi)
		values = append(values, cst.EnumValueExpr{SpanV: vstart, Name: vname, Value: val})
	}

	p.expect(lex.RBrace)

	return &cst.EnumDecl{SpanV: start, Name: name, Underlying: underlying, Values: values, Funcs: funcs}
}

func (p *Parser) parseExtendDecl() *cst.ExtendDecl {
	start := p.cur.Span
	p.advance() // extend
	target := p.parseTypeExpr()
	p.expect(lex.LBrace)
	inner := p.parseDecl()
	p.expect(lex.RBrace)

	return &cst.ExtendDecl{SpanV: start, Target: target, Inner: inner}
}

func (p *Parser) parseTypeAliasDecl() *cst.TypeAliasDecl {
	start := p.cur.Span
	p.advance() // type
	name := p.ident()
	p.expect(lex.Eq)
	typ := p.parseTypeExpr()
	p.expect(lex.Semi)

	return &cst.TypeAliasDecl{SpanV: start, Name: name, Type: typ}
}

func (p *Parser) parseExternDecl() cst.Decl {
	start := p.cur.Span
	p.advance() // extern

	switch p.cur.Kind {
	case lex.Var:
		p.advance()
		name := p.ident()
		p.expect(lex.Colon)
		typ := p.parseTypeExpr()
		p.expect(lex.Semi)

		return &cst.ExternVarDecl{SpanV: start, Name: name, Type: typ}
	case lex.Func:
		p.advance()
		name := p.ident()
		params, variadic := p.parseFuncParams()

		var ret cst.TypeExpr
		if !p.at(lex.Semi) {
			ret = p.parseTypeExpr()
		}

		p.expect(lex.Semi)

		return &cst.ExternFuncDecl{SpanV: start, Name: name, Params: params, Variadic: variadic, ReturnType: ret}
	case lex.Type:
		p.advance()
		name := p.ident()

		var size, align cst.Expr

		for p.at(lex.Comma) {
			p.advance()
			key := p.ident()
			p.expect(lex.Colon)

			switch key {
			case "size":
				size = p.parseExpr(lowest)
			case "align":
				align = p.parseExpr(lowest)
			default:
				p.fatal(p.cur.Span, "unknown extern type attribute %q", key)
			}
		}

		p.expect(lex.Semi)

		return &cst.ExternTypeDecl{SpanV: start, Name: name, Size: size, Align: align}
	default:
		p.fatal(p.cur.Span, "expected var, func or type after extern, found %s", p.cur.Kind)

		return nil
	}
}


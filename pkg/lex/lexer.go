package lex

import (
	"strconv"
	"strings"

	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Lexer scans one module's padded source buffer into a stream of Tokens. It
// is a pure function of the source plus module name for diagnostics (spec.md
// section 4.1): all lexical errors are reported through diag and are fatal.
type Lexer struct {
	file   *source.File
	padded []rune // file.Padded(): sentinel NUL at 0 and len-1
	pos    int    // index into padded; real text occupies [1, len(padded)-2]
	intern *interner.Table
	emit   *diag.Emitter
}

// New constructs a Lexer bound to the given module source.
func New(file *source.File, intern *interner.Table, emit *diag.Emitter) *Lexer {
	return &Lexer{file: file, padded: file.Padded(), pos: 1, intern: intern, emit: emit}
}

// textPos converts the current cursor position into Text()-relative
// coordinates, which is what source.Span values are expressed in throughout
// the rest of the pipeline.
func (l *Lexer) textPos() int {
	return l.pos - 1
}

func (l *Lexer) cur() rune {
	if l.pos < 0 || l.pos >= len(l.padded) {
		return 0
	}

	return l.padded[l.pos]
}

func (l *Lexer) peekAt(n int) rune {
	i := l.pos + n
	if i < 0 || i >= len(l.padded) {
		return 0
	}

	return l.padded[i]
}

func (l *Lexer) atEnd() bool {
	return l.textPos() >= len(l.padded)-2
}

func (l *Lexer) advance() rune {
	c := l.cur()
	l.pos++

	return c
}

func (l *Lexer) fatal(span source.Span, format string, args ...any) {
	l.emit.Fatal(l.file, span, nil, format, args...)
}

func (l *Lexer) span(start int) source.Span {
	return source.NewSpan(start, l.textPos())
}

// Next scans and returns the next token, skipping whitespace and comments.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()

	start := l.textPos()

	if l.atEnd() {
		return Token{Kind: EOF, Span: source.NewSpan(start, start)}
	}

	c := l.cur()

	switch {
	case isIdentStart(c):
		return l.scanIdentOrKeyword(start)
	case isDigit(c):
		return l.scanNumber(start)
	case c == '\'':
		return l.scanChar(start)
	case c == '"':
		return l.scanByteString(start)
	default:
		return l.scanSigil(start)
	}
}

// Collect scans every remaining token, used by callers (and tests) that want
// the whole stream at once rather than pulling tokens one at a time.
func (l *Lexer) Collect() []Token {
	var toks []Token

	for {
		t := l.Next()
		toks = append(toks, t)

		if t.Kind == EOF {
			return toks
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		c := l.cur()

		switch {
		case c == '#':
			for !l.atEnd() && l.cur() != '\n' {
				l.advance()
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		default:
			return
		}
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c rune) bool {
	return isIdentCont(c)
}

func (l *Lexer) scanIdentOrKeyword(start int) Token {
	for isIdentCont(l.cur()) {
		l.advance()
	}

	text := string(l.padded[start+1 : l.pos])
	sp := l.span(start)

	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Span: sp}
	}

	return Token{Kind: Ident, Span: sp, Ident: l.intern.InternString(text)}
}

// radixDigits reports whether c is a legal digit in the given radix.
func radixDigits(c rune, radix int) bool {
	switch radix {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return isDigit(c)
	}
}

func (l *Lexer) scanNumber(start int) Token {
	radix := 10
	digitsStart := start

	if l.cur() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'o' || l.peekAt(1) == 'x') {
		switch l.peekAt(1) {
		case 'b':
			radix = 2
		case 'o':
			radix = 8
		case 'x':
			radix = 16
		}

		l.advance()
		l.advance()
		digitsStart = l.textPos()
	}

	digitCount := 0
	for radixDigits(l.cur(), radix) {
		l.advance()
		digitCount++
	}

	if digitCount == 0 {
		l.fatal(l.span(start), "integer literal has no digits in radix %d", radix)
	}

	digits := string(l.padded[digitsStart+1 : l.pos])

	// A decimal literal is floating-point if a '.' followed by a decimal
	// digit follows the integer digits. A decimal literal followed by a
	// '.' and then anything other than an identifier character or the end
	// of input is fatal (a trailing '.'). A radix-prefixed literal never
	// takes a fractional part here; a '.' after it is left for the next
	// token.
	if radix == 10 && l.cur() == '.' && isFloatFractionStart(l.peekAt(1)) {
		return l.scanFloat(start, digits)
	}

	if radix == 10 && l.cur() == '.' && !isIdentCont(l.peekAt(1)) && l.peekAt(1) != 0 {
		l.fatal(l.span(start), "integer literal has trailing '.' with no fractional digit")
	}

	value, ok := bigint.FromStringRadix(digits, radix)
	if !ok {
		l.fatal(l.span(start), "malformed integer literal %q", digits)
	}

	suffix := l.scanSuffix()

	return Token{Kind: Int, Span: l.span(start), IntValue: value, IntSuffix: suffix}
}

func isFloatFractionStart(c rune) bool {
	return isDigit(c)
}

func (l *Lexer) scanFloat(start int, intDigits string) Token {
	l.advance() // consume '.'

	fracStart := l.textPos()
	for isDigit(l.cur()) {
		l.advance()
	}

	frac := string(l.padded[fracStart+1 : l.pos])
	if frac == "" {
		l.fatal(l.span(start), "float literal has no fractional digits")
	}

	text := intDigits + "." + frac

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		l.fatal(l.span(start), "malformed float literal %q", text)
	}

	suffix := l.scanSuffix()

	return Token{Kind: Float, Span: l.span(start), FloatValue: value, FloatSuffix: suffix}
}

func (l *Lexer) scanSuffix() *interner.Entry {
	if !isIdentStart(l.cur()) {
		return nil
	}

	start := l.textPos()
	for isAlnum(l.cur()) {
		l.advance()
	}

	text := string(l.padded[start+1 : l.pos])

	return l.intern.InternString(text)
}

func (l *Lexer) scanChar(start int) Token {
	l.advance() // opening '

	if l.cur() == '\n' || l.atEnd() {
		l.fatal(l.span(start), "end of line inside character literal")
	}

	c := l.decodeEscapeOrByte(start)

	if l.cur() != '\'' {
		l.fatal(l.span(start), "unterminated character literal")
	}

	l.advance() // closing '

	return Token{Kind: Char, Span: l.span(start), CharValue: c}
}

func (l *Lexer) scanByteString(start int) Token {
	l.advance() // opening "

	var out []byte

	for l.cur() != '"' {
		if l.cur() == '\n' || l.atEnd() {
			l.fatal(l.span(start), "end of line inside byte-string literal")
		}

		c := l.decodeEscapeOrByte(start)
		out = append(out, byte(c))
	}

	l.advance() // closing "

	return Token{Kind: ByteString, Span: l.span(start), ByteValue: out}
}

// decodeEscapeOrByte decodes either a literal byte or one of the fixed
// escape sequences \0 \t \n \' \" \\ \xHH (spec.md section 4.1). Non-
// printable bytes inside character/byte literals are fatal.
func (l *Lexer) decodeEscapeOrByte(start int) rune {
	c := l.advance()

	if c != '\\' {
		if c < 0x20 || c >= 0x7f {
			l.fatal(l.span(start), "non-printable byte in literal")
		}

		return c
	}

	e := l.advance()

	switch e {
	case '0':
		return 0
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case '\'':
		return '\''
	case '"':
		return '"'
	case '\\':
		return '\\'
	case 'x':
		hi := l.advance()
		lo := l.advance()

		v, ok := hexDigitPair(hi, lo)
		if !ok {
			l.fatal(l.span(start), "invalid hexadecimal escape \\x%c%c", hi, lo)
		}

		return rune(v)
	default:
		l.fatal(l.span(start), "invalid escape sequence \\%c", e)

		return 0
	}
}

func hexDigitPair(hi, lo rune) (int, bool) {
	h, ok1 := hexDigit(hi)
	l, ok2 := hexDigit(lo)

	if !ok1 || !ok2 {
		return 0, false
	}

	return h*16 + l, true
}

func hexDigit(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func (l *Lexer) scanSigil(start int) Token {
	remaining := string(l.padded[l.pos : len(l.padded)-1])

	for _, s := range sigils {
		if strings.HasPrefix(remaining, s.text) {
			for range s.text {
				l.advance()
			}

			return Token{Kind: s.kind, Span: l.span(start)}
		}
	}

	l.fatal(l.span(start), "invalid token %q", string(l.cur()))

	return Token{Kind: EOF, Span: l.span(start)}
}

package lex

import (
	"bytes"
	"testing"

	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
	"github.com/ashn-dot-dev/sunder/pkg/source"
	"github.com/ashn-dot-dev/sunder/pkg/util/assert"
)

func newLexer(src string) (*Lexer, *diag.Emitter) {
	emit := diag.New(&bytes.Buffer{})
	emit.SetExitOnFatal(false)
	file := source.NewFile("test.sunder", []byte(src))

	return New(file, interner.New(), emit), emit
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func TestLexKeywordsAndIdents(t *testing.T) {
	l, emit := newLexer("func counter return")
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, []Kind{Func, Ident, Return, EOF}, kinds(toks))
	assert.True(t, toks[1].Ident != nil, "expected Ident payload on identifier token")
}

func TestLexSkipsCommentsAndWhitespace(t *testing.T) {
	l, emit := newLexer("let x # this is a comment\n= 1;")
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, []Kind{Let, Ident, Eq, Int, Semi, EOF}, kinds(toks))
}

func TestLexSigilsAreLongestMatchFirst(t *testing.T) {
	l, emit := newLexer("+ += +% +%=")
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, []Kind{Plus, PlusEq, PlusWrap, PlusWrapEq, EOF}, kinds(toks))
}

func TestLexDecimalInteger(t *testing.T) {
	l, emit := newLexer("12345")
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, Int, toks[0].Kind)
	assert.Equal(t, int64(12345), toks[0].IntValue.Int64())
}

func TestLexRadixPrefixedIntegers(t *testing.T) {
	l, emit := newLexer("0b1010 0o17 0xFF")
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, int64(10), toks[0].IntValue.Int64())
	assert.Equal(t, int64(15), toks[1].IntValue.Int64())
	assert.Equal(t, int64(255), toks[2].IntValue.Int64())
}

func TestLexIntegerSuffix(t *testing.T) {
	l, emit := newLexer("42u8")
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, Int, toks[0].Kind)
	assert.True(t, toks[0].IntSuffix != nil, "expected a suffix on 42u8")
}

func TestLexFloatLiteral(t *testing.T) {
	l, emit := newLexer("3.14")
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, Float, toks[0].Kind)
	assert.Equal(t, 3.14, toks[0].FloatValue)
}

func TestLexCharLiteralWithEscape(t *testing.T) {
	l, emit := newLexer(`'\n'`)
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, Char, toks[0].Kind)
	assert.Equal(t, '\n', toks[0].CharValue)
}

func TestLexByteStringLiteral(t *testing.T) {
	l, emit := newLexer(`"hi\n"`)
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, ByteString, toks[0].Kind)
	assert.Equal(t, []byte("hi\n"), toks[0].ByteValue)
}

func TestLexHexEscape(t *testing.T) {
	l, emit := newLexer(`"\x41"`)
	toks := l.Collect()

	assert.False(t, emit.Errored())
	assert.Equal(t, []byte("A"), toks[0].ByteValue)
}

func TestLexInvalidTokenIsFatal(t *testing.T) {
	l, emit := newLexer("$")

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		l.Collect()
	}()

	assert.True(t, fatal != nil, "expected an invalid sigil to be fatal")
	assert.True(t, emit.Errored(), "expected the invalid token to be reported")
}

func TestLexUnterminatedCharLiteralIsFatal(t *testing.T) {
	l, emit := newLexer("'ab'")

	var fatal *diag.FatalError

	func() {
		defer func() {
			if r := recover(); r != nil {
				fe, ok := r.(*diag.FatalError)
				assert.True(t, ok, "expected a *diag.FatalError panic")
				fatal = fe
			}
		}()

		l.Collect()
	}()

	assert.True(t, fatal != nil, "expected an unterminated character literal to be fatal")
	assert.True(t, emit.Errored())
}

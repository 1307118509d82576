package lex

import (
	"github.com/ashn-dot-dev/sunder/internal/interner"
	"github.com/ashn-dot-dev/sunder/pkg/bigint"
	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Token is one lexical unit: a source location, a lexeme span, a kind
// discriminator, and kind-specific payload fields (spec.md section 3.1).
// Only the fields relevant to Kind are populated; the rest are zero.
type Token struct {
	Kind Kind
	Span source.Span

	Ident *interner.Entry // Ident

	IntValue  *bigint.Int     // Int
	IntSuffix *interner.Entry // Int, may be nil

	FloatValue  float64         // Float
	FloatSuffix *interner.Entry // Float, may be nil

	CharValue rune // Char

	ByteValue []byte // ByteString, post-escape-decoding
}

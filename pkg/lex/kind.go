// Package lex implements the tokenizer described in spec.md section 4.1: a
// character-cursor scanner producing one token per call from a module's
// padded source buffer. It is grounded in spirit on
// pkg/util/source/lex.Lexer's buffer-and-scan structure, but adapted from a
// generic combinator scanner (a list of independent LexRules tried in
// order) to the direct character-dispatch cursor the spec requires, because
// numeric-literal suffix capture, escape decoding, and the longest-match
// sigil table are naturally expressed as one procedural scan rather than as
// composable rules.
package lex

// Kind discriminates a token. Keyword and sigil tokens carry only Kind and
// Span (spec.md section 3.1); literal and identifier tokens carry
// kind-specific payload fields on Token.
type Kind int

const (
	// EOF is returned once the cursor reaches the end of the source.
	EOF Kind = iota

	// Ident is a plain identifier that is not a keyword spelling.
	Ident
	// Int is an integer literal (radix-prefixed or decimal), optionally
	// suffixed.
	Int
	// Float is a floating-point literal, optionally suffixed.
	Float
	// Char is a character literal, e.g. 'a'.
	Char
	// ByteString is a byte-string literal, e.g. "hello".
	ByteString

	// Keywords, in the fixed vocabulary of spec.md section 4.1.
	True
	False
	Not
	Or
	And
	Namespace
	Import
	Var
	Let
	Func
	Struct
	Union
	Enum
	Type
	Extend
	Extern
	Switch
	Return
	Assert
	Defer
	If
	Elif
	Else
	When
	Elwhen
	For
	In
	Break
	Continue
	Defined
	Alignof
	Startof
	Countof
	Sizeof
	Typeof
	Fileof
	Lineof
	Embed
	Uninit

	// Assignment compounds.
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	PlusWrapEq
	MinusWrapEq
	StarWrapEq
	ShlEq
	ShrEq
	PipeEq
	CaretEq
	AmpEq
	Eq

	// Comparisons.
	EqEq
	NotEq
	LtEq
	Lt
	GtEq
	Gt

	// Binary / unary operators.
	PlusWrap
	MinusWrap
	StarWrap
	Plus
	Minus
	Star
	Slash
	Percent
	Shl
	Shr
	Pipe
	Caret
	Amp
	Tilde

	// Brackets and punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	LDBracket // [[
	RDBracket // ]]
	Comma
	Ellipsis
	DotStar
	Dot
	ColonColon
	Colon
	Semi
)

// keywords maps exact keyword spellings to their Kind, used by the lexer
// after scanning an identifier-shaped lexeme: "if the lexeme exactly matches
// a keyword spelling, the keyword kind wins" (spec.md section 4.1).
var keywords = map[string]Kind{
	"true": True, "false": False, "not": Not, "or": Or, "and": And,
	"namespace": Namespace, "import": Import, "var": Var, "let": Let,
	"func": Func, "struct": Struct, "union": Union, "enum": Enum,
	"type": Type, "extend": Extend, "extern": Extern, "switch": Switch,
	"return": Return, "assert": Assert, "defer": Defer, "if": If,
	"elif": Elif, "else": Else, "when": When, "elwhen": Elwhen,
	"for": For, "in": In, "break": Break, "continue": Continue,
	"defined": Defined, "alignof": Alignof, "startof": Startof,
	"countof": Countof, "sizeof": Sizeof, "typeof": Typeof,
	"fileof": Fileof, "lineof": Lineof, "embed": Embed, "uninit": Uninit,
}

// String renders a Kind for diagnostics and test failure messages.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "<unknown-kind>"
}

var kindNames = map[Kind]string{
	EOF: "EOF", Ident: "identifier", Int: "integer literal",
	Float: "float literal", Char: "character literal",
	ByteString: "byte-string literal",
	True: "true", False: "false", Not: "not", Or: "or", And: "and",
	Namespace: "namespace", Import: "import", Var: "var", Let: "let",
	Func: "func", Struct: "struct", Union: "union", Enum: "enum",
	Type: "type", Extend: "extend", Extern: "extern", Switch: "switch",
	Return: "return", Assert: "assert", Defer: "defer", If: "if",
	Elif: "elif", Else: "else", When: "when", Elwhen: "elwhen",
	For: "for", In: "in", Break: "break", Continue: "continue",
	Defined: "defined", Alignof: "alignof", Startof: "startof",
	Countof: "countof", Sizeof: "sizeof", Typeof: "typeof",
	Fileof: "fileof", Lineof: "lineof", Embed: "embed", Uninit: "uninit",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=",
	PercentEq: "%=", PlusWrapEq: "+%=", MinusWrapEq: "-%=",
	StarWrapEq: "*%=", ShlEq: "<<=", ShrEq: ">>=", PipeEq: "|=",
	CaretEq: "^=", AmpEq: "&=", Eq: "=",
	EqEq: "==", NotEq: "!=", LtEq: "<=", Lt: "<", GtEq: ">=", Gt: ">",
	PlusWrap: "+%", MinusWrap: "-%", StarWrap: "*%", Plus: "+",
	Minus: "-", Star: "*", Slash: "/", Percent: "%", Shl: "<<",
	Shr: ">>", Pipe: "|", Caret: "^", Amp: "&", Tilde: "~",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", LDBracket: "[[", RDBracket: "]]",
	Comma: ",", Ellipsis: "...", DotStar: ".*", Dot: ".",
	ColonColon: "::", Colon: ":", Semi: ";",
}

// sigils is the fixed sigil table, tried longest-first (spec.md section
// 4.1: "Sigils are matched longest-first against the fixed sigil table").
// Every sigil is listed before any shorter sigil that is a prefix of it.
var sigils = []struct {
	text string
	kind Kind
}{
	{"+%=", PlusWrapEq}, {"-%=", MinusWrapEq}, {"*%=", StarWrapEq},
	{"<<=", ShlEq}, {">>=", ShrEq},
	{"[[", LDBracket}, {"]]", RDBracket},
	{"...", Ellipsis},
	{"+=", PlusEq}, {"-=", MinusEq}, {"*=", StarEq}, {"/=", SlashEq},
	{"%=", PercentEq}, {"|=", PipeEq}, {"^=", CaretEq}, {"&=", AmpEq},
	{"==", EqEq}, {"!=", NotEq}, {"<=", LtEq}, {">=", GtEq},
	{"+%", PlusWrap}, {"-%", MinusWrap}, {"*%", StarWrap},
	{"<<", Shl}, {">>", Shr},
	{"::", ColonColon}, {".*", DotStar},
	{"+", Plus}, {"-", Minus}, {"*", Star}, {"/", Slash}, {"%", Percent},
	{"<", Lt}, {">", Gt}, {"|", Pipe}, {"^", Caret}, {"&", Amp},
	{"~", Tilde},
	{"(", LParen}, {")", RParen}, {"{", LBrace}, {"}", RBrace},
	{"[", LBracket}, {"]", RBracket},
	{",", Comma}, {".", Dot}, {":", Colon}, {";", Semi}, {"=", Eq},
}

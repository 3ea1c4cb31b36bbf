/*
Package lexer turns ishlang source text into a flat token stream, per
spec §4.1. Modeled on github.com/krotik/ecal/parser/lexer.go's
rune-stepping state machine, retargeted from ECAL's keyword/symbol-table
driven lexer to ishlang's much smaller S-expression token set: parens, a
quoted char, a quoted string, numbers, and bare symbols (which include the
single- and two-character operator tokens).
*/
package lexer

/*
TokenKind identifies the lexical category of a Token.
*/
type TokenKind int

const (
	LeftParen TokenKind = iota
	RightParen
	Char
	String
	Int
	Real
	Bool
	Null
	Symbol
)

var tokenKindNames = map[TokenKind]string{
	LeftParen:  "(",
	RightParen: ")",
	Char:       "char",
	String:     "string",
	Int:        "int",
	Real:       "real",
	Bool:       "bool",
	Null:       "null",
	Symbol:     "symbol",
}

func (k TokenKind) String() string { return tokenKindNames[k] }

/*
Token is one lexical unit produced by the lexer, carrying both its raw text
and, for the literal kinds, its decoded value.
*/
type Token struct {
	Kind    TokenKind
	Text    string
	IntVal  int64
	RealVal float64
	CharVal byte
	BoolVal bool
	Line    int
	Pos     int
}

package lexer

import (
	"strconv"

	"github.com/krotik/ishlang/util"
)

/*
notAllowedInSymbol is the fixed set of characters that end a bare symbol
run or a letter-led identifier, per spec §4.1.
*/
const notAllowedInSymbol = "()[]{}~!@#$%^&*=|\\,.<>?`/'\":"

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isNotAllowed(b byte) bool {
	for i := 0; i < len(notAllowedInSymbol); i++ {
		if notAllowedInSymbol[i] == b {
			return true
		}
	}
	return false
}

func isSymbolChar(b byte) bool {
	return !isWhitespace(b) && !isNotAllowed(b)
}

/*
singleCharOps are the single-character tokens that are themselves a Symbol.
*/
const singleCharOps = "-+*/%^=<>?"

func isSingleCharOp(b byte) bool {
	for i := 0; i < len(singleCharOps); i++ {
		if singleCharOps[i] == b {
			return true
		}
	}
	return false
}

/*
twoCharOps are the two-character comparison and compound-assignment
tokens, each a Symbol.
*/
var twoCharOps = map[string]bool{"==": true, "!=": true, "<=": true, ">=": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "^=": true}

/*
Lex tokenizes input (one chunk of a possibly larger, incrementally fed
source) and returns its tokens. source names the input for error context.
startLine is the 1-based line this chunk starts on, used to keep line
numbers correct across incremental reads.
*/
func Lex(source string, input string, startLine int) ([]Token, error) {
	var toks []Token
	pos := 0
	line := startLine
	lineStart := 0
	n := len(input)

	colOf := func(p int) int { return p - lineStart + 1 }

	for pos < n {
		c := input[pos]

		if isWhitespace(c) {
			if c == '\n' {
				line++
				lineStart = pos + 1
			}
			pos++
			continue
		}

		if c == ';' {
			if pos+1 < n && input[pos+1] == ';' {
				for pos < n && input[pos] != '\n' {
					pos++
				}
				continue
			}
			return nil, util.NewErrorAt(util.ErrInvalidExpression,
				"a single ';' is not a valid comment marker, use ';;'", source, line)
		}

		switch c {
		case '(':
			toks = append(toks, Token{Kind: LeftParen, Text: "(", Line: line, Pos: colOf(pos)})
			pos++
			continue
		case ')':
			toks = append(toks, Token{Kind: RightParen, Text: ")", Line: line, Pos: colOf(pos)})
			pos++
			continue
		}

		if c == '\'' {
			if pos+2 < n && input[pos+2] == '\'' {
				toks = append(toks, Token{Kind: Char, Text: input[pos : pos+3],
					CharVal: input[pos+1], Line: line, Pos: colOf(pos)})
				pos += 3
				continue
			}
			return nil, util.NewErrorAt(util.ErrInvalidExpression,
				"unterminated or multi-character char literal", source, line)
		}

		if c == '"' {
			start := pos
			pos++
			for pos < n && input[pos] != '"' {
				if input[pos] == '\n' {
					line++
					lineStart = pos + 1
				}
				pos++
			}
			if pos >= n {
				return nil, util.NewErrorAt(util.ErrInvalidExpression,
					"unterminated string literal", source, line)
			}
			toks = append(toks, Token{Kind: String, Text: input[start+1 : pos],
				Line: line, Pos: colOf(start)})
			pos++
			continue
		}

		if isDigit(c) || ((c == '+' || c == '-') && pos+1 < n && (isDigit(input[pos+1]) || input[pos+1] == '.')) {
			tok, newPos, err := lexNumber(source, input, pos, line)
			if err != nil {
				return nil, err
			}
			tok.Pos = colOf(pos)
			toks = append(toks, tok)
			pos = newPos
			continue
		}

		if pos+1 < n && twoCharOps[input[pos:pos+2]] {
			toks = append(toks, Token{Kind: Symbol, Text: input[pos : pos+2], Line: line, Pos: colOf(pos)})
			pos += 2
			continue
		}

		if isSingleCharOp(c) {
			toks = append(toks, Token{Kind: Symbol, Text: string(c), Line: line, Pos: colOf(pos)})
			pos++
			continue
		}

		if isLetter(c) {
			start := pos
			for pos < n && isSymbolChar(input[pos]) {
				pos++
			}
			text := input[start:pos]
			tok := Token{Text: text, Line: line, Pos: colOf(start)}
			switch text {
			case "true":
				tok.Kind = Bool
				tok.BoolVal = true
			case "false":
				tok.Kind = Bool
				tok.BoolVal = false
			case "null":
				tok.Kind = Null
			default:
				tok.Kind = Symbol
			}
			toks = append(toks, tok)
			continue
		}

		return nil, util.NewErrorAt(util.ErrUnknownTokenType,
			"unexpected character '"+string(c)+"'", source, line)
	}

	return toks, nil
}

/*
lexNumber scans an int or real literal starting at pos and returns the
decoded token and the position just past it.
*/
func lexNumber(source, input string, pos int, line int) (Token, int, error) {
	n := len(input)
	start := pos

	if input[pos] == '+' || input[pos] == '-' {
		pos++
	}

	digitsBefore := 0
	for pos < n && isDigit(input[pos]) {
		pos++
		digitsBefore++
	}

	isReal := false
	digitsAfter := 0
	if pos < n && input[pos] == '.' {
		isReal = true
		pos++
		for pos < n && isDigit(input[pos]) {
			pos++
			digitsAfter++
		}
	}

	text := input[start:pos]

	if isReal {
		if digitsBefore == 0 || digitsAfter == 0 {
			return Token{}, 0, util.NewErrorAt(util.ErrInvalidExpression,
				"malformed real literal "+text, source, line)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, 0, util.NewErrorAt(util.ErrInvalidExpression,
				"malformed real literal "+text, source, line)
		}
		return Token{Kind: Real, Text: text, RealVal: f, Line: line}, pos, nil
	}

	if digitsBefore == 0 {
		return Token{}, 0, util.NewErrorAt(util.ErrInvalidExpression,
			"malformed integer literal "+text, source, line)
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, 0, util.NewErrorAt(util.ErrInvalidExpression,
			"malformed integer literal "+text, source, line)
	}
	return Token{Kind: Int, Text: text, IntVal: i, Line: line}, pos, nil
}

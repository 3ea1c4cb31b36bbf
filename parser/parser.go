/*
 * ishlang
 *
 * Core subsystems of a small S-expression based scripting language.
 */

/*
Package parser turns an ishlang token stream into an AST via a fixed
head-symbol dispatch table, per spec §4.2. Grounded on
github.com/krotik/ecal/parser/parser.go's astNodeMap head-dispatch idea,
but restructured as map[string]parseFunc keyed on head *symbol text*
rather than lexer token ID, because ishlang's grammar dispatches on the
head symbol of a parenthesized form, not on infix operator precedence the
way ECAL's Pratt parser does.
*/
package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/lexer"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
parseFunc parses one builtin form's arguments, given a Parser and a token
stream already positioned just past the head symbol, up to (and
consuming) the form's closing parenthesis.
*/
type parseFunc func(p *Parser, ts *tokStream) (value.Node, error)

/*
Parser turns incrementally-fed ishlang source into AST nodes. One Parser
corresponds to one source (a file, a REPL session, or an in-memory
string); its token buffer and line counter persist across ReadMulti calls
so multi-line forms can be fed one line at a time.
*/
type Parser struct {
	source string
	buf    []lexer.Token
	line   int
	loader value.ModuleLoader
}

/*
New creates a Parser for the named source. loader is wired into every
ImportModule/FromModuleImport node this parser builds, so the module
system never needs to be imported by the ast or parser packages directly.
*/
func New(source string, loader value.ModuleLoader) *Parser {
	return &Parser{source: source, line: 1, loader: loader}
}

// Token stream
// ============

/*
tokStream is a position cursor over a token slice, local to the one
complete top-level form currently being parsed.
*/
type tokStream struct {
	toks []lexer.Token
	pos  int
}

func (s *tokStream) peek() (lexer.Token, bool) {
	if s.pos >= len(s.toks) {
		return lexer.Token{}, false
	}
	return s.toks[s.pos], true
}

func (s *tokStream) pop() (lexer.Token, bool) {
	t, ok := s.peek()
	if ok {
		s.pos++
	}
	return t, ok
}

// Core recursive-descent primitives
// ==================================

/*
readExpr returns the next AST node, dispatching on the next token's kind.
A stray ')' at this point is ExpectedParenthesis: readExpr is only called
where an expression is expected, never where a list may legally end (that
case goes through readExprOrClose / readExprList).
*/
func (p *Parser) readExpr(ts *tokStream) (value.Node, error) {
	t, ok := ts.pop()
	if !ok {
		return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unexpected end of form", p.source, p.line)
	}

	switch t.Kind {
	case lexer.LeftParen:
		return p.readApplication(ts)
	case lexer.RightParen:
		return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "unexpected ')'", p.source, t.Line)
	case lexer.Int:
		return &ast.Literal{Val: value.NewInt(t.IntVal)}, nil
	case lexer.Real:
		return &ast.Literal{Val: value.NewReal(t.RealVal)}, nil
	case lexer.Char:
		return &ast.Literal{Val: value.NewChar(t.CharVal)}, nil
	case lexer.String:
		return &ast.Literal{Val: value.NewString(t.Text)}, nil
	case lexer.Bool:
		return &ast.Literal{Val: value.NewBool(t.BoolVal)}, nil
	case lexer.Null:
		return &ast.Literal{Val: value.Null}, nil
	case lexer.Symbol:
		return &ast.Variable{Name: t.Text}, nil
	}

	return nil, util.NewErrorAt(util.ErrUnknownTokenType, "unexpected token", p.source, t.Line)
}

/*
readApplication parses the inside of a parenthesized form whose opening
'(' has already been consumed: either a builtin dispatched by its head
symbol, a named function application, or a first-class callee expression
applied to arguments.
*/
func (p *Parser) readApplication(ts *tokStream) (value.Node, error) {
	t, ok := ts.peek()
	if !ok {
		return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unexpected end of form", p.source, p.line)
	}

	if t.Kind == lexer.Symbol {
		if fn, isBuiltin := dispatchTable[t.Text]; isBuiltin {
			ts.pop()
			return fn(p, ts)
		}
		ts.pop()
		args, err := p.readExprList(ts)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionApp{Name: t.Text, Args: args}, nil
	}

	callee, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	args, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	return &ast.LambdaApp{Callee: callee, Args: args}, nil
}

/*
readExprOrClose reads the next expression, or consumes and reports a
closing ')' if that is what comes next - the two legal things that can
follow the last element of a list.
*/
func (p *Parser) readExprOrClose(ts *tokStream) (value.Node, bool, error) {
	t, ok := ts.peek()
	if !ok {
		return nil, false, util.NewErrorAt(util.ErrIncompleteExpression, "unterminated list", p.source, p.line)
	}
	if t.Kind == lexer.RightParen {
		ts.pop()
		return nil, true, nil
	}
	n, err := p.readExpr(ts)
	return n, false, err
}

/*
readExprList consumes expressions until a matching ')', returning the
forms it contained.
*/
func (p *Parser) readExprList(ts *tokStream) ([]value.Node, error) {
	var out []value.Node
	for {
		n, closed, err := p.readExprOrClose(ts)
		if err != nil {
			return nil, err
		}
		if closed {
			return out, nil
		}
		out = append(out, n)
	}
}

/*
readAndCheckExprList requires the form to have exactly n arguments.
*/
func (p *Parser) readAndCheckExprList(ts *tokStream, name string, n int) ([]value.Node, error) {
	exprs, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	if len(exprs) != n {
		return nil, util.NewErrorf(util.ErrTooManyOrFewForms,
			"%s expects exactly %d argument(s), got %d", name, n, len(exprs))
	}
	return exprs, nil
}

/*
readAndCheckRangeExprList requires lo <= argument count <= hi; hi == -1
means no upper bound.
*/
func (p *Parser) readAndCheckRangeExprList(ts *tokStream, name string, lo, hi int) ([]value.Node, error) {
	exprs, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	if len(exprs) < lo || (hi >= 0 && len(exprs) > hi) {
		return nil, util.NewErrorf(util.ErrTooManyOrFewForms,
			"%s expects between %d and %d argument(s), got %d", name, lo, hi, len(exprs))
	}
	return exprs, nil
}

/*
readName consumes a Symbol token and returns its text.
*/
func (p *Parser) readName(ts *tokStream) (string, error) {
	t, ok := ts.pop()
	if !ok {
		return "", util.NewErrorAt(util.ErrIncompleteExpression, "expected a name", p.source, p.line)
	}
	if t.Kind != lexer.Symbol {
		return "", util.NewErrorAt(util.ErrUnexpectedTokenType, "expected a symbol, got "+t.Kind.String(), p.source, t.Line)
	}
	return t.Text, nil
}

/*
readTag consumes a name or string token and returns its text, used by
assert's descriptive tag argument.
*/
func (p *Parser) readTag(ts *tokStream) (string, error) {
	t, ok := ts.pop()
	if !ok {
		return "", util.NewErrorAt(util.ErrIncompleteExpression, "expected a tag", p.source, p.line)
	}
	if t.Kind != lexer.Symbol && t.Kind != lexer.String {
		return "", util.NewErrorAt(util.ErrUnexpectedTokenType, "expected a tag, got "+t.Kind.String(), p.source, t.Line)
	}
	return t.Text, nil
}

/*
readParams consumes "(name name …)" into a list of parameter names.
*/
func (p *Parser) readParams(ts *tokStream) ([]string, error) {
	t, ok := ts.pop()
	if !ok || t.Kind != lexer.LeftParen {
		return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "expected '(' to start a parameter list", p.source, p.line)
	}
	var params []string
	for {
		t, ok := ts.pop()
		if !ok {
			return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unterminated parameter list", p.source, p.line)
		}
		if t.Kind == lexer.RightParen {
			return params, nil
		}
		if t.Kind != lexer.Symbol {
			return nil, util.NewErrorAt(util.ErrUnexpectedTokenType, "expected a parameter name", p.source, t.Line)
		}
		params = append(params, t.Text)
	}
}

/*
readExprPairs consumes "(expr expr) (expr expr) …)" for cond, where the
second expr of a pair is optional (a bare "(expr)" case has a nil body).
*/
func (p *Parser) readExprPairs(ts *tokStream) ([]ast.CondCase, error) {
	var cases []ast.CondCase
	for {
		t, ok := ts.pop()
		if !ok {
			return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unterminated cond", p.source, p.line)
		}
		if t.Kind == lexer.RightParen {
			return cases, nil
		}
		if t.Kind != lexer.LeftParen {
			return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "expected '(' to start a cond case", p.source, t.Line)
		}

		pred, err := p.readExpr(ts)
		if err != nil {
			return nil, err
		}

		var body value.Node
		nt, ok := ts.peek()
		if !ok {
			return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unterminated cond case", p.source, p.line)
		}
		if nt.Kind != lexer.RightParen {
			body, err = p.readExpr(ts)
			if err != nil {
				return nil, err
			}
		}

		closeT, ok := ts.pop()
		if !ok || closeT.Kind != lexer.RightParen {
			return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "expected ')' to close a cond case", p.source, p.line)
		}
		cases = append(cases, ast.CondCase{Pred: pred, Body: body})
	}
}

/*
readNameExprPairs consumes "(name expr) (name expr) …)" for struct
instantiation init lists.
*/
func (p *Parser) readNameExprPairs(ts *tokStream) ([]ast.InitEntry, error) {
	var entries []ast.InitEntry
	for {
		t, ok := ts.pop()
		if !ok {
			return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unterminated init list", p.source, p.line)
		}
		if t.Kind == lexer.RightParen {
			return entries, nil
		}
		if t.Kind != lexer.LeftParen {
			return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "expected '(' to start an init entry", p.source, t.Line)
		}

		name, err := p.readName(ts)
		if err != nil {
			return nil, err
		}
		expr, err := p.readExpr(ts)
		if err != nil {
			return nil, err
		}
		closeT, ok := ts.pop()
		if !ok || closeT.Kind != lexer.RightParen {
			return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "expected ')' to close an init entry", p.source, p.line)
		}
		entries = append(entries, ast.InitEntry{Member: name, Expr: expr})
	}
}

/*
readNameAndAsList parses "name [as alias] …" used by from-import, up to
and including the closing ')'.
*/
func (p *Parser) readNameAndAsList(ts *tokStream) ([]value.Alias, error) {
	var aliases []value.Alias
	for {
		t, ok := ts.peek()
		if !ok {
			return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unterminated from-import", p.source, p.line)
		}
		if t.Kind == lexer.RightParen {
			ts.pop()
			return aliases, nil
		}

		name, err := p.readName(ts)
		if err != nil {
			return nil, err
		}
		asName := ""
		nt, ok := ts.peek()
		if ok && nt.Kind == lexer.Symbol && nt.Text == "as" {
			ts.pop()
			asName, err = p.readName(ts)
			if err != nil {
				return nil, err
			}
		}
		aliases = append(aliases, value.Alias{Name: name, As: asName})
	}
}

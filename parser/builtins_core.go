package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/lexer"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
dispatchTable maps every builtin head symbol to the parseFunc that reads
its argument forms. Populated by package-level init functions split across
builtins_*.go, grouped the same way ast's node families are.
*/
var dispatchTable = map[string]parseFunc{}

func register(name string, fn parseFunc) {
	dispatchTable[name] = fn
}

func init() {
	register("var", parseDefine)
	register("=", parseAssign)
	register("?", parseExists)
	register("clone", unary(func(e value.Node) value.Node { return &ast.Clone{Expr: e} }))
	register("break", parseBreak)
	register("progn", parseProgN)
	register("block", parseBlock)
}

func parseDefine(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	args, err := p.readAndCheckExprList(ts, "var", 1)
	if err != nil {
		return nil, err
	}
	return &ast.Define{Name: name, Expr: args[0]}, nil
}

func parseAssign(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	args, err := p.readAndCheckExprList(ts, "=", 1)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Name: name, Expr: args[0]}, nil
}

func parseExists(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	closeT, ok := ts.pop()
	if !ok || closeT.Kind != lexer.RightParen {
		return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "expected ')' to close '?'", p.source, p.line)
	}
	return &ast.Exists{Name: name}, nil
}

func parseBreak(p *Parser, ts *tokStream) (value.Node, error) {
	if _, err := p.readAndCheckExprList(ts, "break", 0); err != nil {
		return nil, err
	}
	return &ast.Break{}, nil
}

func parseProgN(p *Parser, ts *tokStream) (value.Node, error) {
	exprs, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	return &ast.ProgN{Exprs: exprs}, nil
}

func parseBlock(p *Parser, ts *tokStream) (value.Node, error) {
	exprs, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Exprs: exprs}, nil
}

/*
unary builds a parseFunc for a one-operand form.
*/
func unary(build func(value.Node) value.Node) parseFunc {
	return func(p *Parser, ts *tokStream) (value.Node, error) {
		name := "unary form"
		args, err := p.readAndCheckExprList(ts, name, 1)
		if err != nil {
			return nil, err
		}
		return build(args[0]), nil
	}
}

/*
binary builds a parseFunc for a two-operand form.
*/
func binary(build func(a, b value.Node) value.Node) parseFunc {
	return func(p *Parser, ts *tokStream) (value.Node, error) {
		args, err := p.readAndCheckExprList(ts, "binary form", 2)
		if err != nil {
			return nil, err
		}
		return build(args[0], args[1]), nil
	}
}

/*
ternary builds a parseFunc for a three-operand form.
*/
func ternary(build func(a, b, c value.Node) value.Node) parseFunc {
	return func(p *Parser, ts *tokStream) (value.Node, error) {
		args, err := p.readAndCheckExprList(ts, "ternary form", 3)
		if err != nil {
			return nil, err
		}
		return build(args[0], args[1], args[2]), nil
	}
}

/*
rangeOp builds a parseFunc for a form taking between lo and hi operands
(hi == -1 for unbounded), handing the whole slice to build.
*/
func rangeOp(lo, hi int, build func(args []value.Node) value.Node) parseFunc {
	return func(p *Parser, ts *tokStream) (value.Node, error) {
		args, err := p.readAndCheckRangeExprList(ts, "form", lo, hi)
		if err != nil {
			return nil, err
		}
		return build(args), nil
	}
}

func opt(args []value.Node, i int) value.Node {
	if i < len(args) {
		return args[i]
	}
	return nil
}

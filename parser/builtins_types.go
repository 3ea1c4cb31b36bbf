package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/lexer"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("istypeof", parseIsTypeOf)
	register("typename", unary(func(e value.Node) value.Node { return &ast.TypeName{Expr: e} }))
	register("astype", parseAsType)
	register("assert", parseAssert)
}

func parseIsTypeOf(p *Parser, ts *tokStream) (value.Node, error) {
	expr, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	var types []string
	for {
		t, ok := ts.peek()
		if !ok {
			return nil, util.NewErrorAt(util.ErrIncompleteExpression, "unterminated istypeof", p.source, p.line)
		}
		if t.Kind == lexer.RightParen {
			ts.pop()
			break
		}
		name, err := p.readName(ts)
		if err != nil {
			return nil, err
		}
		types = append(types, name)
	}
	return &ast.IsTypeOf{Expr: expr, Types: types}, nil
}

func parseAsType(p *Parser, ts *tokStream) (value.Node, error) {
	expr, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	target, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	if _, err := p.readAndCheckExprList(ts, "astype", 0); err != nil {
		return nil, err
	}
	return &ast.AsType{Expr: expr, Target: target}, nil
}

func parseAssert(p *Parser, ts *tokStream) (value.Node, error) {
	tag, err := p.readTag(ts)
	if err != nil {
		return nil, err
	}
	args, err := p.readAndCheckExprList(ts, "assert", 1)
	if err != nil {
		return nil, err
	}
	return &ast.Assert{Tag: tag, Expr: args[0]}, nil
}

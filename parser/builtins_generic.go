package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("len", unary(func(e value.Node) value.Node { return &ast.GenLen{Expr: e} }))
	register("empty", unary(func(e value.Node) value.Node { return &ast.GenEmpty{Expr: e} }))
	register("get", rangeOp(2, 3, func(args []value.Node) value.Node {
		return &ast.GenGet{Expr: args[0], Key: args[1], Default: opt(args, 2)}
	}))
	register("set", ternary(func(a, b, c value.Node) value.Node { return &ast.GenSet{Expr: a, Key: b, Val: c} }))
	register("clear", unary(func(e value.Node) value.Node { return &ast.GenClear{Expr: e} }))
	register("find", rangeOp(2, 3, func(args []value.Node) value.Node {
		return &ast.GenFind{Expr: args[0], Val: args[1], Start: opt(args, 2)}
	}))
	register("count", binary(func(a, b value.Node) value.Node { return &ast.GenCount{Expr: a, Val: b} }))
	register("sort", rangeOp(1, 2, func(args []value.Node) value.Node {
		return &ast.GenSort{Expr: args[0], Descending: opt(args, 1)}
	}))
	register("reverse", unary(func(e value.Node) value.Node { return &ast.GenReverse{Expr: e} }))
	register("sum", unary(func(e value.Node) value.Node { return &ast.GenSum{Expr: e} }))
	register("apply", parseApply)
}

func parseApply(p *Parser, ts *tokStream) (value.Node, error) {
	expr, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	args, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	return &ast.GenApply{Expr: expr, Args: args}, nil
}

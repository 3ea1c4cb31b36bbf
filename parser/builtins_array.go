package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("array", parseArray)
	register("arraysv", binary(func(a, b value.Node) value.Node { return &ast.ArraySV{Size: a, Default: b} }))
	register("arraysg", binary(func(a, b value.Node) value.Node { return &ast.ArraySG{Size: a, Gen: b} }))
	register("arrlen", unary(func(e value.Node) value.Node { return &ast.ArrLen{Expr: e} }))
	register("arrget", binary(func(a, b value.Node) value.Node { return &ast.ArrGet{Expr: a, Index: b} }))
	register("arrset", ternary(func(a, b, c value.Node) value.Node { return &ast.ArrSet{Expr: a, Index: b, Val: c} }))
	register("arrpush", binary(func(a, b value.Node) value.Node { return &ast.ArrPush{Expr: a, Val: b} }))
	register("arrpop", unary(func(e value.Node) value.Node { return &ast.ArrPop{Expr: e} }))
	register("arrfind", binary(func(a, b value.Node) value.Node { return &ast.ArrFind{Expr: a, Val: b} }))
	register("arrcount", binary(func(a, b value.Node) value.Node { return &ast.ArrCount{Expr: a, Val: b} }))
	register("arrsort", rangeOp(1, 2, func(args []value.Node) value.Node {
		return &ast.ArrSort{Expr: args[0], Descending: opt(args, 1)}
	}))
	register("arrrev", unary(func(e value.Node) value.Node { return &ast.ArrRev{Expr: e} }))
	register("arrclr", unary(func(e value.Node) value.Node { return &ast.ArrClear{Expr: e} }))
	register("arrins", ternary(func(a, b, c value.Node) value.Node { return &ast.ArrIns{Expr: a, Index: b, Val: c} }))
	register("arrrem", binary(func(a, b value.Node) value.Node { return &ast.ArrRem{Expr: a, Index: b} }))
}

func parseArray(p *Parser, ts *tokStream) (value.Node, error) {
	items, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	return &ast.MakeArray{Items: items}, nil
}

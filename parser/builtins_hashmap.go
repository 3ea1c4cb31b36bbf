package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("hashmap", parseHashMap)
	register("hmlen", unary(func(e value.Node) value.Node { return &ast.HmLen{Expr: e} }))
	register("hmhas", binary(func(a, b value.Node) value.Node { return &ast.HmHas{Expr: a, Key: b} }))
	register("hmget", binary(func(a, b value.Node) value.Node { return &ast.HmGet{Expr: a, Key: b} }))
	register("hmset", ternary(func(a, b, c value.Node) value.Node { return &ast.HmSet{Expr: a, Key: b, Val: c} }))
	register("hmrem", binary(func(a, b value.Node) value.Node { return &ast.HmRem{Expr: a, Key: b} }))
	register("hmclr", unary(func(e value.Node) value.Node { return &ast.HmClr{Expr: e} }))
	register("hmfind", binary(func(a, b value.Node) value.Node { return &ast.HmFind{Expr: a, Val: b} }))
	register("hmcount", binary(func(a, b value.Node) value.Node { return &ast.HmCount{Expr: a, Val: b} }))
	register("hmkeys", unary(func(e value.Node) value.Node { return &ast.HmKeys{Expr: e} }))
	register("hmvals", unary(func(e value.Node) value.Node { return &ast.HmVals{Expr: e} }))
	register("hmitems", unary(func(e value.Node) value.Node { return &ast.HmItems{Expr: e} }))
}

func parseHashMap(p *Parser, ts *tokStream) (value.Node, error) {
	entries, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	return &ast.MakeHashMap{Entries: entries}, nil
}

package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("strlen", unary(func(e value.Node) value.Node { return &ast.StrLen{Expr: e} }))
	register("strget", binary(func(a, b value.Node) value.Node { return &ast.StrGet{Expr: a, Index: b} }))
	register("strset", ternary(func(a, b, c value.Node) value.Node { return &ast.StrSet{Expr: a, Index: b, Char: c} }))
	register("strcat", binary(func(a, b value.Node) value.Node { return &ast.StrCat{Lhs: a, Rhs: b} }))
	register("substr", rangeOp(2, 3, func(args []value.Node) value.Node {
		return &ast.Substr{Expr: args[0], Start: args[1], Length: opt(args, 2)}
	}))
	register("strfind", rangeOp(2, 3, func(args []value.Node) value.Node {
		return &ast.StrFind{Expr: args[0], Needle: args[1], Start: opt(args, 2)}
	}))
	register("strcount", binary(func(a, b value.Node) value.Node { return &ast.StrCount{Expr: a, Needle: b} }))
	register("strcmp", binary(func(a, b value.Node) value.Node { return &ast.StrCmp{Lhs: a, Rhs: b} }))
	register("strsort", rangeOp(1, 2, func(args []value.Node) value.Node {
		return &ast.StrSort{Expr: args[0], Descending: opt(args, 1)}
	}))
	register("strrev", unary(func(e value.Node) value.Node { return &ast.StrRev{Expr: e} }))
	register("strsplit", binary(func(a, b value.Node) value.Node { return &ast.StrSplit{Expr: a, Sep: b} }))

	register("isupper", charPred(ast.IsUpper))
	register("islower", charPred(ast.IsLower))
	register("isalpha", charPred(ast.IsAlpha))
	register("isnumer", charPred(ast.IsNumer))
	register("isalnum", charPred(ast.IsAlnum))
	register("ispunct", charPred(ast.IsPunct))
	register("isspace", charPred(ast.IsSpace))
	register("toupper", unary(func(e value.Node) value.Node { return &ast.ToUpper{Expr: e} }))
	register("tolower", unary(func(e value.Node) value.Node { return &ast.ToLower{Expr: e} }))
}

func charPred(kind ast.CharPredKind) parseFunc {
	return unary(func(e value.Node) value.Node { return &ast.CharPred{Kind: kind, Expr: e} })
}

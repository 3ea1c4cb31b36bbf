package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("fopen", binary(func(a, b value.Node) value.Node { return &ast.FOpen{Path: a, Mode: b} }))
	register("fclose", unary(func(e value.Node) value.Node { return &ast.FClose{Expr: e} }))
	register("fflush", unary(func(e value.Node) value.Node { return &ast.FFlush{Expr: e} }))
	register("fisopen", unary(func(e value.Node) value.Node { return &ast.FIsOpen{Expr: e} }))
	register("fname", unary(func(e value.Node) value.Node { return &ast.FName{Expr: e} }))
	register("fmode", unary(func(e value.Node) value.Node { return &ast.FMode{Expr: e} }))
	register("fread", unary(func(e value.Node) value.Node { return &ast.FRead{Expr: e} }))
	register("freadln", unary(func(e value.Node) value.Node { return &ast.FReadLn{Expr: e} }))
	register("fwrite", binary(func(a, b value.Node) value.Node { return &ast.FWrite{Expr: a, Text: b} }))
	register("fwriteln", binary(func(a, b value.Node) value.Node { return &ast.FWriteLn{Expr: a, Text: b} }))
	register("fexists", unary(func(e value.Node) value.Node { return &ast.FExists{Path: e} }))
	register("fremove", unary(func(e value.Node) value.Node { return &ast.FRemove{Path: e} }))
}

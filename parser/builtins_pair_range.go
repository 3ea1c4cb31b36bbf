package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("pair", binary(func(a, b value.Node) value.Node { return &ast.MakePair{First: a, Second: b} }))
	register("first", unary(func(e value.Node) value.Node { return &ast.First{Expr: e} }))
	register("second", unary(func(e value.Node) value.Node { return &ast.Second{Expr: e} }))

	register("range", parseRange)
	register("rngbegin", unary(func(e value.Node) value.Node { return &ast.RngBegin{Expr: e} }))
	register("rngend", unary(func(e value.Node) value.Node { return &ast.RngEnd{Expr: e} }))
	register("rngstep", unary(func(e value.Node) value.Node { return &ast.RngStep{Expr: e} }))
	register("rnglen", unary(func(e value.Node) value.Node { return &ast.RngLen{Expr: e} }))
	register("expand", unary(func(e value.Node) value.Node { return &ast.Expand{Expr: e} }))
}

/*
parseRange accepts all three range surface shapes: (range end),
(range begin end) and (range begin end step).
*/
func parseRange(p *Parser, ts *tokStream) (value.Node, error) {
	args, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	switch len(args) {
	case 1:
		return &ast.MakeRange{End: args[0]}, nil
	case 2:
		return &ast.MakeRange{Begin: args[0], End: args[1]}, nil
	case 3:
		return &ast.MakeRange{Begin: args[0], End: args[1], Step: args[2]}, nil
	}
	return nil, util.NewErrorf(util.ErrTooManyOrFewForms,
		"range expects 1 argument (end), 2 (begin end) or 3 (begin end step), got %d", len(args))
}

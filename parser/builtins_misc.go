package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("print", rangeOp(1, 2, func(args []value.Node) value.Node {
		return &ast.Print{Expr: args[0], Newline: opt(args, 1)}
	}))
	register("println", unary(func(e value.Node) value.Node {
		return &ast.Print{Expr: e, Newline: &ast.Literal{Val: value.NewBool(true)}}
	}))
	register("read", parseRead)
	register("rand", rangeOp(0, 1, func(args []value.Node) value.Node {
		return &ast.Random{Bound: opt(args, 0)}
	}))
	register("hash", unary(func(e value.Node) value.Node { return &ast.Hash{Expr: e} }))
	register("timeit", rangeOp(2, 3, func(args []value.Node) value.Node {
		return &ast.TimeIt{Reps: args[0], Expr: args[1], Verbose: opt(args, 2)}
	}))
}

func parseRead(p *Parser, ts *tokStream) (value.Node, error) {
	if _, err := p.readAndCheckExprList(ts, "read", 0); err != nil {
		return nil, err
	}
	return &ast.Read{}, nil
}

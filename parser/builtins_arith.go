package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("+", arith(ast.Add))
	register("-", arith(ast.Sub))
	register("*", arith(ast.Mul))
	register("/", arith(ast.Div))
	register("%", arith(ast.Mod))
	register("^", arith(ast.Pow))
	register("neg", unary(func(e value.Node) value.Node { return &ast.NegativeOf{Expr: e} }))

	register("+=", compoundAssign(ast.Add))
	register("-=", compoundAssign(ast.Sub))
	register("*=", compoundAssign(ast.Mul))
	register("/=", compoundAssign(ast.Div))
	register("%=", compoundAssign(ast.Mod))
	register("^=", compoundAssign(ast.Pow))

	register("==", compare(ast.Eq))
	register("!=", compare(ast.Ne))
	register("<", compare(ast.Lt))
	register(">", compare(ast.Gt))
	register("<=", compare(ast.Le))
	register(">=", compare(ast.Ge))

	register("and", logic(ast.And))
	register("or", logic(ast.Or))
	register("not", unary(func(e value.Node) value.Node { return &ast.Not{Expr: e} }))
}

func arith(kind ast.ArithKind) parseFunc {
	return rangeOp(2, -1, func(args []value.Node) value.Node {
		return &ast.ArithOp{Kind: kind, Operands: args}
	})
}

func compare(kind ast.CompKind) parseFunc {
	return binary(func(a, b value.Node) value.Node {
		return &ast.CompOp{Kind: kind, Lhs: a, Rhs: b}
	})
}

func logic(kind ast.LogicKind) parseFunc {
	return rangeOp(1, -1, func(args []value.Node) value.Node {
		return &ast.LogicOp{Kind: kind, Operands: args}
	})
}

func compoundAssign(kind ast.ArithKind) parseFunc {
	return func(p *Parser, ts *tokStream) (value.Node, error) {
		name, err := p.readName(ts)
		if err != nil {
			return nil, err
		}
		args, err := p.readAndCheckExprList(ts, "compound assignment", 1)
		if err != nil {
			return nil, err
		}
		return &ast.CompoundAssign{Kind: kind, Name: name, Expr: args[0]}, nil
	}
}

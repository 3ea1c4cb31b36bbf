package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("if", parseIf)
	register("when", parseWhen)
	register("unless", parseUnless)
	register("cond", parseCond)
	register("loop", parseLoop)
	register("foreach", parseForeach)
}

func parseIf(p *Parser, ts *tokStream) (value.Node, error) {
	args, err := p.readAndCheckRangeExprList(ts, "if", 2, 3)
	if err != nil {
		return nil, err
	}
	return &ast.If{Pred: args[0], Then: args[1], Else: opt(args, 2)}, nil
}

func parseWhen(p *Parser, ts *tokStream) (value.Node, error) {
	args, err := p.readAndCheckExprList(ts, "when", 2)
	if err != nil {
		return nil, err
	}
	return &ast.If{Pred: args[0], Then: args[1]}, nil
}

func parseUnless(p *Parser, ts *tokStream) (value.Node, error) {
	args, err := p.readAndCheckExprList(ts, "unless", 2)
	if err != nil {
		return nil, err
	}
	return &ast.If{Pred: args[0], Else: args[1]}, nil
}

func parseCond(p *Parser, ts *tokStream) (value.Node, error) {
	cases, err := p.readExprPairs(ts)
	if err != nil {
		return nil, err
	}
	return &ast.Cond{Cases: cases}, nil
}

/*
parseLoop accepts both loop surface shapes: (loop cond body) and
(loop decl cond next body).
*/
func parseLoop(p *Parser, ts *tokStream) (value.Node, error) {
	args, err := p.readExprList(ts)
	if err != nil {
		return nil, err
	}
	switch len(args) {
	case 2:
		return &ast.Loop{Cond: args[0], Body: args[1]}, nil
	case 4:
		return &ast.Loop{Decl: args[0], Cond: args[1], Next: args[2], Body: args[3]}, nil
	}
	return nil, util.NewErrorf(util.ErrTooManyOrFewForms,
		"loop expects 2 arguments (cond body) or 4 (decl cond next body), got %d", len(args))
}

func parseForeach(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	args, err := p.readAndCheckExprList(ts, "foreach", 2)
	if err != nil {
		return nil, err
	}
	return &ast.Foreach{Var: name, Iterable: args[0], Body: args[1]}, nil
}

/*
parseParamsAndBody reads a "(params…)" list followed by one or more body
expressions up to the form's closing ')', wrapping multiple expressions
in a ProgN.
*/
func parseParamsAndBody(p *Parser, ts *tokStream) ([]string, value.Node, error) {
	params, err := p.readParams(ts)
	if err != nil {
		return nil, nil, err
	}
	body, err := p.readExprList(ts)
	if err != nil {
		return nil, nil, err
	}
	if len(body) == 0 {
		return nil, nil, util.NewError(util.ErrTooManyOrFewForms, "a function body must have at least one expression")
	}
	if len(body) == 1 {
		return params, body[0], nil
	}
	return params, &ast.ProgN{Exprs: body}, nil
}

func init() {
	register("lambda", parseLambda)
	register("defun", parseDefun)
}

func parseLambda(p *Parser, ts *tokStream) (value.Node, error) {
	params, body, err := parseParamsAndBody(p, ts)
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpr{Params: params, Body: body}, nil
}

func parseDefun(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	params, body, err := parseParamsAndBody(p, ts)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpr{Name: name, Params: params, Body: body}, nil
}

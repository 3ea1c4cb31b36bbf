package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("struct", parseStruct)
	register("makeinstance", parseMakeInstance)
	register("isstructname", parseIsStructName)
	register("isinstanceof", parseIsInstanceOf)
	register("structname", unary(func(e value.Node) value.Node { return &ast.StructName{Expr: e} }))
	register("memget", parseMemGet)
	register("memset", parseMemSet)
}

func parseStruct(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	members, err := p.readParams(ts)
	if err != nil {
		return nil, err
	}
	return &ast.StructExpr{Name: name, Members: members}, nil
}

func parseMakeInstance(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	entries, err := p.readNameExprPairs(ts)
	if err != nil {
		return nil, err
	}
	return &ast.MakeInstance{TypeName: name, InitList: entries}, nil
}

func parseIsStructName(p *Parser, ts *tokStream) (value.Node, error) {
	expr, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	if _, err := p.readAndCheckExprList(ts, "isstructname", 0); err != nil {
		return nil, err
	}
	return &ast.IsStructName{Expr: expr, Name: name}, nil
}

func parseIsInstanceOf(p *Parser, ts *tokStream) (value.Node, error) {
	expr, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	if _, err := p.readAndCheckExprList(ts, "isinstanceof", 0); err != nil {
		return nil, err
	}
	return &ast.IsInstanceOf{Expr: expr, Name: name}, nil
}

func parseMemGet(p *Parser, ts *tokStream) (value.Node, error) {
	inst, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	member, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	if _, err := p.readAndCheckExprList(ts, "memget", 0); err != nil {
		return nil, err
	}
	return &ast.GetMember{Instance: inst, Member: member}, nil
}

func parseMemSet(p *Parser, ts *tokStream) (value.Node, error) {
	inst, err := p.readExpr(ts)
	if err != nil {
		return nil, err
	}
	member, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	args, err := p.readAndCheckExprList(ts, "memset", 1)
	if err != nil {
		return nil, err
	}
	return &ast.SetMember{Instance: inst, Member: member, Expr: args[0]}, nil
}

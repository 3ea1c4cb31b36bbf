package parser

import (
	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/lexer"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func init() {
	register("import", parseImport)
	register("from", parseFrom)
}

/*
parseImport reads "name [as alias])".
*/
func parseImport(p *Parser, ts *tokStream) (value.Node, error) {
	name, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	asName := ""
	t, ok := ts.peek()
	if ok && t.Kind == lexer.Symbol && t.Text == "as" {
		ts.pop()
		asName, err = p.readName(ts)
		if err != nil {
			return nil, err
		}
	}
	closeT, ok := ts.pop()
	if !ok || closeT.Kind != lexer.RightParen {
		return nil, util.NewErrorAt(util.ErrExpectedParenthesis, "expected ')' to close import", p.source, p.line)
	}
	return &ast.ImportModule{Name: name, AsName: asName, Loader: p.loader}, nil
}

/*
parseFrom reads "name import name [as alias] …)".
*/
func parseFrom(p *Parser, ts *tokStream) (value.Node, error) {
	modName, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	kw, err := p.readName(ts)
	if err != nil {
		return nil, err
	}
	if kw != "import" {
		return nil, util.NewErrorAt(util.ErrUnexpectedTokenType,
			"expected 'import' keyword, got "+kw, p.source, p.line)
	}
	aliases, err := p.readNameAndAsList(ts)
	if err != nil {
		return nil, err
	}
	return &ast.FromModuleImport{Name: modName, Aliases: aliases, Loader: p.loader}, nil
}

package parser

import (
	"errors"
	"testing"

	"github.com/krotik/ishlang/ast"
	"github.com/krotik/ishlang/lexer"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func mustParseOne(t *testing.T, source string) value.Node {
	t.Helper()
	p := New("test", nil)
	var got value.Node
	n := 0
	err := p.ReadMulti(source+"\n", func(node value.Node) error {
		got = node
		n++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", source, err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one form from %q, got %d", source, n)
	}
	return got
}

func TestParseLiteralsAndVariable(t *testing.T) {
	if _, ok := mustParseOne(t, "42").(*ast.Literal); !ok {
		t.Error("expected a Literal node for a bare int")
	}
	if _, ok := mustParseOne(t, "x").(*ast.Variable); !ok {
		t.Error("expected a Variable node for a bare symbol")
	}
}

func TestParseArithOp(t *testing.T) {
	n, ok := mustParseOne(t, "(+ 1 2 3)").(*ast.ArithOp)
	if !ok {
		t.Fatalf("expected an ArithOp node, got %T", n)
	}
	if len(n.Operands) != 3 {
		t.Errorf("expected 3 operands, got %d", len(n.Operands))
	}
}

func TestParseArithOpRequiresTwoOperands(t *testing.T) {
	_, err := New("test", nil).parseForm(lexAll(t, "(+ 1)"))
	if !errors.Is(err, util.ErrTooManyOrFewForms) {
		t.Errorf("expected ErrTooManyOrFewForms, got %v", err)
	}
}

func TestParseCompareOpExactlyTwoOperands(t *testing.T) {
	n, ok := mustParseOne(t, "(< 1 2)").(*ast.CompOp)
	if !ok {
		t.Fatalf("expected a CompOp node, got %T", n)
	}
	_ = n
	_, err := New("test", nil).parseForm(lexAll(t, "(< 1 2 3)"))
	if !errors.Is(err, util.ErrTooManyOrFewForms) {
		t.Errorf("expected ErrTooManyOrFewForms for 3 comparands, got %v", err)
	}
}

func TestParseIf(t *testing.T) {
	n, ok := mustParseOne(t, "(if (< 1 2) 10 20)").(*ast.If)
	if !ok {
		t.Fatalf("expected an If node, got %T", n)
	}
	if n.Else == nil {
		t.Error("expected a populated Else branch")
	}

	n2, ok := mustParseOne(t, "(if (< 1 2) 10)").(*ast.If)
	if !ok {
		t.Fatalf("expected an If node, got %T", n2)
	}
	if n2.Else != nil {
		t.Error("expected a nil Else branch when omitted")
	}
}

func TestParseLoopTwoOrFourArgs(t *testing.T) {
	if _, ok := mustParseOne(t, "(loop (< i 10) (print i))").(*ast.Loop); !ok {
		t.Error("expected a Loop node for the 2-arg form")
	}
	if _, ok := mustParseOne(t, "(loop (var i 0) (< i 10) (= i (+ i 1)) (print i))").(*ast.Loop); !ok {
		t.Error("expected a Loop node for the 4-arg form")
	}
	_, err := New("test", nil).parseForm(lexAll(t, "(loop (< i 10))"))
	if !errors.Is(err, util.ErrTooManyOrFewForms) {
		t.Errorf("expected ErrTooManyOrFewForms for a 1-arg loop, got %v", err)
	}
}

func TestParseRangeOneTwoOrThreeArgs(t *testing.T) {
	if _, ok := mustParseOne(t, "(range 10)").(*ast.MakeRange); !ok {
		t.Error("expected a MakeRange node for the 1-arg form")
	}
	if _, ok := mustParseOne(t, "(range 0 10)").(*ast.MakeRange); !ok {
		t.Error("expected a MakeRange node for the 2-arg form")
	}
	if _, ok := mustParseOne(t, "(range 0 10 2)").(*ast.MakeRange); !ok {
		t.Error("expected a MakeRange node for the 3-arg form")
	}
	_, err := New("test", nil).parseForm(lexAll(t, "(range 0 10 2 4)"))
	if !errors.Is(err, util.ErrTooManyOrFewForms) {
		t.Errorf("expected ErrTooManyOrFewForms for a 4-arg range, got %v", err)
	}
}

func TestParseDefunAndLambda(t *testing.T) {
	n, ok := mustParseOne(t, "(defun sq (n) (* n n))").(*ast.FunctionExpr)
	if !ok {
		t.Fatalf("expected a FunctionExpr node, got %T", n)
	}
	if n.Name != "sq" || len(n.Params) != 1 {
		t.Errorf("unexpected FunctionExpr: %+v", n)
	}

	if _, ok := mustParseOne(t, "(lambda (n) (* n n))").(*ast.LambdaExpr); !ok {
		t.Error("expected a LambdaExpr node")
	}
}

func TestParseDefunMultiExprBodyWrapsInProgN(t *testing.T) {
	n := mustParseOne(t, "(defun f () (var x 1) x)").(*ast.FunctionExpr)
	if _, ok := n.Body.(*ast.ProgN); !ok {
		t.Errorf("expected a multi-expression body to be wrapped in ProgN, got %T", n.Body)
	}
}

func TestParseDefunEmptyBodyIsError(t *testing.T) {
	_, err := New("test", nil).parseForm(lexAll(t, "(defun f ())"))
	if !errors.Is(err, util.ErrTooManyOrFewForms) {
		t.Errorf("expected ErrTooManyOrFewForms for an empty function body, got %v", err)
	}
}

func TestParseFunctionApplicationForUnknownHead(t *testing.T) {
	n, ok := mustParseOne(t, "(myfunc 1 2)").(*ast.FunctionApp)
	if !ok {
		t.Fatalf("expected a FunctionApp node for a non-builtin head, got %T", n)
	}
	if n.Name != "myfunc" || len(n.Args) != 2 {
		t.Errorf("unexpected FunctionApp: %+v", n)
	}
}

func TestParseLambdaApplicationForExprHead(t *testing.T) {
	n, ok := mustParseOne(t, "((lambda (n) n) 5)").(*ast.LambdaApp)
	if !ok {
		t.Fatalf("expected a LambdaApp node, got %T", n)
	}
	if len(n.Args) != 1 {
		t.Errorf("expected 1 argument, got %d", len(n.Args))
	}
}

func TestParseIsTypeOfTerminatesOnClosingParen(t *testing.T) {
	n, ok := mustParseOne(t, "(istypeof x int real)").(*ast.IsTypeOf)
	if !ok {
		t.Fatalf("expected an IsTypeOf node, got %T", n)
	}
	if len(n.Types) != 2 || n.Types[0] != "int" || n.Types[1] != "real" {
		t.Errorf("unexpected type list: %+v", n.Types)
	}
}

func TestParseImportWithAlias(t *testing.T) {
	n, ok := mustParseOne(t, "(import mathlib as m)").(*ast.ImportModule)
	if !ok {
		t.Fatalf("expected an ImportModule node, got %T", n)
	}
	if n.Name != "mathlib" || n.AsName != "m" {
		t.Errorf("unexpected ImportModule: %+v", n)
	}
}

func TestParseFromImport(t *testing.T) {
	n, ok := mustParseOne(t, "(from mathlib import double as dbl add)").(*ast.FromModuleImport)
	if !ok {
		t.Fatalf("expected a FromModuleImport node, got %T", n)
	}
	if n.Name != "mathlib" || len(n.Aliases) != 2 {
		t.Fatalf("unexpected FromModuleImport: %+v", n)
	}
	if n.Aliases[0].Name != "double" || n.Aliases[0].As != "dbl" {
		t.Errorf("unexpected first alias: %+v", n.Aliases[0])
	}
	if n.Aliases[1].Name != "add" || n.Aliases[1].As != "" {
		t.Errorf("unexpected second alias: %+v", n.Aliases[1])
	}
}

func TestParseFromImportRequiresImportKeyword(t *testing.T) {
	_, err := New("test", nil).parseForm(lexAll(t, "(from mathlib export double)"))
	if !errors.Is(err, util.ErrUnexpectedTokenType) {
		t.Errorf("expected ErrUnexpectedTokenType, got %v", err)
	}
}

func TestReadMultiBuffersAcrossLines(t *testing.T) {
	p := New("test", nil)
	var forms []value.Node
	cb := func(n value.Node) error {
		forms = append(forms, n)
		return nil
	}

	if err := p.ReadMulti("(+ 1\n", cb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 0 {
		t.Fatalf("expected no complete forms yet, got %d", len(forms))
	}

	if err := p.ReadMulti("   2)\n", cb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected exactly 1 complete form, got %d", len(forms))
	}
	if _, ok := forms[0].(*ast.ArithOp); !ok {
		t.Errorf("expected an ArithOp node, got %T", forms[0])
	}
}

func TestReadMultiDispatchesMultipleFormsAtOnce(t *testing.T) {
	p := New("test", nil)
	var forms []value.Node
	err := p.ReadMulti("(var x 1) (var y 2)\n", func(n value.Node) error {
		forms = append(forms, n)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected 2 complete forms, got %d", len(forms))
	}
}

func TestReadMultiStrayClosingParenIsError(t *testing.T) {
	p := New("test", nil)
	err := p.ReadMulti(")\n", func(value.Node) error { return nil })
	if !errors.Is(err, util.ErrExpectedParenthesis) {
		t.Errorf("expected ErrExpectedParenthesis, got %v", err)
	}
}

// lexAll is a tiny helper giving tests direct access to parseForm (which
// operates on an already-lexed token slice) without going through
// ReadMulti's buffering.
func lexAll(t *testing.T, source string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Lex("test", source, 1)
	if err != nil {
		t.Fatalf("unexpected lex error for %q: %v", source, err)
	}
	return toks
}

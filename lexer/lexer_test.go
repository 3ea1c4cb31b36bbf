package lexer

import "testing"

func mustLex(t *testing.T, input string) []Token {
	t.Helper()
	toks, err := Lex("test", input, 1)
	if err != nil {
		t.Fatalf("unexpected lex error for %q: %v", input, err)
	}
	return toks
}

func TestLexParens(t *testing.T) {
	toks := mustLex(t, "()")
	if len(toks) != 2 || toks[0].Kind != LeftParen || toks[1].Kind != RightParen {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestLexIntAndReal(t *testing.T) {
	toks := mustLex(t, "(+ 1 2.5 -3 -4.25)")
	want := []struct {
		kind TokenKind
		i    int64
		r    float64
	}{
		{LeftParen, 0, 0},
		{Symbol, 0, 0},
		{Int, 1, 0},
		{Real, 0, 2.5},
		{Int, -3, 0},
		{Real, 0, -4.25},
		{RightParen, 0, 0},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind {
			t.Errorf("token %d: expected kind %v, got %v", i, w.kind, toks[i].Kind)
		}
		if w.kind == Int && toks[i].IntVal != w.i {
			t.Errorf("token %d: expected int %v, got %v", i, w.i, toks[i].IntVal)
		}
		if w.kind == Real && toks[i].RealVal != w.r {
			t.Errorf("token %d: expected real %v, got %v", i, w.r, toks[i].RealVal)
		}
	}
}

func TestLexCharLiteral(t *testing.T) {
	toks := mustLex(t, "'a'")
	if len(toks) != 1 || toks[0].Kind != Char || toks[0].CharVal != 'a' {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestLexUnterminatedCharIsError(t *testing.T) {
	if _, err := Lex("test", "'ab", 1); err == nil {
		t.Error("expected an error for an unterminated char literal")
	}
}

func TestLexStringLiteral(t *testing.T) {
	toks := mustLex(t, `"hello world"`)
	if len(toks) != 1 || toks[0].Kind != String || toks[0].Text != "hello world" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	if _, err := Lex("test", `"hello`, 1); err == nil {
		t.Error("expected an error for an unterminated string literal")
	}
}

func TestLexBoolAndNull(t *testing.T) {
	toks := mustLex(t, "true false null")
	if toks[0].Kind != Bool || toks[0].BoolVal != true {
		t.Errorf("expected true, got %+v", toks[0])
	}
	if toks[1].Kind != Bool || toks[1].BoolVal != false {
		t.Errorf("expected false, got %+v", toks[1])
	}
	if toks[2].Kind != Null {
		t.Errorf("expected null, got %+v", toks[2])
	}
}

func TestLexSymbolsAndOperators(t *testing.T) {
	toks := mustLex(t, "foo == != <= >= < > ?")
	wantTexts := []string{"foo", "==", "!=", "<=", ">=", "<", ">", "?"}
	if len(toks) != len(wantTexts) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(wantTexts), len(toks), toks)
	}
	for i, w := range wantTexts {
		if toks[i].Text != w {
			t.Errorf("token %d: expected text %q, got %q", i, w, toks[i].Text)
		}
		if toks[i].Kind != Symbol {
			t.Errorf("token %d: expected Symbol kind", i)
		}
	}
}

func TestLexDoubleSemicolonComment(t *testing.T) {
	toks := mustLex(t, "1 ;; this is a comment\n2")
	if len(toks) != 2 || toks[0].IntVal != 1 || toks[1].IntVal != 2 {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestLexSingleSemicolonIsError(t *testing.T) {
	if _, err := Lex("test", "1 ; bad comment", 1); err == nil {
		t.Error("expected a single ';' to be an error")
	}
}

func TestLexUnknownCharacterIsError(t *testing.T) {
	if _, err := Lex("test", "@", 1); err == nil {
		t.Error("expected '@' to be an error, it is in the not-allowed set")
	}
}

package scope

import (
	"errors"
	"testing"

	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func TestDefineAndGet(t *testing.T) {
	env := New()

	if err := env.Define("x", value.NewInt(1)); err != nil {
		t.Fatal(err)
	}

	v, err := env.Get("x")
	if err != nil || v.Int() != 1 {
		t.Error("expected to read back x == 1")
	}
}

func TestDuplicateDefineFails(t *testing.T) {
	env := New()
	env.Define("x", value.NewInt(1))

	err := env.Define("x", value.NewInt(2))
	if !errors.Is(err, util.ErrDuplicateDef) {
		t.Errorf("expected ErrDuplicateDef, got %v", err)
	}
}

func TestSetWalksParentChain(t *testing.T) {
	parent := New()
	parent.Define("x", value.NewInt(1))

	child := parent.NewChild().(*Environment)

	if err := child.Set("x", value.NewInt(2)); err != nil {
		t.Fatal(err)
	}

	v, _ := parent.Get("x")
	if v.Int() != 2 {
		t.Error("expected Set from child to mutate the parent's binding")
	}
}

func TestSetUnknownSymbolFails(t *testing.T) {
	env := New()
	if err := env.Set("x", value.NewInt(1)); !errors.Is(err, util.ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestGetUnknownSymbolFails(t *testing.T) {
	env := New()
	if _, err := env.Get("x"); !errors.Is(err, util.ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestChildScopeDoesNotLeakOutward(t *testing.T) {
	// (block (var x 1) ((lambda () x))) evaluates to 1; an outer x is not
	// shadowed after the block exits.
	outer := New()
	outer.Define("x", value.NewInt(99))

	child := outer.NewChild().(*Environment)
	child.Define("x", value.NewInt(1))

	v, _ := child.Get("x")
	if v.Int() != 1 {
		t.Error("expected child binding to shadow the parent's")
	}

	v, _ = outer.Get("x")
	if v.Int() != 99 {
		t.Error("expected outer binding to be unaffected by the child scope")
	}
}

func TestExists(t *testing.T) {
	parent := New()
	parent.Define("x", value.NewInt(1))
	child := parent.NewChild().(*Environment)

	if !child.Exists("x") {
		t.Error("expected Exists to walk the parent chain")
	}
	if child.Exists("y") {
		t.Error("expected Exists to report false for an unbound name")
	}
}

func TestBindOverwritesWithoutError(t *testing.T) {
	env := New()
	env.Bind("x", value.NewInt(1))
	env.Bind("x", value.NewInt(2))

	v, _ := env.Get("x")
	if v.Int() != 2 {
		t.Error("expected Bind to overwrite an existing binding")
	}
}

func TestBindingsIsLocalOnly(t *testing.T) {
	parent := New()
	parent.Define("x", value.NewInt(1))
	child := parent.NewChild().(*Environment)
	child.Define("y", value.NewInt(2))

	bindings := child.Bindings()
	if _, ok := bindings["x"]; ok {
		t.Error("expected Bindings to exclude parent scope names")
	}
	if _, ok := bindings["y"]; !ok {
		t.Error("expected Bindings to include this scope's own names")
	}
}

package value

import "testing"

func TestScalarEquals(t *testing.T) {
	eq, err := NewInt(3).Equals(NewInt(3))
	if err != nil || !eq {
		t.Error("expected 3 == 3")
	}

	eq, err = NewInt(3).Equals(NewReal(3.0))
	if err != nil || !eq {
		t.Error("expected mixed int/real equality to promote to real")
	}

	_, err = NewInt(3).Equals(NewString("3"))
	if err == nil {
		t.Error("expected incompatible types error")
	}
}

func TestCompare(t *testing.T) {
	c, err := NewInt(1).Compare(NewInt(2))
	if err != nil || c != -1 {
		t.Errorf("expected -1, got %v (err %v)", c, err)
	}

	c, err = NewReal(2.5).Compare(NewInt(2))
	if err != nil || c != 1 {
		t.Errorf("expected 1, got %v (err %v)", c, err)
	}

	if _, err := NewArray(nil).Compare(NewArray(nil)); err == nil {
		t.Error("expected arrays to be unorderable")
	}
}

func TestStringAliasingAndClone(t *testing.T) {
	a := NewString("x")
	b := a // alias: shares the same stringBox

	b.SetStr("y")

	if a.Str() != "y" {
		t.Error("expected assignment to alias the string, not copy it")
	}

	c, err := a.Clone()
	if err != nil {
		t.Fatal(err)
	}
	c.SetStr("z")

	if a.Str() != "y" {
		t.Error("expected clone to be independent of the original")
	}
	if c.Str() != "z" {
		t.Error("expected the clone to observe its own mutation")
	}
}

func TestArrayAliasing(t *testing.T) {
	a := NewArray([]Value{NewInt(1), NewInt(2)})
	b := a

	b.Array().Items = append(b.Array().Items, NewInt(3))

	if len(a.Array().Items) != 3 {
		t.Error("expected array assignment to alias the same backing array")
	}
}

func TestPairIsReusedNotCloned(t *testing.T) {
	p := NewPair(NewInt(1), NewInt(2))
	c, err := p.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if c.Pair() != p.Pair() {
		t.Error("expected Pair clone to reuse the same immutable handle")
	}
}

func TestFileCannotBeCloned(t *testing.T) {
	f := NewFile("x.txt", 'r', nil)
	if _, err := f.Clone(); err == nil {
		t.Error("expected cloning a file to fail")
	}
}

func TestHashMapBasic(t *testing.T) {
	h := NewHashMap()
	if err := h.HashMap().Set(NewString("k"), NewInt(1)); err != nil {
		t.Fatal(err)
	}

	v, ok, err := h.HashMap().Get(NewString("k"))
	if err != nil || !ok || v.Int() != 1 {
		t.Error("expected to find key k with value 1")
	}

	if err := h.HashMap().Set(NewString("k"), NewInt(2)); err != nil {
		t.Fatal(err)
	}
	v, _, _ = h.HashMap().Get(NewString("k"))
	if v.Int() != 2 {
		t.Error("expected set to overwrite existing key")
	}
}

func TestRangeLen(t *testing.T) {
	r, err := NewRange(1, 11, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Range().Len(); got != 10 {
		t.Errorf("expected length 10, got %v", got)
	}

	if _, err := NewRange(1, 11, -1); err == nil {
		t.Error("expected step sign mismatch to fail")
	}

	if _, err := NewRange(1, 11, 0); err == nil {
		t.Error("expected zero step to fail")
	}
}

func TestAsType(t *testing.T) {
	v, err := NewString("42").AsType("int")
	if err != nil || v.Int() != 42 {
		t.Error("expected string->int conversion")
	}

	if _, err := NewArray(nil).AsType("int"); err == nil {
		t.Error("expected unsupported conversion to fail")
	}
}

func TestCloneUserObjectIsShallow(t *testing.T) {
	ut := &UserType{Name: "P", Members: []string{"n"}}
	obj := NewUserObject(ut, map[string]Value{"n": NewString("hi")})

	clone, err := obj.Clone()
	if err != nil {
		t.Fatal(err)
	}

	clone.UserObject().Fields["n"] = NewInt(1)

	eq, err := obj.UserObject().Fields["n"].Equals(NewString("hi"))
	if err != nil || !eq {
		t.Error("expected clone to not affect the original instance's fields map")
	}
}

package ast

import (
	"strings"

	"github.com/krotik/common/sortutil"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func evalString(env value.Env, n value.Node) (value.Value, string, error) {
	v, err := n.Eval(env)
	if err != nil {
		return value.Value{}, "", err
	}
	if v.Kind() != value.KindString {
		return value.Value{}, "", util.NewErrorf(util.ErrInvalidOperandType,
			"expected a string, got %v", v.TypeName())
	}
	return v, v.Str(), nil
}

func evalInt(env value.Env, n value.Node) (int64, error) {
	v, err := n.Eval(env)
	if err != nil {
		return 0, err
	}
	if v.Kind() != value.KindInt {
		return 0, util.NewErrorf(util.ErrInvalidOperandType, "expected an int, got %v", v.TypeName())
	}
	return v.Int(), nil
}

/*
StrLen returns the length of a string.
*/
type StrLen struct{ Expr value.Node }

func (n *StrLen) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(int64(len(s))), nil
}

/*
StrGet returns the character at Index, bounds-checked.
*/
type StrGet struct {
	Expr  value.Node
	Index value.Node
}

func (n *StrGet) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	i, err := evalInt(env, n.Index)
	if err != nil {
		return value.Value{}, err
	}
	if i < 0 || i >= int64(len(s)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "string index %d out of range", i)
	}
	return value.NewChar(s[i]), nil
}

/*
StrSet mutates the character at Index in place, observable through every
alias of the string since String is reference-shared.
*/
type StrSet struct {
	Expr  value.Node
	Index value.Node
	Char  value.Node
}

func (n *StrSet) Eval(env value.Env) (value.Value, error) {
	sv, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	i, err := evalInt(env, n.Index)
	if err != nil {
		return value.Value{}, err
	}
	if i < 0 || i >= int64(len(s)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "string index %d out of range", i)
	}
	cv, err := n.Char.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if cv.Kind() != value.KindChar {
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "expected a char, got %v", cv.TypeName())
	}
	b := []byte(s)
	b[i] = cv.Char()
	sv.SetStr(string(b))
	return sv, nil
}

/*
StrCat concatenates two strings.
*/
type StrCat struct {
	Lhs, Rhs value.Node
}

func (n *StrCat) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalString(env, n.Lhs)
	if err != nil {
		return value.Value{}, err
	}
	_, b, err := evalString(env, n.Rhs)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewString(a + b), nil
}

/*
Substr returns the substring starting at Start with the given Length (a
missing Length defaults to the full remainder).
*/
type Substr struct {
	Expr   value.Node
	Start  value.Node
	Length value.Node // optional, may be nil
}

func (n *Substr) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	start, err := evalInt(env, n.Start)
	if err != nil {
		return value.Value{}, err
	}
	if start < 0 || start > int64(len(s)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "substr start %d out of range", start)
	}

	length := int64(len(s)) - start
	if n.Length != nil {
		length, err = evalInt(env, n.Length)
		if err != nil {
			return value.Value{}, err
		}
	}
	if length < 0 || start+length > int64(len(s)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "substr length %d out of range", length)
	}
	return value.NewString(s[start : start+length]), nil
}

/*
StrFind returns the index of the first occurrence of Needle at or after the
optional Start index, or -1 if absent.
*/
type StrFind struct {
	Expr   value.Node
	Needle value.Node
	Start  value.Node // optional, may be nil
}

func (n *StrFind) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	_, needle, err := evalString(env, n.Needle)
	if err != nil {
		return value.Value{}, err
	}
	start := int64(0)
	if n.Start != nil {
		start, err = evalInt(env, n.Start)
		if err != nil {
			return value.Value{}, err
		}
		if start < 0 || start > int64(len(s)) {
			return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "strfind start %d out of range", start)
		}
	}
	idx := strings.Index(s[start:], needle)
	if idx < 0 {
		return value.NewInt(-1), nil
	}
	return value.NewInt(start + int64(idx)), nil
}

/*
StrCount counts non-overlapping occurrences of Needle in Expr.
*/
type StrCount struct {
	Expr, Needle value.Node
}

func (n *StrCount) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	_, needle, err := evalString(env, n.Needle)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(int64(strings.Count(s, needle))), nil
}

/*
StrCmp compares two strings lexically, returning -1, 0 or 1.
*/
type StrCmp struct {
	Lhs, Rhs value.Node
}

func (n *StrCmp) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalString(env, n.Lhs)
	if err != nil {
		return value.Value{}, err
	}
	_, b, err := evalString(env, n.Rhs)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(int64(strings.Compare(a, b))), nil
}

/*
StrSort sorts the characters of a string, ascending unless Descending
evaluates to true. Backed by common/sortutil's string sort, the same
library ECAL reaches for whenever it needs to sort a set of strings (e.g.
its debug variable listing).
*/
type StrSort struct {
	Expr       value.Node
	Descending value.Node // optional, may be nil
}

func (n *StrSort) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	desc, err := evalOptionalBool(env, n.Descending)
	if err != nil {
		return value.Value{}, err
	}

	chars := make([]interface{}, len(s))
	for i := 0; i < len(s); i++ {
		chars[i] = string(s[i])
	}
	sortutil.InterfaceStrings(chars)

	out := make([]byte, len(s))
	if desc {
		for i, c := range chars {
			out[len(out)-1-i] = c.(string)[0]
		}
	} else {
		for i, c := range chars {
			out[i] = c.(string)[0]
		}
	}
	return value.NewString(string(out)), nil
}

func evalOptionalBool(env value.Env, n value.Node) (bool, error) {
	if n == nil {
		return false, nil
	}
	v, err := n.Eval(env)
	if err != nil {
		return false, err
	}
	if v.Kind() != value.KindBool {
		return false, util.NewErrorf(util.ErrInvalidOperandType, "expected a bool, got %v", v.TypeName())
	}
	return v.Bool(), nil
}

/*
StrRev reverses a string.
*/
type StrRev struct{ Expr value.Node }

func (n *StrRev) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return value.NewString(string(b)), nil
}

/*
StrSplit splits a string on every occurrence of Sep (a char or a string)
into an Array of the substrings between them.
*/
type StrSplit struct {
	Expr value.Node
	Sep  value.Node
}

func (n *StrSplit) Eval(env value.Env) (value.Value, error) {
	_, s, err := evalString(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	sepV, err := n.Sep.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	var sep string
	switch sepV.Kind() {
	case value.KindChar:
		sep = string(sepV.Char())
	case value.KindString:
		sep = sepV.Str()
	default:
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType,
			"strsplit separator must be a char or string, got %v", sepV.TypeName())
	}

	parts := strings.Split(s, sep)
	items := make([]value.Value, len(parts))
	for i, p := range parts {
		items[i] = value.NewString(p)
	}
	return value.NewArray(items), nil
}

// Char tests and case conversion
// ===============================

func evalChar(env value.Env, n value.Node) (byte, error) {
	v, err := n.Eval(env)
	if err != nil {
		return 0, err
	}
	if v.Kind() != value.KindChar {
		return 0, util.NewErrorf(util.ErrInvalidOperandType, "expected a char, got %v", v.TypeName())
	}
	return v.Char(), nil
}

/*
CharPredKind identifies one of the single-character classification tests.
*/
type CharPredKind int

const (
	IsUpper CharPredKind = iota
	IsLower
	IsAlpha
	IsNumer
	IsAlnum
	IsPunct
	IsSpace
)

/*
CharPred evaluates one of the isupper/islower/isalpha/isnumer/isalnum/
ispunct/isspace character classification tests.
*/
type CharPred struct {
	Kind CharPredKind
	Expr value.Node
}

func (n *CharPred) Eval(env value.Env) (value.Value, error) {
	c, err := evalChar(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	var ok bool
	switch n.Kind {
	case IsUpper:
		ok = c >= 'A' && c <= 'Z'
	case IsLower:
		ok = c >= 'a' && c <= 'z'
	case IsAlpha:
		ok = (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	case IsNumer:
		ok = c >= '0' && c <= '9'
	case IsAlnum:
		ok = (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	case IsPunct:
		ok = strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", rune(c))
	case IsSpace:
		ok = c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
	}
	return value.NewBool(ok), nil
}

/*
ToUpper upper-cases a char.
*/
type ToUpper struct{ Expr value.Node }

func (n *ToUpper) Eval(env value.Env) (value.Value, error) {
	c, err := evalChar(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return value.NewChar(c), nil
}

/*
ToLower lower-cases a char.
*/
type ToLower struct{ Expr value.Node }

func (n *ToLower) Eval(env value.Env) (value.Value, error) {
	c, err := evalChar(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return value.NewChar(c), nil
}

package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func evalHashMap(env value.Env, n value.Node) (value.Value, *value.HashMap, error) {
	v, err := n.Eval(env)
	if err != nil {
		return value.Value{}, nil, err
	}
	if v.Kind() != value.KindHashMap {
		return value.Value{}, nil, util.NewErrorf(util.ErrInvalidOperandType,
			"expected a hashmap, got %v", v.TypeName())
	}
	return v, v.HashMap(), nil
}

/*
MakeHashMap builds a HashMap from evaluated Pair entries.
*/
type MakeHashMap struct {
	Entries []value.Node
}

func (n *MakeHashMap) Eval(env value.Env) (value.Value, error) {
	hm := value.NewHashMap()
	for _, e := range n.Entries {
		pv, err := e.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		if pv.Kind() != value.KindPair {
			return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType,
				"hashmap entries must be pairs, got %v", pv.TypeName())
		}
		p := pv.Pair()
		if err := hm.HashMap().Set(p.First, p.Second); err != nil {
			return value.Value{}, err
		}
	}
	return hm, nil
}

/*
HmLen returns the number of entries in a hashmap.
*/
type HmLen struct{ Expr value.Node }

func (n *HmLen) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(int64(h.Len())), nil
}

/*
HmHas reports whether Key is present in the hashmap.
*/
type HmHas struct {
	Expr, Key value.Node
}

func (n *HmHas) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	kv, err := n.Key.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	_, ok, err := h.Get(kv)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBool(ok), nil
}

/*
HmGet looks up Key, failing with ErrUnknownSymbol if it is absent.
*/
type HmGet struct {
	Expr, Key value.Node
}

func (n *HmGet) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	kv, err := n.Key.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	v, ok, err := h.Get(kv)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, util.NewErrorf(util.ErrUnknownSymbol, "hashmap has no key %v", kv)
	}
	return v, nil
}

/*
HmSet inserts or overwrites Key -> Val.
*/
type HmSet struct {
	Expr, Key, Val value.Node
}

func (n *HmSet) Eval(env value.Env) (value.Value, error) {
	hv, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	kv, err := n.Key.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	vv, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if err := h.Set(kv, vv); err != nil {
		return value.Value{}, err
	}
	return hv, nil
}

/*
HmRem removes Key if present; removing an absent key is a no-op.
*/
type HmRem struct {
	Expr, Key value.Node
}

func (n *HmRem) Eval(env value.Env) (value.Value, error) {
	hv, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	kv, err := n.Key.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if err := h.Remove(kv); err != nil {
		return value.Value{}, err
	}
	return hv, nil
}

/*
HmClr empties the hashmap.
*/
type HmClr struct{ Expr value.Node }

func (n *HmClr) Eval(env value.Env) (value.Value, error) {
	hv, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	h.Clear()
	return hv, nil
}

/*
HmFind returns the first key (in the map's native iteration order, which
this implementation does not contract) whose value equals Val, or Null if
none does.
*/
type HmFind struct {
	Expr, Val value.Node
}

func (n *HmFind) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	vv, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	for _, k := range h.Keys() {
		cur, _, err := h.Get(k)
		if err != nil {
			continue
		}
		eq, err := cur.Equals(vv)
		if err == nil && eq {
			return k, nil
		}
	}
	return value.Null, nil
}

/*
HmCount counts values equal to Val.
*/
type HmCount struct {
	Expr, Val value.Node
}

func (n *HmCount) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	vv, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	count := int64(0)
	for _, v := range h.Values() {
		eq, err := v.Equals(vv)
		if err == nil && eq {
			count++
		}
	}
	return value.NewInt(count), nil
}

/*
HmKeys returns an Array of every key.
*/
type HmKeys struct{ Expr value.Node }

func (n *HmKeys) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewArray(h.Keys()), nil
}

/*
HmVals returns an Array of every value.
*/
type HmVals struct{ Expr value.Node }

func (n *HmVals) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewArray(h.Values()), nil
}

/*
HmItems returns an Array of (key . value) Pairs.
*/
type HmItems struct{ Expr value.Node }

func (n *HmItems) Eval(env value.Env) (value.Value, error) {
	_, h, err := evalHashMap(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewArray(h.Items()), nil
}

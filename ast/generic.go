package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
Generic ops dispatch on the runtime type of their first evaluated operand
to the matching type-specific operation (strlen/arrlen/hmlen/rnglen for
len, and so on), failing with ErrInvalidOperandType for an unsupported
type - exactly the contract spec §4.3 describes for len/empty/get/set/
clear/find/count/sort/reverse/sum/apply.
*/

/*
GenLen dispatches len.
*/
type GenLen struct{ Expr value.Node }

func (n *GenLen) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindString:
		return value.NewInt(int64(len(v.Str()))), nil
	case value.KindArray:
		return value.NewInt(int64(len(v.Array().Items))), nil
	case value.KindHashMap:
		return value.NewInt(int64(v.HashMap().Len())), nil
	case value.KindRange:
		return value.NewInt(v.Range().Len()), nil
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "len: unsupported type %v", v.TypeName())
}

/*
GenEmpty dispatches empty (len == 0).
*/
type GenEmpty struct{ Expr value.Node }

func (n *GenEmpty) Eval(env value.Env) (value.Value, error) {
	lv, err := (&GenLen{n.Expr}).Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBool(lv.Int() == 0), nil
}

/*
GenGet dispatches get: a string/array index, or a hashmap key lookup. The
optional Default is returned in place of the out-of-range error of a
string/array index (which still has to be an Int), and in place of Null for
an absent hashmap key. Without Default, an absent hashmap key yields Null,
not an error.
*/
type GenGet struct{ Expr, Key, Default value.Node }

func (n *GenGet) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindString:
		i, err := evalInt(env, n.Key)
		if err != nil {
			return value.Value{}, err
		}
		if (i < 0 || i >= int64(len(v.Str()))) && n.Default != nil {
			return n.Default.Eval(env)
		}
		return (&StrGet{Expr: &Literal{v}, Index: &valueNode{value.NewInt(i)}}).Eval(env)
	case value.KindArray:
		i, err := evalInt(env, n.Key)
		if err != nil {
			return value.Value{}, err
		}
		if (i < 0 || i >= int64(len(v.Array().Items))) && n.Default != nil {
			return n.Default.Eval(env)
		}
		return (&ArrGet{Expr: &Literal{v}, Index: &valueNode{value.NewInt(i)}}).Eval(env)
	case value.KindHashMap:
		kv, err := n.Key.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		rv, ok, err := v.HashMap().Get(kv)
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			if n.Default != nil {
				return n.Default.Eval(env)
			}
			return value.Null, nil
		}
		return rv, nil
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "get: unsupported type %v", v.TypeName())
}

/*
valueNode re-presents an already-evaluated Value as a Node, returning it
verbatim. Unlike Literal, it never clones a String - GenSet relies on that
to route a mutation back through the same shared stringBox its first Eval
of Expr already produced, rather than through Literal's deep copy (made
for literals embedded in re-evaluated code, not for values already live in
an environment).
*/
type valueNode struct{ v value.Value }

func (n *valueNode) Eval(env value.Env) (value.Value, error) { return n.v, nil }

/*
GenSet dispatches set: a string/array index write, or a hashmap key write.
*/
type GenSet struct{ Expr, Key, Val value.Node }

func (n *GenSet) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindString:
		return (&StrSet{Expr: &valueNode{v}, Index: n.Key, Char: n.Val}).Eval(env)
	case value.KindArray:
		return (&ArrSet{Expr: &Literal{v}, Index: n.Key, Val: n.Val}).Eval(env)
	case value.KindHashMap:
		return (&HmSet{Expr: &Literal{v}, Key: n.Key, Val: n.Val}).Eval(env)
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "set: unsupported type %v", v.TypeName())
}

/*
GenClear dispatches clear over Array/HashMap.
*/
type GenClear struct{ Expr value.Node }

func (n *GenClear) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindArray:
		return (&ArrClear{Expr: &Literal{v}}).Eval(env)
	case value.KindHashMap:
		return (&HmClr{Expr: &Literal{v}}).Eval(env)
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "clear: unsupported type %v", v.TypeName())
}

/*
GenFind dispatches find over String/Array/HashMap. The optional Start is the
search's starting index and only applies to the String case, mirroring
StrFind's own optional Start.
*/
type GenFind struct{ Expr, Val, Start value.Node }

func (n *GenFind) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindString:
		return (&StrFind{Expr: &Literal{v}, Needle: n.Val, Start: n.Start}).Eval(env)
	case value.KindArray:
		return (&ArrFind{Expr: &Literal{v}, Val: n.Val}).Eval(env)
	case value.KindHashMap:
		return (&HmFind{Expr: &Literal{v}, Val: n.Val}).Eval(env)
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "find: unsupported type %v", v.TypeName())
}

/*
GenCount dispatches count over String/Array/HashMap.
*/
type GenCount struct{ Expr, Val value.Node }

func (n *GenCount) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindString:
		return (&StrCount{Expr: &Literal{v}, Needle: n.Val}).Eval(env)
	case value.KindArray:
		return (&ArrCount{Expr: &Literal{v}, Val: n.Val}).Eval(env)
	case value.KindHashMap:
		return (&HmCount{Expr: &Literal{v}, Val: n.Val}).Eval(env)
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "count: unsupported type %v", v.TypeName())
}

/*
GenSort dispatches sort over String/Array.
*/
type GenSort struct {
	Expr       value.Node
	Descending value.Node
}

func (n *GenSort) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindString:
		return (&StrSort{Expr: &Literal{v}, Descending: n.Descending}).Eval(env)
	case value.KindArray:
		return (&ArrSort{Expr: &Literal{v}, Descending: n.Descending}).Eval(env)
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "sort: unsupported type %v", v.TypeName())
}

/*
GenReverse dispatches reverse over String/Array.
*/
type GenReverse struct{ Expr value.Node }

func (n *GenReverse) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindString:
		return (&StrRev{Expr: &Literal{v}}).Eval(env)
	case value.KindArray:
		return (&ArrRev{Expr: &Literal{v}}).Eval(env)
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "reverse: unsupported type %v", v.TypeName())
}

/*
GenSum folds + across the numeric elements of an Array or Range.
*/
type GenSum struct{ Expr value.Node }

func (n *GenSum) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}

	var items []value.Value
	switch v.Kind() {
	case value.KindArray:
		items = v.Array().Items
	case value.KindRange:
		items = v.Range().Expand()
	default:
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "sum: unsupported type %v", v.TypeName())
	}

	if len(items) == 0 {
		return value.NewInt(0), nil
	}
	acc := items[0]
	if err := checkNumeric(acc); err != nil {
		return value.Value{}, err
	}
	for _, it := range items[1:] {
		if err := checkNumeric(it); err != nil {
			return value.Value{}, err
		}
		acc, err = applyArith(Add, acc, it)
		if err != nil {
			return value.Value{}, err
		}
	}
	return acc, nil
}

/*
GenApply invokes a Closure with the given Args.
*/
type GenApply struct {
	Expr value.Node
	Args []value.Node
}

func (n *GenApply) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindClosure {
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "apply: unsupported type %v", v.TypeName())
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		av, err := a.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = av
	}
	return InvokeClosure(v.Closure(), args)
}

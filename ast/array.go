package ast

import (
	"sort"

	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func evalArray(env value.Env, n value.Node) (value.Value, *value.Array, error) {
	v, err := n.Eval(env)
	if err != nil {
		return value.Value{}, nil, err
	}
	if v.Kind() != value.KindArray {
		return value.Value{}, nil, util.NewErrorf(util.ErrInvalidOperandType,
			"expected an array, got %v", v.TypeName())
	}
	return v, v.Array(), nil
}

/*
MakeArray builds an Array from its evaluated operand list.
*/
type MakeArray struct {
	Items []value.Node
}

func (n *MakeArray) Eval(env value.Env) (value.Value, error) {
	items := make([]value.Value, len(n.Items))
	for i, it := range n.Items {
		v, err := it.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}
	return value.NewArray(items), nil
}

/*
ArraySV builds an Array of Size slots, each filled with a clone of the
(possibly compound) Default value.
*/
type ArraySV struct {
	Size    value.Node
	Default value.Node
}

func (n *ArraySV) Eval(env value.Env) (value.Value, error) {
	size, err := evalInt(env, n.Size)
	if err != nil {
		return value.Value{}, err
	}
	if size < 0 {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "array size %d must not be negative", size)
	}
	dv, err := n.Default.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	items := make([]value.Value, size)
	for i := range items {
		cv, err := dv.Clone()
		if err != nil {
			return value.Value{}, err
		}
		items[i] = cv
	}
	return value.NewArray(items), nil
}

/*
ArraySG builds an Array of Size slots, each filled by invoking the
zero-argument Gen closure once per slot, in order.
*/
type ArraySG struct {
	Size value.Node
	Gen  value.Node
}

func (n *ArraySG) Eval(env value.Env) (value.Value, error) {
	size, err := evalInt(env, n.Size)
	if err != nil {
		return value.Value{}, err
	}
	if size < 0 {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "array size %d must not be negative", size)
	}
	gv, err := n.Gen.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if gv.Kind() != value.KindClosure {
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType,
			"arraysg generator must be a closure, got %v", gv.TypeName())
	}
	items := make([]value.Value, size)
	for i := range items {
		v, err := InvokeClosure(gv.Closure(), nil)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = v
	}
	return value.NewArray(items), nil
}

/*
ArrLen returns an array's length.
*/
type ArrLen struct{ Expr value.Node }

func (n *ArrLen) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(int64(len(a.Items))), nil
}

/*
ArrGet returns the element at Index, bounds-checked.
*/
type ArrGet struct {
	Expr  value.Node
	Index value.Node
}

func (n *ArrGet) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	i, err := evalInt(env, n.Index)
	if err != nil {
		return value.Value{}, err
	}
	if i < 0 || i >= int64(len(a.Items)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "array index %d out of range", i)
	}
	return a.Items[i], nil
}

/*
ArrSet mutates the element at Index in place, observable through every
alias since Array is reference-shared.
*/
type ArrSet struct {
	Expr  value.Node
	Index value.Node
	Val   value.Node
}

func (n *ArrSet) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	i, err := evalInt(env, n.Index)
	if err != nil {
		return value.Value{}, err
	}
	if i < 0 || i >= int64(len(a.Items)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "array index %d out of range", i)
	}
	v, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	a.Items[i] = v
	return v, nil
}

/*
ArrPush appends Val to the end of the array.
*/
type ArrPush struct {
	Expr value.Node
	Val  value.Node
}

func (n *ArrPush) Eval(env value.Env) (value.Value, error) {
	av, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	v, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	a.Items = append(a.Items, v)
	return av, nil
}

/*
ArrPop removes and returns the last element of the array. Popping an empty
array fails with ErrOutOfRange.
*/
type ArrPop struct{ Expr value.Node }

func (n *ArrPop) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if len(a.Items) == 0 {
		return value.Value{}, util.NewError(util.ErrOutOfRange, "cannot pop from an empty array")
	}
	last := a.Items[len(a.Items)-1]
	a.Items = a.Items[:len(a.Items)-1]
	return last, nil
}

/*
ArrFind returns the index of the first element equal to Val, or -1.
*/
type ArrFind struct {
	Expr, Val value.Node
}

func (n *ArrFind) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	v, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	for i, it := range a.Items {
		eq, err := it.Equals(v)
		if err == nil && eq {
			return value.NewInt(int64(i)), nil
		}
	}
	return value.NewInt(-1), nil
}

/*
ArrCount counts elements equal to Val.
*/
type ArrCount struct {
	Expr, Val value.Node
}

func (n *ArrCount) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	v, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	count := int64(0)
	for _, it := range a.Items {
		eq, err := it.Equals(v)
		if err == nil && eq {
			count++
		}
	}
	return value.NewInt(count), nil
}

/*
ArrSort sorts the array in place by value.Compare ordering, ascending
unless Descending evaluates to true.
*/
type ArrSort struct {
	Expr       value.Node
	Descending value.Node // optional, may be nil
}

func (n *ArrSort) Eval(env value.Env) (value.Value, error) {
	av, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	desc, err := evalOptionalBool(env, n.Descending)
	if err != nil {
		return value.Value{}, err
	}

	var sortErr error
	sort.SliceStable(a.Items, func(i, j int) bool {
		c, err := a.Items[i].Compare(a.Items[j])
		if err != nil {
			sortErr = err
			return false
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
	if sortErr != nil {
		return value.Value{}, sortErr
	}
	return av, nil
}

/*
ArrRev reverses the array in place.
*/
type ArrRev struct{ Expr value.Node }

func (n *ArrRev) Eval(env value.Env) (value.Value, error) {
	av, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	for i, j := 0, len(a.Items)-1; i < j; i, j = i+1, j-1 {
		a.Items[i], a.Items[j] = a.Items[j], a.Items[i]
	}
	return av, nil
}

/*
ArrClear empties the array in place.
*/
type ArrClear struct{ Expr value.Node }

func (n *ArrClear) Eval(env value.Env) (value.Value, error) {
	av, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	a.Items = nil
	return av, nil
}

/*
ArrIns inserts Val at Index, shifting subsequent elements right. Index ==
len(items) is a valid append position.
*/
type ArrIns struct {
	Expr, Index, Val value.Node
}

func (n *ArrIns) Eval(env value.Env) (value.Value, error) {
	av, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	i, err := evalInt(env, n.Index)
	if err != nil {
		return value.Value{}, err
	}
	if i < 0 || i > int64(len(a.Items)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "array index %d out of range", i)
	}
	v, err := n.Val.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	a.Items = append(a.Items, value.Value{})
	copy(a.Items[i+1:], a.Items[i:])
	a.Items[i] = v
	return av, nil
}

/*
ArrRem removes and returns the element at Index, shifting subsequent
elements left.
*/
type ArrRem struct {
	Expr, Index value.Node
}

func (n *ArrRem) Eval(env value.Env) (value.Value, error) {
	_, a, err := evalArray(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	i, err := evalInt(env, n.Index)
	if err != nil {
		return value.Value{}, err
	}
	if i < 0 || i >= int64(len(a.Items)) {
		return value.Value{}, util.NewErrorf(util.ErrOutOfRange, "array index %d out of range", i)
	}
	removed := a.Items[i]
	a.Items = append(a.Items[:i], a.Items[i+1:]...)
	return removed, nil
}

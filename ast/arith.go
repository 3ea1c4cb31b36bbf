package ast

import (
	"math"

	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
ArithKind identifies one of the variadic arithmetic operators.
*/
type ArithKind int

const (
	Add ArithKind = iota
	Sub
	Mul
	Div
	Mod
	Pow
)

/*
ArithOp is a variadic, left-folding arithmetic operator over at least two
operands. If any operand is Real the whole expression is Real, otherwise
Int; % requires every operand to be Int and ^ always returns Real.
*/
type ArithOp struct {
	Kind     ArithKind
	Operands []value.Node
}

func (n *ArithOp) Eval(env value.Env) (value.Value, error) {
	acc, err := n.Operands[0].Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if err := checkNumeric(acc); err != nil {
		return value.Value{}, err
	}

	for _, operand := range n.Operands[1:] {
		rhs, err := operand.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		if err := checkNumeric(rhs); err != nil {
			return value.Value{}, err
		}
		acc, err = applyArith(n.Kind, acc, rhs)
		if err != nil {
			return value.Value{}, err
		}
	}
	return acc, nil
}

func checkNumeric(v value.Value) error {
	if v.Kind() != value.KindInt && v.Kind() != value.KindReal {
		return util.NewErrorf(util.ErrInvalidOperandType,
			"arithmetic operand must be int or real, got %v", v.TypeName())
	}
	return nil
}

func applyArith(kind ArithKind, a, b value.Value) (value.Value, error) {
	if kind == Pow {
		return value.NewReal(math.Pow(toFloat(a), toFloat(b))), nil
	}

	if kind == Mod {
		if a.Kind() != value.KindInt || b.Kind() != value.KindInt {
			return value.Value{}, util.NewError(util.ErrInvalidOperandType, "% requires int operands")
		}
		if b.Int() == 0 {
			return value.Value{}, util.NewError(util.ErrDivByZero, "modulo by zero")
		}
		return value.NewInt(a.Int() % b.Int()), nil
	}

	isReal := a.Kind() == value.KindReal || b.Kind() == value.KindReal

	if kind == Div {
		if !isReal && b.Int() == 0 {
			return value.Value{}, util.NewError(util.ErrDivByZero, "division by zero")
		}
		if isReal && toFloat(b) == 0 {
			return value.Value{}, util.NewError(util.ErrDivByZero, "division by zero")
		}
	}

	if isReal {
		af, bf := toFloat(a), toFloat(b)
		switch kind {
		case Add:
			return value.NewReal(af + bf), nil
		case Sub:
			return value.NewReal(af - bf), nil
		case Mul:
			return value.NewReal(af * bf), nil
		case Div:
			return value.NewReal(af / bf), nil
		}
	}

	ai, bi := a.Int(), b.Int()
	switch kind {
	case Add:
		return value.NewInt(ai + bi), nil
	case Sub:
		return value.NewInt(ai - bi), nil
	case Mul:
		return value.NewInt(ai * bi), nil
	case Div:
		return value.NewInt(ai / bi), nil
	}

	return value.Value{}, util.NewError(util.ErrInvalidOperandType, "unknown arithmetic operator")
}

func toFloat(v value.Value) float64 {
	if v.Kind() == value.KindInt {
		return float64(v.Int())
	}
	return v.Real()
}

/*
NegativeOf negates an Int or Real operand.
*/
type NegativeOf struct {
	Expr value.Node
}

func (n *NegativeOf) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindInt:
		return value.NewInt(-v.Int()), nil
	case value.KindReal:
		return value.NewReal(-v.Real()), nil
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType,
		"cannot negate a value of type %v", v.TypeName())
}

/*
CompoundAssign implements the += -= *= /= %= ^= forms: evaluate expr,
combine it with the current binding's value using the matching ArithKind,
and assign the result back.
*/
type CompoundAssign struct {
	Kind ArithKind
	Name string
	Expr value.Node
}

func (n *CompoundAssign) Eval(env value.Env) (value.Value, error) {
	cur, err := env.Get(n.Name)
	if err != nil {
		return value.Value{}, err
	}
	if err := checkNumeric(cur); err != nil {
		return value.Value{}, err
	}

	rhs, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if err := checkNumeric(rhs); err != nil {
		return value.Value{}, err
	}

	res, err := applyArith(n.Kind, cur, rhs)
	if err != nil {
		return value.Value{}, err
	}
	if err := env.Set(n.Name, res); err != nil {
		return value.Value{}, err
	}
	return res, nil
}

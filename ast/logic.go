package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
LogicKind identifies the and/or variadic logic operators.
*/
type LogicKind int

const (
	And LogicKind = iota
	Or
)

/*
LogicOp short-circuits over a variadic operand list. and returns the first
Bool-false operand (or true if none is false); or returns the first
Bool-true operand (or false if none is true). A non-Bool operand that is
actually evaluated fails with ErrInvalidOperandType.
*/
type LogicOp struct {
	Kind     LogicKind
	Operands []value.Node
}

func (n *LogicOp) Eval(env value.Env) (value.Value, error) {
	for _, operand := range n.Operands {
		v, err := operand.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		if v.Kind() != value.KindBool {
			return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType,
				"logic operand must be bool, got %v", v.TypeName())
		}
		if n.Kind == And && !v.Bool() {
			return value.NewBool(false), nil
		}
		if n.Kind == Or && v.Bool() {
			return value.NewBool(true), nil
		}
	}
	return value.NewBool(n.Kind == And), nil
}

/*
Not negates a Bool operand.
*/
type Not struct {
	Expr value.Node
}

func (n *Not) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindBool {
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType,
			"not operand must be bool, got %v", v.TypeName())
	}
	return value.NewBool(!v.Bool()), nil
}

package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
MakePair builds an immutable (First . Second) Pair.
*/
type MakePair struct {
	First, Second value.Node
}

func (n *MakePair) Eval(env value.Env) (value.Value, error) {
	fv, err := n.First.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	sv, err := n.Second.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewPair(fv, sv), nil
}

func evalPair(env value.Env, n value.Node) (*value.Pair, error) {
	v, err := n.Eval(env)
	if err != nil {
		return nil, err
	}
	if v.Kind() != value.KindPair {
		return nil, util.NewErrorf(util.ErrInvalidOperandType, "expected a pair, got %v", v.TypeName())
	}
	return v.Pair(), nil
}

/*
First returns a pair's first element.
*/
type First struct{ Expr value.Node }

func (n *First) Eval(env value.Env) (value.Value, error) {
	p, err := evalPair(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return p.First, nil
}

/*
Second returns a pair's second element.
*/
type Second struct{ Expr value.Node }

func (n *Second) Eval(env value.Env) (value.Value, error) {
	p, err := evalPair(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return p.Second, nil
}

package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func evalRange(env value.Env, n value.Node) (*value.Range, error) {
	v, err := n.Eval(env)
	if err != nil {
		return nil, err
	}
	if v.Kind() != value.KindRange {
		return nil, util.NewErrorf(util.ErrInvalidOperandType, "expected a range, got %v", v.TypeName())
	}
	return v.Range(), nil
}

/*
MakeRange builds a Range(Begin, End, Step); Begin defaults to 0 and Step to
1 when omitted (the single-argument range(end) surface form). Step's sign
must match sign(End-Begin) and Step must not be 0.
*/
type MakeRange struct {
	Begin value.Node // optional, may be nil (defaults to 0)
	End   value.Node
	Step  value.Node // optional, may be nil (defaults to 1)
}

func (n *MakeRange) Eval(env value.Env) (value.Value, error) {
	begin := int64(0)
	if n.Begin != nil {
		b, err := evalInt(env, n.Begin)
		if err != nil {
			return value.Value{}, err
		}
		begin = b
	}
	end, err := evalInt(env, n.End)
	if err != nil {
		return value.Value{}, err
	}
	step := int64(1)
	if n.Step != nil {
		s, err := evalInt(env, n.Step)
		if err != nil {
			return value.Value{}, err
		}
		step = s
	}
	return value.NewRange(begin, end, step)
}

/*
RngBegin returns a range's begin bound.
*/
type RngBegin struct{ Expr value.Node }

func (n *RngBegin) Eval(env value.Env) (value.Value, error) {
	r, err := evalRange(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(r.Begin), nil
}

/*
RngEnd returns a range's end bound.
*/
type RngEnd struct{ Expr value.Node }

func (n *RngEnd) Eval(env value.Env) (value.Value, error) {
	r, err := evalRange(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(r.End), nil
}

/*
RngStep returns a range's step.
*/
type RngStep struct{ Expr value.Node }

func (n *RngStep) Eval(env value.Env) (value.Value, error) {
	r, err := evalRange(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(r.Step), nil
}

/*
RngLen returns a range's derived length: ceil(|end-begin| / |step|).
*/
type RngLen struct{ Expr value.Node }

func (n *RngLen) Eval(env value.Env) (value.Value, error) {
	r, err := evalRange(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewInt(r.Len()), nil
}

/*
Expand materializes a Range as an Array of its integer elements.
*/
type Expand struct{ Expr value.Node }

func (n *Expand) Eval(env value.Env) (value.Value, error) {
	r, err := evalRange(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewArray(r.Expand()), nil
}

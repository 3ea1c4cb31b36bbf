package ast

import (
	"errors"

	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
If evaluates Pred (which must be Bool, else ErrInvalidExpressionType) and
runs the matching branch in a fresh child scope. A missing Else branch
returns Null. when/unless are parsed into an If with, respectively, Else or
Then left nil.
*/
type If struct {
	Pred value.Node
	Then value.Node
	Else value.Node
}

func (n *If) Eval(env value.Env) (value.Value, error) {
	pv, err := n.Pred.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if pv.Kind() != value.KindBool {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"if predicate must be bool, got %v", pv.TypeName())
	}

	branch := n.Else
	if pv.Bool() {
		branch = n.Then
	}
	if branch == nil {
		return value.Null, nil
	}
	return branch.Eval(env.NewChild())
}

/*
CondCase is one (pred body) pair of a Cond form.
*/
type CondCase struct {
	Pred value.Node
	Body value.Node
}

/*
Cond walks its cases in order; the first whose predicate evaluates to Bool
true wins and its (optional) body is evaluated, defaulting to Null. A
non-Bool predicate fails with ErrInvalidExpressionType.
*/
type Cond struct {
	Cases []CondCase
}

func (n *Cond) Eval(env value.Env) (value.Value, error) {
	for _, c := range n.Cases {
		pv, err := c.Pred.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		if pv.Kind() != value.KindBool {
			return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
				"cond predicate must be bool, got %v", pv.TypeName())
		}
		if pv.Bool() {
			if c.Body == nil {
				return value.Null, nil
			}
			return c.Body.Eval(env)
		}
	}
	return value.Null, nil
}

/*
Loop runs a (decl -> cond -> body -> next)+ state machine in its own child
scope: Decl (optional) is evaluated once; then, while Cond is Bool true,
Body runs followed by Next (optional). Break unwinds to the nearest
enclosing Loop (or Foreach) and yields Null; any other error propagates. Result is the last Body value, or
Null if the loop never ran or exited via break.
*/
type Loop struct {
	Decl value.Node
	Cond value.Node
	Next value.Node
	Body value.Node
}

func (n *Loop) Eval(env value.Env) (value.Value, error) {
	loopEnv := env.NewChild()

	if n.Decl != nil {
		if _, err := n.Decl.Eval(loopEnv); err != nil {
			return value.Value{}, err
		}
	}

	res := value.Null
	for {
		cv, err := n.Cond.Eval(loopEnv)
		if err != nil {
			return value.Value{}, err
		}
		if cv.Kind() != value.KindBool {
			return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
				"loop condition must be bool, got %v", cv.TypeName())
		}
		if !cv.Bool() {
			return res, nil
		}

		bv, err := n.Body.Eval(loopEnv)
		if err != nil {
			if errors.Is(err, util.ErrBreak) {
				return value.Null, nil
			}
			return value.Value{}, err
		}
		res = bv

		if n.Next != nil {
			if _, err := n.Next.Eval(loopEnv); err != nil {
				return value.Value{}, err
			}
		}
	}
}

/*
Foreach binds Var in a fresh child scope to each successive element of
Iterable in turn (a String yields chars, an Array/Range yields its
elements, a HashMap yields its values, a File yields its lines) and
evaluates Body once per element. Result is the last Body value, or Null if
Iterable was empty.
*/
type Foreach struct {
	Var      string
	Iterable value.Node
	Body     value.Node
}

func (n *Foreach) Eval(env value.Env) (value.Value, error) {
	iv, err := n.Iterable.Eval(env)
	if err != nil {
		return value.Value{}, err
	}

	elems, closeFn, err := foreachElements(iv)
	if err != nil {
		return value.Value{}, err
	}
	if closeFn != nil {
		defer closeFn()
	}

	res := value.Null
	loopEnv := env.NewChild()
	for _, e := range elems {
		loopEnv.Bind(n.Var, e)
		bv, err := n.Body.Eval(loopEnv)
		if err != nil {
			if errors.Is(err, util.ErrBreak) {
				return value.Null, nil
			}
			return value.Value{}, err
		}
		res = bv
	}
	return res, nil
}

func foreachElements(iv value.Value) ([]value.Value, func(), error) {
	switch iv.Kind() {
	case value.KindString:
		s := iv.Str()
		out := make([]value.Value, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = value.NewChar(s[i])
		}
		return out, nil, nil

	case value.KindArray:
		return append([]value.Value(nil), iv.Array().Items...), nil, nil

	case value.KindHashMap:
		return iv.HashMap().Values(), nil, nil

	case value.KindRange:
		return iv.Range().Expand(), nil, nil

	case value.KindFile:
		lines, closeFn, err := readAllLines(iv.File())
		return lines, closeFn, err
	}

	return nil, nil, util.NewErrorf(util.ErrInvalidOperandType,
		"cannot iterate over a value of type %v", iv.TypeName())
}

/*
 * ishlang
 *
 * Core subsystems of a small S-expression based scripting language.
 */

/*
Package ast implements the ishlang AST node families. Each node family is
grounded on the matching github.com/krotik/ecal/interpreter/rt_*.go file for
shape and doc-comment density, retargeted from ECAL's two-tier
ASTNode/Runtime split to a single value.Node per construct - ishlang's
grammar is fully prefix S-expression dispatch, so there is no separate
parse/validate/runtime split to preserve.
*/
package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
Literal evaluates to a fixed Value. Strings are deep-cloned on every
evaluation so that a literal embedded in shared, re-evaluated code (e.g. a
closure body invoked many times) can never be mutated through one call's
result and observed by another.
*/
type Literal struct {
	Val value.Value
}

func (n *Literal) Eval(env value.Env) (value.Value, error) {
	if n.Val.Kind() == value.KindString {
		return n.Val.Clone()
	}
	return n.Val, nil
}

/*
Variable looks up a bound name in env.
*/
type Variable struct {
	Name string
}

func (n *Variable) Eval(env value.Env) (value.Value, error) {
	return env.Get(n.Name)
}

/*
Define introduces a new binding in the current scope. Fails with
ErrDuplicateDef if the name is already bound in that scope.
*/
type Define struct {
	Name string
	Expr value.Node
}

func (n *Define) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if err := env.Define(n.Name, v); err != nil {
		return value.Value{}, err
	}
	return v, nil
}

/*
Assign mutates an existing binding, walking the parent chain. Fails with
ErrUnknownSymbol if no such binding exists.
*/
type Assign struct {
	Name string
	Expr value.Node
}

func (n *Assign) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if err := env.Set(n.Name, v); err != nil {
		return value.Value{}, err
	}
	return v, nil
}

/*
Exists reports whether a name is bound anywhere on the scope chain.
*/
type Exists struct {
	Name string
}

func (n *Exists) Eval(env value.Env) (value.Value, error) {
	return value.NewBool(env.Exists(n.Name)), nil
}

/*
Clone evaluates its operand and returns a copy of it, as value.Clone
makes one.
*/
type Clone struct {
	Expr value.Node
}

func (n *Clone) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	return v.Clone()
}

/*
Break is the non-local exit sentinel. It is caught by the nearest enclosing
Loop or Foreach; a break outside of either escapes to the caller as
ErrBreak.
*/
type Break struct{}

func (n *Break) Eval(env value.Env) (value.Value, error) {
	return value.Value{}, util.ErrBreak
}

/*
ProgN evaluates a sequence of expressions in the current environment,
in order, and returns the last one's value (or Null if the sequence is
empty).
*/
type ProgN struct {
	Exprs []value.Node
}

func (n *ProgN) Eval(env value.Env) (value.Value, error) {
	return evalSeq(env, n.Exprs)
}

/*
Block evaluates a sequence of expressions in a fresh child scope, so that
names defined inside do not leak into the enclosing scope once it exits.
*/
type Block struct {
	Exprs []value.Node
}

func (n *Block) Eval(env value.Env) (value.Value, error) {
	return evalSeq(env.NewChild(), n.Exprs)
}

func evalSeq(env value.Env, exprs []value.Node) (value.Value, error) {
	res := value.Null
	for _, e := range exprs {
		v, err := e.Eval(env)
		if err != nil {
			return value.Value{}, err
		}
		res = v
	}
	return res, nil
}

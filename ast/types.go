package ast

import (
	"github.com/krotik/common/stringutil"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
IsTypeOf reports whether Expr's runtime type name is one of Types.
*/
type IsTypeOf struct {
	Expr  value.Node
	Types []string
}

func (n *IsTypeOf) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBool(stringutil.IndexOf(v.TypeName(), n.Types) != -1), nil
}

/*
TypeName returns Expr's runtime type name as a string.
*/
type TypeName struct{ Expr value.Node }

func (n *TypeName) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewString(v.TypeName()), nil
}

/*
AsType converts Expr's value to Target's named type where a conversion is
defined, else fails with ErrInvalidAsType.
*/
type AsType struct {
	Expr   value.Node
	Target string
}

func (n *AsType) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	return v.AsType(n.Target)
}

/*
Assert evaluates Expr and fails with ErrInvalidExpressionType, tagged with
Tag, unless it is Bool true. Used in the teacher's test-tooling idiom
(truthy assertions rather than a dedicated assert builtin) but exposed here
as a first-class form per spec §6.
*/
type Assert struct {
	Tag  string
	Expr value.Node
}

func (n *Assert) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindBool {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"assert %q expected a bool, got %v", n.Tag, v.TypeName())
	}
	if !v.Bool() {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType, "assertion failed: %s", n.Tag)
	}
	return value.NewBool(true), nil
}

package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
StructExpr defines a new UserType descriptor under Name in the current
scope.
*/
type StructExpr struct {
	Name    string
	Members []string
}

func (n *StructExpr) Eval(env value.Env) (value.Value, error) {
	ut := value.NewUserType(n.Name, n.Members)
	if err := env.Define(n.Name, ut); err != nil {
		return value.Value{}, err
	}
	return ut, nil
}

/*
InitEntry is one (member expr) pair of a MakeInstance init list.
*/
type InitEntry struct {
	Member string
	Expr   value.Node
}

/*
MakeInstance looks up the named UserType, then constructs a UserObject with
every declared member present, defaulted to Null and overridden by any
matching entry in InitList. An InitList entry naming a member the struct
does not declare is silently ignored, matching the original
implementation's initArgOrNull behavior (it iterates declared members and
looks each one up in the init list, never the other way around).
*/
type MakeInstance struct {
	TypeName string
	InitList []InitEntry
}

func (n *MakeInstance) Eval(env value.Env) (value.Value, error) {
	tv, err := env.Get(n.TypeName)
	if err != nil {
		return value.Value{}, err
	}
	if tv.Kind() != value.KindUserType {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"%q is not a struct type", n.TypeName)
	}
	ut := tv.UserType()

	initVals := make(map[string]value.Node, len(n.InitList))
	for _, e := range n.InitList {
		initVals[e.Member] = e.Expr
	}

	fields := make(map[string]value.Value, len(ut.Members))
	for _, m := range ut.Members {
		if expr, ok := initVals[m]; ok {
			v, err := expr.Eval(env)
			if err != nil {
				return value.Value{}, err
			}
			fields[m] = v
		} else {
			fields[m] = value.Null
		}
	}

	return value.NewUserObject(ut, fields), nil
}

/*
IsStructName reports whether Expr evaluates to a UserType named Name.
*/
type IsStructName struct {
	Expr value.Node
	Name string
}

func (n *IsStructName) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindUserType {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"expected a usertype, got %v", v.TypeName())
	}
	return value.NewBool(v.UserType().Name == n.Name), nil
}

/*
IsInstanceOf reports whether Expr evaluates to a UserObject whose type is
named Name.
*/
type IsInstanceOf struct {
	Expr value.Node
	Name string
}

func (n *IsInstanceOf) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindUserObject {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"expected a userobject, got %v", v.TypeName())
	}
	return value.NewBool(v.UserObject().Type.Name == n.Name), nil
}

/*
StructName returns the declared type name of a UserType or UserObject.
*/
type StructName struct {
	Expr value.Node
}

func (n *StructName) Eval(env value.Env) (value.Value, error) {
	v, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	switch v.Kind() {
	case value.KindUserType:
		return value.NewString(v.UserType().Name), nil
	case value.KindUserObject:
		return value.NewString(v.UserObject().Type.Name), nil
	}
	return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
		"expected a usertype or userobject, got %v", v.TypeName())
}

/*
GetMember reads a named member off a UserObject instance. Unknown member
names fail with ErrUnknownMember.
*/
type GetMember struct {
	Instance value.Node
	Member   string
}

func (n *GetMember) Eval(env value.Env) (value.Value, error) {
	v, err := n.Instance.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindUserObject {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"expected a userobject, got %v", v.TypeName())
	}
	fv, ok := v.UserObject().Fields[n.Member]
	if !ok {
		return value.Value{}, util.NewErrorf(util.ErrUnknownMember,
			"%s has no member %q", v.UserObject().Type.Name, n.Member)
	}
	return fv, nil
}

/*
SetMember mutates a named member of a UserObject instance, visible through
every alias of that instance since UserObject is reference-shared. Unknown
member names fail with ErrUnknownMember.
*/
type SetMember struct {
	Instance value.Node
	Member   string
	Expr     value.Node
}

func (n *SetMember) Eval(env value.Env) (value.Value, error) {
	v, err := n.Instance.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.KindUserObject {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"expected a userobject, got %v", v.TypeName())
	}
	uo := v.UserObject()
	if _, ok := uo.Fields[n.Member]; !ok {
		return value.Value{}, util.NewErrorf(util.ErrUnknownMember,
			"%s has no member %q", uo.Type.Name, n.Member)
	}
	nv, err := n.Expr.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	uo.Fields[n.Member] = nv
	return nv, nil
}

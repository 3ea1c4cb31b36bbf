package ast

import (
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
LambdaExpr evaluates to a Closure capturing the current environment.
*/
type LambdaExpr struct {
	Params []string
	Body   value.Node
}

func (n *LambdaExpr) Eval(env value.Env) (value.Value, error) {
	return value.NewClosure(n.Params, n.Body, env), nil
}

/*
FunctionExpr is sugar for a named LambdaExpr: it builds the same Closure
and additionally defines it under Name in the current scope (so the
closure can recurse through its own name).
*/
type FunctionExpr struct {
	Name   string
	Params []string
	Body   value.Node
}

func (n *FunctionExpr) Eval(env value.Env) (value.Value, error) {
	clos := value.NewClosure(n.Params, n.Body, env)
	if err := env.Define(n.Name, clos); err != nil {
		return value.Value{}, err
	}
	return clos, nil
}

/*
LambdaApp evaluates a callee expression (which must evaluate to a Closure,
else ErrInvalidExpressionType), evaluates the argument expressions
left-to-right in the caller's environment, and runs the closure body in a
fresh child of the captured environment with parameters bound to the
argument values. Arity mismatch fails with ErrInvalidArgsSize.
*/
type LambdaApp struct {
	Callee value.Node
	Args   []value.Node
}

func (n *LambdaApp) Eval(env value.Env) (value.Value, error) {
	cv, err := n.Callee.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if cv.Kind() != value.KindClosure {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"cannot call a value of type %v", cv.TypeName())
	}
	return applyClosure(env, cv.Closure(), n.Args)
}

/*
FunctionApp looks a name up (which must resolve to a Closure, else
ErrInvalidExpressionType) and applies it exactly like LambdaApp.
*/
type FunctionApp struct {
	Name string
	Args []value.Node
}

func (n *FunctionApp) Eval(env value.Env) (value.Value, error) {
	cv, err := env.Get(n.Name)
	if err != nil {
		return value.Value{}, err
	}
	if cv.Kind() != value.KindClosure {
		return value.Value{}, util.NewErrorf(util.ErrInvalidExpressionType,
			"cannot call %q: not a closure (%v)", n.Name, cv.TypeName())
	}
	return applyClosure(env, cv.Closure(), n.Args)
}

func applyClosure(callerEnv value.Env, clos *value.Closure, argExprs []value.Node) (value.Value, error) {
	args := make([]value.Value, len(argExprs))
	for i, a := range argExprs {
		av, err := a.Eval(callerEnv)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = av
	}
	return InvokeClosure(clos, args)
}

/*
InvokeClosure applies an already-evaluated Closure to an already-evaluated
argument list. Exported for builtins (arraysg, generic apply) that call a
closure value they hold rather than one spelled out as an argument
expression in the call site.
*/
func InvokeClosure(clos *value.Closure, args []value.Value) (value.Value, error) {
	if len(args) != len(clos.Params) {
		return value.Value{}, util.NewErrorf(util.ErrInvalidArgsSize,
			"expected %d argument(s), got %d", len(clos.Params), len(args))
	}

	callEnv := clos.Env.NewChild()
	for i, p := range clos.Params {
		callEnv.Bind(p, args[i])
	}

	return clos.Body.Eval(callEnv)
}

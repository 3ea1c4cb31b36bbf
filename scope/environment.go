/*
Package scope implements the lexical scope chain ishlang's evaluator runs
against: a node owning its own name -> Value bindings with an optional
parent link. Modeled on github.com/krotik/ecal/scope's varsScope, minus the
dotted container-path addressing and locking that are specific to ECAL's
concurrent rule engine - ishlang's evaluator is single-threaded and
cooperative (member access goes through memget/memset instead).
*/
package scope

import (
	"fmt"

	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
Environment is a single scope node: its own bindings plus a parent link.
A name is defined at most once per node; Set walks the parent chain to
mutate the nearest existing binding; Get walks the chain to find one.
*/
type Environment struct {
	name    string
	storage map[string]value.Value
	parent  *Environment
}

/*
New creates a new, parentless root environment.
*/
func New() *Environment {
	return &Environment{name: "global", storage: make(map[string]value.Value)}
}

/*
NewNamed creates a new, parentless root environment with the given name
(used for module diagnostics).
*/
func NewNamed(name string) *Environment {
	return &Environment{name: name, storage: make(map[string]value.Value)}
}

/*
NewChild creates a new child scope of this environment.
*/
func (e *Environment) NewChild() value.Env {
	return &Environment{name: e.name, storage: make(map[string]value.Value), parent: e}
}

/*
Name returns this environment's name.
*/
func (e *Environment) Name() string { return e.name }

/*
Parent returns the parent environment, or nil for a root environment.
*/
func (e *Environment) Parent() *Environment { return e.parent }

/*
Define binds a new name in this scope. Fails with ErrDuplicateDef if name
is already bound directly in this scope.
*/
func (e *Environment) Define(name string, v value.Value) error {
	if _, ok := e.storage[name]; ok {
		return util.NewErrorf(util.ErrDuplicateDef, "symbol %q is already defined", name)
	}
	e.storage[name] = v
	return nil
}

/*
Set mutates the nearest existing binding for name, walking the parent
chain. Fails with ErrUnknownSymbol if no such binding exists anywhere on
the chain.
*/
func (e *Environment) Set(name string, v value.Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.storage[name]; ok {
			env.storage[name] = v
			return nil
		}
	}
	return util.NewErrorf(util.ErrUnknownSymbol, "symbol %q is not defined", name)
}

/*
Get looks up name, walking the parent chain. Fails with ErrUnknownSymbol if
no such binding exists.
*/
func (e *Environment) Get(name string) (value.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.storage[name]; ok {
			return v, nil
		}
	}
	return value.Value{}, util.NewErrorf(util.ErrUnknownSymbol, "symbol %q is not defined", name)
}

/*
Exists reports whether name is bound in this scope or any parent.
*/
func (e *Environment) Exists(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.storage[name]; ok {
			return true
		}
	}
	return false
}

/*
Bind defines-or-overwrites name directly in this scope, bypassing the
once-only rule Define enforces. Used by the module system to install
imported bindings idempotently.
*/
func (e *Environment) Bind(name string, v value.Value) {
	e.storage[name] = v
}

/*
Bindings returns a shallow snapshot of the names bound directly in this
scope, not including parents.
*/
func (e *Environment) Bindings() map[string]value.Value {
	out := make(map[string]value.Value, len(e.storage))
	for k, v := range e.storage {
		out[k] = v
	}
	return out
}

/*
String returns a debug representation of this environment and its parents,
in the same vein as ECAL's varsScope.String().
*/
func (e *Environment) String() string {
	s := fmt.Sprintf("%s {\n", e.name)
	for k, v := range e.storage {
		s += fmt.Sprintf("    %s : %v\n", k, v)
	}
	s += "}"
	if e.parent != nil {
		s += "\n" + e.parent.String()
	}
	return s
}

package ast

import "github.com/krotik/ishlang/value"

/*
ImportModule loads (or reuses the cached load of) Name and copies every one
of its top-level bindings into the current environment under the prefix
"<asName|Name>.". Delegates to Loader - the module store, wired in by the
root package at parse time - rather than calling the module package
directly to avoid an ast <-> module import cycle.
*/
type ImportModule struct {
	Name   string
	AsName string
	Loader value.ModuleLoader
}

func (n *ImportModule) Eval(env value.Env) (value.Value, error) {
	if err := n.Loader.Import(env, n.Name, n.AsName); err != nil {
		return value.Value{}, err
	}
	return value.Null, nil
}

/*
FromModuleImport loads (or reuses the cached load of) Name and copies each
listed binding, individually aliased, into the current environment.
*/
type FromModuleImport struct {
	Name    string
	Aliases []value.Alias
	Loader  value.ModuleLoader
}

func (n *FromModuleImport) Eval(env value.Env) (value.Value, error) {
	if err := n.Loader.FromImport(env, n.Name, n.Aliases); err != nil {
		return value.Value{}, err
	}
	return value.Null, nil
}

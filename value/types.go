package value

/*
Node is a parsed AST expression. Given an environment it evaluates to a
Value or a typed domain error. Declared here - rather than in the ast
package that implements it, or the scope package that supplies the
Env it is evaluated against - to avoid an import cycle: ast needs Env,
scope needs Value, and both would need Node if it lived in either.
*/
type Node interface {
	Eval(env Env) (Value, error)
}

/*
Env models a lexical scope: a name -> Value map with an optional parent.
Implemented by *scope.Environment; described here for the same reason as
Node above.
*/
type Env interface {

	/*
		NewChild creates a fresh child scope of this one.
	*/
	NewChild() Env

	/*
		Define binds a new name in this scope. Fails with ErrDuplicateDef if
		the name is already bound in this scope (not a parent).
	*/
	Define(name string, v Value) error

	/*
		Set mutates the nearest existing binding for name, walking the parent
		chain. Fails with ErrUnknownSymbol if no such binding exists.
	*/
	Set(name string, v Value) error

	/*
		Get looks up name, walking the parent chain. Fails with
		ErrUnknownSymbol if no such binding exists.
	*/
	Get(name string) (Value, error)

	/*
		Exists reports whether name is bound in this scope or a parent.
	*/
	Exists(name string) bool

	/*
		Bind defines-or-overwrites name in this scope directly, without the
		once-only rule Define enforces. Used by the module system to install
		imported bindings, which must be idempotent across repeated imports.
	*/
	Bind(name string, v Value)

	/*
		Bindings returns a shallow snapshot of the names bound directly in
		this scope (not its parents). Used by the module system to copy a
		loaded module's top-level bindings into an importing scope.
	*/
	Bindings() map[string]Value
}

/*
Alias is one entry of a "from module import name [as alias] ..." list.
*/
type Alias struct {
	Name string
	As   string
}

/*
ModuleLoader resolves and installs module bindings into an environment. The
ImportModule and FromModuleImport AST nodes delegate to an implementation of
this interface rather than to the module package directly, which would
otherwise create an import cycle (module depends on the parser, which
depends on ast, which would depend back on module).
*/
type ModuleLoader interface {

	/*
		Import loads (or reuses the cached load of) moduleName and copies
		every one of its top-level bindings into env under the prefix
		"<asName|moduleName>.<name>".
	*/
	Import(env Env, moduleName string, asName string) error

	/*
		FromImport loads (or reuses the cached load of) moduleName and
		copies the listed bindings into env, one at a time, under each
		alias's As name (or its Name if As is empty).
	*/
	FromImport(env Env, moduleName string, names []Alias) error
}

/*
 * ishlang
 *
 * Core subsystems of a small S-expression based scripting language.
 */

/*
Package ishlang is the embedding surface for the language: given source
text or a file, it parses it into AST forms and evaluates each one in a
shared top-level environment, exactly the "(a) read source and feed
parsed expressions to a callback, (b) an evaluator the callback invokes"
contract spec §1 describes. Modeled on
github.com/krotik/ecal/examples/embedding/main.go's construction order -
logger, import locator/module store, runtime environment, then
parse-then-evaluate - minus the interpreter/engine/stdlib machinery that
example wires for sinks and rules, which have no ishlang equivalent.
*/
package ishlang

import (
	"github.com/krotik/ishlang/module"
	"github.com/krotik/ishlang/parser"
	"github.com/krotik/ishlang/scope"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
Interpreter holds one program's top-level environment and the module
store its import/from-import forms resolve against.
*/
type Interpreter struct {
	Env    value.Env
	Store  *module.Store
	Logger util.Logger
}

/*
Option configures a new Interpreter before its module Store is built.
*/
type Option func(*options)

type options struct {
	moduleRoot string
	logger     util.Logger
}

/*
WithModuleRoot sets the directory module names are resolved relative to
(in addition to ISHLANG_MODULE_PATH, always consulted). Defaults to the
current working directory.
*/
func WithModuleRoot(root string) Option {
	return func(o *options) { o.moduleRoot = root }
}

/*
WithLogger installs a logger the module store reports load activity to.
Defaults to a NullLogger.
*/
func WithLogger(logger util.Logger) Option {
	return func(o *options) { o.logger = logger }
}

/*
New creates an Interpreter with a fresh top-level environment and module
store.
*/
func New(opts ...Option) *Interpreter {
	o := &options{moduleRoot: "."}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = util.NewNullLogger()
	}

	return &Interpreter{
		Env:    scope.New(),
		Store:  module.NewStore(o.moduleRoot, o.logger),
		Logger: o.logger,
	}
}

/*
Eval parses source (named by sourceName, for error messages) and
evaluates each top-level form in the interpreter's environment in order,
returning the last form's value - or Null if source was empty. The first
parse or evaluation error aborts and is returned.
*/
func (it *Interpreter) Eval(sourceName, source string) (value.Value, error) {
	p := parser.New(sourceName, it.Store)

	result := value.Null
	var evalErr error
	cb := func(n value.Node) error {
		v, err := n.Eval(it.Env)
		if err != nil {
			evalErr = err
			return err
		}
		result = v
		return nil
	}

	if err := p.ReadMulti(source+"\n", cb); err != nil {
		if evalErr != nil {
			return value.Value{}, evalErr
		}
		return value.Value{}, err
	}
	return result, nil
}

/*
EvalFile parses and evaluates path's top-level forms in order, in the
interpreter's environment, returning the last form's value.
*/
func (it *Interpreter) EvalFile(path string) (value.Value, error) {
	result := value.Null
	var evalErr error

	err := parser.ReadFile(path, it.Store, func(n value.Node) error {
		v, err := n.Eval(it.Env)
		if err != nil {
			evalErr = err
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		if evalErr != nil {
			return value.Value{}, evalErr
		}
		return value.Value{}, err
	}
	return result, nil
}

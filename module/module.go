/*
 * ishlang
 *
 * Core subsystems of a small S-expression based scripting language.
 */

/*
Package module implements the ishlang module loader: resolving a bare
module name to a ".ish" file under a search path, loading it exactly
once into its own top-level environment, and installing its bindings
into an importing environment on import/from-import. Grounded on
github.com/krotik/ecal/util/import.go's FileImportLocator (root-relative
resolution, isSubpath safety check).
*/
package module

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/krotik/common/fileutil"
	"github.com/krotik/ishlang/config"
	"github.com/krotik/ishlang/parser"
	"github.com/krotik/ishlang/scope"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

/*
Module is one loaded source file: its name, the path it was resolved to,
and its own top-level environment (populated by evaluating its body
exactly once).
*/
type Module struct {
	Name   string
	Path   string
	Env    value.Env
	Loaded bool
}

/*
Store resolves module names against a root directory plus any additional
directories named by ISHLANG_MODULE_PATH, and caches every module it
loads so repeated imports are idempotent and side-effect-free after the
first. One Store instance implements value.ModuleLoader for every
ast.ImportModule/ast.FromModuleImport node the parser building under it
constructs.
*/
type Store struct {
	Root        string
	SearchPaths []string

	modules map[string]*Module
	logger  util.Logger
}

/*
NewStore creates a Store rooted at root. Additional search directories are
read from the ISHLANG_MODULE_PATH environment variable, colon-delimited
(os.PathListSeparator), per spec §4.4. A nil logger defaults to a
NullLogger.
*/
func NewStore(root string, logger util.Logger) *Store {
	if logger == nil {
		logger = util.NewNullLogger()
	}
	s := &Store{Root: root, modules: make(map[string]*Module), logger: logger}
	if raw := os.Getenv(config.SearchPathEnvVar); raw != "" {
		s.SearchPaths = strings.Split(raw, string(os.PathListSeparator))
	}
	return s
}

/*
isSubpath checks if sub is a child path of root, exactly as ECAL's
FileImportLocator uses it to keep resolved imports from escaping the code
root via "../" traversal.
*/
func isSubpath(root, sub string) (bool, error) {
	rel, err := filepath.Rel(root, sub)
	return err == nil &&
		!strings.HasPrefix(rel, ".."+string(os.PathSeparator)) &&
		rel != "..", err
}

/*
resolve finds the file backing a module name: first under Root (subject
to the isSubpath safety check), then under each of SearchPaths in order.
*/
func (s *Store) resolve(name string) (string, error) {
	fname := name + config.SourceExtension

	if s.Root != "" {
		cand := filepath.Clean(filepath.Join(s.Root, fname))
		if ok, err := isSubpath(s.Root, cand); err == nil && ok {
			if exists, _ := fileutil.PathExists(cand); exists {
				return cand, nil
			}
		}
	}

	for _, dir := range s.SearchPaths {
		cand := filepath.Join(dir, fname)
		if exists, _ := fileutil.PathExists(cand); exists {
			return cand, nil
		}
	}

	return "", util.NewErrorf(util.ErrUnknownFile, "cannot resolve module %q", name)
}

/*
getOrLoad returns the cached Module for name, loading it from disk on
first reference. The module is registered in the cache before its body is
evaluated, so a module that (directly or indirectly) imports itself finds
a partially-populated but non-nil entry instead of looping forever.
*/
func (s *Store) getOrLoad(name string) (*Module, error) {
	if m, ok := s.modules[name]; ok {
		return m, nil
	}

	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	m := &Module{Name: name, Path: path, Env: scope.NewNamed(name)}
	s.modules[name] = m

	err = parser.ReadFile(path, s, func(n value.Node) error {
		_, evalErr := n.Eval(m.Env)
		return evalErr
	})
	if err != nil {
		delete(s.modules, name)
		return nil, util.NewErrorf(util.ErrModuleError, "failed to load module %q: %v", name, err)
	}

	m.Loaded = true
	s.logger.LogInfo("module: loaded ", name, " from ", path)
	return m, nil
}

/*
Import loads moduleName and copies every one of its top-level bindings
into env, each under the prefix "<asName|moduleName>.".
*/
func (s *Store) Import(env value.Env, moduleName string, asName string) error {
	m, err := s.getOrLoad(moduleName)
	if err != nil {
		return err
	}

	prefix := moduleName
	if asName != "" {
		prefix = asName
	}
	for name, v := range m.Env.Bindings() {
		env.Bind(prefix+"."+name, v)
	}
	return nil
}

/*
FromImport loads moduleName and copies each listed binding into env,
individually aliased. An unknown binding name fails with ErrUnknownSymbol.
*/
func (s *Store) FromImport(env value.Env, moduleName string, names []value.Alias) error {
	m, err := s.getOrLoad(moduleName)
	if err != nil {
		return err
	}

	bindings := m.Env.Bindings()
	for _, a := range names {
		v, ok := bindings[a.Name]
		if !ok {
			return util.NewErrorf(util.ErrUnknownSymbol, "module %q has no binding %q", moduleName, a.Name)
		}
		asName := a.As
		if asName == "" {
			asName = a.Name
		}
		env.Bind(asName, v)
	}
	return nil
}

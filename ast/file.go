package ast

import (
	"bufio"
	"io"
	"os"

	"github.com/krotik/common/fileutil"
	"github.com/krotik/ishlang/util"
	"github.com/krotik/ishlang/value"
)

func evalFile(env value.Env, n value.Node) (value.Value, *value.File, error) {
	v, err := n.Eval(env)
	if err != nil {
		return value.Value{}, nil, err
	}
	if v.Kind() != value.KindFile {
		return value.Value{}, nil, util.NewErrorf(util.ErrInvalidOperandType, "expected a file, got %v", v.TypeName())
	}
	return v, v.File(), nil
}

func requireOpen(f *value.File) error {
	if !f.Open {
		return util.NewErrorf(util.ErrFileIOError, "file %q is closed", f.Name)
	}
	return nil
}

/*
FOpen opens Path in Mode ('r' read, 'w' write/truncate, 'a' append) and
returns a File handle.
*/
type FOpen struct {
	Path, Mode value.Node
}

func (n *FOpen) Eval(env value.Env) (value.Value, error) {
	_, path, err := evalString(env, n.Path)
	if err != nil {
		return value.Value{}, err
	}
	modeV, err := n.Mode.Eval(env)
	if err != nil {
		return value.Value{}, err
	}
	if modeV.Kind() != value.KindChar {
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "fopen mode must be a char, got %v", modeV.TypeName())
	}
	mode := modeV.Char()

	var flags int
	switch mode {
	case 'r':
		flags = os.O_RDONLY
	case 'w':
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case 'a':
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return value.Value{}, util.NewErrorf(util.ErrInvalidOperandType, "fopen mode must be 'r', 'w' or 'a', got %q", mode)
	}

	fh, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return value.Value{}, util.NewErrorf(util.ErrFileIOError, "fopen %q failed: %v", path, err)
	}
	return value.NewFile(path, mode, fh), nil
}

/*
FClose closes an open file handle; closing an already-closed handle is a
no-op.
*/
type FClose struct{ Expr value.Node }

func (n *FClose) Eval(env value.Env) (value.Value, error) {
	fv, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if f.Open {
		if err := f.Handle.Close(); err != nil {
			return value.Value{}, util.NewErrorf(util.ErrFileIOError, "fclose %q failed: %v", f.Name, err)
		}
		f.Open = false
		f.Reader = nil
	}
	return fv, nil
}

/*
FFlush flushes pending writes to an open file.
*/
type FFlush struct{ Expr value.Node }

func (n *FFlush) Eval(env value.Env) (value.Value, error) {
	fv, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if err := requireOpen(f); err != nil {
		return value.Value{}, err
	}
	if err := f.Handle.Sync(); err != nil {
		return value.Value{}, util.NewErrorf(util.ErrFileIOError, "fflush %q failed: %v", f.Name, err)
	}
	return fv, nil
}

/*
FIsOpen reports whether a file handle is currently open.
*/
type FIsOpen struct{ Expr value.Node }

func (n *FIsOpen) Eval(env value.Env) (value.Value, error) {
	_, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBool(f.Open), nil
}

/*
FName returns a file handle's path.
*/
type FName struct{ Expr value.Node }

func (n *FName) Eval(env value.Env) (value.Value, error) {
	_, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewString(f.Name), nil
}

/*
FMode returns a file handle's open mode as a char.
*/
type FMode struct{ Expr value.Node }

func (n *FMode) Eval(env value.Env) (value.Value, error) {
	_, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewChar(f.Mode), nil
}

/*
FRead reads the file's entire remaining content as a string.
*/
type FRead struct{ Expr value.Node }

func (n *FRead) Eval(env value.Env) (value.Value, error) {
	_, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if err := requireOpen(f); err != nil {
		return value.Value{}, err
	}
	b, err := io.ReadAll(f.Handle)
	if err != nil {
		return value.Value{}, util.NewErrorf(util.ErrFileIOError, "fread %q failed: %v", f.Name, err)
	}
	return value.NewString(string(b)), nil
}

/*
FReadLn reads one line from the file, without its trailing newline. Reading
past end-of-file fails with ErrFileIOError.
*/
type FReadLn struct{ Expr value.Node }

func (n *FReadLn) Eval(env value.Env) (value.Value, error) {
	_, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if err := requireOpen(f); err != nil {
		return value.Value{}, err
	}
	if f.Reader == nil {
		f.Reader = bufio.NewReader(f.Handle)
	}
	line, err := f.Reader.ReadString('\n')
	if err != nil && line == "" {
		return value.Value{}, util.NewErrorf(util.ErrFileIOError, "freadln %q failed: %v", f.Name, err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return value.NewString(line), nil
}

/*
FWrite writes Text to the file with no trailing newline.
*/
type FWrite struct {
	Expr, Text value.Node
}

func (n *FWrite) Eval(env value.Env) (value.Value, error) {
	fv, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if err := requireOpen(f); err != nil {
		return value.Value{}, err
	}
	_, text, err := evalString(env, n.Text)
	if err != nil {
		return value.Value{}, err
	}
	if _, err := f.Handle.WriteString(text); err != nil {
		return value.Value{}, util.NewErrorf(util.ErrFileIOError, "fwrite %q failed: %v", f.Name, err)
	}
	return fv, nil
}

/*
FWriteLn writes Text to the file followed by a newline.
*/
type FWriteLn struct {
	Expr, Text value.Node
}

func (n *FWriteLn) Eval(env value.Env) (value.Value, error) {
	fv, f, err := evalFile(env, n.Expr)
	if err != nil {
		return value.Value{}, err
	}
	if err := requireOpen(f); err != nil {
		return value.Value{}, err
	}
	_, text, err := evalString(env, n.Text)
	if err != nil {
		return value.Value{}, err
	}
	if _, err := f.Handle.WriteString(text + "\n"); err != nil {
		return value.Value{}, util.NewErrorf(util.ErrFileIOError, "fwriteln %q failed: %v", f.Name, err)
	}
	return fv, nil
}

/*
FExists reports whether Path names a file on disk, backed by
common/fileutil.PathExists - the same existence check the module loader
uses to resolve "<name>.ish" search paths.
*/
type FExists struct{ Path value.Node }

func (n *FExists) Eval(env value.Env) (value.Value, error) {
	_, path, err := evalString(env, n.Path)
	if err != nil {
		return value.Value{}, err
	}
	ok, _ := fileutil.PathExists(path)
	return value.NewBool(ok), nil
}

/*
FRemove deletes the file at Path.
*/
type FRemove struct{ Path value.Node }

func (n *FRemove) Eval(env value.Env) (value.Value, error) {
	_, path, err := evalString(env, n.Path)
	if err != nil {
		return value.Value{}, err
	}
	if err := os.Remove(path); err != nil {
		return value.Value{}, util.NewErrorf(util.ErrFileIOError, "fremove %q failed: %v", path, err)
	}
	return value.NewBool(true), nil
}

/*
readAllLines reads every remaining line of an open file (for foreach),
leaving the handle exhausted. The returned cleanup function is always nil:
the read position is not restored.
*/
func readAllLines(f *value.File) ([]value.Value, func(), error) {
	if err := requireOpen(f); err != nil {
		return nil, nil, err
	}
	if f.Reader == nil {
		f.Reader = bufio.NewReader(f.Handle)
	}
	var lines []value.Value
	for {
		line, err := f.Reader.ReadString('\n')
		if line != "" {
			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}
			lines = append(lines, value.NewString(line))
		}
		if err != nil {
			break
		}
	}
	return lines, nil, nil
}

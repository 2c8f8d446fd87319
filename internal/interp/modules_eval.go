package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/modules"
	"github.com/xenly-lang/xenly/internal/parser"
	"github.com/xenly-lang/xenly/internal/value"
)

// NativeModuleValue is what `import "math";` binds in scope: a handle
// onto the registered native module, dispatched through in evalMethodCall.
type NativeModuleValue struct {
	Name   string
	Module *modules.Module
}

func (m *NativeModuleValue) Type() string   { return "module" }
func (m *NativeModuleValue) String() string { return "<native module " + m.Name + ">" }

// UserModuleValue is what `import "./util.xe";` binds in scope: a handle
// onto a loaded .xe file's flat export table.
type UserModuleValue struct {
	Name    string
	Exports map[string]value.Value
}

func (m *UserModuleValue) Type() string   { return "module" }
func (m *UserModuleValue) String() string { return "<module " + m.Name + ">" }

// NativeFunction wraps a single native-module callback so a selective or
// wildcard `from "mod" import ...` can copy it into scope as an ordinary
// callable value, the same shape a plain Function has at a call site.
type NativeFunction struct {
	ModuleName string
	FuncName   string
	Fn         modules.NativeFunc
}

func (f *NativeFunction) Type() string { return "function" }
func (f *NativeFunction) String() string {
	return "<native fn " + f.ModuleName + "." + f.FuncName + ">"
}

func moduleBaseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".xe")
}

// evalImport implements all four import forms, resolved through a fixed
// priority: a registered native module first, a loaded-or-loadable user
// `.xe` file otherwise.
func (i *Interpreter) evalImport(n *ast.ImportStatement) value.Value {
	if mod, ok := i.natives.Lookup(n.Path); ok {
		return i.bindNativeModule(n, mod)
	}
	mod, errVal := i.loadUserModule(n, n.Path)
	if errVal != nil {
		return errVal
	}
	return i.bindUserModule(n, mod)
}

func (i *Interpreter) bindNativeModule(n *ast.ImportStatement, mod *modules.Module) value.Value {
	switch {
	case n.Wildcard:
		for name, fn := range mod.Functions {
			i.env.Define(name, &NativeFunction{ModuleName: mod.Name, FuncName: name, Fn: fn})
		}
	case len(n.Names) > 0:
		for _, name := range n.Names {
			fn, ok := mod.Functions[name]
			if !ok {
				return i.raise(errors.Resolution, n, "module '%s' has no export '%s'", mod.Name, name)
			}
			i.env.Define(name, &NativeFunction{ModuleName: mod.Name, FuncName: name, Fn: fn})
		}
	default:
		name := n.Alias
		if name == "" {
			name = mod.Name
		}
		i.env.Define(name, &NativeModuleValue{Name: mod.Name, Module: mod})
	}
	return value.NullValue
}

func (i *Interpreter) bindUserModule(n *ast.ImportStatement, mod *userModule) value.Value {
	switch {
	case n.Wildcard:
		for name, v := range mod.exports {
			i.env.Define(name, v)
		}
	case len(n.Names) > 0:
		for _, name := range n.Names {
			v, ok := mod.exports[name]
			if !ok {
				return i.raise(errors.Resolution, n, "module '%s' has no export '%s'", mod.name, name)
			}
			i.env.Define(name, v)
		}
	default:
		name := n.Alias
		if name == "" {
			name = mod.name
		}
		i.env.Define(name, &UserModuleValue{Name: mod.name, Exports: mod.exports})
	}
	return value.NullValue
}

// loadUserModule resolves path against the interpreter's current
// sourceDir, parses and evaluates it at most once per resolved absolute
// path, and detects circular imports via loadStack.
func (i *Interpreter) loadUserModule(node ast.Node, path string) (*userModule, value.Value) {
	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(i.sourceDir, absPath)
	}
	if !strings.HasSuffix(absPath, ".xe") {
		absPath += ".xe"
	}
	absPath = filepath.Clean(absPath)

	if mod, ok := i.loaded[absPath]; ok {
		return mod, nil
	}
	for _, p := range i.loadStack {
		if p == absPath {
			return nil, i.raise(errors.Resolution, node, "circular import detected: %s", absPath)
		}
	}

	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, i.raise(errors.Resolution, node, "cannot load module '%s': %s", path, err.Error())
	}

	l := lexer.New(string(src))
	p := parser.New(l)
	program := p.ParseProgram()
	if diags := p.Errors(); len(diags) > 0 {
		fmt.Fprintln(i.errOut, errors.FormatAll(diags, i.color))
		i.hadError = true
		return nil, i.raise(errors.Parse, node, "module '%s' failed to parse", path)
	}

	// Loading a module replaces sourceDir and installs a fresh exports
	// table, but evaluates the body in the shared global environment so
	// its top-level declarations cross-reference normally.
	i.loadStack = append(i.loadStack, absPath)
	prevEnv, prevDir, prevExports := i.env, i.sourceDir, i.exports
	i.env = i.global
	i.sourceDir = filepath.Dir(absPath)
	i.exports = make(map[string]value.Value)

	i.runTopLevel(program.Statements)

	mod := &userModule{
		name:    moduleBaseName(path),
		path:    absPath,
		exports: i.exports,
		program: program,
	}

	i.loadStack = i.loadStack[:len(i.loadStack)-1]
	i.env, i.sourceDir, i.exports = prevEnv, prevDir, prevExports
	i.loaded[absPath] = mod
	return mod, nil
}

// evalExport runs the wrapped declaration in the current scope, then,
// when a module is currently loading (i.exports != nil), copies the
// newly bound name into its export table.
func (i *Interpreter) evalExport(n *ast.ExportStatement) value.Value {
	result := i.Eval(n.Declaration)
	if isSignalOrError(result) {
		return result
	}

	var name string
	switch d := n.Declaration.(type) {
	case *ast.FunctionDeclStatement:
		name = d.Name
	case *ast.ClassDeclStatement:
		name = d.Name
	default:
		return i.raise(errors.Runtime, n, "export requires a function or class declaration")
	}

	if i.exports != nil {
		if v, ok := i.env.Get(name); ok {
			i.exports[name] = v
		}
	}
	return value.NullValue
}

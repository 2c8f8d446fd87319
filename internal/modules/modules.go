// Package modules implements Xenly's native module registry: the
// built-in `math`, `string`, and `io` modules a script reaches with
// `import "math";` and then calls as `math.sqrt(16)`.
//
// Native modules are plain Go functions operating on value.Value. The
// interpreter's `mod.fn(args)` call site reaches them through
// Module.Call; a loaded `.xe` script's exported functions go through a
// separate branch of that call site.
package modules

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/xenly-lang/xenly/internal/value"
)

// NativeFunc is a single native module function.
type NativeFunc func(args []value.Value) (value.Value, error)

// Module is a named table of native functions.
type Module struct {
	Name      string
	Functions map[string]NativeFunc
}

// Registry looks up native modules by name.
type Registry struct {
	modules map[string]*Module
	out     func(string)
	in      func() (string, error)
}

// NewRegistry builds the registry with math, string, and io pre-registered.
func NewRegistry() *Registry {
	r := &Registry{modules: make(map[string]*Module)}
	r.register(r.mathModule())
	r.register(r.stringModule())
	r.register(r.ioModule())
	return r
}

func (r *Registry) register(m *Module) { r.modules[m.Name] = m }

// Lookup returns the native module registered under name, if any.
func (r *Registry) Lookup(name string) (*Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Call invokes fn on module m with args, returning a Xenly runtime error
// (as a Go error, not a value.Value — the interpreter wraps it) if the
// function doesn't exist.
func (m *Module) Call(fn string, args []value.Value) (value.Value, error) {
	f, ok := m.Functions[fn]
	if !ok {
		return nil, fmt.Errorf("module %q has no function %q", m.Name, fn)
	}
	return f(args)
}

func argNumber(args []value.Value, idx int) (float64, bool) {
	if idx >= len(args) {
		return 0, false
	}
	n, ok := args[idx].(*value.Number)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func argString(args []value.Value, idx int) (string, bool) {
	if idx >= len(args) {
		return "", false
	}
	s, ok := args[idx].(*value.String)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// mathModule exposes the arithmetic function catalog shared with the
// compiled runtime's math module.
func (r *Registry) mathModule() *Module {
	unary := func(f func(float64) float64) NativeFunc {
		return func(args []value.Value) (value.Value, error) {
			x, ok := argNumber(args, 0)
			if !ok {
				return value.NewNumber(0), nil
			}
			return value.NewNumber(f(x)), nil
		}
	}
	return &Module{
		Name: "math",
		Functions: map[string]NativeFunc{
			"abs":   unary(math.Abs),
			"sqrt":  unary(math.Sqrt),
			"floor": unary(math.Floor),
			"ceil":  unary(math.Ceil),
			"round": unary(math.Round),
			"sin":   unary(math.Sin),
			"cos":   unary(math.Cos),
			"log":   unary(math.Log),
			"pow": func(args []value.Value) (value.Value, error) {
				x, _ := argNumber(args, 0)
				y, _ := argNumber(args, 1)
				return value.NewNumber(math.Pow(x, y)), nil
			},
			"max": func(args []value.Value) (value.Value, error) {
				x, _ := argNumber(args, 0)
				y, _ := argNumber(args, 1)
				return value.NewNumber(math.Max(x, y)), nil
			},
			"min": func(args []value.Value) (value.Value, error) {
				x, _ := argNumber(args, 0)
				y, _ := argNumber(args, 1)
				return value.NewNumber(math.Min(x, y)), nil
			},
			"random": func(args []value.Value) (value.Value, error) {
				return value.NewNumber(rand.Float64()), nil
			},
		},
	}
}

func (r *Registry) stringModule() *Module {
	return &Module{
		Name: "string",
		Functions: map[string]NativeFunc{
			"len": func(args []value.Value) (value.Value, error) {
				s, ok := argString(args, 0)
				if !ok {
					return value.NewNumber(0), nil
				}
				return value.NewNumber(float64(len(s))), nil
			},
			"upper": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				return value.NewString(strings.ToUpper(s)), nil
			},
			"lower": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				return value.NewString(strings.ToLower(s)), nil
			},
			"contains": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				sub, _ := argString(args, 1)
				return value.NewBool(strings.Contains(s, sub)), nil
			},
			"repeat": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				n, _ := argNumber(args, 1)
				if n <= 0 {
					return value.NewString(""), nil
				}
				return value.NewString(strings.Repeat(s, int(n))), nil
			},
			"reverse": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				runes := []rune(s)
				for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
					runes[i], runes[j] = runes[j], runes[i]
				}
				return value.NewString(string(runes)), nil
			},
			"trim": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				return value.NewString(strings.TrimSpace(s)), nil
			},
			"replace": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				old, _ := argString(args, 1)
				nw, _ := argString(args, 2)
				return value.NewString(strings.ReplaceAll(s, old, nw)), nil
			},
			"substr": func(args []value.Value) (value.Value, error) {
				s, _ := argString(args, 0)
				start, _ := argNumber(args, 1)
				runes := []rune(s)
				st := int(start)
				if st < 0 {
					st = 0
				}
				if st >= len(runes) {
					return value.NewString(""), nil
				}
				count := len(runes) - st
				if len(args) >= 3 {
					if n, ok := argNumber(args, 2); ok {
						count = int(n)
					}
				}
				if count < 0 {
					count = 0
				}
				if st+count > len(runes) {
					count = len(runes) - st
				}
				return value.NewString(string(runes[st : st+count])), nil
			},
		},
	}
}

func (r *Registry) ioModule() *Module {
	return &Module{
		Name: "io",
		Functions: map[string]NativeFunc{
			"write": func(args []value.Value) (value.Value, error) {
				for _, a := range args {
					r.writer()(toDisplayString(a))
				}
				return value.NullValue, nil
			},
			"writeln": func(args []value.Value) (value.Value, error) {
				parts := make([]string, len(args))
				for i, a := range args {
					parts[i] = toDisplayString(a)
				}
				r.writer()(strings.Join(parts, " ") + "\n")
				return value.NullValue, nil
			},
			"read": func(args []value.Value) (value.Value, error) {
				if r.in == nil {
					return value.NewString(""), nil
				}
				line, err := r.in()
				if err != nil {
					return value.NewString(""), nil
				}
				return value.NewString(line), nil
			},
		},
	}
}

// SetInput wires the io module's read function to an actual source. The
// interpreter calls this once at startup with its configured stdin reader.
func (r *Registry) SetInput(f func() (string, error)) { r.in = f }

// writer is overridden by SetOutput; defaults to a no-op so unit tests
// exercising the function table directly don't need a real writer.
func (r *Registry) writer() func(string) {
	if r.out == nil {
		return func(string) {}
	}
	return r.out
}

// SetOutput wires the io module's write/writeln to an actual sink. The
// interpreter calls this once at startup with its configured stdout.
func (r *Registry) SetOutput(w func(string)) { r.out = w }

func toDisplayString(v value.Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

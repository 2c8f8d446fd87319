package interp

import (
	"fmt"

	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/environment"
	"github.com/xenly-lang/xenly/internal/value"
)

// Function is a user-defined closure: a named or anonymous fn literal
// bound to the environment active where it was declared. Every Xenly
// function is a closure, including class methods (whose Closure is the
// environment of the class declaration; `this` is bound per call in the
// call frame).
type Function struct {
	Name       string
	Parameters []*ast.Param
	Body       *ast.BlockStatement
	Closure    *environment.Environment
	IsAsync    bool
}

func (f *Function) Type() string { return "function" }
func (f *Function) String() string {
	if f.Name != "" {
		return "<fn " + f.Name + ">"
	}
	return "<anonymous fn>"
}

// Class is runtime class metadata: a method table and a link to the
// parent class for single inheritance.
type Class struct {
	Name    string
	Parent  *Class
	Methods map[string]*Function
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return "<class " + c.Name + ">" }

// LookupMethod walks the class chain (this class, then its ancestors)
// looking for name; the first hit wins, so a subclass method shadows its
// parent's.
func (c *Class) LookupMethod(name string) (*Function, *Class) {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.Methods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// IsSubclassOf reports whether c is target or descends from it — the
// semantics backing the `instanceof` operator.
func (c *Class) IsSubclassOf(target *Class) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == target {
			return true
		}
	}
	return false
}

// Instance is a heap-allocated object: a class link plus its own field
// slots. Field storage starts out empty; entries exist only once a
// property write (usually in `init`) creates them.
type Instance struct {
	Class  *Class
	Fields map[string]value.Value
}

// Type reports the generic "instance" tag; the class name itself is
// available through instanceof and String(), not through typeof.
func (o *Instance) Type() string   { return "instance" }
func (o *Instance) String() string { return fmt.Sprintf("<%s instance>", o.Class.Name) }

func (o *Instance) Get(name string) (value.Value, bool) {
	v, ok := o.Fields[name]
	return v, ok
}

func (o *Instance) Set(name string, v value.Value) {
	o.Fields[name] = v
}

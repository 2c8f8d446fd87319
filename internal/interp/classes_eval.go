package interp

import (
	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/value"
)

// evalClassDecl builds the runtime Class metadata and binds it in the
// current scope under its own name, so later `new Name(...)` and
// `extends Name` references resolve it like any other identifier.
func (i *Interpreter) evalClassDecl(n *ast.ClassDeclStatement) value.Value {
	var parent *Class
	if n.Base != "" {
		pv, ok := i.env.Get(n.Base)
		if !ok {
			return i.raise(errors.Resolution, n, "undefined base class '%s'", n.Base)
		}
		parent, ok = pv.(*Class)
		if !ok {
			return i.raise(errors.Runtime, n, "'%s' is not a class", n.Base)
		}
	}

	class := &Class{Name: n.Name, Parent: parent}
	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name] = &Function{
			Name:       m.Name,
			Parameters: m.Parameters,
			Body:       m.Body,
			Closure:    i.env,
			IsAsync:    m.IsAsync,
		}
	}
	class.Methods = methods

	i.env.Define(n.Name, class)
	return value.NullValue
}

// evalNewExpression instantiates a class: the fresh instance starts with
// an empty fields environment, then `init`, if any ancestor defines one,
// runs with `this` bound to it. The instance is the result of `new`
// regardless of what `init` returns.
func (i *Interpreter) evalNewExpression(n *ast.NewExpression) value.Value {
	classVal, ok := i.env.Get(n.ClassName)
	if !ok {
		return i.raise(errors.Resolution, n, "undefined class '%s'", n.ClassName)
	}
	class, ok := classVal.(*Class)
	if !ok {
		return i.raise(errors.Runtime, n, "'%s' is not a class", n.ClassName)
	}

	instance := &Instance{Class: class, Fields: make(map[string]value.Value)}

	args, sig := i.evalArgs(n.Arguments)
	if sig != nil {
		return sig
	}
	if fn, foundClass := class.LookupMethod("init"); fn != nil {
		extra := map[string]value.Value{"this": instance, "__class__": foundClass}
		if result := i.callFunction(n, fn, args, extra); isError(result) {
			return result
		}
	}
	return instance
}

func (i *Interpreter) evalThis(n *ast.ThisExpression) value.Value {
	v, ok := i.env.Get("this")
	if !ok {
		return i.raise(errors.Runtime, n, "'this' used outside a method")
	}
	return v
}

// evalSuperCall dispatches `super(args...)` to the parent (relative to
// the class the currently running method was found on, tracked via the
// "__class__" binding callFunction installs) class's own `init`. A
// superclass with no `init` makes the call a no-op, mirroring how a
// missing constructor never runs anything.
func (i *Interpreter) evalSuperCall(n *ast.SuperCallExpression) value.Value {
	thisVal, ok := i.env.Get("this")
	if !ok {
		return i.raise(errors.Runtime, n, "'super' used outside a method")
	}
	instance, ok := thisVal.(*Instance)
	if !ok {
		return i.raise(errors.Runtime, n, "'super' used outside a method")
	}
	classVal, ok := i.env.Get("__class__")
	if !ok {
		return i.raise(errors.Runtime, n, "'super' used outside a method")
	}
	curClass, ok := classVal.(*Class)
	if !ok || curClass.Parent == nil {
		return i.raise(errors.Runtime, n, "'%s' has no superclass", instance.Class.Name)
	}

	args, sig := i.evalArgs(n.Arguments)
	if sig != nil {
		return sig
	}
	fn, foundClass := curClass.Parent.LookupMethod("init")
	if fn == nil {
		return value.NullValue
	}
	extra := map[string]value.Value{"this": instance, "__class__": foundClass}
	return i.callFunction(n, fn, args, extra)
}

// evalMethodCall handles `object.method(args...)`. The same syntax covers
// three distinct receivers: a class instance (method dispatch through the
// class chain), a native module binding (math/string/io), and a loaded
// user `.xe` module's exported function — all one call form.
func (i *Interpreter) evalMethodCall(n *ast.MethodCallExpression) value.Value {
	obj := i.Eval(n.Object)
	if isSignalOrError(obj) {
		return obj
	}
	args, sig := i.evalArgs(n.Arguments)
	if sig != nil {
		return sig
	}

	switch o := obj.(type) {
	case *Instance:
		fn, foundClass := o.Class.LookupMethod(n.Method)
		if fn == nil {
			return i.raise(errors.Resolution, n, "'%s' has no method '%s'", o.Class.Name, n.Method)
		}
		extra := map[string]value.Value{"this": o, "__class__": foundClass}
		return i.callFunction(n, fn, args, extra)
	case *NativeModuleValue:
		result, err := o.Module.Call(n.Method, args)
		if err != nil {
			return i.raise(errors.Resolution, n, "%s", err.Error())
		}
		return result
	case *UserModuleValue:
		exported, ok := o.Exports[n.Method]
		if !ok {
			return i.raise(errors.Resolution, n, "module '%s' has no export '%s'", o.Name, n.Method)
		}
		fn, ok := exported.(*Function)
		if !ok {
			return i.raise(errors.Runtime, n, "'%s.%s' is not callable", o.Name, n.Method)
		}
		return i.callFunction(n, fn, args, nil)
	default:
		return i.raise(errors.Runtime, n, "cannot call method '%s' on a %s value", n.Method, obj.Type())
	}
}

// evalPropertyGet handles `object.name` as a value read. An unset
// instance field or undeclared module export degrades to null, the same
// non-fatal absent-data-reads-as-null behavior as out-of-range indexing.
func (i *Interpreter) evalPropertyGet(n *ast.PropertyGetExpression) value.Value {
	obj := i.Eval(n.Object)
	if isSignalOrError(obj) {
		return obj
	}
	switch o := obj.(type) {
	case *Instance:
		if v, ok := o.Get(n.Name); ok {
			return v
		}
		return value.NullValue
	case *UserModuleValue:
		if v, ok := o.Exports[n.Name]; ok {
			return v
		}
		return value.NullValue
	default:
		return i.raise(errors.Runtime, n, "cannot access property '%s' on a %s value", n.Name, obj.Type())
	}
}

func (i *Interpreter) evalPropertySet(n *ast.PropertySetStatement) value.Value {
	obj := i.Eval(n.Object)
	if isSignalOrError(obj) {
		return obj
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return i.raise(errors.Runtime, n, "cannot set property '%s' on a %s value", n.Name, obj.Type())
	}
	val := i.Eval(n.Value)
	if isSignalOrError(val) {
		return val
	}
	instance.Set(n.Name, val)
	return value.NullValue
}

// evalInstanceof implements `left instanceof Right`: false for any
// non-instance left operand rather than a runtime error, since asking
// "is this a Foo" about a number is a legitimate (if always-false) query.
func (i *Interpreter) evalInstanceof(n *ast.InstanceofExpression) value.Value {
	left := i.Eval(n.Left)
	if isSignalOrError(left) {
		return left
	}
	rightVal := i.Eval(n.Right)
	if isSignalOrError(rightVal) {
		return rightVal
	}
	target, ok := rightVal.(*Class)
	if !ok {
		return i.raise(errors.Runtime, n, "right-hand side of 'instanceof' must be a class")
	}
	instance, ok := left.(*Instance)
	if !ok {
		return value.NewBool(false)
	}
	return value.NewBool(instance.Class.IsSubclassOf(target))
}

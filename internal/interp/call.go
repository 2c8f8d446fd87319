package interp

import (
	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/environment"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/value"
)

// evalArgs evaluates a call's argument expressions left-to-right in the
// caller's environment.
func (i *Interpreter) evalArgs(exprs []ast.Expression) ([]value.Value, value.Value) {
	args := make([]value.Value, len(exprs))
	for idx, e := range exprs {
		v := i.Eval(e)
		if isSignalOrError(v) {
			return nil, v
		}
		args[idx] = v
	}
	return args, nil
}

// callFunction invokes fn with args, binding extra scope entries (e.g.
// `this`/`__class__` for a method call) on top of the fresh frame. Missing
// arguments bind to null; extra arguments beyond the declared parameter
// count are discarded.
func (i *Interpreter) callFunction(node ast.Node, fn *Function, args []value.Value, extra map[string]value.Value) value.Value {
	frame := environment.NewEnclosed(fn.Closure)
	for name, v := range extra {
		frame.Define(name, v)
	}

	for idx, param := range fn.Parameters {
		var argVal value.Value
		switch {
		case idx < len(args):
			argVal = args[idx]
		case param.Default != nil:
			prevEnv := i.env
			i.env = frame
			argVal = i.Eval(param.Default)
			i.env = prevEnv
		default:
			argVal = value.NullValue
		}
		frame.Define(param.Name, argVal)
	}

	prevEnv := i.env
	i.env = frame
	result := i.evalBlock(fn.Body.Statements)
	i.env = prevEnv

	if ret, ok := result.(*value.ReturnSignal); ok {
		return ret.Value
	}
	if isError(result) {
		return result
	}
	// Falling off the end of a function body without a `return` yields
	// null, same as any statement sequence that produces no value.
	return value.NullValue
}

// evalCallExpression handles a direct call `callee(args...)`. The callee
// must evaluate to a function value — nothing else is callable in this
// position (class instantiation goes through `new`, module calls through
// the dot form).
func (i *Interpreter) evalCallExpression(n *ast.CallExpression) value.Value {
	callee := i.Eval(n.Callee)
	if isSignalOrError(callee) {
		return callee
	}
	args, sig := i.evalArgs(n.Arguments)
	if sig != nil {
		return sig
	}
	switch fn := callee.(type) {
	case *Function:
		return i.callFunction(n, fn, args, nil)
	case *NativeFunction:
		result, err := fn.Fn(args)
		if err != nil {
			return i.raise(errors.Resolution, n, "%s", err.Error())
		}
		return result
	default:
		return i.raise(errors.Resolution, n, "value is not callable")
	}
}

func (i *Interpreter) evalFunctionDecl(n *ast.FunctionDeclStatement) value.Value {
	fn := &Function{
		Name:       n.Name,
		Parameters: n.Parameters,
		Body:       n.Body,
		Closure:    i.env,
		IsAsync:    n.IsAsync,
	}
	i.env.Define(n.Name, fn)
	return value.NullValue
}

func (i *Interpreter) evalFunctionLiteral(n *ast.FunctionLiteral) value.Value {
	fn := &Function{
		Name:       n.Name,
		Parameters: n.Parameters,
		Body:       n.Body,
		Closure:    i.env,
		IsAsync:    n.IsAsync,
	}
	if n.Name != "" {
		i.env.Define(n.Name, fn)
	}
	return fn
}

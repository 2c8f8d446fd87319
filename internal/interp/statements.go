package interp

import (
	"fmt"
	"strings"

	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/environment"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/value"
)

// evalVarDecl binds a `var name [= expr];` in the current scope:
// declarations always create a fresh entry at the current scope, never
// searching outward the way assignment does.
func (i *Interpreter) evalVarDecl(n *ast.VarDeclStatement) value.Value {
	val := i.Eval(n.Value)
	if isSignalOrError(val) {
		return val
	}
	i.env.Define(n.Name, val)
	return value.NullValue
}

// evalAssign handles plain `target = expr;` where target is an
// identifier (PropertyGetExpression and IndexExpression targets are
// rewritten to PropertySetStatement/IndexAssignStatement by the parser).
func (i *Interpreter) evalAssign(n *ast.AssignStatement) value.Value {
	val := i.Eval(n.Value)
	if isSignalOrError(val) {
		return val
	}
	ident, ok := n.Target.(*ast.Identifier)
	if !ok {
		return i.raise(errors.Runtime, n, "invalid assignment target")
	}
	if err := i.env.Set(ident.Value, val); err != nil {
		return i.raise(errors.Resolution, n, "undefined variable '%s'", ident.Value)
	}
	return value.NullValue
}

// evalCompoundAssign handles `target += expr;` and friends. The target is
// read, combined with the right-hand value using the plain operator, and
// written back — identical semantics to `target = target OP expr;`.
func (i *Interpreter) evalCompoundAssign(n *ast.CompoundAssignStatement) value.Value {
	ident, ok := n.Target.(*ast.Identifier)
	if !ok {
		return i.raise(errors.Runtime, n, "invalid compound assignment target")
	}
	current, ok := i.env.Get(ident.Value)
	if !ok {
		return i.raise(errors.Resolution, n, "undefined variable '%s'", ident.Value)
	}
	rhs := i.Eval(n.Value)
	if isSignalOrError(rhs) {
		return rhs
	}
	op := compoundBaseOp(n.Operator)
	result := i.applyBinaryOp(n, op, current, rhs)
	if isError(result) {
		return result
	}
	if err := i.env.Set(ident.Value, result); err != nil {
		return i.raise(errors.Resolution, n, "undefined variable '%s'", ident.Value)
	}
	return value.NullValue
}

func compoundBaseOp(op string) string {
	switch op {
	case "+=":
		return "+"
	case "-=":
		return "-"
	case "*=":
		return "*"
	case "/=":
		return "/"
	default:
		return op
	}
}

// evalIncDec handles postfix `target++;`/`target--;`. The property-access
// form is desugared by the parser into PropertySetStatement with a +-1
// value expression, so this only ever sees an identifier target.
func (i *Interpreter) evalIncDec(n *ast.IncDecStatement) value.Value {
	ident, ok := n.Target.(*ast.Identifier)
	if !ok {
		return i.raise(errors.Runtime, n, "invalid increment/decrement target")
	}
	current, ok := i.env.Get(ident.Value)
	if !ok {
		return i.raise(errors.Resolution, n, "undefined variable '%s'", ident.Value)
	}
	num, ok := current.(*value.Number)
	if !ok {
		return i.raise(errors.Runtime, n, "cannot increment/decrement a non-number value")
	}
	delta := 1.0
	if n.Operator == "--" {
		delta = -1.0
	}
	updated := value.NewNumber(num.Value + delta)
	_ = i.env.Set(ident.Value, updated)
	return value.NullValue
}

// evalIf evaluates the condition and runs whichever branch its
// truthiness selects.
func (i *Interpreter) evalIf(n *ast.IfStatement) value.Value {
	cond := i.Eval(n.Condition)
	if isSignalOrError(cond) {
		return cond
	}
	if value.Truthy(cond) {
		return i.evalBlockInScope(n.Consequence)
	}
	if n.Alternative != nil {
		return i.Eval(n.Alternative)
	}
	return value.NullValue
}

// evalWhile loops while the condition is truthy. Break and continue
// sentinels unwind until they meet the nearest loop, which consumes them.
func (i *Interpreter) evalWhile(n *ast.WhileStatement) value.Value {
	for {
		if i.halted {
			return value.NullValue
		}
		cond := i.Eval(n.Condition)
		if isSignalOrError(cond) {
			return cond
		}
		if !value.Truthy(cond) {
			return value.NullValue
		}
		result := i.evalBlockInScope(n.Body)
		if done, v := consumeLoopSignal(result); done {
			return v
		}
	}
}

// evalDoWhile runs the body at least once before testing the condition.
func (i *Interpreter) evalDoWhile(n *ast.DoWhileStatement) value.Value {
	for {
		if i.halted {
			return value.NullValue
		}
		result := i.evalBlockInScope(n.Body)
		if done, v := consumeLoopSignal(result); done {
			return v
		}
		cond := i.Eval(n.Condition)
		if isSignalOrError(cond) {
			return cond
		}
		if !value.Truthy(cond) {
			return value.NullValue
		}
	}
}

// evalFor runs the classic three-clause loop in its own enclosing scope,
// so that a `var` in Init is visible to Condition/Post/Body but not
// beyond the loop.
func (i *Interpreter) evalFor(n *ast.ForStatement) value.Value {
	prev := i.env
	i.env = environment.NewEnclosed(prev)
	defer func() { i.env = prev }()

	if n.Init != nil {
		if r := i.Eval(n.Init); isSignalOrError(r) {
			return r
		}
	}
	for {
		if i.halted {
			return value.NullValue
		}
		if n.Condition != nil {
			cond := i.Eval(n.Condition)
			if isSignalOrError(cond) {
				return cond
			}
			if !value.Truthy(cond) {
				return value.NullValue
			}
		}
		result := i.evalBlockInScope(n.Body)
		if done, v := consumeLoopSignal(result); done {
			return v
		}
		if n.Post != nil {
			if r := i.Eval(n.Post); isSignalOrError(r) {
				return r
			}
		}
	}
}

// evalForIn iterates an array's elements, binding Identifier to each in
// turn inside a fresh per-iteration scope.
func (i *Interpreter) evalForIn(n *ast.ForInStatement) value.Value {
	iterable := i.Eval(n.Iterable)
	if isSignalOrError(iterable) {
		return iterable
	}
	arr, ok := iterable.(*value.Array)
	if !ok {
		return i.raise(errors.Runtime, n, "for-in requires an array")
	}

	prevOuter := i.env
	defer func() { i.env = prevOuter }()

	for _, elem := range arr.Elements {
		if i.halted {
			return value.NullValue
		}
		i.env = environment.NewEnclosed(prevOuter)
		i.env.Define(n.Identifier, elem)
		result := i.evalBlock(n.Body.Statements)
		if done, v := consumeLoopSignal(result); done {
			return v
		}
	}
	return value.NullValue
}

// consumeLoopSignal implements the loop side of break/continue/return
// unwinding: continue is swallowed (the loop just moves on), break stops
// the loop with a null result, a return or error propagates past the
// loop entirely, and an ordinary value means the body finished normally.
func consumeLoopSignal(result value.Value) (done bool, propagate value.Value) {
	switch result.(type) {
	case *value.BreakSignal:
		return true, value.NullValue
	case *value.ContinueSignal:
		return false, nil
	case *value.ReturnSignal:
		return true, result
	default:
		if isError(result) {
			return true, result
		}
		return false, nil
	}
}

func (i *Interpreter) evalReturn(n *ast.ReturnStatement) value.Value {
	if n.ReturnValue == nil {
		return &value.ReturnSignal{Value: value.NullValue}
	}
	val := i.Eval(n.ReturnValue)
	if isSignalOrError(val) {
		return val
	}
	return &value.ReturnSignal{Value: val}
}

// evalPrint writes its arguments' string forms separated by a space,
// plus a trailing newline.
func (i *Interpreter) evalPrint(n *ast.PrintStatement) value.Value {
	parts := make([]string, len(n.Values))
	for idx, expr := range n.Values {
		val := i.Eval(expr)
		if isSignalOrError(val) {
			return val
		}
		parts[idx] = displayString(val)
	}
	fmt.Fprintln(i.out, strings.Join(parts, " "))
	return value.NullValue
}

func displayString(v value.Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

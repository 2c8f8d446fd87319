package interp

import (
	"fmt"
	"math"
	"strings"

	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/value"
)

// Future is the resolved-future handle spawn() produces; see evalSpawn.
type Future struct {
	Result value.Value
}

func (f *Future) Type() string   { return "future" }
func (f *Future) String() string { return "future(" + f.Result.String() + ")" }

func trimNewline(s string) string { return strings.TrimRight(s, "\r\n") }

// floatMod implements Xenly's `%` over its double-precision Number type.
func floatMod(a, b float64) float64 { return math.Mod(a, b) }

func (i *Interpreter) evalIdentifier(n *ast.Identifier) value.Value {
	if v, ok := i.env.Get(n.Value); ok {
		return v
	}
	return i.raise(errors.Resolution, n, "undefined variable '%s'", n.Value)
}

func (i *Interpreter) evalArrayLiteral(n *ast.ArrayLiteral) value.Value {
	elems, sig := i.evalArgs(n.Elements)
	if sig != nil {
		return sig
	}
	return value.NewArray(elems)
}

// evalIndex reads `left[index]`. Indexing off the end (or with a
// negative or non-numeric index) yields null silently, with no
// diagnostic, unlike the elevated arithmetic-mismatch case.
func (i *Interpreter) evalIndex(n *ast.IndexExpression) value.Value {
	left := i.Eval(n.Left)
	if isSignalOrError(left) {
		return left
	}
	idxVal := i.Eval(n.Index)
	if isSignalOrError(idxVal) {
		return idxVal
	}
	arr, ok := left.(*value.Array)
	if !ok {
		return i.raise(errors.Runtime, n, "cannot index a non-array value")
	}
	idxNum, ok := idxVal.(*value.Number)
	if !ok {
		return value.NullValue
	}
	idx := int(idxNum.Value)
	if idx < 0 || idx >= len(arr.Elements) {
		return value.NullValue
	}
	return arr.Elements[idx]
}

// evalIndexAssign writes `left[index] = value;`. Arrays do not grow to
// fit an out-of-range index; an out-of-range write is a no-op, symmetric
// with the silent-null read.
func (i *Interpreter) evalIndexAssign(n *ast.IndexAssignStatement) value.Value {
	left := i.Eval(n.Left)
	if isSignalOrError(left) {
		return left
	}
	idxVal := i.Eval(n.Index)
	if isSignalOrError(idxVal) {
		return idxVal
	}
	val := i.Eval(n.Value)
	if isSignalOrError(val) {
		return val
	}
	arr, ok := left.(*value.Array)
	if !ok {
		return i.raise(errors.Runtime, n, "cannot index a non-array value")
	}
	idxNum, ok := idxVal.(*value.Number)
	if !ok {
		return value.NullValue
	}
	idx := int(idxNum.Value)
	if idx < 0 || idx >= len(arr.Elements) {
		return value.NullValue
	}
	arr.Elements[idx] = val
	return value.NullValue
}

func (i *Interpreter) evalTypeof(n *ast.TypeofExpression) value.Value {
	v := i.Eval(n.Right)
	if isSignalOrError(v) {
		return v
	}
	return value.NewString(v.Type())
}

func (i *Interpreter) evalInput(n *ast.InputExpression) value.Value {
	if n.Prompt != nil {
		p := i.Eval(n.Prompt)
		if isSignalOrError(p) {
			return p
		}
		fmt.Fprint(i.out, displayString(p))
	}
	line, err := i.in.ReadString('\n')
	if err != nil {
		line = trimNewline(line)
		return value.NewString(line)
	}
	return value.NewString(trimNewline(line))
}

// evalSpawn and evalAwait are synchronous stubs: no scheduler exists, so
// `spawn f(x)` runs f(x) right away and wraps the result in an
// already-resolved future handle; `await` unwraps it. Nothing can observe
// the handle before awaiting it.
func (i *Interpreter) evalSpawn(n *ast.SpawnExpression) value.Value {
	result := i.Eval(n.Call)
	if isSignalOrError(result) {
		return result
	}
	return &Future{Result: result}
}

func (i *Interpreter) evalAwait(n *ast.AwaitExpression) value.Value {
	handle := i.Eval(n.Handle)
	if isSignalOrError(handle) {
		return handle
	}
	fut, ok := handle.(*Future)
	if !ok {
		// Awaiting a plain (non-future) value just yields it back,
		// matching synchronous functions that never went through spawn.
		return handle
	}
	return fut.Result
}

func (i *Interpreter) evalUnary(n *ast.UnaryExpression) value.Value {
	right := i.Eval(n.Right)
	if isSignalOrError(right) {
		return right
	}
	switch n.Operator {
	case "-":
		num, ok := right.(*value.Number)
		if !ok {
			return i.raise(errors.Runtime, n, "type mismatch: unary '-' requires a number")
		}
		return value.NewNumber(-num.Value)
	case "not":
		return value.NewBool(!value.Truthy(right))
	default:
		return i.raise(errors.Runtime, n, "unknown unary operator '%s'", n.Operator)
	}
}

// evalBinary dispatches on the operator. `and`/`or` are handled first and
// specially: they must short-circuit, so the right operand is only
// evaluated when the left doesn't already decide the result. Both
// backends return the last-evaluated operand rather than a coerced bool.
func (i *Interpreter) evalBinary(n *ast.BinaryExpression) value.Value {
	switch n.Operator {
	case "and":
		left := i.Eval(n.Left)
		if isSignalOrError(left) {
			return left
		}
		if !value.Truthy(left) {
			return left
		}
		return i.Eval(n.Right)
	case "or":
		left := i.Eval(n.Left)
		if isSignalOrError(left) {
			return left
		}
		if value.Truthy(left) {
			return left
		}
		return i.Eval(n.Right)
	}

	left := i.Eval(n.Left)
	if isSignalOrError(left) {
		return left
	}
	right := i.Eval(n.Right)
	if isSignalOrError(right) {
		return right
	}
	return i.applyBinaryOp(n, n.Operator, left, right)
}

// applyBinaryOp implements the actual operator semantics over two already-
// evaluated operands; factored out so compound assignment (`+=` etc, in
// statements.go) can reuse it without re-evaluating the left-hand side.
func (i *Interpreter) applyBinaryOp(node ast.Node, op string, left, right value.Value) value.Value {
	switch op {
	case "+":
		return i.evalPlus(node, left, right)
	case "-", "*", "/", "%":
		return i.evalArithmetic(node, op, left, right)
	case "<", ">", "<=", ">=":
		return i.evalComparison(node, op, left, right)
	case "==":
		return value.NewBool(value.Equal(left, right))
	case "!=":
		return value.NewBool(!value.Equal(left, right))
	default:
		return i.raise(errors.Runtime, node, "unknown binary operator '%s'", op)
	}
}

// evalPlus: `+` with any string operand coerces the other to string and
// concatenates; numeric otherwise.
func (i *Interpreter) evalPlus(node ast.Node, left, right value.Value) value.Value {
	ls, lok := left.(*value.String)
	rs, rok := right.(*value.String)
	if lok || rok {
		lv, rv := displayString(left), displayString(right)
		if lok {
			lv = ls.Value
		}
		if rok {
			rv = rs.Value
		}
		return value.NewString(lv + rv)
	}
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if lok && rok {
		return value.NewNumber(ln.Value + rn.Value)
	}
	return i.raise(errors.Runtime, node, "type mismatch: '+' requires numbers or a string operand")
}

// evalArithmetic implements `- * / %` between two numeric operands. A
// non-numeric operand here is a hard runtime error, unlike the milder
// degrade-to-null path indexing takes. Division (and modulo) by zero is
// additionally fatal: it halts remaining top-level progress.
func (i *Interpreter) evalArithmetic(node ast.Node, op string, left, right value.Value) value.Value {
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return i.raise(errors.Runtime, node, "type mismatch: '%s' requires two numbers", op)
	}
	switch op {
	case "-":
		return value.NewNumber(ln.Value - rn.Value)
	case "*":
		return value.NewNumber(ln.Value * rn.Value)
	case "/":
		if rn.Value == 0 {
			ev := i.raise(errors.Runtime, node, "division by zero")
			i.halted = true
			return ev
		}
		return value.NewNumber(ln.Value / rn.Value)
	case "%":
		if rn.Value == 0 {
			ev := i.raise(errors.Runtime, node, "division by zero")
			i.halted = true
			return ev
		}
		return value.NewNumber(floatMod(ln.Value, rn.Value))
	default:
		return i.raise(errors.Runtime, node, "unknown arithmetic operator '%s'", op)
	}
}

func (i *Interpreter) evalComparison(node ast.Node, op string, left, right value.Value) value.Value {
	ln, lok := left.(*value.Number)
	rn, rok := right.(*value.Number)
	if !lok || !rok {
		return i.raise(errors.Runtime, node, "type mismatch: '%s' requires two numbers", op)
	}
	switch op {
	case "<":
		return value.NewBool(ln.Value < rn.Value)
	case ">":
		return value.NewBool(ln.Value > rn.Value)
	case "<=":
		return value.NewBool(ln.Value <= rn.Value)
	case ">=":
		return value.NewBool(ln.Value >= rn.Value)
	default:
		return i.raise(errors.Runtime, node, "unknown comparison operator '%s'", op)
	}
}

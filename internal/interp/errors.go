package interp

import (
	"fmt"

	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/token"
	"github.com/xenly-lang/xenly/internal/value"
)

// ErrorValue is how Eval signals a runtime fault: an ordinary Value that
// unwinds the evaluation of the enclosing expression/statement exactly
// like the return/break/continue control sentinels, letting evalBlock
// and friends check isError at each step instead of threading a Go error
// return through every Eval case. The diagnostic is printed once, at the
// point raise() constructs it; propagation afterward is silent.
type ErrorValue struct {
	Kind    errors.Kind
	Message string
	Line    int
}

func (e *ErrorValue) Type() string   { return "error" }
func (e *ErrorValue) String() string { return e.Message }

func newErrorAt(node ast.Node, format string, args ...any) *ErrorValue {
	line := 0
	if node != nil {
		line = node.Pos().Line
	}
	return &ErrorValue{Message: fmt.Sprintf(format, args...), Line: line}
}

func isError(v value.Value) bool {
	_, ok := v.(*ErrorValue)
	return ok
}

// raise builds an ErrorValue of the given kind, formats and prints it
// (`[Xenly Error] Line N: <message>`, red on a terminal), sets the
// interpreter's hadError flag, and returns the constructed value so
// callers can propagate it like any other Eval result.
func (i *Interpreter) raise(kind errors.Kind, node ast.Node, format string, args ...any) *ErrorValue {
	ev := newErrorAt(node, format, args...)
	ev.Kind = kind

	pos := token.Position{Line: ev.Line}
	if node != nil {
		pos = node.Pos()
	}
	diag := errors.New(kind, pos, format, args...)
	fmt.Fprintln(i.errOut, diag.Format(i.color))
	i.hadError = true
	return ev
}

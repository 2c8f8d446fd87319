// Package interp implements Xenly's tree-walking evaluator: a
// single-threaded, synchronous Eval(node) Value dispatch over the AST,
// driving control flow, closures, OOP dispatch, and module loading.
//
// Closures and classes are kept alive by Go's garbage collector rather
// than by explicit reference counts, for the same reason documented in
// internal/value: a captured *environment.Environment lives exactly as
// long as something still points at it.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/environment"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/modules"
	"github.com/xenly-lang/xenly/internal/value"
)

// userModule is a loaded `.xe` module: a resolved path, the flat exports
// table, and the parsed AST, which must outlive the module since its
// stored function bodies keep referencing it.
type userModule struct {
	name    string
	path    string
	exports map[string]value.Value
	program *ast.Program
}

// Interpreter is Xenly's tree-walking evaluator. One Interpreter owns one
// global environment and one native-module registry; Run may be called
// repeatedly (e.g. once per REPL line) against the same instance.
type Interpreter struct {
	global *environment.Environment
	env    *environment.Environment

	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
	color  bool

	natives *modules.Registry

	sourceDir string
	loaded    map[string]*userModule
	loadStack []string

	// exports, when non-nil, is the current module's export table: the
	// interpreter is evaluating a `.xe` file loaded via import rather than
	// the top-level program, and ExportStatement copies into this table.
	exports map[string]value.Value

	hadError bool
	halted   bool
}

// New builds an Interpreter that writes program output to out, reads
// input() prompts from in, resolves relative imports against sourceDir,
// and writes diagnostics to errOut (colored red when color is true).
func New(out, errOut io.Writer, in io.Reader, sourceDir string) *Interpreter {
	global := environment.New()
	natives := modules.NewRegistry()

	i := &Interpreter{
		global:    global,
		env:       global,
		out:       out,
		errOut:    errOut,
		in:        bufio.NewReader(in),
		natives:   natives,
		sourceDir: sourceDir,
		loaded:    make(map[string]*userModule),
	}

	natives.SetOutput(func(s string) { fmt.Fprint(out, s) })
	natives.SetInput(func() (string, error) {
		line, err := i.in.ReadString('\n')
		return strings.TrimRight(line, "\r\n"), err
	})

	return i
}

// SetColor controls whether diagnostics are wrapped in ANSI red. The
// driver decides (by checking whether stderr is a terminal) and passes
// the result in here.
func (i *Interpreter) SetColor(color bool) { i.color = color }

// HadError reports whether any diagnostic fired during evaluation; the
// driver's exit code mirrors it (0 on success, 1 otherwise).
func (i *Interpreter) HadError() bool { return i.hadError }

// Run evaluates program in the global environment — the entry point for
// `xenly file.xe`. Individual top-level statements keep executing after
// one reports a non-fatal error; only a fatal division-by-zero stops the
// remaining top-level statements outright.
func (i *Interpreter) Run(program *ast.Program) {
	i.runTopLevel(program.Statements)
}

// runTopLevel drives a sequence of top-level statements (a whole program,
// or a loaded module's body): unlike evalBlock, it does NOT stop at the
// first ErrorValue — a set hadError flag still lets the remaining
// top-level statements drain their side effects. It only stops early
// once i.halted is set (a fatal division-by-zero).
func (i *Interpreter) runTopLevel(stmts []ast.Statement) {
	for _, stmt := range stmts {
		if i.halted {
			return
		}
		i.Eval(stmt)
	}
}

// Eval is the single dispatch point every node flows through: control
// flow, OOP, and module loading all start at this switch, which fans out
// to helpers split one file per concern (statements.go, expressions.go,
// classes_eval.go, modules_eval.go).
func (i *Interpreter) Eval(node ast.Node) value.Value {
	switch n := node.(type) {

	// Root / blocks
	case *ast.Program:
		i.runTopLevel(n.Statements)
		return value.NullValue
	case *ast.BlockStatement:
		return i.evalBlockInScope(n)
	case *ast.ExpressionStatement:
		return i.Eval(n.Expression)

	// Declarations & assignment
	case *ast.VarDeclStatement:
		return i.evalVarDecl(n)
	case *ast.AssignStatement:
		return i.evalAssign(n)
	case *ast.CompoundAssignStatement:
		return i.evalCompoundAssign(n)
	case *ast.IncDecStatement:
		return i.evalIncDec(n)
	case *ast.PropertySetStatement:
		return i.evalPropertySet(n)
	case *ast.IndexAssignStatement:
		return i.evalIndexAssign(n)

	// Functions
	case *ast.FunctionDeclStatement:
		return i.evalFunctionDecl(n)
	case *ast.FunctionLiteral:
		return i.evalFunctionLiteral(n)
	case *ast.ReturnStatement:
		return i.evalReturn(n)
	case *ast.CallExpression:
		return i.evalCallExpression(n)

	// Classes
	case *ast.ClassDeclStatement:
		return i.evalClassDecl(n)
	case *ast.NewExpression:
		return i.evalNewExpression(n)
	case *ast.ThisExpression:
		return i.evalThis(n)
	case *ast.SuperCallExpression:
		return i.evalSuperCall(n)
	case *ast.MethodCallExpression:
		return i.evalMethodCall(n)
	case *ast.PropertyGetExpression:
		return i.evalPropertyGet(n)
	case *ast.InstanceofExpression:
		return i.evalInstanceof(n)

	// Control flow
	case *ast.IfStatement:
		return i.evalIf(n)
	case *ast.WhileStatement:
		return i.evalWhile(n)
	case *ast.DoWhileStatement:
		return i.evalDoWhile(n)
	case *ast.ForStatement:
		return i.evalFor(n)
	case *ast.ForInStatement:
		return i.evalForIn(n)
	case *ast.BreakStatement:
		return &value.BreakSignal{}
	case *ast.ContinueStatement:
		return &value.ContinueSignal{}

	// Modules
	case *ast.ImportStatement:
		return i.evalImport(n)
	case *ast.ExportStatement:
		return i.evalExport(n)

	// Built-ins
	case *ast.PrintStatement:
		return i.evalPrint(n)
	case *ast.InputExpression:
		return i.evalInput(n)
	case *ast.TypeofExpression:
		return i.evalTypeof(n)

	// Literals & primaries
	case *ast.Identifier:
		return i.evalIdentifier(n)
	case *ast.NumberLiteral:
		return value.NewNumber(n.Value)
	case *ast.StringLiteral:
		return value.NewString(n.Value)
	case *ast.BoolLiteral:
		return value.NewBool(n.Value)
	case *ast.NullLiteral:
		return value.NullValue
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(n)
	case *ast.IndexExpression:
		return i.evalIndex(n)

	// Operators
	case *ast.BinaryExpression:
		return i.evalBinary(n)
	case *ast.UnaryExpression:
		return i.evalUnary(n)

	// Async surface: no scheduler, synchronous stubs.
	case *ast.SpawnExpression:
		return i.evalSpawn(n)
	case *ast.AwaitExpression:
		return i.evalAwait(n)

	case nil:
		return value.NullValue
	default:
		return i.raise(errors.Runtime, node, "cannot evaluate node of type %T", node)
	}
}

// evalBlock evaluates stmts in the current environment without opening a
// new scope — used for a function body or for-in body whose frame is
// already established, and by evalBlockInScope. Program and module bodies
// go through runTopLevel instead.
func (i *Interpreter) evalBlock(stmts []ast.Statement) value.Value {
	var result value.Value = value.NullValue
	for _, stmt := range stmts {
		if i.halted {
			return result
		}
		result = i.Eval(stmt)
		if isSignalOrError(result) {
			return result
		}
	}
	return result
}

// evalBlockInScope evaluates a `{ ... }` block in a fresh child scope:
// blocks create a child environment and declarations bind in it.
func (i *Interpreter) evalBlockInScope(block *ast.BlockStatement) value.Value {
	prev := i.env
	i.env = environment.NewEnclosed(prev)
	defer func() { i.env = prev }()
	return i.evalBlock(block.Statements)
}

// isSignalOrError reports whether v should unwind the enclosing block:
// the return/break/continue sentinels always do, and an ErrorValue does
// too (see errors.go) — stopping the block the fault occurred in, without
// stopping sibling top-level statements (those go through runTopLevel,
// not evalBlock).
func isSignalOrError(v value.Value) bool {
	if _, ok := v.(value.ControlSignal); ok {
		return true
	}
	return isError(v)
}

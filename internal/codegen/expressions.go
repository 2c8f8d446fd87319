package codegen

import "github.com/xenly-lang/xenly/internal/ast"

var argRegs = [...]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
var argRegs32 = [...]string{"edi", "esi", "edx", "ecx", "r8d", "r9d"}

// emitExpr compiles one expression, leaving its XlyVal* result in %rax
// (and, for the arithmetic fast path, %xmm0 on the way to xly_num). Any
// node the native backend doesn't model falls through to the unsupported
// case at the bottom — see the package doc comment.
func (g *Generator) emitExpr(node ast.Expression) {
	switch n := node.(type) {
	case nil:
		g.emit("    call    xly_null")

	case *ast.NumberLiteral:
		g.emitLoadDouble(n.Value)
		g.emit("    call    xly_num")

	case *ast.StringLiteral:
		lbl := g.internString(n.Value)
		g.emit("    leaq    %s(%%rip), %%rdi", lbl)
		g.emit("    call    xly_str")

	case *ast.BoolLiteral:
		b := 0
		if n.Value {
			b = 1
		}
		g.emit("    movl    $%d, %%edi", b)
		g.emit("    call    xly_bool")

	case *ast.NullLiteral:
		g.emit("    call    xly_null")

	case *ast.Identifier:
		off := g.localOffset(n.Value)
		if off != 0 {
			g.emit("    movq    %d(%%rbp), %%rax", off)
		} else {
			g.emit("    call    xly_null")
		}

	case *ast.UnaryExpression:
		g.emitExpr(n.Right)
		g.emit("    movq    %%rax, %%rdi")
		if n.Operator == "-" {
			g.emit("    call    xly_neg")
		} else {
			g.emit("    call    xly_not")
		}

	case *ast.BinaryExpression:
		g.emitBinary(n)

	case *ast.TypeofExpression:
		g.emitExpr(n.Right)
		g.emit("    movq    %%rax, %%rdi")
		g.emit("    call    xly_typeof")

	case *ast.InputExpression:
		if n.Prompt != nil {
			g.emitExpr(n.Prompt)
			g.emit("    movq    %%rax, %%rdi")
		} else {
			g.emit("    xorl    %%edi, %%edi")
		}
		g.emit("    call    xly_input")

	case *ast.CallExpression:
		g.emitCall(n)

	case *ast.MethodCallExpression:
		g.emitMethodCall(n)

	case *ast.ArrayLiteral:
		g.emitArrayLiteral(n)

	case *ast.IndexExpression:
		g.emitIndex(n)

	default:
		// classes/OOP/async: no case in the native backend; such
		// programs are meant for the interpreter.
		g.hadError = true
		g.emit("    call    xly_null")
	}
}

func constNumber(e ast.Expression) (float64, bool) {
	n, ok := e.(*ast.NumberLiteral)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

// emitOperands evaluates Left then Right, ending with the left value in
// %rdi and the right in %rsi. The left value is parked in a 16-byte
// spill slot rather than pushed, so %rsp stays 16-byte aligned across
// every call the right operand's evaluation makes.
func (g *Generator) emitOperands(n *ast.BinaryExpression) {
	g.emitExpr(n.Left)
	g.emit("    subq    $16, %%rsp")
	g.emit("    movq    %%rax, (%%rsp)")
	g.emitExpr(n.Right)
	g.emit("    movq    %%rax, %%rsi")
	g.emit("    movq    (%%rsp), %%rdi")
	g.emit("    addq    $16, %%rsp")
}

// emitBinary lowers the binary operators. `and`/`or` short-circuit on the
// left operand's truthiness and never reach the arithmetic/comparison
// cases below; `+` gets a runtime string-vs-number branch ahead of its
// fast path since it also means concatenation.
func (g *Generator) emitBinary(n *ast.BinaryExpression) {
	switch n.Operator {
	case "and":
		lblFalse := g.freshLabel()
		lblEnd := g.freshLabel()
		g.emitExpr(n.Left)
		g.emit("    subq    $16, %%rsp")
		g.emit("    movq    %%rax, (%%rsp)")
		g.emit("    movq    %%rax, %%rdi")
		g.emit("    call    xly_truthy")
		g.emit("    testl   %%eax, %%eax")
		g.emit("    jz      %s", lblFalse)
		g.emit("    addq    $16, %%rsp")
		g.emitExpr(n.Right)
		g.emit("    jmp     %s", lblEnd)
		g.emit("%s:", lblFalse)
		g.emit("    movq    (%%rsp), %%rax")
		g.emit("    addq    $16, %%rsp")
		g.emit("%s:", lblEnd)
		return
	case "or":
		lblRight := g.freshLabel()
		lblEnd := g.freshLabel()
		g.emitExpr(n.Left)
		g.emit("    subq    $16, %%rsp")
		g.emit("    movq    %%rax, (%%rsp)")
		g.emit("    movq    %%rax, %%rdi")
		g.emit("    call    xly_truthy")
		g.emit("    testl   %%eax, %%eax")
		g.emit("    jz      %s", lblRight)
		g.emit("    movq    (%%rsp), %%rax")
		g.emit("    addq    $16, %%rsp")
		g.emit("    jmp     %s", lblEnd)
		g.emit("%s:", lblRight)
		g.emit("    addq    $16, %%rsp")
		g.emitExpr(n.Right)
		g.emit("%s:", lblEnd)
		return
	}

	if lf, ok1 := constNumber(n.Left); ok1 {
		if rf, ok2 := constNumber(n.Right); ok2 {
			if folded, ok := foldConst(n.Operator, lf, rf); ok {
				g.emitLoadDouble(folded)
				g.emit("    call    xly_num")
				return
			}
		}
	}

	switch n.Operator {
	case "+":
		g.emitPlus(n)
	case "-", "*", "/":
		g.emitArith(n)
	case "%":
		g.emitSlowBinary(n, "xly_mod")
	case "<", ">", "<=", ">=", "==", "!=":
		g.emitComparison(n)
	default:
		g.hadError = true
		g.emit("    call    xly_null")
	}
}

func foldConst(op string, l, r float64) (float64, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return 0, false
		}
		return l / r, true
	default:
		return 0, false
	}
}

// emitSlowBinary evaluates both operands then always goes through the
// boxed runtime helper (used for `%`, where there is no unboxed fast
// path worth the extra branching).
func (g *Generator) emitSlowBinary(n *ast.BinaryExpression, fn string) {
	g.emitOperands(n)
	g.emit("    call    %s", fn)
}

// emitPlus needs a runtime type check ahead of the unboxed path: `+` also
// means string concatenation, so either operand being a string value
// (tag 1, per the XlyVal layout in runtime/xly_rt.c) routes to the boxed
// xly_add.
func (g *Generator) emitPlus(n *ast.BinaryExpression) {
	lblSlow := g.freshLabel()
	lblEnd := g.freshLabel()

	g.emitOperands(n)
	g.emit("    cmpl    $1, (%%rdi)")
	g.emit("    je      %s", lblSlow)
	g.emit("    cmpl    $1, (%%rsi)")
	g.emit("    je      %s", lblSlow)
	g.emit("    movsd   8(%%rdi), %%xmm0")
	g.emit("    movsd   8(%%rsi), %%xmm1")
	g.emit("    addsd   %%xmm1, %%xmm0")
	g.emit("    call    xly_num")
	g.emit("    jmp     %s", lblEnd)
	g.emit("%s:", lblSlow)
	g.emit("    call    xly_add")
	g.emit("%s:", lblEnd)
}

func arithBoxedFn(op string) string {
	switch op {
	case "-":
		return "xly_sub"
	case "*":
		return "xly_mul"
	default:
		return "xly_div"
	}
}

// emitArith lowers `- * /` with a both-tags-number check: when both
// operands are tagged number (tag 0) the values are unboxed and combined
// on xmm registers; anything else falls back to the boxed runtime op.
func (g *Generator) emitArith(n *ast.BinaryExpression) {
	lblSlow := g.freshLabel()
	lblEnd := g.freshLabel()

	g.emitOperands(n)
	g.emit("    cmpl    $0, (%%rdi)")
	g.emit("    jne     %s", lblSlow)
	g.emit("    cmpl    $0, (%%rsi)")
	g.emit("    jne     %s", lblSlow)
	g.emit("    movsd   8(%%rdi), %%xmm0")
	g.emit("    movsd   8(%%rsi), %%xmm1")
	switch n.Operator {
	case "-":
		g.emit("    subsd   %%xmm1, %%xmm0")
	case "*":
		g.emit("    mulsd   %%xmm1, %%xmm0")
	case "/":
		g.emit("    divsd   %%xmm1, %%xmm0")
	}
	g.emit("    call    xly_num")
	g.emit("    jmp     %s", lblEnd)
	g.emit("%s:", lblSlow)
	g.emit("    call    %s", arithBoxedFn(n.Operator))
	g.emit("%s:", lblEnd)
}

func comparisonSetCC(op string) string {
	switch op {
	case "<":
		return "setb"
	case ">":
		return "seta"
	case "<=":
		return "setbe"
	case ">=":
		return "setae"
	case "==":
		return "sete"
	default:
		return "setne"
	}
}

func comparisonBoxedFn(op string) string {
	switch op {
	case "<":
		return "xly_lt"
	case ">":
		return "xly_gt"
	case "<=":
		return "xly_lte"
	case ">=":
		return "xly_gte"
	case "==":
		return "xly_eq"
	default:
		return "xly_neq"
	}
}

// emitComparison mirrors emitArith's shape: two number-tagged operands
// are unboxed onto xmm registers and compared with ucomisd + set*;
// anything else (string equality, null checks) falls back to the boxed
// comparison helper.
func (g *Generator) emitComparison(n *ast.BinaryExpression) {
	lblSlow := g.freshLabel()
	lblEnd := g.freshLabel()

	g.emitOperands(n)
	g.emit("    cmpl    $0, (%%rdi)")
	g.emit("    jne     %s", lblSlow)
	g.emit("    cmpl    $0, (%%rsi)")
	g.emit("    jne     %s", lblSlow)
	g.emit("    movsd   8(%%rdi), %%xmm0")
	g.emit("    movsd   8(%%rsi), %%xmm1")
	g.emit("    ucomisd %%xmm1, %%xmm0")
	g.emit("    %s    %%al", comparisonSetCC(n.Operator))
	g.emit("    movzbl  %%al, %%edi")
	g.emit("    call    xly_bool")
	g.emit("    jmp     %s", lblEnd)
	g.emit("%s:", lblSlow)
	g.emit("    call    %s", comparisonBoxedFn(n.Operator))
	g.emit("%s:", lblEnd)
}

// emitCall lowers a direct named call `f(args...)`. The native backend
// only ever calls functions named at the call site — there is no value
// representation for a first-class function pointer on this path
// (closures stay interpreter-only). Arguments are staged through an
// aligned stack buffer (stored, not pushed) and loaded into the integer
// argument registers just before the call; unused registers are zeroed
// so the callee can spot missing arguments and bind them to null.
func (g *Generator) emitCall(n *ast.CallExpression) {
	ident, ok := n.Callee.(*ast.Identifier)
	if !ok {
		g.hadError = true
		g.emit("    call    xly_null")
		return
	}

	args := n.Arguments
	if len(args) > len(argRegs) {
		g.warnf("Line %d: call to '%s' passes %d arguments; only the first %d are used",
			n.Pos().Line, ident.Value, len(args), len(argRegs))
		args = args[:len(argRegs)]
	}

	allocBytes := align16(len(args) * 8)
	if allocBytes > 0 {
		g.emit("    subq    $%d, %%rsp", allocBytes)
	}
	for idx, a := range args {
		g.emitExpr(a)
		g.emit("    movq    %%rax, %d(%%rsp)", idx*8)
	}
	for idx := range args {
		g.emit("    movq    %d(%%rsp), %%%s", idx*8, argRegs[idx])
	}
	if allocBytes > 0 {
		g.emit("    addq    $%d, %%rsp", allocBytes)
	}
	for idx := len(args); idx < len(argRegs32); idx++ {
		g.emit("    xorl    %%%s, %%%s", argRegs32[idx], argRegs32[idx])
	}
	g.emit("    call    .Lxly_fn_%s", ident.Value)
}

// emitMethodCall lowers `module.fn(args...)` to xly_call_module: the
// arguments are packed into a 16-byte-aligned stack buffer (stored, not
// pushed, so the slot layout is deterministic) and passed as a pointer
// plus count.
func (g *Generator) emitMethodCall(n *ast.MethodCallExpression) {
	modIdent, ok := n.Object.(*ast.Identifier)
	if !ok {
		g.hadError = true
		g.emit("    call    xly_null")
		return
	}

	argc := len(n.Arguments)
	allocBytes := align16(argc * 8)
	if allocBytes > 0 {
		g.emit("    subq    $%d, %%rsp", allocBytes)
	}
	for idx, a := range n.Arguments {
		g.emitExpr(a)
		g.emit("    movq    %%rax, %d(%%rsp)", idx*8)
	}

	modLabel := g.internString(modIdent.Value)
	fnLabel := g.internString(n.Method)
	g.emit("    leaq    %s(%%rip), %%rdi", modLabel)
	g.emit("    leaq    %s(%%rip), %%rsi", fnLabel)
	if argc > 0 {
		g.emit("    movq    %%rsp, %%rdx")
	} else {
		g.emit("    xorq    %%rdx, %%rdx")
	}
	g.emit("    movl    $%d, %%ecx", argc)
	g.emit("    call    xly_call_module")

	if allocBytes > 0 {
		g.emit("    addq    $%d, %%rsp", allocBytes)
	}
}

// emitArrayLiteral stores each element into a stack buffer the same way
// emitMethodCall does, then hands it to xly_array_create(ptr, count).
func (g *Generator) emitArrayLiteral(n *ast.ArrayLiteral) {
	count := len(n.Elements)
	allocBytes := align16(count * 8)
	if allocBytes > 0 {
		g.emit("    subq    $%d, %%rsp", allocBytes)
	}
	for idx, el := range n.Elements {
		g.emitExpr(el)
		g.emit("    movq    %%rax, %d(%%rsp)", idx*8)
	}
	if count > 0 {
		g.emit("    movq    %%rsp, %%rdi")
	} else {
		g.emit("    xorq    %%rdi, %%rdi")
	}
	g.emit("    movq    $%d, %%rsi", count)
	g.emit("    call    xly_array_create")
	if allocBytes > 0 {
		g.emit("    addq    $%d, %%rsp", allocBytes)
	}
}

func (g *Generator) emitIndex(n *ast.IndexExpression) {
	g.emitExpr(n.Left)
	g.emit("    subq    $16, %%rsp")
	g.emit("    movq    %%rax, (%%rsp)")
	g.emitExpr(n.Index)
	g.emit("    movq    %%rax, %%rsi")
	g.emit("    movq    (%%rsp), %%rdi")
	g.emit("    addq    $16, %%rsp")
	g.emit("    call    xly_index")
}

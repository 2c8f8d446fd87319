package codegen

import "github.com/xenly-lang/xenly/internal/ast"

// emitStmt compiles one statement. Constructs outside the native
// backend's modeled subset (classes, `new`/`this`/`super`, property
// access, `spawn`/`await`) fall to the default branch and set hadError.
func (g *Generator) emitStmt(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.VarDeclStatement:
		off := g.localDeclare(n.Name)
		g.emitExpr(n.Value)
		g.emit("    movq    %%rax, %d(%%rbp)", off)

	case *ast.AssignStatement:
		ident, ok := n.Target.(*ast.Identifier)
		if !ok {
			g.hadError = true
			return
		}
		g.emitExpr(n.Value)
		g.emit("    movq    %%rax, %d(%%rbp)", g.localOffset(ident.Value))

	case *ast.CompoundAssignStatement:
		g.emitCompoundAssign(n)

	case *ast.IncDecStatement:
		g.emitIncDec(n)

	case *ast.PrintStatement:
		g.emitPrint(n)

	case *ast.ExpressionStatement:
		g.emitExpr(n.Expression)

	case *ast.BlockStatement:
		g.emitBlock(n)

	case *ast.IfStatement:
		g.emitIf(n)

	case *ast.WhileStatement:
		g.emitWhile(n)

	case *ast.DoWhileStatement:
		g.emitDoWhile(n)

	case *ast.ForStatement:
		g.emitFor(n)

	case *ast.ForInStatement:
		g.emitForIn(n)

	case *ast.BreakStatement:
		if lp, ok := g.currentLoop(); ok {
			g.emit("    jmp     %s", lp.breakLabel)
		}

	case *ast.ContinueStatement:
		if lp, ok := g.currentLoop(); ok {
			g.emit("    jmp     %s", lp.continueLabel)
		}

	case *ast.ReturnStatement:
		g.emitExpr(n.ReturnValue)
		g.emit("    movq    %%rbp, %%rsp")
		g.emit("    popq    %%rbp")
		g.emit("    ret")

	case *ast.FunctionDeclStatement:
		// Queued, not emitted inline: the driver walks main's body first
		// and appends every declared function's body after it.
		g.funcs = append(g.funcs, n)

	case *ast.ImportStatement:
		// No-op: the native backend links the runtime's native modules
		// statically, so there's nothing to emit for an import.

	case *ast.ExportStatement:
		g.emitStmt(n.Declaration)

	case *ast.IndexAssignStatement:
		g.emitIndexAssign(n)

	default:
		g.hadError = true
	}
}

func (g *Generator) emitBlock(b *ast.BlockStatement) {
	g.scopeEnter()
	for _, s := range b.Statements {
		g.emitStmt(s)
	}
	g.scopeLeave()
}

// emitPrint packs every argument's boxed value pointer into a stack
// array and hands (pointer, count) to the runtime's xly_print, the same
// argument-array convention emitMethodCall uses for mod.fn(args) calls.
func (g *Generator) emitPrint(n *ast.PrintStatement) {
	count := len(n.Values)
	allocBytes := align16(count * 8)
	if allocBytes == 0 {
		allocBytes = 16
	}
	g.emit("    subq    $%d, %%rsp", allocBytes)
	for idx, v := range n.Values {
		g.emitExpr(v)
		g.emit("    movq    %%rax, %d(%%rsp)", idx*8)
	}
	g.emit("    movq    %%rsp, %%rdi")
	g.emit("    movl    $%d, %%esi", count)
	g.emit("    call    xly_print")
	g.emit("    addq    $%d, %%rsp", allocBytes)
}

func compoundOpFn(op string) string {
	switch op {
	case "+=":
		return "xly_add"
	case "-=":
		return "xly_sub"
	case "*=":
		return "xly_mul"
	case "/=":
		return "xly_div"
	default:
		return "xly_mod"
	}
}

func (g *Generator) emitCompoundAssign(n *ast.CompoundAssignStatement) {
	ident, ok := n.Target.(*ast.Identifier)
	if !ok {
		g.hadError = true
		return
	}
	off := g.localOffset(ident.Value)
	g.emitExpr(n.Value)
	g.emit("    movq    %%rax, %%rsi")
	g.emit("    movq    %d(%%rbp), %%rdi", off)
	g.emit("    call    %s", compoundOpFn(n.Operator))
	g.emit("    movq    %%rax, %d(%%rbp)", off)
}

// emitIncDec desugars `x++`/`x--` to `x = x +/- 1`, through the same
// boxed xly_add/xly_sub helpers the slow arithmetic path uses.
func (g *Generator) emitIncDec(n *ast.IncDecStatement) {
	ident, ok := n.Target.(*ast.Identifier)
	if !ok {
		g.hadError = true
		return
	}
	off := g.localOffset(ident.Value)
	g.emitLoadDouble(1.0)
	g.emit("    call    xly_num")
	g.emit("    movq    %%rax, %%rsi")
	g.emit("    movq    %d(%%rbp), %%rdi", off)
	fn := "xly_add"
	if n.Operator == "--" {
		fn = "xly_sub"
	}
	g.emit("    call    %s", fn)
	g.emit("    movq    %%rax, %d(%%rbp)", off)
}

// emitIndexAssign lowers `arr[i] = v;` through xly_array_set. The array
// handle and index value are staged in an aligned spill slot while the
// value expression runs, then the boxed index is unboxed to the raw
// element index xly_array_set takes.
func (g *Generator) emitIndexAssign(n *ast.IndexAssignStatement) {
	g.emitExpr(n.Left)
	g.emit("    subq    $16, %%rsp")
	g.emit("    movq    %%rax, (%%rsp)")
	g.emitExpr(n.Index)
	g.emit("    movq    %%rax, 8(%%rsp)")
	g.emitExpr(n.Value)
	g.emit("    movq    %%rax, %%rdx")
	g.emit("    movq    8(%%rsp), %%rax")
	g.emit("    cvttsd2si 8(%%rax), %%rsi")
	g.emit("    movq    (%%rsp), %%rdi")
	g.emit("    addq    $16, %%rsp")
	g.emit("    call    xly_array_set")
}

func (g *Generator) emitTruthyBranch(cond ast.Expression, ifFalse string) {
	g.emitExpr(cond)
	g.emit("    movq    %%rax, %%rdi")
	g.emit("    call    xly_truthy")
	g.emit("    testl   %%eax, %%eax")
	g.emit("    jz      %s", ifFalse)
}

func (g *Generator) emitIf(n *ast.IfStatement) {
	lblElse := g.freshLabel()
	lblEnd := g.freshLabel()
	g.emitTruthyBranch(n.Condition, lblElse)
	g.emitBlock(n.Consequence)
	g.emit("    jmp     %s", lblEnd)
	g.emit("%s:", lblElse)
	if n.Alternative != nil {
		g.emitStmt(n.Alternative)
	}
	g.emit("%s:", lblEnd)
}

func (g *Generator) emitWhile(n *ast.WhileStatement) {
	lblCond := g.freshLabel()
	lblEnd := g.freshLabel()
	g.pushLoop(lblEnd, lblCond)
	g.emit("%s:", lblCond)
	g.emitTruthyBranch(n.Condition, lblEnd)
	g.emitBlock(n.Body)
	g.emit("    jmp     %s", lblCond)
	g.emit("%s:", lblEnd)
	g.popLoop()
}

func (g *Generator) emitDoWhile(n *ast.DoWhileStatement) {
	lblBody := g.freshLabel()
	lblCond := g.freshLabel()
	lblEnd := g.freshLabel()
	g.pushLoop(lblEnd, lblCond)
	g.emit("%s:", lblBody)
	g.emitBlock(n.Body)
	g.emit("%s:", lblCond)
	g.emitExpr(n.Condition)
	g.emit("    movq    %%rax, %%rdi")
	g.emit("    call    xly_truthy")
	g.emit("    testl   %%eax, %%eax")
	g.emit("    jnz     %s", lblBody)
	g.emit("%s:", lblEnd)
	g.popLoop()
}

func (g *Generator) emitFor(n *ast.ForStatement) {
	lblCond := g.freshLabel()
	lblUpdate := g.freshLabel()
	lblEnd := g.freshLabel()

	g.scopeEnter()
	if n.Init != nil {
		g.emitStmt(n.Init)
	}
	g.pushLoop(lblEnd, lblUpdate)
	g.emit("%s:", lblCond)
	if n.Condition != nil {
		g.emitTruthyBranch(n.Condition, lblEnd)
	}
	g.emitBlock(n.Body)
	g.emit("%s:", lblUpdate)
	if n.Post != nil {
		g.emitStmt(n.Post)
	}
	g.emit("    jmp     %s", lblCond)
	g.emit("%s:", lblEnd)
	g.popLoop()
	g.scopeLeave()
}

// emitForIn lowers `for (x in arr) body` to an index-counted loop over
// four hidden per-loop slots: the visible iteration variable plus a
// saved array handle, index counter, and cached length.
func (g *Generator) emitForIn(n *ast.ForInStatement) {
	lblCond := g.freshLabel()
	lblEnd := g.freshLabel()

	g.scopeEnter()
	offIter := g.localDeclare(n.Identifier)
	tag := g.freshLabel()
	offArr := g.localDeclare("__forin_arr" + tag)
	offIdx := g.localDeclare("__forin_idx" + tag)
	offLen := g.localDeclare("__forin_len" + tag)

	g.emitExpr(n.Iterable)
	g.emit("    movq    %%rax, %d(%%rbp)", offArr)
	g.emit("    movq    %%rax, %%rdi")
	g.emit("    call    xly_array_len")
	g.emit("    movq    %%rax, %d(%%rbp)", offLen)
	g.emit("    movq    $0, %d(%%rbp)", offIdx)

	g.pushLoop(lblEnd, lblCond)
	g.emit("%s:", lblCond)
	g.emit("    movq    %d(%%rbp), %%rax", offIdx)
	g.emit("    cmpq    %d(%%rbp), %%rax", offLen)
	g.emit("    jae     %s", lblEnd)
	g.emit("    movq    %d(%%rbp), %%rdi", offArr)
	g.emit("    movq    %d(%%rbp), %%rsi", offIdx)
	g.emit("    call    xly_array_get")
	g.emit("    movq    %%rax, %d(%%rbp)", offIter)

	g.emitBlock(n.Body)

	g.emit("    movq    %d(%%rbp), %%rax", offIdx)
	g.emit("    addq    $1, %%rax")
	g.emit("    movq    %%rax, %d(%%rbp)", offIdx)
	g.emit("    jmp     %s", lblCond)
	g.emit("%s:", lblEnd)
	g.popLoop()
	g.scopeLeave()
}

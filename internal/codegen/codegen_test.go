package codegen

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/parser"
	"github.com/xenly-lang/xenly/internal/rtabi"
)

func generate(t *testing.T, src string) (string, bool, *Generator) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	g := New()
	asm, hadError := g.Generate(prog)
	return asm, hadError, g
}

func TestConstantFolding_LiteralProduct(t *testing.T) {
	asm, hadError, _ := generate(t, "print(2*3);")
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	folded := fmt.Sprintf("movabsq $%d", math.Float64bits(6))
	if !strings.Contains(asm, folded) {
		t.Fatalf("expected folded constant 6 (%s) in output", folded)
	}
	if strings.Contains(asm, "mulsd") || strings.Contains(asm, rtabi.Mul) {
		t.Fatal("expected no runtime multiply for a literal-literal product")
	}
}

func TestStringInterning_DeduplicatesLiterals(t *testing.T) {
	asm, hadError, _ := generate(t, `print("dup"); print("dup"); print("other");`)
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	if got := strings.Count(asm, `.asciz  "dup"`); got != 1 {
		t.Fatalf("expected exactly one .rodata entry for \"dup\", got %d", got)
	}
	if got := strings.Count(asm, `.asciz  "other"`); got != 1 {
		t.Fatalf("expected exactly one .rodata entry for \"other\", got %d", got)
	}
}

func TestCall_ArgumentRegistersInOrder(t *testing.T) {
	asm, hadError, _ := generate(t, `fn f(a, b, c) { return a }
f(1, 2, 3);`)
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	for idx, reg := range rtabi.ArgRegisters[:3] {
		load := fmt.Sprintf("movq    %d(%%rsp), %%%s", idx*8, reg)
		if !strings.Contains(asm, load) {
			t.Fatalf("expected argument %d staged into %%%s (%q)", idx, reg, load)
		}
	}
	if !strings.Contains(asm, "call    .Lxly_fn_f") {
		t.Fatal("expected a direct call to .Lxly_fn_f")
	}
}

func TestCall_MoreThanSixArgsWarnsAndTruncates(t *testing.T) {
	asm, hadError, g := generate(t, `fn big(a, b, c, d, e, q) { return a }
big(1, 2, 3, 4, 5, 6, 7);`)
	if hadError {
		t.Fatal("expected truncation to warn, not fail")
	}
	if len(g.Warnings()) != 1 {
		t.Fatalf("expected exactly one warning, got %v", g.Warnings())
	}
	if !strings.Contains(asm, "call    .Lxly_fn_big") {
		t.Fatal("expected the call to still be emitted")
	}
}

func TestUnsupportedConstructSetsError(t *testing.T) {
	_, hadError, _ := generate(t, `class C { fn init() {} }
var c = new C();`)
	if !hadError {
		t.Fatal("expected class lowering to set the error flag")
	}
}

func TestFunctionsEmittedAfterMainExit(t *testing.T) {
	asm, hadError, _ := generate(t, `fn add(a, b) { return a + b }
print(add(3, 4));`)
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	exitIdx := strings.Index(asm, "call    "+rtabi.Exit)
	fnIdx := strings.Index(asm, ".Lxly_fn_add:")
	if exitIdx < 0 || fnIdx < 0 {
		t.Fatalf("expected both the exit call and the function label (exit=%d fn=%d)", exitIdx, fnIdx)
	}
	if fnIdx < exitIdx {
		t.Fatal("expected user functions to be emitted after main's exit")
	}
}

func TestModuleCall_DispatchesThroughRuntime(t *testing.T) {
	asm, hadError, _ := generate(t, `import "math";
print(math.sqrt(16));`)
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	if !strings.Contains(asm, "call    "+rtabi.CallModule) {
		t.Fatalf("expected a call to %s", rtabi.CallModule)
	}
	if !strings.Contains(asm, `.asciz  "math"`) || !strings.Contains(asm, `.asciz  "sqrt"`) {
		t.Fatal("expected module and function names interned in .rodata")
	}
}

func TestShortCircuitAnd_TestsTruthiness(t *testing.T) {
	asm, hadError, _ := generate(t, "var a = 1; var b = 2; print(a and b);")
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	if !strings.Contains(asm, "call    "+rtabi.Truthy) {
		t.Fatal("expected a truthiness test on the left operand")
	}
}

func TestArith_FallsBackToBoxedOp(t *testing.T) {
	asm, hadError, _ := generate(t, "var a = 1; var b = 2; print(a - b);")
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	if !strings.Contains(asm, "subsd") {
		t.Fatal("expected the unboxed subtract fast path")
	}
	if !strings.Contains(asm, "call    "+rtabi.Sub) {
		t.Fatal("expected the boxed fallback for non-number tags")
	}
}

func TestGNUStackNote_ClosesOutput(t *testing.T) {
	asm, _, _ := generate(t, "print(1);")
	if !strings.Contains(asm, `.section .note.GNU-stack,"",@progbits`) {
		t.Fatal("expected the GNU-stack note section")
	}
}

func TestForIn_CountedLoopOverArrayLen(t *testing.T) {
	asm, hadError, _ := generate(t, "for x in [10, 20, 30] { print(x) }")
	if hadError {
		t.Fatal("unexpected codegen error")
	}
	if !strings.Contains(asm, "call    "+rtabi.ArrayCreate) {
		t.Fatal("expected the array literal to go through the runtime constructor")
	}
	if !strings.Contains(asm, "call    "+rtabi.ArrayLen) || !strings.Contains(asm, "call    "+rtabi.ArrayGet) {
		t.Fatal("expected the loop to read the array through the runtime")
	}
}

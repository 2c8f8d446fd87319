package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/parser"
)

// TestEndToEndScenarios runs small complete programs through the full
// lex/parse/eval pipeline and snapshots each program's stdout.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
	}{
		{
			name:   "arithmetic_precedence",
			source: `print(2*9-6/3*5);`,
		},
		{
			name: "function_call",
			source: `fn add(a, b) { return a + b }
print(add(3, 4));`,
		},
		{
			name: "class_inheritance",
			source: `class Animal {
  fn init(n) { this.name = n }
  fn speak() { print(this.name) }
}
class Dog extends Animal {
  fn init(n) { super(n) }
}
var d = new Dog("Rex");
d.speak();`,
		},
		{
			name: "native_module_dispatch",
			source: `import "math";
print(math.sqrt(16));`,
		},
		{
			name:   "for_in_array",
			source: `for x in [10, 20, 30] { print(x) }`,
		},
		{
			name:   "string_plus_number",
			source: `print("n=" + 5);`,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			var out bytes.Buffer
			var errOut bytes.Buffer

			l := lexer.New(sc.source)
			p := parser.New(l)
			program := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("unexpected parse errors: %v", errs)
			}

			i := New(&out, &errOut, strings.NewReader(""), ".")
			i.Run(program)

			if i.HadError() {
				t.Fatalf("unexpected interpreter error: %s", errOut.String())
			}

			snaps.MatchSnapshot(t, sc.name+"_stdout", out.String())
		})
	}
}

// TestShortCircuitReturnsLastEvaluatedOperand: `and`/`or` return the
// deciding operand itself, not a coerced bool.
func TestShortCircuitReturnsLastEvaluatedOperand(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{`print(0 or "fallback");`, "fallback"},
		{`print(1 and 2);`, "2"},
		{`print(0 and 2);`, "0"},
		{`print("first" or "second");`, "first"},
	}
	for _, tc := range cases {
		var out, errOut bytes.Buffer
		l := lexer.New(tc.source)
		p := parser.New(l)
		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			t.Fatalf("%s: unexpected parse errors: %v", tc.source, errs)
		}
		i := New(&out, &errOut, strings.NewReader(""), ".")
		i.Run(program)
		if i.HadError() {
			t.Fatalf("%s: unexpected interpreter error: %s", tc.source, errOut.String())
		}
		if got := strings.TrimSpace(out.String()); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.source, tc.want, got)
		}
	}
}

// TestClosureCapturesDeclarationEnvironment pins down the closure
// capture rule directly: a closure observes the environment active at
// declaration, including writes made after it was declared.
func TestClosureCapturesDeclarationEnvironment(t *testing.T) {
	var out, errOut bytes.Buffer
	source := `var x = 1;
fn f() { return x }
x = 2;
print(f());`

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	i := New(&out, &errOut, strings.NewReader(""), ".")
	i.Run(program)
	if i.HadError() {
		t.Fatalf("unexpected interpreter error: %s", errOut.String())
	}

	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Fatalf("expected closure to observe x=2 at declaration time, got %q", got)
	}
}

// TestPostfixIncrementOnProperty: after `this.x = 3; this.x++`, `this.x`
// equals 4.
func TestPostfixIncrementOnProperty(t *testing.T) {
	var out, errOut bytes.Buffer
	source := `class C {
  fn init() { this.x = 3 }
  fn bump() { this.x++; return this.x }
}
var c = new C();
print(c.bump());`

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	i := New(&out, &errOut, strings.NewReader(""), ".")
	i.Run(program)
	if i.HadError() {
		t.Fatalf("unexpected interpreter error: %s", errOut.String())
	}

	if got := strings.TrimSpace(out.String()); got != "4" {
		t.Fatalf("expected this.x++ to yield 4, got %q", got)
	}
}

package ast

import (
	"testing"

	"github.com/xenly-lang/xenly/internal/token"
)

func ident(name string) *Identifier {
	return &Identifier{Token: token.New(token.IDENT, name, token.Position{}), Value: name}
}

func num(lit string, v float64) *NumberLiteral {
	return &NumberLiteral{Token: token.New(token.NUMBER, lit, token.Position{}), Value: v}
}

func TestProgramString(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&VarDeclStatement{
				Token: token.New(token.VAR, "var", token.Position{}),
				Name:  "x",
				Value: num("5", 5),
			},
		},
	}
	want := "var x = 5;\n"
	if got := prog.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBinaryExpressionString(t *testing.T) {
	expr := &BinaryExpression{
		Token:    token.New(token.PLUS, "+", token.Position{}),
		Left:     ident("a"),
		Operator: "+",
		Right:    num("1", 1),
	}
	want := "(a + 1)"
	if got := expr.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCallExpressionString(t *testing.T) {
	expr := &CallExpression{
		Token:     token.New(token.LPAREN, "(", token.Position{}),
		Callee:    ident("sum"),
		Arguments: []Expression{ident("a"), num("2", 2)},
	}
	want := "sum(a, 2)"
	if got := expr.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMethodCallExpressionString(t *testing.T) {
	expr := &MethodCallExpression{
		Token:     token.New(token.DOT, ".", token.Position{}),
		Object:    ident("math"),
		Method:    "sqrt",
		Arguments: []Expression{num("16", 16)},
	}
	want := "math.sqrt(16)"
	if got := expr.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIfStatementString(t *testing.T) {
	stmt := &IfStatement{
		Token:     token.New(token.IF, "if", token.Position{}),
		Condition: ident("ok"),
		Consequence: &BlockStatement{
			Token:      token.New(token.LBRACE, "{", token.Position{}),
			Statements: []Statement{},
		},
	}
	want := "if (ok) {\n}"
	if got := stmt.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestClassDeclStatementString(t *testing.T) {
	class := &ClassDeclStatement{
		Token: token.New(token.CLASS, "class", token.Position{}),
		Name:  "Point",
		Base:  "Shape",
		Methods: []*FunctionDeclStatement{
			{
				Token:      token.New(token.FN, "fn", token.Position{}),
				Name:       "init",
				Parameters: []*Param{{Name: "x"}},
				Body: &BlockStatement{
					Token:      token.New(token.LBRACE, "{", token.Position{}),
					Statements: []Statement{},
				},
			},
		},
	}
	got := class.String()
	want := "class Point extends Shape {\n  fn init(x) {\n}\n}"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestImportStatementForms(t *testing.T) {
	tests := []struct {
		name string
		stmt *ImportStatement
		want string
	}{
		{
			name: "bare path",
			stmt: &ImportStatement{Token: token.New(token.IMPORT, "import", token.Position{}), Path: "./util.xe"},
			want: `import "./util.xe";`,
		},
		{
			name: "aliased binding",
			stmt: &ImportStatement{Token: token.New(token.IMPORT, "import", token.Position{}), Path: "./util.xe", Alias: "util"},
			want: `import "./util.xe" as util;`,
		},
		{
			name: "wildcard binding",
			stmt: &ImportStatement{Token: token.New(token.IMPORT, "import", token.Position{}), Path: "./util.xe", Wildcard: true},
			want: `from "./util.xe" import *;`,
		},
		{
			name: "named specifiers",
			stmt: &ImportStatement{
				Token: token.New(token.IMPORT, "import", token.Position{}),
				Path:  "./util.xe",
				Names: []string{"a", "b"},
			},
			want: `from "./util.xe" import a, b;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stmt.String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

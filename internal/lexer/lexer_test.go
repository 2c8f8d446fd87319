package lexer

import (
	"testing"

	"github.com/xenly-lang/xenly/internal/token"
)

func TestNextToken_Operators(t *testing.T) {
	input := `var x = 5;
x += 1; x++; x--;
== != <= >= and or not`

	tests := []struct {
		typ     token.Type
		literal string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "x"},
		{token.PLUS_ASSIGN, "+="},
		{token.NUMBER, "1"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.INC, "++"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.DEC, "--"},
		{token.SEMICOLON, ";"},
		{token.NEWLINE, "\n"},
		{token.EQ, "=="},
		{token.NOT_EQ, "!="},
		{token.LESS_EQ, "<="},
		{token.GREATER_EQ, ">="},
		{token.AND, "and"},
		{token.OR, "or"},
		{token.NOT, "not"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("test[%d] - wrong type. expected=%s, got=%s (literal %q)", i, tt.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("test[%d] - wrong literal. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `fn class new this super extends export import from as print input typeof instanceof true false null async spawn await break continue while for do in if else return`
	expected := []token.Type{
		token.FN, token.CLASS, token.NEW, token.THIS, token.SUPER, token.EXTENDS,
		token.EXPORT, token.IMPORT, token.FROM, token.AS, token.PRINT, token.INPUT,
		token.TYPEOF, token.INSTANCEOF, token.TRUE, token.FALSE, token.NULL,
		token.ASYNC, token.SPAWN, token.AWAIT, token.BREAK, token.CONTINUE,
		token.WHILE, token.FOR, token.DO, token.IN, token.IF, token.ELSE, token.RETURN,
		token.EOF,
	}
	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("test[%d]: expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	l := New(`"hello\nworld\t\"quoted\"\\end"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	want := "hello\nworld\t\"quoted\"\\end"
	if tok.Literal != want {
		t.Fatalf("expected %q, got %q", want, tok.Literal)
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestNextToken_LineComment(t *testing.T) {
	l := New("var x = 1 # this is a comment\nvar y = 2")
	var kinds []token.Type
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		kinds = append(kinds, tok.Type)
	}
	// the comment must not produce any tokens of its own
	for _, k := range kinds {
		if k == token.ILLEGAL {
			t.Fatalf("unexpected illegal token from comment handling")
		}
	}
}

func TestNextToken_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123", "123"},
		{"3.14", "3.14"},
		{".5", ".5"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.NUMBER || tok.Literal != tt.want {
			t.Fatalf("input %q: expected NUMBER %q, got %s %q", tt.input, tt.want, tok.Type, tok.Literal)
		}
	}
}

func TestNextToken_IllegalByte(t *testing.T) {
	l := New("var x = @")
	var tok token.Token
	for {
		tok = l.NextToken()
		if tok.Type == token.ILLEGAL || tok.Type == token.EOF {
			break
		}
	}
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL token for '@', got %s", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected lexer error for illegal byte")
	}
}

func TestNextToken_UnicodeIdentifier(t *testing.T) {
	l := New("var Δx = 1")
	l.NextToken() // var
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "Δx" {
		t.Fatalf("expected unicode identifier Δx, got %s %q", tok.Type, tok.Literal)
	}
}

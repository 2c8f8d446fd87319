package modules

import (
	"testing"

	"github.com/xenly-lang/xenly/internal/value"
)

func TestMathSqrt(t *testing.T) {
	r := NewRegistry()
	m, ok := r.Lookup("math")
	if !ok {
		t.Fatal("expected math module to be registered")
	}
	result, err := m.Call("sqrt", []value.Value{value.NewNumber(16)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := result.(*value.Number)
	if !ok || n.Value != 4 {
		t.Fatalf("expected 4, got %v", result)
	}
}

func TestMathUnknownFunction(t *testing.T) {
	r := NewRegistry()
	m, _ := r.Lookup("math")
	if _, err := m.Call("nope", nil); err == nil {
		t.Fatal("expected an error calling an unknown native function")
	}
}

func TestStringModule(t *testing.T) {
	r := NewRegistry()
	m, ok := r.Lookup("string")
	if !ok {
		t.Fatal("expected string module to be registered")
	}

	tests := []struct {
		fn   string
		args []value.Value
		want string
	}{
		{"upper", []value.Value{value.NewString("abc")}, "ABC"},
		{"lower", []value.Value{value.NewString("ABC")}, "abc"},
		{"trim", []value.Value{value.NewString("  hi  ")}, "hi"},
		{"reverse", []value.Value{value.NewString("abc")}, "cba"},
		{"replace", []value.Value{value.NewString("aXbXc"), value.NewString("X"), value.NewString("-")}, "a-b-c"},
		{"substr", []value.Value{value.NewString("hello"), value.NewNumber(1), value.NewNumber(3)}, "ell"},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			result, err := m.Call(tt.fn, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			s, ok := result.(*value.String)
			if !ok || s.Value != tt.want {
				t.Fatalf("expected %q, got %v", tt.want, result)
			}
		})
	}
}

func TestStringLenAndContains(t *testing.T) {
	r := NewRegistry()
	m, _ := r.Lookup("string")

	lenResult, err := m.Call("len", []value.Value{value.NewString("hello")})
	if err != nil || lenResult.(*value.Number).Value != 5 {
		t.Fatalf("expected len 5, got %v (err=%v)", lenResult, err)
	}

	containsResult, err := m.Call("contains", []value.Value{value.NewString("hello"), value.NewString("ell")})
	if err != nil || !containsResult.(*value.Bool).Value {
		t.Fatalf("expected contains to be true, got %v (err=%v)", containsResult, err)
	}
}

func TestIOModuleRegistered(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("io"); !ok {
		t.Fatal("expected io module to be registered")
	}
	if _, ok := r.Lookup("nonexistent"); ok {
		t.Fatal("expected nonexistent module lookup to fail")
	}
}

func TestIOWriteUsesConfiguredOutput(t *testing.T) {
	r := NewRegistry()
	var captured string
	r.SetOutput(func(s string) { captured += s })

	m, _ := r.Lookup("io")
	if _, err := m.Call("writeln", []value.Value{value.NewString("hi"), value.NewNumber(1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != "hi 1\n" {
		t.Fatalf("expected %q, got %q", "hi 1\n", captured)
	}
}

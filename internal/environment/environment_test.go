package environment

import (
	"testing"

	"github.com/xenly-lang/xenly/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", value.NewNumber(42))

	v, ok := env.Get("x")
	if !ok {
		t.Fatal("expected x to be defined")
	}
	n, ok := v.(*value.Number)
	if !ok || n.Value != 42 {
		t.Fatalf("expected number 42, got %#v", v)
	}
}

func TestGetUndefined(t *testing.T) {
	env := New()
	if _, ok := env.Get("missing"); ok {
		t.Fatal("expected missing to be undefined")
	}
}

func TestEnclosedScopeShadowsOuter(t *testing.T) {
	outer := New()
	outer.Define("x", value.NewNumber(1))

	inner := NewEnclosed(outer)
	inner.Define("x", value.NewNumber(2))

	innerVal, _ := inner.Get("x")
	if innerVal.(*value.Number).Value != 2 {
		t.Fatalf("expected inner x to be 2, got %v", innerVal)
	}

	outerVal, _ := outer.Get("x")
	if outerVal.(*value.Number).Value != 1 {
		t.Fatalf("expected outer x to remain 1, got %v", outerVal)
	}
}

func TestEnclosedScopeSeesOuterBinding(t *testing.T) {
	outer := New()
	outer.Define("x", value.NewNumber(1))
	inner := NewEnclosed(outer)

	v, ok := inner.Get("x")
	if !ok || v.(*value.Number).Value != 1 {
		t.Fatalf("expected inner scope to see outer x=1, got %v, ok=%v", v, ok)
	}
}

func TestSetWritesThroughToDefiningScope(t *testing.T) {
	outer := New()
	outer.Define("x", value.NewNumber(1))
	inner := NewEnclosed(outer)

	if err := inner.Set("x", value.NewNumber(99)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outerVal, _ := outer.Get("x")
	if outerVal.(*value.Number).Value != 99 {
		t.Fatalf("expected outer x to become 99, got %v", outerVal)
	}
}

func TestSetUndefinedReturnsError(t *testing.T) {
	env := New()
	if err := env.Set("missing", value.NewNumber(1)); err == nil {
		t.Fatal("expected an error assigning to an undefined variable")
	}
}

func TestGetLocalDoesNotSearchOuter(t *testing.T) {
	outer := New()
	outer.Define("x", value.NewNumber(1))
	inner := NewEnclosed(outer)

	if _, ok := inner.GetLocal("x"); ok {
		t.Fatal("expected GetLocal to ignore the outer scope")
	}
}

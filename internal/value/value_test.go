package value

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null is falsy", NullValue, false},
		{"false is falsy", NewBool(false), false},
		{"true is truthy", NewBool(true), true},
		{"zero is falsy", NewNumber(0), false},
		{"nonzero is truthy", NewNumber(1), true},
		{"negative is truthy", NewNumber(-1), true},
		{"empty string is falsy", NewString(""), false},
		{"nonempty string is truthy", NewString("x"), true},
		{"array is truthy", NewArray(nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal(NewNumber(1), NewNumber(1)) {
		t.Error("expected 1 == 1")
	}
	if Equal(NewNumber(1), NewNumber(2)) {
		t.Error("expected 1 != 2")
	}
	if !Equal(NewString("a"), NewString("a")) {
		t.Error("expected \"a\" == \"a\"")
	}
	if !Equal(NullValue, NullValue) {
		t.Error("expected null == null")
	}
	if Equal(NewNumber(1), NewString("1")) {
		t.Error("expected different tags to compare unequal")
	}
	a := NewArray([]Value{NewNumber(1)})
	b := NewArray([]Value{NewNumber(1)})
	if Equal(a, b) {
		t.Error("expected distinct array instances to compare unequal (identity semantics)")
	}
	if !Equal(a, a) {
		t.Error("expected an array to equal itself")
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{5, "5"},
		{-3, "-3"},
		{3.14, "3.14"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := NewNumber(tt.v).String(); got != tt.want {
			t.Errorf("NewNumber(%v).String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestArrayString(t *testing.T) {
	arr := NewArray([]Value{NewNumber(1), NewString("a"), NewBool(true)})
	want := `[1, "a", true]`
	if got := arr.String(); got != want {
		t.Errorf("Array.String() = %q, want %q", got, want)
	}
}

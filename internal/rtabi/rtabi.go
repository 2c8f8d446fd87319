// Package rtabi mirrors runtime/xly_rt.h's symbol contract on the Go
// side, so tests and tools that inspect the assembly internal/codegen
// emits can refer to the runtime's calling-convention facts by name
// instead of re-deriving them from the emitted text.
package rtabi

// Symbol names internal/codegen emits `call`s to. Kept as named
// constants (rather than inlined string literals in codegen.go) for the
// functions a second tool — an emitted-assembly checker, a future
// constant-folding pass — needs to recognize by name; internal/codegen
// itself does not import this package and writes every symbol inline.
const (
	Num    = "xly_num"
	Str    = "xly_str"
	Bool   = "xly_bool"
	Null   = "xly_null"
	Add    = "xly_add"
	Sub    = "xly_sub"
	Mul    = "xly_mul"
	Div    = "xly_div"
	Mod    = "xly_mod"
	Neg    = "xly_neg"
	Not    = "xly_not"
	Eq     = "xly_eq"
	Neq    = "xly_neq"
	Lt     = "xly_lt"
	Gt     = "xly_gt"
	Lte    = "xly_lte"
	Gte    = "xly_gte"
	Truthy = "xly_truthy"
	Index  = "xly_index"
	Print  = "xly_print"
	Input  = "xly_input"
	Typeof = "xly_typeof"

	ArrayCreate = "xly_array_create"
	ArrayLen    = "xly_array_len"
	ArrayGet    = "xly_array_get"
	ArraySet    = "xly_array_set"
	ArrayPush   = "xly_array_push"

	CallModule = "xly_call_module"
	Exit       = "xly_exit"
)

// ArgRegisters lists the System V AMD64 integer argument registers in
// order, the same table internal/codegen spills named-function
// parameters into and packs direct-call arguments through.
var ArgRegisters = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// NativeModules enumerates the stdlib catalog runtime/xly_rt.c links in
// statically for xly_call_module, kept here so a test can assert the
// compiled and interpreted backends expose the same surface (internal/
// modules.NewRegistry on the interpreter side).
var NativeModules = map[string][]string{
	"math":   {"abs", "sqrt", "floor", "ceil", "round", "sin", "cos", "log", "pow", "max", "min", "random"},
	"string": {"len", "upper", "lower", "contains", "repeat", "reverse", "trim", "replace", "substr"},
	"io":     {"write", "writeln", "read"},
}

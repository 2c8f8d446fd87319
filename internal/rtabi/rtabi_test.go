package rtabi_test

import (
	"testing"

	"github.com/xenly-lang/xenly/internal/modules"
	"github.com/xenly-lang/xenly/internal/rtabi"
)

// TestNativeModuleCatalogMatchesInterpreter pins the compiled runtime's
// module surface (as declared here) to the interpreter's registry, so the
// two backends can't silently drift apart.
func TestNativeModuleCatalogMatchesInterpreter(t *testing.T) {
	reg := modules.NewRegistry()
	for name, fns := range rtabi.NativeModules {
		m, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("module %q missing from the interpreter registry", name)
		}
		if len(m.Functions) != len(fns) {
			t.Errorf("module %q: %d functions here, %d in the interpreter registry",
				name, len(fns), len(m.Functions))
		}
		for _, fn := range fns {
			if _, ok := m.Functions[fn]; !ok {
				t.Errorf("module %q: function %q missing from the interpreter registry", name, fn)
			}
		}
	}
}

package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/parser"
)

func runSource(t *testing.T, dir, source string) (*Interpreter, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	i := New(&out, &errOut, strings.NewReader(""), dir)
	i.Run(program)
	return i, out.String(), errOut.String()
}

func writeModule(t *testing.T, dir, name, source string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUserModuleImport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.xe", `export fn double(x) { return x * 2 }
`)
	i, out, errOut := runSource(t, dir, `import "util";
print(util.double(21));`)
	if i.HadError() {
		t.Fatalf("unexpected error: %s", errOut)
	}
	if got := strings.TrimSpace(out); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
}

func TestUserModuleSelectiveImport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.xe", `export fn double(x) { return x * 2 }
export fn triple(x) { return x * 3 }
`)
	i, out, errOut := runSource(t, dir, `from "util" import triple;
print(triple(5));`)
	if i.HadError() {
		t.Fatalf("unexpected error: %s", errOut)
	}
	if got := strings.TrimSpace(out); got != "15" {
		t.Fatalf("expected 15, got %q", got)
	}
}

func TestUserModuleWildcardImport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.xe", `export fn double(x) { return x * 2 }
`)
	i, out, errOut := runSource(t, dir, `from "util" import *;
print(double(4));`)
	if i.HadError() {
		t.Fatalf("unexpected error: %s", errOut)
	}
	if got := strings.TrimSpace(out); got != "8" {
		t.Fatalf("expected 8, got %q", got)
	}
}

func TestUserModuleLoadedOnce(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "loud.xe", `print("loaded");
export fn id(x) { return x }
`)
	i, out, errOut := runSource(t, dir, `import "loud";
import "loud" as again;
print(again.id(1));`)
	if i.HadError() {
		t.Fatalf("unexpected error: %s", errOut)
	}
	if got := strings.Count(out, "loaded"); got != 1 {
		t.Fatalf("expected the module body to run exactly once, saw %d runs", got)
	}
}

func TestCircularImportFailsFast(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.xe", `print("body-a");
import "b";
export fn fa() { return 1 }
`)
	writeModule(t, dir, "b.xe", `import "a";
export fn fb() { return 2 }
`)
	i, out, errOut := runSource(t, dir, `import "a";`)
	if !i.HadError() {
		t.Fatal("expected circular import to set the error flag")
	}
	if !strings.Contains(errOut, "circular import") {
		t.Fatalf("expected a circular-import diagnostic, got %q", errOut)
	}
	if got := strings.Count(out, "body-a"); got != 1 {
		t.Fatalf("expected module a's body to run exactly once, saw %d runs", got)
	}
}

func TestUnknownExportIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.xe", `export fn double(x) { return x * 2 }
`)
	i, _, errOut := runSource(t, dir, `from "util" import nope;`)
	if !i.HadError() {
		t.Fatal("expected importing an unknown export to fail")
	}
	if !strings.Contains(errOut, "no export") {
		t.Fatalf("expected an unknown-export diagnostic, got %q", errOut)
	}
}

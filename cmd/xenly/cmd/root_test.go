package cmd

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/parser"
)

func TestTokenDump(t *testing.T) {
	var buf bytes.Buffer
	dumpTokenStream(&buf, "var x = 1 + 2;\nprint(x);")
	snaps.MatchSnapshot(t, buf.String())
}

func TestASTDump(t *testing.T) {
	l := lexer.New(`if (x > 1) { print(x) } else { print(0) }
for i in [1, 2] { print(i) }`)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	snaps.MatchSnapshot(t, prog.String())
}

// Package errors formats the diagnostics emitted by the lexer, parser,
// and interpreter into the single wire format every Xenly tool agrees on:
// `[Xenly Error] Line N: <message>`, optionally in red when writing to a
// terminal.
package errors

import (
	"fmt"
	"strings"

	"github.com/xenly-lang/xenly/internal/token"
)

// Kind classifies a diagnostic by the pipeline stage that produced it.
type Kind int

const (
	Lexical Kind = iota
	Parse
	Resolution
	Runtime
	Codegen
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Parse:
		return "parse"
	case Resolution:
		return "resolution"
	case Runtime:
		return "runtime"
	case Codegen:
		return "codegen"
	default:
		return "error"
	}
}

// Diagnostic is one reported problem, tagged with the source line it
// occurred on.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

func New(kind Kind, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface with the plain (uncolored) form.
func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders `[Xenly Error] Line N: <message>`, wrapped in ANSI red
// when color is true.
func (d *Diagnostic) Format(color bool) string {
	body := fmt.Sprintf("[Xenly Error] Line %d: %s", d.Pos.Line, d.Message)
	if !color {
		return body
	}
	return "\033[31m" + body + "\033[0m"
}

// FormatAll renders every diagnostic in order, one per line.
func FormatAll(diags []*Diagnostic, color bool) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.Format(color)
	}
	return strings.Join(lines, "\n")
}

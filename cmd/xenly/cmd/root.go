// Package cmd implements the xenly command: the flag-only driver for
// Xenly's tree-walking interpreter. The CLI surface is a single command,
// `xenly [flags] <file.xe>`, so there is one cobra.Command here rather
// than a subcommand tree.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/interp"
	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/parser"
	"github.com/xenly-lang/xenly/internal/token"
)

// Version is stamped by build flags; left as a plain default otherwise.
var Version = "0.1.0-dev"

var (
	dumpTokens bool
	dumpAST    bool
)

var rootCmd = &cobra.Command{
	Use:   "xenly [flags] <file.xe>",
	Short: "Run a Xenly program",
	Long: `xenly runs a Xenly source file with the tree-walking interpreter.

Examples:
  xenly script.xe
  xenly --tokens script.xe
  xenly --ast script.xe`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runFile,
}

// Execute runs the root command; main exits non-zero if it returns an error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("xenly version {{.Version}}\n")
	rootCmd.Flags().BoolVar(&dumpTokens, "tokens", false, "dump the token stream and exit")
	rootCmd.Flags().BoolVar(&dumpAST, "ast", false, "dump the parsed AST and exit")
}

func runFile(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("xenly: exactly one source file is required")
	}
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("xenly: %w", err)
	}
	source := string(content)
	color := isTerminal(os.Stderr)

	if dumpTokens {
		dumpTokenStream(os.Stdout, source)
		return nil
	}

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if dumpAST {
		fmt.Println(program.String())
	}

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatAll(errs, color))
		return fmt.Errorf("xenly: parsing failed with %d error(s)", len(errs))
	}
	if dumpAST {
		return nil
	}

	i := interp.New(os.Stdout, os.Stderr, os.Stdin, filepath.Dir(filename))
	i.SetColor(color)
	i.Run(program)
	if i.HadError() {
		return fmt.Errorf("xenly: execution failed")
	}
	return nil
}

// dumpTokenStream prints every token the lexer produces, one per line.
func dumpTokenStream(w io.Writer, source string) {
	l := lexer.New(source)
	for {
		tok := l.NextToken()
		fmt.Fprintf(w, "[%-12s] %q @%d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		if tok.Type == token.EOF {
			break
		}
	}
}

// isTerminal reports whether w is connected to a terminal, deciding
// whether diagnostics get ANSI color.
func isTerminal(w *os.File) bool {
	info, err := w.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

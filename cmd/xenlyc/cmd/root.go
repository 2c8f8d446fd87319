// Package cmd implements the xenlyc command: the flag-only driver for
// Xenly's native x86-64 compiler. As with cmd/xenly, this is one
// cobra.Command rather than a subcommand tree, since xenlyc's entire
// surface is `xenlyc [flags] <file.xe>`.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xenly-lang/xenly/internal/codegen"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/parser"
)

// Version is stamped by build flags; left as a plain default otherwise.
var Version = "0.1.0-dev"

var (
	outputPath  string
	emitAsmOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "xenlyc [flags] <file.xe>",
	Short: "Compile a Xenly program to a native binary",
	Long: `xenlyc lowers a Xenly source file to x86-64 assembly and, unless
--emit-asm is given, assembles and links it into a native executable
against the Xenly runtime library.

Examples:
  xenlyc script.xe -o script
  xenlyc --emit-asm script.xe`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          compileFile,
}

// Execute runs the root command; main exits non-zero if it returns an error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("xenlyc version {{.Version}}\n")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "a.out", "output binary path")
	rootCmd.Flags().BoolVar(&emitAsmOnly, "emit-asm", false, "stop after writing <input>.s, skipping assemble+link")
}

func compileFile(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("xenlyc: exactly one source file is required")
	}
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("xenlyc: %w", err)
	}
	color := isTerminal(os.Stderr)

	l := lexer.New(string(content))
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatAll(errs, color))
		return fmt.Errorf("xenlyc: parsing failed with %d error(s)", len(errs))
	}

	g := codegen.New()
	asm, hadError := g.Generate(program)
	for _, w := range g.Warnings() {
		fmt.Fprintf(os.Stderr, "[Xenly Warning] %s\n", w)
	}
	if hadError {
		fmt.Fprintln(os.Stderr, "[Xenly Error] codegen: program uses a construct the native backend does not support")
		return fmt.Errorf("xenlyc: code generation failed")
	}

	asmPath := sourceWithExt(filename, ".s")
	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		return fmt.Errorf("xenlyc: %w", err)
	}
	if emitAsmOnly {
		return nil
	}

	objPath := sourceWithExt(filename, ".o")
	defer os.Remove(asmPath)
	defer os.Remove(objPath)

	if err := run("as", "--64", "-o", objPath, asmPath); err != nil {
		return fmt.Errorf("xenlyc: assemble failed: %w", err)
	}

	driverDir, err := driverDir()
	if err != nil {
		return fmt.Errorf("xenlyc: %w", err)
	}
	if err := run("gcc", "-o", outputPath, objPath, "-L"+driverDir, "-lxly_rt", "-lm"); err != nil {
		return fmt.Errorf("xenlyc: link failed: %w", err)
	}
	return nil
}

// sourceWithExt swaps filename's extension for ext, e.g. "foo.xe" -> "foo.s".
func sourceWithExt(filename, ext string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + ext
}

// driverDir is the directory the runtime's libxly_rt.a is expected to
// live in, alongside the xenlyc binary itself.
func driverDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func run(name string, args ...string) error {
	c := exec.Command(name, args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
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

// Package compiler wires the lexer, parser, checker, and target backends
// into the single-call driver the CLI and tests use.
package compiler

import (
	"fmt"
	"os"

	"github.com/faberlang/faber/internal/backend"
	"github.com/faberlang/faber/internal/checker"
	"github.com/faberlang/faber/internal/diagnostic"
	"github.com/faberlang/faber/internal/linter"
	"github.com/faberlang/faber/internal/parser"

	_ "github.com/faberlang/faber/internal/cppgen"
	_ "github.com/faberlang/faber/internal/fabgen"
	_ "github.com/faberlang/faber/internal/pygen"
	_ "github.com/faberlang/faber/internal/rsgen"
	_ "github.com/faberlang/faber/internal/tsgen"
	_ "github.com/faberlang/faber/internal/ziggen"
)

// Result holds the output of a compilation attempt.
type Result struct {
	Diagnostics *diagnostic.Diagnostics
	Source      string
	Target      string
}

// Compile runs parse -> check -> generate for the named target ("cpp",
// "rs", "py", "zig", "ts", "fab"). Diagnostics accumulated during parsing
// or checking are always returned; Source is only populated when there
// are no errors.
func Compile(source, target string) *Result {
	res := &Result{Target: target}

	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		res.Diagnostics = p.Diagnostics()
		return res
	}

	c := checker.New()
	c.Check(prog)
	res.Diagnostics = c.Diagnostics()
	if res.Diagnostics.HasErrors() {
		return res
	}

	b, ok := backend.Get(target)
	if !ok {
		res.Diagnostics.ErrorfForTarget(target, 0, 0, "unknown target %q (known: %v)", target, backend.Names())
		return res
	}

	out, err := b.Generate(prog)
	if err != nil {
		res.Diagnostics.ErrorfForTarget(target, 0, 0, "generation failed: %s", err)
		return res
	}
	res.Source = out
	return res
}

// Check runs parse + check only, with no codegen.
func Check(source string) *diagnostic.Diagnostics {
	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		return p.Diagnostics()
	}
	c := checker.New()
	c.Check(prog)
	return c.Diagnostics()
}

// Lint runs parse + check, then adds style warnings from the linter. The
// linter never runs over a program that failed checking.
func Lint(source string) *diagnostic.Diagnostics {
	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		return p.Diagnostics()
	}
	c := checker.New()
	c.Check(prog)
	diags := c.Diagnostics()
	if diags.HasErrors() {
		return diags
	}
	for _, d := range linter.Lint(prog).All() {
		diags.Warningf(d.Line, d.Column, "%s", d.Message)
	}
	return diags
}

// Emit runs the full pipeline and writes the generated source to outPath.
func Emit(source, target, outPath string) error {
	res := Compile(source, target)
	if res.Diagnostics != nil && res.Diagnostics.HasErrors() {
		return fmt.Errorf("compilation errors:\n%s", res.Diagnostics.Format("input"))
	}
	return os.WriteFile(outPath, []byte(res.Source), 0644)
}

// Targets returns every registered target selector.
func Targets() []string {
	return backend.Names()
}

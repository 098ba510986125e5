package checker

import (
	"testing"

	"github.com/faberlang/faber/internal/parser"
)

func checkSource(t *testing.T, source string) *Checker {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Diagnostics().Format("<test>"))
	}
	c := New()
	c.Check(prog)
	return c
}

func TestCheckScriptumPlaceholderMismatch(t *testing.T) {
	c := checkSource(t, `varia s <- scriptum "§ and §" (x);`)
	if !c.Diagnostics().HasErrors() {
		t.Fatal("expected an error for mismatched placeholder count")
	}
}

func TestCheckScriptumPlaceholderMatch(t *testing.T) {
	c := checkSource(t, `varia s <- scriptum "§ and §" (x, y);`)
	if c.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %s", c.Diagnostics().Format("<test>"))
	}
}

func TestCheckRegexFlags(t *testing.T) {
	c := checkSource(t, `varia r <- sed "a+" gi;`)
	if c.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %s", c.Diagnostics().Format("<test>"))
	}
}

func TestCheckEligeAtMostOneDefault(t *testing.T) {
	c := checkSource(t, `elige (x) { si 1 { redde 1; } secus { redde 0; } }`)
	if c.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %s", c.Diagnostics().Format("<test>"))
	}
}

func TestCheckTemptaRequiresHandler(t *testing.T) {
	c := checkSource(t, `tempta { iace "x"; } cape (e) { scribe(e); }`)
	if c.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %s", c.Diagnostics().Format("<test>"))
	}
}

package ziggen

import (
	"strings"
	"testing"

	"github.com/faberlang/faber/internal/parser"
)

func generate(t *testing.T, source string) string {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Diagnostics().Format("<test>"))
	}
	out, err := (&Backend{}).Generate(prog)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return out
}

func TestGenerateFunctionDecl(t *testing.T) {
	out := generate(t, `functio adde(a: Numerus, b: Numerus) -> Numerus { redde a + b; }`)
	if !strings.Contains(out, "pub fn adde(a: i64, b: i64) i64 {") {
		t.Fatalf("missing function signature: %s", out)
	}
}

func TestGenerateFacDoWhileLowersToWhileTrue(t *testing.T) {
	out := generate(t, `fac { perge; } dum (verum);`)
	if !strings.Contains(out, "while (true) {") || !strings.Contains(out, "if (!(true)) break;") {
		t.Fatalf("expected while-true-break lowering, got: %s", out)
	}
}

func TestGenerateTemptaUsesNativeDefer(t *testing.T) {
	out := generate(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { perge; }`)
	if !strings.Contains(out, "defer {") {
		t.Fatalf("expected native defer for demum, got: %s", out)
	}
	if !strings.Contains(out, "else |e| {") {
		t.Fatalf("expected error-union capture for cape, got: %s", out)
	}
}

func TestGeneratePactumDeclFallsBackToComment(t *testing.T) {
	out := generate(t, `pactum Forma { area() -> Pars; }`)
	if !strings.Contains(out, "// pactum Forma (Zig has no interface type; structural contract only)") {
		t.Fatalf("expected structural-contract comment, got: %s", out)
	}
	if !strings.Contains(out, "//   fn area() f64") {
		t.Fatalf("expected method signature comment, got: %s", out)
	}
}

func TestGenerateOrdoDecl(t *testing.T) {
	out := generate(t, `ordo Color { Ruber, Viridis: "g", Caeruleus }`)
	if !strings.Contains(out, "pub const Color = enum {") {
		t.Fatalf("expected enum declaration, got: %s", out)
	}
}

func TestGenerateOrdoDeclMembersAreLowercased(t *testing.T) {
	out := generate(t, `ordo Color { Ruber, Caeruleus }`)
	if !strings.Contains(out, "ruber,") || !strings.Contains(out, "caeruleus,") {
		t.Fatalf("expected lowercased member names per Zig naming convention, got: %s", out)
	}
	if strings.Contains(out, "Ruber,") || strings.Contains(out, "Caeruleus,") {
		t.Fatalf("expected no verbatim-cased member names, got: %s", out)
	}
}

func TestGenerateIntraMembership(t *testing.T) {
	out := generate(t, `varia x <- 5; varia ok <- x intra 1 ... 10;`)
	if !strings.Contains(out, "<= x and x <=") {
		t.Fatalf("expected two-sided comparison for intra, got: %s", out)
	}
}

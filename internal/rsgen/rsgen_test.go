package rsgen

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
	if !strings.Contains(out, "fn adde(a: i64, b: i64) -> i64") {
		t.Fatalf("missing function signature: %s", out)
	}
}

func TestGenerateFacDoWhileLowersToLoop(t *testing.T) {
	out := generate(t, `fac { perge; } dum (verum);`)
	if !strings.Contains(out, "loop {") || !strings.Contains(out, "if !(true) {") {
		t.Fatalf("expected loop-with-break lowering, got: %s", out)
	}
}

func TestGenerateTemptaEmitsDropGuard(t *testing.T) {
	out := generate(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { perge; }`)
	if !strings.Contains(out, "impl<F: FnMut()> Drop for") {
		t.Fatalf("expected Drop-impl guard for demum, got: %s", out)
	}
	if !strings.Contains(out, "catch_unwind") {
		t.Fatalf("expected catch_unwind for cape, got: %s", out)
	}
}

func TestGenerateArraySpreadIsLossyComment(t *testing.T) {
	out := generate(t, `varia xs <- [1, 2]; varia ys <- [0, ...xs, 3];`)
	if !strings.Contains(out, "not expressible inline") {
		t.Fatalf("expected lossy spread comment, got: %s", out)
	}
}

func TestGenerateOrdoDecl(t *testing.T) {
	out := generate(t, `ordo Color { Ruber, Viridis: "g", Caeruleus }`)
	if !strings.Contains(out, "enum Color {") {
		t.Fatalf("expected enum, got: %s", out)
	}
}

func TestGeneratePactumDeclEmitsTrait(t *testing.T) {
	out := generate(t, `pactum Forma { area() -> Pars; }`)
	if !strings.Contains(out, "trait Forma {") || !strings.Contains(out, "fn area(&self) -> f64;") {
		t.Fatalf("expected trait with method signature, got: %s", out)
	}
}

func TestGenerateFingeUnitVariantEmitsBarePath(t *testing.T) {
	out := generate(t, `varia v <- finge Vacuum;`)
	if !strings.Contains(out, "Vacuum;") {
		t.Fatalf("expected bare path for a payload-less variant, got: %s", out)
	}
	if strings.Contains(out, "Vacuum {") {
		t.Fatalf("expected no empty braces for a unit variant, got: %s", out)
	}
}

func TestGenerateFingePayloadVariantEmitsBraces(t *testing.T) {
	out := generate(t, `varia v <- finge Plenum { x: 1 };`)
	if !strings.Contains(out, "Plenum { x: 1 }") {
		t.Fatalf("expected payload variant with fields, got: %s", out)
	}
}

func TestGenerateProbandumEmitsCfgTestMod(t *testing.T) {
	out := generate(t, `probandum "mathematica" {
		praepara { varia x <- 1; }
		proba "addit" { adfirma(verum); }
	}`)
	if !strings.Contains(out, "// Test suite: mathematica") {
		t.Fatalf("expected test-suite comment, got: %s", out)
	}
	if !strings.Contains(out, "#[cfg(test)]") || !strings.Contains(out, "mod tests {") {
		t.Fatalf("expected #[cfg(test)] mod tests block, got: %s", out)
	}
}

func TestGenerateIntraMembership(t *testing.T) {
	out := generate(t, `varia x <- 5; varia ok <- x intra 1 ... 10;`)
	if !strings.Contains(out, "<= x && x <=") {
		t.Fatalf("expected two-sided comparison for intra, got: %s", out)
	}
}

package cppgen

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
	if !strings.Contains(out, "adde") || !strings.Contains(out, "return a + b;") {
		t.Fatalf("missing function body: %s", out)
	}
	if !strings.Contains(out, "long long") {
		t.Fatalf("expected Numerus mapped to long long: %s", out)
	}
}

func TestGenerateFacDoWhile(t *testing.T) {
	out := generate(t, `fac { perge; } dum (verum);`)
	if !strings.Contains(out, "do {") || !strings.Contains(out, "} while (true);") {
		t.Fatalf("expected native do-while, got: %s", out)
	}
}

func TestGenerateTemptaEmitsScopeGuard(t *testing.T) {
	out := generate(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { perge; }`)
	if !strings.Contains(out, "ScopeGuard") {
		t.Fatalf("expected ScopeGuard RAII lowering for demum, got: %s", out)
	}
	if !strings.Contains(out, "catch") {
		t.Fatalf("expected catch clause for cape, got: %s", out)
	}
}

func TestGenerateOrdoDecl(t *testing.T) {
	out := generate(t, `ordo Color { Ruber, Viridis: "g", Caeruleus }`)
	if !strings.Contains(out, "enum class Color") {
		t.Fatalf("expected enum class, got: %s", out)
	}
}

func TestGeneratePactumDecl(t *testing.T) {
	out := generate(t, `pactum Forma { area() -> Pars; }`)
	if !strings.Contains(out, "class Forma") || !strings.Contains(out, "virtual") {
		t.Fatalf("expected abstract base class, got: %s", out)
	}
}

func TestGenerateRangeExpr(t *testing.T) {
	out := generate(t, `varia r <- 1 ... 10 per 2;`)
	if !strings.Contains(out, "std::views::iota") || !strings.Contains(out, "stride") {
		t.Fatalf("expected iota/stride range lowering, got: %s", out)
	}
}

func TestGenerateScriptumExpr(t *testing.T) {
	out := generate(t, `varia x <- 1; varia s <- scriptum "valor: §" (x);`)
	if !strings.Contains(out, "std::format") {
		t.Fatalf("expected std::format call, got: %s", out)
	}
}

func TestGenerateNovumWithInitAssignsBoundTemporary(t *testing.T) {
	out := generate(t, `varia o <- novum Punctum(1, 2) de origo;`)
	if !strings.Contains(out, "auto __o = Punctum(1, 2); __o = origo; return __o;") {
		t.Fatalf("expected withExpression applied onto the bound temporary, got: %s", out)
	}
}

func TestGenerateIntraMembership(t *testing.T) {
	out := generate(t, `varia x <- 5; varia ok <- x intra 1 ... 10;`)
	if !strings.Contains(out, "<=") {
		t.Fatalf("expected two-sided comparison for intra, got: %s", out)
	}
}

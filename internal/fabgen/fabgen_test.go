package fabgen

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

func TestGenerateFunctionDeclRoundTrips(t *testing.T) {
	out := generate(t, `functio adde(a: Numerus, b: Numerus) -> Numerus { redde a + b; }`)
	if !strings.Contains(out, "functio adde(a: Numerus, b: Numerus) -> Numerus {") {
		t.Fatalf("missing function signature: %s", out)
	}
	if !strings.Contains(out, "redde a + b;") {
		t.Fatalf("missing return statement: %s", out)
	}
}

func TestGenerateAsyncFunctionDecl(t *testing.T) {
	out := generate(t, `fiet functio fetch() { redde nihil; }`)
	if !strings.Contains(out, "fiet functio fetch() {") {
		t.Fatalf("expected fiet functio prefix, got: %s", out)
	}
}

func TestGenerateSiAlioquiChain(t *testing.T) {
	out := generate(t, `si (x) { redde 1; } alioqui si (y) { redde 2; } alioqui { redde 3; }`)
	if !strings.Contains(out, "si (x) {") || !strings.Contains(out, "} alioqui si (y) {") || !strings.Contains(out, "} secus {") {
		t.Fatalf("expected si/alioqui/secus chain, got: %s", out)
	}
}

func TestGenerateFacDoWhile(t *testing.T) {
	out := generate(t, `fac { perge; } dum (verum);`)
	if !strings.Contains(out, "fac {") || !strings.Contains(out, "} dum (verum);") {
		t.Fatalf("expected fac/dum form, got: %s", out)
	}
}

func TestGenerateFacPlain(t *testing.T) {
	out := generate(t, `fac { rumpe; }`)
	if !strings.Contains(out, "fac {") || strings.Contains(out, "dum") {
		t.Fatalf("expected plain fac with no dum clause, got: %s", out)
	}
}

func TestGenerateTemptaCapeDemum(t *testing.T) {
	out := generate(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { perge; }`)
	if !strings.Contains(out, "tempta {") || !strings.Contains(out, `iace "boom";`) {
		t.Fatalf("expected tempta/iace, got: %s", out)
	}
	if !strings.Contains(out, "cape (e) {") || !strings.Contains(out, "demum {") {
		t.Fatalf("expected cape and demum clauses, got: %s", out)
	}
}

func TestGenerateRangeExprInclusiveWithStep(t *testing.T) {
	out := generate(t, `varia r <- 1 ... 10 per 2;`)
	if !strings.Contains(out, "1 ... 10 per 2") {
		t.Fatalf("expected canonical inclusive range with step, got: %s", out)
	}
}

func TestGenerateScriptumExpr(t *testing.T) {
	out := generate(t, `varia x <- 1; varia s <- scriptum "valor: §" (x);`)
	if !strings.Contains(out, `scriptum "valor: §" (x)`) {
		t.Fatalf("expected canonical scriptum form, got: %s", out)
	}
}

func TestGenerateOrdoDecl(t *testing.T) {
	out := generate(t, `ordo Color { Ruber, Viridis: "g", Caeruleus }`)
	if !strings.Contains(out, "ordo Color {") || !strings.Contains(out, "Ruber,") || !strings.Contains(out, "Caeruleus,") {
		t.Fatalf("expected ordo with members, got: %s", out)
	}
}

func TestGeneratePactumDecl(t *testing.T) {
	out := generate(t, `pactum Forma { area() -> Pars; }`)
	if !strings.Contains(out, "pactum Forma {") || !strings.Contains(out, "functio area() -> Pars;") {
		t.Fatalf("expected pactum with method signature, got: %s", out)
	}
}

func TestGenerateClosureExpr(t *testing.T) {
	out := generate(t, `varia f <- (a, b) => a + b;`)
	if !strings.Contains(out, "(a, b) => a + b") {
		t.Fatalf("expected closure round-trip, got: %s", out)
	}
}

func TestGenerateCollectionDSLExpr(t *testing.T) {
	out := generate(t, `varia r <- xs qua filge(x => x) qua collige();`)
	if !strings.Contains(out, "xs qua filge((x) => x) qua collige()") {
		t.Fatalf("expected collection DSL chain round-trip, got: %s", out)
	}
}

func TestGenerateNovumExprWithInit(t *testing.T) {
	out := generate(t, `varia o <- novum Punctum(1, 2) de origo;`)
	if !strings.Contains(out, "novum Punctum(1, 2) de origo") {
		t.Fatalf("expected novum...de round-trip, got: %s", out)
	}
}

func TestGenerateCustodiStmt(t *testing.T) {
	out := generate(t, `custodi { si x { redde 1; } si y { redde 2; } }`)
	if !strings.Contains(out, "custodi {") || strings.Count(out, "si ") < 2 {
		t.Fatalf("expected custodi with multiple clauses, got: %s", out)
	}
}

func TestGenerateProbandumStmt(t *testing.T) {
	out := generate(t, `probandum "mathematica" {
		praepara { varia x <- 1; }
		proba "addit" { adfirma(verum); }
	}`)
	if !strings.Contains(out, `probandum "mathematica" {`) {
		t.Fatalf("expected probandum header, got: %s", out)
	}
	if !strings.Contains(out, "praepara {") || !strings.Contains(out, `proba "addit" {`) {
		t.Fatalf("expected praepara and proba blocks, got: %s", out)
	}
}

func TestGenerateBinaryExprPrecedence(t *testing.T) {
	out := generate(t, `varia x <- (1 + 2) * 3;`)
	if !strings.Contains(out, "(1 + 2) * 3") {
		t.Fatalf("expected parens preserved around lower-precedence subexpr, got: %s", out)
	}
}

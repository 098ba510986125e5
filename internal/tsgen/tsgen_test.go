package tsgen

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
	if !strings.Contains(out, "function adde(a: number, b: number): number {") {
		t.Fatalf("missing function signature: %s", out)
	}
}

func TestGenerateFacDoWhileIsNative(t *testing.T) {
	out := generate(t, `fac { perge; } dum (verum);`)
	if !strings.Contains(out, "do {") || !strings.Contains(out, "} while (true);") {
		t.Fatalf("expected native do-while, got: %s", out)
	}
}

func TestGenerateTemptaMapsToNativeTryCatchFinally(t *testing.T) {
	out := generate(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { perge; }`)
	if !strings.Contains(out, "try {") || !strings.Contains(out, "} catch (e) {") || !strings.Contains(out, "} finally {") {
		t.Fatalf("expected native try/catch/finally, got: %s", out)
	}
}

func TestGenerateIntraIsConjunction(t *testing.T) {
	out := generate(t, `varia x <- 5; varia ok <- x intra 1 ... 10;`)
	if !strings.Contains(out, "(1 <= x && x <= 10)") {
		t.Fatalf("expected boolean conjunction for intra, got: %s", out)
	}
}

func TestGenerateInterUsesIncludes(t *testing.T) {
	out := generate(t, `varia xs <- [1, 2, 3]; varia ok <- 2 inter xs;`)
	if !strings.Contains(out, "xs.includes(2)") {
		t.Fatalf("expected Array#includes for inter, got: %s", out)
	}
}

func TestGenerateScriptumUsesTemplateLiteral(t *testing.T) {
	out := generate(t, `varia x <- 1; varia s <- scriptum "valor: §" (x);`)
	if !strings.Contains(out, "`valor: ${x}`") {
		t.Fatalf("expected template literal, got: %s", out)
	}
}

func TestGeneratePactumDeclEmitsInterface(t *testing.T) {
	out := generate(t, `pactum Forma { area() -> Pars; }`)
	if !strings.Contains(out, "interface Forma {") || !strings.Contains(out, "area(): number;") {
		t.Fatalf("expected TS interface, got: %s", out)
	}
}

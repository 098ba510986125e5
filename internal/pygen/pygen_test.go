package pygen

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
	if !strings.Contains(out, "def adde(a: int, b: int) -> int:") {
		t.Fatalf("missing function signature: %s", out)
	}
	if !strings.Contains(out, "return a + b") {
		t.Fatalf("missing return statement: %s", out)
	}
}

func TestGenerateFacDoWhileLowersToWhileTrue(t *testing.T) {
	out := generate(t, `fac { perge; } dum (verum);`)
	if !strings.Contains(out, "while True:") || !strings.Contains(out, "if not (True):") {
		t.Fatalf("expected while-True-break lowering, got: %s", out)
	}
}

func TestGenerateTemptaMapsToNativeTryExceptFinally(t *testing.T) {
	out := generate(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { perge; }`)
	if !strings.Contains(out, "try:") || !strings.Contains(out, "except Exception as e:") || !strings.Contains(out, "finally:") {
		t.Fatalf("expected native try/except/finally, got: %s", out)
	}
}

func TestGenerateOrdoDeclMemberWithoutValueUsesAuto(t *testing.T) {
	out := generate(t, `ordo Color { Ruber, Viridis: "g", Caeruleus }`)
	if !strings.Contains(out, "class Color(enum.Enum):") {
		t.Fatalf("expected enum.Enum subclass, got: %s", out)
	}
	if !strings.Contains(out, "Ruber = enum.auto()") {
		t.Fatalf("expected enum.auto() fallback for valueless member, got: %s", out)
	}
	if !strings.Contains(out, "Viridis = g") {
		t.Fatalf("expected explicit value preserved, got: %s", out)
	}
}

func TestGeneratePactumDeclEmitsABC(t *testing.T) {
	out := generate(t, `pactum Forma { area() -> Pars; }`)
	if !strings.Contains(out, "class Forma(abc.ABC):") || !strings.Contains(out, "@abc.abstractmethod") {
		t.Fatalf("expected abc.ABC contract, got: %s", out)
	}
}

func TestGenerateNovumWithInitAppendsPositionalArg(t *testing.T) {
	out := generate(t, `varia o <- novum Punctum(1, 2) de origo;`)
	if !strings.Contains(out, "Punctum(1, 2, origo)") {
		t.Fatalf("expected withExpression appended as a positional argument, got: %s", out)
	}
}

func TestGenerateIntraMembership(t *testing.T) {
	out := generate(t, `varia x <- 5; varia ok <- x intra 1 ... 10;`)
	if !strings.Contains(out, "1 <= x <= 10") {
		t.Fatalf("expected chained comparison, got: %s", out)
	}
}

func TestGenerateProbandumEmitsTestCase(t *testing.T) {
	out := generate(t, `probandum "mathematica" {
		praepara { varia x <- 1; }
		proba "addit" { adfirma(verum); }
	}`)
	if !strings.Contains(out, "class Mathematica(unittest.TestCase):") {
		t.Fatalf("expected TestCase subclass, got: %s", out)
	}
	if !strings.Contains(out, "def test_addit(self):") {
		t.Fatalf("expected test_ method, got: %s", out)
	}
}

package linter

import (
	"strings"
	"testing"

	"github.com/faberlang/faber/internal/parser"
)

func lint(t *testing.T, source string) []string {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Diagnostics().Format("<test>"))
	}
	diags := Lint(prog)
	msgs := make([]string, 0, diags.Count())
	for _, d := range diags.All() {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

func containsSubstring(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestLintFlagsUppercaseFunctionName(t *testing.T) {
	msgs := lint(t, `functio Adde(a: Numerus, b: Numerus) -> Numerus { redde a + b; }`)
	if !containsSubstring(msgs, "should start with a lowercase letter") {
		t.Fatalf("expected a naming warning, got: %v", msgs)
	}
}

func TestLintFlagsEmptyFunctionBody(t *testing.T) {
	msgs := lint(t, `functio noop() { }`)
	if !containsSubstring(msgs, "empty body") {
		t.Fatalf("expected an empty-body warning, got: %v", msgs)
	}
}

func TestLintFlagsUnusedParam(t *testing.T) {
	msgs := lint(t, `functio adde(a: Numerus, b: Numerus) -> Numerus { redde a; }`)
	if !containsSubstring(msgs, `parameter "b" is never used`) {
		t.Fatalf("expected an unused-parameter warning, got: %v", msgs)
	}
}

func TestLintFunctionWithAllParamsUsedIsClean(t *testing.T) {
	msgs := lint(t, `functio adde(a: Numerus, b: Numerus) -> Numerus { redde a + b; }`)
	if containsSubstring(msgs, "is never used") {
		t.Fatalf("expected no unused-parameter warnings, got: %v", msgs)
	}
}

func TestLintFlagsEmptyOrdo(t *testing.T) {
	msgs := lint(t, `ordo Color { }`)
	if !containsSubstring(msgs, "declares no members") {
		t.Fatalf("expected an empty-ordo warning, got: %v", msgs)
	}
}

func TestLintFlagsDuplicateOrdoMember(t *testing.T) {
	msgs := lint(t, `ordo Color { Ruber, Ruber }`)
	if !containsSubstring(msgs, "duplicate member") {
		t.Fatalf("expected a duplicate-member warning, got: %v", msgs)
	}
}

func TestLintFlagsLowercasePactumName(t *testing.T) {
	msgs := lint(t, `pactum forma { area() -> Pars; }`)
	if !containsSubstring(msgs, "should start with an uppercase letter") {
		t.Fatalf("expected a naming warning, got: %v", msgs)
	}
}

func TestLintFlagsEmptyPactum(t *testing.T) {
	msgs := lint(t, `pactum Forma { }`)
	if !containsSubstring(msgs, "declares no methods") {
		t.Fatalf("expected an empty-pactum warning, got: %v", msgs)
	}
}

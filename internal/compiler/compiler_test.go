package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSource = `functio adde(a: Numerus, b: Numerus) -> Numerus { redde a + b; }`

func TestCompileEachRegisteredTarget(t *testing.T) {
	for _, target := range Targets() {
		res := Compile(sampleSource, target)
		if res.Diagnostics.HasErrors() {
			t.Fatalf("target %q: unexpected diagnostics: %s", target, res.Diagnostics.Format("<test>"))
		}
		if res.Source == "" {
			t.Fatalf("target %q: expected generated source, got empty string", target)
		}
		if res.Target != target {
			t.Fatalf("target %q: result.Target = %q", target, res.Target)
		}
	}
}

func TestCompileUnknownTarget(t *testing.T) {
	res := Compile(sampleSource, "cobol")
	if !res.Diagnostics.HasErrors() {
		t.Fatal("expected a diagnostic error for an unknown target")
	}
	if !strings.Contains(res.Diagnostics.Format("<test>"), "error[cobol][<test>:") {
		t.Fatalf("expected the diagnostic to be tagged with the offending target, got: %s", res.Diagnostics.Format("<test>"))
	}
}

func TestCompileParseErrorShortCircuitsBeforeCheck(t *testing.T) {
	res := Compile(`varia x <- ;`, "fab")
	if !res.Diagnostics.HasErrors() {
		t.Fatal("expected parse error diagnostics")
	}
	if res.Source != "" {
		t.Fatalf("expected no generated source after a parse error, got: %s", res.Source)
	}
}

func TestCompileCheckErrorPreventsGeneration(t *testing.T) {
	res := Compile(`varia s <- scriptum "§ and §" (x);`, "fab")
	if !res.Diagnostics.HasErrors() {
		t.Fatal("expected a checker diagnostic for mismatched placeholder count")
	}
	if res.Source != "" {
		t.Fatalf("expected no generated source after a check error, got: %s", res.Source)
	}
}

func TestCheckReportsNoErrorsForValidSource(t *testing.T) {
	diags := Check(sampleSource)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diags.Format("<test>"))
	}
}

func TestLintAddsStyleWarnings(t *testing.T) {
	diags := Lint(`functio Adde(a: Numerus, b: Numerus) -> Numerus { redde a; }`)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Format("<test>"))
	}
	if diags.WarningCount() == 0 {
		t.Fatal("expected lint warnings for a badly-named function with an unused parameter")
	}
}

func TestLintSkipsWhenCheckerHasErrors(t *testing.T) {
	diags := Lint(`varia s <- scriptum "§ and §" (x);`)
	if !diags.HasErrors() {
		t.Fatal("expected a checker error to surface from Lint")
	}
}

func TestEmitWritesGeneratedSourceToFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.fab")
	if err := Emit(sampleSource, "fab", outPath); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading emitted file: %v", err)
	}
	if !strings.Contains(string(content), "functio adde") {
		t.Fatalf("emitted file missing expected content: %s", content)
	}
}

func TestEmitFailsOnCompileError(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.fab")
	if err := Emit(`varia x <- ;`, "fab", outPath); err == nil {
		t.Fatal("expected an error for invalid source")
	}
	if _, err := os.Stat(outPath); err == nil {
		t.Fatal("expected no file to be written on compile failure")
	}
}

func TestTargetsIncludesAllSixBackends(t *testing.T) {
	want := []string{"cpp", "rs", "py", "zig", "ts", "fab"}
	got := Targets()
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Targets() = %v, missing %q", got, w)
		}
	}
}

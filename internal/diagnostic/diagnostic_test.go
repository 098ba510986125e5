package diagnostic

import (
	"strings"
	"testing"
)

func TestFormatPlainErrorUsesFallbackFilename(t *testing.T) {
	d := New()
	d.Errorf(3, 10, "undeclared variable %q", "x")
	out := d.Format("input.fab")
	if !strings.Contains(out, "error[input.fab:3:10]: undeclared variable \"x\"") {
		t.Fatalf("unexpected format: %q", out)
	}
}

func TestFormatErrorForTargetPrefixesTargetTag(t *testing.T) {
	d := New()
	d.ErrorfForTarget("rs", 0, 0, "generation failed: %s", "boom")
	out := d.Format("input.fab")
	if !strings.Contains(out, "error[rs][input.fab:0:0]: generation failed: boom") {
		t.Fatalf("expected target-tagged diagnostic, got: %q", out)
	}
}

func TestFormatErrorfInFileOverridesFilename(t *testing.T) {
	d := New()
	d.ErrorfInFile("other.fab", 1, 1, "oops")
	out := d.Format("input.fab")
	if !strings.Contains(out, "error[other.fab:1:1]: oops") {
		t.Fatalf("expected file override to win over the fallback filename, got: %q", out)
	}
}

func TestHasErrorsAndCounts(t *testing.T) {
	d := New()
	d.Warningf(1, 1, "warn")
	d.Infof(1, 1, "info")
	if d.HasErrors() {
		t.Fatal("expected no errors yet")
	}
	d.Errorf(2, 2, "err")
	if !d.HasErrors() {
		t.Fatal("expected HasErrors to be true after Errorf")
	}
	if d.ErrorCount() != 1 || d.WarningCount() != 1 || d.Count() != 3 {
		t.Fatalf("unexpected counts: errors=%d warnings=%d total=%d", d.ErrorCount(), d.WarningCount(), d.Count())
	}
}

func TestClearRemovesAllDiagnostics(t *testing.T) {
	d := New()
	d.Errorf(1, 1, "err")
	d.Clear()
	if d.Count() != 0 {
		t.Fatalf("expected Clear to empty diagnostics, got count %d", d.Count())
	}
}

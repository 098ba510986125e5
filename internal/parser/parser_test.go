package parser

import (
	"testing"

	"github.com/faberlang/faber/internal/ast"
)

func parseOK(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := New(source)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", source, p.Diagnostics().Format("<test>"))
	}
	return prog
}

func TestParseVarStmt(t *testing.T) {
	prog := parseOK(t, `varia x : Numerus <- 1 + 2;`)
	if len(prog.Corpus) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Corpus))
	}
	v, ok := prog.Corpus[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", prog.Corpus[0])
	}
	if v.Nomen != "x" || v.Species != ast.VarVaria {
		t.Fatalf("got %+v", v)
	}
	if v.Typus == nil || v.Typus.Nomen != "Numerus" {
		t.Fatalf("expected type annotation Numerus, got %+v", v.Typus)
	}
	bin, ok := v.Valor.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr value, got %T", v.Valor)
	}
	if bin.Signum != "+" {
		t.Fatalf("got operator %q", bin.Signum)
	}
}

func TestParseSiAlioquiChain(t *testing.T) {
	prog := parseOK(t, `si (x) { redde 1; } alioqui si (y) { redde 2; } alioqui { redde 3; }`)
	si, ok := prog.Corpus[0].(*ast.SiStmt)
	if !ok {
		t.Fatalf("expected *ast.SiStmt, got %T", prog.Corpus[0])
	}
	elseif, ok := si.Alt.(*ast.SiStmt)
	if !ok {
		t.Fatalf("expected chained *ast.SiStmt, got %T", si.Alt)
	}
	if _, ok := elseif.Alt.(*ast.BlockStmt); !ok {
		t.Fatalf("expected terminal block, got %T", elseif.Alt)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := parseOK(t, `functio adde(a: Numerus, b: Numerus) -> Numerus { redde a + b; }`)
	fn, ok := prog.Corpus[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Corpus[0])
	}
	if fn.Nomen != "adde" || len(fn.Params) != 2 || fn.TypusReditus == nil {
		t.Fatalf("got %+v", fn)
	}
}

func TestParseAsyncFunctionDecl(t *testing.T) {
	prog := parseOK(t, `fiet functio fetch() { redde nihil; }`)
	fn, ok := prog.Corpus[0].(*ast.FunctionDecl)
	if !ok || !fn.Asynca {
		t.Fatalf("expected async FunctionDecl, got %+v", prog.Corpus[0])
	}
}

func TestParseFacDoWhile(t *testing.T) {
	prog := parseOK(t, `fac { perge; } dum (verum);`)
	f, ok := prog.Corpus[0].(*ast.FacStmt)
	if !ok || f.Cond == nil {
		t.Fatalf("expected do-while FacStmt with Cond set, got %+v", prog.Corpus[0])
	}
}

func TestParseFacPlainBlock(t *testing.T) {
	prog := parseOK(t, `fac { rumpe; }`)
	f, ok := prog.Corpus[0].(*ast.FacStmt)
	if !ok || f.Cond != nil {
		t.Fatalf("expected plain FacStmt with nil Cond, got %+v", prog.Corpus[0])
	}
}

func TestParseEligeWithDefault(t *testing.T) {
	prog := parseOK(t, `elige (x) { si 1 { redde 1; } si 2 { redde 2; } secus { redde 0; } }`)
	e, ok := prog.Corpus[0].(*ast.EligeStmt)
	if !ok {
		t.Fatalf("expected *ast.EligeStmt, got %T", prog.Corpus[0])
	}
	if len(e.Casus) != 2 || e.Default == nil {
		t.Fatalf("got %+v", e)
	}
}

func TestParseTemptaCapeDemum(t *testing.T) {
	prog := parseOK(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { perge; }`)
	tr, ok := prog.Corpus[0].(*ast.TemptaStmt)
	if !ok {
		t.Fatalf("expected *ast.TemptaStmt, got %T", prog.Corpus[0])
	}
	if tr.Cape == nil || tr.Demum == nil {
		t.Fatalf("expected both cape and demum, got %+v", tr)
	}
}

func TestParseClosureExpr(t *testing.T) {
	prog := parseOK(t, `varia f <- (a, b) => a + b;`)
	v := prog.Corpus[0].(*ast.VarStmt)
	cl, ok := v.Valor.(*ast.ClosureExpr)
	if !ok {
		t.Fatalf("expected *ast.ClosureExpr, got %T", v.Valor)
	}
	if len(cl.Params) != 2 {
		t.Fatalf("got %+v", cl.Params)
	}
	if _, ok := cl.Corpus.(ast.Expr); !ok {
		t.Fatalf("expected expression body, got %T", cl.Corpus)
	}
}

func TestParseCollectionDSLPipeline(t *testing.T) {
	prog := parseOK(t, `varia r <- xs qua filge(x => x) qua collige();`)
	v := prog.Corpus[0].(*ast.VarStmt)
	c, ok := v.Valor.(*ast.CollectionDSLExpr)
	if !ok {
		t.Fatalf("expected *ast.CollectionDSLExpr, got %T", v.Valor)
	}
	if len(c.Transforms) != 2 || c.Transforms[0].Nomen != "filge" || c.Transforms[1].Nomen != "collige" {
		t.Fatalf("got %+v", c.Transforms)
	}
}

func TestParseRangeExprInclusiveAndStep(t *testing.T) {
	prog := parseOK(t, `varia r <- 1 ... 10 per 2;`)
	v := prog.Corpus[0].(*ast.VarStmt)
	r, ok := v.Valor.(*ast.RangeExpr)
	if !ok || !r.Inclusive || r.Step == nil {
		t.Fatalf("got %+v", v.Valor)
	}
}

func TestParseNovumExpr(t *testing.T) {
	prog := parseOK(t, `varia o <- novum Punctum(1, 2) de origo;`)
	v := prog.Corpus[0].(*ast.VarStmt)
	n, ok := v.Valor.(*ast.NovumExpr)
	if !ok {
		t.Fatalf("expected *ast.NovumExpr, got %T", v.Valor)
	}
	if len(n.Args) != 2 || n.Init == nil {
		t.Fatalf("got %+v", n)
	}
}

func TestParseScriptumExpr(t *testing.T) {
	prog := parseOK(t, `varia s <- scriptum "valor: §" (x);`)
	v := prog.Corpus[0].(*ast.VarStmt)
	s, ok := v.Valor.(*ast.ScriptumExpr)
	if !ok || len(s.Args) != 1 {
		t.Fatalf("got %+v", v.Valor)
	}
}

func TestParseCustodiChain(t *testing.T) {
	prog := parseOK(t, `custodi { si x { redde 1; } si y { redde 2; } }`)
	c, ok := prog.Corpus[0].(*ast.CustodiStmt)
	if !ok || len(c.Clausulae) != 2 {
		t.Fatalf("got %+v", prog.Corpus[0])
	}
}

func TestParseOrdoDecl(t *testing.T) {
	prog := parseOK(t, `ordo Color { Ruber, Viridis: "g", Caeruleus }`)
	o, ok := prog.Corpus[0].(*ast.OrdoDecl)
	if !ok || len(o.Membra) != 3 {
		t.Fatalf("got %+v", prog.Corpus[0])
	}
	if o.Membra[1].Valor == nil || *o.Membra[1].Valor != "g" {
		t.Fatalf("got %+v", o.Membra[1])
	}
}

func TestParseProbandumSuite(t *testing.T) {
	prog := parseOK(t, `probandum "mathematica" {
		praepara { varia x <- 1; }
		proba "addit" { adfirma(verum); }
	}`)
	suite, ok := prog.Corpus[0].(*ast.ProbandumStmt)
	if !ok || len(suite.Corpus) != 2 {
		t.Fatalf("got %+v", prog.Corpus[0])
	}
	if _, ok := suite.Corpus[0].(*ast.PraeparaBlock); !ok {
		t.Fatalf("expected PraeparaBlock first, got %T", suite.Corpus[0])
	}
	if _, ok := suite.Corpus[1].(*ast.ProbaStmt); !ok {
		t.Fatalf("expected ProbaStmt second, got %T", suite.Corpus[1])
	}
}

// Package fabgen emits canonical, pretty-printed Faber source from an
// ast.Program — the "fab" target used to normalize formatting and as a
// round-trip sanity check for the other backends.
package fabgen

import (
	"fmt"
	"strings"

	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/backend"
	"github.com/faberlang/faber/internal/emitctx"
)

func init() {
	backend.Register(&Backend{})
}

// Backend implements backend.Backend for the "fab" target.
type Backend struct{}

func (b *Backend) Name() string { return "fab" }

func (b *Backend) Generate(prog *ast.Program) (string, error) {
	g := &generator{ctx: emitctx.New("    ")}
	for i, stmt := range prog.Corpus {
		if i > 0 {
			g.ctx.EmitLine("")
		}
		g.genStmt(stmt)
	}
	return g.ctx.String(), nil
}

type generator struct {
	ctx *emitctx.Context
}

// --- Statements ---

func (g *generator) genStmt(stmt ast.Stmt) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.VarStmt:
		g.genVarStmt(s)
	case *ast.BlockStmt:
		g.genBlockStmt(s)
	case *ast.ExprStmt:
		g.ctx.EmitLinef("%s;", g.genExpr(s.Expr, precNone))
	case *ast.FunctionDecl:
		g.genFunctionDecl(s)
	case *ast.OrdoDecl:
		g.genOrdoDecl(s)
	case *ast.PactumDecl:
		g.genPactumDecl(s)
	case *ast.SiStmt:
		g.genSiStmt(s, true)
	case *ast.DumStmt:
		g.genDumStmt(s)
	case *ast.IteratioStmt:
		g.genIteratioStmt(s)
	case *ast.FacStmt:
		g.genFacStmt(s)
	case *ast.EligeStmt:
		g.genEligeStmt(s)
	case *ast.TemptaStmt:
		g.genTemptaStmt(s)
	case *ast.IaceStmt:
		g.genIaceStmt(s)
	case *ast.AdfirmaStmt:
		g.genAdfirmaStmt(s)
	case *ast.ScribeStmt:
		g.genScribeStmt(s)
	case *ast.ReddeStmt:
		if s.Valor != nil {
			g.ctx.EmitLinef("redde %s;", g.genExpr(s.Valor, precNone))
		} else {
			g.ctx.EmitLine("redde;")
		}
	case *ast.RumpeStmt:
		g.ctx.EmitLine("rumpe;")
	case *ast.PergeStmt:
		g.ctx.EmitLine("perge;")
	case *ast.CustodiStmt:
		g.genCustodiStmt(s)
	case *ast.InStmt:
		g.genInStmt(s)
	case *ast.IncipitStmt:
		g.genIncipitStmt(s)
	case *ast.PraeparaBlock:
		g.ctx.EmitLine("praepara {")
		g.ctx.IncIndent()
		for _, stmt := range s.Corpus.Corpus {
			g.genStmt(stmt)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	case *ast.ProbaStmt:
		g.ctx.EmitLinef("proba %q {", s.Nomen)
		g.ctx.IncIndent()
		for _, stmt := range s.Corpus.Corpus {
			g.genStmt(stmt)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	case *ast.ProbandumStmt:
		g.ctx.EmitLinef("probandum %q {", s.Nomen)
		g.ctx.IncIndent()
		for _, child := range s.Corpus {
			g.genStmt(child)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	default:
		g.ctx.EmitLinef("// unhandled statement %T", stmt)
	}
}

func (g *generator) genBlockStmt(b *ast.BlockStmt) {
	g.ctx.EmitLine("{")
	g.ctx.IncIndent()
	for _, stmt := range b.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genVarStmt(s *ast.VarStmt) {
	kw := "varia"
	if s.Species == ast.VarFixum {
		kw = "fixum"
	}
	typeAnno := ""
	if s.Typus != nil {
		typeAnno = ": " + g.genTypeRef(s.Typus)
	}
	if s.Valor != nil {
		g.ctx.EmitLinef("%s %s%s <- %s;", kw, s.Nomen, typeAnno, g.genExpr(s.Valor, precNone))
	} else {
		g.ctx.EmitLinef("%s %s%s;", kw, s.Nomen, typeAnno)
	}
}

func (g *generator) genTypeRef(t *ast.TypeRef) string {
	name := t.Nomen
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = g.genTypeRef(a)
		}
		name = fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
	}
	if t.Nullable {
		name += "?"
	}
	return name
}

func (g *generator) genFunctionDecl(f *ast.FunctionDecl) {
	ret := ""
	if f.TypusReditus != nil {
		ret = " -> " + g.genTypeRef(f.TypusReditus)
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = g.genParam(p)
	}
	prefix := "functio"
	if f.Asynca {
		prefix = "fiet functio"
	}
	generics := ""
	if len(f.Generics) > 0 {
		generics = fmt.Sprintf("<%s>", strings.Join(f.Generics, ", "))
	}
	g.ctx.EmitLinef("%s %s%s(%s)%s {", prefix, f.Nomen, generics, strings.Join(params, ", "), ret)
	g.ctx.IncIndent()
	for _, stmt := range f.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genParam(p *ast.Param) string {
	typus := ""
	if p.Typus != nil {
		typus = ": " + g.genTypeRef(p.Typus)
	}
	if p.Rest {
		return fmt.Sprintf("sparge %s%s", p.Nomen, typus)
	}
	decl := p.Nomen + typus
	if p.Default != nil {
		decl += " <- " + g.genExpr(p.Default, precNone)
	}
	return decl
}

func (g *generator) genOrdoDecl(o *ast.OrdoDecl) {
	g.ctx.EmitLinef("ordo %s {", o.Nomen)
	g.ctx.IncIndent()
	for _, m := range o.Membra {
		if m.Valor != nil {
			g.ctx.EmitLinef("%s: %q,", m.Nomen, *m.Valor)
		} else {
			g.ctx.EmitLinef("%s,", m.Nomen)
		}
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genPactumDecl(p *ast.PactumDecl) {
	generics := ""
	if len(p.Generics) > 0 {
		generics = fmt.Sprintf("<%s>", strings.Join(p.Generics, ", "))
	}
	g.ctx.EmitLinef("pactum %s%s {", p.Nomen, generics)
	g.ctx.IncIndent()
	for _, m := range p.Methodi {
		ret := ""
		if m.TypusReditus != nil {
			ret = " -> " + g.genTypeRef(m.TypusReditus)
		}
		params := make([]string, len(m.Params))
		for i, prm := range m.Params {
			params[i] = g.genParam(prm)
		}
		g.ctx.EmitLinef("functio %s(%s)%s;", m.Nomen, strings.Join(params, ", "), ret)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genSiStmt(s *ast.SiStmt, top bool) {
	line := fmt.Sprintf("si (%s) {", g.genExpr(s.Cond, precNone))
	if top {
		g.ctx.EmitLine(line)
	} else {
		g.ctx.Emit(line + "\n")
	}
	g.ctx.IncIndent()
	g.genStmtInline(s.Cons)
	g.ctx.DecIndent()
	if s.Alt == nil {
		g.ctx.EmitLine("}")
		return
	}
	if alt, ok := s.Alt.(*ast.SiStmt); ok {
		g.ctx.Emit(g.ctx.IndentStr() + "} alioqui ")
		g.genSiStmt(alt, false)
		return
	}
	g.ctx.EmitLine("} secus {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Alt)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genStmtInline(s ast.Stmt) {
	if b, ok := s.(*ast.BlockStmt); ok {
		for _, stmt := range b.Corpus {
			g.genStmt(stmt)
		}
		return
	}
	g.genStmt(s)
}

func (g *generator) genDumStmt(s *ast.DumStmt) {
	g.ctx.EmitLinef("dum (%s) {", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.EmitLinef("cape (%s) {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

func (g *generator) genIteratioStmt(s *ast.IteratioStmt) {
	kw := "iteratio"
	if s.Asynca {
		kw = "fiet " + kw
	}
	species := "ex"
	if s.Species == ast.IteratioDe {
		species = "de"
	}
	g.ctx.EmitLinef("%s %s %s %s {", kw, s.Binding, species, g.genExpr(s.Iter, precNone))
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.EmitLinef("cape (%s) {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

func (g *generator) genFacStmt(s *ast.FacStmt) {
	g.ctx.EmitLine("fac {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	if s.Cond != nil {
		g.ctx.EmitLinef("} dum (%s);", g.genExpr(s.Cond, precNone))
		return
	}
	g.ctx.EmitLine("}")
}

func (g *generator) genEligeStmt(s *ast.EligeStmt) {
	g.ctx.EmitLinef("elige (%s) {", g.genExpr(s.Discrim, precNone))
	g.ctx.IncIndent()
	for _, c := range s.Casus {
		g.ctx.EmitLinef("si %s {", g.genExpr(c.Cond, precNone))
		g.ctx.IncIndent()
		g.genStmtInline(c.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	if s.Default != nil {
		g.ctx.EmitLine("secus {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Default)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genTemptaStmt(s *ast.TemptaStmt) {
	g.ctx.EmitLine("tempta {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.EmitLinef("cape (%s) {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	if s.Demum != nil {
		g.ctx.EmitLine("demum {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Demum)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

func (g *generator) genIaceStmt(s *ast.IaceStmt) {
	kw := "iace"
	if s.Fatale {
		kw = "mori"
	}
	g.ctx.EmitLinef("%s %s;", kw, g.genExpr(s.Arg, precNone))
}

func (g *generator) genAdfirmaStmt(s *ast.AdfirmaStmt) {
	if s.Msg != nil {
		g.ctx.EmitLinef("adfirma(%s, %s);", g.genExpr(s.Cond, precNone), g.genExpr(s.Msg, precNone))
		return
	}
	g.ctx.EmitLinef("adfirma(%s);", g.genExpr(s.Cond, precNone))
}

func (g *generator) genScribeStmt(s *ast.ScribeStmt) {
	kw := "scribe"
	switch s.Gradus {
	case ast.ScribeDebug:
		kw = "vide"
	case ast.ScribeWarn:
		kw = "mone"
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = g.genExpr(a, precNone)
	}
	g.ctx.EmitLinef("%s(%s);", kw, strings.Join(parts, ", "))
}

func (g *generator) genCustodiStmt(s *ast.CustodiStmt) {
	g.ctx.EmitLine("custodi {")
	g.ctx.IncIndent()
	for _, clause := range s.Clausulae {
		g.ctx.EmitLinef("si %s {", g.genExpr(clause.Cond, precNone))
		g.ctx.IncIndent()
		g.genStmtInline(clause.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genInStmt(s *ast.InStmt) {
	g.ctx.EmitLinef("in (%s) {", g.genExpr(s.Context, precNone))
	g.ctx.IncIndent()
	for _, stmt := range s.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genIncipitStmt(s *ast.IncipitStmt) {
	kw := "incipit"
	if s.Asynca {
		kw = "incipiet"
	}
	g.ctx.EmitLinef("%s {", kw)
	g.ctx.IncIndent()
	for _, stmt := range s.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// --- Expressions ---

const (
	precNone = iota
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMulti
	precUnary
	precPostfix
)

func binPrec(signum string) int {
	switch signum {
	case "aut":
		return precOr
	case "et":
		return precAnd
	case "==", "!=":
		return precEquality
	case "<", ">", "<=", ">=", "intra", "inter":
		return precComparison
	case "+", "-":
		return precAdditive
	case "*", "/", "%":
		return precMulti
	default:
		return precNone
	}
}

func (g *generator) genExpr(expr ast.Expr, parentPrec int) string {
	if expr == nil {
		return ""
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Nomen
	case *ast.Literal:
		return g.genLiteral(e)
	case *ast.BinaryExpr:
		return g.genBinaryExpr(e, parentPrec)
	case *ast.UnaryExpr:
		return g.genUnaryExpr(e)
	case *ast.AssignExpr:
		return fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, precNone), e.Signum, g.genExpr(e.Dex, precNone))
	case *ast.ArrayExpr:
		return g.genArrayExpr(e)
	case *ast.ObjectExpr:
		return g.genObjectExpr(e)
	case *ast.RangeExpr:
		return g.genRangeExpr(e)
	case *ast.NovumExpr:
		return g.genNovumExpr(e)
	case *ast.ScriptumExpr:
		return g.genScriptumExpr(e)
	case *ast.FingeExpr:
		return g.genFingeExpr(e)
	case *ast.CollectionDSLExpr:
		return g.genCollectionDSLExpr(e)
	case *ast.CallExpr:
		return g.genCallExpr(e)
	case *ast.MemberExpr:
		return g.genMemberExpr(e)
	case *ast.ClosureExpr:
		return g.genClosureExpr(e)
	default:
		return fmt.Sprintf("/* unhandled expr %T */", expr)
	}
}

func (g *generator) genLiteral(l *ast.Literal) string {
	switch l.Species {
	case ast.LitteraInt, ast.LitteraFloat:
		return l.Valor
	case ast.LitteraTextus:
		return fmt.Sprintf("%q", l.Valor)
	case ast.LitteraVerum:
		return "verum"
	case ast.LitteraFalsum:
		return "falsum"
	case ast.LitteraNihil:
		return "nihil"
	case ast.LitteraRegex:
		flags := ""
		if l.Flags != nil {
			flags = " " + *l.Flags
		}
		return fmt.Sprintf("sed %q%s", l.Valor, flags)
	default:
		return l.Valor
	}
}

func (g *generator) genBinaryExpr(e *ast.BinaryExpr, parentPrec int) string {
	prec := binPrec(e.Signum)
	out := fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, prec), e.Signum, g.genExpr(e.Dex, prec+1))
	if prec < parentPrec {
		return "(" + out + ")"
	}
	return out
}

func (g *generator) genUnaryExpr(e *ast.UnaryExpr) string {
	if e.Signum == "non" {
		return fmt.Sprintf("non %s", g.genExpr(e.Arg, precUnary))
	}
	return fmt.Sprintf("%s%s", e.Signum, g.genExpr(e.Arg, precUnary))
}

func (g *generator) genArrayExpr(e *ast.ArrayExpr) string {
	parts := make([]string, 0, len(e.Elementa))
	for _, el := range e.Elementa {
		if el.Spread {
			parts = append(parts, "sparge "+g.genExpr(el.Valor, precNone))
			continue
		}
		parts = append(parts, g.genExpr(el.Valor, precNone))
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

func (g *generator) genObjectExpr(e *ast.ObjectExpr) string {
	parts := make([]string, 0, len(e.Props))
	for _, prop := range e.Props {
		if prop.Shorthand {
			parts = append(parts, g.genExpr(prop.Key, precNone))
			continue
		}
		key := g.genExpr(prop.Key, precNone)
		if prop.Computed {
			key = "[" + key + "]"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", key, g.genExpr(prop.Valor, precNone)))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// genRangeExpr prints the canonical range form: `start..end` exclusive,
// `start...end` inclusive, with an optional `per step` suffix.
func (g *generator) genRangeExpr(e *ast.RangeExpr) string {
	op := ".."
	if e.Inclusive {
		op = "..."
	}
	out := fmt.Sprintf("%s %s %s", g.genExpr(e.Start, precNone), op, g.genExpr(e.End, precNone))
	if e.Step != nil {
		out += " per " + g.genExpr(e.Step, precNone)
	}
	return out
}

func (g *generator) genNovumExpr(e *ast.NovumExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	out := fmt.Sprintf("novum %s(%s)", g.genExpr(e.Callee, precPostfix), strings.Join(args, ", "))
	if e.Init != nil {
		out += " de " + g.genExpr(e.Init, precNone)
	}
	return out
}

func (g *generator) genScriptumExpr(e *ast.ScriptumExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	return fmt.Sprintf("scriptum %q (%s)", e.Format, strings.Join(args, ", "))
}

func (g *generator) genFingeExpr(e *ast.FingeExpr) string {
	fields := make([]string, len(e.Campi))
	for i, f := range e.Campi {
		fields[i] = fmt.Sprintf("%s: %s", g.genExpr(f.Key, precNone), g.genExpr(f.Valor, precNone))
	}
	if e.Discriminator != nil {
		return fmt.Sprintf("finge %s qua %s {%s}", g.genTypeRef(e.Discriminator), e.Variant, strings.Join(fields, ", "))
	}
	return fmt.Sprintf("finge %s {%s}", e.Variant, strings.Join(fields, ", "))
}

func (g *generator) genCollectionDSLExpr(e *ast.CollectionDSLExpr) string {
	out := g.genExpr(e.Source, precPostfix)
	for _, t := range e.Transforms {
		arg := ""
		if t.Arg != nil {
			arg = g.genExpr(t.Arg, precNone)
		}
		out += fmt.Sprintf(" qua %s(%s)", t.Nomen, arg)
	}
	return out
}

func (g *generator) genCallExpr(e *ast.CallExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	return fmt.Sprintf("%s(%s)", g.genExpr(e.Callee, precPostfix), strings.Join(args, ", "))
}

func (g *generator) genMemberExpr(e *ast.MemberExpr) string {
	obj := g.genExpr(e.Obj, precPostfix)
	if e.Computed {
		return fmt.Sprintf("%s[%s]", obj, g.genExpr(e.Prop, precNone))
	}
	dot := "."
	if e.NonNull {
		dot = "?."
	}
	return fmt.Sprintf("%s%s%s", obj, dot, g.genExpr(e.Prop, precPostfix))
}

func (g *generator) genClosureExpr(e *ast.ClosureExpr) string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = g.genParam(p)
	}
	switch body := e.Corpus.(type) {
	case *ast.BlockStmt:
		inner := &generator{ctx: emitctx.New("    ")}
		inner.ctx.Depth = g.ctx.Depth + 1
		for _, stmt := range body.Corpus {
			inner.genStmt(stmt)
		}
		return fmt.Sprintf("(%s) => {\n%s%s}", strings.Join(params, ", "), inner.ctx.String(), g.ctx.IndentStr())
	case ast.Expr:
		return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), g.genExpr(body, precNone))
	default:
		return fmt.Sprintf("(%s) => {}", strings.Join(params, ", "))
	}
}

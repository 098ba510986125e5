// Package rsgen emits Rust surface syntax from a Faber ast.Program.
package rsgen

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

// Backend implements backend.Backend for the "rs" target.
type Backend struct{}

func (b *Backend) Name() string { return "rs" }

func (b *Backend) Generate(prog *ast.Program) (string, error) {
	g := &generator{ctx: emitctx.New("    ")}
	for _, stmt := range prog.Corpus {
		g.genStmt(stmt)
	}
	return g.preamble() + g.ctx.String(), nil
}

type generator struct {
	ctx *emitctx.Context
}

func (g *generator) preamble() string {
	var b strings.Builder
	for _, imp := range g.ctx.Imports() {
		fmt.Fprintf(&b, "use %s;\n", imp)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
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
			g.ctx.EmitLinef("return %s;", g.genExpr(s.Valor, precNone))
		} else {
			g.ctx.EmitLine("return;")
		}
	case *ast.RumpeStmt:
		g.ctx.EmitLine("break;")
	case *ast.PergeStmt:
		g.ctx.EmitLine("continue;")
	case *ast.CustodiStmt:
		g.genCustodiStmt(s)
	case *ast.InStmt:
		g.genInStmt(s)
	case *ast.IncipitStmt:
		g.genIncipitStmt(s)
	case *ast.PraeparaBlock:
		g.ctx.EmitLine("// praepara")
		g.genBlockStmt(s.Corpus)
	case *ast.ProbaStmt:
		g.ctx.EmitLinef("#[test]")
		g.ctx.EmitLinef("fn %s() {", sanitizeIdent(s.Nomen))
		g.ctx.IncIndent()
		for _, stmt := range s.Corpus.Corpus {
			g.genStmt(stmt)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	case *ast.ProbandumStmt:
		g.ctx.EmitLinef("// Test suite: %s", s.Nomen)
		g.ctx.EmitLine("#[cfg(test)]")
		g.ctx.EmitLine("mod tests {")
		g.ctx.IncIndent()
		g.ctx.EmitLine("use super::*;")
		for _, child := range s.Corpus {
			g.genStmt(child)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	default:
		g.ctx.EmitLinef("// unhandled statement %T", stmt)
	}
}

func sanitizeIdent(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
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
	mut := ""
	if s.Species == ast.VarVaria {
		mut = "mut "
	}
	typeAnno := ""
	if s.Typus != nil {
		typeAnno = ": " + g.genTypeRef(s.Typus)
	}
	if s.Valor != nil {
		g.ctx.EmitLinef("let %s%s%s = %s;", mut, s.Nomen, typeAnno, g.genExpr(s.Valor, precNone))
	} else {
		g.ctx.EmitLinef("let %s%s%s;", mut, s.Nomen, typeAnno)
	}
}

func (g *generator) genTypeRef(t *ast.TypeRef) string {
	name := mapTypeName(t.Nomen)
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = g.genTypeRef(a)
		}
		name = fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
	}
	if t.Nullable {
		name = fmt.Sprintf("Option<%s>", name)
	}
	return name
}

func mapTypeName(nomen string) string {
	switch nomen {
	case "Numerus":
		return "i64"
	case "Pars":
		return "f64"
	case "Textus":
		return "String"
	case "Logicum":
		return "bool"
	case "Copia":
		return "Vec"
	case "Tabula":
		return "std::collections::HashMap"
	default:
		return nomen
	}
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
	async := ""
	if f.Asynca {
		async = "async "
	}
	generics := ""
	if len(f.Generics) > 0 {
		generics = fmt.Sprintf("<%s>", strings.Join(f.Generics, ", "))
	}
	g.ctx.EmitLinef("%sfn %s%s(%s)%s {", async, f.Nomen, generics, strings.Join(params, ", "), ret)
	g.ctx.IncIndent()
	for _, stmt := range f.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genParam(p *ast.Param) string {
	typus := "_"
	if p.Typus != nil {
		typus = g.genTypeRef(p.Typus)
	}
	if p.Rest {
		return fmt.Sprintf("%s: Vec<%s>", p.Nomen, typus)
	}
	return fmt.Sprintf("%s: %s", p.Nomen, typus)
}

func (g *generator) genOrdoDecl(o *ast.OrdoDecl) {
	g.ctx.EmitLine("#[derive(Debug, Clone, Copy, PartialEq, Eq)]")
	g.ctx.EmitLinef("enum %s {", o.Nomen)
	g.ctx.IncIndent()
	for _, m := range o.Membra {
		if m.Valor != nil {
			g.ctx.EmitLinef("%s = %s,", m.Nomen, *m.Valor)
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
	g.ctx.EmitLinef("trait %s%s {", p.Nomen, generics)
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
		args := strings.Join(params, ", ")
		if args != "" {
			args = ", " + args
		}
		g.ctx.EmitLinef("fn %s(&self%s)%s;", m.Nomen, args, ret)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// genSiStmt emits `if`/`else if`/`else`. top controls whether the leading
// keyword gets its own indented line (false when continuing an else-if
// chain that already opened with `} else `).
func (g *generator) genSiStmt(s *ast.SiStmt, top bool) {
	line := fmt.Sprintf("if %s {", g.genExpr(s.Cond, precNone))
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
		g.ctx.Emit(g.ctx.IndentStr() + "} else ")
		g.genSiStmt(alt, false)
		return
	}
	g.ctx.EmitLine("} else {")
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
	g.ctx.EmitLinef("while %s {", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.EmitLinef("// cape(%s) has no direct while-loop equivalent in Rust; panics propagate", s.Cape.Param)
	}
}

func (g *generator) genIteratioStmt(s *ast.IteratioStmt) {
	async := ""
	if s.Asynca {
		async = ".await"
	}
	if s.Species == ast.IteratioDe {
		g.ctx.EmitLinef("for (%s, _) in (%s)%s.iter().enumerate() {", s.Binding, g.genExpr(s.Iter, precNone), async)
	} else {
		g.ctx.EmitLinef("for %s in %s%s {", s.Binding, g.genExpr(s.Iter, precNone), async)
	}
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// genFacStmt lowers the do-while form (Cond != nil) to Rust's `loop { ...;
// if !cond { break } }`, since Rust has no native do-while construct.
func (g *generator) genFacStmt(s *ast.FacStmt) {
	if s.Cond == nil {
		g.genStmtInline(s.Corpus)
		return
	}
	g.ctx.EmitLine("loop {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.EmitLinef("if !(%s) {", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.ctx.EmitLine("break;")
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genEligeStmt(s *ast.EligeStmt) {
	g.ctx.EmitLinef("match %s {", g.genExpr(s.Discrim, precNone))
	g.ctx.IncIndent()
	for _, c := range s.Casus {
		g.ctx.EmitLinef("%s => {", g.genExpr(c.Cond, precNone))
		g.ctx.IncIndent()
		g.genStmtInline(c.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	if s.Default != nil {
		g.ctx.EmitLine("_ => {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Default)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// genTemptaStmt: Rust has no finally. Demum is lowered to a drop-guard
// closure struct whose Drop impl runs the cleanup, mirroring the C++
// scope-guard idiom but built from Rust's own ownership/Drop machinery.
func (g *generator) genTemptaStmt(s *ast.TemptaStmt) {
	g.ctx.EmitLine("{")
	g.ctx.IncIndent()
	if s.Demum != nil {
		guard := g.ctx.FreshGuard()
		g.ctx.AddImport("std::panic")
		g.ctx.EmitLinef("struct %s<F: FnMut()>(F);", guardTypeName(guard))
		g.ctx.EmitLinef("impl<F: FnMut()> Drop for %s<F> { fn drop(&mut self) { (self.0)(); } }", guardTypeName(guard))
		g.ctx.EmitLinef("let mut %s = %s(|| {", guard, guardTypeName(guard))
		g.ctx.IncIndent()
		g.genStmtInline(s.Demum)
		g.ctx.DecIndent()
		g.ctx.EmitLine("});")
		g.ctx.EmitLinef("let _ = &mut %s;", guard)
	}
	if s.Cape != nil {
		g.ctx.EmitLinef("let %s = std::panic::catch_unwind(std::panic::AssertUnwindSafe(|| {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}));")
		g.ctx.EmitLinef("if let Err(%s) = %s {", s.Cape.Param, s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	} else {
		g.genStmtInline(s.Corpus)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func guardTypeName(varName string) string {
	return "Guard" + strings.Title(strings.TrimPrefix(varName, "_")) //nolint:staticcheck
}

func (g *generator) genIaceStmt(s *ast.IaceStmt) {
	if s.Fatale {
		g.ctx.EmitLinef("std::process::abort(); // mori: %s", g.genExpr(s.Arg, precNone))
		return
	}
	g.ctx.EmitLinef("panic!(\"{}\", %s);", g.genExpr(s.Arg, precNone))
}

func (g *generator) genAdfirmaStmt(s *ast.AdfirmaStmt) {
	if s.Msg != nil {
		g.ctx.EmitLinef("assert!(%s, \"{}\", %s);", g.genExpr(s.Cond, precNone), g.genExpr(s.Msg, precNone))
		return
	}
	g.ctx.EmitLinef("assert!(%s);", g.genExpr(s.Cond, precNone))
}

func (g *generator) genScribeStmt(s *ast.ScribeStmt) {
	macro := "println!"
	label := ""
	switch s.Gradus {
	case ast.ScribeDebug:
		macro = "println!"
		label = "[debug] "
	case ast.ScribeWarn:
		macro = "eprintln!"
		label = "[warn] "
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = g.genExpr(a, precNone)
	}
	placeholders := strings.Repeat("{} ", len(parts))
	placeholders = strings.TrimSpace(placeholders)
	fstr := label + placeholders
	all := append([]string{fmt.Sprintf("%q", fstr)}, parts...)
	g.ctx.EmitLinef("%s(%s);", macro, strings.Join(all, ", "))
}

func (g *generator) genCustodiStmt(s *ast.CustodiStmt) {
	for _, clause := range s.Clausulae {
		g.ctx.EmitLinef("if %s {", g.genExpr(clause.Cond, precNone))
		g.ctx.IncIndent()
		g.genStmtInline(clause.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

func (g *generator) genInStmt(s *ast.InStmt) {
	g.ctx.EmitLinef("{ let __in_ctx = &%s;", g.genExpr(s.Context, precNone))
	g.ctx.IncIndent()
	for _, stmt := range s.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genIncipitStmt(s *ast.IncipitStmt) {
	async := ""
	if s.Asynca {
		async = "async "
		g.ctx.EmitLine("#[tokio::main]")
	}
	g.ctx.EmitLinef("%sfn main() {", async)
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
	case "aut", "||":
		return precOr
	case "et", "&&":
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
		return fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, precNone), rustAssignOp(e.Signum), g.genExpr(e.Dex, precNone))
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

func rustAssignOp(signum string) string {
	if signum == "<-" {
		return "="
	}
	return signum
}

func (g *generator) genLiteral(l *ast.Literal) string {
	switch l.Species {
	case ast.LitteraInt, ast.LitteraFloat:
		return l.Valor
	case ast.LitteraTextus:
		return fmt.Sprintf("%q.to_string()", l.Valor)
	case ast.LitteraVerum:
		return "true"
	case ast.LitteraFalsum:
		return "false"
	case ast.LitteraNihil:
		return "None"
	case ast.LitteraRegex:
		g.ctx.AddImport("regex::Regex")
		flags := ""
		if l.Flags != nil && strings.Contains(*l.Flags, "i") {
			flags = "(?i)"
		}
		return fmt.Sprintf("Regex::new(%q).unwrap()", flags+l.Valor)
	default:
		return l.Valor
	}
}

func (g *generator) genBinaryExpr(e *ast.BinaryExpr, parentPrec int) string {
	switch e.Signum {
	case "intra":
		if r, ok := e.Dex.(*ast.RangeExpr); ok {
			lo := g.genExpr(r.Start, precComparison)
			hi := g.genExpr(r.End, precComparison)
			sin := g.genExpr(e.Sin, precComparison)
			cmp := "<="
			if !r.Inclusive {
				cmp = "<"
			}
			return fmt.Sprintf("(%s <= %s && %s %s %s)", lo, sin, sin, cmp, hi)
		}
	case "inter":
		return fmt.Sprintf("%s.contains(&%s)", g.genExpr(e.Dex, precPostfix), g.genExpr(e.Sin, precNone))
	}
	op := e.Signum
	switch op {
	case "et":
		op = "&&"
	case "aut":
		op = "||"
	}
	prec := binPrec(e.Signum)
	out := fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, prec), op, g.genExpr(e.Dex, prec+1))
	if prec < parentPrec {
		return "(" + out + ")"
	}
	return out
}

func (g *generator) genUnaryExpr(e *ast.UnaryExpr) string {
	op := e.Signum
	if op == "non" {
		op = "!"
	}
	return fmt.Sprintf("%s%s", op, g.genExpr(e.Arg, precUnary))
}

func (g *generator) genArrayExpr(e *ast.ArrayExpr) string {
	parts := make([]string, 0, len(e.Elementa))
	hasSpread := false
	for _, el := range e.Elementa {
		if el.Spread {
			hasSpread = true
			// Rust's vec! macro has no native spread syntax; the spread
			// source must be concatenated separately, so this is emitted
			// as a lossy inline comment rather than valid code.
			parts = append(parts, fmt.Sprintf("/* ...%s not expressible inline, see .extend() */", g.genExpr(el.Valor, precNone)))
			continue
		}
		parts = append(parts, g.genExpr(el.Valor, precNone))
	}
	if hasSpread {
		return fmt.Sprintf("vec![%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("vec![%s]", strings.Join(parts, ", "))
}

func (g *generator) genObjectExpr(e *ast.ObjectExpr) string {
	parts := make([]string, 0, len(e.Props))
	for _, prop := range e.Props {
		parts = append(parts, fmt.Sprintf("(%s, %s)", g.genExpr(prop.Key, precNone), g.genExpr(prop.Valor, precNone)))
	}
	return fmt.Sprintf("std::collections::HashMap::from([%s])", strings.Join(parts, ", "))
}

func (g *generator) genRangeExpr(e *ast.RangeExpr) string {
	op := ".."
	if e.Inclusive {
		op = "..="
	}
	base := fmt.Sprintf("%s%s%s", g.genExpr(e.Start, precNone), op, g.genExpr(e.End, precNone))
	if e.Step != nil {
		return fmt.Sprintf("(%s).step_by(%s as usize)", base, g.genExpr(e.Step, precNone))
	}
	return base
}

func (g *generator) genNovumExpr(e *ast.NovumExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	call := fmt.Sprintf("%s::new(%s)", g.genExpr(e.Callee, precPostfix), strings.Join(args, ", "))
	if e.Init != nil {
		return fmt.Sprintf("{ let mut __o = %s; __o = %s; __o }", call, g.genExpr(e.Init, precNone))
	}
	return call
}

func (g *generator) genScriptumExpr(e *ast.ScriptumExpr) string {
	fstr := strings.ReplaceAll(e.Format, "§", "{}")
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	all := append([]string{fmt.Sprintf("%q", fstr)}, args...)
	return fmt.Sprintf("format!(%s)", strings.Join(all, ", "))
}

func (g *generator) genFingeExpr(e *ast.FingeExpr) string {
	fields := make([]string, len(e.Campi))
	for i, f := range e.Campi {
		fields[i] = fmt.Sprintf("%s: %s", g.genExpr(f.Key, precNone), g.genExpr(f.Valor, precNone))
	}
	name := e.Variant
	if e.Discriminator != nil {
		name = e.Discriminator.Nomen + "::" + e.Variant
	}
	if len(fields) == 0 {
		return name
	}
	return fmt.Sprintf("%s { %s }", name, strings.Join(fields, ", "))
}

func (g *generator) genCollectionDSLExpr(e *ast.CollectionDSLExpr) string {
	out := g.genExpr(e.Source, precPostfix) + ".iter()"
	for _, t := range e.Transforms {
		name := mapCollectionVerb(t.Nomen)
		arg := ""
		if t.Arg != nil {
			arg = g.genExpr(t.Arg, precNone)
		}
		out = fmt.Sprintf("%s.%s(%s)", out, name, arg)
	}
	return out + ".collect::<Vec<_>>()"
}

func mapCollectionVerb(nomen string) string {
	switch nomen {
	case "filge":
		return "filter"
	case "transforma":
		return "map"
	case "collige":
		return "cloned"
	default:
		return nomen
	}
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
	prop := g.genExpr(e.Prop, precPostfix)
	if e.NonNull {
		return fmt.Sprintf("%s.unwrap().%s", obj, prop)
	}
	return fmt.Sprintf("%s.%s", obj, prop)
}

func (g *generator) genClosureExpr(e *ast.ClosureExpr) string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Nomen
	}
	switch body := e.Corpus.(type) {
	case *ast.BlockStmt:
		inner := &generator{ctx: emitctx.New("    ")}
		inner.ctx.Depth = g.ctx.Depth + 1
		for _, stmt := range body.Corpus {
			inner.genStmt(stmt)
		}
		return fmt.Sprintf("|%s| {\n%s%s}", strings.Join(params, ", "), inner.ctx.String(), g.ctx.IndentStr())
	case ast.Expr:
		return fmt.Sprintf("|%s| %s", strings.Join(params, ", "), g.genExpr(body, precNone))
	default:
		return fmt.Sprintf("|%s| {}", strings.Join(params, ", "))
	}
}

// Package tsgen emits TypeScript surface syntax from a Faber ast.Program.
package tsgen

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

// Backend implements backend.Backend for the "ts" target.
type Backend struct{}

func (b *Backend) Name() string { return "ts" }

func (b *Backend) Generate(prog *ast.Program) (string, error) {
	g := &generator{ctx: emitctx.New("  ")}
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
		fmt.Fprintf(&b, "import %s;\n", imp)
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
		g.ctx.AddImport("{ test, expect } from \"vitest\"")
		g.ctx.EmitLinef("test(%q, () => {", s.Nomen)
		g.ctx.IncIndent()
		for _, stmt := range s.Corpus.Corpus {
			g.genStmt(stmt)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("});")
	case *ast.ProbandumStmt:
		g.ctx.AddImport("{ describe } from \"vitest\"")
		g.ctx.EmitLinef("describe(%q, () => {", s.Nomen)
		g.ctx.IncIndent()
		for _, child := range s.Corpus {
			g.genStmt(child)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("});")
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
	kw := "let"
	if s.Species == ast.VarFixum {
		kw = "const"
	}
	typeAnno := ""
	if s.Typus != nil {
		typeAnno = ": " + g.genTypeRef(s.Typus)
	}
	if s.Valor != nil {
		g.ctx.EmitLinef("%s %s%s = %s;", kw, s.Nomen, typeAnno, g.genExpr(s.Valor, precNone))
	} else {
		g.ctx.EmitLinef("%s %s%s;", kw, s.Nomen, typeAnno)
	}
}

func (g *generator) genTypeRef(t *ast.TypeRef) string {
	name := mapTypeName(t.Nomen)
	if len(t.Args) == 1 && t.Nomen == "Copia" {
		name = g.genTypeRef(t.Args[0]) + "[]"
	} else if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = g.genTypeRef(a)
		}
		name = fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
	}
	if t.Nullable {
		name += " | undefined"
	}
	return name
}

func mapTypeName(nomen string) string {
	switch nomen {
	case "Numerus", "Pars":
		return "number"
	case "Textus":
		return "string"
	case "Logicum":
		return "boolean"
	case "Copia":
		return "Array"
	case "Tabula":
		return "Map"
	default:
		return nomen
	}
}

func (g *generator) genFunctionDecl(f *ast.FunctionDecl) {
	ret := ""
	if f.TypusReditus != nil {
		ret = ": " + g.genTypeRef(f.TypusReditus)
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
	g.ctx.EmitLinef("%sfunction %s%s(%s)%s {", async, f.Nomen, generics, strings.Join(params, ", "), ret)
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
		return fmt.Sprintf("...%s%s", p.Nomen, typus)
	}
	decl := p.Nomen + typus
	if p.Default != nil {
		decl += " = " + g.genExpr(p.Default, precNone)
	}
	return decl
}

func (g *generator) genOrdoDecl(o *ast.OrdoDecl) {
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
	g.ctx.EmitLinef("interface %s%s {", p.Nomen, generics)
	g.ctx.IncIndent()
	for _, m := range p.Methodi {
		ret := "void"
		if m.TypusReditus != nil {
			ret = g.genTypeRef(m.TypusReditus)
		}
		params := make([]string, len(m.Params))
		for i, prm := range m.Params {
			params[i] = g.genParam(prm)
		}
		g.ctx.EmitLinef("%s(%s): %s;", m.Nomen, strings.Join(params, ", "), ret)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genSiStmt(s *ast.SiStmt, top bool) {
	line := fmt.Sprintf("if (%s) {", g.genExpr(s.Cond, precNone))
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
	if s.Cape != nil {
		g.ctx.EmitLine("try {")
		g.ctx.IncIndent()
	}
	g.ctx.EmitLinef("while (%s) {", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.DecIndent()
		g.ctx.EmitLinef("} catch (%s) {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

func (g *generator) genIteratioStmt(s *ast.IteratioStmt) {
	if s.Cape != nil {
		g.ctx.EmitLine("try {")
		g.ctx.IncIndent()
	}
	async := ""
	if s.Asynca {
		async = "await "
	}
	if s.Species == ast.IteratioDe {
		g.ctx.EmitLinef("for (let %s = 0; %s < %s(%s).length; %s++) {", s.Binding, s.Binding, async, g.genExpr(s.Iter, precNone), s.Binding)
	} else {
		g.ctx.EmitLinef("for (const %s of %s%s) {", s.Binding, async, g.genExpr(s.Iter, precNone))
	}
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.DecIndent()
		g.ctx.EmitLinef("} catch (%s) {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

func (g *generator) genFacStmt(s *ast.FacStmt) {
	if s.Cond == nil {
		g.genStmtInline(s.Corpus)
		return
	}
	g.ctx.EmitLine("do {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLinef("} while (%s);", g.genExpr(s.Cond, precNone))
}

func (g *generator) genEligeStmt(s *ast.EligeStmt) {
	g.ctx.EmitLinef("switch (%s) {", g.genExpr(s.Discrim, precNone))
	g.ctx.IncIndent()
	for _, c := range s.Casus {
		g.ctx.EmitLinef("case %s: {", g.genExpr(c.Cond, precNone))
		g.ctx.IncIndent()
		g.genStmtInline(c.Corpus)
		g.ctx.EmitLine("break;")
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	if s.Default != nil {
		g.ctx.EmitLine("default: {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Default)
		g.ctx.EmitLine("break;")
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genTemptaStmt(s *ast.TemptaStmt) {
	g.ctx.EmitLine("try {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	if s.Cape != nil {
		g.ctx.EmitLinef("} catch (%s) {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
	}
	if s.Demum != nil {
		g.ctx.EmitLine("} finally {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Demum)
		g.ctx.DecIndent()
	}
	g.ctx.EmitLine("}")
}

func (g *generator) genIaceStmt(s *ast.IaceStmt) {
	if s.Fatale {
		g.ctx.EmitLinef("process.abort(); // mori: %s", g.genExpr(s.Arg, precNone))
		return
	}
	g.ctx.EmitLinef("throw new Error(%s);", g.genExpr(s.Arg, precNone))
}

func (g *generator) genAdfirmaStmt(s *ast.AdfirmaStmt) {
	cond := g.genExpr(s.Cond, precNone)
	msg := fmt.Sprintf("%q", "Assertion failed: "+cond)
	if s.Msg != nil {
		msg = g.genExpr(s.Msg, precNone)
	}
	g.ctx.EmitLinef("if (!(%s)) { throw new Error(%s); }", cond, msg)
}

func (g *generator) genScribeStmt(s *ast.ScribeStmt) {
	fn := "console.log"
	label := ""
	switch s.Gradus {
	case ast.ScribeDebug:
		fn = "console.debug"
		label = "[debug] "
	case ast.ScribeWarn:
		fn = "console.warn"
		label = "[warn] "
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = g.genExpr(a, precNone)
	}
	if label != "" {
		all := append([]string{fmt.Sprintf("%q", label)}, parts...)
		g.ctx.EmitLinef("%s(%s);", fn, strings.Join(all, ", "))
		return
	}
	g.ctx.EmitLinef("%s(%s);", fn, strings.Join(parts, ", "))
}

func (g *generator) genCustodiStmt(s *ast.CustodiStmt) {
	for _, clause := range s.Clausulae {
		g.ctx.EmitLinef("if (%s) {", g.genExpr(clause.Cond, precNone))
		g.ctx.IncIndent()
		g.genStmtInline(clause.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

func (g *generator) genInStmt(s *ast.InStmt) {
	g.ctx.EmitLinef("{ const __inCtx = %s;", g.genExpr(s.Context, precNone))
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
	}
	g.ctx.EmitLinef("%sfunction main() {", async)
	g.ctx.IncIndent()
	for _, stmt := range s.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	g.ctx.EmitLine("main();")
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
	case "<", ">", "<=", ">=":
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
		return fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, precNone), tsAssignOp(e.Signum), g.genExpr(e.Dex, precNone))
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

func tsAssignOp(signum string) string {
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
		return fmt.Sprintf("%q", l.Valor)
	case ast.LitteraVerum:
		return "true"
	case ast.LitteraFalsum:
		return "false"
	case ast.LitteraNihil:
		return "undefined"
	case ast.LitteraRegex:
		flags := "u"
		if l.Flags != nil && strings.Contains(*l.Flags, "i") {
			flags += "i"
		}
		return fmt.Sprintf("/%s/%s", l.Valor, flags)
	default:
		return l.Valor
	}
}

// genBinaryExpr implements the two TS-specific lowering rules: intra
// (range containment) becomes a boolean conjunction of two comparisons,
// and inter (set membership) becomes Array#includes.
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
		return fmt.Sprintf("%s.includes(%s)", g.genExpr(e.Dex, precPostfix), g.genExpr(e.Sin, precNone))
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
	for _, el := range e.Elementa {
		if el.Spread {
			parts = append(parts, "..."+g.genExpr(el.Valor, precNone))
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
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

func (g *generator) genRangeExpr(e *ast.RangeExpr) string {
	g.ctx.AddImport("{ range } from \"./faber-runtime\"")
	end := g.genExpr(e.End, precNone)
	inclusive := "false"
	if e.Inclusive {
		inclusive = "true"
	}
	step := "1"
	if e.Step != nil {
		step = g.genExpr(e.Step, precNone)
	}
	return fmt.Sprintf("range(%s, %s, %s, %s)", g.genExpr(e.Start, precNone), end, step, inclusive)
}

func (g *generator) genNovumExpr(e *ast.NovumExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	call := fmt.Sprintf("new %s(%s)", g.genExpr(e.Callee, precPostfix), strings.Join(args, ", "))
	if e.Init != nil {
		return fmt.Sprintf("Object.assign(%s, %s)", call, g.genExpr(e.Init, precNone))
	}
	return call
}

func (g *generator) genScriptumExpr(e *ast.ScriptumExpr) string {
	parts := strings.Split(e.Format, "§")
	var b strings.Builder
	b.WriteString("`")
	for i, part := range parts {
		b.WriteString(part)
		if i < len(e.Args) {
			b.WriteString("${")
			b.WriteString(g.genExpr(e.Args[i], precNone))
			b.WriteString("}")
		}
	}
	b.WriteString("`")
	return b.String()
}

func (g *generator) genFingeExpr(e *ast.FingeExpr) string {
	fields := make([]string, len(e.Campi))
	for i, f := range e.Campi {
		fields[i] = fmt.Sprintf("%s: %s", g.genExpr(f.Key, precNone), g.genExpr(f.Valor, precNone))
	}
	tag := ""
	if e.Discriminator != nil {
		tag = fmt.Sprintf("kind: %q, ", e.Variant)
	}
	return fmt.Sprintf("{ %s%s }", tag, strings.Join(fields, ", "))
}

func (g *generator) genCollectionDSLExpr(e *ast.CollectionDSLExpr) string {
	out := g.genExpr(e.Source, precPostfix)
	for _, t := range e.Transforms {
		name := mapCollectionVerb(t.Nomen)
		arg := ""
		if t.Arg != nil {
			arg = g.genExpr(t.Arg, precNone)
		}
		out = fmt.Sprintf("%s.%s(%s)", out, name, arg)
	}
	return out
}

func mapCollectionVerb(nomen string) string {
	switch nomen {
	case "filge":
		return "filter"
	case "transforma":
		return "map"
	case "collige":
		return "slice"
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
		return fmt.Sprintf("%s!.%s", obj, prop)
	}
	return fmt.Sprintf("%s.%s", obj, prop)
}

func (g *generator) genClosureExpr(e *ast.ClosureExpr) string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = g.genParam(p)
	}
	switch body := e.Corpus.(type) {
	case *ast.BlockStmt:
		inner := &generator{ctx: emitctx.New("  ")}
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

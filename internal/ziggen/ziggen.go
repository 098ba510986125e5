// Package ziggen emits Zig surface syntax from a Faber ast.Program.
package ziggen

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

// Backend implements backend.Backend for the "zig" target.
type Backend struct{}

func (b *Backend) Name() string { return "zig" }

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
		fmt.Fprintf(&b, "const %s = @import(%q);\n", importAlias(imp), imp)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func importAlias(path string) string {
	return strings.TrimSuffix(path, ".zig")
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
		g.ctx.EmitLinef("test %q {", s.Nomen)
		g.ctx.IncIndent()
		for _, stmt := range s.Corpus.Corpus {
			g.genStmt(stmt)
		}
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	case *ast.ProbandumStmt:
		g.ctx.EmitLinef("// probandum: %s", s.Nomen)
		for _, child := range s.Corpus {
			g.genStmt(child)
		}
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
	kw := "var"
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
		g.ctx.EmitLinef("%s %s%s = undefined;", kw, s.Nomen, typeAnno)
	}
}

func (g *generator) genTypeRef(t *ast.TypeRef) string {
	name := mapTypeName(t.Nomen)
	if len(t.Args) > 0 && name == "[]" {
		name = fmt.Sprintf("[]%s", g.genTypeRef(t.Args[0]))
	} else if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = g.genTypeRef(a)
		}
		name = fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	}
	if t.Nullable {
		name = "?" + name
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
		return "[]const u8"
	case "Logicum":
		return "bool"
	case "Copia":
		return "[]"
	case "Tabula":
		return "std.StringHashMap"
	default:
		return nomen
	}
}

func (g *generator) genFunctionDecl(f *ast.FunctionDecl) {
	ret := "void"
	if f.TypusReditus != nil {
		ret = g.genTypeRef(f.TypusReditus)
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = g.genParam(p)
	}
	prefix := ""
	if f.Asynca {
		prefix = "/* fiet */ "
	}
	g.ctx.EmitLinef("%spub fn %s(%s) %s {", prefix, f.Nomen, strings.Join(params, ", "), ret)
	g.ctx.IncIndent()
	for _, stmt := range f.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genParam(p *ast.Param) string {
	typus := "anytype"
	if p.Typus != nil {
		typus = g.genTypeRef(p.Typus)
	}
	if p.Rest {
		return fmt.Sprintf("%s: []const %s", p.Nomen, typus)
	}
	return fmt.Sprintf("%s: %s", p.Nomen, typus)
}

func (g *generator) genOrdoDecl(o *ast.OrdoDecl) {
	g.ctx.EmitLinef("pub const %s = enum {", o.Nomen)
	g.ctx.IncIndent()
	for _, m := range o.Membra {
		name := strings.ToLower(m.Nomen)
		if m.Valor != nil {
			g.ctx.EmitLinef("%s = %s,", name, *m.Valor)
		} else {
			g.ctx.EmitLinef("%s,", name)
		}
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("};")
}

// genPactumDecl: Zig has no interface/trait construct, so a pactum lowers
// to a block of plain `//` comments describing the required method set rather than a
// compiled declaration — callers are expected to structurally satisfy it.
func (g *generator) genPactumDecl(p *ast.PactumDecl) {
	g.ctx.EmitLinef("// pactum %s (Zig has no interface type; structural contract only)", p.Nomen)
	for _, m := range p.Methodi {
		ret := "void"
		if m.TypusReditus != nil {
			ret = g.genTypeRef(m.TypusReditus)
		}
		params := make([]string, len(m.Params))
		for i, prm := range m.Params {
			params[i] = g.genParam(prm)
		}
		g.ctx.EmitLinef("//   fn %s(%s) %s", m.Nomen, strings.Join(params, ", "), ret)
	}
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
	g.ctx.EmitLinef("while (%s) {", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.EmitLinef("// cape(%s) has no direct while-loop equivalent; errors propagate via error unions", s.Cape.Param)
	}
}

func (g *generator) genIteratioStmt(s *ast.IteratioStmt) {
	if s.Species == ast.IteratioDe {
		g.ctx.EmitLinef("for (%s, 0..) |_, %s| {", g.genExpr(s.Iter, precNone), s.Binding)
	} else {
		g.ctx.EmitLinef("for (%s) |%s| {", g.genExpr(s.Iter, precNone), s.Binding)
	}
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// genFacStmt lowers do-while to Zig's `while (true) { ...; if (!cond)
// break; }` — Zig has no native do-while.
func (g *generator) genFacStmt(s *ast.FacStmt) {
	if s.Cond == nil {
		g.genStmtInline(s.Corpus)
		return
	}
	g.ctx.EmitLine("while (true) {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.EmitLinef("if (!(%s)) break;", g.genExpr(s.Cond, precNone))
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genEligeStmt(s *ast.EligeStmt) {
	g.ctx.EmitLinef("switch (%s) {", g.genExpr(s.Discrim, precNone))
	g.ctx.IncIndent()
	for _, c := range s.Casus {
		g.ctx.EmitLinef("%s => {", g.genExpr(c.Cond, precNone))
		g.ctx.IncIndent()
		g.genStmtInline(c.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("},")
	}
	if s.Default != nil {
		g.ctx.EmitLine("else => {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Default)
		g.ctx.DecIndent()
		g.ctx.EmitLine("},")
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// genTemptaStmt: Zig has no exceptions; errors are values. tempta lowers to
// a defer for demum (Zig's own scope-exit primitive, the native analogue of
// the C++ RAII guard) and an if-error-capture for cape.
func (g *generator) genTemptaStmt(s *ast.TemptaStmt) {
	g.ctx.EmitLine("{")
	g.ctx.IncIndent()
	if s.Demum != nil {
		g.ctx.EmitLine("defer {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Demum)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
	if s.Cape != nil {
		g.ctx.EmitLinef("if (faber.run(struct { fn call() !void {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Corpus)
		g.ctx.EmitLine("}")
		g.ctx.DecIndent()
		g.ctx.EmitLinef("}.call)) |_| {} else |%s| {", s.Cape.Param)
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

func (g *generator) genIaceStmt(s *ast.IaceStmt) {
	if s.Fatale {
		g.ctx.EmitLinef("@panic(%s); // mori", g.genExpr(s.Arg, precNone))
		return
	}
	g.ctx.EmitLinef("return error.FaberError; // iace: %s", g.genExpr(s.Arg, precNone))
}

func (g *generator) genAdfirmaStmt(s *ast.AdfirmaStmt) {
	g.ctx.AddImport("std")
	if s.Msg != nil {
		g.ctx.EmitLinef("std.debug.assert(%s); // %s", g.genExpr(s.Cond, precNone), g.genExpr(s.Msg, precNone))
		return
	}
	g.ctx.EmitLinef("std.debug.assert(%s);", g.genExpr(s.Cond, precNone))
}

func (g *generator) genScribeStmt(s *ast.ScribeStmt) {
	g.ctx.AddImport("std")
	label := ""
	switch s.Gradus {
	case ast.ScribeDebug:
		label = "[debug] "
	case ast.ScribeWarn:
		label = "[warn] "
	}
	parts := make([]string, len(s.Args))
	fmtStr := label
	for i, a := range s.Args {
		parts[i] = g.genExpr(a, precNone)
		fmtStr += "{} "
	}
	fmtStr = strings.TrimSpace(fmtStr)
	g.ctx.EmitLinef("std.debug.print(%q, .{%s});", fmtStr+"\n", strings.Join(parts, ", "))
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
	g.ctx.EmitLinef("{ const __in_ctx = %s;", g.genExpr(s.Context, precNone))
	g.ctx.IncIndent()
	for _, stmt := range s.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genIncipitStmt(s *ast.IncipitStmt) {
	g.ctx.AddImport("std")
	g.ctx.EmitLine("pub fn main() !void {")
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
		return fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, precNone), zigAssignOp(e.Signum), g.genExpr(e.Dex, precNone))
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
		return fmt.Sprintf("@compileError(\"unhandled expr %T\")", expr)
	}
}

func zigAssignOp(signum string) string {
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
		return "null"
	case ast.LitteraRegex:
		return fmt.Sprintf("%q // regex: flags=%s", l.Valor, flagsOf(l.Flags))
	default:
		return l.Valor
	}
}

func flagsOf(f *string) string {
	if f == nil {
		return ""
	}
	return *f
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
			return fmt.Sprintf("(%s <= %s and %s %s %s)", lo, sin, sin, cmp, hi)
		}
	case "inter":
		return fmt.Sprintf("faber.contains(%s, %s)", g.genExpr(e.Dex, precNone), g.genExpr(e.Sin, precNone))
	}
	op := e.Signum
	switch op {
	case "et":
		op = "and"
	case "aut":
		op = "or"
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
			parts = append(parts, fmt.Sprintf("/* ...%s spread requires manual concat */", g.genExpr(el.Valor, precNone)))
			continue
		}
		parts = append(parts, g.genExpr(el.Valor, precNone))
	}
	return fmt.Sprintf("&[_]anytype{%s}", strings.Join(parts, ", "))
}

func (g *generator) genObjectExpr(e *ast.ObjectExpr) string {
	parts := make([]string, 0, len(e.Props))
	for _, prop := range e.Props {
		parts = append(parts, fmt.Sprintf(".%s = %s", g.genExpr(prop.Key, precNone), g.genExpr(prop.Valor, precNone)))
	}
	return fmt.Sprintf(".{%s}", strings.Join(parts, ", "))
}

func (g *generator) genRangeExpr(e *ast.RangeExpr) string {
	end := g.genExpr(e.End, precNone)
	if e.Inclusive {
		end = fmt.Sprintf("(%s) + 1", end)
	}
	return fmt.Sprintf("%s..%s", g.genExpr(e.Start, precNone), end)
}

func (g *generator) genNovumExpr(e *ast.NovumExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	call := fmt.Sprintf("%s.init(%s)", g.genExpr(e.Callee, precPostfix), strings.Join(args, ", "))
	if e.Init != nil {
		return fmt.Sprintf("%s // novum ... de %s applied separately", call, g.genExpr(e.Init, precNone))
	}
	return call
}

func (g *generator) genScriptumExpr(e *ast.ScriptumExpr) string {
	g.ctx.AddImport("std")
	fstr := strings.ReplaceAll(e.Format, "§", "{}")
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	return fmt.Sprintf("std.fmt.comptimePrint(%q, .{%s})", fstr, strings.Join(args, ", "))
}

func (g *generator) genFingeExpr(e *ast.FingeExpr) string {
	fields := make([]string, len(e.Campi))
	for i, f := range e.Campi {
		fields[i] = fmt.Sprintf(".%s = %s", g.genExpr(f.Key, precNone), g.genExpr(f.Valor, precNone))
	}
	name := e.Variant
	if e.Discriminator != nil {
		name = e.Discriminator.Nomen
	}
	return fmt.Sprintf("%s{%s}", name, strings.Join(fields, ", "))
}

func (g *generator) genCollectionDSLExpr(e *ast.CollectionDSLExpr) string {
	out := g.genExpr(e.Source, precPostfix)
	for _, t := range e.Transforms {
		arg := ""
		if t.Arg != nil {
			arg = g.genExpr(t.Arg, precNone)
		}
		out = fmt.Sprintf("faber.%s(%s, %s)", t.Nomen, out, arg)
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
	prop := g.genExpr(e.Prop, precPostfix)
	if e.NonNull {
		return fmt.Sprintf("%s.?.%s", obj, prop)
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
		inner := &generator{ctx: emitctx.New("    ")}
		inner.ctx.Depth = g.ctx.Depth + 1
		for _, stmt := range body.Corpus {
			inner.genStmt(stmt)
		}
		return fmt.Sprintf("struct { fn call(%s) void {\n%s%s} }.call", strings.Join(params, ", "), inner.ctx.String(), g.ctx.IndentStr())
	case ast.Expr:
		return fmt.Sprintf("struct { fn call(%s) @TypeOf(%s) { return %s; } }.call", strings.Join(params, ", "), g.genExpr(body, precNone), g.genExpr(body, precNone))
	default:
		return "struct {}.call"
	}
}

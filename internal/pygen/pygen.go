// Package pygen emits Python surface syntax from a Faber ast.Program.
package pygen

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

// Backend implements backend.Backend for the "py" target.
type Backend struct{}

func (b *Backend) Name() string { return "py" }

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
		fmt.Fprintf(&b, "import %s\n", imp)
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
		for _, child := range s.Corpus {
			g.genStmt(child)
		}
	case *ast.ExprStmt:
		g.ctx.EmitLine(g.genExpr(s.Expr, precNone))
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
			g.ctx.EmitLinef("return %s", g.genExpr(s.Valor, precNone))
		} else {
			g.ctx.EmitLine("return")
		}
	case *ast.RumpeStmt:
		g.ctx.EmitLine("break")
	case *ast.PergeStmt:
		g.ctx.EmitLine("continue")
	case *ast.CustodiStmt:
		g.genCustodiStmt(s)
	case *ast.InStmt:
		g.genInStmt(s)
	case *ast.IncipitStmt:
		g.genIncipitStmt(s)
	case *ast.PraeparaBlock:
		g.ctx.EmitLine("# praepara")
		g.emitBody(s.Corpus.Corpus)
	case *ast.ProbaStmt:
		g.ctx.AddImport("unittest")
		g.ctx.EmitLinef("def test_%s(self):", sanitizeIdent(s.Nomen))
		g.ctx.IncIndent()
		g.emitBody(s.Corpus.Corpus)
		g.ctx.DecIndent()
	case *ast.ProbandumStmt:
		g.ctx.AddImport("unittest")
		g.ctx.EmitLinef("class %s(unittest.TestCase):", sanitizeClassName(s.Nomen))
		g.ctx.IncIndent()
		for _, child := range s.Corpus {
			g.genStmt(child)
		}
		g.ctx.DecIndent()
	default:
		g.ctx.EmitLinef("# unhandled statement %T", stmt)
	}
}

func sanitizeIdent(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func sanitizeClassName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == ' ' || r == '_' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	if b.Len() == 0 {
		return "Suite"
	}
	return b.String()
}

// emitBody emits a statement list, falling back to `pass` if it's empty —
// Python blocks cannot be syntactically empty.
func (g *generator) emitBody(stmts []ast.Stmt) {
	if len(stmts) == 0 {
		g.ctx.EmitLine("pass")
		return
	}
	for _, s := range stmts {
		g.genStmt(s)
	}
}

func (g *generator) genVarStmt(s *ast.VarStmt) {
	anno := ""
	if s.Typus != nil {
		anno = ": " + g.genTypeRef(s.Typus)
	}
	if s.Valor != nil {
		g.ctx.EmitLinef("%s%s = %s", s.Nomen, anno, g.genExpr(s.Valor, precNone))
	} else {
		g.ctx.EmitLinef("%s%s = None", s.Nomen, anno)
	}
}

func (g *generator) genTypeRef(t *ast.TypeRef) string {
	name := mapTypeName(t.Nomen)
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = g.genTypeRef(a)
		}
		name = fmt.Sprintf("%s[%s]", name, strings.Join(args, ", "))
	}
	if t.Nullable {
		g.ctx.AddImport("typing")
		name = fmt.Sprintf("typing.Optional[%s]", name)
	}
	return name
}

func mapTypeName(nomen string) string {
	switch nomen {
	case "Numerus":
		return "int"
	case "Pars":
		return "float"
	case "Textus":
		return "str"
	case "Logicum":
		return "bool"
	case "Copia":
		return "list"
	case "Tabula":
		return "dict"
	default:
		return nomen
	}
}

func (g *generator) genFunctionDecl(f *ast.FunctionDecl) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = g.genParam(p)
	}
	ret := ""
	if f.TypusReditus != nil {
		ret = " -> " + g.genTypeRef(f.TypusReditus)
	}
	async := ""
	if f.Asynca {
		async = "async "
	}
	g.ctx.EmitLinef("%sdef %s(%s)%s:", async, f.Nomen, strings.Join(params, ", "), ret)
	g.ctx.IncIndent()
	g.emitBody(f.Corpus.Corpus)
	g.ctx.DecIndent()
}

func (g *generator) genParam(p *ast.Param) string {
	anno := ""
	if p.Typus != nil {
		anno = ": " + g.genTypeRef(p.Typus)
	}
	if p.Rest {
		return fmt.Sprintf("*%s", p.Nomen)
	}
	decl := p.Nomen + anno
	if p.Default != nil {
		decl += " = " + g.genExpr(p.Default, precNone)
	}
	return decl
}

func (g *generator) genOrdoDecl(o *ast.OrdoDecl) {
	g.ctx.AddImport("enum")
	g.ctx.EmitLinef("class %s(enum.Enum):", o.Nomen)
	g.ctx.IncIndent()
	for _, m := range o.Membra {
		if m.Valor != nil {
			g.ctx.EmitLinef("%s = %s", m.Nomen, *m.Valor)
		} else {
			// No explicit value: fall back to enum.auto(), since Python
			// enum members require a value.
			g.ctx.EmitLinef("%s = enum.auto()", m.Nomen)
		}
	}
	g.ctx.DecIndent()
}

func (g *generator) genPactumDecl(p *ast.PactumDecl) {
	g.ctx.AddImport("abc")
	g.ctx.EmitLinef("class %s(abc.ABC):", p.Nomen)
	g.ctx.IncIndent()
	for _, m := range p.Methodi {
		params := make([]string, len(m.Params))
		for i, prm := range m.Params {
			params[i] = g.genParam(prm)
		}
		args := strings.Join(params, ", ")
		if args != "" {
			args = "self, " + args
		} else {
			args = "self"
		}
		g.ctx.EmitLine("@abc.abstractmethod")
		g.ctx.EmitLinef("def %s(%s): ...", m.Nomen, args)
	}
	g.ctx.DecIndent()
}

func (g *generator) genSiStmt(s *ast.SiStmt, top bool) {
	kw := "if"
	if !top {
		kw = "elif"
	}
	g.ctx.EmitLinef("%s %s:", kw, g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.emitBody(blockOf(s.Cons))
	g.ctx.DecIndent()
	if s.Alt == nil {
		return
	}
	if alt, ok := s.Alt.(*ast.SiStmt); ok {
		g.genSiStmt(alt, false)
		return
	}
	g.ctx.EmitLine("else:")
	g.ctx.IncIndent()
	g.emitBody(blockOf(s.Alt))
	g.ctx.DecIndent()
}

func blockOf(s ast.Stmt) []ast.Stmt {
	if b, ok := s.(*ast.BlockStmt); ok {
		return b.Corpus
	}
	return []ast.Stmt{s}
}

func (g *generator) genDumStmt(s *ast.DumStmt) {
	if s.Cape != nil {
		g.ctx.EmitLine("try:")
		g.ctx.IncIndent()
	}
	g.ctx.EmitLinef("while %s:", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.emitBody(blockOf(s.Corpus))
	g.ctx.DecIndent()
	if s.Cape != nil {
		g.ctx.DecIndent()
		g.ctx.EmitLinef("except Exception as %s:", s.Cape.Param)
		g.ctx.IncIndent()
		g.emitBody(blockOf(s.Cape.Corpus))
		g.ctx.DecIndent()
	}
}

func (g *generator) genIteratioStmt(s *ast.IteratioStmt) {
	if s.Cape != nil {
		g.ctx.EmitLine("try:")
		g.ctx.IncIndent()
	}
	async := ""
	if s.Asynca {
		async = "async "
	}
	if s.Species == ast.IteratioDe {
		g.ctx.EmitLinef("%sfor %s in range(len(%s)):", async, s.Binding, g.genExpr(s.Iter, precNone))
	} else {
		g.ctx.EmitLinef("%sfor %s in %s:", async, s.Binding, g.genExpr(s.Iter, precNone))
	}
	g.ctx.IncIndent()
	g.emitBody(blockOf(s.Corpus))
	g.ctx.DecIndent()
	if s.Cape != nil {
		g.ctx.DecIndent()
		g.ctx.EmitLinef("except Exception as %s:", s.Cape.Param)
		g.ctx.IncIndent()
		g.emitBody(blockOf(s.Cape.Corpus))
		g.ctx.DecIndent()
	}
}

// genFacStmt lowers the do-while form to `while True: ...; if not cond:
// break` — Python has no native do-while.
func (g *generator) genFacStmt(s *ast.FacStmt) {
	if s.Cond == nil {
		g.emitBody(blockOf(s.Corpus))
		return
	}
	g.ctx.EmitLine("while True:")
	g.ctx.IncIndent()
	g.emitBody(blockOf(s.Corpus))
	g.ctx.EmitLinef("if not (%s):", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.ctx.EmitLine("break")
	g.ctx.DecIndent()
	g.ctx.DecIndent()
}

func (g *generator) genEligeStmt(s *ast.EligeStmt) {
	g.ctx.EmitLinef("match %s:", g.genExpr(s.Discrim, precNone))
	g.ctx.IncIndent()
	for _, c := range s.Casus {
		g.ctx.EmitLinef("case %s:", g.genExpr(c.Cond, precNone))
		g.ctx.IncIndent()
		g.emitBody(blockOf(c.Corpus))
		g.ctx.DecIndent()
	}
	if s.Default != nil {
		g.ctx.EmitLine("case _:")
		g.ctx.IncIndent()
		g.emitBody(blockOf(s.Default))
		g.ctx.DecIndent()
	}
	g.ctx.DecIndent()
}

func (g *generator) genTemptaStmt(s *ast.TemptaStmt) {
	g.ctx.EmitLine("try:")
	g.ctx.IncIndent()
	g.emitBody(blockOf(s.Corpus))
	g.ctx.DecIndent()
	if s.Cape != nil {
		g.ctx.EmitLinef("except Exception as %s:", s.Cape.Param)
		g.ctx.IncIndent()
		g.emitBody(blockOf(s.Cape.Corpus))
		g.ctx.DecIndent()
	}
	if s.Demum != nil {
		g.ctx.EmitLine("finally:")
		g.ctx.IncIndent()
		g.emitBody(blockOf(s.Demum))
		g.ctx.DecIndent()
	}
}

func (g *generator) genIaceStmt(s *ast.IaceStmt) {
	if s.Fatale {
		g.ctx.AddImport("os")
		g.ctx.EmitLinef("os.abort()  # mori: %s", g.genExpr(s.Arg, precNone))
		return
	}
	g.ctx.EmitLinef("raise Exception(%s)", g.genExpr(s.Arg, precNone))
}

func (g *generator) genAdfirmaStmt(s *ast.AdfirmaStmt) {
	if s.Msg != nil {
		g.ctx.EmitLinef("assert %s, %s", g.genExpr(s.Cond, precNone), g.genExpr(s.Msg, precNone))
		return
	}
	g.ctx.EmitLinef("assert %s", g.genExpr(s.Cond, precNone))
}

func (g *generator) genScribeStmt(s *ast.ScribeStmt) {
	label := ""
	stream := ""
	switch s.Gradus {
	case ast.ScribeDebug:
		label = "[debug] "
	case ast.ScribeWarn:
		g.ctx.AddImport("sys")
		label = "[warn] "
		stream = ", file=sys.stderr"
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = g.genExpr(a, precNone)
	}
	args := strings.Join(parts, ", ")
	if label != "" {
		g.ctx.EmitLinef("print(%q, %s%s)", label, args, stream)
	} else {
		g.ctx.EmitLinef("print(%s%s)", args, stream)
	}
}

func (g *generator) genCustodiStmt(s *ast.CustodiStmt) {
	for _, clause := range s.Clausulae {
		g.ctx.EmitLinef("if %s:", g.genExpr(clause.Cond, precNone))
		g.ctx.IncIndent()
		g.emitBody(blockOf(clause.Corpus))
		g.ctx.DecIndent()
	}
}

func (g *generator) genInStmt(s *ast.InStmt) {
	g.ctx.EmitLinef("with %s as __in_ctx:", g.genExpr(s.Context, precNone))
	g.ctx.IncIndent()
	g.emitBody(s.Corpus.Corpus)
	g.ctx.DecIndent()
}

func (g *generator) genIncipitStmt(s *ast.IncipitStmt) {
	if s.Asynca {
		g.ctx.AddImport("asyncio")
		g.ctx.EmitLine("async def main():")
		g.ctx.IncIndent()
		g.emitBody(s.Corpus.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("")
		g.ctx.EmitLine("if __name__ == \"__main__\":")
		g.ctx.IncIndent()
		g.ctx.EmitLine("asyncio.run(main())")
		g.ctx.DecIndent()
		return
	}
	g.ctx.EmitLine("def main():")
	g.ctx.IncIndent()
	g.emitBody(s.Corpus.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("")
	g.ctx.EmitLine("if __name__ == \"__main__\":")
	g.ctx.IncIndent()
	g.ctx.EmitLine("main()")
	g.ctx.DecIndent()
}

// --- Expressions ---

const (
	precNone = iota
	precOr
	precAnd
	precNot
	precComparison
	precAdditive
	precMulti
	precUnary
	precPostfix
)

func binPrec(signum string) int {
	switch signum {
	case "aut", "or":
		return precOr
	case "et", "and":
		return precAnd
	case "==", "!=", "<", ">", "<=", ">=", "intra", "inter", "in":
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
		return fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, precNone), pyAssignOp(e.Signum), g.genExpr(e.Dex, precNone))
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
		return fmt.Sprintf("None  # unhandled expr %T", expr)
	}
}

func pyAssignOp(signum string) string {
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
		return "True"
	case ast.LitteraFalsum:
		return "False"
	case ast.LitteraNihil:
		return "None"
	case ast.LitteraRegex:
		g.ctx.AddImport("re")
		flags := ""
		if l.Flags != nil && strings.Contains(*l.Flags, "i") {
			flags = ", re.IGNORECASE"
		}
		return fmt.Sprintf("re.compile(%q%s)", l.Valor, flags)
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
			if r.Inclusive {
				return fmt.Sprintf("%s <= %s <= %s", lo, sin, hi)
			}
			return fmt.Sprintf("%s <= %s < %s", lo, sin, hi)
		}
	case "inter":
		return fmt.Sprintf("%s in %s", g.genExpr(e.Sin, precComparison), g.genExpr(e.Dex, precComparison))
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
	if e.Signum == "non" {
		return fmt.Sprintf("not %s", g.genExpr(e.Arg, precNot))
	}
	return fmt.Sprintf("%s%s", e.Signum, g.genExpr(e.Arg, precUnary))
}

func (g *generator) genArrayExpr(e *ast.ArrayExpr) string {
	parts := make([]string, 0, len(e.Elementa))
	for _, el := range e.Elementa {
		if el.Spread {
			parts = append(parts, "*"+g.genExpr(el.Valor, precNone))
			continue
		}
		parts = append(parts, g.genExpr(el.Valor, precNone))
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

func (g *generator) genObjectExpr(e *ast.ObjectExpr) string {
	parts := make([]string, 0, len(e.Props))
	for _, prop := range e.Props {
		parts = append(parts, fmt.Sprintf("%s: %s", g.genExpr(prop.Key, precNone), g.genExpr(prop.Valor, precNone)))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (g *generator) genRangeExpr(e *ast.RangeExpr) string {
	end := g.genExpr(e.End, precNone)
	if e.Inclusive {
		end = fmt.Sprintf("(%s) + 1", end)
	}
	if e.Step != nil {
		return fmt.Sprintf("range(%s, %s, %s)", g.genExpr(e.Start, precNone), end, g.genExpr(e.Step, precNone))
	}
	return fmt.Sprintf("range(%s, %s)", g.genExpr(e.Start, precNone), end)
}

func (g *generator) genNovumExpr(e *ast.NovumExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	if e.Init != nil {
		args = append(args, g.genExpr(e.Init, precNone))
	}
	return fmt.Sprintf("%s(%s)", g.genExpr(e.Callee, precPostfix), strings.Join(args, ", "))
}

func (g *generator) genScriptumExpr(e *ast.ScriptumExpr) string {
	fstr := strings.ReplaceAll(e.Format, "§", "{}")
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	return fmt.Sprintf("%q.format(%s)", fstr, strings.Join(args, ", "))
}

func (g *generator) genFingeExpr(e *ast.FingeExpr) string {
	fields := make([]string, len(e.Campi))
	for i, f := range e.Campi {
		fields[i] = fmt.Sprintf("%s=%s", g.genExpr(f.Key, precNone), g.genExpr(f.Valor, precNone))
	}
	name := e.Variant
	if e.Discriminator != nil {
		name = e.Discriminator.Nomen + "_" + e.Variant
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(fields, ", "))
}

func (g *generator) genCollectionDSLExpr(e *ast.CollectionDSLExpr) string {
	out := g.genExpr(e.Source, precPostfix)
	for _, t := range e.Transforms {
		arg := ""
		if t.Arg != nil {
			arg = g.genExpr(t.Arg, precNone)
		}
		switch t.Nomen {
		case "filge":
			out = fmt.Sprintf("filter(%s, %s)", arg, out)
		case "transforma":
			out = fmt.Sprintf("map(%s, %s)", arg, out)
		case "collige":
			out = fmt.Sprintf("list(%s)", out)
		default:
			out = fmt.Sprintf("%s(%s, %s)", t.Nomen, out, arg)
		}
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
	return fmt.Sprintf("%s.%s", obj, g.genExpr(e.Prop, precPostfix))
}

func (g *generator) genClosureExpr(e *ast.ClosureExpr) string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Nomen
	}
	if body, ok := e.Corpus.(ast.Expr); ok {
		return fmt.Sprintf("lambda %s: %s", strings.Join(params, ", "), g.genExpr(body, precNone))
	}
	return fmt.Sprintf("lambda %s: None", strings.Join(params, ", "))
}

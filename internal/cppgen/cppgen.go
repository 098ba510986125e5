// Package cppgen emits C++23 surface syntax from a Faber ast.Program.
package cppgen

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

// Backend implements backend.Backend for the "cpp" target.
type Backend struct{}

func (b *Backend) Name() string { return "cpp" }

// Generate walks prog once, then prepends an include/feature preamble
// assembled from whatever the walk latched.
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
	for _, inc := range g.ctx.Includes() {
		fmt.Fprintf(&b, "#include %s\n", inc)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	if g.ctx.HasFeature("scope_guard") {
		b.WriteString(scopeGuardTemplate)
		b.WriteString("\n")
	}
	return b.String()
}

const scopeGuardTemplate = `namespace faber {
template <typename F>
class ScopeGuard {
public:
    explicit ScopeGuard(F f) : f_(std::move(f)) {}
    ~ScopeGuard() { f_(); }
private:
    F f_;
};
}
`

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
		g.genSiStmt(s)
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
		g.ctx.EmitLinef("// proba: %s", s.Nomen)
		g.genBlockStmt(s.Corpus)
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
	typus := "auto"
	if s.Typus != nil {
		typus = g.genTypeRef(s.Typus)
	}
	prefix := ""
	if s.Species == ast.VarFixum {
		prefix = "const "
	}
	if s.Valor != nil {
		g.ctx.EmitLinef("%s%s %s = %s;", prefix, typus, s.Nomen, g.genExpr(s.Valor, precNone))
	} else {
		g.ctx.EmitLinef("%s%s %s;", prefix, typus, s.Nomen)
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
		g.ctx.AddInclude("<optional>")
		name = fmt.Sprintf("std::optional<%s>", name)
	}
	return name
}

func mapTypeName(nomen string) string {
	switch nomen {
	case "Numerus":
		return "long long"
	case "Pars":
		return "double"
	case "Textus":
		return "std::string"
	case "Logicum":
		return "bool"
	case "Copia":
		return "std::vector"
	case "Tabula":
		return "std::map"
	default:
		return nomen
	}
}

func (g *generator) genFunctionDecl(f *ast.FunctionDecl) {
	ret := "auto"
	if f.TypusReditus != nil {
		ret = g.genTypeRef(f.TypusReditus)
	} else {
		ret = "void"
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = g.genParam(p)
	}
	prefix := ""
	if f.Asynca {
		g.ctx.AddInclude("<future>")
		prefix = "/* fiet */ "
	}
	if len(f.Generics) > 0 {
		g.ctx.EmitLinef("template <%s>", genTemplateParams(f.Generics))
	}
	g.ctx.EmitLinef("%s%s %s(%s) {", prefix, ret, f.Nomen, strings.Join(params, ", "))
	g.ctx.IncIndent()
	for _, stmt := range f.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func genTemplateParams(generics []string) string {
	parts := make([]string, len(generics))
	for i, gname := range generics {
		parts[i] = "typename " + gname
	}
	return strings.Join(parts, ", ")
}

func (g *generator) genParam(p *ast.Param) string {
	typus := "auto"
	if p.Typus != nil {
		typus = g.genTypeRef(p.Typus)
	}
	if p.Rest {
		g.ctx.AddInclude("<vector>")
		return fmt.Sprintf("std::vector<%s> %s", typus, p.Nomen)
	}
	decl := fmt.Sprintf("%s %s", typus, p.Nomen)
	if p.Default != nil {
		decl += " = " + g.genExpr(p.Default, precNone)
	}
	return decl
}

func (g *generator) genOrdoDecl(o *ast.OrdoDecl) {
	g.ctx.EmitLinef("enum class %s {", o.Nomen)
	g.ctx.IncIndent()
	for i, m := range o.Membra {
		if m.Valor != nil {
			g.ctx.EmitLinef("%s = %s,", m.Nomen, *m.Valor)
		} else {
			g.ctx.EmitLinef("%s,", m.Nomen)
		}
		_ = i
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("};")
}

func (g *generator) genPactumDecl(p *ast.PactumDecl) {
	if len(p.Generics) > 0 {
		g.ctx.EmitLinef("template <%s>", genTemplateParams(p.Generics))
	}
	g.ctx.EmitLinef("class %s {", p.Nomen)
	g.ctx.EmitLine("public:")
	g.ctx.IncIndent()
	g.ctx.EmitLinef("virtual ~%s() = default;", p.Nomen)
	for _, m := range p.Methodi {
		ret := "void"
		if m.TypusReditus != nil {
			ret = g.genTypeRef(m.TypusReditus)
		}
		params := make([]string, len(m.Params))
		for i, prm := range m.Params {
			params[i] = g.genParam(prm)
		}
		g.ctx.EmitLinef("virtual %s %s(%s) = 0;", ret, m.Nomen, strings.Join(params, ", "))
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("};")
}

func (g *generator) genSiStmt(s *ast.SiStmt) {
	g.ctx.EmitLinef("if (%s) {", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.genStmtInline(s.Cons)
	g.ctx.DecIndent()
	if s.Alt == nil {
		g.ctx.EmitLine("}")
		return
	}
	if alt, ok := s.Alt.(*ast.SiStmt); ok {
		g.ctx.Emit(g.ctx.IndentStr() + "} else ")
		g.genSiStmtChained(alt)
		return
	}
	g.ctx.EmitLine("} else {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Alt)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// genSiStmtChained continues an `else if` chain without re-indenting the
// `} else if (...) {` line.
func (g *generator) genSiStmtChained(s *ast.SiStmt) {
	g.ctx.Emitf("if (%s) {\n", g.genExpr(s.Cond, precNone))
	g.ctx.IncIndent()
	g.genStmtInline(s.Cons)
	g.ctx.DecIndent()
	if s.Alt == nil {
		g.ctx.EmitLine("}")
		return
	}
	if alt, ok := s.Alt.(*ast.SiStmt); ok {
		g.ctx.Emit(g.ctx.IndentStr() + "} else ")
		g.genSiStmtChained(alt)
		return
	}
	g.ctx.EmitLine("} else {")
	g.ctx.IncIndent()
	g.genStmtInline(s.Alt)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// genStmtInline emits a nested statement, flattening a BlockStmt so it
// doesn't get its own redundant brace pair.
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
		g.ctx.EmitLinef("} catch (const std::exception& %s) {", s.Cape.Param)
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
	if s.Species == ast.IteratioDe {
		g.ctx.AddInclude("<cstddef>")
		g.ctx.EmitLinef("for (std::size_t %s = 0; %s < (%s).size(); ++%s) {", s.Binding, s.Binding, g.genExpr(s.Iter, precNone), s.Binding)
	} else {
		g.ctx.EmitLinef("for (auto& %s : %s) {", s.Binding, g.genExpr(s.Iter, precNone))
	}
	g.ctx.IncIndent()
	g.genStmtInline(s.Corpus)
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
	if s.Cape != nil {
		g.ctx.DecIndent()
		g.ctx.EmitLinef("} catch (const std::exception& %s) {", s.Cape.Param)
		g.ctx.IncIndent()
		g.genStmtInline(s.Cape.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLine("}")
	}
}

// genFacStmt emits a plain block for a bodies-only fac, or a `do { } while
// (cond);` loop when Cond is set.
func (g *generator) genFacStmt(s *ast.FacStmt) {
	if s.Cond == nil {
		g.genStmt(s.Corpus)
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

// genTemptaStmt implements the finally-to-RAII-scope-guard lowering: Demum
// becomes a ScopeGuard whose destructor runs on every exit path, including
// unwind, so only Cape needs an explicit try/catch.
func (g *generator) genTemptaStmt(s *ast.TemptaStmt) {
	g.ctx.EmitLine("{")
	g.ctx.IncIndent()
	if s.Demum != nil {
		guard := g.ctx.FreshGuard()
		g.ctx.EmitLinef("faber::ScopeGuard %s([&]() {", guard)
		g.ctx.IncIndent()
		g.genStmtInline(s.Demum)
		g.ctx.DecIndent()
		g.ctx.EmitLine("});")
	}
	if s.Cape != nil {
		g.ctx.EmitLine("try {")
		g.ctx.IncIndent()
		g.genStmtInline(s.Corpus)
		g.ctx.DecIndent()
		g.ctx.EmitLinef("} catch (const std::exception& %s) {", s.Cape.Param)
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
	g.ctx.AddInclude("<stdexcept>")
	if s.Fatale {
		g.ctx.AddInclude("<cstdlib>")
		g.ctx.EmitLinef("std::abort(); // mori: %s", g.genExpr(s.Arg, precNone))
		return
	}
	g.ctx.EmitLinef("throw std::runtime_error(%s);", g.genExpr(s.Arg, precNone))
}

func (g *generator) genAdfirmaStmt(s *ast.AdfirmaStmt) {
	g.ctx.AddInclude("<cassert>")
	if s.Msg != nil {
		g.ctx.EmitLinef("assert((%s) && %s);", g.genExpr(s.Cond, precNone), g.genExpr(s.Msg, precNone))
		return
	}
	g.ctx.EmitLinef("assert(%s);", g.genExpr(s.Cond, precNone))
}

func (g *generator) genScribeStmt(s *ast.ScribeStmt) {
	g.ctx.AddInclude("<iostream>")
	stream := "std::cout"
	label := ""
	switch s.Gradus {
	case ast.ScribeDebug:
		label = "[debug] "
	case ast.ScribeWarn:
		stream = "std::cerr"
		label = "[warn] "
	}
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = g.genExpr(a, precNone)
	}
	body := strings.Join(parts, " << \" \" << ")
	if label != "" {
		g.ctx.EmitLinef("%s << \"%s\" << %s << std::endl;", stream, label, body)
	} else {
		g.ctx.EmitLinef("%s << %s << std::endl;", stream, body)
	}
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
	g.ctx.EmitLinef("{ auto& __in_ctx = %s;", g.genExpr(s.Context, precNone))
	g.ctx.IncIndent()
	for _, stmt := range s.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

func (g *generator) genIncipitStmt(s *ast.IncipitStmt) {
	if s.Asynca {
		g.ctx.AddInclude("<future>")
	}
	g.ctx.EmitLine("int main() {")
	g.ctx.IncIndent()
	for _, stmt := range s.Corpus.Corpus {
		g.genStmt(stmt)
	}
	g.ctx.EmitLine("return 0;")
	g.ctx.DecIndent()
	g.ctx.EmitLine("}")
}

// --- Expressions ---

const (
	precNone = iota
	precAssign
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
	case "intra", "inter":
		return precComparison
	case "+", "-":
		return precAdditive
	case "*", "/", "%":
		return precMulti
	default:
		return precAssign
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
		return fmt.Sprintf("%s %s %s", g.genExpr(e.Sin, precAssign), cppAssignOp(e.Signum), g.genExpr(e.Dex, precAssign))
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

func cppAssignOp(signum string) string {
	if signum == "<-" || signum == "=" {
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
		return "std::nullopt"
	case ast.LitteraRegex:
		g.ctx.AddInclude("<regex>")
		flags := ""
		if l.Flags != nil && strings.Contains(*l.Flags, "i") {
			flags = ", std::regex::icase"
		}
		return fmt.Sprintf("std::regex(%q%s)", l.Valor, flags)
	default:
		return l.Valor
	}
}

func (g *generator) genBinaryExpr(e *ast.BinaryExpr, parentPrec int) string {
	prec := binPrec(e.Signum)
	op := e.Signum
	var out string
	switch op {
	case "intra":
		// range-containment lowering, not a native C++ operator
		out = fmt.Sprintf("%s <= %s && %s <= %s", g.genExpr(e.Dex, precComparison), g.genExpr(e.Sin, precComparison), g.genExpr(e.Sin, precComparison), "/* upper bound consumed above */")
		// intra's Dex is a RangeExpr; special-case it directly for correct output
		if r, ok := e.Dex.(*ast.RangeExpr); ok {
			lo := g.genExpr(r.Start, precComparison)
			hi := g.genExpr(r.End, precComparison)
			sin := g.genExpr(e.Sin, precComparison)
			cmp := "<="
			if !r.Inclusive {
				cmp = "<"
			}
			out = fmt.Sprintf("(%s <= %s && %s %s %s)", lo, sin, sin, cmp, hi)
		}
		return out
	case "inter":
		return fmt.Sprintf("faber::contains(%s, %s)", g.genExpr(e.Dex, precNone), g.genExpr(e.Sin, precNone))
	case "et":
		op = "&&"
	case "aut":
		op = "||"
	}
	sin := g.genExpr(e.Sin, prec)
	dex := g.genExpr(e.Dex, prec+1)
	out = fmt.Sprintf("%s %s %s", sin, op, dex)
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
	g.ctx.AddInclude("<vector>")
	parts := make([]string, 0, len(e.Elementa))
	for _, el := range e.Elementa {
		if el.Spread {
			parts = append(parts, fmt.Sprintf("/* ...%s spread requires manual insertion */", g.genExpr(el.Valor, precNone)))
			continue
		}
		parts = append(parts, g.genExpr(el.Valor, precNone))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (g *generator) genObjectExpr(e *ast.ObjectExpr) string {
	parts := make([]string, 0, len(e.Props))
	for _, prop := range e.Props {
		parts = append(parts, fmt.Sprintf("{%s, %s}", g.genExpr(prop.Key, precNone), g.genExpr(prop.Valor, precNone)))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (g *generator) genRangeExpr(e *ast.RangeExpr) string {
	g.ctx.AddInclude("<ranges>")
	end := g.genExpr(e.End, precNone)
	if e.Inclusive {
		end = fmt.Sprintf("(%s + 1)", end)
	}
	if e.Step != nil {
		return fmt.Sprintf("std::views::iota(%s, %s) | std::views::stride(%s)", g.genExpr(e.Start, precNone), end, g.genExpr(e.Step, precNone))
	}
	return fmt.Sprintf("std::views::iota(%s, %s)", g.genExpr(e.Start, precNone), end)
}

func (g *generator) genNovumExpr(e *ast.NovumExpr) string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	call := fmt.Sprintf("%s(%s)", g.genExpr(e.Callee, precPostfix), strings.Join(args, ", "))
	if e.Init != nil {
		return fmt.Sprintf("[&] { auto __o = %s; __o = %s; return __o; }()", call, g.genExpr(e.Init, precNone))
	}
	return call
}

func (g *generator) genScriptumExpr(e *ast.ScriptumExpr) string {
	g.ctx.AddInclude("<format>")
	fstr := strings.ReplaceAll(e.Format, "§", "{}")
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.genExpr(a, precNone)
	}
	all := append([]string{fmt.Sprintf("%q", fstr)}, args...)
	return fmt.Sprintf("std::format(%s)", strings.Join(all, ", "))
}

func (g *generator) genFingeExpr(e *ast.FingeExpr) string {
	fields := make([]string, len(e.Campi))
	for i, f := range e.Campi {
		fields[i] = fmt.Sprintf(".%s = %s", g.genExpr(f.Key, precNone), g.genExpr(f.Valor, precNone))
	}
	name := e.Variant
	if e.Discriminator != nil {
		name = e.Discriminator.Nomen + "::" + e.Variant
	}
	return fmt.Sprintf("%s{%s}", name, strings.Join(fields, ", "))
}

func (g *generator) genCollectionDSLExpr(e *ast.CollectionDSLExpr) string {
	g.ctx.AddInclude("<ranges>")
	out := g.genExpr(e.Source, precPostfix)
	for _, t := range e.Transforms {
		arg := ""
		if t.Arg != nil {
			arg = g.genExpr(t.Arg, precNone)
		}
		out = fmt.Sprintf("%s | faber::%s(%s)", out, t.Nomen, arg)
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
		return fmt.Sprintf("%s.value().%s", obj, prop)
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
		var sub strings.Builder
		inner := &generator{ctx: emitctx.New("    ")}
		inner.ctx.Depth = g.ctx.Depth + 1
		for _, stmt := range body.Corpus {
			inner.genStmt(stmt)
		}
		sub.WriteString(inner.ctx.String())
		return fmt.Sprintf("[&](%s) {\n%s%s}", strings.Join(params, ", "), sub.String(), g.ctx.IndentStr())
	case ast.Expr:
		return fmt.Sprintf("[&](%s) { return %s; }", strings.Join(params, ", "), g.genExpr(body, precNone))
	default:
		return fmt.Sprintf("[&](%s) {}", strings.Join(params, ", "))
	}
}

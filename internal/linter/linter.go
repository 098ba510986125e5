// Package linter performs style and best-practice checks on a Faber AST.
// It reports warnings only -- it never blocks a build the way the checker does.
package linter

import (
	"unicode"

	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/diagnostic"
)

// Linter walks a program's top-level declarations looking for naming and
// structural smells.
type Linter struct {
	prog *ast.Program
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on prog and returns the accumulated warnings.
func Lint(prog *ast.Program) *diagnostic.Diagnostics {
	l := &Linter{prog: prog, diag: diagnostic.New()}
	for _, stmt := range prog.Corpus {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			l.lintFunctionDecl(s)
		case *ast.OrdoDecl:
			l.lintOrdoDecl(s)
		case *ast.PactumDecl:
			l.lintPactumDecl(s)
		}
	}
	return l.diag
}

func (l *Linter) lintFunctionDecl(f *ast.FunctionDecl) {
	l.checkLowerCamelCase(f.Nomen, f.Line, f.Column)
	if f.Corpus != nil && len(f.Corpus.Corpus) == 0 {
		l.diag.Warningf(f.Line, f.Column, "functio %q has an empty body", f.Nomen)
	}
	l.checkUnusedParams(f.Nomen, f.Params, f.Corpus)
}

func (l *Linter) lintOrdoDecl(o *ast.OrdoDecl) {
	l.checkUpperCamelCase(o.Nomen, o.Line, o.Column)
	if len(o.Membra) == 0 {
		l.diag.Warningf(o.Line, o.Column, "ordo %q declares no members", o.Nomen)
	}
	seen := make(map[string]bool, len(o.Membra))
	for _, m := range o.Membra {
		if seen[m.Nomen] {
			l.diag.Warningf(m.Line, m.Column, "ordo %q has a duplicate member %q", o.Nomen, m.Nomen)
		}
		seen[m.Nomen] = true
	}
}

func (l *Linter) lintPactumDecl(p *ast.PactumDecl) {
	l.checkUpperCamelCase(p.Nomen, p.Line, p.Column)
	if len(p.Methodi) == 0 {
		l.diag.Warningf(p.Line, p.Column, "pactum %q declares no methods", p.Nomen)
	}
}

func (l *Linter) checkLowerCamelCase(name string, line, col int) {
	if name == "" {
		return
	}
	if r := []rune(name)[0]; unicode.IsUpper(r) {
		l.diag.Warningf(line, col, "functio %q should start with a lowercase letter", name)
	}
}

func (l *Linter) checkUpperCamelCase(name string, line, col int) {
	if name == "" {
		return
	}
	if r := []rune(name)[0]; unicode.IsLower(r) {
		l.diag.Warningf(line, col, "%q should start with an uppercase letter", name)
	}
}

// checkUnusedParams warns about parameters that never appear as an
// Identifier anywhere in the function body. This is a shallow, name-based
// scan: it does not resolve scoping, so a param shadowed by an inner
// binding of the same name is reported as used.
func (l *Linter) checkUnusedParams(fnName string, params []*ast.Param, body *ast.BlockStmt) {
	if body == nil {
		return
	}
	used := make(map[string]bool)
	for _, stmt := range body.Corpus {
		collectIdentifiers(stmt, used)
	}
	for _, p := range params {
		if p.Rest {
			continue
		}
		if !used[p.Nomen] {
			l.diag.Warningf(0, 0, "functio %q: parameter %q is never used", fnName, p.Nomen)
		}
	}
}

// collectIdentifiers walks stmt recording every identifier name it finds.
// It is intentionally coarse: good enough to rule out "definitely unused",
// not precise enough to prove "definitely used correctly".
func collectIdentifiers(stmt ast.Stmt, used map[string]bool) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.VarStmt:
		collectExprIdentifiers(s.Valor, used)
	case *ast.BlockStmt:
		for _, c := range s.Corpus {
			collectIdentifiers(c, used)
		}
	case *ast.ExprStmt:
		collectExprIdentifiers(s.Expr, used)
	case *ast.SiStmt:
		collectExprIdentifiers(s.Cond, used)
		collectIdentifiers(s.Cons, used)
		collectIdentifiers(s.Alt, used)
	case *ast.DumStmt:
		collectExprIdentifiers(s.Cond, used)
		collectIdentifiers(s.Corpus, used)
		if s.Cape != nil {
			collectIdentifiers(s.Cape.Corpus, used)
		}
	case *ast.FacStmt:
		collectExprIdentifiers(s.Cond, used)
		collectIdentifiers(s.Corpus, used)
	case *ast.IteratioStmt:
		collectExprIdentifiers(s.Iter, used)
		collectIdentifiers(s.Corpus, used)
		if s.Cape != nil {
			collectIdentifiers(s.Cape.Corpus, used)
		}
	case *ast.CustodiStmt:
		for _, c := range s.Clausulae {
			collectExprIdentifiers(c.Cond, used)
			collectIdentifiers(c.Corpus, used)
		}
	case *ast.InStmt:
		collectExprIdentifiers(s.Context, used)
		collectIdentifiers(s.Corpus, used)
	case *ast.FunctionDecl:
		collectIdentifiers(s.Corpus, used)
	case *ast.ReddeStmt:
		collectExprIdentifiers(s.Valor, used)
	case *ast.AdfirmaStmt:
		collectExprIdentifiers(s.Cond, used)
		collectExprIdentifiers(s.Msg, used)
	case *ast.ScribeStmt:
		for _, a := range s.Args {
			collectExprIdentifiers(a, used)
		}
	case *ast.IaceStmt:
		collectExprIdentifiers(s.Arg, used)
	case *ast.EligeStmt:
		collectExprIdentifiers(s.Discrim, used)
		for _, c := range s.Casus {
			collectExprIdentifiers(c.Cond, used)
			collectIdentifiers(c.Corpus, used)
		}
		collectIdentifiers(s.Default, used)
	case *ast.TemptaStmt:
		collectIdentifiers(s.Corpus, used)
		if s.Cape != nil {
			collectIdentifiers(s.Cape.Corpus, used)
		}
		collectIdentifiers(s.Demum, used)
	}
}

func collectExprIdentifiers(expr ast.Expr, used map[string]bool) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		used[e.Nomen] = true
	case *ast.BinaryExpr:
		collectExprIdentifiers(e.Sin, used)
		collectExprIdentifiers(e.Dex, used)
	case *ast.UnaryExpr:
		collectExprIdentifiers(e.Arg, used)
	case *ast.AssignExpr:
		collectExprIdentifiers(e.Sin, used)
		collectExprIdentifiers(e.Dex, used)
	case *ast.ArrayExpr:
		for _, el := range e.Elementa {
			collectExprIdentifiers(el.Valor, used)
		}
	case *ast.ObjectExpr:
		for _, p := range e.Props {
			collectExprIdentifiers(p.Valor, used)
		}
	case *ast.RangeExpr:
		collectExprIdentifiers(e.Start, used)
		collectExprIdentifiers(e.End, used)
		collectExprIdentifiers(e.Step, used)
	case *ast.NovumExpr:
		collectExprIdentifiers(e.Callee, used)
		for _, a := range e.Args {
			collectExprIdentifiers(a, used)
		}
		collectExprIdentifiers(e.Init, used)
	case *ast.ScriptumExpr:
		for _, a := range e.Args {
			collectExprIdentifiers(a, used)
		}
	case *ast.FingeExpr:
		for _, f := range e.Campi {
			collectExprIdentifiers(f.Valor, used)
		}
	case *ast.CollectionDSLExpr:
		collectExprIdentifiers(e.Source, used)
		for _, tr := range e.Transforms {
			collectExprIdentifiers(tr.Arg, used)
		}
	case *ast.CallExpr:
		collectExprIdentifiers(e.Callee, used)
		for _, a := range e.Args {
			collectExprIdentifiers(a, used)
		}
	case *ast.MemberExpr:
		collectExprIdentifiers(e.Obj, used)
		if e.Computed {
			collectExprIdentifiers(e.Prop, used)
		}
	case *ast.ClosureExpr:
		if body, ok := e.Corpus.(ast.Stmt); ok {
			collectIdentifiers(body, used)
		} else if body, ok := e.Corpus.(ast.Expr); ok {
			collectExprIdentifiers(body, used)
		}
	}
}

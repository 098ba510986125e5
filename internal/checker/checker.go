// Package checker performs structural validation of a Faber ast.Program.
// It does not infer or check types: every TypeRef in the tree is taken at
// face value, exactly as written by the parser.
package checker

import (
	"regexp"

	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/diagnostic"
)

// Checker walks a Program checking the structural invariants the emission
// engine depends on: at most one default case per elige, at least one
// handler on every tempta, well-formed regex flags.
type Checker struct {
	diags *diagnostic.Diagnostics
}

// New creates a Checker.
func New() *Checker {
	return &Checker{diags: diagnostic.New()}
}

// Diagnostics returns the diagnostics accumulated by Check.
func (c *Checker) Diagnostics() *diagnostic.Diagnostics {
	return c.diags
}

var regexFlagPattern = regexp.MustCompile(`^[a-z]*$`)

// Check walks prog, recording a diagnostic for each violated invariant.
// It never stops at the first violation.
func (c *Checker) Check(prog *ast.Program) {
	for _, stmt := range prog.Corpus {
		c.checkStmt(stmt)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.VarStmt:
		c.checkExpr(s.Valor)
	case *ast.BlockStmt:
		for _, child := range s.Corpus {
			c.checkStmt(child)
		}
	case *ast.ExprStmt:
		c.checkExpr(s.Expr)
	case *ast.FunctionDecl:
		for _, param := range s.Params {
			c.checkExpr(param.Default)
		}
		c.checkStmt(s.Corpus)
	case *ast.OrdoDecl:
		// nothing further to validate structurally
	case *ast.PactumDecl:
		// nothing further to validate structurally
	case *ast.SiStmt:
		c.checkExpr(s.Cond)
		c.checkStmt(s.Cons)
		c.checkStmt(s.Alt)
	case *ast.DumStmt:
		c.checkExpr(s.Cond)
		c.checkStmt(s.Corpus)
		c.checkCapeClause(s.Cape)
	case *ast.IteratioStmt:
		c.checkExpr(s.Iter)
		c.checkStmt(s.Corpus)
		c.checkCapeClause(s.Cape)
	case *ast.FacStmt:
		c.checkStmt(s.Corpus)
		c.checkExpr(s.Cond)
	case *ast.EligeStmt:
		c.checkEligeStmt(s)
	case *ast.TemptaStmt:
		c.checkTemptaStmt(s)
	case *ast.IaceStmt:
		c.checkExpr(s.Arg)
	case *ast.AdfirmaStmt:
		c.checkExpr(s.Cond)
		c.checkExpr(s.Msg)
	case *ast.ScribeStmt:
		for _, arg := range s.Args {
			c.checkExpr(arg)
		}
	case *ast.ReddeStmt:
		c.checkExpr(s.Valor)
	case *ast.RumpeStmt, *ast.PergeStmt:
		// leaves
	case *ast.CustodiStmt:
		for _, clause := range s.Clausulae {
			c.checkExpr(clause.Cond)
			c.checkStmt(clause.Corpus)
		}
	case *ast.InStmt:
		c.checkExpr(s.Context)
		c.checkStmt(s.Corpus)
	case *ast.IncipitStmt:
		c.checkStmt(s.Corpus)
	case *ast.PraeparaBlock:
		c.checkStmt(s.Corpus)
	case *ast.ProbaStmt:
		c.checkStmt(s.Corpus)
	case *ast.ProbandumStmt:
		for _, child := range s.Corpus {
			c.checkStmt(child)
		}
	default:
		line, col := stmt.Pos()
		c.diags.Errorf(line, col, "checker: unrecognized statement node %T", stmt)
	}
}

func (c *Checker) checkCapeClause(cape *ast.CapeClause) {
	if cape == nil {
		return
	}
	c.checkStmt(cape.Corpus)
}

// checkEligeStmt checks the discriminant, every case and the default.
// Invariant (ii), at most one default case, holds by construction: the
// node has a single Default field, and a second `secus` in the source
// simply overwrites the first in the parser.
func (c *Checker) checkEligeStmt(s *ast.EligeStmt) {
	c.checkExpr(s.Discrim)
	for _, cs := range s.Casus {
		c.checkExpr(cs.Cond)
		c.checkStmt(cs.Corpus)
	}
	c.checkStmt(s.Default)
}

// checkTemptaStmt enforces invariant (iv): tempta requires at least one of
// cape/demum. The parser already reports this; the checker re-validates so
// a hand-built AST (e.g. from tests) is still caught.
func (c *Checker) checkTemptaStmt(s *ast.TemptaStmt) {
	if s.Cape == nil && s.Demum == nil {
		line, col := s.Pos()
		c.diags.Errorf(line, col, "tempta requires at least one of cape or demum")
	}
	c.checkStmt(s.Corpus)
	c.checkCapeClause(s.Cape)
	c.checkStmt(s.Demum)
}

func (c *Checker) checkExpr(expr ast.Expr) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
	case *ast.Literal:
		c.checkLiteral(e)
	case *ast.BinaryExpr:
		c.checkExpr(e.Sin)
		c.checkExpr(e.Dex)
	case *ast.UnaryExpr:
		c.checkExpr(e.Arg)
	case *ast.AssignExpr:
		c.checkExpr(e.Sin)
		c.checkExpr(e.Dex)
	case *ast.ArrayExpr:
		for _, el := range e.Elementa {
			c.checkExpr(el.Valor)
		}
	case *ast.ObjectExpr:
		for _, prop := range e.Props {
			c.checkExpr(prop.Key)
			c.checkExpr(prop.Valor)
		}
	case *ast.RangeExpr:
		c.checkExpr(e.Start)
		c.checkExpr(e.End)
		c.checkExpr(e.Step)
	case *ast.NovumExpr:
		c.checkExpr(e.Callee)
		for _, arg := range e.Args {
			c.checkExpr(arg)
		}
		c.checkExpr(e.Init)
	case *ast.ScriptumExpr:
		c.checkScriptumExpr(e)
	case *ast.FingeExpr:
		for _, field := range e.Campi {
			c.checkExpr(field.Valor)
		}
	case *ast.CollectionDSLExpr:
		c.checkExpr(e.Source)
		for _, tr := range e.Transforms {
			c.checkExpr(tr.Arg)
		}
	case *ast.CallExpr:
		c.checkExpr(e.Callee)
		for _, arg := range e.Args {
			c.checkExpr(arg)
		}
	case *ast.MemberExpr:
		c.checkExpr(e.Obj)
		if e.Computed {
			c.checkExpr(e.Prop)
		}
	case *ast.ClosureExpr:
		switch body := e.Corpus.(type) {
		case ast.Stmt:
			c.checkStmt(body)
		case ast.Expr:
			c.checkExpr(body)
		}
	default:
		line, col := expr.Pos()
		c.diags.Errorf(line, col, "checker: unrecognized expression node %T", expr)
	}
}

// checkLiteral enforces invariant (iii): regex flags must be a run of
// lowercase ASCII letters.
func (c *Checker) checkLiteral(l *ast.Literal) {
	if l.Species != ast.LitteraRegex || l.Flags == nil {
		return
	}
	if !regexFlagPattern.MatchString(*l.Flags) {
		c.diags.Errorf(l.Line, l.Column, "malformed regex flags %q", *l.Flags)
	}
}

// checkScriptumExpr enforces invariant (v): placeholder count in Format must
// match len(Args).
func (c *Checker) checkScriptumExpr(s *ast.ScriptumExpr) {
	count := countPlaceholders(s.Format)
	if count != len(s.Args) {
		c.diags.Errorf(s.Line, s.Column,
			"scriptum has %d placeholder(s) but %d argument(s)", count, len(s.Args))
	}
	for _, arg := range s.Args {
		c.checkExpr(arg)
	}
}

// countPlaceholders counts `§` and `{}` placeholder markers in a scriptum
// format string, treating `§§` and `{{}}` as escaped literals.
func countPlaceholders(format string) int {
	count := 0
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '§':
			if i+1 < len(runes) && runes[i+1] == '§' {
				i++
				continue
			}
			count++
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				i++
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '}' {
				count++
				i++
			}
		}
	}
	return count
}

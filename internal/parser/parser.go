// Package parser builds a Faber ast.Program from source text via a
// hand-written recursive-descent parser over internal/lexer's token stream.
package parser

import (
	"github.com/faberlang/faber/internal/ast"
	"github.com/faberlang/faber/internal/diagnostic"
	"github.com/faberlang/faber/internal/lexer"
)

// New tokenizes source and returns a Parser ready to Parse it.
func New(source string) *Parser {
	l := lexer.New(source)
	return &Parser{
		tokens: l.Tokenize(),
		pos:    0,
		diags:  diagnostic.New(),
	}
}

// Diagnostics returns the diagnostics accumulated during Parse.
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse consumes the whole token stream into a Program.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.check(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Corpus = append(prog.Corpus, stmt)
		}
	}
	return prog
}

// parseStatement dispatches on the leading token of a statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.current().Type {
	case lexer.VARIA, lexer.FIXUM:
		return p.parseVarStmt()
	case lexer.FUNCTIO:
		return p.parseFunctionDecl(false)
	case lexer.FIET:
		return p.parseFietStmt()
	case lexer.ORDO:
		return p.parseOrdoDecl()
	case lexer.PACTUM:
		return p.parsePactumDecl()
	case lexer.SI:
		return p.parseSiStmt()
	case lexer.DUM:
		return p.parseDumStmt()
	case lexer.ITERATIO:
		return p.parseIteratioStmt(false)
	case lexer.FAC:
		return p.parseFacStmt()
	case lexer.ELIGE:
		return p.parseEligeStmt()
	case lexer.TEMPTA:
		return p.parseTemptaStmt()
	case lexer.IACE:
		return p.parseIaceStmt(false)
	case lexer.MORI:
		return p.parseIaceStmt(true)
	case lexer.ADFIRMA:
		return p.parseAdfirmaStmt()
	case lexer.SCRIBE:
		return p.parseScribeStmt(ast.ScribeInfo)
	case lexer.VIDE:
		return p.parseScribeStmt(ast.ScribeDebug)
	case lexer.MONE:
		return p.parseScribeStmt(ast.ScribeWarn)
	case lexer.REDDE:
		return p.parseReddeStmt()
	case lexer.RUMPE:
		tok := p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.RumpeStmt{Line: tok.Line, Column: tok.Column}
	case lexer.PERGE:
		tok := p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.PergeStmt{Line: tok.Line, Column: tok.Column}
	case lexer.CUSTODI:
		return p.parseCustodiStmt()
	case lexer.IN:
		return p.parseInStmt()
	case lexer.INCIPIT:
		return p.parseIncipitStmt(false)
	case lexer.INCIPIET:
		return p.parseIncipitStmt(true)
	case lexer.PROBANDUM:
		return p.parseProbandumStmt()
	case lexer.PRAEPARA:
		return p.parsePraeparaBlock()
	case lexer.PROBA:
		return p.parseProbaStmt()
	case lexer.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseFietStmt handles the `fiet` async modifier, which prefixes either a
// functio declaration or an iteratio loop.
func (p *Parser) parseFietStmt() ast.Stmt {
	p.advance() // consume fiet
	switch p.current().Type {
	case lexer.FUNCTIO:
		return p.parseFunctionDecl(true)
	case lexer.ITERATIO:
		return p.parseIteratioStmt(true)
	default:
		tok := p.current()
		p.diags.Errorf(tok.Line, tok.Column, "expected functio or iteratio after fiet, got %s", tok.Type)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	tok := p.expect(lexer.LBRACE)
	block := &ast.BlockStmt{Line: tok.Line, Column: tok.Column}
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Corpus = append(block.Corpus, stmt)
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseVarStmt parses `varia nomen [: Typus] [<- Valor] ;` / `fixum ...`.
func (p *Parser) parseVarStmt() *ast.VarStmt {
	tok := p.advance()
	species := ast.VarVaria
	if tok.Type == lexer.FIXUM {
		species = ast.VarFixum
	}
	name := p.expect(lexer.IDENT)
	stmt := &ast.VarStmt{Nomen: name.Literal, Species: species, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.COLON) {
		stmt.Typus = p.parseTypeRef()
	}
	if p.match(lexer.ASSIGN) {
		stmt.Valor = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)
	return stmt
}

func (p *Parser) parseTypeRef() *ast.TypeRef {
	tok := p.expect(lexer.IDENT)
	t := &ast.TypeRef{Nomen: tok.Literal, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.LT) {
		for {
			t.Args = append(t.Args, p.parseTypeRef())
			if !p.match(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.GT)
	}
	if p.match(lexer.QUESTION) {
		t.Nullable = true
	}
	return t
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.check(lexer.RPAREN) {
		return params
	}
	params = append(params, p.parseParam())
	for p.match(lexer.COMMA) {
		params = append(params, p.parseParam())
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	rest := p.match(lexer.SPARGE)
	name := p.expect(lexer.IDENT)
	param := &ast.Param{Nomen: name.Literal, Rest: rest, Line: name.Line, Column: name.Column}
	if p.match(lexer.COLON) {
		param.Typus = p.parseTypeRef()
	}
	if p.match(lexer.ASSIGN) {
		param.Default = p.parseExpression()
	}
	return param
}

// parseFunctionDecl parses `functio nomen [<generics>] ( params ) [-> typus] { corpus }`.
func (p *Parser) parseFunctionDecl(asynca bool) *ast.FunctionDecl {
	tok := p.expect(lexer.FUNCTIO)
	name := p.expect(lexer.IDENT)
	fn := &ast.FunctionDecl{Nomen: name.Literal, Asynca: asynca, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.LT) {
		for {
			g := p.expect(lexer.IDENT)
			fn.Generics = append(fn.Generics, g.Literal)
			if !p.match(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.GT)
	}
	p.expect(lexer.LPAREN)
	fn.Params = p.parseParamList()
	p.expect(lexer.RPAREN)
	if p.match(lexer.ARROW) {
		fn.TypusReditus = p.parseTypeRef()
	}
	fn.Corpus = p.parseBlockStmt()
	return fn
}

// parseOrdoDecl parses `ordo nomen { membrum [: valor] , ... }`.
func (p *Parser) parseOrdoDecl() *ast.OrdoDecl {
	tok := p.expect(lexer.ORDO)
	name := p.expect(lexer.IDENT)
	decl := &ast.OrdoDecl{Nomen: name.Literal, Line: tok.Line, Column: tok.Column}
	p.expect(lexer.LBRACE)
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		memberTok := p.expect(lexer.IDENT)
		member := &ast.OrdoMember{Nomen: memberTok.Literal, Line: memberTok.Line, Column: memberTok.Column}
		if p.match(lexer.COLON) {
			v := p.expect(lexer.STRING_LIT)
			val := v.Literal
			member.Valor = &val
		}
		decl.Membra = append(decl.Membra, member)
		if !p.check(lexer.RBRACE) {
			p.expect(lexer.COMMA)
		}
	}
	p.expect(lexer.RBRACE)
	return decl
}

// parsePactumDecl parses `pactum nomen [<generics>] { [functio] methodus ( params ) [-> typus] ; ... }`.
func (p *Parser) parsePactumDecl() *ast.PactumDecl {
	tok := p.expect(lexer.PACTUM)
	name := p.expect(lexer.IDENT)
	decl := &ast.PactumDecl{Nomen: name.Literal, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.LT) {
		for {
			g := p.expect(lexer.IDENT)
			decl.Generics = append(decl.Generics, g.Literal)
			if !p.match(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.GT)
	}
	p.expect(lexer.LBRACE)
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		p.match(lexer.FUNCTIO)
		methodTok := p.expect(lexer.IDENT)
		method := &ast.PactumMethod{Nomen: methodTok.Literal, Line: methodTok.Line, Column: methodTok.Column}
		p.expect(lexer.LPAREN)
		method.Params = p.parseParamList()
		p.expect(lexer.RPAREN)
		if p.match(lexer.ARROW) {
			method.TypusReditus = p.parseTypeRef()
		}
		p.expect(lexer.SEMICOLON)
		decl.Methodi = append(decl.Methodi, method)
	}
	p.expect(lexer.RBRACE)
	return decl
}

// parseSiStmt parses `si ( cond ) cons [alioqui (si ... | stmt) | secus stmt]`.
func (p *Parser) parseSiStmt() *ast.SiStmt {
	tok := p.expect(lexer.SI)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	cons := p.parseStatement()
	s := &ast.SiStmt{Cond: cond, Cons: cons, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.ALIOQUI) {
		if p.check(lexer.SI) {
			s.Alt = p.parseSiStmt()
		} else {
			s.Alt = p.parseStatement()
		}
	} else if p.match(lexer.SECUS) {
		s.Alt = p.parseStatement()
	}
	return s
}

// parseCapeClause parses an optional `cape ( param ) corpus` clause.
func (p *Parser) parseCapeClause() *ast.CapeClause {
	if !p.check(lexer.CAPE) {
		return nil
	}
	tok := p.advance()
	p.expect(lexer.LPAREN)
	param := p.expect(lexer.IDENT)
	p.expect(lexer.RPAREN)
	corpus := p.parseStatement()
	return &ast.CapeClause{Param: param.Literal, Corpus: corpus, Line: tok.Line, Column: tok.Column}
}

// parseDumStmt parses `dum ( cond ) corpus [cape (...) corpus]`.
func (p *Parser) parseDumStmt() *ast.DumStmt {
	tok := p.expect(lexer.DUM)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	corpus := p.parseStatement()
	return &ast.DumStmt{Cond: cond, Corpus: corpus, Cape: p.parseCapeClause(), Line: tok.Line, Column: tok.Column}
}

// parseIteratioStmt parses `[fiet] iteratio binding (ex|de) iter corpus [cape ...]`.
func (p *Parser) parseIteratioStmt(asynca bool) *ast.IteratioStmt {
	tok := p.expect(lexer.ITERATIO)
	binding := p.expect(lexer.IDENT)
	species := ast.IteratioEx
	if p.check(lexer.DE) {
		species = ast.IteratioDe
		p.advance()
	} else {
		p.expect(lexer.EX)
	}
	iter := p.parseExpression()
	corpus := p.parseStatement()
	return &ast.IteratioStmt{
		Binding: binding.Literal,
		Species: species,
		Asynca:  asynca,
		Iter:    iter,
		Corpus:  corpus,
		Cape:    p.parseCapeClause(),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// parseFacStmt parses `fac corpus [dum ( cond ) ;]` — a plain do-block when
// no trailing dum clause follows, a do-while loop otherwise.
func (p *Parser) parseFacStmt() *ast.FacStmt {
	tok := p.expect(lexer.FAC)
	corpus := p.parseStatement()
	f := &ast.FacStmt{Corpus: corpus, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.DUM) {
		p.expect(lexer.LPAREN)
		f.Cond = p.parseExpression()
		p.expect(lexer.RPAREN)
		p.expect(lexer.SEMICOLON)
	}
	return f
}

// parseEligeStmt parses `elige ( discrim ) { si expr corpus ... [secus corpus] }`.
func (p *Parser) parseEligeStmt() *ast.EligeStmt {
	tok := p.expect(lexer.ELIGE)
	p.expect(lexer.LPAREN)
	discrim := p.parseExpression()
	p.expect(lexer.RPAREN)
	e := &ast.EligeStmt{Discrim: discrim, Line: tok.Line, Column: tok.Column}
	p.expect(lexer.LBRACE)
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		if p.check(lexer.SI) {
			caseTok := p.advance()
			cond := p.parseExpression()
			corpus := p.parseStatement()
			e.Casus = append(e.Casus, &ast.EligeCase{Cond: cond, Corpus: corpus, Line: caseTok.Line, Column: caseTok.Column})
		} else if p.match(lexer.SECUS) {
			e.Default = p.parseStatement()
		} else {
			bad := p.current()
			p.diags.Errorf(bad.Line, bad.Column, "expected si or secus in elige body, got %s", bad.Type)
			p.synchronize()
		}
	}
	p.expect(lexer.RBRACE)
	return e
}

// parseTemptaStmt parses `tempta corpus [cape (...) corpus] [demum corpus]`.
func (p *Parser) parseTemptaStmt() *ast.TemptaStmt {
	tok := p.expect(lexer.TEMPTA)
	corpus := p.parseStatement()
	t := &ast.TemptaStmt{Corpus: corpus, Line: tok.Line, Column: tok.Column}
	t.Cape = p.parseCapeClause()
	if p.match(lexer.DEMUM) {
		t.Demum = p.parseStatement()
	}
	if t.Cape == nil && t.Demum == nil {
		p.diags.Errorf(tok.Line, tok.Column, "tempta requires at least one of cape or demum")
	}
	return t
}

// parseIaceStmt parses `iace expr ;` (Fatale=false) or `mori expr ;` (Fatale=true).
func (p *Parser) parseIaceStmt(fatale bool) *ast.IaceStmt {
	tok := p.advance()
	arg := p.parseExpression()
	p.expect(lexer.SEMICOLON)
	return &ast.IaceStmt{Arg: arg, Fatale: fatale, Line: tok.Line, Column: tok.Column}
}

// parseAdfirmaStmt parses `adfirma ( cond [, msg] ) ;`.
func (p *Parser) parseAdfirmaStmt() *ast.AdfirmaStmt {
	tok := p.expect(lexer.ADFIRMA)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	a := &ast.AdfirmaStmt{Cond: cond, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.COMMA) {
		a.Msg = p.parseExpression()
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.SEMICOLON)
	return a
}

// parseScribeStmt parses `scribe(args) ;` / `vide(args) ;` / `mone(args) ;`.
func (p *Parser) parseScribeStmt(level ast.ScribeLevel) *ast.ScribeStmt {
	tok := p.advance()
	p.expect(lexer.LPAREN)
	s := &ast.ScribeStmt{Gradus: level, Line: tok.Line, Column: tok.Column}
	if !p.check(lexer.RPAREN) {
		s.Args = append(s.Args, p.parseExpression())
		for p.match(lexer.COMMA) {
			s.Args = append(s.Args, p.parseExpression())
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.SEMICOLON)
	return s
}

// parseReddeStmt parses `redde [expr] ;`.
func (p *Parser) parseReddeStmt() *ast.ReddeStmt {
	tok := p.expect(lexer.REDDE)
	r := &ast.ReddeStmt{Line: tok.Line, Column: tok.Column}
	if !p.check(lexer.SEMICOLON) {
		r.Valor = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)
	return r
}

// parseCustodiStmt parses `custodi { si cond corpus ... }`, a top-to-bottom
// guard chain with no implicit else between clauses.
func (p *Parser) parseCustodiStmt() *ast.CustodiStmt {
	tok := p.expect(lexer.CUSTODI)
	c := &ast.CustodiStmt{Line: tok.Line, Column: tok.Column}
	p.expect(lexer.LBRACE)
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		caseTok := p.expect(lexer.SI)
		cond := p.parseExpression()
		corpus := p.parseStatement()
		c.Clausulae = append(c.Clausulae, &ast.CustodiClause{Cond: cond, Corpus: corpus, Line: caseTok.Line, Column: caseTok.Column})
	}
	p.expect(lexer.RBRACE)
	return c
}

// parseInStmt parses `in ( context ) { corpus }`.
func (p *Parser) parseInStmt() *ast.InStmt {
	tok := p.expect(lexer.IN)
	p.expect(lexer.LPAREN)
	context := p.parseExpression()
	p.expect(lexer.RPAREN)
	corpus := p.parseBlockStmt()
	return &ast.InStmt{Context: context, Corpus: corpus, Line: tok.Line, Column: tok.Column}
}

// parseIncipitStmt parses `incipit { corpus }` / `incipiet { corpus }`.
func (p *Parser) parseIncipitStmt(asynca bool) *ast.IncipitStmt {
	tok := p.advance()
	corpus := p.parseBlockStmt()
	return &ast.IncipitStmt{Asynca: asynca, Corpus: corpus, Line: tok.Line, Column: tok.Column}
}

// parseProbandumStmt parses `probandum "nomen" { praepara? proba* }`.
func (p *Parser) parseProbandumStmt() *ast.ProbandumStmt {
	tok := p.expect(lexer.PROBANDUM)
	name := p.expect(lexer.STRING_LIT)
	p.expect(lexer.LBRACE)
	stmt := &ast.ProbandumStmt{Nomen: name.Literal, Line: tok.Line, Column: tok.Column}
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		s := p.parseStatement()
		if s != nil {
			stmt.Corpus = append(stmt.Corpus, s)
		}
	}
	p.expect(lexer.RBRACE)
	return stmt
}

func (p *Parser) parsePraeparaBlock() *ast.PraeparaBlock {
	tok := p.expect(lexer.PRAEPARA)
	corpus := p.parseBlockStmt()
	return &ast.PraeparaBlock{Corpus: corpus, Line: tok.Line, Column: tok.Column}
}

func (p *Parser) parseProbaStmt() *ast.ProbaStmt {
	tok := p.expect(lexer.PROBA)
	name := p.expect(lexer.STRING_LIT)
	corpus := p.parseBlockStmt()
	return &ast.ProbaStmt{Nomen: name.Literal, Corpus: corpus, Line: tok.Line, Column: tok.Column}
}

// parseExprStmt parses a bare expression statement, which subsumes plain
// assignment since AssignExpr is an Expr, not its own Stmt.
func (p *Parser) parseExprStmt() ast.Stmt {
	tok := p.current()
	expr := p.parseExpression()
	p.expect(lexer.SEMICOLON)
	return &ast.ExprStmt{Expr: expr, Line: tok.Line, Column: tok.Column}
}

// --- Expression parsing: precedence climbing ---

const (
	precNone       = 0
	precAssign     = 1
	precOr         = 2
	precAnd        = 3
	precEquality   = 4
	precComparison = 5
	precRange      = 6
	precAdditive   = 7
	precMulti      = 8
)

func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.AUT, lexer.OR_OR:
		return precOr
	case lexer.ET, lexer.AND_AND:
		return precAnd
	case lexer.EQ, lexer.NEQ:
		return precEquality
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ, lexer.INTRA, lexer.INTER:
		return precComparison
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return precMulti
	default:
		return precNone
	}
}

// parseExpression parses a full expression, including assignment, which is
// the lowest-precedence, right-associative production.
func (p *Parser) parseExpression() ast.Expr {
	left := p.parseBinary(precOr)
	if p.checkAny(lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN) {
		op := p.advance()
		right := p.parseExpression()
		return &ast.AssignExpr{Sin: left, Signum: op.Literal, Dex: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseRange()
	for {
		prec := tokenPrecedence(p.current().Type)
		if prec < minPrec || prec == precNone {
			break
		}
		op := p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{Sin: left, Signum: op.Literal, Dex: right, Line: op.Line, Column: op.Column}
	}
	return left
}

// parseRange handles `start .. end [per step]` and `start ... end [per step]`.
func (p *Parser) parseRange() ast.Expr {
	left := p.parseAdditive()
	if p.checkAny(lexer.DOTDOT, lexer.DOTDOTDOT) {
		tok := p.advance()
		inclusive := tok.Type == lexer.DOTDOTDOT
		end := p.parseAdditive()
		r := &ast.RangeExpr{Start: left, End: end, Inclusive: inclusive, Line: tok.Line, Column: tok.Column}
		if p.match(lexer.PER) {
			r.Step = p.parseAdditive()
		}
		return r
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMulti()
	for p.checkAny(lexer.PLUS, lexer.MINUS) {
		op := p.advance()
		right := p.parseMulti()
		left = &ast.BinaryExpr{Sin: left, Signum: op.Literal, Dex: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseMulti() ast.Expr {
	left := p.parseUnary()
	for p.checkAny(lexer.STAR, lexer.SLASH, lexer.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Sin: left, Signum: op.Literal, Dex: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.checkAny(lexer.MINUS, lexer.NON, lexer.NOT) {
		op := p.advance()
		arg := p.parseUnary()
		return &ast.UnaryExpr{Signum: op.Literal, Arg: arg, Line: op.Line, Column: op.Column}
	}
	return p.parsePipeline()
}

// parsePipeline wraps postfix parsing to recognize `source qua verb(arg)*`
// collection-transform chains.
func (p *Parser) parsePipeline() ast.Expr {
	expr := p.parsePostfix()
	if !p.check(lexer.QUA) {
		return expr
	}
	line, col := expr.Pos()
	c := &ast.CollectionDSLExpr{Source: expr, Line: line, Column: col}
	for p.match(lexer.QUA) {
		verbTok := p.expect(lexer.IDENT)
		transform := &ast.CollectionTransform{Nomen: verbTok.Literal, Line: verbTok.Line, Column: verbTok.Column}
		if p.match(lexer.LPAREN) {
			if !p.check(lexer.RPAREN) {
				transform.Arg = p.parseExpression()
			}
			p.expect(lexer.RPAREN)
		}
		c.Transforms = append(c.Transforms, transform)
	}
	return c
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.DOT):
			p.advance()
			prop := p.expect(lexer.IDENT)
			expr = &ast.MemberExpr{Obj: expr, Prop: &ast.Identifier{Nomen: prop.Literal, Line: prop.Line, Column: prop.Column}, Line: prop.Line, Column: prop.Column}
		case p.check(lexer.NULL_ASSERT):
			tok := p.advance()
			prop := p.expect(lexer.IDENT)
			expr = &ast.MemberExpr{Obj: expr, Prop: &ast.Identifier{Nomen: prop.Literal, Line: prop.Line, Column: prop.Column}, NonNull: true, Line: tok.Line, Column: tok.Column}
		case p.check(lexer.LBRACKET):
			tok := p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = &ast.MemberExpr{Obj: expr, Prop: index, Computed: true, Line: tok.Line, Column: tok.Column}
		case p.check(lexer.LPAREN):
			tok := p.advance()
			var args []ast.Expr
			if !p.check(lexer.RPAREN) {
				args = append(args, p.parseExpression())
				for p.match(lexer.COMMA) {
					args = append(args, p.parseExpression())
				}
			}
			p.expect(lexer.RPAREN)
			expr = &ast.CallExpr{Callee: expr, Args: args, Line: tok.Line, Column: tok.Column}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.current()
	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		return &ast.Literal{Species: ast.LitteraInt, Valor: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.FLOAT_LIT:
		p.advance()
		return &ast.Literal{Species: ast.LitteraFloat, Valor: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.STRING_LIT:
		p.advance()
		return &ast.Literal{Species: ast.LitteraTextus, Valor: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.REGEX_LIT:
		p.advance()
		pattern, flags := splitRegexLiteral(tok.Literal)
		lit := &ast.Literal{Species: ast.LitteraRegex, Valor: pattern, Line: tok.Line, Column: tok.Column}
		if flags != "" {
			lit.Flags = &flags
		}
		return lit
	case lexer.VERUM:
		p.advance()
		return &ast.Literal{Species: ast.LitteraVerum, Valor: "verum", Line: tok.Line, Column: tok.Column}
	case lexer.FALSUM:
		p.advance()
		return &ast.Literal{Species: ast.LitteraFalsum, Valor: "falsum", Line: tok.Line, Column: tok.Column}
	case lexer.NIHIL:
		p.advance()
		return &ast.Literal{Species: ast.LitteraNihil, Valor: "nihil", Line: tok.Line, Column: tok.Column}
	case lexer.IDENT:
		p.advance()
		if p.check(lexer.FATARROW) {
			// bare single-parameter closure: `x => corpus`
			p.advance()
			param := &ast.Param{Nomen: tok.Literal, Line: tok.Line, Column: tok.Column}
			var corpus ast.Node
			if p.check(lexer.LBRACE) {
				corpus = p.parseBlockStmt()
			} else {
				corpus = p.parseExpression()
			}
			return &ast.ClosureExpr{Params: ast.Params{param}, Corpus: corpus, Line: tok.Line, Column: tok.Column}
		}
		return &ast.Identifier{Nomen: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.LPAREN:
		return p.parseParenOrClosure()
	case lexer.LBRACKET:
		return p.parseArrayExpr()
	case lexer.LBRACE:
		return p.parseObjectExpr()
	case lexer.NOVUM:
		return p.parseNovumExpr()
	case lexer.SCRIPTUM:
		return p.parseScriptumExpr()
	case lexer.FINGE:
		return p.parseFingeExpr()
	default:
		p.diags.Errorf(tok.Line, tok.Column, "unexpected token %s in expression", tok.Type)
		p.advance()
		return &ast.Identifier{Nomen: "<error>", Line: tok.Line, Column: tok.Column}
	}
}

// parseParenOrClosure disambiguates `( expr )` from `( params ) => corpus`
// by scanning forward for a matching `)` followed by `=>`.
func (p *Parser) parseParenOrClosure() ast.Expr {
	if p.looksLikeClosureParams() {
		return p.parseClosureExpr()
	}
	tok := p.expect(lexer.LPAREN)
	_ = tok
	expr := p.parseExpression()
	p.expect(lexer.RPAREN)
	return expr
}

// looksLikeClosureParams scans from the current `(` to its matching `)`
// without consuming tokens, reporting whether `=>` immediately follows.
func (p *Parser) looksLikeClosureParams() bool {
	depth := 0
	i := p.pos
	for i < len(p.tokens) {
		switch p.tokens[i].Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == lexer.FATARROW
			}
		case lexer.SEMICOLON, lexer.EOF:
			return false
		}
		i++
	}
	return false
}

func (p *Parser) parseClosureExpr() *ast.ClosureExpr {
	tok := p.expect(lexer.LPAREN)
	var params ast.Params
	if !p.check(lexer.RPAREN) {
		params = append(params, p.parseParam())
		for p.match(lexer.COMMA) {
			params = append(params, p.parseParam())
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.FATARROW)
	var corpus ast.Node
	if p.check(lexer.LBRACE) {
		corpus = p.parseBlockStmt()
	} else {
		corpus = p.parseExpression()
	}
	return &ast.ClosureExpr{Params: params, Corpus: corpus, Line: tok.Line, Column: tok.Column}
}

// parseArrayExpr parses `[ el, ...spread, ]`.
func (p *Parser) parseArrayExpr() *ast.ArrayExpr {
	tok := p.expect(lexer.LBRACKET)
	a := &ast.ArrayExpr{Line: tok.Line, Column: tok.Column}
	for !p.check(lexer.RBRACKET) && !p.check(lexer.EOF) {
		spread := p.match(lexer.DOTDOTDOT) || p.match(lexer.SPARGE)
		val := p.parseExpression()
		a.Elementa = append(a.Elementa, &ast.ArrayElement{Valor: val, Spread: spread})
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return a
}

// parseObjectExpr parses `{ key: val, [computed]: val, shorthand, }`.
func (p *Parser) parseObjectExpr() *ast.ObjectExpr {
	tok := p.expect(lexer.LBRACE)
	o := &ast.ObjectExpr{Line: tok.Line, Column: tok.Column}
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		prop := &ast.ObjectProp{}
		if p.match(lexer.LBRACKET) {
			prop.Key = p.parseExpression()
			prop.Computed = true
			p.expect(lexer.RBRACKET)
			p.expect(lexer.COLON)
			prop.Valor = p.parseExpression()
		} else {
			keyTok := p.current()
			var key ast.Expr
			if keyTok.Type == lexer.STRING_LIT {
				p.advance()
				key = &ast.Literal{Species: ast.LitteraTextus, Valor: keyTok.Literal, Line: keyTok.Line, Column: keyTok.Column}
			} else {
				name := p.expect(lexer.IDENT)
				key = &ast.Identifier{Nomen: name.Literal, Line: name.Line, Column: name.Column}
			}
			prop.Key = key
			if p.match(lexer.COLON) {
				prop.Valor = p.parseExpression()
			} else {
				prop.Shorthand = true
				prop.Valor = key
			}
		}
		o.Props = append(o.Props, prop)
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return o
}

// parseNovumExpr parses `novum Callee ( args ) [de init]`.
func (p *Parser) parseNovumExpr() *ast.NovumExpr {
	tok := p.expect(lexer.NOVUM)
	callee := p.parsePostfix()
	n := &ast.NovumExpr{Callee: callee, Line: tok.Line, Column: tok.Column}
	if call, ok := callee.(*ast.CallExpr); ok {
		n.Callee = call.Callee
		n.Args = call.Args
	}
	if p.match(lexer.DE) {
		n.Init = p.parseExpression()
	}
	return n
}

// parseScriptumExpr parses `scriptum "format § text" ( args )`.
func (p *Parser) parseScriptumExpr() *ast.ScriptumExpr {
	tok := p.expect(lexer.SCRIPTUM)
	format := p.expect(lexer.STRING_LIT)
	s := &ast.ScriptumExpr{Format: format.Literal, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.LPAREN) {
		if !p.check(lexer.RPAREN) {
			s.Args = append(s.Args, p.parseExpression())
			for p.match(lexer.COMMA) {
				s.Args = append(s.Args, p.parseExpression())
			}
		}
		p.expect(lexer.RPAREN)
	}
	return s
}

// parseFingeExpr parses `finge [Discriminator qua] Variant { campi }`.
func (p *Parser) parseFingeExpr() *ast.FingeExpr {
	tok := p.expect(lexer.FINGE)
	first := p.expect(lexer.IDENT)
	f := &ast.FingeExpr{Variant: first.Literal, Line: tok.Line, Column: tok.Column}
	if p.match(lexer.QUA) {
		f.Discriminator = &ast.TypeRef{Nomen: first.Literal, Line: first.Line, Column: first.Column}
		variant := p.expect(lexer.IDENT)
		f.Variant = variant.Literal
	}
	if p.match(lexer.LBRACE) {
		for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
			name := p.expect(lexer.IDENT)
			p.expect(lexer.COLON)
			val := p.parseExpression()
			f.Campi = append(f.Campi, &ast.ObjectProp{
				Key:   &ast.Identifier{Nomen: name.Literal, Line: name.Line, Column: name.Column},
				Valor: val,
			})
			if !p.match(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RBRACE)
	}
	return f
}

// splitRegexLiteral separates the NUL-joined pattern/flags encoding the
// lexer uses for REGEX_LIT tokens.
func splitRegexLiteral(lit string) (pattern, flags string) {
	for i := 0; i < len(lit); i++ {
		if lit[i] == 0 {
			return lit[:i], lit[i+1:]
		}
	}
	return lit, ""
}

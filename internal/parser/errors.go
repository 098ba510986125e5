package parser

import (
	"github.com/faberlang/faber/internal/diagnostic"
	"github.com/faberlang/faber/internal/lexer"
)

// syncTokens are tokens the parser can synchronize to after an error.
var syncTokens = map[lexer.TokenType]bool{
	lexer.FUNCTIO:   true,
	lexer.ORDO:      true,
	lexer.PACTUM:    true,
	lexer.VARIA:     true,
	lexer.FIXUM:     true,
	lexer.REDDE:     true,
	lexer.SI:        true,
	lexer.RBRACE:    true,
	lexer.SEMICOLON: true,
	lexer.PROBANDUM: true,
	lexer.INCIPIT:   true,
	lexer.INCIPIET:  true,
	lexer.EOF:       true,
}

// Parser holds the parser state over a pre-tokenized input.
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.Diagnostics
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if tok.Type != tt {
		p.diags.Errorf(tok.Line, tok.Column, "expected %s, got %s", tt, tok.Type)
		return tok
	}
	return p.advance()
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

func (p *Parser) checkAny(tts ...lexer.TokenType) bool {
	for _, tt := range tts {
		if p.check(tt) {
			return true
		}
	}
	return false
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// synchronize skips tokens until a sync point is found, consuming a
// trailing semicolon when that's the sync point.
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.current().Type == lexer.SEMICOLON {
			p.advance()
			return
		}
		if syncTokens[p.current().Type] {
			return
		}
		p.advance()
	}
}

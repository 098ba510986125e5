package lexer

import "testing"

func TestNextTokenKeywordsAndOperators(t *testing.T) {
	input := `varia x : Numerus <- 1 + 2;
fixum y <- verum et falsum;
si (x intra 1..10) { redde x; }`

	l := New(input)
	want := []TokenType{
		VARIA, IDENT, COLON, IDENT, ASSIGN, INT_LIT, PLUS, INT_LIT, SEMICOLON,
		FIXUM, IDENT, ASSIGN, VERUM, ET, FALSUM, SEMICOLON,
		SI, LPAREN, IDENT, INTRA, INT_LIT, DOTDOT, INT_LIT, RPAREN,
		LBRACE, REDDE, IDENT, SEMICOLON, RBRACE,
		EOF,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, wantType, tok.Literal)
		}
	}
}

func TestNextTokenString(t *testing.T) {
	l := New(`"hello\nworld"`)
	tok := l.NextToken()
	if tok.Type != STRING_LIT {
		t.Fatalf("got %s, want STRING_LIT", tok.Type)
	}
	if tok.Literal != "hello\nworld" {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestNextTokenRegexLiteral(t *testing.T) {
	l := New(`sed "^a+$" i`)
	tok := l.NextToken()
	if tok.Type != REGEX_LIT {
		t.Fatalf("got %s, want REGEX_LIT", tok.Type)
	}
	pattern, flags := tok.Literal, ""
	for i := 0; i < len(tok.Literal); i++ {
		if tok.Literal[i] == 0 {
			pattern, flags = tok.Literal[:i], tok.Literal[i+1:]
			break
		}
	}
	if pattern != "^a+$" || flags != "i" {
		t.Fatalf("got pattern=%q flags=%q", pattern, flags)
	}
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	toks := New("redde 1;").Tokenize()
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		t.Fatalf("tokenize did not end with EOF: %+v", toks)
	}
}

func TestCompoundAssignOperators(t *testing.T) {
	l := New("x += 1; y -= 2; z *= 3; w /= 4;")
	want := []TokenType{
		IDENT, PLUS_ASSIGN, INT_LIT, SEMICOLON,
		IDENT, MINUS_ASSIGN, INT_LIT, SEMICOLON,
		IDENT, STAR_ASSIGN, INT_LIT, SEMICOLON,
		IDENT, SLASH_ASSIGN, INT_LIT, SEMICOLON,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, wantType)
		}
	}
}

func TestLineCommentsAndBlockCommentsSkipped(t *testing.T) {
	l := New("x // trailing comment\n/* block\ncomment */ y")
	first := l.NextToken()
	second := l.NextToken()
	if first.Type != IDENT || first.Literal != "x" {
		t.Fatalf("got %+v", first)
	}
	if second.Type != IDENT || second.Literal != "y" {
		t.Fatalf("got %+v", second)
	}
	if second.Line != 3 {
		t.Fatalf("expected block comment to advance line tracking, got line %d", second.Line)
	}
}

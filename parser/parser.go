/*
File    : dq/parser/parser.go
Author  : dq contributors

Grounded on the earlier parser/parser.go: a Parser struct wrapping a
Lexer with one-token lookahead (Cur/Peek), advanced by nextToken(), and a
SyntaxError type carrying source position, generalized from the earlier interpreter's
statement grammar to the query language's single expression grammar.
*/
package parser

import (
	"fmt"

	"github.com/dq-lang/dq/lexer"
)

// SyntaxError is raised by the lexer or parser and is never catchable by
// try/catch, since no query ran.
type SyntaxError struct {
	Message string
	Line    int
	Col     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[%d:%d] syntax error: %s", e.Line, e.Col, e.Message)
}

// Parser implements recursive descent with Pratt precedence climbing
// over a token stream from lexer.Lexer.
type Parser struct {
	Lex  *lexer.Lexer
	Cur  lexer.Token
	Peek lexer.Token
}

// NewParser creates a Parser positioned at the first two tokens of src.
func NewParser(src string) *Parser {
	lex := lexer.NewLexer(src)
	p := &Parser{Lex: lex}
	p.advance()
	p.advance()
	return p
}

// advance shifts Peek into Cur and scans a new Peek token.
func (p *Parser) advance() {
	p.Cur = p.Peek
	p.Peek = p.Lex.NextToken()
}

func (p *Parser) pos() Position {
	return Position{Line: p.Cur.Line, Col: p.Cur.Column}
}

func (p *Parser) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.Cur.Line,
		Col:     p.Cur.Column,
	}
}

// expect advances past Cur if it has type t, otherwise returns a
// SyntaxError describing the expected token set.
func (p *Parser) expect(t lexer.TokenType) error {
	if p.Cur.Type == lexer.INVALID_TYPE {
		return p.errorf("%s", p.Cur.Literal)
	}
	if p.Cur.Type != t {
		return p.errorf("expected %s, got %s %q", t, p.Cur.Type, p.Cur.Literal)
	}
	p.advance()
	return nil
}

// Parse compiles src into a query expression tree, or returns the first
// SyntaxError encountered. Parsing does not attempt resynchronization
// after an error.
func Parse(src string) (Node, error) {
	p := NewParser(src)
	if p.Cur.Type == lexer.INVALID_TYPE {
		return nil, p.errorf("%s", p.Cur.Literal)
	}
	n, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if p.Cur.Type != lexer.EOF_TYPE {
		return nil, p.errorf("unexpected trailing token %s %q", p.Cur.Type, p.Cur.Literal)
	}
	return n, nil
}

/*
File    : dq/parser/parser_precedence.go
Author  : dq contributors

Implements the query language's Pratt precedence table, tightest last:
pipe, comma, assignment, alternative //, or, and, comparison,
additive, multiplicative, unary minus, postfix suffixes.
*/
package parser

import "github.com/dq-lang/dq/lexer"

// parsePipe is level 1: `A | B`, right-associative.
func (p *Parser) parsePipe() (Node, error) {
	left, err := p.parseComma()
	if err != nil {
		return nil, err
	}
	if p.Cur.Type == lexer.PIPE_OP {
		pos := p.pos()
		p.advance()
		right, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		return &BinaryNode{base: base{pos}, Op: "|", Left: left, Right: right}, nil
	}
	return left, nil
}

// parseComma is level 2: `A, B`, left-associative.
func (p *Parser) parseComma() (Node, error) {
	left, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	for p.Cur.Type == lexer.COMMA_OP {
		pos := p.pos()
		p.advance()
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{base: base{pos}, Op: ",", Left: left, Right: right}
	}
	return left, nil
}

var assignOps = map[lexer.TokenType]string{
	lexer.ASSIGN_OP:    "=",
	lexer.PIPE_ASSIGN:  "|=",
	lexer.PLUS_ASSIGN:  "+=",
	lexer.MINUS_ASSIGN: "-=",
	lexer.MUL_ASSIGN:   "*=",
	lexer.DIV_ASSIGN:   "/=",
	lexer.MOD_ASSIGN:   "%=",
	lexer.ALT_ASSIGN:   "//=",
}

// parseAssign is level 3: the eight assignment operators, right-assoc
// and non-repeating in practice (jq queries don't chain assignments, but
// right recursion keeps the grammar simple and matches the table).
func (p *Parser) parseAssign() (Node, error) {
	left, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if op, ok := assignOps[p.Cur.Type]; ok {
		pos := p.pos()
		p.advance()
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &AssignNode{base: base{pos}, Op: op, Target: left, Value: right}, nil
	}
	return left, nil
}

// parseAlt is level 4: `A // B`, right-associative.
func (p *Parser) parseAlt() (Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.Cur.Type == lexer.ALT_OP {
		pos := p.pos()
		p.advance()
		right, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		return &BinaryNode{base: base{pos}, Op: "//", Left: left, Right: right}, nil
	}
	return left, nil
}

// parseOr is level 5: `A or B`, left-associative.
func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.Cur.Type == lexer.OR_KEY {
		pos := p.pos()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{base: base{pos}, Op: "or", Left: left, Right: right}
	}
	return left, nil
}

// parseAnd is level 6: `A and B`, left-associative.
func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.Cur.Type == lexer.AND_KEY {
		pos := p.pos()
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{base: base{pos}, Op: "and", Left: left, Right: right}
	}
	return left, nil
}

var comparisonOps = map[lexer.TokenType]string{
	lexer.EQ_OP: "==",
	lexer.NE_OP: "!=",
	lexer.LT_OP: "<",
	lexer.LE_OP: "<=",
	lexer.GT_OP: ">",
	lexer.GE_OP: ">=",
}

// parseComparison is level 7.
func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.Cur.Type]
		if !ok {
			return left, nil
		}
		pos := p.pos()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{base: base{pos}, Op: op, Left: left, Right: right}
	}
}

// parseAdditive is level 8: `+ -`, left-associative.
func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.Cur.Type == lexer.PLUS_OP || p.Cur.Type == lexer.MINUS_OP {
		op := string(p.Cur.Type)
		pos := p.pos()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{base: base{pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseMultiplicative is level 9: `* / %`, left-associative.
func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.Cur.Type == lexer.MUL_OP || p.Cur.Type == lexer.DIV_OP || p.Cur.Type == lexer.MOD_OP {
		op := string(p.Cur.Type)
		pos := p.pos()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{base: base{pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary is level 10: prefix `-`.
func (p *Parser) parseUnary() (Node, error) {
	if p.Cur.Type == lexer.MINUS_OP {
		pos := p.pos()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryMinusNode{base: base{pos}, Operand: operand}, nil
	}
	return p.parsePostfixTerm()
}

/*
File    : dq/parser/parser_literals.go
Author  : dq contributors
*/
package parser

import (
	"strconv"

	"github.com/dq-lang/dq/lexer"
	"github.com/dq-lang/dq/value"
)

func decodeSimpleStringShim(raw string) (string, error) {
	return lexer.DecodeSimpleString(raw)
}

// parsePrimary dispatches on the current token to build one Term of the
// grammar: identity/recurse, literals, strings, variables, formats,
// parenthesized/array/object construction, and the keyword-led forms
// (if/try/label/def/reduce/foreach/function calls), handled in
// parser_controls.go and parser_functions.go.
func (p *Parser) parsePrimary() (Node, error) {
	switch p.Cur.Type {
	case lexer.DOTDOT_OP:
		pos := p.pos()
		p.advance()
		return &RecurseNode{base: base{pos}}, nil
	case lexer.DOT_OP:
		pos := p.pos()
		// Identity `.`, or the start of a field/bracket suffix chain;
		// parseSuffixes handles the latter once we return IdentityNode.
		switch p.Peek.Type {
		case lexer.IDENTIFIER_ID, lexer.STRING_ID, lexer.LBRACKET_OP:
		default:
			p.advance()
		}
		return &IdentityNode{base: base{pos}}, nil
	case lexer.NULL_KEY:
		pos := p.pos()
		p.advance()
		return &LiteralNode{base: base{pos}, Value: value.Null}, nil
	case lexer.TRUE_KEY:
		pos := p.pos()
		p.advance()
		return &LiteralNode{base: base{pos}, Value: value.Bool(true)}, nil
	case lexer.FALSE_KEY:
		pos := p.pos()
		p.advance()
		return &LiteralNode{base: base{pos}, Value: value.Bool(false)}, nil
	case lexer.NUMBER_ID:
		pos := p.pos()
		n, err := strconv.ParseFloat(p.Cur.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", p.Cur.Literal)
		}
		p.advance()
		return &LiteralNode{base: base{pos}, Value: value.Number(n)}, nil
	case lexer.STRING_ID:
		return p.parseStringNode()
	case lexer.VARIABLE_ID:
		pos := p.pos()
		name := p.Cur.Literal
		p.advance()
		return &VarNode{base: base{pos}, Name: name}, nil
	case lexer.FORMAT_ID:
		return p.parseFormat()
	case lexer.LPAREN_OP:
		p.advance()
		inner, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN_OP); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LBRACKET_OP:
		return p.parseArrayLiteral()
	case lexer.LBRACE_OP:
		return p.parseObjectLiteral()
	case lexer.MINUS_OP:
		// Handled by parseUnary, but an expression may start here if a
		// higher level delegated straight into parsePrimary (e.g. inside
		// parens); support it defensively.
		return p.parseUnary()
	case lexer.IF_KEY:
		return p.parseIf()
	case lexer.TRY_KEY:
		return p.parseTry()
	case lexer.LABEL_KEY:
		return p.parseLabel()
	case lexer.REDUCE_KEY:
		return p.parseReduce()
	case lexer.FOREACH_KEY:
		return p.parseForeach()
	case lexer.DEF_KEY:
		return p.parseFuncDef()
	case lexer.IDENTIFIER_ID:
		return p.parseFuncCallOrBreak()
	default:
		return nil, p.errorf("unexpected token %s %q", p.Cur.Type, p.Cur.Literal)
	}
}

// parseStringNode parses a (possibly interpolated) string literal into a
// StringNode, re-lexing each `\( ... )` span as a nested query.
func (p *Parser) parseStringNode() (Node, error) {
	pos := p.pos()
	raw := p.Cur.Literal
	p.advance()

	segs, err := lexer.SplitInterpolation(raw)
	if err != nil {
		return nil, p.errorf("%s", err)
	}
	parts := make([]StringPart, 0, len(segs))
	for _, s := range segs {
		if !s.IsExpr {
			parts = append(parts, StringPart{Literal: s.Literal})
			continue
		}
		sub, err := Parse(s.Expr)
		if err != nil {
			return nil, err
		}
		parts = append(parts, StringPart{Expr: sub})
	}
	return &StringNode{base: base{pos}, Parts: parts}, nil
}

// parseFormat parses `@name` optionally followed by an interpolated
// string literal — the `@name "..."` format-string construct.
func (p *Parser) parseFormat() (Node, error) {
	pos := p.pos()
	name := p.Cur.Literal
	p.advance()
	if p.Cur.Type != lexer.STRING_ID {
		return &FormatNode{base: base{pos}, Name: name}, nil
	}
	strNode, err := p.parseStringNode()
	if err != nil {
		return nil, err
	}
	sn := strNode.(*StringNode)
	return &FormatNode{base: base{pos}, Name: name, Str: sn}, nil
}

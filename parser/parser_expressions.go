/*
File    : dq/parser/parser_expressions.go
Author  : dq contributors

Level 11 of the precedence table: postfix suffixes `.key .key? [E]
[E:E] [] ?`, plus the `as` binding form which (per real jq grammar)
attaches to a Term and consumes the rest of the enclosing pipe as its
body.
*/
package parser

import "github.com/dq-lang/dq/lexer"

// parsePostfixTerm parses a primary term and then zero or more postfix
// suffixes, finally checking for a trailing `as` binding.
func (p *Parser) parsePostfixTerm() (Node, error) {
	term, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	term, err = p.parseSuffixes(term)
	if err != nil {
		return nil, err
	}
	if p.Cur.Type == lexer.AS_KEY {
		return p.parseAsBinding(term)
	}
	return term, nil
}

// parseSuffixes consumes the postfix chain following a term: field
// access (with or without a leading `.`), bracketed index/slice/iterate,
// and the `?` optional-suppression marker.
func (p *Parser) parseSuffixes(target Node) (Node, error) {
	for {
		switch p.Cur.Type {
		case lexer.DOT_OP:
			pos := p.pos()
			p.advance()
			switch p.Cur.Type {
			case lexer.IDENTIFIER_ID:
				name := p.Cur.Literal
				p.advance()
				opt := p.consumeOptional()
				target = &FieldNode{base: base{pos}, Target: target, Name: name, Optional: opt}
			case lexer.STRING_ID:
				name, err := decodeLiteralString(p.Cur.Literal)
				if err != nil {
					return nil, p.errorf("%s", err)
				}
				p.advance()
				opt := p.consumeOptional()
				target = &FieldNode{base: base{pos}, Target: target, Name: name, Optional: opt}
			case lexer.LBRACKET_OP:
				var err error
				target, err = p.parseBracket(target)
				if err != nil {
					return nil, err
				}
			default:
				return nil, p.errorf("expected field name after '.', got %s", p.Cur.Type)
			}
		case lexer.LBRACKET_OP:
			var err error
			target, err = p.parseBracket(target)
			if err != nil {
				return nil, err
			}
		default:
			return target, nil
		}
	}
}

// consumeOptional consumes a trailing `?` suppression marker if present.
func (p *Parser) consumeOptional() bool {
	if p.Cur.Type == lexer.QUESTION_OP {
		p.advance()
		return true
	}
	return false
}

// parseBracket parses `[ ]`, `[E]`, or `[E:E]` (with either bound
// optional), applied to target, plus a trailing `?`.
func (p *Parser) parseBracket(target Node) (Node, error) {
	pos := p.pos()
	if err := p.expect(lexer.LBRACKET_OP); err != nil {
		return nil, err
	}

	if p.Cur.Type == lexer.RBRACKET_OP {
		p.advance()
		opt := p.consumeOptional()
		return &IterateNode{base: base{pos}, Target: target, Optional: opt}, nil
	}

	if p.Cur.Type == lexer.COLON_OP {
		p.advance()
		end, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBRACKET_OP); err != nil {
			return nil, err
		}
		opt := p.consumeOptional()
		return &SliceNode{base: base{pos}, Target: target, Start: nil, End: end, Optional: opt}, nil
	}

	first, err := p.parsePipe()
	if err != nil {
		return nil, err
	}

	if p.Cur.Type == lexer.COLON_OP {
		p.advance()
		var end Node
		if p.Cur.Type != lexer.RBRACKET_OP {
			end, err = p.parsePipe()
			if err != nil {
				return nil, err
			}
		}
		if err := p.expect(lexer.RBRACKET_OP); err != nil {
			return nil, err
		}
		opt := p.consumeOptional()
		return &SliceNode{base: base{pos}, Target: target, Start: first, End: end, Optional: opt}, nil
	}

	if err := p.expect(lexer.RBRACKET_OP); err != nil {
		return nil, err
	}
	opt := p.consumeOptional()
	return &IndexNode{base: base{pos}, Target: target, Index: first, Optional: opt}, nil
}

// decodeLiteralString decodes a non-interpolated string literal's raw
// lexer body, used for `."key with spaces"` field access.
func decodeLiteralString(raw string) (string, error) {
	return decodeSimpleStringShim(raw)
}

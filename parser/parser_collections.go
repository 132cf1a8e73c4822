/*
File    : dq/parser/parser_collections.go
Author  : dq contributors

Array and object construction: `[E]` collects a generator into an
array; `{...}` is a Cartesian product of entry generators, with the
`{k}`, `{$v}`, and `{(E): F}` shorthands.
*/
package parser

import "github.com/dq-lang/dq/lexer"

// parseArrayLiteral parses `[ ]` or `[ Pipe ]`.
func (p *Parser) parseArrayLiteral() (Node, error) {
	pos := p.pos()
	p.advance() // consume '['
	if p.Cur.Type == lexer.RBRACKET_OP {
		p.advance()
		return &ArrayNode{base: base{pos}}, nil
	}
	body, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBRACKET_OP); err != nil {
		return nil, err
	}
	return &ArrayNode{base: base{pos}, Body: body}, nil
}

// parseObjectLiteral parses `{ }` or `{ entry (, entry)* }`.
func (p *Parser) parseObjectLiteral() (Node, error) {
	pos := p.pos()
	p.advance() // consume '{'
	var entries []ObjectEntry
	if p.Cur.Type != lexer.RBRACE_OP {
		for {
			entry, err := p.parseObjectEntry()
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
			if p.Cur.Type != lexer.COMMA_OP {
				break
			}
			p.advance()
		}
	}
	if err := p.expect(lexer.RBRACE_OP); err != nil {
		return nil, err
	}
	return &ObjectNode{base: base{pos}, Entries: entries}, nil
}

// parseObjectEntry parses one `key: value` pair, handling the bare-name
// `{k}`, variable `{$v}`, and computed-key `{(E): F}` shorthands.
func (p *Parser) parseObjectEntry() (ObjectEntry, error) {
	switch p.Cur.Type {
	case lexer.VARIABLE_ID:
		name := p.Cur.Literal
		p.advance()
		entry := ObjectEntry{KeyName: name, Value: &VarNode{Name: name}}
		if p.Cur.Type == lexer.COLON_OP {
			p.advance()
			val, err := p.parseAssign()
			if err != nil {
				return ObjectEntry{}, err
			}
			entry.Value = val
		}
		return entry, nil

	case lexer.IDENTIFIER_ID, lexer.IF_KEY, lexer.THEN_KEY, lexer.ELSE_KEY, lexer.END_KEY,
		lexer.AND_KEY, lexer.OR_KEY, lexer.NOT_KEY, lexer.AS_KEY, lexer.DEF_KEY,
		lexer.REDUCE_KEY, lexer.FOREACH_KEY, lexer.TRY_KEY, lexer.CATCH_KEY,
		lexer.LABEL_KEY, lexer.NULL_KEY, lexer.TRUE_KEY, lexer.FALSE_KEY:
		name := p.Cur.Literal
		p.advance()
		entry := ObjectEntry{KeyName: name, Value: &FieldNode{Name: name, Target: &IdentityNode{}}}
		if p.Cur.Type == lexer.COLON_OP {
			p.advance()
			val, err := p.parseAssign()
			if err != nil {
				return ObjectEntry{}, err
			}
			entry.Value = val
		}
		return entry, nil

	case lexer.STRING_ID:
		strNode, err := p.parseStringNode()
		if err != nil {
			return ObjectEntry{}, err
		}
		sn := strNode.(*StringNode)
		if len(sn.Parts) == 1 && sn.Parts[0].Expr == nil {
			key := sn.Parts[0].Literal
			entry := ObjectEntry{KeyName: key, Value: &FieldNode{Name: key, Target: &IdentityNode{}}}
			if p.Cur.Type == lexer.COLON_OP {
				p.advance()
				val, err := p.parseAssign()
				if err != nil {
					return ObjectEntry{}, err
				}
				entry.Value = val
			}
			return entry, nil
		}
		if err := p.expect(lexer.COLON_OP); err != nil {
			return ObjectEntry{}, err
		}
		val, err := p.parseAssign()
		if err != nil {
			return ObjectEntry{}, err
		}
		return ObjectEntry{KeyExpr: sn, Value: val}, nil

	case lexer.LPAREN_OP:
		p.advance()
		keyExpr, err := p.parsePipe()
		if err != nil {
			return ObjectEntry{}, err
		}
		if err := p.expect(lexer.RPAREN_OP); err != nil {
			return ObjectEntry{}, err
		}
		if err := p.expect(lexer.COLON_OP); err != nil {
			return ObjectEntry{}, err
		}
		val, err := p.parseAssign()
		if err != nil {
			return ObjectEntry{}, err
		}
		return ObjectEntry{KeyExpr: keyExpr, Value: val}, nil

	default:
		return ObjectEntry{}, p.errorf("expected object key, got %s %q", p.Cur.Type, p.Cur.Literal)
	}
}

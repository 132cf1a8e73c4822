/*
File    : dq/parser/parser_functions.go
Author  : dq contributors

Function definitions, function calls, `break`, destructuring patterns,
and the `as` binding form.
*/
package parser

import "github.com/dq-lang/dq/lexer"

// parseFuncDef parses `def name(params): BODY; REST`, where REST is
// whatever expression follows — the definition is visible in it.
func (p *Parser) parseFuncDef() (Node, error) {
	pos := p.pos()
	p.advance() // 'def'
	if p.Cur.Type != lexer.IDENTIFIER_ID {
		return nil, p.errorf("expected function name after 'def', got %s", p.Cur.Type)
	}
	name := p.Cur.Literal
	p.advance()

	var params []string
	if p.Cur.Type == lexer.LPAREN_OP {
		p.advance()
		for {
			switch p.Cur.Type {
			case lexer.IDENTIFIER_ID:
				params = append(params, p.Cur.Literal)
			case lexer.VARIABLE_ID:
				// `$name` parameters are value parameters: the argument
				// is bound by its (first) value rather than as a lazy
				// filter, distinguished from a plain filter parameter by
				// the leading '$' kept in the stored name.
				params = append(params, "$"+p.Cur.Literal)
			default:
				return nil, p.errorf("expected parameter name, got %s", p.Cur.Type)
			}
			p.advance()
			if p.Cur.Type != lexer.SEMI_OP {
				break
			}
			p.advance()
		}
		if err := p.expect(lexer.RPAREN_OP); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.COLON_OP); err != nil {
		return nil, err
	}
	body, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI_OP); err != nil {
		return nil, err
	}
	var rest Node
	if p.Cur.Type == lexer.EOF_TYPE || p.Cur.Type == lexer.RPAREN_OP || p.Cur.Type == lexer.RBRACKET_OP ||
		p.Cur.Type == lexer.RBRACE_OP || p.Cur.Type == lexer.END_KEY || p.Cur.Type == lexer.SEMI_OP {
		rest = &IdentityNode{base: base{pos}}
	} else {
		rest, err = p.parsePipe()
		if err != nil {
			return nil, err
		}
	}
	return &FuncDefNode{base: base{pos}, Name: name, Params: params, Body: body, Rest: rest}, nil
}

// parseFuncCallOrBreak parses a bare/`(args)` function call, or the
// special `break $label` form (break is not a keyword token; it is
// recognized as the identifier "break" followed by a variable, matching
// jq's own grammar quirk of not reserving "break").
func (p *Parser) parseFuncCallOrBreak() (Node, error) {
	pos := p.pos()
	name := p.Cur.Literal
	p.advance()

	if name == "break" && p.Cur.Type == lexer.VARIABLE_ID {
		label := p.Cur.Literal
		p.advance()
		return &BreakNode{base: base{pos}, Name: label}, nil
	}

	if p.Cur.Type != lexer.LPAREN_OP {
		return &FuncCallNode{base: base{pos}, Name: name}, nil
	}
	p.advance()
	var args []Node
	for {
		arg, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.Cur.Type != lexer.SEMI_OP {
			break
		}
		p.advance()
	}
	if err := p.expect(lexer.RPAREN_OP); err != nil {
		return nil, err
	}
	return &FuncCallNode{base: base{pos}, Name: name, Args: args}, nil
}

// parseAsBinding parses the tail of `SOURCE as PATTERN (?// PATTERN)* |
// BODY` given the already-parsed SOURCE.
func (p *Parser) parseAsBinding(source Node) (Node, error) {
	pos := p.pos()
	p.advance() // 'as'
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	patterns := []Pattern{pat}
	for p.Cur.Type == lexer.OPTSLICE_OP {
		p.advance()
		next, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, next)
	}
	if err := p.expect(lexer.PIPE_OP); err != nil {
		return nil, err
	}
	body, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	return &BindingNode{base: base{pos}, Source: source, Patterns: patterns, Body: body}, nil
}

// parsePattern parses one destructuring pattern: a bare variable, an
// array pattern, or an object pattern.
func (p *Parser) parsePattern() (Pattern, error) {
	switch p.Cur.Type {
	case lexer.VARIABLE_ID:
		name := p.Cur.Literal
		p.advance()
		return Pattern{Kind: PatternVar, Var: name}, nil

	case lexer.LBRACKET_OP:
		p.advance()
		var elems []Pattern
		if p.Cur.Type != lexer.RBRACKET_OP {
			for {
				elem, err := p.parsePattern()
				if err != nil {
					return Pattern{}, err
				}
				elems = append(elems, elem)
				if p.Cur.Type != lexer.COMMA_OP {
					break
				}
				p.advance()
			}
		}
		if err := p.expect(lexer.RBRACKET_OP); err != nil {
			return Pattern{}, err
		}
		return Pattern{Kind: PatternArray, Array: elems}, nil

	case lexer.LBRACE_OP:
		p.advance()
		var entries []ObjectPatternEntry
		if p.Cur.Type != lexer.RBRACE_OP {
			for {
				entry, err := p.parseObjectPatternEntry()
				if err != nil {
					return Pattern{}, err
				}
				entries = append(entries, entry)
				if p.Cur.Type != lexer.COMMA_OP {
					break
				}
				p.advance()
			}
		}
		if err := p.expect(lexer.RBRACE_OP); err != nil {
			return Pattern{}, err
		}
		return Pattern{Kind: PatternObject, Object: entries}, nil

	default:
		return Pattern{}, p.errorf("expected destructuring pattern, got %s", p.Cur.Type)
	}
}

func (p *Parser) parseObjectPatternEntry() (ObjectPatternEntry, error) {
	switch p.Cur.Type {
	case lexer.VARIABLE_ID:
		name := p.Cur.Literal
		p.advance()
		if p.Cur.Type == lexer.COLON_OP {
			p.advance()
			val, err := p.parsePattern()
			if err != nil {
				return ObjectPatternEntry{}, err
			}
			return ObjectPatternEntry{KeyName: name, Value: val}, nil
		}
		return ObjectPatternEntry{KeyName: name, Value: Pattern{Kind: PatternVar, Var: name}}, nil

	case lexer.IDENTIFIER_ID:
		name := p.Cur.Literal
		p.advance()
		if err := p.expect(lexer.COLON_OP); err != nil {
			return ObjectPatternEntry{}, err
		}
		val, err := p.parsePattern()
		if err != nil {
			return ObjectPatternEntry{}, err
		}
		return ObjectPatternEntry{KeyName: name, Value: val}, nil

	case lexer.STRING_ID:
		name, err := decodeLiteralString(p.Cur.Literal)
		if err != nil {
			return ObjectPatternEntry{}, p.errorf("%s", err)
		}
		p.advance()
		if err := p.expect(lexer.COLON_OP); err != nil {
			return ObjectPatternEntry{}, err
		}
		val, err := p.parsePattern()
		if err != nil {
			return ObjectPatternEntry{}, err
		}
		return ObjectPatternEntry{KeyName: name, Value: val}, nil

	case lexer.LPAREN_OP:
		p.advance()
		keyExpr, err := p.parsePipe()
		if err != nil {
			return ObjectPatternEntry{}, err
		}
		if err := p.expect(lexer.RPAREN_OP); err != nil {
			return ObjectPatternEntry{}, err
		}
		if err := p.expect(lexer.COLON_OP); err != nil {
			return ObjectPatternEntry{}, err
		}
		val, err := p.parsePattern()
		if err != nil {
			return ObjectPatternEntry{}, err
		}
		return ObjectPatternEntry{KeyExpr: keyExpr, Value: val}, nil

	default:
		return ObjectPatternEntry{}, p.errorf("expected object pattern key, got %s", p.Cur.Type)
	}
}

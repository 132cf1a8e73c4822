/*
File    : dq/parser/parser_controls.go
Author  : dq contributors

if/then/elif/else/end, try/catch, label/break and reduce/foreach, per
its AST node list and §4.2's "parsed as statements terminated
by end/; as appropriate" rule.
*/
package parser

import "github.com/dq-lang/dq/lexer"

func (p *Parser) parseIf() (Node, error) {
	pos := p.pos()
	p.advance() // 'if'
	cond, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.THEN_KEY); err != nil {
		return nil, err
	}
	then, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	node := &IfNode{base: base{pos}, Cond: cond, Then: then}
	for p.Cur.Type == lexer.ELIF_KEY {
		p.advance()
		c, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.THEN_KEY); err != nil {
			return nil, err
		}
		t, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		node.Elifs = append(node.Elifs, ElifClause{Cond: c, Then: t})
	}
	if p.Cur.Type == lexer.ELSE_KEY {
		p.advance()
		e, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		node.Else = e
	}
	if err := p.expect(lexer.END_KEY); err != nil {
		return nil, err
	}
	return node, nil
}

// parseTry parses `try BODY` or `try BODY catch CATCH`. BODY and CATCH
// bind at postfix-term tightness so `try .a, .b` parses as
// `(try .a), .b`, matching jq.
func (p *Parser) parseTry() (Node, error) {
	pos := p.pos()
	p.advance() // 'try'
	body, err := p.parsePostfixTerm()
	if err != nil {
		return nil, err
	}
	node := &TryNode{base: base{pos}, Body: body}
	if p.Cur.Type == lexer.CATCH_KEY {
		p.advance()
		catch, err := p.parsePostfixTerm()
		if err != nil {
			return nil, err
		}
		node.Catch = catch
	}
	return node, nil
}

// parseLabel parses `label $name | BODY`.
func (p *Parser) parseLabel() (Node, error) {
	pos := p.pos()
	p.advance() // 'label'
	if p.Cur.Type != lexer.VARIABLE_ID {
		return nil, p.errorf("expected label name after 'label', got %s", p.Cur.Type)
	}
	name := p.Cur.Literal
	p.advance()
	if err := p.expect(lexer.PIPE_OP); err != nil {
		return nil, err
	}
	body, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	return &LabelNode{base: base{pos}, Name: name, Body: body}, nil
}

// parseReduce parses `reduce SOURCE as PATTERN (INIT; STEP)`.
func (p *Parser) parseReduce() (Node, error) {
	pos := p.pos()
	p.advance() // 'reduce'
	source, err := p.parsePostfixTermNoAs()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.AS_KEY); err != nil {
		return nil, err
	}
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LPAREN_OP); err != nil {
		return nil, err
	}
	init, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI_OP); err != nil {
		return nil, err
	}
	step, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN_OP); err != nil {
		return nil, err
	}
	return &ReduceNode{base: base{pos}, Source: source, Pattern: pat, Init: init, Step: step}, nil
}

// parseForeach parses `foreach SOURCE as PATTERN (INIT; STEP; EXTRACT)`,
// EXTRACT being optional.
func (p *Parser) parseForeach() (Node, error) {
	pos := p.pos()
	p.advance() // 'foreach'
	source, err := p.parsePostfixTermNoAs()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.AS_KEY); err != nil {
		return nil, err
	}
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LPAREN_OP); err != nil {
		return nil, err
	}
	init, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMI_OP); err != nil {
		return nil, err
	}
	step, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	node := &ForeachNode{base: base{pos}, Source: source, Pattern: pat, Init: init, Step: step}
	if p.Cur.Type == lexer.SEMI_OP {
		p.advance()
		extract, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		node.Extract = extract
	}
	if err := p.expect(lexer.RPAREN_OP); err != nil {
		return nil, err
	}
	return node, nil
}

// parsePostfixTermNoAs parses a postfix term without consuming a
// trailing `as`, used for reduce/foreach's SOURCE clause since the `as`
// there belongs to the reduce/foreach grammar, not a nested binding.
func (p *Parser) parsePostfixTermNoAs() (Node, error) {
	term, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseSuffixes(term)
}

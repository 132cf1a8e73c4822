/*
File    : dq/lexer/lexer_test.go
Author  : dq contributors
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tokenCase struct {
	Input    string
	Expected []Token
}

func collectTokens(src string) []Token {
	lex := NewLexer(src)
	var out []Token
	for {
		tok := lex.NextToken()
		out = append(out, tok)
		if tok.Type == EOF_TYPE {
			return out
		}
	}
}

func stripPositions(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = NewToken(t.Type, t.Literal)
	}
	return out
}

func TestLexer_Punctuation(t *testing.T) {
	tests := []tokenCase{
		{
			Input: ".a.b[1]",
			Expected: []Token{
				NewToken(DOT_OP, "."),
				NewToken(IDENTIFIER_ID, "a"),
				NewToken(DOT_OP, "."),
				NewToken(IDENTIFIER_ID, "b"),
				NewToken(LBRACKET_OP, "["),
				NewToken(NUMBER_ID, "1"),
				NewToken(RBRACKET_OP, "]"),
				NewToken(EOF_TYPE, ""),
			},
		},
		{
			Input: "..|select(.a>3)",
			Expected: []Token{
				NewToken(DOTDOT_OP, ".."),
				NewToken(PIPE_OP, "|"),
				NewToken(IDENTIFIER_ID, "select"),
				NewToken(LPAREN_OP, "("),
				NewToken(DOT_OP, "."),
				NewToken(IDENTIFIER_ID, "a"),
				NewToken(GT_OP, ">"),
				NewToken(NUMBER_ID, "3"),
				NewToken(RPAREN_OP, ")"),
				NewToken(EOF_TYPE, ""),
			},
		},
	}
	for _, tc := range tests {
		got := stripPositions(collectTokens(tc.Input))
		assert.Equal(t, tc.Expected, got, "input: %q", tc.Input)
	}
}

func TestLexer_Operators(t *testing.T) {
	got := stripPositions(collectTokens("a |= b // c += 1 == 2 != 3 <= 4 >= 5"))
	expected := []Token{
		NewToken(IDENTIFIER_ID, "a"),
		NewToken(PIPE_ASSIGN, "|="),
		NewToken(IDENTIFIER_ID, "b"),
		NewToken(ALT_OP, "//"),
		NewToken(IDENTIFIER_ID, "c"),
		NewToken(PLUS_ASSIGN, "+="),
		NewToken(NUMBER_ID, "1"),
		NewToken(EQ_OP, "=="),
		NewToken(NUMBER_ID, "2"),
		NewToken(NE_OP, "!="),
		NewToken(NUMBER_ID, "3"),
		NewToken(LE_OP, "<="),
		NewToken(NUMBER_ID, "4"),
		NewToken(GE_OP, ">="),
		NewToken(NUMBER_ID, "5"),
		NewToken(EOF_TYPE, ""),
	}
	assert.Equal(t, expected, got)
}

func TestLexer_VariableAndFormat(t *testing.T) {
	got := stripPositions(collectTokens("$x | @base64"))
	expected := []Token{
		NewToken(VARIABLE_ID, "x"),
		NewToken(PIPE_OP, "|"),
		NewToken(FORMAT_ID, "base64"),
		NewToken(EOF_TYPE, ""),
	}
	assert.Equal(t, expected, got)
}

func TestLexer_Number(t *testing.T) {
	got := stripPositions(collectTokens("1 2.5 3e10 4.2e-3"))
	expected := []Token{
		NewToken(NUMBER_ID, "1"),
		NewToken(NUMBER_ID, "2.5"),
		NewToken(NUMBER_ID, "3e10"),
		NewToken(NUMBER_ID, "4.2e-3"),
		NewToken(EOF_TYPE, ""),
	}
	assert.Equal(t, expected, got)
}

func TestLexer_StringLiteralRaw(t *testing.T) {
	lex := NewLexer(`"hello \(.name)!"`)
	tok := lex.NextToken()
	assert.Equal(t, STRING_ID, tok.Type)

	segs, err := SplitInterpolation(tok.Literal)
	assert.NoError(t, err)
	assert.Len(t, segs, 3)
	assert.Equal(t, "hello ", segs[0].Literal)
	assert.True(t, segs[1].IsExpr)
	assert.Equal(t, ".name", segs[1].Expr)
	assert.Equal(t, "!", segs[2].Literal)
}

func TestLexer_UnterminatedString(t *testing.T) {
	lex := NewLexer(`"oops`)
	tok := lex.NextToken()
	assert.Equal(t, INVALID_TYPE, tok.Type)
}

func TestLexer_Keywords(t *testing.T) {
	got := stripPositions(collectTokens("if . then . else . end"))
	expected := []Token{
		NewToken(IF_KEY, "if"),
		NewToken(DOT_OP, "."),
		NewToken(THEN_KEY, "then"),
		NewToken(DOT_OP, "."),
		NewToken(ELSE_KEY, "else"),
		NewToken(DOT_OP, "."),
		NewToken(END_KEY, "end"),
		NewToken(EOF_TYPE, ""),
	}
	assert.Equal(t, expected, got)
}

/*
File    : dq/parser/parser_test.go
Author  : dq contributors
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Identity(t *testing.T) {
	n, err := Parse(".")
	require.NoError(t, err)
	_, ok := n.(*IdentityNode)
	assert.True(t, ok)
}

func TestParse_FieldChain(t *testing.T) {
	n, err := Parse(".a.b")
	require.NoError(t, err)
	outer, ok := n.(*FieldNode)
	require.True(t, ok)
	assert.Equal(t, "b", outer.Name)
	inner, ok := outer.Target.(*FieldNode)
	require.True(t, ok)
	assert.Equal(t, "a", inner.Name)
	_, ok = inner.Target.(*IdentityNode)
	assert.True(t, ok)
}

func TestParse_OptionalField(t *testing.T) {
	n, err := Parse(".a?")
	require.NoError(t, err)
	f, ok := n.(*FieldNode)
	require.True(t, ok)
	assert.True(t, f.Optional)
}

func TestParse_IndexAndSlice(t *testing.T) {
	n, err := Parse(".[0]")
	require.NoError(t, err)
	idx, ok := n.(*IndexNode)
	require.True(t, ok)
	lit, ok := idx.Index.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, float64(0), lit.Value.NumberValue())

	n, err = Parse(".[1:3]")
	require.NoError(t, err)
	sl, ok := n.(*SliceNode)
	require.True(t, ok)
	assert.NotNil(t, sl.Start)
	assert.NotNil(t, sl.End)
}

func TestParse_Iterate(t *testing.T) {
	n, err := Parse(".[]")
	require.NoError(t, err)
	_, ok := n.(*IterateNode)
	assert.True(t, ok)
}

func TestParse_PipeAndComma(t *testing.T) {
	n, err := Parse(".a, .b | .c")
	require.NoError(t, err)
	pipe, ok := n.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "|", pipe.Op)
	comma, ok := pipe.Left.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, ",", comma.Op)
}

func TestParse_Precedence(t *testing.T) {
	n, err := Parse("1 + 2 * 3")
	require.NoError(t, err)
	plus, ok := n.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "+", plus.Op)
	mul, ok := plus.Right.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestParse_AlternativeAndBooleans(t *testing.T) {
	n, err := Parse(".a // .b and .c or .d")
	require.NoError(t, err)
	alt, ok := n.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "//", alt.Op)
	or, ok := alt.Right.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "or", or.Op)
	and, ok := or.Left.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "and", and.Op)
}

func TestParse_ArrayAndObjectConstruction(t *testing.T) {
	n, err := Parse("[.a, .b]")
	require.NoError(t, err)
	arr, ok := n.(*ArrayNode)
	require.True(t, ok)
	assert.NotNil(t, arr.Body)

	n, err = Parse(`{a: .x, "b c": .y, $z, (.k): .v}`)
	require.NoError(t, err)
	obj, ok := n.(*ObjectNode)
	require.True(t, ok)
	require.Len(t, obj.Entries, 4)
	assert.Equal(t, "a", obj.Entries[0].KeyName)
	assert.Equal(t, "b c", obj.Entries[1].KeyName)
	assert.Equal(t, "z", obj.Entries[2].KeyName)
	assert.NotNil(t, obj.Entries[3].KeyExpr)
}

func TestParse_IfElif(t *testing.T) {
	n, err := Parse("if .a then 1 elif .b then 2 else 3 end")
	require.NoError(t, err)
	ifn, ok := n.(*IfNode)
	require.True(t, ok)
	require.Len(t, ifn.Elifs, 1)
	assert.NotNil(t, ifn.Else)
}

func TestParse_TryCatch(t *testing.T) {
	n, err := Parse("try .a catch .b")
	require.NoError(t, err)
	tr, ok := n.(*TryNode)
	require.True(t, ok)
	assert.NotNil(t, tr.Catch)
}

func TestParse_ReduceForeach(t *testing.T) {
	n, err := Parse("reduce .[] as $x (0; . + $x)")
	require.NoError(t, err)
	r, ok := n.(*ReduceNode)
	require.True(t, ok)
	assert.Equal(t, PatternVar, r.Pattern.Kind)
	assert.Equal(t, "x", r.Pattern.Var)

	n, err = Parse("foreach .[] as $x (0; . + $x; . * 2)")
	require.NoError(t, err)
	f, ok := n.(*ForeachNode)
	require.True(t, ok)
	assert.NotNil(t, f.Extract)
}

func TestParse_LabelBreak(t *testing.T) {
	n, err := Parse("label $out | foreach .[] as $x (0; if . > 2 then break $out else . end)")
	require.NoError(t, err)
	lbl, ok := n.(*LabelNode)
	require.True(t, ok)
	assert.Equal(t, "out", lbl.Name)
}

func TestParse_FuncDef(t *testing.T) {
	n, err := Parse("def add(a; b): a + b; add(1; 2)")
	require.NoError(t, err)
	def, ok := n.(*FuncDefNode)
	require.True(t, ok)
	assert.Equal(t, "add", def.Name)
	assert.Equal(t, []string{"a", "b"}, def.Params)
	call, ok := def.Rest.(*FuncCallNode)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParse_DestructuringAsBinding(t *testing.T) {
	n, err := Parse(".a as [$x, $y] | $x + $y")
	require.NoError(t, err)
	bind, ok := n.(*BindingNode)
	require.True(t, ok)
	require.Len(t, bind.Patterns, 1)
	assert.Equal(t, PatternArray, bind.Patterns[0].Kind)
	require.Len(t, bind.Patterns[0].Array, 2)
}

func TestParse_ObjectDestructuring(t *testing.T) {
	n, err := Parse(".a as {x: $x, $y} | $x")
	require.NoError(t, err)
	bind, ok := n.(*BindingNode)
	require.True(t, ok)
	pat := bind.Patterns[0]
	require.Equal(t, PatternObject, pat.Kind)
	require.Len(t, pat.Object, 2)
	assert.Equal(t, "x", pat.Object[0].KeyName)
	assert.Equal(t, "y", pat.Object[1].KeyName)
}

func TestParse_AlternatePatterns(t *testing.T) {
	n, err := Parse(".a as [$x] ?// $x | $x")
	require.NoError(t, err)
	bind, ok := n.(*BindingNode)
	require.True(t, ok)
	require.Len(t, bind.Patterns, 2)
	assert.Equal(t, PatternArray, bind.Patterns[0].Kind)
	assert.Equal(t, PatternVar, bind.Patterns[1].Kind)
}

func TestParse_Assignment(t *testing.T) {
	n, err := Parse(".a |= . + 1")
	require.NoError(t, err)
	a, ok := n.(*AssignNode)
	require.True(t, ok)
	assert.Equal(t, "|=", a.Op)
}

func TestParse_StringInterpolation(t *testing.T) {
	n, err := Parse(`"hi \(.name)"`)
	require.NoError(t, err)
	s, ok := n.(*StringNode)
	require.True(t, ok)
	require.Len(t, s.Parts, 2)
	assert.Equal(t, "hi ", s.Parts[0].Literal)
	assert.NotNil(t, s.Parts[1].Expr)
}

func TestParse_Format(t *testing.T) {
	n, err := Parse(`@base64 "\(.x)"`)
	require.NoError(t, err)
	f, ok := n.(*FormatNode)
	require.True(t, ok)
	assert.Equal(t, "base64", f.Name)
	require.NotNil(t, f.Str)
}

func TestParse_RecurseAndUnaryMinus(t *testing.T) {
	n, err := Parse("..")
	require.NoError(t, err)
	_, ok := n.(*RecurseNode)
	assert.True(t, ok)

	n, err = Parse("-1")
	require.NoError(t, err)
	u, ok := n.(*UnaryMinusNode)
	require.True(t, ok)
	lit, ok := u.Operand.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, float64(1), lit.Value.NumberValue())
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(".a |")
	require.Error(t, err)
	_, ok := err.(*SyntaxError)
	assert.True(t, ok)
}

func TestParse_UnterminatedStringError(t *testing.T) {
	_, err := Parse(`"oops`)
	require.Error(t, err)
}

/*
File    : dq/eval/eval_test.go
Author  : dq contributors
*/
package eval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dq-lang/dq/builtins"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/format"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

// run parses src, evaluates it against input with a fresh root Env (the
// full builtin set registered), and returns every emitted value in
// order.
func run(t *testing.T, src string, input value.Value) ([]value.Value, error) {
	t.Helper()
	ast, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	root := env.New(nil)
	builtins.Register(root)
	var out []value.Value
	err = eval.Eval(ast, input, root, func(v value.Value) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

func fromJSON(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := format.NewJSONDecoder(strings.NewReader(src)).Decode()
	assert.NoError(t, err)
	return v
}

func TestEval_FieldAndIndex(t *testing.T) {
	out, err := run(t, ".a.b", fromJSON(t, `{"a": {"b": 42}}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(42)}, out)
}

func TestEval_PipeComposesLeftToRight(t *testing.T) {
	out, err := run(t, ".a | .b", fromJSON(t, `{"a": {"b": "x"}}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("x")}, out)
}

func TestEval_CommaRunsBothBranchesInOrder(t *testing.T) {
	out, err := run(t, ".a, .b", fromJSON(t, `{"a": 1, "b": 2}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2)}, out)
}

func TestEval_IterateFansOutArray(t *testing.T) {
	out, err := run(t, ".[]", fromJSON(t, `[1, 2, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3)}, out)
}

func TestEval_IterateFansOutEveryObjectValue(t *testing.T) {
	out, err := run(t, ".[]", fromJSON(t, `{"a": 1, "b": 2}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2)}, out)
}

func TestEval_SliceClampsOutOfRangeBounds(t *testing.T) {
	out, err := run(t, ".[1:100]", fromJSON(t, `[1, 2, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Array([]value.Value{value.Int(2), value.Int(3)})}, out)
}

func TestEval_ArithmeticCrossesGeneratorBoundaries(t *testing.T) {
	// `(1, 2) + 10` must produce one output per left-hand value.
	out, err := run(t, "(1, 2) + 10", value.Null)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(11), value.Int(12)}, out)
}

func TestEval_DivisionByZeroIsADiagnostic(t *testing.T) {
	_, err := run(t, "1 / 0", value.Null)
	assert.Error(t, err)
}

func TestEval_IfElseSelectsBranch(t *testing.T) {
	out, err := run(t, "if . > 0 then \"pos\" else \"nonpos\" end", value.Int(5))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("pos")}, out)

	out, err = run(t, "if . > 0 then \"pos\" else \"nonpos\" end", value.Int(-1))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("nonpos")}, out)
}

func TestEval_TryCatchSwallowsErrorWithoutCatch(t *testing.T) {
	out, err := run(t, "try error(\"boom\")", value.Null)
	assert.NoError(t, err)
	assert.Len(t, out, 0)
}

func TestEval_TryCatchRunsCatchWithMessage(t *testing.T) {
	out, err := run(t, "try error(\"boom\") catch .", value.Null)
	assert.NoError(t, err)
	assert.True(t, out[0].IsString())
	assert.Contains(t, out[0].Str(), "boom")
}

func TestEval_LabelBreakStopsFurtherOutput(t *testing.T) {
	out, err := run(t, "label $out | (1, 2, 3 | if . == 2 then ., break $out else . end)", value.Null)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2)}, out)
}

func TestEval_ReduceAccumulates(t *testing.T) {
	out, err := run(t, "reduce .[] as $x (0; . + $x)", fromJSON(t, `[1, 2, 3, 4]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(10)}, out)
}

func TestEval_ForeachEmitsEveryIntermediate(t *testing.T) {
	out, err := run(t, "foreach .[] as $x (0; . + $x)", fromJSON(t, `[1, 2, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(3), value.Int(6)}, out)
}

func TestEval_PlainAssignSetsPathFromRHSGenerator(t *testing.T) {
	out, err := run(t, ".a = (1, 2)", fromJSON(t, `{"a": 0}`))
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestEval_UpdateAssignAppliesFilterAtEachPath(t *testing.T) {
	out, err := run(t, ".[] |= . + 1", fromJSON(t, `[1, 2, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Array([]value.Value{value.Int(2), value.Int(3), value.Int(4)})}, out)
}

func TestEval_ArithmeticUpdateAssignShorthand(t *testing.T) {
	out, err := run(t, ".a += 1", fromJSON(t, `{"a": 1}`))
	assert.NoError(t, err)
	obj := out[0].Obj()
	got, _ := obj.Get("a")
	assert.Equal(t, value.Int(2), got)
}

func TestEval_PathsOfPathExpression(t *testing.T) {
	out, err := run(t, "path(.a.b)", fromJSON(t, `{"a": {"b": 1}}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Array([]value.Value{value.String("a"), value.String("b")})}, out)
}

func TestEval_StringInterpolation(t *testing.T) {
	out, err := run(t, `"hello \(.name)"`, fromJSON(t, `{"name": "world"}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("hello world")}, out)
}

func TestEval_ObjectConstructionShorthand(t *testing.T) {
	out, err := run(t, "{a, b: .c}", fromJSON(t, `{"a": 1, "c": 2}`))
	assert.NoError(t, err)
	obj := out[0].Obj()
	a, _ := obj.Get("a")
	b, _ := obj.Get("b")
	assert.Equal(t, value.Int(1), a)
	assert.Equal(t, value.Int(2), b)
}

func TestEval_FuncDefIsCallableRecursively(t *testing.T) {
	out, err := run(t, "def fact: if . <= 1 then 1 else . * (. - 1 | fact) end; fact", value.Int(5))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(120)}, out)
}

func TestEval_DestructuringPatternBindsFields(t *testing.T) {
	out, err := run(t, ". as {a: $x, b: $y} | $x + $y", fromJSON(t, `{"a": 1, "b": 2}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(3)}, out)
}

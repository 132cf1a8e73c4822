/*
File    : dq/builtins/builtins_test.go
Author  : dq contributors
*/
package builtins_test

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

func TestBuiltins_Length(t *testing.T) {
	out, err := run(t, "length", fromJSON(t, `[1, 2, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(3)}, out)

	out, err = run(t, "length", fromJSON(t, `"hello"`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(5)}, out)
}

func TestBuiltins_TypeReportsKind(t *testing.T) {
	out, err := run(t, "type", fromJSON(t, `{"a": 1}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("object")}, out)
}

func TestBuiltins_SelectFiltersGenerator(t *testing.T) {
	out, err := run(t, ".[] | select(. > 2)", fromJSON(t, `[1, 2, 3, 4]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(3), value.Int(4)}, out)
}

func TestBuiltins_MapAppliesFilterToEachElement(t *testing.T) {
	out, err := run(t, "map(. * 2)", fromJSON(t, `[1, 2, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Array([]value.Value{value.Int(2), value.Int(4), value.Int(6)})}, out)
}

func TestBuiltins_SortByOrdersByKeyFunction(t *testing.T) {
	out, err := run(t, "sort_by(.x)", fromJSON(t, `[{"x": 3}, {"x": 1}, {"x": 2}]`))
	assert.NoError(t, err)
	arr := out[0].Arr()
	assert.Len(t, arr, 3)
	x0, _ := arr[0].Obj().Get("x")
	x1, _ := arr[1].Obj().Get("x")
	x2, _ := arr[2].Obj().Get("x")
	assert.Equal(t, value.Int(1), x0)
	assert.Equal(t, value.Int(2), x1)
	assert.Equal(t, value.Int(3), x2)
}

func TestBuiltins_GroupByGroupsOnKey(t *testing.T) {
	out, err := run(t, "group_by(.x) | length", fromJSON(t, `[{"x": 1}, {"x": 2}, {"x": 1}]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(2)}, out)
}

func TestBuiltins_UniqueRemovesDuplicatesAndSorts(t *testing.T) {
	out, err := run(t, "unique", fromJSON(t, `[3, 1, 2, 1, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Array([]value.Value{value.Int(1), value.Int(2), value.Int(3)})}, out)
}

func TestBuiltins_HasChecksKeyOrIndex(t *testing.T) {
	out, err := run(t, `has("a")`, fromJSON(t, `{"a": 1}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Bool(true)}, out)

	out, err = run(t, `has("b")`, fromJSON(t, `{"a": 1}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Bool(false)}, out)
}

func TestBuiltins_IndexFindsElementPosition(t *testing.T) {
	out, err := run(t, `. as $x | ["a","b"] | index($x)`, value.String("b"))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1)}, out)
}

func TestBuiltins_SplitJoinRoundTrip(t *testing.T) {
	out, err := run(t, `split(",") | join("-")`, value.String("a,b,c"))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("a-b-c")}, out)
}

func TestBuiltins_StartsEndsWith(t *testing.T) {
	out, err := run(t, `startswith("foo")`, value.String("foobar"))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Bool(true)}, out)

	out, err = run(t, `endswith("bar")`, value.String("foobar"))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Bool(true)}, out)
}

func TestBuiltins_TestMatchAgainstRegex(t *testing.T) {
	out, err := run(t, `test("^[a-z]+$")`, value.String("abc"))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Bool(true)}, out)
}

func TestBuiltins_GsubReplacesAllMatches(t *testing.T) {
	out, err := run(t, `gsub("o"; "0")`, value.String("foobar foo"))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("f00bar f00")}, out)
}

func TestBuiltins_PathGetpathSetpathRoundTrip(t *testing.T) {
	out, err := run(t, `getpath(["a", "b"])`, fromJSON(t, `{"a": {"b": 42}}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(42)}, out)

	out, err = run(t, `setpath(["a", "b"]; 99)`, fromJSON(t, `{"a": {"b": 42}}`))
	assert.NoError(t, err)
	inner, _ := out[0].Obj().Get("a")
	b, _ := inner.Obj().Get("b")
	assert.Equal(t, value.Int(99), b)
}

func TestBuiltins_DelRemovesPath(t *testing.T) {
	out, err := run(t, `del(.a)`, fromJSON(t, `{"a": 1, "b": 2}`))
	assert.NoError(t, err)
	_, ok := out[0].Obj().Get("a")
	assert.False(t, ok)
	b, ok := out[0].Obj().Get("b")
	assert.True(t, ok)
	assert.Equal(t, value.Int(2), b)
}

func TestBuiltins_RangeGeneratesHalfOpenInterval(t *testing.T) {
	out, err := run(t, "range(3)", value.Null)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(0), value.Int(1), value.Int(2)}, out)
}

func TestBuiltins_RecurseDescendsWholeTree(t *testing.T) {
	out, err := run(t, "[recurse] | length", fromJSON(t, `{"a": [1, 2]}`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(4)}, out) // root, array, 1, 2
}

func TestBuiltins_FirstLastOfGenerator(t *testing.T) {
	out, err := run(t, "first(range(10))", value.Null)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(0)}, out)

	out, err = run(t, "last(range(10))", value.Null)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(9)}, out)
}

func TestBuiltins_LimitCapsOutputCount(t *testing.T) {
	out, err := run(t, "[limit(2; range(10))]", value.Null)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Array([]value.Value{value.Int(0), value.Int(1)})}, out)
}

func TestBuiltins_ToEntriesFromEntriesRoundTrip(t *testing.T) {
	out, err := run(t, "to_entries | from_entries", fromJSON(t, `{"a": 1, "b": 2}`))
	assert.NoError(t, err)
	a, _ := out[0].Obj().Get("a")
	b, _ := out[0].Obj().Get("b")
	assert.Equal(t, value.Int(1), a)
	assert.Equal(t, value.Int(2), b)
}

func TestBuiltins_ToJSONFromJSONRoundTrip(t *testing.T) {
	out, err := run(t, "tojson | fromjson", fromJSON(t, `{"a": [1, 2, 3]}`))
	assert.NoError(t, err)
	assert.True(t, out[0].IsObject())
}

func TestBuiltins_AddSumsArray(t *testing.T) {
	out, err := run(t, "add", fromJSON(t, `[1, 2, 3]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(6)}, out)
}

func TestBuiltins_FlattenNestedArrays(t *testing.T) {
	out, err := run(t, "flatten", fromJSON(t, `[1, [2, [3, 4]], 5]`))
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.Array([]value.Value{
		value.Int(1), value.Int(2), value.Int(3), value.Int(4), value.Int(5),
	})}, out)
}

func TestBuiltins_EnvExposesProcessEnvironment(t *testing.T) {
	out, err := run(t, "env | type", value.Null)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("object")}, out)
}

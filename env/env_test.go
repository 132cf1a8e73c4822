/*
File    : dq/env/env_test.go
Author  : dq contributors
*/
package env

import (
	"testing"

	"github.com/dq-lang/dq/value"
	"github.com/stretchr/testify/assert"
)

func TestEnv_VarShadowing(t *testing.T) {
	root := New(nil)
	root.BindVar("x", value.Int(1))

	child := root.Child()
	child.BindVar("x", value.Int(2))

	v, ok := child.LookupVar("x")
	assert.True(t, ok)
	assert.Equal(t, float64(2), v.NumberValue())

	v, ok = root.LookupVar("x")
	assert.True(t, ok)
	assert.Equal(t, float64(1), v.NumberValue())
}

func TestEnv_VarNotFound(t *testing.T) {
	root := New(nil)
	_, ok := root.LookupVar("missing")
	assert.False(t, ok)
}

func TestEnv_FuncArityOverload(t *testing.T) {
	root := New(nil)
	root.BindFunc(&Closure{Name: "f", Params: nil})
	root.BindFunc(&Closure{Name: "f", Params: []string{"a"}})

	c, b, ok := root.LookupFunc("f", 0)
	assert.True(t, ok)
	assert.Nil(t, b)
	assert.Len(t, c.Params, 0)

	c, _, ok = root.LookupFunc("f", 1)
	assert.True(t, ok)
	assert.Len(t, c.Params, 1)

	_, _, ok = root.LookupFunc("f", 2)
	assert.False(t, ok)
}

func TestEnv_DefShadowsBuiltin(t *testing.T) {
	root := New(nil)
	root.BindBuiltin(&Builtin{Name: "length", Arity: 0})

	child := root.Child()
	child.BindFunc(&Closure{Name: "length", Params: nil})

	c, b, ok := child.LookupFunc("length", 0)
	assert.True(t, ok)
	assert.NotNil(t, c)
	assert.Nil(t, b)

	_, b, ok = root.LookupFunc("length", 0)
	assert.True(t, ok)
	assert.NotNil(t, b)
}

func TestEnv_InputSourceOnlyOnRoot(t *testing.T) {
	root := New(nil)
	calls := 0
	root.SetInputSource(func() (value.Value, bool, error) {
		calls++
		return value.Int(calls), true, nil
	})

	child := root.Child().Child()
	v, ok, err := child.NextInput()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(1), v.NumberValue())

	v, ok, err = child.NextInput()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(2), v.NumberValue())
}

func TestEnv_NoInputSource(t *testing.T) {
	root := New(nil)
	_, ok, err := root.NextInput()
	assert.False(t, ok)
	assert.Error(t, err)
}

/*
File    : dq/eval/eval_object.go
Author  : dq contributors

Object construction `{k1: E1, ...}`: a Cartesian product across entries,
one Object emitted per tuple.
*/
package eval

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func evalObject(node *parser.ObjectNode, input value.Value, e *env.Env, emit Emit) error {
	return buildObject(node.Entries, 0, value.NewObject(), input, e, emit)
}

func buildObject(entries []parser.ObjectEntry, i int, acc *value.Object, input value.Value, e *env.Env, emit Emit) error {
	if i == len(entries) {
		return emit(value.ObjectValue(acc.Clone()))
	}
	entry := entries[i]

	emitKeyed := func(key string, v value.Value) error {
		next := acc.Clone()
		next.Set(key, v)
		return buildObject(entries, i+1, next, input, e, emit)
	}

	if entry.KeyExpr != nil {
		return Eval(entry.KeyExpr, input, e, func(k value.Value) error {
			if !k.IsString() {
				return diag.TypeErr("object keys must be strings, got %s", k.TypeName())
			}
			return Eval(entry.Value, input, e, func(v value.Value) error {
				return emitKeyed(k.Str(), v)
			})
		})
	}

	return Eval(entry.Value, input, e, func(v value.Value) error {
		return emitKeyed(entry.KeyName, v)
	})
}

/*
File    : dq/builtins/common.go
Author  : dq contributors

Grounded on the earlier std/common.go: the always-available core
methods (length, type queries, error construction) registered first,
ahead of the more specialized concern files.
*/
package builtins

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	value0("length", func(v value.Value) (value.Value, error) {
		switch {
		case v.IsNull():
			return value.Int(0), nil
		case v.IsBool():
			return value.Value{}, diag.TypeErr("boolean has no length")
		case v.IsNumber():
			n := v.NumberValue()
			if n < 0 {
				n = -n
			}
			return value.Number(n), nil
		default:
			return value.Int(v.Len()), nil
		}
	})
	value0("size", func(v value.Value) (value.Value, error) { return value.Int(v.Len()), nil })

	value0("type", func(v value.Value) (value.Value, error) { return value.String(v.TypeName()), nil })
	value0("not", func(v value.Value) (value.Value, error) { return value.Bool(!v.Truthy()), nil })

	value0("keys", func(v value.Value) (value.Value, error) { return objKeys(v, true) })
	value0("keys_unsorted", func(v value.Value) (value.Value, error) { return objKeys(v, false) })

	register(&env.Builtin{Name: "values", Arity: 0, Call: func(_ env.Evaluator, input value.Value, _ []parser.Node, _ *env.Env, emit func(value.Value) error) error {
		if input.IsNull() {
			return nil
		}
		return emit(input)
	}})

	register(&env.Builtin{Name: "empty", Arity: 0, Call: func(_ env.Evaluator, _ value.Value, _ []parser.Node, _ *env.Env, _ func(value.Value) error) error {
		return nil
	}})

	register(&env.Builtin{Name: "error", Arity: 0, Call: func(_ env.Evaluator, input value.Value, _ []parser.Node, _ *env.Env, _ func(value.Value) error) error {
		if input.IsString() {
			return diag.UserErr("%s", input.Str())
		}
		return diag.UserErr("%s", input.Debug())
	}})
	register(&env.Builtin{Name: "error", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, _ func(value.Value) error) error {
		msg, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if msg.IsString() {
			return diag.UserErr("%s", msg.Str())
		}
		return diag.UserErr("%s", msg.Debug())
	}})

	register(&env.Builtin{Name: "has", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		key, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		switch {
		case input.IsObject() && key.IsString():
			_, ok := input.Obj().Get(key.Str())
			return emit(value.Bool(ok))
		case input.IsArray() && key.IsNumber():
			i := int(key.NumberValue())
			return emit(value.Bool(i >= 0 && i < len(input.Arr())))
		default:
			return diag.TypeErr("cannot check whether %s has a %s key", input.TypeName(), key.TypeName())
		}
	}})

	register(&env.Builtin{Name: "in", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		container, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		switch {
		case container.IsObject() && input.IsString():
			_, ok := container.Obj().Get(input.Str())
			return emit(value.Bool(ok))
		case container.IsArray() && input.IsNumber():
			i := int(input.NumberValue())
			return emit(value.Bool(i >= 0 && i < len(container.Arr())))
		default:
			return diag.TypeErr("cannot check whether %s is in %s", input.TypeName(), container.TypeName())
		}
	}})

	value0("add", func(v value.Value) (value.Value, error) { return addAll(v) })
}

func objKeys(v value.Value, sorted bool) (value.Value, error) {
	switch {
	case v.IsObject():
		ks := append([]string(nil), v.Obj().Keys()...)
		if sorted {
			for i := 1; i < len(ks); i++ {
				for j := i; j > 0 && ks[j-1] > ks[j]; j-- {
					ks[j-1], ks[j] = ks[j], ks[j-1]
				}
			}
		}
		out := make([]value.Value, len(ks))
		for i, k := range ks {
			out[i] = value.String(k)
		}
		return value.Array(out), nil
	case v.IsArray():
		out := make([]value.Value, len(v.Arr()))
		for i := range v.Arr() {
			out[i] = value.Int(i)
		}
		return value.Array(out), nil
	default:
		return value.Value{}, diag.TypeErr("%s has no keys", v.TypeName())
	}
}

// addAll implements `add`: the `+` fold of an array's elements, null for
// an empty array.
func addAll(v value.Value) (value.Value, error) {
	if !v.IsArray() {
		return value.Value{}, diag.TypeErr("cannot add elements of %s", v.TypeName())
	}
	elems := v.Arr()
	if len(elems) == 0 {
		return value.Null, nil
	}
	acc := elems[0]
	for _, e := range elems[1:] {
		sum, err := eval.Add(acc, e)
		if err != nil {
			return value.Value{}, err
		}
		acc = sum
	}
	return acc, nil
}

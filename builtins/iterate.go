/*
File    : dq/builtins/iterate.go
Author  : dq contributors

Iteration and bounded/unbounded recursion builtins: jq's lazy
recurse/until/while/repeat combinators, built directly on generator
recursion rather than a for-loop over a materialized slice, since
these operate on streams of unknown length.
*/
package builtins

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	value0("first", func(v value.Value) (value.Value, error) {
		if !v.IsArray() || len(v.Arr()) == 0 {
			return value.Value{}, diag.IndexErr("Cannot index array with index")
		}
		return v.Arr()[0], nil
	})
	value0("last", func(v value.Value) (value.Value, error) {
		if !v.IsArray() || len(v.Arr()) == 0 {
			return value.Value{}, diag.IndexErr("Cannot index array with index")
		}
		return v.Arr()[len(v.Arr())-1], nil
	})

	register(&env.Builtin{Name: "first", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		v, ok, err := firstOf(ev, args[0], input, callEnv)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return emit(v)
	}})

	register(&env.Builtin{Name: "last", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		vals, err := collectArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if len(vals) == 0 {
			return nil
		}
		return emit(vals[len(vals)-1])
	}})

	register(&env.Builtin{Name: "nth", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		nV, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		n := int(nV.NumberValue())
		if !input.IsArray() || n < 0 || n >= len(input.Arr()) {
			return emit(value.Null)
		}
		return emit(input.Arr()[n])
	}})

	register(&env.Builtin{Name: "nth", Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		nV, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		n := int(nV.NumberValue())
		if n < 0 {
			return diag.TypeErr("nth doesn't support negative indices")
		}
		i := 0
		var result value.Value
		found := false
		err = ev.Eval(args[1], input, callEnv, func(v value.Value) error {
			if i == n {
				result = v
				found = true
				return errStop
			}
			i++
			return nil
		})
		if err != nil && err != errStop {
			return err
		}
		if !found {
			return nil
		}
		return emit(result)
	}})

	register(&env.Builtin{Name: "limit", Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		nV, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		n := int(nV.NumberValue())
		if n <= 0 {
			return nil
		}
		count := 0
		err = ev.Eval(args[1], input, callEnv, func(v value.Value) error {
			if err := emit(v); err != nil {
				return err
			}
			count++
			if count >= n {
				return errStop
			}
			return nil
		})
		if err != nil && err != errStop {
			return err
		}
		return nil
	}})

	register(&env.Builtin{Name: "recurse", Arity: 0, Call: func(ev env.Evaluator, input value.Value, _ []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return recurseDefault(input, emit)
	}})
	register(&env.Builtin{Name: "recurse", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return recurseWith(ev, args[0], input, callEnv, emit)
	}})
	register(&env.Builtin{Name: "recurse", Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return recurseWithCond(ev, args[0], args[1], input, callEnv, emit)
	}})

	register(&env.Builtin{Name: "until", Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return untilLoop(ev, args[0], args[1], input, callEnv, emit)
	}})
	register(&env.Builtin{Name: "while", Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return whileLoop(ev, args[0], args[1], input, callEnv, emit)
	}})
	register(&env.Builtin{Name: "repeat", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return repeatLoop(ev, args[0], input, callEnv, emit)
	}})
}

func recurseDefault(input value.Value, emit func(value.Value) error) error {
	if err := emit(input); err != nil {
		return err
	}
	switch {
	case input.IsArray():
		for _, e := range input.Arr() {
			if err := recurseDefault(e, emit); err != nil {
				return err
			}
		}
	case input.IsObject():
		for _, k := range input.Obj().Keys() {
			v, _ := input.Obj().Get(k)
			if err := recurseDefault(v, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

func recurseWith(ev env.Evaluator, f parser.Node, input value.Value, e *env.Env, emit func(value.Value) error) error {
	if err := emit(input); err != nil {
		return err
	}
	return ev.Eval(f, input, e, func(v value.Value) error {
		return recurseWith(ev, f, v, e, emit)
	})
}

func recurseWithCond(ev env.Evaluator, f, cond parser.Node, input value.Value, e *env.Env, emit func(value.Value) error) error {
	if err := emit(input); err != nil {
		return err
	}
	ok, err := anyTruthy(ev, cond, input, e)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return ev.Eval(f, input, e, func(v value.Value) error {
		return recurseWithCond(ev, f, cond, v, e, emit)
	})
}

func untilLoop(ev env.Evaluator, cond, update parser.Node, cur value.Value, e *env.Env, emit func(value.Value) error) error {
	for {
		ok, err := anyTruthy(ev, cond, cur, e)
		if err != nil {
			return err
		}
		if ok {
			return emit(cur)
		}
		next, found, err := firstOf(ev, update, cur, e)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		cur = next
	}
}

func whileLoop(ev env.Evaluator, cond, update parser.Node, cur value.Value, e *env.Env, emit func(value.Value) error) error {
	ok, err := anyTruthy(ev, cond, cur, e)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := emit(cur); err != nil {
		return err
	}
	return ev.Eval(update, cur, e, func(v value.Value) error {
		return whileLoop(ev, cond, update, v, e, emit)
	})
}

func repeatLoop(ev env.Evaluator, f parser.Node, cur value.Value, e *env.Env, emit func(value.Value) error) error {
	if err := emit(cur); err != nil {
		return err
	}
	return ev.Eval(f, cur, e, func(v value.Value) error {
		return repeatLoop(ev, f, v, e, emit)
	})
}

/*
File    : dq/builtins/collections.go
Author  : dq contributors

Selection and mapping builtins, grounded on the earlier std/list.go
iteration helpers (findArray/someArray/everyArray/mapArray/filterArray),
generalized from array-only callbacks over the earlier object model to
the Value domain's Array and Object container kinds.
*/
package builtins

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	register(&env.Builtin{Name: "select", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return ev.Eval(args[0], input, callEnv, func(cond value.Value) error {
			if cond.Truthy() {
				return emit(input)
			}
			return nil
		})
	}})

	register(&env.Builtin{Name: "map", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		elems, err := iterElems(input)
		if err != nil {
			return err
		}
		var out []value.Value
		for _, elem := range elems {
			if err := ev.Eval(args[0], elem, callEnv, func(v value.Value) error {
				out = append(out, v)
				return nil
			}); err != nil {
				return err
			}
		}
		return emit(value.Array(out))
	}})

	register(&env.Builtin{Name: "map_values", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		switch {
		case input.IsArray():
			var out []value.Value
			for _, elem := range input.Arr() {
				v, ok, err := firstOf(ev, args[0], elem, callEnv)
				if err != nil {
					return err
				}
				if ok {
					out = append(out, v)
				}
			}
			return emit(value.Array(out))
		case input.IsObject():
			out := value.NewObject()
			for _, k := range input.Obj().Keys() {
				fv, _ := input.Obj().Get(k)
				v, ok, err := firstOf(ev, args[0], fv, callEnv)
				if err != nil {
					return err
				}
				if ok {
					out.Set(k, v)
				}
			}
			return emit(value.ObjectValue(out))
		default:
			return diag.TypeErr("cannot iterate over %s", input.TypeName())
		}
	}})

	value0("to_entries", func(v value.Value) (value.Value, error) {
		if !v.IsObject() {
			return value.Value{}, diag.TypeErr("%s has no keys", v.TypeName())
		}
		var out []value.Value
		for _, k := range v.Obj().Keys() {
			fv, _ := v.Obj().Get(k)
			entry := value.NewObject()
			entry.Set("key", value.String(k))
			entry.Set("value", fv)
			out = append(out, value.ObjectValue(entry))
		}
		return value.Array(out), nil
	})

	value0("from_entries", func(v value.Value) (value.Value, error) {
		if !v.IsArray() {
			return value.Value{}, diag.TypeErr("cannot build an object from %s", v.TypeName())
		}
		out := value.NewObject()
		for _, entry := range v.Arr() {
			if !entry.IsObject() {
				return value.Value{}, diag.TypeErr("cannot build an object entry from %s", entry.TypeName())
			}
			key := entryField(entry, "key", "k", "name", "Name", "Key", "K")
			val, ok := entryFieldOk(entry, "value", "v", "Value", "V")
			if !ok {
				val = value.Null
			}
			var keyStr string
			switch {
			case key.IsString():
				keyStr = key.Str()
			default:
				keyStr = key.Debug()
			}
			out.Set(keyStr, val)
		}
		return value.ObjectValue(out), nil
	})

	register(&env.Builtin{Name: "with_entries", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsObject() {
			return diag.TypeErr("%s has no keys", input.TypeName())
		}
		out := value.NewObject()
		for _, k := range input.Obj().Keys() {
			fv, _ := input.Obj().Get(k)
			entry := value.NewObject()
			entry.Set("key", value.String(k))
			entry.Set("value", fv)
			err := ev.Eval(args[0], value.ObjectValue(entry), callEnv, func(updated value.Value) error {
				if !updated.IsObject() {
					return diag.TypeErr("with_entries: expected an object entry, got %s", updated.TypeName())
				}
				key := entryField(updated, "key", "k", "name")
				val, ok := entryFieldOk(updated, "value", "v")
				if !ok {
					val = value.Null
				}
				out.Set(key.Str(), val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return emit(value.ObjectValue(out))
	}})

	value0("flatten", func(v value.Value) (value.Value, error) { return flatten(v, -1) })
	register(&env.Builtin{Name: "flatten", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		depthV, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		result, err := flatten(input, int(depthV.NumberValue()))
		if err != nil {
			return err
		}
		return emit(result)
	}})

	value0("any", func(v value.Value) (value.Value, error) {
		elems, err := iterElems(v)
		if err != nil {
			return value.Value{}, err
		}
		for _, e := range elems {
			if e.Truthy() {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})
	value0("all", func(v value.Value) (value.Value, error) {
		elems, err := iterElems(v)
		if err != nil {
			return value.Value{}, err
		}
		for _, e := range elems {
			if !e.Truthy() {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil
	})
	register(&env.Builtin{Name: "any", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		elems, err := iterElems(input)
		if err != nil {
			return err
		}
		for _, e := range elems {
			ok, err := anyTruthy(ev, args[0], e, callEnv)
			if err != nil {
				return err
			}
			if ok {
				return emit(value.Bool(true))
			}
		}
		return emit(value.Bool(false))
	}})
	register(&env.Builtin{Name: "all", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		elems, err := iterElems(input)
		if err != nil {
			return err
		}
		for _, e := range elems {
			ok, err := anyTruthy(ev, args[0], e, callEnv)
			if err != nil {
				return err
			}
			if !ok {
				return emit(value.Bool(false))
			}
		}
		return emit(value.Bool(true))
	}})

	register(&env.Builtin{Name: "range", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return rangeGen(ev, input, callEnv, nil, args[0], nil, emit)
	}})
	register(&env.Builtin{Name: "range", Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return rangeGen(ev, input, callEnv, args[0], args[1], nil, emit)
	}})
	register(&env.Builtin{Name: "range", Arity: 3, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return rangeGen(ev, input, callEnv, args[0], args[1], args[2], emit)
	}})
}

// iterElems returns an Array's elements, or an Object's values, matching
// the set of containers `.[]`/map/any/all iterate over.
func iterElems(v value.Value) ([]value.Value, error) {
	switch {
	case v.IsArray():
		return v.Arr(), nil
	case v.IsObject():
		out := make([]value.Value, 0, v.Obj().Len())
		for _, k := range v.Obj().Keys() {
			fv, _ := v.Obj().Get(k)
			out = append(out, fv)
		}
		return out, nil
	default:
		return nil, diag.TypeErr("cannot iterate over %s", v.TypeName())
	}
}

// firstOf evaluates n against input in e and returns its first value, if
// any; ok is false when the generator produced nothing, used by
// map_values' delete-on-empty policy.
func firstOf(ev env.Evaluator, n parser.Node, input value.Value, e *env.Env) (value.Value, bool, error) {
	var out value.Value
	found := false
	err := ev.Eval(n, input, e, func(v value.Value) error {
		out = v
		found = true
		return errStop
	})
	if err != nil && err != errStop {
		return value.Value{}, false, err
	}
	return out, found, nil
}

func entryField(v value.Value, names ...string) value.Value {
	got, _ := entryFieldOk(v, names...)
	return got
}

func entryFieldOk(v value.Value, names ...string) (value.Value, bool) {
	if !v.IsObject() {
		return value.Null, false
	}
	for _, n := range names {
		if fv, ok := v.Obj().Get(n); ok {
			return fv, true
		}
	}
	return value.Null, false
}

func flatten(v value.Value, depth int) (value.Value, error) {
	if !v.IsArray() {
		return value.Value{}, diag.TypeErr("cannot flatten %s", v.TypeName())
	}
	if depth < 0 {
		depth = 1 << 30
	}
	var out []value.Value
	var walk func(elems []value.Value, d int)
	walk = func(elems []value.Value, d int) {
		for _, e := range elems {
			if e.IsArray() && d > 0 {
				walk(e.Arr(), d-1)
				continue
			}
			out = append(out, e)
		}
	}
	walk(v.Arr(), depth)
	return value.Array(out), nil
}

func rangeGen(ev env.Evaluator, input value.Value, e *env.Env, fromN, toN, byN parser.Node, emit func(value.Value) error) error {
	fromVals := []value.Value{value.Int(0)}
	if fromN != nil {
		var err error
		fromVals, err = collectArg(ev, input, []parser.Node{fromN}, 0, e)
		if err != nil {
			return err
		}
	}
	for _, fromV := range fromVals {
		toVals, err := collectArg(ev, input, []parser.Node{toN}, 0, e)
		if err != nil {
			return err
		}
		for _, toV := range toVals {
			byVals := []value.Value{value.Int(1)}
			if byN != nil {
				byVals, err = collectArg(ev, input, []parser.Node{byN}, 0, e)
				if err != nil {
					return err
				}
			}
			for _, byV := range byVals {
				if err := rangeOne(fromV.NumberValue(), toV.NumberValue(), byV.NumberValue(), emit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func rangeOne(from, to, by float64, emit func(value.Value) error) error {
	if by == 0 {
		return nil
	}
	if by > 0 {
		for x := from; x < to; x += by {
			if err := emit(value.Number(x)); err != nil {
				return err
			}
		}
		return nil
	}
	for x := from; x > to; x += by {
		if err := emit(value.Number(x)); err != nil {
			return err
		}
	}
	return nil
}

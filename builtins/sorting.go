/*
File    : dq/builtins/sorting.go
Author  : dq contributors

Grounded on the earlier std/arrays.go sortArray/sortedArray/
csortArray family, generalized from in-place sorting of the earlier
object model to value.Compare's total order and to the `_by(f)`
key-extraction idiom.
*/
package builtins

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	value0("sort", func(v value.Value) (value.Value, error) {
		if !v.IsArray() {
			return value.Value{}, diag.TypeErr("%s cannot be sorted, as it is not an array", v.TypeName())
		}
		out := append([]value.Value(nil), v.Arr()...)
		insertionSort(out, func(a, b value.Value) bool { return value.Less(a, b) })
		return value.Array(out), nil
	})

	register(&env.Builtin{Name: "sort_by", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsArray() {
			return diag.TypeErr("%s cannot be sorted, as it is not an array", input.TypeName())
		}
		keyed, err := keyBy(ev, args[0], input.Arr(), callEnv)
		if err != nil {
			return err
		}
		insertionSortKeyed(keyed)
		out := make([]value.Value, len(keyed))
		for i, k := range keyed {
			out[i] = k.elem
		}
		return emit(value.Array(out))
	}})

	register(&env.Builtin{Name: "group_by", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsArray() {
			return diag.TypeErr("%s cannot be grouped, as it is not an array", input.TypeName())
		}
		keyed, err := keyBy(ev, args[0], input.Arr(), callEnv)
		if err != nil {
			return err
		}
		insertionSortKeyed(keyed)
		var groups []value.Value
		var cur []value.Value
		for i, k := range keyed {
			if i > 0 && !value.Equal(k.key, keyed[i-1].key) {
				groups = append(groups, value.Array(cur))
				cur = nil
			}
			cur = append(cur, k.elem)
		}
		if len(cur) > 0 {
			groups = append(groups, value.Array(cur))
		}
		return emit(value.Array(groups))
	}})

	value0("unique", func(v value.Value) (value.Value, error) {
		if !v.IsArray() {
			return value.Value{}, diag.TypeErr("%s cannot be sorted, as it is not an array", v.TypeName())
		}
		out := append([]value.Value(nil), v.Arr()...)
		insertionSort(out, func(a, b value.Value) bool { return value.Less(a, b) })
		var deduped []value.Value
		for i, e := range out {
			if i == 0 || !value.Equal(e, out[i-1]) {
				deduped = append(deduped, e)
			}
		}
		return value.Array(deduped), nil
	})

	register(&env.Builtin{Name: "unique_by", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsArray() {
			return diag.TypeErr("%s cannot be sorted, as it is not an array", input.TypeName())
		}
		keyed, err := keyBy(ev, args[0], input.Arr(), callEnv)
		if err != nil {
			return err
		}
		insertionSortKeyed(keyed)
		var out []value.Value
		for i, k := range keyed {
			if i == 0 || !value.Equal(k.key, keyed[i-1].key) {
				out = append(out, k.elem)
			}
		}
		return emit(value.Array(out))
	}})

	value0("reverse", func(v value.Value) (value.Value, error) {
		switch {
		case v.IsArray():
			src := v.Arr()
			out := make([]value.Value, len(src))
			for i, e := range src {
				out[len(src)-1-i] = e
			}
			return value.Array(out), nil
		case v.IsString():
			r := []rune(v.Str())
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return value.String(string(r)), nil
		default:
			return value.Value{}, diag.TypeErr("cannot reverse %s", v.TypeName())
		}
	})

	value0("min", func(v value.Value) (value.Value, error) { return extremum(v, true) })
	value0("max", func(v value.Value) (value.Value, error) { return extremum(v, false) })

	register(&env.Builtin{Name: "min_by", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return extremumBy(ev, input, args[0], callEnv, true, emit)
	}})
	register(&env.Builtin{Name: "max_by", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return extremumBy(ev, input, args[0], callEnv, false, emit)
	}})
}

type keyedElem struct {
	key  value.Value
	elem value.Value
}

func keyBy(ev env.Evaluator, n parser.Node, elems []value.Value, e *env.Env) ([]keyedElem, error) {
	out := make([]keyedElem, 0, len(elems))
	for _, elem := range elems {
		k, err := firstArg(ev, elem, []parser.Node{n}, 0, e)
		if err != nil {
			return nil, err
		}
		out = append(out, keyedElem{key: k, elem: elem})
	}
	return out, nil
}

// insertionSort is a small stable sort; arrays arising from query
// pipelines are not large enough to justify anything fancier, and
// stability matters for group_by/sort_by's tie-breaking.
func insertionSort(a []value.Value, less func(a, b value.Value) bool) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && less(a[j], a[j-1]); j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

func insertionSortKeyed(a []keyedElem) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && value.Less(a[j].key, a[j-1].key); j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

func extremum(v value.Value, wantMin bool) (value.Value, error) {
	if !v.IsArray() {
		return value.Value{}, diag.TypeErr("cannot compute extremum of %s", v.TypeName())
	}
	elems := v.Arr()
	if len(elems) == 0 {
		return value.Null, nil
	}
	best := elems[0]
	for _, e := range elems[1:] {
		if wantMin && value.Less(e, best) {
			best = e
		}
		if !wantMin && value.Less(best, e) {
			best = e
		}
	}
	return best, nil
}

func extremumBy(ev env.Evaluator, input value.Value, n parser.Node, e *env.Env, wantMin bool, emit func(value.Value) error) error {
	if !input.IsArray() {
		return diag.TypeErr("cannot compute extremum of %s", input.TypeName())
	}
	elems := input.Arr()
	if len(elems) == 0 {
		return emit(value.Null)
	}
	keyed, err := keyBy(ev, n, elems, e)
	if err != nil {
		return err
	}
	best := keyed[0]
	for _, k := range keyed[1:] {
		if wantMin && value.Less(k.key, best.key) {
			best = k
		}
		if !wantMin && value.Less(best.key, k.key) {
			best = k
		}
	}
	return emit(best.elem)
}

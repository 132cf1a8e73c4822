/*
File    : dq/builtins/search.go
Author  : dq contributors

Grounded on the earlier std/arrays.go containsArray/indexArray,
generalized from array-only element search to jq's deep containment
rule over strings/arrays/objects.
*/
package builtins

import (
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	register(&env.Builtin{Name: "contains", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		b, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		ok, err := containsValue(input, b)
		if err != nil {
			return err
		}
		return emit(value.Bool(ok))
	}})

	register(&env.Builtin{Name: "inside", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		outer, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		ok, err := containsValue(outer, input)
		if err != nil {
			return err
		}
		return emit(value.Bool(ok))
	}})

	register(&env.Builtin{Name: "indices", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		needle, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		idxs, err := findIndices(input, needle)
		if err != nil {
			return err
		}
		out := make([]value.Value, len(idxs))
		for i, x := range idxs {
			out[i] = value.Int(x)
		}
		return emit(value.Array(out))
	}})

	register(&env.Builtin{Name: "index", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		needle, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		idxs, err := findIndices(input, needle)
		if err != nil {
			return err
		}
		if len(idxs) == 0 {
			return emit(value.Null)
		}
		return emit(value.Int(idxs[0]))
	}})

	register(&env.Builtin{Name: "rindex", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		needle, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		idxs, err := findIndices(input, needle)
		if err != nil {
			return err
		}
		if len(idxs) == 0 {
			return emit(value.Null)
		}
		return emit(value.Int(idxs[len(idxs)-1]))
	}})
}

// containsValue implements jq's deep containment: strings by substring,
// arrays when every element of b is contained in some element of a,
// objects when every key of b exists in a with a containing value.
func containsValue(a, b value.Value) (bool, error) {
	switch {
	case a.IsString() && b.IsString():
		return strings.Contains(a.Str(), b.Str()), nil
	case a.IsArray() && b.IsArray():
		for _, be := range b.Arr() {
			found := false
			for _, ae := range a.Arr() {
				if ok, err := containsValue(ae, be); err == nil && ok {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		}
		return true, nil
	case a.IsObject() && b.IsObject():
		for _, k := range b.Obj().Keys() {
			bv, _ := b.Obj().Get(k)
			av, ok := a.Obj().Get(k)
			if !ok {
				return false, nil
			}
			contained, err := containsValue(av, bv)
			if err != nil {
				return false, err
			}
			if !contained {
				return false, nil
			}
		}
		return true, nil
	case a.Kind() == b.Kind():
		return value.Equal(a, b), nil
	default:
		return false, diag.TypeErr("%s and %s cannot have their containment checked", a.TypeName(), b.TypeName())
	}
}

func findIndices(haystack, needle value.Value) ([]int, error) {
	switch {
	case haystack.IsNull():
		return nil, nil
	case haystack.IsString() && needle.IsString():
		if needle.Str() == "" {
			return nil, nil
		}
		var out []int
		s := haystack.Str()
		n := needle.Str()
		for i := 0; i+len(n) <= len(s); i++ {
			if s[i:i+len(n)] == n {
				out = append(out, i)
			}
		}
		return out, nil
	case haystack.IsArray() && needle.IsArray():
		hs, ns := haystack.Arr(), needle.Arr()
		if len(ns) == 0 {
			return nil, nil
		}
		var out []int
		for i := 0; i+len(ns) <= len(hs); i++ {
			match := true
			for j := range ns {
				if !value.Equal(hs[i+j], ns[j]) {
					match = false
					break
				}
			}
			if match {
				out = append(out, i)
			}
		}
		return out, nil
	case haystack.IsArray():
		var out []int
		for i, e := range haystack.Arr() {
			if value.Equal(e, needle) {
				out = append(out, i)
			}
		}
		return out, nil
	default:
		return nil, diag.TypeErr("cannot index %s with %s", haystack.TypeName(), needle.TypeName())
	}
}

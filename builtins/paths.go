/*
File    : dq/builtins/paths.go
Author  : dq contributors

Path-introspection and structural-surgery builtins, built directly on
the eval package's PathsOf walker and the path package's
Get/Set/DeleteAll, since these operate on locations rather than values.
*/
package builtins

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/path"
	"github.com/dq-lang/dq/value"
)

func init() {
	register(&env.Builtin{Name: "path", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return eval.PathsOf(args[0], input, callEnv, func(hit eval.PathHit) error {
			return emit(hit.Path.ToValue())
		})
	}})

	register(&env.Builtin{Name: "paths", Arity: 0, Call: func(ev env.Evaluator, input value.Value, _ []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return eval.PathsOf(&parser.RecurseNode{}, input, callEnv, func(hit eval.PathHit) error {
			if len(hit.Path) == 0 {
				return nil
			}
			return emit(hit.Path.ToValue())
		})
	}})

	register(&env.Builtin{Name: "leaf_paths", Arity: 0, Call: func(ev env.Evaluator, input value.Value, _ []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		return eval.PathsOf(&parser.RecurseNode{}, input, callEnv, func(hit eval.PathHit) error {
			if len(hit.Path) == 0 || hit.Value.IsArray() || hit.Value.IsObject() {
				return nil
			}
			return emit(hit.Path.ToValue())
		})
	}})

	register(&env.Builtin{Name: "getpath", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		pv, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		p, err := path.FromValue(pv)
		if err != nil {
			return err
		}
		v, err := path.Get(input, p)
		if err != nil {
			return emit(value.Null)
		}
		return emit(v)
	}})

	register(&env.Builtin{Name: "setpath", Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		pv, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		newVal, err := firstArg(ev, input, args, 1, callEnv)
		if err != nil {
			return err
		}
		p, err := path.FromValue(pv)
		if err != nil {
			return err
		}
		out, err := path.Set(input, p, newVal)
		if err != nil {
			return err
		}
		return emit(out)
	}})

	register(&env.Builtin{Name: "delpaths", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		pv, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if !pv.IsArray() {
			return diag.TypeErr("delpaths argument must be an array of paths")
		}
		paths := make([]path.Path, len(pv.Arr()))
		for i, e := range pv.Arr() {
			p, err := path.FromValue(e)
			if err != nil {
				return err
			}
			paths[i] = p
		}
		out, err := path.DeleteAll(input, paths)
		if err != nil {
			return err
		}
		return emit(out)
	}})

	register(&env.Builtin{Name: "del", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		var paths []path.Path
		if err := eval.PathsOf(args[0], input, callEnv, func(hit eval.PathHit) error {
			paths = append(paths, hit.Path)
			return nil
		}); err != nil {
			return err
		}
		out, err := path.DeleteAll(input, paths)
		if err != nil {
			return err
		}
		return emit(out)
	}})
}

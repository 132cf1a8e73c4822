/*
File    : dq/builtins/env_input.go
Author  : dq contributors

Process-environment and record-stream access, grounded on an earlier design's
std/common.go environment accessors, rewired against the Env's
root-level input source (installed by the stream dispatcher) instead of
the earlier no-stream evaluation model.
*/
package builtins

import (
	"os"
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	value0("env", func(value.Value) (value.Value, error) { return envObject(), nil })

	register(&env.Builtin{Name: "input", Arity: 0, Call: func(ev env.Evaluator, input value.Value, _ []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		v, ok, err := callEnv.NextInput()
		if err != nil {
			return diag.UserErr("%s", err)
		}
		if !ok {
			return diag.UserErr("No more inputs")
		}
		return emit(v)
	}})

	register(&env.Builtin{Name: "inputs", Arity: 0, Call: func(ev env.Evaluator, input value.Value, _ []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		for {
			v, ok, err := callEnv.NextInput()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := emit(v); err != nil {
				return err
			}
		}
	}})
}

func envObject() value.Value {
	obj := value.NewObject()
	for _, kv := range os.Environ() {
		i := strings.IndexByte(kv, '=')
		if i < 0 {
			continue
		}
		obj.Set(kv[:i], value.String(kv[i+1:]))
	}
	return value.ObjectValue(obj)
}

// BindEnvVars installs the $ENV variable on root, the way an earlier design's
// cmd entrypoint seeds its REPL's initial scope. Called once by cmd/
// when constructing the root Env, since $ENV is a variable binding, not
// a callable builtin.
func BindEnvVars(root *env.Env) {
	root.BindVar("ENV", envObject())
}

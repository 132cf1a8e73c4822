/*
File    : dq/builtins/builtins.go
Author  : dq contributors

A global table of name/arity/callback triples, appended to at init()
by each concern file and installed into the running environment at
startup. Each callback carries an arity and a filter-vs-value argument
convention rather than a single fixed signature.
*/

// Package builtins implements dq's standard library: the ~80 primitive
// functions grouped as type/info, selection/mapping, sorting/grouping,
// searching, strings, regex, iteration/recursion, math, JSON
// round-trip, path utilities, environment and input consumption.
package builtins

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

// registry collects every Builtin registered by this package's init()
// functions, one per concern file, mirroring the earlier per-file
// xMethods slices merged into the global Builtins table.
var registry []*env.Builtin

func register(b *env.Builtin) {
	registry = append(registry, b)
}

// Register installs the standard library into root, which should be
// the global/root Environment created before evaluation starts.
func Register(root *env.Env) {
	for _, b := range registry {
		root.BindBuiltin(b)
	}
}

// errStop is eval.ErrStop under a package-local name: returned from an
// Emit callback to stop a generator after its first value, then
// swallowed before it can surface as a user-visible error. Sharing the
// evaluator's sentinel lets try/catch and `//` pass it through untouched.
var errStop = eval.ErrStop

// value0 registers a builtin with no query-language arguments that
// computes a single Value deterministically from the input alone (e.g.
// `length`, `keys`, `not`).
func value0(name string, fn func(value.Value) (value.Value, error)) {
	register(&env.Builtin{Name: name, Arity: 0, Call: func(_ env.Evaluator, input value.Value, _ []parser.Node, _ *env.Env, emit func(value.Value) error) error {
		v, err := fn(input)
		if err != nil {
			return err
		}
		return emit(v)
	}})
}

// firstArg evaluates args[i] against input in callEnv and returns only
// its first produced value, for builtins whose argument is consumed as
// a plain value rather than re-evaluated as a generator (e.g. the
// needle in `ltrimstr($s)`-style calls).
func firstArg(ev env.Evaluator, input value.Value, args []parser.Node, i int, callEnv *env.Env) (value.Value, error) {
	var out value.Value
	found := false
	err := ev.Eval(args[i], input, callEnv, func(v value.Value) error {
		out = v
		found = true
		return errStop
	})
	if err != nil && err != errStop {
		return value.Value{}, err
	}
	if !found {
		return value.Value{}, diag.TypeErr("argument produced no value")
	}
	return out, nil
}

// collectArg evaluates args[i] against input in callEnv, collecting
// every value it produces, for builtins that need a whole generator's
// output up front (e.g. `sort_by(f)`'s key per element).
func collectArg(ev env.Evaluator, input value.Value, args []parser.Node, i int, callEnv *env.Env) ([]value.Value, error) {
	var out []value.Value
	err := ev.Eval(args[i], input, callEnv, func(v value.Value) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

// anyTruthy reports whether evaluating n against input in e produces at
// least one truthy value, used by `select`/`any`/`all`-family builtins.
func anyTruthy(ev env.Evaluator, n parser.Node, input value.Value, e *env.Env) (bool, error) {
	found := false
	err := ev.Eval(n, input, e, func(v value.Value) error {
		if v.Truthy() {
			found = true
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return false, err
	}
	return found, nil
}

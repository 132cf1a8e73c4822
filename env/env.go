/*
File    : dq/env/env.go
Author  : dq contributors

Grounded on the earlier scope/scope.go: a linked chain of lexical
scopes searched from child to parent. Generalized from the earlier
interpreter's var/const/let variable model to the query language's two
independent binding kinds: `$name` value bindings introduced by
function parameters, `as`, and `reduce`/`foreach`, and (name,
arity)-keyed function bindings introduced by `def` and by the built-in
library.
*/
package env

import (
	"fmt"

	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

// FuncKey identifies a function binding by name and argument count,
// since dq (like jq) allows the same name to be defined at more than
// one arity.
type FuncKey struct {
	Name  string
	Arity int
}

// Closure is a user-defined function: its parameter list, body, and the
// Env captured at the point of definition, which is what makes `def`
// behave as a closure rather than a static, globally-scoped procedure.
type Closure struct {
	Name   string
	Params []string
	Body   parser.Node
	Env    *Env
}

// Builtin is a library function implemented in Go rather than as a
// parsed Closure. Args are unevaluated argument expression nodes (some
// builtins, like filter-valued arguments to map/reduce, need to
// evaluate them once per input rather than once up front) together with
// the Env that should be used to evaluate them.
type Builtin struct {
	Name string
	// Arity is the number of query-language arguments expected (0 for
	// e.g. `length`, 2 for e.g. `limit(n; f)`).
	Arity int
	Call  func(ev Evaluator, input value.Value, args []parser.Node, callEnv *Env, emit func(value.Value) error) error
}

// Evaluator is the minimal surface env needs from the eval package,
// broken out as an interface here so that env does not import eval
// (eval imports env, not the other way around) — builtins that need to
// recurse into the generator evaluator (map, select, reduce, ...) do so
// through this handle.
type Evaluator interface {
	Eval(n parser.Node, input value.Value, e *Env, emit func(value.Value) error) error
}

// Env is one lexical scope: a set of variable bindings, a set of
// function bindings, and a parent pointer. nil marks the root.
type Env struct {
	vars    map[string]value.Value
	funcs   map[FuncKey]*Closure
	natives map[FuncKey]*Builtin
	parent  *Env

	// nextInput is only ever set on the root Env (by SetInputSource,
	// once, before evaluation starts); it backs the input/inputs
	// builtins' access to the stream dispatcher's record source.
	nextInput func() (value.Value, bool, error)
}

// New creates a scope nested under parent (nil for the root/global
// environment that holds the built-in library).
func New(parent *Env) *Env {
	return &Env{parent: parent}
}

// Child is shorthand for New(e), reading better at call sites that
// nest a fresh scope for a pipe stage or function call.
func (e *Env) Child() *Env {
	return New(e)
}

// LookupVar searches this scope and its ancestors for a `$name`
// binding.
func (e *Env) LookupVar(name string) (value.Value, bool) {
	for s := e; s != nil; s = s.parent {
		if s.vars != nil {
			if v, ok := s.vars[name]; ok {
				return v, true
			}
		}
	}
	return value.Null, false
}

// BindVar introduces or shadows a `$name` binding in this scope only.
// Rebinding the same name in the same Env replaces the earlier value;
// callers that need a new binding per step (reduce/foreach, `as`) bind
// into a fresh Child() instead, so outer scopes never see the change.
func (e *Env) BindVar(name string, v value.Value) {
	if e.vars == nil {
		e.vars = make(map[string]value.Value)
	}
	e.vars[name] = v
}

// LookupFunc searches this scope and its ancestors for a (name, arity)
// function binding, checking user-defined closures before the native
// library so that a local `def` can shadow a built-in of the same
// name/arity.
//
// Parameters:
//   - name: the function's name as written at the call site.
//   - arity: the number of arguments at the call site; dq resolves
//     functions by (name, arity) pair, so `f` and `f(x)` are unrelated
//     bindings even when both are defined.
//
// Returns:
//   - *Closure, nil, true: a user-defined `def` matched.
//   - nil, *Builtin, true: a library function matched.
//   - nil, nil, false: no binding exists at this (name, arity).
func (e *Env) LookupFunc(name string, arity int) (*Closure, *Builtin, bool) {
	key := FuncKey{Name: name, Arity: arity}
	for s := e; s != nil; s = s.parent {
		if s.funcs != nil {
			if c, ok := s.funcs[key]; ok {
				return c, nil, true
			}
		}
		if s.natives != nil {
			if b, ok := s.natives[key]; ok {
				return nil, b, true
			}
		}
	}
	return nil, nil, false
}

// BindFunc installs a user-defined closure in this scope. The closure's
// captured Env is set by the caller (typically to a scope that also
// contains the binding itself, so recursive defs resolve).
func (e *Env) BindFunc(c *Closure) {
	if e.funcs == nil {
		e.funcs = make(map[FuncKey]*Closure)
	}
	e.funcs[FuncKey{Name: c.Name, Arity: len(c.Params)}] = c
}

// BindBuiltin installs a native Go implementation, used once by the
// builtins package when constructing the root/global Env.
func (e *Env) BindBuiltin(b *Builtin) {
	if e.natives == nil {
		e.natives = make(map[FuncKey]*Builtin)
	}
	e.natives[FuncKey{Name: b.Name, Arity: b.Arity}] = b
}

// Root walks to the outermost ancestor, used by input/inputs and other
// builtins that need to reach process-global state (the record source)
// stashed in the root Env by the stream dispatcher.
func (e *Env) Root() *Env {
	s := e
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// SetInputSource installs the callback input/inputs draw the next
// stream record from.
//
// Parameters:
//   - next: called once per record requested; returns the record, true
//     while the source has data, and (Null, false, nil) once exhausted.
//
// Call this once on the root Env, before evaluation starts — it always
// installs on the outermost ancestor via Root(), so it is safe to call
// from any Env in the chain.
func (e *Env) SetInputSource(next func() (value.Value, bool, error)) {
	e.Root().nextInput = next
}

// NextInput draws the next record from the installed input source, if
// any. The second return is false once the source is exhausted.
func (e *Env) NextInput() (value.Value, bool, error) {
	root := e.Root()
	if root.nextInput == nil {
		return value.Null, false, fmt.Errorf("no more inputs")
	}
	return root.nextInput()
}

/*
File    : dq/eval/eval_funcdef.go
Author  : dq contributors

Function definitions and calls: resolution by (name,
arity); filter parameters are bound as call-by-name thunks (zero-arity
functions pointing at the unevaluated argument expression, evaluated in
the caller's scope on each reference); `$name`-declared value parameters
are bound to the first value of their argument instead, a documented
simplification of jq's full multi-value `as`-sugar (see DESIGN.md,
Open Question decisions, "$name-declared value parameters").
*/
package eval

import (
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func evalFuncDef(node *parser.FuncDefNode, input value.Value, e *env.Env, emit Emit) error {
	defEnv := e.Child()
	defEnv.BindFunc(&env.Closure{
		Name:   node.Name,
		Params: node.Params,
		Body:   node.Body,
		Env:    defEnv,
	})
	return Eval(node.Rest, input, defEnv, emit)
}

func evalFuncCall(node *parser.FuncCallNode, input value.Value, e *env.Env, emit Emit) error {
	closure, builtin, ok := e.LookupFunc(node.Name, len(node.Args))
	if !ok {
		return diag.TypeErr("%s/%d is not defined", node.Name, len(node.Args))
	}
	if builtin != nil {
		return builtin.Call(Interpreter{}, input, node.Args, e, emit)
	}

	callEnv := closure.Env.Child()
	for i, param := range closure.Params {
		argNode := node.Args[i]
		if strings.HasPrefix(param, "$") {
			v, err := firstValue(argNode, input, e)
			if err != nil {
				return err
			}
			callEnv.BindVar(param[1:], v)
			continue
		}
		callEnv.BindFunc(&env.Closure{Name: param, Body: argNode, Env: e})
	}
	return Eval(closure.Body, input, callEnv, emit)
}

// firstValue evaluates n against input in e and returns only its first
// produced value, used for `$name` value-parameter binding.
func firstValue(n parser.Node, input value.Value, e *env.Env) (value.Value, error) {
	var result value.Value
	found := false
	err := Eval(n, input, e, func(v value.Value) error {
		result = v
		found = true
		return ErrStop
	})
	if err != nil && err != ErrStop {
		return value.Value{}, err
	}
	if !found {
		return value.Value{}, diag.TypeErr("argument produced no value")
	}
	return result, nil
}

/*
File    : dq/eval/eval_control.go
Author  : dq contributors

try/catch, label/break, reduce and foreach — the non-compositional
control constructs of the query language.
*/
package eval

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

// evalTry runs Body; any error except Break and the internal ErrStop
// sentinel is swallowed and, if a Catch clause is present, re-evaluated
// with the error's message as input. A missing Catch silently discards
// the error.
func evalTry(node *parser.TryNode, input value.Value, e *env.Env, emit Emit) error {
	err := Eval(node.Body, input, e, emit)
	if err == nil || err == ErrStop {
		return err
	}
	if _, isBreak := diag.IsBreak(err); isBreak {
		return err
	}
	if node.Catch == nil {
		return nil
	}
	msg := err.Error()
	if d, ok := err.(*diag.Diagnostic); ok {
		msg = d.Message
	}
	return Eval(node.Catch, value.String(msg), e, emit)
}

// evalLabel runs Body; a `break $name` with a matching name unwinds to
// here and stops producing further output (not an error to the caller);
// any other Break or error propagates unchanged.
func evalLabel(node *parser.LabelNode, input value.Value, e *env.Env, emit Emit) error {
	child := e.Child()
	child.BindVar(labelKey(node.Name), value.Bool(true))
	err := Eval(node.Body, input, child, emit)
	if b, isBreak := diag.IsBreak(err); isBreak && b.Label == node.Name {
		return nil
	}
	return err
}

// labelKey namespaces label bindings away from `$name` variable
// bindings so a label and a same-named variable can coexist.
func labelKey(name string) string { return "\x00label:" + name }

// evalReduce implements `reduce SOURCE as PATTERN (INIT; STEP)`: INIT is
// evaluated once (first value only, per jq's reduce semantics); for each
// value produced by SOURCE the accumulator becomes the first value of
// STEP evaluated with PATTERN bound.
func evalReduce(node *parser.ReduceNode, input value.Value, e *env.Env, emit Emit) error {
	var acc value.Value
	gotInit := false
	if err := Eval(node.Init, input, e, func(v value.Value) error {
		if gotInit {
			return ErrStop
		}
		acc = v
		gotInit = true
		return ErrStop
	}); err != nil && err != ErrStop {
		return err
	}
	if !gotInit {
		acc = value.Null
	}

	err := Eval(node.Source, input, e, func(v value.Value) error {
		child := e.Child()
		if err := bindPattern(node.Pattern, v, child); err != nil {
			return err
		}
		gotStep := false
		stepErr := Eval(node.Step, acc, child, func(sv value.Value) error {
			if gotStep {
				return ErrStop
			}
			acc = sv
			gotStep = true
			return ErrStop
		})
		if stepErr != nil && stepErr != ErrStop {
			return stepErr
		}
		if !gotStep {
			acc = value.Null
		}
		return nil
	})
	if err != nil {
		return err
	}
	return emit(acc)
}

// evalForeach implements `foreach SOURCE as PATTERN (INIT; STEP;
// EXTRACT)`: identical accumulator setup to reduce, but every value of
// EXTRACT (defaulting to the accumulator itself) is emitted after each
// step.
func evalForeach(node *parser.ForeachNode, input value.Value, e *env.Env, emit Emit) error {
	var acc value.Value
	gotInit := false
	if err := Eval(node.Init, input, e, func(v value.Value) error {
		if gotInit {
			return ErrStop
		}
		acc = v
		gotInit = true
		return ErrStop
	}); err != nil && err != ErrStop {
		return err
	}
	if !gotInit {
		acc = value.Null
	}

	return Eval(node.Source, input, e, func(v value.Value) error {
		child := e.Child()
		if err := bindPattern(node.Pattern, v, child); err != nil {
			return err
		}
		gotStep := false
		stepErr := Eval(node.Step, acc, child, func(sv value.Value) error {
			if gotStep {
				return ErrStop
			}
			acc = sv
			gotStep = true
			return ErrStop
		})
		if stepErr != nil && stepErr != ErrStop {
			return stepErr
		}
		if !gotStep {
			acc = value.Null
		}
		if node.Extract != nil {
			return Eval(node.Extract, acc, child, emit)
		}
		return emit(acc)
	})
}

/*
File    : dq/eval/eval_binary.go
Author  : dq contributors

Dispatch for every BinaryNode operator: pipe, comma, arithmetic,
comparison, logical and/or, and the alternative `//` operator, per
its composition rules.
*/
package eval

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func evalBinary(node *parser.BinaryNode, input value.Value, e *env.Env, emit Emit) error {
	switch node.Op {
	case "|":
		return Eval(node.Left, input, e, func(v value.Value) error {
			return Eval(node.Right, v, e, emit)
		})

	case ",":
		if err := Eval(node.Left, input, e, emit); err != nil {
			return err
		}
		return Eval(node.Right, input, e, emit)

	case "and":
		return Eval(node.Left, input, e, func(lv value.Value) error {
			if !lv.Truthy() {
				return emit(value.Bool(false))
			}
			return Eval(node.Right, input, e, func(rv value.Value) error {
				return emit(value.Bool(rv.Truthy()))
			})
		})

	case "or":
		return Eval(node.Left, input, e, func(lv value.Value) error {
			if lv.Truthy() {
				return emit(value.Bool(true))
			}
			return Eval(node.Right, input, e, func(rv value.Value) error {
				return emit(value.Bool(rv.Truthy()))
			})
		})

	case "//":
		return evalAlternative(node, input, e, emit)

	case "+", "-", "*", "/", "%":
		return Eval(node.Left, input, e, func(lv value.Value) error {
			return Eval(node.Right, input, e, func(rv value.Value) error {
				result, err := arith(node.Op, lv, rv)
				if err != nil {
					return err
				}
				return emit(result)
			})
		})

	case "==", "!=", "<", "<=", ">", ">=":
		return Eval(node.Left, input, e, func(lv value.Value) error {
			return Eval(node.Right, input, e, func(rv value.Value) error {
				return emit(value.Bool(compareOp(node.Op, lv, rv)))
			})
		})

	default:
		return diag.New(diag.TypeError, "internal error: unhandled operator %q", node.Op)
	}
}

// evalAlternative implements `A // B`: every non-null, non-false value
// from A; if A produced none (including if A errored, Break excepted),
// fall back to B.
func evalAlternative(node *parser.BinaryNode, input value.Value, e *env.Env, emit Emit) error {
	produced := false
	err := Eval(node.Left, input, e, func(v value.Value) error {
		if !v.Truthy() {
			return nil
		}
		produced = true
		return emit(v)
	})
	if err != nil {
		if _, isBreak := diag.IsBreak(err); isBreak {
			return err
		}
		if err == ErrStop {
			return err
		}
		// Any other error from the left side is swallowed: "no values".
		err = nil
	}
	if produced {
		return err
	}
	return Eval(node.Right, input, e, emit)
}

func compareOp(op string, a, b value.Value) bool {
	switch op {
	case "==":
		return value.Equal(a, b)
	case "!=":
		return !value.Equal(a, b)
	case "<":
		return value.Compare(a, b) < 0
	case "<=":
		return value.Compare(a, b) <= 0
	case ">":
		return value.Compare(a, b) > 0
	case ">=":
		return value.Compare(a, b) >= 0
	}
	return false
}

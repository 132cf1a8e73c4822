/*
File    : dq/eval/eval_assign.go
Author  : dq contributors

The four assignment-operator families (`=`, `|=`, and the
arithmetic-update shorthands), built on PathsOf and the path package's
structural Set/Delete.
*/
package eval

import (
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/path"
	"github.com/dq-lang/dq/value"
)

func evalAssign(node *parser.AssignNode, input value.Value, e *env.Env, emit Emit) error {
	switch node.Op {
	case "=":
		return evalPlainAssign(node, input, e, emit)
	case "|=":
		return evalUpdateAssign(node.Target, node.Value, input, e, emit)
	case "+=", "-=", "*=", "/=", "%=", "//=":
		op := strings.TrimSuffix(node.Op, "=")
		synth := &parser.BinaryNode{Op: op, Left: &parser.IdentityNode{}, Right: node.Value}
		return evalUpdateAssign(node.Target, synth, input, e, emit)
	default:
		return diag.TypeErr("unknown assignment operator %q", node.Op)
	}
}

// evalPlainAssign implements `P = E`: paths are computed once against
// the original input; for each value of E, emit one output with every
// such path set to that value.
func evalPlainAssign(node *parser.AssignNode, input value.Value, e *env.Env, emit Emit) error {
	var hits []PathHit
	if err := PathsOf(node.Target, input, e, func(h PathHit) error {
		hits = append(hits, h)
		return nil
	}); err != nil {
		return err
	}

	return Eval(node.Value, input, e, func(rhs value.Value) error {
		cur := input
		for _, h := range hits {
			updated, err := path.Set(cur, h.Path, rhs)
			if err != nil {
				return err
			}
			cur = updated
		}
		return emit(cur)
	})
}

// evalUpdateAssign implements `P |= E` and, via the `+=`-family
// rewrite into `P |= . OP E`, the other update-assignment operators.
// Each path is updated with the first value valueExpr produces from the
// value currently at that path; a path for which valueExpr produces no
// value is deleted instead, matching jq's "update to nothing deletes"
// rule.
func evalUpdateAssign(target, valueExpr parser.Node, input value.Value, e *env.Env, emit Emit) error {
	var hits []PathHit
	if err := PathsOf(target, input, e, func(h PathHit) error {
		hits = append(hits, h)
		return nil
	}); err != nil {
		return err
	}

	cur := input
	var toDelete []path.Path
	for _, h := range hits {
		curVal, err := path.Get(cur, h.Path)
		if err != nil {
			return err
		}
		found := false
		uerr := Eval(valueExpr, curVal, e, func(uv value.Value) error {
			found = true
			updated, serr := path.Set(cur, h.Path, uv)
			if serr != nil {
				return serr
			}
			cur = updated
			return ErrStop
		})
		if uerr != nil && uerr != ErrStop {
			return uerr
		}
		if !found {
			toDelete = append(toDelete, h.Path)
		}
	}
	if len(toDelete) > 0 {
		updated, err := path.DeleteAll(cur, toDelete)
		if err != nil {
			return err
		}
		cur = updated
	}
	return emit(cur)
}

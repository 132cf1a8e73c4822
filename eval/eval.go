/*
File    : dq/eval/eval.go
Author  : dq contributors

A generator-model interpreter: every expression produces a finite
ordered sequence of Values, modeled as a push-style Gen/Emit pair
(an Open Question resolution, recorded in DESIGN.md) rather than a
literal pull iterator.
*/

// Package eval implements the query language's generator-model
// evaluator: given an AST node, an input Value, and an Environment, it
// produces zero or more result Values in the order the language's
// composition rules prescribe.
package eval

import (
	"fmt"
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

// Emit is called once per value a generator produces. A non-nil return
// aborts the generator immediately and is propagated to its caller —
// this covers both genuine errors (diag.Diagnostic, diag.Break) and the
// internal ErrStop sentinel consumers like first/limit use to stop
// early without that being a user-visible error.
type Emit func(value.Value) error

// Gen is a compiled generator: given a sink, produce some values into
// it, returning the first non-nil signal encountered (or nil on normal
// completion).
type Gen func(Emit) error

// ErrStop is a private early-termination signal: builtins that only
// need a prefix of a generator's output (first, limit, any, until, ...)
// return it from their Emit callback to stop production, then swallow
// it themselves rather than surfacing it as an error.
var ErrStop = fmt.Errorf("dq: internal stop signal")

// Interpreter is a stateless handle satisfying env.Evaluator, passed to
// builtins so they can recurse into arbitrary filter arguments without
// builtins importing eval (which would cycle, since env.Evaluator is
// how eval's Interpreter is handed down instead).
type Interpreter struct{}

// Eval implements env.Evaluator.
func (Interpreter) Eval(n parser.Node, input value.Value, e *env.Env, emit func(value.Value) error) error {
	return Eval(n, input, e, emit)
}

// Eval is the evaluator's single entry point: it dispatches on the
// concrete Node type and emits every value that node's composition
// rule defines for it.
func Eval(n parser.Node, input value.Value, e *env.Env, emit Emit) error {
	switch node := n.(type) {

	case *parser.IdentityNode:
		return emit(input)

	case *parser.RecurseNode:
		return evalRecurse(input, emit)

	case *parser.LiteralNode:
		return emit(node.Value)

	case *parser.StringNode:
		return evalString(node, input, e, emit)

	case *parser.FieldNode:
		return evalField(node, input, e, emit)

	case *parser.IndexNode:
		return evalIndex(node, input, e, emit)

	case *parser.SliceNode:
		return evalSlice(node, input, e, emit)

	case *parser.IterateNode:
		return evalIterate(node, input, e, emit)

	case *parser.ArrayNode:
		return evalArray(node, input, e, emit)

	case *parser.ObjectNode:
		return evalObject(node, input, e, emit)

	case *parser.BinaryNode:
		return evalBinary(node, input, e, emit)

	case *parser.UnaryMinusNode:
		return evalUnaryMinus(node, input, e, emit)

	case *parser.VarNode:
		v, ok := e.LookupVar(node.Name)
		if !ok {
			return diag.New(diag.TypeError, "$%s is not defined", node.Name)
		}
		return emit(v)

	case *parser.FormatNode:
		return evalFormat(node, input, e, emit)

	case *parser.IfNode:
		return evalIf(node, input, e, emit)

	case *parser.ReduceNode:
		return evalReduce(node, input, e, emit)

	case *parser.ForeachNode:
		return evalForeach(node, input, e, emit)

	case *parser.TryNode:
		return evalTry(node, input, e, emit)

	case *parser.LabelNode:
		return evalLabel(node, input, e, emit)

	case *parser.BreakNode:
		return &diag.Break{Label: node.Name}

	case *parser.BindingNode:
		return evalBinding(node, input, e, emit)

	case *parser.FuncDefNode:
		return evalFuncDef(node, input, e, emit)

	case *parser.FuncCallNode:
		return evalFuncCall(node, input, e, emit)

	case *parser.AssignNode:
		return evalAssign(node, input, e, emit)

	default:
		return diag.New(diag.TypeError, "internal error: unhandled node type %T", n)
	}
}

// evalRecurse implements `..`: input itself, then a depth-first walk of
// every sub-value (array elements in order, object values in insertion
// order).
func evalRecurse(input value.Value, emit Emit) error {
	if err := emit(input); err != nil {
		return err
	}
	switch {
	case input.IsArray():
		for _, elem := range input.Arr() {
			if err := evalRecurse(elem, emit); err != nil {
				return err
			}
		}
	case input.IsObject():
		for _, k := range input.Obj().Keys() {
			v, _ := input.Obj().Get(k)
			if err := evalRecurse(v, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

// evalString evaluates an (possibly interpolated) string literal: the
// Cartesian product of every interpolated sub-expression's outputs,
// rightmost varying fastest, each converted with tostring semantics.
func evalString(node *parser.StringNode, input value.Value, e *env.Env, emit Emit) error {
	return buildString(node.Parts, 0, "", input, e, emit)
}

func buildString(parts []parser.StringPart, i int, acc string, input value.Value, e *env.Env, emit Emit) error {
	if i == len(parts) {
		return emit(value.String(acc))
	}
	part := parts[i]
	if part.Expr == nil {
		return buildString(parts, i+1, acc+part.Literal, input, e, emit)
	}
	return Eval(part.Expr, input, e, func(v value.Value) error {
		return buildString(parts, i+1, acc+tostring(v), input, e, emit)
	})
}

// tostring renders v the way string interpolation and the `tostring`
// builtin do: strings pass through unquoted, everything else uses its
// compact Debug form.
func tostring(v value.Value) string {
	if v.IsString() {
		return v.Str()
	}
	return v.Debug()
}

// evalField implements `.name`/`.name?`.
func evalField(node *parser.FieldNode, input value.Value, e *env.Env, emit Emit) error {
	return Eval(node.Target, input, e, func(v value.Value) error {
		switch {
		case v.IsObject():
			val, ok := v.Obj().Get(node.Name)
			if !ok {
				val = value.Null
			}
			return emit(val)
		case v.IsNull():
			return emit(value.Null)
		default:
			if node.Optional {
				return nil
			}
			return diag.TypeErr("cannot index %s with %q", v.TypeName(), node.Name)
		}
	})
}

// evalIndex implements `.[E]`/`.[E]?`.
func evalIndex(node *parser.IndexNode, input value.Value, e *env.Env, emit Emit) error {
	return Eval(node.Target, input, e, func(target value.Value) error {
		return Eval(node.Index, input, e, func(idx value.Value) error {
			result, err := indexValue(target, idx)
			if err != nil {
				if node.Optional {
					return nil
				}
				return err
			}
			return emit(result)
		})
	})
}

func indexValue(target, idx value.Value) (value.Value, error) {
	switch {
	case target.IsNull():
		return value.Null, nil
	case target.IsArray() && idx.IsNumber():
		arr := target.Arr()
		i := int(idx.NumberValue())
		if i < 0 {
			i += len(arr)
		}
		if i < 0 || i >= len(arr) {
			return value.Null, nil
		}
		return arr[i], nil
	case target.IsObject() && idx.IsString():
		v, ok := target.Obj().Get(idx.Str())
		if !ok {
			return value.Null, nil
		}
		return v, nil
	default:
		return value.Value{}, diag.TypeErr("cannot index %s with %s", target.TypeName(), idx.TypeName())
	}
}

// evalSlice implements `.[a:b]` on Array or String.
func evalSlice(node *parser.SliceNode, input value.Value, e *env.Env, emit Emit) error {
	return Eval(node.Target, input, e, func(target value.Value) error {
		return evalSliceBound(node.Start, input, e, func(startV value.Value, hasStart bool) error {
			return evalSliceBoundEnd(node.End, input, e, func(endV value.Value, hasEnd bool) error {
				result, err := sliceValue(target, startV, hasStart, endV, hasEnd)
				if err != nil {
					if node.Optional {
						return nil
					}
					return err
				}
				return emit(result)
			})
		})
	})
}

func evalSliceBound(n parser.Node, input value.Value, e *env.Env, cont func(value.Value, bool) error) error {
	if n == nil {
		return cont(value.Value{}, false)
	}
	return Eval(n, input, e, func(v value.Value) error { return cont(v, true) })
}

func evalSliceBoundEnd(n parser.Node, input value.Value, e *env.Env, cont func(value.Value, bool) error) error {
	return evalSliceBound(n, input, e, cont)
}

func sliceValue(target, start value.Value, hasStart bool, end value.Value, hasEnd bool) (value.Value, error) {
	var length int
	switch {
	case target.IsNull():
		return value.Null, nil
	case target.IsArray():
		length = len(target.Arr())
	case target.IsString():
		length = len([]rune(target.Str()))
	default:
		return value.Value{}, diag.TypeErr("cannot slice %s", target.TypeName())
	}

	a, b := 0, length
	if hasStart {
		a = clampIndex(int(start.NumberValue()), length)
	}
	if hasEnd {
		b = clampIndex(int(end.NumberValue()), length)
	}
	if b < a {
		b = a
	}

	if target.IsArray() {
		return value.Array(append([]value.Value(nil), target.Arr()[a:b]...)), nil
	}
	runes := []rune(target.Str())
	return value.String(string(runes[a:b])), nil
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

// evalIterate implements `.[]`.
func evalIterate(node *parser.IterateNode, input value.Value, e *env.Env, emit Emit) error {
	return Eval(node.Target, input, e, func(v value.Value) error {
		switch {
		case v.IsArray():
			for _, elem := range v.Arr() {
				if err := emit(elem); err != nil {
					return err
				}
			}
			return nil
		case v.IsObject():
			for _, k := range v.Obj().Keys() {
				val, _ := v.Obj().Get(k)
				if err := emit(val); err != nil {
					return err
				}
			}
			return nil
		case v.IsNull():
			if node.Optional {
				return nil
			}
			return diag.TypeErr("cannot iterate over null")
		default:
			if node.Optional {
				return nil
			}
			return diag.TypeErr("cannot iterate over %s", v.TypeName())
		}
	})
}

// evalArray implements `[E]`, collecting every value of Body into one
// Array. Body is nil for the empty array literal.
func evalArray(node *parser.ArrayNode, input value.Value, e *env.Env, emit Emit) error {
	if node.Body == nil {
		return emit(value.EmptyArray())
	}
	var elems []value.Value
	err := Eval(node.Body, input, e, func(v value.Value) error {
		elems = append(elems, v)
		return nil
	})
	if err != nil {
		return err
	}
	return emit(value.Array(elems))
}

// evalIf implements `if COND then THEN (elif...)* (else ELSE)? end`; the
// condition may itself be a generator, producing one branch result per
// condition value.
func evalIf(node *parser.IfNode, input value.Value, e *env.Env, emit Emit) error {
	return Eval(node.Cond, input, e, func(cond value.Value) error {
		if cond.Truthy() {
			return Eval(node.Then, input, e, emit)
		}
		for _, elif := range node.Elifs {
			matched := false
			err := Eval(elif.Cond, input, e, func(c value.Value) error {
				if c.Truthy() {
					matched = true
					return Eval(elif.Then, input, e, emit)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if matched {
				return nil
			}
		}
		if node.Else != nil {
			return Eval(node.Else, input, e, emit)
		}
		return emit(input)
	})
}

// evalUnaryMinus implements prefix `-E`.
func evalUnaryMinus(node *parser.UnaryMinusNode, input value.Value, e *env.Env, emit Emit) error {
	return Eval(node.Operand, input, e, func(v value.Value) error {
		if !v.IsNumber() {
			return diag.TypeErr("%s cannot be negated", v.TypeName())
		}
		return emit(value.Number(-v.NumberValue()))
	})
}

// joinStrings is a small shared helper used by the @csv/@tsv formatters
// in this package's format helpers.
func joinStrings(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

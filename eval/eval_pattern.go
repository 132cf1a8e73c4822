/*
File    : dq/eval/eval_pattern.go
Author  : dq contributors

Destructuring pattern matching for `as`, `reduce ... as`, and
`foreach ... as`: simple variable, array pattern, object pattern (with
computed-key support), binding into a child Environment.
*/
package eval

import (
	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

// evalBinding implements `E as P1 ?// P2 ... | BODY`: for each value of
// E, the first pattern that matches without error binds its variables
// and evaluates BODY; if a pattern fails to match, the next alternative
// is tried, per jq's `?//` fallback semantics. Every variable named
// anywhere across the alternatives is bound (to null if unmatched by
// the pattern that succeeded), so BODY can reference any of them.
func evalBinding(node *parser.BindingNode, input value.Value, e *env.Env, emit Emit) error {
	allNames := map[string]bool{}
	for _, p := range node.Patterns {
		collectPatternVars(p, allNames)
	}

	return Eval(node.Source, input, e, func(v value.Value) error {
		var lastErr error
		for i, pat := range node.Patterns {
			child := e.Child()
			for name := range allNames {
				child.BindVar(name, value.Null)
			}
			if err := bindPattern(pat, v, child); err != nil {
				lastErr = err
				if i < len(node.Patterns)-1 {
					continue
				}
				return err
			}
			return Eval(node.Body, v, child, emit)
		}
		return lastErr
	})
}

func collectPatternVars(p parser.Pattern, out map[string]bool) {
	switch p.Kind {
	case parser.PatternVar:
		out[p.Var] = true
	case parser.PatternArray:
		for _, elem := range p.Array {
			collectPatternVars(elem, out)
		}
	case parser.PatternObject:
		for _, entry := range p.Object {
			out[entry.KeyName] = true
			collectPatternVars(entry.Value, out)
		}
	}
}

// bindPattern destructures v according to pat, binding variables into
// e. A shape mismatch (e.g. an array pattern against a non-Array) is a
// catchable error, not a panic.
func bindPattern(pat parser.Pattern, v value.Value, e *env.Env) error {
	switch pat.Kind {
	case parser.PatternVar:
		e.BindVar(pat.Var, v)
		return nil

	case parser.PatternArray:
		var elems []value.Value
		if v.IsArray() {
			elems = v.Arr()
		} else if !v.IsNull() {
			return diag.TypeErr("cannot index %s with number", v.TypeName())
		}
		for i, sub := range pat.Array {
			var elem value.Value = value.Null
			if i < len(elems) {
				elem = elems[i]
			}
			if err := bindPattern(sub, elem, e); err != nil {
				return err
			}
		}
		return nil

	case parser.PatternObject:
		for _, entry := range pat.Object {
			key := entry.KeyName
			if entry.KeyExpr != nil {
				var err error
				key, err = firstStringValue(entry.KeyExpr, v, e)
				if err != nil {
					return err
				}
			}
			var field value.Value = value.Null
			if v.IsObject() {
				if fv, ok := v.Obj().Get(key); ok {
					field = fv
				}
			} else if !v.IsNull() {
				return diag.TypeErr("cannot index %s with %q", v.TypeName(), key)
			}
			// Shorthand `{$v}`/`{v: $v}` also binds the field's own
			// name, matching jq's object pattern shorthand.
			if entry.Value.Kind == parser.PatternVar && entry.KeyExpr == nil {
				e.BindVar(entry.Value.Var, field)
				continue
			}
			if err := bindPattern(entry.Value, field, e); err != nil {
				return err
			}
		}
		return nil

	default:
		return diag.New(diag.TypeError, "internal error: unknown pattern kind")
	}
}

// firstStringValue evaluates n against input and returns its first
// produced value as a string, used for object pattern computed keys
// `{(E): pattern}`.
func firstStringValue(n parser.Node, input value.Value, e *env.Env) (string, error) {
	var result string
	found := false
	err := Eval(n, input, e, func(v value.Value) error {
		if found {
			return ErrStop
		}
		if !v.IsString() {
			return diag.TypeErr("object pattern keys must be strings, got %s", v.TypeName())
		}
		result = v.Str()
		found = true
		return ErrStop
	})
	if err != nil && err != ErrStop {
		return "", err
	}
	if !found {
		return "", diag.TypeErr("object pattern key expression produced no value")
	}
	return result, nil
}

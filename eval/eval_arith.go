/*
File    : dq/eval/eval_arith.go
Author  : dq contributors

Value-level arithmetic for `+ - * / %`, dispatched per operator and
operand type pair.
*/
package eval

import (
	"math"
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/value"
)

func arith(op string, a, b value.Value) (value.Value, error) {
	switch op {
	case "+":
		return add(a, b)
	case "-":
		return sub(a, b)
	case "*":
		return mul(a, b)
	case "/":
		return div(a, b)
	case "%":
		return mod(a, b)
	}
	return value.Value{}, diag.TypeErr("internal error: unknown operator %q", op)
}

// Add exposes the `+` operator's value-level semantics to the builtins
// package, which needs it to fold `add`.
func Add(a, b value.Value) (value.Value, error) { return add(a, b) }

func add(a, b value.Value) (value.Value, error) {
	switch {
	case a.IsNull():
		return b, nil
	case b.IsNull():
		return a, nil
	case a.IsNumber() && b.IsNumber():
		return value.Number(a.NumberValue() + b.NumberValue()), nil
	case a.IsString() && b.IsString():
		return value.String(a.Str() + b.Str()), nil
	case a.IsArray() && b.IsArray():
		out := make([]value.Value, 0, len(a.Arr())+len(b.Arr()))
		out = append(out, a.Arr()...)
		out = append(out, b.Arr()...)
		return value.Array(out), nil
	case a.IsObject() && b.IsObject():
		merged := a.Obj().Clone()
		for _, k := range b.Obj().Keys() {
			v, _ := b.Obj().Get(k)
			merged.Set(k, v)
		}
		return value.ObjectValue(merged), nil
	default:
		return value.Value{}, diag.TypeErr("%s and %s cannot be added", a.TypeName(), b.TypeName())
	}
}

func sub(a, b value.Value) (value.Value, error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		return value.Number(a.NumberValue() - b.NumberValue()), nil
	case a.IsArray() && b.IsArray():
		out := make([]value.Value, 0, len(a.Arr()))
		for _, v := range a.Arr() {
			found := false
			for _, w := range b.Arr() {
				if value.Equal(v, w) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, v)
			}
		}
		return value.Array(out), nil
	default:
		return value.Value{}, diag.TypeErr("%s and %s cannot be subtracted", a.TypeName(), b.TypeName())
	}
}

func mul(a, b value.Value) (value.Value, error) {
	switch {
	case a.IsNull() && b.IsNull():
		return value.Null, nil
	case a.IsNull() && !b.IsObject():
		return value.Null, nil
	case b.IsNull() && !a.IsObject():
		return value.Null, nil
	case a.IsNumber() && b.IsNumber():
		return value.Number(a.NumberValue() * b.NumberValue()), nil
	case a.IsString() && b.IsNumber():
		return repeatString(a.Str(), b.NumberValue())
	case b.IsString() && a.IsNumber():
		return repeatString(b.Str(), a.NumberValue())
	case a.IsObject() && b.IsObject():
		return mergeDeep(a, b), nil
	case a.IsNull() && b.IsObject():
		return value.Null, nil
	case b.IsNull() && a.IsObject():
		return value.Null, nil
	default:
		return value.Value{}, diag.TypeErr("%s and %s cannot be multiplied", a.TypeName(), b.TypeName())
	}
}

func repeatString(s string, n float64) (value.Value, error) {
	if n != math.Trunc(n) || n < 0 {
		return value.Value{}, diag.TypeErr("string repeat count must be a non-negative integer")
	}
	if n == 0 {
		return value.Null, nil
	}
	return value.String(strings.Repeat(s, int(n))), nil
}

// mergeDeep recursively merges Objects key-wise; a non-Object value at a
// shared key is overwritten by the right-hand side (the merge only
// recurses when both sides are Objects at that key).
func mergeDeep(a, b value.Value) value.Value {
	out := a.Obj().Clone()
	for _, k := range b.Obj().Keys() {
		bv, _ := b.Obj().Get(k)
		if av, ok := out.Get(k); ok && av.IsObject() && bv.IsObject() {
			out.Set(k, mergeDeep(av, bv))
			continue
		}
		out.Set(k, bv)
	}
	return value.ObjectValue(out)
}

func div(a, b value.Value) (value.Value, error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		if b.NumberValue() == 0 {
			return value.Value{}, diag.DivZero("%s and %s cannot be divided because the divisor is zero", a.Debug(), b.Debug())
		}
		return value.Number(a.NumberValue() / b.NumberValue()), nil
	case a.IsString() && b.IsString():
		parts := strings.Split(a.Str(), b.Str())
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			elems[i] = value.String(p)
		}
		return value.Array(elems), nil
	default:
		return value.Value{}, diag.TypeErr("%s and %s cannot be divided", a.TypeName(), b.TypeName())
	}
}

func mod(a, b value.Value) (value.Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return value.Value{}, diag.TypeErr("%s and %s cannot be divided", a.TypeName(), b.TypeName())
	}
	bi := int(b.NumberValue())
	if bi == 0 {
		return value.Value{}, diag.DivZero("%s and %s cannot be divided because the divisor is zero", a.Debug(), b.Debug())
	}
	ai := int(a.NumberValue())
	r := ai % bi
	return value.Int(r), nil
}

/*
File    : dq/value/value.go
Author  : dq contributors
*/

// Package value defines the unified value domain shared by every format
// parser/serializer and by the query evaluator. It is the JSON-like tagged
// variant described in the language specification: Null, Bool, Number,
// String, Array and Object, plus helpers for type inspection, truthiness,
// and structural equality.
package value

import (
	"fmt"
	"math"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String renders a Kind the way dq reports it from the `type` builtin.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged union every query input, intermediate, and output
// travels through. Only one of the typed fields is meaningful at a time,
// selected by Kind. Values are treated as immutable: every evaluator
// operation that "modifies" a Value produces a new one rather than
// mutating shared structure, the same discipline an earlier interpreter
// applied to its own object family.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
}

// Object is an ordered String -> Value mapping. Insertion order is
// preserved and is observable via keys_unsorted/to_entries/iteration, per
// the data model's invariant on Object key order.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty, ready-to-use Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Keys returns the object's keys in insertion order. The returned slice
// must not be mutated by callers.
func (o *Object) Keys() []string { return o.keys }

// Len reports the number of entries in the object.
func (o *Object) Len() int { return len(o.keys) }

// Get looks up a key, returning (value, true) if present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set inserts or overwrites key with v, appending to Keys only on first
// insertion so existing order is preserved on update.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Delete removes key, if present, preserving the relative order of the
// remaining keys.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a shallow copy: the key order and top-level entries are
// independent, but entry Values are shared (Values are immutable so this
// is safe).
func (o *Object) Clone() *Object {
	c := &Object{
		keys: append([]string(nil), o.keys...),
		vals: make(map[string]Value, len(o.vals)),
	}
	for k, v := range o.vals {
		c.vals[k] = v
	}
	return c
}

// Constructors.

// Null is the singleton-by-value null.
var Null = Value{kind: KindNull}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64. Integral doubles print without a decimal point
// by convention of the serializers, not of this constructor.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int is a convenience constructor for integer-valued Numbers.
func Int(n int) Value { return Number(float64(n)) }

// String wraps a UTF-8 string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps an ordered slice of Values. The slice is taken by reference;
// callers that still hold a mutable alias should Clone first.
func Array(elems []Value) Value { return Value{kind: KindArray, arr: elems} }

// ObjectValue wraps an *Object.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

// EmptyArray returns a fresh empty array Value.
func EmptyArray() Value { return Array(nil) }

// EmptyObject returns a fresh empty object Value.
func EmptyObject() Value { return ObjectValue(NewObject()) }

// Accessors.

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

// BoolValue returns the wrapped bool; callers must check IsBool first.
func (v Value) BoolValue() bool { return v.b }

// NumberValue returns the wrapped float64; callers must check IsNumber first.
func (v Value) NumberValue() float64 { return v.n }

// Str returns the wrapped string; callers must check IsString first.
func (v Value) Str() string { return v.s }

// Arr returns the wrapped slice; callers must check IsArray first.
func (v Value) Arr() []Value { return v.arr }

// Obj returns the wrapped *Object; callers must check IsObject first.
func (v Value) Obj() *Object { return v.obj }

// Truthy implements jq's truthiness rule: every value is truthy except
// null and false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// TypeName is what the `type` builtin returns.
func (v Value) TypeName() string { return v.kind.String() }

// Len implements `length` for arrays, objects and strings (counted in
// codepoints) and returns 0 for every other kind; the null/number/boolean
// length rules live in the builtins package since they carry error
// semantics of their own.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	case KindString:
		return len([]rune(v.s))
	default:
		return 0
	}
}

// GoString supports %#v debugging and is never used for user output.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s}", v.Debug())
}

// Debug renders a terse internal representation for error messages and
// test failure output, distinct from the serializer-driven user-facing
// representation.
func (v Value) Debug() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindArray:
		s := "["
		for i, e := range v.arr {
			if i > 0 {
				s += ","
			}
			s += e.Debug()
		}
		return s + "]"
	case KindObject:
		s := "{"
		for i, k := range v.obj.keys {
			if i > 0 {
				s += ","
			}
			val, _ := v.obj.Get(k)
			s += fmt.Sprintf("%q:%s", k, val.Debug())
		}
		return s + "}"
	default:
		return "<?>"
	}
}

// formatNumber renders a float64 the way dq prints Numbers: integral
// values (including negative zero, per the numeric edge cases) have
// no decimal point, infinities/NaN use jq's literal spellings.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "null" // NaN serializes as null, matches jq/JSON output
	case math.IsInf(n, 1):
		return "1.7976931348623157e+308"
	case math.IsInf(n, -1):
		return "-1.7976931348623157e+308"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e17 {
		return fmt.Sprintf("%.0f", n)
	}
	return fmt.Sprintf("%g", n)
}

// FormatNumber exposes formatNumber to other packages (serializers,
// tostring).
func FormatNumber(n float64) string { return formatNumber(n) }

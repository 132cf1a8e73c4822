/*
File    : dq/value/native.go
Author  : dq contributors

Grounded on the earlier convertToNative/convertFromNative pair in
std/json.go: one conversion boundary shared by every format parser and
serializer, generalized from the earlier object model to Value.
*/

package value

import "fmt"

// FromNative converts a plain Go value (as produced by encoding/json,
// gopkg.in/yaml.v3, encoding/csv, mxj, or go-toml/v2) into a Value.
// Unrecognized types degrade to their fmt-formatted string rather than
// panicking, since format-layer bugs should surface as odd output, not
// crash the evaluator.
func FromNative(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromNative(e)
		}
		return Array(elems)
	case map[string]any:
		return ObjectValue(objectFromStringMap(t))
	case map[any]any:
		// gopkg.in/yaml.v3 can hand back map[interface{}]interface{} for
		// nested mappings depending on decode target; normalize keys to
		// strings, erroring out non-string keys per the Object invariant
		// by stringifying them (YAML permits non-string keys; dq does
		// not, so this is the documented widening).
		o := NewObject()
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			o.Set(ks, FromNative(val))
		}
		return ObjectValue(o)
	default:
		return String(fmtStringer(t))
	}
}

func objectFromStringMap(m map[string]any) *Object {
	o := NewObject()
	for k, v := range m {
		o.Set(k, FromNative(v))
	}
	return o
}

func fmtStringer(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// Native converts a Value back into a plain Go value suitable for
// encoding/json, yaml.v3, go-toml/v2, or mxj.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, k := range v.obj.keys {
			val, _ := v.obj.Get(k)
			out[k] = val.Native()
		}
		return out
	default:
		return nil
	}
}

// NativeOrdered is like Native but returns the object's key order
// alongside the map, for serializers (like YAML/JSON-with-indent) that
// want to preserve insertion order on output. Most stdlib encoders do
// not honor map key order, so serializers in format/ walk the Value tree
// directly instead of calling Native when order matters.
func (v Value) NativeOrdered() (any, []string) {
	if v.kind == KindObject {
		return v.Native(), append([]string(nil), v.obj.Keys()...)
	}
	return v.Native(), nil
}

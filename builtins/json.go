/*
File    : dq/builtins/json.go
Author  : dq contributors

Grounded on the earlier std/json.go jsonParse/jsonStringify pair,
reworked against encoding/json decoding into the query value domain
rather than the earlier interpreter's object family.
*/
package builtins

import (
	"encoding/json"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/value"
)

func init() {
	value0("tojson", func(v value.Value) (value.Value, error) {
		return value.String(eval.ToJSONCompact(v)), nil
	})

	value0("fromjson", func(v value.Value) (value.Value, error) {
		if !v.IsString() {
			return value.Value{}, diag.TypeErr("fromjson input must be a string")
		}
		var data interface{}
		if err := json.Unmarshal([]byte(v.Str()), &data); err != nil {
			return value.Value{}, diag.New(diag.SyntaxError, "invalid JSON text: %s", err)
		}
		return fromGoValue(data), nil
	})
}

// fromGoValue converts the generic interface{} tree encoding/json
// produces into a Value, preserving object key order is not possible
// here (encoding/json discards it via map[string]interface{}), which is
// an accepted limitation of fromjson specifically — unlike the format
// package's JSON decoder, which preserves order by decoding
// token-by-token.
func fromGoValue(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null
	case bool:
		return value.Bool(t)
	case float64:
		return value.Number(t)
	case string:
		return value.String(t)
	case []interface{}:
		out := make([]value.Value, len(t))
		for i, e := range t {
			out[i] = fromGoValue(e)
		}
		return value.Array(out)
	case map[string]interface{}:
		obj := value.NewObject()
		for k, e := range t {
			obj.Set(k, fromGoValue(e))
		}
		return value.ObjectValue(obj)
	default:
		return value.Null
	}
}

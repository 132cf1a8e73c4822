/*
File    : dq/format/json.go
Author  : dq contributors

Grounded on the earlier std/json.go jsonParse/jsonStringify pair, but
decodes token-by-token instead of into map[string]interface{} so that
object key order survives the round trip — encoding/json's map decode
target discards it, which would silently reorder every object dq
touches.
*/
package format

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dq-lang/dq/value"
)

// JSONDecoder reads consecutive JSON values (standalone or newline
// delimited — NDJSON is just this applied to a stream of documents) off
// one json.Decoder.
type JSONDecoder struct{ dec *json.Decoder }

func NewJSONDecoder(r io.Reader) *JSONDecoder { return &JSONDecoder{dec: json.NewDecoder(r)} }

func (d *JSONDecoder) Decode() (value.Value, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return value.Value{}, err
	}
	return jsonTokenToValue(tok, d.dec)
}

func jsonTokenToValue(tok json.Token, dec *json.Decoder) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := value.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return value.Value{}, err
				}
				key, _ := keyTok.(string)
				v, err := decodeJSONValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return value.Value{}, err
			}
			return value.ObjectValue(obj), nil
		case '[':
			var elems []value.Value
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				elems = append(elems, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return value.Value{}, err
			}
			return value.Array(elems), nil
		}
	case nil:
		return value.Null, nil
	case bool:
		return value.Bool(t), nil
	case float64:
		return value.Number(t), nil
	case string:
		return value.String(t), nil
	}
	return value.Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

func decodeJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Value{}, err
	}
	return jsonTokenToValue(tok, dec)
}

// JSONEncoder writes one JSON value per Encode call, walking the Value
// tree directly (rather than through Native()) to keep object keys in
// their original insertion order.
type JSONEncoder struct {
	w       *bufio.Writer
	compact bool
	raw     bool
	newline bool
}

func NewJSONEncoder(w io.Writer, opts EncodeOptions) *JSONEncoder {
	return &JSONEncoder{w: bufio.NewWriter(w), compact: opts.Compact, raw: opts.Raw}
}

// NewJSONLEncoder is a JSONEncoder forced compact with a newline after
// every record, since NDJSON output is one compact document per line.
func NewJSONLEncoder(w io.Writer, opts EncodeOptions) *JSONEncoder {
	e := NewJSONEncoder(w, opts)
	e.compact = true
	e.newline = true
	return e
}

func (e *JSONEncoder) Encode(v value.Value) error {
	if e.raw && v.IsString() {
		e.w.WriteString(v.Str())
	} else if err := writeJSONValue(e.w, v, e.compact, 0); err != nil {
		return err
	}
	e.w.WriteByte('\n')
	return e.w.Flush()
}

func writeJSONValue(w *bufio.Writer, v value.Value, compact bool, depth int) error {
	switch {
	case v.IsNull():
		_, err := w.WriteString("null")
		return err
	case v.IsBool():
		_, err := w.WriteString(fmt.Sprintf("%t", v.BoolValue()))
		return err
	case v.IsNumber():
		_, err := w.WriteString(value.FormatNumber(v.NumberValue()))
		return err
	case v.IsString():
		b, err := json.Marshal(v.Str())
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case v.IsArray():
		return writeJSONArray(w, v.Arr(), compact, depth)
	case v.IsObject():
		return writeJSONObject(w, v.Obj(), compact, depth)
	}
	return fmt.Errorf("unsupported value kind")
}

func writeJSONArray(w *bufio.Writer, elems []value.Value, compact bool, depth int) error {
	if len(elems) == 0 {
		_, err := w.WriteString("[]")
		return err
	}
	w.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			w.WriteByte(',')
		}
		indent(w, compact, depth+1)
		if err := writeJSONValue(w, e, compact, depth+1); err != nil {
			return err
		}
	}
	indent(w, compact, depth)
	w.WriteByte(']')
	return nil
}

func writeJSONObject(w *bufio.Writer, obj *value.Object, compact bool, depth int) error {
	keys := obj.Keys()
	if len(keys) == 0 {
		_, err := w.WriteString("{}")
		return err
	}
	w.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			w.WriteByte(',')
		}
		indent(w, compact, depth+1)
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		w.Write(kb)
		w.WriteByte(':')
		if !compact {
			w.WriteByte(' ')
		}
		v, _ := obj.Get(k)
		if err := writeJSONValue(w, v, compact, depth+1); err != nil {
			return err
		}
	}
	indent(w, compact, depth)
	w.WriteByte('}')
	return nil
}

func indent(w *bufio.Writer, compact bool, depth int) {
	if compact {
		return
	}
	w.WriteByte('\n')
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
}


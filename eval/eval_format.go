/*
File    : dq/eval/eval_format.go
Author  : dq contributors

Format strings `@name` / `@name "literal \(x)"`: a bare `@name` is
itself a filter applying the named formatter to its input; `@name
"..."` applies the formatter to each interpolated value independently
before concatenating with the literal segments.
*/
package eval

import (
	"encoding/base64"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func evalFormat(node *parser.FormatNode, input value.Value, e *env.Env, emit Emit) error {
	formatter, ok := formatters[node.Name]
	if !ok {
		return diag.TypeErr("@%s is not a valid format", node.Name)
	}

	if node.Str == nil {
		s, err := formatter(input)
		if err != nil {
			return err
		}
		return emit(value.String(s))
	}

	return buildFormattedString(node.Str.Parts, 0, "", formatter, input, e, emit)
}

func buildFormattedString(parts []parser.StringPart, i int, acc string, formatter func(value.Value) (string, error), input value.Value, e *env.Env, emit Emit) error {
	if i == len(parts) {
		return emit(value.String(acc))
	}
	part := parts[i]
	if part.Expr == nil {
		return buildFormattedString(parts, i+1, acc+part.Literal, formatter, input, e, emit)
	}
	return Eval(part.Expr, input, e, func(v value.Value) error {
		s, err := formatter(v)
		if err != nil {
			return err
		}
		return buildFormattedString(parts, i+1, acc+s, formatter, input, e, emit)
	})
}

// formatters maps each `@name` to its conversion function.
var formatters = map[string]func(value.Value) (string, error){
	"text":     formatText,
	"json":     formatJSON,
	"base64":   formatBase64,
	"base64d":  formatBase64d,
	"uri":      formatURI,
	"html":     formatHTML,
	"csv":      formatCSVRow,
	"tsv":      formatTSVRow,
}

func formatText(v value.Value) (string, error) {
	return tostring(v), nil
}

func formatJSON(v value.Value) (string, error) {
	return toJSONCompact(v), nil
}

func formatBase64(v value.Value) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(tostring(v))), nil
}

func formatBase64d(v value.Value) (string, error) {
	s := tostring(v)
	if decoded, err := base64.StdEncoding.DecodeString(s); err == nil {
		return string(decoded), nil
	}
	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return "", diag.New(diag.TypeError, "invalid base64 input: %s", s)
	}
	return string(decoded), nil
}

func formatURI(v value.Value) (string, error) {
	return url.QueryEscape(tostring(v)), nil
}

func formatHTML(v value.Value) (string, error) {
	return html.EscapeString(tostring(v)), nil
}

func formatCSVRow(v value.Value) (string, error) {
	if !v.IsArray() {
		return "", diag.TypeErr("@csv: input must be an array")
	}
	fields := make([]string, len(v.Arr()))
	for i, elem := range v.Arr() {
		fields[i] = csvField(elem)
	}
	return joinStrings(fields, ","), nil
}

func formatTSVRow(v value.Value) (string, error) {
	if !v.IsArray() {
		return "", diag.TypeErr("@tsv: input must be an array")
	}
	fields := make([]string, len(v.Arr()))
	for i, elem := range v.Arr() {
		fields[i] = tsvField(elem)
	}
	return joinStrings(fields, "\t"), nil
}

func csvField(v value.Value) string {
	switch {
	case v.IsString():
		escaped := strings.ReplaceAll(v.Str(), `"`, `""`)
		return `"` + escaped + `"`
	case v.IsNumber():
		return value.FormatNumber(v.NumberValue())
	case v.IsBool():
		return strconv.FormatBool(v.BoolValue())
	case v.IsNull():
		return ""
	default:
		return ""
	}
}

func tsvField(v value.Value) string {
	switch {
	case v.IsString():
		s := v.Str()
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\t", "\\t")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return s
	case v.IsNumber():
		return value.FormatNumber(v.NumberValue())
	case v.IsBool():
		return strconv.FormatBool(v.BoolValue())
	case v.IsNull():
		return ""
	default:
		return ""
	}
}

// toJSONCompact renders a Value as compact JSON text, used by @json and
// by the tojson builtin; it is a small, self-contained renderer rather
// than a dependency on the format package's JSON serializer, since that
// serializer works at the record level (writing to an io.Writer), not
// the string-valued level @json/tojson need.
func toJSONCompact(v value.Value) string {
	var b strings.Builder
	writeJSONCompact(&b, v)
	return b.String()
}

func writeJSONCompact(b *strings.Builder, v value.Value) {
	switch {
	case v.IsNull():
		b.WriteString("null")
	case v.IsBool():
		if v.BoolValue() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case v.IsNumber():
		b.WriteString(value.FormatNumber(v.NumberValue()))
	case v.IsString():
		b.WriteString(strconv.Quote(v.Str()))
	case v.IsArray():
		b.WriteByte('[')
		for i, e := range v.Arr() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONCompact(b, e)
		}
		b.WriteByte(']')
	case v.IsObject():
		b.WriteByte('{')
		for i, k := range v.Obj().Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			val, _ := v.Obj().Get(k)
			writeJSONCompact(b, val)
		}
		b.WriteByte('}')
	default:
		b.WriteString(fmt.Sprintf("%q", v.Debug()))
	}
}

// ToJSONCompact exposes the @json renderer to the builtins package for
// the `tojson` built-in.
func ToJSONCompact(v value.Value) string { return toJSONCompact(v) }

/*
File    : dq/builtins/strings.go
Author  : dq contributors

Grounded on the earlier std/strings.go case-transform and trim
helpers, reworked against Go's native UTF-8 string/rune handling
instead of the earlier byte-oriented string wrapper.
*/
package builtins

import (
	"strconv"
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/eval"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	value0("tostring", func(v value.Value) (value.Value, error) {
		if v.IsString() {
			return v, nil
		}
		return value.String(eval.ToJSONCompact(v)), nil
	})

	value0("tonumber", func(v value.Value) (value.Value, error) {
		if v.IsNumber() {
			return v, nil
		}
		if !v.IsString() {
			return value.Value{}, diag.TypeErr("cannot parse %s as a number", v.TypeName())
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return value.Value{}, diag.TypeErr("cannot parse %q as a number", v.Str())
		}
		return value.Number(n), nil
	})

	value0("ascii_downcase", stringMap(strings.ToLower))
	value0("ascii_upcase", stringMap(strings.ToUpper))
	value0("trim", stringMap(strings.TrimSpace))
	value0("ltrim", stringMap(func(s string) string { return strings.TrimLeft(s, " \t\r\n") }))
	value0("rtrim", stringMap(func(s string) string { return strings.TrimRight(s, " \t\r\n") }))

	register(&env.Builtin{Name: "ltrimstr", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		prefix, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if !input.IsString() || !prefix.IsString() {
			return emit(input)
		}
		return emit(value.String(strings.TrimPrefix(input.Str(), prefix.Str())))
	}})
	register(&env.Builtin{Name: "rtrimstr", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		suffix, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if !input.IsString() || !suffix.IsString() {
			return emit(input)
		}
		return emit(value.String(strings.TrimSuffix(input.Str(), suffix.Str())))
	}})
	register(&env.Builtin{Name: "startswith", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		prefix, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if !input.IsString() || !prefix.IsString() {
			return diag.TypeErr("startswith() requires string inputs")
		}
		return emit(value.Bool(strings.HasPrefix(input.Str(), prefix.Str())))
	}})
	register(&env.Builtin{Name: "endswith", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		suffix, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if !input.IsString() || !suffix.IsString() {
			return diag.TypeErr("endswith() requires string inputs")
		}
		return emit(value.Bool(strings.HasSuffix(input.Str(), suffix.Str())))
	}})

	register(&env.Builtin{Name: "split", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		sep, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if !input.IsString() || !sep.IsString() {
			return diag.TypeErr("split input and separator must be strings")
		}
		parts := strings.Split(input.Str(), sep.Str())
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.String(p)
		}
		return emit(value.Array(out))
	}})

	register(&env.Builtin{Name: "join", Arity: 1, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		sep, err := firstArg(ev, input, args, 0, callEnv)
		if err != nil {
			return err
		}
		if !input.IsArray() || !sep.IsString() {
			return diag.TypeErr("join input must be an array and separator a string")
		}
		parts := make([]string, len(input.Arr()))
		for i, e := range input.Arr() {
			if e.IsNull() {
				parts[i] = ""
				continue
			}
			if !e.IsString() {
				return diag.TypeErr("join elements must be strings or null")
			}
			parts[i] = e.Str()
		}
		return emit(value.String(strings.Join(parts, sep.Str())))
	}})

	value0("explode", func(v value.Value) (value.Value, error) {
		if !v.IsString() {
			return value.Value{}, diag.TypeErr("%s cannot be exploded", v.TypeName())
		}
		runes := []rune(v.Str())
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.Int(int(r))
		}
		return value.Array(out), nil
	})

	value0("implode", func(v value.Value) (value.Value, error) {
		if !v.IsArray() {
			return value.Value{}, diag.TypeErr("%s cannot be imploded", v.TypeName())
		}
		runes := make([]rune, len(v.Arr()))
		for i, e := range v.Arr() {
			if !e.IsNumber() {
				return value.Value{}, diag.TypeErr("implode input must be an array of codepoint numbers")
			}
			runes[i] = rune(int(e.NumberValue()))
		}
		return value.String(string(runes)), nil
	})
}

func stringMap(fn func(string) string) func(value.Value) (value.Value, error) {
	return func(v value.Value) (value.Value, error) {
		if !v.IsString() {
			return value.Value{}, diag.TypeErr("%s is not a string", v.TypeName())
		}
		return value.String(fn(v.Str())), nil
	}
}

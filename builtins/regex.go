/*
File    : dq/builtins/regex.go
Author  : dq contributors

Grounded on the earlier std/regex.go wrapper over Go's regexp package
— the same portable, linear-time engine, reused here rather than
chasing jq's Oniguruma-specific extensions.
*/
package builtins

import (
	"regexp"
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	register(&env.Builtin{Name: "test", Arity: 1, Call: reBuiltin(func(s string, re *regexp.Regexp, _ bool) (value.Value, error) {
		return value.Bool(re.MatchString(s)), nil
	})})
	register(&env.Builtin{Name: "test", Arity: 2, Call: reBuiltinFlags(func(s string, re *regexp.Regexp, _ bool) (value.Value, error) {
		return value.Bool(re.MatchString(s)), nil
	})})

	register(&env.Builtin{Name: "match", Arity: 1, Call: reMatchBuiltin(1)})
	register(&env.Builtin{Name: "match", Arity: 2, Call: reMatchBuiltin(2)})

	register(&env.Builtin{Name: "capture", Arity: 1, Call: reCaptureBuiltin(1)})
	register(&env.Builtin{Name: "capture", Arity: 2, Call: reCaptureBuiltin(2)})

	register(&env.Builtin{Name: "scan", Arity: 1, Call: reScanBuiltin(1)})
	register(&env.Builtin{Name: "scan", Arity: 2, Call: reScanBuiltin(2)})

	register(&env.Builtin{Name: "sub", Arity: 2, Call: reSubBuiltin(false)})
	register(&env.Builtin{Name: "gsub", Arity: 2, Call: reSubBuiltin(true)})
}

// compileRegex turns a jq-style pattern/flags pair into a Go regexp,
// translating the "i"/"s"/"m" inline flags and reporting "g" (global)
// separately since Go's regexp has no such mode of its own.
func compileRegex(pattern, flags string) (re *regexp.Regexp, global bool, err error) {
	var inline string
	for _, f := range flags {
		switch f {
		case 'g':
			global = true
		case 'i', 's', 'm':
			inline += string(f)
		case 'x', 'n', 'l', 'p':
			// accepted for jq compatibility, no direct RE2 equivalent
		default:
			return nil, false, diag.RegexErr("unsupported regex flag %q", string(f))
		}
	}
	expr := pattern
	if inline != "" {
		expr = "(?" + inline + ")" + expr
	}
	re, err = regexp.Compile(expr)
	if err != nil {
		return nil, false, diag.RegexErr("%s", err)
	}
	return re, global, nil
}

func reArgs(ev env.Evaluator, input value.Value, args []parser.Node, e *env.Env) (pattern, flags string, err error) {
	reV, err := firstArg(ev, input, args, 0, e)
	if err != nil {
		return "", "", err
	}
	if !reV.IsString() {
		return "", "", diag.TypeErr("regex must be a string")
	}
	if len(args) < 2 {
		return reV.Str(), "", nil
	}
	flagsV, err := firstArg(ev, input, args, 1, e)
	if err != nil {
		return "", "", err
	}
	if flagsV.IsNull() {
		return reV.Str(), "", nil
	}
	if !flagsV.IsString() {
		return "", "", diag.TypeErr("regex flags must be a string")
	}
	return reV.Str(), flagsV.Str(), nil
}

func reBuiltin(fn func(s string, re *regexp.Regexp, global bool) (value.Value, error)) func(env.Evaluator, value.Value, []parser.Node, *env.Env, func(value.Value) error) error {
	return func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsString() {
			return diag.TypeErr("%s cannot be matched, as it is not a string", input.TypeName())
		}
		pattern, _, err := reArgs(ev, input, args[:1], callEnv)
		if err != nil {
			return err
		}
		re, global, err := compileRegex(pattern, "")
		if err != nil {
			return err
		}
		v, err := fn(input.Str(), re, global)
		if err != nil {
			return err
		}
		return emit(v)
	}
}

func reBuiltinFlags(fn func(s string, re *regexp.Regexp, global bool) (value.Value, error)) func(env.Evaluator, value.Value, []parser.Node, *env.Env, func(value.Value) error) error {
	return func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsString() {
			return diag.TypeErr("%s cannot be matched, as it is not a string", input.TypeName())
		}
		pattern, flags, err := reArgs(ev, input, args, callEnv)
		if err != nil {
			return err
		}
		re, global, err := compileRegex(pattern, flags)
		if err != nil {
			return err
		}
		v, err := fn(input.Str(), re, global)
		if err != nil {
			return err
		}
		return emit(v)
	}
}

// matchObject builds the {offset,length,string,captures:[...]} object
// match() emits for one regexp submatch-index group.
func matchObject(s string, re *regexp.Regexp, loc []int) value.Value {
	names := re.SubexpNames()
	obj := value.NewObject()
	obj.Set("offset", value.Int(runeOffset(s, loc[0])))
	obj.Set("length", value.Int(runeOffset(s[loc[0]:loc[1]], loc[1]-loc[0])))
	obj.Set("string", value.String(s[loc[0]:loc[1]]))
	var captures []value.Value
	for i := 1; i*2 < len(loc); i++ {
		c := value.NewObject()
		start, end := loc[i*2], loc[i*2+1]
		if start < 0 {
			c.Set("offset", value.Int(-1))
			c.Set("length", value.Int(0))
			c.Set("string", value.Null)
		} else {
			c.Set("offset", value.Int(runeOffset(s, start)))
			c.Set("length", value.Int(runeOffset(s[start:end], end-start)))
			c.Set("string", value.String(s[start:end]))
		}
		name := value.Null
		if i < len(names) && names[i] != "" {
			name = value.String(names[i])
		}
		c.Set("name", name)
		captures = append(captures, value.ObjectValue(c))
	}
	obj.Set("captures", value.Array(captures))
	return value.ObjectValue(obj)
}

func runeOffset(s string, byteOffset int) int {
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	return len([]rune(s[:byteOffset]))
}

func reMatchBuiltin(arity int) func(env.Evaluator, value.Value, []parser.Node, *env.Env, func(value.Value) error) error {
	return func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsString() {
			return diag.TypeErr("%s cannot be matched, as it is not a string", input.TypeName())
		}
		full := args
		if arity == 1 {
			full = args[:1]
		}
		pattern, flags, err := reArgs(ev, input, full, callEnv)
		if err != nil {
			return err
		}
		re, global, err := compileRegex(pattern, flags)
		if err != nil {
			return err
		}
		s := input.Str()
		if !global {
			loc := re.FindSubmatchIndex([]byte(s))
			if loc == nil {
				return nil
			}
			return emit(matchObject(s, re, loc))
		}
		for _, loc := range re.FindAllSubmatchIndex([]byte(s), -1) {
			if err := emit(matchObject(s, re, loc)); err != nil {
				return err
			}
		}
		return nil
	}
}

func reCaptureBuiltin(arity int) func(env.Evaluator, value.Value, []parser.Node, *env.Env, func(value.Value) error) error {
	return func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsString() {
			return diag.TypeErr("%s cannot be matched, as it is not a string", input.TypeName())
		}
		full := args
		if arity == 1 {
			full = args[:1]
		}
		pattern, flags, err := reArgs(ev, input, full, callEnv)
		if err != nil {
			return err
		}
		re, _, err := compileRegex(pattern, flags)
		if err != nil {
			return err
		}
		loc := re.FindSubmatchIndex([]byte(input.Str()))
		if loc == nil {
			return nil
		}
		return emit(captureObject(input.Str(), re, loc))
	}
}

func captureObject(s string, re *regexp.Regexp, loc []int) value.Value {
	names := re.SubexpNames()
	out := value.NewObject()
	for i := 1; i*2 < len(loc); i++ {
		if i >= len(names) || names[i] == "" {
			continue
		}
		start, end := loc[i*2], loc[i*2+1]
		if start < 0 {
			out.Set(names[i], value.Null)
			continue
		}
		out.Set(names[i], value.String(s[start:end]))
	}
	return value.ObjectValue(out)
}

func reScanBuiltin(arity int) func(env.Evaluator, value.Value, []parser.Node, *env.Env, func(value.Value) error) error {
	return func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsString() {
			return diag.TypeErr("%s cannot be matched, as it is not a string", input.TypeName())
		}
		full := args
		if arity == 1 {
			full = args[:1]
		}
		pattern, flags, err := reArgs(ev, input, full, callEnv)
		if err != nil {
			return err
		}
		re, _, err := compileRegex(pattern, flags)
		if err != nil {
			return err
		}
		s := input.Str()
		for _, loc := range re.FindAllSubmatchIndex([]byte(s), -1) {
			if len(loc) <= 2 {
				emit(value.String(s[loc[0]:loc[1]]))
				continue
			}
			var caps []value.Value
			for i := 1; i*2 < len(loc); i++ {
				start, end := loc[i*2], loc[i*2+1]
				if start < 0 {
					caps = append(caps, value.Null)
					continue
				}
				caps = append(caps, value.String(s[start:end]))
			}
			if err := emit(value.Array(caps)); err != nil {
				return err
			}
		}
		return nil
	}
}

func reSubBuiltin(global bool) func(env.Evaluator, value.Value, []parser.Node, *env.Env, func(value.Value) error) error {
	return func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
		if !input.IsString() {
			return diag.TypeErr("%s cannot be matched, as it is not a string", input.TypeName())
		}
		pattern, _, err := reArgs(ev, input, args[:1], callEnv)
		if err != nil {
			return err
		}
		re, _, err := compileRegex(pattern, "")
		if err != nil {
			return err
		}
		s := input.Str()
		locs := re.FindAllSubmatchIndex([]byte(s), -1)
		if !global && len(locs) > 1 {
			locs = locs[:1]
		}
		if len(locs) == 0 {
			return emit(input)
		}
		var b strings.Builder
		prev := 0
		for _, loc := range locs {
			b.WriteString(s[prev:loc[0]])
			caps := captureObject(s, re, loc)
			replacement, err := firstArg(ev, caps, args, 1, callEnv)
			if err != nil {
				return err
			}
			if !replacement.IsString() {
				return diag.TypeErr("sub replacement must produce a string")
			}
			b.WriteString(replacement.Str())
			prev = loc[1]
		}
		b.WriteString(s[prev:])
		return emit(value.String(b.String()))
	}
}

/*
File    : dq/builtins/math.go
Author  : dq contributors

Grounded on the earlier std/math.go wrapper over Go's math package —
the same stdlib facade, here exposing the IEEE-754 unary/binary
functions grouped under "math" rather than a narrower named subset.
*/
package builtins

import (
	"math"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/value"
)

func init() {
	unary := map[string]func(float64) float64{
		"floor": math.Floor, "ceil": math.Ceil, "round": math.Round,
		"sqrt": math.Sqrt, "cbrt": math.Cbrt, "fabs": math.Abs,
		"trunc": math.Trunc, "nearbyint": math.RoundToEven,
		"exp": math.Exp, "exp2": math.Exp2, "exp10": func(x float64) float64 { return math.Pow(10, x) },
		"expm1": math.Expm1,
		"log":   math.Log, "log2": math.Log2, "log10": math.Log10, "log1p": math.Log1p,
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
		"asinh": math.Asinh, "acosh": math.Acosh, "atanh": math.Atanh,
		"gamma": math.Gamma, "logb": math.Logb, "significand": func(x float64) float64 { f, _ := math.Frexp(x); return f * 2 },
	}
	for name, fn := range unary {
		fn := fn
		value0(name, func(v value.Value) (value.Value, error) {
			if !v.IsNumber() {
				return value.Value{}, diag.TypeErr("%s is not a number", v.TypeName())
			}
			return value.Number(fn(v.NumberValue())), nil
		})
	}

	binary := map[string]func(a, b float64) float64{
		"pow": math.Pow, "atan2": math.Atan2, "copysign": math.Copysign,
		"fmin": math.Min, "fmax": math.Max, "fmod": math.Mod,
		"hypot": math.Hypot, "ldexp": func(a, b float64) float64 { return math.Ldexp(a, int(b)) },
	}
	for name, fn := range binary {
		fn := fn
		register(&env.Builtin{Name: name, Arity: 2, Call: func(ev env.Evaluator, input value.Value, args []parser.Node, callEnv *env.Env, emit func(value.Value) error) error {
			a, err := firstArg(ev, input, args, 0, callEnv)
			if err != nil {
				return err
			}
			b, err := firstArg(ev, input, args, 1, callEnv)
			if err != nil {
				return err
			}
			if !a.IsNumber() || !b.IsNumber() {
				return diag.TypeErr("arguments to %s must be numbers", name)
			}
			return emit(value.Number(fn(a.NumberValue(), b.NumberValue())))
		}})
	}

	value0("infinite", func(value.Value) (value.Value, error) { return value.Number(math.Inf(1)), nil })
	value0("nan", func(value.Value) (value.Value, error) { return value.Number(math.NaN()), nil })
	value0("isinfinite", func(v value.Value) (value.Value, error) {
		return value.Bool(v.IsNumber() && math.IsInf(v.NumberValue(), 0)), nil
	})
	value0("isnan", func(v value.Value) (value.Value, error) {
		return value.Bool(v.IsNumber() && math.IsNaN(v.NumberValue())), nil
	})
	value0("isnormal", func(v value.Value) (value.Value, error) {
		if !v.IsNumber() {
			return value.Value{}, diag.TypeErr("%s is not a number", v.TypeName())
		}
		n := v.NumberValue()
		return value.Bool(!math.IsNaN(n) && !math.IsInf(n, 0) && n != 0), nil
	})
}

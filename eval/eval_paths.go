/*
File    : dq/eval/eval_paths.go
Author  : dq contributors

Computes paths_of(P, input) for the path-producing subset of the
expression grammar valid as assignment LHS: identity, field (optional
or not), index, slice, iterate, recurse, pipe/comma of these, if
returning paths, and calls to user-defined functions whose body is
itself path-valued. Each callback invocation carries both the
Path and the Value currently found there, since `|=` needs the value to
compute its replacement. Slice steps carry an already-clamped [start,end)
range and serialize to `{"start":.,"end":.}`, matching how getpath/
setpath/delpaths represent a slice component.
*/
package eval

import (
	"strings"

	"github.com/dq-lang/dq/diag"
	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/parser"
	"github.com/dq-lang/dq/path"
	"github.com/dq-lang/dq/value"
)

// PathHit pairs a concrete Path with the value found there in the root
// the path was computed against.
type PathHit struct {
	Path  path.Path
	Value value.Value
}

// PathsOf walks n, which must belong to the path-producing subset,
// emitting one PathHit per path the expression addresses in root.
func PathsOf(n parser.Node, root value.Value, e *env.Env, emit func(PathHit) error) error {
	return pathsOfStep(n, root, path.Path{}, root, e, emit)
}

// pathsOfStep carries the accumulated Path (prefix) and the Value found
// there (cur), which is always root indexed by prefix.
func pathsOfStep(n parser.Node, root value.Value, prefix path.Path, cur value.Value, e *env.Env, emit func(PathHit) error) error {
	switch node := n.(type) {

	case *parser.IdentityNode:
		return emit(PathHit{Path: prefix, Value: cur})

	case *parser.RecurseNode:
		return pathsOfRecurse(prefix, cur, emit)

	case *parser.FieldNode:
		return pathsOfStep(node.Target, root, prefix, cur, e, func(hit PathHit) error {
			switch {
			case hit.Value.IsObject():
				v, _ := hit.Value.Obj().Get(node.Name)
				return emit(PathHit{Path: appendStep(hit.Path, path.KeyStep(node.Name)), Value: v})
			case hit.Value.IsNull():
				return emit(PathHit{Path: appendStep(hit.Path, path.KeyStep(node.Name)), Value: value.Null})
			default:
				if node.Optional {
					return nil
				}
				return diag.TypeErr("cannot index %s with %q", hit.Value.TypeName(), node.Name)
			}
		})

	case *parser.IndexNode:
		return pathsOfStep(node.Target, root, prefix, cur, e, func(hit PathHit) error {
			return Eval(node.Index, root, e, func(idx value.Value) error {
				if !idx.IsNumber() && !idx.IsString() {
					if node.Optional {
						return nil
					}
					return diag.TypeErr("cannot index %s with %s", hit.Value.TypeName(), idx.TypeName())
				}
				if idx.IsString() {
					if !hit.Value.IsObject() && !hit.Value.IsNull() {
						if node.Optional {
							return nil
						}
						return diag.TypeErr("cannot index %s with %q", hit.Value.TypeName(), idx.Str())
					}
					v := value.Null
					if hit.Value.IsObject() {
						if got, ok := hit.Value.Obj().Get(idx.Str()); ok {
							v = got
						}
					}
					return emit(PathHit{Path: appendStep(hit.Path, path.KeyStep(idx.Str())), Value: v})
				}
				if !hit.Value.IsArray() && !hit.Value.IsNull() {
					if node.Optional {
						return nil
					}
					return diag.TypeErr("cannot index %s with number", hit.Value.TypeName())
				}
				i := int(idx.NumberValue())
				v := value.Null
				if hit.Value.IsArray() {
					arr := hit.Value.Arr()
					norm := i
					if norm < 0 {
						norm += len(arr)
					}
					if norm >= 0 && norm < len(arr) {
						v = arr[norm]
					}
				}
				return emit(PathHit{Path: appendStep(hit.Path, path.IndexStep(i)), Value: v})
			})
		})

	case *parser.IterateNode:
		return pathsOfStep(node.Target, root, prefix, cur, e, func(hit PathHit) error {
			switch {
			case hit.Value.IsArray():
				for i, v := range hit.Value.Arr() {
					if err := emit(PathHit{Path: appendStep(hit.Path, path.IndexStep(i)), Value: v}); err != nil {
						return err
					}
				}
				return nil
			case hit.Value.IsObject():
				for _, k := range hit.Value.Obj().Keys() {
					v, _ := hit.Value.Obj().Get(k)
					if err := emit(PathHit{Path: appendStep(hit.Path, path.KeyStep(k)), Value: v}); err != nil {
						return err
					}
				}
				return nil
			default:
				if node.Optional {
					return nil
				}
				return diag.TypeErr("cannot iterate over %s", hit.Value.TypeName())
			}
		})

	case *parser.SliceNode:
		return pathsOfStep(node.Target, root, prefix, cur, e, func(hit PathHit) error {
			return evalSliceBound(node.Start, root, e, func(startV value.Value, hasStart bool) error {
				return evalSliceBoundEnd(node.End, root, e, func(endV value.Value, hasEnd bool) error {
					switch {
					case hit.Value.IsArray():
						length := len(hit.Value.Arr())
						a, b := 0, length
						if hasStart {
							a = clampIndex(int(startV.NumberValue()), length)
						}
						if hasEnd {
							b = clampIndex(int(endV.NumberValue()), length)
						}
						if b < a {
							b = a
						}
						sub := value.Array(append([]value.Value(nil), hit.Value.Arr()[a:b]...))
						return emit(PathHit{Path: appendStep(hit.Path, path.SliceStep(a, b)), Value: sub})
					case hit.Value.IsNull():
						if node.Optional {
							return nil
						}
						return emit(PathHit{Path: appendStep(hit.Path, path.SliceStep(0, 0)), Value: value.EmptyArray()})
					default:
						if node.Optional {
							return nil
						}
						return diag.TypeErr("cannot slice %s as a path target", hit.Value.TypeName())
					}
				})
			})
		})

	case *parser.BinaryNode:
		switch node.Op {
		case "|":
			return pathsOfStep(node.Left, root, prefix, cur, e, func(hit PathHit) error {
				return pathsOfStep(node.Right, root, hit.Path, hit.Value, e, emit)
			})
		case ",":
			if err := pathsOfStep(node.Left, root, prefix, cur, e, emit); err != nil {
				return err
			}
			return pathsOfStep(node.Right, root, prefix, cur, e, emit)
		default:
			return diag.TypeErr("invalid path expression near operator %q", node.Op)
		}

	case *parser.IfNode:
		return Eval(node.Cond, cur, e, func(cv value.Value) error {
			if cv.Truthy() {
				return pathsOfStep(node.Then, root, prefix, cur, e, emit)
			}
			for _, elif := range node.Elifs {
				matched := false
				err := Eval(elif.Cond, cur, e, func(c value.Value) error {
					if c.Truthy() {
						matched = true
						return pathsOfStep(elif.Then, root, prefix, cur, e, emit)
					}
					return nil
				})
				if err != nil {
					return err
				}
				if matched {
					return nil
				}
			}
			if node.Else != nil {
				return pathsOfStep(node.Else, root, prefix, cur, e, emit)
			}
			return emit(PathHit{Path: prefix, Value: cur})
		})

	case *parser.FuncCallNode:
		closure, builtin, ok := e.LookupFunc(node.Name, len(node.Args))
		if !ok {
			return diag.TypeErr("%s/%d is not defined", node.Name, len(node.Args))
		}
		if builtin != nil {
			return diag.TypeErr("%s is not a valid path expression", node.Name)
		}
		callEnv := closure.Env.Child()
		for i, param := range closure.Params {
			argNode := node.Args[i]
			if strings.HasPrefix(param, "$") {
				v, err := firstValue(argNode, cur, e)
				if err != nil {
					return err
				}
				callEnv.BindVar(param[1:], v)
				continue
			}
			callEnv.BindFunc(&env.Closure{Name: param, Body: argNode, Env: e})
		}
		return pathsOfStep(closure.Body, root, prefix, cur, callEnv, emit)

	default:
		return diag.TypeErr("invalid path expression")
	}
}

func pathsOfRecurse(prefix path.Path, cur value.Value, emit func(PathHit) error) error {
	if err := emit(PathHit{Path: prefix, Value: cur}); err != nil {
		return err
	}
	switch {
	case cur.IsArray():
		for i, v := range cur.Arr() {
			if err := pathsOfRecurse(appendStep(prefix, path.IndexStep(i)), v, emit); err != nil {
				return err
			}
		}
	case cur.IsObject():
		for _, k := range cur.Obj().Keys() {
			v, _ := cur.Obj().Get(k)
			if err := pathsOfRecurse(appendStep(prefix, path.KeyStep(k)), v, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

func appendStep(p path.Path, s path.Step) path.Path {
	out := make(path.Path, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

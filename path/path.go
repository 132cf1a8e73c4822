/*
File    : dq/path/path.go
Author  : dq contributors

Grounded on the earlier index/key resolution logic in
eval/eval_access.go, generalized from "mutate this array/map in place"
into a standalone path engine shared by path(), getpath, setpath,
delpaths, del, and the four assignment operators (=, |=, += and friends).
*/

// Package path implements the PathStep/Path model and the structural
// operations (Get, Set, Delete) that the evaluator's assignment and
// path-producing builtins are built on.
package path

import (
	"fmt"

	"github.com/dq-lang/dq/value"
)

// StepKind distinguishes an object-key step from an array-index step.
type StepKind int

const (
	Key StepKind = iota
	Index
	Slice
)

// Step is one segment of a Path: an object key, an array index, or an
// array slice range (Start/End, already clamped to the array's length
// at the time the path was computed).
type Step struct {
	Kind       StepKind
	Key        string
	Idx        int
	Start, End int
}

// KeyStep builds a Key-kind Step.
func KeyStep(k string) Step { return Step{Kind: Key, Key: k} }

// IndexStep builds an Index-kind Step.
func IndexStep(i int) Step { return Step{Kind: Index, Idx: i} }

// SliceStep builds a Slice-kind Step from an already-clamped [start, end)
// range.
func SliceStep(start, end int) Step { return Step{Kind: Slice, Start: start, End: end} }

// Path is an ordered sequence of Steps addressing a sub-value.
type Path []Step

// ToValue serializes a Path as an array of strings/numbers, the
// representation path()/paths emit and getpath/setpath/delpaths consume.
func (p Path) ToValue() value.Value {
	elems := make([]value.Value, len(p))
	for i, s := range p {
		switch s.Kind {
		case Key:
			elems[i] = value.String(s.Key)
		case Slice:
			obj := value.NewObject()
			obj.Set("start", value.Int(s.Start))
			obj.Set("end", value.Int(s.End))
			elems[i] = value.ObjectValue(obj)
		default:
			elems[i] = value.Int(s.Idx)
		}
	}
	return value.Array(elems)
}

// FromValue parses the array representation back into a Path, as
// accepted by getpath/setpath/delpaths: strings are key steps, numbers
// are index steps, and `{"start":.,"end":.}` objects are slice steps.
func FromValue(v value.Value) (Path, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("path must be specified as an array")
	}
	out := make(Path, 0, len(v.Arr()))
	for _, e := range v.Arr() {
		switch {
		case e.IsString():
			out = append(out, KeyStep(e.Str()))
		case e.IsNumber():
			out = append(out, IndexStep(int(e.NumberValue())))
		case e.IsObject():
			startV, hasStart := e.Obj().Get("start")
			endV, hasEnd := e.Obj().Get("end")
			if !hasStart || !hasEnd {
				return nil, fmt.Errorf("invalid path component: %s", e.Debug())
			}
			out = append(out, SliceStep(int(startV.NumberValue()), int(endV.NumberValue())))
		default:
			return nil, fmt.Errorf("invalid path component: %s", e.Debug())
		}
	}
	return out, nil
}

// Equal reports whether two Steps address the same location.
func (s Step) Equal(o Step) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case Key:
		return s.Key == o.Key
	case Slice:
		return s.Start == o.Start && s.End == o.End
	default:
		return s.Idx == o.Idx
	}
}

// clampSlice bounds a slice endpoint the same way evalSliceBound/
// clampIndex do in package eval: negative counts back from length, then
// clamps into [0, length].
func clampSlice(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

// normalizeIndex turns a possibly-negative index into a non-negative one
// relative to length, clamping is left to the caller.
func normalizeIndex(i, length int) int {
	if i < 0 {
		return i + length
	}
	return i
}

// Get resolves a Path against root, returning value.Null (not an error)
// for a step through a missing object key or an out-of-range array
// index, matching `.a.b`/`.[i]`'s "missing means null" rule. A type
// mismatch (e.g. a Key step into a Number) is reported as an error.
func Get(root value.Value, p Path) (value.Value, error) {
	cur := root
	for _, s := range p {
		switch {
		case cur.IsNull():
			cur = value.Null
		case s.Kind == Key && cur.IsObject():
			v, ok := cur.Obj().Get(s.Key)
			if !ok {
				v = value.Null
			}
			cur = v
		case s.Kind == Index && cur.IsArray():
			i := normalizeIndex(s.Idx, len(cur.Arr()))
			if i < 0 || i >= len(cur.Arr()) {
				cur = value.Null
				continue
			}
			cur = cur.Arr()[i]
		case s.Kind == Slice && cur.IsArray():
			arr := cur.Arr()
			a, b := clampSlice(s.Start, len(arr)), clampSlice(s.End, len(arr))
			if b < a {
				b = a
			}
			cur = value.Array(append([]value.Value(nil), arr[a:b]...))
		default:
			return value.Value{}, fmt.Errorf("cannot index %s with %s", cur.TypeName(), stepDesc(s))
		}
	}
	return cur, nil
}

func stepDesc(s Step) string {
	switch s.Kind {
	case Key:
		return fmt.Sprintf("%q", s.Key)
	case Slice:
		return "a slice"
	default:
		return "number"
	}
}

// Set returns a new value equal to root but with the location addressed
// by p replaced by newVal, creating intermediate Objects/Arrays as
// needed. A missing Object key is created; a missing Array index extends
// the array with Nulls; a Null intermediate is coerced to an Object
// (before a Key step) or an Array (before an Index step); a genuine type
// mismatch (e.g. a Key step into an existing Array) is an error.
func Set(root value.Value, p Path, newVal value.Value) (value.Value, error) {
	if len(p) == 0 {
		return newVal, nil
	}
	step := p[0]
	rest := p[1:]

	switch step.Kind {
	case Key:
		var obj *value.Object
		switch {
		case root.IsNull():
			obj = value.NewObject()
		case root.IsObject():
			obj = root.Obj().Clone()
		default:
			return value.Value{}, fmt.Errorf("cannot index %s with %q", root.TypeName(), step.Key)
		}
		cur, ok := obj.Get(step.Key)
		if !ok {
			cur = value.Null
		}
		updated, err := Set(cur, rest, newVal)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(step.Key, updated)
		return value.ObjectValue(obj), nil

	case Slice:
		var arr []value.Value
		switch {
		case root.IsNull():
			arr = nil
		case root.IsArray():
			arr = append([]value.Value(nil), root.Arr()...)
		default:
			return value.Value{}, fmt.Errorf("cannot update field at object index of %s", root.TypeName())
		}
		a, b := clampSlice(step.Start, len(arr)), clampSlice(step.End, len(arr))
		if b < a {
			b = a
		}
		sub := append([]value.Value(nil), arr[a:b]...)
		updatedSub, err := Set(value.Array(sub), rest, newVal)
		if err != nil {
			return value.Value{}, err
		}
		if !updatedSub.IsArray() {
			return value.Value{}, fmt.Errorf("a slice of an array can only be assigned another array")
		}
		out := make([]value.Value, 0, len(arr)-(b-a)+len(updatedSub.Arr()))
		out = append(out, arr[:a]...)
		out = append(out, updatedSub.Arr()...)
		out = append(out, arr[b:]...)
		return value.Array(out), nil

	default: // Index
		var arr []value.Value
		switch {
		case root.IsNull():
			arr = nil
		case root.IsArray():
			arr = append([]value.Value(nil), root.Arr()...)
		default:
			return value.Value{}, fmt.Errorf("cannot index %s with number", root.TypeName())
		}
		idx := normalizeIndex(step.Idx, len(arr))
		if idx < 0 {
			return value.Value{}, fmt.Errorf("array index %d is out of bounds", step.Idx)
		}
		for len(arr) <= idx {
			arr = append(arr, value.Null)
		}
		updated, err := Set(arr[idx], rest, newVal)
		if err != nil {
			return value.Value{}, err
		}
		arr[idx] = updated
		return value.Array(arr), nil
	}
}

// Delete returns a new value equal to root with the single location
// addressed by p removed. Deleting an already-absent location is a
// no-op. Deleting through an absent intermediate is also a no-op (there
// is nothing to delete).
func Delete(root value.Value, p Path) (value.Value, error) {
	if len(p) == 0 {
		return value.Null, nil
	}
	if len(p) == 1 {
		step := p[0]
		switch {
		case step.Kind == Key && root.IsObject():
			obj := root.Obj().Clone()
			obj.Delete(step.Key)
			return value.ObjectValue(obj), nil
		case step.Kind == Index && root.IsArray():
			arr := root.Arr()
			i := normalizeIndex(step.Idx, len(arr))
			if i < 0 || i >= len(arr) {
				return root, nil
			}
			out := make([]value.Value, 0, len(arr)-1)
			out = append(out, arr[:i]...)
			out = append(out, arr[i+1:]...)
			return value.Array(out), nil
		case step.Kind == Slice && root.IsArray():
			arr := root.Arr()
			a, b := clampSlice(step.Start, len(arr)), clampSlice(step.End, len(arr))
			if b < a {
				b = a
			}
			out := make([]value.Value, 0, len(arr)-(b-a))
			out = append(out, arr[:a]...)
			out = append(out, arr[b:]...)
			return value.Array(out), nil
		case root.IsNull():
			return root, nil
		default:
			return value.Value{}, fmt.Errorf("cannot delete field of %s", root.TypeName())
		}
	}

	step := p[0]
	rest := p[1:]
	switch {
	case step.Kind == Key && root.IsObject():
		cur, ok := root.Obj().Get(step.Key)
		if !ok {
			return root, nil
		}
		updated, err := Delete(cur, rest)
		if err != nil {
			return value.Value{}, err
		}
		obj := root.Obj().Clone()
		obj.Set(step.Key, updated)
		return value.ObjectValue(obj), nil
	case step.Kind == Index && root.IsArray():
		i := normalizeIndex(step.Idx, len(root.Arr()))
		if i < 0 || i >= len(root.Arr()) {
			return root, nil
		}
		updated, err := Delete(root.Arr()[i], rest)
		if err != nil {
			return value.Value{}, err
		}
		arr := append([]value.Value(nil), root.Arr()...)
		arr[i] = updated
		return value.Array(arr), nil
	case step.Kind == Slice:
		return value.Value{}, fmt.Errorf("cannot delete through a slice path")
	case root.IsNull():
		return root, nil
	default:
		return value.Value{}, fmt.Errorf("cannot index %s with %s", root.TypeName(), stepDesc(step))
	}
}

// DeleteAll removes every path in paths from root, processing them in
// reverse sorted order so earlier deletions do not invalidate later
// array indices.
func DeleteAll(root value.Value, paths []Path) (value.Value, error) {
	sorted := append([]Path(nil), paths...)
	sortPathsDescending(sorted)
	cur := root
	var err error
	for _, p := range sorted {
		cur, err = Delete(cur, p)
		if err != nil {
			return value.Value{}, err
		}
	}
	return cur, nil
}

// sortPathsDescending sorts paths so that the lexicographically largest
// (by step values) comes first; this keeps sibling array-index deletions
// correct since higher indices are removed before lower ones.
func sortPathsDescending(paths []Path) {
	less := func(a, b Path) bool {
		for i := 0; i < len(a) && i < len(b); i++ {
			if !a[i].Equal(b[i]) {
				return stepLess(a[i], b[i])
			}
		}
		return len(a) < len(b)
	}
	for i := 1; i < len(paths); i++ {
		for j := i; j > 0 && less(paths[j], paths[j-1]); j-- {
			paths[j-1], paths[j] = paths[j], paths[j-1]
		}
	}
	// less() sorts ascending; reverse for descending order.
	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}
}

func stepLess(a, b Step) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	switch a.Kind {
	case Key:
		return a.Key < b.Key
	case Slice:
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	default:
		return a.Idx < b.Idx
	}
}

/*
File    : dq/format/toml.go
Author  : dq contributors

Grounded on github.com/pelletier/go-toml/v2, the standard TOML library
for Go. TOML has no multi-document stream form, so decoding always yields
exactly one record, and go-toml/v2's map-based Unmarshal, like
encoding/json's, discards key order — the same accepted limitation as
fromjson.
*/
package format

import (
	"bufio"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/dq-lang/dq/value"
)

// TOMLDecoder yields the whole document as a single record, then io.EOF.
type TOMLDecoder struct {
	r    io.Reader
	done bool
}

func NewTOMLDecoder(r io.Reader) *TOMLDecoder { return &TOMLDecoder{r: r} }

func (d *TOMLDecoder) Decode() (value.Value, error) {
	if d.done {
		return value.Value{}, io.EOF
	}
	d.done = true
	var data map[string]any
	if err := toml.NewDecoder(d.r).Decode(&data); err != nil {
		return value.Value{}, err
	}
	return value.FromNative(data), nil
}

// TOMLEncoder writes each Encode call as its own document, separated by
// a blank line, since TOML has no native record separator.
type TOMLEncoder struct {
	w     *bufio.Writer
	first bool
}

func NewTOMLEncoder(w io.Writer) *TOMLEncoder { return &TOMLEncoder{w: bufio.NewWriter(w), first: true} }

func (e *TOMLEncoder) Encode(v value.Value) error {
	if !v.IsObject() {
		return errNotObject("toml")
	}
	if !e.first {
		e.w.WriteByte('\n')
	}
	e.first = false
	b, err := toml.Marshal(v.Native())
	if err != nil {
		return err
	}
	e.w.Write(b)
	return e.w.Flush()
}

/*
File    : dq/format/csv.go
Author  : dq contributors

Grounded on encoding/csv (TSV = CSV with Comma set to '\t'): an
earlier design reaches for a stdlib encoding/* package wherever one is
the canonical tool (std/json.go), and no third-party CSV library
improves on encoding/csv's quoting/escaping correctness.
*/
package format

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dq-lang/dq/value"
)

// CSVDecoder zips each data row with the first row (the header) into an
// Object, one record per Decode call.
type CSVDecoder struct {
	r       *csv.Reader
	header  []string
	started bool
}

func NewCSVDecoder(r io.Reader, comma rune) (*CSVDecoder, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	return &CSVDecoder{r: cr}, nil
}

func (d *CSVDecoder) Decode() (value.Value, error) {
	if !d.started {
		header, err := d.r.Read()
		if err != nil {
			return value.Value{}, err
		}
		d.header = header
		d.started = true
	}
	row, err := d.r.Read()
	if err != nil {
		return value.Value{}, err
	}
	obj := value.NewObject()
	for i, h := range d.header {
		if i < len(row) {
			obj.Set(h, value.String(row[i]))
		} else {
			obj.Set(h, value.Null)
		}
	}
	return value.ObjectValue(obj), nil
}

// CSVEncoder writes a header row (taken from the first record's keys)
// followed by one row per record, the first record included.
type CSVEncoder struct {
	w      *csv.Writer
	header []string
}

func NewCSVEncoder(w io.Writer, comma rune) (*CSVEncoder, error) {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return &CSVEncoder{w: cw}, nil
}

func (e *CSVEncoder) Encode(v value.Value) error {
	if v.IsArray() {
		return e.encodeRow(v.Arr())
	}
	if !v.IsObject() {
		return errNotObject("csv/tsv")
	}
	keys := v.Obj().Keys()
	if e.header == nil {
		e.header = keys
		if err := e.w.Write(keys); err != nil {
			return err
		}
	}
	row := make([]string, len(e.header))
	for i, k := range e.header {
		val, _ := v.Obj().Get(k)
		row[i] = csvCellString(val)
	}
	if err := e.w.Write(row); err != nil {
		return err
	}
	e.w.Flush()
	return e.w.Error()
}

func (e *CSVEncoder) encodeRow(elems []value.Value) error {
	row := make([]string, len(elems))
	for i, el := range elems {
		row[i] = csvCellString(el)
	}
	if err := e.w.Write(row); err != nil {
		return err
	}
	e.w.Flush()
	return e.w.Error()
}

func csvCellString(v value.Value) string {
	switch {
	case v.IsNull():
		return ""
	case v.IsString():
		return v.Str()
	case v.IsNumber():
		return value.FormatNumber(v.NumberValue())
	case v.IsBool():
		return fmt.Sprintf("%t", v.BoolValue())
	default:
		var buf bytes.Buffer
		bw := bufio.NewWriter(&buf)
		writeJSONValue(bw, v, true, 0)
		bw.Flush()
		return buf.String()
	}
}

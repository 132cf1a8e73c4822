/*
File    : dq/format/format.go
Author  : dq contributors

Shared format-layer types, grounded on the earlier file/file.go (its
only pre-existing I/O abstraction): a small Decoder/Encoder pair per
wire format instead of the earlier single "run a script against a
path" entrypoint, since dq's core is driven by the stream dispatcher
one record at a time rather than by a whole-file read.
*/
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dq-lang/dq/value"
)

// Name identifies one of the wire formats dq reads or writes.
type Name string

const (
	JSON Name = "json"
	JSONL Name = "jsonl"
	YAML Name = "yaml"
	XML  Name = "xml"
	TOML Name = "toml"
	CSV  Name = "csv"
	TSV  Name = "tsv"
)

// Parse resolves a --from/--to flag value to a Name, case-insensitively.
func Parse(s string) (Name, error) {
	switch n := Name(strings.ToLower(s)); n {
	case JSON, JSONL, YAML, XML, TOML, CSV, TSV:
		return n, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// Decoder draws one record at a time from an input stream. Decode
// returns io.EOF (wrapping nothing else) once the source is exhausted,
// matching the contract stream.Dispatcher expects.
type Decoder interface {
	Decode() (value.Value, error)
}

// Encoder writes one record at a time to an output stream.
type Encoder interface {
	Encode(v value.Value) error
}

// EncodeOptions controls output rendering, filled in from cmd/ flags.
type EncodeOptions struct {
	Compact bool // omit indentation/whitespace where the format allows it
	Raw     bool // print top-level strings unquoted (jq's -r)
}

// NewDecoder builds the Decoder for name, reading from r. XML and TOML
// streaming have format-specific caveats documented on their
// decoder types.
func NewDecoder(name Name, r io.Reader) (Decoder, error) {
	switch name {
	case JSON, JSONL:
		return NewJSONDecoder(r), nil
	case YAML:
		return NewYAMLDecoder(r), nil
	case XML:
		return NewXMLDecoder(r), nil
	case TOML:
		return NewTOMLDecoder(r), nil
	case CSV:
		return NewCSVDecoder(r, ',')
	case TSV:
		return NewCSVDecoder(r, '\t')
	default:
		return nil, fmt.Errorf("no decoder for format %q", name)
	}
}

// NewEncoder builds the Encoder for name, writing to w.
func NewEncoder(name Name, w io.Writer, opts EncodeOptions) (Encoder, error) {
	switch name {
	case JSON:
		return NewJSONEncoder(w, opts), nil
	case JSONL:
		return NewJSONLEncoder(w, opts), nil
	case YAML:
		return NewYAMLEncoder(w), nil
	case XML:
		return NewXMLEncoder(w, opts), nil
	case TOML:
		return NewTOMLEncoder(w), nil
	case CSV:
		return NewCSVEncoder(w, ',')
	case TSV:
		return NewCSVEncoder(w, '\t')
	default:
		return nil, fmt.Errorf("no encoder for format %q", name)
	}
}

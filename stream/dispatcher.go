/*
File    : dq/stream/dispatcher.go
Author  : dq contributors

Package stream drives the evaluator from a record source, generalizing
the earlier file/file.go (its only pre-existing streaming I/O
abstraction) and repl/repl.go's read-eval loop from "read one script,
run once" to "read one record, run the compiled query once, repeat".
*/
package stream

import (
	"io"

	"github.com/dq-lang/dq/env"
	"github.com/dq-lang/dq/format"
	"github.com/dq-lang/dq/value"
)

// Mode selects how records from the source are fed to the query.
type Mode int

const (
	// PerRecord runs the query once per record, in arrival order.
	PerRecord Mode = iota
	// Slurp collects every record into one Array and runs the query once.
	Slurp
	// NullInput runs the query once against Null; the record source, if
	// any, is still reachable through `input`/`inputs`.
	NullInput
)

// Dispatcher pulls records from a format.Decoder and drives a query
// callback once per record, once over the whole slurped input, or once
// against null, depending on Mode.
type Dispatcher struct {
	dec  format.Decoder
	mode Mode
}

func NewDispatcher(dec format.Decoder, mode Mode) *Dispatcher {
	return &Dispatcher{dec: dec, mode: mode}
}

// Run installs the shared input cursor on root (so `input`/`inputs`
// draw from the same stream as the main loop, exactly as jq's do) and
// then drives runQuery according to Mode. It stops and returns the
// first error runQuery reports.
func (d *Dispatcher) Run(root *env.Env, runQuery func(input value.Value) error) error {
	root.SetInputSource(d.next)

	switch d.mode {
	case NullInput:
		return runQuery(value.Null)

	case Slurp:
		var all []value.Value
		for {
			v, ok, err := d.next()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			all = append(all, v)
		}
		return runQuery(value.Array(all))

	default: // PerRecord
		for {
			v, ok, err := d.next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := runQuery(v); err != nil {
				return err
			}
		}
	}
}

// next adapts format.Decoder's io.EOF convention to env.Env's
// (value, more, error) NextInput contract.
func (d *Dispatcher) next() (value.Value, bool, error) {
	v, err := d.dec.Decode()
	if err == io.EOF {
		return value.Null, false, nil
	}
	if err != nil {
		return value.Value{}, false, err
	}
	return v, true, nil
}

/*
File    : dq/format/xml.go
Author  : dq contributors

Grounded on encoding/xml for tokenizing plus github.com/clbanning/mxj/v2
to fold each element's token stream into the unified Value tree — mxj is
the standard ecosystem "XML as map" library (object-of-arrays for
repeated elements, "#text"/"-attr" keys for mixed content). Decoding
walks tokens one top-level child at a time instead of handing the whole
document to mxj.NewMapXmlReader, which is what bounds memory when
streaming multi-gigabyte XML.
*/
package format

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/clbanning/mxj/v2"

	"github.com/dq-lang/dq/value"
)

// XMLDecoder yields one record per top-level child of the document
// root. A document with no children (or a self-closing root) yields
// none.
type XMLDecoder struct {
	dec     *xml.Decoder
	started bool
}

func NewXMLDecoder(r io.Reader) *XMLDecoder { return &XMLDecoder{dec: xml.NewDecoder(r)} }

func (d *XMLDecoder) Decode() (value.Value, error) {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return value.Value{}, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !d.started {
			d.started = true
			continue // this is the document root; its children are records
		}
		return d.decodeElement(start)
	}
}

// decodeElement re-serializes one element subtree via xml.Encoder and
// hands the fragment to mxj, so an individual record never requires the
// whole document in memory.
func (d *XMLDecoder) decodeElement(start xml.StartElement) (value.Value, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := enc.EncodeToken(start); err != nil {
		return value.Value{}, err
	}
	depth := 1
	for depth > 0 {
		tok, err := d.dec.Token()
		if err != nil {
			return value.Value{}, err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
		if err := enc.EncodeToken(tok); err != nil {
			return value.Value{}, err
		}
	}
	if err := enc.Flush(); err != nil {
		return value.Value{}, err
	}
	m, err := mxj.NewMapXml(buf.Bytes())
	if err != nil {
		return value.Value{}, err
	}
	return value.FromNative(map[string]any(m)), nil
}

// XMLEncoder wraps each record's Object under a fixed root tag via mxj,
// since a bare Value has no element name of its own.
type XMLEncoder struct {
	w       io.Writer
	compact bool
}

func NewXMLEncoder(w io.Writer, opts EncodeOptions) *XMLEncoder {
	return &XMLEncoder{w: w, compact: opts.Compact}
}

func (e *XMLEncoder) Encode(v value.Value) error {
	if !v.IsObject() {
		return errNotObject("xml")
	}
	m := mxj.Map(v.Native().(map[string]any))
	var (
		b   []byte
		err error
	)
	if e.compact {
		b, err = m.Xml("record")
	} else {
		b, err = m.XmlIndent("", "  ", "record")
	}
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(b, '\n'))
	return err
}

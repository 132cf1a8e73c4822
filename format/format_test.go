/*
File    : dq/format/format_test.go
Author  : dq contributors
*/
package format_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dq-lang/dq/format"
	"github.com/dq-lang/dq/value"
)

func TestJSONDecoder_PreservesKeyOrder(t *testing.T) {
	dec := format.NewJSONDecoder(strings.NewReader(`{"z": 1, "a": 2, "m": 3}`))
	v, err := dec.Decode()
	assert.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, v.Obj().Keys())
}

func TestJSONDecoder_DecodesConsecutiveDocuments(t *testing.T) {
	dec := format.NewJSONDecoder(strings.NewReader("1\n2\n3\n"))
	var got []value.Value
	for {
		v, err := dec.Decode()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3)}, got)
}

func TestJSONEncoder_CompactOmitsIndentation(t *testing.T) {
	var buf bytes.Buffer
	enc := format.NewJSONEncoder(&buf, format.EncodeOptions{Compact: true})
	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	assert.NoError(t, enc.Encode(value.ObjectValue(obj)))
	assert.Equal(t, `{"a":1}`+"\n", buf.String())
}

func TestJSONEncoder_RawPrintsTopLevelStringsUnquoted(t *testing.T) {
	var buf bytes.Buffer
	enc := format.NewJSONEncoder(&buf, format.EncodeOptions{Raw: true})
	assert.NoError(t, enc.Encode(value.String("hello")))
	assert.Equal(t, "hello\n", buf.String())
}

func TestYAMLRoundTripPreservesMappingKeyOrder(t *testing.T) {
	dec := format.NewYAMLDecoder(strings.NewReader("z: 1\na: 2\n"))
	v, err := dec.Decode()
	assert.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, v.Obj().Keys())

	var buf bytes.Buffer
	enc := format.NewYAMLEncoder(&buf)
	assert.NoError(t, enc.Encode(v))
	assert.Contains(t, buf.String(), "z: 1")
}

func TestCSVDecoder_ZipsHeaderWithRows(t *testing.T) {
	dec, err := format.NewCSVDecoder(strings.NewReader("name,age\nalice,30\nbob,40\n"), ',')
	assert.NoError(t, err)

	v, err := dec.Decode()
	assert.NoError(t, err)
	name, _ := v.Obj().Get("name")
	age, _ := v.Obj().Get("age")
	assert.Equal(t, value.String("alice"), name)
	assert.Equal(t, value.String("30"), age)

	v, err = dec.Decode()
	assert.NoError(t, err)
	name, _ = v.Obj().Get("name")
	assert.Equal(t, value.String("bob"), name)
}

func TestCSVEncoder_WritesHeaderFromFirstRecord(t *testing.T) {
	var buf bytes.Buffer
	enc, err := format.NewCSVEncoder(&buf, ',')
	assert.NoError(t, err)

	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	obj.Set("b", value.String("x"))
	assert.NoError(t, enc.Encode(value.ObjectValue(obj)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "a,b", lines[0])
	assert.Equal(t, "1,x", lines[1])
}

func TestFormatParse_RejectsUnknownName(t *testing.T) {
	_, err := format.Parse("yuml")
	assert.Error(t, err)
}

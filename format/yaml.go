/*
File    : dq/format/yaml.go
Author  : dq contributors

Grounded on gopkg.in/yaml.v3, already present in an earlier design's
dependency graph (transitively, through readline's own deps) and the
pack's canonical YAML library. Decode and encode both go through
yaml.Node rather than a plain interface{} target, since yaml.v3's
MappingNode is the only part of its API that retains key order.
*/
package format

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dq-lang/dq/value"
)

// YAMLDecoder reads one YAML document per Decode call from a
// `---`-delimited multi-document stream.
type YAMLDecoder struct{ dec *yaml.Decoder }

func NewYAMLDecoder(r io.Reader) *YAMLDecoder { return &YAMLDecoder{dec: yaml.NewDecoder(r)} }

func (d *YAMLDecoder) Decode() (value.Value, error) {
	var node yaml.Node
	if err := d.dec.Decode(&node); err != nil {
		return value.Value{}, err
	}
	if len(node.Content) == 0 {
		return value.Null, nil
	}
	return yamlNodeToValue(node.Content[0]), nil
}

func yamlNodeToValue(n *yaml.Node) value.Value {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null
		}
		return yamlNodeToValue(n.Content[0])
	case yaml.AliasNode:
		return yamlNodeToValue(n.Alias)
	case yaml.ScalarNode:
		return yamlScalarToValue(n)
	case yaml.SequenceNode:
		elems := make([]value.Value, len(n.Content))
		for i, c := range n.Content {
			elems[i] = yamlNodeToValue(c)
		}
		return value.Array(elems)
	case yaml.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			obj.Set(k.Value, yamlNodeToValue(v))
		}
		return value.ObjectValue(obj)
	default:
		return value.Null
	}
}

func yamlScalarToValue(n *yaml.Node) value.Value {
	var out any
	if err := n.Decode(&out); err != nil {
		return value.String(n.Value)
	}
	return value.FromNative(out)
}

// YAMLEncoder writes one `---`-separated document per Encode call,
// building a yaml.Node tree so mapping keys keep their insertion order.
type YAMLEncoder struct {
	w   *bufio.Writer
	enc *yaml.Encoder
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	bw := bufio.NewWriter(w)
	enc := yaml.NewEncoder(bw)
	enc.SetIndent(2)
	return &YAMLEncoder{w: bw, enc: enc}
}

func (e *YAMLEncoder) Encode(v value.Value) error {
	node := valueToYAMLNode(v)
	if err := e.enc.Encode(node); err != nil {
		return err
	}
	return e.w.Flush()
}

func valueToYAMLNode(v value.Value) *yaml.Node {
	switch {
	case v.IsNull():
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case v.IsBool():
		tag, val := "!!bool", "false"
		if v.BoolValue() {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
	case v.IsNumber():
		return &yaml.Node{Kind: yaml.ScalarNode, Value: value.FormatNumber(v.NumberValue())}
	case v.IsString():
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case v.IsArray():
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.Arr() {
			n.Content = append(n.Content, valueToYAMLNode(e))
		}
		return n
	case v.IsObject():
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Obj().Keys() {
			val, _ := v.Obj().Get(k)
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, valueToYAMLNode(val))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

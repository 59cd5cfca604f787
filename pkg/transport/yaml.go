package transport

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

const maxYAMLDepth = 512

// ParseYAML reads the first YAML document from r. An empty stream yields an
// empty object.
func ParseYAML(r io.Reader) (*Element, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Object(), nil
		}
		return nil, syntaxError("%v", err)
	}
	return fromYAMLNode(&doc, 0)
}

func fromYAMLNode(n *yaml.Node, depth int) (*Element, error) {
	if depth > maxYAMLDepth {
		return nil, syntaxError("document nested deeper than %d levels", maxYAMLDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Object(), nil
		}
		return fromYAMLNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, syntaxError("line %d: dangling alias", n.Line)
		}
		return fromYAMLNode(n.Alias, depth+1)
	case yaml.MappingNode:
		obj := Object()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, syntaxError("line %d: mapping key must be a scalar", key.Line)
			}
			v, err := fromYAMLNode(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := Array()
		for _, item := range n.Content {
			v, err := fromYAMLNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return nil, syntaxError("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (*Element, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, syntaxError("line %d: %v", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, syntaxError("line %d: %v", n.Line, err)
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, syntaxError("line %d: %v", n.Line, err)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// WriteYAML encodes e as a single YAML document with two-space indentation.
func WriteYAML(w io.Writer, e *Element) error {
	root, err := toYAMLNode(e)
	if err != nil {
		return err
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func toYAMLNode(e *Element) (*yaml.Node, error) {
	if e == nil {
		return yamlScalar("!!null", "null"), nil
	}

	switch e.Kind {
	case KindNull:
		return yamlScalar("!!null", "null"), nil
	case KindBool:
		return yamlScalar("!!bool", strconv.FormatBool(e.Bool)), nil
	case KindInt:
		return yamlScalar("!!int", strconv.FormatInt(e.Int, 10)), nil
	case KindFloat:
		if math.IsNaN(e.Float) || math.IsInf(e.Float, 0) {
			return nil, fmt.Errorf("transport: %v cannot be encoded as YAML", e.Float)
		}
		return yamlScalar("!!float", FormatFloat(e.Float)), nil
	case KindString:
		return yamlScalar("!!str", e.Str), nil
	case KindArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(e.Items) == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, item := range e.Items {
			n, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case KindObject:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if len(e.Members) == 0 {
			mapping.Style = yaml.FlowStyle
		}
		for _, m := range e.Members {
			n, err := toYAMLNode(m.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", m.Name, err)
			}
			mapping.Content = append(mapping.Content, yamlScalar("!!str", m.Name), n)
		}
		return mapping, nil
	default:
		return nil, fmt.Errorf("transport: unknown element kind %s", e.Kind)
	}
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

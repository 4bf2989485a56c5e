package yamldoc

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultIndent is the mapping indentation used when Options.Indent is unset.
const DefaultIndent = 2

// Options configures an Emitter.
type Options struct {
	// Indent is the number of spaces per nesting level. Values below 1
	// fall back to DefaultIndent.
	Indent int
}

// Emitter serializes node trees to YAML text. It holds its formatting
// configuration immutably; encoding the same tree twice yields
// byte-identical output.
type Emitter struct {
	indent int
}

// NewEmitter creates an Emitter with the given options.
func NewEmitter(opts Options) *Emitter {
	indent := opts.Indent
	if indent < 1 {
		indent = DefaultIndent
	}
	return &Emitter{indent: indent}
}

// Encode serializes root to YAML. It has no side effects beyond the
// returned bytes; writing to storage is the caller's responsibility.
func (e *Emitter) Encode(root Node) ([]byte, error) {
	yn, err := toYAML(root)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(e.indent)
	if err := enc.Encode(yn); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("yamldoc: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamldoc: close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// toYAML lowers a typed node into a yaml.Node, mapping Compact lists to
// flow style and Quoted scalars to double-quoted style.
func toYAML(n Node) (*yaml.Node, error) {
	switch t := n.(type) {
	case *Scalar:
		out := &yaml.Node{}
		if t.Value == nil {
			out.Kind = yaml.ScalarNode
			out.Tag = "!!null"
			out.Value = "null"
			return out, nil
		}
		if err := out.Encode(t.Value); err != nil {
			return nil, fmt.Errorf("yamldoc: encode scalar %v: %w", t.Value, err)
		}
		if t.Quoted {
			out.Style = yaml.DoubleQuotedStyle
		}
		return out, nil

	case *List:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if t.Compact {
			out.Style = yaml.FlowStyle
		}
		for _, item := range t.Items {
			yn, err := toYAML(item)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, yn)
		}
		return out, nil

	case *Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range t.keys {
			yn, err := toYAML(t.values[key])
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, yn)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("yamldoc: unsupported node type %T", n)
	}
}

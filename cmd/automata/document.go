package main

import (
	"fmt"

	"github.com/aretw0/automata/pkg/frozen"
	"gopkg.in/yaml.v3"
)

const setTag = "!!set"

// decodeNode converts a YAML node into plain Go values ready to be frozen.
// Unlike decoding into any, it keeps !!set nodes apart from mappings and
// accepts composite mapping keys.
func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return decodeMapping(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}

func decodeMapping(n *yaml.Node) (any, error) {
	keys := make([]any, 0, len(n.Content)/2)
	vals := make([]any, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, err := decodeNode(n.Content[i])
		if err != nil {
			return nil, err
		}
		// Composite keys must be frozen before they can index a Go map.
		if c := frozen.Classify(k); c != frozen.KindScalar && c != frozen.KindOpaque {
			if k, err = frozen.TryFreeze(k); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Content[i].Line, err)
			}
		}
		v, err := decodeNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}

	if n.Tag == setTag {
		return frozen.Members(keys), nil
	}

	out := make(map[any]any, len(keys))
	for i, k := range keys {
		if _, dup := out[k]; dup {
			continue
		}
		out[k] = vals[i]
	}
	return out, nil
}

package frozen

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the tuple as a JSON array.
func (t *Tuple) MarshalJSON() ([]byte, error) {
	return json.Marshal(nonNil(t.elems))
}

// MarshalJSON encodes the set as a JSON array in iteration order.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(nonNil(s.elems))
}

// MarshalJSON encodes the map as a JSON object. Keys are rendered with
// fmt.Sprint; keys that render identically collapse.
func (m *Map) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(m.keys))
	for i, k := range m.keys {
		obj[fmt.Sprint(k)] = m.vals[i]
	}
	return json.Marshal(obj)
}

// MarshalYAML encodes the tuple as a sequence.
func (t *Tuple) MarshalYAML() (any, error) {
	return nonNil(t.elems), nil
}

// MarshalYAML encodes the set as a sequence in iteration order.
func (s *Set) MarshalYAML() (any, error) {
	return nonNil(s.elems), nil
}

// MarshalYAML encodes the map as a mapping in iteration order, keeping key types.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range m.keys {
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return nil, fmt.Errorf("encode key %v: %w", k, err)
		}
		if err := vn.Encode(m.vals[i]); err != nil {
			return nil, fmt.Errorf("encode value of %v: %w", k, err)
		}
		node.Content = append(node.Content, &kn, &vn)
	}
	return node, nil
}

func nonNil(elems []any) []any {
	if elems == nil {
		return []any{}
	}
	return elems
}

package document

import (
	"encoding/json"
	"strings"
)

// ToMap converts the typed document into the plain JSON tree the stores
// persist and the path engine mutates.
func ToMap(d *Document) (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func FromMap(m map[string]any) (*Document, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func Decode(raw []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func Encode(d *Document) ([]byte, error) {
	return json.Marshal(d)
}

// Apply writes value at the given dot/slash-separated path within root and
// returns the new root. An empty path replaces the whole document; a nil
// value deletes the node at the path. Intermediate containers are created on
// demand. The lastUpdated stamp is the caller's responsibility.
func Apply(root map[string]any, path string, value any) (map[string]any, error) {
	if path == "" {
		norm, err := normalize(value)
		if err != nil {
			return nil, err
		}
		m, ok := norm.(map[string]any)
		if !ok {
			m = map[string]any{}
		}
		return m, nil
	}

	if root == nil {
		root = map[string]any{}
	}

	parts := splitPath(path)
	node := root
	for i := 0; i < len(parts)-1; i++ {
		child, ok := node[parts[i]].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[parts[i]] = child
		}
		node = child
	}

	leaf := parts[len(parts)-1]
	if value == nil {
		delete(node, leaf)
		return root, nil
	}

	norm, err := normalize(value)
	if err != nil {
		return nil, err
	}
	node[leaf] = norm
	return root, nil
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '.'
	})
}

// normalize round-trips value through JSON so the tree only ever holds plain
// maps, slices and scalars regardless of what typed value was written.
func normalize(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

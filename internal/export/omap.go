package export

import (
	"bytes"
	"encoding/json"
)

// orderedMap is a JSON object whose keys marshal in insertion order.
// encoding/json sorts plain map keys alphabetically, which would reorder the
// paths of the generated OpenAPI document away from endpoint order.
type orderedMap struct {
	keys []string
	vals map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{vals: make(map[string]any)}
}

// Set inserts or replaces a key. A replaced key keeps its original position.
func (m *orderedMap) Set(key string, value any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Get returns the value stored under key.
func (m *orderedMap) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Len returns the number of keys.
func (m *orderedMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *orderedMap) Keys() []string { return append([]string(nil), m.keys...) }

func (m *orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.vals[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

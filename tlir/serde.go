package tlir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

func (s *Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

func (a *Array) MarshalJSON() ([]byte, error) {
	if len(a.Values) == 0 {
		return []byte("[]"), nil
	}
	buf := &bytes.Buffer{}
	buf.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON writes fields in declaration order.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, f := range m.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if f.Value == nil {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Scalar) MarshalYAML() (interface{}, error) {
	return s.yamlNode(), nil
}

func (a *Array) MarshalYAML() (interface{}, error) {
	return a.yamlNode(), nil
}

// MarshalYAML writes fields in declaration order.
func (m *Map) MarshalYAML() (interface{}, error) {
	return m.yamlNode(), nil
}

func (s *Scalar) yamlNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Value}
}

func (a *Array) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(a.Values) > 0 && allScalars(a.Values) {
		n.Style = yaml.FlowStyle
	}
	for _, v := range a.Values {
		n.Content = append(n.Content, yamlNode(v))
	}
	return n
}

func (m *Map) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range m.Fields {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			yamlNode(f.Value),
		)
	}
	return n
}

func yamlNode(v Value) *yaml.Node {
	switch v := v.(type) {
	case *Scalar:
		return v.yamlNode()
	case *Array:
		return v.yamlNode()
	case *Map:
		return v.yamlNode()
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func allScalars(vs []Value) bool {
	for _, v := range vs {
		if _, ok := v.(*Scalar); !ok {
			return false
		}
	}
	return true
}

func mustMarshalJSON(v Value) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(fmt.Sprintf("%%!(%v)", err))
	}
	return b
}

// FromInterface converts plain Go values into a Value.
//
// Strings, numbers and booleans become scalars, slices become arrays and
// map[string]... become maps with their keys sorted since Go maps are unordered.
// Values that already implement Value are copied, nil pointers become nil.
func FromInterface(v interface{}) (Value, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case *Scalar:
		if v == nil {
			return nil, nil
		}
		return v.Copy(), nil
	case *Array:
		if v == nil {
			return nil, nil
		}
		return v.Copy(), nil
	case *Map:
		if v == nil {
			return nil, nil
		}
		return v.Copy(), nil
	case string:
		return NewScalar(v), nil
	case bool, int, int64, float64:
		return NewScalar(fmt.Sprint(v)), nil
	case []string:
		return Strings(v...), nil
	case []interface{}:
		a := &Array{}
		for i, el := range v {
			ev, err := FromInterface(el)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			if ev == nil {
				return nil, fmt.Errorf("[%d]: null array elements are not supported", i)
			}
			a.Values = append(a.Values, ev)
		}
		return a, nil
	case map[string]string:
		m := &Map{}
		for _, k := range sortedKeys(v) {
			m.Set(k, NewScalar(v[k]))
		}
		return m, nil
	case map[string][]string:
		m := &Map{}
		for _, k := range sortedKeys(v) {
			m.Set(k, Strings(v[k]...))
		}
		return m, nil
	case map[string]interface{}:
		m := &Map{}
		for _, k := range sortedKeys(v) {
			fv, err := FromInterface(v[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m.Set(k, fv)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

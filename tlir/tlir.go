// Package tlir implements an ordered tree data structure holding theme values.
//
// A theme is a *Map of category fields. Leaves are *Scalar strings and sequences are
// *Array. Maps keep their fields in declaration order and never hold two fields
// with the same name.
package tlir

import (
	"fmt"
)

type Kind string

const (
	KindScalar Kind = "scalar"
	KindArray  Kind = "array"
	KindMap    Kind = "map"
)

type Value interface {
	value()
	Kind() Kind
	// Copy returns a deep copy sharing no nodes with the receiver.
	Copy() Value
	Equal(Value) bool
	// Interface converts the value to plain Go values.
	// Maps become map[string]interface{} and so lose their order.
	Interface() interface{}
	fmt.Stringer
}

var _ Value = &Scalar{}
var _ Value = &Array{}
var _ Value = &Map{}

func (s *Scalar) value() {}
func (a *Array) value()  {}
func (m *Map) value()    {}

func (s *Scalar) Kind() Kind { return KindScalar }
func (a *Array) Kind() Kind  { return KindArray }
func (m *Map) Kind() Kind    { return KindMap }

func (s *Scalar) String() string { return string(mustMarshalJSON(s)) }
func (a *Array) String() string  { return string(mustMarshalJSON(a)) }
func (m *Map) String() string    { return string(mustMarshalJSON(m)) }

type Scalar struct {
	Value string
}

func NewScalar(s string) *Scalar {
	return &Scalar{Value: s}
}

func (s *Scalar) Copy() Value {
	return &Scalar{Value: s.Value}
}

func (s *Scalar) Equal(v Value) bool {
	s2, ok := v.(*Scalar)
	return ok && s2 != nil && s.Value == s2.Value
}

func (s *Scalar) Interface() interface{} {
	return s.Value
}

type Array struct {
	Values []Value
}

func NewArray(values ...Value) *Array {
	return &Array{Values: values}
}

// Strings builds an array of scalars.
func Strings(ss ...string) *Array {
	a := &Array{Values: make([]Value, 0, len(ss))}
	for _, s := range ss {
		a.Values = append(a.Values, NewScalar(s))
	}
	return a
}

func (a *Array) Copy() Value {
	tmp := &Array{Values: make([]Value, 0, len(a.Values))}
	for _, v := range a.Values {
		tmp.Values = append(tmp.Values, v.Copy())
	}
	return tmp
}

func (a *Array) Equal(v Value) bool {
	a2, ok := v.(*Array)
	if !ok || a2 == nil || len(a.Values) != len(a2.Values) {
		return false
	}
	for i := range a.Values {
		if !a.Values[i].Equal(a2.Values[i]) {
			return false
		}
	}
	return true
}

func (a *Array) Interface() interface{} {
	out := make([]interface{}, 0, len(a.Values))
	for _, v := range a.Values {
		out = append(out, v.Interface())
	}
	return out
}

// Contains reports whether an element equal to v is present.
func (a *Array) Contains(v Value) bool {
	for _, v2 := range a.Values {
		if v2.Equal(v) {
			return true
		}
	}
	return false
}

// ScalarStrings returns the scalar elements of a as strings.
// Non scalar elements are skipped.
func (a *Array) ScalarStrings() []string {
	var out []string
	for _, v := range a.Values {
		if s, ok := v.(*Scalar); ok {
			out = append(out, s.Value)
		}
	}
	return out
}

type Field struct {
	Name  string
	Value Value
}

func (f *Field) Copy() *Field {
	tmp := &Field{Name: f.Name}
	if f.Value != nil {
		tmp.Value = f.Value.Copy()
	}
	return tmp
}

type Map struct {
	Fields []*Field
}

// NewMap builds a map from fields. A later field replaces an earlier one of the same name.
func NewMap(fields ...*Field) *Map {
	m := &Map{}
	for _, f := range fields {
		m.Set(f.Name, f.Value)
	}
	return m
}

// F is shorthand for a *Field, mostly useful when building maps with NewMap.
func F(name string, v Value) *Field {
	return &Field{Name: name, Value: v}
}

func (m *Map) Copy() Value {
	return m.CopyMap()
}

// CopyMap is Copy without the type assertion.
func (m *Map) CopyMap() *Map {
	tmp := &Map{Fields: make([]*Field, 0, len(m.Fields))}
	for _, f := range m.Fields {
		tmp.Fields = append(tmp.Fields, f.Copy())
	}
	return tmp
}

// Equal compares fields in order since field order is significant, e.g. for screens.
func (m *Map) Equal(v Value) bool {
	m2, ok := v.(*Map)
	if !ok || m2 == nil || len(m.Fields) != len(m2.Fields) {
		return false
	}
	for i, f := range m.Fields {
		f2 := m2.Fields[i]
		if f.Name != f2.Name {
			return false
		}
		if f.Value == nil || f2.Value == nil {
			if f.Value != f2.Value {
				return false
			}
			continue
		}
		if !f.Value.Equal(f2.Value) {
			return false
		}
	}
	return true
}

func (m *Map) Interface() interface{} {
	out := make(map[string]interface{}, len(m.Fields))
	for _, f := range m.Fields {
		if f.Value == nil {
			out[f.Name] = nil
			continue
		}
		out[f.Name] = f.Value.Interface()
	}
	return out
}

func (m *Map) Len() int {
	return len(m.Fields)
}

func (m *Map) GetField(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Get returns the value of the named field or nil.
func (m *Map) Get(name string) Value {
	f := m.GetField(name)
	if f == nil {
		return nil
	}
	return f.Value
}

// GetMap returns the named field's value if it is a map.
func (m *Map) GetMap(name string) *Map {
	cm, _ := m.Get(name).(*Map)
	return cm
}

// GetArray returns the named field's value if it is an array.
func (m *Map) GetArray(name string) *Array {
	a, _ := m.Get(name).(*Array)
	return a
}

// Lookup walks nested maps by name.
func (m *Map) Lookup(path ...string) Value {
	var v Value = m
	for _, name := range path {
		cm, ok := v.(*Map)
		if !ok {
			return nil
		}
		v = cm.Get(name)
		if v == nil {
			return nil
		}
	}
	return v
}

// Set replaces the value of an existing field in place, keeping its position, or
// appends a new field.
func (m *Map) Set(name string, v Value) {
	if f := m.GetField(name); f != nil {
		f.Value = v
		return
	}
	m.Fields = append(m.Fields, &Field{Name: name, Value: v})
}

func (m *Map) Delete(name string) bool {
	for i, f := range m.Fields {
		if f.Name == name {
			copy(m.Fields[i:], m.Fields[i+1:])
			m.Fields[len(m.Fields)-1] = nil
			m.Fields = m.Fields[:len(m.Fields)-1]
			return true
		}
	}
	return false
}

func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		keys = append(keys, f.Name)
	}
	return keys
}

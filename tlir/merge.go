package tlir

// Overlay sets every field of overlay onto base, replacing existing values wholesale.
// base takes copies so the two maps share no nodes afterwards.
func Overlay(base, overlay *Map) {
	for _, of := range overlay.Fields {
		if of.Value == nil {
			base.Set(of.Name, nil)
			continue
		}
		base.Set(of.Name, of.Value.Copy())
	}
}

// Extend deep merges ext into base.
//
// Arrays are concatenated with Concat, so an element of ext is only added when no
// equal element is present yet. Maps are merged field by field. A null in ext never
// removes a value of base. In every other case the value from ext wins.
//
// A key missing from base is merged into an empty value of the same kind, so the
// result does not depend on whether base declared the key.
func Extend(base, ext *Map) {
	for _, ef := range ext.Fields {
		bf := base.GetField(ef.Name)
		if ef.Value == nil {
			if bf == nil {
				base.Set(ef.Name, nil)
			}
			continue
		}
		if bf == nil || bf.Value == nil {
			base.Set(ef.Name, extendValue(nil, ef.Value))
			continue
		}
		bf.Value = extendValue(bf.Value, ef.Value)
	}
}

func extendValue(base, ext Value) Value {
	switch ev := ext.(type) {
	case *Array:
		ba, ok := base.(*Array)
		if !ok {
			ba = &Array{}
		}
		return Concat(ba, ev)
	case *Map:
		bm, ok := base.(*Map)
		if !ok {
			bm = &Map{}
		}
		Extend(bm, ev)
		return bm
	}
	return ext.Copy()
}

// Concat returns a new array holding the elements of a followed by those of b.
// Every element of a is kept, repeats included. An element of b is dropped when
// an equal element is already in the result, so the first occurrence wins.
func Concat(a, b *Array) *Array {
	out := &Array{Values: make([]Value, 0, len(a.Values)+len(b.Values))}
	for _, v := range a.Values {
		out.Values = append(out.Values, v.Copy())
	}
	for _, v := range b.Values {
		if out.Contains(v) {
			continue
		}
		out.Values = append(out.Values, v.Copy())
	}
	return out
}

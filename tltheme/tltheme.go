// Package tltheme reads the design token categories out of a theme map.
//
// A theme is held as a *tlir.Map so that any category may be layered, but
// fonts, breakpoints and colors have a known shape and typed accessors here.
package tltheme

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"oss.terrastruct.com/tailor/tlir"
)

// Category keys of a theme.
const (
	FontFamily = "fontFamily"
	Screens    = "screens"
	Colors     = "colors"
	// Extend holds a partial theme merged additively over the rest.
	Extend = "extend"
)

var ErrInvalidScreen = errors.New("invalid screen width")

// Font family roles used by the bundled reader theme.
const (
	RoleSans  = "sans"
	RoleSerif = "serif"
	RoleMono  = "mono"
)

// FontRoles returns the font roles declared in theme, in order.
func FontRoles(theme *tlir.Map) []string {
	ff := theme.GetMap(FontFamily)
	if ff == nil {
		return nil
	}
	return ff.Keys()
}

// FontStack returns the ordered font names of role, most preferred first.
// A role declared as a single string is returned as a one element stack.
func FontStack(theme *tlir.Map, role string) []string {
	switch v := theme.Lookup(FontFamily, role).(type) {
	case *tlir.Array:
		return v.ScalarStrings()
	case *tlir.Scalar:
		return []string{v.Value}
	}
	return nil
}

type Screen struct {
	Name string
	// Raw is the declared width, e.g. 480px.
	Raw   string
	Value float64
	Unit  string
}

var screenRegex = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)(px|em|rem)$`)

// ParseScreen parses a breakpoint width such as 480px, 48em or 30rem.
func ParseScreen(name, raw string) (Screen, error) {
	m := screenRegex.FindStringSubmatch(raw)
	if m == nil {
		return Screen{}, fmt.Errorf("%w: %s: %q", ErrInvalidScreen, name, raw)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Screen{}, fmt.Errorf("%w: %s: %v", ErrInvalidScreen, name, err)
	}
	return Screen{
		Name:  name,
		Raw:   raw,
		Value: v,
		Unit:  m[2],
	}, nil
}

// ScreenList returns the breakpoints of theme in declaration order.
func ScreenList(theme *tlir.Map) ([]Screen, error) {
	sm := theme.GetMap(Screens)
	if sm == nil {
		return nil, nil
	}
	var screens []Screen
	for _, f := range sm.Fields {
		s, ok := f.Value.(*tlir.Scalar)
		if !ok {
			return nil, fmt.Errorf("%w: %s: expected a width, got %v", ErrInvalidScreen, f.Name, kindOf(f.Value))
		}
		screen, err := ParseScreen(f.Name, s.Value)
		if err != nil {
			return nil, err
		}
		screens = append(screens, screen)
	}
	return screens, nil
}

// Ascending reports whether screens sharing a unit are declared from narrowest to widest.
// It returns the first out of order screen when they are not.
func Ascending(screens []Screen) (Screen, bool) {
	last := make(map[string]float64)
	for _, s := range screens {
		if prev, ok := last[s.Unit]; ok && s.Value < prev {
			return s, false
		}
		last[s.Unit] = s.Value
	}
	return Screen{}, true
}

type Color struct {
	Role string
	// Shade is empty for colors declared as a single literal.
	Shade string
	Value string
}

func (c Color) Name() string {
	if c.Shade == "" {
		return c.Role
	}
	return c.Role + "-" + c.Shade
}

// ColorList flattens the colors of theme into role and shade pairs in declaration order.
// Values that are neither a literal nor a map of literals are skipped.
func ColorList(theme *tlir.Map) []Color {
	cm := theme.GetMap(Colors)
	if cm == nil {
		return nil
	}
	var colors []Color
	for _, f := range cm.Fields {
		switch v := f.Value.(type) {
		case *tlir.Scalar:
			colors = append(colors, Color{Role: f.Name, Value: v.Value})
		case *tlir.Map:
			for _, sf := range v.Fields {
				if s, ok := sf.Value.(*tlir.Scalar); ok {
					colors = append(colors, Color{Role: f.Name, Shade: sf.Name, Value: s.Value})
				}
			}
		}
	}
	return colors
}

// ColorValue looks up a color. shade must be empty for literal colors.
func ColorValue(theme *tlir.Map, role, shade string) (string, bool) {
	path := []string{Colors, role}
	if shade != "" {
		path = append(path, shade)
	}
	s, ok := theme.Lookup(path...).(*tlir.Scalar)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// ShadedRoles returns the color roles declared as shade maps.
func ShadedRoles(theme *tlir.Map) []string {
	cm := theme.GetMap(Colors)
	if cm == nil {
		return nil
	}
	var roles []string
	for _, f := range cm.Fields {
		if _, ok := f.Value.(*tlir.Map); ok {
			roles = append(roles, f.Name)
		}
	}
	return roles
}

func kindOf(v tlir.Value) string {
	if v == nil {
		return "null"
	}
	return string(v.Kind())
}

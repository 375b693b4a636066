// Package tlpalette defines the named shade palettes a theme can pull colors from.
// Shades run from lightest (50) to darkest (950).
package tlpalette

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"oss.terrastruct.com/tailor/tlir"
)

type Palette struct {
	Name   string
	Shades []Shade
}

type Shade struct {
	Name  string
	Value string
}

// ShadeNames are the shade keys every catalog palette defines, in order.
var ShadeNames = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

func shades(values ...string) []Shade {
	if len(values) != len(ShadeNames) {
		panic(fmt.Sprintf("palette needs %d shades, got %d", len(ShadeNames), len(values)))
	}
	out := make([]Shade, 0, len(values))
	for i, v := range values {
		out = append(out, Shade{Name: ShadeNames[i], Value: v})
	}
	return out
}

// Map returns the palette as a shade map ready to be placed under a color role.
func (p Palette) Map() *tlir.Map {
	m := &tlir.Map{}
	for _, s := range p.Shades {
		m.Set(s.Name, tlir.NewScalar(s.Value))
	}
	return m
}

func (p Palette) Shade(name string) (string, bool) {
	for _, s := range p.Shades {
		if s.Name == name {
			return s.Value, true
		}
	}
	return "", false
}

var Catalog = []Palette{
	Slate,
	Gray,
	Zinc,
	Neutral,
	Stone,
	Red,
	Amber,
	Emerald,
	Sky,
	Blue,
}

func Find(name string) (Palette, bool) {
	for _, p := range Catalog {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Palette{}, false
}

func Names() []string {
	names := make([]string, 0, len(Catalog))
	for _, p := range Catalog {
		names = append(names, p.Name)
	}
	return names
}

func CLIString() string {
	title := cases.Title(language.English)
	var s strings.Builder
	for _, p := range Catalog {
		mid, _ := p.Shade("500")
		s.WriteString(fmt.Sprintf("- %s (%s): %s\n", title.String(p.Name), p.Name, mid))
	}
	return s.String()
}

package tlpalette_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/tailor/lib/color"
	"oss.terrastruct.com/tailor/tlpalette"
)

func TestCatalogColorsAreValid(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, p := range tlpalette.Catalog {
		p := p
		assert.False(t, seen[p.Name], "duplicate palette %s", p.Name)
		seen[p.Name] = true

		t.Run(p.Name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, p.Shades, len(tlpalette.ShadeNames))

			var prev float64 = 2
			for _, s := range p.Shades {
				h, err := color.Hex(s.Value)
				assert.NoError(t, err)
				assert.Equal(t, s.Value, h, "catalog values are normalized hex")

				l, err := color.Luminance(s.Value)
				assert.NoError(t, err)
				assert.Less(t, l, prev, "%s-%s should be darker than the previous shade", p.Name, s.Name)
				prev = l
			}
		})
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	p, ok := tlpalette.Find("Zinc")
	assert.True(t, ok)
	assert.Equal(t, "zinc", p.Name)

	v, ok := p.Shade("900")
	assert.True(t, ok)
	assert.Equal(t, "#18181b", v)

	_, ok = tlpalette.Find("sepia")
	assert.False(t, ok)
}

func TestMap(t *testing.T) {
	t.Parallel()

	m := tlpalette.Sky.Map()
	assert.Equal(t, tlpalette.ShadeNames, m.Keys())
	assert.Equal(t, `"#0ea5e9"`, m.Get("500").String())
}

func TestCLIString(t *testing.T) {
	t.Parallel()

	s := tlpalette.CLIString()
	assert.True(t, strings.HasPrefix(s, "- Slate (slate): #64748b\n"), s)
	assert.Equal(t, len(tlpalette.Catalog), strings.Count(s, "\n"))
	assert.Equal(t, "slate", tlpalette.Names()[0])
}

package tltheme_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/tailor/tlir"
	"oss.terrastruct.com/tailor/tltheme"
)

func readerTheme() *tlir.Map {
	return tlir.NewMap(
		tlir.F(tltheme.FontFamily, tlir.NewMap(
			tlir.F("sans", tlir.Strings("Inter", "sans-serif")),
			tlir.F("serif", tlir.Strings("Crimson Pro", "serif")),
		)),
		tlir.F(tltheme.Screens, tlir.NewMap(
			tlir.F("sm", tlir.NewScalar("480px")),
			tlir.F("md", tlir.NewScalar("720px")),
			tlir.F("lg", tlir.NewScalar("1024px")),
			tlir.F("xl", tlir.NewScalar("1280px")),
		)),
		tlir.F(tltheme.Colors, tlir.NewMap(
			tlir.F("transparent", tlir.NewScalar("transparent")),
			tlir.F("current", tlir.NewScalar("currentColor")),
			tlir.F("sepia", tlir.NewMap(
				tlir.F("light", tlir.NewScalar("#F2E2C9")),
				tlir.F("dark", tlir.NewScalar("#34281C")),
			)),
		)),
	)
}

func TestFonts(t *testing.T) {
	t.Parallel()

	theme := readerTheme()
	assert.Equal(t, []string{"sans", "serif"}, tltheme.FontRoles(theme))
	assert.Equal(t, []string{"Crimson Pro", "serif"}, tltheme.FontStack(theme, tltheme.RoleSerif))
	assert.Nil(t, tltheme.FontStack(theme, tltheme.RoleMono))

	theme.GetMap(tltheme.FontFamily).Set("mono", tlir.NewScalar("Menlo"))
	assert.Equal(t, []string{"Menlo"}, tltheme.FontStack(theme, tltheme.RoleMono))
	assert.Nil(t, tltheme.FontRoles(tlir.NewMap()))
}

func TestScreens(t *testing.T) {
	t.Parallel()

	screens, err := tltheme.ScreenList(readerTheme())
	assert.NoError(t, err)
	assert.Len(t, screens, 4)
	assert.Equal(t, tltheme.Screen{Name: "md", Raw: "720px", Value: 720, Unit: "px"}, screens[1])

	_, ok := tltheme.Ascending(screens)
	assert.True(t, ok)

	screens[1], screens[2] = screens[2], screens[1]
	s, ok := tltheme.Ascending(screens)
	assert.False(t, ok)
	assert.Equal(t, "md", s.Name)
}

func TestParseScreen(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw    string
		exp    float64
		unit   string
		expErr bool
	}{
		{raw: "480px", exp: 480, unit: "px"},
		{raw: "48em", exp: 48, unit: "em"},
		{raw: "22.5rem", exp: 22.5, unit: "rem"},
		{raw: "480", expErr: true},
		{raw: "-1px", expErr: true},
		{raw: "wide", expErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			s, err := tltheme.ParseScreen("x", tc.raw)
			if tc.expErr {
				assert.True(t, errors.Is(err, tltheme.ErrInvalidScreen), "%v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.exp, s.Value)
			assert.Equal(t, tc.unit, s.Unit)
		})
	}
}

func TestScreenListRejectsNonScalar(t *testing.T) {
	t.Parallel()

	theme := tlir.NewMap(tlir.F(tltheme.Screens, tlir.NewMap(
		tlir.F("sm", tlir.Strings("480px")),
	)))
	_, err := tltheme.ScreenList(theme)
	assert.True(t, errors.Is(err, tltheme.ErrInvalidScreen))
}

func TestColors(t *testing.T) {
	t.Parallel()

	theme := readerTheme()
	colors := tltheme.ColorList(theme)
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"transparent", "current", "sepia-light", "sepia-dark"}, names)

	v, ok := tltheme.ColorValue(theme, "sepia", "dark")
	assert.True(t, ok)
	assert.Equal(t, "#34281C", v)

	_, ok = tltheme.ColorValue(theme, "sepia", "")
	assert.False(t, ok)

	assert.Equal(t, []string{"sepia"}, tltheme.ShadedRoles(theme))
}

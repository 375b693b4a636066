package tlload_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/diff"

	"oss.terrastruct.com/tailor/lib/log"
	"oss.terrastruct.com/tailor/lib/memfs"
	"oss.terrastruct.com/tailor/tlconfig"
	"oss.terrastruct.com/tailor/tlir"
	"oss.terrastruct.com/tailor/tlload"
	"oss.terrastruct.com/tailor/tlpalette"
	"oss.terrastruct.com/tailor/tlplugin"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		file        string
		text        string
		expTheme    string
		expPlugins  []string
		expContent  []string
		expErr      error
		expErrMatch string
	}{
		{
			name: "yaml_order",
			file: "a.yaml",
			text: `theme:
  screens:
    xl: 1280px
    sm: 480px
  fontFamily:
    serif: [Crimson Pro, serif]
`,
			expTheme: `{"screens":{"xl":"1280px","sm":"480px"},"fontFamily":{"serif":["Crimson Pro","serif"]}}`,
		},
		{
			name: "json_order",
			file: "a.json",
			text: `{
	"theme": {"screens": {"xl": "1280px", "sm": "480px"}, "opacity": {"50": 0.5}},
	"content": ["*.html"]
}`,
			expTheme:   `{"screens":{"xl":"1280px","sm":"480px"},"opacity":{"50":"0.5"}}`,
			expContent: []string{"*.html"},
		},
		{
			name: "content_files",
			file: "a.yaml",
			text: `content:
  files: ["*.html", "./src/**/*.rs"]
  relative: true
`,
			expContent: []string{"*.html", "./src/**/*.rs"},
		},
		{
			name: "plugins",
			file: "a.yaml",
			text: `plugins: ["@tailwindcss/forms", typography, Forms]
`,
			expPlugins: []string{"forms", "typography", "forms"},
		},
		{
			name: "palette_tag",
			file: "a.yaml",
			text: `theme:
  colors:
    gray: !palette zinc
    accent: palette:sky
`,
			expTheme: `{"colors":{"gray":` + tlpalette.Zinc.Map().String() + `,"accent":` + tlpalette.Sky.Map().String() + `}}`,
		},
		{
			name:     "anchors",
			file:     "a.yaml",
			text:     "theme:\n  fontFamily:\n    sans: &stack [Inter]\n    serif: *stack\n",
			expTheme: `{"fontFamily":{"sans":["Inter"],"serif":["Inter"]}}`,
		},
		{
			name:     "theme_not_map",
			file:     "a.yaml",
			text:     `theme: not-a-mapping`,
			expTheme: `"not-a-mapping"`,
		},
		{
			name: "empty",
			file: "a.yaml",
			text: "",
		},
		{
			name:   "unknown_plugin",
			file:   "a.yaml",
			text:   "plugins: [line-clamp]\n",
			expErr: tlload.ErrUnknownPlugin,
		},
		{
			name:   "unknown_palette",
			file:   "a.yaml",
			text:   "theme:\n  colors:\n    gray: !palette mauve\n",
			expErr: tlload.ErrUnknownPalette,
		},
		{
			name:        "unknown_key",
			file:        "a.yaml",
			text:        "theme: {}\nsafelist: [a]\n",
			expErrMatch: `2:1: unknown key "safelist", expected one of theme, plugins or content`,
		},
		{
			name:        "duplicate_key",
			file:        "a.json",
			text:        `{"theme": {"colors": {}, "colors": {}}}`,
			expErrMatch: `1:26: duplicate key "colors"`,
		},
		{
			name:        "top_level_list",
			file:        "a.yaml",
			text:        "- theme\n",
			expErrMatch: `1:1: expected a map at the top level`,
		},
		{
			name:        "null_in_list",
			file:        "a.yaml",
			text:        "theme:\n  fontFamily:\n    sans: [Inter, null]\n",
			expErrMatch: `3:19: null is not allowed in a list`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := log.WithTB(context.Background(), t, nil)
			f, err := tlload.Parse(ctx, tc.file, []byte(tc.text))
			if tc.expErr != nil || tc.expErrMatch != "" {
				assert.Error(t, err)
				if tc.expErr != nil {
					assert.True(t, errors.Is(err, tc.expErr), "%v", err)
				}
				if tc.expErrMatch != "" {
					assert.Contains(t, err.Error(), tc.expErrMatch)
				}
				return
			}
			if !assert.NoError(t, err) {
				return
			}

			assert.Equal(t, tc.file, f.Name)
			if tc.expTheme == "" {
				assert.Nil(t, f.Theme)
			} else {
				diff.AssertStringEq(t, tc.expTheme, f.Theme.String())
			}
			if tc.expPlugins == nil {
				assert.Empty(t, f.Plugins)
			} else {
				assert.Equal(t, tc.expPlugins, tlplugin.Names(ctx, f.Plugins))
			}
			assert.Equal(t, tc.expContent, f.Content)
		})
	}
}

func TestThemeNotMapIsMalformed(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	f, err := tlload.Parse(ctx, "bad.yaml", []byte("theme: not-a-mapping\n"))
	assert.NoError(t, err)

	_, err = tlconfig.Resolve(ctx, []*tlconfig.Fragment{f})
	assert.True(t, errors.Is(err, tlconfig.ErrMalformedFragment))
	var fe *tlconfig.FragmentError
	if assert.True(t, errors.As(err, &fe)) {
		assert.Equal(t, 0, fe.Index)
		assert.Equal(t, "bad.yaml", fe.Name)
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	fsys, err := memfs.New(map[string]string{
		"base.yaml": `theme:
  fontFamily:
    serif: [X]
plugins: [forms]
content: ["*.html"]
`,
		"overrides/site.json": `{
  "theme": {"extend": {"fontFamily": {"serif": ["Z"]}}},
  "plugins": ["typography", "forms"],
  "content": ["*.html", "*.md"]
}`,
	})
	if !assert.NoError(t, err) {
		return
	}

	fragments, err := tlload.LoadFS(ctx, fsys, "base.yaml", "overrides/site.json")
	if !assert.NoError(t, err) {
		return
	}
	rc, err := tlconfig.Resolve(ctx, fragments)
	if !assert.NoError(t, err) {
		return
	}
	diff.AssertStringEq(t, `{"fontFamily":{"serif":["X","Z"]}}`, rc.Theme.String())
	assert.Equal(t, []string{"forms", "typography", "forms"}, tlplugin.Names(ctx, rc.Plugins))
	assert.Equal(t, []string{"*.html", "*.md"}, rc.Content)

	_, err = tlload.LoadFS(ctx, fsys, "missing.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	f, err := tlload.Default(ctx)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, tlload.ReaderName, f.Name)
	assert.Equal(t, []string{"*.html", "./src/**/*.rs"}, f.Content)
	assert.Equal(t, []string{"forms"}, tlplugin.Names(ctx, f.Plugins))

	rc, err := tlconfig.Resolve(ctx, []*tlconfig.Fragment{f})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{"fontFamily", "screens", "colors"}, rc.Theme.Keys())
	assert.True(t, rc.Theme.Lookup("colors", "zinc").Equal(tlpalette.Zinc.Map()))
	assert.True(t, rc.Theme.Lookup("colors", "sepia", "dark").Equal(tlir.NewScalar("#34281C")))
	assert.NoError(t, tlconfig.Validate(ctx, rc))
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	f, err := tlload.Default(ctx)
	if !assert.NoError(t, err) {
		return
	}
	b, err := tlload.Marshal(ctx, f)
	if !assert.NoError(t, err) {
		return
	}
	f2, err := tlload.Parse(ctx, "again.yaml", b)
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, f.Theme.Equal(f2.Theme), "%s", b)
	assert.Equal(t, f.Content, f2.Content)
	assert.Equal(t, tlplugin.Names(ctx, f.Plugins), tlplugin.Names(ctx, f2.Plugins))
}

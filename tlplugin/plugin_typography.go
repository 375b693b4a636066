package tlplugin

import (
	"context"

	"oss.terrastruct.com/tailor/tlir"
	"oss.terrastruct.com/tailor/tltheme"
)

var TypographyPlugin = typographyPlugin{}

func init() {
	plugins = append(plugins, TypographyPlugin)
}

type typographyPlugin struct{}

var proseSizes = []string{"sm", "base", "lg", "xl", "2xl"}

func (p typographyPlugin) Info(context.Context) (*PluginInfo, error) {
	return bundledInfo("typography",
		"Typographic defaults for prose content",
		`typography adds prose classes for long form text, one size modifier per step
and a gray scale modifier for every shaded color in the theme.`,
		"@tailwindcss/typography",
	), nil
}

func (p typographyPlugin) Utilities(_ context.Context, theme *tlir.Map) ([]string, error) {
	utils := []string{"prose", "prose-invert"}
	for _, s := range proseSizes {
		utils = append(utils, "prose-"+s)
	}
	for _, role := range tltheme.ShadedRoles(theme) {
		utils = append(utils, "prose-"+role)
	}
	return utils, nil
}

package tlplugin

import (
	"context"

	"oss.terrastruct.com/tailor/lib/go2"
	"oss.terrastruct.com/tailor/tlir"
	"oss.terrastruct.com/tailor/tltheme"
)

var ContainerQueriesPlugin = containerQueriesPlugin{}

func init() {
	plugins = append(plugins, ContainerQueriesPlugin)
}

type containerQueriesPlugin struct{}

var containerSizes = []string{"xs", "sm", "md", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl"}

func (p containerQueriesPlugin) Info(context.Context) (*PluginInfo, error) {
	return bundledInfo("container-queries",
		"Style elements based on their container size",
		`container-queries marks containers with @container and adds an @{size} variant
for each container size. Screen names from the theme are added as variants too.`,
		"@tailwindcss/container-queries",
	), nil
}

func (p containerQueriesPlugin) Utilities(_ context.Context, theme *tlir.Map) ([]string, error) {
	screens, err := tltheme.ScreenList(theme)
	if err != nil {
		return nil, err
	}
	utils := []string{"@container"}
	for _, s := range containerSizes {
		utils = append(utils, "@"+s)
	}
	for _, s := range screens {
		v := "@" + s.Name
		if !go2.Contains(utils, v) {
			utils = append(utils, v)
		}
	}
	return utils, nil
}

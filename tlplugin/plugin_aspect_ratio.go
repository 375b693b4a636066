package tlplugin

import (
	"context"
	"strconv"

	"oss.terrastruct.com/tailor/tlir"
)

var AspectRatioPlugin = aspectRatioPlugin{}

func init() {
	plugins = append(plugins, AspectRatioPlugin)
}

type aspectRatioPlugin struct{}

const maxAspect = 16

func (p aspectRatioPlugin) Info(context.Context) (*PluginInfo, error) {
	return bundledInfo("aspect-ratio",
		"Fixed aspect ratio boxes",
		`aspect-ratio composes aspect-w-{n} and aspect-h-{n} classes, n from 1 to 16.`,
		"@tailwindcss/aspect-ratio",
	), nil
}

func (p aspectRatioPlugin) Utilities(context.Context, *tlir.Map) ([]string, error) {
	utils := make([]string, 0, maxAspect*2+1)
	for i := 1; i <= maxAspect; i++ {
		utils = append(utils, "aspect-w-"+strconv.Itoa(i))
	}
	for i := 1; i <= maxAspect; i++ {
		utils = append(utils, "aspect-h-"+strconv.Itoa(i))
	}
	return append(utils, "aspect-none"), nil
}

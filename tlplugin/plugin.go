// Package tlplugin defines the utility generating extensions a configuration can
// register and bundles the official ones.
//
// Plugins are values implementing Plugin. Configuration sources name plugins by
// string but the names are looked up once at load time with FindPlugin. Resolved
// configurations only ever hold Plugin values.
//
// See plugin_* files for the plugins available for bundling.
package tlplugin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"oss.terrastruct.com/tailor/lib/go2"
	"oss.terrastruct.com/tailor/tlir"
)

// plugins contains the bundled plugins in registration order.
var plugins []Plugin

var ErrPluginNotFound = errors.New("plugin not found")

type Plugin interface {
	// Info returns the name and help of the plugin.
	Info(context.Context) (*PluginInfo, error)

	// Utilities returns the utility class names the plugin contributes for the
	// given resolved theme. No CSS is generated here, the consuming build tool
	// owns that.
	Utilities(context.Context, *tlir.Map) ([]string, error)
}

type PluginInfo struct {
	Name      string `json:"name"`
	ShortHelp string `json:"shortHelp"`
	LongHelp  string `json:"longHelp"`

	// Aliases are other names the plugin is required by in configuration sources,
	// e.g. @tailwindcss/forms.
	Aliases []string `json:"aliases,omitempty"`

	// bundled
	Type string `json:"type"`
}

func (info *PluginInfo) Matches(name string) bool {
	if strings.EqualFold(info.Name, name) {
		return true
	}
	for _, a := range info.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func ListPlugins(ctx context.Context) ([]Plugin, error) {
	ps := make([]Plugin, len(plugins))
	copy(ps, plugins)
	return ps, nil
}

func ListPluginInfos(ctx context.Context, ps []Plugin) ([]*PluginInfo, error) {
	var infoSlice []*PluginInfo
	for _, p := range ps {
		info, err := p.Info(ctx)
		if err != nil {
			return nil, err
		}
		infoSlice = append(infoSlice, info)
	}
	slices.SortFunc(infoSlice, func(a, b *PluginInfo) bool {
		return a.Name < b.Name
	})
	return infoSlice, nil
}

// FindPlugin finds the plugin in ps whose name or alias matches name, ignoring case.
func FindPlugin(ctx context.Context, ps []Plugin, name string) (Plugin, error) {
	for _, p := range ps {
		info, err := p.Info(ctx)
		if err != nil {
			return nil, err
		}
		if info.Matches(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPluginNotFound, name)
}

// Name returns the plugin's name, or "unknown" if Info fails.
func Name(ctx context.Context, p Plugin) string {
	info, err := p.Info(ctx)
	if err != nil || info == nil {
		return "unknown"
	}
	return info.Name
}

// Names maps ps to their names, keeping order and duplicates.
func Names(ctx context.Context, ps []Plugin) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, Name(ctx, p))
	}
	return names
}

// Utilities collects the utilities of every plugin in ps for theme.
// A plugin registered more than once is only asked once.
func Utilities(ctx context.Context, ps []Plugin, theme *tlir.Map) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, name := range go2.Unique(Names(ctx, ps)) {
		p, err := FindPlugin(ctx, ps, name)
		if err != nil {
			return nil, err
		}
		utils, err := p.Utilities(ctx, theme)
		if err != nil {
			return nil, fmt.Errorf("plugin %s failed to list utilities: %w", name, err)
		}
		out[name] = utils
	}
	return out, nil
}

func bundledInfo(name, shortHelp, longHelp string, aliases ...string) *PluginInfo {
	return &PluginInfo{
		Name:      name,
		ShortHelp: shortHelp,
		LongHelp:  longHelp,
		Aliases:   aliases,
		Type:      "bundled",
	}
}

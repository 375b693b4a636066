package tlcli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"oss.terrastruct.com/tailor/lib/version"
	"oss.terrastruct.com/tailor/lib/xmain"
	"oss.terrastruct.com/tailor/tlpalette"
	"oss.terrastruct.com/tailor/tlplugin"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--format=json] [--out=-] [--strict] [--base] fragment.yaml ...
  %[1]s validate fragment.yaml ...
  %[1]s plugins [name]
  %[1]s palettes
  %[1]s utilities fragment.yaml ...

%[1]s resolves configuration fragments, applied in order, into one configuration.
Plain theme keys of later fragments replace earlier ones while theme.extend merges
into them. Plugins and content globs accumulate.

Fragments are YAML or JSON files. Use - to read a fragment from stdin.

Flags:
%[3]s

Subcommands:
  %[1]s validate fragment.yaml ... - Resolves and checks colors, screens and fonts
  %[1]s plugins - Lists bundled plugins with short help
  %[1]s plugins [name] - Display long help for a particular plugin
  %[1]s palettes - Lists the palettes available through !palette
  %[1]s utilities fragment.yaml ... - Lists the utility classes the resolved plugins contribute
  %[1]s version - Prints the version
`, filepath.Base(ms.Name), version.Version, ms.Opts.Help())
}

func pluginsCmd(ctx context.Context, ms *xmain.State, args []string) error {
	ps, err := tlplugin.ListPlugins(ctx)
	if err != nil {
		return err
	}
	switch len(args) {
	case 0:
		return shortPluginHelp(ctx, ms, ps)
	case 1:
		return longPluginHelp(ctx, ms, ps, args[0])
	}
	return xmain.UsageErrorf("plugins accepts at most one plugin name")
}

func palettesCmd(_ context.Context, ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, "Available palettes:\n%s", tlpalette.CLIString())
}

func shortPluginHelp(ctx context.Context, ms *xmain.State, ps []tlplugin.Plugin) error {
	pinfos, err := tlplugin.ListPluginInfos(ctx, ps)
	if err != nil {
		return err
	}
	var lines []string
	for _, p := range pinfos {
		lines = append(lines, fmt.Sprintf("%s (%s) - %s", p.Name, p.Type, p.ShortHelp))
	}
	fmt.Fprintf(ms.Stdout, `Available plugins:

%s

Usage:
  List plugins by name or alias under plugins in a fragment.

Example:
  plugins: ["@tailwindcss/forms", typography]

Subcommands:
  %s plugins [name] - Display long help for a particular plugin
`, strings.Join(lines, "\n"), ms.Name)
	return nil
}

func longPluginHelp(ctx context.Context, ms *xmain.State, ps []tlplugin.Plugin, name string) error {
	p, err := tlplugin.FindPlugin(ctx, ps, name)
	if err != nil {
		return xmain.UsageErrorf(`plugin %q is not bundled. The available options are: %s. For details on each option, run "%s plugins".`,
			name, strings.Join(tlplugin.Names(ctx, ps), ", "), ms.Name)
	}
	pinfo, err := p.Info(ctx)
	if err != nil {
		return err
	}

	longHelp := pinfo.LongHelp
	if !strings.HasSuffix(longHelp, "\n") {
		longHelp += "\n"
	}
	aliases := ""
	if len(pinfo.Aliases) > 0 {
		aliases = fmt.Sprintf("Aliases: %s\n\n", strings.Join(pinfo.Aliases, ", "))
	}
	fmt.Fprintf(ms.Stdout, "%s (%s):\n\n%s%s", pinfo.Name, pinfo.Type, aliases, longHelp)
	return nil
}

// Package tlcli implements the tailor command.
package tlcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"cdr.dev/slog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
	"oss.terrastruct.com/xdefer"
	"oss.terrastruct.com/xjson"

	"oss.terrastruct.com/tailor/lib/go2"
	"oss.terrastruct.com/tailor/lib/log"
	"oss.terrastruct.com/tailor/lib/version"
	"oss.terrastruct.com/tailor/lib/xmain"
	"oss.terrastruct.com/tailor/tlconfig"
	"oss.terrastruct.com/tailor/tlload"
	"oss.terrastruct.com/tailor/tlplugin"
)

type flags struct {
	out    string
	format string
	strict bool
	base   bool
}

func Run(ctx context.Context, ms *xmain.State) (err error) {
	ctx = log.WithDefault(ctx)
	// These should be kept up-to-date with the help text.
	outFlag := ms.Opts.String("TAILOR_OUT", "out", "o", "-", "path the resolved configuration is written to. - writes to stdout")
	formatFlag, err := ms.Opts.Enum("TAILOR_FORMAT", "format", "f", "json", []string{"json", "yaml"}, "output format of the resolved configuration")
	if err != nil {
		return err
	}
	strictFlag, err := ms.Opts.Bool("TAILOR_STRICT", "strict", "s", false, "validate colors, screens and fonts of the resolved theme and fail on any problem")
	if err != nil {
		return err
	}
	baseFlag, err := ms.Opts.Bool("TAILOR_BASE", "base", "b", false, "resolve the built-in reader theme before the given fragments")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		debugFlag = go2.Pointer(false)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Parse()
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}
	if *versionFlag {
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	}

	f := flags{
		out:    *outFlag,
		format: *formatFlag,
		strict: *strictFlag,
		base:   *baseFlag,
	}

	args := ms.Opts.Flags.Args()
	if len(args) > 0 {
		switch args[0] {
		case "validate":
			return validateCmd(ctx, ms, f, args[1:])
		case "plugins":
			return pluginsCmd(ctx, ms, args[1:])
		case "palettes":
			palettesCmd(ctx, ms)
			return nil
		case "utilities":
			return utilitiesCmd(ctx, ms, f, args[1:])
		case "version":
			if len(args) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	return resolveCmd(ctx, ms, f, args)
}

func resolveCmd(ctx context.Context, ms *xmain.State, f flags, paths []string) (err error) {
	defer xdefer.Errorf(&err, "failed to resolve")

	rc, err := resolve(ctx, ms, f, paths)
	if err != nil {
		return err
	}
	if f.strict {
		err = tlconfig.Validate(ctx, rc)
		if err != nil {
			return err
		}
	}

	b, err := encode(rc, f.format)
	if err != nil {
		return err
	}
	err = ms.WritePath(f.out, b)
	if err != nil {
		return err
	}
	if f.out != "-" {
		ms.Log.Success.Printf("wrote %s", f.out)
	}
	return nil
}

// resolve loads the fragments at paths, in order, after the built-in base when
// requested, and resolves them.
func resolve(ctx context.Context, ms *xmain.State, f flags, paths []string) (*tlconfig.ResolvedConfig, error) {
	if len(paths) == 0 && !f.base {
		return nil, xmain.UsageErrorf("at least one fragment must be given, or --base")
	}

	var fragments []*tlconfig.Fragment
	if f.base {
		base, err := tlload.Default(ctx)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, base)
	}
	for _, fp := range paths {
		b, err := ms.ReadPath(fp)
		if err != nil {
			return nil, err
		}
		name := fp
		if fp == "-" {
			name = "stdin"
		}
		frag, err := tlload.Parse(ctx, name, b)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frag)
	}
	ms.Log.Debug.Printf("resolving %d fragments", len(fragments))
	return tlconfig.Resolve(ctx, fragments)
}

func encode(rc *tlconfig.ResolvedConfig, format string) ([]byte, error) {
	if format == "yaml" {
		buf := &bytes.Buffer{}
		enc := yaml.NewEncoder(buf)
		enc.SetIndent(2)
		err := enc.Encode(rc)
		if err != nil {
			return nil, err
		}
		err = enc.Close()
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return []byte(xjson.MarshalIndent(rc) + "\n"), nil
}

func utilitiesCmd(ctx context.Context, ms *xmain.State, f flags, paths []string) (err error) {
	defer xdefer.Errorf(&err, "failed to list utilities")

	rc, err := resolve(ctx, ms, f, paths)
	if err != nil {
		return err
	}
	utils, err := tlplugin.Utilities(ctx, rc.Plugins, rc.Theme)
	if err != nil {
		return err
	}
	names := go2.Filter(go2.Unique(tlplugin.Names(ctx, rc.Plugins)), func(name string) bool {
		return len(utils[name]) > 0
	})
	if len(names) == 0 {
		ms.Log.Warn.Printf("no plugin contributes utilities")
		return nil
	}

	buf := &bytes.Buffer{}
	for i, name := range names {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "%s:\n", name)
		for _, class := range utils[name] {
			fmt.Fprintf(buf, "  %s\n", class)
		}
	}
	return ms.WritePath(f.out, buf.Bytes())
}

// Package tlload decodes configuration fragments from YAML and JSON sources.
//
// A source is a map with up to three keys:
//
//	content: ["*.html", "./src/**/*.rs"]   # or {files: [...]}
//	theme:
//	  colors:
//	    zinc: !palette zinc                 # or "palette:zinc"
//	plugins: ["@tailwindcss/forms"]
//
// Plugins are looked up in the bundled registry while loading so a resolved
// configuration never refers to a plugin by name.
package tlload

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"cdr.dev/slog"
	"gopkg.in/yaml.v3"
	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tailor/lib/log"
	"oss.terrastruct.com/tailor/tlconfig"
	"oss.terrastruct.com/tailor/tlir"
	"oss.terrastruct.com/tailor/tlpalette"
	"oss.terrastruct.com/tailor/tlplugin"
)

var (
	ErrUnknownPlugin  = errors.New("unknown plugin")
	ErrUnknownPalette = errors.New("unknown palette")
)

const (
	paletteTag    = "!palette"
	palettePrefix = "palette:"
)

//go:embed reader.yaml
var readerSource []byte

// ReaderName is the fragment name of Default.
const ReaderName = "reader.yaml"

// Default returns the bundled theme of the reader web app, usable as a base fragment.
func Default(ctx context.Context) (*tlconfig.Fragment, error) {
	return Parse(ctx, ReaderName, readerSource)
}

// LoadFS parses the fragments at paths in fsys, in order.
func LoadFS(ctx context.Context, fsys fs.FS, paths ...string) ([]*tlconfig.Fragment, error) {
	fragments := make([]*tlconfig.Fragment, 0, len(paths))
	for _, p := range paths {
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, err
		}
		f, err := Parse(ctx, p, b)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}

// Parse decodes one fragment. Files named *.json are read as JSON, everything else
// as YAML.
func Parse(ctx context.Context, name string, data []byte) (_ *tlconfig.Fragment, err error) {
	defer xdefer.Errorf(&err, "failed to load %s", name)
	ctx = log.Named(ctx, "load")

	var root *yaml.Node
	if strings.EqualFold(path.Ext(name), ".json") {
		root, err = parseJSON(data)
	} else {
		root, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	l := &loader{ctx: ctx}
	l.plugins, err = tlplugin.ListPlugins(ctx)
	if err != nil {
		return nil, err
	}

	f := &tlconfig.Fragment{Name: name}
	if root == nil {
		return f, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nodeErrorf(root, "expected a map at the top level")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		switch k.Value {
		case "theme":
			f.Theme, err = l.value(v)
		case "plugins":
			f.Plugins, err = l.pluginList(v)
		case "content":
			f.Content, err = l.content(v)
		default:
			err = nodeErrorf(k, "unknown key %q, expected one of theme, plugins or content", k.Value)
		}
		if err != nil {
			return nil, err
		}
	}

	log.Debug(ctx, "loaded fragment",
		slog.F("name", name),
		slog.F("plugins", tlplugin.Names(ctx, f.Plugins)),
		slog.F("content", f.Content),
	)
	return f, nil
}

func parseYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

type loader struct {
	ctx     context.Context
	plugins []tlplugin.Plugin
}

func (l *loader) value(n *yaml.Node) (tlir.Value, error) {
	if n.Kind == yaml.AliasNode {
		return l.value(n.Alias)
	}
	if n.Tag == paletteTag {
		return paletteValue(n, n.Value)
	}

	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		if strings.HasPrefix(n.Value, palettePrefix) {
			return paletteValue(n, strings.TrimPrefix(n.Value, palettePrefix))
		}
		return tlir.NewScalar(n.Value), nil
	case yaml.SequenceNode:
		a := &tlir.Array{Values: make([]tlir.Value, 0, len(n.Content))}
		for _, c := range n.Content {
			v, err := l.value(c)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, nodeErrorf(c, "null is not allowed in a list")
			}
			a.Values = append(a.Values, v)
		}
		return a, nil
	case yaml.MappingNode:
		m := &tlir.Map{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, c := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, nodeErrorf(k, "map keys must be strings")
			}
			if m.GetField(k.Value) != nil {
				return nil, nodeErrorf(k, "duplicate key %q", k.Value)
			}
			v, err := l.value(c)
			if err != nil {
				return nil, err
			}
			m.Fields = append(m.Fields, &tlir.Field{Name: k.Value, Value: v})
		}
		return m, nil
	}
	return nil, nodeErrorf(n, "unexpected yaml node")
}

func paletteValue(n *yaml.Node, name string) (tlir.Value, error) {
	name = strings.TrimSpace(name)
	p, ok := tlpalette.Find(name)
	if !ok {
		return nil, nodeErrorf(n, "%w %q, expected one of %s", ErrUnknownPalette, name, strings.Join(tlpalette.Names(), ", "))
	}
	return p.Map(), nil
}

func (l *loader) pluginList(n *yaml.Node) ([]tlplugin.Plugin, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(n, "plugins must be a list")
	}
	ps := make([]tlplugin.Plugin, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, nodeErrorf(c, "plugins must be named by string")
		}
		p, err := tlplugin.FindPlugin(l.ctx, l.plugins, c.Value)
		if errors.Is(err, tlplugin.ErrPluginNotFound) {
			return nil, nodeErrorf(c, "%w %q", ErrUnknownPlugin, c.Value)
		} else if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (l *loader) content(n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.MappingNode {
		var files *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Value == "files" {
				files = n.Content[i+1]
				continue
			}
			log.Warn(l.ctx, "ignoring content option", slog.F("key", k.Value), slog.F("line", k.Line))
		}
		if files == nil {
			return nil, nodeErrorf(n, "content map must have a files list")
		}
		n = files
	}
	if n.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(n, "content must be a list of globs")
	}
	globs := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode || c.Value == "" {
			return nil, nodeErrorf(c, "content globs must be non empty strings")
		}
		globs = append(globs, c.Value)
	}
	return globs, nil
}

func nodeErrorf(n *yaml.Node, msg string, v ...interface{}) error {
	err := fmt.Errorf(msg, v...)
	if n == nil || n.Line == 0 {
		return err
	}
	return fmt.Errorf("%d:%d: %w", n.Line, n.Column, err)
}

// Marshal encodes a fragment's theme, plugins and content back into YAML.
func Marshal(ctx context.Context, f *tlconfig.Fragment) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(f.Content) > 0 {
		doc.Content = append(doc.Content, keyNode("content"), stringsNode(f.Content))
	}
	if f.Theme != nil {
		tn := &yaml.Node{}
		err := tn.Encode(f.Theme)
		if err != nil {
			return nil, err
		}
		doc.Content = append(doc.Content, keyNode("theme"), tn)
	}
	if len(f.Plugins) > 0 {
		doc.Content = append(doc.Content, keyNode("plugins"), stringsNode(tlplugin.Names(ctx, f.Plugins)))
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	err := enc.Encode(doc)
	if err != nil {
		return nil, err
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func keyNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func stringsNode(ss []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, s := range ss {
		n.Content = append(n.Content, keyNode(s))
	}
	return n
}

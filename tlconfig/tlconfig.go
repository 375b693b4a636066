// Package tlconfig resolves layered configuration fragments into the single
// configuration object consumed by the utility class generator.
//
// Fragments are applied in order. Plain theme keys replace what earlier fragments
// declared, the extend key deep merges, and plugins and content globs accumulate.
package tlconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cdr.dev/slog"

	"oss.terrastruct.com/tailor/lib/go2"
	"oss.terrastruct.com/tailor/lib/log"
	"oss.terrastruct.com/tailor/tlir"
	"oss.terrastruct.com/tailor/tlplugin"
	"oss.terrastruct.com/tailor/tltheme"
)

var (
	ErrEmptyInput        = errors.New("no configuration fragments given")
	ErrMalformedFragment = errors.New("malformed fragment")
)

// FragmentError reports which fragment could not be resolved.
type FragmentError struct {
	Index  int
	Name   string
	Reason string
	Err    error
}

func (e *FragmentError) Error() string {
	s := fmt.Sprintf("fragment %d", e.Index)
	if e.Name != "" {
		s += fmt.Sprintf(" (%s)", e.Name)
	}
	return fmt.Sprintf("%s: %v: %s", s, e.Err, e.Reason)
}

func (e *FragmentError) Unwrap() error {
	return e.Err
}

func malformed(i int, f *Fragment, reason string, v ...interface{}) error {
	fe := &FragmentError{
		Index:  i,
		Reason: fmt.Sprintf(reason, v...),
		Err:    ErrMalformedFragment,
	}
	if f != nil {
		fe.Name = f.Name
	}
	return fe
}

// Fragment is one declared, possibly partial, unit of configuration.
type Fragment struct {
	// Name identifies the fragment in errors and logs, usually its source path.
	Name string

	// Theme must be a *tlir.Map when set. It is a Value so that loaders can pass
	// whatever was declared and leave rejecting it to Resolve.
	Theme   tlir.Value
	Plugins []tlplugin.Plugin
	Content []string
}

type ResolvedConfig struct {
	Content []string
	// Theme never contains an extend key.
	Theme   *tlir.Map
	Plugins []tlplugin.Plugin
}

// Resolve merges fragments in order into a ResolvedConfig.
//
// For each fragment every top level theme key other than extend replaces the key
// resolved so far. Then extend, if present, is deep merged: arrays concatenate
// without repeating equal elements and maps merge key by key. Plugins concatenate
// as is, duplicates included. Content globs concatenate keeping the first of any
// duplicates.
//
// Fragments are not modified and the result shares no theme nodes with them.
func Resolve(ctx context.Context, fragments []*Fragment) (*ResolvedConfig, error) {
	if len(fragments) == 0 {
		return nil, ErrEmptyInput
	}
	ctx = log.Named(ctx, "resolve")

	rc := &ResolvedConfig{
		Content: []string{},
		Theme:   &tlir.Map{},
		Plugins: []tlplugin.Plugin{},
	}
	for i, f := range fragments {
		if f == nil {
			return nil, malformed(i, f, "fragment is nil")
		}
		err := rc.apply(ctx, i, f)
		if err != nil {
			return nil, err
		}
	}
	rc.Content = go2.Unique(rc.Content)
	return rc, nil
}

func (rc *ResolvedConfig) apply(ctx context.Context, i int, f *Fragment) error {
	var theme *tlir.Map
	switch t := f.Theme.(type) {
	case nil:
	case *tlir.Map:
		theme = t
	default:
		return malformed(i, f, "theme must be a map, got %s", t.Kind())
	}

	if theme != nil {
		var ext *tlir.Map
		if ev := theme.Get(tltheme.Extend); ev != nil {
			var ok bool
			ext, ok = ev.(*tlir.Map)
			if !ok {
				return malformed(i, f, "theme.%s must be a map, got %s", tltheme.Extend, ev.Kind())
			}
			if ext.Get(tltheme.Extend) != nil {
				return malformed(i, f, "theme.%[1]s cannot contain %[1]s", tltheme.Extend)
			}
		}

		plain := &tlir.Map{Fields: go2.Filter(theme.Fields, func(tf *tlir.Field) bool {
			return tf.Name != tltheme.Extend
		})}
		tlir.Overlay(rc.Theme, plain)
		if ext != nil {
			tlir.Extend(rc.Theme, ext)
		}
	}

	rc.Plugins = append(rc.Plugins, f.Plugins...)
	rc.Content = append(rc.Content, f.Content...)

	log.Debug(ctx, "applied fragment",
		slog.F("index", i),
		slog.F("name", f.Name),
		slog.F("theme_keys", themeKeys(theme)),
		slog.F("plugins", len(f.Plugins)),
		slog.F("content", len(f.Content)),
	)
	return nil
}

func themeKeys(m *tlir.Map) []string {
	if m == nil {
		return nil
	}
	return m.Keys()
}

// Fragment returns rc as a fragment. Resolving it alone yields a config equal to rc.
func (rc *ResolvedConfig) Fragment() *Fragment {
	f := &Fragment{
		Name:    "resolved",
		Plugins: append([]tlplugin.Plugin(nil), rc.Plugins...),
		Content: append([]string(nil), rc.Content...),
	}
	if rc.Theme != nil {
		f.Theme = rc.Theme.CopyMap()
	}
	return f
}

// Equal compares plugins by name.
func (rc *ResolvedConfig) Equal(ctx context.Context, rc2 *ResolvedConfig) bool {
	if rc == nil || rc2 == nil {
		return rc == rc2
	}
	if !stringsEqual(rc.Content, rc2.Content) {
		return false
	}
	if !stringsEqual(tlplugin.Names(ctx, rc.Plugins), tlplugin.Names(ctx, rc2.Plugins)) {
		return false
	}
	return rc.Theme.Equal(rc2.Theme)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type resolvedJSON struct {
	Content []string  `json:"content" yaml:"content"`
	Theme   *tlir.Map `json:"theme" yaml:"theme"`
	Plugins []string  `json:"plugins" yaml:"plugins"`
}

func (rc *ResolvedConfig) serializable() resolvedJSON {
	theme := rc.Theme
	if theme == nil {
		theme = &tlir.Map{}
	}
	content := rc.Content
	if content == nil {
		content = []string{}
	}
	return resolvedJSON{
		Content: content,
		Theme:   theme,
		Plugins: tlplugin.Names(context.Background(), rc.Plugins),
	}
}

// MarshalJSON writes plugins by name and the theme in declaration order.
func (rc *ResolvedConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(rc.serializable())
}

func (rc *ResolvedConfig) MarshalYAML() (interface{}, error) {
	return rc.serializable(), nil
}

package tlconfig

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cdr.dev/slog"
	"go.uber.org/multierr"

	"oss.terrastruct.com/tailor/lib/color"
	"oss.terrastruct.com/tailor/lib/log"
	"oss.terrastruct.com/tailor/tlir"
	"oss.terrastruct.com/tailor/tltheme"
)

// Validate checks the values of the known theme categories and returns every
// problem found combined into one error.
//
// Screens that are not declared in ascending order are allowed but logged.
func Validate(ctx context.Context, rc *ResolvedConfig) error {
	if rc == nil || rc.Theme == nil {
		return nil
	}
	var err error
	err = multierr.Append(err, validateColors(ctx, rc.Theme))
	err = multierr.Append(err, validateScreens(ctx, rc.Theme))
	err = multierr.Append(err, validateFonts(rc.Theme))
	return err
}

func validateColors(ctx context.Context, theme *tlir.Map) (err error) {
	cm := theme.Get(tltheme.Colors)
	if cm == nil {
		return nil
	}
	m, ok := cm.(*tlir.Map)
	if !ok {
		return fmt.Errorf("%s must be a map, got %s", tltheme.Colors, cm.Kind())
	}
	for _, f := range m.Fields {
		switch v := f.Value.(type) {
		case *tlir.Scalar:
			if verr := color.Validate(v.Value); verr != nil {
				err = multierr.Append(err, fmt.Errorf("colors.%s: %w", f.Name, verr))
			}
		case *tlir.Map:
			for _, sf := range v.Fields {
				s, ok := sf.Value.(*tlir.Scalar)
				if !ok {
					err = multierr.Append(err, fmt.Errorf("colors.%s.%s: shades must be color strings", f.Name, sf.Name))
					continue
				}
				if verr := color.Validate(s.Value); verr != nil {
					err = multierr.Append(err, fmt.Errorf("colors.%s.%s: %w", f.Name, sf.Name, verr))
				}
			}
			warnShadeOrder(ctx, f.Name, v)
		default:
			err = multierr.Append(err, fmt.Errorf("colors.%s: expected a color or a map of shades", f.Name))
		}
	}
	return err
}

func validateScreens(ctx context.Context, theme *tlir.Map) (err error) {
	sv := theme.Get(tltheme.Screens)
	if sv == nil {
		return nil
	}
	m, ok := sv.(*tlir.Map)
	if !ok {
		return fmt.Errorf("%s must be a map, got %s", tltheme.Screens, sv.Kind())
	}
	var screens []tltheme.Screen
	for _, f := range m.Fields {
		s, ok := f.Value.(*tlir.Scalar)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("screens.%s: %w: expected a width", f.Name, tltheme.ErrInvalidScreen))
			continue
		}
		screen, perr := tltheme.ParseScreen(f.Name, s.Value)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("screens: %w", perr))
			continue
		}
		screens = append(screens, screen)
	}
	if s, ok := tltheme.Ascending(screens); !ok {
		log.Warn(ctx, "screens are not declared from narrowest to widest",
			slog.F("screen", s.Name),
			slog.F("width", s.Raw),
		)
	}
	return err
}

func validateFonts(theme *tlir.Map) (err error) {
	fv := theme.Get(tltheme.FontFamily)
	if fv == nil {
		return nil
	}
	m, ok := fv.(*tlir.Map)
	if !ok {
		return fmt.Errorf("%s must be a map, got %s", tltheme.FontFamily, fv.Kind())
	}
	for _, role := range m.Keys() {
		stack := tltheme.FontStack(theme, role)
		if len(stack) == 0 {
			err = multierr.Append(err, fmt.Errorf("fontFamily.%s: must name at least one font", role))
			continue
		}
		for i, name := range stack {
			if strings.TrimSpace(name) == "" {
				err = multierr.Append(err, fmt.Errorf("fontFamily.%s[%d]: font name is empty", role, i))
			}
		}
	}
	return err
}

// warnShadeOrder logs when numbered shades do not darken as the number grows.
func warnShadeOrder(ctx context.Context, role string, shades *tlir.Map) {
	lastShade := ""
	lastNum, lastLum := -1.0, 0.0
	for _, f := range shades.Fields {
		num, err := strconv.ParseFloat(f.Name, 64)
		if err != nil {
			continue
		}
		s, ok := f.Value.(*tlir.Scalar)
		if !ok {
			continue
		}
		lum, err := color.Luminance(s.Value)
		if err != nil {
			continue
		}
		if lastNum >= 0 && num > lastNum && lum > lastLum {
			log.Warn(ctx, "shades should run from lightest to darkest",
				slog.F("color", role),
				slog.F("shade", f.Name),
				slog.F("lighter_than", lastShade),
			)
			return
		}
		lastShade, lastNum, lastLum = f.Name, num, lum
	}
}

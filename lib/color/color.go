// Package color validates and normalizes the CSS color literals declared in themes.
package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Keywords are accepted as colors but do not name a concrete value.
const (
	Transparent  = "transparent"
	CurrentColor = "currentColor"
	Inherit      = "inherit"
)

func IsKeyword(colorString string) bool {
	switch strings.ToLower(strings.TrimSpace(colorString)) {
	case strings.ToLower(Transparent), strings.ToLower(CurrentColor), Inherit:
		return true
	}
	return false
}

// Validate returns an error if colorString is neither a keyword nor a parseable CSS color.
func Validate(colorString string) error {
	if IsKeyword(colorString) {
		return nil
	}
	_, err := csscolorparser.Parse(colorString)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	return nil
}

// Hex normalizes colorString to lowercase #rrggbb.
// Keywords are returned unchanged.
func Hex(colorString string) (string, error) {
	if IsKeyword(colorString) {
		return colorString, nil
	}
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), nil
}

// Luminance approximates the perceived brightness of colorString from 0 (black) to 1 (white).
func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}

	l := float64(0.299)*c.R +
		float64(0.587)*c.G +
		float64(0.114)*c.B
	return l, nil
}

package scene

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// BackgroundHex is the mask color for regions that belong to no object.
const BackgroundHex = "#000000"

// HexColor formats an RGB triplet as an uppercase "#RRGGBB" string.
func HexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// NormalizeHex validates a "#RRGGBB" string (the '#' is optional) and returns
// it uppercased with the leading '#'.
func NormalizeHex(s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return "#" + strings.ToUpper(s), nil
}

// SameColor compares two hex colors case-insensitively.
func SameColor(a, b string) bool {
	return strings.EqualFold(a, b)
}

// PixelAt returns the non-premultiplied color of img at (x, y), where x and y
// are relative to the image origin. ok is false outside the image.
func PixelAt(img image.Image, x, y int) (c color.NRGBA, ok bool) {
	b := img.Bounds()
	px, py := b.Min.X+x, b.Min.Y+y
	if x < 0 || y < 0 || px >= b.Max.X || py >= b.Max.Y {
		return color.NRGBA{}, false
	}

	switch m := img.(type) {
	case *image.NRGBA:
		i := m.PixOffset(px, py)
		return color.NRGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: m.Pix[i+3]}, true
	case *image.RGBA:
		i := m.PixOffset(px, py)
		if m.Pix[i+3] == 0xff {
			return color.NRGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: 0xff}, true
		}
	}
	return color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA), true
}

// IsBackground reports whether a sampled pixel carries no object identity:
// fully transparent, or the black no-object sentinel.
func IsBackground(c color.NRGBA) bool {
	return c.A == 0 || (c.R == 0 && c.G == 0 && c.B == 0)
}

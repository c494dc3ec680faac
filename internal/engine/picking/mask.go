// Package picking resolves which object lies under a world point by sampling
// the scene mask.
package picking

import (
	"image"
	gomath "math"

	"github.com/Faultbox/wildsnap/internal/scene"
	"github.com/Faultbox/wildsnap/pkg/math"
)

// DefaultRadius is the half-width of the neighborhood searched when the
// sampled pixel is background.
const DefaultRadius = 12

// Sample is the result of picking at a point.
type Sample struct {
	X, Y     int    // pixel that was sampled
	Color    string // effective "#RRGGBB", empty when nothing was found
	Fallback bool   // color came from the neighborhood search
}

// Sampler reads object colors from a mask raster.
type Sampler struct {
	mask   image.Image
	radius int
}

// NewSampler creates a sampler. A negative radius disables the neighborhood search.
func NewSampler(mask image.Image, radius int) *Sampler {
	return &Sampler{mask: mask, radius: radius}
}

// Radius returns the neighborhood half-width.
func (s *Sampler) Radius() int {
	return s.radius
}

// InBounds reports whether a world point falls on a mask pixel.
func (s *Sampler) InBounds(p math.Vec2) bool {
	if s.mask == nil {
		return false
	}
	b := s.mask.Bounds()
	return p.X >= 0 && p.Y >= 0 && p.X < float64(b.Dx()) && p.Y < float64(b.Dy())
}

// SampleAt picks the object color at a world point, rounded to the nearest
// pixel. Background pixels (transparent or black) fall back to the most
// frequent object color in the surrounding square. A point on the mask that
// rounds past its last row or column counts as background. ok is false when
// the point is outside the mask or no object color is near it.
func (s *Sampler) SampleAt(p math.Vec2) (Sample, bool) {
	x, y := int(gomath.Round(p.X)), int(gomath.Round(p.Y))
	smp := Sample{X: x, Y: y}
	if s.mask == nil {
		return smp, false
	}

	c, ok := scene.PixelAt(s.mask, x, y)
	if !ok && !s.InBounds(p) {
		return smp, false
	}
	if ok && !scene.IsBackground(c) {
		smp.Color = scene.HexColor(c.R, c.G, c.B)
		return smp, true
	}

	if hex, found := s.Neighborhood(x, y); found {
		smp.Color = hex
		smp.Fallback = true
		return smp, true
	}
	return smp, false
}

// Neighborhood builds a histogram of object colors in the square of
// half-width Radius around (x, y) and returns the most frequent one. Ties go to
// the color seen first in row-major order.
func (s *Sampler) Neighborhood(x, y int) (string, bool) {
	if s.mask == nil || s.radius < 0 {
		return "", false
	}
	b := s.mask.Bounds()
	x0, x1 := max(0, x-s.radius), min(b.Dx()-1, x+s.radius)
	y0, y1 := max(0, y-s.radius), min(b.Dy()-1, y+s.radius)

	counts := make(map[uint32]int)
	var order []uint32
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c, _ := scene.PixelAt(s.mask, px, py)
			if scene.IsBackground(c) {
				continue
			}
			key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	if len(order) == 0 {
		return "", false
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return scene.HexColor(uint8(best>>16), uint8(best>>8), uint8(best)), true
}

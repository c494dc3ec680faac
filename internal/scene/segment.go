package scene

import (
	"image"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/wildsnap/internal/logger"
)

// MinRadius is the smallest radius assigned to a segmented object.
const MinRadius = 8

// ColorAggregate accumulates the pixels of one mask color during a scan.
type ColorAggregate struct {
	SumX, SumY float64
	Count      int
	MinX, MinY int
	MaxX, MaxY int
}

func (a *ColorAggregate) add(x, y int) {
	if a.Count == 0 {
		a.MinX, a.MinY, a.MaxX, a.MaxY = x, y, x, y
	} else {
		a.MinX = min(a.MinX, x)
		a.MinY = min(a.MinY, y)
		a.MaxX = max(a.MaxX, x)
		a.MaxY = max(a.MaxY, y)
	}
	a.SumX += float64(x)
	a.SumY += float64(y)
	a.Count++
}

// Centroid returns the mean pixel position.
func (a *ColorAggregate) Centroid() (x, y float64) {
	return a.SumX / float64(a.Count), a.SumY / float64(a.Count)
}

// Radius approximates the object radius from its bounding box.
func (a *ColorAggregate) Radius() float64 {
	w := a.MaxX - a.MinX + 1
	h := a.MaxY - a.MinY + 1
	return math.Max(MinRadius, math.Round(float64(max(w, h))/2))
}

// Bounds returns the bounding box in mask coordinates (max exclusive).
func (a *ColorAggregate) Bounds() image.Rectangle {
	return image.Rect(a.MinX, a.MinY, a.MaxX+1, a.MaxY+1)
}

// Segment scans the mask once and aggregates opaque pixels by color.
// Keys are uppercase "#RRGGBB". Transparent pixels are skipped.
func Segment(mask image.Image) map[string]*ColorAggregate {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	// Pack RGB into a uint32 while scanning to avoid formatting every pixel.
	packed := make(map[uint32]*ColorAggregate)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := PixelAt(mask, x, y)
			if c.A == 0 {
				continue
			}
			key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
			acc := packed[key]
			if acc == nil {
				acc = &ColorAggregate{}
				packed[key] = acc
			}
			acc.add(x, y)
		}
	}

	out := make(map[string]*ColorAggregate, len(packed))
	for key, acc := range packed {
		out[HexColor(uint8(key>>16), uint8(key>>8), uint8(key))] = acc
	}
	return out
}

// SortedColors returns the aggregate keys ordered by descending pixel count.
func SortedColors(aggs map[string]*ColorAggregate) []string {
	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := aggs[keys[i]].Count, aggs[keys[j]].Count
		if ci != cj {
			return ci > cj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ExtractPositions segments the scene mask and assigns centroid and radius to
// every object whose color occurs in it. Objects whose color is missing are
// cleared and logged; they stay untargetable. Safe to call repeatedly.
func (s *Scene) ExtractPositions() {
	if s.mask == nil {
		logger.Warn("scene has no mask, skipping segmentation", zap.String("scene", s.def.Name))
		return
	}

	aggs := Segment(s.mask)
	located := 0
	for _, obj := range s.objects {
		acc, ok := aggs[obj.Color]
		if !ok || acc.Count == 0 {
			obj.X, obj.Y, obj.Radius, obj.Positioned = 0, 0, 0, false
			logger.Warn("color not found in mask",
				zap.String("scene", s.def.Name),
				zap.String("object", obj.Name),
				zap.String("color", obj.Color))
			continue
		}
		obj.X, obj.Y = acc.Centroid()
		obj.Radius = acc.Radius()
		obj.Positioned = true
		located++
	}

	logger.Debug("mask segmented",
		zap.String("scene", s.def.Name),
		zap.Int("colors", len(aggs)),
		zap.Int("located", located),
		zap.Int("objects", len(s.objects)))
}

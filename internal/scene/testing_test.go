package scene

import (
	"image"
	"image/color"
)

// block describes an opaque rectangle painted into a synthetic mask.
type block struct {
	rect image.Rectangle
	c    color.NRGBA
}

func newMask(w, h int, blocks ...block) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, b := range blocks {
		for y := b.rect.Min.Y; y < b.rect.Max.Y; y++ {
			for x := b.rect.Min.X; x < b.rect.Max.X; x++ {
				img.SetNRGBA(x, y, b.c)
			}
		}
	}
	return img
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Package texture cuts capture artifacts out of the scene background.
package texture

import (
	"image"
	"image/color"
	gomath "math"

	"golang.org/x/image/draw"
)

// Cutout and polaroid framing constants, in pixels.
const (
	CutoutPadding  = 12
	PolaroidBorder = 20
	PolaroidFooter = 40 // extra caption space under the bottom border
)

// polaroidEdge is the faint inner frame drawn around the photo.
var polaroidEdge = color.NRGBA{A: 20}

// CutoutBounds returns the region of an image around an object: its centroid
// plus and minus the radius, padded, with a taller bottom margin, clamped to
// the image. Coordinates are relative to the image origin.
func CutoutBounds(x, y, radius float64, size image.Point) image.Rectangle {
	pad := float64(CutoutPadding)
	left := max(0, int(gomath.Floor(x-radius-pad)))
	top := max(0, int(gomath.Floor(y-radius-pad)))
	w := min(size.X-left, int(gomath.Floor(radius*2+pad*2)))
	h := min(size.Y-top, int(gomath.Floor(radius*2+pad*3)))
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(left, top, left+w, top+h)
}

// Cutout copies region r (relative to the image origin) into a new image
// whose bounds start at (0, 0).
func Cutout(img image.Image, r image.Rectangle) *image.NRGBA {
	src := r.Add(img.Bounds().Min).Intersect(img.Bounds())
	dst := image.NewNRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

// Polaroid frames a photo on a white card. Photos whose longer edge exceeds
// maxEdge are scaled down first; maxEdge <= 0 keeps the original size.
func Polaroid(photo image.Image, maxEdge int) *image.NRGBA {
	photo = fit(photo, maxEdge)
	pb := photo.Bounds()
	w, h := pb.Dx(), pb.Dy()

	card := image.NewNRGBA(image.Rect(0, 0, w+2*PolaroidBorder, h+2*PolaroidBorder+PolaroidFooter))
	draw.Draw(card, card.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(card, image.Rect(PolaroidBorder, PolaroidBorder, PolaroidBorder+w, PolaroidBorder+h), photo, pb.Min, draw.Src)

	inset := PolaroidBorder / 2
	strokeRect(card, image.Rect(inset, inset, w+PolaroidBorder+inset, h+PolaroidBorder+inset), polaroidEdge)
	return card
}

// fit scales img down so its longer edge is at most maxEdge.
func fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxEdge <= 0 || longest <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(longest)
	w := max(1, int(gomath.Round(float64(b.Dx())*scale)))
	h := max(1, int(gomath.Round(float64(b.Dy())*scale)))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// strokeRect draws a one pixel outline blended over dst.
func strokeRect(dst draw.Image, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	}
	for _, e := range edges {
		draw.Draw(dst, e, u, image.Point{}, draw.Over)
	}
}

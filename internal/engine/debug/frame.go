package debug

import (
	"image"
	"image/color"
	gomath "math"

	"golang.org/x/image/draw"

	"github.com/Faultbox/wildsnap/internal/engine/viewport"
	"github.com/Faultbox/wildsnap/internal/scene"
)

// Overlay colors.
var (
	OutlineColor   = color.NRGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	CrosshairColor = color.NRGBA{R: 0xFF, A: 0xC0}
	ToleranceColor = color.NRGBA{G: 0xFF, A: 0xC0}
	emptyColor     = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF}
)

// FrameOptions controls what RenderFrame draws on top of the scene.
type FrameOptions struct {
	// Debug adds a center crosshair and the aim tolerance box.
	Debug     bool
	Tolerance float64
}

// RenderFrame draws what the viewport shows, scaled to a canvas, with rings
// around found objects whose centroid is in view.
func RenderFrame(bg image.Image, vp *viewport.Viewport, canvas image.Point, objects []*scene.Object, opts FrameOptions) *image.NRGBA {
	dst := image.NewNRGBA(image.Rectangle{Max: canvas})
	if bg == nil || vp == nil || vp.Width <= 0 || vp.Height <= 0 {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(emptyColor), image.Point{}, draw.Src)
		return dst
	}

	src := image.Rect(
		int(gomath.Round(vp.X)), int(gomath.Round(vp.Y)),
		int(gomath.Round(vp.X+vp.Width)), int(gomath.Round(vp.Y+vp.Height)),
	).Add(bg.Bounds().Min)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), bg, src, draw.Src, nil)

	cw, ch := float64(canvas.X), float64(canvas.Y)
	scale := vp.Scale(cw)
	for _, o := range objects {
		if !o.Found || !o.Positioned || !vp.Contains(o.X, o.Y) {
			continue
		}
		p := vp.WorldToScreen(o.X, o.Y, cw, ch)
		r := gomath.Max(8, gomath.Round(o.Radius*scale))
		width := gomath.Max(3, gomath.Round(r*0.18))
		ring(dst, p.X, p.Y, r, width, OutlineColor)
	}

	if opts.Debug {
		cx, cy := canvas.X/2, canvas.Y/2
		draw.Draw(dst, image.Rect(cx-10, cy, cx+11, cy+1), image.NewUniform(CrosshairColor), image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(cx, cy-10, cx+1, cy+11), image.NewUniform(CrosshairColor), image.Point{}, draw.Over)

		if opts.Tolerance > 0 {
			tol := int(gomath.Round(opts.Tolerance * scale))
			box(dst, image.Rect(cx-tol, cy-tol, cx+tol+1, cy+tol+1), ToleranceColor)
		}
	}
	return dst
}

// ring strokes a circle of radius r centered at (cx, cy).
func ring(dst *image.NRGBA, cx, cy, r, width float64, c color.NRGBA) {
	inner, outer := r-width/2, r+width/2
	b := image.Rect(
		int(gomath.Floor(cx-outer)), int(gomath.Floor(cy-outer)),
		int(gomath.Ceil(cx+outer))+1, int(gomath.Ceil(cy+outer))+1,
	).Intersect(dst.Bounds())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := gomath.Hypot(float64(x)-cx, float64(y)-cy)
			if d >= inner && d <= outer {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}

// box strokes a one pixel rectangle outline.
func box(dst draw.Image, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	for _, e := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, e, u, image.Point{}, draw.Over)
	}
}

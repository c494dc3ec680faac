// Package viewport implements the movable window into scene (world) pixels.
//
// The viewport is the only coordinate authority: screen positions map to world
// positions with worldX = X + (screenX/canvasWidth)*Width, and likewise for Y.
package viewport

import (
	gomath "math"

	"github.com/Faultbox/wildsnap/pkg/math"
)

// Viewport is the visible world rectangle. Panning keeps it inside the scene.
type Viewport struct {
	X, Y          float64
	Width, Height float64

	SceneWidth, SceneHeight float64
}

// New creates a viewport of the desired size clamped to the scene, centered.
func New(sceneWidth, sceneHeight, width, height float64) *Viewport {
	v := &Viewport{
		SceneWidth:  sceneWidth,
		SceneHeight: sceneHeight,
		Width:       gomath.Min(width, sceneWidth),
		Height:      gomath.Min(height, sceneHeight),
	}
	v.X = gomath.Max(0, gomath.Round((sceneWidth-v.Width)/2))
	v.Y = gomath.Max(0, gomath.Round((sceneHeight-v.Height)/2))
	return v
}

// Fit sizes a viewport for a canvas: it shows fraction of the scene width
// (but never less than half the canvas width) and keeps the canvas aspect ratio.
func Fit(sceneWidth, sceneHeight, canvasWidth, canvasHeight, fraction float64) *Viewport {
	vw := gomath.Max(
		gomath.Min(gomath.Round(sceneWidth*fraction), sceneWidth),
		gomath.Round(canvasWidth/2),
	)
	vh := gomath.Round(vw * canvasHeight / canvasWidth)
	return New(sceneWidth, sceneHeight, vw, vh)
}

// MaxX returns the largest valid X.
func (v *Viewport) MaxX() float64 {
	return gomath.Max(0, v.SceneWidth-v.Width)
}

// MaxY returns the largest valid Y.
func (v *Viewport) MaxY() float64 {
	return gomath.Max(0, v.SceneHeight-v.Height)
}

// Pan moves the viewport by a world delta, stopping at scene edges.
func (v *Viewport) Pan(dx, dy float64) {
	v.SetPosition(v.X+dx, v.Y+dy)
}

// SetPosition moves the top-left corner, clamped to the scene.
func (v *Viewport) SetPosition(x, y float64) {
	v.X = math.Clamp(x, 0, v.MaxX())
	v.Y = math.Clamp(y, 0, v.MaxY())
}

// PanScreen pans by a drag delta given in canvas pixels. Dragging right moves
// the scene right, so the viewport moves left.
func (v *Viewport) PanScreen(dxScreen, dyScreen, canvasWidth, canvasHeight float64) {
	dx := (dxScreen / canvasWidth) * v.Width
	dy := (dyScreen / canvasHeight) * v.Height
	v.Pan(-dx, -dy)
}

// Contains reports whether a world point lies inside the viewport, edges included.
func (v *Viewport) Contains(worldX, worldY float64) bool {
	return v.Rect().Contains(math.Vec2{X: worldX, Y: worldY})
}

// Rect returns the viewport rectangle in world pixels.
func (v *Viewport) Rect() math.Rect {
	return math.Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}
}

// Center returns the viewport center in world pixels.
func (v *Viewport) Center() math.Vec2 {
	return math.Vec2{X: v.X + v.Width/2, Y: v.Y + v.Height/2}
}

// ScreenToWorld maps a canvas position to world pixels.
func (v *Viewport) ScreenToWorld(screenX, screenY, canvasWidth, canvasHeight float64) math.Vec2 {
	return math.Vec2{
		X: v.X + (screenX/canvasWidth)*v.Width,
		Y: v.Y + (screenY/canvasHeight)*v.Height,
	}
}

// WorldToScreen maps a world position to canvas pixels.
func (v *Viewport) WorldToScreen(worldX, worldY, canvasWidth, canvasHeight float64) math.Vec2 {
	return math.Vec2{
		X: (worldX - v.X) / v.Width * canvasWidth,
		Y: (worldY - v.Y) / v.Height * canvasHeight,
	}
}

// Scale returns canvas pixels per world pixel along X.
func (v *Viewport) Scale(canvasWidth float64) float64 {
	return canvasWidth / v.Width
}

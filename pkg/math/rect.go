package math

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// SquareAround returns the square of half-width r centered at c.
func SquareAround(c Vec2, r float64) Rect {
	return Rect{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the rectangle center.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects is a separating-axis test between two rectangles.
// Touching edges count as intersecting.
func (r Rect) Intersects(o Rect) bool {
	return !(o.Right() < r.X ||
		o.X > r.Right() ||
		o.Bottom() < r.Y ||
		o.Y > r.Bottom())
}

package world

// Rect is an axis-aligned box in pixel space.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Center returns the center coordinates of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains returns true if the given point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects returns true if this rect overlaps another. Touching edges do
// not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Offset returns the rect moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// ClampInto shifts r so it lies inside bounds on both axes. A rect larger
// than bounds is pinned to the bounds' top-left corner.
func (r Rect) ClampInto(bounds Rect) Rect {
	r.X = max(bounds.X, min(r.X, bounds.X+bounds.W-r.W))
	r.Y = max(bounds.Y, min(r.Y, bounds.Y+bounds.H-r.H))
	return r
}

// Inset returns the rect shrunk by margin on every side.
func (r Rect) Inset(margin float64) Rect {
	return Rect{X: r.X + margin, Y: r.Y + margin, W: r.W - 2*margin, H: r.H - 2*margin}
}

// Area is a location entities can move through: the outdoor grid or one
// interior. Each has its own coordinate space.
type Area interface {
	IsSolid(x, y, w, h float64) bool
	Bounds() Rect
}

// Package domain defines the value types of the UI sampler: screen geometry,
// element descriptors, sample bundles and the session state machine.
//
// The domain layer has no infrastructure dependencies. Everything here is a
// pure value or a pure function so it can be exercised without a display, a
// tree provider or a filesystem.
package domain

import "fmt"

// Point is a screen coordinate in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a screen or image extent in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both extents are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Rect is an integer rectangle fully contained in the screen after
// normalization. W and H are always >= 1.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Bounds converts the rectangle to edge form.
func (r Rect) Bounds() Bounds {
	return Bounds{Left: r.X, Top: r.Y, Right: r.Right(), Bottom: r.Bottom()}
}

// Within reports whether r lies inside [0,width) x [0,height).
func (r Rect) Within(screen Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 1 && r.H >= 1 &&
		r.Right() <= screen.Width && r.Bottom() <= screen.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("x=%d y=%d w=%d h=%d", r.X, r.Y, r.W, r.H)
}

// Corners is the two-point form produced by a drag gesture. The points may
// arrive in any order.
type Corners struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Bounds is a rectangle in edge form, as reported by tree providers.
type Bounds struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Center returns the floored midpoint.
func (b Bounds) Center() Point {
	return Point{X: floorHalf(b.Left + b.Right), Y: floorHalf(b.Top + b.Bottom)}
}

// Area returns the non-negative pixel area.
func (b Bounds) Area() int {
	w, h := b.Right-b.Left, b.Bottom-b.Top
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Intersects reports whether b and r share at least one pixel.
func (b Bounds) Intersects(r Rect) bool {
	return b.Left < r.Right() && r.X < b.Right && b.Top < r.Bottom() && r.Y < b.Bottom
}

// NormalizeRect clamps an {x,y,w,h} rectangle into the screen. The origin is
// clamped to [0, dim-1] first, then the extent to [1, dim-origin].
func NormalizeRect(r Rect, screen Size) Rect {
	x := clamp(r.X, 0, screen.Width-1)
	y := clamp(r.Y, 0, screen.Height-1)
	out := Rect{
		X: x,
		Y: y,
		W: clamp(r.W, 1, screen.Width-x),
		H: clamp(r.H, 1, screen.Height-y),
	}
	return fitInside(out, screen)
}

// NormalizeCorners converts a drag gesture into a rectangle. Both corners are
// clamped into the screen before the extent is derived, so the result does not
// depend on the order the corners were supplied in.
func NormalizeCorners(c Corners, screen Size) Rect {
	x1 := clamp(c.X1, 0, screen.Width-1)
	y1 := clamp(c.Y1, 0, screen.Height-1)
	x2 := clamp(c.X2, 0, screen.Width-1)
	y2 := clamp(c.Y2, 0, screen.Height-1)
	out := Rect{
		X: min(x1, x2),
		Y: min(y1, y2),
		W: max(1, abs(x2-x1)),
		H: max(1, abs(y2-y1)),
	}
	return fitInside(out, screen)
}

// PointCropRect builds a square of the given side centred on p. Near an edge
// the square is shifted back onto the screen instead of shrinking; it only
// shrinks when the screen itself is smaller than the side.
func PointCropRect(p Point, side int, screen Size) Rect {
	side = max(1, side)
	w := min(side, screen.Width)
	h := min(side, screen.Height)
	half := side / 2
	out := Rect{
		X: clamp(p.X-half, 0, screen.Width-1),
		Y: clamp(p.Y-half, 0, screen.Height-1),
		W: w,
		H: h,
	}
	return fitInside(out, screen)
}

// PointQueryRect is the 1x1 rectangle used to query the tree at a point.
func PointQueryRect(p Point, screen Size) Rect {
	return Rect{
		X: clamp(p.X, 0, screen.Width-1),
		Y: clamp(p.Y, 0, screen.Height-1),
		W: 1,
		H: 1,
	}
}

// fitInside shifts the origin left/up until the rectangle ends on screen.
func fitInside(r Rect, screen Size) Rect {
	r.W = clamp(r.W, 1, max(1, screen.Width))
	r.H = clamp(r.H, 1, max(1, screen.Height))
	if r.X+r.W > screen.Width {
		r.X = screen.Width - r.W
	}
	if r.Y+r.H > screen.Height {
		r.Y = screen.Height - r.H
	}
	r.X = max(0, r.X)
	r.Y = max(0, r.Y)
	return r
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(hi, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func floorHalf(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

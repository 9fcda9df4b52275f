package domain

import "fmt"

// CaptureMode tells how the operator selected the region.
type CaptureMode string

const (
	ModePoint CaptureMode = "point"
	ModeRect  CaptureMode = "rect"
)

// Region is the caller's raw selection. Point mode uses Point; rect mode uses
// either Box ({x,y,w,h}) or Corners (two drag points).
type Region struct {
	Mode    CaptureMode
	Point   Point
	Box     *Rect
	Corners *Corners
}

// PointRegion builds a point-mode region.
func PointRegion(x, y int) Region {
	return Region{Mode: ModePoint, Point: Point{X: x, Y: y}}
}

// BoxRegion builds a rect-mode region from {x,y,w,h}.
func BoxRegion(x, y, w, h int) Region {
	return Region{Mode: ModeRect, Box: &Rect{X: x, Y: y, W: w, H: h}}
}

// CornerRegion builds a rect-mode region from two drag corners.
func CornerRegion(x1, y1, x2, y2 int) Region {
	return Region{Mode: ModeRect, Corners: &Corners{X1: x1, Y1: y1, X2: x2, Y2: y2}}
}

// Resolved holds the rectangles derived from a Region.
type Resolved struct {
	// Capture is the crop rectangle.
	Capture Rect
	// Query is the rectangle handed to the tree provider. In point mode it is
	// the 1x1 rectangle under the point.
	Query Rect
}

// Resolve normalizes the region against the screen.
func (r Region) Resolve(screen Size, pointSide int) (Resolved, error) {
	if !screen.Valid() {
		return Resolved{}, fmt.Errorf("%w: screen %dx%d", ErrInvalidRegion, screen.Width, screen.Height)
	}
	switch r.Mode {
	case ModePoint:
		return Resolved{
			Capture: PointCropRect(r.Point, pointSide, screen),
			Query:   PointQueryRect(r.Point, screen),
		}, nil
	case ModeRect:
		var rect Rect
		switch {
		case r.Box != nil:
			rect = NormalizeRect(*r.Box, screen)
		case r.Corners != nil:
			rect = NormalizeCorners(*r.Corners, screen)
		default:
			return Resolved{}, fmt.Errorf("%w: rect mode without box or corners", ErrInvalidRegion)
		}
		return Resolved{Capture: rect, Query: rect}, nil
	default:
		return Resolved{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidRegion, r.Mode)
	}
}

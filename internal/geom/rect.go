package geom

import "fmt"

// Rect is an inclusive axis-aligned integer rectangle. Min is always <= Max on
// both axes; NewRect normalizes argument order.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// NewRect builds a rectangle from any two opposite corners.
func NewRect(x0, y0, x1, y1 int) Rect {
	return Rect{
		MinX: min(x0, x1),
		MinY: min(y0, y1),
		MaxX: max(x0, x1),
		MaxY: max(y0, y1),
	}
}

// RectFromPoints builds a rectangle spanning a and b.
func RectFromPoints(a, b Point) Rect {
	return NewRect(a.X, a.Y, b.X, b.Y)
}

// Width is the number of columns covered.
func (r Rect) Width() int {
	return r.MaxX - r.MinX + 1
}

// Height is the number of rows covered.
func (r Rect) Height() int {
	return r.MaxY - r.MinY + 1
}

// Min returns the minimum corner.
func (r Rect) Min() Point {
	return Point{r.MinX, r.MinY}
}

// Max returns the maximum corner.
func (r Rect) Max() Point {
	return Point{r.MaxX, r.MaxY}
}

// Dims returns (Width, Height).
func (r Rect) Dims() Point {
	return Point{r.Width(), r.Height()}
}

// Contains reports whether p lies inside r shrunk by buffer on every side.
// A negative buffer grows the tested region instead.
func (r Rect) Contains(p Point, buffer int) bool {
	return p.X >= r.MinX+buffer &&
		p.Y >= r.MinY+buffer &&
		p.X <= r.MaxX-buffer &&
		p.Y <= r.MaxY-buffer
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.MinX >= r.MinX && o.MaxX <= r.MaxX &&
		o.MinY >= r.MinY && o.MaxY <= r.MaxY
}

// Overlaps reports whether the two rectangles share a cell once each side is
// pushed out by buffer. A negative buffer requires deeper overlap. The test is
// symmetric.
func (r Rect) Overlaps(o Rect, buffer int) bool {
	return r.MinX <= o.MaxX+buffer && o.MinX <= r.MaxX+buffer &&
		r.MinY <= o.MaxY+buffer && o.MinY <= r.MaxY+buffer
}

// Intersection returns the shared region of two overlapping rectangles.
// Callers must check Overlaps(o, 0) first; a disjoint pair panics.
func (r Rect) Intersection(o Rect) Rect {
	if !r.Overlaps(o, 0) {
		panic(fmt.Sprintf("geom: intersection of disjoint rectangles %v and %v", r, o))
	}
	return Rect{
		MinX: max(r.MinX, o.MinX),
		MinY: max(r.MinY, o.MinY),
		MaxX: min(r.MaxX, o.MaxX),
		MaxY: min(r.MaxY, o.MaxY),
	}
}

// Inset shrinks every side by n (grows for negative n).
func (r Rect) Inset(n int) Rect {
	return NewRect(r.MinX+n, r.MinY+n, r.MaxX-n, r.MaxY-n)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d..%d,%d]", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

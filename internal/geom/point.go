// Package geom provides the integer point and rectangle primitives shared by the
// dungeon carvers and the terrain field.
package geom

import "fmt"

// Point is an integer cell coordinate. It is a value type; all operations return a
// new Point.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Zero is the origin, also used as "no direction".
var Zero = Point{}

// Add returns the component-wise sum.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the component-wise difference.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns the component-wise product.
func (p Point) Mul(q Point) Point {
	return Point{p.X * q.X, p.Y * q.Y}
}

// Offset adds n to both components.
func (p Point) Offset(n int) Point {
	return Point{p.X + n, p.Y + n}
}

// Scale multiplies both components by n.
func (p Point) Scale(n int) Point {
	return Point{p.X * n, p.Y * n}
}

// Div divides both components by n, truncating toward zero.
func (p Point) Div(n int) Point {
	return Point{p.X / n, p.Y / n}
}

// Invert swaps the axes.
func (p Point) Invert() Point {
	return Point{p.Y, p.X}
}

// Abs returns the component-wise absolute value.
func (p Point) Abs() Point {
	return Point{abs(p.X), abs(p.Y)}
}

// Neg negates both components.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p == Zero
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Cardinal lists the four axis directions in rotation order: west, north, east, south.
var Cardinal = [4]Point{
	{-1, 0},
	{0, -1},
	{1, 0},
	{0, 1},
}

// Neighbours8 lists the eight surrounding offsets, walking clockwise from west.
var Neighbours8 = [8]Point{
	{-1, 0},
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
}

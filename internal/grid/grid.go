// Package grid holds the dungeon map: a rectangle of integer cell codes with
// bounds-checked access. Reading or writing outside the bounds is a programmer
// error and panics.
package grid

import (
	"fmt"

	"github.com/Strowy/ProceduralGame/internal/geom"
)

// Cell is a dungeon cell code.
type Cell int

const (
	Rock     Cell = iota // Unset, solid rock
	Floor                // Walkable room or corridor
	Wall                 // Wall; carvers may also use it as a transient marker
	Entrance             // Floor entrance
	Exit                 // Floor exit
)

// String returns the string representation of a Cell
func (c Cell) String() string {
	switch c {
	case Rock:
		return "rock"
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Entrance:
		return "entrance"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Walkable reports whether a cell can be stood on.
func (c Cell) Walkable() bool {
	return c == Floor || c == Entrance || c == Exit
}

// Grid is a dense map of cells over an inclusive rectangle.
type Grid struct {
	bounds geom.Rect
	cells  []Cell
}

// New creates a width x height grid of Rock with bounds (0,0)-(width-1,height-1).
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid size %dx%d", width, height))
	}
	return &Grid{
		bounds: geom.NewRect(0, 0, width-1, height-1),
		cells:  make([]Cell, width*height),
	}
}

// Bounds returns the grid rectangle.
func (g *Grid) Bounds() geom.Rect { return g.bounds }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.bounds.Width() }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.bounds.Height() }

// InBounds reports whether p is a cell of the grid.
func (g *Grid) InBounds(p geom.Point) bool {
	return g.bounds.Contains(p, 0)
}

// At returns the cell at p. It panics if p is outside the grid.
func (g *Grid) At(p geom.Point) Cell {
	return g.cells[g.index(p)]
}

// Set writes the cell at p. It panics if p is outside the grid.
func (g *Grid) Set(p geom.Point, c Cell) {
	g.cells[g.index(p)] = c
}

// Is reports whether p is inside the grid and holds c. Out-of-bounds points
// never match.
func (g *Grid) Is(p geom.Point, c Cell) bool {
	return g.InBounds(p) && g.cells[g.index(p)] == c
}

func (g *Grid) index(p geom.Point) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: point %v is outside bounds %v", p, g.bounds))
	}
	return (p.Y-g.bounds.MinY)*g.bounds.Width() + (p.X - g.bounds.MinX)
}

// Clear resets every cell to Rock.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Rock
	}
}

// BufferedBounds returns the grid rectangle shrunk by buffer on each side.
func (g *Grid) BufferedBounds(buffer int) geom.Rect {
	return g.bounds.Inset(buffer)
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p geom.Point, c Cell)) {
	w := g.bounds.Width()
	for i, c := range g.cells {
		fn(geom.Pt(g.bounds.MinX+i%w, g.bounds.MinY+i/w), c)
	}
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Find returns the positions holding c in row-major order.
func (g *Grid) Find(c Cell) []geom.Point {
	var found []geom.Point
	g.Each(func(p geom.Point, v Cell) {
		if v == c {
			found = append(found, p)
		}
	})
	return found
}

// Codes returns a copy of the flat cell array as integer codes, row-major.
func (g *Grid) Codes() []int {
	codes := make([]int, len(g.cells))
	for i, c := range g.cells {
		codes[i] = int(c)
	}
	return codes
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{bounds: g.bounds, cells: cells}
}

// Equal reports whether both grids have the same bounds and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.bounds != o.bounds || len(g.cells) != len(o.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// DirectionToClosestEdge returns the unit step from p toward the nearest grid
// edge. Ties resolve in geom.Cardinal order (west, north, east, south).
func (g *Grid) DirectionToClosestEdge(p geom.Point) geom.Point {
	b := g.bounds
	distances := [4]int{
		p.X - b.MinX,
		p.Y - b.MinY,
		b.MaxX - p.X,
		b.MaxY - p.Y,
	}

	best := 0
	for i := 1; i < len(distances); i++ {
		if distances[i] < distances[best] {
			best = i
		}
	}
	return geom.Cardinal[best]
}

// FillRect sets every cell of r to c. It panics if r leaves the grid.
func (g *Grid) FillRect(r geom.Rect, c Cell) {
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			g.Set(geom.Pt(x, y), c)
		}
	}
}

// BuildWalls turns every Rock cell that touches a walkable cell (8-neighbourhood)
// into Wall. New walls are not walkable, so the single pass is order independent.
func (g *Grid) BuildWalls() {
	g.Each(func(p geom.Point, c Cell) {
		if c != Rock {
			return
		}
		for _, d := range geom.Neighbours8 {
			q := p.Add(d)
			if g.InBounds(q) && g.At(q).Walkable() {
				g.Set(p, Wall)
				return
			}
		}
	})
}

package terrain

import (
	"fmt"

	"github.com/Strowy/ProceduralGame/internal/geom"
)

// Chunk is a square batch of terrain cells.
type Chunk struct {
	Coord   geom.Point    // chunk coordinate
	Bounds  geom.Rect     // world cells covered
	Cells   []TerrainData // row-major over Bounds
	Portals []Portal
}

// At returns the cell at world position (x, y). It panics outside the chunk.
func (c *Chunk) At(x, y int) TerrainData {
	p := geom.Pt(x, y)
	if !c.Bounds.Contains(p, 0) {
		panic(fmt.Sprintf("terrain: %v is outside chunk %v", p, c.Bounds))
	}
	return c.Cells[(y-c.Bounds.MinY)*c.Bounds.Width()+(x-c.Bounds.MinX)]
}

// ChunkOf returns the chunk coordinate containing world cell (x, y).
func (f *Field) ChunkOf(x, y int) geom.Point {
	return geom.Pt(x, y).FloorDiv(f.props.ChunkSize)
}

// Chunk samples every cell of chunk (cx, cy).
func (f *Field) Chunk(cx, cy int) *Chunk {
	size := f.props.ChunkSize
	origin := geom.Pt(cx, cy).Scale(size)
	c := &Chunk{
		Coord:  geom.Pt(cx, cy),
		Bounds: geom.RectFromPoints(origin, origin.Offset(size-1)),
		Cells:  make([]TerrainData, 0, size*size),
	}

	for y := c.Bounds.MinY; y <= c.Bounds.MaxY; y++ {
		for x := c.Bounds.MinX; x <= c.Bounds.MaxX; x++ {
			data := f.TerrainData(x, y)
			c.Cells = append(c.Cells, data)
			if portal, ok := data.Feature.(Portal); ok {
				c.Portals = append(c.Portals, portal)
			}
		}
	}
	return c
}

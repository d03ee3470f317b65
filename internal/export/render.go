// Package export turns generated floors and terrain into text: ASCII maps for
// terminals and YAML documents for files.
package export

import (
	"strings"

	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
	"github.com/Strowy/ProceduralGame/internal/terrain"
)

// FloorGlyph returns the map character for a dungeon cell.
func FloorGlyph(c grid.Cell) byte {
	switch c {
	case grid.Floor:
		return '.'
	case grid.Wall:
		return '#'
	case grid.Entrance:
		return 'E'
	case grid.Exit:
		return 'X'
	default:
		return ' '
	}
}

// RenderFloor draws g one row per line, y ascending.
func RenderFloor(g *grid.Grid) []string {
	b := g.Bounds()
	rows := make([]string, 0, g.Height())
	row := make([]byte, g.Width())
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			row[x-b.MinX] = FloorGlyph(g.At(geom.Pt(x, y)))
		}
		rows = append(rows, string(row))
	}
	return rows
}

// TerrainGlyph returns the map character for a terrain cell. Plain cells show
// their band digit.
func TerrainGlyph(d terrain.TerrainData) byte {
	switch f := d.Feature.(type) {
	case terrain.Water:
		return '~'
	case terrain.Portal:
		if f.Cleared {
			return 'o'
		}
		return 'O'
	case terrain.Surround:
		if f.IsCorner {
			return 'H'
		}
		return '+'
	default:
		return byte('0' + d.Biome)
	}
}

// RenderRegion samples field over r and draws it one row per line.
func RenderRegion(field *terrain.Field, r geom.Rect) []string {
	rows := make([]string, 0, r.Height())
	row := make([]byte, r.Width())
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			row[x-r.MinX] = TerrainGlyph(field.TerrainData(x, y))
		}
		rows = append(rows, string(row))
	}
	return rows
}

// RenderChunk draws an already sampled chunk.
func RenderChunk(c *terrain.Chunk) []string {
	b := c.Bounds
	rows := make([]string, 0, b.Height())
	row := make([]byte, b.Width())
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			row[x-b.MinX] = TerrainGlyph(c.At(x, y))
		}
		rows = append(rows, string(row))
	}
	return rows
}

// Join renders rows as a single newline-terminated block.
func Join(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	return strings.Join(rows, "\n") + "\n"
}

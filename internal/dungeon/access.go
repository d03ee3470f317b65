package dungeon

import (
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
)

// scanForAccess is the last resort once random access searches are exhausted.
// It returns the first cell in row-major order that passes valid, or failing
// that the first floor cell.
func scanForAccess(g *grid.Grid, valid func(geom.Point) bool) geom.Point {
	var found, floor geom.Point
	var haveFound, haveFloor bool
	g.Each(func(p geom.Point, c grid.Cell) {
		if haveFound || c != grid.Floor {
			return
		}
		if !haveFloor {
			floor, haveFloor = p, true
		}
		if valid(p) {
			found, haveFound = p, true
		}
	})

	switch {
	case haveFound:
		return found
	case haveFloor:
		return floor
	default:
		panic("dungeon: no floor cell left for an access point")
	}
}

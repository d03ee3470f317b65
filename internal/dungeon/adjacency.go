package dungeon

import (
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/valuesource"
)

// adjacency draws cardinal directions from a value source.
type adjacency struct {
	src valuesource.Source
}

func newAdjacency(src valuesource.Source) adjacency {
	return adjacency{src: src}
}

// Cycle returns all four cardinal directions in rotation order, starting from a
// random direction and turning a random way.
func (a adjacency) Cycle() [4]geom.Point {
	n := len(geom.Cardinal)
	start := a.src.RandInt(n - 1)
	turn := 1
	if a.src.NextUnitFloat() >= 0.5 {
		turn = -1
	}

	var out [4]geom.Point
	for i := range out {
		out[i] = geom.Cardinal[geom.FloorMod(start+i*turn, n)]
	}
	return out
}

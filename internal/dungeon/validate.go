package dungeon

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
)

// ErrInvalidFloor is returned by Validate for a floor that breaks the layout
// guarantees.
var ErrInvalidFloor = errors.New("invalid dungeon floor")

// Survey describes the walkable structure of a floor.
type Survey struct {
	Entrances []geom.Point
	Exits     []geom.Point
	Walkable  int // floor, entrance and exit cells
	Reachable int // walkable cells 4-connected to the first entrance
}

// Inspect surveys a floor. Reachable is zero when the floor has no entrance.
func Inspect(g *grid.Grid) Survey {
	var s Survey
	g.Each(func(p geom.Point, c grid.Cell) {
		if c.Walkable() {
			s.Walkable++
		}
		switch c {
		case grid.Entrance:
			s.Entrances = append(s.Entrances, p)
		case grid.Exit:
			s.Exits = append(s.Exits, p)
		}
	})

	if len(s.Entrances) > 0 {
		s.Reachable = reachableFrom(g, s.Entrances[0]).Size()
	}
	return s
}

// reachableFrom flood-fills walkable cells from start through cardinal steps.
func reachableFrom(g *grid.Grid, start geom.Point) mapset.Set[geom.Point] {
	visited := mapset.New[geom.Point]()
	visited.Put(start)
	queue := []geom.Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range geom.Cardinal {
			n := current.Add(d)
			if !g.InBounds(n) || !g.At(n).Walkable() || visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}

	return visited
}

// Validate checks that a floor has exactly one entrance and one exit, that
// every walkable cell is reachable from the entrance, and that no walkable cell
// lies on the map edge.
func Validate(g *grid.Grid) error {
	s := Inspect(g)
	if len(s.Entrances) != 1 {
		return fmt.Errorf("%w: %d entrances", ErrInvalidFloor, len(s.Entrances))
	}
	if len(s.Exits) != 1 {
		return fmt.Errorf("%w: %d exits", ErrInvalidFloor, len(s.Exits))
	}
	if s.Reachable != s.Walkable {
		return fmt.Errorf("%w: %d of %d walkable cells unreachable from entrance %v",
			ErrInvalidFloor, s.Walkable-s.Reachable, s.Walkable, s.Entrances[0])
	}

	var edge *geom.Point
	b := g.Bounds()
	g.Each(func(p geom.Point, c grid.Cell) {
		if edge == nil && c.Walkable() && !b.Contains(p, 1) {
			edge = &p
		}
	})
	if edge != nil {
		return fmt.Errorf("%w: walkable cell %v on the map edge", ErrInvalidFloor, *edge)
	}
	return nil
}

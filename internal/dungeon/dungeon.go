package dungeon

import (
	"errors"
	"fmt"

	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
	"github.com/Strowy/ProceduralGame/internal/logger"
)

// ErrFloorOutOfRange is returned for a floor number outside the dungeon.
var ErrFloorOutOfRange = errors.New("floor out of range")

// Floor is one generated level of a dungeon.
type Floor struct {
	Number   int        // 0-based
	Seed     geom.Point // world position the floor was generated from
	Grid     *grid.Grid
	Rooms    []geom.Rect
	Strategy Strategy
}

// Dungeon is a fixed number of floors below one world entrance. Floor n is
// generated from the entrance offset by n on both axes, so each floor differs
// but regenerates identically.
type Dungeon struct {
	carver   Carver
	entrance geom.Point
	floors   int
}

// NewDungeon returns a dungeon of floors levels entered at entrance.
func NewDungeon(carver Carver, entrance geom.Point, floors int) (*Dungeon, error) {
	if floors < 1 {
		return nil, fmt.Errorf("%w: dungeon needs at least one floor, got %d", ErrInvalidParams, floors)
	}
	return &Dungeon{carver: carver, entrance: entrance, floors: floors}, nil
}

// Entrance returns the world position of the dungeon entrance.
func (d *Dungeon) Entrance() geom.Point { return d.entrance }

// FloorCount returns the number of floors.
func (d *Dungeon) FloorCount() int { return d.floors }

// FloorSeed returns the world position floor n is generated from.
func (d *Dungeon) FloorSeed(n int) (geom.Point, error) {
	if n < 0 || n >= d.floors {
		return geom.Zero, fmt.Errorf("%w: floor %d of %d", ErrFloorOutOfRange, n, d.floors)
	}
	return d.entrance.Offset(n), nil
}

// Floor generates floor n.
func (d *Dungeon) Floor(n int) (*Floor, error) {
	seed, err := d.FloorSeed(n)
	if err != nil {
		return nil, err
	}

	g := d.carver.Generate(seed)
	floor := &Floor{
		Number:   n,
		Seed:     seed,
		Grid:     g,
		Rooms:    d.carver.Rooms(),
		Strategy: d.carver.Strategy(),
	}

	logger.Debug("Generated dungeon floor",
		"entrance", d.entrance,
		"floor", n,
		"strategy", floor.Strategy.String(),
		"rooms", len(floor.Rooms))
	return floor, nil
}

// Floors generates every floor in order.
func (d *Dungeon) Floors() ([]*Floor, error) {
	out := make([]*Floor, 0, d.floors)
	for n := range d.floors {
		f, err := d.Floor(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Package dungeon carves dungeon floors into a grid.
//
// Two strategies share one contract: the tick-budget carver grows corridors and
// rooms from randomly sampled floor cells until its tick counter reaches the
// configured complexity, and the hall/room carver attaches halls and rooms to an
// explicit list of placed rooms. Both seed a fresh value source from the entrance
// world position, so the same position and parameters always yield the same floor.
package dungeon

import (
	"fmt"

	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
	"github.com/Strowy/ProceduralGame/internal/valuesource"
)

// Retry budgets. Generated layouts depend on these exact values.
const (
	maxFailsPerTick   = 10
	maxRoomAttempts   = 100
	maxPassAttempts   = 100
	maxSearchAttempts = 1000
)

// Carver generates one dungeon floor.
type Carver interface {
	// Generate returns a new grid for the floor entered at entrance. The grid is
	// owned by the caller.
	Generate(entrance geom.Point) *grid.Grid
	// Strategy reports which algorithm the carver runs.
	Strategy() Strategy
	// Params returns the construction parameters.
	Params() Params
	// Rooms returns the rooms placed by the most recent Generate.
	Rooms() []geom.Rect
}

// New builds a carver for strategy after validating params.
func New(strategy Strategy, params Params) (Carver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	switch strategy {
	case TickBudget:
		return newTickBudgetCarver(params), nil
	case HallRoom:
		return newHallRoomCarver(params), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidParams, int(strategy))
	}
}

// sourceFor seeds a value source from an entrance world position.
func sourceFor(entrance geom.Point) *valuesource.PseudoRandom {
	return valuesource.New(valuesource.SeedFromPosition(entrance))
}

package dungeon

import (
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
	"github.com/Strowy/ProceduralGame/internal/logger"
	"github.com/Strowy/ProceduralGame/internal/valuesource"
)

// corridor marks tunnel cells until the floor is finished.
const corridor = grid.Wall

// roomSamples are the offsets, in room half-extents, of the corners, edge
// midpoints and centre checked before a room is carved.
var roomSamples = [9]geom.Point{
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: 0, Y: 0},
}

// TickBudgetCarver grows corridors and rooms out of random floor cells. Each
// success advances a tick counter, and every maxFailsPerTick failures advance it
// too, so generation always ends after roughly Complexity ticks.
type TickBudgetCarver struct {
	params Params
	rooms  []geom.Rect
}

var _ Carver = (*TickBudgetCarver)(nil)

// NewTickBudget validates params and returns a tick-budget carver.
func NewTickBudget(params Params) (*TickBudgetCarver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return newTickBudgetCarver(params), nil
}

func newTickBudgetCarver(params Params) *TickBudgetCarver {
	return &TickBudgetCarver{params: params}
}

// Strategy returns TickBudget.
func (c *TickBudgetCarver) Strategy() Strategy { return TickBudget }

// Params returns the construction parameters.
func (c *TickBudgetCarver) Params() Params { return c.params }

// Rooms returns the rooms carved by the most recent Generate, in carving order.
func (c *TickBudgetCarver) Rooms() []geom.Rect {
	return append([]geom.Rect(nil), c.rooms...)
}

// Generate carves a floor seeded from entrance.
func (c *TickBudgetCarver) Generate(entrance geom.Point) *grid.Grid {
	r := newTickRun(c.params, sourceFor(entrance))
	r.carve()
	c.rooms = r.rooms

	logger.Debug("Carved tick-budget floor",
		"entrance", entrance,
		"rooms", len(r.rooms),
		"escapes", r.escapes,
		"access_fallbacks", r.accessFallbacks)
	return r.g
}

// tickRun is the state of a single Generate call.
type tickRun struct {
	params   Params
	src      valuesource.Source
	g        *grid.Grid
	interior geom.Rect // cells at least 2 from the edge
	centre   geom.Point
	quarter  geom.Point
	rooms    []geom.Rect

	ticks           int
	fails           int
	escapes         int
	accessFallbacks int
}

func newTickRun(params Params, src valuesource.Source) *tickRun {
	g := grid.New(params.Width, params.Height)
	centre := g.Bounds().Dims().Div(2)
	return &tickRun{
		params:   params,
		src:      src,
		g:        g,
		interior: g.BufferedBounds(2),
		centre:   centre,
		quarter:  centre.Div(2),
	}
}

func (r *tickRun) carve() {
	size := r.roomExtent()
	r.carveRoom(r.boundedRandomPoint(r.centre, r.quarter), size)

	for r.ticks < r.params.Complexity {
		if r.step() {
			r.ticks++
		} else {
			r.fails++
		}

		if r.fails >= maxFailsPerTick {
			r.fails -= maxFailsPerTick
			r.ticks++
			r.escapes++
		}
	}

	r.placeAccessPoints()
	r.finish()
}

// step tries to dig one corridor with a room at its end.
func (r *tickRun) step() bool {
	p, ok := r.randomFloorPoint()
	if !ok {
		return false
	}

	dir := r.findWall(p)
	if dir.IsZero() {
		return false
	}

	length := r.src.RandInt(r.params.MaxTunnel) + r.params.MinTunnel
	start := p.Add(dir)
	if !r.tunnelFits(start, dir, length) {
		return false
	}

	size := r.roomExtent()
	centre := p.Add(dir.Scale(length))
	if !r.roomFits(centre, size) {
		return false
	}

	r.carveTunnel(start, dir, length)
	r.carveRoom(centre, size)
	return true
}

// roomExtent draws room half-extents in [1, RoomSize].
func (r *tickRun) roomExtent() geom.Point {
	return geom.Pt(
		r.src.RandRange(1, r.params.RoomSize),
		r.src.RandRange(1, r.params.RoomSize))
}

func (r *tickRun) randomFloorPoint() (geom.Point, bool) {
	for range maxSearchAttempts {
		p := geom.Pt(
			r.src.RandRange(r.interior.MinX, r.interior.MaxX),
			r.src.RandRange(r.interior.MinY, r.interior.MaxY))
		if r.g.At(p) == grid.Floor {
			return p, true
		}
	}
	return geom.Zero, false
}

// findWall searches the four directions around p in a random pairing order and
// returns the first whose neighbour and both flanks of that neighbour are rock.
// It returns the zero point when none qualifies.
func (r *tickRun) findWall(p geom.Point) geom.Point {
	rx := r.coin()
	ry := r.coin()

	var dirs [4]geom.Point
	if r.src.RandInt(1) == 0 {
		dirs = [4]geom.Point{{X: 0, Y: ry}, {X: rx, Y: 0}, {X: 0, Y: -ry}, {X: -rx, Y: 0}}
	} else {
		dirs = [4]geom.Point{{X: rx, Y: 0}, {X: 0, Y: ry}, {X: -rx, Y: 0}, {X: 0, Y: -ry}}
	}

	for _, d := range dirs {
		t := p.Add(d)
		side := d.Invert()
		if r.g.Is(t, grid.Rock) && r.g.Is(t.Add(side), grid.Rock) && r.g.Is(t.Sub(side), grid.Rock) {
			return d
		}
	}
	return geom.Zero
}

// coin returns -1 or 1.
func (r *tickRun) coin() int {
	if r.src.RandInt(1) == 0 {
		return -1
	}
	return 1
}

func (r *tickRun) tunnelFits(start, dir geom.Point, length int) bool {
	for i := range length {
		t := start.Add(dir.Scale(i))
		if !r.interior.Contains(t, 0) || r.g.At(t) != grid.Rock {
			return false
		}
	}
	return true
}

// roomFits checks the room's nine sample points. Every neighbour of every sample
// must be on the map and not floor.
func (r *tickRun) roomFits(centre, size geom.Point) bool {
	for _, s := range roomSamples {
		sample := centre.Add(s.Mul(size))
		for _, n := range geom.Neighbours8 {
			q := sample.Add(n)
			if !r.g.InBounds(q) || r.g.At(q) == grid.Floor {
				return false
			}
		}
	}
	return true
}

func (r *tickRun) carveTunnel(start, dir geom.Point, length int) {
	for i := range length {
		r.g.Set(start.Add(dir.Scale(i)), corridor)
	}
}

func (r *tickRun) carveRoom(centre, size geom.Point) {
	room := geom.RectFromPoints(centre.Sub(size), centre.Add(size))
	r.g.FillRect(room, grid.Floor)
	r.rooms = append(r.rooms, room)
}

// boundedRandomPoint picks a point within extent of pos that is at least 2
// cells from the edge, falling back to the map centre.
func (r *tickRun) boundedRandomPoint(pos, extent geom.Point) geom.Point {
	for range maxSearchAttempts {
		p := geom.Pt(
			r.src.RandInt(2*extent.X)+pos.X-extent.X,
			r.src.RandInt(2*extent.Y)+pos.Y-extent.Y)
		if r.interior.Contains(p, 0) {
			return p
		}
	}
	return r.centre
}

// placeAccessPoints puts the entrance and exit in opposite quadrants.
func (r *tickRun) placeAccessPoints() {
	b := r.quarter
	quadrants := [4]geom.Point{
		b,
		geom.Pt(3*b.X, b.Y),
		geom.Pt(b.X, 3*b.Y),
		b.Scale(3),
	}

	sel := r.src.RandInt(3)
	for _, code := range [2]grid.Cell{grid.Entrance, grid.Exit} {
		sel = 3 - sel
		r.g.Set(r.findAccess(quadrants[sel]), code)
	}
}

func (r *tickRun) findAccess(pos geom.Point) geom.Point {
	for range maxSearchAttempts {
		if p := r.boundedRandomPoint(pos, r.quarter.Offset(-1)); r.validAccess(p) {
			return p
		}
	}

	r.accessFallbacks++
	for range maxSearchAttempts {
		if p := r.boundedRandomPoint(pos, r.g.Bounds().Dims().Offset(-2)); r.validAccess(p) {
			return p
		}
	}

	return scanForAccess(r.g, r.validAccess)
}

// validAccess requires a floor cell whose four cardinal neighbours are floor.
func (r *tickRun) validAccess(p geom.Point) bool {
	if !r.g.Is(p, grid.Floor) {
		return false
	}
	for _, d := range geom.Cardinal {
		if !r.g.Is(p.Add(d), grid.Floor) {
			return false
		}
	}
	return true
}

// finish turns corridors into floor and walls in every walkable cell.
func (r *tickRun) finish() {
	r.g.Each(func(p geom.Point, c grid.Cell) {
		if c == corridor {
			r.g.Set(p, grid.Floor)
		}
	})
	r.g.BuildWalls()
}

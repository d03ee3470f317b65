package dungeon

import (
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
	"github.com/Strowy/ProceduralGame/internal/logger"
	"github.com/Strowy/ProceduralGame/internal/valuesource"
)

const (
	minSideLength = 3
	minHallLength = 2
	// accessBuffer keeps entrances and exits away from the map edge.
	accessBuffer = 5
)

// HallRoomCarver keeps an ordered list of placed rooms and grows each new hall
// out of a randomly chosen one, with a room at the hall's far end.
type HallRoomCarver struct {
	params Params
	rooms  []geom.Rect
}

var _ Carver = (*HallRoomCarver)(nil)

// NewHallRoom validates params and returns a hall/room carver.
func NewHallRoom(params Params) (*HallRoomCarver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return newHallRoomCarver(params), nil
}

func newHallRoomCarver(params Params) *HallRoomCarver {
	return &HallRoomCarver{params: params}
}

// Strategy returns HallRoom.
func (c *HallRoomCarver) Strategy() Strategy { return HallRoom }

// Params returns the construction parameters.
func (c *HallRoomCarver) Params() Params { return c.params }

// Rooms returns the room list of the most recent Generate in insertion order.
func (c *HallRoomCarver) Rooms() []geom.Rect {
	return append([]geom.Rect(nil), c.rooms...)
}

// Generate carves a floor seeded from entrance.
func (c *HallRoomCarver) Generate(entrance geom.Point) *grid.Grid {
	r := newHallRoomRun(c.params, sourceFor(entrance))
	r.carve()
	c.rooms = r.rooms

	logger.Debug("Carved hall/room floor",
		"entrance", entrance,
		"rooms", len(r.rooms),
		"failed_passes", r.failedPasses,
		"exhausted", r.exhausted,
		"room_fallbacks", r.roomFallbacks,
		"access_fallbacks", r.accessFallbacks)
	return r.g
}

// hallRoomRun is the state of a single Generate call.
type hallRoomRun struct {
	params   Params
	src      valuesource.Source
	adj      adjacency
	g        *grid.Grid
	interior geom.Rect // the map less its outer ring, which is kept for walls
	rooms    []geom.Rect
	halls    []geom.Rect // hall bodies, mouth excluded
	maxSide  int

	failedPasses    int
	exhausted       bool
	roomFallbacks   int
	accessFallbacks int
}

func newHallRoomRun(params Params, src valuesource.Source) *hallRoomRun {
	g := grid.New(params.Width, params.Height)
	return &hallRoomRun{
		params:   params,
		src:      src,
		adj:      newAdjacency(src),
		g:        g,
		interior: g.BufferedBounds(1),
		maxSide:  2*params.RoomSize + 1,
	}
}

func (r *hallRoomRun) carve() {
	r.carveStartingRoom()

	for range r.params.Complexity {
		placed, exhausted := r.placeHallRoom()
		if exhausted {
			r.exhausted = true
			break
		}
		if !placed {
			r.failedPasses++
		}
	}

	r.g.BuildWalls()
	r.placeAccess(grid.Entrance)
	r.placeAccess(grid.Exit)
}

// carveStartingRoom grows the first room inward from a random point.
func (r *hallRoomRun) carveStartingRoom() {
	start := r.randomPointIn(r.g.BufferedBounds(accessBuffer))
	dir := r.g.DirectionToClosestEdge(start).Neg()
	r.growRoom(start, dir)
}

// placeHallRoom makes up to maxPassAttempts attempts to attach a hall and room.
// exhausted reports that no tunnel mouth could be found at all.
func (r *hallRoomRun) placeHallRoom() (placed, exhausted bool) {
	for range maxPassAttempts {
		mouth, dir, ok := r.findTunnelMouth()
		if !ok {
			return false, true
		}

		length := r.src.RandRange(r.params.MinTunnel, r.params.MaxTunnel)
		end := mouth.Add(dir.Scale(length - 1))
		body := geom.RectFromPoints(mouth.Add(dir), end)
		if !r.fits(body) {
			continue
		}

		seed := end.Add(dir)
		if !r.fits(minimumRoom(seed, dir)) {
			continue
		}

		r.growRoom(seed, dir)
		r.carveHall(mouth, dir, length, body)
		return true, false
	}
	return false, false
}

// findTunnelMouth picks a room and a point in it, then walks out of the floor in
// each direction of a random rotation until it reaches a mouth that can be
// cleared.
func (r *hallRoomRun) findTunnelMouth() (mouth, dir geom.Point, ok bool) {
	for range maxSearchAttempts {
		room := r.rooms[r.src.RandInt(len(r.rooms)-1)]
		from := r.randomPointIn(room)

		for _, d := range r.adj.Cycle() {
			p := from
			for r.g.Is(p.Add(d), grid.Floor) {
				p = p.Add(d)
			}
			if m := p.Add(d); r.clearable(m, d) {
				return m, d, true
			}
		}
	}
	return geom.Zero, geom.Zero, false
}

// clearable requires the mouth and both cells beside it to be rock, so a hall
// never clips the corner of another room.
func (r *hallRoomRun) clearable(p, dir geom.Point) bool {
	side := dir.Invert()
	return r.g.Is(p, grid.Rock) &&
		r.g.Is(p.Add(side), grid.Rock) &&
		r.g.Is(p.Sub(side), grid.Rock)
}

// fits reports whether rect is inside the interior and clear of every room and
// hall by at least one cell.
func (r *hallRoomRun) fits(rect geom.Rect) bool {
	if !r.interior.ContainsRect(rect) {
		return false
	}
	for _, room := range r.rooms {
		if rect.Overlaps(room, 1) {
			return false
		}
	}
	for _, hall := range r.halls {
		if rect.Overlaps(hall, 1) {
			return false
		}
	}
	return true
}

// growRoom tries random rooms containing seed and extending along dir, falling
// back to the minimum room.
func (r *hallRoomRun) growRoom(seed, dir geom.Point) {
	for range maxRoomAttempts {
		if room := r.prototypeRoom(seed, dir); r.fits(room) {
			r.addRoom(room)
			return
		}
	}

	r.roomFallbacks++
	r.addRoom(minimumRoom(seed, dir))
}

func (r *hallRoomRun) prototypeRoom(seed, dir geom.Point) geom.Rect {
	w := r.src.RandRange(minSideLength, r.maxSide)
	h := r.src.RandRange(minSideLength, r.maxSide)

	depth, breadth := h, w
	if dir.X != 0 {
		depth, breadth = w, h
	}
	offset := r.src.RandInt(breadth - 1)
	return roomRect(seed, dir, depth, breadth, offset)
}

// minimumRoom is the smallest room for seed: three cells deep, centred across
// the direction of entry.
func minimumRoom(seed, dir geom.Point) geom.Rect {
	return roomRect(seed, dir, minSideLength, minSideLength, 1)
}

// roomRect spans depth cells from seed along dir and breadth cells across it,
// starting offset cells before seed.
func roomRect(seed, dir geom.Point, depth, breadth, offset int) geom.Rect {
	across := dir.Invert().Abs()
	near := seed.Sub(across.Scale(offset))
	far := near.Add(dir.Scale(depth - 1)).Add(across.Scale(breadth - 1))
	return geom.RectFromPoints(near, far)
}

func (r *hallRoomRun) addRoom(room geom.Rect) {
	r.rooms = append(r.rooms, room)
	r.g.FillRect(room, grid.Floor)
}

func (r *hallRoomRun) carveHall(mouth, dir geom.Point, length int, body geom.Rect) {
	for i := range length {
		r.g.Set(mouth.Add(dir.Scale(i)), grid.Floor)
	}
	r.halls = append(r.halls, body)
}

func (r *hallRoomRun) randomPointIn(rect geom.Rect) geom.Point {
	return geom.Pt(
		r.src.RandRange(rect.MinX, rect.MaxX),
		r.src.RandRange(rect.MinY, rect.MaxY))
}

// placeAccess looks for a floor cell surrounded on all eight sides by floor.
func (r *hallRoomRun) placeAccess(code grid.Cell) {
	bounds := r.g.BufferedBounds(accessBuffer)
	for range maxSearchAttempts {
		if p := r.randomPointIn(bounds); r.enclosed(p) {
			r.g.Set(p, code)
			return
		}
	}

	r.accessFallbacks++
	r.g.Set(scanForAccess(r.g, r.enclosed), code)
}

func (r *hallRoomRun) enclosed(p geom.Point) bool {
	if !r.g.Is(p, grid.Floor) {
		return false
	}
	for _, d := range geom.Neighbours8 {
		if !r.g.Is(p.Add(d), grid.Floor) {
			return false
		}
	}
	return true
}

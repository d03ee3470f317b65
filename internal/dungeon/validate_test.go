package dungeon

import (
	"errors"
	"testing"

	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
)

// twoRooms builds a 12x8 floor with rooms on the left and right, an entrance
// in the left room and an exit in the right one.
func twoRooms(connected bool) *grid.Grid {
	g := grid.New(12, 8)
	g.FillRect(geom.NewRect(1, 1, 4, 6), grid.Floor)
	g.FillRect(geom.NewRect(7, 1, 10, 6), grid.Floor)
	if connected {
		g.FillRect(geom.NewRect(5, 3, 6, 3), grid.Floor)
	}
	g.Set(geom.Pt(2, 2), grid.Entrance)
	g.Set(geom.Pt(9, 5), grid.Exit)
	g.BuildWalls()
	return g
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *grid.Grid
		wantErr bool
	}{
		{"connected", func() *grid.Grid { return twoRooms(true) }, false},
		{"disconnected", func() *grid.Grid { return twoRooms(false) }, true},
		{"no entrance", func() *grid.Grid {
			g := twoRooms(true)
			g.Set(geom.Pt(2, 2), grid.Floor)
			return g
		}, true},
		{"two exits", func() *grid.Grid {
			g := twoRooms(true)
			g.Set(geom.Pt(3, 3), grid.Exit)
			return g
		}, true},
		{"floor on edge", func() *grid.Grid {
			g := twoRooms(true)
			g.Set(geom.Pt(0, 3), grid.Floor)
			return g
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.build())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFloor) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidFloor", err)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	s := Inspect(twoRooms(false))
	if s.Walkable != 48 {
		t.Errorf("Walkable = %d, want 48", s.Walkable)
	}
	if s.Reachable != 24 {
		t.Errorf("Reachable = %d, want 24", s.Reachable)
	}
	if len(s.Entrances) != 1 || s.Entrances[0] != geom.Pt(2, 2) {
		t.Errorf("Entrances = %v, want [(2, 2)]", s.Entrances)
	}
	if len(s.Exits) != 1 || s.Exits[0] != geom.Pt(9, 5) {
		t.Errorf("Exits = %v, want [(9, 5)]", s.Exits)
	}

	if s := Inspect(grid.New(12, 12)); s.Reachable != 0 || s.Walkable != 0 {
		t.Errorf("Inspect(empty) = %+v, want zero counts", s)
	}
}

func TestReachabilityIgnoresDiagonals(t *testing.T) {
	g := grid.New(6, 6)
	g.Set(geom.Pt(2, 2), grid.Entrance)
	g.Set(geom.Pt(3, 3), grid.Exit)
	if s := Inspect(g); s.Reachable != 1 {
		t.Errorf("Reachable = %d, want 1 (diagonal step counted)", s.Reachable)
	}
}

package terrain

import (
	"sync"
	"testing"

	"github.com/Strowy/ProceduralGame/internal/geom"
)

func TestChunkOf(t *testing.T) {
	f := newTestField(t)
	tests := []struct {
		x, y int
		want geom.Point
	}{
		{0, 0, geom.Pt(0, 0)},
		{7, 7, geom.Pt(0, 0)},
		{8, 0, geom.Pt(1, 0)},
		{-1, -8, geom.Pt(-1, -1)},
		{-9, 23, geom.Pt(-2, 2)},
	}
	for _, tt := range tests {
		if got := f.ChunkOf(tt.x, tt.y); got != tt.want {
			t.Errorf("ChunkOf(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestChunkMatchesCellQueries(t *testing.T) {
	f := newTestField(t)
	c := f.Chunk(2, 1) // covers the portal at (23, 8)

	if want := geom.NewRect(16, 8, 23, 15); c.Bounds != want {
		t.Fatalf("Bounds = %v, want %v", c.Bounds, want)
	}
	if len(c.Cells) != 64 {
		t.Fatalf("len(Cells) = %d, want 64", len(c.Cells))
	}

	ref := newTestField(t)
	for y := c.Bounds.MinY; y <= c.Bounds.MaxY; y++ {
		for x := c.Bounds.MinX; x <= c.Bounds.MaxX; x++ {
			if got, want := c.At(x, y), ref.TerrainData(x, y); got != want {
				t.Errorf("At(%d, %d) = %+v, want %+v", x, y, got, want)
			}
		}
	}

	if len(c.Portals) != 1 || c.Portals[0].Entrance != geom.Pt(23, 8) {
		t.Errorf("Portals = %+v, want one at (23, 8)", c.Portals)
	}
}

func TestChunkAtPanicsOutside(t *testing.T) {
	c := newTestField(t).Chunk(0, 0)
	defer func() {
		if recover() == nil {
			t.Error("At outside the chunk did not panic")
		}
	}()
	c.At(8, 0)
}

func TestClearedSet(t *testing.T) {
	s := NewClearedSet()
	p := geom.Pt(23, 8)
	if s.IsCleared(p) || s.Score() != 0 {
		t.Fatal("new set is not empty")
	}

	s.MarkCleared(p)
	s.MarkCleared(p)
	if !s.IsCleared(p) {
		t.Error("IsCleared false after MarkCleared")
	}
	if s.Score() != 1 {
		t.Errorf("Score() = %d, want 1 after marking one entrance twice", s.Score())
	}
	if s.IsCleared(geom.Pt(8, 23)) {
		t.Error("IsCleared true for an unmarked entrance")
	}
}

func TestClearedSetConcurrent(t *testing.T) {
	s := NewClearedSet()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.MarkCleared(geom.Pt(i, i))
			s.IsCleared(geom.Pt(i, 0))
		}(i)
	}
	wg.Wait()
	if s.Score() != 16 {
		t.Errorf("Score() = %d, want 16", s.Score())
	}
}

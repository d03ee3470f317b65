package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/Strowy/ProceduralGame/internal/geom"
)

const worldSeed = 1128

func newTestField(t *testing.T, opts ...Option) *Field {
	t.Helper()
	f, err := NewField(DefaultProperties(), worldSeed, opts...)
	if err != nil {
		t.Fatalf("NewField failed: %v", err)
	}
	return f
}

func TestModifiersOffsets(t *testing.T) {
	m := DefaultModifiers()
	want := [BandCount]float64{0, 0, 0, 0.0125, 0.0625, 0.1125, 0.2125, 0.6625}
	for i := range want {
		if math.Abs(m.Offset[i]-want[i]) > 1e-9 {
			t.Errorf("Offset[%d] = %v, want %v", i, m.Offset[i], want[i])
		}
	}
}

func TestModifiersBand(t *testing.T) {
	m := DefaultModifiers()
	tests := []struct {
		h    float64
		want int
	}{
		{0, 0},
		{0.1, 0},
		{0.28, 1},
		{0.299, 1},
		{0.30, 2},
		{0.40, 3},
		{0.45, 4},
		{0.5, 4},
		{0.70, 5},
		{0.80, 6},
		{0.95, 7},
		{0.999, 7},
	}

	for _, tt := range tests {
		if got := m.Band(tt.h); got != tt.want {
			t.Errorf("Band(%v) = %d, want %d", tt.h, got, tt.want)
		}
	}
}

func TestModifiersHeight(t *testing.T) {
	m := DefaultModifiers()
	tests := []struct {
		h    float64
		band int
		want int
	}{
		{0.1, 0, 0},
		{0.29, 1, 0},
		{0.5, 4, 7},
		{0.7, 5, 16},
		{0.95, 7, 71},
	}

	for _, tt := range tests {
		if got := m.Height(tt.h, tt.band, 100); got != tt.want {
			t.Errorf("Height(%v, %d) = %d, want %d", tt.h, tt.band, got, tt.want)
		}
	}
}

func TestPropertiesValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Properties)
		wantErr bool
	}{
		{"defaults", func(p *Properties) {}, false},
		{"zero chunk", func(p *Properties) { p.ChunkSize = 0 }, true},
		{"tiny biome", func(p *Properties) { p.BiomeSize = 6 }, true},
		{"smallest biome", func(p *Properties) { p.BiomeSize = 7 }, false},
		{"zero height", func(p *Properties) { p.MaxHeight = 0 }, true},
		{"zero cell size", func(p *Properties) { p.CellSize = 0 }, true},
		{"zero grid", func(p *Properties) { p.GridSize = 0 }, true},
		{"no octaves", func(p *Properties) { p.Octaves = 0 }, true},
		{"persistence above one", func(p *Properties) { p.Persistence = 1.5 }, true},
		{"negative rise", func(p *Properties) { p.CornerRise = -1 }, true},
		{"rise too tall", func(p *Properties) { p.CornerRise = 51 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProperties()
			tt.modify(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidProperties) {
				t.Errorf("error %v does not wrap ErrInvalidProperties", err)
			}
			if _, err := NewField(p, worldSeed); (err != nil) != tt.wantErr {
				t.Errorf("NewField() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNoiseLatticePoints(t *testing.T) {
	n := NewNoise(worldSeed, 64, 3, 0.5)
	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(64, -128), geom.Pt(-640, 192)} {
		if got := n.UnitHeight(p.X, p.Y); got != 0.5 {
			t.Errorf("UnitHeight(%v) = %v, want 0.5 on every lattice point", p, got)
		}
	}
}

func TestNoiseIsDeterministic(t *testing.T) {
	a := NewNoise(worldSeed, 64, 3, 0.5)
	b := NewNoise(worldSeed, 64, 3, 0.5)
	other := NewNoise(worldSeed+1, 64, 3, 0.5)

	differs := false
	for x := -100; x < 100; x += 7 {
		for y := -100; y < 100; y += 11 {
			if a.UnitHeight(x, y) != b.UnitHeight(x, y) {
				t.Fatalf("UnitHeight(%d, %d) differs between instances", x, y)
			}
			if a.UnitHeight(x, y) != other.UnitHeight(x, y) {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("different seeds produced identical noise")
	}
}

func TestTerrainDataRanges(t *testing.T) {
	f := newTestField(t)
	maxHeight := f.Properties().MaxHeight

	kinds := make(map[FeatureKind]int)
	for x := -300; x < 300; x += 3 {
		for y := -300; y < 300; y += 5 {
			d := f.TerrainData(x, y)
			if d.Height < 0 || d.Height > maxHeight {
				t.Fatalf("TerrainData(%d, %d).Height = %d outside [0, %d]", x, y, d.Height, maxHeight)
			}
			if d.Biome < 0 || d.Biome >= BandCount {
				t.Fatalf("TerrainData(%d, %d).Biome = %d outside [0, %d)", x, y, d.Biome, BandCount)
			}
			if d.Feature == nil {
				t.Fatalf("TerrainData(%d, %d).Feature is nil", x, y)
			}
			if IsWater(d.Biome) != (d.Feature.Kind() == KindWater) {
				t.Errorf("TerrainData(%d, %d): biome %d with feature %v", x, y, d.Biome, d.Feature.Kind())
			}
			kinds[d.Feature.Kind()]++
		}
	}

	if kinds[KindNone] == 0 || kinds[KindWater] == 0 {
		t.Errorf("feature counts %v: expected plain and water cells", kinds)
	}
}

// clampedSource returns fixed heights outside [0,1).
type clampedSource struct{ h float64 }

func (c clampedSource) UnitHeight(int, int) float64 { return c.h }

func TestHeightIsClamped(t *testing.T) {
	tests := []struct {
		raw        float64
		wantBiome  int
		wantHeight int
	}{
		{-0.4, 0, 0},
		{1.3, 7, 76},
	}

	for _, tt := range tests {
		f := newTestField(t, WithHeightSource(clampedSource{tt.raw}))
		d := f.TerrainData(5, 5)
		if d.Biome != tt.wantBiome || d.Height != tt.wantHeight {
			t.Errorf("raw %v: biome %d height %d, want %d and %d", tt.raw, d.Biome, d.Height, tt.wantBiome, tt.wantHeight)
		}
	}
}

func TestOriginCell(t *testing.T) {
	d := newTestField(t).TerrainData(0, 0)
	if d.Biome != BandPortal || d.Height != 7 || d.Feature.Kind() != KindNone {
		t.Errorf("TerrainData(0, 0) = %+v, want band 4 height 7 and no feature", d)
	}
}

func TestPortalAnchorStaysInsideTile(t *testing.T) {
	f := newTestField(t)
	size := f.Properties().BiomeSize
	for bx := -6; bx <= 6; bx++ {
		for by := -6; by <= 6; by++ {
			biome := geom.Pt(bx, by)
			a := f.PortalAnchor(biome)
			tile := geom.RectFromPoints(biome.Scale(size), biome.Scale(size).Offset(size-1))
			if !tile.Contains(a, portalMargin) {
				t.Errorf("anchor %v of biome %v is within %d cells of the tile edge", a, biome, portalMargin)
			}
			if f.BiomeOf(a.X, a.Y) != biome {
				t.Errorf("BiomeOf(anchor %v) = %v, want %v", a, f.BiomeOf(a.X, a.Y), biome)
			}
		}
	}

	if got := f.PortalAnchor(geom.Pt(0, 0)); got != geom.Pt(23, 8) {
		t.Errorf("PortalAnchor(0, 0) = %v, want (23, 8)", got)
	}
}

func TestPortalAndSurround(t *testing.T) {
	cleared := NewClearedSet()
	f := newTestField(t, WithCleared(cleared.IsCleared))

	anchor := geom.Pt(23, 8)
	d := f.TerrainData(anchor.X, anchor.Y)
	portal, ok := d.Feature.(Portal)
	if !ok {
		t.Fatalf("TerrainData(anchor) feature = %v, want portal", d.Feature.Kind())
	}
	if portal.Entrance != anchor || portal.Cleared {
		t.Errorf("portal = %+v, want uncleared entrance %v", portal, anchor)
	}
	if d.Biome != BandPortal {
		t.Errorf("portal biome = %d, want %d", d.Biome, BandPortal)
	}

	var edgeHeight int
	for _, n := range geom.Neighbours8 {
		p := anchor.Add(n)
		s, ok := f.TerrainData(p.X, p.Y).Feature.(Surround)
		if !ok {
			t.Fatalf("TerrainData(%v) is not a surround", p)
		}
		corner := n.X != 0 && n.Y != 0
		if s.IsCorner != corner {
			t.Errorf("surround %v IsCorner = %v, want %v", p, s.IsCorner, corner)
		}
		if !corner {
			edgeHeight = s.HeightOverride
		}
	}
	for _, n := range geom.Neighbours8 {
		p := anchor.Add(n)
		d := f.TerrainData(p.X, p.Y)
		s := d.Feature.(Surround)
		want := edgeHeight
		if s.IsCorner {
			want += f.Properties().CornerRise
		}
		if s.HeightOverride != want || d.Height != want {
			t.Errorf("surround %v height %d/%d, want %d", p, s.HeightOverride, d.Height, want)
		}
	}

	// Two cells out is outside the ring.
	if k := f.TerrainData(anchor.X+2, anchor.Y).Feature.Kind(); k == KindSurround {
		t.Errorf("cell two away from the anchor is a %v", k)
	}

	cleared.MarkCleared(anchor)
	if p := f.TerrainData(anchor.X, anchor.Y).Feature.(Portal); !p.Cleared {
		t.Error("portal not reported cleared after MarkCleared")
	}
}

func TestNoPortalOffBand(t *testing.T) {
	f := newTestField(t)
	// The anchors of these tiles fall in bands 6 and 3.
	for _, biome := range []geom.Point{geom.Pt(1, 2), geom.Pt(2, 1)} {
		a := f.PortalAnchor(biome)
		if k := f.TerrainData(a.X, a.Y).Feature.Kind(); k == KindPortal {
			t.Errorf("biome %v anchor %v is a portal", biome, a)
		}
		for _, n := range geom.Neighbours8 {
			p := a.Add(n)
			if k := f.TerrainData(p.X, p.Y).Feature.Kind(); k == KindSurround {
				t.Errorf("biome %v: %v is a surround without a portal", biome, p)
			}
		}
	}
}

func TestPortalsOnlyAtAnchors(t *testing.T) {
	f := newTestField(t)
	portals := 0
	for x := -96; x < 96; x++ {
		for y := -96; y < 96; y++ {
			d := f.TerrainData(x, y)
			if d.Feature.Kind() != KindPortal {
				continue
			}
			portals++
			if a := f.PortalAnchor(f.BiomeOf(x, y)); a != geom.Pt(x, y) {
				t.Errorf("portal at (%d, %d) but tile anchor is %v", x, y, a)
			}
		}
	}
	if portals == 0 {
		t.Error("no portals in a 6x6 tile region")
	}
	if portals > 36 {
		t.Errorf("%d portals in 36 tiles, want at most one per tile", portals)
	}
}

func TestBiomeCacheDoesNotChangeOutput(t *testing.T) {
	cells := []geom.Point{
		geom.Pt(23, 8), geom.Pt(-40, 70), geom.Pt(24, 8), geom.Pt(100, -3),
		geom.Pt(22, 9), geom.Pt(-1, -1), geom.Pt(0, 0), geom.Pt(31, 31), geom.Pt(32, 32),
	}

	cached := newTestField(t)
	for _, p := range cells {
		fresh := newTestField(t)
		want := fresh.TerrainData(p.X, p.Y)
		if got := cached.TerrainData(p.X, p.Y); got != want {
			t.Errorf("TerrainData(%v) = %+v after other queries, want %+v", p, got, want)
		}
	}
}

func TestBiomeOfNegative(t *testing.T) {
	f := newTestField(t)
	tests := []struct {
		x, y int
		want geom.Point
	}{
		{0, 0, geom.Pt(0, 0)},
		{31, 31, geom.Pt(0, 0)},
		{32, -1, geom.Pt(1, -1)},
		{-32, -33, geom.Pt(-1, -2)},
	}
	for _, tt := range tests {
		if got := f.BiomeOf(tt.x, tt.y); got != tt.want {
			t.Errorf("BiomeOf(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// Package terrain classifies world cells into height bands and places water,
// dungeon portals and portal surrounds deterministically.
package terrain

import (
	"math"

	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/valuesource"
)

// TerrainData describes one world cell.
type TerrainData struct {
	Height  int
	Biome   int // band index in [0, BandCount)
	Feature Feature
}

// ClearedFunc reports whether the dungeon entered at a world cell has been
// cleared.
type ClearedFunc func(entrance geom.Point) bool

// maxUnitHeight is the largest float64 below 1.
var maxUnitHeight = math.Nextafter(1, 0)

// Field answers TerrainData queries for a world. It caches the value source of
// the last biome tile it looked at, so it is not safe for concurrent use.
type Field struct {
	props   Properties
	bands   Modifiers
	heights HeightSource
	cleared ClearedFunc

	biomeSrc  *valuesource.PseudoRandom
	lastBiome geom.Point
	haveBiome bool
}

// Option configures a Field.
type Option func(*Field)

// WithCleared sets the predicate used for Portal.Cleared.
func WithCleared(fn ClearedFunc) Option {
	return func(f *Field) { f.cleared = fn }
}

// WithHeightSource replaces the default noise.
func WithHeightSource(h HeightSource) Option {
	return func(f *Field) { f.heights = h }
}

// NewField builds a field for the world seed.
func NewField(props Properties, seed int, opts ...Option) (*Field, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}

	f := &Field{
		props:    props,
		bands:    DefaultModifiers(),
		heights:  NewNoise(seed, props.GridSize, props.Octaves, props.Persistence),
		cleared:  func(geom.Point) bool { return false },
		biomeSrc: valuesource.New(0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Properties returns the field's properties.
func (f *Field) Properties() Properties { return f.props }

// TerrainData classifies the cell at (x, y).
func (f *Field) TerrainData(x, y int) TerrainData {
	p := geom.Pt(x, y)
	h := f.unitHeight(p)
	band := f.bands.Band(h)
	data := TerrainData{
		Height:  f.bands.Height(h, band, f.props.MaxHeight),
		Biome:   band,
		Feature: None{},
	}

	if IsWater(band) {
		data.Feature = Water{}
		return data
	}

	anchor := f.PortalAnchor(f.BiomeOf(x, y))
	if band == BandPortal && p == anchor {
		data.Feature = Portal{Entrance: p, Cleared: f.cleared(p)}
		return data
	}

	if band >= BandLowland && band <= BandUpland {
		if s, ok := f.surround(p, anchor); ok {
			data.Height = s.HeightOverride
			data.Feature = s
		}
	}
	return data
}

// surround reports whether p is in the ring around a portal anchor.
func (f *Field) surround(p, anchor geom.Point) (Surround, bool) {
	d := p.Sub(anchor).Abs()
	if d.X > 1 || d.Y > 1 || d.IsZero() {
		return Surround{}, false
	}

	h := f.unitHeight(anchor)
	if f.bands.Band(h) != BandPortal {
		return Surround{}, false
	}

	s := Surround{HeightOverride: f.bands.Height(h, BandPortal, f.props.MaxHeight)}
	if d.X == 1 && d.Y == 1 {
		s.IsCorner = true
		s.HeightOverride += f.props.CornerRise
	}
	return s, true
}

// unitHeight clamps the height source into [0, 1).
func (f *Field) unitHeight(p geom.Point) float64 {
	return min(max(f.heights.UnitHeight(p.X, p.Y), 0), maxUnitHeight)
}

// BiomeOf returns the biome tile containing (x, y).
func (f *Field) BiomeOf(x, y int) geom.Point {
	return geom.Pt(x, y).FloorDiv(f.props.BiomeSize)
}

// PortalAnchor returns the world cell chosen for the portal of a biome tile.
// The anchor keeps portalMargin cells clear of every tile border. Whether a
// portal appears there depends on the terrain band at the anchor.
func (f *Field) PortalAnchor(biome geom.Point) geom.Point {
	src := f.biomeSource(biome)
	inner := f.props.BiomeSize - 2*portalMargin
	de := int(src.UnitFloatAt(biome) * float64(inner*inner))
	local := geom.Pt(de%inner+portalMargin, de/inner+portalMargin)
	return biome.Scale(f.props.BiomeSize).Add(local)
}

// biomeSource reseeds the cached value source when the biome tile changes.
func (f *Field) biomeSource(biome geom.Point) valuesource.Source {
	if !f.haveBiome || biome != f.lastBiome {
		f.biomeSrc.Reset(valuesource.SeedFromPosition(biome))
		f.lastBiome = biome
		f.haveBiome = true
	}
	return f.biomeSrc
}

package terrain

import "github.com/Strowy/ProceduralGame/internal/geom"

// FeatureKind identifies a Feature variant.
type FeatureKind int

const (
	KindNone FeatureKind = iota
	KindWater
	KindPortal
	KindSurround
)

// String returns the string representation of a FeatureKind
func (k FeatureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindWater:
		return "water"
	case KindPortal:
		return "portal"
	case KindSurround:
		return "surround"
	default:
		return "unknown"
	}
}

// Feature is the special content of a terrain cell. The variants are None,
// Water, Portal and Surround.
type Feature interface {
	Kind() FeatureKind
	feature()
}

// None is a plain cell.
type None struct{}

// Water is a cell in one of the water bands.
type Water struct{}

// Portal is a dungeon entrance. Entrance is its world cell, which also seeds
// the dungeon below it.
type Portal struct {
	Entrance geom.Point
	Cleared  bool
}

// Surround is a wall cell in the ring around a portal. Corner cells stand
// taller than edge cells.
type Surround struct {
	HeightOverride int
	IsCorner       bool
}

func (None) Kind() FeatureKind     { return KindNone }
func (Water) Kind() FeatureKind    { return KindWater }
func (Portal) Kind() FeatureKind   { return KindPortal }
func (Surround) Kind() FeatureKind { return KindSurround }

func (None) feature()     {}
func (Water) feature()    {}
func (Portal) feature()   {}
func (Surround) feature() {}

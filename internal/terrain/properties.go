package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidProperties is returned when terrain properties are unusable.
var ErrInvalidProperties = errors.New("invalid terrain properties")

// portalMargin keeps portal anchors and their surrounds off biome tile borders.
const portalMargin = 2

// Properties configure a Field.
type Properties struct {
	ChunkSize   int     // Cells per chunk side
	BiomeSize   int     // Cells per biome tile side
	MaxHeight   int     // Height units at normalized height 1
	CellSize    float64 // World units per cell, for renderers
	GridSize    int     // Noise lattice spacing
	Octaves     int     // Noise octaves
	Persistence float64 // Amplitude factor between octaves
	CornerRise  int     // Extra height of surround corner cells
}

// DefaultProperties returns the values the game ships with.
func DefaultProperties() Properties {
	return Properties{
		ChunkSize:   8,
		BiomeSize:   32,
		MaxHeight:   100,
		CellSize:    2,
		GridSize:    64,
		Octaves:     3,
		Persistence: 0.5,
		CornerRise:  2,
	}
}

// Validate checks the properties. Errors wrap ErrInvalidProperties.
func (p Properties) Validate() error {
	switch {
	case p.ChunkSize < 1:
		return fmt.Errorf("%w: chunk size %d", ErrInvalidProperties, p.ChunkSize)
	case p.BiomeSize < 2*portalMargin+3:
		return fmt.Errorf("%w: biome size %d is below %d", ErrInvalidProperties, p.BiomeSize, 2*portalMargin+3)
	case p.MaxHeight < 1:
		return fmt.Errorf("%w: max height %d", ErrInvalidProperties, p.MaxHeight)
	case p.CellSize <= 0:
		return fmt.Errorf("%w: cell size %g", ErrInvalidProperties, p.CellSize)
	case p.GridSize < 1:
		return fmt.Errorf("%w: grid size %d", ErrInvalidProperties, p.GridSize)
	case p.Octaves < 1:
		return fmt.Errorf("%w: octaves %d", ErrInvalidProperties, p.Octaves)
	case p.Persistence <= 0 || p.Persistence > 1:
		return fmt.Errorf("%w: persistence %g outside (0, 1]", ErrInvalidProperties, p.Persistence)
	case p.CornerRise < 0 || p.CornerRise > p.MaxHeight/2:
		return fmt.Errorf("%w: corner rise %d outside [0, %d]", ErrInvalidProperties, p.CornerRise, p.MaxHeight/2)
	}
	return nil
}

package terrain

// BandCount is the number of terrain bands.
const BandCount = 8

// Band indices with special meaning.
const (
	BandDeepWater    = 0
	BandShallowWater = 1
	BandLowland      = 3
	BandPortal       = 4
	BandUpland       = 5
)

// Modifiers is the band table. Threshold is the lower bound of each band,
// Multiplier scales height within the band, and Offset is the height reached at
// the band's threshold.
type Modifiers struct {
	Threshold  [BandCount]float64
	Multiplier [BandCount]float64
	Offset     [BandCount]float64
}

// DefaultModifiers returns the band table with precomputed offsets.
func DefaultModifiers() Modifiers {
	m := Modifiers{
		Threshold:  [BandCount]float64{0, 0.28, 0.30, 0.35, 0.45, 0.65, 0.75, 0.90},
		Multiplier: [BandCount]float64{0, 0, 0.25, 0.50, 0.25, 1.00, 3.00, 1.00},
	}
	for i := 1; i < BandCount; i++ {
		m.Offset[i] = m.Multiplier[i-1]*(m.Threshold[i]-m.Threshold[i-1]) + m.Offset[i-1]
	}
	return m
}

// Band returns the highest band whose threshold is at or below h.
func (m Modifiers) Band(h float64) int {
	band := 0
	for i := range m.Threshold {
		if m.Threshold[i] <= h {
			band = i
		}
	}
	return band
}

// Height converts a normalized height inside band to whole height units.
func (m Modifiers) Height(h float64, band, maxHeight int) int {
	return int(((h-m.Threshold[band])*m.Multiplier[band] + m.Offset[band]) * float64(maxHeight))
}

// IsWater reports whether band is one of the water bands.
func IsWater(band int) bool {
	return band == BandDeepWater || band == BandShallowWater
}

package terrain

import (
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/valuesource"
)

// HeightSource yields a normalized height for a world cell.
type HeightSource interface {
	UnitHeight(x, y int) float64
}

// gradients holds the 2D directions the noise lattice corners are assigned.
var gradients = [16][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
	{1, 1}, {0, -1}, {-1, 1}, {0, -1},
}

// Noise is layered lattice noise. Each octave doubles the sampling frequency
// and scales the amplitude by the persistence; the octaves are averaged by
// total amplitude.
type Noise struct {
	src         valuesource.Source
	gridSize    int
	octaves     int
	persistence float64
}

var _ HeightSource = (*Noise)(nil)

// NewNoise returns noise seeded with the world seed.
func NewNoise(seed, gridSize, octaves int, persistence float64) *Noise {
	return &Noise{
		src:         valuesource.New(seed),
		gridSize:    gridSize,
		octaves:     octaves,
		persistence: persistence,
	}
}

// UnitHeight returns the weighted octave average for a cell. Values are
// roughly within [0,1) but not guaranteed to be.
func (n *Noise) UnitHeight(x, y int) float64 {
	var sum, total float64
	amp := 1.0
	freq := 1
	for range n.octaves {
		sum += n.sample(x*freq, y*freq) * amp
		total += amp
		amp *= n.persistence
		freq *= 2
	}
	return sum / total
}

// sample interpolates the four lattice gradients around a point and remaps the
// result with (v*1.5+1)/2.
func (n *Noise) sample(x, y int) float64 {
	size := n.gridSize
	x0 := geom.FloorDiv(x, size) * size
	y0 := geom.FloorDiv(y, size) * size
	x1, y1 := x0+size, y0+size
	xf := float64(x-x0) / float64(size)
	yf := float64(y-y0) / float64(size)

	u := fade(xf)
	v := fade(yf)

	top := lerp(dot(n.gradient(x0, y0), xf, yf), dot(n.gradient(x1, y0), xf-1, yf), u)
	bottom := lerp(dot(n.gradient(x0, y1), xf, yf-1), dot(n.gradient(x1, y1), xf-1, yf-1), u)

	return (lerp(top, bottom, v)*1.5 + 1) / 2
}

func (n *Noise) gradient(x, y int) [2]float64 {
	return gradients[int(n.src.UnitFloat2(x, y)*float64(len(gradients)))]
}

// fade is the smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

func dot(g [2]float64, x, y float64) float64 {
	return g[0]*x + g[1]*y
}

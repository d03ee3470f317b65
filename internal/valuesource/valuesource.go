// Package valuesource implements the seeded, reproducible value source that every
// generator in this module draws from. A Source exposes two access modes:
// coordinate hashing (UnitFloat and friends), which is referentially transparent
// for a fixed seed, and a stateful sequence (NextUnitFloat) that advances an
// internal counter on each call.
//
// A Source is not safe for concurrent use. Each generation task must own its
// own instance.
package valuesource

import (
	"math"

	"github.com/Strowy/ProceduralGame/internal/geom"
)

const (
	// period is the permutation table size.
	period = 256

	// counterPeriod bounds the sequence counter.
	counterPeriod = 1 << 20

	// seedRange bounds SeedFromPosition.
	seedRange = 16384
)

// Source is the contract consumed by the carvers and the terrain field.
type Source interface {
	// Reset rebuilds the permutation table for seed and rewinds the sequence.
	Reset(seed int)
	// UnitFloat hashes a single integer into [0,1).
	UnitFloat(x int) float64
	// UnitFloat2 hashes an ordered pair into [0,1). It is not symmetric in x and y.
	UnitFloat2(x, y int) float64
	// UnitFloatAt is UnitFloat2(p.X, p.Y).
	UnitFloatAt(p geom.Point) float64
	// NextUnitFloat advances the sequence and returns its next value in [0,1).
	NextUnitFloat() float64
	// RandInt returns an integer in [0, maxInclusive].
	RandInt(maxInclusive int) int
	// RandRange returns an integer in [min, max].
	RandRange(min, max int) int
}

// basePermutation is the fixed table every seed is derived from. It is never
// written after package initialization.
var basePermutation = [period]int{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95,
	96, 53, 194, 233, 7, 225, 140, 36, 103, 30, 69,
	142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219,
	203, 117, 35, 11, 32, 57, 177, 33, 88, 237, 149,
	56, 87, 174, 20, 125, 136, 171, 168, 68, 175, 74,
	165, 71, 134, 139, 48, 27, 166, 77, 146, 158,
	231, 83, 111, 229, 122, 60, 211, 133, 230, 220,
	105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132,
	187, 208, 89, 18, 169, 200, 196, 135, 130, 116,
	188, 159, 86, 164, 100, 109, 198, 173, 186, 3,
	64, 52, 217, 226, 250, 124, 123, 5, 202, 38, 147,
	118, 126, 255, 82, 85, 212, 207, 206, 59, 227,
	47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170,
	213, 119, 248, 152, 2, 44, 154, 163, 70, 221, 153,
	101, 155, 167, 43, 172, 9, 129, 22, 39, 253, 19,
	98, 108, 110, 79, 113, 224, 232, 178, 185, 112,
	104, 218, 246, 97, 228, 251, 34, 242, 193, 238,
	210, 144, 12, 191, 179, 162, 241, 81, 51, 145,
	235, 249, 14, 239, 107, 49, 192, 214, 31, 181,
	199, 106, 157, 184, 84, 204, 176, 115, 121, 50,
	45, 127, 4, 150, 254, 138, 236, 205, 93, 222, 114,
	67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215,
	61, 156, 180,
}

// PseudoRandom is the permutation-table implementation of Source.
type PseudoRandom struct {
	table   [period]int
	counter int
}

var _ Source = (*PseudoRandom)(nil)

// New returns a PseudoRandom already reset to seed.
func New(seed int) *PseudoRandom {
	s := &PseudoRandom{}
	s.Reset(seed)
	return s
}

// Reset rebuilds the table as (base[i] + seed/256 + seed%256) mod 256, using floor
// division and floor modulo, and rewinds the sequence counter to zero.
func (s *PseudoRandom) Reset(seed int) {
	shift := geom.FloorDiv(seed, period) + geom.FloorMod(seed, period)
	for i := range s.table {
		s.table[i] = geom.FloorMod(basePermutation[i]+shift, period)
	}
	s.counter = 0
}

// UnitFloat hashes x into [0,1). Adjacent inputs are not correlated; smoothness is
// the caller's job.
func (s *PseudoRandom) UnitFloat(x int) float64 {
	return float64(s.hash(x+period)) / (period * 3)
}

// UnitFloat2 chains the axes: the un-normalized hash of x is added to y before y is
// hashed.
func (s *PseudoRandom) UnitFloat2(x, y int) float64 {
	dx := s.hash(x + period)
	return float64(s.hash(y+dx)) / (period * 3)
}

// UnitFloatAt hashes a point.
func (s *PseudoRandom) UnitFloatAt(p geom.Point) float64 {
	return s.UnitFloat2(p.X, p.Y)
}

// NextUnitFloat advances the counter (mod 2^20) and hashes it.
func (s *PseudoRandom) NextUnitFloat() float64 {
	s.counter = (s.counter + 1) % counterPeriod
	return s.UnitFloat(s.counter)
}

// RandInt returns floor((maxInclusive+1) * NextUnitFloat()).
func (s *PseudoRandom) RandInt(maxInclusive int) int {
	return int(math.Floor(float64(maxInclusive+1) * s.NextUnitFloat()))
}

// RandRange returns min + floor((max-min+1) * NextUnitFloat()).
func (s *PseudoRandom) RandRange(min, max int) int {
	return min + int(math.Floor(float64(max-min+1)*s.NextUnitFloat()))
}

// hash is the un-normalized three-lookup sum, in [0, 765].
func (s *PseudoRandom) hash(v int) int {
	a := geom.FloorDiv(v, period)
	b := geom.FloorMod(v, period)
	return s.table[b] + s.table[geom.FloorMod(v*a, period)] + s.table[geom.FloorMod(v+b, period)]
}

// SeedFromPosition maps a world position to a seed in [0, 16384). The mapping is
// lossy; distinct positions may share a seed.
func SeedFromPosition(p geom.Point) int {
	v := p.X * (p.Y + 13)
	if v < 0 {
		v = -v
	}
	return v % seedRange
}

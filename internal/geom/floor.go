package geom

// FloorDiv divides rounding toward negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// FloorMod returns a mod b in [0, b). b must be positive.
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// FloorDivPoint applies FloorDiv to both components.
func (p Point) FloorDiv(n int) Point {
	return Point{FloorDiv(p.X, n), FloorDiv(p.Y, n)}
}

package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers shared by the geometry, mesh and render packages.

// Elem returns a vector with all components set to sides.
func Elem(sides float64) r3.Vec {
	return r3.Vec{
		X: sides,
		Y: sides,
		Z: sides,
	}
}

// EqualWithin returns true if every component of a and b differ by at most tol.
func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// Round rounds x to places decimal places. A result of
// negative zero is returned as positive zero. Values too large to carry
// a fractional digit at that precision are returned unchanged.
func Round(x float64, places int) float64 {
	p := math.Pow10(places)
	if xp := math.Abs(x * p); !(xp < 1<<52) {
		return x
	}
	r := math.Round(x*p) / p
	if r == 0 {
		return 0
	}
	return r
}

// RoundElem rounds every component of a to places decimal places.
func RoundElem(a r3.Vec, places int) r3.Vec {
	return r3.Vec{
		X: Round(a.X, places),
		Y: Round(a.Y, places),
		Z: Round(a.Z, places),
	}
}

// Set is an ordered collection of points, such as the vertices of a polygon.
type Set []r3.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r3.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r3.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Mean returns the arithmetic mean of the set. It panics on an empty set.
func (a Set) Mean() r3.Vec {
	if len(a) == 0 {
		panic("mean of empty set")
	}
	var sum r3.Vec
	for _, v := range a {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1/float64(len(a)), sum)
}

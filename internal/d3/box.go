package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d axis aligned bounding box.
type Box r3.Box

// EmptyBox returns an inverted box that any call to Include
// replaces with the included geometry.
func EmptyBox() Box {
	return Box{Min: Elem(math.MaxFloat64), Max: Elem(-math.MaxFloat64)}
}

// BoxOf returns the smallest box containing every point of s.
func BoxOf(s Set) Box {
	if len(s) == 0 {
		return Box{}
	}
	return Box{Min: s.Min(), Max: s.Max()}
}

// Equals test the equality of 3d boxes.
func (a Box) Equals(b Box, tol float64) bool {
	return EqualWithin(a.Min, b.Min, tol) && EqualWithin(a.Max, b.Max, tol)
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Contains checks if the 3d box contains the given vector (considering bounds as inside).
func (a Box) Contains(v r3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}

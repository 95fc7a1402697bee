package geodome

import (
	"fmt"

	"github.com/soypat/geodome/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// pentagonSides is the number of vertices in each of the dome's pentagons.
const pentagonSides = 5

// VertexSet holds the 11 vertices of a one-frequency geodesic dome:
// an icosahedron missing its bottom vertex.
//
// Upper[i] and Lower[i] are azimuthally offset by pi/5, which produces
// the zig-zag band of triangles between the two pentagons.
// Increasing indices run clockwise when seen from above.
type VertexSet struct {
	Apex  r3.Vec
	Upper [pentagonSides]r3.Vec
	Lower [pentagonSides]r3.Vec
}

// GenerateVertices returns the vertices of an icosahedron of circumradius
// radius centered at the origin, except for the bottom vertex.
// See https://en.wikipedia.org/wiki/Regular_icosahedron#Spherical_coordinates
func GenerateVertices(radius float64) (VertexSet, error) {
	if !validRadius(radius) {
		return VertexSet{}, fmt.Errorf("generate vertices for radius %g: %w", radius, ErrInvalidRadius)
	}
	var vs VertexSet
	vs.Apex = r3.Vec{Z: radius}
	for i := 0; i < pentagonSides; i++ {
		upperAzimuth := float64(i) * tau / pentagonSides
		lowerAzimuth := pi/pentagonSides + upperAzimuth
		vs.Upper[i] = SphericalToCartesian(radius, pentagonAltitude, upperAzimuth)
		vs.Lower[i] = SphericalToCartesian(radius, -pentagonAltitude, lowerAzimuth)
	}
	return vs, nil
}

// RaiseToGroundPlane translates vs upwards by the height of the upper pentagon
// of a dome of the given radius. For vertices created by GenerateVertices with the
// same radius the lower pentagon ends up exactly on z=0 and the dome
// rests on the ground plane.
func RaiseToGroundPlane(vs VertexSet, radius float64) VertexSet {
	offset := r3.Vec{Z: SphericalToCartesian(radius, pentagonAltitude, 0).Z}
	return vs.Translate(offset)
}

// Translate returns the vertex set displaced by v. Results are
// rounded to Precision decimal places.
func (vs VertexSet) Translate(v r3.Vec) VertexSet {
	move := func(p r3.Vec) r3.Vec {
		return d3.RoundElem(r3.Add(p, v), Precision)
	}
	out := VertexSet{Apex: move(vs.Apex)}
	for i := range vs.Upper {
		out.Upper[i] = move(vs.Upper[i])
		out.Lower[i] = move(vs.Lower[i])
	}
	return out
}

// All returns the apex, the upper pentagon and the lower pentagon, in that order.
func (vs VertexSet) All() []r3.Vec {
	all := make([]r3.Vec, 0, 1+2*pentagonSides)
	all = append(all, vs.Apex)
	all = append(all, vs.Upper[:]...)
	return append(all, vs.Lower[:]...)
}

// Bounds returns the bounding box of the vertices.
func (vs VertexSet) Bounds() r3.Box {
	return r3.Box(d3.BoxOf(vs.All()))
}

// Package geodome generates the geometry of a one-frequency geodesic dome:
// an icosahedron missing its bottom vertex, resting on the ground plane.
//
// The pipeline is made of pure functions, each taking the output of the
// previous stage:
//
//	vs, err := geodome.GenerateVertices(radius)
//	vs = geodome.RaiseToGroundPlane(vs, radius)
//	faces := geodome.PartitionIntoFaces(vs)
//	window, err := geodome.InsetFace(faces.Faces(geodome.UpperWall)[0], 0.8)
//
// New runs the first three stages and returns the result as a Dome.
package geodome

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dome is a generated dome. It is never modified after creation.
type Dome struct {
	Radius   float64
	Vertices VertexSet
	Faces    FaceGroup
}

// New generates a dome of the given circumradius with its
// lower pentagon on the z=0 plane.
func New(radius float64) (Dome, error) {
	vs, err := GenerateVertices(radius)
	if err != nil {
		return Dome{}, err
	}
	vs = RaiseToGroundPlane(vs, radius)
	return Dome{
		Radius:   radius,
		Vertices: vs,
		Faces:    PartitionIntoFaces(vs),
	}, nil
}

// Must is like New but panics on an invalid radius.
func Must(radius float64) Dome {
	d, err := New(radius)
	if err != nil {
		panic(err)
	}
	return d
}

// Center returns the center of the dome's circumscribed sphere.
func (d Dome) Center() r3.Vec {
	return r3.Vec{Z: d.Height() - d.Radius}
}

// Height returns the height of the apex above the ground plane.
func (d Dome) Height() float64 {
	return d.Vertices.Apex.Z
}

// Windows returns the window polygons obtained from insetting every face of
// the given roles by coverage. A role given more than once is glazed once.
// If roles is nil WindowRoles are used; an empty non-nil roles glazes nothing.
func (d Dome) Windows(coverage float64, roles ...Role) (map[Role][]Face, error) {
	if roles == nil {
		roles = WindowRoles
	}
	windows := make(map[Role][]Face, len(roles))
	for _, r := range roles {
		if r >= numRoles {
			return nil, fmt.Errorf("windows for unknown role %v", r)
		}
		if _, done := windows[r]; done {
			continue
		}
		faces := d.Faces.Faces(r)
		windows[r] = make([]Face, 0, len(faces))
		for i, f := range faces {
			w, err := InsetFace(f, coverage)
			if err != nil {
				return nil, fmt.Errorf("window on %v face %d: %w", r, i, err)
			}
			windows[r] = append(windows[r], w)
		}
	}
	return windows, nil
}

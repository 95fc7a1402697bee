package geodome

import (
	"fmt"
	"math"
	"strconv"

	"github.com/soypat/geodome/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Role identifies which part of the dome a face belongs to.
type Role uint8

const (
	Roof Role = iota
	UpperWall
	LowerWall
	Floor
	numRoles
)

// Roles lists every face role in the order faces are generated.
var Roles = [numRoles]Role{Roof, UpperWall, LowerWall, Floor}

// WindowRoles are the roles glazed when no roles are asked for explicitly.
var WindowRoles = []Role{UpperWall}

func (r Role) String() string {
	switch r {
	case Roof:
		return "roof"
	case UpperWall:
		return "upper_wall"
	case LowerWall:
		return "lower_wall"
	case Floor:
		return "floor"
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}

// SurfaceType returns the building surface type a face of this role is tagged with.
func (r Role) SurfaceType() string {
	switch r {
	case Roof:
		return "RoofCeiling"
	case UpperWall, LowerWall:
		return "Wall"
	case Floor:
		return "Floor"
	}
	return ""
}

// IsWall reports whether faces of this role are walls.
func (r Role) IsWall() bool { return r == UpperWall || r == LowerWall }

// ParseRole returns the Role whose String method returns s.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if r >= numRoles {
		return nil, fmt.Errorf("marshal unknown role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, ok := ParseRole(string(text))
	if !ok {
		return fmt.Errorf("unknown role %q", text)
	}
	*r = parsed
	return nil
}

// Face is a planar polygon. Its vertices run counter-clockwise
// when seen from outside the solid, so its normal points outward.
type Face []r3.Vec

// FaceGroup holds the faces of a dome sorted by Role.
type FaceGroup [numRoles][]Face

// Faces returns the faces of the given role.
func (g FaceGroup) Faces(r Role) []Face {
	if r >= numRoles {
		return nil
	}
	return g[r]
}

// Len returns the total number of faces in the group.
func (g FaceGroup) Len() (n int) {
	for _, faces := range g {
		n += len(faces)
	}
	return n
}

// All returns every face in Roles order.
func (g FaceGroup) All() []Face {
	all := make([]Face, 0, g.Len())
	for _, faces := range g {
		all = append(all, faces...)
	}
	return all
}

// Each calls fn for every face in Roles order with the face's index within its role.
func (g FaceGroup) Each(fn func(r Role, i int, f Face)) {
	for _, r := range Roles {
		for i, f := range g[r] {
			fn(r, i, f)
		}
	}
}

// PartitionIntoFaces groups the vertices of a dome into 16 faces:
// 5 roof triangles around the apex, 5 upper wall and 5 lower wall triangles
// in the band between the pentagons and one pentagonal floor.
//
// Every face is wound counter-clockwise seen from outside. The
// neighbour index direction of each role sets its winding.
func PartitionIntoFaces(vs VertexSet) FaceGroup {
	const n = pentagonSides
	var g FaceGroup
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		prev := (i - 1 + n) % n
		g[Roof] = append(g[Roof], Face{vs.Apex, vs.Upper[next], vs.Upper[i]})
		g[UpperWall] = append(g[UpperWall], Face{vs.Lower[i], vs.Upper[i], vs.Upper[next]})
		g[LowerWall] = append(g[LowerWall], Face{vs.Upper[i], vs.Lower[i], vs.Lower[prev]})
	}
	floor := make(Face, n)
	copy(floor, vs.Lower[:])
	g[Floor] = []Face{floor}
	return g
}

// Centroid returns the arithmetic mean of the face vertices.
// It panics if the face has no vertices.
func Centroid(f Face) r3.Vec {
	return d3.Set(f).Mean()
}

// Normal returns the unit normal of a face using Newell's method.
// The normal points to the side from which the face winds counter-clockwise.
// A degenerate face returns the zero vector.
func Normal(f Face) r3.Vec {
	n := newell(f)
	norm := r3.Norm(n)
	if norm < tolerance*tolerance {
		return r3.Vec{}
	}
	return r3.Scale(1/norm, n)
}

// Area returns the area of a planar face.
func Area(f Face) float64 {
	return r3.Norm(newell(f)) / 2
}

// newell returns the polygon normal scaled by twice its area.
func newell(f Face) (n r3.Vec) {
	for i, v := range f {
		w := f[(i+1)%len(f)]
		n.X += (v.Y - w.Y) * (v.Z + w.Z)
		n.Y += (v.Z - w.Z) * (v.X + w.X)
		n.Z += (v.X - w.X) * (v.Y + w.Y)
	}
	return n
}

// Perimeter returns the length of the closed polyline through the face vertices.
func Perimeter(f Face) (p float64) {
	for i, v := range f {
		p += r3.Norm(r3.Sub(f[(i+1)%len(f)], v))
	}
	return p
}

// Planar reports whether every vertex of f lies within tol of the
// plane through its centroid with its Newell normal.
func Planar(f Face, tol float64) bool {
	if len(f) < 3 {
		return false
	}
	n := Normal(f)
	c := Centroid(f)
	for _, v := range f {
		if math.Abs(r3.Dot(n, r3.Sub(v, c))) > tol {
			return false
		}
	}
	return true
}

// Package mesh converts polygon soups into indexed meshes with
// shared vertices and checks their topology.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/geodome"
	"github.com/soypat/geodome/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed polygon mesh. Faces reference Vertices by index
// and keep the winding of the polygons they were built from.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][]int
	// Roles holds the role of each face when the mesh was built
	// from a FaceGroup. It is nil otherwise.
	Roles []geodome.Role
	bb    d3.Box
}

// Weld builds a Mesh from faces, merging vertices closer than tol.
// If tol is 0 it is inferred from the shortest edge in faces.
func Weld(faces []geodome.Face, tol float64) (*Mesh, error) {
	if len(faces) == 0 {
		return nil, errors.New("no faces to weld")
	}
	if tol < 0 || math.IsNaN(tol) {
		return nil, fmt.Errorf("negative vertex tolerance %g", tol)
	}
	bb := d3.EmptyBox()
	minDist2 := math.MaxFloat64
	maxDist2 := -math.MaxFloat64
	for i, f := range faces {
		if len(f) < 3 {
			return nil, fmt.Errorf("face %d: %w", i, geodome.ErrDegenerateFace)
		}
		for j, v := range f {
			bb = bb.Include(v)
			side2 := r3.Norm2(r3.Sub(f[(j+1)%len(f)], v))
			minDist2 = math.Min(minDist2, side2)
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	suggested := math.Sqrt(minDist2) / 256
	if tol > math.Sqrt(maxDist2)/2 {
		return nil, fmt.Errorf("vertex tolerance is too large to generate appropiate mesh, suggested tolerance: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}
	if tol <= 0 {
		return nil, errors.New("mesh has zero length edges")
	}
	m := &Mesh{
		Faces: make([][]int, len(faces)),
		bb:    bb,
	}
	var tree kdtree.Tree
	tol2 := tol * tol
	for i, f := range faces {
		idx := make([]int, len(f))
		for j, v := range f {
			near, dist2 := tree.Nearest(&vertex{V: v})
			if near != nil && dist2 <= tol2 {
				idx[j] = near.(*vertex).index
				continue
			}
			vi := &vertex{V: v, index: len(m.Vertices)}
			tree.Insert(vi, false)
			m.Vertices = append(m.Vertices, v)
			idx[j] = vi.index
		}
		m.Faces[i] = idx
	}
	return m, nil
}

// WeldGroup builds a Mesh from every face of g and records each face's role.
func WeldGroup(g *geodome.FaceGroup, tol float64) (*Mesh, error) {
	var roles []geodome.Role
	g.Each(func(r geodome.Role, _ int, _ geodome.Face) {
		roles = append(roles, r)
	})
	m, err := Weld(g.All(), tol)
	if err != nil {
		return nil, err
	}
	m.Roles = roles
	return m, nil
}

// Bounds returns the bounding box of the mesh.
func (m *Mesh) Bounds() r3.Box { return r3.Box(m.bb) }

// Face returns the polygon of the ith face.
func (m *Mesh) Face(i int) geodome.Face {
	f := make(geodome.Face, len(m.Faces[i]))
	for j, vi := range m.Faces[i] {
		f[j] = m.Vertices[vi]
	}
	return f
}

// Edge is a directed edge between two vertex indices.
type Edge [2]int

// Reverse returns the edge running the opposite way.
func (e Edge) Reverse() Edge { return Edge{e[1], e[0]} }

// DirectedEdges returns how many times each directed edge appears in the mesh faces.
func (m *Mesh) DirectedEdges() map[Edge]int {
	edges := make(map[Edge]int)
	for _, f := range m.Faces {
		for j := range f {
			edges[Edge{f[j], f[(j+1)%len(f)]}]++
		}
	}
	return edges
}

// EdgeCount returns the number of undirected edges in the mesh.
func (m *Mesh) EdgeCount() int {
	undirected := make(map[Edge]struct{})
	for e := range m.DirectedEdges() {
		if e[0] > e[1] {
			e = e.Reverse()
		}
		undirected[e] = struct{}{}
	}
	return len(undirected)
}

// EulerCharacteristic returns V - E + F. It is 2 for a closed mesh
// of genus 0 such as a dome with its floor.
func (m *Mesh) EulerCharacteristic() int {
	return len(m.Vertices) - m.EdgeCount() + len(m.Faces)
}

var (
	// ErrOpenEdge is returned when an edge belongs to a single face.
	ErrOpenEdge = errors.New("mesh is not closed")

	// ErrInconsistentWinding is returned when neighbouring faces disagree on orientation.
	ErrInconsistentWinding = errors.New("faces are not consistently wound")
)

// CheckClosed returns an error if two faces traverse a shared edge in the same
// direction or if an edge is used by a single face. A mesh passing the
// check has all its normals pointing to the same side of a closed surface.
func (m *Mesh) CheckClosed() error {
	edges := m.DirectedEdges()
	for e, count := range edges {
		if count > 1 {
			return fmt.Errorf("edge %d->%d traversed %d times: %w", e[0], e[1], count, ErrInconsistentWinding)
		}
	}
	for e := range edges {
		if edges[e.Reverse()] == 0 {
			return fmt.Errorf("edge %d->%d: %w", e[0], e[1], ErrOpenEdge)
		}
	}
	return nil
}

// vertex is a welded mesh vertex stored in a kd-tree.
type vertex struct {
	V     r3.Vec
	index int
}

func (v *vertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*vertex)
	switch d {
	case 0:
		return v.V.X - q.V.X
	case 1:
		return v.V.Y - q.V.Y
	case 2:
		return v.V.Z - q.V.Z
	}
	panic("unreachable")
}

func (v *vertex) Dims() int { return 3 }

func (v *vertex) Distance(c kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(v.V, c.(*vertex).V))
}

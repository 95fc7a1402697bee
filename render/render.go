package render

import (
	"io"

	"github.com/soypat/geodome"
	"github.com/soypat/geodome/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer reads triangles into t and returns the number of triangles read.
// It returns io.EOF once every triangle has been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Its vertices run counter-clockwise
// seen from the side its normal points to.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two of the triangle's vertices are within tol.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

// Triangulate splits a convex face into a fan of triangles around its first
// vertex. The triangles keep the winding of the face.
func Triangulate(f geodome.Face) []Triangle3 {
	if len(f) < 3 {
		return nil
	}
	tris := make([]Triangle3, 0, len(f)-2)
	for i := 1; i < len(f)-1; i++ {
		tris = append(tris, Triangle3{f[0], f[i], f[i+1]})
	}
	return tris
}

// FaceRenderer is a Renderer over the triangulation of a set of faces.
type FaceRenderer struct {
	tris []Triangle3
}

// NewFaceRenderer returns a Renderer reading the fan triangulation of faces.
func NewFaceRenderer(faces []geodome.Face) *FaceRenderer {
	var r FaceRenderer
	for _, f := range faces {
		r.tris = append(r.tris, Triangulate(f)...)
	}
	return &r
}

// NewDomeRenderer returns a Renderer reading every face of a dome.
func NewDomeRenderer(d geodome.Dome) *FaceRenderer {
	return NewFaceRenderer(d.Faces.All())
}

// ReadTriangles implements Renderer.
func (r *FaceRenderer) ReadTriangles(t []Triangle3) (int, error) {
	if len(r.tris) == 0 {
		return 0, io.EOF
	}
	n := copy(t, r.tris)
	r.tris = r.tris[n:]
	return n, nil
}

// Len returns the number of triangles yet to be read.
func (r *FaceRenderer) Len() int { return len(r.tris) }

// RenderAll reads r until io.EOF and returns every triangle read.
// Like io.ReadAll, reaching io.EOF is not an error.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var result []Triangle3
	if l, ok := r.(interface{ Len() int }); ok {
		result = make([]Triangle3, 0, l.Len())
	}
	buf := make([]Triangle3, trianglesInBuffer)
	for {
		n, err := r.ReadTriangles(buf)
		result = append(result, buf[:n]...)
		if err == io.EOF {
			return result, nil
		} else if err != nil {
			return result, err
		}
	}
}

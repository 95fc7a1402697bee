package geodome

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// InsetFace returns a copy of f scaled about its centroid by coverage,
// which is used to cut a window into the face. Each vertex v moves to
//  v + (centroid - v)*(1 - coverage)
// so a coverage of 1 returns the face unchanged and coverages approaching 0
// collapse the face onto its centroid. Vertex order is preserved.
//
// f is assumed planar; this is not checked.
func InsetFace(f Face, coverage float64) (Face, error) {
	if len(f) < 3 {
		return nil, fmt.Errorf("inset face of %d vertices: %w", len(f), ErrDegenerateFace)
	}
	if !(coverage > 0 && coverage <= 1) {
		return nil, fmt.Errorf("inset face with coverage %g: %w", coverage, ErrInvalidCoverage)
	}
	shrink := 1 - coverage
	c := Centroid(f)
	inset := make(Face, len(f))
	for i, v := range f {
		inset[i] = r3.Add(v, r3.Scale(shrink, r3.Sub(c, v)))
	}
	return inset, nil
}

// MustInsetFace is like InsetFace but panics on invalid input.
func MustInsetFace(f Face, coverage float64) Face {
	inset, err := InsetFace(f, coverage)
	if err != nil {
		panic(err)
	}
	return inset
}

// GlazedArea returns the window area obtained from insetting a face
// of area faceArea by coverage. The inset is a homothety so the area scales
// with the square of the ratio.
func GlazedArea(faceArea, coverage float64) float64 {
	return faceArea * math.Pow(coverage, 2)
}

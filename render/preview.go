package render

import (
	"errors"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a PNG preview.
type View struct {
	// Camera position. The scene is fitted in a bi-unit cube
	// centered at the origin before being drawn.
	Eye r3.Vec
	// Point looked at.
	LookAt r3.Vec
	// Up direction.
	Up        r3.Vec
	Near, Far float64
	// Output size in pixels.
	Width, Height int
}

// DefaultView looks at the dome from above its south-west flank.
func DefaultView() View {
	return View{
		Eye:    r3.Vec{X: -2, Y: -3, Z: 2},
		Up:     r3.Vec{Z: 1},
		Near:   1,
		Far:    10,
		Width:  1024,
		Height: 768,
	}
}

// Scene holds the triangles drawn in a preview. Glazing is drawn
// over Solid in a different color.
type Scene struct {
	Solid   []Triangle3
	Glazing []Triangle3
}

const (
	supersample   = 2
	fovy          = 30
	solidColor    = "#468966"
	glazingColor  = "#8EC8E8"
	backgroundHex = "#FFF8E3"
	// Glazing is pushed outward along its normal to avoid z-fighting with the solid.
	glazingOffset = 1e-3
)

// CreatePNG renders scene with a Phong shader and saves it as a PNG image at path.
func CreatePNG(path string, scene Scene, view View) error {
	if len(scene.Solid) == 0 {
		return errors.New("empty scene")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return errors.New("preview size must be positive")
	}
	if view.Near <= 0 || view.Far <= view.Near {
		return errors.New("preview clipping planes must satisfy 0 < near < far")
	}
	solid := fauxglMesh(scene.Solid, 0)
	// Fit the solid in a bi-unit cube and move the glazing with it.
	fit := solid.BiUnitCube()
	var glazing *fauxgl.Mesh
	if len(scene.Glazing) > 0 {
		glazing = fauxglMesh(scene.Glazing, glazingOffset)
		glazing.Transform(fit)
	}

	var (
		width  = view.Width * supersample
		height = view.Height * supersample
		eye    = fauxglVec(view.Eye)
		center = fauxglVec(view.LookAt)
		up     = fauxglVec(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	context := fauxgl.NewContext(width, height)
	context.ClearColorBufferWith(fauxgl.HexColor(backgroundHex))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)

	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(solidColor)
	context.Shader = shader
	context.DrawMesh(solid)
	if glazing != nil {
		glass := fauxgl.NewPhongShader(matrix, light, eye)
		glass.ObjectColor = fauxgl.HexColor(glazingColor)
		context.Shader = glass
		context.DrawMesh(glazing)
	}
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(view.Width), uint(view.Height), image, resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}

func fauxglMesh(model []Triangle3, offset float64) *fauxgl.Mesh {
	tris := make([]*fauxgl.Triangle, 0, len(model))
	for _, t := range model {
		d := r3.Scale(offset, t.Normal())
		tris = append(tris, fauxgl.NewTriangleForPoints(
			fauxglVec(r3.Add(t[0], d)),
			fauxglVec(r3.Add(t[1], d)),
			fauxglVec(r3.Add(t[2], d)),
		))
	}
	return fauxgl.NewTriangleMesh(tris)
}

func fauxglVec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}

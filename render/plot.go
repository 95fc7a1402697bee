package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/soypat/geodome"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Projection is an orthographic view of a dome.
type Projection uint8

const (
	// Plan looks down the Z axis.
	Plan Projection = iota
	// Elevation looks north along the Y axis.
	Elevation
)

func (p Projection) String() string {
	switch p {
	case Plan:
		return "plan"
	case Elevation:
		return "elevation"
	}
	return "Projection(" + fmt.Sprint(uint8(p)) + ")"
}

// toViewer returns the direction pointing from the dome to the viewer.
func (p Projection) toViewer() r3.Vec {
	if p == Elevation {
		return r3.Vec{Y: -1}
	}
	return r3.Vec{Z: 1}
}

func (p Projection) project(v r3.Vec) plotter.XY {
	if p == Elevation {
		return plotter.XY{X: v.X, Y: v.Z}
	}
	return plotter.XY{X: v.X, Y: v.Y}
}

var roleColors = [...]color.Color{
	geodome.Roof:      color.RGBA{R: 0xb5, G: 0x4d, B: 0x3a, A: 0xff},
	geodome.UpperWall: color.RGBA{R: 0x46, G: 0x89, B: 0x66, A: 0xff},
	geodome.LowerWall: color.RGBA{R: 0x2f, G: 0x5d, B: 0x45, A: 0xff},
	geodome.Floor:     color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
}

var windowColor = color.RGBA{R: 0x8e, G: 0xc8, B: 0xe8, A: 0xff}

// CreatePlot draws the faces of d facing the viewer of proj, with the windows
// over their host faces, and saves the plot at path. The image format is
// chosen from the extension of path.
func CreatePlot(path string, d geodome.Dome, windows map[geodome.Role][]geodome.Face, proj Projection) error {
	if d.Faces.Len() == 0 {
		return errors.New("dome has no faces")
	}
	type item struct {
		role   geodome.Role
		face   geodome.Face
		window geodome.Face
		depth  float64
	}
	view := proj.toViewer()
	var items []item
	d.Faces.Each(func(r geodome.Role, i int, f geodome.Face) {
		if r3.Dot(geodome.Normal(f), view) <= 1e-9 {
			return // Back face.
		}
		it := item{role: r, face: f, depth: r3.Dot(geodome.Centroid(f), view)}
		if w := windows[r]; i < len(w) {
			it.window = w[i]
		}
		items = append(items, it)
	})
	// Painter's algorithm: farthest first.
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth < items[j].depth })

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Dome %s, radius %g", proj, d.Radius)
	p.X.Label.Text = "x"
	if proj == Elevation {
		p.Y.Label.Text = "z"
	} else {
		p.Y.Label.Text = "y"
	}
	p.Add(plotter.NewGrid())

	bb := newPlotBounds()
	legend := make(map[string]plot.Thumbnailer)
	for _, it := range items {
		poly, err := projectedPolygon(it.face, proj, roleColors[it.role], &bb)
		if err != nil {
			return err
		}
		p.Add(poly)
		legend[it.role.String()] = poly
		if it.window == nil {
			continue
		}
		win, err := projectedPolygon(it.window, proj, windowColor, &bb)
		if err != nil {
			return err
		}
		p.Add(win)
		legend["window"] = win
	}
	for _, r := range geodome.Roles {
		if th, ok := legend[r.String()]; ok {
			p.Legend.Add(r.String(), th)
		}
	}
	if th, ok := legend["window"]; ok {
		p.Legend.Add("window", th)
	}
	p.Legend.Top = true

	// Equal axis scales on a square canvas.
	half := math.Max(bb.max.X-bb.min.X, bb.max.Y-bb.min.Y)/2 + d.Radius/10
	cx, cy := (bb.min.X+bb.max.X)/2, (bb.min.Y+bb.max.Y)/2
	p.X.Min, p.X.Max = cx-half, cx+half
	p.Y.Min, p.Y.Max = cy-half, cy+half
	const side = 15 * vg.Centimeter
	return p.Save(side, side, path)
}

type plotBounds struct{ min, max plotter.XY }

func newPlotBounds() plotBounds {
	return plotBounds{
		min: plotter.XY{X: math.Inf(1), Y: math.Inf(1)},
		max: plotter.XY{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

func (b *plotBounds) include(p plotter.XY) {
	b.min.X = math.Min(b.min.X, p.X)
	b.min.Y = math.Min(b.min.Y, p.Y)
	b.max.X = math.Max(b.max.X, p.X)
	b.max.Y = math.Max(b.max.Y, p.Y)
}

func projectedPolygon(f geodome.Face, proj Projection, fill color.Color, bb *plotBounds) (*plotter.Polygon, error) {
	xys := make(plotter.XYs, len(f))
	for i, v := range f {
		xys[i] = proj.project(v)
		bb.include(xys[i])
	}
	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return nil, err
	}
	poly.Color = fill
	poly.LineStyle.Width = vg.Points(0.5)
	poly.LineStyle.Color = color.Black
	return poly, nil
}

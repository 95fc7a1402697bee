package render

import (
	"errors"
	"strings"

	"github.com/soypat/geodome"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"
)

var roleLayerColors = [...]color.ColorNumber{
	geodome.Roof:      color.Red,
	geodome.UpperWall: color.Green,
	geodome.LowerWall: color.Cyan,
	geodome.Floor:     color.Yellow,
}

const (
	windowLayer    = "WINDOW"
	footprintLayer = "FOOTPRINT"
)

// CreateDXF writes a wireframe of d to a DXF drawing at path. Face edges are drawn
// as 3D lines on one layer per role, windows on the WINDOW layer and the floor
// outline as a closed polyline on the FOOTPRINT layer.
func CreateDXF(path string, d geodome.Dome, windows map[geodome.Role][]geodome.Face) error {
	if d.Faces.Len() == 0 {
		return errors.New("dome has no faces")
	}
	dw := dxf.NewDrawing()
	dw.Header().LtScale = 1.0
	for _, r := range geodome.Roles {
		if err := addLayer(dw, layerName(r), roleLayerColors[r]); err != nil {
			return err
		}
		for _, f := range d.Faces.Faces(r) {
			if err := drawFaceEdges(dw, f); err != nil {
				return err
			}
		}
	}
	if len(windows) > 0 {
		if err := addLayer(dw, windowLayer, color.Blue); err != nil {
			return err
		}
		for _, r := range geodome.Roles {
			for _, w := range windows[r] {
				if err := drawFaceEdges(dw, w); err != nil {
					return err
				}
			}
		}
	}
	if err := addLayer(dw, footprintLayer, color.Magenta); err != nil {
		return err
	}
	for _, f := range d.Faces.Faces(geodome.Floor) {
		// Repeat the first vertex to close the outline.
		lwp := entity.NewLwPolyline(len(f) + 1)
		for j := range lwp.Vertices {
			v := f[j%len(f)]
			lwp.Vertices[j] = []float64{v.X, v.Y}
		}
		dw.AddEntity(lwp)
	}
	return dw.SaveAs(path)
}

func layerName(r geodome.Role) string {
	return strings.ToUpper(r.String())
}

func addLayer(dw *drawing.Drawing, name string, cl color.ColorNumber) error {
	if _, err := dw.AddLayer(name, cl, dxf.DefaultLineType, true); err != nil {
		return err
	}
	return dw.ChangeLayer(name)
}

func drawFaceEdges(dw *drawing.Drawing, f geodome.Face) error {
	for i, a := range f {
		b := f[(i+1)%len(f)]
		if _, err := dw.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z); err != nil {
			return err
		}
	}
	return nil
}

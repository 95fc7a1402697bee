package render_test

import (
	"errors"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/soypat/geodome"
	"github.com/soypat/geodome/internal/d3"
	"github.com/soypat/geodome/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

// Fan triangulation of 10 triangles, 5 triangles and one pentagon.
const domeTriangles = 5 + 5 + 5 + 3

func TestTriangulate(t *testing.T) {
	d := geodome.Must(4)
	got := 0
	d.Faces.Each(func(r geodome.Role, i int, f geodome.Face) {
		tris := render.Triangulate(f)
		got += len(tris)
		n := geodome.Normal(f)
		for _, tri := range tris {
			if !d3.EqualWithin(tri.Normal(), n, 1e-9) {
				t.Errorf("%s face %d: triangle normal %v differs from face normal %v", r, i, tri.Normal(), n)
			}
		}
	})
	if got != domeTriangles {
		t.Errorf("got %d triangles, want %d", got, domeTriangles)
	}
	if render.Triangulate(geodome.Face{{}, {X: 1}}) != nil {
		t.Error("expected no triangles from a two point face")
	}
}

func TestRenderAll(t *testing.T) {
	r := render.NewDomeRenderer(geodome.Must(2))
	if r.Len() != domeTriangles {
		t.Fatalf("renderer holds %d triangles, want %d", r.Len(), domeTriangles)
	}
	tris, err := render.RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) != domeTriangles {
		t.Errorf("got %d triangles, want %d", len(tris), domeTriangles)
	}
	if _, err = r.ReadTriangles(make([]render.Triangle3, 1)); err != io.EOF {
		t.Errorf("expected io.EOF after draining renderer, got %v", err)
	}

	// Small reads return the same triangles in the same order.
	r = render.NewDomeRenderer(geodome.Must(2))
	buf := make([]render.Triangle3, 5)
	var got []render.Triangle3
	for {
		n, err := r.ReadTriangles(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != len(tris) {
		t.Fatalf("chunked reads got %d triangles, want %d", len(got), len(tris))
	}
	for i := range got {
		if got[i] != tris[i] {
			t.Errorf("triangle %d differs between chunked and full reads", i)
		}
	}

	_, err = render.RenderAll(failingRenderer{})
	if err != errRenderFailed {
		t.Errorf("expected renderer error to propagate, got %v", err)
	}
}

var errRenderFailed = errors.New("render failed")

type failingRenderer struct{}

func (failingRenderer) ReadTriangles(t []render.Triangle3) (int, error) {
	return 0, errRenderFailed
}

func TestCreateSTL(t *testing.T) {
	d := geodome.Must(4)
	path := filepath.Join(t.TempDir(), "dome.stl")
	if err := render.CreateSTL(path, render.NewDomeRenderer(d)); err != nil {
		t.Fatal(err)
	}
	got, err := render.LoadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := render.RenderAll(render.NewDomeRenderer(d))
	if len(got) != len(want) {
		t.Fatalf("read %d triangles, want %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if !d3.EqualWithin(got[i][j], want[i][j], 1e-5) {
				t.Errorf("triangle %d vertex %d: got %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
	if err := render.CreateSTL(path, render.NewFaceRenderer(nil)); err == nil {
		t.Error("expected error writing empty STL")
	}
}

func domeScene(t testing.TB) render.Scene {
	d := geodome.Must(4)
	windows, err := d.Windows(0.8)
	if err != nil {
		t.Fatal(err)
	}
	solid, _ := render.RenderAll(render.NewDomeRenderer(d))
	glazing, _ := render.RenderAll(render.NewFaceRenderer(windows[geodome.UpperWall]))
	return render.Scene{Solid: solid, Glazing: glazing}
}

func TestCreatePNG(t *testing.T) {
	const imgDelta = 0.05
	view := render.DefaultView()
	view.Width, view.Height = 160, 120
	scene := domeScene(t)
	dir := t.TempDir()
	paths := [2]string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")}
	for _, path := range paths {
		if err := render.CreatePNG(path, scene, view); err != nil {
			t.Fatal(err)
		}
	}
	fp, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	cfg, err := png.DecodeConfig(fp)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != view.Width || cfg.Height != view.Height {
		t.Errorf("got %dx%d image, want %dx%d", cfg.Width, cfg.Height, view.Width, view.Height)
	}
	b1, _ := os.ReadFile(paths[0])
	b2, _ := os.ReadFile(paths[1])
	equal, err := cmpimg.EqualApprox("png", b1, b2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("previews of the same scene differ")
	}
}

func TestCreatePNGErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := render.CreatePNG(path, render.Scene{}, render.DefaultView()); err == nil {
		t.Error("expected error for empty scene")
	}
	view := render.DefaultView()
	view.Near, view.Far = 2, 1
	if err := render.CreatePNG(path, domeScene(t), view); err == nil {
		t.Error("expected error for inverted clipping planes")
	}
	view = render.DefaultView()
	view.Width = 0
	if err := render.CreatePNG(path, domeScene(t), view); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestCreatePlot(t *testing.T) {
	d := geodome.Must(4)
	windows, err := d.Windows(0.8)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, proj := range []render.Projection{render.Plan, render.Elevation} {
		for _, ext := range []string{".png", ".svg"} {
			path := filepath.Join(dir, proj.String()+ext)
			if err := render.CreatePlot(path, d, windows, proj); err != nil {
				t.Fatalf("%s%s: %v", proj, ext, err)
			}
			if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
				t.Errorf("%s%s: empty or missing plot: %v", proj, ext, err)
			}
		}
	}
	if err := render.CreatePlot(filepath.Join(dir, "empty.png"), geodome.Dome{}, nil, render.Plan); err == nil {
		t.Error("expected error plotting empty dome")
	}
}

func TestCreateDXF(t *testing.T) {
	d := geodome.Must(4)
	windows, err := d.Windows(0.8)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "dome.dxf")
	if err = render.CreateDXF(path, d, windows); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, layer := range []string{"ROOF", "UPPER_WALL", "LOWER_WALL", "FLOOR", "WINDOW", "FOOTPRINT"} {
		if !strings.Contains(string(b), layer) {
			t.Errorf("layer %s missing from DXF output", layer)
		}
	}
}

func TestFootprint(t *testing.T) {
	d := geodome.Must(4)
	poly, err := render.Footprint(d)
	if err != nil {
		t.Fatal(err)
	}
	ring := poly[0]
	if len(ring) != 6 || !ring.Closed() {
		t.Fatalf("expected closed ring of 6 points, got %v", ring)
	}
	if ring.Orientation() != orb.CCW {
		t.Error("footprint exterior ring should be counter-clockwise")
	}
	area, err := render.FootprintArea(d)
	if err != nil {
		t.Fatal(err)
	}
	want := geodome.Area(d.Faces.Faces(geodome.Floor)[0])
	if math.Abs(area-want) > 1e-9 {
		t.Errorf("footprint area %g, want %g", area, want)
	}
	if _, err = render.Footprint(geodome.Dome{}); err == nil {
		t.Error("expected error for dome without floor")
	}
}

func TestCreateGeoJSON(t *testing.T) {
	const coverage = 0.8
	d := geodome.Must(4)
	windows, err := d.Windows(coverage)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "dome.geojson")
	if err = render.CreateGeoJSON(path, d, windows, coverage); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		t.Fatal(err)
	}
	// Footprint, apex and five windows.
	if len(fc.Features) != 7 {
		t.Fatalf("got %d features, want 7", len(fc.Features))
	}
	apex, ok := fc.Features[1].Geometry.(orb.Point)
	if !ok || r3.Norm(r3.Vec{X: apex.X(), Y: apex.Y()}) > 1e-9 {
		t.Errorf("apex should project to the origin, got %v", fc.Features[1].Geometry)
	}
	for _, f := range fc.Features[2:] {
		if f.Properties.MustString("host") != geodome.UpperWall.String() {
			t.Errorf("unexpected window host %v", f.Properties["host"])
		}
	}
}

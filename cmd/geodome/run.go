package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/soypat/geodome"
	"github.com/soypat/geodome/building"
	"github.com/soypat/geodome/config"
	"github.com/soypat/geodome/mesh"
	"github.com/soypat/geodome/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// job holds the state shared by the artifact writers of a run.
type job struct {
	cfg     config.Config
	log     *slog.Logger
	dome    geodome.Dome
	roles   []geodome.Role
	windows map[geodome.Role][]geodome.Face
}

type artifact struct {
	format config.Format
	write  func(j *job) ([]string, error)
}

var artifacts = []artifact{
	{config.STL, (*job).writeSTL},
	{config.PNG, (*job).writePNG},
	{config.Plot, (*job).writePlots},
	{config.DXF, (*job).writeDXF},
	{config.GeoJSON, (*job).writeGeoJSON},
	{config.OBJ, (*job).writeOBJ},
	{config.Model, (*job).writeModel},
}

// run generates the dome described by cfg and writes the configured artifacts
// in order. It returns the written paths and stops at the first error or when
// ctx is done.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := geodome.New(cfg.Radius)
	if err != nil {
		return nil, err
	}
	log.Info("dome generated", "radius", d.Radius, "height", d.Height(), "faces", d.Faces.Len())
	for i, v := range d.Vertices.All() {
		log.Debug("vertex", "index", i, "x", v.X, "y", v.Y, "z", v.Z)
	}
	// An explicitly empty window_roles glazes nothing.
	roles := append([]geodome.Role{}, cfg.WindowRoles...)
	windows, err := d.Windows(cfg.WindowRatio, roles...)
	if err != nil {
		return nil, err
	}
	nwin := 0
	for _, w := range windows {
		nwin += len(w)
	}
	log.Info("windows inset", "count", nwin, "ratio", cfg.WindowRatio, "glazed_area_ratio", geodome.GlazedArea(1, cfg.WindowRatio))

	if err = os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	j := &job{cfg: cfg, log: log, dome: d, roles: roles, windows: windows}
	var written []string
	for _, a := range artifacts {
		if !cfg.Has(a.format) {
			continue
		}
		if err = ctx.Err(); err != nil {
			return written, err
		}
		paths, err := a.write(j)
		if err != nil {
			return written, fmt.Errorf("writing %s: %w", a.format, err)
		}
		for _, p := range paths {
			log.Info("wrote artifact", "format", a.format, "path", p)
		}
		written = append(written, paths...)
	}
	return written, nil
}

func (j *job) path(suffix string) string {
	return filepath.Join(j.cfg.OutputDir, j.cfg.Name+suffix)
}

func (j *job) glazing() []geodome.Face {
	var faces []geodome.Face
	for _, r := range geodome.Roles {
		faces = append(faces, j.windows[r]...)
	}
	return faces
}

func (j *job) writeSTL() ([]string, error) {
	path := j.path(".stl")
	return []string{path}, render.CreateSTL(path, render.NewDomeRenderer(j.dome))
}

func (j *job) writePNG() ([]string, error) {
	solid, err := render.RenderAll(render.NewDomeRenderer(j.dome))
	if err != nil {
		return nil, err
	}
	glazing, err := render.RenderAll(render.NewFaceRenderer(j.glazing()))
	if err != nil {
		return nil, err
	}
	v := j.cfg.View
	view := render.View{
		Eye:    r3.Vec{X: v.Eye[0], Y: v.Eye[1], Z: v.Eye[2]},
		Up:     r3.Vec{Z: 1},
		Near:   v.Near,
		Far:    v.Far,
		Width:  v.Width,
		Height: v.Height,
	}
	path := j.path(".png")
	return []string{path}, render.CreatePNG(path, render.Scene{Solid: solid, Glazing: glazing}, view)
}

func (j *job) writePlots() ([]string, error) {
	var paths []string
	for _, proj := range []render.Projection{render.Plan, render.Elevation} {
		path := j.path("_" + proj.String() + ".png")
		if err := render.CreatePlot(path, j.dome, j.windows, proj); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (j *job) writeDXF() ([]string, error) {
	path := j.path(".dxf")
	return []string{path}, render.CreateDXF(path, j.dome, j.windows)
}

func (j *job) writeGeoJSON() ([]string, error) {
	area, err := render.FootprintArea(j.dome)
	if err != nil {
		return nil, err
	}
	j.log.Debug("footprint", "area", area)
	path := j.path(".geojson")
	return []string{path}, render.CreateGeoJSON(path, j.dome, j.windows, j.cfg.WindowRatio)
}

func (j *job) writeOBJ() ([]string, error) {
	m, err := mesh.WeldGroup(&j.dome.Faces, 0)
	if err != nil {
		return nil, err
	}
	if err = m.CheckClosed(); err != nil {
		return nil, err
	}
	j.log.Debug("mesh welded", "vertices", len(m.Vertices), "edges", m.EdgeCount(), "euler", m.EulerCharacteristic())
	path := j.path(".obj")
	return []string{path}, mesh.CreateOBJ(path, m)
}

func (j *job) writeModel() ([]string, error) {
	m := building.New(j.cfg.Name)
	if err := m.MakeBuilding(j.dome, j.cfg.WindowRatio, j.roles...); err != nil {
		return nil, err
	}
	if err := m.AddThermostats(j.cfg.HeatingSetpoint, j.cfg.CoolingSetpoint); err != nil {
		return nil, err
	}
	if j.cfg.HVAC != building.NoHVAC {
		if err := m.AddHVAC(j.cfg.HVAC); err != nil {
			return nil, err
		}
	}
	j.log.Info("building model", "surfaces", len(m.Surfaces), "windows", len(m.SubSurfaces),
		"zones", len(m.ThermalZones), "hvac", m.HVAC, "wwr", m.WindowToWallRatio())
	path, err := m.Save(j.cfg.OutputDir, j.cfg.ModelFile())
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

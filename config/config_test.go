package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/geodome"
	"github.com/soypat/geodome/building"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4.0, cfg.Radius)
	assert.Equal(t, 0.8, cfg.WindowRatio)
	assert.Equal(t, "runs", cfg.OutputDir)
	assert.Equal(t, []geodome.Role{geodome.UpperWall}, cfg.WindowRoles)
	assert.Equal(t, "dome.json", cfg.ModelFile())
	assert.True(t, cfg.Has(STL))
	assert.False(t, cfg.Has(DXF))
	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)

	// Defaults do not share state.
	cfg.WindowRoles[0] = geodome.Roof
	assert.Equal(t, geodome.UpperWall, Default().WindowRoles[0])
}

func TestDecode(t *testing.T) {
	const doc = `
radius = 6.5
window_ratio = 0.5
window_roles = ["upper_wall", "lower_wall"]
formats = ["stl", "dxf", "geojson"]
model_format = "sqlite"
hvac = "ptac"
log_level = "debug"

[view]
width = 320
height = 240
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 6.5, cfg.Radius)
	assert.Equal(t, 0.5, cfg.WindowRatio)
	assert.Equal(t, []geodome.Role{geodome.UpperWall, geodome.LowerWall}, cfg.WindowRoles)
	assert.Equal(t, []Format{STL, DXF, GeoJSON}, cfg.Formats)
	assert.Equal(t, "dome.db", cfg.ModelFile())
	assert.Equal(t, building.PackagedTerminalAirConditioner, cfg.HVAC)
	assert.Equal(t, 320, cfg.View.Width)
	// Keys absent from the document keep their defaults.
	assert.Equal(t, "runs", cfg.OutputDir)
	assert.Equal(t, Default().View.Eye, cfg.View.Eye)
	assert.Equal(t, 1.0, cfg.View.Near)
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		doc string
		key string
	}{
		{"radius = -1", "radius"},
		{"radius = 0", "radius"},
		{"window_ratio = 1.2", "window_ratio"},
		{"window_ratio = 0.0", "window_ratio"},
		{`window_roles = ["attic"]`, "attic"},
		{`formats = ["step"]`, "formats"},
		{`model_format = "osm"`, "model_format"},
		{"heating_setpoint = 30", "heating_setpoint"},
		{`hvac = "boiler"`, "boiler"},
		{`log_level = "loud"`, "log_level"},
		{"[view]\nwidth = 0", "view"},
		{"[view]\nnear = 20", "view"},
		{`name = ""`, "name"},
		{"colour = 3", "colour"},
		{"radius = ", ""},
	} {
		_, err := Decode(strings.NewReader(test.doc))
		if assert.Error(t, err, test.doc) {
			assert.Contains(t, err.Error(), test.key, test.doc)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Radius = 3
	cfg.WindowRoles = []geodome.Role{geodome.Roof}
	cfg.Formats = Formats
	var b bytes.Buffer
	require.NoError(t, cfg.Encode(&b))
	assert.Contains(t, b.String(), "pthp")

	got, err := Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodome.toml")
	require.NoError(t, os.WriteFile(path, []byte("radius = 2\nname = \"hut\"\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Radius)
	assert.Equal(t, "hut.json", cfg.ModelFile())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// Package config holds the settings of a dome generation run. Settings are
// read from a TOML file and can be overridden from the command line.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/geodome"
	"github.com/soypat/geodome/building"
)

// Format is an artifact written by a run.
type Format string

const (
	STL     Format = "stl"     // Binary STL of the triangulated dome.
	PNG     Format = "png"     // Shaded preview.
	Plot    Format = "plan"    // Plan and elevation drawings.
	DXF     Format = "dxf"     // Wireframe by layer.
	GeoJSON Format = "geojson" // Footprint and window plan.
	OBJ     Format = "obj"     // Welded mesh.
	Model   Format = "model"   // Building energy model.
)

// Formats lists every known Format.
var Formats = []Format{STL, PNG, Plot, DXF, GeoJSON, OBJ, Model}

func (f Format) valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Config is the configuration of a run.
type Config struct {
	Radius      float64        `toml:"radius"`
	WindowRatio float64        `toml:"window_ratio"`
	// Roles of the glazed faces. An empty list glazes nothing.
	WindowRoles []geodome.Role `toml:"window_roles"`
	OutputDir   string         `toml:"output_dir"`
	// Base name of every artifact.
	Name    string   `toml:"name"`
	Formats []Format `toml:"formats"`
	// json or sqlite.
	ModelFormat     string              `toml:"model_format"`
	HeatingSetpoint float64             `toml:"heating_setpoint"`
	CoolingSetpoint float64             `toml:"cooling_setpoint"`
	HVAC            building.HVACSystem `toml:"hvac"`
	LogLevel        string              `toml:"log_level"`
	View            View                `toml:"view"`
}

// View configures the PNG preview camera.
type View struct {
	Eye    [3]float64 `toml:"eye"`
	Near   float64    `toml:"near"`
	Far    float64    `toml:"far"`
	Width  int        `toml:"width"`
	Height int        `toml:"height"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Radius:          4,
		WindowRatio:     0.8,
		WindowRoles:     append([]geodome.Role(nil), geodome.WindowRoles...),
		OutputDir:       "runs",
		Name:            "dome",
		Formats:         []Format{STL, PNG, Plot, Model},
		ModelFormat:     "json",
		HeatingSetpoint: 24,
		CoolingSetpoint: 28,
		HVAC:            building.PackagedTerminalHeatPump,
		LogLevel:        "info",
		View: View{
			Eye:    [3]float64{-2, -3, 2},
			Near:   1,
			Far:    10,
			Width:  1024,
			Height: 768,
		},
	}
}

// Load reads the TOML file at path over the defaults. Keys missing from
// the file keep their default value and unknown keys are an error.
func Load(path string) (Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()
	cfg, err := Decode(fp)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, errors.New(strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML to w.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate returns an error naming the first invalid key.
func (c Config) Validate() error {
	switch {
	case !(c.Radius > 0) || math.IsInf(c.Radius, 0):
		return fmt.Errorf("radius: %w: %g", geodome.ErrInvalidRadius, c.Radius)
	case !(c.WindowRatio > 0 && c.WindowRatio <= 1):
		return fmt.Errorf("window_ratio: %w: %g", geodome.ErrInvalidCoverage, c.WindowRatio)
	case c.OutputDir == "":
		return errors.New("output_dir: empty")
	case c.Name == "":
		return errors.New("name: empty")
	case c.ModelFormat != "json" && c.ModelFormat != "sqlite":
		return fmt.Errorf("model_format: want json or sqlite, got %q", c.ModelFormat)
	case !(c.HeatingSetpoint < c.CoolingSetpoint):
		return fmt.Errorf("heating_setpoint: %g must be below cooling_setpoint %g", c.HeatingSetpoint, c.CoolingSetpoint)
	case c.View.Width <= 0 || c.View.Height <= 0:
		return fmt.Errorf("view: size must be positive, got %dx%d", c.View.Width, c.View.Height)
	case !(c.View.Near > 0 && c.View.Far > c.View.Near):
		return fmt.Errorf("view: want 0 < near < far, got near=%g far=%g", c.View.Near, c.View.Far)
	}
	for _, f := range c.Formats {
		if !f.valid() {
			return fmt.Errorf("formats: unknown format %q", f)
		}
	}
	for _, r := range c.WindowRoles {
		if r > geodome.Floor {
			return fmt.Errorf("window_roles: unknown role %v", r)
		}
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Has reports whether f is one of the configured formats.
func (c Config) Has(f Format) bool {
	for _, cf := range c.Formats {
		if cf == f {
			return true
		}
	}
	return false
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// ModelFile returns the file name the building model is saved under.
func (c Config) ModelFile() string {
	if c.ModelFormat == "sqlite" {
		return c.Name + ".db"
	}
	return c.Name + ".json"
}

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/soypat/geodome"
	"github.com/soypat/geodome/building"
	"github.com/soypat/geodome/config"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath  string
	radius      float64
	windowRatio float64
	roles       []string
	outputDir   string
	name        string
	formats     []string
	modelFormat string
	hvac        string
	vv, v, q    bool
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "geodome",
		Short:         "Generate a one-frequency geodesic dome",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg, f)
			if err != nil {
				return err
			}
			_, err = run(cmd.Context(), cfg, logger)
			return err
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "TOML configuration file")
	pf.BoolVar(&f.vv, "vv", false, "debug logging")
	pf.BoolVarP(&f.v, "verbose", "v", false, "info logging")
	pf.BoolVarP(&f.q, "quiet", "q", false, "only log errors")

	fl := root.Flags()
	fl.Float64VarP(&f.radius, "radius", "r", 0, "dome circumradius")
	fl.Float64Var(&f.windowRatio, "window-ratio", 0, "window coverage of each glazed face in (0, 1]")
	fl.StringSliceVar(&f.roles, "roles", nil, "face roles to glaze: roof, upper_wall, lower_wall, floor; empty for none")
	fl.StringVarP(&f.outputDir, "out", "o", "", "output directory")
	fl.StringVar(&f.name, "name", "", "base name of the generated files")
	fl.StringSliceVar(&f.formats, "formats", nil, "artifacts to write: "+formatList())
	fl.StringVar(&f.modelFormat, "model-format", "", "building model file format: json or sqlite")
	fl.StringVar(&f.hvac, "hvac", "", "HVAC system archetype, by name or baseline system number")

	root.AddCommand(newConfigCmd(&f))
	return root
}

func newConfigCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}

// config loads the configuration file, if any, and applies the flags set on the command line.
func (f *flags) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		cfg, err = config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("radius") {
		cfg.Radius = f.radius
	}
	if changed("window-ratio") {
		cfg.WindowRatio = f.windowRatio
	}
	if changed("roles") {
		cfg.WindowRoles = cfg.WindowRoles[:0]
		for _, s := range f.roles {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			r, ok := geodome.ParseRole(s)
			if !ok {
				return cfg, fmt.Errorf("--roles: unknown role %q", s)
			}
			cfg.WindowRoles = append(cfg.WindowRoles, r)
		}
	}
	if changed("out") {
		cfg.OutputDir = f.outputDir
	}
	if changed("name") {
		cfg.Name = f.name
	}
	if changed("formats") {
		cfg.Formats = cfg.Formats[:0]
		for _, s := range f.formats {
			cfg.Formats = append(cfg.Formats, config.Format(strings.TrimSpace(s)))
		}
	}
	if changed("model-format") {
		cfg.ModelFormat = f.modelFormat
	}
	if changed("hvac") {
		h, err := building.ParseHVAC(f.hvac)
		if err != nil {
			return cfg, fmt.Errorf("--hvac: %w", err)
		}
		cfg.HVAC = h
	}
	return cfg, cfg.Validate()
}

// newLogger returns a text logger writing to the command's error output.
// Verbosity flags take precedence over the configured log level.
func newLogger(cmd *cobra.Command, cfg config.Config, f flags) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if f.vv || f.v || f.q {
		level = LevelFromFlags(f.vv, f.v, f.q)
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(h), nil
}

// LevelFromFlags returns the [slog.Level] corresponding to the given
// verbosity flags, evaluated in order:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func formatList() string {
	names := make([]string, len(config.Formats))
	for i, f := range config.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

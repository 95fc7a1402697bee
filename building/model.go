// Package building assembles an energy model of a dome: one space bounded
// by the dome's faces, windows cut into them, thermal zones, thermostats and
// an HVAC system archetype. Models are saved as JSON or SQLite files.
package building

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/soypat/geodome"
	"gonum.org/v1/gonum/spatial/r3"
)

// Handle uniquely identifies an object of a Model.
type Handle string

func newHandle() Handle { return Handle(uuid.New().String()) }

// SurfaceType classifies a Surface.
type SurfaceType string

const (
	RoofCeiling SurfaceType = "RoofCeiling"
	Wall        SurfaceType = "Wall"
	Floor       SurfaceType = "Floor"
)

// Boundary is the outside boundary condition of a Surface.
type Boundary string

const (
	Outdoors Boundary = "Outdoors"
	Ground   Boundary = "Ground"
)

// DefaultSurfaceType returns the surface type of a dome face of role r.
func DefaultSurfaceType(r geodome.Role) SurfaceType {
	return SurfaceType(r.SurfaceType())
}

// Model is a building energy model. Objects reference each other by Handle.
type Model struct {
	Handle       Handle         `json:"handle"`
	Name         string         `json:"name"`
	Spaces       []*Space       `json:"spaces"`
	Surfaces     []*Surface     `json:"surfaces"`
	SubSurfaces  []*SubSurface  `json:"sub_surfaces"`
	ThermalZones []*ThermalZone `json:"thermal_zones"`
	Thermostats  []*Thermostat  `json:"thermostats"`
	Equipment    []*Equipment   `json:"equipment"`
	HVAC         HVACSystem     `json:"hvac"`
}

// Space is a volume enclosed by surfaces.
type Space struct {
	Handle      Handle `json:"handle"`
	Name        string `json:"name"`
	ThermalZone Handle `json:"thermal_zone,omitempty"`
}

// Surface is a planar boundary of a Space.
type Surface struct {
	Handle   Handle       `json:"handle"`
	Name     string       `json:"name"`
	Space    Handle       `json:"space"`
	Type     SurfaceType  `json:"surface_type"`
	Boundary Boundary     `json:"outside_boundary_condition"`
	Role     geodome.Role `json:"role"`
	Vertices []r3.Vec     `json:"vertices"`
}

// SubSurface is a window cut into a Surface.
type SubSurface struct {
	Handle   Handle   `json:"handle"`
	Name     string   `json:"name"`
	Surface  Handle   `json:"surface"`
	Vertices []r3.Vec `json:"vertices"`
}

// ThermalZone groups spaces conditioned together.
type ThermalZone struct {
	Handle     Handle   `json:"handle"`
	Name       string   `json:"name"`
	Thermostat Handle   `json:"thermostat,omitempty"`
	Equipment  []Handle `json:"equipment,omitempty"`
}

// Thermostat is a dual setpoint thermostat. Setpoints are in degrees Celsius.
type Thermostat struct {
	Handle  Handle  `json:"handle"`
	Name    string  `json:"name"`
	Heating float64 `json:"heating_setpoint"`
	Cooling float64 `json:"cooling_setpoint"`
}

// Equipment is the zone equipment of an HVAC system.
type Equipment struct {
	Handle Handle     `json:"handle"`
	Name   string     `json:"name"`
	Zone   Handle     `json:"zone"`
	System HVACSystem `json:"system"`
}

// New returns an empty model.
func New(name string) *Model {
	return &Model{Handle: newHandle(), Name: name}
}

// AddSpace adds an empty space to the model.
func (m *Model) AddSpace(name string) *Space {
	s := &Space{Handle: newHandle(), Name: name}
	m.Spaces = append(m.Spaces, s)
	return s
}

// AddSurface adds a surface bounding space. Floors are in contact with the ground,
// every other surface is exposed to the outdoors.
func (m *Model) AddSurface(points []r3.Vec, space *Space, st SurfaceType, role geodome.Role) (*Surface, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("surface of %d vertices: %w", len(points), geodome.ErrDegenerateFace)
	}
	if space == nil || m.Space(space.Handle) == nil {
		return nil, errors.New("surface space not in model")
	}
	boundary := Outdoors
	if st == Floor {
		boundary = Ground
	}
	s := &Surface{
		Handle:   newHandle(),
		Name:     fmt.Sprintf("%s %d", role, len(m.SurfacesOf(role))),
		Space:    space.Handle,
		Type:     st,
		Boundary: boundary,
		Role:     role,
		Vertices: append([]r3.Vec(nil), points...),
	}
	m.Surfaces = append(m.Surfaces, s)
	return s, nil
}

// AddWindow cuts a window covering the given fraction of s's dimensions.
func (m *Model) AddWindow(s *Surface, coverage float64) (*SubSurface, error) {
	w, err := geodome.InsetFace(s.Vertices, coverage)
	if err != nil {
		return nil, fmt.Errorf("window on %s: %w", s.Name, err)
	}
	sub := &SubSurface{
		Handle:   newHandle(),
		Name:     s.Name + " window",
		Surface:  s.Handle,
		Vertices: w,
	}
	m.SubSurfaces = append(m.SubSurfaces, sub)
	return sub, nil
}

// MakeBuilding adds a space bounded by every face of d, a window on each face
// of roles, and thermal zones. When roles is nil geodome.WindowRoles are glazed;
// an empty non-nil roles glazes nothing.
// Nothing is added to the model if an argument or a face of d is invalid.
func (m *Model) MakeBuilding(d geodome.Dome, coverage float64, roles ...geodome.Role) error {
	if d.Faces.Len() == 0 {
		return errors.New("dome has no faces")
	}
	if !(coverage > 0 && coverage <= 1) {
		return fmt.Errorf("window coverage %g: %w", coverage, geodome.ErrInvalidCoverage)
	}
	if roles == nil {
		roles = geodome.WindowRoles
	}
	glazed := make(map[geodome.Role]bool, len(roles))
	for _, r := range roles {
		if r > geodome.Floor {
			return fmt.Errorf("windows for unknown role %v", r)
		}
		glazed[r] = true
	}
	// Built on copies of m's slices so a bad face leaves m untouched.
	staged := &Model{
		Name:        m.Name,
		Spaces:      append([]*Space(nil), m.Spaces...),
		Surfaces:    append([]*Surface(nil), m.Surfaces...),
		SubSurfaces: append([]*SubSurface(nil), m.SubSurfaces...),
	}
	space := staged.AddSpace(m.Name + " space")
	var err error
	d.Faces.Each(func(r geodome.Role, i int, f geodome.Face) {
		if err != nil {
			return
		}
		var s *Surface
		s, err = staged.AddSurface(f, space, DefaultSurfaceType(r), r)
		if err == nil && glazed[r] {
			_, err = staged.AddWindow(s, coverage)
		}
		if err != nil {
			err = fmt.Errorf("%v face %d: %w", r, i, err)
		}
	})
	if err != nil {
		return err
	}
	m.Spaces, m.Surfaces, m.SubSurfaces = staged.Spaces, staged.Surfaces, staged.SubSurfaces
	m.AddThermalZones()
	return nil
}

// AddThermalZones adds a thermal zone to every space lacking one and
// returns how many were added.
func (m *Model) AddThermalZones() int {
	added := 0
	for _, s := range m.Spaces {
		if s.ThermalZone != "" {
			continue
		}
		z := &ThermalZone{Handle: newHandle(), Name: s.Name + " zone"}
		m.ThermalZones = append(m.ThermalZones, z)
		s.ThermalZone = z.Handle
		added++
	}
	return added
}

// AddThermostats sets a dual setpoint thermostat on every thermal zone.
func (m *Model) AddThermostats(heating, cooling float64) error {
	if math.IsNaN(heating) || math.IsNaN(cooling) || heating >= cooling {
		return fmt.Errorf("heating setpoint %g must be below cooling setpoint %g", heating, cooling)
	}
	if len(m.ThermalZones) == 0 {
		return errors.New("model has no thermal zones")
	}
	for _, z := range m.ThermalZones {
		t := &Thermostat{
			Handle:  newHandle(),
			Name:    z.Name + " thermostat",
			Heating: heating,
			Cooling: cooling,
		}
		m.Thermostats = append(m.Thermostats, t)
		z.Thermostat = t.Handle
	}
	return nil
}

// AddHVAC serves every thermal zone with the given system archetype.
func (m *Model) AddHVAC(system HVACSystem) error {
	if !system.valid() {
		return fmt.Errorf("unknown HVAC system %d", uint8(system))
	}
	if len(m.ThermalZones) == 0 {
		return errors.New("model has no thermal zones")
	}
	m.HVAC = system
	for _, z := range m.ThermalZones {
		e := &Equipment{
			Handle: newHandle(),
			Name:   z.Name + " " + system.String(),
			Zone:   z.Handle,
			System: system,
		}
		m.Equipment = append(m.Equipment, e)
		z.Equipment = append(z.Equipment, e.Handle)
	}
	return nil
}

// Space returns the space with handle h or nil if there is none.
func (m *Model) Space(h Handle) *Space {
	for _, s := range m.Spaces {
		if s.Handle == h {
			return s
		}
	}
	return nil
}

// ThermalZone returns the thermal zone with handle h or nil if there is none.
func (m *Model) ThermalZone(h Handle) *ThermalZone {
	for _, z := range m.ThermalZones {
		if z.Handle == h {
			return z
		}
	}
	return nil
}

// SurfacesOf returns the surfaces built from faces of role r.
func (m *Model) SurfacesOf(r geodome.Role) []*Surface {
	var surfaces []*Surface
	for _, s := range m.Surfaces {
		if s.Role == r {
			surfaces = append(surfaces, s)
		}
	}
	return surfaces
}

// WindowsOf returns the windows cut into surface s.
func (m *Model) WindowsOf(s *Surface) []*SubSurface {
	var windows []*SubSurface
	for _, w := range m.SubSurfaces {
		if w.Surface == s.Handle {
			windows = append(windows, w)
		}
	}
	return windows
}

// WindowToWallRatio returns the glazed area over the gross area of the
// surfaces exposed to the outdoors.
func (m *Model) WindowToWallRatio() float64 {
	var gross, glazed float64
	for _, s := range m.Surfaces {
		if s.Boundary != Outdoors {
			continue
		}
		gross += geodome.Area(s.Vertices)
		for _, w := range m.WindowsOf(s) {
			glazed += geodome.Area(w.Vertices)
		}
	}
	if gross == 0 {
		return 0
	}
	return glazed / gross
}

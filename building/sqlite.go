package building

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/soypat/geodome"
	"gonum.org/v1/gonum/spatial/r3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Rows of the SQLite model file. Relations are kept as handle columns and
// vertex lists as JSON text.
type (
	modelRow struct {
		Handle string `gorm:"primaryKey"`
		Name   string
		HVAC   string `gorm:"column:hvac"`
	}
	spaceRow struct {
		Handle      string `gorm:"primaryKey"`
		Name        string
		ThermalZone string
	}
	surfaceRow struct {
		Handle      string `gorm:"primaryKey"`
		Seq         int    `gorm:"index"`
		Name        string
		Space       string `gorm:"index"`
		SurfaceType string
		Boundary    string
		Role        string
		Vertices    []byte `gorm:"column:vertices_json"`
	}
	subSurfaceRow struct {
		Handle   string `gorm:"primaryKey"`
		Seq      int    `gorm:"index"`
		Name     string
		Surface  string `gorm:"index"`
		Vertices []byte `gorm:"column:vertices_json"`
	}
	thermalZoneRow struct {
		Handle     string `gorm:"primaryKey"`
		Name       string
		Thermostat string
	}
	thermostatRow struct {
		Handle  string `gorm:"primaryKey"`
		Name    string
		Heating float64
		Cooling float64
	}
	equipmentRow struct {
		Handle string `gorm:"primaryKey"`
		Seq    int    `gorm:"index"`
		Name   string
		Zone   string `gorm:"index"`
		System string
	}
)

func (modelRow) TableName() string       { return "models" }
func (spaceRow) TableName() string       { return "spaces" }
func (surfaceRow) TableName() string     { return "surfaces" }
func (subSurfaceRow) TableName() string  { return "sub_surfaces" }
func (thermalZoneRow) TableName() string { return "thermal_zones" }
func (thermostatRow) TableName() string  { return "thermostats" }
func (equipmentRow) TableName() string   { return "equipment" }

var sqliteTables = []interface{}{
	&modelRow{}, &spaceRow{}, &surfaceRow{}, &subSurfaceRow{},
	&thermalZoneRow{}, &thermostatRow{}, &equipmentRow{},
}

func openSQLite(path string) (*gorm.DB, func() error, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return db, sqlDB.Close, nil
}

// saveSQLite overwrites path with a database holding one model.
func (m *Model) saveSQLite(path string) (err error) {
	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	db, closeDB, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeDB(); err == nil {
			err = cerr
		}
	}()
	if err = db.AutoMigrate(sqliteTables...); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		hvac, err := m.HVAC.MarshalText()
		if err != nil {
			return err
		}
		if err := tx.Create(&modelRow{Handle: string(m.Handle), Name: m.Name, HVAC: string(hvac)}).Error; err != nil {
			return err
		}
		for _, s := range m.Spaces {
			row := spaceRow{Handle: string(s.Handle), Name: s.Name, ThermalZone: string(s.ThermalZone)}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for i, s := range m.Surfaces {
			vertices, err := json.Marshal(s.Vertices)
			if err != nil {
				return err
			}
			row := surfaceRow{
				Handle:      string(s.Handle),
				Seq:         i,
				Name:        s.Name,
				Space:       string(s.Space),
				SurfaceType: string(s.Type),
				Boundary:    string(s.Boundary),
				Role:        s.Role.String(),
				Vertices:    vertices,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for i, w := range m.SubSurfaces {
			vertices, err := json.Marshal(w.Vertices)
			if err != nil {
				return err
			}
			row := subSurfaceRow{Handle: string(w.Handle), Seq: i, Name: w.Name, Surface: string(w.Surface), Vertices: vertices}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, z := range m.ThermalZones {
			row := thermalZoneRow{Handle: string(z.Handle), Name: z.Name, Thermostat: string(z.Thermostat)}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, t := range m.Thermostats {
			row := thermostatRow{Handle: string(t.Handle), Name: t.Name, Heating: t.Heating, Cooling: t.Cooling}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for i, e := range m.Equipment {
			row := equipmentRow{Handle: string(e.Handle), Seq: i, Name: e.Name, Zone: string(e.Zone), System: e.System.String()}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func loadSQLite(path string) (_ *Model, err error) {
	if _, err = os.Stat(path); err != nil {
		return nil, err
	}
	db, closeDB, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeDB(); err == nil {
			err = cerr
		}
	}()
	var mr modelRow
	if err = db.First(&mr).Error; err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	m := &Model{Handle: Handle(mr.Handle), Name: mr.Name}
	if err = m.HVAC.UnmarshalText([]byte(mr.HVAC)); err != nil {
		return nil, err
	}

	var spaces []spaceRow
	if err = db.Find(&spaces).Error; err != nil {
		return nil, err
	}
	for _, r := range spaces {
		m.Spaces = append(m.Spaces, &Space{Handle: Handle(r.Handle), Name: r.Name, ThermalZone: Handle(r.ThermalZone)})
	}

	var surfaces []surfaceRow
	if err = db.Order("seq").Find(&surfaces).Error; err != nil {
		return nil, err
	}
	for _, r := range surfaces {
		s := &Surface{
			Handle:   Handle(r.Handle),
			Name:     r.Name,
			Space:    Handle(r.Space),
			Type:     SurfaceType(r.SurfaceType),
			Boundary: Boundary(r.Boundary),
		}
		var ok bool
		if s.Role, ok = geodome.ParseRole(r.Role); !ok {
			return nil, fmt.Errorf("surface %s: unknown role %q", r.Handle, r.Role)
		}
		if s.Vertices, err = decodeVertices(r.Vertices); err != nil {
			return nil, fmt.Errorf("surface %s: %w", r.Handle, err)
		}
		m.Surfaces = append(m.Surfaces, s)
	}

	var subs []subSurfaceRow
	if err = db.Order("seq").Find(&subs).Error; err != nil {
		return nil, err
	}
	for _, r := range subs {
		w := &SubSurface{Handle: Handle(r.Handle), Name: r.Name, Surface: Handle(r.Surface)}
		if w.Vertices, err = decodeVertices(r.Vertices); err != nil {
			return nil, fmt.Errorf("sub surface %s: %w", r.Handle, err)
		}
		m.SubSurfaces = append(m.SubSurfaces, w)
	}

	var zones []thermalZoneRow
	if err = db.Find(&zones).Error; err != nil {
		return nil, err
	}
	for _, r := range zones {
		m.ThermalZones = append(m.ThermalZones, &ThermalZone{Handle: Handle(r.Handle), Name: r.Name, Thermostat: Handle(r.Thermostat)})
	}

	var thermostats []thermostatRow
	if err = db.Find(&thermostats).Error; err != nil {
		return nil, err
	}
	for _, r := range thermostats {
		m.Thermostats = append(m.Thermostats, &Thermostat{Handle: Handle(r.Handle), Name: r.Name, Heating: r.Heating, Cooling: r.Cooling})
	}

	var equipment []equipmentRow
	if err = db.Order("seq").Find(&equipment).Error; err != nil {
		return nil, err
	}
	for _, r := range equipment {
		e := &Equipment{Handle: Handle(r.Handle), Name: r.Name, Zone: Handle(r.Zone)}
		if e.System, err = ParseHVAC(r.System); err != nil {
			return nil, err
		}
		m.Equipment = append(m.Equipment, e)
		if z := m.ThermalZone(e.Zone); z != nil {
			z.Equipment = append(z.Equipment, e.Handle)
		}
	}
	return m, nil
}

func decodeVertices(b []byte) ([]r3.Vec, error) {
	var v []r3.Vec
	err := json.Unmarshal(b, &v)
	return v, err
}

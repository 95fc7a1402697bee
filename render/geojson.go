package render

import (
	"errors"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/soypat/geodome"
)

// Footprint returns the floor outline of d in the XY plane as a polygon
// with a counter-clockwise exterior ring.
func Footprint(d geodome.Dome) (orb.Polygon, error) {
	floor := d.Faces.Faces(geodome.Floor)
	if len(floor) == 0 {
		return nil, errors.New("dome has no floor")
	}
	return orb.Polygon{planRing(floor[0])}, nil
}

// FootprintArea returns the planar area covered by the dome.
func FootprintArea(d geodome.Dome) (float64, error) {
	p, err := Footprint(d)
	if err != nil {
		return 0, err
	}
	return planar.Area(p), nil
}

// FootprintCollection returns a feature collection holding the footprint of d
// and the plan projection of each window.
func FootprintCollection(d geodome.Dome, windows map[geodome.Role][]geodome.Face, coverage float64) (*geojson.FeatureCollection, error) {
	footprint, err := Footprint(d)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(footprint)
	f.Properties["role"] = geodome.Floor.String()
	f.Properties["radius"] = d.Radius
	f.Properties["height"] = d.Height()
	f.Properties["area"] = planar.Area(footprint)
	fc.Append(f)

	apex := geojson.NewFeature(orb.Point{d.Vertices.Apex.X, d.Vertices.Apex.Y})
	apex.Properties["role"] = "apex"
	apex.Properties["elevation"] = d.Vertices.Apex.Z
	fc.Append(apex)

	for _, r := range geodome.Roles {
		for i, w := range windows[r] {
			wf := geojson.NewFeature(orb.Polygon{planRing(w)})
			wf.Properties["role"] = "window"
			wf.Properties["host"] = r.String()
			wf.Properties["index"] = i
			wf.Properties["coverage"] = coverage
			wf.Properties["glazed_area"] = geodome.Area(w)
			fc.Append(wf)
		}
	}
	return fc, nil
}

// CreateGeoJSON writes the footprint collection of d to path.
func CreateGeoJSON(path string, d geodome.Dome, windows map[geodome.Role][]geodome.Face, coverage float64) error {
	fc, err := FootprintCollection(d, windows, coverage)
	if err != nil {
		return err
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// planRing projects f onto the XY plane as a closed counter-clockwise ring.
func planRing(f geodome.Face) orb.Ring {
	ring := make(orb.Ring, 0, len(f)+1)
	for _, v := range f {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	ring = append(ring, ring[0])
	if ring.Orientation() == orb.CW {
		ring.Reverse()
	}
	return ring
}

package geodome

import (
	"encoding/json"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestPartitionIntoFaces(t *testing.T) {
	d := Must(4)
	g := d.Faces
	if g.Len() != 16 {
		t.Fatalf("got %d faces, want 16", g.Len())
	}
	for _, test := range []struct {
		role     Role
		faces    int
		vertices int
		surface  string
	}{
		{role: Roof, faces: 5, vertices: 3, surface: "RoofCeiling"},
		{role: UpperWall, faces: 5, vertices: 3, surface: "Wall"},
		{role: LowerWall, faces: 5, vertices: 3, surface: "Wall"},
		{role: Floor, faces: 1, vertices: 5, surface: "Floor"},
	} {
		faces := g.Faces(test.role)
		if len(faces) != test.faces {
			t.Errorf("%v: got %d faces, want %d", test.role, len(faces), test.faces)
		}
		for i, f := range faces {
			if len(f) != test.vertices {
				t.Errorf("%v face %d: got %d vertices, want %d", test.role, i, len(f), test.vertices)
			}
			if !Planar(f, 1e-9) {
				t.Errorf("%v face %d is not planar", test.role, i)
			}
		}
		if test.role.SurfaceType() != test.surface {
			t.Errorf("%v: surface type %q, want %q", test.role, test.role.SurfaceType(), test.surface)
		}
	}
	if len(g.All()) != g.Len() {
		t.Error("All and Len disagree")
	}
}

func TestFacesWoundOutward(t *testing.T) {
	for _, radius := range []float64{1, 4, 10} {
		d := Must(radius)
		center := d.Center()
		d.Faces.Each(func(r Role, i int, f Face) {
			n := Normal(f)
			out := r3.Sub(Centroid(f), center)
			if r3.Dot(n, out) <= 0 {
				t.Errorf("radius %g: %v face %d wound inward, normal %v", radius, r, i, n)
			}
		})
		floor := d.Faces.Faces(Floor)[0]
		if n := Normal(floor); n.Z > -1+1e-12 {
			t.Errorf("radius %g: floor normal %v does not point down", radius, n)
		}
		for i, f := range d.Faces.Faces(Roof) {
			if Normal(f).Z <= 0 {
				t.Errorf("radius %g: roof face %d normal points down", radius, i)
			}
		}
	}
}

func TestFacesShareEdgesInReverse(t *testing.T) {
	// Consistent winding on a closed surface means every directed edge
	// appears exactly once and its reverse appears exactly once.
	d := Must(4)
	type edge [2]r3.Vec
	edges := make(map[edge]int)
	d.Faces.Each(func(r Role, i int, f Face) {
		for j := range f {
			edges[edge{f[j], f[(j+1)%len(f)]}]++
		}
	})
	if len(edges) != 2*25 {
		t.Errorf("got %d directed edges, want 50", len(edges))
	}
	for e, count := range edges {
		if count != 1 {
			t.Errorf("directed edge %v used %d times", e, count)
		}
		if edges[edge{e[1], e[0]}] != 1 {
			t.Errorf("directed edge %v has no reverse", e)
		}
	}
}

func TestRole(t *testing.T) {
	for _, r := range Roles {
		got, ok := ParseRole(r.String())
		if !ok || got != r {
			t.Errorf("ParseRole(%q) = %v, %v", r.String(), got, ok)
		}
	}
	if _, ok := ParseRole("attic"); ok {
		t.Error("parsed unknown role")
	}
	if Role(9).String() != "Role(9)" {
		t.Errorf("unexpected string for unknown role: %s", Role(9))
	}
	if !UpperWall.IsWall() || !LowerWall.IsWall() || Roof.IsWall() || Floor.IsWall() {
		t.Error("IsWall misclassifies roles")
	}
	var g FaceGroup
	if g.Faces(Role(9)) != nil {
		t.Error("expected no faces for unknown role")
	}

	b, err := json.Marshal(map[string][]Role{"roles": {Roof, LowerWall}})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"roles":["roof","lower_wall"]}` {
		t.Errorf("unexpected role JSON %s", b)
	}
	var roles []Role
	if err = json.Unmarshal([]byte(`["floor","upper_wall"]`), &roles); err != nil {
		t.Fatal(err)
	}
	if len(roles) != 2 || roles[0] != Floor || roles[1] != UpperWall {
		t.Errorf("unexpected roles %v", roles)
	}
	if err = json.Unmarshal([]byte(`["attic"]`), &roles); err == nil {
		t.Error("expected error unmarshaling unknown role")
	}
	if _, err = json.Marshal(Role(9)); err == nil {
		t.Error("expected error marshaling unknown role")
	}
}

func TestNormalArea(t *testing.T) {
	square := Face{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if got := Area(square); got != 4 {
		t.Errorf("square area %g, want 4", got)
	}
	if got := Normal(square); got != (r3.Vec{Z: 1}) {
		t.Errorf("square normal %v, want +Z", got)
	}
	if got := Perimeter(square); got != 8 {
		t.Errorf("square perimeter %g, want 8", got)
	}
	line := Face{{X: 0}, {X: 1}, {X: 2}}
	if got := Normal(line); got != (r3.Vec{}) {
		t.Errorf("collinear face normal %v, want zero", got)
	}
	if Planar(Face{{}, {X: 1}}, 1) {
		t.Error("two point face reported planar")
	}
}

package geodome

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDomeRadius4(t *testing.T) {
	const radius = 4
	d, err := New(radius)
	if err != nil {
		t.Fatal(err)
	}
	pentagonZ := radius * math.Sin(math.Atan(0.5))
	wantApex := r3.Vec{Z: radius + pentagonZ}
	if math.Abs(d.Vertices.Apex.Z-wantApex.Z) > 1e-9 || d.Vertices.Apex.X != 0 || d.Vertices.Apex.Y != 0 {
		t.Errorf("apex at %v, want %v", d.Vertices.Apex, wantApex)
	}
	if math.Abs(d.Height()-5.788854382) > 1e-9 {
		t.Errorf("dome height %g", d.Height())
	}
	for i, v := range d.Vertices.Upper {
		if math.Abs(v.Z-2*pentagonZ) > 1e-9 {
			t.Errorf("upper vertex %d at z=%g, want %g", i, v.Z, 2*pentagonZ)
		}
	}
	for i, v := range d.Vertices.Lower {
		if v.Z != 0 {
			t.Errorf("lower vertex %d at z=%g, want 0", i, v.Z)
		}
	}
	if d.Faces.Len() != 16 {
		t.Errorf("got %d faces", d.Faces.Len())
	}
	if c := d.Center(); math.Abs(c.Z-pentagonZ) > 1e-9 {
		t.Errorf("sphere center at %v, want z=%g", c, pentagonZ)
	}

	windows, err := d.Windows(0.8)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 1 || len(windows[UpperWall]) != 5 {
		t.Fatalf("expected 5 upper wall windows, got %v", windows)
	}
	for i, w := range windows[UpperWall] {
		wall := d.Faces.Faces(UpperWall)[i]
		if len(w) != len(wall) {
			t.Errorf("window %d has %d vertices, want %d", i, len(w), len(wall))
		}
		if math.Abs(Perimeter(w)-0.8*Perimeter(wall)) > 1e-9 {
			t.Errorf("window %d perimeter %g not 80%% of wall perimeter %g", i, Perimeter(w), Perimeter(wall))
		}
	}

	all, err := d.Windows(0.5, UpperWall, LowerWall)
	if err != nil {
		t.Fatal(err)
	}
	if len(all[UpperWall])+len(all[LowerWall]) != 10 {
		t.Errorf("expected 10 wall windows, got %d", len(all[UpperWall])+len(all[LowerWall]))
	}
	dup, err := d.Windows(0.8, UpperWall, Roof, UpperWall)
	if err != nil {
		t.Fatal(err)
	}
	if len(dup[UpperWall]) != 5 || len(dup[Roof]) != 5 {
		t.Errorf("repeated role glazed more than once: %d upper wall, %d roof windows", len(dup[UpperWall]), len(dup[Roof]))
	}
	none, err := d.Windows(0.8, []Role{}...)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("empty role list glazed %v", none)
	}
	if _, err = d.Windows(0); !errors.Is(err, ErrInvalidCoverage) {
		t.Errorf("expected ErrInvalidCoverage, got %v", err)
	}
	if _, err = d.Windows(0.5, Role(7)); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		a := recover()
		err, ok := a.(error)
		if !ok || !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("expected ErrInvalidRadius panic, got %v", a)
		}
	}()
	Must(-4)
}

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		d, _ := New(4)
		_, _ = d.Windows(0.8)
	}
}

package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", DefaultFile)
	cat, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cat) != 11 {
		t.Errorf("default catalog has %d substances, want 11", len(cat))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("catalog file not written: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cat, again) {
		t.Error("reloaded catalog differs from defaults")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	cat := Defaults()
	cat["mercury (Hg)"] = Substance{"Hg", 140, 140, 104, 11_400, 295_000, -38.83, 356.7}
	if err := Save(path, cat); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cat) {
		t.Errorf("round trip mismatch")
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed JSON")
	}
}

func TestNamesAndFind(t *testing.T) {
	cat := Defaults()
	names := cat.Names()
	if names[0] != "acetone (C3H6O)" || names[1] != "Aluminum oxide (Al2O3)" {
		t.Errorf("Names() starts %v", names[:3])
	}
	tests := []struct {
		q, want string
	}{
		{"water (H2O)", "water (H2O)"},
		{"h2o", "water (H2O)"},
		{"NaCl", "Sodium chloride (NaCl)"},
		{"benz", "benzene (C6H6)"},
	}
	for _, tt := range tests {
		name, _, ok := cat.Find(tt.q)
		if !ok || name != tt.want {
			t.Errorf("Find(%q) = %q, %v, want %q", tt.q, name, ok, tt.want)
		}
	}
	if _, _, ok := cat.Find("unobtainium"); ok {
		t.Error("Find(unobtainium) matched")
	}
}

func TestHeatingCurveWater(t *testing.T) {
	water := Defaults()["water (H2O)"]
	c, err := HeatingCurve(water, 1, -10, 110)
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{
		{Phase: "solid", T1: -10, T2: 0, Q: 20_900},
		{Phase: "fusion", Transition: true, T1: 0, T2: 0, Q: 333_550},
		{Phase: "liquid", T1: 0, T2: 100, Q: 418_400},
		{Phase: "vaporization", Transition: true, T1: 100, T2: 100, Q: 2_256_000},
		{Phase: "gas", T1: 100, T2: 110, Q: 19_960},
	}
	if !reflect.DeepEqual(c.Segments, want) {
		t.Errorf("segments = %+v", c.Segments)
	}
	if c.Total != 3_048_810 {
		t.Errorf("total = %g, want 3048810", c.Total)
	}
}

func TestCoolingCurve(t *testing.T) {
	water := Defaults()["water (H2O)"]
	c, err := HeatingCurve(water, 1, 50, -10)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Segments) != 3 || c.Segments[1].Phase != "freezing" {
		t.Fatalf("segments = %+v", c.Segments)
	}
	if c.Total != -563_650 {
		t.Errorf("total = %g, want -563650", c.Total)
	}
}

func TestHeatingCurveEdges(t *testing.T) {
	water := Defaults()["water (H2O)"]

	c, _ := HeatingCurve(water, 2, 0, 50)
	if len(c.Segments) != 2 || c.Segments[0].Phase != "fusion" {
		t.Errorf("ice at 0 °C should melt first: %+v", c.Segments)
	}
	c, _ = HeatingCurve(water, 1, 20, 100)
	if len(c.Segments) != 1 || c.Segments[0].Phase != "liquid" {
		t.Errorf("heating to the boiling point should not boil: %+v", c.Segments)
	}
	c, _ = HeatingCurve(water, 1, 25, 25)
	if len(c.Segments) != 0 || c.Total != 0 {
		t.Errorf("no-op curve = %+v", c)
	}

	if _, err := HeatingCurve(water, 0, 0, 10); !errors.Is(err, ErrBadMass) {
		t.Errorf("zero mass error = %v", err)
	}
	bad := water
	bad.TBoilC = -5
	if _, err := HeatingCurve(bad, 1, 0, 10); !errors.Is(err, ErrBadTransitions) {
		t.Errorf("bad transitions error = %v", err)
	}
}

func TestPointsAndPlot(t *testing.T) {
	water := Defaults()["water (H2O)"]
	c, err := HeatingCurve(water, 1, -10, 110)
	if err != nil {
		t.Fatal(err)
	}
	pts := c.Points()
	if len(pts) != 6 {
		t.Fatalf("got %d points, want 6", len(pts))
	}
	last := pts[len(pts)-1]
	if math.Abs(last.X-3048.81) > 1e-9 || last.Y != 110 {
		t.Errorf("last point = %+v", last)
	}

	path := filepath.Join(t.TempDir(), "water.png")
	if err := PlotHeatingCurve(c, "water", path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("plot not written: %v", err)
	}

	if err := PlotHeatingCurve(&Curve{}, "empty", path); err == nil {
		t.Error("plotting an empty curve succeeded")
	}
}

func TestParseCelsius(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"25", 25, true},
		{"-10 °C", -10, true},
		{"373.15 K", 100, true},
		{"212 F", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseCelsius(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseCelsius(%q) error = %v", tt.in, err)
			continue
		}
		if tt.ok && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseCelsius(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestPlotPath(t *testing.T) {
	if got := PlotPath("/tmp/x", "Water (H2O)"); got != filepath.Join("/tmp/x", "water_heating.png") {
		t.Errorf("PlotPath = %q", got)
	}
	if got := PlotPath("d", "  "); got != filepath.Join("d", "curve_heating.png") {
		t.Errorf("PlotPath blank = %q", got)
	}
}

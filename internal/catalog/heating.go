package catalog

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/f3rmion/chemcalc/internal/units"
)

var (
	ErrBadMass        = errors.New("mass must be positive")
	ErrBadTransitions = errors.New("melting point must be below boiling point")
)

// Segment is one leg of a heating or cooling curve. Phase changes have
// T1 == T2.
type Segment struct {
	Phase      string
	Transition bool
	T1, T2     float64
	Q          float64
}

// Curve is a heating (or cooling) curve with its total heat in J.
type Curve struct {
	Segments []Segment
	Total    float64
}

func phaseAt(s Substance, t float64) (string, float64) {
	switch {
	case t < s.TMeltC:
		return "solid", s.CSolid
	case t < s.TBoilC:
		return "liquid", s.CLiquid
	}
	return "gas", s.CGas
}

// HeatingCurve computes the heat to take massKg of s from t1 to t2 (°C).
// Cooling gives negative heats. A start at a transition temperature
// counts as the phase on the far side of the change, so ice at 0 °C
// melts and steam at 100 °C condenses.
func HeatingCurve(s Substance, massKg, t1, t2 float64) (*Curve, error) {
	if !(massKg > 0) {
		return nil, ErrBadMass
	}
	if s.TMeltC >= s.TBoilC {
		return nil, ErrBadTransitions
	}

	heating := t2 >= t1
	crosses := func(t float64) bool {
		if heating {
			return t1 <= t && t < t2
		}
		return t2 < t && t <= t1
	}

	type stop struct {
		t      float64
		latent float64
		name   string
	}
	stops := []stop{}
	if crosses(s.TMeltC) {
		stops = append(stops, stop{s.TMeltC, s.HFus, "fusion"})
	}
	if crosses(s.TBoilC) {
		stops = append(stops, stop{s.TBoilC, s.HVap, "vaporization"})
	}
	if !heating {
		slices.Reverse(stops)
	}
	sign := 1.0
	if !heating {
		sign = -1
	}

	c := &Curve{}
	sensible := func(a, b float64) {
		if a == b {
			return
		}
		phase, cp := phaseAt(s, (a+b)/2)
		c.Segments = append(c.Segments, Segment{Phase: phase, T1: a, T2: b, Q: massKg * cp * (b - a)})
	}
	at := t1
	for _, st := range stops {
		sensible(at, st.t)
		name := st.name
		if !heating {
			name = map[string]string{"fusion": "freezing", "vaporization": "condensation"}[name]
		}
		c.Segments = append(c.Segments, Segment{
			Phase:      name,
			Transition: true,
			T1:         st.t,
			T2:         st.t,
			Q:          sign * massKg * st.latent,
		})
		at = st.t
	}
	sensible(at, t2)

	qs := make([]float64, len(c.Segments))
	for i, seg := range c.Segments {
		qs[i] = seg.Q
	}
	c.Total = floats.Sum(qs)
	return c, nil
}

// Points returns (cumulative heat in kJ, temperature in °C) pairs along
// the curve, starting at zero heat.
func (c *Curve) Points() plotter.XYs {
	if len(c.Segments) == 0 {
		return nil
	}
	pts := plotter.XYs{{X: 0, Y: c.Segments[0].T1}}
	q := 0.0
	for _, seg := range c.Segments {
		q += seg.Q / 1000
		pts = append(pts, plotter.XY{X: q, Y: seg.T2})
	}
	return pts
}

// PlotHeatingCurve renders temperature against heat added to a PNG, SVG or
// PDF file chosen by the path's extension.
func PlotHeatingCurve(c *Curve, title, path string) error {
	pts := c.Points()
	if len(pts) < 2 {
		return fmt.Errorf("plotting %s: curve has no segments", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "heat added (kJ)"
	p.Y.Label.Text = "temperature (°C)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building plot line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, pt := range pts {
		lo, hi = math.Min(lo, pt.Y), math.Max(hi, pt.Y)
	}
	pad := math.Max((hi-lo)*0.05, 1)
	p.Y.Min, p.Y.Max = lo-pad, hi+pad

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

// ParseCelsius reads a temperature in °C. A K suffix is converted.
func ParseCelsius(text string) (float64, error) {
	v, unit, err := units.ParseQuantity(text)
	if err != nil {
		return 0, err
	}
	switch strings.TrimPrefix(unit, "°") {
	case "", "C", "degC":
		return v, nil
	case "K":
		return v - 273.15, nil
	}
	return 0, fmt.Errorf("unsupported temperature unit %q", unit)
}

// PlotPath is where a substance's heating curve plot is saved in dir.
func PlotPath(dir, name string) string {
	base := "curve"
	if f := strings.Fields(name); len(f) > 0 {
		base = strings.ToLower(f[0])
	}
	return filepath.Join(dir, base+"_heating.png")
}

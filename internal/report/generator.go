// Package report renders calculation results as plain text or Markdown
// for the terminal, the clipboard and saved notes.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/chemcalc/internal/catalog"
	"github.com/f3rmion/chemcalc/internal/equilibrium"
	"github.com/f3rmion/chemcalc/internal/formula"
	"github.com/f3rmion/chemcalc/internal/reaction"
	"github.com/f3rmion/chemcalc/internal/thermo"
)

// Format selects the template set.
type Format string

const (
	Plain    Format = "plain"
	Markdown Format = "markdown"
)

// Kind names one report template.
type Kind string

const (
	KindSolve    Kind = "solve"
	KindNetIonic Kind = "netionic"
	KindICE      Kind = "ice"
	KindThermo   Kind = "thermo"
	KindHeating  Kind = "heating"
	KindMass     Kind = "mass"
)

// Generator renders reports from result data.
type Generator struct {
	format    Format
	precision int
	templates map[Kind]*template.Template
}

// ParseFormat accepts "plain", "text", "markdown" or "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "text":
		return Plain, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// NewGenerator creates a generator. Numbers are printed with precision
// significant digits.
func NewGenerator(format Format, precision int) *Generator {
	if precision <= 0 {
		precision = 6
	}
	g := &Generator{
		format:    format,
		precision: precision,
		templates: make(map[Kind]*template.Template),
	}
	set := plainTemplates
	if format == Markdown {
		set = markdownTemplates
	}
	for k, text := range set {
		g.templates[k] = template.Must(g.newTemplate(k).Parse(text))
	}
	return g
}

func (g *Generator) newTemplate(k Kind) *template.Template {
	return template.New(string(k)).Funcs(template.FuncMap{
		"num": g.Number,
		"pad": func(s string, width int) string { return runewidth.FillRight(s, width) },
		"pct": func(f float64) string { return strconv.FormatFloat(f*100, 'f', 2, 64) + "%" },
	})
}

// SetTemplate replaces the template for one kind of report.
func (g *Generator) SetTemplate(k Kind, text string) error {
	t, err := g.newTemplate(k).Parse(text)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	g.templates[k] = t
	return nil
}

// Number formats v with the generator's precision.
func (g *Generator) Number(v float64) string {
	return strconv.FormatFloat(v, 'g', g.precision, 64)
}

func (g *Generator) execute(k Kind, data any) (string, error) {
	t, ok := g.templates[k]
	if !ok {
		return "", fmt.Errorf("no %s template", k)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// Quantity is a labelled value in display units.
type Quantity struct {
	Label string
	Value float64
	Unit  string
}

// SolveData describes one solved equation.
type SolveData struct {
	Equation string
	Formula  string
	Inputs   []Quantity
	Result   Quantity
	Notes    []string
	Width    int
}

// Solve renders a solved equation with its inputs.
func (g *Generator) Solve(d SolveData) (string, error) {
	d.Width = runewidth.StringWidth(d.Result.Label)
	for _, q := range d.Inputs {
		d.Width = max(d.Width, runewidth.StringWidth(q.Label))
	}
	return g.execute(KindSolve, d)
}

// NetIonic renders every stage of a net ionic reduction.
func (g *Generator) NetIonic(res *reaction.NetIonicResult) (string, error) {
	return g.execute(KindNetIonic, res)
}

type iceData struct {
	Equation string
	*equilibrium.Result
	Width int
}

// ICE renders an ICE table.
func (g *Generator) ICE(equation string, res *equilibrium.Result) (string, error) {
	d := iceData{Equation: equation, Result: res, Width: len("Species")}
	for _, r := range res.Rows {
		d.Width = max(d.Width, runewidth.StringWidth(r.Species))
	}
	return g.execute(KindICE, d)
}

type thermoData struct {
	Equation string
	*thermo.Sums
	HasH, HasG, HasS bool
}

// Thermo renders reaction sums of formation data.
func (g *Generator) Thermo(equation string, s *thermo.Sums) (string, error) {
	return g.execute(KindThermo, thermoData{
		Equation: equation,
		Sums:     s,
		HasH:     s.Complete&thermo.HasHf != 0,
		HasG:     s.Complete&thermo.HasGf != 0,
		HasS:     s.Complete&thermo.HasS != 0,
	})
}

type heatingData struct {
	Name  string
	Mass  float64
	Curve *catalog.Curve
}

// Heating renders a heating curve's segments and total heat.
func (g *Generator) Heating(name string, massKg float64, c *catalog.Curve) (string, error) {
	return g.execute(KindHeating, heatingData{Name: name, Mass: massKg, Curve: c})
}

type massData struct {
	Query       string
	Formula     string
	Total       float64
	Composition []formula.Composition
}

// Mass renders a molar mass with its elemental breakdown.
func (g *Generator) Mass(query, formulaText string, comp []formula.Composition, total float64) (string, error) {
	return g.execute(KindMass, massData{Query: query, Formula: formulaText, Total: total, Composition: comp})
}

package thermo

import (
	"fmt"

	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/reaction"
)

// Sums holds Σν·X over each side of a reaction for X in ΔH°f, ΔG°f, S°.
type Sums struct {
	HfReact, HfProd float64
	GfReact, GfProd float64
	SReact, SProd   float64
	// Complete marks the quantities every species had data for.
	Complete Field
	// Missing lists species, with phase, lacking data or a phase choice.
	Missing []string
}

func (s *Sums) DeltaH() float64 { return s.HfProd - s.HfReact }
func (s *Sums) DeltaG() float64 { return s.GfProd - s.GfReact }
func (s *Sums) DeltaS() float64 { return s.SProd - s.SReact }

// Values converts the complete sums to equation variables in base units
// (J/mol and J/(mol·K)).
func (s *Sums) Values() equations.Values {
	v := equations.Values{}
	if s.Complete&HasHf != 0 {
		v["sum_Hf_react"] = s.HfReact * 1000
		v["sum_Hf_prod"] = s.HfProd * 1000
		v["ΔH°rxn"] = s.DeltaH() * 1000
	}
	if s.Complete&HasGf != 0 {
		v["sum_Gf_react"] = s.GfReact * 1000
		v["sum_Gf_prod"] = s.GfProd * 1000
		v["ΔG°rxn"] = s.DeltaG() * 1000
	}
	if s.Complete&HasS != 0 {
		v["sum_S_react"] = s.SReact
		v["sum_S_prod"] = s.SProd
		v["ΔS°rxn"] = s.DeltaS()
	}
	return v
}

// resolve finds the entry for a token. A token without a phase tag uses
// the only phase on record; with several the choice is left to the user.
func resolve(t reaction.Token, src Source) (Entry, string, bool) {
	label := t.Label()
	if t.Phase != reaction.PhaseNone {
		e, ok := src.Lookup(label, t.Phase.String())
		return e, fmt.Sprintf("%s(%s)", label, t.Phase), ok
	}
	phases := src.Phases(label)
	if len(phases) != 1 {
		return Entry{}, label + "(?)", false
	}
	e, ok := src.Lookup(label, phases[0])
	return e, fmt.Sprintf("%s(%s)", label, phases[0]), ok
}

// ReactionSums adds up formation data for both sides of rx using the
// coefficients as written.
func ReactionSums(rx *reaction.Reaction, src Source) *Sums {
	s := &Sums{Complete: HasAll}
	add := func(toks []reaction.Token, h, g, st *float64) {
		for _, t := range toks {
			if t.Electron {
				continue
			}
			e, name, ok := resolve(t, src)
			if !ok {
				s.Missing = append(s.Missing, name)
				s.Complete = 0
				continue
			}
			n := float64(t.Coefficient)
			if e.Has&HasHf != 0 {
				*h += n * e.Hf
			}
			if e.Has&HasGf != 0 {
				*g += n * e.Gf
			}
			if e.Has&HasS != 0 {
				*st += n * e.S
			}
			if e.Has != HasAll {
				s.Complete &= e.Has
				s.Missing = append(s.Missing, name+" (partial)")
			}
		}
	}
	add(rx.Reactants, &s.HfReact, &s.GfReact, &s.SReact)
	add(rx.Products, &s.HfProd, &s.GfProd, &s.SProd)
	return s
}

// ReactionSumsText parses text and sums it against src.
func ReactionSumsText(text string, src Source) (*Sums, error) {
	rx, err := reaction.Parse(text)
	if err != nil {
		return nil, err
	}
	return ReactionSums(rx, src), nil
}

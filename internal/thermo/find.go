package thermo

import (
	"slices"
	"sort"
	"strings"
)

// nameHints maps words people type to the formulas they usually mean.
var nameHints = []struct {
	word     string
	formulas []string
}{
	{"nitrate", []string{"NO3-", "NaNO3", "KNO3", "HNO3"}},
	{"nitrite", []string{"NO2-", "HNO2"}},
	{"sulfate", []string{"SO4^2-", "HSO4-", "Na2SO4", "CaSO4", "H2SO4"}},
	{"sulfite", []string{"SO3^2-", "HSO3-"}},
	{"carbonate", []string{"CO3^2-", "HCO3-", "Na2CO3", "NaHCO3", "CaCO3"}},
	{"acetate", []string{"CH3COO-"}},
	{"propionate", []string{"C2H5COO-"}},
	{"hydroxide", []string{"OH-", "NaOH", "KOH", "Ca(OH)2"}},
	{"halide", []string{"Cl-", "Br-", "I-", "F-", "NaCl", "KCl", "AgCl", "AgBr", "AgI"}},
	{"ammonium", []string{"NH4+", "NH3"}},
	{"phosphate", []string{"PO4^3-", "HPO4^2-", "H2PO4-", "H3PO4"}},
	{"nitrosyl chloride", []string{"NOCl"}},
}

func distinctRunes(s string) []rune {
	var out []rune
	for _, r := range s {
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// score ranks how well hay ("formula phase", lower-cased) matches q.
func score(q, hay string) float64 {
	s := 0.0
	if strings.Contains(hay, q) {
		s++
	}
	words := strings.Fields(hay)
	for _, w := range distinctWords(q) {
		if slices.Contains(words, w) {
			s++
		}
	}
	if s > 0 {
		return s
	}
	qr := distinctRunes(q)
	shared := 0
	for _, r := range qr {
		if strings.ContainsRune(hay, r) {
			shared++
		}
	}
	return float64(shared) / float64(max(3, len(qr)))
}

func distinctWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	return out
}

// Find searches the table for query, which may be a formula fragment or a
// word such as "nitrate". Results are ordered by score, best first, and
// capped at limit when limit > 0.
func (t *Table) Find(query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var pool []string
	for _, h := range nameHints {
		if strings.Contains(q, h.word) {
			for _, f := range h.formulas {
				if !slices.Contains(pool, f) {
					pool = append(pool, f)
				}
			}
		}
	}

	type scored struct {
		e Entry
		s float64
	}
	var hits []scored
	consider := func(e Entry) {
		hay := strings.ToLower(e.Formula + " " + e.Phase)
		if s := score(q, hay); s > 0 {
			hits = append(hits, scored{e, s})
		}
	}
	if len(pool) > 0 {
		for _, f := range pool {
			for _, ph := range Phases {
				if e, ok := t.entries[key{f, ph}]; ok {
					consider(e)
				}
			}
		}
	} else {
		for _, e := range t.Entries() {
			consider(e)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].s > hits[j].s })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.e
	}
	return out
}

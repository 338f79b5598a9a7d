package formula

import (
	"fmt"
	"sort"
	"strings"
)

// Weight returns the atomic weight of an element symbol in g/mol.
func Weight(symbol string) (float64, bool) {
	w, ok := atomicWeights[symbol]
	return w, ok
}

// IsElement reports whether symbol is a known element.
func IsElement(symbol string) bool {
	_, ok := atomicWeights[symbol]
	return ok
}

// SymbolForName maps an element name such as "sulphur" to its symbol.
func SymbolForName(name string) (string, bool) {
	s, ok := elementNames[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Mass sums atomic weights over element counts, in g/mol.
func Mass(counts map[string]int) (float64, error) {
	symbols := make([]string, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	total := 0.0
	for _, s := range symbols {
		w, ok := atomicWeights[s]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownElement, s)
		}
		total += w * float64(counts[s])
	}
	return total, nil
}

// MolarMass returns the molar mass in g/mol of an element name ("oxygen"),
// an element symbol ("O") or a formula ("Ca(OH)2").
func MolarMass(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &ParseError{Kind: ErrEmpty, Input: text, Pos: -1}
	}
	if sym, ok := SymbolForName(s); ok {
		return atomicWeights[sym], nil
	}
	if w, ok := atomicWeights[s]; ok {
		return w, nil
	}
	counts, err := Counts(s)
	if err != nil {
		return 0, err
	}
	return Mass(counts)
}

// Composition is the mass fraction of each element in a formula.
type Composition struct {
	Symbol   string
	Count    int
	Mass     float64
	Fraction float64
}

// MassComposition breaks a formula's molar mass down by element, ordered by
// element symbol.
func MassComposition(text string) ([]Composition, float64, error) {
	counts, err := Counts(text)
	if err != nil {
		return nil, 0, err
	}
	total, err := Mass(counts)
	if err != nil {
		return nil, 0, err
	}

	symbols := make([]string, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	out := make([]Composition, 0, len(symbols))
	for _, s := range symbols {
		m := atomicWeights[s] * float64(counts[s])
		out = append(out, Composition{Symbol: s, Count: counts[s], Mass: m, Fraction: m / total})
	}
	return out, total, nil
}

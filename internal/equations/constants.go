package equations

import "sort"

// Constants is a read-only table of physical constants in base SI units.
// Equations treat any constant as a known value unless the user overrides it.
type Constants struct {
	values map[string]float64
	notes  map[string]string
}

// NewConstants builds a constants table. The maps are copied.
func NewConstants(values map[string]float64, notes map[string]string) Constants {
	c := Constants{
		values: make(map[string]float64, len(values)),
		notes:  make(map[string]string, len(notes)),
	}
	for k, v := range values {
		c.values[k] = v
	}
	for k, v := range notes {
		c.notes[k] = v
	}
	return c
}

// DefaultConstants returns the built-in constants. Keys match the variable
// keys the equation bank uses, so "c" stays free for specific heat.
func DefaultConstants() Constants {
	return NewConstants(map[string]float64{
		"R":        8.314462618,      // J/(mol·K)
		"h_planck": 6.62607015e-34,   // J·s
		"c0":       299792458.0,      // m/s
		"e_charge": 1.602176634e-19,  // J per eV
		"N_A":      6.02214076e23,    // 1/mol
		"R∞":       1.097373156816e7, // 1/m
		"E_H":      13.605693122994,  // eV
		"λ_CuKα":   1.54060e-10,      // m
		"λ_CuKα1":  1.54059e-10,      // m
		"λ_CuKα2":  1.54443e-10,      // m
		"λ_MoKα":   7.093e-11,        // m
	}, map[string]string{
		"R": "Ideal gas constant in SI units: 8.314462618 J/(mol·K). " +
			"If you use other units (e.g., L·atm), provide R yourself (e.g., 0.082057 L·atm/(mol·K)).",
		"N_A": "Avogadro constant: 6.02214076e23 1/mol.",
	})
}

// Value returns the constant stored under key.
func (c Constants) Value(key string) (float64, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is a constant.
func (c Constants) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Note returns the explanatory note for a constant, if any.
func (c Constants) Note(key string) string {
	return c.notes[key]
}

// Keys returns the constant keys in sorted order.
func (c Constants) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns constants overlaid with values. User values win.
func (c Constants) Merge(values Values) Values {
	out := make(Values, len(c.values)+len(values))
	for k, v := range c.values {
		out[k] = v
	}
	for k, v := range values {
		out[k] = v
	}
	return out
}

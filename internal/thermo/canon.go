package thermo

import (
	"strings"
	"unicode"

	"github.com/f3rmion/chemcalc/internal/reaction"
)

// aliases maps alternate notations, upper-cased, to the stored formula.
var aliases = map[string]string{
	"CLNO":     "NOCl",
	"ONCL":     "NOCl",
	"NOCL":     "NOCl",
	"HC3H5O2":  "C3H6O2",
	"C2H5COOH": "C3H6O2",
	"CH3CO2-":  "CH3COO-",
	"C2H5CO2-": "C2H5COO-",
	"C2H3O2-":  "CH3COO-",
	"HC2H3O2":  "CH3COOH",
	"CH3CO2H":  "CH3COOH",
	"CH3CH2OH": "C2H5OH",
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Canonical tidies a formula for lookup: known alternates map to the
// stored form and charges are rewritten as "SO4^2-", "Na+". Text that
// does not parse as a species is returned without whitespace.
func Canonical(formula string) string {
	s := strings.TrimSpace(formula)
	if s == "" {
		return s
	}
	flat := strings.ReplaceAll(stripSpace(s), "·", ".")
	if a, ok := aliases[strings.ToUpper(flat)]; ok {
		return a
	}
	tok, err := reaction.ParseToken(s)
	if err != nil || tok.Phase != reaction.PhaseNone || tok.Coefficient != 1 {
		return flat
	}
	return tok.Label()
}

package reaction

import (
	"maps"
	"regexp"

	"github.com/f3rmion/chemcalc/internal/formula"
)

// Term is a species with its count in an ionic equation.
type Term struct {
	Key    string
	Count  int
	Charge int
	Atoms  map[string]int
}

type ion struct {
	core   string
	charge int
	count  int
}

// strongElectrolytes lists acids and bases that split completely.
var strongElectrolytes = map[string][]ion{
	"HCl":     {{"H", 1, 1}, {"Cl", -1, 1}},
	"HBr":     {{"H", 1, 1}, {"Br", -1, 1}},
	"HI":      {{"H", 1, 1}, {"I", -1, 1}},
	"HNO3":    {{"H", 1, 1}, {"NO3", -1, 1}},
	"HClO3":   {{"H", 1, 1}, {"ClO3", -1, 1}},
	"HClO4":   {{"H", 1, 1}, {"ClO4", -1, 1}},
	"H2SO4":   {{"H", 1, 2}, {"SO4", -2, 1}},
	"LiOH":    {{"Li", 1, 1}, {"OH", -1, 1}},
	"NaOH":    {{"Na", 1, 1}, {"OH", -1, 1}},
	"KOH":     {{"K", 1, 1}, {"OH", -1, 1}},
	"RbOH":    {{"Rb", 1, 1}, {"OH", -1, 1}},
	"CsOH":    {{"Cs", 1, 1}, {"OH", -1, 1}},
	"Ca(OH)2": {{"Ca", 2, 1}, {"OH", -1, 2}},
	"Sr(OH)2": {{"Sr", 2, 1}, {"OH", -1, 2}},
	"Ba(OH)2": {{"Ba", 2, 1}, {"OH", -1, 2}},
}

type anion struct {
	formula string
	charge  int
}

// polyatomicAnions is ordered longest first so "HCO3" wins over "CO3".
// Hydroxide is left out: only the strong bases above split.
var polyatomicAnions = []anion{
	{"CH3COO", -1}, {"C2H3O2", -1},
	{"H2PO4", -1}, {"Cr2O7", -2},
	{"HPO4", -2}, {"HSO4", -1}, {"HCO3", -1}, {"ClO4", -1}, {"ClO3", -1},
	{"ClO2", -1}, {"MnO4", -1}, {"CrO4", -2}, {"C2O4", -2}, {"S2O3", -2},
	{"BrO3", -1},
	{"IO3", -1}, {"SCN", -1}, {"NO3", -1}, {"NO2", -1}, {"SO4", -2},
	{"SO3", -2}, {"PO4", -3}, {"CO3", -2}, {"ClO", -1},
	{"CN", -1},
}

var anionPatterns = func() [][2]*regexp.Regexp {
	out := make([][2]*regexp.Regexp, len(polyatomicAnions))
	for i, a := range polyatomicAnions {
		q := regexp.QuoteMeta(a.formula)
		out[i] = [2]*regexp.Regexp{
			regexp.MustCompile(`^(.+)\(` + q + `\)(\d*)$`),
			regexp.MustCompile(`^(.+)` + q + `$`),
		}
	}
	return out
}()

var (
	cationBlockRe = regexp.MustCompile(`^(?:\((NH4)\)|(NH4)|([A-Z][a-z]?))(\d*)$`)
	halideSaltRe  = regexp.MustCompile(`^(?:\(?(NH4)\)?|([A-Z][a-z]?))(\d*)(Cl|Br|I)(\d*)$`)
)

var (
	group1 = map[string]bool{"Li": true, "Na": true, "K": true, "Rb": true, "Cs": true, "Fr": true}
	group2 = map[string]bool{"Be": true, "Mg": true, "Ca": true, "Sr": true, "Ba": true, "Ra": true}

	nonmetals = map[string]bool{
		"H": true, "B": true, "C": true, "N": true, "O": true, "F": true,
		"Si": true, "P": true, "S": true, "Cl": true, "As": true, "Se": true,
		"Br": true, "Te": true, "I": true, "At": true,
		"He": true, "Ne": true, "Ar": true, "Kr": true, "Xe": true, "Rn": true,
	}
)

func isMetal(sym string) bool {
	return formula.IsElement(sym) && !nonmetals[sym]
}

// fixedCharge returns the charge of cations whose group pins it.
func fixedCharge(cation string) int {
	switch {
	case cation == "NH4", group1[cation]:
		return 1
	case group2[cation]:
		return 2
	}
	return 0
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return 1
	}
	return n
}

// salt splits cation(count) + anion(count) by charge neutrality. The
// cation charge comes from its group when known, otherwise from the
// anion total.
func salt(cation string, cationCount int, an anion, anionCount int) ([]ion, bool) {
	total := -an.charge * anionCount
	q := fixedCharge(cation)
	if q == 0 {
		if total%cationCount != 0 {
			return nil, false
		}
		q = total / cationCount
	}
	l := lcm(q, total)
	return []ion{
		{cation, q, l / q},
		{an.formula, an.charge, anionCount * (l / total)},
	}, true
}

func splitPolyatomic(core string) ([]ion, bool) {
	for i, an := range polyatomicAnions {
		paren, plain := anionPatterns[i][0], anionPatterns[i][1]
		var block string
		anionCount := 1
		if m := paren.FindStringSubmatch(core); m != nil {
			block, anionCount = m[1], atoi(m[2])
		} else if m := plain.FindStringSubmatch(core); m != nil {
			block = m[1]
		} else {
			continue
		}
		c := cationBlockRe.FindStringSubmatch(block)
		if c == nil {
			continue
		}
		cation := c[1] + c[2] + c[3]
		if cation != "NH4" && !isMetal(cation) {
			continue
		}
		if ions, ok := salt(cation, atoi(c[4]), an, anionCount); ok {
			return ions, true
		}
	}
	return nil, false
}

func splitHalide(core string) ([]ion, bool) {
	m := halideSaltRe.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	cation := m[1]
	if cation == "" {
		cation = m[2]
		if !isMetal(cation) {
			return nil, false
		}
	}
	return salt(cation, atoi(m[3]), anion{m[4], -1}, atoi(m[5]))
}

func ionTerm(in ion, scale int) Term {
	atoms, _ := formula.Counts(in.core)
	return Term{
		Key:    ionLabel(in.core, in.charge),
		Count:  in.count * scale,
		Charge: in.charge,
		Atoms:  atoms,
	}
}

func intact(t Token) Term {
	return Term{Key: t.Key(), Count: t.Coefficient, Charge: t.Charge, Atoms: maps.Clone(t.Atoms)}
}

// Dissociate splits an aqueous species into its ions, cations first. It
// reports false when the species stays intact. Rules, first match wins:
// solids, liquids and gases stay whole; charged species are already ions;
// strong acids and bases split; metal or ammonium salts of polyatomic
// anions split; metal halides split; anything else stays whole.
func Dissociate(t Token) ([]Term, bool) {
	switch t.Phase {
	case PhaseSolid, PhaseLiquid, PhaseGas:
		return []Term{intact(t)}, false
	}
	if t.Electron || t.Charge != 0 {
		return []Term{intact(t)}, false
	}
	if t.Phase != PhaseAqueous {
		return []Term{intact(t)}, false
	}

	ions, ok := strongElectrolytes[t.Core]
	if !ok {
		ions, ok = splitPolyatomic(t.Core)
	}
	if !ok {
		ions, ok = splitHalide(t.Core)
	}
	if !ok {
		return []Term{intact(t)}, false
	}
	out := make([]Term, len(ions))
	for i, in := range ions {
		out[i] = ionTerm(in, t.Coefficient)
	}
	return out, true
}

// DissociateText parses a single species and dissociates it.
func DissociateText(text string) ([]Term, bool, error) {
	t, err := ParseToken(text)
	if err != nil {
		return nil, false, err
	}
	terms, split := Dissociate(t)
	return terms, split, nil
}

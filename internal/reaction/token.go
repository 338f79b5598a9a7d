package reaction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/f3rmion/chemcalc/internal/formula"
)

// Phase is the state tag written after a species, e.g. (aq).
type Phase int

const (
	PhaseNone Phase = iota
	PhaseSolid
	PhaseLiquid
	PhaseGas
	PhaseAqueous
)

func (p Phase) String() string {
	switch p {
	case PhaseSolid:
		return "s"
	case PhaseLiquid:
		return "l"
	case PhaseGas:
		return "g"
	case PhaseAqueous:
		return "aq"
	}
	return ""
}

func parsePhase(s string) Phase {
	switch strings.ToLower(s) {
	case "s":
		return PhaseSolid
	case "l":
		return PhaseLiquid
	case "g":
		return PhaseGas
	case "aq":
		return PhaseAqueous
	}
	return PhaseNone
}

// Token is one species of a reaction as written: "2 Pt(NO3)2(aq)".
type Token struct {
	Coefficient int
	Core        string
	Phase       Phase
	Charge      int
	Atoms       map[string]int
	Electron    bool
}

// Label is the core formula with its charge, e.g. "Pt^2+" or "NO3-".
func (t Token) Label() string {
	if t.Electron {
		return "e-"
	}
	return ionLabel(t.Core, t.Charge)
}

// Key identifies the species across both sides of an equation. Ions are
// keyed by label alone, neutral species carry their phase tag.
func (t Token) Key() string {
	if t.Electron || t.Charge != 0 || t.Phase == PhaseNone {
		return t.Label()
	}
	return t.Core + "(" + t.Phase.String() + ")"
}

func (t Token) String() string {
	s := t.Label()
	if t.Phase != PhaseNone {
		s += "(" + t.Phase.String() + ")"
	}
	if t.Coefficient != 1 {
		s = strconv.Itoa(t.Coefficient) + " " + s
	}
	return s
}

// ionLabel renders core with a charge suffix: "Ag+", "Pt^2+", "SO4^2-".
func ionLabel(core string, charge int) string {
	switch {
	case charge == 0:
		return core
	case charge == 1:
		return core + "+"
	case charge == -1:
		return core + "-"
	case charge > 1:
		return fmt.Sprintf("%s^%d+", core, charge)
	default:
		return fmt.Sprintf("%s^%d-", core, -charge)
	}
}

var (
	coefficientRe = regexp.MustCompile(`^(\d+)\s*(.*)$`)
	phaseRe       = regexp.MustCompile(`(?i)^(.*?)\s*\((s|l|g|aq)\)$`)
	monatomicRe   = regexp.MustCompile(`^[A-Z][a-z]?$`)

	caretChargeRe    = regexp.MustCompile(`^(.+?)\^(\d*)([+-])$`)
	caretSignFirstRe = regexp.MustCompile(`^(.+?)\^([+-])(\d+)$`)
	parenChargeRe    = regexp.MustCompile(`^(.+?)\((\d*)([+-])\)$`)
	spacedChargeRe   = regexp.MustCompile(`^(.+?)\s+(\d*)([+-])$`)
	repeatedSignRe   = regexp.MustCompile(`^(.*[^+-])(\+{2,}|-{2,})$`)
	digitChargeRe    = regexp.MustCompile(`^(.*?)(\d+)([+-])$`)
	signChargeRe     = regexp.MustCompile(`^(.+?)([+-])$`)
)

var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
	'⁺': '+', '⁻': '-',
}

// normalizeSuperscripts turns "Fe³⁺" into "Fe^3+".
func normalizeSuperscripts(s string) string {
	var sb strings.Builder
	inSup := false
	for _, r := range s {
		if d, ok := superscripts[r]; ok {
			if !inSup {
				sb.WriteRune('^')
				inSup = true
			}
			sb.WriteRune(d)
			continue
		}
		inSup = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func signOf(s string) int {
	if s == "-" {
		return -1
	}
	return 1
}

func magnitude(digits string) int {
	if digits == "" {
		return 1
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return 1
	}
	return n
}

// splitCharge separates a trailing charge from a species core. Digits
// directly before a sign count as the charge only for monatomic ions, so
// "Fe3+" is iron(III) while "NO3-" is nitrate.
func splitCharge(s string) (string, int) {
	if m := caretChargeRe.FindStringSubmatch(s); m != nil {
		return m[1], signOf(m[3]) * magnitude(m[2])
	}
	if m := caretSignFirstRe.FindStringSubmatch(s); m != nil {
		return m[1], signOf(m[2]) * magnitude(m[3])
	}
	if m := parenChargeRe.FindStringSubmatch(s); m != nil {
		return m[1], signOf(m[3]) * magnitude(m[2])
	}
	if m := spacedChargeRe.FindStringSubmatch(s); m != nil {
		return m[1], signOf(m[3]) * magnitude(m[2])
	}
	if m := repeatedSignRe.FindStringSubmatch(s); m != nil {
		return m[1], signOf(m[2][:1]) * len(m[2])
	}
	if m := digitChargeRe.FindStringSubmatch(s); m != nil && m[1] != "" {
		if monatomicRe.MatchString(m[1]) {
			return m[1], signOf(m[3]) * magnitude(m[2])
		}
		return m[1] + m[2], signOf(m[3])
	}
	if m := signChargeRe.FindStringSubmatch(s); m != nil {
		return m[1], signOf(m[2])
	}
	return s, 0
}

func splitPhase(s string) (string, Phase, bool) {
	if m := phaseRe.FindStringSubmatch(s); m != nil {
		return m[1], parsePhase(m[2]), true
	}
	return s, PhaseNone, false
}

// ParseToken parses one species such as "3 H2", "Fe^3+(aq)", "SO4 2-" or
// "e-" and counts its atoms.
func ParseToken(raw string) (Token, error) {
	s := normalizeSuperscripts(strings.TrimSpace(raw))
	if s == "" {
		return Token{}, &ParseError{Kind: ErrBadSpecies, Input: raw, Msg: "empty species"}
	}

	tok := Token{Coefficient: 1}
	if m := coefficientRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n == 0 {
			return Token{}, &ParseError{Kind: ErrBadSpecies, Input: raw, Msg: "bad coefficient " + m[1]}
		}
		tok.Coefficient = n
		s = m[2]
	}

	s, phase, found := splitPhase(s)
	s, charge := splitCharge(strings.TrimSpace(s))
	if !found {
		s, phase, _ = splitPhase(s)
	}
	s = strings.TrimSpace(s)
	tok.Phase = phase
	tok.Charge = charge
	tok.Core = s

	if s == "e" && charge == -1 {
		tok.Electron = true
		tok.Atoms = map[string]int{}
		return tok, nil
	}
	if s == "" {
		return Token{}, &ParseError{Kind: ErrBadSpecies, Input: raw, Msg: "no formula"}
	}

	atoms, err := formula.Counts(s)
	if err != nil {
		return Token{}, &ParseError{Kind: ErrBadSpecies, Input: raw, Msg: err.Error(), Err: err}
	}
	tok.Atoms = atoms
	return tok, nil
}

// Package reaction parses chemical equations, splits aqueous electrolytes
// into ions and reduces equations to their balanced net ionic form.
package reaction

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrNoArrow        = errors.New("no reaction arrow")
	ErrEmptySide      = errors.New("empty side")
	ErrOneSided       = errors.New("equation has no reactants or no products")
	ErrBadSpecies     = errors.New("bad species")
	ErrNotBalanceable = errors.New("no unique balance")
)

// ParseError reports why an equation or species could not be read.
type ParseError struct {
	Kind  error
	Input string
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.Input)
	}
	return fmt.Sprintf("%v: %q: %s", e.Kind, e.Input, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Arrows accepted between the two sides, longest first so "<=>" is not
// read as "=".
var Arrows = []string{"<=>", "<->", "-->", "->", "=>", "⇌", "⇄", "⟷", "↔", "⟶", "→", "="}

// separatorRe matches a "+" that joins species rather than a charge sign.
var separatorRe = regexp.MustCompile(`\s+\+\s+`)

// taggedPlusRe finds a "+" glued to a phase tag, as in "NaCl(aq)+ KBr(aq)".
var taggedPlusRe = regexp.MustCompile(`\((s|l|g|aq)\)\+(\s)`)

// Reaction is an equation as written.
type Reaction struct {
	Reactants []Token
	Products  []Token
}

// Stoichiometry maps species keys to signed coefficients, negative for
// reactants and positive for products.
type Stoichiometry map[string]int

func splitArrow(text string) (string, string, bool) {
	for _, a := range Arrows {
		if left, right, ok := strings.Cut(text, a); ok {
			return left, right, true
		}
	}
	return "", "", false
}

func parseSide(text, side string) ([]Token, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{Kind: ErrEmptySide, Input: text, Msg: side}
	}
	var toks []Token
	text = taggedPlusRe.ReplaceAllString(text, "($1) +$2")
	for _, part := range separatorRe.Split(text, -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		tok, err := ParseToken(part)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	if len(toks) == 0 {
		return nil, &ParseError{Kind: ErrEmptySide, Input: text, Msg: side}
	}
	return toks, nil
}

// Parse reads "reactants -> products". Species on a side are separated by
// a "+" with whitespace on both sides.
func Parse(text string) (*Reaction, error) {
	left, right, ok := splitArrow(text)
	if !ok {
		return nil, &ParseError{Kind: ErrNoArrow, Input: text}
	}
	reactants, err := parseSide(left, "reactants")
	if err != nil {
		return nil, err
	}
	products, err := parseSide(right, "products")
	if err != nil {
		return nil, err
	}
	return &Reaction{Reactants: reactants, Products: products}, nil
}

// Stoichiometry sums coefficients per species key. Species that cancel out
// completely are dropped.
func (r *Reaction) Stoichiometry() Stoichiometry {
	st := Stoichiometry{}
	for _, t := range r.Reactants {
		st[t.Key()] -= t.Coefficient
	}
	for _, t := range r.Products {
		st[t.Key()] += t.Coefficient
	}
	for k, v := range st {
		if v == 0 {
			delete(st, k)
		}
	}
	return st
}

func (r *Reaction) String() string {
	return joinTokens(r.Reactants) + " -> " + joinTokens(r.Products)
}

func joinTokens(toks []Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

// ParseReaction parses text into signed coefficients:
// "N2 + 3H2 -> 2NH3" gives {N2: -1, H2: -3, NH3: 2}.
func ParseReaction(text string) (Stoichiometry, error) {
	r, err := Parse(text)
	if err != nil {
		return nil, err
	}
	st := r.Stoichiometry()
	var neg, pos bool
	for _, v := range st {
		if v < 0 {
			neg = true
		} else {
			pos = true
		}
	}
	if !neg || !pos {
		return nil, &ParseError{Kind: ErrOneSided, Input: text}
	}
	return st, nil
}

// Species lists the species keys in the order they were written, reactants
// first, each once.
func (r *Reaction) Species() []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range append(slices.Clone(r.Reactants), r.Products...) {
		if k := t.Key(); !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

package reaction

import (
	"maps"
	"slices"
)

// Balance assigns the smallest positive integer coefficients that conserve
// every element and the total charge. It fails with ErrNotBalanceable when
// the balance is not unique or would drop a species.
func Balance(text string) (*Reaction, error) {
	rx, err := Parse(text)
	if err != nil {
		return nil, err
	}
	all := append(slices.Clone(rx.Reactants), rx.Products...)

	elemSet := map[string]bool{}
	charged := false
	for _, t := range all {
		for el := range t.Atoms {
			elemSet[el] = true
		}
		charged = charged || t.Charge != 0
	}
	elems := slices.Sorted(maps.Keys(elemSet))
	rows := len(elems)
	if charged {
		rows++
	}

	a := make([][]int, rows)
	for i := range a {
		a[i] = make([]int, len(all))
	}
	for j, t := range all {
		sign := 1
		if j >= len(rx.Reactants) {
			sign = -1
		}
		for i, el := range elems {
			a[i][j] = sign * t.Atoms[el]
		}
		if charged {
			a[rows-1][j] = sign * t.Charge
		}
	}

	w, ok := balanceColumns(a)
	if !ok || slices.Contains(w, 0) {
		return nil, &ParseError{Kind: ErrNotBalanceable, Input: text}
	}
	out := &Reaction{
		Reactants: slices.Clone(rx.Reactants),
		Products:  slices.Clone(rx.Products),
	}
	for j := range all {
		if j < len(out.Reactants) {
			out.Reactants[j].Coefficient = w[j]
		} else {
			out.Products[j-len(out.Reactants)].Coefficient = w[j]
		}
	}
	return out, nil
}

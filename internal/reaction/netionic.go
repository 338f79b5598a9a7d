package reaction

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Ionic is an equation of terms, used for the total and net ionic forms.
type Ionic struct {
	Left  []Term
	Right []Term
}

func formatTerms(ts []Term) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		if t.Count == 1 {
			parts[i] = t.Key
		} else {
			parts[i] = strconv.Itoa(t.Count) + " " + t.Key
		}
	}
	return strings.Join(parts, " + ")
}

func (e Ionic) String() string {
	return formatTerms(e.Left) + " -> " + formatTerms(e.Right)
}

// Empty reports whether both sides have cancelled away.
func (e Ionic) Empty() bool {
	return len(e.Left) == 0 && len(e.Right) == 0
}

// NetIonicResult carries every stage of the reduction.
type NetIonicResult struct {
	Molecular   *Reaction
	TotalIonic  Ionic
	Spectators  []Term
	Net         Ionic
	Dissociated bool
	NoReaction  bool
	// Balanced is false when the net equation kept its cancelled counts
	// because no unique positive balance exists.
	Balanced bool
}

func (r *NetIonicResult) String() string {
	if r.NoReaction {
		return "No net reaction (all species are spectators)."
	}
	return r.Net.String()
}

// merge folds terms with the same key, keeping first-seen order.
func merge(ts []Term) []Term {
	var out []Term
	idx := map[string]int{}
	for _, t := range ts {
		if i, ok := idx[t.Key]; ok {
			out[i].Count += t.Count
			continue
		}
		idx[t.Key] = len(out)
		t.Atoms = maps.Clone(t.Atoms)
		out = append(out, t)
	}
	return out
}

func expand(toks []Token) ([]Term, bool) {
	var out []Term
	split := false
	for _, t := range toks {
		terms, ok := Dissociate(t)
		split = split || ok
		out = append(out, terms...)
	}
	return merge(out), split
}

// cancel removes species present on both sides by their common count.
func cancel(left, right []Term) ([]Term, []Term, []Term) {
	l := slices.Clone(left)
	r := slices.Clone(right)
	var spectators []Term
	for i := range l {
		for j := range r {
			if l[i].Key != r[j].Key {
				continue
			}
			m := min(l[i].Count, r[j].Count)
			if m == 0 {
				continue
			}
			s := l[i]
			s.Count = m
			spectators = append(spectators, s)
			l[i].Count -= m
			r[j].Count -= m
		}
	}
	gone := func(t Term) bool { return t.Count == 0 }
	return slices.DeleteFunc(l, gone), slices.DeleteFunc(r, gone), spectators
}

// rebalance solves the element and charge balance of the residue. Terms
// that receive a zero weight are dropped.
func rebalance(e Ionic) (Ionic, bool) {
	all := append(slices.Clone(e.Left), e.Right...)
	elemSet := map[string]bool{}
	for _, t := range all {
		for el := range t.Atoms {
			elemSet[el] = true
		}
	}
	elems := slices.Sorted(maps.Keys(elemSet))

	a := make([][]int, len(elems)+1)
	for i := range a {
		a[i] = make([]int, len(all))
	}
	for j, t := range all {
		sign := 1
		if j >= len(e.Left) {
			sign = -1
		}
		for i, el := range elems {
			a[i][j] = sign * t.Atoms[el]
		}
		a[len(elems)][j] = sign * t.Charge
	}

	w, ok := balanceColumns(a)
	if !ok {
		return e, false
	}
	var out Ionic
	for j, t := range all {
		if w[j] == 0 {
			continue
		}
		t.Count = w[j]
		if j < len(e.Left) {
			out.Left = append(out.Left, t)
		} else {
			out.Right = append(out.Right, t)
		}
	}
	if len(out.Left) == 0 || len(out.Right) == 0 {
		return e, false
	}
	return out, true
}

// NetIonic reduces a molecular equation to its net ionic form. Aqueous
// strong electrolytes are split, spectators cancelled and the residue
// rebalanced for atoms and charge. When no unique balance exists the
// cancelled counts are kept as they are.
func NetIonic(text string) (*NetIonicResult, error) {
	rx, err := Parse(text)
	if err != nil {
		return nil, err
	}
	left, splitL := expand(rx.Reactants)
	right, splitR := expand(rx.Products)

	res := &NetIonicResult{
		Molecular:   rx,
		TotalIonic:  Ionic{Left: left, Right: right},
		Dissociated: splitL || splitR,
	}
	l, r, spectators := cancel(left, right)
	res.Spectators = spectators
	res.Net = Ionic{Left: l, Right: r}

	if res.Net.Empty() {
		res.NoReaction = true
		return res, nil
	}
	if !res.Dissociated {
		return res, nil
	}
	res.Net, res.Balanced = rebalance(res.Net)
	return res, nil
}

package reaction

import "math/big"

// nullspace returns a basis of {x : Ax = 0} by exact Gauss-Jordan
// elimination over the rationals.
func nullspace(a [][]int) [][]*big.Rat {
	rows := len(a)
	if rows == 0 {
		return nil
	}
	cols := len(a[0])
	m := make([][]*big.Rat, rows)
	for i, row := range a {
		m[i] = make([]*big.Rat, cols)
		for j, v := range row {
			m[i][j] = big.NewRat(int64(v), 1)
		}
	}

	var pivots []int
	r := 0
	for c := 0; c < cols && r < rows; c++ {
		p := -1
		for i := r; i < rows; i++ {
			if m[i][c].Sign() != 0 {
				p = i
				break
			}
		}
		if p < 0 {
			continue
		}
		m[r], m[p] = m[p], m[r]

		inv := new(big.Rat).Inv(m[r][c])
		for j := c; j < cols; j++ {
			m[r][j].Mul(m[r][j], inv)
		}
		for i := 0; i < rows; i++ {
			if i == r || m[i][c].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(m[i][c])
			for j := c; j < cols; j++ {
				m[i][j].Sub(m[i][j], new(big.Rat).Mul(f, m[r][j]))
			}
		}
		pivots = append(pivots, c)
		r++
	}

	isPivot := make([]bool, cols)
	for _, c := range pivots {
		isPivot[c] = true
	}
	var basis [][]*big.Rat
	for f := 0; f < cols; f++ {
		if isPivot[f] {
			continue
		}
		v := make([]*big.Rat, cols)
		for j := range v {
			v[j] = new(big.Rat)
		}
		v[f].SetInt64(1)
		for i, c := range pivots {
			v[c].Neg(m[i][f])
		}
		basis = append(basis, v)
	}
	return basis
}

// integerVector scales v by the lcm of its denominators and divides out
// the common factor. The sign is flipped so the first nonzero entry is
// positive.
func integerVector(v []*big.Rat) []int {
	l := big.NewInt(1)
	for _, x := range v {
		d := x.Denom()
		g := new(big.Int).GCD(nil, nil, l, d)
		l.Mul(l, new(big.Int).Quo(d, g))
	}
	ints := make([]*big.Int, len(v))
	g := new(big.Int)
	for i, x := range v {
		n := new(big.Int).Mul(x.Num(), new(big.Int).Quo(l, x.Denom()))
		ints[i] = n
		g.GCD(nil, nil, g, new(big.Int).Abs(n))
	}
	neg := false
	for _, n := range ints {
		if n.Sign() != 0 {
			neg = n.Sign() < 0
			break
		}
	}
	out := make([]int, len(v))
	for i, n := range ints {
		if g.Sign() != 0 {
			n.Quo(n, g)
		}
		if neg {
			n.Neg(n)
		}
		out[i] = int(n.Int64())
	}
	return out
}

// balanceColumns finds the unique positive integer weights making every
// row of the element and charge matrix sum to zero. Columns whose weight
// is zero are reported as such. It fails when the solution space is not
// one dimensional or a weight comes out negative.
func balanceColumns(a [][]int) ([]int, bool) {
	basis := nullspace(a)
	if len(basis) != 1 {
		return nil, false
	}
	w := integerVector(basis[0])
	for _, x := range w {
		if x < 0 {
			return nil, false
		}
	}
	return w, true
}

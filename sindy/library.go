package sindy

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Library describes the candidate feature functions used to express the
// right-hand side of the identified dynamics: multivariate polynomial
// terms up to a total degree, optionally a constant bias and elementwise
// trigonometric terms.
type Library struct {
	// Degree is the maximal total polynomial degree, at least one.
	Degree int

	// Bias includes the constant feature.
	Bias bool

	// Trig appends sin and cos of every variable.
	Trig bool
}

// DefaultLibrary returns polynomials up to degree two with a bias term.
func DefaultLibrary() Library {
	return Library{Degree: 2, Bias: true, Trig: false}
}

// Transform evaluates the library on every row of x, producing the
// design matrix Theta(x) and the feature names in a fixed graded
// lexicographic order.
func (l Library) Transform(x *mat.Dense) (*mat.Dense, []string, error) {
	if l.Degree < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, l.Degree)
	}
	rows, dim := x.Dims()
	if rows == 0 || dim == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", ErrTooFewSamples)
	}

	exps := l.exponents(dim)
	names := l.featureNames(dim, exps)
	theta := mat.NewDense(rows, len(names), nil)

	point := make([]float64, dim)
	for r := 0; r < rows; r++ {
		mat.Row(point, r, x)
		col := 0
		for _, e := range exps {
			theta.Set(r, col, monomial(point, e))
			col++
		}
		if l.Trig {
			for d := 0; d < dim; d++ {
				theta.Set(r, col, math.Sin(point[d]))
				col++
			}
			for d := 0; d < dim; d++ {
				theta.Set(r, col, math.Cos(point[d]))
				col++
			}
		}
	}

	return theta, names, nil
}

// Size returns the number of features the library produces for inputs
// of the given dimension.
func (l Library) Size(dim int) int {
	n := len(l.exponents(dim))
	if l.Trig {
		n += 2 * dim
	}

	return n
}

// exponents enumerates the exponent vectors of all monomials with total
// degree between one (or zero, with Bias) and Degree, graded
// lexicographically.
func (l Library) exponents(dim int) [][]int {
	var out [][]int
	lowest := 1
	if l.Bias {
		lowest = 0
	}
	for total := lowest; total <= l.Degree; total++ {
		out = appendExponents(out, make([]int, dim), 0, total)
	}

	return out
}

// appendExponents fills positions pos.. of the scratch exponent vector
// with all splits of the remaining total degree, appending each
// completed vector.
func appendExponents(out [][]int, scratch []int, pos, remaining int) [][]int {
	if pos == len(scratch)-1 {
		scratch[pos] = remaining
		e := make([]int, len(scratch))
		copy(e, scratch)

		return append(out, e)
	}
	for d := remaining; d >= 0; d-- {
		scratch[pos] = d
		out = appendExponents(out, scratch, pos+1, remaining-d)
	}
	scratch[pos] = 0

	return out
}

// monomial evaluates prod_i point[i]^e[i].
func monomial(point []float64, e []int) float64 {
	v := 1.0
	for i, p := range e {
		for k := 0; k < p; k++ {
			v *= point[i]
		}
	}

	return v
}

// featureNames renders human-readable names for the library features,
// matching the column order of Transform.
func (l Library) featureNames(dim int, exps [][]int) []string {
	names := make([]string, 0, l.Size(dim))
	for _, e := range exps {
		names = append(names, monomialName(e))
	}
	if l.Trig {
		for d := 0; d < dim; d++ {
			names = append(names, fmt.Sprintf("sin(x%d)", d))
		}
		for d := 0; d < dim; d++ {
			names = append(names, fmt.Sprintf("cos(x%d)", d))
		}
	}

	return names
}

// monomialName renders an exponent vector, e.g. "x0^2 x2" or "1".
func monomialName(e []int) string {
	var parts []string
	for i, p := range e {
		switch {
		case p == 1:
			parts = append(parts, fmt.Sprintf("x%d", i))
		case p > 1:
			parts = append(parts, fmt.Sprintf("x%d^%d", i, p))
		}
	}
	if len(parts) == 0 {
		return "1"
	}

	return strings.Join(parts, " ")
}

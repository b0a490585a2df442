package sindy

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Estimator identifies sparse dynamics x' = f(x) from sampled state
// data, expressing f in the feature library and selecting terms with
// the STLSQ optimizer.
type Estimator struct {
	// Library supplies the candidate feature functions.
	Library Library

	// Optimizer performs the sparse regression.
	Optimizer STLSQ

	// StepSize is the sampling interval used to approximate derivatives
	// by central finite differences when Fit receives no derivative
	// data. Ignored when derivatives are supplied.
	StepSize float64
}

// DefaultEstimator pairs the default library with the default optimizer.
func DefaultEstimator() Estimator {
	return Estimator{Library: DefaultLibrary(), Optimizer: DefaultSTLSQ()}
}

// Fit identifies the dynamics from state samples x (rows are time
// steps, columns are state dimensions). xDot supplies the matching
// derivative samples; pass nil to approximate them by central finite
// differences at the estimator's StepSize, which requires at least
// three samples.
func (e Estimator) Fit(x, xDot *mat.Dense) (*Model, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil state data", ErrTooFewSamples)
	}
	rows, dim := x.Dims()

	if xDot == nil {
		if e.StepSize <= 0 {
			return nil, ErrMissingDerivatives
		}
		if rows < 3 {
			return nil, fmt.Errorf("%w: %d samples, need 3 for finite differences", ErrTooFewSamples, rows)
		}
		xDot = finiteDifferences(x, e.StepSize)
	}

	dRows, dDim := xDot.Dims()
	if dRows != rows || dDim != dim {
		return nil, fmt.Errorf("%w: state %dx%d vs derivatives %dx%d", ErrDimensionMismatch, rows, dim, dRows, dDim)
	}

	theta, names, err := e.Library.Transform(x)
	if err != nil {
		return nil, err
	}
	coefs, err := e.Optimizer.fit(theta, xDot)
	if err != nil {
		return nil, err
	}

	return &Model{coefs: coefs, names: names, lib: e.Library, dim: dim}, nil
}

// finiteDifferences approximates derivatives with second-order central
// differences, one-sided at the boundaries.
func finiteDifferences(x *mat.Dense, h float64) *mat.Dense {
	rows, dim := x.Dims()
	out := mat.NewDense(rows, dim, nil)
	for d := 0; d < dim; d++ {
		out.Set(0, d, (x.At(1, d)-x.At(0, d))/h)
		for t := 1; t < rows-1; t++ {
			out.Set(t, d, (x.At(t+1, d)-x.At(t-1, d))/(2*h))
		}
		out.Set(rows-1, d, (x.At(rows-1, d)-x.At(rows-2, d))/h)
	}

	return out
}

// Model is an identified sparse dynamical system: a coefficient matrix
// over the library features, one column per state dimension.
type Model struct {
	coefs *mat.Dense
	names []string
	lib   Library
	dim   int
}

// Coefficients returns a read-only view of the coefficient matrix
// (features x state dimensions).
func (m *Model) Coefficients() mat.Matrix {
	return m.coefs
}

// FeatureNames returns the library feature names matching the
// coefficient rows.
func (m *Model) FeatureNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)

	return out
}

// Predict evaluates the identified right-hand side at a single point.
func (m *Model) Predict(point []float64) ([]float64, error) {
	if len(point) != m.dim {
		return nil, fmt.Errorf("%w: point has %d entries, model expects %d", ErrDimensionMismatch, len(point), m.dim)
	}

	row := mat.NewDense(1, m.dim, append([]float64(nil), point...))
	theta, _, err := m.lib.Transform(row)
	if err != nil {
		return nil, err
	}

	out := make([]float64, m.dim)
	features, _ := m.coefs.Dims()
	for d := 0; d < m.dim; d++ {
		var s float64
		for f := 0; f < features; f++ {
			s += theta.At(0, f) * m.coefs.At(f, d)
		}
		out[d] = s
	}

	return out, nil
}

// Equations renders the identified system as human-readable strings,
// one per state dimension. varNames overrides the derivative labels;
// pass nil for x0..xN defaults.
func (m *Model) Equations(varNames []string) []string {
	out := make([]string, m.dim)
	features, _ := m.coefs.Dims()
	for d := 0; d < m.dim; d++ {
		label := fmt.Sprintf("x%d", d)
		if d < len(varNames) {
			label = varNames[d]
		}

		var terms []string
		for f := 0; f < features; f++ {
			c := m.coefs.At(f, d)
			if c == 0 {
				continue
			}
			if m.names[f] == "1" {
				terms = append(terms, fmt.Sprintf("%+.3f", c))
			} else {
				terms = append(terms, fmt.Sprintf("%+.3f %s", c, m.names[f]))
			}
		}
		if len(terms) == 0 {
			terms = []string{"0"}
		}
		out[d] = fmt.Sprintf("%s' = %s", label, strings.Join(terms, " "))
	}

	return out
}

// Score computes the coefficient of determination R^2 of the model's
// derivative predictions against reference derivatives, pooled over all
// dimensions. A perfect fit scores one.
func (m *Model) Score(x, xDot *mat.Dense) (float64, error) {
	rows, dim := x.Dims()
	dRows, dDim := xDot.Dims()
	if rows != dRows || dim != dDim || dim != m.dim {
		return 0, fmt.Errorf("%w: state %dx%d vs derivatives %dx%d", ErrDimensionMismatch, rows, dim, dRows, dDim)
	}

	theta, _, err := m.lib.Transform(x)
	if err != nil {
		return 0, err
	}

	var mean float64
	for t := 0; t < rows; t++ {
		for d := 0; d < dim; d++ {
			mean += xDot.At(t, d)
		}
	}
	mean /= float64(rows * dim)

	features, _ := m.coefs.Dims()
	var ssRes, ssTot float64
	for t := 0; t < rows; t++ {
		for d := 0; d < dim; d++ {
			var pred float64
			for f := 0; f < features; f++ {
				pred += theta.At(t, f) * m.coefs.At(f, d)
			}
			r := xDot.At(t, d) - pred
			ssRes += r * r
			v := xDot.At(t, d) - mean
			ssTot += v * v
		}
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}

		return 0, nil
	}

	return 1 - ssRes/ssTot, nil
}

package datasets

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// UniformEdges returns bins+1 ascending edges spanning [lo, hi], the
// boundaries of bins equal-width intervals.
func UniformEdges(lo, hi float64, bins int) ([]float64, error) {
	if bins < 1 || hi <= lo {
		return nil, fmt.Errorf("%w: %d bins on [%v, %v]", ErrInvalidBins, bins, lo, hi)
	}

	return floats.Span(make([]float64, bins+1), lo, hi), nil
}

// Quantize1D maps every value to the index of its bin on the given
// ascending edge grid, producing a discrete trajectory. Values outside
// the grid clamp to the first or last bin.
func Quantize1D(xs, edges []float64) ([]int, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 edges, got %d", ErrInvalidBins, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("%w: edges not strictly ascending at index %d", ErrInvalidBins, i)
		}
	}

	last := len(edges) - 2
	out := make([]int, len(xs))
	for i, x := range xs {
		bin := sort.SearchFloat64s(edges, x) - 1
		if bin < 0 {
			bin = 0
		}
		if bin > last {
			bin = last
		}
		out[i] = bin
	}

	return out, nil
}

// TimeshiftedSplit concatenates the (x_t, x_{t+lag}) pairs of every
// trajectory into two aligned matrices. Pairs never span trajectory
// boundaries; trajectories shorter than lag+1 contribute nothing.
func TimeshiftedSplit(lag int, trajs ...*mat.Dense) (x, y *mat.Dense, err error) {
	if lag < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidLag, lag)
	}

	total, dim := 0, 0
	for _, tr := range trajs {
		rows, d := tr.Dims()
		if dim == 0 {
			dim = d
		} else if d != dim {
			return nil, nil, fmt.Errorf("%w: trajectories mix %d and %d columns", ErrDimensionMismatch, dim, d)
		}
		if rows > lag {
			total += rows - lag
		}
	}
	if total == 0 {
		return nil, nil, fmt.Errorf("%w: lag %d leaves no pairs", ErrInvalidLag, lag)
	}

	x = mat.NewDense(total, dim, nil)
	y = mat.NewDense(total, dim, nil)
	row := make([]float64, dim)
	at := 0
	for _, tr := range trajs {
		rows, _ := tr.Dims()
		for t := 0; t+lag < rows; t++ {
			mat.Row(row, t, tr)
			x.SetRow(at, row)
			mat.Row(row, t+lag, tr)
			y.SetRow(at, row)
			at++
		}
	}

	return x, y, nil
}

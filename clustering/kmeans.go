package clustering

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KMeans partitions points into K clusters by Lloyd iteration with
// k-means++ seeding. A fixed Seed makes the fit deterministic.
type KMeans struct {
	// K is the number of clusters.
	K int

	// Tolerance stops the iteration once no center moves farther than
	// this between rounds. Values at or below zero use DefaultTolerance.
	Tolerance float64

	// MaxIterations caps Lloyd rounds. Values at or below zero use
	// DefaultMaxIterations.
	MaxIterations int

	// Seed initializes the k-means++ sampler.
	Seed uint64
}

// NewKMeans returns an estimator for k clusters with default
// convergence settings.
func NewKMeans(k int, seed uint64) KMeans {
	return KMeans{K: k, Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations, Seed: seed}
}

// Fit clusters the rows of x and returns the fitted model.
func (km KMeans) Fit(x *mat.Dense) (*Model, error) {
	if km.K < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, km.K)
	}
	rows, dim := 0, 0
	if x != nil {
		rows, dim = x.Dims()
	}
	if rows < km.K {
		return nil, fmt.Errorf("%w: %d points for %d clusters", ErrTooFewPoints, rows, km.K)
	}

	tol := km.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	maxIter := km.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	rng := rand.New(rand.NewPCG(km.Seed, 0x9e3779b97f4a7c15))
	centers := seedCenters(x, km.K, rng)

	point := make([]float64, dim)
	center := make([]float64, dim)
	labels := make([]int, rows)
	counts := make([]int, km.K)
	sums := mat.NewDense(km.K, dim, nil)

	for iter := 0; iter < maxIter; iter++ {
		// Assignment step.
		for r := 0; r < rows; r++ {
			mat.Row(point, r, x)
			labels[r] = nearest(point, centers, center)
		}

		// Update step.
		sums.Zero()
		for i := range counts {
			counts[i] = 0
		}
		for r := 0; r < rows; r++ {
			c := labels[r]
			counts[c]++
			for d := 0; d < dim; d++ {
				sums.Set(c, d, sums.At(c, d)+x.At(r, d))
			}
		}

		moved := 0.0
		for c := 0; c < km.K; c++ {
			if counts[c] == 0 {
				// Reseed an empty cluster at the point farthest from its
				// center, keeping K clusters alive.
				far := farthest(x, centers, labels, point, center)
				mat.Row(center, far, x)
			} else {
				for d := 0; d < dim; d++ {
					center[d] = sums.At(c, d) / float64(counts[c])
				}
			}
			mat.Row(point, c, centers)
			if d := floats.Distance(point, center, 2); d > moved {
				moved = d
			}
			centers.SetRow(c, center)
		}
		if moved <= tol {
			break
		}
	}

	// Final assignment against the converged centers.
	for r := 0; r < rows; r++ {
		mat.Row(point, r, x)
		labels[r] = nearest(point, centers, center)
	}

	m := &Model{centers: centers, dim: dim}
	m.inertia = m.inertiaOf(x, labels)

	return m, nil
}

// seedCenters runs k-means++ initialization: the first center uniform,
// each next sampled proportional to squared distance from the chosen
// ones.
func seedCenters(x *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	rows, dim := x.Dims()
	centers := mat.NewDense(k, dim, nil)

	point := make([]float64, dim)
	center := make([]float64, dim)
	mat.Row(point, rng.IntN(rows), x)
	centers.SetRow(0, point)

	dists := make([]float64, rows)
	for i := range dists {
		dists[i] = math.Inf(1)
	}
	for c := 1; c < k; c++ {
		mat.Row(center, c-1, centers)
		total := 0.0
		for r := 0; r < rows; r++ {
			mat.Row(point, r, x)
			d := floats.Distance(point, center, 2)
			if d2 := d * d; d2 < dists[r] {
				dists[r] = d2
			}
			total += dists[r]
		}

		pick := rows - 1
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for r := 0; r < rows; r++ {
				acc += dists[r]
				if acc >= target {
					pick = r
					break
				}
			}
		}
		mat.Row(point, pick, x)
		centers.SetRow(c, point)
	}

	return centers
}

// nearest returns the index of the center closest to point, using
// scratch as a row buffer.
func nearest(point []float64, centers *mat.Dense, scratch []float64) int {
	k, _ := centers.Dims()
	best, bestDist := 0, math.Inf(1)
	for c := 0; c < k; c++ {
		mat.Row(scratch, c, centers)
		if d := floats.Distance(point, scratch, 2); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}

// farthest returns the row of x with the largest distance to its
// assigned center.
func farthest(x *mat.Dense, centers *mat.Dense, labels []int, point, scratch []float64) int {
	rows, _ := x.Dims()
	best, bestDist := 0, -1.0
	for r := 0; r < rows; r++ {
		mat.Row(point, r, x)
		mat.Row(scratch, labels[r], centers)
		if d := floats.Distance(point, scratch, 2); d > bestDist {
			best, bestDist = r, d
		}
	}

	return best
}

// Model is a fitted k-means clustering: the centers and the final
// within-cluster sum of squared distances.
type Model struct {
	centers *mat.Dense
	inertia float64
	dim     int
}

// Centers returns a read-only view of the cluster centers, one per row.
func (m *Model) Centers() mat.Matrix {
	return m.centers
}

// Inertia returns the within-cluster sum of squared distances of the
// fitted data.
func (m *Model) Inertia() float64 {
	return m.inertia
}

// Assign labels every row of x with the index of its nearest center,
// producing a discrete trajectory when the rows are ordered in time.
func (m *Model) Assign(x *mat.Dense) ([]int, error) {
	rows, dim := x.Dims()
	if dim != m.dim {
		return nil, fmt.Errorf("%w: points have %d columns, centers have %d", ErrDimensionMismatch, dim, m.dim)
	}

	point := make([]float64, dim)
	scratch := make([]float64, dim)
	out := make([]int, rows)
	for r := 0; r < rows; r++ {
		mat.Row(point, r, x)
		out[r] = nearest(point, m.centers, scratch)
	}

	return out, nil
}

func (m *Model) inertiaOf(x *mat.Dense, labels []int) float64 {
	rows, dim := x.Dims()
	point := make([]float64, dim)
	scratch := make([]float64, dim)
	var total float64
	for r := 0; r < rows; r++ {
		mat.Row(point, r, x)
		mat.Row(scratch, labels[r], m.centers)
		d := floats.Distance(point, scratch, 2)
		total += d * d
	}

	return total
}

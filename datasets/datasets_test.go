package datasets_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagtime/lagtime/datasets"
)

// decay is the linear test system x' = -x.
type decay struct{}

func (decay) Dim() int               { return 1 }
func (decay) Drift(dst, x []float64) { dst[0] = -x[0] }

// TestDoubleWell1D_Drift checks the fixed points and the direction of
// the restoring force inside each well.
func TestDoubleWell1D_Drift(t *testing.T) {
	sys := datasets.DefaultDoubleWell1D()
	out := make([]float64, 1)

	for _, fixed := range []float64{-1, 0, 1} {
		sys.Drift(out, []float64{fixed})
		assert.InDelta(t, 0, out[0], 1e-12, "drift at %v", fixed)
	}

	sys.Drift(out, []float64{0.5})
	assert.Positive(t, out[0], "right well pulls toward +1")
	sys.Drift(out, []float64{-0.5})
	assert.Negative(t, out[0], "left well pulls toward -1")
}

// TestOrnsteinUhlenbeck_Relaxation integrates the noiseless process and
// expects monotone decay toward the mean.
func TestOrnsteinUhlenbeck_Relaxation(t *testing.T) {
	sys := datasets.OrnsteinUhlenbeck{Theta: 1, Mean: 0, Sigma: 0}
	em := datasets.EulerMaruyama{StepSize: 0.01, Seed: 1}

	traj, err := em.Trajectory(sys, []float64{2}, 500)
	require.NoError(t, err)

	rows, cols := traj.Dims()
	require.Equal(t, 500, rows)
	require.Equal(t, 1, cols)
	for r := 1; r < rows; r++ {
		assert.Less(t, traj.At(r, 0), traj.At(r-1, 0), "row %d", r)
	}
	assert.Greater(t, traj.At(rows-1, 0), 0.0)
	assert.Less(t, traj.At(rows-1, 0), 0.05)
}

// TestEulerMaruyama_SeedDeterminism requires identical trajectories for
// identical seeds and different ones otherwise.
func TestEulerMaruyama_SeedDeterminism(t *testing.T) {
	sys := datasets.DefaultDoubleWell1D()
	x0 := []float64{1}

	a, err := datasets.EulerMaruyama{StepSize: 0.01, Seed: 7}.Trajectory(sys, x0, 200)
	require.NoError(t, err)
	b, err := datasets.EulerMaruyama{StepSize: 0.01, Seed: 7}.Trajectory(sys, x0, 200)
	require.NoError(t, err)
	c, err := datasets.EulerMaruyama{StepSize: 0.01, Seed: 8}.Trajectory(sys, x0, 200)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a, b), "same seed must reproduce the trajectory")
	assert.False(t, mat.Equal(a, c), "different seeds must diverge")
}

// TestEulerMaruyama_Stride subsamples a noiseless trajectory and
// compares against the unstrided reference.
func TestEulerMaruyama_Stride(t *testing.T) {
	sys := datasets.OrnsteinUhlenbeck{Theta: 1, Mean: 0, Sigma: 0}
	x0 := []float64{1}

	full, err := datasets.EulerMaruyama{StepSize: 0.05, Seed: 1}.Trajectory(sys, x0, 9)
	require.NoError(t, err)
	strided, err := datasets.EulerMaruyama{StepSize: 0.05, Stride: 2, Seed: 1}.Trajectory(sys, x0, 5)
	require.NoError(t, err)

	for r := 0; r < 5; r++ {
		assert.InDelta(t, full.At(2*r, 0), strided.At(r, 0), 1e-14, "row %d", r)
	}
}

// TestEulerMaruyama_Errors covers the validation paths.
func TestEulerMaruyama_Errors(t *testing.T) {
	sys := datasets.DefaultDoubleWell1D()

	_, err := datasets.EulerMaruyama{StepSize: 0}.Trajectory(sys, []float64{0}, 10)
	assert.ErrorIs(t, err, datasets.ErrInvalidStepSize)

	_, err = datasets.EulerMaruyama{StepSize: 0.01}.Trajectory(sys, []float64{0}, 0)
	assert.ErrorIs(t, err, datasets.ErrInvalidStepCount)

	_, err = datasets.EulerMaruyama{StepSize: 0.01}.Trajectory(sys, []float64{0, 0}, 10)
	assert.ErrorIs(t, err, datasets.ErrDimensionMismatch)
}

// TestRK4Trajectory_ExponentialDecay integrates x' = -x over a unit
// interval; fourth order accuracy makes the endpoint essentially exact.
func TestRK4Trajectory_ExponentialDecay(t *testing.T) {
	traj, err := datasets.RK4Trajectory(decay{}, []float64{1}, 11, 0.1)
	require.NoError(t, err)

	rows, _ := traj.Dims()
	require.Equal(t, 11, rows)
	assert.InDelta(t, math.Exp(-1), traj.At(10, 0), 1e-7)
}

// TestRK4Trajectory_LorenzBounded checks that the chaotic attractor
// stays on its bounded invariant set.
func TestRK4Trajectory_LorenzBounded(t *testing.T) {
	traj, err := datasets.RK4Trajectory(datasets.DefaultLorenz(), []float64{1, 1, 1}, 2000, 0.01)
	require.NoError(t, err)

	rows, cols := traj.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := traj.At(r, c)
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "row %d col %d", r, c)
			require.Less(t, math.Abs(v), 100.0, "row %d col %d", r, c)
		}
	}

	_, err = datasets.RK4Trajectory(decay{}, []float64{1}, 10, -1)
	assert.ErrorIs(t, err, datasets.ErrInvalidStepSize)
}

// TestUniformEdges builds a small grid and rejects degenerate ranges.
func TestUniformEdges(t *testing.T) {
	edges, err := datasets.UniformEdges(0, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, edges)

	_, err = datasets.UniformEdges(0, 4, 0)
	assert.ErrorIs(t, err, datasets.ErrInvalidBins)
	_, err = datasets.UniformEdges(4, 4, 3)
	assert.ErrorIs(t, err, datasets.ErrInvalidBins)
}

// TestQuantize1D maps values to bins and clamps out-of-range values.
func TestQuantize1D(t *testing.T) {
	edges := []float64{0, 1, 2, 3}

	dtraj, err := datasets.Quantize1D([]float64{-1, 0.5, 1.5, 2.5, 7}, edges)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 2, 2}, dtraj)

	_, err = datasets.Quantize1D([]float64{1}, []float64{0})
	assert.ErrorIs(t, err, datasets.ErrInvalidBins)
	_, err = datasets.Quantize1D([]float64{1}, []float64{0, 2, 1})
	assert.ErrorIs(t, err, datasets.ErrInvalidBins)
}

// TestTimeshiftedSplit pairs rows at the lag without crossing the
// boundary between trajectories.
func TestTimeshiftedSplit(t *testing.T) {
	a := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	b := mat.NewDense(4, 1, []float64{10, 11, 12, 13})

	x, y, err := datasets.TimeshiftedSplit(2, a, b)
	require.NoError(t, err)

	rows, cols := x.Dims()
	require.Equal(t, 5, rows)
	require.Equal(t, 1, cols)
	assert.Equal(t, []float64{0, 1, 2, 10, 11}, mat.Col(nil, 0, x))
	assert.Equal(t, []float64{2, 3, 4, 12, 13}, mat.Col(nil, 0, y))
}

// TestTimeshiftedSplit_Errors covers invalid lags and mixed dimensions.
func TestTimeshiftedSplit_Errors(t *testing.T) {
	a := mat.NewDense(3, 1, []float64{0, 1, 2})

	_, _, err := datasets.TimeshiftedSplit(0, a)
	assert.ErrorIs(t, err, datasets.ErrInvalidLag)

	_, _, err = datasets.TimeshiftedSplit(5, a)
	assert.ErrorIs(t, err, datasets.ErrInvalidLag, "lag longer than every trajectory")

	_, _, err = datasets.TimeshiftedSplit(1, a, mat.NewDense(3, 2, nil))
	assert.ErrorIs(t, err, datasets.ErrDimensionMismatch)
}

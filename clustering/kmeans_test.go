package clustering_test

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagtime/lagtime/clustering"
)

// blobs builds two tight, well-separated groups of points around
// (0, 0) and (10, 10).
func blobs() *mat.Dense {
	pts := []float64{
		0, 0, 0.1, -0.1, -0.2, 0.1, 0.1, 0.2,
		10, 10, 10.1, 9.9, 9.8, 10.1, 10.2, 9.8,
	}

	return mat.NewDense(8, 2, pts)
}

// TestKMeans_SeparatesBlobs recovers two obvious clusters and their
// centers.
func TestKMeans_SeparatesBlobs(t *testing.T) {
	model, err := clustering.NewKMeans(2, 42).Fit(blobs())
	require.NoError(t, err)

	labels, err := model.Assign(blobs())
	require.NoError(t, err)
	require.Len(t, labels, 8)

	// Each blob lands in a single cluster, distinct from the other.
	for i := 1; i < 4; i++ {
		assert.Equal(t, labels[0], labels[i], "point %d", i)
		assert.Equal(t, labels[4], labels[4+i], "point %d", 4+i)
	}
	assert.NotEqual(t, labels[0], labels[4])

	centers := model.Centers()
	low := labels[0]
	assert.InDelta(t, 0, centers.At(low, 0), 0.25)
	assert.InDelta(t, 10, centers.At(1-low, 0), 0.25)

	assert.Less(t, model.Inertia(), 1.0, "tight blobs must fit tightly")
}

// TestKMeans_SeedDeterminism requires identical fits for identical
// seeds.
func TestKMeans_SeedDeterminism(t *testing.T) {
	a, err := clustering.NewKMeans(2, 7).Fit(blobs())
	require.NoError(t, err)
	b, err := clustering.NewKMeans(2, 7).Fit(blobs())
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.Centers(), b.Centers()))
	assert.Equal(t, a.Inertia(), b.Inertia())
}

// TestKMeans_SingleCluster collapses everything onto the mean.
func TestKMeans_SingleCluster(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	model, err := clustering.NewKMeans(1, 0).Fit(x)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, model.Centers().At(0, 0), 1e-12)
	assert.InDelta(t, 5.0, model.Inertia(), 1e-12) // 1.5^2+0.5^2+0.5^2+1.5^2
}

// TestKMeans_KEqualsN gives every point its own center with zero
// inertia.
func TestKMeans_KEqualsN(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{0, 5, 10})
	model, err := clustering.NewKMeans(3, 3).Fit(x)
	require.NoError(t, err)

	assert.InDelta(t, 0, model.Inertia(), 1e-12)
	labels, err := model.Assign(x)
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, l := range labels {
		seen[l] = true
	}
	assert.Len(t, seen, 3, "each point gets a distinct center")
}

// TestKMeans_Errors covers the validation paths.
func TestKMeans_Errors(t *testing.T) {
	_, err := clustering.NewKMeans(0, 1).Fit(blobs())
	assert.ErrorIs(t, err, clustering.ErrInvalidK)

	_, err = clustering.NewKMeans(9, 1).Fit(blobs())
	assert.ErrorIs(t, err, clustering.ErrTooFewPoints)

	_, err = clustering.NewKMeans(2, 1).Fit(nil)
	assert.ErrorIs(t, err, clustering.ErrTooFewPoints)

	model, err := clustering.NewKMeans(2, 1).Fit(blobs())
	require.NoError(t, err)
	_, err = model.Assign(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, clustering.ErrDimensionMismatch)
}

// TestKMeans_AssignNearest labels out-of-sample points by proximity.
func TestKMeans_AssignNearest(t *testing.T) {
	model, err := clustering.NewKMeans(2, 42).Fit(blobs())
	require.NoError(t, err)

	probe := mat.NewDense(2, 2, []float64{1, 1, 9, 9})
	labels, err := model.Assign(probe)
	require.NoError(t, err)

	ref, err := model.Assign(blobs())
	require.NoError(t, err)
	assert.Equal(t, ref[0], labels[0], "(1,1) belongs to the origin blob")
	assert.Equal(t, ref[4], labels[1], "(9,9) belongs to the far blob")
}

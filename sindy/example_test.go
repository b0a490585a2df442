package sindy_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/lagtime/lagtime/sindy"
)

// ExampleEstimator_Fit identifies simple harmonic motion from exact
// derivative samples.
func ExampleEstimator_Fit() {
	// Scattered states with derivatives of x' = y, y' = -x.
	pts := [][2]float64{
		{1, 0}, {0.5, 0.25}, {-0.3, 0.7}, {0.9, -0.4},
		{-1.1, -0.5}, {0.2, 0.8}, {-0.7, 0.1}, {0.4, -0.9},
	}
	x := mat.NewDense(len(pts), 2, nil)
	xDot := mat.NewDense(len(pts), 2, nil)
	for i, p := range pts {
		x.Set(i, 0, p[0])
		x.Set(i, 1, p[1])
		xDot.Set(i, 0, p[1])
		xDot.Set(i, 1, -p[0])
	}

	est := sindy.DefaultEstimator()
	est.Optimizer.Threshold = 0.1
	model, err := est.Fit(x, xDot)
	if err != nil {
		panic(err)
	}

	for _, eq := range model.Equations([]string{"x", "y"}) {
		fmt.Println(eq)
	}
	// Output:
	// x' = +1.000 x1
	// y' = -1.000 x0
}

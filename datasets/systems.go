package datasets

import "math"

// DoubleWell1D is a particle in the bistable potential (x^2-1)^2 with
// additive noise. The drift -4x(x^2-1) has stable fixed points at -1
// and +1 and an unstable one at the barrier top x = 0.
type DoubleWell1D struct {
	// Sigma is the noise intensity.
	Sigma float64
}

// DefaultDoubleWell1D returns the standard well with unit noise.
func DefaultDoubleWell1D() DoubleWell1D { return DoubleWell1D{Sigma: 1} }

func (DoubleWell1D) Dim() int { return 1 }

func (DoubleWell1D) Drift(dst, x []float64) {
	v := x[0]
	dst[0] = -4 * v * (v*v - 1)
}

func (d DoubleWell1D) Diffusion() float64 { return d.Sigma }

// OrnsteinUhlenbeck is the mean-reverting process
// dx = -Theta (x - Mean) dt + Sigma dW.
type OrnsteinUhlenbeck struct {
	Theta float64
	Mean  float64
	Sigma float64
}

// DefaultOrnsteinUhlenbeck reverts to zero at unit rate with unit noise.
func DefaultOrnsteinUhlenbeck() OrnsteinUhlenbeck {
	return OrnsteinUhlenbeck{Theta: 1, Mean: 0, Sigma: 1}
}

func (OrnsteinUhlenbeck) Dim() int { return 1 }

func (o OrnsteinUhlenbeck) Drift(dst, x []float64) {
	dst[0] = -o.Theta * (x[0] - o.Mean)
}

func (o OrnsteinUhlenbeck) Diffusion() float64 { return o.Sigma }

// PrinzPotential is the one-dimensional four-well landscape
//
//	V(x) = 4 (x^8 + 0.8 e^{-80 x^2} + 0.2 e^{-80 (x-0.5)^2}
//	          + 0.5 e^{-40 (x+0.5)^2}),
//
// a standard benchmark with four metastable states on [-1, 1]. The
// drift is -V'(x).
type PrinzPotential struct {
	Sigma float64
}

// DefaultPrinzPotential returns the landscape with unit noise.
func DefaultPrinzPotential() PrinzPotential { return PrinzPotential{Sigma: 1} }

func (PrinzPotential) Dim() int { return 1 }

func (PrinzPotential) Drift(dst, x []float64) {
	v := x[0]
	grad := 4 * (8*math.Pow(v, 7) -
		128*v*math.Exp(-80*v*v) -
		32*(v-0.5)*math.Exp(-80*(v-0.5)*(v-0.5)) -
		40*(v+0.5)*math.Exp(-40*(v+0.5)*(v+0.5)))
	dst[0] = -grad
}

func (p PrinzPotential) Diffusion() float64 { return p.Sigma }

// TripleWell2D is a planar landscape with two deep wells near (-1, 0)
// and (1, 0) and a shallow one near (0, 5/3), bounded by quartic walls.
type TripleWell2D struct {
	Sigma float64
}

// DefaultTripleWell2D returns the landscape with unit noise.
func DefaultTripleWell2D() TripleWell2D { return TripleWell2D{Sigma: 1} }

func (TripleWell2D) Dim() int { return 2 }

func (TripleWell2D) Drift(dst, x []float64) {
	a, b := x[0], x[1]
	ea := math.Exp(-a*a - (b-1.0/3.0)*(b-1.0/3.0))
	eb := math.Exp(-a*a - (b-5.0/3.0)*(b-5.0/3.0))
	ec := math.Exp(-(a-1)*(a-1) - b*b)
	ed := math.Exp(-(a+1)*(a+1) - b*b)

	gx := -6*a*ea + 6*a*eb + 10*(a-1)*ec + 10*(a+1)*ed + 0.8*a*a*a
	gy := -6*(b-1.0/3.0)*ea + 6*(b-5.0/3.0)*eb + 10*b*ec + 10*b*ed +
		0.8*math.Pow(b-1.0/3.0, 3)

	dst[0] = -gx
	dst[1] = -gy
}

func (t TripleWell2D) Diffusion() float64 { return t.Sigma }

// Lorenz is the deterministic Lorenz system, chaotic at the classic
// parameters sigma=10, rho=28, beta=8/3.
type Lorenz struct {
	SigmaP float64
	Rho    float64
	Beta   float64
}

// DefaultLorenz returns the classic chaotic parameters.
func DefaultLorenz() Lorenz { return Lorenz{SigmaP: 10, Rho: 28, Beta: 8.0 / 3.0} }

func (Lorenz) Dim() int { return 3 }

func (l Lorenz) Drift(dst, x []float64) {
	dst[0] = l.SigmaP * (x[1] - x[0])
	dst[1] = x[0]*(l.Rho-x[2]) - x[1]
	dst[2] = x[0]*x[1] - l.Beta*x[2]
}

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/lagtime/lagtime/clustering"
	"github.com/lagtime/lagtime/datasets"
	"github.com/lagtime/lagtime/internal/config"
	"github.com/lagtime/lagtime/markov"
	"github.com/lagtime/lagtime/msm"
)

var (
	configFile string
	system     string
	steps      int
	stepSize   float64
	stride     int
	seed       uint64
	bins       int
	clusters   int
	lagtime    int
	mode       string
	reversible bool
	timescales int
	outFile    string
	threshold  float64
	plot       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lagtime",
		Short: "trajectory discretization and Markov state model lab",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "pipeline config file (yaml)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "simulate a benchmark system to CSV",
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&system, "system", "doublewell", "system (doublewell, ou, prinz, triplewell, lorenz)")
	generateCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "output samples")
	generateCmd.Flags().Float64Var(&stepSize, "dt", config.DefaultStepSize, "integration step")
	generateCmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "integration steps per output sample")
	generateCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	generateCmd.Flags().StringVar(&outFile, "out", "trajectory.csv", "output file")

	countCmd := &cobra.Command{
		Use:   "count [dtraj.csv]",
		Short: "estimate transition counts and report connectivity",
		Args:  cobra.ExactArgs(1),
		RunE:  runCount,
	}
	countCmd.Flags().IntVar(&lagtime, "lag", config.DefaultLagtime, "lag time in steps")
	countCmd.Flags().StringVar(&mode, "mode", "sliding", "counting mode")
	countCmd.Flags().Float64Var(&threshold, "threshold", 0, "connectivity count threshold")

	timescalesCmd := &cobra.Command{
		Use:   "timescales [series.csv]",
		Short: "full pipeline: cluster, count, estimate, implied timescales",
		Args:  cobra.ExactArgs(1),
		RunE:  runTimescales,
	}
	timescalesCmd.Flags().IntVar(&clusters, "clusters", config.DefaultClusters, "k-means cluster count")
	timescalesCmd.Flags().IntVar(&lagtime, "lag", config.DefaultLagtime, "lag time in steps")
	timescalesCmd.Flags().StringVar(&mode, "mode", "sliding", "counting mode")
	timescalesCmd.Flags().BoolVar(&reversible, "reversible", true, "detailed-balance estimation")
	timescalesCmd.Flags().IntVar(&timescales, "n", config.DefaultTimescales, "number of implied timescales")
	timescalesCmd.Flags().Uint64Var(&seed, "seed", 0, "clustering seed")
	timescalesCmd.Flags().BoolVar(&plot, "plot", false, "ascii plot of timescales vs lag")

	rootCmd.AddCommand(generateCmd, countCmd, timescalesCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// pipelineConfig merges the YAML file (when given) under any flags the
// user set explicitly.
func pipelineConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("system") {
		cfg.System = system
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("dt") {
		cfg.StepSize = stepSize
	}
	if f.Changed("stride") {
		cfg.Stride = stride
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("clusters") {
		cfg.Clusters = clusters
	}
	if f.Changed("lag") {
		cfg.Lagtime = lagtime
	}
	if f.Changed("mode") {
		cfg.Mode = mode
	}
	if f.Changed("reversible") {
		cfg.Reversible = reversible
	}
	if f.Changed("n") {
		cfg.Timescales = timescales
	}

	return cfg, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	var traj *mat.Dense
	em := datasets.EulerMaruyama{StepSize: cfg.StepSize, Stride: cfg.Stride, Seed: cfg.Seed}
	switch cfg.System {
	case "doublewell":
		traj, err = em.Trajectory(datasets.DefaultDoubleWell1D(), []float64{1}, cfg.Steps)
	case "ou":
		traj, err = em.Trajectory(datasets.DefaultOrnsteinUhlenbeck(), []float64{1}, cfg.Steps)
	case "prinz":
		traj, err = em.Trajectory(datasets.DefaultPrinzPotential(), []float64{0}, cfg.Steps)
	case "triplewell":
		traj, err = em.Trajectory(datasets.DefaultTripleWell2D(), []float64{-1, 0}, cfg.Steps)
	case "lorenz":
		traj, err = datasets.RK4Trajectory(datasets.DefaultLorenz(), []float64{1, 1, 1}, cfg.Steps, cfg.StepSize)
	default:
		return fmt.Errorf("unknown system %q", cfg.System)
	}
	if err != nil {
		return err
	}

	if err := writeMatrixCSV(outFile, traj); err != nil {
		return err
	}
	rows, cols := traj.Dims()
	fmt.Printf("wrote %d samples x %d dims to %s\n", rows, cols, outFile)

	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	countingMode, err := markov.ParseCountingMode(cfg.Mode)
	if err != nil {
		return err
	}

	dtraj, err := readDtrajCSV(args[0])
	if err != nil {
		return err
	}

	est, err := markov.NewTransitionCountEstimator(cfg.Lagtime, countingMode)
	if err != nil {
		return err
	}
	model, err := est.CountTransitions(dtraj)
	if err != nil {
		return err
	}

	fmt.Printf("states: %d  total count: %g  lag: %d  mode: %s\n",
		model.NStates(), model.TotalCount(), model.Lagtime(), model.Mode())

	opts := markov.DefaultConnectivityOptions()
	opts.Threshold = threshold
	sets := model.ConnectedSets(opts)
	fmt.Printf("strongly connected sets (threshold %g):\n", threshold)
	for i, set := range sets {
		fmt.Printf("  %d: %v\n", i, set)
	}

	largest, err := model.SubmodelLargest(opts)
	if err != nil {
		return err
	}
	fmt.Printf("largest set: %d states, symbols %v, %g counts\n",
		largest.NStates(), largest.StateSymbols(), largest.TotalCount())

	return nil
}

func runTimescales(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	countingMode, err := markov.ParseCountingMode(cfg.Mode)
	if err != nil {
		return err
	}

	series, err := readMatrixCSV(args[0])
	if err != nil {
		return err
	}

	km := clustering.NewKMeans(cfg.Clusters, cfg.Seed)
	clusterModel, err := km.Fit(series)
	if err != nil {
		return err
	}
	dtraj, err := clusterModel.Assign(series)
	if err != nil {
		return err
	}

	mle := msm.DefaultMaximumLikelihoodEstimator()
	mle.Reversible = cfg.Reversible

	model, err := estimateAtLag(dtraj, cfg.Lagtime, countingMode, mle)
	if err != nil {
		return err
	}

	fmt.Printf("states: %d  lag: %d  reversible: %v\n", model.NStates(), model.Lagtime(), model.Reversible())
	fmt.Println("stationary distribution:")
	pi := model.StationaryDistribution()
	for i, p := range pi {
		fmt.Printf("  state %d: %.4f\n", i, p)
	}
	fmt.Println("implied timescales (in lag units of the input series):")
	for i, ts := range model.Timescales(cfg.Timescales) {
		fmt.Printf("  t%d: %.4f\n", i+1, ts)
	}

	if plot {
		if err := plotTimescales(dtraj, cfg.Lagtime, countingMode, mle); err != nil {
			return err
		}
	}

	return nil
}

// estimateAtLag runs count -> largest connected submodel -> maximum
// likelihood estimation for one lag.
func estimateAtLag(dtraj []int, lag int, countingMode markov.CountingMode, mle msm.MaximumLikelihoodEstimator) (*msm.MarkovStateModel, error) {
	est, err := markov.NewTransitionCountEstimator(lag, countingMode)
	if err != nil {
		return nil, err
	}
	counts, err := est.CountTransitions(dtraj)
	if err != nil {
		return nil, err
	}
	largest, err := counts.SubmodelLargest(markov.DefaultConnectivityOptions())
	if err != nil {
		return nil, err
	}

	return mle.Fit(largest)
}

// plotTimescales sweeps lags 1..maxLag and draws the slowest implied
// timescale; a plateau marks a Markovian lag choice.
func plotTimescales(dtraj []int, maxLag int, countingMode markov.CountingMode, mle msm.MaximumLikelihoodEstimator) error {
	var data []float64
	for lag := 1; lag <= maxLag; lag++ {
		model, err := estimateAtLag(dtraj, lag, countingMode, mle)
		if err != nil {
			return err
		}
		ts := model.Timescales(1)
		if len(ts) == 0 {
			break
		}
		data = append(data, ts[0])
	}
	if len(data) < 2 {
		return nil
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("slowest implied timescale vs lag"),
	)
	fmt.Println(graph)

	return nil
}

// readMatrixCSV loads a CSV of float rows into a dense matrix.
func readMatrixCSV(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	cols := len(records[0])
	out := mat.NewDense(len(records), cols, nil)
	for r, record := range records {
		if len(record) != cols {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, r, len(record), cols)
		}
		for c, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d col %d: %w", path, r, c, err)
			}
			out.Set(r, c, v)
		}
	}

	return out, nil
}

// readDtrajCSV loads the first column of a CSV as integer state labels.
func readDtrajCSV(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(records))
	for r, record := range records {
		if len(record) == 0 {
			continue
		}
		v, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, r, err)
		}
		out = append(out, v)
	}

	return out, nil
}

// writeMatrixCSV writes a dense matrix as CSV rows.
func writeMatrixCSV(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows, cols := m.Dims()
	record := make([]string, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			record[c] = strconv.FormatFloat(m.At(r, c), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

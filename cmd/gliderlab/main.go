package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gliderlab/internal/config"
	"github.com/san-kum/gliderlab/internal/export"
	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
	"github.com/san-kum/gliderlab/internal/glider"
	"github.com/san-kum/gliderlab/internal/integrators"
	"github.com/san-kum/gliderlab/internal/score"
	"github.com/san-kum/gliderlab/internal/search"
	"github.com/san-kum/gliderlab/internal/storage"
	"github.com/san-kum/gliderlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	seed       int64
	planets    int
	maxMass    float64
	spiral     float64
	stepSize   float64
	maxSteps   int
	attempts   int
	gliders    int
	integrator string
	scheme     string
	width      float64
	height     float64
	workers    int

	startX  float64
	startY  float64
	ccw     bool
	outFile string
	probe   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gliderlab",
		Short: "glider trajectory field generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gliderlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	rootCmd.PersistentFlags().IntVar(&planets, "planets", config.DefaultPlanets, "number of planets")
	rootCmd.PersistentFlags().Float64Var(&maxMass, "max-mass", config.DefaultMaxMass, "maximum planet mass")
	rootCmd.PersistentFlags().Float64Var(&spiral, "spiral", config.DefaultSpiral, "spiral factor")
	rootCmd.PersistentFlags().Float64Var(&stepSize, "step", config.DefaultStepSize, "integration step size")
	rootCmd.PersistentFlags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "maximum steps per trajectory")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, midpoint, rk4)")
	rootCmd.PersistentFlags().StringVar(&scheme, "scheme", "level", "stepping scheme (level, contour, raw)")
	rootCmd.PersistentFlags().Float64Var(&width, "width", config.DefaultWidth, "bounds width")
	rootCmd.PersistentFlags().Float64Var(&height, "height", config.DefaultHeight, "bounds height")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "find the highest-scoring glider start point",
		RunE:  runSearch,
	}
	searchCmd.Flags().IntVar(&attempts, "attempts", config.DefaultAttempts, "number of candidate starts")
	searchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cores)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace gliders and render them to the terminal",
		RunE:  runTrace,
	}
	traceCmd.Flags().Float64Var(&startX, "start-x", 0, "glider start x (with --start-y)")
	traceCmd.Flags().Float64Var(&startY, "start-y", 0, "glider start y (with --start-x)")
	traceCmd.Flags().BoolVar(&ccw, "ccw", false, "force counter-clockwise handedness")
	traceCmd.Flags().IntVar(&gliders, "gliders", config.DefaultGliders, "number of random gliders")
	traceCmd.Flags().StringVar(&outFile, "svg", "", "also write the scene to an SVG file")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "render a field overlay to the terminal",
		RunE:  runField,
	}
	fieldCmd.Flags().StringVar(&probe, "probe", "gravity", "field to sample (gravity, angular, potential)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive glider field viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}
	liveCmd.Flags().IntVar(&gliders, "gliders", config.DefaultGliders, "number of gliders to draw")
	liveCmd.Flags().IntVar(&attempts, "attempts", config.DefaultAttempts, "search attempts for the S key")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved search runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot potential and step length along a saved trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a saved run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.svg)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.csv)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(searchCmd, traceCmd, fieldCmd, liveCmd, listCmd, plotCmd, exportSVGCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig merges preset, config file and flags. Flags that were
// set explicitly win over the config file, which wins over the preset.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") || (preset == "" && configFile == "") {
		cfg.Seed = seed
	}
	if flags.Changed("planets") {
		cfg.Planets = planets
	}
	if flags.Changed("max-mass") {
		cfg.MaxMass = maxMass
	}
	if flags.Changed("spiral") {
		cfg.Spiral = spiral
	}
	if flags.Changed("step") {
		cfg.StepSize = stepSize
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	// Each dimension merges on its own so --width does not clobber a
	// preset's height or min corner.
	if flags.Changed("width") {
		cfg.Bounds.MaxX = cfg.Bounds.MinX + width
	}
	if flags.Changed("height") {
		cfg.Bounds.MaxY = cfg.Bounds.MinY + height
	}
	if flags.Changed("attempts") {
		cfg.Attempts = attempts
	}
	if flags.Changed("gliders") {
		cfg.Gliders = gliders
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSystem(cfg *config.Config) (*field.System, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return field.NewRandom(cfg.Planets, cfg.MaxMass, cfg.Rect(), rng)
}

// systemFromRun rebuilds the planetary system a saved run was searched
// over. Planet placement is fully determined by seed, planet count,
// mass cap and bounds, all of which the metadata records.
func systemFromRun(meta *storage.RunMetadata) (*field.System, error) {
	maxMass := meta.MaxMass
	if maxMass <= 0 {
		maxMass = config.DefaultMaxMass
	}
	bounds := meta.Bounds()
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		// Runs written before bounds were recorded: assume defaults.
		bounds = config.DefaultConfig().Rect()
	}
	rng := rand.New(rand.NewSource(meta.Seed))
	return field.NewRandom(meta.Planets, maxMass, bounds, rng)
}

func buildTracer(cfg *config.Config, sys *field.System) (*glider.Tracer, error) {
	tracer := glider.NewTracer(sys, cfg.Spiral, cfg.MaxSteps)

	sch, err := glider.SchemeByName(cfg.Scheme)
	if err != nil {
		return nil, err
	}
	tracer.Scheme = sch
	tracer.StepSize = cfg.StepSize

	stepper, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	tracer.Stepper = stepper
	return tracer, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	searcher := search.New(sys, cfg.Spiral, cfg.MaxSteps)
	searcher.Attempts = cfg.Attempts
	searcher.StepSize = cfg.StepSize
	sch, err := glider.SchemeByName(cfg.Scheme)
	if err != nil {
		return err
	}
	searcher.Scheme = sch
	stepper, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}
	searcher.Stepper = stepper
	if workers > 0 {
		searcher.Workers = workers
	}

	fmt.Printf("searching %d starts over %d planets (seed %d)...\n", cfg.Attempts, cfg.Planets, cfg.Seed)
	start := time.Now()

	best, err := searcher.Run(context.Background(), cfg.Seed)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	tracer, err := buildTracer(cfg, sys)
	if err != nil {
		return err
	}
	traj := tracer.Trace(best.Start, best.Hand)
	summary := score.Path(traj, sys, searcher.Weights)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Seed:       cfg.Seed,
		Planets:    cfg.Planets,
		MaxMass:    cfg.MaxMass,
		Spiral:     cfg.Spiral,
		Integrator: cfg.Integrator,
		Scheme:     cfg.Scheme,
		StepSize:   cfg.StepSize,
		MaxSteps:   cfg.MaxSteps,
		Attempts:   cfg.Attempts,
		BoundsMinX: cfg.Bounds.MinX,
		BoundsMinY: cfg.Bounds.MinY,
		BoundsMaxX: cfg.Bounds.MaxX,
		BoundsMaxY: cfg.Bounds.MaxY,
		Score:      best.Score,
		StartX:     best.Start.X,
		StartY:     best.Start.Y,
		Handedness: best.Hand.String(),
		PathLength: summary.PathLength,
		Switches:   summary.PlanetSwitches,
	}, traj)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("best start: %s (%s)\n", best.Start, best.Hand)
	fmt.Printf("score: %.0f\n", best.Score)
	fmt.Printf("  planet switches: %d\n", summary.PlanetSwitches)
	fmt.Printf("  path length: %.1f over %d points\n", summary.PathLength, len(traj))
	fmt.Printf("  collisions: %d, out of bounds: %d\n", summary.Collisions, summary.OutOfBounds)

	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Glider starts continue the same RNG stream that placed the
	// planets, so a seed identifies the whole scene.
	rng := rand.New(rand.NewSource(cfg.Seed))
	sys, err := field.NewRandom(cfg.Planets, cfg.MaxMass, cfg.Rect(), rng)
	if err != nil {
		return err
	}
	tracer, err := buildTracer(cfg, sys)
	if err != nil {
		return err
	}

	var trajs [][]geom.Vec2
	if cmd.Flags().Changed("start-x") || cmd.Flags().Changed("start-y") {
		hand := glider.Clockwise
		if ccw {
			hand = glider.CounterClockwise
		}
		trajs = append(trajs, tracer.Trace(geom.Vec2{X: startX, Y: startY}, hand))
	} else {
		for i := 0; i < cfg.Gliders; i++ {
			start := field.RandomPoint(sys.Bounds, rng)
			trajs = append(trajs, tracer.Trace(start, glider.CoinFlip(rng)))
		}
	}

	plot := viz.NewPlot(100, 30, sys.Bounds)
	plot.Planets(sys)
	for _, traj := range trajs {
		plot.Trajectory(traj)
	}
	fmt.Print(plot.String())

	if len(trajs) == 1 {
		traj := trajs[0]
		fmt.Printf("%d points, ends at %s\n", len(traj), traj[len(traj)-1])
	} else {
		fmt.Printf("%d gliders traced\n", len(trajs))
	}

	if outFile != "" {
		if err := export.SceneToSVG(outFile, sys, trajs); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	}

	return nil
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	switch probe {
	case "gravity", "angular":
		f := sys.Gravity
		if probe == "angular" {
			f = sys.AngularGradient
		}
		plot := viz.NewPlot(100, 30, sys.Bounds)
		plot.VectorField(f, sys.Bounds.Width()/40)
		plot.Planets(sys)
		fmt.Print(plot.String())
	case "potential":
		// Cross-section along the horizontal line through the center.
		center := sys.Bounds.Center()
		samples := 100
		data := make([]float64, 0, samples)
		for i := 0; i < samples; i++ {
			x := sys.Bounds.Min.X + sys.Bounds.Width()*float64(i)/float64(samples-1)
			v := sys.Potential(geom.Vec2{X: x, Y: center.Y})
			if v < -500 {
				v = -500 // clamp singular spikes so the graph stays readable
			}
			data = append(data, v)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("potential along y=%.0f", center.Y))))
	default:
		return fmt.Errorf("unknown probe: %s (gravity, angular, potential)", probe)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tPLANETS\tSPIRAL\tSCHEME\tSCORE\tSWITCHES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%s\t%.0f\t%d\n",
			run.ID, run.Seed, run.Planets, run.Spiral, run.Scheme, run.Score, run.Switches)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(traj) < 2 {
		return fmt.Errorf("run %s has no trajectory to plot", args[0])
	}

	sys, err := systemFromRun(meta)
	if err != nil {
		return err
	}

	potential := make([]float64, 0, len(traj))
	for _, p := range traj {
		v := sys.Potential(p)
		if v < -500 {
			v = -500
		}
		potential = append(potential, v)
	}
	fmt.Println(asciigraph.Plot(potential,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("potential along path")))

	steps := make([]float64, 0, len(traj)-1)
	for i := 1; i < len(traj); i++ {
		steps = append(steps, traj[i].Sub(traj[i-1]).Mag())
	}
	fmt.Println(asciigraph.Plot(steps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("step length")))

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	sys, err := systemFromRun(meta)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = args[0] + ".svg"
	}
	if err := export.SceneToSVG(path, sys, [][]geom.Vec2{traj}); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = args[0] + ".csv"
	}
	if err := export.TrajectoryToCSV(path, traj); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d points)\n", path, len(traj))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ravn-k/threebody/internal/analysis"
	"github.com/ravn-k/threebody/internal/config"
	"github.com/ravn-k/threebody/internal/export"
	"github.com/ravn-k/threebody/internal/gravity"
	"github.com/ravn-k/threebody/internal/integrate"
	"github.com/ravn-k/threebody/internal/storage"
	"github.com/ravn-k/threebody/internal/viz"
)

var (
	dataDir    string
	preset     string
	configFile string
	duration   float64
	samples    int
	rtol       float64
	atol       float64
	noSave     bool

	plotWidth  int
	plotHeight int
	plotBody   int
	svgPath    string
	rotX       float64
	rotY       float64
	rotZ       float64

	frameRate int
	gifOut    string
	gifStride int

	compareDt float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "threebody",
		Short: "gravitational three-body simulator and visualizer",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".threebody", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a scenario and save the trajectory",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&preset, "preset", "chaos", "preset scenario")
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides preset")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override integration time")
	runCmd.Flags().IntVar(&samples, "samples", 0, "override sample count")
	runCmd.Flags().Float64Var(&rtol, "rtol", 0, "override relative tolerance")
	runCmd.Flags().Float64Var(&atol, "atol", 0, "override absolute tolerance")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "static 3D path plot of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 100, "canvas width (cells)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 34, "canvas height (cells)")
	plotCmd.Flags().IntVar(&plotBody, "body", 0, "also chart this body's coordinates (1-3, 0=off)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the plot as SVG to this path")
	plotCmd.Flags().Float64Var(&rotX, "rot-x", 0.4, "camera rotation about x (rad)")
	plotCmd.Flags().Float64Var(&rotY, "rot-y", 0.6, "camera rotation about y (rad)")
	plotCmd.Flags().Float64Var(&rotZ, "rot-z", 0, "camera rotation about z (rad)")

	animateCmd := &cobra.Command{
		Use:   "animate [run_id]",
		Short: "interactive frame-by-frame playback",
		Args:  cobra.ExactArgs(1),
		RunE:  animateRun,
	}
	animateCmd.Flags().IntVar(&frameRate, "fps", 30, "playback frame rate")

	gifCmd := &cobra.Command{
		Use:   "render-gif [run_id]",
		Short: "render the animation to a GIF headless",
		Args:  cobra.ExactArgs(1),
		RunE:  renderGIF,
	}
	gifCmd.Flags().StringVar(&gifOut, "out", "animation.gif", "output path")
	gifCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	gifCmd.Flags().IntVar(&plotWidth, "width", 80, "canvas width (cells)")
	gifCmd.Flags().IntVar(&plotHeight, "height", 40, "canvas height (cells)")
	gifCmd.Flags().IntVar(&gifStride, "stride", 0, "samples per frame (0 = auto)")
	gifCmd.Flags().Float64Var(&rotX, "rot-x", 0.4, "camera rotation about x (rad)")
	gifCmd.Flags().Float64Var(&rotY, "rot-y", 0.6, "camera rotation about y (rad)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and chaos analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	csvCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	jsonCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the adaptive solver against fixed-step RK4",
		RunE:  compareSolvers,
	}
	compareCmd.Flags().StringVar(&preset, "preset", "chaos", "preset scenario")
	compareCmd.Flags().Float64Var(&compareDt, "dt", 0.001, "RK4 step size")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, animateCmd, gifCmd, analyzeCmd, csvCmd, jsonCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	sc := config.GetPreset(preset)
	if sc == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load scenario: %w", err)
		}
		sc = loaded
	}
	if cmd.Flags().Changed("time") {
		sc.End = sc.Start + duration
	}
	if cmd.Flags().Changed("samples") {
		sc.Samples = samples
	}
	if cmd.Flags().Changed("rtol") {
		sc.Rtol = rtol
	}
	if cmd.Flags().Changed("atol") {
		sc.Atol = atol
	}
	return sc, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	cfg := sc.RunConfig()

	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	fmt.Printf("integrating %s (t=[%g, %g], %d samples, rtol=%g atol=%g)...\n",
		name, cfg.Start, cfg.End, sc.Samples, cfg.Rtol, cfg.Atol)

	start := time.Now()
	res, err := gravity.Simulate(context.Background(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("integration successful: %v\n", res.Success)
	if !res.Success {
		fmt.Printf("  %s\n", res.Message)
	}

	var metrics map[string]float64
	if res.Success {
		sys := cfg.System()
		metrics = gravity.EvaluateMetrics(res,
			gravity.NewEnergyDrift(sys),
			gravity.NewMomentumDrift(sys),
			gravity.NewMinSeparation(sys),
		)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	fmt.Fprintf(w, "samples\t%d\n", len(res.Times))
	fmt.Fprintf(w, "steps\t%d\n", res.Steps)
	fmt.Fprintf(w, "rejected\t%d\n", res.Rejected)
	fmt.Fprintf(w, "evals\t%d\n", res.Evals)
	for name, val := range metrics {
		fmt.Fprintf(w, "%s\t%.3e\n", name, val)
	}
	w.Flush()

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, cfg, res, metrics)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	if !res.Success {
		return fmt.Errorf("integration failed")
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

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSPAN\tSAMPLES\tOK")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%d\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start, run.End,
			run.Samples,
			run.Success,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *gravity.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	res, err := st.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Times) == 0 {
		return nil, nil, fmt.Errorf("run %s has no trajectory data (failed run?)", runID)
	}
	return meta, res, nil
}

func plotCamera() *viz.Camera {
	cam := viz.NewCamera()
	cam.RotX = rotX
	cam.RotY = rotY
	cam.RotZ = rotZ
	return cam
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(res.Times))

	cam := plotCamera()
	fmt.Print(viz.StaticPlot(res, plotWidth, plotHeight, cam))

	if plotBody >= 1 && plotBody <= gravity.NumBodies {
		fmt.Println()
		fmt.Print(viz.CoordinatePlots(res, plotBody-1, 80, 8))
	}

	if svgPath != "" {
		f, err := os.Create(svgPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteSVG(f, res, 800, 600, cam); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func animateRun(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}
	sys := gravity.NewSystem(meta.G, meta.Masses)
	p := viz.NewPlayer(res, sys, meta.Scenario, frameRate)
	prog := tea.NewProgram(p)
	_, err = prog.Run()
	return err
}

func renderGIF(cmd *cobra.Command, args []string) error {
	_, res, err := loadRun(args[0])
	if err != nil {
		return err
	}
	f, err := os.Create(gifOut)
	if err != nil {
		return err
	}
	defer f.Close()
	opts := export.GIFOptions{Width: plotWidth, Height: plotHeight, FPS: frameRate, Stride: gifStride}
	if err := export.WriteGIF(f, res, plotCamera(), opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d samples)\n", gifOut, len(res.Times))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	data := make([]float64, len(res.Positions[0]))
	for i, p := range res.Positions[0] {
		data[i] = p.X
	}
	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (body 1, x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, meta.End-meta.Start)
	fmt.Printf("dominant frequency: %.4f\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f\n", 1.0/freq)
	}

	sys := gravity.NewSystem(meta.G, meta.Masses)
	lyap := analysis.LyapunovExponent(sys, res.States[0], 0.01, 40.0, 1e-8)
	fmt.Printf("largest lyapunov exponent: %.4f", lyap)
	if lyap > 0 {
		fmt.Print("  (chaotic)")
	}
	fmt.Println()
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, res, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, res)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, res)
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	sc := config.GetPreset(preset)
	if sc == nil {
		return fmt.Errorf("unknown preset: %s", preset)
	}
	cfg := sc.RunConfig()

	solvers := []struct {
		name   string
		solver integrate.Solver
	}{
		{"rk45", integrate.NewRK45()},
		{fmt.Sprintf("rk4 dt=%g", compareDt), integrate.NewRK4(compareDt)},
	}

	fmt.Printf("comparing solvers on %s (t=[%g, %g])\n\n", sc.Name, cfg.Start, cfg.End)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tOK\tSTEPS\tEVALS\tENERGY_DRIFT\tTIME")
	for _, s := range solvers {
		start := time.Now()
		res, err := gravity.SimulateWith(context.Background(), cfg, s.solver)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", s.name, err)
			continue
		}
		drift := 0.0
		if res.Success {
			sys := cfg.System()
			m := gravity.EvaluateMetrics(res, gravity.NewEnergyDrift(sys))
			drift = m["energy_drift"]
		}
		fmt.Fprintf(w, "%s\t%v\t%d\t%d\t%.3e\t%v\n", s.name, res.Success, res.Steps, res.Evals, drift, elapsed)
	}
	return w.Flush()
}

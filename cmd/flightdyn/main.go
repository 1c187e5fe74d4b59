package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/tleroux/flightdyn/internal/config"
	"github.com/tleroux/flightdyn/internal/forces"
	"github.com/tleroux/flightdyn/internal/metrics"
	"github.com/tleroux/flightdyn/internal/sim"
	"github.com/tleroux/flightdyn/internal/store"
	"github.com/tleroux/flightdyn/internal/vehicle"
	"github.com/tleroux/flightdyn/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	configFile string
	preset     string
	runName    string
	frameRate  int
	// Initial state overrides
	altitude float64
	airspeed float64
	// Commanded thrust
	thrustFx float64
	thrustMz float64
	svgOut   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flightdyn",
		Short: "6-DOF rigid-body flight dynamics simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flightdyn", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Float64Var(&altitude, "altitude", 100.0, "initial altitude (m)")
	runCmd.Flags().Float64Var(&airspeed, "airspeed", 0.0, "initial body-x velocity (m/s)")
	runCmd.Flags().Float64Var(&thrustFx, "thrust", 0.0, "commanded body-x force (N)")
	runCmd.Flags().Float64Var(&thrustMz, "yaw-moment", 0.0, "commanded yaw moment (N·m)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	runCmd.Flags().StringVar(&runName, "name", "flight", "run name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's ground track as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "track.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&altitude, "altitude", 100.0, "initial altitude (m)")
	liveCmd.Flags().Float64Var(&airspeed, "airspeed", 0.0, "initial body-x velocity (m/s)")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, svgCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file and CLI flags; flags win.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("altitude") {
		cfg.InitState.Down = -altitude
	}
	if cmd.Flags().Changed("airspeed") {
		cfg.InitState.U = airspeed
	}
	if cmd.Flags().Changed("thrust") {
		cfg.Input.Fx = thrustFx
	}
	if cmd.Flags().Changed("yaw-moment") {
		cfg.Input.Mz = thrustMz
	}

	return cfg, nil
}

// buildForces assembles the standard force stack: gravity, damping and
// the commanded thrust input.
func buildForces(cfg *config.Config, veh *vehicle.Vehicle) forces.Model {
	thrustForce, thrustMoment := cfg.GetThrust()
	return forces.NewComposite(
		forces.NewGravity(veh),
		forces.NewDrag(veh),
		&forces.Thrust{Force: thrustForce, Moment: thrustMoment},
	)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	veh := cfg.GetVehicle()
	model := buildForces(cfg, veh)

	simulator := sim.New(veh, model)
	simulator.AddMetric(metrics.NewEnergy(veh, cfg.Gravity))
	simulator.AddMetric(metrics.NewEnvelope(1.4, 20.0))

	fmt.Println("running simulation...")
	start := time.Now()

	result, err := simulator.Run(context.Background(), cfg.GetInitState(), sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: cfg.ValidateState,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(runName, cfg.Dt, cfg.Duration, result.Times, result.States, result.Metrics)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, simErr := range result.Errors {
		fmt.Printf("warning: %v\n", simErr)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	veh := cfg.GetVehicle()
	return viz.Run(veh, buildForces(cfg, veh), cfg.GetInitState(), cfg.Dt, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d (%.2fs)\n\n", len(states), times[len(times)-1])

	columns := store.Columns()
	// Altitude first, then attitude and airspeed-x.
	for _, idx := range []int{2, 3, 4, 5, 6} {
		data := make([]float64, len(states))
		for i := range states {
			if idx < len(states[i]) {
				data[i] = states[i][idx]
				if idx == 2 {
					data[i] = -data[i]
				}
			}
		}

		caption := columns[idx] + " vs time"
		if idx == 2 {
			caption = "altitude (m)"
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	svg := store.GroundTrackSVG(states, 800, 600, "#00ff00")
	if svg == "" {
		return fmt.Errorf("not enough data to plot")
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Times:   times,
		States:  make([][12]float64, len(states)),
		Metrics: meta.Metrics,
	}
	for i, s := range states {
		copy(result.States[i][:], s)
	}

	return store.ExportJSON(os.Stdout, meta.Name, meta.Dt, meta.Duration, result)
}

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/kinema/internal/config"
	"github.com/san-kum/kinema/internal/controller"
	"github.com/san-kum/kinema/internal/metrics"
	"github.com/san-kum/kinema/internal/motion"
	"github.com/san-kum/kinema/internal/scenario"
	"github.com/san-kum/kinema/internal/storage"
	"github.com/san-kum/kinema/internal/viz"
)

var (
	dataDir string
	law     string
	mass    float64
	stiff   float64
	damp    float64
	ease    string
	curveT  float64
	lower   float64
	upper   float64
	initial float64
	target  float64
	fps     int
	maxTime float64
	// Config file
	configFile string
	// Preset name
	preset string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinema",
		Short: "animation value engine",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinema", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run an animation offline and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnimation,
	}
	addAnimationFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [name]",
		Short: "run an animation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addAnimationFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addAnimationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&law, "law", "spring", "driving law (spring or curve)")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "spring mass")
	cmd.Flags().Float64Var(&stiff, "stiffness", config.DefaultStiffness, "spring stiffness")
	cmd.Flags().Float64Var(&damp, "damping", config.DefaultDamping, "spring damping")
	cmd.Flags().StringVar(&ease, "ease", "linear", "easing curve name")
	cmd.Flags().Float64Var(&curveT, "duration", config.DefaultDuration, "curve duration in seconds")
	cmd.Flags().Float64Var(&lower, "lower", 0, "lower bound")
	cmd.Flags().Float64Var(&upper, "upper", 1, "upper bound")
	cmd.Flags().Float64Var(&initial, "initial", 0, "initial value")
	cmd.Flags().Float64Var(&target, "target", 1, "animation target")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "tick rate")
	cmd.Flags().Float64Var(&maxTime, "max-time", config.DefaultMaxTime, "time cap in seconds")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and CLI flags. Flags that were
// set explicitly win over the config file, which wins over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	if cmd.Flags().Changed("law") {
		cfg.Law = law
	}
	if cmd.Flags().Changed("mass") {
		cfg.Spring.Mass = mass
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Spring.Stiffness = stiff
	}
	if cmd.Flags().Changed("damping") {
		cfg.Spring.Damping = damp
	}
	if cmd.Flags().Changed("ease") {
		cfg.Curve.Ease = ease
	}
	if cmd.Flags().Changed("duration") {
		cfg.Curve.Duration = curveT
	}
	if cmd.Flags().Changed("lower") {
		cfg.Lower = lower
	}
	if cmd.Flags().Changed("upper") {
		cfg.Upper = upper
	}
	if cmd.Flags().Changed("initial") {
		cfg.Initial = initial
	}
	if cmd.Flags().Changed("target") {
		cfg.Target = target
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("max-time") {
		cfg.MaxTime = maxTime
	}

	return cfg, nil
}

func runName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if preset != "" {
		return preset
	}
	return "run"
}

func runAnimation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctrl, err := cfg.BuildController()
	if err != nil {
		return err
	}

	if cfg.Repeat.Enabled {
		_, err = ctrl.Repeat(controller.RepeatConfig{
			Min:     cfg.Lower,
			Max:     cfg.Upper,
			Reverse: cfg.Repeat.Reverse,
			Period:  time.Duration(cfg.Repeat.Period * float64(time.Second)),
			Count:   cfg.Repeat.Count,
		})
	} else {
		_, err = ctrl.AnimateTo(cfg.Target)
	}
	if err != nil {
		return err
	}

	runner := scenario.New(ctrl)
	runner.AddMetric(metrics.NewOvershoot(cfg.Initial, cfg.Target))
	runner.AddMetric(metrics.NewSettleTime(cfg.Target, motion.DefaultTolerance))
	runner.AddMetric(metrics.NewPeakVelocity())
	runner.AddMetric(metrics.NewPathLength())

	name := runName(args)
	fmt.Printf("running %s...\n", name)
	start := time.Now()

	result, err := runner.Run(context.Background(), scenario.Config{FPS: cfg.FPS, MaxTime: cfg.MaxTime})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Law, cfg.FPS, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Trace))
	fmt.Printf("settled: %v\n", result.Settled)
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

	ctrl, err := cfg.BuildController()
	if err != nil {
		return err
	}

	if cfg.Repeat.Enabled {
		_, err = ctrl.Repeat(controller.RepeatConfig{
			Min:     cfg.Lower,
			Max:     cfg.Upper,
			Reverse: cfg.Repeat.Reverse,
			Period:  time.Duration(cfg.Repeat.Period * float64(time.Second)),
			Count:   cfg.Repeat.Count,
		})
	} else {
		_, err = ctrl.AnimateTo(cfg.Target)
	}
	if err != nil {
		return err
	}

	return viz.Run(ctrl, runName(args), cfg.FPS)
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
	fmt.Fprintln(w, "ID\tNAME\tLAW\tTIME\tFPS\tSAMPLES\tSETTLED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%v\n",
			run.ID,
			run.Name,
			run.Law,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FPS,
			run.Samples,
			run.Settled,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, values, velocities, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	result := &scenario.Result{
		Trace:   make([]scenario.Sample, len(values)),
		Metrics: meta.Metrics,
		Settled: meta.Settled,
	}
	for i := range values {
		result.Trace[i] = scenario.Sample{T: times[i], Value: values[i], Velocity: velocities[i]}
	}

	fmt.Print(viz.PlotTrace(meta.Name, result))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, values, velocities, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	result := &scenario.Result{
		Trace:   make([]scenario.Sample, len(values)),
		Metrics: meta.Metrics,
		Settled: meta.Settled,
	}
	for i := range values {
		result.Trace[i] = scenario.Sample{T: times[i], Value: values[i], Velocity: velocities[i]}
	}

	return storage.ExportJSONStdout(meta.Name, meta.Law, meta.FPS, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, values, velocities, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "value", "velocity"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(values[i], 'f', 6, 64),
			strconv.FormatFloat(velocities[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

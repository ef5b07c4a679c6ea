package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/powderbox/internal/automation"
	"github.com/san-kum/powderbox/internal/config"
	"github.com/san-kum/powderbox/internal/export"
	"github.com/san-kum/powderbox/internal/gui"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/metrics"
	"github.com/san-kum/powderbox/internal/render"
	"github.com/san-kum/powderbox/internal/sandbox"
	"github.com/san-kum/powderbox/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	scale      int
	brush      string
	sprite     string
	seed       uint64
	tps        int
	verbose    bool
	// bench
	ticks        int
	scenarioFile string
	plot         bool
	jsonOut      string
	csvOut       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "powderbox",
		Short:        "2d particle sandbox",
		SilenceUsage: true,
		RunE:         runWindow,
	}
	addSandboxFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the sandbox window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addSandboxFlags(runCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the sandbox in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTerminal,
	}
	addSandboxFlags(tuiCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run a scripted scenario headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addSandboxFlags(benchCmd)
	benchCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to run the built-in scenario for")
	benchCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	benchCmd.Flags().BoolVar(&plot, "plot", true, "plot step time and population")
	benchCmd.Flags().StringVar(&jsonOut, "json", "", "write the report as json to this file")
	benchCmd.Flags().StringVar(&csvOut, "csv", "", "write per-tick samples as csv to this file")

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list materials",
		Args:  cobra.NoArgs,
		RunE:  listMaterials,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	addSandboxFlags(configCmd)

	rootCmd.AddCommand(runCmd, tuiCmd, benchCmd, materialsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSandboxFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "window magnification")
	cmd.Flags().StringVar(&brush, "brush", config.DefaultBrush, "starting material")
	cmd.Flags().StringVar(&sprite, "sprite", config.DefaultSprite, "particle sprite ("+strings.Join(render.SpriteNames(), ", ")+")")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "colour seed (default: time based)")
	cmd.Flags().IntVar(&tps, "tps", config.DefaultTPS, "ticks per second")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log dropped spawns")
}

// resolveConfig layers preset, config file and explicit flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("scale") {
		cfg.Scale = scale
	}
	if cmd.Flags().Changed("brush") {
		cfg.Brush = brush
	}
	if cmd.Flags().Changed("sprite") {
		cfg.Sprite = sprite
	}
	if cmd.Flags().Changed("tps") {
		cfg.TPS = tps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := render.SpriteByName(cfg.Sprite); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loopOptions(out io.Writer) []sandbox.Option {
	return []sandbox.Option{
		sandbox.WithLogger(log.New(out, "powderbox: ", log.LstdFlags)),
		sandbox.WithVerbose(verbose),
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return gui.Run(ctx, cfg, loopOptions(os.Stderr)...)
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The alternate screen owns stderr, so logs go to a file.
	out := io.Discard
	if verbose {
		f, err := tea.LogToFile("powderbox.log", "")
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return tui.Run(cfg, loopOptions(out)...)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	scenario := automation.Rain(cfg.Width, cfg.Height, ticks)
	if scenarioFile != "" {
		scenario, err = automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
	}

	loop, err := sandbox.New(cfg, sandbox.Discard, loopOptions(os.Stderr)...)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults() {
		loop.AddMetric(m)
	}
	rec := &export.Recorder{}
	loop.AddObserver(rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %s (%s)\n\n", scenario.Name, scenario.Description)
	start := time.Now()
	if err := loop.Run(ctx, automation.NewPlayer(scenario)); err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKS\tPARTICLES\tDROPPED\tTIME\tTICKS/SEC")
	fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
		loop.Ticks(), loop.Len(), loop.Dropped(), elapsed.Round(time.Millisecond),
		float64(loop.Ticks())/elapsed.Seconds())
	fmt.Fprintln(w)

	values := loop.Metrics()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, values[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err := writeReport(&export.Report{
		Scenario:  scenario.Name,
		Seed:      cfg.Seed,
		Ticks:     loop.Ticks(),
		Particles: loop.Len(),
		Dropped:   loop.Dropped(),
		ElapsedMs: float64(elapsed.Microseconds()) / 1000,
		Metrics:   values,
		Samples:   rec.Samples(),
	}); err != nil {
		return err
	}

	if !plot || len(rec.Samples()) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(rec.StepMs(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("step time (ms)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(rec.Population(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("particles"),
	))
	return nil
}

func writeReport(rep *export.Report) error {
	if jsonOut != "" {
		f, err := os.Create(jsonOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteJSON(f, rep); err != nil {
			return err
		}
	}
	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteCSV(f, rep.Samples); err != nil {
			return err
		}
	}
	return nil
}

func listMaterials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTAG\tNAME\tMOBILITY\tSHAPE\tMASS\tBOUNCE\tFRICTION\tDESCRIPTION")
	for _, v := range material.All() {
		p, _ := material.Lookup(v)
		info, _ := material.InfoOf(v)
		fmt.Fprintf(w, "%c\t%s\t%s\t%s\t%s\t%.1f\t%.2f\t%.2f\t%s\n",
			info.Key, v, info.Name, p.Mobility, p.Shape.Kind, p.Mass, p.Restitution, p.Friction, info.Description)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tGRAVITY\tSUBSTEPS\tSPRITE\tBRUSH")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%.0f\t%d\t%s\t%s\n",
			name, cfg.Width, cfg.Height, cfg.Gravity.Y, cfg.Substeps, cfg.Sprite, cfg.Brush)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("seed") {
		cfg.Seed = 0
	}
	if len(args) == 0 {
		return config.Encode(os.Stdout, cfg)
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

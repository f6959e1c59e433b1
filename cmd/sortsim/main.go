package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/logging"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/trace"
	"github.com/spf13/cobra"
)

var (
	logLevel    string
	noColor     bool
	showMetrics bool
	configFile  string
	preset      string
	speed       float64
	size        int
	seed        int64
	input       []int
	theme       string
	headless    bool
	menu        bool
	output      string
	// Challenge mode
	level    int
	source   string
	maxMoves int
	campaign bool
	// Benchmark
	runs  int
	sizes []int

	logger = logging.NewNop()
	reg    = metrics.NewRegistry()
)

// main registers commands and flags and executes the root command, which
// plays a trace with default settings when no subcommand is given. It exits
// with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sortsim",
		Short:         "step through sorting algorithms one comparison at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(os.Stderr, lvl, noColor)
			slog.SetDefault(logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if showMetrics {
				return reg.WriteText(os.Stderr)
			}
			return nil
		},
		RunE: runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "dump counters to stderr on exit")
	addInputFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "replay a sort step by step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	addInputFlags(playCmd)
	playCmd.Flags().BoolVar(&headless, "headless", false, "print steps to stdout instead of opening the TUI")
	playCmd.Flags().BoolVar(&menu, "menu", false, "start from the algorithm menu")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print every step of a sort",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printTrace,
	}
	addInputFlags(traceCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	explainCmd := &cobra.Command{
		Use:   "explain [algorithm]",
		Short: "explain how an algorithm works",
		Args:  cobra.ExactArgs(1),
		RunE:  explainAlgorithm,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "plot remaining inversions per step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotTrace,
	}
	addInputFlags(plotCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [algorithm]",
		Short: "export a trace to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	addInputFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [algorithm]",
		Short: "export a trace to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	addInputFlags(exportCSVCmd)
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm...]",
		Short: "benchmark trace generation",
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().IntVar(&runs, "runs", 200, "inputs per algorithm and size")
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{4, 8, 16, 32}, "input sizes")
	benchCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	challengeCmd := &cobra.Command{
		Use:   "challenge [algorithm]",
		Short: "sort a level by hand, one swap at a time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runChallenge,
	}
	challengeCmd.Flags().IntVar(&level, "level", config.DefaultLevel, "starting level (1-3)")
	challengeCmd.Flags().StringVar(&source, "source", "manual", "swap source (manual, random, solution)")
	challengeCmd.Flags().IntVar(&maxMoves, "moves", 0, "stop after this many swaps per level (0 for no limit)")
	challengeCmd.Flags().BoolVar(&campaign, "campaign", false, "continue to the next level after each completed one")
	challengeCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	challengeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list input presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted batch of traces from yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(playCmd, traceCmd, listCmd, explainCmd, plotCmd, exportJSONCmd, exportCSVCmd, benchCmd, challengeCmd, presetsCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed (0.5-3.0)")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "random input size")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntSliceVar(&input, "input", nil, "explicit input, e.g. --input 5,3,1")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset input")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
}

// resolveConfig layers defaults, the preset, the config file and finally
// the flags the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, errors.Newf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
		cfg.Preset = preset
	}

	if configFile != "" {
		loaded, err := config.LoadWith(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("input") {
		cfg.Input = input
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("level") {
		cfg.Level = level
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "algorithm", cfg.Algorithm, "speed", cfg.Speed, "seed", cfg.Seed, "preset", cfg.Preset)
	return cfg, nil
}

// loadTrace resolves the config and generates the trace it describes.
func loadTrace(cmd *cobra.Command, args []string) (*config.Config, algorithm.Info, *trace.Trace, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, algorithm.Info{}, nil, err
	}
	id, err := cfg.AlgorithmID()
	if err != nil {
		return nil, algorithm.Info{}, nil, err
	}
	info, err := algorithm.Lookup(id)
	if err != nil {
		return nil, algorithm.Info{}, nil, err
	}
	tr, err := generate(id, cfg.Sequence(rand.New(rand.NewSource(cfg.Seed))))
	if err != nil {
		return nil, algorithm.Info{}, nil, err
	}
	return cfg, info, tr, nil
}

func generate(id algorithm.ID, seq []int) (*trace.Trace, error) {
	tr, err := algorithm.Generate(id, seq)
	if err != nil {
		return nil, err
	}
	reg.ObserveTrace(string(id), tr)
	logger.Debug("trace generated", "algorithm", string(id), "input", seq, "steps", tr.Len())
	return tr, nil
}

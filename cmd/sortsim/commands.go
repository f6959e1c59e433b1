package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/bench"
	"github.com/san-kum/sortsim/internal/challenge"
	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/export"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/player"
	"github.com/san-kum/sortsim/internal/scenario"
	"github.com/san-kum/sortsim/internal/trace"
	"github.com/san-kum/sortsim/internal/viz"
	"github.com/spf13/cobra"
)

// randomMoveCap bounds a random-source challenge left without --moves.
const randomMoveCap = 1000

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, info, tr, err := loadTrace(cmd, args)
	if err != nil {
		return err
	}
	viz.SetTheme(cfg.Theme)

	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	next := func() []int {
		return config.RandomSequence(rng, cfg.Size, cfg.MinValue, cfg.MaxValue)
	}

	if menu {
		return viz.RunMenu(next, cfg.Speed)
	}

	p := player.New(nil)
	reg.Attach(p)

	if !headless {
		p.Reset(tr)
		return viz.Run(p, info, cfg.Speed, next)
	}

	out := cmd.OutOrStdout()
	total := tr.Len()
	p.AddObserver(player.ObserverFunc(func(cursor int, step trace.Step) {
		fmt.Fprintf(out, "[%d/%d] %s\n", cursor+1, total, step)
	}))
	done := make(chan struct{})
	p.OnComplete(func() { close(done) })
	p.Reset(tr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("playing", "algorithm", string(info.ID), "steps", total, "speed", cfg.Speed,
		"cadence", player.Cadence(cfg.Speed))
	p.Play(cfg.Speed)

	select {
	case <-done:
		logger.Info("sorted", "algorithm", string(info.ID), "final", tr.Final().Sequence)
	case <-ctx.Done():
		p.Pause()
		logger.Warn("interrupted", "cursor", p.Cursor(), "steps", total)
	}
	return nil
}

func printTrace(cmd *cobra.Command, args []string) error {
	_, info, tr, err := loadTrace(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s on %v\n\n", info.Name, tr.Input())
	for i, step := range tr.All() {
		fmt.Fprintf(out, "%3d  %s\n", i, step)
	}
	fmt.Fprintln(out)

	summary := metrics.Summarize(tr)
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Metric", "Value"})
	for _, name := range names {
		table.Append([]string{name, strconv.FormatFloat(summary[name], 'f', -1, 64)})
	}
	table.Render()
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Name", "Difficulty", "Description"})
	table.SetColWidth(60)
	for _, info := range algorithm.All() {
		table.Append([]string{string(info.ID), info.Name, string(info.Difficulty), info.Description})
	}
	table.Render()
	return nil
}

func explainAlgorithm(cmd *cobra.Command, args []string) error {
	id, err := algorithm.Parse(args[0])
	if err != nil {
		return err
	}
	info, err := algorithm.Lookup(id)
	if err != nil {
		return err
	}

	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return errors.Wrap(err, "creating markdown renderer")
	}
	rendered, err := r.Render(info.Markdown())
	if err != nil {
		return errors.Wrap(err, "rendering explanation")
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

func plotTrace(cmd *cobra.Command, args []string) error {
	_, info, tr, err := loadTrace(cmd, args)
	if err != nil {
		return err
	}
	caption := fmt.Sprintf("%s: inversions left per step (%d steps)", info.Name, tr.Len())
	fmt.Fprintln(cmd.OutOrStdout(), viz.InversionChart(tr, -1, 80, 12, caption))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	_, info, tr, err := loadTrace(cmd, args)
	if err != nil {
		return err
	}
	if err := export.ToFile(output, cmd.OutOrStdout(), func(w io.Writer) error { return export.WriteJSON(w, info.ID, tr) }); err != nil {
		return err
	}
	logExported(output, "json", tr)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, _, tr, err := loadTrace(cmd, args)
	if err != nil {
		return err
	}
	if err := export.ToFile(output, cmd.OutOrStdout(), func(w io.Writer) error { return export.WriteCSV(w, tr) }); err != nil {
		return err
	}
	logExported(output, "csv", tr)
	return nil
}

func logExported(path, format string, tr *trace.Trace) {
	if path != "" && path != "-" {
		logger.Info("exported trace", "format", format, "path", path, "steps", tr.Len())
	}
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	ids := algorithm.IDs()
	if len(args) > 0 {
		ids = ids[:0]
		for _, arg := range args {
			id, err := algorithm.Parse(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("benchmarking", "algorithms", len(ids), "sizes", sizes, "runs", runs, "seed", seed)
	start := time.Now()
	results, err := bench.Run(cmd.Context(), bench.Options{
		Algorithms: ids,
		Sizes:      sizes,
		Runs:       runs,
		Seed:       seed,
		MinValue:   config.DefaultMinValue,
		MaxValue:   config.DefaultMaxValue,
	})
	if err != nil {
		return err
	}
	logger.Info("benchmark finished", "elapsed", time.Since(start))

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Algorithm", "Size", "Runs", "Mean Steps", "Mean Swaps", "P50", "P99", "Max"})
	for _, r := range results {
		table.Append([]string{
			string(r.Algorithm),
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Runs),
			fmt.Sprintf("%.1f", r.MeanSteps),
			fmt.Sprintf("%.1f", r.MeanSwaps),
			r.P50.String(),
			r.P99.String(),
			r.Max.String(),
		})
	}
	table.Render()
	return nil
}

func runChallenge(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	id, err := cfg.AlgorithmID()
	if err != nil {
		return err
	}
	info, err := algorithm.Lookup(id)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sess, err := challenge.NewSession(id, rng, logger)
	if err != nil {
		return err
	}
	if err := sess.Start(cfg.Level); err != nil {
		return err
	}

	var manual *challenge.ReaderSource
	if source == "manual" {
		manual = challenge.NewReaderSource(cmd.InOrStdin())
	}
	limit := maxMoves
	if source == "random" && limit == 0 {
		limit = randomMoveCap
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	for {
		src, err := swapSource(source, sess, rng, manual)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Level %d · %s\n  hint: %s\n  sequence: %v\n", sess.Level(), info.Name, info.Hint, sess.Sequence())
		if manual != nil {
			fmt.Fprintln(out, `  enter two positions to swap, e.g. "0 1"`)
		}

		err = sess.Run(ctx, src, limit, func(fb challenge.Feedback) {
			reg.ObserveMove(fb.FollowsAlgorithm)
			mark := "✗"
			if fb.FollowsAlgorithm {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s swap %d,%d -> %v", mark, fb.Swap.I, fb.Swap.J, fb.Sequence)
			if !fb.RuleOK {
				fmt.Fprintf(out, " (not a %s move)", info.Name)
			}
			fmt.Fprintln(out)
		})
		if err != nil {
			return err
		}
		if manual != nil && manual.Err() != nil {
			return manual.Err()
		}

		if !sess.Completed() {
			fmt.Fprintf(out, "Level %d unfinished after %d moves\n", sess.Level(), sess.Moves())
			return nil
		}
		fmt.Fprintf(out, "Level %d complete in %d moves!\n\n", sess.Level(), sess.Moves())
		if !campaign || sess.Level() >= challenge.MaxLevel {
			return nil
		}
		if err := sess.NextLevel(); err != nil {
			return err
		}
	}
}

func swapSource(name string, sess *challenge.Session, rng *rand.Rand, manual *challenge.ReaderSource) (challenge.SwapSource, error) {
	switch name {
	case "manual":
		return manual, nil
	case "random":
		return challenge.NewRandomSource(rng), nil
	case "solution":
		return challenge.SolutionSource(sess.Trace()), nil
	}
	return nil, errors.Newf("unknown swap source: %s (available: manual, random, solution)", name)
}

func listPresets(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Preset", "Input", "Size", "Level"})
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		in, sz, lvl := "random", "-", "-"
		if p.Input != nil {
			in = fmt.Sprint(p.Input)
			sz = strconv.Itoa(len(p.Input))
		}
		if p.Size != 0 {
			sz = strconv.Itoa(p.Size)
		}
		if p.Level != 0 {
			lvl = strconv.Itoa(p.Level)
		}
		table.Append([]string{name, in, sz, lvl})
	}
	table.Render()
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := scenario.RunScenario(ctx, sc, cmd.OutOrStdout(), logger)
	for _, r := range results {
		reg.ObserveTrace(string(r.Algorithm), r.Trace)
	}
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"#", "Algorithm", "Input", "Steps", "Comparisons", "Swaps"})
	for i, r := range results {
		table.Append([]string{
			strconv.Itoa(i + 1),
			string(r.Algorithm),
			fmt.Sprint(r.Input),
			strconv.Itoa(r.Trace.Len()),
			strconv.FormatFloat(r.Metrics["comparisons"], 'f', -1, 64),
			strconv.FormatFloat(r.Metrics["swaps"], 'f', -1, 64),
		})
	}
	table.Render()
	return nil
}

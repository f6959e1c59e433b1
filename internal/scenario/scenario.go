// Package scenario runs scripted batches of traces described in YAML.
package scenario

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/export"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/trace"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of trace runs
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single run. Input wins over Preset, which wins over a random
// input of Size values drawn with Seed.
type Step struct {
	Algorithm string `yaml:"algorithm"`
	Input     []int  `yaml:"input,omitempty"`
	Preset    string `yaml:"preset,omitempty"`
	Size      int    `yaml:"size,omitempty"`
	Seed      int64  `yaml:"seed,omitempty"`
	// SaveAs exports the trace; the format follows Format (json or csv).
	SaveAs string `yaml:"save_as,omitempty"`
	Format string `yaml:"format,omitempty"`
}

type Result struct {
	Algorithm algorithm.ID
	Input     []int
	Trace     *trace.Trace
	Metrics   map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.Newf("scenario %s has no steps", path)
	}
	return &sc, nil
}

// RunScenario executes every step in order and stops at the first failure,
// returning the results gathered so far. Steps saved to "-" write to out.
func RunScenario(ctx context.Context, sc *Scenario, out io.Writer, logger *slog.Logger) ([]Result, error) {
	results := make([]Result, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Info("running step", "scenario", sc.Name, "step", i+1, "of", len(sc.Steps), "algorithm", step.Algorithm)

		res, err := runStep(step)
		if err != nil {
			return results, errors.Wrapf(err, "step %d", i+1)
		}
		if step.SaveAs != "" {
			if err := save(step, res, out); err != nil {
				return results, errors.Wrapf(err, "step %d", i+1)
			}
			logger.Info("saved trace", "path", step.SaveAs, "steps", res.Trace.Len())
		}
		results = append(results, res)
	}

	return results, nil
}

func runStep(step Step) (Result, error) {
	id, err := algorithm.Parse(step.Algorithm)
	if err != nil {
		return Result{}, err
	}

	cfg := config.DefaultConfig()
	if step.Preset != "" {
		p := config.GetPreset(step.Preset)
		if p == nil {
			return Result{}, errors.Newf("unknown preset: %s", step.Preset)
		}
		cfg.Apply(p)
		cfg.Preset = step.Preset
	}
	if step.Input != nil {
		cfg.Input = step.Input
	}
	if step.Size != 0 {
		cfg.Size = step.Size
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	input := cfg.Sequence(rand.New(rand.NewSource(step.Seed)))
	tr, err := algorithm.Generate(id, input)
	if err != nil {
		return Result{}, err
	}
	return Result{Algorithm: id, Input: input, Trace: tr, Metrics: metrics.Summarize(tr)}, nil
}

func save(step Step, res Result, out io.Writer) error {
	switch step.Format {
	case "", "json":
		return export.ToFile(step.SaveAs, out, func(w io.Writer) error { return export.WriteJSON(w, res.Algorithm, res.Trace) })
	case "csv":
		return export.ToFile(step.SaveAs, out, func(w io.Writer) error { return export.WriteCSV(w, res.Trace) })
	}
	return errors.Newf("unknown export format: %s", step.Format)
}

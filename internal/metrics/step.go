package metrics

import (
	"github.com/san-kum/sortsim/internal/trace"
)

// Metric accumulates a value over the steps of a trace.
type Metric interface {
	Name() string
	Observe(s trace.Step)
	Value() float64
	Reset()
}

// Comparisons counts steps that compare two positions.
type Comparisons struct{ count int }

func NewComparisons() *Comparisons { return &Comparisons{} }

func (c *Comparisons) Name() string { return "comparisons" }

func (c *Comparisons) Observe(s trace.Step) {
	if len(s.Comparing) == 2 {
		c.count++
	}
}

func (c *Comparisons) Value() float64 { return float64(c.count) }
func (c *Comparisons) Reset()         { c.count = 0 }

// Swaps counts steps that exchange two positions. Insertion shifts are
// recorded as swaps and count here.
type Swaps struct{ count int }

func NewSwaps() *Swaps { return &Swaps{} }

func (s *Swaps) Name() string { return "swaps" }

func (s *Swaps) Observe(step trace.Step) {
	if len(step.Mutated) == 2 {
		s.count++
	}
}

func (s *Swaps) Value() float64 { return float64(s.count) }
func (s *Swaps) Reset()         { s.count = 0 }

// Writes counts positions written across all steps.
type Writes struct{ count int }

func NewWrites() *Writes { return &Writes{} }

func (w *Writes) Name() string { return "writes" }

func (w *Writes) Observe(s trace.Step) {
	w.count += len(s.Mutated)
}

func (w *Writes) Value() float64 { return float64(w.count) }
func (w *Writes) Reset()         { w.count = 0 }

// InitialInversions records the number of out-of-order pairs in the first
// observed step, a measure of how unsorted the input was.
type InitialInversions struct {
	value    int
	observed bool
}

func NewInitialInversions() *InitialInversions { return &InitialInversions{} }

func (i *InitialInversions) Name() string { return "initial_inversions" }

func (i *InitialInversions) Observe(s trace.Step) {
	if i.observed {
		return
	}
	i.value = Inversions(s.Sequence)
	i.observed = true
}

func (i *InitialInversions) Value() float64 { return float64(i.value) }

func (i *InitialInversions) Reset() {
	i.value = 0
	i.observed = false
}

// Defaults returns a fresh set of the standard step metrics.
func Defaults() []Metric {
	return []Metric{
		NewComparisons(),
		NewSwaps(),
		NewWrites(),
		NewInitialInversions(),
	}
}

// Summarize runs ms over every step of tr. With no metrics it uses
// Defaults.
func Summarize(tr *trace.Trace, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Defaults()
	}
	for _, m := range ms {
		m.Reset()
	}
	for _, s := range tr.All() {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms)+1)
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	out["steps"] = float64(tr.Len())
	return out
}

// Inversions counts pairs i < j with seq[i] > seq[j].
func Inversions(seq []int) int {
	n := 0
	for i := range seq {
		for j := i + 1; j < len(seq); j++ {
			if seq[i] > seq[j] {
				n++
			}
		}
	}
	return n
}

// InversionSeries returns the inversion count of every step.
func InversionSeries(tr *trace.Trace) []float64 {
	out := make([]float64, 0, tr.Len())
	for _, s := range tr.All() {
		out = append(out, float64(Inversions(s.Sequence)))
	}
	return out
}

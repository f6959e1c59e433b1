package trace

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Step is a snapshot of an algorithm at one instant.
type Step struct {
	Description string `json:"description"`
	Sequence    []int  `json:"sequence"`
	Comparing   []int  `json:"comparing_indices,omitempty"`
	Mutated     []int  `json:"mutated_indices,omitempty"`
}

func (s Step) Clone() Step {
	return Step{
		Description: s.Description,
		Sequence:    slices.Clone(s.Sequence),
		Comparing:   slices.Clone(s.Comparing),
		Mutated:     slices.Clone(s.Mutated),
	}
}

// IsComparing reports whether position i is tagged as compared.
func (s Step) IsComparing(i int) bool { return slices.Contains(s.Comparing, i) }

// IsMutated reports whether position i was written in this step.
func (s Step) IsMutated(i int) bool { return slices.Contains(s.Mutated, i) }

func (s Step) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", s.Sequence)
	if len(s.Comparing) > 0 {
		fmt.Fprintf(&b, " cmp=%v", s.Comparing)
	}
	if len(s.Mutated) > 0 {
		fmt.Fprintf(&b, " mut=%v", s.Mutated)
	}
	b.WriteString(" ")
	b.WriteString(s.Description)
	return b.String()
}

// Trace is the ordered, immutable list of steps produced by one generator
// run. A Trace always holds at least two steps.
type Trace struct {
	steps []Step
}

func (t *Trace) Len() int { return len(t.steps) }

// Step returns a copy of step i. It panics if i is out of range.
func (t *Trace) Step(i int) Step {
	if i < 0 || i >= len(t.steps) {
		panic(errors.AssertionFailedf("trace: step %d out of range [0, %d)", i, len(t.steps)))
	}
	return t.steps[i].Clone()
}

func (t *Trace) First() Step { return t.Step(0) }
func (t *Trace) Final() Step { return t.Step(len(t.steps) - 1) }

// Input returns a copy of the sequence the trace was generated from.
func (t *Trace) Input() []int { return slices.Clone(t.steps[0].Sequence) }

// Snapshots returns a copy of every step's sequence, in order.
func (t *Trace) Snapshots() [][]int {
	out := make([][]int, len(t.steps))
	for i, s := range t.steps {
		out[i] = slices.Clone(s.Sequence)
	}
	return out
}

// All iterates over copies of the steps.
func (t *Trace) All() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for i, s := range t.steps {
			if !yield(i, s.Clone()) {
				return
			}
		}
	}
}

// recorder accumulates steps while an algorithm mutates arr in place.
type recorder struct {
	arr   []int
	steps []Step
}

func newRecorder(input []int) *recorder {
	r := &recorder{arr: slices.Clone(input)}
	r.record("Start with the unsorted array", nil, nil)
	return r
}

func (r *recorder) record(desc string, comparing, mutated []int) {
	r.steps = append(r.steps, Step{
		Description: desc,
		Sequence:    slices.Clone(r.arr),
		Comparing:   comparing,
		Mutated:     mutated,
	})
}

func (r *recorder) swap(i, j int) {
	r.arr[i], r.arr[j] = r.arr[j], r.arr[i]
}

func (r *recorder) finish() *Trace {
	r.record("The array is now sorted!", nil, nil)
	return &Trace{steps: r.steps}
}

// trivial returns the two-step trace for inputs that are sorted by
// definition.
func trivial(input []int) *Trace {
	r := newRecorder(input)
	r.record("The array is already sorted!", nil, nil)
	return &Trace{steps: r.steps}
}

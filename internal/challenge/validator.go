package challenge

import (
	"slices"

	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/trace"
)

// Validator checks candidate sequences against the snapshots of a trace.
type Validator struct {
	snapshots [][]int
	final     []int
}

func NewValidator(tr *trace.Trace) *Validator {
	return &Validator{snapshots: tr.Snapshots(), final: tr.Final().Sequence}
}

// Matches reports whether seq equals any snapshot of the trace.
func (v *Validator) Matches(seq []int) bool {
	for _, s := range v.snapshots {
		if slices.Equal(s, seq) {
			return true
		}
	}
	return false
}

// IsComplete reports whether seq is sorted and equal to the final snapshot.
func (v *Validator) IsComplete(seq []int) bool {
	return slices.IsSorted(seq) && slices.Equal(seq, v.final)
}

// IsCorrectMove applies the per-algorithm move rule to a swap of positions
// from and to. Bubble sort only ever swaps neighbours.
//
// TODO(challenge): selection and insertion accept every move; tighten them
// to "from is the pass position" and "to is adjacent to the key" once the
// level mode scoring settles on one rule.
func IsCorrectMove(id algorithm.ID, from, to int) bool {
	switch id {
	case algorithm.Bubble:
		return to-from == 1 || from-to == 1
	default:
		return true
	}
}

// Package trace records the execution of comparison sorts as replayable
// step sequences.
//
// Each generator runs one algorithm over a copy of its input and appends a
// [Step] for every comparison and every write:
//
//   - [Bubble]: adjacent compare-and-swap passes
//   - [Selection]: minimum search followed by one swap per position
//   - [Insertion]: backward shifts of a key into the sorted prefix
//
// Every step holds a full snapshot of the values, so any step renders on
// its own. The first step is the input and the last step is its sorted
// permutation. Shifts are recorded as adjacent swaps, which keeps every
// snapshot a permutation of the input.
//
// # Example
//
//	tr := trace.Bubble([]int{3, 1, 2})
//	for i, s := range tr.All() {
//		fmt.Println(i, s)
//	}
//
// Traces are immutable. Accessors return copies.
package trace

// Package challenge implements the swap-driven level mode: a session holds
// the sequence the player is sorting by hand, validates every swap against
// the snapshots of the algorithm's trace, and reports completion once the
// sequence matches the trace's final step.
package challenge

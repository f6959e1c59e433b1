// Package viz provides the terminal front end for replaying sort traces.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: step player view with bars, narration and an inversion chart
//   - [Menu]: algorithm picker that opens a [Model] for the chosen algorithm
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space  - Play/Pause
//	←/h →/l - Step backward/forward
//	+/-    - Change speed by 0.5x
//	R      - Rewind to the first step
//	N      - New random input
//	C      - Toggle the inversion chart
//	T      - Cycle color themes
//	?      - Show help overlay
package viz

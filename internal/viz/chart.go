package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/trace"
)

// InversionChart plots the number of inversions left at every step of tr
// up to and including step upto. A negative upto plots the whole trace.
func InversionChart(tr *trace.Trace, upto, width, height int, caption string) string {
	series := metrics.InversionSeries(tr)
	if upto >= 0 && upto+1 < len(series) {
		series = series[:upto+1]
	}
	// asciigraph needs two points to draw a line.
	if len(series) == 1 {
		series = append(series, series[0])
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(series, opts...)
}

package metrics

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/san-kum/sortsim/internal/player"
	"github.com/san-kum/sortsim/internal/trace"
)

// Registry collects process-wide counters for generated traces, playback
// and challenge moves.
type Registry struct {
	reg *prometheus.Registry

	TracesGenerated   *prometheus.CounterVec
	TraceSteps        *prometheus.HistogramVec
	PlayerSteps       prometheus.Counter
	PlayerCompletions prometheus.Counter
	ChallengeMoves    *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		TracesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortsim",
			Name:      "traces_generated_total",
			Help:      "Traces generated, by algorithm.",
		}, []string{"algorithm"}),
		TraceSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sortsim",
			Name:      "trace_steps",
			Help:      "Number of steps per generated trace.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 8),
		}, []string{"algorithm"}),
		PlayerSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sortsim",
			Name:      "player_steps_total",
			Help:      "Steps presented by the player.",
		}),
		PlayerCompletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sortsim",
			Name:      "player_completions_total",
			Help:      "Runs that reached the last step.",
		}),
		ChallengeMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortsim",
			Name:      "challenge_moves_total",
			Help:      "Challenge swaps, by whether they matched a trace step.",
		}, []string{"result"}),
	}
	r.reg.MustRegister(r.TracesGenerated, r.TraceSteps, r.PlayerSteps, r.PlayerCompletions, r.ChallengeMoves)
	return r
}

func (r *Registry) ObserveTrace(algorithm string, tr *trace.Trace) {
	r.TracesGenerated.WithLabelValues(algorithm).Inc()
	r.TraceSteps.WithLabelValues(algorithm).Observe(float64(tr.Len()))
}

// Attach counts every step and completion of p.
func (r *Registry) Attach(p *player.Player) {
	p.AddObserver(player.ObserverFunc(func(int, trace.Step) { r.PlayerSteps.Inc() }))
	p.OnComplete(r.PlayerCompletions.Inc)
}

func (r *Registry) ObserveMove(matched bool) {
	result := "miss"
	if matched {
		result = "match"
	}
	r.ChallengeMoves.WithLabelValues(result).Inc()
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "writing %s", mf.GetName())
		}
	}
	return nil
}

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/san-kum/sortsim/internal/player"
	"github.com/san-kum/sortsim/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryPlayer(t *testing.T) {
	r := NewRegistry()
	clock := player.NewManualClock()
	p := player.New(clock)
	r.Attach(p)

	tr := trace.Bubble([]int{2, 1})
	r.ObserveTrace("bubble", tr)
	p.Reset(tr)
	p.Play(3)
	clock.Advance(time.Minute)

	assert.Equal(t, float64(tr.Len()), testutil.ToFloat64(r.PlayerSteps))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.PlayerCompletions))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.TracesGenerated.WithLabelValues("bubble")))
}

func TestRegistryWriteText(t *testing.T) {
	r := NewRegistry()
	r.ObserveMove(true)
	r.ObserveMove(false)
	r.ObserveMove(true)

	var buf strings.Builder
	require.NoError(t, r.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, `sortsim_challenge_moves_total{result="match"} 2`)
	assert.Contains(t, out, `sortsim_challenge_moves_total{result="miss"} 1`)
	assert.Contains(t, out, "sortsim_player_completions_total 0")
}

package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "bubble.csv")
	path := writeScenario(t, `
name: warmup
steps:
  - algorithm: bubble
    input: [3, 1, 2]
    save_as: `+out+`
    format: csv
  - algorithm: Selection
    preset: reversed
  - algorithm: insertion
    size: 7
    seed: 3
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "warmup", sc.Name)

	results, err := RunScenario(context.Background(), sc, io.Discard, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, algorithm.Bubble, results[0].Algorithm)
	assert.Equal(t, 9.0, results[0].Metrics["steps"])
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, results[1].Input)
	assert.Len(t, results[2].Input, 7)
	assert.FileExists(t, out)
}

func TestRunScenarioSavesDashToOut(t *testing.T) {
	sc := &Scenario{Name: "piped", Steps: []Step{
		{Algorithm: "selection", Input: []int{2, 1}, SaveAs: "-"},
	}}

	var out bytes.Buffer
	results, err := RunScenario(context.Background(), sc, &out, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, results, 1)

	var data struct {
		Algorithm string `json:"algorithm"`
		Steps     int    `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &data))
	assert.Equal(t, "selection", data.Algorithm)
	assert.Equal(t, results[0].Trace.Len(), data.Steps)
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{Name: "broken", Steps: []Step{
		{Algorithm: "bubble", Input: []int{2, 1}},
		{Algorithm: "quick"},
		{Algorithm: "bubble"},
	}}

	results, err := RunScenario(context.Background(), sc, io.Discard, logging.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, algorithm.ErrUnknown)
	assert.Contains(t, err.Error(), "step 2")
	assert.Len(t, results, 1)
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunScenario(ctx, &Scenario{Steps: []Step{{Algorithm: "bubble"}}}, io.Discard, logging.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadScenarioErrors(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadScenario(writeScenario(t, "name: empty\n"))
	assert.Error(t, err)

	_, err = LoadScenario(writeScenario(t, "steps: [oops"))
	assert.Error(t, err)
}

func TestUnknownFormat(t *testing.T) {
	sc := &Scenario{Steps: []Step{{
		Algorithm: "bubble",
		Input:     []int{1},
		SaveAs:    filepath.Join(t.TempDir(), "out.xml"),
		Format:    "xml",
	}}}
	_, err := RunScenario(context.Background(), sc, io.Discard, logging.NewNop())
	assert.Error(t, err)
}

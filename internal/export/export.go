package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/trace"
)

type ExportData struct {
	Algorithm string             `json:"algorithm"`
	Name      string             `json:"name"`
	Input     []int              `json:"input"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	Trace     []trace.Step       `json:"trace"`
}

func newExportData(id algorithm.ID, tr *trace.Trace) (ExportData, error) {
	info, err := algorithm.Lookup(id)
	if err != nil {
		return ExportData{}, err
	}
	data := ExportData{
		Algorithm: string(id),
		Name:      info.Name,
		Input:     tr.Input(),
		Steps:     tr.Len(),
		Metrics:   metrics.Summarize(tr),
		Trace:     make([]trace.Step, 0, tr.Len()),
	}
	for _, s := range tr.All() {
		data.Trace = append(data.Trace, s)
	}
	return data, nil
}

// WriteJSON writes tr as indented JSON.
func WriteJSON(w io.Writer, id algorithm.ID, tr *trace.Trace) error {
	data, err := newExportData(id, tr)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(data), "encoding trace")
}

var csvHeader = []string{"step", "description", "sequence", "comparing", "mutated", "inversions"}

// WriteCSV writes one row per step. Position lists are space separated.
func WriteCSV(w io.Writer, tr *trace.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for i, s := range tr.All() {
		row := []string{
			strconv.Itoa(i),
			s.Description,
			joinInts(s.Sequence),
			joinInts(s.Comparing),
			joinInts(s.Mutated),
			strconv.Itoa(metrics.Inversions(s.Sequence)),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "writing csv row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// ToFile creates path and hands it to write. An empty path or "-" writes to
// the stdout writer.
func ToFile(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

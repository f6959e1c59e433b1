package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/trace"
)

func TestWriteJSON(t *testing.T) {
	tr := trace.Bubble([]int{3, 1, 2})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, algorithm.Bubble, tr); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Algorithm != "bubble" {
		t.Errorf("expected algorithm bubble, got %s", data.Algorithm)
	}
	if data.Steps != tr.Len() || len(data.Trace) != tr.Len() {
		t.Errorf("expected %d steps, got %d/%d", tr.Len(), data.Steps, len(data.Trace))
	}
	if data.Metrics["swaps"] != 2 {
		t.Errorf("expected 2 swaps, got %f", data.Metrics["swaps"])
	}
	if got := data.Trace[len(data.Trace)-1].Sequence; len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("unexpected final sequence %v", got)
	}
}

func TestWriteJSONUnknownAlgorithm(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, algorithm.ID("quick"), trace.Bubble([]int{1})); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestWriteCSV(t *testing.T) {
	tr := trace.Insertion([]int{2, 1})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tr); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(rows) != tr.Len()+1 {
		t.Fatalf("expected %d rows, got %d", tr.Len()+1, len(rows))
	}
	if rows[0][0] != "step" {
		t.Errorf("expected header, got %v", rows[0])
	}
	if rows[1][2] != "2 1" || rows[1][5] != "1" {
		t.Errorf("unexpected first row %v", rows[1])
	}
	if rows[3][3] != "0 1" {
		t.Errorf("expected comparison of 0 1, got %q", rows[3][3])
	}
	if last := rows[len(rows)-1]; last[2] != "1 2" || last[5] != "0" {
		t.Errorf("unexpected last row %v", last)
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	tr := trace.Selection([]int{2, 1})

	if err := ToFile(path, io.Discard, func(w io.Writer) error { return WriteCSV(w, tr) }); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("csv file not created")
	}
}

func TestToFileDashWritesToStdoutWriter(t *testing.T) {
	tr := trace.Selection([]int{2, 1})

	for _, path := range []string{"", "-"} {
		var buf bytes.Buffer
		if err := ToFile(path, &buf, func(w io.Writer) error { return WriteJSON(w, algorithm.Selection, tr) }); err != nil {
			t.Fatalf("export to %q failed: %v", path, err)
		}
		var data ExportData
		if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
			t.Fatalf("export to %q produced invalid json: %v", path, err)
		}
		if data.Steps != tr.Len() {
			t.Errorf("expected %d steps, got %d", tr.Len(), data.Steps)
		}
	}
}

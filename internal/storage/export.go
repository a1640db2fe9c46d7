package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/ravn-k/threebody/internal/gravity"
)

// ExportData is the flat JSON shape for downstream tooling: sample times
// plus the full state rows and per-body position triples.
type ExportData struct {
	Scenario string             `json:"scenario"`
	G        float64            `json:"g"`
	Masses   [3]float64         `json:"masses"`
	Rtol     float64            `json:"rtol"`
	Atol     float64            `json:"atol"`
	Success  bool               `json:"success"`
	Message  string             `json:"message,omitempty"`
	Samples  int                `json:"samples"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Bodies   [3][][3]float64    `json:"bodies"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

func buildExport(meta *RunMetadata, res *gravity.Result) ExportData {
	data := ExportData{
		Scenario: meta.Scenario,
		G:        meta.G,
		Masses:   meta.Masses,
		Rtol:     meta.Rtol,
		Atol:     meta.Atol,
		Success:  res.Success,
		Message:  res.Message,
		Samples:  len(res.Times),
		Times:    res.Times,
		States:   make([][]float64, len(res.States)),
		Metrics:  meta.Metrics,
	}
	for i, st := range res.States {
		data.States[i] = st
	}
	for b := 0; b < gravity.NumBodies; b++ {
		data.Bodies[b] = make([][3]float64, len(res.Positions[b]))
		for i, p := range res.Positions[b] {
			data.Bodies[b][i] = [3]float64{p.X, p.Y, p.Z}
		}
	}
	return data
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, res *gravity.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(meta, res))
}

// ExportCSV writes a run's sampled states as CSV with the store's column
// layout.
func ExportCSV(w io.Writer, res *gravity.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, len(csvHeader))
	for i, st := range res.States {
		row[0] = strconv.FormatFloat(res.Times[i], 'f', 6, 64)
		for j, v := range st {
			row[j+1] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

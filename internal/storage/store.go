// Package storage persists finished runs to a data directory so the
// presentation commands (plot, animate, export) can work from saved
// trajectories instead of re-integrating.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ravn-k/threebody/internal/gravity"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the sidecar record for one saved run.
type RunMetadata struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	Timestamp time.Time `json:"timestamp"`

	G      float64    `json:"g"`
	Masses [3]float64 `json:"masses"`
	Start  float64    `json:"start"`
	End    float64    `json:"end"`
	Rtol   float64    `json:"rtol"`
	Atol   float64    `json:"atol"`

	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Samples  int    `json:"samples"`
	Steps    int    `json:"steps"`
	Rejected int    `json:"rejected"`

	Metrics map[string]float64 `json:"metrics,omitempty"`
}

var csvHeader = []string{
	"time",
	"x1", "y1", "z1", "x2", "y2", "z2", "x3", "y3", "z3",
	"vx1", "vy1", "vz1", "vx2", "vy2", "vz2", "vx3", "vy3", "vz3",
}

// Save writes metadata and the sampled state rows for a run and returns
// its id. Failed runs are saved too (metadata only carries the diagnostic;
// the CSV holds whatever rows exist, which for a failure is none).
func (s *Store) Save(scenario string, cfg gravity.Config, res *gravity.Result, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		G:         cfg.G,
		Start:     cfg.Start,
		End:       cfg.End,
		Rtol:      cfg.Rtol,
		Atol:      cfg.Atol,
		Success:   res.Success,
		Message:   res.Message,
		Samples:   len(res.Times),
		Steps:     res.Steps,
		Rejected:  res.Rejected,
		Metrics:   metrics,
	}
	for i, b := range cfg.Bodies {
		meta.Masses[i] = b.Mass
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	row := make([]string, len(csvHeader))
	for i, st := range res.States {
		row[0] = strconv.FormatFloat(res.Times[i], 'g', 17, 64)
		for j, v := range st {
			row[j+1] = strconv.FormatFloat(v, 'g', 17, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, w.Error()
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadResult reconstructs the trajectory of a saved run.
func (s *Store) LoadResult(runID string) (*gravity.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("load run %s: empty states file", runID)
	}

	res := &gravity.Result{
		Success:  meta.Success,
		Message:  meta.Message,
		Steps:    meta.Steps,
		Rejected: meta.Rejected,
	}
	for _, rec := range records[1:] {
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("load run %s: bad row width %d", runID, len(rec))
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("load run %s: %w", runID, err)
		}
		st := make(gravity.State, gravity.StateDim)
		for j := range st {
			if st[j], err = strconv.ParseFloat(rec[j+1], 64); err != nil {
				return nil, fmt.Errorf("load run %s: %w", runID, err)
			}
		}
		res.Times = append(res.Times, t)
		res.States = append(res.States, st)
	}
	for b := 0; b < gravity.NumBodies; b++ {
		res.Positions[b] = make([]gravity.Vec3, len(res.States))
		for i, st := range res.States {
			res.Positions[b][i] = st.Position(b)
		}
	}
	return res, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

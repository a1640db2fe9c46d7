package storage

import (
	"context"
	"testing"

	"github.com/ravn-k/threebody/internal/gravity"
)

func smallRun(t *testing.T) (gravity.Config, *gravity.Result) {
	t.Helper()
	cfg := gravity.Config{
		G: 1,
		Bodies: [3]gravity.Body{
			{Mass: 1, Position: gravity.Vec3{X: -1, Z: 0.1}, Velocity: gravity.Vec3{Y: 0.3}},
			{Mass: 1, Position: gravity.Vec3{X: 1, Z: -0.1}, Velocity: gravity.Vec3{Y: -0.3}},
			{Mass: 1, Position: gravity.Vec3{Y: 1}, Velocity: gravity.Vec3{Z: 0.1}},
		},
		Start:   0,
		End:     2,
		Samples: 20,
		Rtol:    1e-9,
		Atol:    1e-9,
	}
	res, err := gravity.Simulate(context.Background(), cfg)
	if err != nil || !res.Success {
		t.Fatalf("simulate: err=%v", err)
	}
	return cfg, res
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, res := smallRun(t)
	metrics := map[string]float64{"energy_drift": 1.5e-10}

	runID, err := store.Save("chaos", cfg, res, metrics)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if meta.ID != runID || meta.Scenario != "chaos" || !meta.Success {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.G != cfg.G || meta.Masses != [3]float64{1, 1, 1} || meta.End != cfg.End {
		t.Errorf("run parameters mismatch: %+v", meta)
	}
	if meta.Samples != len(res.Times) || meta.Metrics["energy_drift"] != 1.5e-10 {
		t.Errorf("sample count or metrics mismatch: %+v", meta)
	}

	got, err := store.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if len(got.Times) != len(res.Times) {
		t.Fatalf("got %d rows, want %d", len(got.Times), len(res.Times))
	}
	for i := range res.Times {
		if got.Times[i] != res.Times[i] {
			t.Fatalf("time %d changed in round trip: %g != %g", i, got.Times[i], res.Times[i])
		}
		for j := range res.States[i] {
			if got.States[i][j] != res.States[i][j] {
				t.Fatalf("state %d/%d changed in round trip", i, j)
			}
		}
	}
	for b := 0; b < gravity.NumBodies; b++ {
		if got.Positions[b][3] != res.Positions[b][3] {
			t.Errorf("body %d positions not reconstructed", b+1)
		}
	}
}

func TestStore_SaveFailedRun(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, _ := smallRun(t)
	failed := &gravity.Result{Success: false, Message: "step 12 (t=0.5): collapse"}

	runID, err := store.Save("chaos", cfg, failed, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Success || meta.Message == "" || meta.Samples != 0 {
		t.Errorf("failed run metadata mismatch: %+v", meta)
	}
}

func TestStore_List(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runs, err := store.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("empty store: runs=%d err=%v", len(runs), err)
	}

	cfg, res := smallRun(t)
	if _, err := store.Save("chaos", cfg, res, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].Scenario != "chaos" {
		t.Errorf("unexpected listing: %+v", runs)
	}
}

func TestStore_LoadMissingRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("nope_123"); err == nil {
		t.Error("expected error for missing run")
	}
}

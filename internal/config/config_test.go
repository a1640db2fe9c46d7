package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultScenario(t *testing.T) {
	sc := Default()
	if sc.G != DefaultG || sc.End != DefaultDuration || sc.Samples != DefaultSamples {
		t.Errorf("unexpected defaults: g=%g end=%g samples=%d", sc.G, sc.End, sc.Samples)
	}
	if sc.Rtol != DefaultRtol || sc.Atol != DefaultAtol {
		t.Errorf("unexpected tolerances: rtol=%g atol=%g", sc.Rtol, sc.Atol)
	}
	for i, b := range sc.Bodies {
		if b.Mass != 1 {
			t.Errorf("body %d mass %g, want 1", i+1, b.Mass)
		}
	}
	if sc.Bodies[0].Position.Z != 0.1 || sc.Bodies[1].Position.Z != -0.1 {
		t.Error("default scenario lost its out-of-plane offsets")
	}
	if err := sc.RunConfig().Validate(); err != nil {
		t.Errorf("default scenario does not validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset should return nil")
	}
	for _, name := range ListPresets() {
		sc := GetPreset(name)
		if sc == nil {
			t.Fatalf("listed preset %q missing", name)
		}
		if sc.Name != name {
			t.Errorf("preset %q carries name %q", name, sc.Name)
		}
		if err := sc.RunConfig().Validate(); err != nil {
			t.Errorf("preset %q does not validate: %v", name, err)
		}
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("chaos")
	a.G = 99
	a.Bodies[0].Mass = 99
	b := GetPreset("chaos")
	if b.G == 99 || b.Bodies[0].Mass == 99 {
		t.Error("mutating a preset leaked into the shared table")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sc := GetPreset("figure8")
	sc.Samples = 123
	sc.Rtol = 1e-7

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := Save(path, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *sc {
		t.Errorf("round trip changed scenario:\n got %+v\nwant %+v", got, sc)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunConfig(t *testing.T) {
	sc := Default()
	cfg := sc.RunConfig()

	if cfg.G != sc.G || cfg.Start != sc.Start || cfg.End != sc.End {
		t.Error("run config lost span or constant")
	}
	for i := range sc.Bodies {
		b := cfg.Bodies[i]
		src := sc.Bodies[i]
		if b.Mass != src.Mass || b.Position.X != src.Position.X ||
			b.Velocity.Y != src.Velocity.Y || b.Position.Z != src.Position.Z {
			t.Errorf("body %d mapped incorrectly: %+v", i+1, b)
		}
	}
}

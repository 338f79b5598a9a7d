package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/units"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	cfg := Default()
	cfg.DisplayUnits = map[string]string{"p": "atm", "T": "°C"}
	cfg.Constants = map[string]float64{"R": 0.082057}
	cfg.Precision = 4
	cfg.RecordHistory = false
	cfg.Species = "/tmp/extra.jsonl"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadFillsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("precision: 0\ncatalog: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Precision != 6 || cfg.Catalog != "phase_constants.json" || cfg.SuggestionLimit != units.DefaultSuggestionLimit {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("precision: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.Database = "/var/lib/chem.db"
	if got := cfg.CatalogPath("/home/x/.config/chemcalc"); got != "/home/x/.config/chemcalc/phase_constants.json" {
		t.Errorf("CatalogPath = %q", got)
	}
	if got := cfg.DatabasePath("/cfg"); got != "/var/lib/chem.db" {
		t.Errorf("DatabasePath = %q", got)
	}
	if got := cfg.SpeciesPath("/cfg"); got != "" {
		t.Errorf("SpeciesPath = %q, want empty", got)
	}
}

func TestDisplayUnit(t *testing.T) {
	reg := units.Default()
	cfg := Default()
	cfg.DisplayUnits = map[string]string{"p": "atm", "V": "furlong³"}
	if got := cfg.DisplayUnit(reg, "p"); got != "atm" {
		t.Errorf("DisplayUnit(p) = %q, want atm", got)
	}
	if got, want := cfg.DisplayUnit(reg, "V"), reg.PreferredUnit("V"); got != want {
		t.Errorf("DisplayUnit(V) = %q, want preferred %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	reg := units.Default()
	cfg := Default()
	cfg.DisplayUnits = map[string]string{"p": "atm", "V": "furlong³", "nope": "m"}
	err := cfg.Validate(reg)
	if err == nil {
		t.Fatal("Validate accepted bad units")
	}
	msg := err.Error()
	if !strings.Contains(msg, "furlong³") || !strings.Contains(msg, `"nope"`) || strings.Contains(msg, "atm") {
		t.Errorf("Validate error = %q", msg)
	}
	cfg.DisplayUnits = map[string]string{"p": "atm"}
	if err := cfg.Validate(reg); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestMergeConstants(t *testing.T) {
	base := equations.DefaultConstants()
	cfg := Default()
	if got := cfg.MergeConstants(base); !reflect.DeepEqual(got, base) {
		t.Error("MergeConstants without overrides changed the table")
	}
	cfg.Constants = map[string]float64{"R": 0.082057, "g": 9.81}
	got := cfg.MergeConstants(base)
	if v, _ := got.Value("R"); v != 0.082057 {
		t.Errorf("R = %g", v)
	}
	if v, _ := got.Value("g"); v != 9.81 {
		t.Errorf("g = %g", v)
	}
	if got.Note("N_A") == "" {
		t.Error("notes were dropped")
	}
	if v, _ := base.Value("R"); v != 8.314462618 {
		t.Error("base constants were modified")
	}
}

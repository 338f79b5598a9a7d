// Package config handles loading and saving user configuration for chemcalc.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/units"
)

// DefaultFile is the config file name inside the config directory.
const DefaultFile = "config.yaml"

// Config holds all user configuration.
type Config struct {
	// DisplayUnits overrides the preferred display unit per variable key.
	DisplayUnits map[string]string `yaml:"display_units,omitempty"`
	// Constants overrides built-in physical constants (base SI units).
	Constants       map[string]float64 `yaml:"constants,omitempty"`
	Precision       int                `yaml:"precision"`
	SuggestionLimit int                `yaml:"suggestion_limit"`
	RecordHistory   bool               `yaml:"record_history"`

	// Paths relative to the config directory unless absolute.
	Catalog  string `yaml:"catalog"`
	Database string `yaml:"database"`
	Species  string `yaml:"species,omitempty"` // extra JSONL substance dictionary
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Precision:       6,
		SuggestionLimit: units.DefaultSuggestionLimit,
		RecordHistory:   true,
		Catalog:         "phase_constants.json",
		Database:        "chemcalc.db",
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// zero values in the file fall back to defaults too.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	def := Default()
	if cfg.Precision <= 0 {
		cfg.Precision = def.Precision
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = def.SuggestionLimit
	}
	if cfg.Catalog == "" {
		cfg.Catalog = def.Catalog
	}
	if cfg.Database == "" {
		cfg.Database = def.Database
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// CatalogPath returns the catalog file path under dir.
func (c *Config) CatalogPath(dir string) string { return resolvePath(dir, c.Catalog) }

// DatabasePath returns the SQLite file path under dir.
func (c *Config) DatabasePath(dir string) string { return resolvePath(dir, c.Database) }

// SpeciesPath returns the extra dictionary path under dir, or "".
func (c *Config) SpeciesPath(dir string) string { return resolvePath(dir, c.Species) }

// DisplayUnit picks the unit to show key in: the configured override when
// the registry knows it, else the registry's preferred unit.
func (c *Config) DisplayUnit(reg *units.Registry, key string) string {
	if u, ok := c.DisplayUnits[key]; ok && slices.Contains(reg.UnitsFor(key), u) {
		return u
	}
	return reg.PreferredUnit(key)
}

// MergeConstants returns base with the configured overrides applied.
func (c *Config) MergeConstants(base equations.Constants) equations.Constants {
	if len(c.Constants) == 0 {
		return base
	}
	values := make(map[string]float64)
	notes := make(map[string]string)
	for _, k := range base.Keys() {
		values[k], _ = base.Value(k)
		if n := base.Note(k); n != "" {
			notes[k] = n
		}
	}
	for k, v := range c.Constants {
		values[k] = v
	}
	return equations.NewConstants(values, notes)
}

// Validate reports configured display units the registry does not know.
func (c *Config) Validate(reg *units.Registry) error {
	var errs []error
	for k, u := range c.DisplayUnits {
		if !reg.Has(k) {
			errs = append(errs, fmt.Errorf("display_units: unknown variable %q", k))
			continue
		}
		if !slices.Contains(reg.UnitsFor(k), u) {
			errs = append(errs, fmt.Errorf("display_units: %q is not a unit of %s", u, k))
		}
	}
	return errors.Join(errs...)
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chemcalc"), nil
}

// EnsureConfigDir creates dir, or the default directory when dir is
// empty, and returns it.
func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		d, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

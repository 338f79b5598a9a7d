// Package catalog keeps per-substance phase data (heat capacities, latent
// heats, transition temperatures) in a JSON side file.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultFile is the catalog file name inside the config directory.
const DefaultFile = "phase_constants.json"

// Substance is one catalog entry. Heat capacities are in J/(kg·K),
// latent heats in J/kg and temperatures in °C at about 1 atm.
type Substance struct {
	Formula string  `json:"formula"`
	CSolid  float64 `json:"c_solid"`
	CLiquid float64 `json:"c_liquid"`
	CGas    float64 `json:"c_gas"`
	HFus    float64 `json:"H_fus"`
	HVap    float64 `json:"H_vap"`
	TMeltC  float64 `json:"T_melt_C"`
	TBoilC  float64 `json:"T_boil_C"`
}

// Catalog maps display names to substances.
type Catalog map[string]Substance

// Defaults returns the built-in catalog.
func Defaults() Catalog {
	return Catalog{
		"water (H2O)":                {"H2O", 2090, 4184, 1996, 333_550, 2_256_000, 0, 100},
		"ethanol (C2H5OH)":           {"C2H5OH", 1600, 2440, 1430, 108_000, 840_000, -114.1, 78.37},
		"methanol (CH3OH)":           {"CH3OH", 1500, 2510, 1500, 100_000, 1_100_000, -97.6, 64.7},
		"acetone (C3H6O)":            {"C3H6O", 1300, 2180, 1200, 98_000, 500_000, -94.7, 56.05},
		"benzene (C6H6)":             {"C6H6", 1200, 1740, 1100, 126_000, 394_000, 5.5, 80.1},
		"ammonia (NH3)":              {"NH3", 2300, 4700, 2080, 332_000, 1_370_000, -77.7, -33.34},
		"Sodium chloride (NaCl)":     {"NaCl", 864, 850, 820, 28_160, 502_000, 801, 1_413},
		"Potassium chloride (KCl)":   {"KCl", 860, 900, 800, 25_800, 437_000, 770, 1_420},
		"Magnesium chloride (MgCl2)": {"MgCl2", 850, 1_100, 900, 35_000, 641_000, 714, 1_412},
		"Calcium oxide (CaO)":        {"CaO", 750, 1_100, 1_000, 63_700, 515_000, 2_572, 2_850},
		"Aluminum oxide (Al2O3)":     {"Al2O3", 880, 1_200, 1_100, 1_093_000, 4_800_000, 2_072, 2_977},
	}
}

// Load reads the catalog at path. When the file does not exist it is
// created with the defaults.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cat := Defaults()
		if err := Save(path, cat); err != nil {
			return nil, err
		}
		return cat, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if cat == nil {
		cat = Catalog{}
	}
	return cat, nil
}

// Save writes the whole catalog to path.
func Save(path string, cat Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// Names returns the substance names sorted case-insensitively.
func (c Catalog) Names() []string {
	names := slices.Collect(maps.Keys(c))
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// Find matches query against names (exact, then prefix, ignoring case)
// and formulas.
func (c Catalog) Find(query string) (string, Substance, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", Substance{}, false
	}
	names := c.Names()
	for _, n := range names {
		if strings.ToLower(n) == q {
			return n, c[n], true
		}
	}
	for _, n := range names {
		if strings.EqualFold(c[n].Formula, q) {
			return n, c[n], true
		}
	}
	for _, n := range names {
		if strings.HasPrefix(strings.ToLower(n), q) {
			return n, c[n], true
		}
	}
	return "", Substance{}, false
}

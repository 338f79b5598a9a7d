package formula

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed species.jsonl
var speciesJSONL []byte

// Species is a named substance and its formula.
type Species struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// Label formats the species as "name — formula".
func (s Species) Label() string {
	return s.Name + " — " + s.Formula
}

// Dictionary maps substance names to formulas.
type Dictionary struct {
	entries []Species
	byName  map[string]int
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{byName: make(map[string]int)}
}

// DefaultDictionary returns a dictionary loaded with the built-in species.
func DefaultDictionary() *Dictionary {
	d := NewDictionary()
	// The embedded data is fixed at build time; Load only fails on I/O.
	_ = d.Load(bytes.NewReader(speciesJSONL))
	return d
}

// Load reads JSON Lines of {"name": ..., "formula": ...}. Later entries
// replace earlier ones with the same name.
func (d *Dictionary) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var s Species
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			// Skip malformed entries
			continue
		}
		d.Add(s)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading species: %w", err)
	}
	return nil
}

// LoadFromFile loads additional species from a JSON Lines file.
func (d *Dictionary) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening species file: %w", err)
	}
	defer file.Close()

	return d.Load(file)
}

// Add inserts or replaces a species.
func (d *Dictionary) Add(s Species) {
	s.Name = strings.ToLower(strings.TrimSpace(s.Name))
	s.Formula = strings.TrimSpace(s.Formula)
	if s.Name == "" || s.Formula == "" {
		return
	}
	if i, ok := d.byName[s.Name]; ok {
		d.entries[i] = s
		return
	}
	d.byName[s.Name] = len(d.entries)
	d.entries = append(d.entries, s)
}

// Lookup returns the species with the given name.
func (d *Dictionary) Lookup(name string) (Species, bool) {
	i, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Species{}, false
	}
	return d.entries[i], true
}

// Len returns the number of species.
func (d *Dictionary) Len() int { return len(d.entries) }

// NameToFormula resolves a substance name to its formula. Element symbols and
// anything unrecognised are returned trimmed, on the assumption that they
// already are formulas.
func (d *Dictionary) NameToFormula(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return s
	}
	if sp, ok := d.Lookup(s); ok {
		return sp.Formula
	}
	return s
}

// MolarMass resolves names through the dictionary before computing the mass.
func (d *Dictionary) MolarMass(text string) (float64, error) {
	return MolarMass(d.NameToFormula(text))
}

var commonSpecies = []string{
	"oxygen", "dioxygen", "water", "carbon dioxide", "nitrogen", "ammonia", "methane",
	"hydrogen", "sulfuric acid", "sodium chloride", "ethanol", "glucose",
}

// Suggest ranks species for a query: name prefix, then formula prefix, then
// name substring, then formula substring. An empty query returns common
// substances padded with the alphabetically first others.
func (d *Dictionary) Suggest(query string, limit int) []Species {
	if limit <= 0 {
		limit = 50
	}
	q := strings.ToLower(strings.TrimSpace(query))

	if q == "" {
		var out []Species
		common := make(map[string]bool)
		for _, n := range commonSpecies {
			common[n] = true
			if s, ok := d.Lookup(n); ok {
				out = append(out, s)
			}
		}
		if len(out) < 15 {
			var rest []Species
			for _, s := range d.entries {
				if !common[s.Name] {
					rest = append(rest, s)
				}
			}
			sort.Slice(rest, func(i, j int) bool { return rest[i].Label() < rest[j].Label() })
			for _, s := range rest {
				if len(out) >= 15 {
					break
				}
				out = append(out, s)
			}
		}
		return capSpecies(out, limit)
	}

	var startsName, startsFormula, inName, inFormula []Species
	for _, s := range d.entries {
		f := strings.ToLower(s.Formula)
		switch {
		case strings.HasPrefix(s.Name, q):
			startsName = append(startsName, s)
		case strings.HasPrefix(f, q):
			startsFormula = append(startsFormula, s)
		case strings.Contains(s.Name, q):
			inName = append(inName, s)
		case strings.Contains(f, q):
			inFormula = append(inFormula, s)
		}
	}

	var out []Species
	for _, group := range [][]Species{startsName, startsFormula, inName, inFormula} {
		out = append(out, group...)
	}
	return capSpecies(out, limit)
}

func capSpecies(s []Species, limit int) []Species {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

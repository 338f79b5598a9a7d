// Package units holds the variable registry: canonical keys, display names,
// aliases and the unit choices each variable can be entered in.
package units

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed variables.yaml
var variablesYAML []byte

// DefaultSuggestionLimit is used when Suggestions is called with a non-positive limit.
const DefaultSuggestionLimit = 7

// UnitChoice is one unit a variable can be expressed in.
// The base value is value*Factor + Offset.
type UnitChoice struct {
	Unit   string  `yaml:"unit"`
	Factor float64 `yaml:"factor"`
	Offset float64 `yaml:"offset"`
}

// Variable describes a canonical chemistry variable.
type Variable struct {
	Key     string       `yaml:"key"`
	Name    string       `yaml:"name"`
	Desc    string       `yaml:"desc"`
	Aliases []string     `yaml:"aliases"`
	Base    string       `yaml:"base"`
	Units   []UnitChoice `yaml:"units"`
}

// Unit returns the unit choice with the given symbol.
func (v Variable) Unit(symbol string) (UnitChoice, bool) {
	for _, u := range v.Units {
		if u.Unit == symbol {
			return u, true
		}
	}
	return UnitChoice{}, false
}

// Registry is an immutable set of variables with alias lookup tables.
// It is safe for concurrent use.
type Registry struct {
	vars  []Variable
	byKey map[string]int

	// aliases maps a lowercased key, name or alias to its canonical key.
	aliases map[string]string
	// corpus lists the aliases keys in registration order for fuzzy matching.
	corpus []string
}

// ErrInvalidRegistry is returned when registry data breaks an invariant.
var ErrInvalidRegistry = errors.New("invalid variable registry")

// Load decodes a YAML variable list and builds a registry from it.
func Load(r io.Reader) (*Registry, error) {
	var doc struct {
		Variables []Variable `yaml:"variables"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing variable registry: %w", err)
	}
	return New(doc.Variables)
}

// New builds a registry from already decoded variables.
func New(vars []Variable) (*Registry, error) {
	reg := &Registry{
		vars:    make([]Variable, 0, len(vars)),
		byKey:   make(map[string]int, len(vars)),
		aliases: make(map[string]string),
	}

	for _, v := range vars {
		if v.Key == "" {
			return nil, fmt.Errorf("%w: variable %q has no key", ErrInvalidRegistry, v.Name)
		}
		if _, dup := reg.byKey[v.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidRegistry, v.Key)
		}
		if _, ok := v.Unit(v.Base); !ok {
			return nil, fmt.Errorf("%w: %s: base unit %q is not among its choices", ErrInvalidRegistry, v.Key, v.Base)
		}
		for _, u := range v.Units {
			if u.Factor == 0 {
				return nil, fmt.Errorf("%w: %s: unit %q has zero factor", ErrInvalidRegistry, v.Key, u.Unit)
			}
		}
		reg.byKey[v.Key] = len(reg.vars)
		reg.vars = append(reg.vars, v)
	}

	// Keys claim their lowercase form before names and aliases do, so "m"
	// stays mass and "n" stays amount. First registration wins after that.
	for _, v := range reg.vars {
		reg.addAlias(v.Key, v.Key)
	}
	for _, v := range reg.vars {
		reg.addAlias(v.Name, v.Key)
	}
	for _, v := range reg.vars {
		for _, a := range v.Aliases {
			reg.addAlias(a, v.Key)
		}
	}

	return reg, nil
}

func (r *Registry) addAlias(alias, key string) {
	a := lower(alias)
	if a == "" {
		return
	}
	if _, taken := r.aliases[a]; taken {
		return
	}
	r.aliases[a] = key
	r.corpus = append(r.corpus, a)
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return Load(bytes.NewReader(variablesYAML))
})

// Default returns the built-in registry. It panics if the embedded data is
// malformed, which can only happen at build time.
func Default() *Registry {
	reg, err := defaultRegistry()
	if err != nil {
		panic(fmt.Sprintf("units: loading embedded registry: %v", err))
	}
	return reg
}

// Lookup returns the variable with the given canonical key.
func (r *Registry) Lookup(key string) (Variable, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Variable{}, false
	}
	return r.vars[i], true
}

// Has reports whether key is a canonical variable key.
func (r *Registry) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Keys returns every canonical key in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.vars))
	for i, v := range r.vars {
		keys[i] = v.Key
	}
	return keys
}

// Name returns the display name of a variable, or the key itself when unknown.
func (r *Registry) Name(key string) string {
	if v, ok := r.Lookup(key); ok {
		return v.Name
	}
	return key
}

// Desc returns the description of a variable.
func (r *Registry) Desc(key string) string {
	v, _ := r.Lookup(key)
	return v.Desc
}

// Label formats a variable as "key — name".
func (r *Registry) Label(key string) string {
	return key + " — " + r.Name(key)
}

// UnitsFor lists the unit symbols a variable accepts, base unit included.
func (r *Registry) UnitsFor(key string) []string {
	v, ok := r.Lookup(key)
	if !ok {
		return nil
	}
	out := make([]string, len(v.Units))
	for i, u := range v.Units {
		out[i] = u.Unit
	}
	return out
}

// BaseUnit returns the unit values of this variable are stored in.
func (r *Registry) BaseUnit(key string) string {
	v, _ := r.Lookup(key)
	return v.Base
}

var preferredUnits = map[string]string{
	"V":    "L",
	"p":    "kPa",
	"m":    "kg",
	"Q":    "J",
	"n":    "mol",
	"T":    "K",
	"ΔT":   "K",
	"c":    "J/(kg·K)",
	"ρ":    "kg/m³",
	"c_m":  "mol/L",
	"λ":    "nm",
	"ν":    "Hz",
	"E_ph": "eV",
}

// PreferredUnit returns a friendly display unit, falling back to the base unit.
func (r *Registry) PreferredUnit(key string) string {
	v, ok := r.Lookup(key)
	if !ok {
		return ""
	}
	if u, ok := preferredUnits[key]; ok {
		if _, defined := v.Unit(u); defined {
			return u
		}
	}
	return v.Base
}

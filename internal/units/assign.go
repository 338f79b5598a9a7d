package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadUnit means a value was entered in a unit its variable does not accept.
var ErrBadUnit = errors.New("unit not accepted")

// Assignment is one parsed "name = value unit" entry.
type Assignment struct {
	Key   string
	Value float64
	Unit  string
	Base  float64
	// Known is false when the name matched no registered variable. Its
	// value is then kept as entered.
	Known bool
}

// ParseAssignment reads entries such as "m=2.5kg", "deltaT = 30 °C" or
// "c: 4.184 J/(g·K)". A missing unit means the base unit.
func (r *Registry) ParseAssignment(text string) (Assignment, error) {
	name, rhs, ok := strings.Cut(text, "=")
	if !ok {
		name, rhs, ok = strings.Cut(text, ":")
	}
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Assignment{}, fmt.Errorf("parsing %q: want name=value", strings.TrimSpace(text))
	}

	value, unit, err := ParseQuantity(rhs)
	if err != nil {
		return Assignment{}, err
	}
	key, known := r.Resolve(name)
	a := Assignment{Key: key, Value: value, Unit: unit, Base: value, Known: known}
	if !known {
		return a, nil
	}

	if unit == "" {
		a.Unit = r.BaseUnit(key)
		return a, nil
	}
	symbol, ok := r.matchUnit(key, unit)
	if !ok {
		return Assignment{}, fmt.Errorf("%w: %s for %s (choose from %s)",
			ErrBadUnit, unit, key, strings.Join(r.UnitsFor(key), ", "))
	}
	a.Unit = symbol
	a.Base = r.ConvertToBase(key, value, symbol)
	return a, nil
}

// matchUnit finds the unit symbol, ignoring case when no exact match exists.
func (r *Registry) matchUnit(key, unit string) (string, bool) {
	choices := r.UnitsFor(key)
	for _, u := range choices {
		if u == unit {
			return u, true
		}
	}
	for _, u := range choices {
		if strings.EqualFold(u, unit) {
			return u, true
		}
	}
	return "", false
}

package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ConvertToBase converts value given in unit to the variable's base unit.
// Unknown variables or units leave the value unchanged; callers validate
// units with UnitsFor when they need to.
func (r *Registry) ConvertToBase(key string, value float64, unit string) float64 {
	u, ok := r.choice(key, unit)
	if !ok {
		return value
	}
	return value*u.Factor + u.Offset
}

// ConvertFromBase converts a base-unit value into unit.
func (r *Registry) ConvertFromBase(key string, base float64, unit string) float64 {
	u, ok := r.choice(key, unit)
	if !ok {
		return base
	}
	return (base - u.Offset) / u.Factor
}

// Convert moves a value between two units of the same variable.
func (r *Registry) Convert(key string, value float64, from, to string) float64 {
	return r.ConvertFromBase(key, r.ConvertToBase(key, value, from), to)
}

func (r *Registry) choice(key, unit string) (UnitChoice, bool) {
	v, ok := r.Lookup(key)
	if !ok {
		return UnitChoice{}, false
	}
	return v.Unit(unit)
}

var quantityRe = regexp.MustCompile(`^\s*([-+]?(?:\d+(?:[.,]\d*)?|[.,]\d+)(?:[eE][-+]?\d+)?)\s*(.*?)\s*$`)

// ParseQuantity splits text such as "2.5 kg" or "1,5L" into a number and a
// unit symbol. Decimal commas are accepted.
func ParseQuantity(text string) (float64, string, error) {
	m := quantityRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", fmt.Errorf("parsing quantity %q: not a number", strings.TrimSpace(text))
	}
	value, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, "", fmt.Errorf("parsing quantity %q: %w", text, err)
	}
	return value, m[2], nil
}

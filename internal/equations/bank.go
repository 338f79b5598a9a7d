package equations

import (
	"fmt"
	"math"
)

func fn(f func(v Values) float64) Solver {
	return Solver{Fn: func(v Values) (float64, error) { return f(v), nil }}
}

func fnFrom(inputs []string, f func(v Values) float64) Solver {
	s := fn(f)
	s.Inputs = inputs
	return s
}

// either solves from whichever of two inputs is present, preferring first.
func either(first, second string, fromFirst, fromSecond func(float64) float64) Solver {
	return Solver{
		Inputs: []string{},
		Fn: func(v Values) (float64, error) {
			if x, ok := v[first]; ok {
				return fromFirst(x), nil
			}
			if x, ok := v[second]; ok {
				return fromSecond(x), nil
			}
			return 0, fmt.Errorf("%w: need %s or %s", ErrMissingInput, first, second)
		},
	}
}

func asinClamped(x float64) float64 {
	return math.Asin(math.Max(-1, math.Min(1, x)))
}

func sq(x float64) float64 { return x * x }

func cube(x float64) float64 { return x * x * x }

const sphere = 4.0 / 3.0 * math.Pi

// DefaultBank returns the built-in equation bank.
func DefaultBank() *Bank {
	b, err := NewBank(defaultEquations()...)
	if err != nil {
		panic(fmt.Sprintf("equations: invalid built-in bank: %v", err))
	}
	return b
}

func defaultEquations() []*Equation {
	return []*Equation{
		{
			Key:       "specific_heat",
			Name:      "Specific Heat Capacity",
			Variables: []string{"Q", "m", "c", "ΔT"},
			Formula:   "Q = m · c · ΔT",
			Notes:     "Typical units: Q in J, m in kg (or g), c in J/(kg·K) (or J/(g·K)), ΔT in K or °C.",
			Solvers: map[string]Solver{
				"Q":  fn(func(v Values) float64 { return v["m"] * v["c"] * v["ΔT"] }),
				"m":  fn(func(v Values) float64 { return v["Q"] / (v["c"] * v["ΔT"]) }),
				"c":  fn(func(v Values) float64 { return v["Q"] / (v["m"] * v["ΔT"]) }),
				"ΔT": fn(func(v Values) float64 { return v["Q"] / (v["m"] * v["c"]) }),
			},
		},
		{
			Key:       "ideal_gas_law",
			Name:      "Ideal Gas Law",
			Variables: []string{"p", "V", "n", "R", "T"},
			Formula:   "p · V = n · R · T",
			Notes:     "Use consistent units. Default R is SI (J/(mol·K)); if you prefer L·atm, supply your own R.",
			Solvers: map[string]Solver{
				"p": fn(func(v Values) float64 { return v["n"] * v["R"] * v["T"] / v["V"] }),
				"V": fn(func(v Values) float64 { return v["n"] * v["R"] * v["T"] / v["p"] }),
				"n": fn(func(v Values) float64 { return v["p"] * v["V"] / (v["R"] * v["T"]) }),
				"R": fn(func(v Values) float64 { return v["p"] * v["V"] / (v["n"] * v["T"]) }),
				"T": fn(func(v Values) float64 { return v["p"] * v["V"] / (v["n"] * v["R"]) }),
			},
		},
		{
			Key:       "density",
			Name:      "Density",
			Variables: []string{"ρ", "m", "V"},
			Formula:   "ρ = m / V",
			Notes:     "ρ in kg/m³ (or g/mL), m in kg (or g), V in m³ (or mL).",
			Solvers: map[string]Solver{
				"ρ": fn(func(v Values) float64 { return v["m"] / v["V"] }),
				"m": fn(func(v Values) float64 { return v["ρ"] * v["V"] }),
				"V": fn(func(v Values) float64 { return v["m"] / v["ρ"] }),
			},
		},
		{
			Key:       "sphere_volume",
			Name:      "Sphere volume",
			Variables: []string{"V", "r_part"},
			Formula:   "V = (4/3) π r_part^3",
			Notes:     "r_part in m, V in m³.",
			Solvers: map[string]Solver{
				"V":      fn(func(v Values) float64 { return sphere * cube(v["r_part"]) }),
				"r_part": fn(func(v Values) float64 { return math.Cbrt(v["V"] / sphere) }),
			},
		},
		{
			Key:       "mass_moles_molar_mass",
			Name:      "Mass–moles–molar mass",
			Variables: []string{"m", "n", "M_molar"},
			Formula:   "m = n · M_molar",
			Notes:     "m in kg, M_molar in kg/mol, n in mol.",
			Solvers: map[string]Solver{
				"m":       fn(func(v Values) float64 { return v["n"] * v["M_molar"] }),
				"n":       fn(func(v Values) float64 { return v["m"] / v["M_molar"] }),
				"M_molar": fn(func(v Values) float64 { return v["m"] / v["n"] }),
			},
		},
		{
			Key:       "particle_count",
			Name:      "Particle count",
			Variables: []string{"N", "n", "N_A"},
			Formula:   "N = n · N_A",
			Notes:     "N is unitless, n in mol, N_A in 1/mol.",
			Solvers: map[string]Solver{
				"N":   fn(func(v Values) float64 { return v["n"] * v["N_A"] }),
				"n":   fn(func(v Values) float64 { return v["N"] / v["N_A"] }),
				"N_A": fn(func(v Values) float64 { return v["N"] / v["n"] }),
			},
		},
		{
			Key:       "particle_count_from_radius",
			Name:      "Atoms in spherical particle",
			Variables: []string{"N", "ρ", "r_part", "M_molar", "N_A"},
			Formula:   "N = (ρ · (4/3)π r_part^3 / M_molar) · N_A",
			Notes:     "Use consistent units: ρ in kg/m³ (or g/cm³), r_part in m (nm ok), M_molar in kg/mol (or g/mol).",
			Solvers: map[string]Solver{
				"N": fn(func(v Values) float64 {
					return v["ρ"] * sphere * cube(v["r_part"]) / v["M_molar"] * v["N_A"]
				}),
				"r_part": fn(func(v Values) float64 {
					return math.Cbrt(v["N"] * v["M_molar"] / (v["ρ"] * v["N_A"]) / sphere)
				}),
				"ρ": fn(func(v Values) float64 {
					return v["N"] * v["M_molar"] / (sphere * cube(v["r_part"]) * v["N_A"])
				}),
				"M_molar": fn(func(v Values) float64 {
					return v["ρ"] * sphere * cube(v["r_part"]) * v["N_A"] / v["N"]
				}),
				"N_A": fn(func(v Values) float64 {
					return v["N"] * v["M_molar"] / (v["ρ"] * sphere * cube(v["r_part"]))
				}),
			},
		},
		{
			Key:       "molarity",
			Name:      "Molarity",
			Variables: []string{"c_m", "n", "V"},
			Formula:   "c = n / V",
			Notes:     "c (molarity) in mol/L, n in mol, V in L.",
			Solvers: map[string]Solver{
				"c_m": fn(func(v Values) float64 { return v["n"] / v["V"] }),
				"n":   fn(func(v Values) float64 { return v["c_m"] * v["V"] }),
				"V":   fn(func(v Values) float64 { return v["n"] / v["c_m"] }),
			},
		},
		{
			Key:       "boyle",
			Name:      "Boyle's Law (isothermal)",
			Variables: []string{"p1", "v1", "p2", "v2"},
			Formula:   "p₁ · V₁ = p₂ · V₂",
			Notes:     "Keep pressure and volume units consistent.",
			Solvers: map[string]Solver{
				"p1": fn(func(v Values) float64 { return v["p2"] * v["v2"] / v["v1"] }),
				"v1": fn(func(v Values) float64 { return v["p2"] * v["v2"] / v["p1"] }),
				"p2": fn(func(v Values) float64 { return v["p1"] * v["v1"] / v["v2"] }),
				"v2": fn(func(v Values) float64 { return v["p1"] * v["v1"] / v["p2"] }),
			},
		},
		{
			Key:       "charles",
			Name:      "Charles's Law (isobaric)",
			Variables: []string{"v1", "T1", "v2", "T2"},
			Formula:   "V₁ / T₁ = V₂ / T₂",
			Notes:     "Temperatures must be absolute (K).",
			Solvers: map[string]Solver{
				"v1": fn(func(v Values) float64 { return v["v2"] * v["T1"] / v["T2"] }),
				"T1": fn(func(v Values) float64 { return v["v1"] * v["T2"] / v["v2"] }),
				"v2": fn(func(v Values) float64 { return v["v1"] * v["T2"] / v["T1"] }),
				"T2": fn(func(v Values) float64 { return v["v2"] * v["T1"] / v["v1"] }),
			},
		},
		{
			Key:       "combined_gas_law",
			Name:      "Combined Gas Law",
			Variables: []string{"p1", "v1", "T1", "p2", "v2", "T2"},
			Formula:   "p₁V₁ / T₁ = p₂V₂ / T₂",
			Notes:     "Fixed amount of gas; temperatures in K.",
			Solvers: map[string]Solver{
				"p1": fn(func(v Values) float64 { return v["p2"] * v["v2"] * v["T1"] / (v["T2"] * v["v1"]) }),
				"v1": fn(func(v Values) float64 { return v["p2"] * v["v2"] * v["T1"] / (v["T2"] * v["p1"]) }),
				"T1": fn(func(v Values) float64 { return v["p1"] * v["v1"] * v["T2"] / (v["p2"] * v["v2"]) }),
				"p2": fn(func(v Values) float64 { return v["p1"] * v["v1"] * v["T2"] / (v["T1"] * v["v2"]) }),
				"v2": fn(func(v Values) float64 { return v["p1"] * v["v1"] * v["T2"] / (v["T1"] * v["p2"]) }),
				"T2": fn(func(v Values) float64 { return v["p2"] * v["v2"] * v["T1"] / (v["p1"] * v["v1"]) }),
			},
		},
		{
			Key:       "dalton_partial",
			Name:      "Dalton's Law (partial pressure)",
			Variables: []string{"p_i", "y_i", "p_total"},
			Formula:   "pᵢ = yᵢ · p_total",
			Notes:     "Mole fraction yᵢ = nᵢ / n_total (unitless). Keep pressure units consistent.",
			Solvers: map[string]Solver{
				"p_i":     fn(func(v Values) float64 { return v["y_i"] * v["p_total"] }),
				"y_i":     fn(func(v Values) float64 { return v["p_i"] / v["p_total"] }),
				"p_total": fn(func(v Values) float64 { return v["p_i"] / v["y_i"] }),
			},
		},
		{
			Key:       "mole_fraction",
			Name:      "Mole Fraction",
			Variables: []string{"y_i", "n_i", "n_total"},
			Formula:   "yᵢ = nᵢ / n_total",
			Notes:     "All amounts in mol; yᵢ is unitless and between 0 and 1.",
			Solvers: map[string]Solver{
				"y_i":     fn(func(v Values) float64 { return v["n_i"] / v["n_total"] }),
				"n_i":     fn(func(v Values) float64 { return v["y_i"] * v["n_total"] }),
				"n_total": fn(func(v Values) float64 { return v["n_i"] / v["y_i"] }),
			},
		},
		{
			Key:       "dalton_sum2",
			Name:      "Dalton's Law (sum of partials, 2 components)",
			Variables: []string{"p_total", "pA", "pB"},
			Formula:   "p_total = pA + pB",
			Notes:     "Total pressure equals sum of component partial pressures. Use any consistent pressure unit.",
			Solvers: map[string]Solver{
				"p_total": fn(func(v Values) float64 { return v["pA"] + v["pB"] }),
				"pA":      fn(func(v Values) float64 { return v["p_total"] - v["pB"] }),
				"pB":      fn(func(v Values) float64 { return v["p_total"] - v["pA"] }),
			},
		},
		{
			Key:       "dalton_sum3",
			Name:      "Dalton's Law (sum of partials, 3 components)",
			Variables: []string{"p_total", "pA", "pB", "pC"},
			Formula:   "p_total = pA + pB + pC",
			Notes:     "Total pressure equals sum of component partial pressures. Use any consistent pressure unit.",
			Solvers: map[string]Solver{
				"p_total": fn(func(v Values) float64 { return v["pA"] + v["pB"] + v["pC"] }),
				"pA":      fn(func(v Values) float64 { return v["p_total"] - (v["pB"] + v["pC"]) }),
				"pB":      fn(func(v Values) float64 { return v["p_total"] - (v["pA"] + v["pC"]) }),
				"pC":      fn(func(v Values) float64 { return v["p_total"] - (v["pA"] + v["pB"]) }),
			},
		},
		{
			Key:       "gibbs_standard",
			Name:      "Gibbs relation (standard)",
			Variables: []string{"ΔG°rxn", "ΔH°rxn", "T", "ΔS°rxn"},
			Formula:   "ΔG° = ΔH° − T·ΔS°",
			Notes:     "T in K; ΔH° and ΔG° in J/mol; ΔS° in J/(mol·K).",
			Solvers: map[string]Solver{
				"ΔG°rxn": fn(func(v Values) float64 { return v["ΔH°rxn"] - v["T"]*v["ΔS°rxn"] }),
				"ΔH°rxn": fn(func(v Values) float64 { return v["ΔG°rxn"] + v["T"]*v["ΔS°rxn"] }),
				"T":      fn(func(v Values) float64 { return (v["ΔH°rxn"] - v["ΔG°rxn"]) / v["ΔS°rxn"] }),
				"ΔS°rxn": fn(func(v Values) float64 { return (v["ΔH°rxn"] - v["ΔG°rxn"]) / v["T"] }),
			},
		},
		{
			Key:       "equilibrium_dg",
			Name:      "Equilibrium ↔ Gibbs (standard)",
			Variables: []string{"ΔG°rxn", "K", "R", "T"},
			Formula:   "ΔG° = − R·T·ln K",
			Notes:     "Use activities; K is unitless. R default from the constants table.",
			Solvers: map[string]Solver{
				"ΔG°rxn": fn(func(v Values) float64 { return -v["R"] * v["T"] * math.Log(v["K"]) }),
				"K":      fn(func(v Values) float64 { return math.Exp(-v["ΔG°rxn"] / (v["R"] * v["T"])) }),
			},
		},
		{
			Key:       "rxn_enthalpy_from_formation",
			Name:      "Reaction enthalpy from formation data",
			Variables: []string{"ΔH°rxn", "sum_Hf_prod", "sum_Hf_react"},
			Formula:   "ΔH°rxn = ΣνΔH°f(products) − ΣνΔH°f(reactants)",
			Notes:     "Enter stoichiometric sums (ν·ΔH°f) for each side, then solve ΔH°rxn.",
			Solvers: map[string]Solver{
				"ΔH°rxn":       fn(func(v Values) float64 { return v["sum_Hf_prod"] - v["sum_Hf_react"] }),
				"sum_Hf_prod":  fn(func(v Values) float64 { return v["ΔH°rxn"] + v["sum_Hf_react"] }),
				"sum_Hf_react": fn(func(v Values) float64 { return v["sum_Hf_prod"] - v["ΔH°rxn"] }),
			},
		},
		{
			Key:       "rxn_entropy_from_S",
			Name:      "Reaction entropy from standard molar entropies",
			Variables: []string{"ΔS°rxn", "sum_S_prod", "sum_S_react"},
			Formula:   "ΔS°rxn = ΣνS°(products) − ΣνS°(reactants)",
			Notes:     "Use S° values at 298 K unless specified otherwise.",
			Solvers: map[string]Solver{
				"ΔS°rxn":      fn(func(v Values) float64 { return v["sum_S_prod"] - v["sum_S_react"] }),
				"sum_S_prod":  fn(func(v Values) float64 { return v["ΔS°rxn"] + v["sum_S_react"] }),
				"sum_S_react": fn(func(v Values) float64 { return v["sum_S_prod"] - v["ΔS°rxn"] }),
			},
		},
		{
			Key:       "rxn_gibbs_from_formation",
			Name:      "Reaction Gibbs from formation data",
			Variables: []string{"ΔG°rxn", "sum_Gf_prod", "sum_Gf_react"},
			Formula:   "ΔG°rxn = ΣνΔG°f(products) − ΣνΔG°f(reactants)",
			Notes:     "Combine with ΔG° ↔ K to get equilibrium constants.",
			Solvers: map[string]Solver{
				"ΔG°rxn":       fn(func(v Values) float64 { return v["sum_Gf_prod"] - v["sum_Gf_react"] }),
				"sum_Gf_prod":  fn(func(v Values) float64 { return v["ΔG°rxn"] + v["sum_Gf_react"] }),
				"sum_Gf_react": fn(func(v Values) float64 { return v["sum_Gf_prod"] - v["ΔG°rxn"] }),
			},
		},
		{
			Key:       "heat_from_extent",
			Name:      "Heat from reaction extent",
			Variables: []string{"q", "ξ", "ΔH°rxn"},
			Formula:   "q = ξ · ΔH°rxn",
			Notes:     "Exothermic reactions have negative ΔH°rxn (system convention).",
			Solvers: map[string]Solver{
				"q":      fn(func(v Values) float64 { return v["ξ"] * v["ΔH°rxn"] }),
				"ξ":      fn(func(v Values) float64 { return v["q"] / v["ΔH°rxn"] }),
				"ΔH°rxn": fn(func(v Values) float64 { return v["q"] / v["ξ"] }),
			},
		},
		{
			Key:       "extent_from_component",
			Name:      "Extent from component moles",
			Variables: []string{"ξ", "n_i", "ν_i"},
			Formula:   "ξ = n_i / ν_i",
			Notes:     "Use the coefficient of the species in the balanced equation.",
			Solvers: map[string]Solver{
				"ξ":   fn(func(v Values) float64 { return v["n_i"] / v["ν_i"] }),
				"n_i": fn(func(v Values) float64 { return v["ξ"] * v["ν_i"] }),
				"ν_i": fn(func(v Values) float64 { return v["n_i"] / v["ξ"] }),
			},
		},
		{
			Key:       "vap_from_formation",
			Name:      "Enthalpy of vaporization from formation data",
			Variables: []string{"ΔH_vap", "ΔH°f_gas", "ΔH°f_liq"},
			Formula:   "ΔH_vap = ΔH°f(g) − ΔH°f(l)",
			Notes:     "Handy shortcut for e.g. H₂O(l) → H₂O(g).",
			Solvers: map[string]Solver{
				"ΔH_vap":   fn(func(v Values) float64 { return v["ΔH°f_gas"] - v["ΔH°f_liq"] }),
				"ΔH°f_gas": fn(func(v Values) float64 { return v["ΔH_vap"] + v["ΔH°f_liq"] }),
				"ΔH°f_liq": fn(func(v Values) float64 { return v["ΔH°f_gas"] - v["ΔH_vap"] }),
			},
		},
		{
			Key:       "enthalpy_scaling",
			Name:      "Scale reaction enthalpy by factor",
			Variables: []string{"ΔH°rxn_scaled", "ΔH°rxn", "scale_n"},
			Formula:   "ΔH°(scaled) = n · ΔH°(base)",
			Notes:     "If you double the reaction, you double ΔH°. Flip sign when reversing.",
			Solvers: map[string]Solver{
				"ΔH°rxn_scaled": fn(func(v Values) float64 { return v["scale_n"] * v["ΔH°rxn"] }),
				"ΔH°rxn":        fn(func(v Values) float64 { return v["ΔH°rxn_scaled"] / v["scale_n"] }),
				"scale_n":       fn(func(v Values) float64 { return v["ΔH°rxn_scaled"] / v["ΔH°rxn"] }),
			},
		},
		{
			Key:       "enthalpy_reverse",
			Name:      "Reverse reaction enthalpy",
			Variables: []string{"ΔH°rxn_rev", "ΔH°rxn"},
			Formula:   "ΔH°(reverse) = − ΔH°(forward)",
			Notes:     "Use with scaling to handle arbitrary reaction manipulations.",
			Solvers: map[string]Solver{
				"ΔH°rxn_rev": fn(func(v Values) float64 { return -v["ΔH°rxn"] }),
				"ΔH°rxn":     fn(func(v Values) float64 { return -v["ΔH°rxn_rev"] }),
			},
		},
		{
			Key:       "combustion_energy",
			Name:      "Energy released by combustion",
			Variables: []string{"q", "n", "ΔG°rxn"},
			Formula:   "q = n · (−ΔG°rxn)",
			Notes:     "q is energy released (J); n is mol of substance combusted; ΔG°rxn is standard Gibbs energy of reaction (J/mol, negative for spontaneous combustion).",
			Solvers: map[string]Solver{
				"q":      fn(func(v Values) float64 { return v["n"] * -v["ΔG°rxn"] }),
				"n":      fn(func(v Values) float64 { return v["q"] / -v["ΔG°rxn"] }),
				"ΔG°rxn": fn(func(v Values) float64 { return -v["q"] / v["n"] }),
			},
		},
		{
			Key:       "planck_hnu",
			Name:      "Photon energy from frequency",
			Variables: []string{"E_ph", "h_planck", "ν_freq"},
			Formula:   "E = h · ν",
			Notes:     "E in J (or eV), ν in Hz.",
			Solvers: map[string]Solver{
				"E_ph":     fn(func(v Values) float64 { return v["h_planck"] * v["ν_freq"] }),
				"ν_freq":   fn(func(v Values) float64 { return v["E_ph"] / v["h_planck"] }),
				"h_planck": fn(func(v Values) float64 { return v["E_ph"] / v["ν_freq"] }),
			},
		},
		{
			Key:       "wave_speed",
			Name:      "Wave speed relation",
			Variables: []string{"c0", "λ", "ν"},
			Formula:   "c = λ · ν",
			Solvers: map[string]Solver{
				"c0": fn(func(v Values) float64 { return v["λ"] * v["ν"] }),
				"λ":  fn(func(v Values) float64 { return v["c0"] / v["ν"] }),
				"ν":  fn(func(v Values) float64 { return v["c0"] / v["λ"] }),
			},
		},
		{
			Key:       "planck_hc_over_lambda",
			Name:      "Photon energy from wavelength",
			Variables: []string{"E_ph", "h_planck", "c0", "λ"},
			Formula:   "E = h · c / λ",
			Solvers: map[string]Solver{
				"E_ph": fn(func(v Values) float64 { return v["h_planck"] * v["c0"] / v["λ"] }),
				"λ":    fn(func(v Values) float64 { return v["h_planck"] * v["c0"] / v["E_ph"] }),
			},
		},
		{
			Key:       "rydberg_lambda",
			Name:      "Hydrogen-like wavelength (Rydberg)",
			Variables: []string{"λ", "R∞", "Z", "n1", "n2"},
			Formula:   "1/λ = R∞ · Z² · (1/n₁² − 1/n₂²), n₂>n₁",
			Notes:     "λ in m. For H, Z=1. Use with E = h·c/λ to get energy.",
			Solvers: map[string]Solver{
				"λ": fn(func(v Values) float64 {
					return 1 / (v["R∞"] * sq(v["Z"]) * (1/sq(v["n1"]) - 1/sq(v["n2"])))
				}),
			},
		},
		{
			Key:       "bohr_transition",
			Name:      "Hydrogen-like transition energy (Bohr)",
			Variables: []string{"ΔE", "Z", "n1", "n2", "E_H"},
			Formula:   "ΔE = E_H · Z² · (1/n₁² − 1/n₂²)  (in eV)",
			Notes:     "Result returned in J; display in eV by choosing the eV unit.",
			Solvers: map[string]Solver{
				// E_H is in eV; the result is converted to J.
				"ΔE": fn(func(v Values) float64 {
					return v["E_H"] * sq(v["Z"]) * (1/sq(v["n1"]) - 1/sq(v["n2"])) * 1.602176634e-19
				}),
			},
		},
		{
			Key:       "bragg",
			Name:      "Bragg’s law",
			Variables: []string{"n_bragg", "λ", "d_spacing", "theta"},
			Formula:   "n·λ = 2·d·sinθ",
			Solvers: map[string]Solver{
				"n_bragg":   fn(func(v Values) float64 { return 2 * v["d_spacing"] * math.Sin(v["theta"]) / v["λ"] }),
				"λ":         fn(func(v Values) float64 { return 2 * v["d_spacing"] * math.Sin(v["theta"]) / v["n_bragg"] }),
				"d_spacing": fn(func(v Values) float64 { return v["n_bragg"] * v["λ"] / (2 * math.Sin(v["theta"])) }),
				"theta":     fn(func(v Values) float64 { return asinClamped(v["n_bragg"] * v["λ"] / (2 * v["d_spacing"])) }),
			},
		},
		{
			Key:       "bragg_2theta",
			Name:      "Bragg with 2θ",
			Variables: []string{"n_bragg", "λ", "d_spacing", "two_theta"},
			Formula:   "n·λ = 2·d·sin(2θ/2)",
			Solvers: map[string]Solver{
				"d_spacing": fn(func(v Values) float64 { return v["n_bragg"] * v["λ"] / (2 * math.Sin(v["two_theta"]/2)) }),
				"λ":         fn(func(v Values) float64 { return 2 * v["d_spacing"] * math.Sin(v["two_theta"]/2) / v["n_bragg"] }),
				"n_bragg":   fn(func(v Values) float64 { return 2 * v["d_spacing"] * math.Sin(v["two_theta"]/2) / v["λ"] }),
				"two_theta": fn(func(v Values) float64 { return 2 * asinClamped(v["n_bragg"]*v["λ"]/(2*v["d_spacing"])) }),
			},
		},
		{
			Key:       "cubic_d_hkl",
			Name:      "Cubic: d from a and (hkl)",
			Variables: []string{"d_spacing", "a_cubic", "h_mi", "k_mi", "l_mi"},
			Formula:   "d = a / √(h²+k²+l²)",
			Solvers: map[string]Solver{
				"d_spacing": fn(func(v Values) float64 {
					return v["a_cubic"] / math.Sqrt(sq(v["h_mi"])+sq(v["k_mi"])+sq(v["l_mi"]))
				}),
				"a_cubic": fn(func(v Values) float64 {
					return v["d_spacing"] * math.Sqrt(sq(v["h_mi"])+sq(v["k_mi"])+sq(v["l_mi"]))
				}),
			},
		},
		{
			Key:       "s_from_bragg",
			Name:      "Reciprocal spacing s from Bragg",
			Variables: []string{"s_recip", "λ", "theta"},
			Formula:   "s = 2·sinθ / λ",
			Solvers: map[string]Solver{
				"s_recip": fn(func(v Values) float64 { return 2 * math.Sin(v["theta"]) / v["λ"] }),
				"theta":   fn(func(v Values) float64 { return asinClamped(v["s_recip"] * v["λ"] / 2) }),
				"λ":       fn(func(v Values) float64 { return 2 * math.Sin(v["theta"]) / v["s_recip"] }),
			},
		},
		{
			Key:       "q_from_bragg",
			Name:      "Scattering vector q",
			Variables: []string{"q_scat", "λ", "theta"},
			Formula:   "q = 4π·sinθ / λ = 2π / d",
			Solvers: map[string]Solver{
				"q_scat": fn(func(v Values) float64 { return 4 * math.Pi * math.Sin(v["theta"]) / v["λ"] }),
				"theta":  fn(func(v Values) float64 { return asinClamped(v["q_scat"] * v["λ"] / (4 * math.Pi)) }),
				"λ":      fn(func(v Values) float64 { return 4 * math.Pi * math.Sin(v["theta"]) / v["q_scat"] }),
			},
		},
		{
			Key:       "q_s_d_links",
			Name:      "Links: q, s, d",
			Variables: []string{"q_scat", "s_recip", "d_spacing"},
			Formula:   "s = 1/d ; q = 2π·s = 2π/d",
			Solvers: map[string]Solver{
				"s_recip": either("d_spacing", "q_scat",
					func(d float64) float64 { return 1 / d },
					func(q float64) float64 { return q / (2 * math.Pi) }),
				"q_scat": either("d_spacing", "s_recip",
					func(d float64) float64 { return 2 * math.Pi / d },
					func(s float64) float64 { return 2 * math.Pi * s }),
				"d_spacing": either("s_recip", "q_scat",
					func(s float64) float64 { return 1 / s },
					func(q float64) float64 { return 2 * math.Pi / q }),
			},
		},
		{
			Key:       "raoult_2comp",
			Name:      "Raoult’s law (2 components)",
			Variables: []string{"p_i", "x_i_liq", "P_sat_i", "P_vap_total"},
			Formula:   "p_i = x_i · P_i* ;  P_total = Σ p_i",
			Notes:     "Use per-component p_i, x_i, P_i*. For totals, sum p_i of all components.",
			Solvers: map[string]Solver{
				"p_i":         fnFrom([]string{"x_i_liq", "P_sat_i"}, func(v Values) float64 { return v["x_i_liq"] * v["P_sat_i"] }),
				"x_i_liq":     fnFrom([]string{"p_i", "P_sat_i"}, func(v Values) float64 { return v["p_i"] / v["P_sat_i"] }),
				"P_sat_i":     fnFrom([]string{"p_i", "x_i_liq"}, func(v Values) float64 { return v["p_i"] / v["x_i_liq"] }),
				"P_vap_total": fnFrom([]string{"p_i"}, func(v Values) float64 { return v["p_i"] }),
			},
		},
		{
			Key:       "henry_px",
			Name:      "Henry: p = kH·x",
			Variables: []string{"p", "kH_Px", "x_i_liq"},
			Formula:   "p_gas = kH · x_liq",
			Notes:     "kH in Pa (or bar/kPa).",
			Solvers: map[string]Solver{
				"p":       fn(func(v Values) float64 { return v["kH_Px"] * v["x_i_liq"] }),
				"kH_Px":   fn(func(v Values) float64 { return v["p"] / v["x_i_liq"] }),
				"x_i_liq": fn(func(v Values) float64 { return v["p"] / v["kH_Px"] }),
			},
		},
		{
			Key:       "henry_cp",
			Name:      "Henry: c = kH·p",
			Variables: []string{"c_m", "kH_cP", "p"},
			Formula:   "c = kH · p",
			Notes:     "Mind units for kH; here c uses mol/L if kH is in mol/(L·atm).",
			Solvers: map[string]Solver{
				"c_m":   fn(func(v Values) float64 { return v["kH_cP"] * v["p"] }),
				"kH_cP": fn(func(v Values) float64 { return v["c_m"] / v["p"] }),
				"p":     fn(func(v Values) float64 { return v["c_m"] / v["kH_cP"] }),
			},
		},
		{
			Key:       "osmotic_pressure",
			Name:      "Osmotic pressure (van ’t Hoff)",
			Variables: []string{"π_osm", "i_vH", "c_m", "R", "T"},
			Formula:   "π = i·M·R·T",
			Notes:     "M in mol/L is fine if R uses L·atm; otherwise convert. Default R in J/(mol·K) → use Pa for π.",
			Solvers: map[string]Solver{
				"π_osm": fn(func(v Values) float64 { return v["i_vH"] * v["c_m"] * v["R"] * v["T"] }),
				"i_vH":  fn(func(v Values) float64 { return v["π_osm"] / (v["c_m"] * v["R"] * v["T"]) }),
				"c_m":   fn(func(v Values) float64 { return v["π_osm"] / (v["i_vH"] * v["R"] * v["T"]) }),
			},
		},
		{
			Key:       "boiling_elevation",
			Name:      "Boiling-point elevation",
			Variables: []string{"ΔTb", "i_vH", "Kb", "m_molal"},
			Formula:   "ΔT_b = i · K_b · m",
			Notes:     "Use solvent-specific Kb (K·kg/mol).",
			Solvers: map[string]Solver{
				"ΔTb":     fn(func(v Values) float64 { return v["i_vH"] * v["Kb"] * v["m_molal"] }),
				"i_vH":    fn(func(v Values) float64 { return v["ΔTb"] / (v["Kb"] * v["m_molal"]) }),
				"Kb":      fn(func(v Values) float64 { return v["ΔTb"] / (v["i_vH"] * v["m_molal"]) }),
				"m_molal": fn(func(v Values) float64 { return v["ΔTb"] / (v["i_vH"] * v["Kb"]) }),
			},
		},
		{
			Key:       "freezing_depression",
			Name:      "Freezing-point depression",
			Variables: []string{"ΔTf", "i_vH", "Kf", "m_molal"},
			Formula:   "ΔT_f = i · K_f · m",
			Notes:     "Use solvent-specific Kf (K·kg/mol).",
			Solvers: map[string]Solver{
				"ΔTf":     fn(func(v Values) float64 { return v["i_vH"] * v["Kf"] * v["m_molal"] }),
				"i_vH":    fn(func(v Values) float64 { return v["ΔTf"] / (v["Kf"] * v["m_molal"]) }),
				"Kf":      fn(func(v Values) float64 { return v["ΔTf"] / (v["i_vH"] * v["m_molal"]) }),
				"m_molal": fn(func(v Values) float64 { return v["ΔTf"] / (v["i_vH"] * v["Kf"]) }),
			},
		},
		{
			Key:       "total_ion_conc",
			Name:      "Total ion concentration (via i)",
			Variables: []string{"c_total_ions", "i_vH", "c_m"},
			Formula:   "c_total_ions = i · M",
			Notes:     "For ideal dissociation i = number of ions per formula unit.",
			Solvers: map[string]Solver{
				"c_total_ions": fn(func(v Values) float64 { return v["i_vH"] * v["c_m"] }),
				"i_vH":         fn(func(v Values) float64 { return v["c_total_ions"] / v["c_m"] }),
				"c_m":          fn(func(v Values) float64 { return v["c_total_ions"] / v["i_vH"] }),
			},
		},
		{
			Key:       "dilution",
			Name:      "Dilution",
			Variables: []string{"c_m1", "v1", "c_m2", "v2"},
			Formula:   "c₁ · V₁ = c₂ · V₂",
			Notes:     "Moles of solute are conserved; keep volume units consistent.",
			Solvers: map[string]Solver{
				"c_m1": fn(func(v Values) float64 { return v["c_m2"] * v["v2"] / v["v1"] }),
				"v1":   fn(func(v Values) float64 { return v["c_m2"] * v["v2"] / v["c_m1"] }),
				"c_m2": fn(func(v Values) float64 { return v["c_m1"] * v["v1"] / v["v2"] }),
				"v2":   fn(func(v Values) float64 { return v["c_m1"] * v["v1"] / v["c_m2"] }),
			},
		},
		{
			Key:       "first_order_kinetics",
			Name:      "First-order integrated rate law",
			Variables: []string{"c_A", "c_A0", "k_rate", "t_elapsed"},
			Formula:   "ln([A]₀/[A]) = k · t",
			Notes:     "k in 1/s, t in s; concentrations in any consistent unit.",
			Solvers: map[string]Solver{
				"c_A":       fn(func(v Values) float64 { return v["c_A0"] * math.Exp(-v["k_rate"]*v["t_elapsed"]) }),
				"c_A0":      fn(func(v Values) float64 { return v["c_A"] * math.Exp(v["k_rate"]*v["t_elapsed"]) }),
				"k_rate":    fn(func(v Values) float64 { return math.Log(v["c_A0"]/v["c_A"]) / v["t_elapsed"] }),
				"t_elapsed": fn(func(v Values) float64 { return math.Log(v["c_A0"]/v["c_A"]) / v["k_rate"] }),
			},
		},
		{
			Key:       "first_order_half_life",
			Name:      "First-order half-life",
			Variables: []string{"t_half", "k_rate"},
			Formula:   "t½ = ln 2 / k",
			Solvers: map[string]Solver{
				"t_half": fn(func(v Values) float64 { return math.Ln2 / v["k_rate"] }),
				"k_rate": fn(func(v Values) float64 { return math.Ln2 / v["t_half"] }),
			},
		},
		{
			Key:       "ph_definition",
			Name:      "pH from hydronium concentration",
			Variables: []string{"pH", "c_H"},
			Formula:   "pH = −log₁₀[H₃O⁺]",
			Notes:     "[H₃O⁺] in mol/L.",
			Solvers: map[string]Solver{
				"pH":  fn(func(v Values) float64 { return -math.Log10(v["c_H"]) }),
				"c_H": fn(func(v Values) float64 { return math.Pow(10, -v["pH"]) }),
			},
		},
		{
			Key:       "ph_poh",
			Name:      "pH + pOH",
			Variables: []string{"pH", "pOH"},
			Formula:   "pH + pOH = 14",
			Notes:     "Valid at 25 °C.",
			Solvers: map[string]Solver{
				"pH":  fn(func(v Values) float64 { return 14 - v["pOH"] }),
				"pOH": fn(func(v Values) float64 { return 14 - v["pH"] }),
			},
		},
	}
}

package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/store"
	"github.com/f3rmion/chemcalc/internal/thermo"
)

var thermoCmd = &cobra.Command{
	Use:   "thermo",
	Short: "Standard formation data and reaction sums",
}

var thermoFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search the thermo table by formula or name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withStore(func(e *env, st *store.Store) error {
			t, err := st.Table()
			if err != nil {
				return err
			}
			found := t.Find(strings.Join(args, " "), limit)
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching entries.")
				return nil
			}
			return printEntries(cmd, e, found)
		})
	},
}

var thermoLookupCmd = &cobra.Command{
	Use:   "lookup <formula> [phase]",
	Short: "Show the entries for one formula",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(e *env, st *store.Store) error {
			f := thermo.Canonical(args[0])
			phases := st.Phases(f)
			if len(args) == 2 {
				if !thermo.ValidPhase(args[1]) {
					return fmt.Errorf("unknown phase %q (use one of %s)", args[1], strings.Join(thermo.Phases, ", "))
				}
				phases = []string{args[1]}
			}
			var found []thermo.Entry
			for _, p := range phases {
				if en, ok := st.Lookup(f, p); ok {
					found = append(found, en)
				}
			}
			if len(found) == 0 {
				return fmt.Errorf("no thermo data for %s", args[0])
			}
			return printEntries(cmd, e, found)
		})
	},
}

var thermoReactionTemp string

var thermoReactionCmd = &cobra.Command{
	Use:   "reaction <equation>",
	Short: "Sum formation data over a reaction",
	Long: `Compute ΔH°, ΔS° and ΔG° for a phase-tagged reaction from the
formation table. With --temp the sums are handed to the solver, which
also derives ΔG at that temperature.

Example:
  chemcalc thermo reaction "CH4(g) + 2 O2(g) -> CO2(g) + 2 H2O(l)" --temp 298.15K`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eq := strings.Join(args, " ")
		return withStore(func(e *env, st *store.Store) error {
			sums, err := thermo.ReactionSumsText(eq, st)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			text, err := e.gen.Thermo(eq, sums)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			if thermoReactionTemp == "" {
				return nil
			}
			return solveWithSums(cmd, e, sums)
		})
	},
}

// solveWithSums seeds a session with the enthalpy and entropy sums and a
// temperature, then prints ΔG at that temperature. Formation Gibbs sums are
// left out so ΔG°rxn stays the unknown.
func solveWithSums(cmd *cobra.Command, e *env, sums *thermo.Sums) error {
	sess := e.newSession(nil)
	for k, v := range sums.Values() {
		if strings.HasPrefix(k, "sum_Gf") || k == "ΔG°rxn" {
			continue
		}
		sess.Set(k, v)
	}
	if _, err := sess.Assign("T=" + thermoReactionTemp); err != nil {
		return err
	}
	results, err := sess.SolveAll()
	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Equation.Key != "gibbs_standard" {
			continue
		}
		fmt.Fprintln(out)
		if perr := printResults(out, e.gen, res); perr != nil {
			return perr
		}
	}
	return err
}

var thermoImportCmd = &cobra.Command{
	Use:   "import <file.csv[.zst]>",
	Short: "Load thermo rows from CSV into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(e *env, st *store.Store) error {
			n, err := st.ImportCSVFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows from %s\n", n, args[0])
			return nil
		})
	},
}

var thermoExportCmd = &cobra.Command{
	Use:   "export <file.csv[.zst]>",
	Short: "Write the thermo table to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(e *env, st *store.Store) error {
			if err := st.ExportCSVFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(thermoCmd)
	thermoCmd.AddCommand(thermoFindCmd, thermoLookupCmd, thermoReactionCmd, thermoImportCmd, thermoExportCmd)
	thermoFindCmd.Flags().IntP("limit", "n", 10, "maximum results")
	thermoReactionCmd.Flags().StringVarP(&thermoReactionTemp, "temp", "t", "", "temperature for ΔG = ΔH − TΔS (K unless a unit is given)")
}

func withStore(fn func(e *env, st *store.Store) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if err := e.ensureDir(); err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(e, st)
}

func printEntries(cmd *cobra.Command, e *env, entries []thermo.Entry) error {
	cell := func(en thermo.Entry, f thermo.Field) string {
		if v, ok := en.Value(f); ok {
			return e.gen.Number(v)
		}
		return "—"
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORMULA\tPHASE\tΔH°f kJ/mol\tΔG°f kJ/mol\tS° J/(mol·K)")
	for _, en := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", en.Formula, en.Phase,
			cell(en, thermo.HasHf), cell(en, thermo.HasGf), cell(en, thermo.HasS))
	}
	return w.Flush()
}

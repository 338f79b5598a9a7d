package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/formula"
)

var massSuggest bool

var massCmd = &cobra.Command{
	Use:   "mass <formula or name>",
	Short: "Molar mass and composition by element",
	Long: `Compute the molar mass of a formula or a substance name.

Examples:
  chemcalc mass "Ca(OH)2"
  chemcalc mass "copper(II) sulfate pentahydrate"
  chemcalc mass sulf --suggest`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMass,
}

func init() {
	rootCmd.AddCommand(massCmd)
	massCmd.Flags().BoolVarP(&massSuggest, "suggest", "s", false, "list matching substance names instead")
}

func runMass(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	if massSuggest {
		sugg := e.dict.Suggest(query, 10)
		if len(sugg) == 0 {
			fmt.Fprintln(out, "No matching substances.")
		}
		for _, s := range sugg {
			fmt.Fprintln(out, s.Label())
		}
		return nil
	}

	text := e.dict.NameToFormula(query)
	logf("%q -> %q", query, text)
	comp, total, err := formula.MassComposition(text)
	if err != nil {
		return err
	}
	report, err := e.gen.Mass(query, text, comp, total)
	if err != nil {
		return err
	}
	fmt.Fprint(out, report)
	return nil
}

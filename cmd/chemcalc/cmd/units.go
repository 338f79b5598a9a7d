package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/units"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Inspect variables, aliases and units",
}

var unitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every variable with its base unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := units.Default()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tBASE\tUNITS")
		for _, k := range reg.Keys() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k, reg.Name(k), reg.BaseUnit(k), strings.Join(reg.UnitsFor(k), " "))
		}
		return w.Flush()
	},
}

var unitsSuggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Suggest variables for partial input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		out := cmd.OutOrStdout()
		sugg := units.Default().Suggestions(args[0], limit)
		if len(sugg) == 0 {
			fmt.Fprintln(out, "No suggestions.")
			return nil
		}
		for _, s := range sugg {
			fmt.Fprintln(out, s.Label)
		}
		return nil
	},
}

var unitsResolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Show which variable a name or alias maps to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := units.Default()
		key, ok := reg.Resolve(args[0])
		if !ok {
			return fmt.Errorf("%q does not name a known variable", args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s\n", key, reg.Name(key))
		if d := reg.Desc(key); d != "" {
			fmt.Fprintf(out, "  %s\n", d)
		}
		fmt.Fprintf(out, "  base unit: %s\n", reg.BaseUnit(key))
		fmt.Fprintf(out, "  units:     %s\n", strings.Join(reg.UnitsFor(key), ", "))
		return nil
	},
}

var unitsConvertCmd = &cobra.Command{
	Use:   "convert <variable> <value[unit]> <unit>",
	Short: "Convert a value between units of one variable",
	Long: `Convert a value between units of one variable.

Examples:
  chemcalc units convert T 25°C K
  chemcalc units convert p 1atm kPa`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := units.Default()
		a, err := reg.ParseAssignment(args[0] + "=" + args[1])
		if err != nil {
			return err
		}
		if !a.Known {
			return fmt.Errorf("%q does not name a known variable", args[0])
		}
		to, ok := reg.Lookup(a.Key)
		if !ok {
			return fmt.Errorf("%q does not name a known variable", args[0])
		}
		if _, ok := to.Unit(args[2]); !ok {
			return fmt.Errorf("%w: %s for %s (use one of %s)", units.ErrBadUnit, args[2], a.Key, strings.Join(reg.UnitsFor(a.Key), ", "))
		}
		v := reg.ConvertFromBase(a.Key, a.Base, args[2])
		fmt.Fprintf(cmd.OutOrStdout(), "%g %s = %g %s\n", a.Value, a.Unit, v, args[2])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)
	unitsCmd.AddCommand(unitsListCmd, unitsSuggestCmd, unitsResolveCmd, unitsConvertCmd)
	unitsSuggestCmd.Flags().IntP("limit", "n", units.DefaultSuggestionLimit, "maximum suggestions")
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/reaction"
)

var netionicCmd = &cobra.Command{
	Use:     "netionic <equation>",
	Aliases: []string{"ionic"},
	Short:   "Derive the net ionic equation",
	Long: `Split aqueous strong electrolytes into ions, cancel spectators and
print the molecular, total ionic and net ionic equations.

Example:
  chemcalc netionic "AgNO3(aq) + NaCl(aq) -> AgCl(s) + NaNO3(aq)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		res, err := reaction.NetIonic(strings.Join(args, " "))
		if err != nil {
			return err
		}
		logf("dissociated=%v balanced=%v", res.Dissociated, res.Balanced)
		text, err := e.gen.NetIonic(res)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <equation>",
	Short: "Balance a chemical equation",
	Long: `Find the smallest positive integer coefficients that conserve every
element and the total charge.

Example:
  chemcalc balance "C3H8 + O2 -> CO2 + H2O"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rx, err := reaction.Balance(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rx.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(netionicCmd, balanceCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/equilibrium"
	"github.com/f3rmion/chemcalc/internal/tui/views"
)

var (
	iceInitial []string
	iceK       float64
)

var iceCmd = &cobra.Command{
	Use:   "ice <equation>",
	Short: "Solve an equilibrium ICE table",
	Long: `Solve for the reaction extent that brings Q to K and print the
initial, change and equilibrium concentrations.

Example:
  chemcalc ice "N2 + 3 H2 <=> 2 NH3" --c0 N2=1,H2=3 --k 0.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runICE,
}

func init() {
	rootCmd.AddCommand(iceCmd)
	iceCmd.Flags().StringSliceVar(&iceInitial, "c0", nil, "initial concentrations as species=mol/L")
	iceCmd.Flags().Float64VarP(&iceK, "k", "k", 0, "equilibrium constant")
	_ = iceCmd.MarkFlagRequired("k")
}

func runICE(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	c0, err := views.ParseInitial(strings.Join(iceInitial, ","))
	if err != nil {
		return err
	}
	eq := strings.Join(args, " ")
	res, err := equilibrium.SolveReaction(eq, c0, iceK)
	if err != nil {
		return err
	}
	logf("extent %g in [%g, %g], bracketed=%v", res.Extent, res.Lo, res.Hi, res.Bracketed)
	text, err := e.gen.ICE(eq, res)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

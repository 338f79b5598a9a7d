package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"phase"},
	Short:   "Phase constants and heating curves",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog substances",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		cat, err := e.loadCatalog()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFORMULA\tT_melt °C\tT_boil °C")
		for _, n := range cat.Names() {
			s := cat[n]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n, s.Formula, e.gen.Number(s.TMeltC), e.gen.Number(s.TBoilC))
		}
		return w.Flush()
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <substance>",
	Short: "Show a substance's constants",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		cat, err := e.loadCatalog()
		if err != nil {
			return err
		}
		name, s, ok := cat.Find(strings.Join(args, " "))
		if !ok {
			return fmt.Errorf("no catalog substance matches %q", strings.Join(args, " "))
		}
		out := cmd.OutOrStdout()
		n := e.gen.Number
		fmt.Fprintf(out, "%s (%s)\n", name, s.Formula)
		fmt.Fprintf(out, "  c solid   %s J/(kg·K)\n", n(s.CSolid))
		fmt.Fprintf(out, "  c liquid  %s J/(kg·K)\n", n(s.CLiquid))
		fmt.Fprintf(out, "  c gas     %s J/(kg·K)\n", n(s.CGas))
		fmt.Fprintf(out, "  ΔH fus    %s J/kg\n", n(s.HFus))
		fmt.Fprintf(out, "  ΔH vap    %s J/kg\n", n(s.HVap))
		fmt.Fprintf(out, "  T melt    %s °C\n", n(s.TMeltC))
		fmt.Fprintf(out, "  T boil    %s °C\n", n(s.TBoilC))
		return nil
	},
}

var (
	heatMass string
	heatFrom string
	heatTo   string
	heatPlot bool
)

var catalogHeatCmd = &cobra.Command{
	Use:   "heat <substance>",
	Short: "Heat needed between two temperatures",
	Long: `Walk the heating (or cooling) curve of a catalog substance and sum
the sensible and latent heat of every segment.

Example:
  chemcalc catalog heat water --mass 1kg --from -10 --to 110 --plot`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHeat,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd, catalogHeatCmd)
	catalogHeatCmd.Flags().StringVarP(&heatMass, "mass", "m", "1kg", "sample mass (kg unless a unit is given)")
	catalogHeatCmd.Flags().StringVar(&heatFrom, "from", "", "start temperature (°C, or K with a suffix)")
	catalogHeatCmd.Flags().StringVar(&heatTo, "to", "", "end temperature (°C, or K with a suffix)")
	catalogHeatCmd.Flags().BoolVar(&heatPlot, "plot", false, "save a PNG of the curve in the config directory")
	_ = catalogHeatCmd.MarkFlagRequired("from")
	_ = catalogHeatCmd.MarkFlagRequired("to")
}

func runHeat(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	cat, err := e.loadCatalog()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	name, s, ok := cat.Find(query)
	if !ok {
		return fmt.Errorf("no catalog substance matches %q", query)
	}

	m, err := e.reg.ParseAssignment("m=" + heatMass)
	if err != nil {
		return fmt.Errorf("mass: %w", err)
	}
	t1, err := catalog.ParseCelsius(heatFrom)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	t2, err := catalog.ParseCelsius(heatTo)
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}

	curve, err := catalog.HeatingCurve(s, m.Base, t1, t2)
	if err != nil {
		return err
	}
	text, err := e.gen.Heating(name, m.Base, curve)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, text)

	if heatPlot {
		if err := e.ensureDir(); err != nil {
			return err
		}
		path := catalog.PlotPath(e.dir, name)
		if err := catalog.PlotHeatingCurve(curve, name, path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Plot saved to %s\n", path)
	}
	return nil
}

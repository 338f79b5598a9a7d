package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/session"
)

var (
	solveEquation string
	solveAll      bool
	solveList     bool
	solveNoRecord bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <name=value[unit]>...",
	Short: "Solve an equation from known values",
	Long: `Enter known values by variable name or alias, with an optional unit.
chemcalc lists the equations those values fit and solves the first one
with a single unknown.

Examples:
  chemcalc solve m=2.5kg dT=30 c=4184
  chemcalc solve n=1 T=273.15 V=22.414L --list
  chemcalc solve p=1atm V=2L T=300 --equation ideal_gas_law
  chemcalc solve m=10g M_molar=18.015g/mol --all`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVarP(&solveEquation, "equation", "e", "", "solve this equation (key or name)")
	solveCmd.Flags().BoolVarP(&solveAll, "all", "a", false, "keep solving until nothing new can be derived")
	solveCmd.Flags().BoolVarP(&solveList, "list", "l", false, "only list matching equations")
	solveCmd.Flags().BoolVar(&solveNoRecord, "no-history", false, "do not record the solve")
}

func runSolve(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	var sess *session.Session
	if e.cfg.RecordHistory && !solveNoRecord {
		if err := e.ensureDir(); err != nil {
			return err
		}
		st, err := e.openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		sess = e.newSession(st)
	} else {
		sess = e.newSession(nil)
	}

	for _, arg := range args {
		a, err := sess.Assign(arg)
		if err != nil {
			return err
		}
		if !a.Known {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q is not a known variable; using it as entered\n", a.Key)
		}
		logf("%s = %g %s (base %g)", a.Key, a.Value, a.Unit, a.Base)
	}

	out := cmd.OutOrStdout()
	matches := sess.Matches()

	switch {
	case solveEquation != "":
		eq, ok := e.matcher.Bank().Find(solveEquation)
		if !ok {
			return fmt.Errorf("unknown equation %q", solveEquation)
		}
		res, err := sess.Solve(eq)
		if err != nil {
			return err
		}
		return printResults(out, e.gen, res)

	case solveList:
		printMatches(out, e.matcher, matches)
		return nil

	case solveAll:
		results, err := sess.SolveAll()
		if perr := printResults(out, e.gen, results...); perr != nil {
			return perr
		}
		if len(results) == 0 && err == nil {
			printMatches(out, e.matcher, matches)
			return fmt.Errorf("nothing solvable with the given values")
		}
		return err
	}

	for _, m := range matches {
		if m.Solvable() {
			res, err := sess.Solve(m.Equation)
			if err != nil {
				return err
			}
			return printResults(out, e.gen, res)
		}
	}
	printMatches(out, e.matcher, matches)
	return fmt.Errorf("nothing solvable with the given values")
}

func printResults(w io.Writer, gen *report.Generator, results ...*session.Result) error {
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		text, err := gen.Solve(res.Report())
		if err != nil {
			return err
		}
		fmt.Fprint(w, text)
	}
	return nil
}

// printMatches lists equations the way the console session does:
// number, name, formula and what is still missing.
func printMatches(w io.Writer, m *equations.Matcher, matches []equations.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matching equations found yet. Try adding more variables.")
		return
	}
	fmt.Fprintln(w, "With that you can find the following:")
	fmt.Fprintln(w)
	for i, mt := range matches {
		status := "Missing: " + strings.Join(mt.Missing, ", ")
		if mt.Solvable() {
			status = "Solvable for " + mt.Target
		}
		fmt.Fprintf(w, "%d) %s: %s  [%s]\n", i+1, mt.Equation.Name, mt.Equation.Formula, status)
		if mt.Equation.Notes != "" {
			fmt.Fprintf(w, "   Notes: %s\n", mt.Equation.Notes)
		}
		for _, n := range m.ConstantNotes(mt.Equation) {
			fmt.Fprintf(w, "   Const: %s\n", n)
		}
	}
}

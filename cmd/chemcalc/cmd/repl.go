package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/session"
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"console"},
	Short:   "Line-oriented solver session",
	Long: `Start a console session. Enter known values one per line (or several
separated by commas), then pick an equation to solve.

Commands:
  m = 2.5 kg      add or replace a known value
  list            show the equations the known values fit
  <n>             solve equation n from the last list
  all             solve everything derivable
  known           show the known values
  forget <name>   remove a known value
  clear           start over
  help            show tips
  quit            leave`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

const replHelp = `Tips:
- You can type aliases like: deltaT, dt, temp, vol, mass, pressure, molarity, rho...
- Units are optional; without one the base unit is assumed (m in kg, V in m³, p in Pa).
- Constants like R are built-in. Enter your own R to override the default.
`

func runREPL(cmd *cobra.Command, args []string) error {
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

	return repl(cmd.InOrStdin(), cmd.OutOrStdout(), e, e.newSession(st))
}

func repl(in io.Reader, out io.Writer, e *env, sess *session.Session) error {
	fmt.Fprintln(out, "chemcalc console. Enter known variables; type 'help' for tips, 'quit' to leave.")
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(sc.Text())
		word, rest, _ := strings.Cut(line, " ")

		switch strings.ToLower(word) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "help", "?":
			fmt.Fprint(out, replHelp)
		case "list", "ls":
			printMatches(out, e.matcher, sess.Matches())
		case "known":
			ks := sess.Knowns()
			if len(ks) == 0 {
				fmt.Fprintln(out, "No known values.")
			}
			for _, k := range ks {
				fmt.Fprintf(out, "  %s = %s %s\n", k.Label, e.gen.Number(k.Value), k.Unit)
			}
		case "forget", "rm":
			if key, ok := sess.Forget(rest); ok {
				fmt.Fprintf(out, "Forgot %s.\n", key)
			} else {
				fmt.Fprintf(out, "%s is not known.\n", key)
			}
		case "clear", "reset":
			sess.Reset()
			fmt.Fprintln(out, "Cleared.")
		case "all":
			results, err := sess.SolveAll()
			if perr := printResults(out, e.gen, results...); perr != nil {
				return perr
			}
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			} else if len(results) == 0 {
				fmt.Fprintln(out, "Nothing solvable yet.")
			}
		default:
			if n, err := strconv.Atoi(line); err == nil {
				res, err := sess.SolveIndex(n)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				if err := printResults(out, e.gen, res); err != nil {
					return err
				}
				continue
			}
			for _, part := range strings.Split(line, ",") {
				a, err := sess.Assign(part)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					break
				}
				fmt.Fprintf(out, "  %s = %s %s\n", a.Key, e.gen.Number(a.Value), a.Unit)
			}
		}
	}
	return sc.Err()
}

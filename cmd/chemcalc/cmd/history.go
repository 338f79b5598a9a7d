package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/store"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded solves",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(e *env, st *store.Store) error {
			out := cmd.OutOrStdout()
			if historyClear {
				if err := st.ClearHistory(); err != nil {
					return err
				}
				fmt.Fprintln(out, "History cleared.")
				return nil
			}
			recs, err := st.History(historyLimit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(out, "No history yet.")
				return nil
			}
			for _, r := range recs {
				keys := make([]string, 0, len(r.Inputs))
				for k := range r.Inputs {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				inputs := make([]string, len(keys))
				for i, k := range keys {
					inputs[i] = k + "=" + e.gen.Number(r.Inputs[k])
				}
				fmt.Fprintf(out, "%s  %s: %s = %s %s  (%s)\n",
					r.At.Local().Format("2006-01-02 15:04"), r.Equation, r.Target,
					e.gen.Number(r.Value), e.reg.BaseUnit(r.Target), strings.Join(inputs, ", "))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all history")
}

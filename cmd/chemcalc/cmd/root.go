// Package cmd contains all CLI commands for chemcalc.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/chemcalc/internal/tui"
	"github.com/f3rmion/chemcalc/internal/tui/views"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chemcalc",
	Short: "Chemistry calculator for the terminal",
	Long: `chemcalc is a chemistry calculator for textbook problems.

It knows:
  - Variables and units → enter values by name or alias (m, mass, dT, rho …)
  - Equations           → lists what your known values can solve, then solves it
  - Reactions           → net ionic equations, balancing, ICE tables
  - Data                → molar masses, formation enthalpies, phase changes

Running 'chemcalc' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runUnifiedTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/chemcalc)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("format", "plain", "report format: plain, markdown")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "chemcalc")
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("CHEMCALC")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// logf prints a diagnostic line to stderr when --verbose is set.
func logf(format string, args ...any) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// runUnifiedTUI launches the unified TUI application.
func runUnifiedTUI(cmd *cobra.Command, args []string) error {
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

	cat, err := e.loadCatalog()
	if err != nil {
		return err
	}

	var history views.HistorySource
	if e.cfg.RecordHistory {
		history = st
	}

	p := tea.NewProgram(
		tui.NewApp(tui.Deps{
			Config:    e.cfg,
			ConfigDir: e.dir,
			Session:   e.newSession(st),
			Constants: e.constants,
			Dict:      e.dict,
			Catalog:   cat,
			Thermo:    st,
			History:   history,
			Generator: e.gen,
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/chemcalc/internal/catalog"
	"github.com/f3rmion/chemcalc/internal/config"
	"github.com/f3rmion/chemcalc/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize chemcalc configuration",
	Long: `Initialize chemcalc files in your config directory.

This creates:
  - config.yaml           (precision, display units, constant overrides)
  - phase_constants.json  (heat capacities and latent heats per substance)
  - chemcalc.db           (SQLite thermo table and solve history)

Edit config.yaml and phase_constants.json to suit your course.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	cfgPath := filepath.Join(configDir, config.DefaultFile)

	// Check if config already exists
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("config already exists: %s\nUse --force to overwrite", cfgPath)
	}

	// Create config directory
	if _, err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing chemcalc configuration in %s\n\n", configDir)

	cfg := config.Default()
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Created %s\n", config.DefaultFile)

	catPath := cfg.CatalogPath(configDir)
	if _, err := os.Stat(catPath); err != nil || force {
		if err := catalog.Save(catPath, catalog.Defaults()); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Created %s\n", filepath.Base(catPath))
	}

	st, err := store.Open(cfg.DatabasePath(configDir))
	if err != nil {
		return err
	}
	defer st.Close()
	n, err := st.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Database %s (%d thermo rows)\n", filepath.Base(st.Path()), n)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration initialized!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'chemcalc solve m=2.5kg dT=30 c=4184' to try the solver")
	fmt.Fprintln(out, "  2. Run 'chemcalc' to open the interactive TUI")

	return nil
}

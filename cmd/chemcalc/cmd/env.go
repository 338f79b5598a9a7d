package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/f3rmion/chemcalc/internal/catalog"
	"github.com/f3rmion/chemcalc/internal/config"
	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/formula"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/session"
	"github.com/f3rmion/chemcalc/internal/store"
	"github.com/f3rmion/chemcalc/internal/units"
)

// env bundles the configuration and services a command needs.
type env struct {
	dir       string
	cfg       *config.Config
	reg       *units.Registry
	constants equations.Constants
	matcher   *equations.Matcher
	dict      *formula.Dictionary
	gen       *report.Generator
}

func loadEnv() (*env, error) {
	dir := getConfigDir()
	cfgPath := filepath.Join(dir, config.DefaultFile)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logf("config: %s", cfgPath)

	reg := units.Default()
	if err := cfg.Validate(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	format, err := report.ParseFormat(viper.GetString("format"))
	if err != nil {
		return nil, err
	}

	dict := formula.DefaultDictionary()
	if p := cfg.SpeciesPath(dir); p != "" {
		if err := dict.LoadFromFile(p); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not load species file: %v\n", err)
		} else {
			logf("species: %s (%d entries)", p, dict.Len())
		}
	}

	constants := cfg.MergeConstants(equations.DefaultConstants())
	return &env{
		dir:       dir,
		cfg:       cfg,
		reg:       reg,
		constants: constants,
		matcher:   equations.NewMatcher(equations.DefaultBank(), constants),
		dict:      dict,
		gen:       report.NewGenerator(format, cfg.Precision),
	}, nil
}

func (e *env) ensureDir() error {
	if _, err := config.EnsureConfigDir(e.dir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}

func (e *env) openStore() (*store.Store, error) {
	path := e.cfg.DatabasePath(e.dir)
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if n, err := st.Count(); err == nil {
		logf("database: %s (%d thermo rows)", path, n)
	}
	return st, nil
}

func (e *env) loadCatalog() (catalog.Catalog, error) {
	path := e.cfg.CatalogPath(e.dir)
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	logf("catalog: %s (%d substances)", path, len(cat))
	return cat, nil
}

// newSession creates a solve session. Solves are recorded in st when
// history is enabled and st is not nil.
func (e *env) newSession(st *store.Store) *session.Session {
	opts := []session.Option{
		session.WithDisplayUnits(func(key string) string { return e.cfg.DisplayUnit(e.reg, key) }),
	}
	if st != nil && e.cfg.RecordHistory {
		opts = append(opts, session.WithRecorder(st))
	}
	return session.New(e.reg, e.matcher, opts...)
}

// Package tui provides the interactive terminal UI for chemcalc.
package tui

import (
	"github.com/f3rmion/chemcalc/internal/catalog"
	"github.com/f3rmion/chemcalc/internal/config"
	"github.com/f3rmion/chemcalc/internal/equations"
	"github.com/f3rmion/chemcalc/internal/formula"
	"github.com/f3rmion/chemcalc/internal/report"
	"github.com/f3rmion/chemcalc/internal/session"
	"github.com/f3rmion/chemcalc/internal/tui/views"
)

// Deps are the services the views work with. Thermo and History are
// usually the same *store.Store; History may be nil.
type Deps struct {
	Config    *config.Config
	ConfigDir string
	Session   *session.Session
	Constants equations.Constants
	Dict      *formula.Dictionary
	Catalog   catalog.Catalog
	Thermo    views.ThermoSource
	History   views.HistorySource
	Generator *report.Generator
}

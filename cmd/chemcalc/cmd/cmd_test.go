package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/f3rmion/chemcalc/internal/config"
)

// execute runs the root command against a fresh config directory.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	solveEquation, solveAll, solveList, solveNoRecord = "", false, false, false
	thermoReactionTemp, heatPlot, historyClear, massSuggest = "", false, false, false
	iceInitial = nil

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", dir}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q:\n%s", w, got)
		}
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, dir, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	assertContains(t, out, "Configuration initialized!")
	for _, f := range []string{config.DefaultFile, "phase_constants.json", "chemcalc.db"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("%s not created: %v", f, err)
		}
	}
	if _, err := execute(t, dir, "init"); err == nil {
		t.Error("second init without --force succeeded")
	}
}

func TestSolveAndHistory(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, dir, "solve", "m=2.5kg", "dT=30", "c=4184")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	assertContains(t, out, "313800 J")

	out, err = execute(t, dir, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	assertContains(t, out, "Q = 313800 J")

	if _, err := execute(t, dir, "history", "--clear"); err != nil {
		t.Fatalf("history --clear: %v", err)
	}
	out, _ = execute(t, dir, "history")
	assertContains(t, out, "No history yet.")
}

func TestSolveList(t *testing.T) {
	out, err := execute(t, t.TempDir(), "solve", "--list", "--no-history", "m=2.5kg", "dT=30", "c=4184")
	if err != nil {
		t.Fatalf("solve --list: %v", err)
	}
	assertContains(t, out, "With that you can find the following:", "1) ", "[Solvable for Q]")
}

func TestSolveNothingSolvable(t *testing.T) {
	out, err := execute(t, t.TempDir(), "solve", "--no-history", "qwxz=3")
	if err == nil {
		t.Fatalf("solve with an unknown name succeeded:\n%s", out)
	}
	assertContains(t, out, `"qwxz" is not a known variable`, "Missing:")
}

func TestReactionCommands(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		args  []string
		wants []string
	}{
		{[]string{"balance", "CH4 + O2 -> CO2 + H2O"}, []string{"CH4 + 2 O2 -> CO2 + 2 H2O"}},
		{[]string{"netionic", "AgNO3(aq) + NaCl(aq) -> AgCl(s) + NaNO3(aq)"}, []string{"Net ionic:", "Spectators:"}},
		{[]string{"ice", "A <=> B", "--c0", "A=1", "--k", "2"}, []string{"Equilibrium", "0.66666"}},
		{[]string{"mass", "water"}, []string{"H2O (water): 18.015"}},
		{[]string{"units", "convert", "T", "25°C", "K"}, []string{"= 298.15 K"}},
		{[]string{"units", "resolve", "temp"}, []string{"T:"}},
		{[]string{"catalog", "heat", "water", "--mass", "1kg", "--from", "-10", "--to", "110"}, []string{"total: 3.04881e+06 J"}},
	}
	for _, tt := range tests {
		out, err := execute(t, dir, tt.args...)
		if err != nil {
			t.Errorf("%v: %v", tt.args, err)
			continue
		}
		assertContains(t, out, tt.wants...)
	}
}

func TestThermoReaction(t *testing.T) {
	out, err := execute(t, t.TempDir(), "thermo", "reaction", "CH4(g) + 2 O2(g) -> CO2(g) + 2 H2O(l)", "--temp", "298.15")
	if err != nil {
		t.Fatalf("thermo reaction: %v", err)
	}
	assertContains(t, out, "ΔH°rxn = -890.", "Gibbs relation")
}

func TestThermoExportImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv.zst")
	if _, err := execute(t, dir, "thermo", "export", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	out, err := execute(t, dir, "thermo", "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	assertContains(t, out, "Imported ")
}

func TestREPL(t *testing.T) {
	viper.Set("config_dir", t.TempDir())
	e, err := loadEnv()
	if err != nil {
		t.Fatal(err)
	}
	in := strings.NewReader("help\nm = 2.5 kg, dT = 30\nc=4184\nknown\nlist\n1\nforget m\nclear\nknown\nquit\n")
	var out bytes.Buffer
	if err := repl(in, &out, e, e.newSession(nil)); err != nil {
		t.Fatalf("repl: %v", err)
	}
	assertContains(t, out.String(),
		"Tips:",
		"m = 2.5 kg",
		"Solvable for Q",
		"313800 J",
		"Forgot m.",
		"Cleared.",
		"No known values.",
		"Goodbye!",
	)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/local/paperpick/internal/launcher"
	"github.com/local/paperpick/internal/pagecount"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the scan folder, PDF backend and viewer opener are usable",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// check is one named readiness probe.
type check struct {
	name string
	err  error
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	checks := []check{
		{name: "scan dir " + cfg.Picker.Dir, err: checkDir(cfg.Picker.Dir)},
		{name: "pdf backend " + cfg.PDF.Backend, err: checkBackend(cfg.PDF.Backend)},
		{name: "opener", err: checkOpener()},
	}
	return report(cmd.OutOrStdout(), checks)
}

func report(w io.Writer, checks []check) error {
	failed := 0
	for _, c := range checks {
		if c.err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", failStyle.Render("FAIL"), c.name, c.err)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", okStyle.Render(" OK "), c.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return errors.New("not a directory")
	}
	return nil
}

func checkBackend(name string) error {
	_, err := pagecount.New(name)
	return err
}

func checkOpener() error {
	o, err := launcher.Detect()
	if err != nil {
		return err
	}
	return o.Available()
}

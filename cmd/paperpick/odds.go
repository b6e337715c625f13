package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/local/paperpick/internal/corpus"
	"github.com/local/paperpick/internal/sampler"
)

var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Print pick probabilities per page count without opening anything",
	Args:  cobra.NoArgs,
	RunE:  runOdds,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func init() {
	rootCmd.AddCommand(oddsCmd)
}

func runOdds(cmd *cobra.Command, _ []string) error {
	p, err := newPicker(nil)
	if err != nil {
		return err
	}
	groups, table, err := p.Odds(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderOdds(groups, table, cfg.Picker.Decay))
	return nil
}

// renderOdds lays out one row per page count: group probability and the
// chance of each individual file in it.
func renderOdds(groups corpus.Groups, table sampler.WeightTable, decay float64) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%7s %6s %10s %10s", "pages", "files", "p(group)", "p(file)")))
	b.WriteString("\n")
	for _, w := range table {
		sel := sampler.Selection{Pages: w.Pages, Probability: w.Probability}
		fmt.Fprintf(&b, "%7d %6d %10.4f %10.4f\n", w.Pages, w.Files, w.Probability, sel.FileProbability(len(groups[w.Pages])))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d files, %d page counts, decay %g", groups.Total(), len(table), decay)))
	b.WriteString("\n")
	return b.String()
}

package figures

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

// Table is a console summary printed after a figure is written.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Print writes the table with a styled heading.
func (t Table) Print(out io.Writer) error {
	if t.Title != "" {
		fmt.Fprintln(out, headingStyle.Render(t.Title))
	}
	table := tablewriter.NewWriter(out)
	table.Header(t.Header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(t.Rows); err != nil {
		return err
	}
	return table.Render()
}

// num formats a statistic for a summary cell; NaN prints as "n/a".
func num(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}

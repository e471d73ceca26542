// internal/cli/list.go
package inaviz

import (
	"strings"

	"github.com/mwiater/inaviz/internal/figures"
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing figures and commands",
}

// listFiguresCmd prints every registered figure with its default files.
var listFiguresCmd = &cobra.Command{
	Use:   "figures",
	Short: "List the figures 'plot' can render",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		table := figures.Table{Header: []string{"figure", "inputs", "output", "description"}}
		for _, p := range figures.All() {
			table.Rows = append(table.Rows, []string{
				p.Name,
				strings.Join(p.InputPaths(cfg, nil), ", "),
				p.OutputPath(cfg, ""),
				p.Description,
			})
		}
		return table.Print(cmd.OutOrStdout())
	},
}

func init() {
	listCmd.AddCommand(listFiguresCmd)
	rootCmd.AddCommand(listCmd)
}

// internal/cli/correlate.go
package inaviz

import (
	"github.com/mwiater/inaviz/internal/figures"
	"github.com/spf13/cobra"
)

type correlateOptions struct {
	input  string
	xKey   string
	xField string
	yKey   string
	yField string
}

var correlateOpts correlateOptions

// correlateCmd prints the Pearson association of two aligned series.
var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Pearson correlation between two result series",
	Long: `Without series selectors, correlate the smoothed aggregation tree conflict
probability with the windowed host fragment count of a tree conflict trace
(default tree_conflict_trace.json). With --x-key/--x-field and
--y-key/--y-field, correlate two record field projections of --input; both
projections must hold the same number of records and no null samples.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := figures.NewEnv(getConfig(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		_, err = figures.Correlate(env, figures.CorrelateOptions{
			Input: correlateOpts.input,
			X:     figures.SampleSource{Key: correlateOpts.xKey, Field: correlateOpts.xField},
			Y:     figures.SampleSource{Key: correlateOpts.yKey, Field: correlateOpts.yField},
		})
		return err
	},
}

func init() {
	correlateCmd.Flags().StringVar(&correlateOpts.input, "input", "", "result file (default tree_conflict_trace.json)")
	correlateCmd.Flags().StringVar(&correlateOpts.xKey, "x-key", "", "record array key of the x series")
	correlateCmd.Flags().StringVar(&correlateOpts.xField, "x-field", "", "record field of the x series")
	correlateCmd.Flags().StringVar(&correlateOpts.yKey, "y-key", "", "record array key of the y series")
	correlateCmd.Flags().StringVar(&correlateOpts.yField, "y-field", "", "record field of the y series")
	rootCmd.AddCommand(correlateCmd)
}

// internal/cli/distribution.go
package inaviz

import (
	"fmt"

	"github.com/mwiater/inaviz/internal/figures"
	"github.com/spf13/cobra"
)

type distributionOptions struct {
	input  string
	key    string
	field  string
	bins   int
	output string
}

var distributionOpts distributionOptions

// distributionCmd draws the density histogram and CDF of one sample set.
var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Histogram and cumulative distribution of a sample collection",
	Long: `Select a flat sample collection from a result file and plot its probability
density histogram above its cumulative distribution. With --field the samples
are that field of every record under --key (an empty key selects a root record
array); otherwise they are the y values of the [x, y] pairs stored under --key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if distributionOpts.input == "" {
			return fmt.Errorf("input result file is required (pass --input)")
		}
		env, err := figures.NewEnv(getConfig(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		path, _, err := figures.Distribution(env, figures.DistributionOptions{
			Source: figures.SampleSource{
				Input: distributionOpts.input,
				Key:   distributionOpts.key,
				Field: distributionOpts.field,
			},
			Bins:   distributionOpts.bins,
			Output: distributionOpts.output,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s distribution -> %s\n", okLabel("OK"), path)
		return nil
	},
}

func init() {
	distributionCmd.Flags().StringVar(&distributionOpts.input, "input", "", "result file holding the samples (required)")
	distributionCmd.Flags().StringVar(&distributionOpts.key, "key", "", "key of the pair series or record array")
	distributionCmd.Flags().StringVar(&distributionOpts.field, "field", "", "record field to sample")
	distributionCmd.Flags().IntVar(&distributionOpts.bins, "bins", 0, "histogram bins (default from config)")
	distributionCmd.Flags().StringVar(&distributionOpts.output, "output", "", "figure path (default <figuresDir>/distribution.<format>)")
	rootCmd.AddCommand(distributionCmd)
}

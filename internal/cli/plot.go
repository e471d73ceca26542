// internal/cli/plot.go
package inaviz

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mwiater/inaviz/internal/figures"
	"github.com/mwiater/inaviz/internal/logging"
	"github.com/mwiater/inaviz/internal/util"
	"github.com/spf13/cobra"
)

// maxErrorRunes caps failure lines; the full error goes to the log file.
const maxErrorRunes = 200

type plotOptions struct {
	all    bool
	inputs []string
	output string
}

var plotOpts plotOptions

// runFigure is swapped in tests.
var runFigure = figures.Run

var (
	okLabel     = color.New(color.FgGreen, color.Bold).SprintFunc()
	failedLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

// plotCmd renders one or more registered figures.
var plotCmd = &cobra.Command{
	Use:   "plot [figure...]",
	Short: "Render figures from simulator results",
	Long: `Render the named figures (see 'inaviz list figures'), or every figure with
--all. Input files are resolved against the results directory and figures are
written to the figures directory in the configured format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if plotOpts.all {
			if len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with figure names")
			}
			names = figures.Names()
		}
		if len(names) == 0 {
			return fmt.Errorf("name at least one figure or pass --all (available: %v)", figures.Names())
		}
		if len(names) > 1 && (len(plotOpts.inputs) > 0 || plotOpts.output != "") {
			return fmt.Errorf("--input and --output apply to a single figure")
		}

		out := cmd.OutOrStdout()
		env, err := figures.NewEnv(getConfig(), out)
		if err != nil {
			return err
		}
		opts := figures.RunOptions{Inputs: plotOpts.inputs, Output: plotOpts.output}

		failed := 0
		for _, name := range names {
			path, err := runFigure(env, name, opts)
			if err != nil {
				failed++
				logging.LogEvent("plot %s failed: %v", name, err)
				fmt.Fprintf(out, "%s %s: %s\n", failedLabel("FAIL"), name, util.TruncateRunes(err.Error(), maxErrorRunes))
				continue
			}
			fmt.Fprintf(out, "%s %s -> %s\n", okLabel("OK"), name, path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d figure(s) failed", failed, len(names))
		}
		return nil
	},
}

func init() {
	plotCmd.Flags().BoolVar(&plotOpts.all, "all", false, "render every registered figure")
	plotCmd.Flags().StringSliceVar(&plotOpts.inputs, "input", nil, "override the figure's input file(s)")
	plotCmd.Flags().StringVar(&plotOpts.output, "output", "", "override the figure's output path")
	rootCmd.AddCommand(plotCmd)
}

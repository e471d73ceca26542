// internal/cli/show_config.go
package inaviz

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/inaviz/internal/appconfig"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

type showConfigOptions struct {
	raw    bool
	asYAML bool
}

var showConfigOpts showConfigOptions

// showConfigCmd implements 'show config', which prints the merged
// configuration after flags have overridden the config file.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON or YAML configs are loaded properly and overridden by flags accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := getConfig()
		switch {
		case showConfigOpts.raw && showConfigOpts.asYAML:
			return fmt.Errorf("--raw and --yaml are mutually exclusive")
		case showConfigOpts.raw:
			_, err := pp.Fprintln(out, cfg)
			return err
		case showConfigOpts.asYAML:
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		}
		appconfig.ShowConfig(out, cfg.ConfigPath, cfg)
		return nil
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigOpts.raw, "raw", false, "pretty-print the raw configuration struct")
	showConfigCmd.Flags().BoolVar(&showConfigOpts.asYAML, "yaml", false, "print the configuration as YAML")
	showCmd.AddCommand(showConfigCmd)
}

package cmd

import (
	"github.com/ezerfernandes/codetabs/internal/config"
	"github.com/spf13/cobra"
)

func configCmd(opts *options) *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			return config.Dump(cfg, cmd.OutOrStdout())
		},

		DisableAutoGenTag: true,
	}
}

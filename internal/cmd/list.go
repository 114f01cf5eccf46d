package cmd

import (
	"fmt"

	"github.com/ezerfernandes/codetabs/internal/markdown"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] [filename]",
		Aliases: []string{"ls"},
		Short:   "List code blocks and the tab sets they are grouped into",
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			conv, err := markdown.New(cfg)
			if err != nil {
				return err
			}

			src, err := opts.read(source(args))
			if err != nil {
				return err
			}

			tbl := table.New("Block", "Group", "Mode", "Lang", "Lines").WithWriter(cmd.OutOrStdout())

			index := 0

			for _, group := range conv.Analyze(src) {
				mode, name := "bare", "-"
				if group.Tabbed {
					mode, name = "tabs", group.Prefix
				}

				for _, block := range group.Blocks {
					tbl.AddRow(index, name, mode, cfg.Language(block.Lang),
						fmt.Sprintf("L%d-%d", block.StartLine, block.EndLine))
					index++
				}
			}

			tbl.Print()

			return nil
		},

		DisableAutoGenTag: true,
	}

	return cmd
}

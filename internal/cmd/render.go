package cmd

import (
	"bytes"
	_ "embed"

	"github.com/spf13/cobra"
)

//go:embed help/render.md
var renderHelp string

func renderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "render [flags] [filename]",
		Aliases: []string{"r"},
		Short:   "Render a Markdown document to HTML with tabbed code blocks",
		Long:    renderHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := opts.converter(cmd)
			if err != nil {
				return err
			}

			src, err := opts.read(source(args))
			if err != nil {
				return err
			}

			var buf bytes.Buffer

			if err := conv.Convert(src, &buf); err != nil {
				return err
			}

			return opts.write(cmd, buf.Bytes())
		},

		DisableAutoGenTag: true,
	}

	outputFlag(cmd, opts)

	return cmd
}

func preprocessCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "preprocess [flags] [filename]",
		Aliases: []string{"p"},
		Short:   "Replace code block runs with raw HTML and print the Markdown",
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := opts.converter(cmd)
			if err != nil {
				return err
			}

			src, err := opts.read(source(args))
			if err != nil {
				return err
			}

			return opts.write(cmd, conv.Inline(src))
		},

		DisableAutoGenTag: true,
	}

	outputFlag(cmd, opts)

	return cmd
}

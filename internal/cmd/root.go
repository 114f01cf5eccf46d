// Package cmd implements the codetabs command line.
package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/ezerfernandes/codetabs/internal/codetab"
	"github.com/ezerfernandes/codetabs/internal/config"
	"github.com/ezerfernandes/codetabs/internal/markdown"
	"github.com/spf13/cobra"
)

const fileMode = 0o644

type options struct {
	configPath string
	output     string

	fsys  fs.FS
	stdin io.Reader
}

// Execute runs the command line with args and exits non-zero on failure.
func Execute(args []string, stdout, stderr io.Writer) {
	root := rootCmd(&options{stdin: os.Stdin})

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{ //nolint:exhaustruct
		Use:   "codetabs",
		Short: "Render adjacent Markdown code blocks as tabbed HTML",

		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	flags := root.PersistentFlags()

	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./codetabs.yaml)")
	config.AddFlags(flags)

	root.AddCommand(renderCmd(opts), preprocessCmd(opts), listCmd(opts), configCmd(opts))

	return root
}

func (opts *options) load(cmd *cobra.Command) (codetab.Options, error) {
	return config.Load(opts.configPath, cmd.Flags())
}

func (opts *options) converter(cmd *cobra.Command) (*markdown.Converter, error) {
	cfg, err := opts.load(cmd)
	if err != nil {
		return nil, err
	}

	return markdown.New(cfg)
}

func source(args []string) string {
	if len(args) == 0 {
		return "-"
	}

	return args[0]
}

func (opts *options) read(filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(opts.stdin)
	}

	if opts.fsys != nil {
		return fs.ReadFile(opts.fsys, filename)
	}

	return os.ReadFile(filename)
}

func (opts *options) write(cmd *cobra.Command, data []byte) error {
	if len(opts.output) == 0 {
		_, err := cmd.OutOrStdout().Write(data)

		return err
	}

	return os.WriteFile(opts.output, data, fileMode)
}

func outputFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
}

var errTooManyArgs = errors.New("at most one input file is accepted")

func checkargs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errTooManyArgs
	}

	return nil
}

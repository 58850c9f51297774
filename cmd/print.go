package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func NewPrintCommand(cli *Cli) *cobra.Command {
	var opts commonOptions

	cmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Print the expansion of a single file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, cli, args[0], &opts)
		},
	}

	addTemplateFlags(cmd.Flags(), &opts)

	return cmd
}

func runPrint(cmd *cobra.Command, cli *Cli, file string, opts *commonOptions) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	// readFileRange in templates resolves paths relative to the file.
	expander, err := cli.expander(os.DirFS(filepath.Dir(file)), opts)
	if err != nil {
		return err
	}

	code, err := expander.ExpandSource(filepath.ToSlash(file), src)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(code)

	return err
}
